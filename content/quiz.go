package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Tip is the tip of the day.
type Tip struct {
	Title      string `json:"title"`
	Tip        string `json:"tip"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
	Benefits   string `json:"benefits"`
}

// QuizQuestion is a multiple choice question; CorrectAnswer indexes Options.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// AnswerRequest is a submitted quiz answer.
type AnswerRequest struct {
	UserAnswer    *int `json:"user_answer" validate:"required"`
	CorrectAnswer *int `json:"correct_answer" validate:"required"`
}

// AnswerResult is the feedback on a submitted answer.
type AnswerResult struct {
	IsCorrect bool   `json:"is_correct"`
	Message   string `json:"message"`
}

var (
	unparsedTip = Tip{
		Title:      "Stay Hydrated Throughout the Day",
		Tip:        "Start your morning with a glass of water and keep a water bottle nearby to remind yourself to drink regularly throughout the day.",
		Category:   "Hydration",
		Difficulty: "Easy",
		Benefits:   "Proper hydration improves energy levels, supports brain function, and helps maintain healthy skin.",
	}
	unavailableTip = Tip{
		Title:      "Eat the Rainbow",
		Tip:        "Include at least 3 different colored fruits or vegetables in your meals today - red tomatoes, orange carrots, and green spinach!",
		Category:   "Nutrition",
		Difficulty: "Easy",
		Benefits:   "Different colored produce provides various vitamins, minerals, and antioxidants essential for optimal health.",
	}
	unparsedQuestion = QuizQuestion{
		Question:      "Which nutrient is most important for building and repairing muscles?",
		Options:       []string{"Carbohydrates", "Protein", "Fats", "Vitamins"},
		CorrectAnswer: 1,
		Explanation:   "Protein is essential for building and repairing muscle tissue. It provides amino acids that serve as building blocks for muscle fibers.",
	}
	unavailableQuestion = QuizQuestion{
		Question:      "How many glasses of water should an average adult drink per day?",
		Options:       []string{"4-5 glasses", "6-7 glasses", "8-10 glasses", "12+ glasses"},
		CorrectAnswer: 2,
		Explanation:   "Most health experts recommend 8-10 glasses (about 2-2.5 liters) of water per day for proper hydration and optimal body function.",
	}
)

const tipPrompt = `Generate a single nutrition and health tip of the day as JSON:
{
  "title": "a catchy title, at most 50 characters",
  "tip": "a practical tip the reader can act on today",
  "category": "one of Nutrition, Hydration, Exercise, Sleep, Mental Health, General Wellness",
  "difficulty": "Easy, Moderate or Advanced",
  "benefits": "one or two sentences on why it helps"
}
Keep it positive, suitable for a general audience and grounded in sound health principles. Return only the JSON object.`

const questionPrompt = `Generate a single nutrition quiz question as JSON:
{
  "question": "a clear educational question about nutrition, diet or health",
  "options": ["A", "B", "C", "D"],
  "correct_answer": 0,
  "explanation": "why the answer is correct"
}
correct_answer is the zero-based index of the right option. Keep it engaging but not too hard. Return only the JSON object.`

// decodeInto validates required keys and then decodes the cleaned answer into dst.
func decodeInto(raw string, dst any, required ...string) error {
	if _, err := decodeObject(raw, required...); err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(CleanJSON(raw)), dst); err != nil {
		return fmt.Errorf("unexpected field types: %w", err)
	}
	return nil
}

// TipOfTheDay returns a generated tip, or one of two canned tips.
func (s *Service) TipOfTheDay(ctx context.Context) Tip {
	raw, err := s.generate(ctx, tipPrompt, 0.7)
	if err != nil {
		fallback("tip", err)
		return unavailableTip
	}
	var tip Tip
	if err := decodeInto(raw, &tip, "title", "tip", "category", "difficulty", "benefits"); err != nil {
		fallback("tip", err)
		return unparsedTip
	}
	return tip
}

// GenerateQuestion returns a generated four option question, or a canned one.
func (s *Service) GenerateQuestion(ctx context.Context) QuizQuestion {
	raw, err := s.generate(ctx, questionPrompt, 0.7)
	if err != nil {
		fallback("quiz", err)
		return unavailableQuestion
	}
	var q QuizQuestion
	if err := decodeInto(raw, &q, "question", "options", "correct_answer", "explanation"); err != nil {
		fallback("quiz", err)
		return unparsedQuestion
	}
	if len(q.Options) != 4 || q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
		fallback("quiz", errors.New("question must have exactly 4 options"))
		return unparsedQuestion
	}
	return q
}

// SubmitAnswer compares the chosen option with the correct one.
func SubmitAnswer(req AnswerRequest) AnswerResult {
	correct := *req.UserAnswer == *req.CorrectAnswer
	msg := "Not quite right, but keep learning!"
	if correct {
		msg = "Correct! Great job!"
	}
	return AnswerResult{IsCorrect: correct, Message: msg}
}
