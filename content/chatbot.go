package content

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const defaultChatContext = "nutrition_diet_health"

// ChatRequest is a question for the nutrition assistant.
type ChatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
	Context string `json:"context" validate:"max=100"`
}

// ChatResponse is the assistant's answer.
type ChatResponse struct {
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
	Context   string    `json:"context"`
}

const chatFallback = "I'm having trouble reaching my nutrition knowledge right now. " +
	"In the meantime, focus on whole foods, plenty of vegetables, lean protein and enough water, " +
	"and please try your question again in a few minutes. For medical conditions, consult a registered dietitian."

func chatPrompt(message string) string {
	return fmt.Sprintf(`You are NutriBot, an expert AI nutritionist and dietitian assistant giving evidence-based advice on
weight management, meal planning, dietary restrictions, vitamins and supplements, sports nutrition,
food safety and healthy cooking.

Be encouraging and never judgmental. Recommend consulting healthcare professionals for medical conditions.
Prefer whole foods and balanced nutrition, give practical advice with specific foods and portion sizes,
and remind the user about hydration where relevant.

User question: %s

Answer conversationally but professionally in 2-4 paragraphs.`, message)
}

// NutritionAdvice answers a question; when the model is unavailable it
// answers with general canned advice instead of failing.
func (s *Service) NutritionAdvice(ctx context.Context, req ChatRequest) ChatResponse {
	chatCtx := req.Context
	if chatCtx == "" {
		chatCtx = defaultChatContext
	}
	resp := ChatResponse{Timestamp: s.now().UTC(), Context: chatCtx}

	text, err := s.generate(ctx, chatPrompt(req.Message), 0.7)
	if err != nil || text == "" {
		fallback("chatbot", err)
		resp.Response = chatFallback
		return resp
	}
	resp.Response = strings.TrimSpace(strings.TrimPrefix(text, "NutriBot:"))
	return resp
}
