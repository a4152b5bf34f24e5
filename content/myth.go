package content

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
)

// Myth pairs a misconception with the fact that corrects it.
type Myth struct {
	ID          int    `json:"id,omitempty"`
	Myth        string `json:"myth"`
	Fact        string `json:"fact"`
	Explanation string `json:"explanation"`
}

// MythSet is a batch of myth cards.
type MythSet struct {
	Myths []Myth `json:"myths"`
}

func randomIndex(n int) int {
	return rand.IntN(n)
}

var mythTopics = []struct {
	name  string
	focus string
}{
	{"WEIGHT LOSS", "meal timing, specific foods, exercise or metabolism, avoiding the usual myths about carbs, water and fat"},
	{"SUPPLEMENTS and VITAMINS", "specific supplements, vitamin requirements or supplement effectiveness"},
	{"FOOD TIMING and MEAL PATTERNS", "when to eat, meal frequency, fasting or eating windows"},
	{"SPECIFIC FOODS and SUPERFOODS", "particular foods, superfood claims or food combinations"},
	{"METABOLISM and BODY PROCESSES", "how the body processes food, metabolic rate or digestion"},
}

func mythsPrompt(topic, focus, timestamp string) string {
	return fmt.Sprintf(`Generate 4 unique nutrition myths about %s. Focus on %s. Use this JSON format:
{
  "myths": [
    {"id": 1, "myth": "Myth: ...", "fact": "Fact: ...", "explanation": "explanation with scientific backing"}
  ]
}
Current timestamp: %s
Be creative, avoid the most common myths and return only JSON.`, topic, focus, timestamp)
}

const randomMythPrompt = `Generate 1 nutrition myth with its fact as JSON:
{"myth": "Myth: ...", "fact": "Fact: ...", "explanation": "brief explanation with scientific backing"}
Make it educational and surprising. Return only JSON.`

var (
	unparsedMyths = MythSet{Myths: []Myth{
		{1, "Myth: Carbs make you gain weight", "Fact: Excess calories, not carbs themselves, lead to weight gain", "Carbohydrates are an essential macronutrient that provides energy for your body. Weight gain occurs when you consume more calories than you burn, regardless of the source."},
		{2, "Myth: You need to drink 8 glasses of water daily", "Fact: Water needs vary based on individual factors", "Your hydration needs depend on your activity level, climate, overall health, and body size. Listen to your body and drink when thirsty."},
		{3, "Myth: Eating fat makes you fat", "Fact: Healthy fats are essential for optimal health", "Healthy fats like those found in avocados, nuts, and olive oil are crucial for hormone production, nutrient absorption, and brain function. Weight gain comes from consuming more calories than you burn."},
		{4, "Myth: Skipping meals helps you lose weight faster", "Fact: Regular meals support healthy metabolism", "Skipping meals can slow your metabolism and lead to overeating later. Consistent, balanced meals help maintain stable blood sugar and energy levels."},
	}}
	unavailableMyths = MythSet{Myths: []Myth{
		{1, "Myth: All calories are equal", "Fact: The source of calories matters for health", "While calories determine weight change, the source affects metabolism, hunger, and overall health. 100 calories from vegetables impact your body differently than 100 calories from candy."},
		{2, "Myth: Detox diets cleanse your body", "Fact: Your liver and kidneys naturally detoxify your body", "Your body has built-in detoxification systems that work continuously. Most detox diets are unnecessary and can be harmful, lacking scientific evidence for their claimed benefits."},
		{3, "Myth: Supplements can replace a balanced diet", "Fact: Whole foods provide nutrients in optimal forms", "While supplements can help with deficiencies, whole foods provide nutrients in bioavailable forms with cofactors that enhance absorption. A varied diet is the best foundation for nutrition."},
		{4, "Myth: You must avoid all processed foods", "Fact: Not all processed foods are unhealthy", "Processing ranges from minimal (like frozen vegetables) to highly processed (like chips). Focus on limiting ultra-processed foods while including minimally processed options in a balanced diet."},
	}}
	unparsedMyth = Myth{
		Myth:        "Myth: Eating late at night causes weight gain",
		Fact:        "Fact: Total daily calories matter more than timing",
		Explanation: "Weight gain occurs when you consume more calories than you burn over time, regardless of when you eat. However, late-night eating may lead to poor food choices.",
	}
	unavailableMyth = Myth{
		Myth:        "Myth: Brown bread is always healthier than white bread",
		Fact:        "Fact: Not all brown bread is whole grain",
		Explanation: "Some brown bread is just white bread with coloring. Look for 'whole grain' or 'whole wheat' as the first ingredient to ensure you're getting the fiber and nutrients.",
	}
)

// GenerateMyths returns myth cards on a randomly chosen topic.
func (s *Service) GenerateMyths(ctx context.Context) MythSet {
	topic := mythTopics[s.pick(len(mythTopics))]
	prompt := mythsPrompt(topic.name, topic.focus, s.now().Format("2006-01-02 15:04:05"))

	raw, err := s.generate(ctx, prompt, 0.9)
	if err != nil {
		fallback("myths", err)
		return unavailableMyths
	}
	var set MythSet
	if err := decodeInto(raw, &set, "myths"); err != nil {
		fallback("myths", err)
		return unparsedMyths
	}
	if len(set.Myths) == 0 {
		fallback("myths", errors.New("no myths generated"))
		return unparsedMyths
	}
	for _, m := range set.Myths {
		if m.ID == 0 || m.Myth == "" || m.Fact == "" || m.Explanation == "" {
			fallback("myths", errors.New("myth is missing required fields"))
			return unparsedMyths
		}
	}
	return set
}

// RandomMyth returns a single generated myth.
func (s *Service) RandomMyth(ctx context.Context) Myth {
	raw, err := s.generate(ctx, randomMythPrompt, 0.9)
	if err != nil {
		fallback("myth", err)
		return unavailableMyth
	}
	var m Myth
	if err := decodeInto(raw, &m, "myth", "fact", "explanation"); err != nil {
		fallback("myth", err)
		return unparsedMyth
	}
	return m
}
