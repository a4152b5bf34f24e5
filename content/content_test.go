package content

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/raushankrgupta/nutriwise/models"
)

// scriptedGenerator replays canned answers in order.
type scriptedGenerator struct {
	mu      sync.Mutex
	answers []string
	errs    []error
	prompts []string
	temps   []float32
}

func (g *scriptedGenerator) GenerateText(_ context.Context, prompt string, temperature float32) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	i := len(g.prompts)
	g.prompts = append(g.prompts, prompt)
	g.temps = append(g.temps, temperature)
	if i < len(g.errs) && g.errs[i] != nil {
		return "", g.errs[i]
	}
	if i < len(g.answers) {
		return g.answers[i], nil
	}
	return "", errors.New("no more answers")
}

func newTestService(gen TextGenerator, archive *PlanArchive) *Service {
	svc := NewService(gen, time.Second, archive)
	svc.now = func() time.Time { return time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC) }
	svc.pick = func(int) int { return 0 }
	return svc
}

func TestCleanJSON(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"truncated", `{"a":{"b":1},"c":{"d":`, `{"a":{"b":1}`},
		{"balanced", `{"a":{"b":1}}`, `{"a":{"b":1}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := CleanJSON(tc.in); got != tc.want {
				t.Fatalf("CleanJSON(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestComputeEnergyNeeds(t *testing.T) {
	t.Parallel()

	female := ComputeEnergyNeeds(DefaultDietPlanRequest())
	// 447.593 + 9.247*70 + 3.098*170 - 4.330*25 = 1513.293; *1.55 = 2345.6
	if female.MaintenanceCalories != 2345 || female.DailyCalories != 1845 {
		t.Fatalf("female needs = %+v", female)
	}
	if female.BMI != 24.2 {
		t.Fatalf("BMI = %v, want 24.2", female.BMI)
	}

	req := DefaultDietPlanRequest()
	req.Gender = "Male"
	req.ActivityLevel = "sedentary"
	req.PrimaryGoal = GoalWeightGain
	male := ComputeEnergyNeeds(req)
	// 88.362 + 13.397*70 + 4.799*170 - 5.677*25 = 1700.057; *1.2 = 2040.07
	if male.MaintenanceCalories != 2040 || male.DailyCalories != 2540 {
		t.Fatalf("male needs = %+v", male)
	}

	req.ActivityLevel = "unknown"
	req.PrimaryGoal = GoalMaintenance
	if got := ComputeEnergyNeeds(req); got.DailyCalories != int(got.BMR*1.55) {
		t.Fatalf("unknown activity should use the moderate multiplier, got %+v", got)
	}
}

const threeDayPlan = "```json\n" + `{
  "plan_summary": {"daily_calories": 1845},
  "weekly_plan": [
    {"day": 1, "day_name": "Monday", "meals": {}},
    {"day": 2, "day_name": "Tuesday", "meals": {}},
    {"day": 3, "day_name": "Wednesday", "meals": {}, "daily_tips": "walk"}
  ],
  "shopping_list": {},
  "nutrition_tips": [],
  "meal_prep_suggestions": []
}` + "\n```"

func TestGenerateDietPlanPadsWeek(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{answers: []string{threeDayPlan}}
	svc := newTestService(gen, nil)

	plan := svc.GenerateDietPlan(context.Background(), &models.User{Email: "asha@example.com"}, DefaultDietPlanRequest())

	week := plan["weekly_plan"].([]any)
	if len(week) != 7 {
		t.Fatalf("weekly plan has %d days, want 7", len(week))
	}
	sunday := week[6].(map[string]any)
	if sunday["day"] != 7 || sunday["day_name"] != "Sunday" || sunday["daily_tips"] != "walk" {
		t.Fatalf("padded day = %v", sunday)
	}
	if week[2].(map[string]any)["day_name"] != "Wednesday" {
		t.Fatalf("original day modified: %v", week[2])
	}
	info := plan["user_info"].(map[string]any)
	if info["email"] != "asha@example.com" || info["goal"] != GoalWeightLoss || info["bmi"] != 24.2 {
		t.Fatalf("user_info = %v", info)
	}
	if gen.temps[0] != 0.7 {
		t.Fatalf("temperature = %v", gen.temps[0])
	}
}

func TestGenerateDietPlanRetriesOnce(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{answers: []string{"not json at all", threeDayPlan}}
	svc := newTestService(gen, nil)

	plan := svc.GenerateDietPlan(context.Background(), &models.User{}, DefaultDietPlanRequest())
	if len(gen.prompts) != 2 {
		t.Fatalf("expected one retry, got %d calls", len(gen.prompts))
	}
	if gen.temps[1] <= gen.temps[0] {
		t.Fatalf("retry should use a higher temperature: %v", gen.temps)
	}
	if _, ok := plan["user_info"]; !ok {
		t.Fatalf("retried plan should carry user_info")
	}
}

func TestGenerateDietPlanFallbacks(t *testing.T) {
	t.Parallel()

	// both answers unusable: canned plan for the computed calories
	gen := &scriptedGenerator{answers: []string{`{"plan_summary": {}}`, `{"weekly_plan": []}`}}
	plan := newTestService(gen, nil).GenerateDietPlan(context.Background(), &models.User{}, DefaultDietPlanRequest())
	if got := plan["plan_summary"].(map[string]any)["daily_calories"]; got != 1845 {
		t.Fatalf("daily_calories = %v, want 1845", got)
	}

	// transport failure: default canned plan, no retry
	gen = &scriptedGenerator{errs: []error{errors.New("connection reset")}}
	plan = newTestService(gen, nil).GenerateDietPlan(context.Background(), &models.User{}, DefaultDietPlanRequest())
	if got := plan["plan_summary"].(map[string]any)["daily_calories"]; got != 1500 {
		t.Fatalf("daily_calories = %v, want 1500", got)
	}
	if len(gen.prompts) != 1 {
		t.Fatalf("transport failure should not retry, got %d calls", len(gen.prompts))
	}

	// no generator configured
	plan = newTestService(nil, nil).GenerateDietPlan(context.Background(), &models.User{}, DefaultDietPlanRequest())
	if _, ok := plan["weekly_plan"]; !ok {
		t.Fatalf("fallback plan missing weekly_plan")
	}
}

type memObjects struct {
	mu   sync.Mutex
	objs map[string]string
}

func (m *memObjects) Upload(_ context.Context, body io.Reader, key, _ string) (string, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objs[key] = string(b)
	return key, nil
}

func (m *memObjects) PresignedURL(_ context.Context, key string) (string, error) {
	return "https://signed.example/" + key, nil
}

type memIndex struct {
	plans []models.SavedDietPlan
}

func (m *memIndex) Create(_ context.Context, p *models.SavedDietPlan) error {
	m.plans = append([]models.SavedDietPlan{*p}, m.plans...)
	return nil
}

func (m *memIndex) ListByUser(_ context.Context, userID int64, limit int) ([]models.SavedDietPlan, error) {
	var out []models.SavedDietPlan
	for _, p := range m.plans {
		if p.UserID == userID && len(out) < limit {
			out = append(out, p)
		}
	}
	return out, nil
}

func TestDietPlanArchive(t *testing.T) {
	t.Parallel()

	objects := &memObjects{objs: map[string]string{}}
	index := &memIndex{}
	gen := &scriptedGenerator{answers: []string{threeDayPlan}}
	svc := newTestService(gen, NewPlanArchive(objects, index))
	user := &models.User{UserID: 42, Email: "asha@example.com"}

	svc.GenerateDietPlan(context.Background(), user, DefaultDietPlanRequest())

	if len(index.plans) != 1 {
		t.Fatalf("expected 1 archived plan, got %d", len(index.plans))
	}
	saved := index.plans[0]
	if saved.Fallback || saved.DailyCalories != 1845 || !strings.HasPrefix(saved.ObjectKey, "diet-plans/42/") {
		t.Fatalf("saved plan = %+v", saved)
	}
	if !strings.Contains(objects.objs[saved.ObjectKey], `"user_info"`) {
		t.Fatalf("archived document missing user_info")
	}

	plans, err := svc.UserPlans(context.Background(), user)
	if err != nil {
		t.Fatalf("UserPlans: %v", err)
	}
	if len(plans) != 1 || plans[0].DownloadURL != "https://signed.example/"+saved.ObjectKey {
		t.Fatalf("plans = %+v", plans)
	}

	other, _ := svc.UserPlans(context.Background(), &models.User{UserID: 7})
	if other == nil || len(other) != 0 {
		t.Fatalf("expected empty list for another user, got %v", other)
	}
}

func TestTipOfTheDay(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{answers: []string{`{"title":"Walk","tip":"Walk 20 minutes","category":"Exercise","difficulty":"Easy","benefits":"Heart health"}`}}
	if tip := newTestService(gen, nil).TipOfTheDay(context.Background()); tip.Title != "Walk" {
		t.Fatalf("tip = %+v", tip)
	}

	gen = &scriptedGenerator{answers: []string{`{"title":"Walk"}`}}
	if tip := newTestService(gen, nil).TipOfTheDay(context.Background()); tip.Title != "Stay Hydrated Throughout the Day" {
		t.Fatalf("parse fallback = %+v", tip)
	}

	gen = &scriptedGenerator{errs: []error{errors.New("timeout")}}
	if tip := newTestService(gen, nil).TipOfTheDay(context.Background()); tip.Title != "Eat the Rainbow" {
		t.Fatalf("transport fallback = %+v", tip)
	}
}

func TestGenerateQuestionRequiresFourOptions(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{answers: []string{`{"question":"Q?","options":["a","b","c"],"correct_answer":0,"explanation":"e"}`}}
	q := newTestService(gen, nil).GenerateQuestion(context.Background())
	if q.CorrectAnswer != 1 || q.Options[1] != "Protein" {
		t.Fatalf("expected parse fallback, got %+v", q)
	}

	gen = &scriptedGenerator{answers: []string{`{"question":"Q?","options":["a","b","c","d"],"correct_answer":3,"explanation":"e"}`}}
	q = newTestService(gen, nil).GenerateQuestion(context.Background())
	if q.Question != "Q?" || q.CorrectAnswer != 3 {
		t.Fatalf("question = %+v", q)
	}

	q = newTestService(nil, nil).GenerateQuestion(context.Background())
	if q.CorrectAnswer != 2 {
		t.Fatalf("expected transport fallback, got %+v", q)
	}
}

func TestSubmitAnswer(t *testing.T) {
	t.Parallel()

	one, two := 1, 2
	if r := SubmitAnswer(AnswerRequest{UserAnswer: &one, CorrectAnswer: &one}); !r.IsCorrect || r.Message != "Correct! Great job!" {
		t.Fatalf("result = %+v", r)
	}
	if r := SubmitAnswer(AnswerRequest{UserAnswer: &one, CorrectAnswer: &two}); r.IsCorrect {
		t.Fatalf("result = %+v", r)
	}
}

func TestGenerateMyths(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{answers: []string{`{"myths":[{"id":1,"myth":"Myth: m","fact":"Fact: f","explanation":"x"}]}`}}
	set := newTestService(gen, nil).GenerateMyths(context.Background())
	if len(set.Myths) != 1 || set.Myths[0].Fact != "Fact: f" {
		t.Fatalf("myths = %+v", set)
	}
	if !strings.Contains(gen.prompts[0], "WEIGHT LOSS") || gen.temps[0] != 0.9 {
		t.Fatalf("prompt should use the picked topic: %q", gen.prompts[0])
	}

	gen = &scriptedGenerator{answers: []string{`{"myths":[{"id":1,"myth":"Myth: m"}]}`}}
	set = newTestService(gen, nil).GenerateMyths(context.Background())
	if len(set.Myths) != 4 || set.Myths[0].Myth != "Myth: Carbs make you gain weight" {
		t.Fatalf("expected parse fallback, got %+v", set)
	}

	set = newTestService(nil, nil).GenerateMyths(context.Background())
	if set.Myths[0].Myth != "Myth: All calories are equal" {
		t.Fatalf("expected transport fallback, got %+v", set)
	}
}

func TestRandomMyth(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{answers: []string{"garbage"}}
	if m := newTestService(gen, nil).RandomMyth(context.Background()); !strings.Contains(m.Myth, "late at night") {
		t.Fatalf("myth = %+v", m)
	}
	if m := newTestService(nil, nil).RandomMyth(context.Background()); !strings.Contains(m.Myth, "Brown bread") {
		t.Fatalf("myth = %+v", m)
	}
}

func TestNutritionAdvice(t *testing.T) {
	t.Parallel()

	gen := &scriptedGenerator{answers: []string{"NutriBot: Eat more fiber."}}
	resp := newTestService(gen, nil).NutritionAdvice(context.Background(), ChatRequest{Message: "How do I feel full?"})
	if resp.Response != "Eat more fiber." || resp.Context != "nutrition_diet_health" {
		t.Fatalf("response = %+v", resp)
	}
	if !strings.Contains(gen.prompts[0], "How do I feel full?") {
		t.Fatalf("prompt missing the question")
	}

	resp = newTestService(nil, nil).NutritionAdvice(context.Background(), ChatRequest{Message: "hi", Context: "sports"})
	if resp.Response != chatFallback || resp.Context != "sports" {
		t.Fatalf("fallback response = %+v", resp)
	}
}
