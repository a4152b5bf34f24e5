package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/raushankrgupta/nutriwise/models"
	"github.com/raushankrgupta/nutriwise/tracking"
	"github.com/raushankrgupta/nutriwise/utils"
	"github.com/rs/zerolog/log"
)

const (
	GoalWeightLoss    = "weight_loss"
	GoalWeightGain    = "weight_gain"
	GoalMaintenance   = "maintenance"
	calorieAdjustment = 500
	minPlanDays       = 3
	planDays          = 7
)

var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

var dayNames = [planDays]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var requiredPlanFields = []string{"plan_summary", "weekly_plan", "shopping_list", "nutrition_tips", "meal_prep_suggestions"}

// DietPlanRequest describes the person a plan is generated for.
type DietPlanRequest struct {
	Age                int      `json:"age" validate:"gt=0,lte=120"`
	Gender             string   `json:"gender"`
	Weight             float64  `json:"weight" validate:"gt=0,lte=500"`
	Height             float64  `json:"height" validate:"gt=0,lte=300"`
	ActivityLevel      string   `json:"activityLevel"`
	PrimaryGoal        string   `json:"primaryGoal"`
	TargetWeight       float64  `json:"targetWeight" validate:"gte=0,lte=500"`
	DietaryPreferences []string `json:"dietaryPreferences"`
	Allergies          []string `json:"allergies"`
	HealthConditions   []string `json:"healthConditions"`
}

// DefaultDietPlanRequest is the request the generate endpoint decodes into,
// so omitted fields keep these values.
func DefaultDietPlanRequest() DietPlanRequest {
	return DietPlanRequest{
		Age:           25,
		Gender:        "female",
		Weight:        70,
		Height:        170,
		ActivityLevel: "moderate",
		PrimaryGoal:   GoalWeightLoss,
		TargetWeight:  65,
	}
}

// EnergyNeeds is the calorie target derived from a request.
type EnergyNeeds struct {
	BMI                 float64
	BMR                 float64
	MaintenanceCalories int
	DailyCalories       int
}

// ComputeEnergyNeeds applies the Harris-Benedict equation and the activity
// multiplier, then shifts the target by 500 kcal for weight loss or gain.
func ComputeEnergyNeeds(req DietPlanRequest) EnergyNeeds {
	var bmr float64
	if strings.EqualFold(req.Gender, "male") {
		bmr = 88.362 + 13.397*req.Weight + 4.799*req.Height - 5.677*float64(req.Age)
	} else {
		bmr = 447.593 + 9.247*req.Weight + 3.098*req.Height - 4.330*float64(req.Age)
	}

	multiplier, ok := activityMultipliers[req.ActivityLevel]
	if !ok {
		multiplier = activityMultipliers["moderate"]
	}
	maintenance := int(bmr * multiplier)

	daily := maintenance
	switch req.PrimaryGoal {
	case GoalWeightLoss:
		daily -= calorieAdjustment
	case GoalWeightGain:
		daily += calorieAdjustment
	}

	return EnergyNeeds{
		BMI:                 tracking.CalculateBMI(req.Weight, req.Height),
		BMR:                 bmr,
		MaintenanceCalories: maintenance,
		DailyCalories:       daily,
	}
}

// GenerateDietPlan returns a seven day plan for user. It never fails: a
// transport error yields the default canned plan and an unparseable answer is
// retried once with a simpler prompt before falling back to a canned plan
// sized for the computed calories.
func (s *Service) GenerateDietPlan(ctx context.Context, user *models.User, req DietPlanRequest) map[string]any {
	needs := ComputeEnergyNeeds(req)

	raw, err := s.generate(ctx, detailedPlanPrompt(req, needs), 0.7)
	if err != nil {
		fallback("diet_plan", err)
		plan := FallbackDietPlan(1500, GoalWeightLoss)
		s.archive(ctx, user, plan, needs.BMI, GoalWeightLoss, 1500, true)
		return plan
	}

	plan, err := parseDietPlan(raw)
	if err != nil {
		log.Warn().Err(err).Msg("Diet plan response unusable, retrying with a simpler prompt")
		plan, err = s.retryDietPlan(ctx, req, needs)
	}
	if err != nil {
		fallback("diet_plan", err)
		plan = FallbackDietPlan(needs.DailyCalories, req.PrimaryGoal)
		s.archive(ctx, user, plan, needs.BMI, req.PrimaryGoal, needs.DailyCalories, true)
		return plan
	}

	plan["user_info"] = map[string]any{
		"email":        user.Email,
		"bmi":          tracking.Round(needs.BMI, 1),
		"goal":         req.PrimaryGoal,
		"generated_at": s.now().UTC().Format(time.RFC3339),
	}
	s.archive(ctx, user, plan, needs.BMI, req.PrimaryGoal, needs.DailyCalories, false)
	return plan
}

func (s *Service) retryDietPlan(ctx context.Context, req DietPlanRequest, needs EnergyNeeds) (map[string]any, error) {
	raw, err := s.generate(ctx, simplePlanPrompt(req, needs), 0.8)
	if err != nil {
		return nil, err
	}
	return parseDietPlan(raw)
}

// parseDietPlan validates a model answer and pads its weekly plan to seven days.
func parseDietPlan(raw string) (map[string]any, error) {
	plan, err := decodeObject(raw, requiredPlanFields...)
	if err != nil {
		return nil, err
	}
	days, ok := plan["weekly_plan"].([]any)
	if !ok || len(days) < minPlanDays {
		return nil, fmt.Errorf("weekly plan must have at least %d days", minPlanDays)
	}
	plan["weekly_plan"] = padWeek(days)
	return plan, nil
}

// padWeek repeats the last day until the week is complete.
func padWeek(days []any) []any {
	for len(days) < planDays {
		last, ok := days[len(days)-1].(map[string]any)
		if !ok {
			break
		}
		next := make(map[string]any, len(last))
		for k, v := range last {
			next[k] = v
		}
		next["day"] = len(days) + 1
		next["day_name"] = dayNames[len(days)]
		days = append(days, next)
	}
	return days
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}

const planSchema = `{
  "plan_summary": {"daily_calories": %d, "protein_grams": 120, "carbs_grams": 200, "fat_grams": 65, "fiber_grams": 25, "water_glasses": 8},
  "weekly_plan": [
    {
      "day": 1,
      "day_name": "Monday",
      "meals": {
        "breakfast": {"name": "", "ingredients": [], "calories": 350, "protein": 20, "carbs": 40, "fat": 12, "preparation_time": "15 min", "instructions": ""},
        "morning_snack": {"name": "", "ingredients": [], "calories": 150, "protein": 8, "carbs": 20, "fat": 5, "preparation_time": "5 min", "instructions": ""},
        "lunch": {"name": "", "ingredients": [], "calories": 450, "protein": 25, "carbs": 50, "fat": 18, "preparation_time": "25 min", "instructions": ""},
        "afternoon_snack": {"name": "", "ingredients": [], "calories": 120, "protein": 6, "carbs": 15, "fat": 4, "preparation_time": "5 min", "instructions": ""},
        "dinner": {"name": "", "ingredients": [], "calories": 400, "protein": 30, "carbs": 35, "fat": 15, "preparation_time": "30 min", "instructions": ""}
      },
      "total_calories": 1470,
      "daily_tips": ""
    }
  ],
  "shopping_list": {"proteins": [], "vegetables": [], "fruits": [], "grains": [], "dairy": [], "others": []},
  "nutrition_tips": [],
  "meal_prep_suggestions": []
}`

func detailedPlanPrompt(req DietPlanRequest, needs EnergyNeeds) string {
	var b strings.Builder
	b.WriteString("You are a professional nutritionist and chef. Create a personalized 7-day diet plan in JSON for this person:\n")
	fmt.Fprintf(&b, "- Age: %d, Gender: %s\n", req.Age, req.Gender)
	fmt.Fprintf(&b, "- Weight: %gkg, Height: %gcm, BMI: %.1f\n", req.Weight, req.Height, needs.BMI)
	fmt.Fprintf(&b, "- Activity level: %s\n", req.ActivityLevel)
	fmt.Fprintf(&b, "- Goal: %s, target weight %gkg\n", req.PrimaryGoal, req.TargetWeight)
	fmt.Fprintf(&b, "- Daily calories: %d\n", needs.DailyCalories)
	fmt.Fprintf(&b, "- Dietary preferences: %s\n", listOrNone(req.DietaryPreferences))
	fmt.Fprintf(&b, "- Allergies: %s\n", listOrNone(req.Allergies))
	fmt.Fprintf(&b, "- Health conditions: %s\n\n", listOrNone(req.HealthConditions))
	b.WriteString("Use exactly this structure, filling every empty value:\n")
	fmt.Fprintf(&b, planSchema, needs.DailyCalories)
	b.WriteString("\n\nGive every day different, descriptively named meals drawn from varied cuisines. ")
	b.WriteString("Respect the preferences and allergies, balance the macronutrients, keep portions realistic ")
	b.WriteString("and make the shopping list specific with quantities. Return only the JSON object.")
	return b.String()
}

func simplePlanPrompt(req DietPlanRequest, needs EnergyNeeds) string {
	var b strings.Builder
	b.WriteString("Create a simple 7-day diet plan in JSON.\n")
	fmt.Fprintf(&b, "Age: %d, Gender: %s, Calories: %d, Goal: %s\n", req.Age, req.Gender, needs.DailyCalories, req.PrimaryGoal)
	fmt.Fprintf(&b, "Dietary preferences: %s\nAllergies: %s\n\n", listOrNone(req.DietaryPreferences), listOrNone(req.Allergies))
	b.WriteString("Return a JSON object with exactly this structure:\n")
	fmt.Fprintf(&b, planSchema, needs.DailyCalories)
	b.WriteString("\n\nCreate 7 days with different meals each day.")
	return b.String()
}

// FallbackDietPlan is the canned one-day plan served when generation fails.
func FallbackDietPlan(calories int, goal string) map[string]any {
	meal := func(name string, ingredients []string, kcal, protein, carbs, fat int, prep, instructions string) map[string]any {
		return map[string]any{
			"name":             name,
			"ingredients":      ingredients,
			"calories":         kcal,
			"protein":          protein,
			"carbs":            carbs,
			"fat":              fat,
			"preparation_time": prep,
			"instructions":     instructions,
		}
	}
	return map[string]any{
		"plan_summary": map[string]any{
			"daily_calories": calories,
			"protein_grams":  120,
			"carbs_grams":    180,
			"fat_grams":      60,
			"fiber_grams":    25,
			"water_glasses":  8,
			"goal":           goal,
		},
		"weekly_plan": []any{
			map[string]any{
				"day":      1,
				"day_name": "Monday",
				"meals": map[string]any{
					"breakfast":       meal("Greek Yogurt Bowl", []string{"Greek yogurt", "berries", "granola", "honey"}, 350, 20, 45, 12, "5 min", "Mix Greek yogurt with berries and top with granola and honey"),
					"morning_snack":   meal("Apple with Almonds", []string{"apple", "almonds"}, 150, 6, 20, 8, "2 min", "Slice apple and serve with a handful of almonds"),
					"lunch":           meal("Grilled Chicken Salad", []string{"chicken breast", "mixed greens", "tomatoes", "cucumber", "olive oil"}, 400, 35, 15, 20, "20 min", "Grill chicken, serve over mixed greens with vegetables and olive oil dressing"),
					"afternoon_snack": meal("Hummus with Veggies", []string{"hummus", "carrots", "bell peppers"}, 120, 5, 12, 6, "3 min", "Cut vegetables and serve with hummus"),
					"dinner":          meal("Baked Salmon with Quinoa", []string{"salmon fillet", "quinoa", "broccoli", "lemon"}, 450, 35, 35, 18, "30 min", "Bake salmon at 200°C for 15 min, serve with cooked quinoa and steamed broccoli"),
				},
				"total_calories": 1470,
				"daily_tips":     "Start your day with protein to boost metabolism and maintain energy levels",
			},
		},
		"shopping_list": map[string]any{
			"proteins":   []string{"Greek yogurt", "chicken breast", "salmon", "almonds"},
			"vegetables": []string{"mixed greens", "tomatoes", "cucumber", "carrots", "bell peppers", "broccoli"},
			"fruits":     []string{"berries", "apple", "lemon"},
			"grains":     []string{"granola", "quinoa"},
			"others":     []string{"honey", "olive oil", "hummus"},
		},
		"nutrition_tips": []string{
			"Drink water before meals to help with portion control",
			"Include a source of protein at each meal",
			"Aim for 5-7 servings of vegetables daily",
		},
		"meal_prep_suggestions": []string{
			"Cook quinoa in batches for the week",
			"Pre-cut vegetables for easy snacking",
			"Marinate proteins the night before cooking",
		},
	}
}

// ObjectStore holds archived plan documents.
type ObjectStore interface {
	utils.ImageUploader
	utils.Presigner
}

// PlanIndex records archived plans per user.
type PlanIndex interface {
	Create(ctx context.Context, p *models.SavedDietPlan) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]models.SavedDietPlan, error)
}

// PlanArchive keeps generated plans: the JSON document in object storage and
// a summary record in the index. objects may be nil, then only the summary is kept.
type PlanArchive struct {
	objects ObjectStore
	index   PlanIndex
}

func NewPlanArchive(objects ObjectStore, index PlanIndex) *PlanArchive {
	return &PlanArchive{objects: objects, index: index}
}

const userPlansLimit = 20

func (s *Service) archive(ctx context.Context, user *models.User, plan map[string]any, bmi float64, goal string, calories int, isFallback bool) {
	if s.plans == nil {
		return
	}
	record := &models.SavedDietPlan{
		UserID:        user.UserID,
		Goal:          goal,
		DailyCalories: calories,
		BMI:           tracking.Round(bmi, 1),
		Fallback:      isFallback,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.plans.save(ctx, record, plan); err != nil {
		log.Error().Err(err).Int64("user_id", user.UserID).Msg("Failed to archive diet plan")
	}
}

func (a *PlanArchive) save(ctx context.Context, record *models.SavedDietPlan, plan map[string]any) error {
	if a.objects != nil {
		body, err := json.Marshal(plan)
		if err != nil {
			return fmt.Errorf("failed to encode diet plan: %w", err)
		}
		key := fmt.Sprintf("diet-plans/%d/%s.json", record.UserID, uuid.NewString())
		if _, err := a.objects.Upload(ctx, bytes.NewReader(body), key, "application/json"); err != nil {
			return err
		}
		record.ObjectKey = key
	}
	return a.index.Create(ctx, record)
}

// UserPlans lists the user's archived plans, newest first, with download links.
func (s *Service) UserPlans(ctx context.Context, user *models.User) ([]models.SavedDietPlan, error) {
	if s.plans == nil {
		return []models.SavedDietPlan{}, nil
	}
	plans, err := s.plans.index.ListByUser(ctx, user.UserID, userPlansLimit)
	if err != nil {
		return nil, models.Internal("Error fetching diet plans", err)
	}
	if plans == nil {
		plans = []models.SavedDietPlan{}
	}
	for i := range plans {
		if plans[i].ObjectKey == "" || s.plans.objects == nil {
			continue
		}
		url, err := s.plans.objects.PresignedURL(ctx, plans[i].ObjectKey)
		if err != nil {
			log.Warn().Err(err).Str("object_key", plans[i].ObjectKey).Msg("Failed to sign diet plan URL")
			continue
		}
		plans[i].DownloadURL = url
	}
	return plans, nil
}
