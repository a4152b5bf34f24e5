package tracking

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/raushankrgupta/nutriwise/models"
)

func intPtr(v int) *int { return &v }

func day(date string, completed int, water *int, exercises ...models.ExerciseEntry) models.DailyGoalTracking {
	d := models.DailyGoalTracking{TrackingDate: date, Meals: models.DefaultMeals(), Exercises: exercises}
	for i := 0; i < completed; i++ {
		d.Meals[i].Completed = true
	}
	if water != nil {
		d.WaterIntake = &models.WaterIntakeEntry{Glasses: *water, Goal: 8}
	}
	return d
}

func TestBuildAnalytics(t *testing.T) {
	t.Parallel()

	days := []models.DailyGoalTracking{
		day("2024-03-01", 4, intPtr(8),
			models.ExerciseEntry{ExerciseName: "run", DurationMinutes: 30, CaloriesBurned: intPtr(300), ExerciseType: "cardio"},
			models.ExerciseEntry{ExerciseName: "stretch", DurationMinutes: 10}),
		day("2024-03-02", 1, nil),
		day("2024-03-03", 2, intPtr(5),
			models.ExerciseEntry{ExerciseName: "lift", DurationMinutes: 45, CaloriesBurned: intPtr(200), ExerciseType: "strength"}),
	}

	got := BuildAnalytics(days, WeightAnalytics{})
	if got.TotalCaloriesBurned != 500 || got.ExerciseSummary.TotalMinutes != 85 {
		t.Fatalf("unexpected exercise totals: %+v", got.ExerciseSummary)
	}
	if got.ActiveDays != 2 {
		t.Fatalf("active days = %d, want 2", got.ActiveDays)
	}
	if got.ExerciseSummary.ByType["other"] != 10 || got.ExerciseSummary.ByType["cardio"] != 30 {
		t.Fatalf("unexpected by_type: %v", got.ExerciseSummary.ByType)
	}
	// water averaged over the two days that logged it
	if got.WaterIntakeAverage != 6.5 {
		t.Fatalf("water average = %v, want 6.5", got.WaterIntakeAverage)
	}
	// mean of 100%, 25%, 50%
	if got.MealCompletionRate != 58.3 {
		t.Fatalf("meal completion = %v, want 58.3", got.MealCompletionRate)
	}
}

func TestBuildWeeklySummaryEmpty(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	got := BuildWeeklySummary(start, nil)
	if got.WeekStart != "2024-03-04" || got.WeekEnd != "2024-03-10" {
		t.Fatalf("unexpected window %s..%s", got.WeekStart, got.WeekEnd)
	}
	if got.Summary != (WeeklyTotals{}) {
		t.Fatalf("expected zero totals, got %+v", got.Summary)
	}
	raw, _ := json.Marshal(got)
	if !strings.Contains(string(raw), `"daily_summaries":[]`) {
		t.Fatalf("expected empty daily_summaries array, got %s", raw)
	}
}

func TestBuildWeeklySummaryGlobalMealRatio(t *testing.T) {
	t.Parallel()

	first := day("2024-03-04", 4, intPtr(7))
	second := day("2024-03-05", 0, intPtr(7))
	second.Meals = second.Meals[:2] // a day with only two slots weighs less in the global ratio

	got := BuildWeeklySummary(time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), []models.DailyGoalTracking{first, second})
	if got.Summary.MealCompletionRate != 66.7 {
		t.Fatalf("meal completion = %v, want 66.7", got.Summary.MealCompletionRate)
	}
	if got.Summary.AverageDailyWater != 2 {
		t.Fatalf("average daily water = %v, want 2 (14 glasses / 7)", got.Summary.AverageDailyWater)
	}
	if got.Summary.DaysTracked != 2 || len(got.DailySummaries) != 2 {
		t.Fatalf("unexpected days tracked %+v", got.Summary)
	}
}

func TestWeekStart(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"2024-03-04": "2024-03-04", // Monday
		"2024-03-06": "2024-03-04",
		"2024-03-10": "2024-03-04", // Sunday
	}
	for in, want := range tests {
		d, _ := time.Parse(models.DateLayout, in)
		if got := WeekStart(d).Format(models.DateLayout); got != want {
			t.Errorf("WeekStart(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestBuildWeightAnalyticsEmpty(t *testing.T) {
	t.Parallel()

	got := BuildWeightAnalytics(nil, 90)
	raw, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"highest_weight":{}`, `"lowest_weight":{}`, `"bmi_trend":null`, `"weight_loss_periods":[]`, `"trend":"stable"`, `"entries":[]`} {
		if !strings.Contains(string(raw), want) {
			t.Errorf("expected %s in %s", want, raw)
		}
	}
}

func TestBuildWeightHistorySkipsDaysWithoutWeight(t *testing.T) {
	t.Parallel()

	days := []models.DailyGoalTracking{
		{TrackingDate: "2024-03-01", WeightEntry: &models.WeightEntry{Weight: 82}},
		{TrackingDate: "2024-03-02"},
		{TrackingDate: "2024-03-08", WeightEntry: &models.WeightEntry{Weight: 80.5}},
	}
	got := BuildWeightHistory(days, 7)
	if len(got.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(got.Entries))
	}
	if got.Trend != TrendDecreasing || got.TotalChange != -1.5 || got.AverageWeeklyChange != -1.5 {
		t.Fatalf("unexpected trend %+v", got.TrendSummary)
	}
}
