package tracking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/raushankrgupta/nutriwise/models"
)

type fixedClock struct{ t time.Time }

func (c *fixedClock) now() time.Time { return c.t }

func newTestService(at time.Time) (*Service, *memDays, *memLogs, *fixedClock) {
	days, logs := newMemDays(), &memLogs{}
	clock := &fixedClock{t: at}
	return NewService(days, logs).WithClock(clock.now), days, logs, clock
}

func floatPtr(v float64) *float64 { return &v }

var march10 = time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)

func TestTodayIsCreatedOnce(t *testing.T) {
	t.Parallel()

	svc, days, _, _ := newTestService(march10)
	ctx := context.Background()

	first, err := svc.Today(ctx, 1)
	if err != nil {
		t.Fatalf("Today: %v", err)
	}
	if _, err := svc.Today(ctx, 1); err != nil {
		t.Fatalf("Today: %v", err)
	}
	if days.creates != 1 {
		t.Fatalf("day created %d times, want 1", days.creates)
	}
	if first.Date != "2024-03-10" || len(first.Meals) != 4 {
		t.Fatalf("unexpected today: %+v", first)
	}
	for i, want := range models.DefaultMealTypes {
		if first.Meals[i].MealType != want || first.Meals[i].Completed {
			t.Fatalf("meal %d = %+v, want incomplete %s", i, first.Meals[i], want)
		}
	}
	if first.LatestWeightLog != nil {
		t.Fatalf("expected no weight log, got %+v", first.LatestWeightLog)
	}
}

func TestUpdateMeal(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestService(march10)
	ctx := context.Background()

	// no document yet for today
	err := svc.UpdateMeal(ctx, 1, MealUpdateRequest{MealType: models.MealLunch, Completed: true})
	if !models.IsNotFound(err) {
		t.Fatalf("expected NotFound before today exists, got %v", err)
	}

	if _, err := svc.Today(ctx, 1); err != nil {
		t.Fatalf("Today: %v", err)
	}
	if err := svc.UpdateMeal(ctx, 1, MealUpdateRequest{MealType: models.MealLunch, Completed: true}); err != nil {
		t.Fatalf("UpdateMeal: %v", err)
	}
	if err := svc.UpdateMeal(ctx, 1, MealUpdateRequest{MealType: "brunch", Completed: true}); !models.IsNotFound(err) {
		t.Fatalf("expected NotFound for unknown slot, got %v", err)
	}

	today, _ := svc.Today(ctx, 1)
	for _, m := range today.Meals {
		wantDone := m.MealType == models.MealLunch
		if m.Completed != wantDone {
			t.Fatalf("meal %s completed = %v, want %v", m.MealType, m.Completed, wantDone)
		}
		if wantDone && (m.CompletedAt == nil || !m.CompletedAt.Equal(march10)) {
			t.Fatalf("completed_at = %v, want %v", m.CompletedAt, march10)
		}
	}
}

func TestAddWeightLogMirrorsSummary(t *testing.T) {
	t.Parallel()

	svc, days, _, clock := newTestService(march10)
	ctx := context.Background()

	entry, err := svc.AddWeightLog(ctx, 1, WeightLogRequest{Weight: 70, Height: floatPtr(175), Notes: "after run"})
	if err != nil {
		t.Fatalf("AddWeightLog: %v", err)
	}
	if entry.BMI == nil || *entry.BMI != 22.9 {
		t.Fatalf("bmi = %v, want 22.9", entry.BMI)
	}
	if entry.MeasurementTime != models.MeasurementMorning {
		t.Fatalf("measurement time = %q, want morning", entry.MeasurementTime)
	}

	clock.t = march10.Add(2 * time.Hour)
	if _, err := svc.AddWeightLog(ctx, 1, WeightLogRequest{Weight: 69.6, MeasurementTime: models.MeasurementEvening}); err != nil {
		t.Fatalf("AddWeightLog: %v", err)
	}

	day, err := days.FindDay(ctx, 1, "2024-03-10")
	if err != nil {
		t.Fatalf("FindDay: %v", err)
	}
	if day.WeightEntry == nil || day.WeightEntry.Weight != 69.6 || day.WeightEntry.BMI != nil {
		t.Fatalf("summary should mirror the latest log, got %+v", day.WeightEntry)
	}

	today, err := svc.Today(ctx, 1)
	if err != nil {
		t.Fatalf("Today: %v", err)
	}
	if today.LatestWeightLog == nil || today.LatestWeightLog.Weight != 69.6 {
		t.Fatalf("latest weight log = %+v, want 69.6", today.LatestWeightLog)
	}
}

func TestAddWeightLogSurvivesSummaryFailure(t *testing.T) {
	t.Parallel()

	svc, days, logs, _ := newTestService(march10)
	days.failSet = errors.New("write conflict")

	if _, err := svc.AddWeightLog(context.Background(), 1, WeightLogRequest{Weight: 80}); err != nil {
		t.Fatalf("expected success when only the summary fails, got %v", err)
	}
	if len(logs.logs) != 1 {
		t.Fatalf("expected the log to be stored, got %d", len(logs.logs))
	}
}

func TestDeleteWeightLogOwnership(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestService(march10)
	ctx := context.Background()

	entry, _ := svc.AddWeightLog(ctx, 1, WeightLogRequest{Weight: 80})
	if err := svc.DeleteWeightLog(ctx, 2, entry.ID.Hex()); !models.IsNotFound(err) {
		t.Fatalf("expected NotFound for another user, got %v", err)
	}
	if err := svc.DeleteWeightLog(ctx, 1, "not-an-id"); !models.IsNotFound(err) {
		t.Fatalf("expected NotFound for malformed id, got %v", err)
	}
	if err := svc.DeleteWeightLog(ctx, 1, entry.ID.Hex()); err != nil {
		t.Fatalf("DeleteWeightLog: %v", err)
	}
	if err := svc.DeleteWeightLog(ctx, 1, entry.ID.Hex()); !models.IsNotFound(err) {
		t.Fatalf("expected NotFound on second delete, got %v", err)
	}
}

func TestWeightAnalyticsWindow(t *testing.T) {
	t.Parallel()

	svc, _, _, clock := newTestService(march10.AddDate(0, 0, -100))
	ctx := context.Background()

	// one stale log outside the 90 day window, then a loss and a rebound
	_, _ = svc.AddWeightLog(ctx, 1, WeightLogRequest{Weight: 95})
	for i, w := range []float64{80, 79, 78, 79, 81} {
		clock.t = march10.AddDate(0, 0, i-5)
		if _, err := svc.AddWeightLog(ctx, 1, WeightLogRequest{Weight: w}); err != nil {
			t.Fatalf("AddWeightLog: %v", err)
		}
	}
	clock.t = march10

	got, err := svc.WeightAnalytics(ctx, 1, 90)
	if err != nil {
		t.Fatalf("WeightAnalytics: %v", err)
	}
	if len(got.Entries) != 5 {
		t.Fatalf("entries = %d, want 5", len(got.Entries))
	}
	if got.Trend != TrendIncreasing || got.TotalChange != 1 {
		t.Fatalf("unexpected trend %+v", got.TrendSummary)
	}
	if len(got.WeightLossPeriods) != 1 || len(got.WeightGainPeriods) != 0 {
		t.Fatalf("periods = %d loss, %d gain; want 1, 0", len(got.WeightLossPeriods), len(got.WeightGainPeriods))
	}
	if got.HighestWeight.Weight != 81 || got.LowestWeight.Weight != 78 {
		t.Fatalf("extremes = %+v / %+v", got.HighestWeight, got.LowestWeight)
	}
	if got.BMITrend != nil {
		t.Fatalf("expected nil bmi trend without heights, got %v", got.BMITrend)
	}
}

func TestAnalyticsUsesTripleWindowForWeight(t *testing.T) {
	t.Parallel()

	svc, _, _, clock := newTestService(march10.AddDate(0, 0, -60))
	ctx := context.Background()
	_, _ = svc.AddWeightLog(ctx, 1, WeightLogRequest{Weight: 84})
	clock.t = march10
	_, _ = svc.AddWeightLog(ctx, 1, WeightLogRequest{Weight: 82})
	_ = svc.AddExercise(ctx, 1, ExerciseRequest{ExerciseName: "swim", DurationMinutes: 40, CaloriesBurned: intPtr(350), ExerciseType: "cardio"})

	got, err := svc.Analytics(ctx, 1, 30)
	if err != nil {
		t.Fatalf("Analytics: %v", err)
	}
	if len(got.WeightTrend.Entries) != 2 || got.WeightTrend.Trend != TrendDecreasing {
		t.Fatalf("weight trend should cover 90 days: %+v", got.WeightTrend)
	}
	if got.TotalCaloriesBurned != 350 || got.ActiveDays != 1 || got.ExerciseSummary.ByType["cardio"] != 40 {
		t.Fatalf("unexpected exercise summary %+v", got.ExerciseSummary)
	}
}

func TestWeeklySummaryDefaultsToMonday(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestService(march10) // Sunday
	got, err := svc.WeeklySummary(context.Background(), 1, "")
	if err != nil {
		t.Fatalf("WeeklySummary: %v", err)
	}
	if got.WeekStart != "2024-03-04" || got.WeekEnd != "2024-03-10" {
		t.Fatalf("window = %s..%s", got.WeekStart, got.WeekEnd)
	}
	if got.Summary.DaysTracked != 0 || len(got.DailySummaries) != 0 {
		t.Fatalf("expected empty week, got %+v", got)
	}

	if _, err := svc.WeeklySummary(context.Background(), 1, "10/03/2024"); models.KindOf(err) != models.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDailySummary(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestService(march10)
	ctx := context.Background()

	if _, err := svc.DailySummary(ctx, 1, "2024-03-09"); !models.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}

	_ = svc.UpdateWater(ctx, 1, WaterIntakeRequest{Glasses: 6})
	_ = svc.UpdateMood(ctx, 1, "2024-03-10", "good")
	_ = svc.UpdateSleep(ctx, 1, "2024-03-10", 7.5)

	got, err := svc.DailySummary(ctx, 1, "2024-03-10")
	if err != nil {
		t.Fatalf("DailySummary: %v", err)
	}
	if got.Summary.WaterGlasses != 6 || got.Summary.Mood != "good" || got.Summary.SleepHours == nil || *got.Summary.SleepHours != 7.5 {
		t.Fatalf("unexpected summary %+v", got.Summary)
	}
	if got.Details.WaterIntake.Goal != 8 {
		t.Fatalf("water goal = %d, want default 8", got.Details.WaterIntake.Goal)
	}
	if got.Summary.TotalMeals != 4 {
		t.Fatalf("upserted day should carry default meals, got %d", got.Summary.TotalMeals)
	}
}

func TestUpdateSleepRange(t *testing.T) {
	t.Parallel()

	svc, _, _, _ := newTestService(march10)
	if err := svc.UpdateSleep(context.Background(), 1, "2024-03-10", 25); models.KindOf(err) != models.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := svc.UpdateMood(context.Background(), 1, "yesterday", "good"); models.KindOf(err) != models.KindValidation {
		t.Fatalf("expected validation error for bad date, got %v", err)
	}
}
