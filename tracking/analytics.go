package tracking

import (
	"time"

	"github.com/raushankrgupta/nutriwise/models"
)

// WeightHistoryEntry is one day of the daily weight summary series.
type WeightHistoryEntry struct {
	Date   string   `json:"date"`
	Weight float64  `json:"weight"`
	BMI    *float64 `json:"bmi"`
	Notes  string   `json:"notes"`
}

// WeightHistory is the trend over the per-day weight summaries.
type WeightHistory struct {
	Entries []WeightHistoryEntry `json:"entries"`
	TrendSummary
}

// BuildWeightHistory reads the weight_entry of each day. days must be ordered by date.
func BuildWeightHistory(days []models.DailyGoalTracking, window int) WeightHistory {
	entries := []WeightHistoryEntry{}
	weights := []float64{}
	for _, d := range days {
		if d.WeightEntry == nil {
			continue
		}
		entries = append(entries, WeightHistoryEntry{
			Date:   d.TrackingDate,
			Weight: d.WeightEntry.Weight,
			BMI:    d.WeightEntry.BMI,
			Notes:  d.WeightEntry.Notes,
		})
		weights = append(weights, d.WeightEntry.Weight)
	}
	return WeightHistory{Entries: entries, TrendSummary: ComputeTrend(weights, window)}
}

// WeightAnalyticsEntry is one weight log in the analytics series.
type WeightAnalyticsEntry struct {
	Date            string   `json:"date"`
	Weight          float64  `json:"weight"`
	BMI             *float64 `json:"bmi"`
	Notes           string   `json:"notes"`
	MeasurementTime string   `json:"measurement_time"`
}

// BMIPoint is one point of the BMI trend.
type BMIPoint struct {
	Date string  `json:"date"`
	BMI  float64 `json:"bmi"`
}

// WeightAnalytics summarizes the weight log stream over a window.
type WeightAnalytics struct {
	Entries []WeightAnalyticsEntry `json:"entries"`
	TrendSummary
	HighestWeight     WeightExtreme  `json:"highest_weight"`
	LowestWeight      WeightExtreme  `json:"lowest_weight"`
	WeightLossPeriods []WeightPeriod `json:"weight_loss_periods"`
	WeightGainPeriods []WeightPeriod `json:"weight_gain_periods"`
	BMITrend          []BMIPoint     `json:"bmi_trend"`
}

// BuildWeightAnalytics computes analytics over logs ordered oldest first.
func BuildWeightAnalytics(logs []models.WeightLog, window int) WeightAnalytics {
	entries := make([]WeightAnalyticsEntry, 0, len(logs))
	samples := make([]WeightSample, 0, len(logs))
	weights := make([]float64, 0, len(logs))
	var bmiTrend []BMIPoint

	for _, l := range logs {
		date := l.LoggedAt.UTC().Format(time.RFC3339)
		entries = append(entries, WeightAnalyticsEntry{
			Date:            date,
			Weight:          l.Weight,
			BMI:             l.BMI,
			Notes:           l.Notes,
			MeasurementTime: l.MeasurementTime,
		})
		samples = append(samples, WeightSample{Date: date, Weight: l.Weight, BMI: l.BMI})
		weights = append(weights, l.Weight)
		if l.BMI != nil {
			bmiTrend = append(bmiTrend, BMIPoint{Date: date, BMI: *l.BMI})
		}
	}

	highest, lowest := FindExtremes(samples)
	loss, gain := SegmentPeriods(samples)
	return WeightAnalytics{
		Entries:           entries,
		TrendSummary:      ComputeTrend(weights, window),
		HighestWeight:     highest,
		LowestWeight:      lowest,
		WeightLossPeriods: loss,
		WeightGainPeriods: gain,
		BMITrend:          bmiTrend,
	}
}

// ExerciseSummary aggregates exercises over a window.
type ExerciseSummary struct {
	TotalCaloriesBurned int            `json:"total_calories_burned"`
	TotalMinutes        int            `json:"total_minutes"`
	ByType              map[string]int `json:"by_type"`
	ActiveDays          int            `json:"active_days"`
}

// Analytics is the combined activity and weight report.
type Analytics struct {
	WeightTrend         WeightAnalytics `json:"weight_trend"`
	ExerciseSummary     ExerciseSummary `json:"exercise_summary"`
	WaterIntakeAverage  float64         `json:"water_intake_average"`
	MealCompletionRate  float64         `json:"meal_completion_rate"`
	TotalCaloriesBurned int             `json:"total_calories_burned"`
	ActiveDays          int             `json:"active_days"`
}

// BuildAnalytics aggregates the tracking days. Water is averaged over days that
// logged water; meal completion is the mean of each day's completion percentage.
func BuildAnalytics(days []models.DailyGoalTracking, weight WeightAnalytics) Analytics {
	exercise := ExerciseSummary{ByType: map[string]int{}}
	var waterTotal, waterDays int
	var mealRateSum float64
	var mealDays int

	for i := range days {
		d := &days[i]
		if len(d.Exercises) > 0 {
			exercise.ActiveDays++
			for _, e := range d.Exercises {
				if e.CaloriesBurned != nil {
					exercise.TotalCaloriesBurned += *e.CaloriesBurned
				}
				exercise.TotalMinutes += e.DurationMinutes
				exType := e.ExerciseType
				if exType == "" {
					exType = "other"
				}
				exercise.ByType[exType] += e.DurationMinutes
			}
		}
		if d.WaterIntake != nil {
			waterTotal += d.WaterIntake.Glasses
			waterDays++
		}
		if len(d.Meals) > 0 {
			mealRateSum += float64(d.CompletedMeals()) / float64(len(d.Meals)) * 100
			mealDays++
		}
	}

	result := Analytics{
		WeightTrend:         weight,
		ExerciseSummary:     exercise,
		TotalCaloriesBurned: exercise.TotalCaloriesBurned,
		ActiveDays:          exercise.ActiveDays,
	}
	if waterDays > 0 {
		result.WaterIntakeAverage = Round(float64(waterTotal)/float64(waterDays), 1)
	}
	if mealDays > 0 {
		result.MealCompletionRate = Round(mealRateSum/float64(mealDays), 1)
	}
	return result
}

// DaySummary is the compact view of one tracking day.
type DaySummary struct {
	Date            string   `json:"date"`
	CaloriesBurned  int      `json:"calories_burned"`
	ExerciseMinutes int      `json:"exercise_minutes"`
	CompletedMeals  int      `json:"completed_meals"`
	TotalMeals      int      `json:"total_meals"`
	WaterGlasses    int      `json:"water_glasses"`
	Weight          *float64 `json:"weight"`
	Mood            string   `json:"mood,omitempty"`
}

// WeeklyTotals aggregates a seven day window.
type WeeklyTotals struct {
	TotalCaloriesBurned  int     `json:"total_calories_burned"`
	TotalExerciseMinutes int     `json:"total_exercise_minutes"`
	ActiveDays           int     `json:"active_days"`
	MealCompletionRate   float64 `json:"meal_completion_rate"`
	AverageDailyWater    float64 `json:"average_daily_water"`
	DaysTracked          int     `json:"days_tracked"`
}

// WeeklySummary is the report for [WeekStart, WeekEnd].
type WeeklySummary struct {
	WeekStart      string       `json:"week_start"`
	WeekEnd        string       `json:"week_end"`
	Summary        WeeklyTotals `json:"summary"`
	DailySummaries []DaySummary `json:"daily_summaries"`
}

// WeekStart returns the Monday of t's week.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// BuildWeeklySummary aggregates the days of the week starting at start. Meal
// completion is the ratio of all completed meals to all meals of the week and
// water is averaged over the full seven days.
func BuildWeeklySummary(start time.Time, days []models.DailyGoalTracking) WeeklySummary {
	summary := WeeklySummary{
		WeekStart:      start.Format(models.DateLayout),
		WeekEnd:        start.AddDate(0, 0, 6).Format(models.DateLayout),
		DailySummaries: []DaySummary{},
	}

	var completed, total, water int
	for i := range days {
		ds := summarizeDay(&days[i])
		summary.DailySummaries = append(summary.DailySummaries, ds)

		summary.Summary.TotalCaloriesBurned += ds.CaloriesBurned
		summary.Summary.TotalExerciseMinutes += ds.ExerciseMinutes
		if len(days[i].Exercises) > 0 {
			summary.Summary.ActiveDays++
		}
		completed += ds.CompletedMeals
		total += ds.TotalMeals
		water += ds.WaterGlasses
	}

	summary.Summary.DaysTracked = len(days)
	if total > 0 {
		summary.Summary.MealCompletionRate = Round(float64(completed)/float64(total)*100, 1)
	}
	if len(days) > 0 {
		summary.Summary.AverageDailyWater = Round(float64(water)/7, 1)
	}
	return summary
}

func summarizeDay(d *models.DailyGoalTracking) DaySummary {
	ds := DaySummary{
		Date:            d.TrackingDate,
		CaloriesBurned:  d.CaloriesBurned(),
		ExerciseMinutes: d.ExerciseMinutes(),
		CompletedMeals:  d.CompletedMeals(),
		TotalMeals:      len(d.Meals),
		Mood:            d.Mood,
	}
	if d.WaterIntake != nil {
		ds.WaterGlasses = d.WaterIntake.Glasses
	}
	if d.WeightEntry != nil {
		w := d.WeightEntry.Weight
		ds.Weight = &w
	}
	return ds
}

// DailySummaryTotals is the headline figures of one day.
type DailySummaryTotals struct {
	TotalCaloriesBurned  int      `json:"total_calories_burned"`
	TotalExerciseMinutes int      `json:"total_exercise_minutes"`
	CompletedMeals       int      `json:"completed_meals"`
	TotalMeals           int      `json:"total_meals"`
	WaterGlasses         int      `json:"water_glasses"`
	Weight               *float64 `json:"weight"`
	Mood                 string   `json:"mood"`
	SleepHours           *float64 `json:"sleep_hours"`
}

// DailySummary is the report for a single date.
type DailySummary struct {
	Date    string                    `json:"date"`
	Summary DailySummaryTotals        `json:"summary"`
	Details *models.DailyGoalTracking `json:"details"`
}

// BuildDailySummary summarizes d.
func BuildDailySummary(d *models.DailyGoalTracking) DailySummary {
	ds := summarizeDay(d)
	return DailySummary{
		Date: d.TrackingDate,
		Summary: DailySummaryTotals{
			TotalCaloriesBurned:  ds.CaloriesBurned,
			TotalExerciseMinutes: ds.ExerciseMinutes,
			CompletedMeals:       ds.CompletedMeals,
			TotalMeals:           ds.TotalMeals,
			WaterGlasses:         ds.WaterGlasses,
			Weight:               ds.Weight,
			Mood:                 d.Mood,
			SleepHours:           d.SleepHours,
		},
		Details: d,
	}
}
