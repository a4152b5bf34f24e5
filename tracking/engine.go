package tracking

import (
	"context"
	"time"

	"github.com/raushankrgupta/nutriwise/models"
	"github.com/raushankrgupta/nutriwise/store"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultWaterGoal = 8

// DayStore persists per-day tracking documents.
type DayStore interface {
	GetOrCreateDay(ctx context.Context, userID int64, date string, now time.Time) (*models.DailyGoalTracking, error)
	FindDay(ctx context.Context, userID int64, date string) (*models.DailyGoalTracking, error)
	UpdateMeal(ctx context.Context, userID int64, date string, meal models.MealEntry, now time.Time) error
	SetWater(ctx context.Context, userID int64, date string, water models.WaterIntakeEntry, now time.Time) error
	SetWeightEntry(ctx context.Context, userID int64, date string, entry models.WeightEntry, now time.Time) error
	AddExercise(ctx context.Context, userID int64, date string, exercise models.ExerciseEntry, now time.Time) error
	SetMood(ctx context.Context, userID int64, date, mood string, now time.Time) error
	SetSleep(ctx context.Context, userID int64, date string, hours float64, now time.Time) error
	ListDays(ctx context.Context, userID int64, from, to string) ([]models.DailyGoalTracking, error)
}

// WeightLogStore persists the weight history.
type WeightLogStore interface {
	Insert(ctx context.Context, entry *models.WeightLog) error
	ListSince(ctx context.Context, userID int64, since time.Time, newestFirst bool, limit int) ([]models.WeightLog, error)
	LatestBetween(ctx context.Context, userID int64, from, to time.Time) (*models.WeightLog, error)
	Delete(ctx context.Context, userID int64, id primitive.ObjectID) error
}

// Service implements daily goal tracking. All calendar dates are UTC.
type Service struct {
	days DayStore
	logs WeightLogStore
	now  func() time.Time
}

func NewService(days DayStore, logs WeightLogStore) *Service {
	return &Service{days: days, logs: logs, now: time.Now}
}

// WithClock replaces the time source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) clock() (time.Time, string) {
	now := s.now().UTC()
	return now, now.Format(models.DateLayout)
}

// ParseDate validates a YYYY-MM-DD path or query value.
func ParseDate(v string) (time.Time, error) {
	t, err := time.Parse(models.DateLayout, v)
	if err != nil {
		return time.Time{}, models.Validation("Invalid date format, use YYYY-MM-DD")
	}
	return t, nil
}

// TodayResponse is today's tracking document with derived totals.
type TodayResponse struct {
	Date                 string                   `json:"date"`
	Meals                []models.MealEntry       `json:"meals"`
	WaterIntake          *models.WaterIntakeEntry `json:"water_intake"`
	WeightEntry          *models.WeightEntry      `json:"weight_entry"`
	LatestWeightLog      *models.WeightLog        `json:"latest_weight_log"`
	Exercises            []models.ExerciseEntry   `json:"exercises"`
	Mood                 string                   `json:"mood,omitempty"`
	SleepHours           *float64                 `json:"sleep_hours"`
	DailyNotes           string                   `json:"daily_notes,omitempty"`
	TotalCaloriesBurned  int                      `json:"total_calories_burned"`
	TotalExerciseMinutes int                      `json:"total_exercise_minutes"`
}

// Today returns today's document, creating it with the four default meals when missing.
func (s *Service) Today(ctx context.Context, userID int64) (*TodayResponse, error) {
	now, today := s.clock()
	day, err := s.days.GetOrCreateDay(ctx, userID, today, now)
	if err != nil {
		return nil, models.Internal("Error fetching tracking data", err)
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	latest, err := s.logs.LatestBetween(ctx, userID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil && !store.IsNotFound(err) {
		return nil, models.Internal("Error fetching tracking data", err)
	}

	exercises := day.Exercises
	if exercises == nil {
		exercises = []models.ExerciseEntry{}
	}
	return &TodayResponse{
		Date:                 day.TrackingDate,
		Meals:                day.Meals,
		WaterIntake:          day.WaterIntake,
		WeightEntry:          day.WeightEntry,
		LatestWeightLog:      latest,
		Exercises:            exercises,
		Mood:                 day.Mood,
		SleepHours:           day.SleepHours,
		DailyNotes:           day.DailyNotes,
		TotalCaloriesBurned:  day.CaloriesBurned(),
		TotalExerciseMinutes: day.ExerciseMinutes(),
	}, nil
}

// UpdateMeal updates one of today's meal slots; other slots are untouched.
func (s *Service) UpdateMeal(ctx context.Context, userID int64, req MealUpdateRequest) error {
	now, today := s.clock()
	meal := models.MealEntry{
		MealType:  req.MealType,
		Completed: req.Completed,
		Calories:  req.Calories,
		Notes:     req.Notes,
	}
	if req.Completed {
		meal.CompletedAt = &now
	}

	err := s.days.UpdateMeal(ctx, userID, today, meal, now)
	if store.IsNotFound(err) {
		return models.NotFound("Meal entry not found")
	}
	if err != nil {
		return models.Internal("Error updating meal status", err)
	}
	return nil
}

// UpdateWater sets today's water intake.
func (s *Service) UpdateWater(ctx context.Context, userID int64, req WaterIntakeRequest) error {
	now, today := s.clock()
	goal := defaultWaterGoal
	if req.Goal != nil {
		goal = *req.Goal
	}
	water := models.WaterIntakeEntry{Glasses: req.Glasses, Goal: goal, LoggedAt: now}
	if err := s.days.SetWater(ctx, userID, today, water, now); err != nil {
		return models.Internal("Error updating water intake", err)
	}
	return nil
}

// AddWeightEntry sets today's weight summary without touching the weight history.
func (s *Service) AddWeightEntry(ctx context.Context, userID int64, req WeightEntryRequest) (*float64, error) {
	now, today := s.clock()
	entry := models.WeightEntry{Weight: req.Weight, Notes: req.Notes, LoggedAt: now}
	if req.Height != nil {
		bmi := CalculateBMI(req.Weight, *req.Height)
		entry.BMI = &bmi
	}
	if err := s.days.SetWeightEntry(ctx, userID, today, entry, now); err != nil {
		return nil, models.Internal("Error adding weight entry", err)
	}
	return entry.BMI, nil
}

// AddExercise appends a workout to today.
func (s *Service) AddExercise(ctx context.Context, userID int64, req ExerciseRequest) error {
	now, today := s.clock()
	exercise := models.ExerciseEntry{
		ExerciseName:    req.ExerciseName,
		DurationMinutes: req.DurationMinutes,
		CaloriesBurned:  req.CaloriesBurned,
		ExerciseType:    req.ExerciseType,
		Intensity:       req.Intensity,
		Notes:           req.Notes,
		LoggedAt:        now,
	}
	if err := s.days.AddExercise(ctx, userID, today, exercise, now); err != nil {
		return models.Internal("Error adding exercise entry", err)
	}
	return nil
}

// AddWeightLog records a measurement and mirrors it into today's weight summary.
// The log is authoritative: a failed summary update is logged, not returned.
func (s *Service) AddWeightLog(ctx context.Context, userID int64, req WeightLogRequest) (*models.WeightLog, error) {
	now, today := s.clock()
	entry := &models.WeightLog{
		UserID:            userID,
		Weight:            req.Weight,
		BodyFatPercentage: req.BodyFatPercentage,
		MuscleMass:        req.MuscleMass,
		Notes:             req.Notes,
		MeasurementTime:   req.MeasurementTime,
		LoggedAt:          now,
		CreatedAt:         now,
	}
	if entry.MeasurementTime == "" {
		entry.MeasurementTime = models.MeasurementMorning
	}
	if req.Height != nil {
		bmi := CalculateBMI(req.Weight, *req.Height)
		entry.BMI = &bmi
	}

	if err := s.logs.Insert(ctx, entry); err != nil {
		return nil, models.Internal("Error adding weight log", err)
	}

	summary := models.WeightEntry{Weight: entry.Weight, BMI: entry.BMI, Notes: entry.Notes, LoggedAt: now}
	if err := s.days.SetWeightEntry(ctx, userID, today, summary, now); err != nil {
		log.Error().Err(err).Int64("user_id", userID).Str("date", today).Msg("Weight log saved but daily summary not updated")
	}
	return entry, nil
}

// ListWeightLogs returns logs of the last days, newest first.
func (s *Service) ListWeightLogs(ctx context.Context, userID int64, days, limit int) ([]models.WeightLog, error) {
	now, _ := s.clock()
	logs, err := s.logs.ListSince(ctx, userID, now.AddDate(0, 0, -days), true, limit)
	if err != nil {
		return nil, models.Internal("Error fetching weight logs", err)
	}
	return logs, nil
}

// DeleteWeightLog removes one of the caller's logs.
func (s *Service) DeleteWeightLog(ctx context.Context, userID int64, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.NotFound("Weight log not found")
	}
	err = s.logs.Delete(ctx, userID, oid)
	if store.IsNotFound(err) {
		return models.NotFound("Weight log not found")
	}
	if err != nil {
		return models.Internal("Error deleting weight log", err)
	}
	return nil
}

// WeightHistory computes the trend from the per-day weight summaries.
func (s *Service) WeightHistory(ctx context.Context, userID int64, days int) (*WeightHistory, error) {
	now, _ := s.clock()
	from := now.AddDate(0, 0, -days).Format(models.DateLayout)
	docs, err := s.days.ListDays(ctx, userID, from, "")
	if err != nil {
		return nil, models.Internal("Error fetching weight history", err)
	}
	history := BuildWeightHistory(docs, days)
	return &history, nil
}

// WeightAnalytics computes trend, extremes and periods from the weight history.
func (s *Service) WeightAnalytics(ctx context.Context, userID int64, days int) (*WeightAnalytics, error) {
	now, _ := s.clock()
	logs, err := s.logs.ListSince(ctx, userID, now.AddDate(0, 0, -days), false, 0)
	if err != nil {
		return nil, models.Internal("Error fetching weight analytics", err)
	}
	analytics := BuildWeightAnalytics(logs, days)
	return &analytics, nil
}

// Analytics aggregates the last days of tracking plus weight analytics over three times the window.
func (s *Service) Analytics(ctx context.Context, userID int64, days int) (*Analytics, error) {
	now, _ := s.clock()
	from := now.AddDate(0, 0, -days).Format(models.DateLayout)
	docs, err := s.days.ListDays(ctx, userID, from, "")
	if err != nil {
		return nil, models.Internal("Error fetching analytics", err)
	}
	weight, err := s.WeightAnalytics(ctx, userID, days*3)
	if err != nil {
		return nil, err
	}
	analytics := BuildAnalytics(docs, *weight)
	return &analytics, nil
}

// DailySummary reports a single date.
func (s *Service) DailySummary(ctx context.Context, userID int64, date string) (*DailySummary, error) {
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}
	day, err := s.days.FindDay(ctx, userID, date)
	if store.IsNotFound(err) {
		return nil, models.NotFound("No tracking data found for this date")
	}
	if err != nil {
		return nil, models.Internal("Error fetching daily summary", err)
	}
	summary := BuildDailySummary(day)
	return &summary, nil
}

// WeeklySummary reports the seven days from startDate, or from this week's Monday when empty.
func (s *Service) WeeklySummary(ctx context.Context, userID int64, startDate string) (*WeeklySummary, error) {
	var start time.Time
	if startDate != "" {
		t, err := ParseDate(startDate)
		if err != nil {
			return nil, err
		}
		start = t
	} else {
		now, _ := s.clock()
		start = WeekStart(now)
	}

	docs, err := s.days.ListDays(ctx, userID,
		start.Format(models.DateLayout),
		start.AddDate(0, 0, 6).Format(models.DateLayout))
	if err != nil {
		return nil, models.Internal("Error fetching weekly summary", err)
	}
	summary := BuildWeeklySummary(start, docs)
	return &summary, nil
}

// UpdateMood sets the mood of date, creating the day if needed.
func (s *Service) UpdateMood(ctx context.Context, userID int64, date, mood string) error {
	if _, err := ParseDate(date); err != nil {
		return err
	}
	now, _ := s.clock()
	if err := s.days.SetMood(ctx, userID, date, mood, now); err != nil {
		return models.Internal("Error updating mood", err)
	}
	return nil
}

// UpdateSleep sets the hours slept on date, creating the day if needed.
func (s *Service) UpdateSleep(ctx context.Context, userID int64, date string, hours float64) error {
	if _, err := ParseDate(date); err != nil {
		return err
	}
	if hours < 0 || hours > 24 {
		return models.Validation("sleep_hours must be between 0 and 24")
	}
	now, _ := s.clock()
	if err := s.days.SetSleep(ctx, userID, date, hours, now); err != nil {
		return models.Internal("Error updating sleep hours", err)
	}
	return nil
}
