package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnacks    = "snacks"
)

// DefaultMealTypes are the slots created for every new tracking day.
var DefaultMealTypes = []string{MealBreakfast, MealLunch, MealDinner, MealSnacks}

// DateLayout is the calendar date format used for tracking days.
const DateLayout = "2006-01-02"

// MealEntry is one meal slot of a tracking day.
type MealEntry struct {
	MealType    string     `bson:"meal_type" json:"meal_type"`
	Completed   bool       `bson:"completed" json:"completed"`
	CompletedAt *time.Time `bson:"completed_at" json:"completed_at"`
	Calories    *int       `bson:"calories,omitempty" json:"calories,omitempty"`
	Notes       string     `bson:"notes,omitempty" json:"notes,omitempty"`
}

// DefaultMeals returns four incomplete meal slots.
func DefaultMeals() []MealEntry {
	meals := make([]MealEntry, 0, len(DefaultMealTypes))
	for _, t := range DefaultMealTypes {
		meals = append(meals, MealEntry{MealType: t})
	}
	return meals
}

// WaterIntakeEntry records glasses drunk against a daily goal.
type WaterIntakeEntry struct {
	Glasses  int       `bson:"glasses" json:"glasses"`
	Goal     int       `bson:"goal" json:"goal"`
	LoggedAt time.Time `bson:"logged_at" json:"logged_at"`
}

// WeightEntry is the per-day weight summary. It mirrors the latest weight log of the day.
type WeightEntry struct {
	Weight   float64   `bson:"weight" json:"weight"`
	BMI      *float64  `bson:"bmi,omitempty" json:"bmi"`
	Notes    string    `bson:"notes,omitempty" json:"notes,omitempty"`
	LoggedAt time.Time `bson:"logged_at" json:"logged_at"`
}

// ExerciseEntry is one logged workout.
type ExerciseEntry struct {
	ExerciseName    string    `bson:"exercise_name" json:"exercise_name"`
	DurationMinutes int       `bson:"duration_minutes" json:"duration_minutes"`
	CaloriesBurned  *int      `bson:"calories_burned,omitempty" json:"calories_burned,omitempty"`
	ExerciseType    string    `bson:"exercise_type,omitempty" json:"exercise_type,omitempty"`
	Intensity       string    `bson:"intensity,omitempty" json:"intensity,omitempty"`
	Notes           string    `bson:"notes,omitempty" json:"notes,omitempty"`
	LoggedAt        time.Time `bson:"logged_at" json:"logged_at"`
}

// DailyGoalTracking is the per-user, per-day tracking document.
// (user_id, tracking_date) is unique.
type DailyGoalTracking struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       int64              `bson:"user_id" json:"user_id"`
	TrackingDate string             `bson:"tracking_date" json:"tracking_date"`
	Meals        []MealEntry        `bson:"meals" json:"meals"`
	WaterIntake  *WaterIntakeEntry  `bson:"water_intake,omitempty" json:"water_intake"`
	WeightEntry  *WeightEntry       `bson:"weight_entry,omitempty" json:"weight_entry"`
	Exercises    []ExerciseEntry    `bson:"exercises" json:"exercises"`
	Mood         string             `bson:"mood,omitempty" json:"mood,omitempty"`
	SleepHours   *float64           `bson:"sleep_hours,omitempty" json:"sleep_hours"`
	DailyNotes   string             `bson:"daily_notes,omitempty" json:"daily_notes,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// CompletedMeals counts the completed meal slots.
func (d *DailyGoalTracking) CompletedMeals() int {
	n := 0
	for _, m := range d.Meals {
		if m.Completed {
			n++
		}
	}
	return n
}

// CaloriesBurned sums calories over all exercises of the day.
func (d *DailyGoalTracking) CaloriesBurned() int {
	total := 0
	for _, e := range d.Exercises {
		if e.CaloriesBurned != nil {
			total += *e.CaloriesBurned
		}
	}
	return total
}

// ExerciseMinutes sums durations over all exercises of the day.
func (d *DailyGoalTracking) ExerciseMinutes() int {
	total := 0
	for _, e := range d.Exercises {
		total += e.DurationMinutes
	}
	return total
}

const (
	MeasurementMorning   = "morning"
	MeasurementAfternoon = "afternoon"
	MeasurementEvening   = "evening"
	MeasurementNight     = "night"
)

// WeightLog is one entry of the authoritative weight history.
type WeightLog struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            int64              `bson:"user_id" json:"user_id"`
	Weight            float64            `bson:"weight" json:"weight"`
	BMI               *float64           `bson:"bmi,omitempty" json:"bmi"`
	BodyFatPercentage *float64           `bson:"body_fat_percentage,omitempty" json:"body_fat_percentage"`
	MuscleMass        *float64           `bson:"muscle_mass,omitempty" json:"muscle_mass"`
	Notes             string             `bson:"notes,omitempty" json:"notes"`
	MeasurementTime   string             `bson:"measurement_time" json:"measurement_time"`
	LoggedAt          time.Time          `bson:"logged_at" json:"logged_at"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
}
