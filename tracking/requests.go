package tracking

// MealUpdateRequest updates one meal slot of today.
type MealUpdateRequest struct {
	MealType  string `json:"meal_type" validate:"required,max=50"`
	Completed bool   `json:"completed"`
	Calories  *int   `json:"calories" validate:"omitempty,gte=0,lte=5000"`
	Notes     string `json:"notes" validate:"max=500"`
}

// WaterIntakeRequest sets today's water intake.
type WaterIntakeRequest struct {
	Glasses int  `json:"glasses" validate:"gte=0,lte=20"`
	Goal    *int `json:"goal" validate:"omitempty,gte=1,lte=20"`
}

// WeightEntryRequest sets today's weight summary directly.
type WeightEntryRequest struct {
	Weight float64  `json:"weight" validate:"required,gte=20,lte=500"`
	Height *float64 `json:"height" validate:"omitempty,gte=100,lte=250"`
	Notes  string   `json:"notes" validate:"max=500"`
}

// WeightLogRequest appends to the weight history.
type WeightLogRequest struct {
	Weight            float64  `json:"weight" validate:"required,gte=20,lte=500"`
	Height            *float64 `json:"height" validate:"omitempty,gte=100,lte=250"`
	BodyFatPercentage *float64 `json:"body_fat_percentage" validate:"omitempty,gte=0,lte=100"`
	MuscleMass        *float64 `json:"muscle_mass" validate:"omitempty,gte=0,lte=200"`
	Notes             string   `json:"notes" validate:"max=500"`
	MeasurementTime   string   `json:"measurement_time" validate:"omitempty,oneof=morning afternoon evening night"`
}

// ExerciseRequest logs a workout for today.
type ExerciseRequest struct {
	ExerciseName    string `json:"exercise_name" validate:"required,min=1,max=100"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gte=1,lte=600"`
	CaloriesBurned  *int   `json:"calories_burned" validate:"omitempty,gte=0,lte=2000"`
	ExerciseType    string `json:"exercise_type" validate:"omitempty,oneof=cardio strength flexibility sports other"`
	Intensity       string `json:"intensity" validate:"omitempty,oneof=low moderate high"`
	Notes           string `json:"notes" validate:"max=500"`
}

// MoodRequest sets the mood of a day.
type MoodRequest struct {
	Mood string `json:"mood" validate:"required,oneof=good okay bad"`
}

// SleepRequest sets the hours slept on a day.
type SleepRequest struct {
	SleepHours *float64 `json:"sleep_hours" validate:"required,gte=0,lte=24"`
}
