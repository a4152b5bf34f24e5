package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SavedDietPlan indexes a generated plan archived in object storage
type SavedDietPlan struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        int64              `bson:"user_id" json:"user_id"`
	ObjectKey     string             `bson:"object_key" json:"-"`
	DownloadURL   string             `bson:"-" json:"download_url,omitempty"`
	Goal          string             `bson:"goal" json:"goal"`
	DailyCalories int                `bson:"daily_calories" json:"daily_calories"`
	BMI           float64            `bson:"bmi" json:"bmi"`
	Fallback      bool               `bson:"fallback" json:"fallback"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
