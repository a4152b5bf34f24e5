package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RolePatient = "patient"
	RoleAdmin   = "admin"
)

// User represents a registered user
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         int64              `bson:"user_id" json:"user_id"`
	FullName       string             `bson:"full_name" json:"full_name"`
	Email          string             `bson:"email" json:"email"`
	Phone          string             `bson:"phone" json:"phone"`
	DateOfBirth    string             `bson:"date_of_birth" json:"date_of_birth"`
	City           string             `bson:"city" json:"city"`
	State          string             `bson:"state" json:"state"`
	HashedPassword string             `bson:"hashed_password" json:"-"` // never returned in JSON
	Role           string             `bson:"role" json:"role"`
	IsActive       bool               `bson:"is_active" json:"is_active"`
	HealthProfile  *HealthProfile     `bson:"health_profile,omitempty" json:"health_profile,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// IsAdmin reports whether the user may use administrative routes.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
