package models

import "time"

// HealthProfile is embedded in the user document.
type HealthProfile struct {
	BloodType                    string            `bson:"blood_type,omitempty" json:"blood_type,omitempty" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Height                       *float64          `bson:"height,omitempty" json:"height,omitempty" validate:"omitempty,gte=50,lte=300"` // cm
	Weight                       *float64          `bson:"weight,omitempty" json:"weight,omitempty" validate:"omitempty,gte=20,lte=500"` // kg
	EmergencyContactName         string            `bson:"emergency_contact_name,omitempty" json:"emergency_contact_name,omitempty" validate:"omitempty,max=100"`
	EmergencyContactPhone        string            `bson:"emergency_contact_phone,omitempty" json:"emergency_contact_phone,omitempty" validate:"omitempty,phone"`
	EmergencyContactRelationship string            `bson:"emergency_contact_relationship,omitempty" json:"emergency_contact_relationship,omitempty" validate:"omitempty,max=50"`
	Allergies                    []string          `bson:"allergies" json:"allergies"`
	CurrentMedications           []string          `bson:"current_medications" json:"current_medications"`
	DietaryRestrictions          []string          `bson:"dietary_restrictions" json:"dietary_restrictions"`
	ExerciseFrequency            string            `bson:"exercise_frequency,omitempty" json:"exercise_frequency,omitempty"`
	SmokingStatus                string            `bson:"smoking_status,omitempty" json:"smoking_status,omitempty"`
	AlcoholConsumption           string            `bson:"alcohol_consumption,omitempty" json:"alcohol_consumption,omitempty"`
	HealthConditions             []HealthCondition `bson:"health_conditions" json:"health_conditions" validate:"omitempty,dive"`
	DiseaseHistory               []DiseaseHistory  `bson:"disease_history" json:"disease_history" validate:"omitempty,dive"`
	LastUpdated                  time.Time         `bson:"last_updated" json:"last_updated"`
}

// NewHealthProfile returns an empty profile with non-nil lists.
func NewHealthProfile(now time.Time) *HealthProfile {
	return &HealthProfile{
		Allergies:           []string{},
		CurrentMedications:  []string{},
		DietaryRestrictions: []string{},
		HealthConditions:    []HealthCondition{},
		DiseaseHistory:      []DiseaseHistory{},
		LastUpdated:         now,
	}
}

// HealthCondition is a current diagnosis on the health profile.
type HealthCondition struct {
	ID            string    `bson:"id" json:"id"`
	ConditionName string    `bson:"condition_name" json:"condition_name" validate:"required,min=1,max=100"`
	DiagnosedDate string    `bson:"diagnosed_date,omitempty" json:"diagnosed_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Severity      string    `bson:"severity,omitempty" json:"severity,omitempty" validate:"omitempty,oneof=mild moderate severe"`
	Medications   []string  `bson:"medications" json:"medications"`
	Notes         string    `bson:"notes,omitempty" json:"notes,omitempty" validate:"max=500"`
	IsChronic     bool      `bson:"is_chronic" json:"is_chronic"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// DiseaseHistory is a past illness on the health profile.
type DiseaseHistory struct {
	ID                string    `bson:"id" json:"id"`
	DiseaseName       string    `bson:"disease_name" json:"disease_name" validate:"required,min=1,max=100"`
	OnsetDate         string    `bson:"onset_date,omitempty" json:"onset_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	RecoveryDate      string    `bson:"recovery_date,omitempty" json:"recovery_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	TreatmentReceived string    `bson:"treatment_received,omitempty" json:"treatment_received,omitempty" validate:"max=300"`
	Complications     []string  `bson:"complications" json:"complications"`
	FamilyHistory     bool      `bson:"family_history" json:"family_history"`
	Notes             string    `bson:"notes,omitempty" json:"notes,omitempty" validate:"max=500"`
	CreatedAt         time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time `bson:"updated_at" json:"updated_at"`
}
