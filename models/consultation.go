package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ConsultationVideoCall = "video_call"
	ConsultationPhoneCall = "phone_call"
	ConsultationInPerson  = "in_person"
)

const (
	BookingScheduled   = "scheduled"
	BookingCompleted   = "completed"
	BookingCancelled   = "cancelled"
	BookingRescheduled = "rescheduled"
)

// TimeSlot is an advertised consultation slot of a dietitian.
type TimeSlot struct {
	Date        string `bson:"date" json:"date" validate:"required,datetime=2006-01-02"`
	Time        string `bson:"time" json:"time" validate:"required,datetime=15:04"`
	IsAvailable bool   `bson:"is_available" json:"is_available"`
}

// Dietitian is the read model behind the dietitian listing.
type Dietitian struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name" validate:"required,min=2,max=100"`
	Specialization string             `bson:"specialization" json:"specialization" validate:"required,max=100"`
	Experience     int                `bson:"experience" json:"experience" validate:"gte=0,lte=60"` // years
	Rating         float64            `bson:"rating" json:"rating" validate:"gte=0,lte=5"`
	Bio            string             `bson:"bio,omitempty" json:"bio,omitempty" validate:"max=1000"`
	ProfileImage   string             `bson:"profile_image,omitempty" json:"profile_image,omitempty"` // URL or object key
	AvailableSlots []TimeSlot         `bson:"available_slots" json:"available_slots" validate:"omitempty,dive"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}

// ConsultationBooking is a patient's appointment with a dietitian.
type ConsultationBooking struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BookingID        int64              `bson:"booking_id" json:"booking_id"`
	PatientID        primitive.ObjectID `bson:"patient_id" json:"patient_id"`
	PatientUserID    int64              `bson:"patient_user_id" json:"patient_user_id"`
	DietitianID      primitive.ObjectID `bson:"dietitian_id" json:"dietitian_id"`
	ConsultationType string             `bson:"consultation_type" json:"consultation_type"`
	AppointmentDate  string             `bson:"appointment_date" json:"appointment_date"`
	AppointmentTime  string             `bson:"appointment_time" json:"appointment_time"`
	Duration         int                `bson:"duration" json:"duration"`
	Notes            string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Status           string             `bson:"status" json:"status"`
	MeetingLink      string             `bson:"meeting_link,omitempty" json:"meeting_link,omitempty"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
}
