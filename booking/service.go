package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/raushankrgupta/nutriwise/models"
	"github.com/raushankrgupta/nutriwise/store"
	"github.com/raushankrgupta/nutriwise/utils"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultDuration = 60
	meetingLinkBase = "https://meet.nutriwise.com/room/"
)

// consultation fee in rupees per consultation type
var consultationPrices = map[string]int{
	models.ConsultationVideoCall: 1500,
	models.ConsultationPhoneCall: 1200,
	models.ConsultationInPerson:  2000,
}

// Price returns the fee of a consultation type.
func Price(consultationType string) int {
	return consultationPrices[consultationType]
}

type BookingStore interface {
	Create(ctx context.Context, b *models.ConsultationBooking) error
	ListByPatient(ctx context.Context, patientID primitive.ObjectID) ([]models.ConsultationBooking, error)
	Cancel(ctx context.Context, bookingID int64, patientID primitive.ObjectID, now time.Time) error
}

type DietitianStore interface {
	List(ctx context.Context) ([]models.Dietitian, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Dietitian, error)
	Create(ctx context.Context, d *models.Dietitian) error
}

type Sequencer interface {
	Next(ctx context.Context, name string) (int64, error)
}

// Notifier delivers best-effort emails.
type Notifier interface {
	SendAsync(msg utils.Message)
	NotifyAdmin(event string, details map[string]string)
}

// ImageStore mirrors and signs dietitian profile images.
type ImageStore interface {
	utils.ImageUploader
	utils.Presigner
}

// Service books consultations against the dietitian read model.
type Service struct {
	bookings   BookingStore
	dietitians DietitianStore
	seq        Sequencer
	notifier   Notifier
	images     ImageStore
	now        func() time.Time
}

// NewService wires the booking flow. images may be nil when object storage is not configured.
func NewService(bookings BookingStore, dietitians DietitianStore, seq Sequencer, notifier Notifier, images ImageStore) *Service {
	return &Service{
		bookings:   bookings,
		dietitians: dietitians,
		seq:        seq,
		notifier:   notifier,
		images:     images,
		now:        time.Now,
	}
}

// BookRequest is the payload of a booking.
type BookRequest struct {
	DietitianID      string `json:"dietitian_id" validate:"required"`
	ConsultationType string `json:"consultation_type" validate:"required,oneof=video_call phone_call in_person"`
	AppointmentDate  string `json:"appointment_date" validate:"required,datetime=2006-01-02"`
	AppointmentTime  string `json:"appointment_time" validate:"required,datetime=15:04"`
	Duration         *int   `json:"duration" validate:"omitempty,gte=15,lte=180"`
	Notes            string `json:"notes" validate:"max=500"`
}

// DietitianInfo is the dietitian as shown on a booking.
type DietitianInfo struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	ProfileImage   string `json:"profile_image,omitempty"`
}

// BookingResponse is a booking with its dietitian details.
type BookingResponse struct {
	ID               string        `json:"id"`
	BookingID        int64         `json:"booking_id"`
	PatientUserID    int64         `json:"patient_user_id"`
	Dietitian        DietitianInfo `json:"dietitian"`
	ConsultationType string        `json:"consultation_type"`
	AppointmentDate  string        `json:"appointment_date"`
	AppointmentTime  string        `json:"appointment_time"`
	Duration         int           `json:"duration"`
	Notes            string        `json:"notes"`
	Status           string        `json:"status"`
	MeetingLink      string        `json:"meeting_link,omitempty"`
	Price            int           `json:"price"`
	CreatedAt        time.Time     `json:"created_at"`
}

var unknownDietitian = DietitianInfo{Name: "Dr. Unknown", Specialization: "General Nutrition"}

func (s *Service) dietitianInfo(ctx context.Context, id primitive.ObjectID) DietitianInfo {
	d, err := s.dietitians.FindByID(ctx, id)
	if err != nil {
		if !store.IsNotFound(err) {
			log.Warn().Err(err).Str("dietitian_id", id.Hex()).Msg("Dietitian lookup failed")
		}
		return unknownDietitian
	}
	return DietitianInfo{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		Specialization: d.Specialization,
		ProfileImage:   s.imageURL(ctx, d.ProfileImage),
	}
}

func (s *Service) imageURL(ctx context.Context, img string) string {
	if s.images == nil {
		return img
	}
	return utils.PresignImageURL(ctx, s.images, img)
}

func toResponse(b *models.ConsultationBooking, d DietitianInfo) BookingResponse {
	return BookingResponse{
		ID:               b.ID.Hex(),
		BookingID:        b.BookingID,
		PatientUserID:    b.PatientUserID,
		Dietitian:        d,
		ConsultationType: b.ConsultationType,
		AppointmentDate:  b.AppointmentDate,
		AppointmentTime:  b.AppointmentTime,
		Duration:         b.Duration,
		Notes:            b.Notes,
		Status:           b.Status,
		MeetingLink:      b.MeetingLink,
		Price:            Price(b.ConsultationType),
		CreatedAt:        b.CreatedAt,
	}
}

// Book creates a scheduled booking for patient and sends the confirmation emails.
// The dietitian id must be well formed; its existence is not required.
func (s *Service) Book(ctx context.Context, patient *models.User, req BookRequest) (*BookingResponse, error) {
	dietitianID, err := primitive.ObjectIDFromHex(req.DietitianID)
	if err != nil {
		return nil, models.Validation("Invalid dietitian ID")
	}

	bookingID, err := s.seq.Next(ctx, store.SequenceBookingID)
	if err != nil {
		return nil, models.Internal("Error booking consultation", err)
	}

	now := s.now().UTC()
	b := &models.ConsultationBooking{
		BookingID:        bookingID,
		PatientID:        patient.ID,
		PatientUserID:    patient.UserID,
		DietitianID:      dietitianID,
		ConsultationType: req.ConsultationType,
		AppointmentDate:  req.AppointmentDate,
		AppointmentTime:  req.AppointmentTime,
		Duration:         defaultDuration,
		Notes:            req.Notes,
		Status:           models.BookingScheduled,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if req.Duration != nil {
		b.Duration = *req.Duration
	}
	if req.ConsultationType == models.ConsultationVideoCall {
		b.MeetingLink = fmt.Sprintf("%s%d", meetingLinkBase, bookingID)
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, models.Internal("Error booking consultation", err)
	}

	info := s.dietitianInfo(ctx, dietitianID)
	resp := toResponse(b, info)

	s.notifier.SendAsync(utils.ConsultationConfirmation(utils.ConsultationDetails{
		PatientName:   patient.FullName,
		PatientEmail:  patient.Email,
		BookingID:     bookingID,
		DietitianName: info.Name,
		Type:          methodLabel(req.ConsultationType),
		Date:          req.AppointmentDate,
		Time:          req.AppointmentTime,
		Duration:      b.Duration,
		Price:         resp.Price,
		MeetingLink:   b.MeetingLink,
	}))
	s.notifier.NotifyAdmin("New Consultation Booking", map[string]string{
		"patient_name":      patient.FullName,
		"patient_email":     patient.Email,
		"dietitian_name":    info.Name,
		"consultation_type": req.ConsultationType,
		"appointment_date":  req.AppointmentDate,
		"appointment_time":  req.AppointmentTime,
		"booking_id":        fmt.Sprint(bookingID),
		"timestamp":         now.Format(time.RFC3339),
	})

	return &resp, nil
}

// methodLabel turns video_call into "Video Call".
func methodLabel(consultationType string) string {
	words := strings.Split(consultationType, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// MyBookings lists the patient's bookings, newest first.
func (s *Service) MyBookings(ctx context.Context, patient *models.User) ([]BookingResponse, error) {
	bookings, err := s.bookings.ListByPatient(ctx, patient.ID)
	if err != nil {
		return nil, models.Internal("Error fetching bookings", err)
	}

	cache := map[primitive.ObjectID]DietitianInfo{}
	out := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		b := &bookings[i]
		info, ok := cache[b.DietitianID]
		if !ok {
			info = s.dietitianInfo(ctx, b.DietitianID)
			cache[b.DietitianID] = info
		}
		out = append(out, toResponse(b, info))
	}
	return out, nil
}

// Cancel cancels one of the patient's bookings. Foreign and missing bookings are both NotFound.
func (s *Service) Cancel(ctx context.Context, patient *models.User, bookingID int64) error {
	err := s.bookings.Cancel(ctx, bookingID, patient.ID, s.now().UTC())
	if store.IsNotFound(err) {
		return models.NotFound("Booking not found")
	}
	if err != nil {
		return models.Internal("Error cancelling booking", err)
	}
	return nil
}

// ListDietitians returns the read model with signed profile images.
func (s *Service) ListDietitians(ctx context.Context) ([]models.Dietitian, error) {
	dietitians, err := s.dietitians.List(ctx)
	if err != nil {
		return nil, models.Internal("Error fetching dietitians", err)
	}
	for i := range dietitians {
		dietitians[i].ProfileImage = s.imageURL(ctx, dietitians[i].ProfileImage)
	}
	return dietitians, nil
}

// AddDietitian stores a dietitian, mirroring an external profile image into object storage.
func (s *Service) AddDietitian(ctx context.Context, d *models.Dietitian) error {
	if s.images != nil && d.ProfileImage != "" {
		if keys := utils.MirrorImages(ctx, s.images, []string{d.ProfileImage}, "dietitians"); keys[d.ProfileImage] != "" {
			d.ProfileImage = keys[d.ProfileImage]
		}
	}
	if d.AvailableSlots == nil {
		d.AvailableSlots = []models.TimeSlot{}
	}
	d.ID = primitive.NilObjectID
	d.CreatedAt = s.now().UTC()
	if err := s.dietitians.Create(ctx, d); err != nil {
		return models.Internal("Error creating dietitian", err)
	}
	d.ProfileImage = s.imageURL(ctx, d.ProfileImage)
	return nil
}
