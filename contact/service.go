package contact

import (
	"context"
	"strconv"
	"time"

	"github.com/raushankrgupta/nutriwise/models"
	"github.com/raushankrgupta/nutriwise/store"
	"github.com/raushankrgupta/nutriwise/utils"
)

const recentLimit = 100

var validStatuses = map[string]bool{
	models.ContactPending: true,
	models.ContactRead:    true,
	models.ContactReplied: true,
	models.ContactClosed:  true,
}

type Store interface {
	Create(ctx context.Context, c *models.ContactMessage) error
	ListRecent(ctx context.Context, limit int) ([]models.ContactMessage, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type Sequencer interface {
	Next(ctx context.Context, name string) (int64, error)
}

type Notifier interface {
	SendAsync(msg utils.Message)
	NotifyAdmin(event string, details map[string]string)
}

// Service is the inbox behind the public contact form.
type Service struct {
	store    Store
	seq      Sequencer
	notifier Notifier
	now      func() time.Time
}

func NewService(s Store, seq Sequencer, notifier Notifier) *Service {
	return &Service{store: s, seq: seq, notifier: notifier, now: time.Now}
}

// SubmitRequest is a contact form submission.
type SubmitRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"max=30"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Submit stores the message and acknowledges it by email.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*models.ContactMessage, error) {
	seq, err := s.seq.Next(ctx, store.SequenceContact)
	if err != nil {
		return nil, models.Internal("Failed to submit contact form. Please try again later.", err)
	}
	now := s.now().UTC()
	msg := &models.ContactMessage{
		ID:        strconv.FormatInt(seq, 10),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   req.Subject,
		Message:   req.Message,
		Status:    models.ContactPending,
		CreatedAt: now,
	}
	if err := s.store.Create(ctx, msg); err != nil {
		return nil, models.Internal("Failed to submit contact form. Please try again later.", err)
	}

	s.notifier.SendAsync(utils.ContactConfirmation(msg.ID, msg.Name, msg.Email, msg.Subject))
	s.notifier.NotifyAdmin("New Contact Form Submission", map[string]string{
		"contact_id": msg.ID,
		"name":       msg.Name,
		"email":      msg.Email,
		"phone":      msg.Phone,
		"subject":    msg.Subject,
		"message":    msg.Message,
		"timestamp":  now.Format(time.RFC3339),
	})
	return msg, nil
}

// Messages returns the newest messages first.
func (s *Service) Messages(ctx context.Context) ([]models.ContactMessage, error) {
	msgs, err := s.store.ListRecent(ctx, recentLimit)
	if err != nil {
		return nil, models.Internal("Failed to fetch contact messages", err)
	}
	return msgs, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) error {
	if !validStatuses[status] {
		return models.Validation("Invalid status")
	}
	err := s.store.UpdateStatus(ctx, id, status)
	if store.IsNotFound(err) {
		return models.NotFound("Contact message not found")
	}
	if err != nil {
		return models.Internal("Failed to update contact status", err)
	}
	return nil
}
