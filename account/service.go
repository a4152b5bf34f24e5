package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/raushankrgupta/nutriwise/models"
	"github.com/raushankrgupta/nutriwise/store"
	"github.com/raushankrgupta/nutriwise/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	FindByUserID(ctx context.Context, userID int64) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error)
	PushHealthItem(ctx context.Context, id primitive.ObjectID, field string, item interface{}, now time.Time) error
	ReplaceHealthItem(ctx context.Context, id primitive.ObjectID, field, itemID string, item interface{}, now time.Time) error
	PullHealthItem(ctx context.Context, id primitive.ObjectID, field, itemID string, now time.Time) error
}

type Sequencer interface {
	Next(ctx context.Context, name string) (int64, error)
}

type TokenIssuer interface {
	GenerateToken(userID, email, role string) (string, error)
}

type Notifier interface {
	SendAsync(msg utils.Message)
	NotifyAdmin(event string, details map[string]string)
}

// Service owns registration, sign-in and the user profile.
type Service struct {
	users    UserStore
	seq      Sequencer
	tokens   TokenIssuer
	notifier Notifier
	now      func() time.Time
	cost     int
}

func NewService(users UserStore, seq Sequencer, tokens TokenIssuer, notifier Notifier) *Service {
	return &Service{
		users:    users,
		seq:      seq,
		tokens:   tokens,
		notifier: notifier,
		now:      time.Now,
		cost:     bcrypt.DefaultCost,
	}
}

// RegisterRequest is the sign-up payload.
type RegisterRequest struct {
	FullName    string `json:"full_name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,phone"`
	DateOfBirth string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	City        string `json:"city" validate:"required,min=2,max=50"`
	State       string `json:"state" validate:"required,min=2,max=50"`
	Password    string `json:"password" validate:"required,password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse is returned by a successful sign-in.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a patient account. Email and phone must be unused.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, models.Conflict("Email already registered")
	} else if !store.IsNotFound(err) {
		return nil, models.Internal("Internal server error during registration", err)
	}
	if _, err := s.users.FindByPhone(ctx, req.Phone); err == nil {
		return nil, models.Conflict("Phone number already registered")
	} else if !store.IsNotFound(err) {
		return nil, models.Internal("Internal server error during registration", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, models.Internal("Internal server error during registration", err)
	}
	userID, err := s.seq.Next(ctx, store.SequenceUserID)
	if err != nil {
		return nil, models.Internal("Internal server error during registration", err)
	}

	now := s.now().UTC()
	u := &models.User{
		UserID:         userID,
		FullName:       req.FullName,
		Email:          email,
		Phone:          req.Phone,
		DateOfBirth:    req.DateOfBirth,
		City:           req.City,
		State:          req.State,
		HashedPassword: string(hashed),
		Role:           models.RolePatient,
		IsActive:       true,
		HealthProfile:  models.NewHealthProfile(now),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, models.Conflict("Email or phone number already registered")
		}
		return nil, models.Internal("Internal server error during registration", err)
	}

	s.notifier.SendAsync(utils.RegistrationWelcome(u.FullName, u.Email))
	s.notifier.NotifyAdmin("New User Registration", map[string]string{
		"full_name": u.FullName,
		"email":     u.Email,
		"phone":     u.Phone,
		"city":      u.City,
		"state":     u.State,
		"user_id":   fmt.Sprint(u.UserID),
		"timestamp": now.Format(time.RFC3339),
	})
	return u, nil
}

var errBadCredentials = models.Unauthorized("Invalid email or password")

// Login verifies the password and issues a bearer token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	u, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if store.IsNotFound(err) {
		return nil, errBadCredentials
	}
	if err != nil {
		return nil, models.Internal("Internal server error during login", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(req.Password)) != nil {
		return nil, errBadCredentials
	}
	return s.issue(u)
}

// LoginWithEmail issues a token for an account whose email was verified by
// an external identity provider.
func (s *Service) LoginWithEmail(ctx context.Context, email string) (*TokenResponse, error) {
	u, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if store.IsNotFound(err) {
		return nil, models.Unauthorized("No account registered for this email")
	}
	if err != nil {
		return nil, models.Internal("Internal server error during login", err)
	}
	return s.issue(u)
}

func (s *Service) issue(u *models.User) (*TokenResponse, error) {
	if !u.IsActive {
		return nil, models.Unauthorized("Account is deactivated")
	}
	token, err := s.tokens.GenerateToken(u.ID.Hex(), u.Email, u.Role)
	if err != nil {
		return nil, models.Internal("Internal server error during login", err)
	}
	return &TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// Authenticate resolves the subject of a verified token to an active user.
func (s *Service) Authenticate(ctx context.Context, claims *utils.Claims) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, models.Unauthorized("Could not validate credentials")
	}
	u, err := s.users.FindByID(ctx, id)
	if store.IsNotFound(err) {
		return nil, models.Unauthorized("Could not validate credentials")
	}
	if err != nil {
		return nil, models.Internal("Error loading user", err)
	}
	if !u.IsActive {
		return nil, models.Unauthorized("Account is deactivated")
	}
	return u, nil
}

// Me returns the caller, giving old accounts an empty health profile on first access.
func (s *Service) Me(ctx context.Context, u *models.User) (*models.User, error) {
	if u.HealthProfile != nil {
		return u, nil
	}
	now := s.now().UTC()
	updated, err := s.users.Update(ctx, u.ID, bson.M{"health_profile": models.NewHealthProfile(now), "updated_at": now})
	if store.IsNotFound(err) {
		return nil, models.NotFound("User not found")
	}
	if err != nil {
		return nil, models.Internal("Internal server error", err)
	}
	return updated, nil
}

// ByUserID looks a user up by the public numeric id.
func (s *Service) ByUserID(ctx context.Context, userID int64) (*models.User, error) {
	u, err := s.users.FindByUserID(ctx, userID)
	if store.IsNotFound(err) {
		return nil, models.NotFound("User not found")
	}
	if err != nil {
		return nil, models.Internal("Internal server error", err)
	}
	return u, nil
}
