package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/raushankrgupta/nutriwise/account"
	"github.com/raushankrgupta/nutriwise/booking"
	"github.com/raushankrgupta/nutriwise/contact"
	"github.com/raushankrgupta/nutriwise/content"
	"github.com/raushankrgupta/nutriwise/tracking"
	"github.com/raushankrgupta/nutriwise/utils"
	"golang.org/x/oauth2"
)

type TokenValidator interface {
	ValidateToken(token string) (*utils.Claims, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies are the services behind the HTTP API. OAuth may be nil to
// disable Google sign-in; DB may be nil to skip the database health check.
type Dependencies struct {
	Accounts *account.Service
	Tokens   TokenValidator
	Tracking *tracking.Service
	Bookings *booking.Service
	Content  *content.Service
	Contacts *contact.Service
	OAuth    *oauth2.Config
	DB       Pinger
}

// Server exposes the services over HTTP.
type Server struct {
	accounts    *account.Service
	tokens      TokenValidator
	tracking    *tracking.Service
	bookings    *booking.Service
	content     *content.Service
	contacts    *contact.Service
	oauth       *oauth2.Config
	db          Pinger
	userInfoURL string
}

func NewServer(d Dependencies) *Server {
	return &Server{
		accounts:    d.Accounts,
		tokens:      d.Tokens,
		tracking:    d.Tracking,
		bookings:    d.Bookings,
		content:     d.Content,
		contacts:    d.Contacts,
		oauth:       d.OAuth,
		db:          d.DB,
		userInfoURL: googleUserInfoURL,
	}
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r *mux.Router) {
	r.HandleFunc("/", s.RootHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", s.HealthHandler).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", s.RegisterHandler).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.LoginHandler).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", s.authenticate(s.MeHandler)).Methods(http.MethodGet)
	api.HandleFunc("/auth/logout", s.authenticate(s.LogoutHandler)).Methods(http.MethodPost)
	api.HandleFunc("/auth/google/login", s.GoogleLoginHandler).Methods(http.MethodGet)
	api.HandleFunc("/auth/google/callback", s.GoogleCallbackHandler).Methods(http.MethodGet)

	api.HandleFunc("/profile/me", s.authenticate(s.MeHandler)).Methods(http.MethodGet)
	api.HandleFunc("/profile/user/{user_id:[0-9]+}", s.authenticate(s.UserProfileHandler)).Methods(http.MethodGet)
	api.HandleFunc("/profile/update", s.authenticate(s.UpdateProfileHandler)).Methods(http.MethodPut)
	api.HandleFunc("/profile/health-condition", s.authenticate(s.AddHealthConditionHandler)).Methods(http.MethodPost)
	api.HandleFunc("/profile/health-condition/{id}", s.authenticate(s.UpdateHealthConditionHandler)).Methods(http.MethodPut)
	api.HandleFunc("/profile/health-condition/{id}", s.authenticate(s.DeleteHealthConditionHandler)).Methods(http.MethodDelete)
	api.HandleFunc("/profile/disease-history", s.authenticate(s.AddDiseaseHistoryHandler)).Methods(http.MethodPost)
	api.HandleFunc("/profile/disease-history/{id}", s.authenticate(s.UpdateDiseaseHistoryHandler)).Methods(http.MethodPut)
	api.HandleFunc("/profile/disease-history/{id}", s.authenticate(s.DeleteDiseaseHistoryHandler)).Methods(http.MethodDelete)

	gt := api.PathPrefix("/goal-tracking").Subrouter()
	gt.HandleFunc("/today", s.authenticate(s.TodayHandler)).Methods(http.MethodGet)
	gt.HandleFunc("/meal", s.authenticate(s.UpdateMealHandler)).Methods(http.MethodPut)
	gt.HandleFunc("/water-intake", s.authenticate(s.UpdateWaterHandler)).Methods(http.MethodPut)
	gt.HandleFunc("/weight", s.authenticate(s.AddWeightEntryHandler)).Methods(http.MethodPost)
	gt.HandleFunc("/exercise", s.authenticate(s.AddExerciseHandler)).Methods(http.MethodPost)
	gt.HandleFunc("/weight-log", s.authenticate(s.AddWeightLogHandler)).Methods(http.MethodPost)
	gt.HandleFunc("/weight-logs", s.authenticate(s.ListWeightLogsHandler)).Methods(http.MethodGet)
	gt.HandleFunc("/weight-log/{log_id}", s.authenticate(s.DeleteWeightLogHandler)).Methods(http.MethodDelete)
	gt.HandleFunc("/weight-history", s.authenticate(s.WeightHistoryHandler)).Methods(http.MethodGet)
	gt.HandleFunc("/weight-analytics", s.authenticate(s.WeightAnalyticsHandler)).Methods(http.MethodGet)
	gt.HandleFunc("/analytics", s.authenticate(s.AnalyticsHandler)).Methods(http.MethodGet)
	gt.HandleFunc("/daily-summary/{tracking_date}", s.authenticate(s.DailySummaryHandler)).Methods(http.MethodGet)
	gt.HandleFunc("/weekly-summary", s.authenticate(s.WeeklySummaryHandler)).Methods(http.MethodGet)
	gt.HandleFunc("/mood/{tracking_date}", s.authenticate(s.UpdateMoodHandler)).Methods(http.MethodPut)
	gt.HandleFunc("/sleep/{tracking_date}", s.authenticate(s.UpdateSleepHandler)).Methods(http.MethodPut)

	api.HandleFunc("/consultations/dietitians", s.ListDietitiansHandler).Methods(http.MethodGet)
	api.HandleFunc("/consultations/dietitians", s.requireAdmin(s.AddDietitianHandler)).Methods(http.MethodPost)
	api.HandleFunc("/consultations/book", s.authenticate(s.BookConsultationHandler)).Methods(http.MethodPost)
	api.HandleFunc("/consultations/my-bookings", s.authenticate(s.MyBookingsHandler)).Methods(http.MethodGet)
	api.HandleFunc("/consultations/cancel/{booking_id:[0-9]+}", s.authenticate(s.CancelBookingHandler)).Methods(http.MethodPut)

	api.HandleFunc("/dietplan/generate", s.authenticate(s.GenerateDietPlanHandler)).Methods(http.MethodPost)
	api.HandleFunc("/dietplan/user-plans", s.authenticate(s.UserDietPlansHandler)).Methods(http.MethodGet)
	api.HandleFunc("/quiz/tip-of-the-day", s.TipOfTheDayHandler).Methods(http.MethodGet)
	api.HandleFunc("/quiz/generate-question", s.authenticate(s.GenerateQuestionHandler)).Methods(http.MethodGet)
	api.HandleFunc("/quiz/submit-answer", s.authenticate(s.SubmitAnswerHandler)).Methods(http.MethodPost)
	api.HandleFunc("/myth/generate-myths", s.authenticate(s.GenerateMythsHandler)).Methods(http.MethodGet)
	api.HandleFunc("/myth/random-myth", s.authenticate(s.RandomMythHandler)).Methods(http.MethodGet)
	api.HandleFunc("/chatbot/nutrition-advice", s.NutritionAdviceHandler).Methods(http.MethodPost)
	api.HandleFunc("/chatbot/health", s.ChatbotHealthHandler).Methods(http.MethodGet)

	api.HandleFunc("/contact/submit", s.SubmitContactHandler).Methods(http.MethodPost)
	api.HandleFunc("/contact/messages", s.requireAdmin(s.ContactMessagesHandler)).Methods(http.MethodGet)
	api.HandleFunc("/contact/{contact_id}/status", s.requireAdmin(s.UpdateContactStatusHandler)).Methods(http.MethodPut)
}
