package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/raushankrgupta/nutriwise/booking"
	"github.com/raushankrgupta/nutriwise/models"
	"github.com/raushankrgupta/nutriwise/utils"
)

// ListDietitiansHandler is public.
func (s *Server) ListDietitiansHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[List Dietitians API]")

	dietitians, err := s.bookings.ListDietitians(r.Context())
	if err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	if dietitians == nil {
		dietitians = []models.Dietitian{}
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Found %d dietitians", len(dietitians)))
	utils.RespondJSON(w, http.StatusOK, dietitians)
}

func (s *Server) AddDietitianHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Add Dietitian API]")

	var d models.Dietitian
	if err := utils.DecodeJSON(r, &d); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	if err := s.bookings.AddDietitian(r.Context(), &d); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Dietitian %s created", d.ID.Hex()))
	utils.RespondJSON(w, http.StatusCreated, d)
}

func (s *Server) BookConsultationHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Book Consultation API]")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req booking.BookRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	resp, err := s.bookings.Book(r.Context(), user, req)
	if err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Booking %d created for user_id %d", resp.BookingID, user.UserID))
	utils.RespondJSON(w, http.StatusOK, resp)
}

func (s *Server) MyBookingsHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[My Bookings API]")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	bookings, err := s.bookings.MyBookings(r.Context(), user)
	if err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	if bookings == nil {
		bookings = []booking.BookingResponse{}
	}
	utils.RespondJSON(w, http.StatusOK, bookings)
}

func (s *Server) CancelBookingHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Cancel Booking API]")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	bookingID, err := strconv.ParseInt(mux.Vars(r)["booking_id"], 10, 64)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid booking ID", http.StatusBadRequest)
		return
	}
	if err := s.bookings.Cancel(r.Context(), user, bookingID); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Booking %d cancelled", bookingID))
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Booking cancelled successfully"})
}
