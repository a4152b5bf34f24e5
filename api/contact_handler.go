package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/raushankrgupta/nutriwise/contact"
	"github.com/raushankrgupta/nutriwise/models"
	"github.com/raushankrgupta/nutriwise/utils"
)

// SubmitContactHandler is public.
func (s *Server) SubmitContactHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Contact Submit API]")

	var req contact.SubmitRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	msg, err := s.contacts.Submit(r.Context(), req)
	if err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Contact message %s stored", msg.ID))
	utils.RespondJSON(w, http.StatusOK, msg)
}

func (s *Server) ContactMessagesHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Contact Messages API]")

	msgs, err := s.contacts.Messages(r.Context())
	if err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	if msgs == nil {
		msgs = []models.ContactMessage{}
	}
	utils.RespondJSON(w, http.StatusOK, msgs)
}

func (s *Server) UpdateContactStatusHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Contact Status API]")

	id := mux.Vars(r)["contact_id"]
	status := r.URL.Query().Get("status")
	if err := s.contacts.UpdateStatus(r.Context(), id, status); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Contact %s marked %s", id, status))
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Status updated successfully"})
}
