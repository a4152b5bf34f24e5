package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/raushankrgupta/nutriwise/account"
	"github.com/raushankrgupta/nutriwise/models"
	"github.com/raushankrgupta/nutriwise/utils"
)

// UserProfileHandler returns a user by the public numeric id
func (s *Server) UserProfileHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[User Profile API]")

	userID, err := strconv.ParseInt(mux.Vars(r)["user_id"], 10, 64)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid user ID", http.StatusBadRequest)
		return
	}
	user, err := s.accounts.ByUserID(r.Context(), userID)
	if err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, user)
}

// UpdateProfileHandler updates the caller's profile fields
func (s *Server) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Update Profile API]")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req account.UpdateProfileRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	updated, err := s.accounts.UpdateProfile(r.Context(), user, req)
	if err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Profile updated for user_id %d", user.UserID))
	utils.RespondJSON(w, http.StatusOK, updated)
}

func (s *Server) AddHealthConditionHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Add Health Condition API]")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req models.HealthCondition
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	id, err := s.accounts.AddHealthCondition(r.Context(), user, req)
	if err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"message":      "Health condition added successfully",
		"condition_id": id,
	})
}

func (s *Server) UpdateHealthConditionHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Update Health Condition API]")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req models.HealthCondition
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	if err := s.accounts.UpdateHealthCondition(r.Context(), user, mux.Vars(r)["id"], req); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Health condition updated successfully"})
}

func (s *Server) DeleteHealthConditionHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Delete Health Condition API]")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := s.accounts.DeleteHealthCondition(r.Context(), user, mux.Vars(r)["id"]); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Health condition deleted successfully"})
}

func (s *Server) AddDiseaseHistoryHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Add Disease History API]")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req models.DiseaseHistory
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	id, err := s.accounts.AddDiseaseHistory(r.Context(), user, req)
	if err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"message":    "Disease history added successfully",
		"disease_id": id,
	})
}

func (s *Server) UpdateDiseaseHistoryHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Update Disease History API]")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req models.DiseaseHistory
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	if err := s.accounts.UpdateDiseaseHistory(r.Context(), user, mux.Vars(r)["id"], req); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Disease history updated successfully"})
}

func (s *Server) DeleteDiseaseHistoryHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Delete Disease History API]")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := s.accounts.DeleteDiseaseHistory(r.Context(), user, mux.Vars(r)["id"]); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Disease history deleted successfully"})
}
