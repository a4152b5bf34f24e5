package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/raushankrgupta/nutriwise/models"
	"github.com/raushankrgupta/nutriwise/tracking"
	"github.com/raushankrgupta/nutriwise/utils"
)

func (s *Server) TodayHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Today Tracking API]")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	today, err := s.tracking.Today(r.Context(), user.UserID)
	if err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, today)
}

func (s *Server) UpdateMealHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Update Meal API]")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req tracking.MealUpdateRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	if err := s.tracking.UpdateMeal(r.Context(), user.UserID, req); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Meal %s completed=%t for user_id %d", req.MealType, req.Completed, user.UserID))
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Meal status updated successfully"})
}

func (s *Server) UpdateWaterHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Update Water API]")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req tracking.WaterIntakeRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	if err := s.tracking.UpdateWater(r.Context(), user.UserID, req); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Water intake updated successfully"})
}

func (s *Server) AddWeightEntryHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Add Weight Entry API]")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req tracking.WeightEntryRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	bmi, err := s.tracking.AddWeightEntry(r.Context(), user.UserID, req)
	if err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"message": "Weight entry added successfully",
		"bmi":     bmi,
	})
}

func (s *Server) AddExerciseHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Add Exercise API]")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req tracking.ExerciseRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	if err := s.tracking.AddExercise(r.Context(), user.UserID, req); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Exercise entry added successfully"})
}

func (s *Server) AddWeightLogHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Add Weight Log API]")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req tracking.WeightLogRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	entry, err := s.tracking.AddWeightLog(r.Context(), user.UserID, req)
	if err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Weight log %s saved for user_id %d", entry.ID.Hex(), user.UserID))
	utils.RespondJSON(w, http.StatusOK, entry)
}

func (s *Server) ListWeightLogsHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[List Weight Logs API]")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	days, err := utils.QueryInt(r, "days", 30)
	if err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	limit, err := utils.QueryInt(r, "limit", 100)
	if err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	logs, err := s.tracking.ListWeightLogs(r.Context(), user.UserID, days, limit)
	if err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	if logs == nil {
		logs = []models.WeightLog{}
	}
	utils.RespondJSON(w, http.StatusOK, logs)
}

func (s *Server) DeleteWeightLogHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Delete Weight Log API]")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	if err := s.tracking.DeleteWeightLog(r.Context(), user.UserID, mux.Vars(r)["log_id"]); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Weight log deleted successfully"})
}

func (s *Server) WeightHistoryHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Weight History API]")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	days, err := utils.QueryInt(r, "days", 30)
	if err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	history, err := s.tracking.WeightHistory(r.Context(), user.UserID, days)
	if err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, history)
}

func (s *Server) WeightAnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Weight Analytics API]")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	days, err := utils.QueryInt(r, "days", 90)
	if err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	analytics, err := s.tracking.WeightAnalytics(r.Context(), user.UserID, days)
	if err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, analytics)
}

func (s *Server) AnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Analytics API]")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	days, err := utils.QueryInt(r, "days", 30)
	if err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	analytics, err := s.tracking.Analytics(r.Context(), user.UserID, days)
	if err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, analytics)
}

func (s *Server) DailySummaryHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Daily Summary API]")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	summary, err := s.tracking.DailySummary(r.Context(), user.UserID, mux.Vars(r)["tracking_date"])
	if err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, summary)
}

func (s *Server) WeeklySummaryHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Weekly Summary API]")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	summary, err := s.tracking.WeeklySummary(r.Context(), user.UserID, r.URL.Query().Get("start_date"))
	if err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, summary)
}

func (s *Server) UpdateMoodHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Update Mood API]")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req tracking.MoodRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	if err := s.tracking.UpdateMood(r.Context(), user.UserID, mux.Vars(r)["tracking_date"], req.Mood); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Mood updated successfully"})
}

func (s *Server) UpdateSleepHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Update Sleep API]")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req tracking.SleepRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	if err := s.tracking.UpdateSleep(r.Context(), user.UserID, mux.Vars(r)["tracking_date"], *req.SleepHours); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Sleep hours updated successfully"})
}
