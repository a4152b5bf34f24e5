package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/nutriwise/content"
	"github.com/raushankrgupta/nutriwise/utils"
)

func (s *Server) GenerateDietPlanHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Generate Diet Plan API]")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	req := content.DefaultDietPlanRequest()
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Generating %s plan for user_id %d", req.PrimaryGoal, user.UserID))
	plan := s.content.GenerateDietPlan(r.Context(), user, req)
	utils.RespondJSON(w, http.StatusOK, plan)
}

func (s *Server) UserDietPlansHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[User Diet Plans API]")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	plans, err := s.content.UserPlans(r.Context(), user)
	if err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]any{"plans": plans})
}

func (s *Server) TipOfTheDayHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, s.content.TipOfTheDay(r.Context()))
}

func (s *Server) GenerateQuestionHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, s.content.GenerateQuestion(r.Context()))
}

func (s *Server) SubmitAnswerHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Submit Answer API]")

	var req content.AnswerRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, content.SubmitAnswer(req))
}

func (s *Server) GenerateMythsHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, s.content.GenerateMyths(r.Context()))
}

func (s *Server) RandomMythHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, s.content.RandomMyth(r.Context()))
}

func (s *Server) NutritionAdviceHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Nutrition Advice API]")

	var req content.ChatRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, s.content.NutritionAdvice(r.Context(), req))
}

func (s *Server) ChatbotHealthHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "nutrition_chatbot"})
}
