package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/nutriwise/account"
	"github.com/raushankrgupta/nutriwise/utils"
)

// RegisterHandler handles user registration
func (s *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Register API]")

	var req account.RegisterRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}

	user, err := s.accounts.Register(r.Context(), req)
	if err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("User registered with user_id %d", user.UserID))
	utils.RespondJSON(w, http.StatusCreated, user)
}

// LoginHandler handles user login
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Login API]")

	var req account.LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}

	token, err := s.accounts.Login(r.Context(), req)
	if err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, "Login successful")
	utils.RespondJSON(w, http.StatusOK, token)
}

// MeHandler returns the authenticated user
func (s *Server) MeHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Me API]")

	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	me, err := s.accounts.Me(r.Context(), user)
	if err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, me)
}

// LogoutHandler acknowledges a logout. Tokens are stateless, the client discards its copy.
func (s *Server) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Successfully logged out"})
}
