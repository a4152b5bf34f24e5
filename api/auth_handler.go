package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/raushankrgupta/nutriwise/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
	oauthStateCookie  = "oauth_state"
)

// NewGoogleOAuthConfig returns nil when no client id is configured.
func NewGoogleOAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	if clientID == "" {
		return nil
	}
	return &oauth2.Config{
		RedirectURL:  redirectURL,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
		Endpoint:     google.Endpoint,
	}
}

type googleUserInfo struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

// GoogleLoginHandler handles the login request by redirecting to Google
func (s *Server) GoogleLoginHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Google Login API]")

	if s.oauth == nil {
		utils.RespondError(w, &logMessageBuilder, "Google sign-in is not configured", http.StatusServiceUnavailable)
		return
	}

	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/api/auth/google",
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	utils.AddToLogMessage(&logMessageBuilder, "Redirecting to Google Auth")
	http.Redirect(w, r, s.oauth.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GoogleCallbackHandler exchanges the code and signs in the account with the verified email
func (s *Server) GoogleCallbackHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer utils.FlushLogMessage(r.Context(), &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Google Callback API]")

	if s.oauth == nil {
		utils.RespondError(w, &logMessageBuilder, "Google sign-in is not configured", http.StatusServiceUnavailable)
		return
	}

	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || cookie.Value == "" || r.FormValue("state") != cookie.Value {
		utils.RespondError(w, &logMessageBuilder, "Invalid OAuth state", http.StatusBadRequest)
		return
	}

	code := r.FormValue("code")
	if code == "" {
		utils.RespondError(w, &logMessageBuilder, "Code not found", http.StatusBadRequest)
		return
	}

	token, err := s.oauth.Exchange(r.Context(), code)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to exchange token: %v", err))
		utils.RespondError(w, nil, "Failed to exchange token", http.StatusBadGateway)
		return
	}

	resp, err := s.oauth.Client(r.Context(), token).Get(s.userInfoURL)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Failed to get user info: %v", err))
		utils.RespondError(w, nil, "Failed to get user info", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if resp.StatusCode != http.StatusOK {
		utils.RespondError(w, &logMessageBuilder, fmt.Sprintf("User info request failed with status %d", resp.StatusCode), http.StatusBadGateway)
		return
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Failed to read user info", http.StatusBadGateway)
		return
	}
	if info.Email == "" || !info.VerifiedEmail {
		utils.RespondError(w, &logMessageBuilder, "Google account email is not verified", http.StatusUnauthorized)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, "Successfully retrieved user info from Google")
	tokenResp, err := s.accounts.LoginWithEmail(r.Context(), info.Email)
	if err != nil {
		utils.RespondAppError(w, &logMessageBuilder, err)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: oauthStateCookie, Value: "", Path: "/api/auth/google", MaxAge: -1})
	utils.RespondJSON(w, http.StatusOK, tokenResp)
}
