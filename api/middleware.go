package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/raushankrgupta/nutriwise/models"
	"github.com/raushankrgupta/nutriwise/utils"
)

type contextKey string

const userContextKey contextKey = "user"

// GetUserFromContext returns the caller resolved by the auth middleware.
func GetUserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userContextKey).(*models.User)
	return u, ok && u != nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// authenticate requires a valid bearer token for an existing, active user.
func (s *Server) authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			w.Header().Set("WWW-Authenticate", "Bearer")
			utils.RespondError(w, nil, "Not authenticated", http.StatusUnauthorized)
			return
		}
		claims, err := s.tokens.ValidateToken(token)
		if err != nil {
			w.Header().Set("WWW-Authenticate", "Bearer")
			utils.RespondError(w, nil, "Could not validate credentials", http.StatusUnauthorized)
			return
		}
		user, err := s.accounts.Authenticate(r.Context(), claims)
		if err != nil {
			if models.KindOf(err) == models.KindUnauthorized {
				w.Header().Set("WWW-Authenticate", "Bearer")
			}
			utils.RespondAppError(w, nil, err)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	}
}

// requireAdmin authenticates and then rejects non-admin callers.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return s.authenticate(func(w http.ResponseWriter, r *http.Request) {
		user, _ := GetUserFromContext(r.Context())
		if !user.IsAdmin() {
			utils.RespondError(w, nil, "Admin access required", http.StatusForbidden)
			return
		}
		next(w, r)
	})
}
