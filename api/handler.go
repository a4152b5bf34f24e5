package api

import (
	"context"
	"net/http"
	"time"

	"github.com/raushankrgupta/nutriwise/models"
	"github.com/raushankrgupta/nutriwise/utils"
)

func (s *Server) RootHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Welcome to NutriWise API"})
}

// HealthHandler reports healthy unless the database stops answering pings.
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.Ping(ctx); err != nil {
			utils.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy", "database": err.Error()})
			return
		}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func currentUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := GetUserFromContext(r.Context())
	if !ok {
		utils.RespondError(w, nil, "Not authenticated", http.StatusUnauthorized)
	}
	return user, ok
}
