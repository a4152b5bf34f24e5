package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/raushankrgupta/nutriwise/models"
	"github.com/raushankrgupta/nutriwise/store"
	"go.mongodb.org/mongo-driver/bson"
)

// UpdateProfileRequest changes the non-empty fields only. A health profile
// replaces the stored one as a whole.
type UpdateProfileRequest struct {
	FullName      string                `json:"full_name" validate:"omitempty,min=2,max=100"`
	Phone         string                `json:"phone" validate:"omitempty,phone"`
	City          string                `json:"city" validate:"omitempty,min=2,max=50"`
	State         string                `json:"state" validate:"omitempty,min=2,max=50"`
	HealthProfile *models.HealthProfile `json:"health_profile" validate:"omitempty"`
}

func (s *Service) UpdateProfile(ctx context.Context, u *models.User, req UpdateProfileRequest) (*models.User, error) {
	now := s.now().UTC()
	set := bson.M{"updated_at": now}
	if req.FullName != "" {
		set["full_name"] = req.FullName
	}
	if req.Phone != "" {
		set["phone"] = req.Phone
	}
	if req.City != "" {
		set["city"] = req.City
	}
	if req.State != "" {
		set["state"] = req.State
	}
	if hp := req.HealthProfile; hp != nil {
		normalizeHealthProfile(hp)
		hp.LastUpdated = now
		set["health_profile"] = hp
	}

	updated, err := s.users.Update(ctx, u.ID, set)
	switch {
	case store.IsNotFound(err):
		return nil, models.NotFound("User not found")
	case errors.Is(err, store.ErrDuplicate):
		return nil, models.Conflict("Phone number already registered")
	case err != nil:
		return nil, models.Internal("Internal server error", err)
	}
	return updated, nil
}

// normalizeHealthProfile keeps lists non-null and gives new entries ids.
func normalizeHealthProfile(hp *models.HealthProfile) {
	if hp.Allergies == nil {
		hp.Allergies = []string{}
	}
	if hp.CurrentMedications == nil {
		hp.CurrentMedications = []string{}
	}
	if hp.DietaryRestrictions == nil {
		hp.DietaryRestrictions = []string{}
	}
	if hp.HealthConditions == nil {
		hp.HealthConditions = []models.HealthCondition{}
	}
	if hp.DiseaseHistory == nil {
		hp.DiseaseHistory = []models.DiseaseHistory{}
	}
	for i := range hp.HealthConditions {
		if hp.HealthConditions[i].ID == "" {
			hp.HealthConditions[i].ID = uuid.NewString()
		}
	}
	for i := range hp.DiseaseHistory {
		if hp.DiseaseHistory[i].ID == "" {
			hp.DiseaseHistory[i].ID = uuid.NewString()
		}
	}
}

// ensureProfile gives the user an empty health profile before an item is pushed onto it.
func (s *Service) ensureProfile(ctx context.Context, u *models.User) error {
	if u.HealthProfile != nil {
		return nil
	}
	_, err := s.Me(ctx, u)
	return err
}

func (s *Service) AddHealthCondition(ctx context.Context, u *models.User, c models.HealthCondition) (string, error) {
	if err := s.ensureProfile(ctx, u); err != nil {
		return "", err
	}
	now := s.now().UTC()
	c.ID = uuid.NewString()
	c.CreatedAt, c.UpdatedAt = now, now
	if c.Medications == nil {
		c.Medications = []string{}
	}
	if err := s.users.PushHealthItem(ctx, u.ID, store.HealthConditionsField, c, now); err != nil {
		if store.IsNotFound(err) {
			return "", models.NotFound("User not found")
		}
		return "", models.Internal("Error adding health condition", err)
	}
	return c.ID, nil
}

func (s *Service) UpdateHealthCondition(ctx context.Context, u *models.User, id string, c models.HealthCondition) error {
	if c.Medications == nil {
		c.Medications = []string{}
	}
	err := s.users.ReplaceHealthItem(ctx, u.ID, store.HealthConditionsField, id, c, s.now().UTC())
	if store.IsNotFound(err) {
		return models.NotFound("Health condition not found")
	}
	if err != nil {
		return models.Internal("Error updating health condition", err)
	}
	return nil
}

func (s *Service) DeleteHealthCondition(ctx context.Context, u *models.User, id string) error {
	err := s.users.PullHealthItem(ctx, u.ID, store.HealthConditionsField, id, s.now().UTC())
	if store.IsNotFound(err) {
		return models.NotFound("Health condition not found")
	}
	if err != nil {
		return models.Internal("Error deleting health condition", err)
	}
	return nil
}

func (s *Service) AddDiseaseHistory(ctx context.Context, u *models.User, d models.DiseaseHistory) (string, error) {
	if err := s.ensureProfile(ctx, u); err != nil {
		return "", err
	}
	now := s.now().UTC()
	d.ID = uuid.NewString()
	d.CreatedAt, d.UpdatedAt = now, now
	if d.Complications == nil {
		d.Complications = []string{}
	}
	if err := s.users.PushHealthItem(ctx, u.ID, store.DiseaseHistoryField, d, now); err != nil {
		if store.IsNotFound(err) {
			return "", models.NotFound("User not found")
		}
		return "", models.Internal("Error adding disease history", err)
	}
	return d.ID, nil
}

func (s *Service) UpdateDiseaseHistory(ctx context.Context, u *models.User, id string, d models.DiseaseHistory) error {
	if d.Complications == nil {
		d.Complications = []string{}
	}
	err := s.users.ReplaceHealthItem(ctx, u.ID, store.DiseaseHistoryField, id, d, s.now().UTC())
	if store.IsNotFound(err) {
		return models.NotFound("Disease history not found")
	}
	if err != nil {
		return models.Internal("Error updating disease history", err)
	}
	return nil
}

func (s *Service) DeleteDiseaseHistory(ctx context.Context, u *models.User, id string) error {
	err := s.users.PullHealthItem(ctx, u.ID, store.DiseaseHistoryField, id, s.now().UTC())
	if store.IsNotFound(err) {
		return models.NotFound("Disease history not found")
	}
	if err != nil {
		return models.Internal("Error deleting disease history", err)
	}
	return nil
}
