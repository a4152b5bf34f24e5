package store

import (
	"context"
	"fmt"

	"github.com/raushankrgupta/nutriwise/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DietPlanStore indexes diet plans archived in object storage.
type DietPlanStore struct {
	coll *mongo.Collection
}

func NewDietPlanStore(m *Mongo) *DietPlanStore {
	return &DietPlanStore{coll: m.Collection(DietPlansCollection)}
}

func (s *DietPlanStore) Create(ctx context.Context, p *models.SavedDietPlan) error {
	if _, err := s.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to index diet plan: %w", err)
	}
	return nil
}

// ListByUser returns the user's plans, newest first.
func (s *DietPlanStore) ListByUser(ctx context.Context, userID int64, limit int) ([]models.SavedDietPlan, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(int64(limit))
	return findAll[models.SavedDietPlan](ctx, s.coll, bson.M{"user_id": userID}, opts)
}
