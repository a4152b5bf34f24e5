package store

import (
	"context"
	"fmt"

	"github.com/raushankrgupta/nutriwise/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ContactStore persists contact form submissions.
type ContactStore struct {
	coll *mongo.Collection
}

func NewContactStore(m *Mongo) *ContactStore {
	return &ContactStore{coll: m.Collection(ContactsCollection)}
}

func (s *ContactStore) Create(ctx context.Context, c *models.ContactMessage) error {
	if _, err := s.coll.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("failed to save contact message: %w", err)
	}
	return nil
}

// ListRecent returns the newest limit messages.
func (s *ContactStore) ListRecent(ctx context.Context, limit int) ([]models.ContactMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(int64(limit))
	return findAll[models.ContactMessage](ctx, s.coll, bson.M{}, opts)
}

func (s *ContactStore) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
