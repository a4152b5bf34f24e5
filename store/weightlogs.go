package store

import (
	"context"
	"fmt"
	"time"

	"github.com/raushankrgupta/nutriwise/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WeightLogStore persists the authoritative weight history.
type WeightLogStore struct {
	coll *mongo.Collection
}

func NewWeightLogStore(m *Mongo) *WeightLogStore {
	return &WeightLogStore{coll: m.Collection(WeightLogsCollection)}
}

// Insert stores entry and sets its ID.
func (s *WeightLogStore) Insert(ctx context.Context, entry *models.WeightLog) error {
	res, err := s.coll.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to insert weight log: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		entry.ID = oid
	}
	return nil
}

// ListSince returns logs with logged_at >= since. limit <= 0 means no limit.
func (s *WeightLogStore) ListSince(ctx context.Context, userID int64, since time.Time, newestFirst bool, limit int) ([]models.WeightLog, error) {
	order := 1
	if newestFirst {
		order = -1
	}
	opts := options.Find().SetSort(bson.D{{Key: "logged_at", Value: order}, {Key: "_id", Value: order}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	return findAll[models.WeightLog](ctx, s.coll, bson.M{
		"user_id":   userID,
		"logged_at": bson.M{"$gte": since},
	}, opts)
}

// LatestBetween returns the newest log with logged_at in [from, to).
func (s *WeightLogStore) LatestBetween(ctx context.Context, userID int64, from, to time.Time) (*models.WeightLog, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "logged_at", Value: -1}, {Key: "_id", Value: -1}})
	return findOne[models.WeightLog](ctx, s.coll, bson.M{
		"user_id":   userID,
		"logged_at": bson.M{"$gte": from, "$lt": to},
	}, opts)
}

// Delete removes the log when it belongs to userID.
func (s *WeightLogStore) Delete(ctx context.Context, userID int64, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
