package store

import (
	"context"
	"fmt"

	"github.com/raushankrgupta/nutriwise/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DietitianStore is the dietitian read model.
type DietitianStore struct {
	coll *mongo.Collection
}

func NewDietitianStore(m *Mongo) *DietitianStore {
	return &DietitianStore{coll: m.Collection(DietitiansCollection)}
}

// List returns all dietitians, best rated first.
func (s *DietitianStore) List(ctx context.Context) ([]models.Dietitian, error) {
	opts := options.Find().SetSort(bson.D{{Key: "rating", Value: -1}, {Key: "name", Value: 1}})
	return findAll[models.Dietitian](ctx, s.coll, bson.M{}, opts)
}

func (s *DietitianStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Dietitian, error) {
	return findOne[models.Dietitian](ctx, s.coll, bson.M{"_id": id})
}

func (s *DietitianStore) Create(ctx context.Context, d *models.Dietitian) error {
	res, err := s.coll.InsertOne(ctx, d)
	if err != nil {
		return fmt.Errorf("failed to create dietitian: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		d.ID = oid
	}
	return nil
}

// UpsertByName replaces the dietitian with the same name, used by seeding.
func (s *DietitianStore) UpsertByName(ctx context.Context, d *models.Dietitian) error {
	set := bson.M{
		"specialization":  d.Specialization,
		"experience":      d.Experience,
		"rating":          d.Rating,
		"bio":             d.Bio,
		"profile_image":   d.ProfileImage,
		"available_slots": d.AvailableSlots,
	}
	_, err := s.coll.UpdateOne(ctx,
		bson.M{"name": d.Name},
		bson.M{"$set": set, "$setOnInsert": bson.M{"created_at": d.CreatedAt}},
		options.Update().SetUpsert(true),
	)
	return err
}
