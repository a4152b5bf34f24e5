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

// Health profile list fields addressable by the item operations.
const (
	HealthConditionsField = "health_conditions"
	DiseaseHistoryField   = "disease_history"
)

// UserStore persists user documents and their embedded health profile.
type UserStore struct {
	coll *mongo.Collection
}

func NewUserStore(m *Mongo) *UserStore {
	return &UserStore{coll: m.Collection(UsersCollection)}
}

func (s *UserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return findOne[models.User](ctx, s.coll, bson.M{"_id": id})
}

func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, s.coll, bson.M{"email": email})
}

func (s *UserStore) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	return findOne[models.User](ctx, s.coll, bson.M{"phone": phone})
}

func (s *UserStore) FindByUserID(ctx context.Context, userID int64) (*models.User, error) {
	return findOne[models.User](ctx, s.coll, bson.M{"user_id": userID})
}

// Create inserts u and sets its ID.
func (s *UserStore) Create(ctx context.Context, u *models.User) error {
	res, err := s.coll.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

// Update applies set to the user and returns the updated document.
func (s *UserStore) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	err := s.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// PushHealthItem appends item to health_profile.<field>.
func (s *UserStore) PushHealthItem(ctx context.Context, id primitive.ObjectID, field string, item interface{}, now time.Time) error {
	res, err := s.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$push": bson.M{"health_profile." + field: item},
		"$set":  bson.M{"health_profile.last_updated": now, "updated_at": now},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceHealthItem overwrites the entry of health_profile.<field> whose id
// matches, keeping its id and created_at. ErrNotFound when no entry matches.
func (s *UserStore) ReplaceHealthItem(ctx context.Context, id primitive.ObjectID, field, itemID string, item interface{}, now time.Time) error {
	raw, err := bson.Marshal(item)
	if err != nil {
		return err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return err
	}

	prefix := "health_profile." + field + ".$."
	set := bson.M{"health_profile.last_updated": now, "updated_at": now}
	for k, v := range doc {
		if k == "id" || k == "created_at" {
			continue
		}
		set[prefix+k] = v
	}
	set[prefix+"updated_at"] = now

	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id, "health_profile." + field + ".id": itemID},
		bson.M{"$set": set},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PullHealthItem removes the entry of health_profile.<field> with itemID.
func (s *UserStore) PullHealthItem(ctx context.Context, id primitive.ObjectID, field, itemID string, now time.Time) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"_id": id, "health_profile." + field + ".id": itemID},
		bson.M{
			"$pull": bson.M{"health_profile." + field: bson.M{"id": itemID}},
			"$set":  bson.M{"health_profile.last_updated": now, "updated_at": now},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
