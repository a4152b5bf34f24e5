package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	SequenceUserID    = "user_id"
	SequenceBookingID = "booking_id"
	SequenceContact   = "contact"
)

// Sequences hands out monotonically increasing integers per named counter.
type Sequences struct {
	coll *mongo.Collection
}

func NewSequences(m *Mongo) *Sequences {
	return &Sequences{coll: m.Collection(CountersCollection)}
}

// Next atomically increments the named counter and returns the new value.
// The first call for a name returns 1.
func (s *Sequences) Next(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Value int64 `bson:"sequence_value"`
	}
	err := s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"sequence_value": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to advance sequence %s: %w", name, err)
	}
	return counter.Value, nil
}
