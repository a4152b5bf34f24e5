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

// BookingStore persists consultation bookings.
type BookingStore struct {
	coll *mongo.Collection
}

func NewBookingStore(m *Mongo) *BookingStore {
	return &BookingStore{coll: m.Collection(BookingsCollection)}
}

func (s *BookingStore) Create(ctx context.Context, b *models.ConsultationBooking) error {
	res, err := s.coll.InsertOne(ctx, b)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		b.ID = oid
	}
	return nil
}

// ListByPatient returns the patient's bookings, newest first.
func (s *BookingStore) ListByPatient(ctx context.Context, patientID primitive.ObjectID) ([]models.ConsultationBooking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findAll[models.ConsultationBooking](ctx, s.coll, bson.M{"patient_id": patientID}, opts)
}

// Cancel marks the booking cancelled when it belongs to patientID.
// Missing and foreign bookings both yield ErrNotFound.
func (s *BookingStore) Cancel(ctx context.Context, bookingID int64, patientID primitive.ObjectID, now time.Time) error {
	res, err := s.coll.UpdateOne(ctx,
		bson.M{"booking_id": bookingID, "patient_id": patientID},
		bson.M{"$set": bson.M{"status": models.BookingCancelled, "updated_at": now}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
