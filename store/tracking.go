package store

import (
	"context"
	"errors"
	"time"

	"github.com/raushankrgupta/nutriwise/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TrackingStore persists the per-day goal tracking documents.
type TrackingStore struct {
	coll *mongo.Collection
}

func NewTrackingStore(m *Mongo) *TrackingStore {
	return &TrackingStore{coll: m.Collection(GoalTrackingCollection)}
}

func dayFilter(userID int64, date string) bson.M {
	return bson.M{"user_id": userID, "tracking_date": date}
}

// GetOrCreateDay returns the day document, creating it with the default meals
// when missing. Repeated or concurrent calls converge on one document.
func (s *TrackingStore) GetOrCreateDay(ctx context.Context, userID int64, date string, now time.Time) (*models.DailyGoalTracking, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	update := bson.M{"$setOnInsert": bson.M{
		"meals":      models.DefaultMeals(),
		"exercises":  []models.ExerciseEntry{},
		"created_at": now,
		"updated_at": now,
	}}

	var day models.DailyGoalTracking
	err := s.coll.FindOneAndUpdate(ctx, dayFilter(userID, date), update, opts).Decode(&day)
	if mongo.IsDuplicateKeyError(err) {
		// lost the insert race; the winner's document is there now
		return s.FindDay(ctx, userID, date)
	}
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func (s *TrackingStore) FindDay(ctx context.Context, userID int64, date string) (*models.DailyGoalTracking, error) {
	return findOne[models.DailyGoalTracking](ctx, s.coll, dayFilter(userID, date))
}

// UpdateMeal sets the state of one meal slot. ErrNotFound when the day or the slot is missing.
func (s *TrackingStore) UpdateMeal(ctx context.Context, userID int64, date string, meal models.MealEntry, now time.Time) error {
	filter := dayFilter(userID, date)
	filter["meals.meal_type"] = meal.MealType

	res, err := s.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{
		"meals.$.completed":    meal.Completed,
		"meals.$.completed_at": meal.CompletedAt,
		"meals.$.calories":     meal.Calories,
		"meals.$.notes":        meal.Notes,
		"updated_at":           now,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// upsertDay applies update to the day, creating it with default meals if needed.
func (s *TrackingStore) upsertDay(ctx context.Context, userID int64, date string, update bson.M, now time.Time) error {
	set, _ := update["$set"].(bson.M)
	if set == nil {
		set = bson.M{}
	}
	set["updated_at"] = now
	update["$set"] = set

	onInsert := bson.M{"meals": models.DefaultMeals(), "created_at": now}
	if _, pushing := update["$push"]; !pushing {
		onInsert["exercises"] = []models.ExerciseEntry{}
	}
	update["$setOnInsert"] = onInsert

	_, err := s.coll.UpdateOne(ctx, dayFilter(userID, date), update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		// concurrent insert of the same day; the retry hits the existing document
		_, err = s.coll.UpdateOne(ctx, dayFilter(userID, date), update, options.Update().SetUpsert(true))
	}
	return err
}

func (s *TrackingStore) SetWater(ctx context.Context, userID int64, date string, water models.WaterIntakeEntry, now time.Time) error {
	return s.upsertDay(ctx, userID, date, bson.M{"$set": bson.M{"water_intake": water}}, now)
}

func (s *TrackingStore) SetWeightEntry(ctx context.Context, userID int64, date string, entry models.WeightEntry, now time.Time) error {
	return s.upsertDay(ctx, userID, date, bson.M{"$set": bson.M{"weight_entry": entry}}, now)
}

func (s *TrackingStore) AddExercise(ctx context.Context, userID int64, date string, exercise models.ExerciseEntry, now time.Time) error {
	return s.upsertDay(ctx, userID, date, bson.M{"$push": bson.M{"exercises": exercise}}, now)
}

func (s *TrackingStore) SetMood(ctx context.Context, userID int64, date, mood string, now time.Time) error {
	return s.upsertDay(ctx, userID, date, bson.M{"$set": bson.M{"mood": mood}}, now)
}

func (s *TrackingStore) SetSleep(ctx context.Context, userID int64, date string, hours float64, now time.Time) error {
	return s.upsertDay(ctx, userID, date, bson.M{"$set": bson.M{"sleep_hours": hours}}, now)
}

// ListDays returns the days in [from, to] ordered by date. An empty to leaves the range open.
func (s *TrackingStore) ListDays(ctx context.Context, userID int64, from, to string) ([]models.DailyGoalTracking, error) {
	dateRange := bson.M{"$gte": from}
	if to != "" {
		dateRange["$lte"] = to
	}
	opts := options.Find().SetSort(bson.D{{Key: "tracking_date", Value: 1}})
	return findAll[models.DailyGoalTracking](ctx, s.coll, bson.M{"user_id": userID, "tracking_date": dateRange}, opts)
}

// IsNotFound reports whether err is the store's not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
