package tracking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/raushankrgupta/nutriwise/models"
	"github.com/raushankrgupta/nutriwise/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type dayKey struct {
	user int64
	date string
}

// memDays mirrors the upsert semantics of store.TrackingStore.
type memDays struct {
	mu      sync.Mutex
	days    map[dayKey]*models.DailyGoalTracking
	creates int
	failSet error
}

func newMemDays() *memDays {
	return &memDays{days: map[dayKey]*models.DailyGoalTracking{}}
}

func (m *memDays) ensure(userID int64, date string, now time.Time) *models.DailyGoalTracking {
	k := dayKey{userID, date}
	d, ok := m.days[k]
	if !ok {
		d = &models.DailyGoalTracking{
			ID:           primitive.NewObjectID(),
			UserID:       userID,
			TrackingDate: date,
			Meals:        models.DefaultMeals(),
			Exercises:    []models.ExerciseEntry{},
			CreatedAt:    now,
		}
		m.days[k] = d
		m.creates++
	}
	d.UpdatedAt = now
	return d
}

func (m *memDays) GetOrCreateDay(_ context.Context, userID int64, date string, now time.Time) (*models.DailyGoalTracking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := *m.ensure(userID, date, now)
	return &d, nil
}

func (m *memDays) FindDay(_ context.Context, userID int64, date string) (*models.DailyGoalTracking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.days[dayKey{userID, date}]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *memDays) UpdateMeal(_ context.Context, userID int64, date string, meal models.MealEntry, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.days[dayKey{userID, date}]
	if !ok {
		return store.ErrNotFound
	}
	for i := range d.Meals {
		if d.Meals[i].MealType == meal.MealType {
			d.Meals[i] = meal
			d.UpdatedAt = now
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *memDays) SetWater(_ context.Context, userID int64, date string, water models.WaterIntakeEntry, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensure(userID, date, now).WaterIntake = &water
	return nil
}

func (m *memDays) SetWeightEntry(_ context.Context, userID int64, date string, entry models.WeightEntry, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet != nil {
		return m.failSet
	}
	m.ensure(userID, date, now).WeightEntry = &entry
	return nil
}

func (m *memDays) AddExercise(_ context.Context, userID int64, date string, exercise models.ExerciseEntry, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := m.ensure(userID, date, now)
	d.Exercises = append(d.Exercises, exercise)
	return nil
}

func (m *memDays) SetMood(_ context.Context, userID int64, date, mood string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensure(userID, date, now).Mood = mood
	return nil
}

func (m *memDays) SetSleep(_ context.Context, userID int64, date string, hours float64, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensure(userID, date, now).SleepHours = &hours
	return nil
}

func (m *memDays) ListDays(_ context.Context, userID int64, from, to string) ([]models.DailyGoalTracking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.DailyGoalTracking
	for k, d := range m.days {
		if k.user != userID || k.date < from || (to != "" && k.date > to) {
			continue
		}
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TrackingDate < out[j].TrackingDate })
	return out, nil
}

type memLogs struct {
	mu   sync.Mutex
	logs []models.WeightLog
}

func (m *memLogs) Insert(_ context.Context, entry *models.WeightLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.ID = primitive.NewObjectID()
	m.logs = append(m.logs, *entry)
	return nil
}

func (m *memLogs) ListSince(_ context.Context, userID int64, since time.Time, newestFirst bool, limit int) ([]models.WeightLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.WeightLog{}
	for _, l := range m.logs {
		if l.UserID == userID && !l.LoggedAt.Before(since) {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if newestFirst {
			return out[i].LoggedAt.After(out[j].LoggedAt)
		}
		return out[i].LoggedAt.Before(out[j].LoggedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memLogs) LatestBetween(_ context.Context, userID int64, from, to time.Time) (*models.WeightLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *models.WeightLog
	for i := range m.logs {
		l := m.logs[i]
		if l.UserID != userID || l.LoggedAt.Before(from) || !l.LoggedAt.Before(to) {
			continue
		}
		if latest == nil || !l.LoggedAt.Before(latest.LoggedAt) {
			latest = &l
		}
	}
	if latest == nil {
		return nil, store.ErrNotFound
	}
	return latest, nil
}

func (m *memLogs) Delete(_ context.Context, userID int64, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, l := range m.logs {
		if l.ID == id && l.UserID == userID {
			m.logs = append(m.logs[:i], m.logs[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}
