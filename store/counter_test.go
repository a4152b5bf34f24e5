package store

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"
)

// testMongo connects to MONGO_TEST_URI and skips the test when it is unset.
func testMongo(t *testing.T) *Mongo {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	dbName := fmt.Sprintf("nutriwise_test_%d", time.Now().UnixNano())
	m, err := Connect(ctx, uri, dbName)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = m.db.Drop(ctx)
		_ = m.Close(ctx)
	})
	return m
}

func TestSequencesNextIsUniqueUnderConcurrency(t *testing.T) {
	m := testMongo(t)
	seq := NewSequences(m)
	ctx := context.Background()

	const workers = 20
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = map[int64]bool{}
	)
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := seq.Next(ctx, SequenceBookingID)
			if err != nil {
				errs <- err
				return
			}
			mu.Lock()
			seen[v] = true
			mu.Unlock()
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("Next: %v", err)
	}

	if len(seen) != workers {
		t.Fatalf("expected %d distinct values, got %d", workers, len(seen))
	}
	for i := int64(1); i <= workers; i++ {
		if !seen[i] {
			t.Fatalf("missing value %d in %v", i, seen)
		}
	}
}

func TestSequencesFirstValueIsOne(t *testing.T) {
	m := testMongo(t)
	seq := NewSequences(m)

	v, err := seq.Next(context.Background(), "fresh")
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if v != 1 {
		t.Fatalf("first value = %d, want 1", v)
	}
}
