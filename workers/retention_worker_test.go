package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"gym-scoring-system/models"
)

type recordingLog struct {
	mu      sync.Mutex
	cutoffs []time.Time
}

func (r *recordingLog) RecordRejection(context.Context, *models.RejectionRecord) error { return nil }

func (r *recordingLog) PruneRejections(_ context.Context, before time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cutoffs = append(r.cutoffs, before)
	return 3, nil
}

func (r *recordingLog) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cutoffs)
}

func TestSweepUsesRetentionCutoff(t *testing.T) {
	rec := &recordingLog{}
	w := NewRejectionRetentionWorker(rec, 90*24*time.Hour, time.Hour)
	now := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return now }

	n, err := w.Sweep(context.Background())
	if err != nil || n != 3 {
		t.Fatalf("sweep = %d, %v", n, err)
	}
	if want := now.Add(-90 * 24 * time.Hour); !rec.cutoffs[0].Equal(want) {
		t.Fatalf("cutoff = %s, want %s", rec.cutoffs[0], want)
	}
}

func TestStartRunsImmediately(t *testing.T) {
	rec := &recordingLog{}
	w := NewRejectionRetentionWorker(rec, time.Hour, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := w.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for rec.calls() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("sweep did not run on start")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
