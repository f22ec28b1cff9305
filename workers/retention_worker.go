// workers/retention_worker.go
package workers

import (
	"context"
	"fmt"
	"log"
	"time"

	"gym-scoring-system/services"

	"github.com/go-co-op/gocron/v2"
)

// RejectionRetentionWorker prunes rejection snapshots older than the
// retention window.
type RejectionRetentionWorker struct {
	rejections services.RejectionLog
	retention  time.Duration
	interval   time.Duration
	now        services.Clock
	scheduler  gocron.Scheduler
}

func NewRejectionRetentionWorker(rejections services.RejectionLog, retention, interval time.Duration) *RejectionRetentionWorker {
	return &RejectionRetentionWorker{
		rejections: rejections,
		retention:  retention,
		interval:   interval,
		now:        time.Now,
	}
}

// Start schedules the sweep and runs it once immediately. The scheduler stops
// when ctx is done.
func (w *RejectionRetentionWorker) Start(ctx context.Context) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(func() {
			if _, err := w.Sweep(ctx); err != nil {
				log.Printf("[Retention] sweep failed: %v", err)
			}
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("schedule retention sweep: %w", err)
	}

	w.scheduler = sched
	sched.Start()
	log.Printf("🔁 Starting rejection retention worker (every %s, keep %s)…", w.interval, w.retention)

	go func() {
		<-ctx.Done()
		if err := sched.Shutdown(); err != nil {
			log.Printf("[Retention] scheduler shutdown: %v", err)
		}
	}()
	return nil
}

// Sweep deletes every rejection recorded before now minus the retention
// window and returns how many were removed.
func (w *RejectionRetentionWorker) Sweep(ctx context.Context) (int64, error) {
	cutoff := w.now().Add(-w.retention)
	n, err := w.rejections.PruneRejections(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Printf("🧹 [Retention] pruned %d rejection records older than %s", n, cutoff.Format(time.RFC3339))
	}
	return n, nil
}
