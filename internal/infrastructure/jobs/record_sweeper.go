package jobs

import (
	"context"
	"log"
	"time"

	"veriflow.backend/internal/infrastructure/repositories"
)

// RecordSweeperJob reclaims expired verification records from the SQL store.
// Validation never depends on it; expiry is checked from the record at read
// time. The sweeper only keeps the table from growing without bound.
type RecordSweeperJob struct {
	store    *repositories.RecordStoreImpl
	interval time.Duration
	stop     chan struct{}
}

func NewRecordSweeperJob(store *repositories.RecordStoreImpl, interval time.Duration) *RecordSweeperJob {
	if interval <= 0 {
		interval = time.Minute
	}
	return &RecordSweeperJob{
		store:    store,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

func (j *RecordSweeperJob) Start(ctx context.Context) {
	log.Println("🕐 Starting verification record sweeper...")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("⏹️ Verification record sweeper stopped (context cancelled)")
			return
		case <-j.stop:
			log.Println("⏹️ Verification record sweeper stopped")
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *RecordSweeperJob) Stop() {
	close(j.stop)
}

func (j *RecordSweeperJob) sweep(ctx context.Context) {
	removed, err := j.store.DeleteExpired(ctx, time.Now())
	if err != nil {
		log.Printf("❌ Error sweeping expired verification records: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("✅ Reclaimed %d expired verification records", removed)
	}
}
