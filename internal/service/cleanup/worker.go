package cleanup

import (
	"context"
	"log"
	"time"
)

// Sweeper evicts stale games and returns the IDs it dropped.
type Sweeper interface {
	CleanupOldSessions(idle, abandonAfter time.Duration) []string
}

// Closer releases whatever is still attached to an evicted game.
type Closer interface {
	CloseGame(gameID string)
}

type Worker struct {
	Sweeper      Sweeper
	Closer       Closer
	Interval     time.Duration
	IdleTimeout  time.Duration
	AbandonAfter time.Duration
}

// NewWorker builds a worker that treats unfinished games as abandoned after 24 idle timeouts.
func NewWorker(s Sweeper, c Closer, interval, idleTimeout time.Duration) *Worker {
	return &Worker{
		Sweeper:      s,
		Closer:       c,
		Interval:     interval,
		IdleTimeout:  idleTimeout,
		AbandonAfter: 24 * idleTimeout,
	}
}

// Start runs one sweep immediately and then every Interval until ctx is done.
func (w *Worker) Start(ctx context.Context) {
	log.Println("[CLEANUP] Background worker started")
	w.RunCleanup()

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[CLEANUP] Background worker stopped")
			return
		case <-ticker.C:
			w.RunCleanup()
		}
	}
}

func (w *Worker) RunCleanup() int {
	removed := w.Sweeper.CleanupOldSessions(w.IdleTimeout, w.AbandonAfter)
	if w.Closer != nil {
		for _, gameID := range removed {
			w.Closer.CloseGame(gameID)
		}
	}
	if len(removed) > 0 {
		log.Printf("[CLEANUP] Removed %d idle games", len(removed))
	}
	return len(removed)
}
