package cleanup

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeSweeper struct {
	mu       sync.Mutex
	calls    int
	idle     time.Duration
	abandon  time.Duration
	toRemove []string
}

func (f *fakeSweeper) CleanupOldSessions(idle, abandonAfter time.Duration) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.idle, f.abandon = idle, abandonAfter
	out := f.toRemove
	f.toRemove = nil
	return out
}

func (f *fakeSweeper) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeCloser struct {
	closed []string
}

func (f *fakeCloser) CloseGame(gameID string) {
	f.closed = append(f.closed, gameID)
}

func TestRunCleanupClosesRemovedGames(t *testing.T) {
	s := &fakeSweeper{toRemove: []string{"a", "b"}}
	c := &fakeCloser{}
	w := NewWorker(s, c, time.Hour, 30*time.Minute)

	assert.Equal(t, 2, w.RunCleanup())
	assert.Equal(t, []string{"a", "b"}, c.closed)
	assert.Equal(t, 30*time.Minute, s.idle)
	assert.Equal(t, 12*time.Hour, s.abandon)

	assert.Equal(t, 0, w.RunCleanup())
}

func TestStartStopsWithContext(t *testing.T) {
	s := &fakeSweeper{}
	w := NewWorker(s, nil, 10*time.Millisecond, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return s.callCount() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
}
