package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iudanet/jobtracker/internal/server/storage/sqlite"
)

// fakeClock is a manually advanced clock
type fakeClock struct {
	now time.Time
	mu  sync.Mutex
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{now: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

var testStart = time.Date(2025, time.March, 14, 10, 30, 0, 0, time.UTC)

func setupTestTracker(t *testing.T) (*Tracker, *fakeClock) {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	clock := newFakeClock(testStart)
	return NewTracker(store, Config{Now: clock.Now}), clock
}

func strPtr(s string) *string {
	return &s
}
