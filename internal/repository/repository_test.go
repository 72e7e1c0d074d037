package repository

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestStore opens a migrated in-memory database whose clock ticks one
// second per call, so created_at ordering is deterministic.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	logger := testLogger()

	store, err := Open(ctx, Config{DSN: "sqlite::memory:"}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { Close(store, logger) })

	var mu sync.Mutex
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		base = base.Add(time.Second)
		return base
	})

	require.NoError(t, Migrate(ctx, store, logger))
	return store
}
