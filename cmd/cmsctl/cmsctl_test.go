package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/catalog-cms/constants"
	"github.com/joseph-ayodele/catalog-cms/internal/app"
	"github.com/joseph-ayodele/catalog-cms/internal/auth"
	"github.com/joseph-ayodele/catalog-cms/internal/pagination"
	repo "github.com/joseph-ayodele/catalog-cms/internal/repository"
	"github.com/joseph-ayodele/catalog-cms/internal/services/harddrive"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	t.Setenv("DB_URL", "")

	out, err := execute(t, "token", "--sub", "7", "--role", "2", "--ttl", "1h")
	require.NoError(t, err)

	claims, err := auth.NewVerifier("cli-secret").Verify(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "7", claims.Subject)
	assert.Equal(t, 2, claims.RoleID)
}

func TestEntityArgRejectsUnknownEntity(t *testing.T) {
	t.Setenv("DB_URL", "")
	_, err := execute(t, "list", "printers")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown entity")
}

func TestMigrateAndExportOnSQLiteFile(t *testing.T) {
	dir := t.TempDir()
	dsn := "sqlite:" + filepath.Join(dir, "catalog.db")
	t.Setenv("DB_URL", dsn)

	out, err := execute(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "schema at version 1")

	out, err = execute(t, "export", "categories", "--out", dir)
	require.NoError(t, err)
	path := strings.TrimSpace(out)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "categories-"))
	assert.FileExists(t, path)
}

func TestRunListRendersTableAndPager(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := repo.Open(ctx, repo.Config{DSN: "sqlite::memory:"}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close(store, logger) })
	require.NoError(t, repo.Migrate(ctx, store, logger))
	store.SetClock(func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) })

	a := app.New(store, nil, logger)
	for _, name := range []string{"A1", "A2", "A3"} {
		_, err := a.HardDrives.Create(ctx, harddrive.Request{Name: name, Type: "SSD", Capacity: "1TB", Interface: "NVMe", Brand: "Crucial"})
		require.NoError(t, err)
	}

	var buf bytes.Buffer
	require.NoError(t, runList(ctx, &buf, a, constants.EntityStorages, pagination.Params{Page: 2, Limit: 1}))
	out := buf.String()
	assert.Contains(t, out, "Crucial")
	assert.Contains(t, out, "page 2 of 3, 3 storages total")
	assert.Contains(t, out, "1 [2] 3")
	assert.Contains(t, out, "prev: --page 1")
	assert.Contains(t, out, "next: --page 3")
}
