package export

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/catalog-cms/constants"
	"github.com/joseph-ayodele/catalog-cms/internal/common"
	"github.com/joseph-ayodele/catalog-cms/internal/entity"
	"github.com/joseph-ayodele/catalog-cms/internal/pagination"
	"github.com/joseph-ayodele/catalog-cms/internal/repository"
)

func newTestService(t *testing.T) (*Service, repository.HardDriveRepository, repository.CategoryRepository) {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := repository.Open(ctx, repository.Config{DSN: "sqlite::memory:"}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { repository.Close(store, logger) })
	require.NoError(t, repository.Migrate(ctx, store, logger))

	cats := repository.NewCategoryRepository(store, logger)
	hds := repository.NewHardDriveRepository(store, logger)
	svc := NewService(cats, hds, repository.NewDisplayRepository(store, logger), logger)
	return svc, hds, cats
}

func readRows(t *testing.T, data []byte, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestExportXLSX_Storages(t *testing.T) {
	ctx := context.Background()
	svc, hds, _ := newTestService(t)

	for i := 0; i < 15; i++ {
		_, err := hds.Create(ctx, &entity.HardDrive{Name: "Drive", Type: "SSD", Capacity: "1TB", Interface: "NVMe", Brand: "Samsung", Status: constants.StatusActive})
		require.NoError(t, err)
	}
	deleted, err := hds.Create(ctx, &entity.HardDrive{Name: "Gone", Type: "HDD", Capacity: "1TB", Interface: "SATA", Brand: "Seagate", Status: constants.StatusActive})
	require.NoError(t, err)
	_, err = hds.UpdateStatus(ctx, deleted.ID, constants.StatusDeleted)
	require.NoError(t, err)

	// paging is ignored, the deleted row is filtered out
	data, err := svc.ExportXLSX(ctx, constants.EntityStorages, pagination.Params{Page: 2, Limit: 10})
	require.NoError(t, err)

	rows := readRows(t, data, "Storages")
	require.Len(t, rows, 16)
	assert.Equal(t, []string{"ID", "Name", "Type", "Capacity", "Interface", "Brand", "Status", "Created At"}, rows[0])
	assert.Equal(t, "Drive", rows[1][1])
	assert.Equal(t, "Active", rows[1][6])
}

func TestExportXLSX_CategoriesWithSearch(t *testing.T) {
	ctx := context.Background()
	svc, _, cats := newTestService(t)

	parent, err := cats.Create(ctx, &entity.Category{Name: "Laptop", Slug: "laptop", Status: constants.StatusActive})
	require.NoError(t, err)
	_, err = cats.Create(ctx, &entity.Category{Name: "Laptop gaming", Slug: "laptop-gaming", ParentID: &parent.ID, Status: constants.StatusInactive})
	require.NoError(t, err)
	_, err = cats.Create(ctx, &entity.Category{Name: "Monitor", Slug: "monitor", Status: constants.StatusActive})
	require.NoError(t, err)

	data, err := svc.ExportXLSX(ctx, constants.EntityCategories, pagination.Params{Page: 1, Limit: 10, Search: "gaming"})
	require.NoError(t, err)

	rows := readRows(t, data, "Categories")
	require.Len(t, rows, 2)
	assert.Equal(t, "laptop-gaming", rows[1][2])
	assert.Equal(t, "1", rows[1][3])
	assert.Equal(t, "Inactive", rows[1][4])
}

func TestExportXLSX_EmptyDisplays(t *testing.T) {
	svc, _, _ := newTestService(t)

	data, err := svc.ExportXLSX(context.Background(), constants.EntityDisplays, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	rows := readRows(t, data, "Displays")
	require.Len(t, rows, 1)
	assert.Equal(t, "Panel Type", rows[0][4])
}

func TestExportXLSX_UnknownEntity(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.ExportXLSX(context.Background(), constants.Entity("products"), pagination.Params{})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestFilename(t *testing.T) {
	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	assert.Equal(t, "displays-20240506-070809.xlsx", Filename(constants.EntityDisplays, ts))
}
