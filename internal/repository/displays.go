package repository

import (
	"context"
	"log/slog"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/joseph-ayodele/catalog-cms/constants"
	"github.com/joseph-ayodele/catalog-cms/internal/entity"
)

var displaysTable = table{
	name:    "displays",
	columns: []string{"id", "name", "size", "resolution", "panel_type", "refresh_rate", "brand", "status", "created_at", "updated_at"},
	search:  []string{"name"},
}

type DisplayRepository interface {
	List(ctx context.Context, filter ListFilter) ([]*entity.Display, int, error)
	GetByID(ctx context.Context, id int64) (*entity.Display, error)
	Create(ctx context.Context, d *entity.Display) (*entity.Display, error)
	Update(ctx context.Context, d *entity.Display) (*entity.Display, error)
	UpdateStatus(ctx context.Context, id int64, status constants.Status) (*entity.Display, error)
	ListActiveNames(ctx context.Context) ([]*entity.IDName, error)
	Count(ctx context.Context) (int, error)
}

type displayRepository struct {
	store  *Store
	logger *slog.Logger
}

func NewDisplayRepository(store *Store, logger *slog.Logger) DisplayRepository {
	return &displayRepository{
		store:  store,
		logger: logger,
	}
}

func (r *displayRepository) List(ctx context.Context, filter ListFilter) ([]*entity.Display, int, error) {
	items, total, err := listRows[entity.Display](ctx, r.store, displaysTable, filter)
	if err != nil {
		r.logger.Error("failed to list displays", "search", filter.Search, "error", err)
		return nil, 0, err
	}
	return items, total, nil
}

func (r *displayRepository) GetByID(ctx context.Context, id int64) (*entity.Display, error) {
	return getRow[entity.Display](ctx, r.store, displaysTable, id)
}

func (r *displayRepository) Create(ctx context.Context, d *entity.Display) (*entity.Display, error) {
	now := r.store.now()
	id, err := insertRow(ctx, r.store, displaysTable,
		[]string{"name", "size", "resolution", "panel_type", "refresh_rate", "brand", "status", "created_at", "updated_at"},
		[]any{d.Name, d.Size, d.Resolution, d.PanelType, d.RefreshRate, d.Brand, int(d.Status), now, now},
	)
	if err != nil {
		r.logger.Error("failed to create display", "name", d.Name, "error", err)
		return nil, err
	}
	r.logger.Info("created display", "id", id)
	return r.GetByID(ctx, id)
}

func (r *displayRepository) Update(ctx context.Context, d *entity.Display) (*entity.Display, error) {
	err := updateRow(ctx, r.store, displaysTable, d.ID, func(u *entsql.UpdateBuilder) {
		u.Set("name", d.Name).
			Set("size", d.Size).
			Set("resolution", d.Resolution).
			Set("panel_type", d.PanelType).
			Set("refresh_rate", d.RefreshRate).
			Set("brand", d.Brand).
			Set("status", int(d.Status))
	})
	if err != nil {
		if !IsNotFound(err) {
			r.logger.Error("failed to update display", "id", d.ID, "error", err)
		}
		return nil, err
	}
	return r.GetByID(ctx, d.ID)
}

func (r *displayRepository) UpdateStatus(ctx context.Context, id int64, status constants.Status) (*entity.Display, error) {
	d, err := updateStatus[entity.Display](ctx, r.store, displaysTable, id, status)
	if err != nil {
		if !IsNotFound(err) {
			r.logger.Error("failed to update display status", "id", id, "status", status, "error", err)
		}
		return nil, err
	}
	return d, nil
}

func (r *displayRepository) ListActiveNames(ctx context.Context) ([]*entity.IDName, error) {
	return listActiveNames(ctx, r.store, displaysTable)
}

func (r *displayRepository) Count(ctx context.Context) (int, error) {
	return countAll(ctx, r.store, displaysTable)
}
