package repository

import (
	"context"
	"log/slog"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/joseph-ayodele/catalog-cms/constants"
	"github.com/joseph-ayodele/catalog-cms/internal/entity"
)

var hardDrivesTable = table{
	name:    "hard_drives",
	columns: []string{"id", "name", "type", "capacity", "interface", "brand", "status", "created_at", "updated_at"},
	search:  []string{"name"},
}

type HardDriveRepository interface {
	List(ctx context.Context, filter ListFilter) ([]*entity.HardDrive, int, error)
	GetByID(ctx context.Context, id int64) (*entity.HardDrive, error)
	Create(ctx context.Context, hd *entity.HardDrive) (*entity.HardDrive, error)
	Update(ctx context.Context, hd *entity.HardDrive) (*entity.HardDrive, error)
	UpdateStatus(ctx context.Context, id int64, status constants.Status) (*entity.HardDrive, error)
	ListActiveNames(ctx context.Context) ([]*entity.IDName, error)
	Count(ctx context.Context) (int, error)
}

type hardDriveRepository struct {
	store  *Store
	logger *slog.Logger
}

func NewHardDriveRepository(store *Store, logger *slog.Logger) HardDriveRepository {
	return &hardDriveRepository{
		store:  store,
		logger: logger,
	}
}

func (r *hardDriveRepository) List(ctx context.Context, filter ListFilter) ([]*entity.HardDrive, int, error) {
	items, total, err := listRows[entity.HardDrive](ctx, r.store, hardDrivesTable, filter)
	if err != nil {
		r.logger.Error("failed to list hard drives", "search", filter.Search, "error", err)
		return nil, 0, err
	}
	return items, total, nil
}

func (r *hardDriveRepository) GetByID(ctx context.Context, id int64) (*entity.HardDrive, error) {
	return getRow[entity.HardDrive](ctx, r.store, hardDrivesTable, id)
}

func (r *hardDriveRepository) Create(ctx context.Context, hd *entity.HardDrive) (*entity.HardDrive, error) {
	now := r.store.now()
	id, err := insertRow(ctx, r.store, hardDrivesTable,
		[]string{"name", "type", "capacity", "interface", "brand", "status", "created_at", "updated_at"},
		[]any{hd.Name, hd.Type, hd.Capacity, hd.Interface, hd.Brand, int(hd.Status), now, now},
	)
	if err != nil {
		r.logger.Error("failed to create hard drive", "name", hd.Name, "error", err)
		return nil, err
	}
	r.logger.Info("created hard drive", "id", id)
	return r.GetByID(ctx, id)
}

func (r *hardDriveRepository) Update(ctx context.Context, hd *entity.HardDrive) (*entity.HardDrive, error) {
	err := updateRow(ctx, r.store, hardDrivesTable, hd.ID, func(u *entsql.UpdateBuilder) {
		u.Set("name", hd.Name).
			Set("type", hd.Type).
			Set("capacity", hd.Capacity).
			Set("interface", hd.Interface).
			Set("brand", hd.Brand).
			Set("status", int(hd.Status))
	})
	if err != nil {
		if !IsNotFound(err) {
			r.logger.Error("failed to update hard drive", "id", hd.ID, "error", err)
		}
		return nil, err
	}
	return r.GetByID(ctx, hd.ID)
}

func (r *hardDriveRepository) UpdateStatus(ctx context.Context, id int64, status constants.Status) (*entity.HardDrive, error) {
	hd, err := updateStatus[entity.HardDrive](ctx, r.store, hardDrivesTable, id, status)
	if err != nil {
		if !IsNotFound(err) {
			r.logger.Error("failed to update hard drive status", "id", id, "status", status, "error", err)
		}
		return nil, err
	}
	return hd, nil
}

func (r *hardDriveRepository) ListActiveNames(ctx context.Context) ([]*entity.IDName, error) {
	return listActiveNames(ctx, r.store, hardDrivesTable)
}

func (r *hardDriveRepository) Count(ctx context.Context) (int, error) {
	return countAll(ctx, r.store, hardDrivesTable)
}
