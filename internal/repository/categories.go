package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/joseph-ayodele/catalog-cms/constants"
	"github.com/joseph-ayodele/catalog-cms/internal/common"
	"github.com/joseph-ayodele/catalog-cms/internal/entity"
)

var categoriesTable = table{
	name:    "categories",
	columns: []string{"id", "name", "slug", "content", "parent_id", "image_id", "status", "created_at", "updated_at"},
	search:  []string{"name", "slug"},
}

type CategoryRepository interface {
	List(ctx context.Context, filter ListFilter) ([]*entity.Category, int, error)
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	Create(ctx context.Context, c *entity.Category) (*entity.Category, error)
	Update(ctx context.Context, c *entity.Category) (*entity.Category, error)
	UpdateStatus(ctx context.Context, id int64, status constants.Status) (*entity.Category, error)
	ListActiveNames(ctx context.Context) ([]*entity.IDName, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	Count(ctx context.Context) (int, error)
}

type categoryRepository struct {
	store  *Store
	logger *slog.Logger
}

func NewCategoryRepository(store *Store, logger *slog.Logger) CategoryRepository {
	return &categoryRepository{
		store:  store,
		logger: logger,
	}
}

func (r *categoryRepository) List(ctx context.Context, filter ListFilter) ([]*entity.Category, int, error) {
	items, total, err := listRows[entity.Category](ctx, r.store, categoriesTable, filter)
	if err != nil {
		r.logger.Error("failed to list categories", "search", filter.Search, "error", err)
		return nil, 0, err
	}
	return items, total, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	return getRow[entity.Category](ctx, r.store, categoriesTable, id)
}

func (r *categoryRepository) Create(ctx context.Context, c *entity.Category) (*entity.Category, error) {
	now := r.store.now()
	id, err := insertRow(ctx, r.store, categoriesTable,
		[]string{"name", "slug", "content", "parent_id", "image_id", "status", "created_at", "updated_at"},
		[]any{c.Name, c.Slug, c.Content, nullableID(c.ParentID), nullableID(c.ImageID), int(c.Status), now, now},
	)
	if err != nil {
		if IsUniqueViolation(err) {
			r.logger.Warn("category slug taken", "slug", c.Slug)
			return nil, slugConflict(c.Slug, err)
		}
		r.logger.Error("failed to create category", "name", c.Name, "slug", c.Slug, "error", err)
		return nil, err
	}
	r.logger.Info("created category", "id", id, "slug", c.Slug)
	return r.GetByID(ctx, id)
}

func (r *categoryRepository) Update(ctx context.Context, c *entity.Category) (*entity.Category, error) {
	err := updateRow(ctx, r.store, categoriesTable, c.ID, func(u *entsql.UpdateBuilder) {
		u.Set("name", c.Name).
			Set("slug", c.Slug).
			Set("content", c.Content).
			Set("parent_id", nullableID(c.ParentID)).
			Set("image_id", nullableID(c.ImageID)).
			Set("status", int(c.Status))
	})
	if err != nil {
		if IsUniqueViolation(err) {
			r.logger.Warn("category slug taken", "id", c.ID, "slug", c.Slug)
			return nil, slugConflict(c.Slug, err)
		}
		if !IsNotFound(err) {
			r.logger.Error("failed to update category", "id", c.ID, "error", err)
		}
		return nil, err
	}
	return r.GetByID(ctx, c.ID)
}

func (r *categoryRepository) UpdateStatus(ctx context.Context, id int64, status constants.Status) (*entity.Category, error) {
	c, err := updateStatus[entity.Category](ctx, r.store, categoriesTable, id, status)
	if err != nil {
		if !IsNotFound(err) {
			r.logger.Error("failed to update category status", "id", id, "status", status, "error", err)
		}
		return nil, err
	}
	return c, nil
}

func (r *categoryRepository) ListActiveNames(ctx context.Context) ([]*entity.IDName, error) {
	return listActiveNames(ctx, r.store, categoriesTable)
}

// SlugExists reports whether another category (any status) already uses slug.
func (r *categoryRepository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	p := entsql.EQ("slug", slug)
	if excludeID > 0 {
		p = entsql.And(p, entsql.NEQ("id", excludeID))
	}
	n, err := countWhere(ctx, r.store, categoriesTable, p)
	if err != nil {
		r.logger.Error("failed to check category slug", "slug", slug, "error", err)
		return false, err
	}
	return n > 0, nil
}

func (r *categoryRepository) Count(ctx context.Context) (int, error) {
	return countAll(ctx, r.store, categoriesTable)
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

// slugConflict is returned when categories_slug_key rejects a write that
// raced past the SlugExists check.
func slugConflict(slug string, cause error) error {
	return common.NewAppError("CONFLICT", fmt.Sprintf("slug %q is already in use", slug), errors.Join(common.ErrConflict, cause))
}
