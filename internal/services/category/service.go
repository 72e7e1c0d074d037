package category

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joseph-ayodele/catalog-cms/constants"
	"github.com/joseph-ayodele/catalog-cms/internal/common"
	"github.com/joseph-ayodele/catalog-cms/internal/entity"
	"github.com/joseph-ayodele/catalog-cms/internal/pagination"
	"github.com/joseph-ayodele/catalog-cms/internal/repository"
)

// maxDepth bounds the ancestor walk when checking for parent cycles.
const maxDepth = 64

// Service handles category business logic.
type Service struct {
	repo   repository.CategoryRepository
	logger *slog.Logger
}

// NewService creates a new category service.
func NewService(repo repository.CategoryRepository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Request carries the editable fields of a category. Status is optional:
// create defaults to active and update keeps the stored value.
type Request struct {
	Name     string            `json:"name"`
	Slug     string            `json:"slug"`
	Content  string            `json:"content"`
	ParentID *int64            `json:"parent_id"`
	ImageID  *int64            `json:"image_id"`
	Status   *constants.Status `json:"status"`
}

// List returns one page of categories and its pagination block.
func (s *Service) List(ctx context.Context, params pagination.Params) ([]*entity.Category, pagination.Meta, error) {
	items, total, err := s.repo.List(ctx, repository.FilterFromParams(params))
	if err != nil {
		return nil, pagination.Meta{}, common.InternalErrorf("list categories: %v", err)
	}
	return items, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// Get returns one category by id, deleted ones included.
func (s *Service) Get(ctx context.Context, id int64) (*entity.Category, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "get category")
	}
	return c, nil
}

// Create validates req and stores a new category.
func (s *Service) Create(ctx context.Context, req Request) (*entity.Category, error) {
	c, err := s.build(ctx, 0, req, constants.StatusActive)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, repoError(err, "create category")
	}
	s.logger.Info("category created", "id", created.ID, "slug", created.Slug)
	return created, nil
}

// Update validates req and replaces the editable fields of category id.
func (s *Service) Update(ctx context.Context, id int64, req Request) (*entity.Category, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	c, err := s.build(ctx, id, req, current.Status)
	if err != nil {
		return nil, err
	}
	c.ID = id

	updated, err := s.repo.Update(ctx, c)
	if err != nil {
		return nil, repoError(err, "update category")
	}
	s.logger.Info("category updated", "id", id)
	return updated, nil
}

// UpdateStatus sets any valid status, including soft delete (-2).
func (s *Service) UpdateStatus(ctx context.Context, id int64, status constants.Status) (*entity.Category, error) {
	v := common.NewValidator()
	v.Field("id", id, common.PositiveID)
	v.Field("status", status, common.ValidStatus)
	if err := common.ValidateAndReturnError(v); err != nil {
		return nil, err
	}

	c, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, repoError(err, "update category status")
	}
	s.logger.Info("category status updated", "id", id, "status", status)
	return c, nil
}

// ListActiveNames returns {id, name} pairs of active categories for select inputs.
func (s *Service) ListActiveNames(ctx context.Context) ([]*entity.IDName, error) {
	names, err := s.repo.ListActiveNames(ctx)
	if err != nil {
		return nil, common.InternalErrorf("list category names: %v", err)
	}
	return names, nil
}

// build validates req for the category id (0 on create) and returns the entity to store.
func (s *Service) build(ctx context.Context, id int64, req Request, defaultStatus constants.Status) (*entity.Category, error) {
	name := strings.TrimSpace(req.Name)
	content := strings.TrimSpace(req.Content)
	status := defaultStatus
	if req.Status != nil {
		status = *req.Status
	}

	rawSlug := strings.TrimSpace(req.Slug)
	if rawSlug == "" {
		rawSlug = name
	}
	slug := Slugify(rawSlug)

	v := common.NewValidator()
	v.Field("name", name, common.Required, common.MaxLength(100))
	if name != "" && slug == "" {
		v.Add("slug", req.Slug, "must contain at least one letter or digit")
	}
	v.Field("status", status, common.EditableStatus)
	if req.ImageID != nil {
		v.Field("image_id", req.ImageID, common.PositiveID)
	}
	if req.ParentID != nil {
		if err := s.checkParent(ctx, v, id, *req.ParentID); err != nil {
			return nil, err
		}
	}
	if err := common.ValidateAndReturnError(v); err != nil {
		return nil, err
	}

	exists, err := s.repo.SlugExists(ctx, slug, id)
	if err != nil {
		return nil, common.InternalErrorf("check category slug: %v", err)
	}
	if exists {
		return nil, common.ConflictError(fmt.Sprintf("slug %q is already in use", slug))
	}

	return &entity.Category{
		Name:     name,
		Slug:     slug,
		Content:  content,
		ParentID: req.ParentID,
		ImageID:  req.ImageID,
		Status:   status,
	}, nil
}

// checkParent records a validation error when parentID cannot be the parent of
// category id. Only store failures are returned as errors.
func (s *Service) checkParent(ctx context.Context, v *common.Validator, id, parentID int64) error {
	if parentID <= 0 {
		v.Add("parent_id", parentID, "must be a positive integer")
		return nil
	}
	if parentID == id {
		v.Add("parent_id", parentID, "must not reference the category itself")
		return nil
	}

	next := parentID
	for depth := 0; depth < maxDepth; depth++ {
		p, err := s.repo.GetByID(ctx, next)
		if err != nil {
			if repository.IsNotFound(err) {
				if next == parentID {
					v.Add("parent_id", parentID, "does not reference an existing category")
				}
				return nil
			}
			return common.InternalErrorf("load parent category: %v", err)
		}
		if next == parentID && p.Status == constants.StatusDeleted {
			v.Add("parent_id", parentID, "references a deleted category")
			return nil
		}
		if p.ParentID == nil {
			return nil
		}
		if id != 0 && *p.ParentID == id {
			v.Add("parent_id", parentID, "would create a cycle")
			return nil
		}
		next = *p.ParentID
	}
	return nil
}

func validateID(id int64) error {
	if id <= 0 {
		return common.InvalidArgumentError("id must be a positive integer")
	}
	return nil
}

// repoError keeps not-found and conflict errors as they are and hides
// everything else behind an internal error.
func repoError(err error, op string) error {
	if repository.IsNotFound(err) || errors.Is(err, common.ErrConflict) {
		return err
	}
	return common.InternalErrorf("%s: %v", op, err)
}
