package harddrive

import (
	"context"
	"log/slog"
	"strings"

	"github.com/joseph-ayodele/catalog-cms/constants"
	"github.com/joseph-ayodele/catalog-cms/internal/catalog"
	"github.com/joseph-ayodele/catalog-cms/internal/common"
	"github.com/joseph-ayodele/catalog-cms/internal/entity"
	"github.com/joseph-ayodele/catalog-cms/internal/pagination"
	"github.com/joseph-ayodele/catalog-cms/internal/repository"
)

// Service handles hard drive (storage) business logic.
type Service struct {
	repo    repository.HardDriveRepository
	options catalog.HardDriveOptions
	logger  *slog.Logger
}

// NewService creates a new hard drive service. Type, capacity, interface and
// brand must come from options.
func NewService(repo repository.HardDriveRepository, options catalog.HardDriveOptions, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		options: options,
		logger:  logger,
	}
}

// Request carries the editable fields of a hard drive.
type Request struct {
	Name      string            `json:"name"`
	Type      string            `json:"type"`
	Capacity  string            `json:"capacity"`
	Interface string            `json:"interface"`
	Brand     string            `json:"brand"`
	Status    *constants.Status `json:"status"`
}

func (s *Service) List(ctx context.Context, params pagination.Params) ([]*entity.HardDrive, pagination.Meta, error) {
	items, total, err := s.repo.List(ctx, repository.FilterFromParams(params))
	if err != nil {
		return nil, pagination.Meta{}, common.InternalErrorf("list hard drives: %v", err)
	}
	return items, pagination.NewMeta(params.Page, params.Limit, total), nil
}

func (s *Service) Get(ctx context.Context, id int64) (*entity.HardDrive, error) {
	if id <= 0 {
		return nil, common.InvalidArgumentError("id must be a positive integer")
	}
	hd, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, err
		}
		return nil, common.InternalErrorf("get hard drive: %v", err)
	}
	return hd, nil
}

func (s *Service) Create(ctx context.Context, req Request) (*entity.HardDrive, error) {
	hd, err := s.build(req, constants.StatusActive)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, hd)
	if err != nil {
		return nil, common.InternalErrorf("create hard drive: %v", err)
	}
	s.logger.Info("hard drive created", "id", created.ID, "name", created.Name)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, req Request) (*entity.HardDrive, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	hd, err := s.build(req, current.Status)
	if err != nil {
		return nil, err
	}
	hd.ID = id

	updated, err := s.repo.Update(ctx, hd)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, err
		}
		return nil, common.InternalErrorf("update hard drive: %v", err)
	}
	s.logger.Info("hard drive updated", "id", id)
	return updated, nil
}

// UpdateStatus sets any valid status, including soft delete (-2).
func (s *Service) UpdateStatus(ctx context.Context, id int64, status constants.Status) (*entity.HardDrive, error) {
	v := common.NewValidator()
	v.Field("id", id, common.PositiveID)
	v.Field("status", status, common.ValidStatus)
	if err := common.ValidateAndReturnError(v); err != nil {
		return nil, err
	}

	hd, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, err
		}
		return nil, common.InternalErrorf("update hard drive status: %v", err)
	}
	s.logger.Info("hard drive status updated", "id", id, "status", status)
	return hd, nil
}

func (s *Service) ListActiveNames(ctx context.Context) ([]*entity.IDName, error) {
	names, err := s.repo.ListActiveNames(ctx)
	if err != nil {
		return nil, common.InternalErrorf("list hard drive names: %v", err)
	}
	return names, nil
}

func (s *Service) build(req Request, defaultStatus constants.Status) (*entity.HardDrive, error) {
	status := defaultStatus
	if req.Status != nil {
		status = *req.Status
	}

	v := common.NewValidator()
	v.Field("name", req.Name, common.Required, common.MaxLength(100))
	v.Field("type", req.Type, common.Required, common.OneOf(s.options.Types))
	v.Field("capacity", req.Capacity, common.Required, common.OneOf(s.options.Capacities))
	v.Field("interface", req.Interface, common.Required, common.OneOf(s.options.Interfaces))
	v.Field("brand", req.Brand, common.Required, common.MaxLength(50), common.OneOf(s.options.Brands))
	v.Field("status", status, common.EditableStatus)
	if err := common.ValidateAndReturnError(v); err != nil {
		return nil, err
	}

	return &entity.HardDrive{
		Name:      strings.TrimSpace(req.Name),
		Type:      canonical(s.options.Types, req.Type),
		Capacity:  canonical(s.options.Capacities, req.Capacity),
		Interface: canonical(s.options.Interfaces, req.Interface),
		Brand:     canonical(s.options.Brands, req.Brand),
		Status:    status,
	}, nil
}

func canonical(options []string, value string) string {
	if c, ok := constants.CanonicalOption(options, value); ok {
		return c
	}
	return strings.TrimSpace(value)
}
