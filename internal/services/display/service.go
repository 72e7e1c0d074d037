package display

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

// Service handles display business logic.
type Service struct {
	repo    repository.DisplayRepository
	options catalog.DisplayOptions
	logger  *slog.Logger
}

func NewService(repo repository.DisplayRepository, options catalog.DisplayOptions, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		options: options,
		logger:  logger,
	}
}

// Request carries the editable fields of a display. Only name and brand are
// mandatory; the remaining attributes may be left empty.
type Request struct {
	Name        string            `json:"name"`
	Size        string            `json:"size"`
	Resolution  string            `json:"resolution"`
	PanelType   string            `json:"panel_type"`
	RefreshRate string            `json:"refresh_rate"`
	Brand       string            `json:"brand"`
	Status      *constants.Status `json:"status"`
}

func (s *Service) List(ctx context.Context, params pagination.Params) ([]*entity.Display, pagination.Meta, error) {
	items, total, err := s.repo.List(ctx, repository.FilterFromParams(params))
	if err != nil {
		return nil, pagination.Meta{}, common.InternalErrorf("list displays: %v", err)
	}
	return items, pagination.NewMeta(params.Page, params.Limit, total), nil
}

func (s *Service) Get(ctx context.Context, id int64) (*entity.Display, error) {
	if id <= 0 {
		return nil, common.InvalidArgumentError("id must be a positive integer")
	}
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "get display")
	}
	return d, nil
}

func (s *Service) Create(ctx context.Context, req Request) (*entity.Display, error) {
	d, err := s.build(req, constants.StatusActive)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, d)
	if err != nil {
		return nil, common.InternalErrorf("create display: %v", err)
	}
	s.logger.Info("display created", "id", created.ID, "name", created.Name)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, req Request) (*entity.Display, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	d, err := s.build(req, current.Status)
	if err != nil {
		return nil, err
	}
	d.ID = id

	updated, err := s.repo.Update(ctx, d)
	if err != nil {
		return nil, storeError(err, "update display")
	}
	s.logger.Info("display updated", "id", id)
	return updated, nil
}

// UpdateStatus sets any valid status, including soft delete (-2).
func (s *Service) UpdateStatus(ctx context.Context, id int64, status constants.Status) (*entity.Display, error) {
	v := common.NewValidator()
	v.Field("id", id, common.PositiveID)
	v.Field("status", status, common.ValidStatus)
	if err := common.ValidateAndReturnError(v); err != nil {
		return nil, err
	}

	d, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, storeError(err, "update display status")
	}
	s.logger.Info("display status updated", "id", id, "status", status)
	return d, nil
}

// ListActiveNames feeds the display select of the product form.
func (s *Service) ListActiveNames(ctx context.Context) ([]*entity.IDName, error) {
	names, err := s.repo.ListActiveNames(ctx)
	if err != nil {
		return nil, common.InternalErrorf("list display names: %v", err)
	}
	return names, nil
}

func (s *Service) build(req Request, defaultStatus constants.Status) (*entity.Display, error) {
	status := defaultStatus
	if req.Status != nil {
		status = *req.Status
	}

	v := common.NewValidator()
	v.Field("name", req.Name, common.Required, common.MaxLength(100))
	v.Field("brand", req.Brand, common.Required, common.MaxLength(50), common.OneOf(s.options.Brands))
	v.Field("size", req.Size, common.OneOf(s.options.Sizes))
	v.Field("resolution", req.Resolution, common.OneOf(s.options.Resolutions))
	v.Field("panel_type", req.PanelType, common.OneOf(s.options.PanelTypes))
	v.Field("refresh_rate", req.RefreshRate, common.OneOf(s.options.RefreshRates))
	v.Field("status", status, common.EditableStatus)
	if err := common.ValidateAndReturnError(v); err != nil {
		return nil, err
	}

	return &entity.Display{
		Name:        strings.TrimSpace(req.Name),
		Size:        optionValue(s.options.Sizes, req.Size),
		Resolution:  optionValue(s.options.Resolutions, req.Resolution),
		PanelType:   optionValue(s.options.PanelTypes, req.PanelType),
		RefreshRate: optionValue(s.options.RefreshRates, req.RefreshRate),
		Brand:       optionValue(s.options.Brands, req.Brand),
		Status:      status,
	}, nil
}

// optionValue returns the option spelling of value, or "" for an empty value.
func optionValue(options []string, value string) string {
	c, _ := constants.CanonicalOption(options, value)
	return c
}

func storeError(err error, op string) error {
	if repository.IsNotFound(err) {
		return err
	}
	return common.InternalErrorf("%s: %v", op, err)
}
