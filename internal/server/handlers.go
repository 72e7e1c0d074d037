package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/joseph-ayodele/catalog-cms/constants"
	"github.com/joseph-ayodele/catalog-cms/internal/common"
	"github.com/joseph-ayodele/catalog-cms/internal/entity"
	"github.com/joseph-ayodele/catalog-cms/internal/pagination"
	"github.com/joseph-ayodele/catalog-cms/internal/schema"
)

const maxBodyBytes = 1 << 20

// entityService is what the category, hard drive and display services share.
type entityService[T, Req any] interface {
	List(ctx context.Context, params pagination.Params) ([]*T, pagination.Meta, error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, req Req) (*T, error)
	Update(ctx context.Context, id int64, req Req) (*T, error)
	UpdateStatus(ctx context.Context, id int64, status constants.Status) (*T, error)
	ListActiveNames(ctx context.Context) ([]*entity.IDName, error)
}

// resource serves the CRUD routes of one entity.
type resource[T, Req any] struct {
	entity   constants.Entity
	singular string
	schema   schema.Name
	svc      entityService[T, Req]
	schemas  *schema.Validator
	paging   pagination.Config
	logger   *slog.Logger
}

type updateStatusRequest struct {
	ID     int64            `json:"id"`
	Status constants.Status `json:"status"`
}

func (h *resource[T, Req]) routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/update-status", h.updateStatus)
	r.Get("/id-name", h.idName)
	r.Get("/{id:[0-9]+}", h.get)
	r.Put("/{id:[0-9]+}", h.update)
}

func (h *resource[T, Req]) list(w http.ResponseWriter, r *http.Request) {
	params, err := pagination.ParseParams(r.URL.Query(), h.paging)
	if err != nil {
		respondError(w, r, h.logger, err, "")
		return
	}
	items, meta, err := h.svc.List(r.Context(), params)
	if err != nil {
		respondError(w, r, h.logger, err, "An error occurred while retrieving "+string(h.entity)+".")
		return
	}
	respondList(w, h.title()+" retrieved successfully.", items, meta)
}

func (h *resource[T, Req]) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, h.logger, err, "")
		return
	}
	item, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondError(w, r, h.logger, err, "An error occurred while retrieving the "+h.singular+".")
		return
	}
	respondOK(w, http.StatusOK, h.singularTitle()+" retrieved successfully.", item)
}

func (h *resource[T, Req]) create(w http.ResponseWriter, r *http.Request) {
	var req Req
	if err := h.decode(w, r, h.schema, &req); err != nil {
		respondError(w, r, h.logger, err, "")
		return
	}
	item, err := h.svc.Create(r.Context(), req)
	if err != nil {
		respondError(w, r, h.logger, err, "An error occurred while creating the "+h.singular+".")
		return
	}
	h.audit(r, "created")
	respondOK(w, http.StatusCreated, h.singularTitle()+" created successfully.", item)
}

func (h *resource[T, Req]) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, r, h.logger, err, "")
		return
	}
	var req Req
	if err := h.decode(w, r, h.schema, &req); err != nil {
		respondError(w, r, h.logger, err, "")
		return
	}
	item, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		respondError(w, r, h.logger, err, "An error occurred while updating the "+h.singular+".")
		return
	}
	h.audit(r, "updated", "id", id)
	respondOK(w, http.StatusOK, h.singularTitle()+" updated successfully.", item)
}

func (h *resource[T, Req]) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := h.decode(w, r, schema.UpdateStatus, &req); err != nil {
		respondError(w, r, h.logger, err, "")
		return
	}
	item, err := h.svc.UpdateStatus(r.Context(), req.ID, req.Status)
	if err != nil {
		respondError(w, r, h.logger, err, "An error occurred while updating the "+h.singular+" status.")
		return
	}
	h.audit(r, "status updated", "id", req.ID, "status", int(req.Status))
	respondOK(w, http.StatusOK, h.singularTitle()+" status updated successfully.", item)
}

func (h *resource[T, Req]) idName(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.ListActiveNames(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err, "An error occurred while retrieving "+h.singular+" items.")
		return
	}
	respondOK(w, http.StatusOK, h.singularTitle()+" items retrieved successfully.", names)
}

// decode reads the body, checks it against the named schema and unmarshals it into dst.
func (h *resource[T, Req]) decode(w http.ResponseWriter, r *http.Request, name schema.Name, dst any) error {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return common.InvalidArgumentError("request body is too large")
		}
		return common.InvalidArgumentError("could not read request body")
	}
	if err := h.schemas.Validate(name, raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return common.InvalidArgumentError("request body does not match the expected shape")
	}
	return nil
}

// audit records who changed what; the user comes from the verified token.
func (h *resource[T, Req]) audit(r *http.Request, action string, attrs ...any) {
	ctx := r.Context()
	roleID, _ := common.RoleIDFromContext(ctx)
	attrs = append(attrs,
		"user_id", common.UserIDFromContext(ctx),
		"role_id", roleID,
		"request_id", common.RequestIDFromContext(ctx),
	)
	h.logger.InfoContext(ctx, h.singular+" "+action, attrs...)
}

func (h *resource[T, Req]) title() string {
	return capitalize(string(h.entity))
}

func (h *resource[T, Req]) singularTitle() string {
	return capitalize(h.singular)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.InvalidArgumentError("id must be a positive integer")
	}
	return id, nil
}
