package server

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/joseph-ayodele/catalog-cms/constants"
	"github.com/joseph-ayodele/catalog-cms/internal/auth"
	"github.com/joseph-ayodele/catalog-cms/internal/catalog"
	"github.com/joseph-ayodele/catalog-cms/internal/common"
	"github.com/joseph-ayodele/catalog-cms/internal/entity"
	"github.com/joseph-ayodele/catalog-cms/internal/export"
	"github.com/joseph-ayodele/catalog-cms/internal/pagination"
	"github.com/joseph-ayodele/catalog-cms/internal/schema"
	"github.com/joseph-ayodele/catalog-cms/internal/services/category"
	"github.com/joseph-ayodele/catalog-cms/internal/services/display"
	"github.com/joseph-ayodele/catalog-cms/internal/services/harddrive"
)

// Deps are the collaborators of the HTTP API.
type Deps struct {
	Categories *category.Service
	HardDrives *harddrive.Service
	Displays   *display.Service
	Export     *export.Service
	Options    *catalog.Options
	Schemas    *schema.Validator
	Verifier   *auth.Verifier
	CookieName string
	Paging     pagination.Config
	// Health reports whether the store is reachable; nil means always healthy.
	Health func(ctx context.Context) error
	Logger *slog.Logger
}

// NewRouter builds the HTTP API. Everything under /api requires the token cookie.
func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewMux()
	r.Use(
		requestID,
		middleware.RealIP,
		requestLogger(logger),
		recoverer(logger),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondStatus(w, http.StatusNotFound, "Route "+r.URL.Path+" not found.")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		if allowed := allowedMethods(r); len(allowed) > 0 {
			w.Header().Set("Allow", strings.Join(allowed, ", "))
		}
		respondStatus(w, http.StatusMethodNotAllowed, "Method "+r.Method+" is not allowed.")
	})

	r.Get("/healthz", healthHandler(d.Health, logger))

	exports := NewExportHandler(d.Export, d.Paging, logger)

	r.Route("/api", func(api chi.Router) {
		api.Use(requireAuth(d.Verifier, d.CookieName, logger))

		api.Get("/catalog-options", func(w http.ResponseWriter, r *http.Request) {
			respondOK(w, http.StatusOK, "Catalog options retrieved successfully.", d.Options)
		})

		api.Route("/"+string(constants.EntityCategories), func(cr chi.Router) {
			cr.Get("/export", exports.handler(constants.EntityCategories))
			(&resource[entity.Category, category.Request]{
				entity:   constants.EntityCategories,
				singular: "category",
				schema:   schema.Category,
				svc:      d.Categories,
				schemas:  d.Schemas,
				paging:   d.Paging,
				logger:   logger,
			}).routes(cr)
		})

		api.Route("/"+string(constants.EntityStorages), func(sr chi.Router) {
			sr.Get("/export", exports.handler(constants.EntityStorages))
			(&resource[entity.HardDrive, harddrive.Request]{
				entity:   constants.EntityStorages,
				singular: "storage",
				schema:   schema.Storage,
				svc:      d.HardDrives,
				schemas:  d.Schemas,
				paging:   d.Paging,
				logger:   logger,
			}).routes(sr)
		})

		api.Route("/"+string(constants.EntityDisplays), func(dr chi.Router) {
			dr.Get("/export", exports.handler(constants.EntityDisplays))
			(&resource[entity.Display, display.Request]{
				entity:   constants.EntityDisplays,
				singular: "display",
				schema:   schema.Display,
				svc:      d.Displays,
				schemas:  d.Schemas,
				paging:   d.Paging,
				logger:   logger,
			}).routes(dr)
		})
	})

	return r
}

var routeMethods = []string{
	http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
	http.MethodPatch, http.MethodDelete, http.MethodOptions,
}

// allowedMethods lists the methods the router would accept for r's path.
func allowedMethods(r *http.Request) []string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.Routes == nil {
		return nil
	}
	path := r.URL.RawPath
	if path == "" {
		path = r.URL.Path
	}
	var allowed []string
	for _, m := range routeMethods {
		if rctx.Routes.Match(chi.NewRouteContext(), m, path) {
			allowed = append(allowed, m)
		}
	}
	return allowed
}

func healthHandler(check func(context.Context) error, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			ctx, cancel := common.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				logger.Error("health check failed", "error", err)
				writeJSON(w, http.StatusServiceUnavailable, Envelope{
					Status:  http.StatusServiceUnavailable,
					Message: "Database unavailable.",
					Data:    map[string]string{"database": "down"},
				})
				return
			}
		}
		respondOK(w, http.StatusOK, "OK", map[string]string{"database": "up"})
	}
}
