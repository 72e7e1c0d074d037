package server

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/joseph-ayodele/catalog-cms/constants"
	"github.com/joseph-ayodele/catalog-cms/internal/export"
	"github.com/joseph-ayodele/catalog-cms/internal/pagination"
)

// ExportHandler streams list results as XLSX downloads.
type ExportHandler struct {
	svc    *export.Service
	paging pagination.Config
	now    func() time.Time
	logger *slog.Logger
}

func NewExportHandler(svc *export.Service, paging pagination.Config, logger *slog.Logger) *ExportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExportHandler{svc: svc, paging: paging, now: time.Now, logger: logger}
}

// handler returns the download handler of entity e. The list query string
// (search, status) narrows the rows; page and limit are ignored.
func (h *ExportHandler) handler(e constants.Entity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := pagination.ParseParams(r.URL.Query(), h.paging)
		if err != nil {
			respondError(w, r, h.logger, err, "")
			return
		}

		xlsx, err := h.svc.ExportXLSX(r.Context(), e, params)
		if err != nil {
			h.logger.Error("export.xlsx.failed", "entity", e, "err", err)
			respondError(w, r, h.logger, err, "An error occurred while exporting "+string(e)+".")
			return
		}

		w.Header().Set("Content-Type", constants.XLSXContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(e, h.now())+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(len(xlsx)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(xlsx)
	}
}
