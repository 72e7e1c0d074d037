package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/catalog-cms/constants"
	"github.com/joseph-ayodele/catalog-cms/internal/common"
	"github.com/joseph-ayodele/catalog-cms/internal/pagination"
	"github.com/joseph-ayodele/catalog-cms/internal/repository"
)

// Service writes list results to XLSX workbooks.
type Service struct {
	categories repository.CategoryRepository
	hardDrives repository.HardDriveRepository
	displays   repository.DisplayRepository
	logger     *slog.Logger
}

func NewService(categories repository.CategoryRepository, hardDrives repository.HardDriveRepository, displays repository.DisplayRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{categories: categories, hardDrives: hardDrives, displays: displays, logger: logger}
}

// sheet is one exported table: a header row plus one row of cells per record.
type sheet struct {
	name    string
	headers []string
	widths  []float64
	rows    [][]any
}

// ExportXLSX returns a workbook (as bytes) with every row of e matching the
// search and status of params. Paging is ignored.
func (s *Service) ExportXLSX(ctx context.Context, e constants.Entity, params pagination.Params) ([]byte, error) {
	start := time.Now()
	filter := repository.FilterFromParams(params)
	filter.Limit, filter.Offset = 0, 0

	sh, err := s.load(ctx, e, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sh.name); err != nil {
		return nil, common.InternalErrorf("xlsx sheet: %v", err)
	}
	for i, h := range sh.headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sh.name, cell, h)
	}
	for r, row := range sh.rows {
		for c, v := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(sh.name, cell, v)
		}
	}
	for i, w := range sh.widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sh.name, col, col, w)
	}
	if len(sh.headers) > 0 {
		_ = f.SetPanes(sh.name, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, common.InternalErrorf("xlsx write: %v", err)
	}

	s.logger.Info("export.xlsx.ok",
		"entity", e,
		"rows", len(sh.rows),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// Filename returns the download name of an export taken at t.
func Filename(e constants.Entity, t time.Time) string {
	return fmt.Sprintf("%s-%s.%s", e, t.UTC().Format("20060102-150405"), constants.XLSXExt)
}

func (s *Service) load(ctx context.Context, e constants.Entity, filter repository.ListFilter) (*sheet, error) {
	switch e {
	case constants.EntityCategories:
		items, _, err := s.categories.List(ctx, filter)
		if err != nil {
			return nil, common.InternalErrorf("export categories: %v", err)
		}
		sh := &sheet{
			name:    "Categories",
			headers: []string{"ID", "Name", "Slug", "Parent ID", "Status", "Created At", "Updated At"},
			widths:  []float64{8, 32, 32, 10, 12, 20, 20},
		}
		for _, c := range items {
			var parent any = ""
			if c.ParentID != nil {
				parent = *c.ParentID
			}
			sh.rows = append(sh.rows, []any{c.ID, c.Name, c.Slug, parent, c.Status.Label(), stamp(c.CreatedAt), stamp(c.UpdatedAt)})
		}
		return sh, nil

	case constants.EntityStorages:
		items, _, err := s.hardDrives.List(ctx, filter)
		if err != nil {
			return nil, common.InternalErrorf("export storages: %v", err)
		}
		sh := &sheet{
			name:    "Storages",
			headers: []string{"ID", "Name", "Type", "Capacity", "Interface", "Brand", "Status", "Created At"},
			widths:  []float64{8, 32, 10, 12, 14, 20, 12, 20},
		}
		for _, hd := range items {
			sh.rows = append(sh.rows, []any{hd.ID, hd.Name, hd.Type, hd.Capacity, hd.Interface, hd.Brand, hd.Status.Label(), stamp(hd.CreatedAt)})
		}
		return sh, nil

	case constants.EntityDisplays:
		items, _, err := s.displays.List(ctx, filter)
		if err != nil {
			return nil, common.InternalErrorf("export displays: %v", err)
		}
		sh := &sheet{
			name:    "Displays",
			headers: []string{"ID", "Name", "Size", "Resolution", "Panel Type", "Refresh Rate", "Brand", "Status", "Created At"},
			widths:  []float64{8, 32, 12, 14, 12, 14, 16, 12, 20},
		}
		for _, d := range items {
			sh.rows = append(sh.rows, []any{d.ID, d.Name, d.Size, d.Resolution, d.PanelType, d.RefreshRate, d.Brand, d.Status.Label(), stamp(d.CreatedAt)})
		}
		return sh, nil
	}
	return nil, common.InvalidArgumentErrorf("cannot export %q; expected one of %v", e, constants.EntitiesAsStringSlice())
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}
