// Package pagination parses list query parameters and derives page metadata.
package pagination

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/catalog-cms/constants"
	"github.com/joseph-ayodele/catalog-cms/internal/common"
)

// Config configures page size normalization.
type Config struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultConfig matches the limits offered by the list pages (4, 10, 20, 50, 100).
var DefaultConfig = Config{DefaultLimit: 10, MaxLimit: 100}

// Params are the normalized list parameters shared by every list endpoint.
type Params struct {
	Page   int
	Limit  int
	Search string
	// Status is nil when the caller asked for all non-deleted rows.
	Status *constants.Status
}

// Offset returns the number of rows to skip for the current page. It
// saturates at math.MaxInt instead of overflowing for huge page numbers.
func (p Params) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// ClampLimit applies defaults and limits for page sizes.
func ClampLimit(value int, cfg Config) int {
	limit := value
	if limit <= 0 {
		limit = cfg.DefaultLimit
	}
	if cfg.MaxLimit > 0 && limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if limit <= 0 {
		limit = 1
	}
	return limit
}

// ParseParams reads page, limit, search and status from a query string.
func ParseParams(q url.Values, cfg Config) (Params, error) {
	v := common.NewValidator()
	p := Params{Page: 1, Limit: cfg.DefaultLimit}

	if raw := strings.TrimSpace(q.Get("page")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			v.Add("page", raw, "must be a positive integer")
		} else {
			p.Page = n
		}
	}

	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			v.Add("limit", raw, "must be a positive integer")
		} else {
			p.Limit = n
		}
	}
	p.Limit = ClampLimit(p.Limit, cfg)

	p.Search = strings.TrimSpace(q.Get("search"))

	if raw := strings.TrimSpace(q.Get("status")); raw != "" && !strings.EqualFold(raw, "all") {
		s, ok := constants.ParseStatus(raw)
		if !ok {
			v.Add("status", raw, "must be one of -2, -1, 0, 1 or all")
		} else {
			p.Status = &s
		}
	}

	if err := common.ValidateAndReturnError(v); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Meta is the pagination block of a list response.
type Meta struct {
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalItems  int `json:"totalItems"`
	TotalPages  int `json:"totalPages"`
}

// NewMeta derives the page count from the filtered row total.
func NewMeta(page, limit, total int) Meta {
	pages := 0
	if limit > 0 && total > 0 {
		pages = (total + limit - 1) / limit
	}
	return Meta{
		CurrentPage: page,
		PageSize:    limit,
		TotalItems:  total,
		TotalPages:  pages,
	}
}

// HasPrev reports whether a previous page link should be enabled.
func (m Meta) HasPrev() bool { return m.CurrentPage > 1 }

// HasNext reports whether a next page link should be enabled.
func (m Meta) HasNext() bool { return m.CurrentPage < m.TotalPages }
