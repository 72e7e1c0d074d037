package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/catalog-cms/constants"
	"github.com/joseph-ayodele/catalog-cms/internal/app"
	"github.com/joseph-ayodele/catalog-cms/internal/pagination"
)

type listOptions struct {
	page   int
	limit  int
	search string
	status string
}

func newListCmd(env *cmdEnv) *cobra.Command {
	opts := &listOptions{}
	cmd := &cobra.Command{
		Use:   "list <categories|storages|displays>",
		Short: "Print one page of an entity list",
		Example: `  cmsctl list storages --search samsung --limit 20
  cmsctl list categories --status -2`,
		Args: entityArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, _ := constants.CanonicalizeEntity(args[0])
			params, err := opts.params(env)
			if err != nil {
				return err
			}
			a, closeFn, err := env.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			return runList(cmd.Context(), cmd.OutOrStdout(), a, e, params)
		},
	}
	cmd.Flags().IntVar(&opts.page, "page", 1, "page number (1-based)")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "page size (default from PAGE_DEFAULT_LIMIT)")
	cmd.Flags().StringVar(&opts.search, "search", "", "case-insensitive name filter")
	cmd.Flags().StringVar(&opts.status, "status", "", "status filter (-2, -1, 0, 1)")
	return cmd
}

// params validates the flags the same way the HTTP list endpoints validate
// their query string.
func (o *listOptions) params(env *cmdEnv) (pagination.Params, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(o.page))
	if o.limit > 0 {
		q.Set("limit", strconv.Itoa(o.limit))
	}
	q.Set("search", o.search)
	q.Set("status", o.status)
	return pagination.ParseParams(q, pagination.Config{
		DefaultLimit: env.cfg.Paging.DefaultLimit,
		MaxLimit:     env.cfg.Paging.MaxLimit,
	})
}

func runList(ctx context.Context, w io.Writer, a *app.App, e constants.Entity, params pagination.Params) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	var meta pagination.Meta
	switch e {
	case constants.EntityCategories:
		items, m, err := a.Categories.List(ctx, params)
		if err != nil {
			return err
		}
		meta = m
		t.AppendHeader(table.Row{"ID", "Name", "Slug", "Parent", "Status", "Updated"})
		for _, c := range items {
			t.AppendRow(table.Row{c.ID, c.Name, c.Slug, optionalID(c.ParentID), c.Status.Label(), c.UpdatedAt.Format("2006-01-02 15:04")})
		}
	case constants.EntityStorages:
		items, m, err := a.HardDrives.List(ctx, params)
		if err != nil {
			return err
		}
		meta = m
		t.AppendHeader(table.Row{"ID", "Name", "Type", "Capacity", "Interface", "Brand", "Status"})
		for _, h := range items {
			t.AppendRow(table.Row{h.ID, h.Name, h.Type, h.Capacity, h.Interface, h.Brand, h.Status.Label()})
		}
	case constants.EntityDisplays:
		items, m, err := a.Displays.List(ctx, params)
		if err != nil {
			return err
		}
		meta = m
		t.AppendHeader(table.Row{"ID", "Name", "Size", "Resolution", "Panel", "Refresh", "Brand", "Status"})
		for _, d := range items {
			t.AppendRow(table.Row{d.ID, d.Name, d.Size, d.Resolution, d.PanelType, d.RefreshRate, d.Brand, d.Status.Label()})
		}
	default:
		return fmt.Errorf("unknown entity %q", e)
	}

	if t.Length() == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
	} else {
		t.Render()
	}
	_, _ = fmt.Fprintf(w, "page %d of %d, %d %s total\n", meta.CurrentPage, meta.TotalPages, meta.TotalItems, e)
	if meta.TotalPages > 1 {
		_, _ = fmt.Fprintln(w, pagination.Render(pagination.Window(meta.CurrentPage, meta.TotalPages)))
	}
	if meta.HasPrev() {
		_, _ = fmt.Fprintf(w, "prev: --page %d\n", meta.CurrentPage-1)
	}
	if meta.HasNext() {
		_, _ = fmt.Fprintf(w, "next: --page %d\n", meta.CurrentPage+1)
	}
	return nil
}

func optionalID(id *int64) string {
	if id == nil {
		return "-"
	}
	return strconv.FormatInt(*id, 10)
}
