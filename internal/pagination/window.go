package pagination

import (
	"strconv"
	"strings"
)

// Item is one entry of the page-link bar: either a page number or an ellipsis.
type Item struct {
	Page     int
	Active   bool
	Ellipsis bool
}

// Window returns the page links shown under a list: the first page, the pages
// around current, the last page, and one ellipsis on each side where pages are
// skipped. Pages are 1-based.
func Window(current, total int) []Item {
	if total <= 0 {
		return nil
	}
	c := min(max(current, 1), total)
	lo, hi := max(c-1, 2), min(c+1, total-1)

	items := make([]Item, 0, 7)
	items = append(items, Item{Page: 1, Active: current == 1})
	if lo > 2 {
		items = append(items, Item{Ellipsis: true})
	}
	for page := lo; page <= hi; page++ {
		items = append(items, Item{Page: page, Active: page == current})
	}
	if hi < total-1 {
		items = append(items, Item{Ellipsis: true})
	}
	if total > 1 {
		items = append(items, Item{Page: total, Active: current == total})
	}
	return items
}

// Render formats a window for terminal output, e.g. "1 … [4] 5 … 10".
func Render(items []Item) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		switch {
		case it.Ellipsis:
			parts = append(parts, "…")
		case it.Active:
			parts = append(parts, "["+strconv.Itoa(it.Page)+"]")
		default:
			parts = append(parts, strconv.Itoa(it.Page))
		}
	}
	return strings.Join(parts, " ")
}
