package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/joseph-ayodele/catalog-cms/constants"
	"github.com/joseph-ayodele/catalog-cms/internal/common"
	"github.com/joseph-ayodele/catalog-cms/internal/entity"
	"github.com/joseph-ayodele/catalog-cms/internal/pagination"
)

// ListFilter narrows a list query. A nil Status hides soft-deleted rows.
// Limit <= 0 returns every matching row.
type ListFilter struct {
	Search string
	Status *constants.Status
	Limit  int
	Offset int
}

// FilterFromParams converts parsed list query parameters into a ListFilter.
func FilterFromParams(p pagination.Params) ListFilter {
	return ListFilter{
		Search: p.Search,
		Status: p.Status,
		Limit:  p.Limit,
		Offset: p.Offset(),
	}
}

// table describes one catalog table for the shared query helpers.
type table struct {
	name    string
	columns []string
	search  []string
}

// where builds a fresh predicate for f; predicates are not reused between selectors.
func (t table) where(f ListFilter) *entsql.Predicate {
	var preds []*entsql.Predicate
	if f.Status != nil {
		preds = append(preds, entsql.EQ("status", int(*f.Status)))
	} else {
		preds = append(preds, entsql.NEQ("status", int(constants.StatusDeleted)))
	}
	if f.Search != "" {
		or := make([]*entsql.Predicate, 0, len(t.search))
		for _, col := range t.search {
			or = append(or, entsql.ContainsFold(col, f.Search))
		}
		preds = append(preds, entsql.Or(or...))
	}
	if len(preds) == 1 {
		return preds[0]
	}
	return entsql.And(preds...)
}

func listRows[T any](ctx context.Context, s *Store, t table, f ListFilter) ([]*T, int, error) {
	total, err := countWhere(ctx, s, t, t.where(f))
	if err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", t.name, err)
	}
	if f.Limit > 0 && f.Offset > 0 && f.Offset >= total {
		return []*T{}, total, nil
	}

	sel := s.builder().Select(t.columns...).
		From(entsql.Table(t.name)).
		Where(t.where(f)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("id"))
	if f.Limit > 0 {
		sel.Limit(f.Limit).Offset(f.Offset)
	}

	items := make([]*T, 0)
	if err := s.query(ctx, sel, func(rows entsql.ColumnScanner) error {
		return entsql.ScanSlice(rows, &items)
	}); err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", t.name, err)
	}
	return items, total, nil
}

func countWhere(ctx context.Context, s *Store, t table, p *entsql.Predicate) (int, error) {
	sel := s.builder().Select(entsql.Count("*")).From(entsql.Table(t.name))
	if p != nil {
		sel.Where(p)
	}
	var n int
	err := s.query(ctx, sel, func(rows entsql.ColumnScanner) error {
		var err error
		n, err = entsql.ScanInt(rows)
		return err
	})
	return n, err
}

func getRow[T any](ctx context.Context, s *Store, t table, id int64) (*T, error) {
	sel := s.builder().Select(t.columns...).
		From(entsql.Table(t.name)).
		Where(entsql.EQ("id", id)).
		Limit(1)

	var items []*T
	if err := s.query(ctx, sel, func(rows entsql.ColumnScanner) error {
		return entsql.ScanSlice(rows, &items)
	}); err != nil {
		return nil, fmt.Errorf("get %s %d: %w", t.name, id, err)
	}
	if len(items) == 0 {
		return nil, common.NotFoundError(fmt.Sprintf("%s %d not found", singular(t.name), id))
	}
	return items[0], nil
}

// insertRow inserts the given column/value pairs and returns the generated id.
func insertRow(ctx context.Context, s *Store, t table, columns []string, values []any) (int64, error) {
	ins := s.builder().Insert(t.name).Columns(columns...).Values(values...).Returning("id")

	var id int64
	err := s.query(ctx, ins, func(rows entsql.ColumnScanner) error {
		var err error
		id, err = entsql.ScanInt64(rows)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", t.name, err)
	}
	return id, nil
}

// updateRow applies set to the row with id and reports ErrNotFound when nothing matched.
func updateRow(ctx context.Context, s *Store, t table, id int64, set func(*entsql.UpdateBuilder)) error {
	upd := s.builder().Update(t.name).Where(entsql.EQ("id", id))
	set(upd)
	upd.Set("updated_at", s.now())

	res, err := s.exec(ctx, upd)
	if err != nil {
		return fmt.Errorf("update %s %d: %w", t.name, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update %s %d: %w", t.name, id, err)
	}
	if n == 0 {
		return common.NotFoundError(fmt.Sprintf("%s %d not found", singular(t.name), id))
	}
	return nil
}

func updateStatus[T any](ctx context.Context, s *Store, t table, id int64, status constants.Status) (*T, error) {
	err := updateRow(ctx, s, t, id, func(u *entsql.UpdateBuilder) {
		u.Set("status", int(status))
	})
	if err != nil {
		return nil, err
	}
	return getRow[T](ctx, s, t, id)
}

func listActiveNames(ctx context.Context, s *Store, t table) ([]*entity.IDName, error) {
	sel := s.builder().Select("id", "name").
		From(entsql.Table(t.name)).
		Where(entsql.EQ("status", int(constants.StatusActive))).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("id"))

	items := make([]*entity.IDName, 0)
	if err := s.query(ctx, sel, func(rows entsql.ColumnScanner) error {
		return entsql.ScanSlice(rows, &items)
	}); err != nil {
		return nil, fmt.Errorf("list active %s: %w", t.name, err)
	}
	return items, nil
}

func countAll(ctx context.Context, s *Store, t table) (int, error) {
	n, err := countWhere(ctx, s, t, nil)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", t.name, err)
	}
	return n, nil
}

func singular(tableName string) string {
	switch tableName {
	case categoriesTable.name:
		return "category"
	case hardDrivesTable.name:
		return "storage"
	case displaysTable.name:
		return "display"
	}
	return tableName
}

// IsNotFound reports whether err means the requested row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, common.ErrNotFound) || errors.Is(err, sql.ErrNoRows)
}

// pgUniqueViolation is the SQLSTATE of unique_violation.
const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err comes from a unique index rejecting a write.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			(code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), "UNIQUE"))
	}
	return false
}
