package sqlxrepos

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/strmangle"

	"github.com/trezcool/studyhub/core"
	"github.com/trezcool/studyhub/core/study"
)

const (
	lq = '"'
	rq = '"'
)

var (
	ErrUnknownColumn = errors.New("unknown column")
	ErrNoFilter      = errors.New("refusing to modify every row: no filter given")
)

// Table is a Postgres table holding rows of type T, scanned through their `db` tags.
type Table[T any] struct {
	db      *sqlx.DB
	logger  core.Logger
	name    string
	columns []string              // insertable columns (all but id)
	values  func(T) []interface{} // values of `columns`, in order
}

func NewTable[T any](db *sqlx.DB, logger core.Logger, name string, columns []string, values func(T) []interface{}) *Table[T] {
	return &Table[T]{
		db:      db,
		logger:  logger,
		name:    name,
		columns: columns,
		values:  values,
	}
}

var _ study.RemoteTable[study.QuestionRow] = (*Table[study.QuestionRow])(nil) // interface compliance check

func (t *Table[T]) ident(s string) string {
	return strmangle.IdentQuote(lq, rq, s)
}

func (t *Table[T]) known(field string) bool {
	if field == "id" {
		return true
	}
	for _, c := range t.columns {
		if c == field {
			return true
		}
	}
	return false
}

// where returns the WHERE clause of filters, placeholders numbered from start.
func (t *Table[T]) where(filters []core.DBFilter, start int) (string, []interface{}, error) {
	if len(filters) == 0 {
		return "", nil, nil
	}
	cols := make([]string, len(filters))
	args := make([]interface{}, len(filters))
	for i, f := range filters {
		if !t.known(f.Field) {
			return "", nil, errors.Wrapf(ErrUnknownColumn, "%s.%s", t.name, f.Field)
		}
		cols[i] = f.Field
		args[i] = f.Value
	}
	return " WHERE " + strmangle.WhereClause(string(lq), string(rq), start, cols), args, nil
}

func (t *Table[T]) debug(query string) {
	if t.logger != nil {
		t.logger.Debug(query)
	}
}

func (t *Table[T]) Select(ctx context.Context, filters []core.DBFilter, ordering ...core.DBOrdering) ([]T, error) {
	where, args, err := t.where(filters, 1)
	if err != nil {
		return nil, err
	}
	query := "SELECT * FROM " + t.ident(t.name) + where
	if len(ordering) > 0 {
		orderBy := make([]string, len(ordering))
		for i, ord := range ordering {
			if !t.known(ord.Field) {
				return nil, errors.Wrapf(ErrUnknownColumn, "ordering %s by %s", t.name, ord.Field)
			}
			orderBy[i] = core.DBOrdering{Field: t.ident(ord.Field), Ascending: ord.Ascending}.String()
		}
		query += " ORDER BY " + strings.Join(orderBy, ", ")
	}

	t.debug(query)
	rows := make([]T, 0)
	if err = t.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrapf(err, "selecting from %s", t.name)
	}
	return rows, nil
}

// Insert inserts every row with a single statement and returns them as stored.
func (t *Table[T]) Insert(ctx context.Context, rows ...T) ([]T, error) {
	if len(rows) == 0 {
		return []T{}, nil
	}
	args := make([]interface{}, 0, len(rows)*len(t.columns))
	for _, row := range rows {
		args = append(args, t.values(row)...)
	}
	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES %s RETURNING *",
		t.ident(t.name),
		strings.Join(strmangle.IdentQuoteSlice(lq, rq, t.columns), ","),
		strmangle.Placeholders(true, len(args), 1, len(t.columns)),
	)

	t.debug(query)
	inserted := make([]T, 0, len(rows))
	if err := t.db.SelectContext(ctx, &inserted, query, args...); err != nil {
		return nil, errors.Wrapf(err, "inserting into %s", t.name)
	}
	return inserted, nil
}

func (t *Table[T]) Update(ctx context.Context, filters []core.DBFilter, patch map[string]interface{}) error {
	if len(filters) == 0 {
		return errors.Wrapf(ErrNoFilter, "updating %s", t.name)
	}
	if len(patch) == 0 {
		return nil
	}
	cols := make([]string, 0, len(patch))
	for col := range patch {
		if !t.known(col) || col == "id" {
			return errors.Wrapf(ErrUnknownColumn, "updating %s.%s", t.name, col)
		}
		cols = append(cols, col)
	}
	sort.Strings(cols)
	args := make([]interface{}, 0, len(cols)+len(filters))
	for _, col := range cols {
		args = append(args, patch[col])
	}

	where, whereArgs, err := t.where(filters, len(cols)+1)
	if err != nil {
		return err
	}
	query := "UPDATE " + t.ident(t.name) + " SET " + strmangle.SetParamNames(string(lq), string(rq), 1, cols) + where

	t.debug(query)
	if _, err = t.db.ExecContext(ctx, query, append(args, whereArgs...)...); err != nil {
		return errors.Wrapf(err, "updating %s", t.name)
	}
	return nil
}

func (t *Table[T]) Delete(ctx context.Context, filters []core.DBFilter) error {
	if len(filters) == 0 {
		return errors.Wrapf(ErrNoFilter, "deleting from %s", t.name)
	}
	where, args, err := t.where(filters, 1)
	if err != nil {
		return err
	}
	query := "DELETE FROM " + t.ident(t.name) + where

	t.debug(query)
	if _, err = t.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "deleting from %s", t.name)
	}
	return nil
}
