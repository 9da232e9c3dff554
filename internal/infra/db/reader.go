package db

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/bryanwahyu/feedback-analyzer/internal/domain/feedback"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,63}$`)

// ValidIdentifier reports whether name is safe to splice into a query as a
// table or column name.
func ValidIdentifier(name string) bool { return identRe.MatchString(name) }

// ColumnReader loads one text column from a table. It only ever issues SELECTs.
type ColumnReader struct {
	db      *sql.DB
	driver  string
	maxRows int
}

// NewColumnReader; maxRows <= 0 reads the whole table.
func NewColumnReader(db *sql.DB, driver string, maxRows int) *ColumnReader {
	return &ColumnReader{db: db, driver: driver, maxRows: maxRows}
}

// Load implementasi feedback.Source untuk tabel SQL
func (r *ColumnReader) Load(ctx context.Context, ref feedback.DatasetRef) (*feedback.Table, error) {
	if !ValidIdentifier(ref.Key) {
		return nil, &feedback.InputError{Op: "load table", Err: feedback.ErrInvalidReference, Detail: ref.Key}
	}
	if !ValidIdentifier(ref.Column) {
		return nil, &feedback.InputError{Op: "load table", Err: feedback.ErrInvalidReference, Detail: ref.Column}
	}

	columns, err := r.columns(ctx, ref.Key)
	if err != nil {
		return nil, err
	}
	found := false
	for _, c := range columns {
		if c == ref.Column {
			found = true
			break
		}
	}
	if !found {
		return nil, &feedback.InputError{Op: "select column", Err: feedback.ErrColumnNotFound, Detail: ref.Column}
	}

	q := fmt.Sprintf("SELECT %s FROM %s", r.quote(ref.Column), r.quote(ref.Key))
	if r.maxRows > 0 {
		q += fmt.Sprintf(" LIMIT %d", r.maxRows)
	}
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query %s.%s: %w", ref.Key, ref.Column, err)
	}
	defer rows.Close()

	out := [][]string{}
	for rows.Next() {
		var v sql.NullString
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan %s.%s: %w", ref.Key, ref.Column, err)
		}
		out = append(out, []string{v.String})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &feedback.Table{Name: ref.Key, Columns: []string{ref.Column}, Rows: out}, nil
}

// Ping dipakai health check
func (r *ColumnReader) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// columns probes the table with an empty select; a failing probe on a live
// connection means the table is missing.
func (r *ColumnReader) columns(ctx context.Context, table string) ([]string, error) {
	if err := r.db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("database unavailable: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s WHERE 1=0", r.quote(table)))
	if err != nil {
		return nil, &feedback.InputError{Op: "load table", Err: feedback.ErrDatasetNotFound, Detail: table}
	}
	defer rows.Close()
	return rows.Columns()
}

func (r *ColumnReader) quote(ident string) string {
	if r.driver == DriverMySQL {
		return "`" + ident + "`"
	}
	return `"` + strings.ReplaceAll(ident, `"`, "") + `"`
}
