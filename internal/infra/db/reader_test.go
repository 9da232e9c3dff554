package db

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/feedback-analyzer/internal/domain/feedback"
)

func seed(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	db, err := Connect(ctx, DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.ExecContext(ctx, `CREATE TABLE survey (id INTEGER PRIMARY KEY, comment TEXT, score INTEGER)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO survey (comment, score) VALUES
		('Great support team', 5),
		(NULL, 3),
		('Checkout keeps failing', 1)`)
	require.NoError(t, err)
	return db
}

func TestColumnReader_Load(t *testing.T) {
	r := NewColumnReader(seed(t), DriverSQLite, 0)

	tbl, err := r.Load(context.Background(), feedback.DatasetRef{Kind: feedback.SourceSQL, Key: "survey", Column: "comment"})

	require.NoError(t, err)
	assert.Equal(t, "survey", tbl.Name)
	assert.Equal(t, []string{"comment"}, tbl.Columns)
	col, err := tbl.Column("comment")
	require.NoError(t, err)
	assert.Equal(t, feedback.Corpus{"Great support team", "", "Checkout keeps failing"}, col)
}

func TestColumnReader_NumericColumn(t *testing.T) {
	r := NewColumnReader(seed(t), DriverSQLite, 0)

	tbl, err := r.Load(context.Background(), feedback.DatasetRef{Key: "survey", Column: "score"})

	require.NoError(t, err)
	assert.Equal(t, [][]string{{"5"}, {"3"}, {"1"}}, tbl.Rows)
}

func TestColumnReader_MaxRows(t *testing.T) {
	r := NewColumnReader(seed(t), DriverSQLite, 2)

	tbl, err := r.Load(context.Background(), feedback.DatasetRef{Key: "survey", Column: "comment"})

	require.NoError(t, err)
	assert.Len(t, tbl.Rows, 2)
}

func TestColumnReader_MissingTableAndColumn(t *testing.T) {
	r := NewColumnReader(seed(t), DriverSQLite, 0)
	ctx := context.Background()

	_, err := r.Load(ctx, feedback.DatasetRef{Key: "nope", Column: "comment"})
	assert.ErrorIs(t, err, feedback.ErrDatasetNotFound)

	_, err = r.Load(ctx, feedback.DatasetRef{Key: "survey", Column: "body"})
	assert.ErrorIs(t, err, feedback.ErrColumnNotFound)
	assert.True(t, feedback.IsInputError(err))
}

func TestColumnReader_RejectsInjection(t *testing.T) {
	db := seed(t)
	r := NewColumnReader(db, DriverSQLite, 0)
	ctx := context.Background()

	for _, ref := range []feedback.DatasetRef{
		{Key: "survey; DROP TABLE survey", Column: "comment"},
		{Key: "survey", Column: "comment FROM survey --"},
		{Key: "", Column: "comment"},
		{Key: "1survey", Column: "comment"},
	} {
		_, err := r.Load(ctx, ref)
		assert.ErrorIs(t, err, feedback.ErrInvalidReference)
	}

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM survey`).Scan(&n))
	assert.Equal(t, 3, n)
}

func TestConnect_UnsupportedDriver(t *testing.T) {
	_, err := Connect(context.Background(), "oracle", "x")
	assert.Error(t, err)
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "`reviews`", (&ColumnReader{driver: DriverMySQL}).quote("reviews"))
	assert.Equal(t, `"reviews"`, (&ColumnReader{driver: DriverPostgres}).quote("reviews"))
}
