package source

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/bryanwahyu/feedback-analyzer/internal/domain/feedback"
)

func TestParseCSV(t *testing.T) {
	content := "\ufeffid,review,rating\n" +
		"1,\"Great, fast delivery\",5\n" +
		"2,,3\n" +
		"3,\"Said \"\"meh\"\"\",2\n"

	tbl, err := Parse("reviews.csv", strings.NewReader(content))

	require.NoError(t, err)
	assert.Equal(t, "reviews.csv", tbl.Name)
	assert.Equal(t, []string{"id", "review", "rating"}, tbl.Columns)
	col, err := tbl.Column("review")
	require.NoError(t, err)
	assert.Equal(t, feedback.Corpus{"Great, fast delivery", "", `Said "meh"`}, col)
}

func TestParseCSV_RaggedRowsAndDuplicateHeaders(t *testing.T) {
	content := "text,text,\na,b\nc,d,e,f\n"

	tbl, err := Parse("/tmp/upload/data.csv", strings.NewReader(content))

	require.NoError(t, err)
	assert.Equal(t, "data.csv", tbl.Name)
	assert.Equal(t, []string{"text", "text.1", "Unnamed: 2", "Unnamed: 3"}, tbl.Columns)
	assert.Equal(t, []string{"a", "b", "", ""}, tbl.Rows[0])
	assert.Equal(t, []string{"c", "d", "e", "f"}, tbl.Rows[1])
}

func TestParseTSV(t *testing.T) {
	tbl, err := Parse("x.TSV", strings.NewReader("comment\tscore\nnice, really\t4\n"))
	require.NoError(t, err)
	col, err := tbl.Column("comment")
	require.NoError(t, err)
	assert.Equal(t, feedback.Corpus{"nice, really"}, col)
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	tbl, err := Parse("h.csv", strings.NewReader("review\n"))
	require.NoError(t, err)
	assert.Empty(t, tbl.Rows)
	col, err := tbl.Column("review")
	require.NoError(t, err)
	assert.Empty(t, col)
}

func TestParseCSV_Empty(t *testing.T) {
	_, err := Parse("empty.csv", strings.NewReader(""))
	require.Error(t, err)
	assert.ErrorIs(t, err, feedback.ErrEmptyDataset)
	assert.True(t, feedback.IsInputError(err))
}

func TestParse_ReadFailure(t *testing.T) {
	reset := errors.New("connection reset")

	for _, name := range []string{"bad.csv", "bad.xlsx"} {
		_, err := Parse(name, iotest.ErrReader(reset))
		require.Error(t, err)
		assert.ErrorIs(t, err, reset)
		assert.False(t, feedback.IsInputError(err), name)
	}
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"customer", "feedback"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"ann", "Loved the onboarding"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"bob"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	tbl, err := Parse("survey.xlsx", bytes.NewReader(buf.Bytes()))

	require.NoError(t, err)
	assert.Equal(t, []string{"customer", "feedback"}, tbl.Columns)
	col, err := tbl.Column("feedback")
	require.NoError(t, err)
	assert.Equal(t, feedback.Corpus{"Loved the onboarding", ""}, col)
}

func TestParseXLSX_NotAWorkbook(t *testing.T) {
	_, err := Parse("fake.xlsx", strings.NewReader("definitely,not,zip"))
	require.Error(t, err)
	assert.True(t, feedback.IsInputError(err))
}
