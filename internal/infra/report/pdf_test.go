package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/feedback-analyzer/internal/domain/feedback"
)

var fixedNow = func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }

func TestRender_EmptySummary(t *testing.T) {
	r := NewRenderer(fixedNow)

	out, err := r.Render("", feedback.Stats{RowCount: 3, NonEmptyCount: 2, AvgWords: 1.5})

	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Contains(t, string(out), "%%EOF")
	assert.Equal(t, 1, r.build("", feedback.Stats{}).PageNo())
}

func TestRender_MultiPage(t *testing.T) {
	r := NewRenderer(fixedNow)
	lines := make([]string, 200)
	for i := range lines {
		lines[i] = "- theme line"
	}
	summary := strings.Join(lines, "\n")

	out, err := r.Render(summary, feedback.Stats{RowCount: 200, NonEmptyCount: 200, AvgWords: 3})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	// 48 body lines fit under the header on page one, 53 on later pages
	assert.Equal(t, 4, r.build(summary, feedback.Stats{}).PageNo())
}

func TestRender_NoTrailingBlankPage(t *testing.T) {
	r := NewRenderer(fixedNow)
	summary := strings.Repeat("x\n", 48)

	assert.Equal(t, 1, r.build(summary, feedback.Stats{}).PageNo())
	assert.Equal(t, 2, r.build(summary+"y", feedback.Stats{}).PageNo())
}

func TestRender_NonLatinText(t *testing.T) {
	out, err := NewRenderer(fixedNow).Render("Très bien — 👍 ça marche\n日本語のフィードバック", feedback.Stats{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestWrap(t *testing.T) {
	long := strings.Repeat("a", 200)
	got := Wrap("short\n\n"+long+"\r\nlast", 95)
	require.Len(t, got, 5)
	assert.Equal(t, "short", got[0])
	assert.Len(t, got[1], 95)
	assert.Len(t, got[2], 95)
	assert.Len(t, got[3], 10)
	assert.Equal(t, "last", got[4])

	assert.Empty(t, Wrap("", 95))
}

func TestWrap_SplitsOnRunes(t *testing.T) {
	got := Wrap(strings.Repeat("é", 100), 95)
	require.Len(t, got, 2)
	assert.Equal(t, 95, len([]rune(got[0])))
	assert.Equal(t, strings.Repeat("é", 5), got[1])
}

func TestStatsLine(t *testing.T) {
	assert.Equal(t, "Rows: 10  |  Non-empty: 8  |  Avg words: 2.0", StatsLine(feedback.Stats{RowCount: 10, NonEmptyCount: 8, AvgWords: 2}))
	assert.Equal(t, "Rows: 3  |  Non-empty: 3  |  Avg words: 12.35", StatsLine(feedback.Stats{RowCount: 3, NonEmptyCount: 3, AvgWords: 12.35}))
	assert.Equal(t, "Rows: 0  |  Non-empty: 0  |  Avg words: 0.0", StatsLine(feedback.Stats{}))
	assert.Equal(t, "Rows: 2  |  Non-empty: 1  |  Avg words: 1.5", StatsLine(feedback.Stats{RowCount: 2, NonEmptyCount: 1, AvgWords: 1.5}))
}
