package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/feedback-analyzer/internal/domain/ai"
)

func TestBuild_Sentiment(t *testing.T) {
	got, ok := Build([]string{"Great app", "Too slow"}, ai.FocusSentiment)
	require.True(t, ok)

	want := "You are a concise CX analyst. Return well-structured Markdown.\n" +
		"Use clear headings, lists, and, when applicable, short tables.\n\n" +
		"## Sentiment\nClassify overall sentiment (Positive, Neutral, Negative)." +
		"\n\n### Feedback Corpus\nGreat app\nToo slow"
	assert.Equal(t, want, got)
}

func TestBuild_EveryFocusHasTask(t *testing.T) {
	headings := map[ai.Focus]string{
		ai.FocusSentiment:   "## Sentiment\n",
		ai.FocusThemes:      "## Key Themes\nList 3-7 dominant themes with 1-line evidence each.",
		ai.FocusSuggestions: "## Improvement Suggestions\nProvide prioritized actions (bulleted) and expected impact.",
		ai.FocusAll:         "## Suggestions\nProvide prioritized, actionable improvements.",
	}
	for _, f := range ai.Focuses {
		got, ok := Build([]string{"row"}, f)
		require.True(t, ok, f.String())
		assert.True(t, strings.HasPrefix(got, Header), f.String())
		assert.Contains(t, got, headings[f], f.String())
		assert.True(t, strings.HasSuffix(got, "### Feedback Corpus\nrow"), f.String())
	}
}

func TestBuild_AllCombinesBlocks(t *testing.T) {
	got, ok := Build(nil, ai.FocusAll)
	require.True(t, ok)
	assert.Contains(t, got, "## Sentiment\nBriefly classify overall sentiment.\n\n## Key Themes\n")
	assert.True(t, strings.HasSuffix(got, CorpusHeading))
}

func TestBuild_InvalidFocus(t *testing.T) {
	for _, f := range []ai.Focus{0, -1, ai.FocusAll + 1} {
		got, ok := Build([]string{"plenty", "of", "rows"}, f)
		assert.False(t, ok)
		assert.Empty(t, got)
	}
}

func TestBuild_NoTruncation(t *testing.T) {
	rows := make([]string, 500)
	for i := range rows {
		rows[i] = "row"
	}
	got, ok := Build(rows, ai.FocusThemes)
	require.True(t, ok)
	assert.Equal(t, 500, strings.Count(got, "row"))
}
