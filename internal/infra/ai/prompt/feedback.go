package prompt

import (
	"strings"

	"github.com/bryanwahyu/feedback-analyzer/internal/domain/ai"
)

// Header asks the model for structured Markdown.
const Header = "You are a concise CX analyst. Return well-structured Markdown.\n" +
	"Use clear headings, lists, and, when applicable, short tables.\n\n"

// CorpusHeading introduces the raw feedback rows.
const CorpusHeading = "### Feedback Corpus\n"

// Task returns the instruction block for a focus.
func Task(focus ai.Focus) (string, bool) {
	switch focus {
	case ai.FocusSentiment:
		return "## Sentiment\n" +
			"Classify overall sentiment (Positive, Neutral, Negative).", true
	case ai.FocusThemes:
		return "## Key Themes\n" +
			"List 3-7 dominant themes with 1-line evidence each.", true
	case ai.FocusSuggestions:
		return "## Improvement Suggestions\n" +
			"Provide prioritized actions (bulleted) and expected impact.", true
	case ai.FocusAll:
		return "## Sentiment\nBriefly classify overall sentiment.\n\n" +
			"## Key Themes\nList dominant themes with brief evidence.\n\n" +
			"## Suggestions\nProvide prioritized, actionable improvements.", true
	default:
		return "", false
	}
}

// Build composes the prompt for the model. It returns false when focus is not
// a supported value. Rows are used as given: cleaning and truncation belong to
// the caller.
func Build(feedback []string, focus ai.Focus) (string, bool) {
	task, ok := Task(focus)
	if !ok {
		return "", false
	}
	var b strings.Builder
	b.WriteString(Header)
	b.WriteString(task)
	b.WriteString("\n\n")
	b.WriteString(CorpusHeading)
	b.WriteString(strings.Join(feedback, "\n"))
	return b.String(), true
}
