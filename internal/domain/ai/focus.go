package ai

import (
	"fmt"
	"strings"
)

// Focus selects which instruction block goes into the prompt.
type Focus int

const (
	FocusSentiment Focus = iota + 1
	FocusThemes
	FocusSuggestions
	FocusAll
)

// Focuses lists every supported focus in dashboard order.
var Focuses = []Focus{FocusSentiment, FocusThemes, FocusSuggestions, FocusAll}

// Valid reports whether f is one of the declared constants.
func (f Focus) Valid() bool {
	return f >= FocusSentiment && f <= FocusAll
}

// String returns the dashboard label.
func (f Focus) String() string {
	switch f {
	case FocusSentiment:
		return "Sentiment Analysis"
	case FocusThemes:
		return "Theme Identification"
	case FocusSuggestions:
		return "Improvement Suggestions"
	case FocusAll:
		return "All of the Above"
	default:
		return fmt.Sprintf("Focus(%d)", int(f))
	}
}

// Slug is the short form used in query strings and CLI flags.
func (f Focus) Slug() string {
	switch f {
	case FocusSentiment:
		return "sentiment"
	case FocusThemes:
		return "themes"
	case FocusSuggestions:
		return "suggestions"
	case FocusAll:
		return "all"
	default:
		return ""
	}
}

// MarshalText makes Focus render as its label in JSON.
func (f Focus) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFocus, int(f))
	}
	return []byte(f.String()), nil
}

// ParseFocus accepts a dashboard label or a slug, case-insensitively.
// An empty string selects FocusAll, the dashboard default.
func ParseFocus(s string) (Focus, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return FocusAll, nil
	}
	for _, f := range Focuses {
		if key == f.Slug() || key == strings.ToLower(f.String()) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidFocus, s)
}
