package ai

import "encoding/json"

// Kind classifies an analysis outcome.
type Kind string

const (
	KindOK         Kind = "ok"
	KindValidation Kind = "validation_error"
	KindConfig     Kind = "config_error"
	KindService    Kind = "service_error"
	KindTimeout    Kind = "timeout"
)

// Outcome is the result of one analysis request. Text is always displayable;
// Err is set for every kind except KindOK.
type Outcome struct {
	Kind Kind
	Text string
	Err  error
}

// OK reports whether the model produced the text.
func (o Outcome) OK() bool { return o.Kind == KindOK }

// Display returns the text shown to the user.
func (o Outcome) Display() string { return o.Text }

func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind   Kind   `json:"kind"`
		Result string `json:"result"`
	}{o.Kind, o.Text})
}
