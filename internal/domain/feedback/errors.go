package feedback

import (
	"errors"
	"fmt"
)

var (
	// ErrColumnNotFound indicates the selected text column is not in the dataset.
	ErrColumnNotFound = errors.New("column not found")
	// ErrUnreadable indicates the uploaded file could not be parsed as a table.
	ErrUnreadable = errors.New("unreadable dataset")
	// ErrEmptyDataset indicates the file has no header row.
	ErrEmptyDataset = errors.New("dataset has no header row")
	// ErrDatasetNotFound indicates the object or table does not exist.
	ErrDatasetNotFound = errors.New("dataset not found")
	// ErrInvalidReference indicates a malformed object key or table/column name.
	ErrInvalidReference = errors.New("invalid dataset reference")
	// ErrSourceDisabled indicates a dataset source that is not configured.
	ErrSourceDisabled = errors.New("dataset source not configured")
)

// InputError wraps a problem with the dataset the caller supplied. It is always
// recoverable at the boundary: the request stops, the process does not.
type InputError struct {
	Op     string
	Detail string
	Err    error
}

func (e *InputError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Detail)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// IsInputError reports whether err is caused by caller-supplied input.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
