package feedback

import "context"

// Scorer port (sentiment library). Compound returns a polarity in [-1, 1].
type Scorer interface {
	Compound(text string) float64
}

// SourceKind names where a dataset comes from.
type SourceKind string

const (
	SourceUpload SourceKind = "upload"
	SourceObject SourceKind = "object"
	SourceSQL    SourceKind = "sql"
)

// DatasetRef points at a dataset held by a Source.
type DatasetRef struct {
	Kind SourceKind
	// Key is the object key for SourceObject or the table for SourceSQL.
	Key string
	// Column is the text column; SQL sources only read this one.
	Column string
}

// Source port (interface untuk load dataset)
type Source interface {
	Load(ctx context.Context, ref DatasetRef) (*Table, error)
}
