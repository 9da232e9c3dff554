package feedback

import "strings"

// Table is a loaded dataset: a header row plus data rows in source order.
type Table struct {
	Name    string     `json:"name"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Column returns the named column in source row order. Cells missing from a
// short row are returned as "".
func (t *Table) Column(name string) (Corpus, error) {
	idx := -1
	for i, c := range t.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &InputError{Op: "select column", Err: ErrColumnNotFound, Detail: name}
	}
	out := make(Corpus, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			out[i] = row[idx]
		}
	}
	return out, nil
}

// Preview returns at most n leading rows.
func (t *Table) Preview(n int) [][]string {
	if n <= 0 {
		return [][]string{}
	}
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return t.Rows[:n]
}

// Corpus is one column of free text, in source row order.
type Corpus []string

// Clean trims every row and drops the ones that end up empty.
func (c Corpus) Clean() Corpus {
	out := make(Corpus, 0, len(c))
	for _, s := range c {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// NonEmpty drops empty cells but leaves the text untouched.
func (c Corpus) NonEmpty() Corpus {
	out := make(Corpus, 0, len(c))
	for _, s := range c {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Head keeps the first n rows.
func (c Corpus) Head(n int) Corpus {
	if n < 0 || n >= len(c) {
		return c
	}
	return c[:n]
}

// Stats value object
type Stats struct {
	RowCount      int     `json:"num_rows"`
	NonEmptyCount int     `json:"num_non_null"`
	AvgWords      float64 `json:"avg_words"`
}

// WordCount is one entry of the word frequency table.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Label enum
type Label string

const (
	LabelPositive Label = "Positive"
	LabelNeutral  Label = "Neutral"
	LabelNegative Label = "Negative"
)

// Labels lists every sentiment label in display order.
var Labels = []Label{LabelPositive, LabelNeutral, LabelNegative}

// LabelCount is one bar of the sentiment distribution.
type LabelCount struct {
	Label Label `json:"sentiment"`
	Count int   `json:"count"`
}

// Distribution is the per-label row count, most frequent first.
type Distribution []LabelCount

// Total returns the number of rows counted.
func (d Distribution) Total() int {
	n := 0
	for _, lc := range d {
		n += lc.Count
	}
	return n
}

// Count returns the count for one label.
func (d Distribution) Count(l Label) int {
	for _, lc := range d {
		if lc.Label == l {
			return lc.Count
		}
	}
	return 0
}
