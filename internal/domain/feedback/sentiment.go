package feedback

// Polarity thresholds on the compound score.
const (
	PositiveThreshold = 0.05
	NegativeThreshold = -0.05
)

// LabelFor maps a compound score in [-1, 1] to a label.
func LabelFor(compound float64) Label {
	switch {
	case compound >= PositiveThreshold:
		return LabelPositive
	case compound <= NegativeThreshold:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

// Classifier labels rows using a Scorer.
type Classifier struct {
	Scorer Scorer
}

func NewClassifier(s Scorer) *Classifier { return &Classifier{Scorer: s} }

// Classify labels a single row.
func (c *Classifier) Classify(text string) Label {
	return LabelFor(c.Scorer.Compound(text))
}

// Distribution counts labels over every row of the column, empty rows included.
// Labels with no rows are left out; the rest are ordered by count, ties in
// Positive, Neutral, Negative order.
func (c *Classifier) Distribution(corpus Corpus) Distribution {
	counts := make(map[Label]int, len(Labels))
	for _, text := range corpus {
		counts[c.Classify(text)]++
	}
	out := make(Distribution, 0, len(Labels))
	for _, l := range Labels {
		if n := counts[l]; n > 0 {
			out = append(out, LabelCount{Label: l, Count: n})
		}
	}
	// insertion sort, at most three entries
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Count > out[j-1].Count; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
