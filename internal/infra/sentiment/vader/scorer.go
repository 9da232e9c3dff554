package vader

import (
	"github.com/jonreiter/govader"
)

// Scorer computes VADER compound polarity scores.
// The analyzer's lexicon is read-only after construction, so one Scorer can be
// shared across requests.
type Scorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewScorer() *Scorer {
	return &Scorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Compound returns the normalised polarity in [-1, 1].
func (s *Scorer) Compound(text string) float64 {
	return s.analyzer.PolarityScores(text).Compound
}
