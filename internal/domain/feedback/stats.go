package feedback

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// DefaultTopK is the size of the "most frequent words" chart.
const DefaultTopK = 15

// stopwords filtered out of the word frequency table.
var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "is": {}, "are": {},
	"to": {}, "for": {}, "of": {}, "in": {}, "on": {}, "it": {}, "this": {},
	"that": {}, "with": {}, "as": {}, "was": {}, "were": {}, "be": {}, "by": {},
	"at": {}, "from": {}, "we": {}, "you": {}, "our": {}, "your": {},
}

// IsStopword reports whether w is dropped from word counts.
func IsStopword(w string) bool {
	_, ok := stopwords[w]
	return ok
}

// ComputeStats summarises a column. Empty rows count towards RowCount and add
// zero words to the average.
func ComputeStats(c Corpus) Stats {
	var s Stats
	s.RowCount = len(c)
	if s.RowCount == 0 {
		return s
	}
	words := 0
	for _, text := range c {
		if strings.TrimSpace(text) != "" {
			s.NonEmptyCount++
		}
		words += len(strings.Fields(text))
	}
	s.AvgWords = round2(float64(words) / float64(s.RowCount))
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// TopWords returns the k most frequent non-stopword tokens. Ties keep the order
// in which words were first seen.
func TopWords(c Corpus, k int) []WordCount {
	if k <= 0 {
		return []WordCount{}
	}
	index := map[string]int{}
	var counts []WordCount
	for _, text := range c {
		for _, raw := range strings.Fields(strings.ToLower(text)) {
			w := normalizeToken(raw)
			if w == "" || IsStopword(w) {
				continue
			}
			if i, ok := index[w]; ok {
				counts[i].Count++
				continue
			}
			index[w] = len(counts)
			counts = append(counts, WordCount{Word: w, Count: 1})
		}
	}
	// counts is in first-seen order, so a stable sort keeps that order for ties
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	if len(counts) > k {
		counts = counts[:k]
	}
	if counts == nil {
		return []WordCount{}
	}
	return counts
}

func normalizeToken(tok string) string {
	var b strings.Builder
	for _, r := range tok {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
