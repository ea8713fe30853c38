// Package stats computes descriptive statistics over loaded examples and
// encoded pools.
package stats

import (
	"fmt"
	"sort"
	"strings"

	"metaprep/internal/domain"
	"metaprep/internal/pool"
)

// ClassCount is the number of rows carrying a label.
type ClassCount struct {
	Label int
	Count int
}

// Corpus describes the examples as loaded, before any split.
type Corpus struct {
	Examples int
	Balance  []ClassCount
	AvgLen   float64
}

// Pool describes one encoded pool.
type Pool struct {
	Name    string
	Rows    int
	MaxLen  int
	Balance []ClassCount
	AvgLen  float64
	// Truncated counts rows whose raw tokens exceed MaxLen.
	Truncated int
	// UnkRate is the share of encoded positions holding the unk id.
	UnkRate float64
}

// DescribeCorpus tallies labels and mean token count. Lengths are taken
// before loader truncation.
func DescribeCorpus(examples []domain.Example) Corpus {
	labels := make([]int, len(examples))
	total := 0
	for i, ex := range examples {
		labels[i] = ex.Label
		total += max(ex.SourceLen, len(ex.Tokens))
	}
	c := Corpus{Examples: len(examples), Balance: balance(labels)}
	if len(examples) > 0 {
		c.AvgLen = float64(total) / float64(len(examples))
	}
	return c
}

// DescribePool summarizes p. unk is the unk id of the vocabulary p was
// encoded with.
func DescribePool(p *pool.Pool, unk int32) Pool {
	s := Pool{Name: p.Name, Rows: p.Len(), MaxLen: p.MaxLen(), Balance: balance(p.Label)}
	encoded, unknown := 0, 0
	for i := 0; i < p.Len(); i++ {
		n := p.TextLen[i]
		encoded += n
		for _, id := range p.Text.Row(i)[:n] {
			if id == unk {
				unknown++
			}
		}
		if len(p.Raw[i]) > p.MaxLen() {
			s.Truncated++
		}
	}
	if p.Len() > 0 {
		s.AvgLen = float64(encoded) / float64(p.Len())
	}
	if encoded > 0 {
		s.UnkRate = float64(unknown) / float64(encoded)
	}
	return s
}

func balance(labels []int) []ClassCount {
	tally := make(map[int]int)
	for _, l := range labels {
		tally[l]++
	}
	out := make([]ClassCount, 0, len(tally))
	for l, n := range tally {
		out = append(out, ClassCount{Label: l, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// FormatBalance renders counts as "label:count" pairs.
func FormatBalance(b []ClassCount) string {
	parts := make([]string, len(b))
	for i, c := range b {
		parts[i] = fmt.Sprintf("%d:%d", c.Label, c.Count)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// String renders a one-line summary.
func (s Pool) String() string {
	return fmt.Sprintf("%s: %d rows, %d classes, max_len %d, avg_len %.1f, truncated %d, unk %.1f%%",
		s.Name, s.Rows, len(s.Balance), s.MaxLen, s.AvgLen, s.Truncated, 100*s.UnkRate)
}

// String renders a one-line summary.
func (c Corpus) String() string {
	return fmt.Sprintf("%d examples, %d classes, avg_len %.1f", c.Examples, len(c.Balance), c.AvgLen)
}
