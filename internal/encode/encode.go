// Package encode turns pools of tokenized examples into fixed-width id
// matrices.
package encode

import (
	"fmt"

	"metaprep/internal/domain"
	"metaprep/internal/pool"
)

// MinRealID is the lowest id a real token can have; ids below it are the
// reserved pad and unk ids.
const MinRealID = 2

// EmptyPoolError is returned when encoding an empty pool without an
// explicit maximum length.
type EmptyPoolError struct {
	Pool string
}

func (e *EmptyPoolError) Error() string {
	return fmt.Sprintf("pool %s: cannot infer max length of an empty pool", e.Pool)
}

// Options control encoding.
type Options struct {
	// MaxLen is the row width. Zero infers it from the longest example.
	MaxLen int
	// FilterDegenerate drops rows that encode to nothing but reserved ids.
	FilterDegenerate bool
}

// Report describes an encoding run.
type Report struct {
	MaxLen int
	// Degenerate holds input indices of rows whose largest id is below
	// MinRealID.
	Degenerate []int
	// Removed is the number of rows dropped by FilterDegenerate.
	Removed int
}

// Encode converts examples into a pool named name. Tokens beyond the max
// length are dropped; Raw keeps the untruncated tokens.
func Encode(name string, examples []domain.Example, v domain.Vocabulary, opts Options) (*pool.Pool, Report, error) {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		if len(examples) == 0 {
			return nil, Report{}, &EmptyPoolError{Pool: name}
		}
		for _, ex := range examples {
			if len(ex.Tokens) > maxLen {
				maxLen = len(ex.Tokens)
			}
		}
	}

	pad := v.PadID()
	text := pool.NewMatrix(len(examples), maxLen, pad)
	textLen := make([]int, len(examples))
	label := make([]int, len(examples))
	raw := make([][]string, len(examples))

	var degenerate []int
	for i, ex := range examples {
		row := text.Row(i)
		n := min(len(ex.Tokens), maxLen)
		for j := 0; j < n; j++ {
			row[j] = v.Lookup(ex.Tokens[j])
		}
		textLen[i] = n
		label[i] = ex.Label
		raw[i] = ex.Tokens

		if isDegenerate(row) {
			degenerate = append(degenerate, i)
		}
	}

	p, err := pool.Assemble(pool.Parts{
		Name:      name,
		Text:      text,
		TextLen:   textLen,
		Label:     label,
		Raw:       raw,
		VocabSize: v.Size(),
	})
	if err != nil {
		return nil, Report{}, err
	}

	rep := Report{MaxLen: maxLen, Degenerate: degenerate}
	if opts.FilterDegenerate && len(degenerate) > 0 {
		p = p.Select(name, keepRows(len(examples), degenerate))
		rep.Removed = len(degenerate)
	}
	return p, rep, nil
}

// isDegenerate reports whether the row carries no real token. A zero-width
// row has no ids at all and counts as degenerate.
func isDegenerate(row []int32) bool {
	for _, id := range row {
		if id >= MinRealID {
			return false
		}
	}
	return true
}

// keepRows lists 0..n-1 minus the sorted indices in drop.
func keepRows(n int, drop []int) []int {
	keep := make([]int, 0, n-len(drop))
	d := 0
	for i := 0; i < n; i++ {
		if d < len(drop) && drop[d] == i {
			d++
			continue
		}
		keep = append(keep, i)
	}
	return keep
}
