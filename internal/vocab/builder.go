package vocab

import (
	"errors"
	"sort"

	"metaprep/internal/domain"
)

// BuildOptions configures corpus vocabulary construction.
type BuildOptions struct {
	// MinFreq drops tokens seen fewer times. Zero means 1.
	MinFreq int
	// Specials are assigned the lowest ids in order. The first is the pad
	// token and the second the unk token. Defaults to <pad>, <unk>.
	Specials []string
}

// Build derives a vocabulary from the tokens of examples. Specials come
// first, then tokens by descending frequency with ties broken
// lexicographically.
func Build(examples []domain.Example, opts BuildOptions) (*Vocab, error) {
	specials := opts.Specials
	if len(specials) == 0 {
		specials = []string{DefaultPad, DefaultUnk}
	}
	if len(specials) < 2 {
		return nil, errors.New("vocabulary build needs pad and unk specials")
	}
	minFreq := opts.MinFreq
	if minFreq <= 0 {
		minFreq = 1
	}

	freq := make(map[string]int)
	for _, ex := range examples {
		for _, tok := range ex.Tokens {
			freq[tok]++
		}
	}

	stoi := make(map[string]int, len(specials)+len(freq))
	for _, s := range specials {
		if _, ok := stoi[s]; !ok {
			stoi[s] = len(stoi)
		}
	}

	// Stable ordering so repeated builds assign identical ids.
	terms := make([]string, 0, len(freq))
	for term, n := range freq {
		if n < minFreq {
			continue
		}
		if _, special := stoi[term]; special {
			continue
		}
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if freq[terms[i]] != freq[terms[j]] {
			return freq[terms[i]] > freq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	for _, term := range terms {
		stoi[term] = len(stoi)
	}
	return New(stoi, specials[0], specials[1])
}
