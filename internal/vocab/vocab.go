// Package vocab provides the token to id lookup used for encoding, and a
// builder that derives one from a corpus.
package vocab

import (
	"fmt"
)

const (
	// DefaultPad is the conventional padding token.
	DefaultPad = "<pad>"
	// DefaultUnk is the conventional out-of-vocabulary token.
	DefaultUnk = "<unk>"
)

// MissingReservedTokenError reports a vocabulary that cannot provide usable
// pad or unk ids.
type MissingReservedTokenError struct {
	Token  string
	Reason string
}

func (e *MissingReservedTokenError) Error() string {
	return fmt.Sprintf("vocabulary reserved token %q: %s", e.Token, e.Reason)
}

// IDError reports a token whose id breaks the dense [0, Size) numbering.
type IDError struct {
	Token  string
	ID     int
	Reason string
}

func (e *IDError) Error() string {
	return fmt.Sprintf("vocabulary id %d for %q: %s", e.ID, e.Token, e.Reason)
}

// Vocab is an immutable token to id mapping with reserved pad and unk ids.
// It is safe for concurrent use.
type Vocab struct {
	stoi map[string]int32
	itos []string
	pad  int32
	unk  int32
}

// New builds a Vocab from stoi. Ids must be dense over [0, len(stoi)) and
// both reserved tokens must be present with distinct ids.
func New(stoi map[string]int, padToken, unkToken string) (*Vocab, error) {
	pad, ok := stoi[padToken]
	if !ok {
		return nil, &MissingReservedTokenError{Token: padToken, Reason: "not in vocabulary"}
	}
	unk, ok := stoi[unkToken]
	if !ok {
		return nil, &MissingReservedTokenError{Token: unkToken, Reason: "not in vocabulary"}
	}
	if pad == unk {
		return nil, &MissingReservedTokenError{Token: unkToken, Reason: fmt.Sprintf("shares id %d with %q", unk, padToken)}
	}

	itos := make([]string, len(stoi))
	seen := make([]bool, len(stoi))
	m := make(map[string]int32, len(stoi))
	for tok, id := range stoi {
		if id < 0 || id >= len(stoi) {
			return nil, &IDError{Token: tok, ID: id, Reason: fmt.Sprintf("outside dense range [0, %d)", len(stoi))}
		}
		if seen[id] {
			return nil, &IDError{Token: tok, ID: id, Reason: fmt.Sprintf("already assigned to %q", itos[id])}
		}
		seen[id] = true
		itos[id] = tok
		m[tok] = int32(id)
	}
	return &Vocab{stoi: m, itos: itos, pad: int32(pad), unk: int32(unk)}, nil
}

// Lookup returns the id of token, or the unk id when it is absent.
func (v *Vocab) Lookup(token string) int32 {
	if id, ok := v.stoi[token]; ok {
		return id
	}
	return v.unk
}

// LookupAll maps every token through Lookup.
func (v *Vocab) LookupAll(tokens []string) []int32 {
	out := make([]int32, len(tokens))
	for i, t := range tokens {
		out[i] = v.Lookup(t)
	}
	return out
}

// Token returns the token for id.
func (v *Vocab) Token(id int32) (string, bool) {
	if id < 0 || int(id) >= len(v.itos) {
		return "", false
	}
	return v.itos[id], true
}

// Contains reports whether token has its own id.
func (v *Vocab) Contains(token string) bool {
	_, ok := v.stoi[token]
	return ok
}

func (v *Vocab) PadID() int32 { return v.pad }

func (v *Vocab) UnkID() int32 { return v.unk }

// Size is the number of distinct ids.
func (v *Vocab) Size() int { return len(v.itos) }
