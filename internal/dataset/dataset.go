// Package dataset holds the static per-corpus configuration: which class ids
// belong to each meta split and the fixed sequence length used for encoding.
package dataset

import (
	"fmt"
	"strings"

	"metaprep/internal/domain"
)

// Name identifies one of the supported corpora.
type Name string

const (
	Newsgroup20 Name = "20newsgroup"
	Amazon      Name = "amazon"
	FewRel      Name = "fewrel"
	HuffPost    Name = "huffpost"
	Reuters     Name = "reuters"
	RCV1        Name = "rcv1"
)

// Names lists the supported corpora in a stable order.
var Names = []Name{Newsgroup20, Amazon, FewRel, HuffPost, Reuters, RCV1}

// UnsupportedError is returned for a dataset name outside Names.
type UnsupportedError struct {
	Name string
}

func (e *UnsupportedError) Error() string {
	supported := make([]string, len(Names))
	for i, n := range Names {
		supported[i] = string(n)
	}
	return fmt.Sprintf("unsupported dataset %q: should be one of [%s]", e.Name, strings.Join(supported, ", "))
}

// Parse resolves a dataset name.
func Parse(s string) (Name, error) {
	for _, n := range Names {
		if string(n) == s {
			return n, nil
		}
	}
	return "", &UnsupportedError{Name: s}
}

// Classes returns the meta split for the dataset. The returned slices are
// fresh copies and may be modified by the caller.
func Classes(name Name) (domain.ClassSplit, error) {
	var cs domain.ClassSplit
	switch name {
	case Newsgroup20:
		cs = newsgroupClasses()
	case Amazon:
		cs = amazonClasses
	case FewRel:
		cs = fewrelClasses
	case HuffPost:
		cs = domain.ClassSplit{Train: span(0, 20), Val: span(20, 25), Test: span(25, 41)}
	case Reuters:
		cs = domain.ClassSplit{Train: span(0, 15), Val: span(15, 20), Test: span(20, 31)}
	case RCV1:
		cs = rcv1Classes
	default:
		return domain.ClassSplit{}, &UnsupportedError{Name: string(name)}
	}
	return domain.ClassSplit{
		Train: append([]int(nil), cs.Train...),
		Val:   append([]int(nil), cs.Val...),
		Test:  append([]int(nil), cs.Test...),
	}, nil
}

// MaxLen returns the fixed encoded sequence length for the dataset.
func MaxLen(name Name) int {
	switch name {
	case Newsgroup20:
		return 500
	case FewRel:
		return 38
	default:
		return 44
	}
}

func span(lo, hi int) []int {
	out := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, i)
	}
	return out
}
