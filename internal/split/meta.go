// Package split partitions examples into meta splits by class and divides
// encoded pools into class-balanced fine-tune halves.
package split

import (
	"fmt"
	"sort"
	"strings"

	"metaprep/internal/domain"
)

// ClassSplitter routes examples by label membership. Each of the three sets
// is tested independently, so an example whose label appears in several
// sets lands in each of the matching pools.
type ClassSplitter struct {
	train map[int]struct{}
	val   map[int]struct{}
	test  map[int]struct{}
}

var _ domain.Splitter = (*ClassSplitter)(nil)

// NewClassSplitter builds a splitter for classes.
func NewClassSplitter(classes domain.ClassSplit) *ClassSplitter {
	return &ClassSplitter{
		train: toSet(classes.Train),
		val:   toSet(classes.Val),
		test:  toSet(classes.Test),
	}
}

// Split keeps input order within every output pool.
func (s *ClassSplitter) Split(examples []domain.Example) (train, val, test []domain.Example) {
	for _, ex := range examples {
		if _, ok := s.train[ex.Label]; ok {
			train = append(train, ex)
		}
		if _, ok := s.val[ex.Label]; ok {
			val = append(val, ex)
		}
		if _, ok := s.test[ex.Label]; ok {
			test = append(test, ex)
		}
	}
	return train, val, test
}

// ByClass is a one-shot form of NewClassSplitter(classes).Split(examples).
func ByClass(examples []domain.Example, classes domain.ClassSplit) (train, val, test []domain.Example) {
	return NewClassSplitter(classes).Split(examples)
}

// OverlapError lists class ids that appear in more than one split.
type OverlapError struct {
	Classes map[int][]string
}

func (e *OverlapError) Error() string {
	ids := make([]int, 0, len(e.Classes))
	for id := range e.Classes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d in %s", id, strings.Join(e.Classes[id], "+"))
	}
	return "class split is not a partition: " + strings.Join(parts, ", ")
}

// Validate reports classes shared between splits.
func Validate(classes domain.ClassSplit) error {
	where := make(map[int][]string)
	for _, s := range []struct {
		name string
		ids  []int
	}{{"train", classes.Train}, {"val", classes.Val}, {"test", classes.Test}} {
		for id := range toSet(s.ids) {
			where[id] = append(where[id], s.name)
		}
	}
	overlap := make(map[int][]string)
	for id, names := range where {
		if len(names) > 1 {
			overlap[id] = names
		}
	}
	if len(overlap) > 0 {
		return &OverlapError{Classes: overlap}
	}
	return nil
}

func toSet(ids []int) map[int]struct{} {
	m := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}
