package split

import (
	"fmt"
	"math"
	"sort"

	"metaprep/internal/pool"
)

// RatioError is returned for a split ratio outside (0, 1).
type RatioError struct {
	Ratio float64
}

func (e *RatioError) Error() string {
	return fmt.Sprintf("split ratio %v outside (0, 1)", e.Ratio)
}

// Stratified divides p into two pools keeping class proportions: for a class
// with n rows, floor(ratio*n) go to a and the rest to b. Both outputs are
// grouped by ascending label and keep the input order within a class. p is
// not modified.
func Stratified(p *pool.Pool, ratio float64) (a, b *pool.Pool, err error) {
	if !(ratio > 0 && ratio < 1) {
		return nil, nil, &RatioError{Ratio: ratio}
	}

	order := make([]int, p.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return p.Label[order[i]] < p.Label[order[j]] })

	sorted := make([]int, len(order))
	for i, idx := range order {
		sorted[i] = p.Label[idx]
	}
	_, counts := ClassCounts(sorted)

	var rowsA, rowsB []int
	start := 0
	for _, n := range counts {
		mid := start + int(math.Floor(ratio*float64(n)))
		end := start + n
		rowsA = append(rowsA, order[start:mid]...)
		rowsB = append(rowsB, order[mid:end]...)
		start = end
	}

	a = p.Select(p.Name+"/train", rowsA)
	b = p.Select(p.Name+"/val", rowsB)
	return a, b, nil
}

// ClassCounts returns the distinct labels in ascending order with their
// counts. labels need not be sorted.
func ClassCounts(labels []int) (classes, counts []int) {
	tally := make(map[int]int)
	for _, l := range labels {
		tally[l]++
	}
	classes = make([]int, 0, len(tally))
	for l := range tally {
		classes = append(classes, l)
	}
	sort.Ints(classes)
	counts = make([]int, len(classes))
	for i, l := range classes {
		counts[i] = tally[l]
	}
	return classes, counts
}
