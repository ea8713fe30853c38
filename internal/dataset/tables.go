package dataset

import (
	"strings"

	"metaprep/internal/domain"
)

// newsgroupLabels is the 20 Newsgroups label table in its canonical order.
var newsgroupLabels = []struct {
	group string
	id    int
}{
	{"talk.politics.mideast", 0},
	{"sci.space", 1},
	{"misc.forsale", 2},
	{"talk.politics.misc", 3},
	{"comp.graphics", 4},
	{"sci.crypt", 5},
	{"comp.windows.x", 6},
	{"comp.os.ms-windows.misc", 7},
	{"talk.politics.guns", 8},
	{"talk.religion.misc", 9},
	{"rec.autos", 10},
	{"sci.med", 11},
	{"comp.sys.mac.hardware", 12},
	{"sci.electronics", 13},
	{"rec.sport.hockey", 14},
	{"alt.atheism", 15},
	{"rec.motorcycles", 16},
	{"comp.sys.ibm.pc.hardware", 17},
	{"rec.sport.baseball", 18},
	{"soc.religion.christian", 19},
}

// newsgroupClasses splits by top-level hierarchy: sci and rec train, comp
// validates, everything else tests.
func newsgroupClasses() domain.ClassSplit {
	var cs domain.ClassSplit
	for _, l := range newsgroupLabels {
		top := l.group
		if i := strings.Index(top, "."); i >= 0 {
			top = top[:i]
		}
		switch top {
		case "sci", "rec":
			cs.Train = append(cs.Train, l.id)
		}
		if top == "comp" {
			cs.Val = append(cs.Val, l.id)
		}
		if top != "comp" && top != "sci" && top != "rec" {
			cs.Test = append(cs.Test, l.id)
		}
	}
	return cs
}

var amazonClasses = domain.ClassSplit{
	Train: []int{2, 3, 4, 7, 11, 12, 13, 18, 19, 20},
	Val:   []int{1, 22, 23, 6, 9},
	Test:  []int{0, 5, 14, 15, 8, 10, 16, 17, 21},
}

var rcv1Classes = domain.ClassSplit{
	Train: []int{1, 2, 12, 15, 18, 20, 22, 25, 27, 32, 33, 34, 38, 39,
		40, 41, 42, 43, 44, 45, 46, 47, 48, 49, 50, 51, 52, 53,
		54, 55, 56, 57, 58, 59, 60, 61, 66},
	Val: []int{5, 24, 26, 28, 29, 31, 35, 23, 67, 36},
	Test: []int{0, 3, 4, 6, 7, 8, 9, 10, 11, 13, 14, 16, 17, 19, 21, 30, 37,
		62, 63, 64, 65, 68, 69, 70},
}

// head=WORK_OF_ART validation/test split
var fewrelClasses = domain.ClassSplit{
	Train: []int{0, 1, 2, 3, 4, 5, 6, 8, 10, 11, 12, 13, 14, 15, 16, 19, 21,
		22, 24, 25, 26, 27, 28, 30, 31, 32, 33, 34, 35, 36, 37, 38,
		39, 40, 41, 43, 44, 45, 46, 48, 49, 50, 52, 53, 56, 57, 58,
		59, 61, 62, 63, 64, 66, 67, 68, 69, 70, 71, 72, 73, 74, 75,
		76, 77, 78},
	Val:  []int{7, 9, 17, 18, 20},
	Test: []int{23, 29, 42, 47, 51, 54, 55, 60, 65, 79},
}
