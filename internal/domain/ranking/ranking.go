// Package ranking orders parsed airfoils and assigns detail page numbers.
package ranking

import (
	"sort"

	"github.com/okian/polarreport/internal/domain/model"
)

// FirstPage is the number of the first detail page. Title and contents pages
// precede it and are not numbered.
const FirstPage = 1

// Candidate is a parsed polar with its efficiency point, in traversal order.
type Candidate struct {
	Polar model.AirfoilPolar
	Point model.EfficiencyPoint
}

// Key returns the sort key of a candidate: CL at the efficiency point.
func Key(c Candidate) float64 { return c.Point.CL }

// Rank sorts candidates by ascending CL at the efficiency point and numbers
// them from FirstPage. The sort is stable so ties keep traversal order.
// The input slice is not modified.
func Rank(candidates []Candidate) []model.ReportEntry {
	ordered := make([]Candidate, len(candidates))
	copy(ordered, candidates)
	sort.SliceStable(ordered, func(i, j int) bool {
		return Key(ordered[i]) < Key(ordered[j])
	})

	entries := make([]model.ReportEntry, len(ordered))
	for i, c := range ordered {
		entries[i] = model.ReportEntry{
			Polar: c.Polar,
			Point: c.Point,
			Page:  FirstPage + i,
		}
	}
	return entries
}
