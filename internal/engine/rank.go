package engine

import (
	"sort"

	"jobscout/pkg/models"
)

// SortKey selects the ordering applied after filtering.
type SortKey string

const (
	SortRelevance  SortKey = "relevance"
	SortDateDesc   SortKey = "dateDesc"
	SortDateAsc    SortKey = "dateAsc"
	SortSalaryDesc SortKey = "salaryDesc"
	SortSalaryAsc  SortKey = "salaryAsc"
)

// ValidSortKey reports whether key names a supported ordering.
func ValidSortKey(key SortKey) bool {
	switch key {
	case SortRelevance, SortDateDesc, SortDateAsc, SortSalaryDesc, SortSalaryAsc:
		return true
	}
	return false
}

// Rank orders listings by the given key. Listings with missing values
// (nil match score, zero date, undisclosed salary) sort last regardless of
// direction. The sort is stable so equal keys keep their filtered order.
func Rank(listings []models.Listing, key SortKey) []models.Listing {
	out := append([]models.Listing(nil), listings...)
	switch key {
	case SortDateDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return laterDate(out[i], out[j])
		})
	case SortDateAsc:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].PostedAt, out[j].PostedAt
			if a.IsZero() || b.IsZero() {
				return !a.IsZero() && b.IsZero()
			}
			return a.Before(b)
		})
	case SortSalaryDesc:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := monthlyMax(out[i]), monthlyMax(out[j])
			return a > b
		})
	case SortSalaryAsc:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := monthlyMin(out[i]), monthlyMin(out[j])
			if a <= 0 || b <= 0 {
				return a > 0 && b <= 0
			}
			return a < b
		})
	default: // relevance
		sort.SliceStable(out, func(i, j int) bool {
			a, b := out[i].MatchScore, out[j].MatchScore
			switch {
			case a == nil && b == nil:
				return laterDate(out[i], out[j])
			case a == nil:
				return false
			case b == nil:
				return true
			case *a != *b:
				return *a > *b
			}
			return laterDate(out[i], out[j])
		})
	}
	return out
}

func laterDate(a, b models.Listing) bool {
	if a.PostedAt.IsZero() || b.PostedAt.IsZero() {
		return !a.PostedAt.IsZero() && b.PostedAt.IsZero()
	}
	return a.PostedAt.After(b.PostedAt)
}

func monthlyMax(l models.Listing) float64 {
	if !salaryDisclosed(l.Salary) {
		return 0
	}
	return toMonthly(l.Salary.Max, l.Salary.Period)
}

func monthlyMin(l models.Listing) float64 {
	if !salaryDisclosed(l.Salary) {
		return 0
	}
	return toMonthly(l.Salary.Min, l.Salary.Period)
}
