package engine

import "jobscout/pkg/models"

const monthsPerYear = 12

// toMonthly converts an amount in the given period to a monthly figure.
func toMonthly(amount float64, period string) float64 {
	if period == models.PeriodAnnual {
		return amount / monthsPerYear
	}
	return amount
}

// convertAmount re-expresses an amount from one period in another.
func convertAmount(amount float64, from, to string) float64 {
	if from == to {
		return amount
	}
	if from == models.PeriodMonthly && to == models.PeriodAnnual {
		return amount * monthsPerYear
	}
	if from == models.PeriodAnnual && to == models.PeriodMonthly {
		return amount / monthsPerYear
	}
	return amount
}

// clampSalaryRange enforces min <= max. An inverted range after a unit
// switch is repaired, not rejected.
func clampSalaryRange(min, max float64) (float64, float64) {
	if min < 0 {
		min = 0
	}
	if max < min {
		max = min
	}
	return min, max
}

// salaryDisclosed reports whether a listing advertises any pay at all.
func salaryDisclosed(s models.Salary) bool {
	return s.Min > 0 || s.Max > 0
}

// salaryOverlaps tests interval overlap after normalizing both the listing
// and filter bounds to monthly figures.
func salaryOverlaps(s models.Salary, filterMin, filterMax float64, filterPeriod string) bool {
	listingMin := toMonthly(s.Min, s.Period)
	listingMax := toMonthly(s.Max, s.Period)
	if listingMax < listingMin {
		listingMin, listingMax = listingMax, listingMin
	}
	fMin := toMonthly(filterMin, filterPeriod)
	fMax := toMonthly(filterMax, filterPeriod)
	return listingMax >= fMin && listingMin <= fMax
}
