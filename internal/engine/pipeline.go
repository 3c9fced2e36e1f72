package engine

import (
	"strings"
	"time"

	"jobscout/pkg/models"
)

// stage is one predicate dimension. A stage whose filter is at its default
// is skipped entirely, so disabling a dimension never excludes listings.
type stage struct {
	name   string
	active func(f models.FilterState) bool
	match  func(l models.Listing, f models.FilterState, now time.Time) bool
}

// stages in fixed application order. Stages compose by intersection.
var stages = []stage{
	{
		name:   "text",
		active: func(f models.FilterState) bool { return strings.TrimSpace(f.Text) != "" },
		match: func(l models.Listing, f models.FilterState, _ time.Time) bool {
			q := strings.ToLower(strings.TrimSpace(f.Text))
			return strings.Contains(strings.ToLower(l.Title), q) ||
				strings.Contains(strings.ToLower(l.Organization), q) ||
				strings.Contains(strings.ToLower(l.Description), q)
		},
	},
	{
		name:   "location",
		active: func(f models.FilterState) bool { return strings.TrimSpace(f.Location) != "" },
		match: func(l models.Listing, f models.FilterState, _ time.Time) bool {
			q := strings.ToLower(strings.TrimSpace(f.Location))
			return strings.Contains(strings.ToLower(l.City), q) ||
				strings.Contains(strings.ToLower(l.Region), q)
		},
	},
	{
		name:   "jobType",
		active: func(f models.FilterState) bool { return len(f.JobTypes) > 0 },
		match: func(l models.Listing, f models.FilterState, _ time.Time) bool {
			return containsFold(f.JobTypes, l.EmploymentType)
		},
	},
	{
		name:   "experience",
		active: func(f models.FilterState) bool { return len(f.ExperienceLevels) > 0 },
		match: func(l models.Listing, f models.FilterState, _ time.Time) bool {
			return containsFold(f.ExperienceLevels, l.ExperienceLevel)
		},
	},
	{
		name: "salary",
		active: func(f models.FilterState) bool {
			return f.SalaryMin > 0 || f.SalaryMax < models.DefaultSalaryCap(f.SalaryPeriod)
		},
		match: func(l models.Listing, f models.FilterState, _ time.Time) bool {
			if !salaryDisclosed(l.Salary) {
				return false
			}
			return salaryOverlaps(l.Salary, f.SalaryMin, f.SalaryMax, f.SalaryPeriod)
		},
	},
	{
		name:   "remote",
		active: func(f models.FilterState) bool { return f.RemoteOnly },
		match: func(l models.Listing, f models.FilterState, _ time.Time) bool {
			return isRemote(l)
		},
	},
	{
		name:   "datePosted",
		active: func(f models.FilterState) bool { return f.DatePosted != "" && f.DatePosted != models.DatePostedAny },
		match: func(l models.Listing, f models.FilterState, now time.Time) bool {
			return postedWithin(l.PostedAt, f.DatePosted, now)
		},
	},
	{
		name:   "industry",
		active: func(f models.FilterState) bool { return len(f.Industries) > 0 },
		match: func(l models.Listing, f models.FilterState, _ time.Time) bool {
			return containsFold(f.Industries, l.Industry)
		},
	},
	{
		name:   "skills",
		active: func(f models.FilterState) bool { return len(f.Skills) > 0 },
		match: func(l models.Listing, f models.FilterState, _ time.Time) bool {
			// OR across requested terms: one substring hit on any listing
			// skill is enough. The required/preferred tag is surfaced for
			// ranking and display, never enforced as exclusion.
			for _, want := range f.Skills {
				term := strings.ToLower(want.Term)
				if term == "" {
					continue
				}
				for _, have := range l.RequiredSkills {
					if strings.Contains(strings.ToLower(have), term) {
						return true
					}
				}
			}
			return false
		},
	},
	{
		name:   "region",
		active: func(f models.FilterState) bool { return len(f.Regions) > 0 },
		match: func(l models.Listing, f models.FilterState, _ time.Time) bool {
			return containsFold(f.Regions, l.Region)
		},
	},
	{
		name:   "visa",
		active: func(f models.FilterState) bool { return len(f.VisaStatuses) > 0 },
		match: func(l models.Listing, f models.FilterState, _ time.Time) bool {
			return containsFold(f.VisaStatuses, l.VisaStatus)
		},
	},
	{
		name: "sector",
		active: func(f models.FilterState) bool {
			return f.SectorType != "" && f.SectorType != models.SentinelAll
		},
		match: func(l models.Listing, f models.FilterState, _ time.Time) bool {
			return strings.EqualFold(l.Sector, f.SectorType)
		},
	},
	{
		name: "companyLocationClass",
		active: func(f models.FilterState) bool {
			return f.CompanyLocationClass != "" && f.CompanyLocationClass != models.SentinelAll
		},
		match: func(l models.Listing, f models.FilterState, _ time.Time) bool {
			return strings.EqualFold(l.CompanyLocationClass, f.CompanyLocationClass)
		},
	},
	{
		name:   "benefits",
		active: func(f models.FilterState) bool { return len(f.Benefits) > 0 },
		match: func(l models.Listing, f models.FilterState, _ time.Time) bool {
			for _, b := range l.Benefits {
				if containsFold(f.Benefits, b) {
					return true
				}
			}
			return false
		},
	},
}

// Filter returns the listings satisfying every active predicate, stages
// applied in fixed order. With an all-default state it returns the input
// unchanged.
func Filter(listings []models.Listing, f models.FilterState) []models.Listing {
	return filterAt(listings, f, time.Now())
}

func filterAt(listings []models.Listing, f models.FilterState, now time.Time) []models.Listing {
	out := listings
	for _, st := range stages {
		if !st.active(f) {
			continue
		}
		kept := make([]models.Listing, 0, len(out))
		for _, l := range out {
			if st.match(l, f, now) {
				kept = append(kept, l)
			}
		}
		out = kept
	}
	return out
}

// isRemote treats an explicit remote employment type or a "remote" location
// as remote work.
func isRemote(l models.Listing) bool {
	if strings.EqualFold(l.EmploymentType, "remote") {
		return true
	}
	return strings.Contains(strings.ToLower(l.City), "remote") ||
		strings.Contains(strings.ToLower(l.Region), "remote")
}

// postedWithin checks a posted-at timestamp against a date window. A zero
// timestamp never matches an active window but never panics either.
func postedWithin(postedAt time.Time, window string, now time.Time) bool {
	if postedAt.IsZero() {
		return false
	}
	var cutoff time.Time
	switch window {
	case models.DatePostedToday:
		cutoff = now.AddDate(0, 0, -1)
	case models.DatePostedWeek:
		cutoff = now.AddDate(0, 0, -7)
	case models.DatePostedMonth:
		cutoff = now.AddDate(0, -1, 0)
	default:
		return true
	}
	return !postedAt.Before(cutoff)
}
