package models

import "time"

// Salary period units. Listings and filters always carry one of these;
// comparisons normalize to a single unit first.
const (
	PeriodMonthly = "monthly"
	PeriodAnnual  = "annual"
)

// Date-posted filter options
const (
	DatePostedAny   = "any"
	DatePostedToday = "today"
	DatePostedWeek  = "week"
	DatePostedMonth = "month"
)

// SentinelAll is the "no preference" value for enum-valued filters.
const SentinelAll = "all"

// Skill requirement tags
const (
	SkillRequired  = "required"
	SkillPreferred = "preferred"
)

// Default salary caps per period, used when a range filter is cleared.
const (
	DefaultMonthlySalaryCap = 100000
	DefaultAnnualSalaryCap  = 1200000
)

// Salary is a listing's advertised pay range. A zero Min and Max means the
// listing did not disclose pay.
type Salary struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
	Period   string  `json:"period"` // monthly or annual
}

// Listing is a job posting as returned by a listing provider.
// Immutable once fetched; the engine never modifies the collection.
type Listing struct {
	ID                   int       `json:"id"`
	Title                string    `json:"title"`
	Organization         string    `json:"organization"`
	Region               string    `json:"region"`
	City                 string    `json:"city"`
	EmploymentType       string    `json:"employment_type"` // full-time, part-time, contract, internship, remote
	Salary               Salary    `json:"salary"`
	PostedAt             time.Time `json:"posted_at"`
	RequiredSkills       []string  `json:"required_skills"`
	Industry             string    `json:"industry"`
	Sector               string    `json:"sector"`                 // government, semi-government, private
	CompanyLocationClass string    `json:"company_location_class"` // mainland, freezone
	ExperienceLevel      string    `json:"experience_level"`       // entry, mid, senior, lead
	Benefits             []string  `json:"benefits"`
	VisaStatus           string    `json:"visa_status"` // sponsored, own-visa
	Description          string    `json:"description"`
	MatchScore           *float64  `json:"match_score,omitempty"` // 0-100, nil when unscored
}

// SkillFilter is one requested skill term with its requirement tag.
// The tag is surfaced for display and ranking; it is not an exclusion rule.
type SkillFilter struct {
	Term        string `json:"term"`
	Requirement string `json:"requirement"` // required or preferred
}

// FilterState holds every active filter dimension. Fields are only mutated
// through the engine's filter store operations, never by the pipeline.
type FilterState struct {
	Text                 string        `json:"text"`
	Location             string        `json:"location"`
	JobTypes             []string      `json:"job_types"`
	ExperienceLevels     []string      `json:"experience_levels"`
	SalaryMin            float64       `json:"salary_min"`
	SalaryMax            float64       `json:"salary_max"`
	SalaryPeriod         string        `json:"salary_period"`
	RemoteOnly           bool          `json:"remote_only"`
	DatePosted           string        `json:"date_posted"`
	Industries           []string      `json:"industries"`
	Skills               []SkillFilter `json:"skills"`
	Regions              []string      `json:"regions"`
	VisaStatuses         []string      `json:"visa_statuses"`
	SectorType           string        `json:"sector_type"`
	CompanyLocationClass string        `json:"company_location_class"`
	Benefits             []string      `json:"benefits"`
}

// DefaultFilters returns the all-defaults state: empty text, empty sets,
// "all"/"any" sentinels and the full salary range for the monthly period.
func DefaultFilters() FilterState {
	return FilterState{
		SalaryMin:            0,
		SalaryMax:            DefaultMonthlySalaryCap,
		SalaryPeriod:         PeriodMonthly,
		DatePosted:           DatePostedAny,
		SectorType:           SentinelAll,
		CompanyLocationClass: SentinelAll,
	}
}

// DefaultSalaryCap returns the default upper salary bound for a period.
func DefaultSalaryCap(period string) float64 {
	if period == PeriodAnnual {
		return DefaultAnnualSalaryCap
	}
	return DefaultMonthlySalaryCap
}

// SearchQuery is a named, timestamped snapshot of the filter state plus the
// free-text and location queries. Immutable after creation.
type SearchQuery struct {
	Text      string      `json:"text"`
	Location  string      `json:"location"`
	Filters   FilterState `json:"filters"`
	CreatedAt time.Time   `json:"created_at"`
}

// SavedSearch is an explicitly saved query with a user-chosen label.
type SavedSearch struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
	SearchQuery
}

// HistoryEntry is an automatically logged executed search.
type HistoryEntry struct {
	ID int `json:"id"`
	SearchQuery
}
