package engine

import (
	"fmt"
	"testing"
	"time"

	"jobscout/pkg/models"
)

func ptr(f float64) *float64 { return &f }

// fixture returns n listings with identical match scores and strictly
// decreasing posted dates: id 1 is the newest.
func fixture(n int) []models.Listing {
	base := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	listings := make([]models.Listing, 0, n)
	for i := 1; i <= n; i++ {
		listings = append(listings, models.Listing{
			ID:             i,
			Title:          fmt.Sprintf("Backend Engineer %02d", i),
			Organization:   "Acme Gulf",
			Region:         "Dubai",
			City:           "Dubai",
			EmploymentType: "full-time",
			Salary: models.Salary{
				Min: 10000 + float64(i)*500, Max: 15000 + float64(i)*500,
				Currency: "AED", Period: models.PeriodMonthly,
			},
			PostedAt:             base.AddDate(0, 0, -i),
			RequiredSkills:       []string{"Go", "SQL"},
			Industry:             "Technology",
			Sector:               "private",
			ExperienceLevel:      "mid",
			VisaStatus:           "sponsored",
			CompanyLocationClass: "mainland",
			Benefits:             []string{"health insurance"},
			Description:          "Backend services in Go.",
			MatchScore:           ptr(70),
		})
	}
	return listings
}

func TestFilterIdentityAtDefaults(t *testing.T) {
	listings := fixture(25)
	got := Filter(listings, models.DefaultFilters())
	if len(got) != len(listings) {
		t.Fatalf("default filters should be identity: got %d of %d listings", len(got), len(listings))
	}
	for i := range got {
		if got[i].ID != listings[i].ID {
			t.Fatalf("default filters reordered listings at %d", i)
		}
	}
}

func TestFilterTextMatchesTitleOrgDescription(t *testing.T) {
	listings := []models.Listing{
		{ID: 1, Title: "Senior Designer"},
		{ID: 2, Organization: "Design Works LLC"},
		{ID: 3, Description: "You will design dashboards."},
		{ID: 4, Title: "Accountant"},
	}
	f := models.DefaultFilters()
	f.Text = "design"
	got := Filter(listings, f)
	if len(got) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(got))
	}
	for _, l := range got {
		if l.ID == 4 {
			t.Error("non-matching listing survived the text stage")
		}
	}
}

func TestFilterSkillsORSemantics(t *testing.T) {
	listings := []models.Listing{
		{ID: 1, RequiredSkills: []string{"React", "Node.js", "TypeScript", "AWS"}},
		{ID: 2, RequiredSkills: []string{"SEO", "SEM"}},
		{ID: 3}, // no skills field at all
	}
	f := models.DefaultFilters()
	f.Skills = []models.SkillFilter{{Term: "React", Requirement: models.SkillPreferred}}

	got := Filter(listings, f)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected only listing 1 to match, got %v", got)
	}

	// Two terms, OR: either one is enough.
	f.Skills = append(f.Skills, models.SkillFilter{Term: "seo", Requirement: models.SkillRequired})
	got = Filter(listings, f)
	if len(got) != 2 {
		t.Fatalf("expected OR semantics across skill terms, got %d matches", len(got))
	}
}

func TestFilterSalaryBoundaries(t *testing.T) {
	listings := []models.Listing{
		{ID: 1, Salary: models.Salary{Min: 15000, Max: 25000, Period: models.PeriodMonthly}},
		{ID: 2, Salary: models.Salary{Min: 15000, Max: 24999, Period: models.PeriodMonthly}},
		{ID: 3, Salary: models.Salary{Min: 40000, Max: 50000, Period: models.PeriodMonthly}},
		{ID: 4}, // undisclosed salary
	}
	f := models.DefaultFilters()
	f.SalaryMin, f.SalaryMax = 25000, 35000

	got := Filter(listings, f)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected boundary-inclusive overlap to keep only listing 1, got %v", ids(got))
	}
}

func TestFilterSalaryUnitConsistency(t *testing.T) {
	listings := fixture(25)

	monthly := models.DefaultFilters()
	monthly.SalaryMin, monthly.SalaryMax = 10000, 20000

	annual := models.DefaultFilters()
	annual.SalaryPeriod = models.PeriodAnnual
	annual.SalaryMin, annual.SalaryMax = 120000, 240000

	a, b := Filter(listings, monthly), Filter(listings, annual)
	if len(a) != len(b) {
		t.Fatalf("monthly [10000,20000] and annual [120000,240000] diverge: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("unit-equivalent filters selected different listings at %d", i)
		}
	}
}

func TestFilterMixedPeriodListings(t *testing.T) {
	listings := []models.Listing{
		{ID: 1, Salary: models.Salary{Min: 240000, Max: 360000, Period: models.PeriodAnnual}}, // 20k-30k monthly
		{ID: 2, Salary: models.Salary{Min: 5000, Max: 8000, Period: models.PeriodMonthly}},
	}
	f := models.DefaultFilters()
	f.SalaryMin, f.SalaryMax = 18000, 25000
	got := Filter(listings, f)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("annual listing should be normalized before comparison, got %v", ids(got))
	}
}

func TestFilterDatePostedWindows(t *testing.T) {
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	listings := []models.Listing{
		{ID: 1, PostedAt: now.Add(-6 * time.Hour)},
		{ID: 2, PostedAt: now.AddDate(0, 0, -3)},
		{ID: 3, PostedAt: now.AddDate(0, 0, -20)},
		{ID: 4}, // zero PostedAt
	}

	tests := []struct {
		window string
		want   []int
	}{
		{models.DatePostedToday, []int{1}},
		{models.DatePostedWeek, []int{1, 2}},
		{models.DatePostedMonth, []int{1, 2, 3}},
		{models.DatePostedAny, []int{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.window, func(t *testing.T) {
			f := models.DefaultFilters()
			f.DatePosted = tt.window
			got := ids(filterAt(listings, f, now))
			if !equalInts(got, tt.want) {
				t.Errorf("window %s: got %v, want %v", tt.window, got, tt.want)
			}
		})
	}
}

func TestFilterCategoricalStages(t *testing.T) {
	listings := fixture(4)
	listings[1].Sector = "government"
	listings[2].VisaStatus = "own-visa"
	listings[3].CompanyLocationClass = "freezone"

	f := models.DefaultFilters()
	f.SectorType = "government"
	if got := ids(Filter(listings, f)); !equalInts(got, []int{2}) {
		t.Errorf("sector stage: got %v", got)
	}

	f = models.DefaultFilters()
	f.VisaStatuses = []string{"own-visa"}
	if got := ids(Filter(listings, f)); !equalInts(got, []int{3}) {
		t.Errorf("visa stage: got %v", got)
	}

	f = models.DefaultFilters()
	f.CompanyLocationClass = "freezone"
	if got := ids(Filter(listings, f)); !equalInts(got, []int{4}) {
		t.Errorf("company class stage: got %v", got)
	}

	f = models.DefaultFilters()
	f.Benefits = []string{"Health Insurance"}
	if got := Filter(listings, f); len(got) != 4 {
		t.Errorf("benefits stage should match case-insensitively, got %d", len(got))
	}
}

func TestFilterRemoteOnly(t *testing.T) {
	listings := []models.Listing{
		{ID: 1, EmploymentType: "remote"},
		{ID: 2, City: "Remote", EmploymentType: "full-time"},
		{ID: 3, City: "Dubai", EmploymentType: "full-time"},
	}
	f := models.DefaultFilters()
	f.RemoteOnly = true
	if got := ids(Filter(listings, f)); !equalInts(got, []int{1, 2}) {
		t.Fatalf("remote stage: got %v", got)
	}
}

func TestFilterMissingFieldsNeverPanic(t *testing.T) {
	// A listing with every optional field absent passes an all-default
	// state and is excluded, not panicked on, by each active stage.
	empty := models.Listing{ID: 1}
	all := models.DefaultFilters()
	if got := Filter([]models.Listing{empty}, all); len(got) != 1 {
		t.Fatal("empty listing must survive the default state")
	}

	active := models.DefaultFilters()
	active.Text = "x"
	active.Location = "dubai"
	active.JobTypes = []string{"full-time"}
	active.Skills = []models.SkillFilter{{Term: "go"}}
	active.SalaryMin = 1000
	active.RemoteOnly = true
	active.DatePosted = models.DatePostedWeek
	active.Industries = []string{"tech"}
	active.Regions = []string{"dubai"}
	active.VisaStatuses = []string{"sponsored"}
	active.SectorType = "private"
	active.CompanyLocationClass = "mainland"
	active.Benefits = []string{"bonus"}
	if got := Filter([]models.Listing{empty}, active); len(got) != 0 {
		t.Fatal("empty listing should not match active predicates")
	}
}

// clearCategory(c) then filtering must equal never having set c.
func TestClearCategoryEquivalence(t *testing.T) {
	listings := fixture(25)

	setters := map[Category]func(*Store){
		CategoryText:         func(s *Store) { q := "nothing matches this"; s.Set(Patch{Text: &q}) },
		CategoryLocation:     func(s *Store) { q := "nowhere"; s.Set(Patch{Location: &q}) },
		CategoryJobTypes:     func(s *Store) { s.Add(CategoryJobTypes, "internship") },
		CategoryExperience:   func(s *Store) { s.Add(CategoryExperience, "lead") },
		CategorySalary:       func(s *Store) { min := 90000.0; s.Set(Patch{SalaryMin: &min}) },
		CategoryRemote:       func(s *Store) { on := true; s.Set(Patch{RemoteOnly: &on}) },
		CategoryDatePosted:   func(s *Store) { w := models.DatePostedToday; s.Set(Patch{DatePosted: &w}) },
		CategoryIndustries:   func(s *Store) { s.Add(CategoryIndustries, "Agriculture") },
		CategorySkills:       func(s *Store) { s.Add(CategorySkills, "COBOL") },
		CategoryRegions:      func(s *Store) { s.Add(CategoryRegions, "Fujairah") },
		CategoryVisa:         func(s *Store) { s.Add(CategoryVisa, "own-visa") },
		CategorySector:       func(s *Store) { v := "government"; s.Set(Patch{SectorType: &v}) },
		CategoryCompanyClass: func(s *Store) { v := "freezone"; s.Set(Patch{CompanyLocationClass: &v}) },
		CategoryBenefits:     func(s *Store) { s.Add(CategoryBenefits, "company car") },
	}

	for cat, apply := range setters {
		t.Run(string(cat), func(t *testing.T) {
			store := NewStore(nil)
			apply(store)
			if n := len(Filter(listings, store.Get())); n == len(listings) {
				t.Fatalf("setter for %s had no effect; test is vacuous", cat)
			}
			store.ClearCategory(cat)
			got := Filter(listings, store.Get())
			want := Filter(listings, models.DefaultFilters())
			if len(got) != len(want) {
				t.Fatalf("clearCategory(%s) not equivalent to never setting it: %d vs %d", cat, len(got), len(want))
			}
		})
	}
}

func ids(listings []models.Listing) []int {
	out := make([]int, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.ID)
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
