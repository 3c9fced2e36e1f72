package engine

import (
	"net/url"
	"reflect"
	"testing"

	"jobscout/pkg/models"
)

func TestEncodeStateOmitsDefaults(t *testing.T) {
	v := EncodeState(models.DefaultFilters(), 1)
	if len(v) != 0 {
		t.Fatalf("all-default state should encode to nothing, got %v", v)
	}
}

func TestEncodeStateWellKnownKeys(t *testing.T) {
	f := models.DefaultFilters()
	f.Text = "backend engineer"
	f.Location = "dubai"

	v := EncodeState(f, 3)
	if v.Get("q") != "backend engineer" {
		t.Errorf("q = %q", v.Get("q"))
	}
	if v.Get("location") != "dubai" {
		t.Errorf("location = %q", v.Get("location"))
	}
	if v.Get("page") != "3" {
		t.Errorf("page = %q", v.Get("page"))
	}

	if page := EncodeState(f, 1); page.Get("page") != "" {
		t.Error("page 1 must be omitted")
	}
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	f := models.DefaultFilters()
	f.Text = "data engineer"
	f.Location = "abu dhabi"
	f.JobTypes = []string{"full-time", "contract"}
	f.ExperienceLevels = []string{"senior"}
	f.SalaryMin = 20000
	f.SalaryMax = 45000
	f.RemoteOnly = true
	f.DatePosted = models.DatePostedWeek
	f.Industries = []string{"Technology"}
	f.Skills = []models.SkillFilter{
		{Term: "Python", Requirement: models.SkillRequired},
		{Term: "Spark", Requirement: models.SkillPreferred},
	}
	f.Regions = []string{"Dubai", "Sharjah"}
	f.VisaStatuses = []string{"sponsored"}
	f.SectorType = "private"
	f.CompanyLocationClass = "freezone"
	f.Benefits = []string{"health insurance"}

	got, page := DecodeState(EncodeState(f, 4))
	if page != 4 {
		t.Errorf("page = %d, want 4", page)
	}
	if !reflect.DeepEqual(got, f) {
		t.Fatalf("round trip diverged:\nwant %+v\ngot  %+v", f, got)
	}
}

func TestDecodeEncodeRoundTripAnnualPeriod(t *testing.T) {
	f := models.DefaultFilters()
	f.SalaryPeriod = models.PeriodAnnual
	f.SalaryMin = 150000
	f.SalaryMax = 600000

	got, _ := DecodeState(EncodeState(f, 1))
	if got.SalaryPeriod != models.PeriodAnnual {
		t.Fatalf("period = %q", got.SalaryPeriod)
	}
	if got.SalaryMin != 150000 || got.SalaryMax != 600000 {
		t.Fatalf("bounds = [%.0f,%.0f]", got.SalaryMin, got.SalaryMax)
	}
}

func TestRoundTripSalaryMaxAboveDefaultCap(t *testing.T) {
	f := models.DefaultFilters()
	f.SalaryMin = 50000
	f.SalaryMax = 250000 // above the monthly default cap

	got, _ := DecodeState(EncodeState(f, 1))
	if got.SalaryMax != 250000 {
		t.Fatalf("salary max = %.0f, want 250000", got.SalaryMax)
	}
	if got.SalaryMin != 50000 {
		t.Fatalf("salary min = %.0f, want 50000", got.SalaryMin)
	}
}

func TestDecodeStateIgnoresMalformedValues(t *testing.T) {
	v := url.Values{}
	v.Set("page", "not-a-number")
	v.Set("salary_min", "abc")
	v.Set("remote", "banana")

	f, page := DecodeState(v)
	if page != 1 {
		t.Errorf("malformed page should default to 1, got %d", page)
	}
	if f.SalaryMin != 0 {
		t.Errorf("malformed salary_min should be ignored, got %f", f.SalaryMin)
	}
	if f.RemoteOnly {
		t.Error("unexpected remote=true from malformed value")
	}
}

func TestDecodeStateIdempotent(t *testing.T) {
	f := models.DefaultFilters()
	f.Text = "designer"
	f.Skills = []models.SkillFilter{{Term: "Figma", Requirement: models.SkillPreferred}}

	once, page1 := DecodeState(EncodeState(f, 2))
	twice, page2 := DecodeState(EncodeState(once, page1))
	if !reflect.DeepEqual(once, twice) || page1 != page2 {
		t.Fatal("decode(encode(s)) must be a fixed point")
	}
}
