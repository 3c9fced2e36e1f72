package engine

import (
	"testing"
	"time"

	"jobscout/pkg/models"
)

func TestRankRelevanceTieBreaksByDate(t *testing.T) {
	listings := fixture(25) // equal scores, id 1 newest
	ranked := Rank(listings, SortRelevance)
	for i := 0; i < 5; i++ {
		if ranked[i].ID != i+1 {
			t.Fatalf("relevance ties should break by postedAt desc: position %d has id %d", i, ranked[i].ID)
		}
	}
}

func TestRankRelevanceScoreOrder(t *testing.T) {
	listings := []models.Listing{
		{ID: 1, MatchScore: ptr(40)},
		{ID: 2, MatchScore: ptr(90)},
		{ID: 3}, // unscored sorts last
		{ID: 4, MatchScore: ptr(65)},
	}
	ranked := Rank(listings, SortRelevance)
	if got := ids(ranked); !equalInts(got, []int{2, 4, 1, 3}) {
		t.Fatalf("relevance order wrong: %v", got)
	}
}

func TestRankByDate(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	listings := []models.Listing{
		{ID: 1, PostedAt: base.AddDate(0, 0, 2)},
		{ID: 2}, // zero date sorts last in both directions
		{ID: 3, PostedAt: base},
		{ID: 4, PostedAt: base.AddDate(0, 0, 9)},
	}
	if got := ids(Rank(listings, SortDateDesc)); !equalInts(got, []int{4, 1, 3, 2}) {
		t.Errorf("dateDesc: %v", got)
	}
	if got := ids(Rank(listings, SortDateAsc)); !equalInts(got, []int{3, 1, 4, 2}) {
		t.Errorf("dateAsc: %v", got)
	}
}

func TestRankBySalaryNormalizesUnits(t *testing.T) {
	listings := []models.Listing{
		{ID: 1, Salary: models.Salary{Min: 10000, Max: 15000, Period: models.PeriodMonthly}},
		{ID: 2, Salary: models.Salary{Min: 360000, Max: 480000, Period: models.PeriodAnnual}}, // 30k-40k monthly
		{ID: 3}, // undisclosed sorts last
		{ID: 4, Salary: models.Salary{Min: 20000, Max: 22000, Period: models.PeriodMonthly}},
	}
	if got := ids(Rank(listings, SortSalaryDesc)); !equalInts(got, []int{2, 4, 1, 3}) {
		t.Errorf("salaryDesc: %v", got)
	}
	if got := ids(Rank(listings, SortSalaryAsc)); !equalInts(got, []int{1, 4, 2, 3}) {
		t.Errorf("salaryAsc: %v", got)
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	listings := fixture(5)
	Rank(listings, SortDateAsc)
	for i, l := range listings {
		if l.ID != i+1 {
			t.Fatal("Rank must sort a copy, not the caller's slice")
		}
	}
}

func TestPaginatePartition(t *testing.T) {
	listings := fixture(23)
	size := 5
	seen := 0
	page := 1
	for {
		result := Paginate(listings, page, size)
		if result.Total != 23 {
			t.Fatalf("page %d: total %d, want 23", page, result.Total)
		}
		if len(result.Listings) > size {
			t.Fatalf("page %d exceeds page size: %d", page, len(result.Listings))
		}
		seen += len(result.Listings)
		if page >= result.PageCount {
			break
		}
		page++
	}
	if seen != 23 {
		t.Fatalf("pages partition the set: saw %d of 23", seen)
	}
	if got := Paginate(listings, 1, size).PageCount; got != 5 {
		t.Fatalf("pageCount = %d, want ceil(23/5) = 5", got)
	}
}

func TestPaginateClamping(t *testing.T) {
	listings := fixture(10)

	past := Paginate(listings, 99, 5)
	if len(past.Listings) != 0 || past.Total != 10 {
		t.Errorf("page past the end should be empty with full total, got %d items total %d", len(past.Listings), past.Total)
	}

	zero := Paginate(listings, 0, 0)
	if zero.Page != 1 || zero.PageSize != 1 {
		t.Errorf("out-of-range page/size should clamp to 1, got page %d size %d", zero.Page, zero.PageSize)
	}

	empty := Paginate(nil, 1, 5)
	if empty.Total != 0 || empty.PageCount != 0 || len(empty.Listings) != 0 {
		t.Errorf("empty set: %+v", empty)
	}
}

func TestScenario25ListingPageOne(t *testing.T) {
	// 25-listing fixture, no filters, empty text: filtered size 25; page 1
	// of size 5 holds the first five by relevance, equal scores broken by
	// postedAt descending.
	listings := fixture(25)
	filtered := Filter(listings, models.DefaultFilters())
	if len(filtered) != 25 {
		t.Fatalf("filtered size = %d, want 25", len(filtered))
	}
	page := Paginate(Rank(filtered, SortRelevance), 1, 5)
	if page.Total != 25 || page.PageCount != 5 {
		t.Fatalf("total %d pageCount %d, want 25/5", page.Total, page.PageCount)
	}
	if got := ids(page.Listings); !equalInts(got, []int{1, 2, 3, 4, 5}) {
		t.Fatalf("page 1 = %v, want the five newest", got)
	}
}
