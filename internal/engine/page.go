package engine

import "jobscout/pkg/models"

// ResultPage is a derived value: one bounded page of the ordered filtered
// set plus its metadata. Never persisted, fully recomputed on every run.
type ResultPage struct {
	Listings  []models.Listing
	Total     int
	Page      int
	PageSize  int
	PageCount int
}

// Paginate slices the [(page-1)*size, page*size) window out of the ordered
// set, clamped to range. Page is 1-based; a page past the end yields the
// last page's remainder or an empty slice.
func Paginate(listings []models.Listing, page, size int) ResultPage {
	if size < 1 {
		size = 1
	}
	if page < 1 {
		page = 1
	}
	total := len(listings)
	pageCount := (total + size - 1) / size

	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return ResultPage{
		Listings:  append([]models.Listing(nil), listings[start:end]...),
		Total:     total,
		Page:      page,
		PageSize:  size,
		PageCount: pageCount,
	}
}
