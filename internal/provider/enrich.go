package provider

import (
	"strings"

	"jobscout/pkg/models"
)

// Placeholder attribute tables. Feeds rarely carry sector, visa status,
// company location class or experience level, so until they do these are
// assigned deterministically from the listing id.
// TODO: drop the id-derived assignment once the listings endpoint exposes
// these as real fields.
var (
	sectors     = []string{"private", "government", "semi-government"}
	visaStates  = []string{"sponsored", "own-visa"}
	classes     = []string{"mainland", "freezone"}
	experiences = []string{"entry", "mid", "senior", "lead"}
)

// Enrich fills the pseudo-derived categorical attributes on listings that
// arrived without them. Feed ids are not trusted; negative ids from a
// malformed payload still map to a valid table entry.
func Enrich(listings []models.Listing) {
	for i := range listings {
		l := &listings[i]
		if l.Sector == "" {
			l.Sector = sectors[attrIndex(l.ID, len(sectors))]
		}
		if l.VisaStatus == "" {
			l.VisaStatus = visaStates[attrIndex(l.ID, len(visaStates))]
		}
		if l.CompanyLocationClass == "" {
			l.CompanyLocationClass = classes[attrIndex(l.ID, len(classes))]
		}
		if l.ExperienceLevel == "" {
			l.ExperienceLevel = experiences[attrIndex(l.ID, len(experiences))]
		}
		if l.Salary.Period == "" {
			l.Salary.Period = models.PeriodMonthly
		}
	}
}

// attrIndex maps any id onto a valid table index. Go's % keeps the sign of
// the dividend, so the remainder needs shifting for negative ids.
func attrIndex(id, n int) int {
	idx := id % n
	if idx < 0 {
		idx += n
	}
	return idx
}

// Score fills missing match scores by keyword overlap between the search
// criteria and the listing text: every query word found in the title,
// organization or description contributes evenly.
func Score(listings []models.Listing, c Criteria) {
	words := strings.Fields(strings.ToLower(c.Query))
	if len(words) == 0 {
		return
	}
	for i := range listings {
		l := &listings[i]
		if l.MatchScore != nil {
			continue
		}
		haystack := strings.ToLower(l.Title + " " + l.Organization + " " + l.Description)
		matched := 0
		for _, w := range words {
			if strings.Contains(haystack, w) {
				matched++
			}
		}
		score := float64(matched) / float64(len(words)) * 100
		l.MatchScore = &score
	}
}
