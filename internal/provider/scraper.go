package provider

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"jobscout/pkg/models"
)

const scrapePageTimeout = 30 * time.Second

// BoardScraper fetches listings from a job board that renders results
// client-side, using browser automation. It only fills the fields a results
// card exposes; Enrich derives the rest.
type BoardScraper struct {
	boardURL string
}

func NewBoardScraper(boardURL string) *BoardScraper {
	return &BoardScraper{boardURL: boardURL}
}

// scrapedCard mirrors the JS extraction payload.
type scrapedCard struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Salary   string `json:"salary"`
}

func (s *BoardScraper) FetchListings(ctx context.Context, c Criteria) ([]models.Listing, error) {
	ctx, cancel := newBrowserContext(ctx)
	defer cancel()
	ctx, cancel = context.WithTimeout(ctx, scrapePageTimeout)
	defer cancel()

	q := url.Values{}
	q.Set("q", c.Query)
	if c.Location != "" {
		q.Set("location", c.Location)
	}

	var cards []scrapedCard
	err := chromedp.Run(ctx,
		chromedp.Navigate(s.boardURL+"?"+q.Encode()),
		chromedp.WaitReady("body"),
		chromedp.Sleep(2*time.Second),
		chromedp.Evaluate(`Array.from(document.querySelectorAll('[data-job-card], .job-card, article.job')).map(el => ({
			title: (el.querySelector('h2, h3, .job-title')?.textContent || '').trim(),
			company: (el.querySelector('.company, .job-company')?.textContent || '').trim(),
			location: (el.querySelector('.location, .job-location')?.textContent || '').trim(),
			salary: (el.querySelector('.salary, .job-salary')?.textContent || '').trim(),
		}))`, &cards),
	)
	if err != nil {
		return nil, fmt.Errorf("board scrape failed: %w", err)
	}

	listings := make([]models.Listing, 0, len(cards))
	for i, card := range cards {
		if card.Title == "" {
			continue
		}
		region, city := splitLocation(card.Location)
		listings = append(listings, models.Listing{
			ID:           i + 1,
			Title:        card.Title,
			Organization: card.Company,
			Region:       region,
			City:         city,
			Salary:       parseSalaryText(card.Salary),
			PostedAt:     time.Now(),
			Description:  card.Title + " at " + card.Company,
		})
	}
	Enrich(listings)
	Score(listings, c)
	return listings, nil
}

// FetchIndustries is not available from a results page scrape.
func (s *BoardScraper) FetchIndustries(ctx context.Context) ([]string, error) {
	return nil, fmt.Errorf("industries vocabulary not available from board scrape")
}

func (s *BoardScraper) FetchSkillsVocabulary(ctx context.Context) ([]string, error) {
	return nil, fmt.Errorf("skills vocabulary not available from board scrape")
}

func newBrowserContext(parent context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancel2 := chromedp.NewContext(allocCtx)
	return ctx, func() {
		cancel2()
		cancel()
	}
}

func splitLocation(loc string) (region, city string) {
	parts := strings.SplitN(loc, ",", 2)
	city = strings.TrimSpace(parts[0])
	region = city
	if len(parts) == 2 {
		region = strings.TrimSpace(parts[1])
	}
	return region, city
}

// parseSalaryText pulls a numeric range out of card text such as
// "AED 15,000 - 25,000 / month". Text it cannot parse leaves the salary
// undisclosed rather than erroring.
func parseSalaryText(raw string) models.Salary {
	s := models.Salary{Currency: "AED", Period: models.PeriodMonthly}
	if raw == "" {
		return s
	}
	lower := strings.ToLower(raw)
	if strings.Contains(lower, "year") || strings.Contains(lower, "annum") || strings.Contains(lower, "annual") {
		s.Period = models.PeriodAnnual
	}

	var nums []float64
	var cur strings.Builder
	flush := func() {
		if cur.Len() == 0 {
			return
		}
		var n float64
		fmt.Sscanf(cur.String(), "%f", &n)
		if n > 0 {
			nums = append(nums, n)
		}
		cur.Reset()
	}
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			cur.WriteRune(r)
		case r == ',':
			// thousands separator
		default:
			flush()
		}
	}
	flush()

	if len(nums) >= 2 {
		s.Min, s.Max = nums[0], nums[1]
	} else if len(nums) == 1 {
		s.Min, s.Max = nums[0], nums[0]
	}
	if s.Max < s.Min {
		s.Min, s.Max = s.Max, s.Min
	}
	return s
}
