package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/sync/singleflight"

	"jobscout/pkg/models"
)

// Criteria is what a provider is asked for. Faceted narrowing happens
// client-side in the engine; providers only take the coarse query.
type Criteria struct {
	Query    string
	Location string
}

func (c Criteria) key() string {
	return c.Query + "\x00" + c.Location
}

// Provider fetches the listing collection and the filter vocabularies.
type Provider interface {
	FetchListings(ctx context.Context, c Criteria) ([]models.Listing, error)
	FetchIndustries(ctx context.Context) ([]string, error)
	FetchSkillsVocabulary(ctx context.Context) ([]string, error)
}

// HTTPProvider fetches JSON from a listings endpoint. Concurrent identical
// fetches are collapsed into one request.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
	group   singleflight.Group
}

// NewHTTPProvider expects a client with its own timeout policy.
func NewHTTPProvider(baseURL string, client *http.Client) *HTTPProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPProvider{baseURL: baseURL, client: client}
}

func (p *HTTPProvider) FetchListings(ctx context.Context, c Criteria) ([]models.Listing, error) {
	v, err, _ := p.group.Do("listings:"+c.key(), func() (interface{}, error) {
		q := url.Values{}
		if c.Query != "" {
			q.Set("q", c.Query)
		}
		if c.Location != "" {
			q.Set("location", c.Location)
		}
		var listings []models.Listing
		if err := p.getJSON(ctx, "/listings", q, &listings); err != nil {
			return nil, err
		}
		Enrich(listings)
		return listings, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Listing), nil
}

func (p *HTTPProvider) FetchIndustries(ctx context.Context) ([]string, error) {
	var industries []string
	if err := p.getJSON(ctx, "/industries", nil, &industries); err != nil {
		return nil, err
	}
	return industries, nil
}

func (p *HTTPProvider) FetchSkillsVocabulary(ctx context.Context) ([]string, error) {
	var skills []string
	if err := p.getJSON(ctx, "/skills", nil, &skills); err != nil {
		return nil, err
	}
	return skills, nil
}

func (p *HTTPProvider) getJSON(ctx context.Context, path string, q url.Values, out interface{}) error {
	u := p.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request to %s returned status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

// WithFallback wraps a provider so a failed or empty fetch serves the
// embedded sample data instead. Vocabulary calls fall back the same way.
type WithFallback struct {
	Inner Provider
}

func (w *WithFallback) FetchListings(ctx context.Context, c Criteria) ([]models.Listing, error) {
	if w.Inner != nil {
		listings, err := w.Inner.FetchListings(ctx, c)
		if err == nil && len(listings) > 0 {
			return listings, nil
		}
	}
	return SampleListings(c), nil
}

func (w *WithFallback) FetchIndustries(ctx context.Context) ([]string, error) {
	if w.Inner != nil {
		industries, err := w.Inner.FetchIndustries(ctx)
		if err == nil && len(industries) > 0 {
			return industries, nil
		}
	}
	return sampleIndustries(), nil
}

func (w *WithFallback) FetchSkillsVocabulary(ctx context.Context) ([]string, error) {
	if w.Inner != nil {
		skills, err := w.Inner.FetchSkillsVocabulary(ctx)
		if err == nil && len(skills) > 0 {
			return skills, nil
		}
	}
	return sampleSkills(), nil
}
