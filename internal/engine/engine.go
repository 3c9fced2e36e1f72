package engine

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"jobscout/pkg/models"
)

// Gateway is the persistence boundary for saved searches and history. The
// engine never assumes a call succeeds; on failure it keeps working against
// its last in-memory copy and records a non-fatal notice.
type Gateway interface {
	LoadSavedSearches(ctx context.Context) ([]models.SavedSearch, error)
	SaveSearch(ctx context.Context, q models.SearchQuery, label string) (models.SavedSearch, error)
	LoadHistory(ctx context.Context) ([]models.HistoryEntry, error)
	AppendHistory(ctx context.Context, q models.SearchQuery) error
	DeleteSaved(ctx context.Context, id int) error
}

// Options configures a new Engine. Zero values fall back to defaults.
type Options struct {
	SettleDelay   time.Duration
	DiscreteDelay time.Duration
	PageSize      int
	Gateway       Gateway
	OnResult      func(ResultPage)
}

// Engine owns the filter state, the cached listing collection and the
// derived result page. All mutation funnels through the filter store and
// the setters below; recomputation is scheduled through the coalescer and
// never runs synchronously with a mutation.
type Engine struct {
	mu        sync.Mutex
	store     *Store
	coalescer *Coalescer
	gateway   Gateway
	onResult  func(ResultPage)

	listings []models.Listing
	sortKey  SortKey
	page     int
	pageSize int
	result   ResultPage

	saved   []models.SavedSearch
	history []models.HistoryEntry
	notices []string
}

// New builds an Engine at the all-defaults state with an empty collection.
func New(opts Options) *Engine {
	if opts.PageSize < 1 {
		opts.PageSize = 10
	}
	e := &Engine{
		gateway:  opts.Gateway,
		onResult: opts.OnResult,
		sortKey:  SortRelevance,
		page:     1,
		pageSize: opts.PageSize,
	}
	e.store = NewStore(e.onFilterChange)
	e.coalescer = NewCoalescer(opts.SettleDelay, opts.DiscreteDelay, e.recompute)
	return e
}

// Filters exposes the filter value store. Every mutation through it resets
// the page to 1 and schedules a recompute.
func (e *Engine) Filters() *Store { return e.store }

func (e *Engine) onFilterChange(kind InputKind) {
	e.mu.Lock()
	e.page = 1
	e.mu.Unlock()
	e.coalescer.Trigger(kind)
}

// SetListings replaces the cached collection. An empty or nil slice is
// ignored so a failed or empty fetch keeps the last good snapshot.
func (e *Engine) SetListings(listings []models.Listing) {
	if len(listings) == 0 {
		e.addNotice("listing fetch returned nothing; keeping cached collection")
		return
	}
	e.mu.Lock()
	e.listings = append([]models.Listing(nil), listings...)
	e.mu.Unlock()
	e.coalescer.Trigger(Discrete)
}

// Listings returns the cached collection.
func (e *Engine) Listings() []models.Listing {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.Listing(nil), e.listings...)
}

// SetSort changes the ordering. Unknown keys are ignored with a notice.
// Sorting is not a filter mutation, so the page is kept.
func (e *Engine) SetSort(key SortKey) {
	if !ValidSortKey(key) {
		e.addNotice(fmt.Sprintf("unknown sort key %q ignored", key))
		return
	}
	e.mu.Lock()
	e.sortKey = key
	e.mu.Unlock()
	e.coalescer.Trigger(Discrete)
}

// SetPage moves to a 1-based page without touching filters.
func (e *Engine) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	e.mu.Lock()
	e.page = page
	e.mu.Unlock()
	e.coalescer.Trigger(Discrete)
}

// Flush forces any scheduled recompute to run now. One-shot callers use it
// instead of waiting out the debounce window.
func (e *Engine) Flush() { e.coalescer.Flush() }

// Stop cancels pending recomputes.
func (e *Engine) Stop() { e.coalescer.Stop() }

// Result returns the last committed page.
func (e *Engine) Result() ResultPage {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.result
}

// recompute runs the full pipeline: filter, rank, paginate, commit. It is
// only ever entered serialized by the coalescer.
func (e *Engine) recompute() {
	e.mu.Lock()
	listings := e.listings
	filters := e.store.Get()
	sortKey := e.sortKey
	page, size := e.page, e.pageSize
	e.mu.Unlock()

	filtered := Filter(listings, filters)
	ranked := Rank(filtered, sortKey)
	result := Paginate(ranked, page, size)

	e.mu.Lock()
	e.result = result
	cb := e.onResult
	e.mu.Unlock()
	if cb != nil {
		cb(result)
	}
}

// EncodeShare renders the current state as its shareable representation.
func (e *Engine) EncodeShare() url.Values {
	e.mu.Lock()
	page := e.page
	e.mu.Unlock()
	return EncodeState(e.store.Get(), page)
}

// ApplyShare restores a shared representation. Meant to run before the
// first recompute; it installs the state silently and schedules one run.
func (e *Engine) ApplyShare(v url.Values) {
	filters, page := DecodeState(v)
	e.store.Replace(filters)
	e.mu.Lock()
	e.page = page
	e.mu.Unlock()
	e.coalescer.Trigger(Discrete)
}

// Snapshot captures the current query as an immutable SearchQuery.
func (e *Engine) Snapshot() models.SearchQuery {
	f := e.store.Get()
	return models.SearchQuery{
		Text:      f.Text,
		Location:  f.Location,
		Filters:   f,
		CreatedAt: time.Now(),
	}
}

// CommitSearch logs the current query to history through the gateway.
// Gateway failure is non-fatal: the entry is kept in memory and a notice
// is recorded.
func (e *Engine) CommitSearch(ctx context.Context) {
	q := e.Snapshot()
	if e.gateway != nil {
		if err := e.gateway.AppendHistory(ctx, q); err != nil {
			e.addNotice(fmt.Sprintf("history not persisted: %v", err))
		}
	}
	e.mu.Lock()
	e.history = append(e.history, models.HistoryEntry{SearchQuery: q})
	e.mu.Unlock()
}

// SaveSearch persists the current query under a label, falling back to the
// in-memory copy when the gateway fails.
func (e *Engine) SaveSearch(ctx context.Context, label string) (models.SavedSearch, error) {
	q := e.Snapshot()
	if e.gateway != nil {
		saved, err := e.gateway.SaveSearch(ctx, q, label)
		if err == nil {
			e.mu.Lock()
			e.saved = append(e.saved, saved)
			e.mu.Unlock()
			return saved, nil
		}
		e.addNotice(fmt.Sprintf("saved search not persisted: %v", err))
	}
	saved := models.SavedSearch{Label: label, SearchQuery: q}
	e.mu.Lock()
	e.saved = append(e.saved, saved)
	e.mu.Unlock()
	return saved, nil
}

// RestoreQuery installs a saved or historical query and schedules a run.
func (e *Engine) RestoreQuery(q models.SearchQuery) {
	f := q.Filters
	f.Text = q.Text
	f.Location = q.Location
	e.store.Replace(f)
	e.mu.Lock()
	e.page = 1
	e.mu.Unlock()
	e.coalescer.Trigger(Discrete)
}

// LoadPersisted pulls saved searches and history from the gateway. Failures
// keep whatever is already in memory.
func (e *Engine) LoadPersisted(ctx context.Context) {
	if e.gateway == nil {
		return
	}
	if saved, err := e.gateway.LoadSavedSearches(ctx); err != nil {
		e.addNotice(fmt.Sprintf("saved searches unavailable: %v", err))
	} else {
		e.mu.Lock()
		e.saved = saved
		e.mu.Unlock()
	}
	if history, err := e.gateway.LoadHistory(ctx); err != nil {
		e.addNotice(fmt.Sprintf("history unavailable: %v", err))
	} else {
		e.mu.Lock()
		e.history = history
		e.mu.Unlock()
	}
}

// SavedSearches returns the in-memory saved-search copy.
func (e *Engine) SavedSearches() []models.SavedSearch {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.SavedSearch(nil), e.saved...)
}

// History returns the in-memory history copy.
func (e *Engine) History() []models.HistoryEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.HistoryEntry(nil), e.history...)
}

// DeleteSaved removes a saved search by id, in memory and via the gateway.
func (e *Engine) DeleteSaved(ctx context.Context, id int) {
	if e.gateway != nil {
		if err := e.gateway.DeleteSaved(ctx, id); err != nil {
			e.addNotice(fmt.Sprintf("saved search not deleted from store: %v", err))
		}
	}
	e.mu.Lock()
	kept := e.saved[:0:0]
	for _, s := range e.saved {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	e.saved = kept
	e.mu.Unlock()
}

// Notices drains accumulated non-fatal notices.
func (e *Engine) Notices() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := e.notices
	e.notices = nil
	return out
}

func (e *Engine) addNotice(msg string) {
	e.mu.Lock()
	e.notices = append(e.notices, msg)
	e.mu.Unlock()
}
