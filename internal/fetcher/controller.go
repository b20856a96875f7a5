package fetcher

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/namebay/namebay/pkg/cache"
	"github.com/namebay/namebay/pkg/logger"
	"github.com/namebay/namebay/pkg/sdk/api"
)

// SearchClient is the slice of the backend client the controller needs.
type SearchClient interface {
	SearchNames(ctx context.Context, f api.SearchFilters, page, limit int) (*api.SearchResponse, []byte, error)
}

// Page is one fetched page of results.
type Page struct {
	Items      []api.Name
	PageNumber int
	HasNext    bool
}

// Controller drives page-number based fetching for one view. The filter
// tuple acts as the cache key: any change discards all accumulated pages and
// restarts at page 1. Errors never escape to the caller — a failed fetch
// resolves to an empty page with HasNextPage()==false so the view renders
// "no results" instead of crashing.
type Controller struct {
	client SearchClient
	cache  *cache.PageCache // optional; serves stale pages on failure
	limit  int

	mu          sync.Mutex
	key         string
	filters     api.SearchFilters
	generation  uint64
	pages       []Page
	items       []api.Name
	seen        map[string]struct{}
	hasNext     bool
	inFlight    bool
	nextPage    int
	synthesized bool
	stale       bool
}

// NewController creates a controller with the given page size. pageCache may
// be nil.
func NewController(client SearchClient, pageCache *cache.PageCache, limit int) *Controller {
	if limit <= 0 {
		limit = 50
	}
	return &Controller{
		client: client,
		cache:  pageCache,
		limit:  limit,
		seen:   make(map[string]struct{}),
	}
}

// SetFilters re-keys the controller. When the tuple actually changed, all
// accumulated pages are dropped, the generation counter advances (logically
// cancelling interest in any in-flight fetch for the old key), and the next
// fetch requests page 1.
//
// Key identity is the serialized backend query, not the raw state: filter
// states that serialize identically (all types selected vs. a partial
// selection — the builder emits nothing for either) share one accumulation,
// since the backend would return the same pages for both.
func (c *Controller) SetFilters(f api.SearchFilters) bool {
	key := api.BuildSearchParams(f, 0, 0).Encode()

	c.mu.Lock()
	defer c.mu.Unlock()

	if key == c.key && c.key != "" {
		return false
	}

	c.key = key
	c.filters = f
	c.generation++
	c.pages = nil
	c.items = nil
	c.seen = make(map[string]struct{})
	c.hasNext = true
	c.nextPage = 1
	c.synthesized = false
	c.stale = false
	return true
}

// Items returns the accumulated, deduplicated result list.
func (c *Controller) Items() []api.Name {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]api.Name, len(c.items))
	copy(out, c.items)
	return out
}

// Pages returns the accumulated page metadata.
func (c *Controller) Pages() []Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Page, len(c.pages))
	copy(out, c.pages)
	return out
}

// HasNextPage reports whether another page can be fetched.
func (c *Controller) HasNextPage() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasNext
}

// Loading reports whether a fetch is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Stale reports whether the current items came from the on-disk page cache
// rather than the backend.
func (c *Controller) Stale() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stale
}

// FetchNextPage fetches the next page. It is a no-op while a fetch is in
// flight or when the backend reported no further pages; overlapping calls
// triggered by rapid scroll events collapse to a single request.
// Returns true when the accumulated list changed.
func (c *Controller) FetchNextPage(ctx context.Context) bool {
	c.mu.Lock()
	if c.inFlight || !c.hasNext || c.key == "" {
		c.mu.Unlock()
		return false
	}
	c.inFlight = true
	gen := c.generation
	page := c.nextPage
	f := c.filters
	key := c.key
	c.mu.Unlock()

	result, fromCache := c.fetchPage(ctx, key, f, page)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false

	// A key change while we were on the wire cancels interest in this
	// response; merging it would pollute the new key's accumulation.
	if gen != c.generation {
		logger.Debugf("[fetcher] dropping stale response page=%d gen=%d now=%d", page, gen, c.generation)
		return false
	}

	items := result.Items
	if page == 1 && !c.synthesized && ShouldSynthesize(f.Search, f, items) {
		items = append([]api.Name{SyntheticName(f.Search)}, items...)
		c.synthesized = true
	}

	changed := false
	for _, it := range items {
		if _, dup := c.seen[it.TokenID]; dup {
			continue
		}
		c.seen[it.TokenID] = struct{}{}
		c.items = append(c.items, it)
		changed = true
	}

	c.pages = append(c.pages, Page{Items: items, PageNumber: page, HasNext: result.HasNext})
	c.hasNext = result.HasNext
	c.nextPage = page + 1
	c.stale = fromCache
	return changed
}

type pageResult struct {
	Items   []api.Name
	HasNext bool
}

// fetchPage issues one backend GET. All failure modes collapse to an empty
// page with HasNext=false (fail soft); the on-disk cache is consulted first
// when the backend is unreachable.
func (c *Controller) fetchPage(ctx context.Context, key string, f api.SearchFilters, page int) (pageResult, bool) {
	reqID := uuid.NewString()[:8]
	log := logger.WithField("req", reqID)

	resp, body, err := c.client.SearchNames(ctx, f, page, c.limit)
	if err == nil {
		if c.cache != nil && len(body) > 0 {
			if cerr := c.cache.Put(key, page, body); cerr != nil {
				log.Debugf("[fetcher] cache put failed: %v", cerr)
			}
		}
		return pageResult{
			Items:   resp.Items(),
			HasNext: hasNextPage(resp.Data.Pagination),
		}, false
	}

	log.Warnf("[fetcher] page %d fetch failed: %v", page, err)

	if c.cache != nil {
		if cached, ok, cerr := c.cache.Get(key, page); cerr == nil && ok {
			if resp, derr := api.DecodeSearchResponse(cached); derr == nil {
				log.Infof("[fetcher] serving page %d from cache", page)
				return pageResult{
					Items:   resp.Items(),
					HasNext: hasNextPage(resp.Data.Pagination),
				}, true
			}
		}
	}

	return pageResult{}, false
}

// hasNextPage accepts both pagination dialects: an explicit hasNext flag or
// page < totalPages.
func hasNextPage(p api.Pagination) bool {
	if p.HasNext {
		return true
	}
	return p.TotalPages > 0 && p.Page < p.TotalPages
}
