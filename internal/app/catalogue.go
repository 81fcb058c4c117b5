package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/five82/songmatch/internal/request"
	"github.com/five82/songmatch/internal/songs"
	"github.com/five82/songmatch/internal/state"
)

// ListFunc builds a coordinator for one catalogue page.
type ListFunc func(page, limit int) *request.Coordinator

// Catalogue owns the coordinator for the page currently on screen. Changing
// page closes the previous coordinator so a late response can never replace
// the newer listing.
type Catalogue struct {
	list   ListFunc
	store  *state.Store
	logger zerolog.Logger
	limit  int

	mu      sync.Mutex
	page    int
	gen     int
	current *request.Coordinator
}

// NewCatalogue builds a controller that loads pages from client into store.
func NewCatalogue(client *songs.Client, store *state.Store, limit int, logger zerolog.Logger) *Catalogue {
	return newCatalogue(client.ListSongs, store, limit, logger)
}

func newCatalogue(list ListFunc, store *state.Store, limit int, logger zerolog.Logger) *Catalogue {
	if limit < 1 {
		limit = songs.DefaultPageLimit
	}
	return &Catalogue{
		list:   list,
		store:  store,
		limit:  limit,
		logger: logger.With().Str("component", "catalogue").Logger(),
		page:   1,
	}
}

// Page returns the page number currently selected.
func (c *Catalogue) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// Show loads the given page. Showing the current page again reuses its
// coordinator, so a request still in flight is not duplicated.
func (c *Catalogue) Show(page int) {
	if page < 1 {
		page = 1
	}

	c.mu.Lock()
	if c.current != nil && page == c.page {
		coord := c.current
		c.mu.Unlock()
		coord.Initiate()
		return
	}

	prev := c.current
	c.gen++
	gen := c.gen
	c.page = page
	coord := c.list(page, c.limit)
	c.attach(coord, gen, page)
	c.current = coord
	c.mu.Unlock()

	if prev != nil {
		if prev.InFlight() {
			c.logger.Debug().Int("page", page).Msg("superseding page request")
			c.store.CatalogueAbandoned()
		}
		prev.Close()
	}
	coord.Initiate()
}

// Reload refreshes the current page.
func (c *Catalogue) Reload() {
	c.Show(c.Page())
}

// Next moves one page forward when the catalogue has more pages.
func (c *Catalogue) Next() {
	page := c.Page()
	if count := c.store.Snapshot().Catalogue.Page.PageCount(); count > 0 && page >= count {
		return
	}
	c.Show(page + 1)
}

// Prev moves one page back.
func (c *Catalogue) Prev() {
	page := c.Page()
	if page <= 1 {
		return
	}
	c.Show(page - 1)
}

// Wait blocks until the active page request settles.
func (c *Catalogue) Wait() {
	c.mu.Lock()
	coord := c.current
	c.mu.Unlock()
	if coord != nil {
		coord.Wait()
	}
}

// Close disposes of the active coordinator.
func (c *Catalogue) Close() {
	c.mu.Lock()
	coord := c.current
	c.current = nil
	c.gen++
	c.mu.Unlock()

	if coord != nil {
		coord.Close()
	}
}

func (c *Catalogue) isCurrent(gen int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen == gen
}

func (c *Catalogue) attach(coord *request.Coordinator, gen, page int) {
	coord.OnLoading(func() {
		if c.isCurrent(gen) {
			c.store.CatalogueLoading(page)
		}
	})
	coord.OnSuccess(func(body request.Payload) {
		if !c.isCurrent(gen) {
			return
		}
		listing, err := songs.DecodeSongPage(body)
		if err != nil {
			c.logger.Warn().Err(err).Int("page", page).Msg("catalogue page unreadable")
			c.store.CatalogueFailed(err)
			return
		}
		c.store.CatalogueLoaded(listing)
	})
	coord.OnError(func(status int, body request.Payload) {
		if c.isCurrent(gen) {
			c.store.CatalogueFailed(songs.NewAPIError(status, body))
		}
	})
	coord.OnFail(func(err error) {
		if c.isCurrent(gen) {
			c.store.CatalogueFailed(err)
		}
	})
}
