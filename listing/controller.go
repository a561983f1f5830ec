// Package listing owns the paginated, filtered "browse all movies" view:
// current page, genre, minimum rating and free-text search, kept in sync
// with a shareable URL query string.
package listing

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/flicknest/flicknest/movieapi"
)

// GenreAll is the genre filter value meaning "unfiltered".
const GenreAll = "All"

// GenreFilters are the genres offered by the browse screen.
var GenreFilters = []string{
	GenreAll,
	"Romance",
	"Action",
	"Thriller",
	"Drama",
	"Comedy",
	"Si-Fi",
	"Horror",
}

// State is the lifecycle state of the listing view.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateFailed
)

// String returns the human readable name of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Searcher is the backend surface the controller needs.
type Searcher interface {
	SearchMovies(ctx context.Context, q movieapi.SearchQuery) (*movieapi.MoviesPage, error)
	DeleteMovie(ctx context.Context, id int) error
}

// Controller maintains the browse screen state. All methods are safe for
// interleaved use; a fetch whose filter state has been superseded while
// it was in flight is discarded instead of overwriting newer state.
type Controller struct {
	client Searcher

	mu         sync.Mutex
	gen        uint64
	page       int
	genre      string
	rating     int
	search     string
	state      State
	movies     []movieapi.Movie
	totalPages int
	lastErr    error
}

// New creates a controller in the idle state on page 1.
func New(client Searcher) *Controller {
	return &Controller{
		client:     client,
		page:       1,
		genre:      GenreAll,
		totalPages: 1,
		state:      StateIdle,
	}
}

// Seed sets the initial filter state without fetching, as when the
// browse screen is first mounted. An empty genre means unfiltered and
// page values below 1 default to 1.
func (c *Controller) Seed(page int, genre string, rating int, search string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if page < 1 {
		page = 1
	}
	if genre == "" {
		genre = GenreAll
	}
	c.page = page
	c.genre = genre
	c.rating = rating
	c.search = search
}

// SeedFromQuery initializes the page from a URL query string, as when the
// browse screen is reconstructed from a shared or reloaded URL. Values
// below 1 or unparsable fall back to page 1.
func (c *Controller) SeedFromQuery(values url.Values) {
	page := 1
	if raw := values.Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
			page = n
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = page
}

// Query returns the query string that reproduces the current page.
func (c *Controller) Query() url.Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	values := url.Values{}
	values.Set("page", strconv.Itoa(c.page))
	return values
}

// SetGenre changes the genre filter and reloads from page 1.
func (c *Controller) SetGenre(ctx context.Context, genre string) error {
	c.mu.Lock()
	c.genre = genre
	c.page = 1
	c.mu.Unlock()
	return c.Reload(ctx)
}

// SetRating changes the minimum rating filter and reloads from page 1.
// A rating of 0 clears the filter.
func (c *Controller) SetRating(ctx context.Context, rating int) error {
	c.mu.Lock()
	c.rating = rating
	c.page = 1
	c.mu.Unlock()
	return c.Reload(ctx)
}

// SetSearch changes the free-text search and reloads from page 1.
func (c *Controller) SetSearch(ctx context.Context, search string) error {
	c.mu.Lock()
	c.search = search
	c.page = 1
	c.mu.Unlock()
	return c.Reload(ctx)
}

// SetPage navigates to the given page and reloads. Out-of-range pages
// are rejected without a fetch.
func (c *Controller) SetPage(ctx context.Context, page int) error {
	c.mu.Lock()
	if page < 1 || (c.state == StateReady && page > c.totalPages) {
		c.mu.Unlock()
		return fmt.Errorf("page %d out of range", page)
	}
	c.page = page
	c.mu.Unlock()
	return c.Reload(ctx)
}

// Reload fetches the page matching the current filter state. If the
// state changes again while the fetch is in flight, the stale response
// is discarded.
func (c *Controller) Reload(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.state = StateLoading
	c.lastErr = nil
	query := movieapi.SearchQuery{
		Page:   c.page,
		Search: c.search,
		Rating: c.rating,
	}
	if c.genre != GenreAll {
		query.Genre = c.genre
	}
	c.mu.Unlock()

	result, err := c.client.SearchMovies(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		// A newer mutation superseded this fetch.
		log.Debug("discarding stale listing response", "page", query.Page)
		return nil
	}

	if err != nil {
		c.state = StateFailed
		c.movies = nil
		c.lastErr = err
		return err
	}

	c.movies = result.Movies
	c.totalPages = result.TotalPages
	if c.totalPages < 1 {
		c.totalPages = 1
	}
	c.state = StateReady
	return nil
}

// DeleteMovie deletes the movie on the server and, only once the server
// has acknowledged, removes it from the current in-memory page. The
// order of the remaining rows is unchanged. On failure the page is left
// untouched.
func (c *Controller) DeleteMovie(ctx context.Context, id int) error {
	if err := c.client.DeleteMovie(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	kept := c.movies[:0:0]
	for _, m := range c.movies {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	c.movies = kept
	return nil
}

// Movies returns the current page of results.
func (c *Controller) Movies() []movieapi.Movie {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.movies
}

// Page returns the current 1-based page number.
func (c *Controller) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// TotalPages returns the page count reported by the last fetch.
func (c *Controller) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPages
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Err returns the error of the last failed fetch, if any.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}
