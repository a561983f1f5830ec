package catalog

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/flicknest/flicknest/cache"
	"github.com/flicknest/flicknest/movieapi"
)

// CachedLister decorates a Lister with a page cache so repeated
// aggregation passes don't hammer the backend.
type CachedLister struct {
	lister Lister
	pages  *cache.PrefixedCache[movieapi.MoviesPage]
}

// NewCachedLister creates a caching decorator around lister.
func NewCachedLister(lister Lister, pages *cache.PrefixedCache[movieapi.MoviesPage]) *CachedLister {
	return &CachedLister{lister: lister, pages: pages}
}

// ListMovies returns the cached page when present, otherwise fetches it
// from the backend and stores it. Cache failures fall through to the
// backend; they never fail the aggregation.
func (c *CachedLister) ListMovies(ctx context.Context, page int) (*movieapi.MoviesPage, error) {
	if cached, err := c.pages.Get(ctx, page); err == nil {
		log.Debug("catalog page served from cache", "page", page)
		return &cached, nil
	}

	result, err := c.lister.ListMovies(ctx, page)
	if err != nil {
		return nil, err
	}
	if err := c.pages.Set(ctx, page, *result); err != nil {
		log.Debug("failed to cache catalog page", "page", page, "error", err)
	}
	return result, nil
}
