// Package catalog assembles the working set of movies behind the home
// screen and derives its "top rated" and "latest released" strips.
package catalog

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/flicknest/flicknest/movieapi"
	"github.com/samber/lo"
)

const (
	// targetSize is how many movies the aggregation loop collects before
	// it stops fetching further pages.
	targetSize = 20
	// projectionCap is the maximum length of each derived strip.
	projectionCap = 10
	// topRatedMin is the minimum rating for the "top rated" strip.
	topRatedMin = 8
	// latestMinYear is the minimum release year for the "latest" strip.
	latestMinYear = 2016
)

// Lister fetches one page of the unfiltered catalog.
type Lister interface {
	ListMovies(ctx context.Context, page int) (*movieapi.MoviesPage, error)
}

// Aggregate is the assembled working set plus its two projections.
type Aggregate struct {
	Movies   []movieapi.Movie
	TopRated []movieapi.Movie
	Latest   []movieapi.Movie
}

// Build fetches successive catalog pages, in increasing order and one at
// a time, until either targetSize movies are collected or the backend
// reports no further pages. Pages are never fetched twice and never
// beyond the reported page count. Any page failure aborts the pass; a
// truncated aggregate is never returned as if it were complete.
func Build(ctx context.Context, lister Lister) (*Aggregate, error) {
	var collected []movieapi.Movie
	page := 1
	totalPages := math.MaxInt // unknown until the first response

	for len(collected) < targetSize && page <= totalPages {
		result, err := lister.ListMovies(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch catalog page %d: %w", page, err)
		}
		collected = append(collected, result.Movies...)
		totalPages = result.TotalPages
		log.Debug("collected catalog page", "page", page, "totalPages", totalPages, "collected", len(collected))
		page++
	}

	return &Aggregate{
		Movies:   collected,
		TopRated: topRated(collected),
		Latest:   latest(collected),
	}, nil
}

// topRated returns the movies rated topRatedMin or better, best first,
// capped at projectionCap.
func topRated(movies []movieapi.Movie) []movieapi.Movie {
	rated := lo.Filter(movies, func(m movieapi.Movie, _ int) bool {
		return m.Rating >= topRatedMin
	})
	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].Rating > rated[j].Rating
	})
	return lo.Slice(rated, 0, projectionCap)
}

// latest returns the movies released in latestMinYear or later, newest
// first, capped at projectionCap.
func latest(movies []movieapi.Movie) []movieapi.Movie {
	recent := lo.Filter(movies, func(m movieapi.Movie, _ int) bool {
		return int(m.ReleaseYear) >= latestMinYear
	})
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].ReleaseYear > recent[j].ReleaseYear
	})
	return lo.Slice(recent, 0, projectionCap)
}
