package movieapi

import (
	"context"
	"net/http"
)

type toggleWatchlistRequest struct {
	MovieID int `json:"movie_id"`
}

// ToggleWatchlist adds the movie to the watchlist, or removes it when it
// is already present. Requires a token.
func (c *Client) ToggleWatchlist(ctx context.Context, movieID int) error {
	return c.doJSON(ctx, http.MethodPost, "/movies/toggle_watchlist", nil, toggleWatchlistRequest{MovieID: movieID}, nil)
}

type watchlistResponse struct {
	Movies []Movie `json:"movies"`
}

// Watchlist retrieves the authenticated user's watchlist.
func (c *Client) Watchlist(ctx context.Context) ([]Movie, error) {
	var resp watchlistResponse
	if err := c.doJSON(ctx, http.MethodGet, "/movies/watchlist", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Movies, nil
}
