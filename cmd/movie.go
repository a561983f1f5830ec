package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/flicknest/flicknest/cache"
	"github.com/flicknest/flicknest/movieapi"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(movieCmd)
}

var movieCmd = &cobra.Command{
	Use:   "movie <id>",
	Short: "Show the details of a single movie",
	Args:  cobra.ExactArgs(1),
	Run:   runMovie,
}

func runMovie(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()

	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		log.Fatalf("movie id must be a positive integer, got %q", args[0])
	}

	app := mustApp(ctx, true)
	app.requireSession()

	movie, err := app.movieDetails(ctx, id)
	if err != nil {
		if movieapi.IsNotFound(err) {
			log.Fatalf("no movie with id %d", id)
		}
		fatalOnAPIError(err)
	}

	if movie.Premium && !app.store.CanWatchPremium() {
		fmt.Printf("%s is a premium movie. Upgrade your plan to watch it:\n", movie.Title)
		fmt.Println("  flicknest subscription plans")
		return
	}

	fmt.Printf("%s (%d)\n", movie.Title, movie.ReleaseYear)
	fmt.Printf("  Genre:    %s\n", strings.Join(movie.Genres(), ", "))
	fmt.Printf("  Director: %s\n", movie.Director)
	fmt.Printf("  Rating:   %.1f/10\n", movie.Rating)
	if movie.Duration != nil {
		fmt.Printf("  Duration: %d min\n", *movie.Duration)
	}
	if movie.Description != "" {
		fmt.Printf("\n%s\n", movie.Description)
	}
}

// movieDetails fetches a movie through the details cache when enabled.
func (a *app) movieDetails(ctx context.Context, id int) (*movieapi.Movie, error) {
	if a.cfg.Cache == nil || !a.cfg.Cache.Enabled {
		return a.client.GetMovie(ctx, id)
	}
	shared, err := cache.New(a.cfg.Cache)
	if err != nil {
		return a.client.GetMovie(ctx, id)
	}
	ttl := time.Duration(a.cfg.Cache.TTL) * time.Second
	details := cache.NewPrefixedCache[movieapi.Movie](shared, "movie:", ttl)

	if cached, err := details.Get(ctx, id); err == nil {
		log.Debug("movie details served from cache", "id", id)
		return &cached, nil
	}
	movie, err := a.client.GetMovie(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := details.Set(ctx, id, *movie); err != nil {
		log.Debug("failed to cache movie details", "id", id, "error", err)
	}
	return movie, nil
}
