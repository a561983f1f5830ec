package cmd

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/flicknest/flicknest/cache"
	"github.com/flicknest/flicknest/catalog"
	"github.com/flicknest/flicknest/movieapi"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(homeCmd)
}

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show the home screen: hero banner, top rated and latest movies",
	Run:   runHome,
}

func runHome(cmd *cobra.Command, _ []string) {
	ctx := cmd.Context()
	app := mustApp(ctx, true)

	agg, err := catalog.Build(ctx, app.catalogSource())
	if err != nil {
		// Never render a truncated aggregate as if it were complete.
		fatalOnAPIError(fmt.Errorf("content unavailable: %w", err))
	}

	if len(agg.Movies) == 0 {
		fmt.Println("No movies available.")
		return
	}

	hero := agg.Movies[0]
	fmt.Printf("Now showing: %s (%d), %.1f/10\n", hero.Title, hero.ReleaseYear, hero.Rating)
	if hero.Description != "" {
		fmt.Printf("  %s\n", hero.Description)
	}

	printStrip("Top Rated", agg.TopRated)
	printStrip("Latest Released", agg.Latest)
}

// printStrip renders one carousel strip as a list.
func printStrip(title string, movies []movieapi.Movie) {
	fmt.Printf("\n%s\n", title)
	if len(movies) == 0 {
		fmt.Printf("  No movies found for %s.\n", title)
		return
	}
	for i, m := range movies {
		marker := ""
		if m.Premium {
			marker = " [premium]"
		}
		fmt.Printf("  %2d. %s (%d) %.1f/10%s\n", i+1, m.Title, m.ReleaseYear, m.Rating, marker)
	}
}

// catalogSource returns the catalog page source, wrapped in the
// configured cache when enabled.
func (a *app) catalogSource() catalog.Lister {
	if a.cfg.Cache == nil || !a.cfg.Cache.Enabled {
		return a.client
	}
	shared, err := cache.New(a.cfg.Cache)
	if err != nil {
		log.Warn("cache disabled", "error", err)
		return a.client
	}
	ttl := time.Duration(a.cfg.Cache.TTL) * time.Second
	pages := cache.NewPrefixedCache[movieapi.MoviesPage](shared, "movies:page:", ttl)
	return catalog.NewCachedLister(a.client, pages)
}
