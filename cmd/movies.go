package cmd

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/flicknest/flicknest/listing"
	"github.com/spf13/cobra"
)

var moviesCmdFlags struct {
	Page   int
	Genre  string
	Rating int
	Search string
	URL    string
}

func init() {
	moviesCmd.Flags().IntVar(&moviesCmdFlags.Page, "page", 0, "Page to show (1-based)")
	moviesCmd.Flags().StringVar(&moviesCmdFlags.Genre, "genre", listing.GenreAll, "Genre filter ("+strings.Join(listing.GenreFilters, ", ")+")")
	moviesCmd.Flags().IntVar(&moviesCmdFlags.Rating, "rating", 0, "Minimum rating filter (1-10, 0 disables)")
	moviesCmd.Flags().StringVar(&moviesCmdFlags.Search, "search", "", "Free text search")
	moviesCmd.Flags().StringVar(&moviesCmdFlags.URL, "url", "", "Query string of a shared browse URL, e.g. \"page=3\"")
	rootCmd.AddCommand(moviesCmd)
}

var moviesCmd = &cobra.Command{
	Use:   "movies",
	Short: "Browse the full movie catalog with filters and pagination",
	Run:   runMovies,
}

func runMovies(cmd *cobra.Command, _ []string) {
	ctx := cmd.Context()
	app := mustApp(ctx, false)

	ctrl := listing.New(app.client)
	ctrl.Seed(moviesCmdFlags.Page, moviesCmdFlags.Genre, moviesCmdFlags.Rating, moviesCmdFlags.Search)
	if moviesCmdFlags.URL != "" {
		values, err := url.ParseQuery(strings.TrimPrefix(moviesCmdFlags.URL, "?"))
		if err != nil {
			fatalOnAPIError(fmt.Errorf("invalid --url value: %w", err))
		}
		ctrl.SeedFromQuery(values)
	}

	if err := ctrl.Reload(ctx); err != nil {
		fatalOnAPIError(err)
	}

	movies := ctrl.Movies()
	if len(movies) == 0 {
		fmt.Println("No movies matched your filters.")
		return
	}

	fmt.Printf("Showing the %s page of %d:\n\n", humanize.Ordinal(ctrl.Page()), ctrl.TotalPages())
	for _, m := range movies {
		marker := ""
		if m.Premium {
			marker = " [premium]"
		}
		fmt.Printf("  #%d %s (%d) %.1f/10, %s%s\n", m.ID, m.Title, m.ReleaseYear, m.Rating, m.Genre, marker)
	}
	fmt.Printf("\nShare this page: flicknest movies --url %q\n", ctrl.Query().Encode())
}
