package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func init() {
	wishlistCmd.AddCommand(wishlistListCmd, wishlistToggleCmd)
	rootCmd.AddCommand(wishlistCmd)
}

var wishlistCmd = &cobra.Command{
	Use:   "wishlist",
	Short: "Manage your wishlist",
}

var wishlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the movies on your wishlist",
	Run:   runWishlistList,
}

func runWishlistList(cmd *cobra.Command, _ []string) {
	ctx := cmd.Context()
	app := mustApp(ctx, true)
	app.requireSession()

	movies, err := app.client.Watchlist(ctx)
	if err != nil {
		fatalOnAPIError(err)
	}
	if len(movies) == 0 {
		fmt.Println("Your wishlist is empty.")
		return
	}
	for _, m := range movies {
		fmt.Printf("  #%d %s (%d) %.1f/10\n", m.ID, m.Title, m.ReleaseYear, m.Rating)
	}
}

var wishlistToggleCmd = &cobra.Command{
	Use:   "toggle <movie-id>",
	Short: "Add a movie to your wishlist, or remove it when already present",
	Args:  cobra.ExactArgs(1),
	Run:   runWishlistToggle,
}

func runWishlistToggle(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()

	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		log.Fatalf("movie id must be a positive integer, got %q", args[0])
	}

	app := mustApp(ctx, true)
	app.requireSession()

	if err := app.client.ToggleWatchlist(ctx, id); err != nil {
		fatalOnAPIError(err)
	}
	fmt.Println("Wishlist updated.")
}
