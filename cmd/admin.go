package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/flicknest/flicknest/listing"
	"github.com/flicknest/flicknest/movieapi"
	"github.com/spf13/cobra"
)

var adminMovieFlags struct {
	Title       string
	Genre       string
	Rating      float64
	ReleaseYear int
	Director    string
	Description string
	Poster      string
	Banner      string
}

func addMovieFormFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&adminMovieFlags.Title, "title", "", "Movie title")
	cmd.Flags().StringVar(&adminMovieFlags.Genre, "genre", "", "Comma separated genres")
	cmd.Flags().Float64Var(&adminMovieFlags.Rating, "rating", 0, "Rating (1-10)")
	cmd.Flags().IntVar(&adminMovieFlags.ReleaseYear, "year", 0, "Release year")
	cmd.Flags().StringVar(&adminMovieFlags.Director, "director", "", "Director")
	cmd.Flags().StringVar(&adminMovieFlags.Description, "description", "", "Description")
	cmd.Flags().StringVar(&adminMovieFlags.Poster, "poster", "", "Path to the poster image")
	cmd.Flags().StringVar(&adminMovieFlags.Banner, "banner", "", "Path to the banner image")
}

func init() {
	addMovieFormFlags(adminAddCmd)
	addMovieFormFlags(adminUpdateCmd)
	adminCmd.AddCommand(adminAddCmd, adminUpdateCmd, adminDeleteCmd)
	rootCmd.AddCommand(adminCmd)
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage the movie catalog (supervisor role required)",
}

// supervisorApp builds the app wiring and warns when the cached role is
// not supervisor. The backend enforces the role either way.
func supervisorApp(cmd *cobra.Command) *app {
	app := mustApp(cmd.Context(), true)
	app.requireSession()
	if !app.store.IsSupervisor() {
		log.Warn("your account does not look like a supervisor account, the backend will likely reject this")
	}
	return app
}

// movieFormFromFlags assembles the multipart form, opening the optional
// image files. The returned closer releases the file handles.
func movieFormFromFlags() (movieapi.MovieForm, func(), error) {
	form := movieapi.MovieForm{
		Title:       adminMovieFlags.Title,
		Genre:       adminMovieFlags.Genre,
		Rating:      adminMovieFlags.Rating,
		ReleaseYear: adminMovieFlags.ReleaseYear,
		Director:    adminMovieFlags.Director,
		Description: adminMovieFlags.Description,
	}

	var files []*os.File
	closeAll := func() {
		for _, f := range files {
			f.Close() //nolint:errcheck,gosec
		}
	}

	for _, img := range []struct {
		path string
		dest **movieapi.FileUpload
	}{
		{adminMovieFlags.Poster, &form.Poster},
		{adminMovieFlags.Banner, &form.Banner},
	} {
		if img.path == "" {
			continue
		}
		f, err := os.Open(img.path)
		if err != nil {
			closeAll()
			return movieapi.MovieForm{}, nil, fmt.Errorf("failed to open image: %w", err)
		}
		files = append(files, f)
		*img.dest = &movieapi.FileUpload{Name: filepath.Base(img.path), Reader: f}
	}

	return form, closeAll, nil
}

var adminAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a movie to the catalog",
	Run:   runAdminAdd,
}

func runAdminAdd(cmd *cobra.Command, _ []string) {
	ctx := cmd.Context()
	app := supervisorApp(cmd)

	form, closeFiles, err := movieFormFromFlags()
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer closeFiles()

	movie, err := app.client.CreateMovie(ctx, form)
	if err != nil {
		fatalOnAPIError(err)
	}
	fmt.Printf("Created movie #%d: %s\n", movie.ID, movie.Title)
}

var adminUpdateCmd = &cobra.Command{
	Use:   "update <movie-id>",
	Short: "Update a movie in the catalog",
	Args:  cobra.ExactArgs(1),
	Run:   runAdminUpdate,
}

func runAdminUpdate(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()

	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		log.Fatalf("movie id must be a positive integer, got %q", args[0])
	}

	app := supervisorApp(cmd)

	form, closeFiles, err := movieFormFromFlags()
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer closeFiles()

	movie, err := app.client.UpdateMovie(ctx, id, form)
	if err != nil {
		fatalOnAPIError(err)
	}
	fmt.Printf("Updated movie #%d: %s\n", movie.ID, movie.Title)
}

var adminDeleteCmd = &cobra.Command{
	Use:   "delete <movie-id>",
	Short: "Delete a movie from the catalog",
	Args:  cobra.ExactArgs(1),
	Run:   runAdminDelete,
}

func runAdminDelete(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()

	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		log.Fatalf("movie id must be a positive integer, got %q", args[0])
	}

	app := supervisorApp(cmd)

	// Delete through the listing controller so the removal semantics
	// match the browse screen: server first, local state after.
	ctrl := listing.New(app.client)
	if err := ctrl.DeleteMovie(ctx, id); err != nil {
		fatalOnAPIError(err)
	}
	fmt.Printf("Deleted movie #%d\n", id)
}
