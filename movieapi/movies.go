package movieapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ccoveille/go-safecast"
)

// Year is a release year that the backend delivers either as a number or
// as a numeric string. It always unmarshals to an integer.
type Year int

// UnmarshalJSON accepts both `2016` and `"2016"`.
func (y *Year) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*y = 0
		return nil
	}
	n, err := json.Number(s).Int64()
	if err != nil {
		// Some records carry the year as a float, e.g. 2016.0.
		f, ferr := json.Number(s).Float64()
		if ferr != nil {
			return fmt.Errorf("invalid release year %q: %w", s, err)
		}
		n = int64(f)
	}
	v, err := safecast.ToInt(n)
	if err != nil {
		return fmt.Errorf("release year out of range: %w", err)
	}
	*y = Year(v)
	return nil
}

// Movie represents a single catalog entry.
type Movie struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Genre       string   `json:"genre"`
	Rating      float64  `json:"rating"`
	ReleaseYear Year     `json:"release_year"`
	Director    string   `json:"director"`
	Description string   `json:"description"`
	PosterURL   string   `json:"poster_url"`
	BannerURL   string   `json:"banner_url"`
	Premium     bool     `json:"premium"`
	Duration    *int     `json:"duration,omitempty"` // minutes
}

// Genres splits the comma separated genre field into its sub-genres.
func (m Movie) Genres() []string {
	if m.Genre == "" {
		return nil
	}
	parts := strings.Split(m.Genre, ",")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if g := strings.TrimSpace(p); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}

// MoviesPage is one page of catalog results.
type MoviesPage struct {
	Movies     []Movie `json:"movies"`
	TotalPages int     `json:"total_pages"`
}

// pageMeta tolerates both pagination metadata spellings the backend uses
// (camelCase on /movies, snake_case on /movies/search).
type pageMeta struct {
	TotalPages      int `json:"totalPages"`
	TotalPagesSnake int `json:"total_pages"`
}

func (m pageMeta) pages() int {
	if m.TotalPages > 0 {
		return m.TotalPages
	}
	return m.TotalPagesSnake
}

type moviesResponse struct {
	Movies []Movie  `json:"movies"`
	Meta   pageMeta `json:"meta"`
}

// ListMovies retrieves one page of the unfiltered catalog. No auth required.
func (c *Client) ListMovies(ctx context.Context, page int) (*MoviesPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))

	var resp moviesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/movies", query, nil, &resp); err != nil {
		return nil, err
	}
	return &MoviesPage{Movies: resp.Movies, TotalPages: resp.Meta.pages()}, nil
}

// SearchQuery holds the filters for a catalog search.
type SearchQuery struct {
	Page   int
	Genre  string // empty means unfiltered
	Search string
	Rating int // minimum rating, 0 means unset
}

// SearchMovies retrieves one page of filtered catalog results. No auth
// required. Unlike the original web client, failures are reported as
// errors instead of being folded into an empty result.
func (c *Client) SearchMovies(ctx context.Context, q SearchQuery) (*MoviesPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(q.Page))
	query.Set("genre", q.Genre)
	query.Set("search", q.Search)
	if q.Rating > 0 {
		query.Set("rating", strconv.Itoa(q.Rating))
	} else {
		query.Set("rating", "")
	}

	var resp moviesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/movies/search", query, nil, &resp); err != nil {
		return nil, err
	}
	// A malformed or empty body is zero movies, not a failure.
	if resp.Movies == nil {
		return &MoviesPage{Movies: []Movie{}, TotalPages: 1}, nil
	}
	pages := resp.Meta.pages()
	if pages < 1 {
		pages = 1
	}
	return &MoviesPage{Movies: resp.Movies, TotalPages: pages}, nil
}

// GetMovie retrieves the details of a single movie. Requires a token.
func (c *Client) GetMovie(ctx context.Context, id int) (*Movie, error) {
	var movie Movie
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/movies/%d", id), nil, nil, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// FileUpload is a named file attached to a multipart form.
type FileUpload struct {
	Name   string
	Reader io.Reader
}

// MovieForm holds the fields for creating or updating a movie.
// Poster and Banner are optional on update.
type MovieForm struct {
	Title       string
	Genre       string
	Rating      float64
	ReleaseYear int
	Director    string
	Description string
	Poster      *FileUpload
	Banner      *FileUpload
}

// Validate checks the required fields the way the admin form does.
func (f MovieForm) Validate() error {
	switch {
	case strings.TrimSpace(f.Title) == "":
		return &Error{Kind: KindValidation, Message: "title is required"}
	case strings.TrimSpace(f.Genre) == "":
		return &Error{Kind: KindValidation, Message: "genre is required"}
	case f.Rating < 1 || f.Rating > 10:
		return &Error{Kind: KindValidation, Message: "rating must be between 1 and 10"}
	case f.ReleaseYear <= 0:
		return &Error{Kind: KindValidation, Message: "release year is required"}
	case strings.TrimSpace(f.Director) == "":
		return &Error{Kind: KindValidation, Message: "director is required"}
	case strings.TrimSpace(f.Description) == "":
		return &Error{Kind: KindValidation, Message: "description is required"}
	}
	return nil
}

// encode writes the form as a multipart body.
func (f MovieForm) encode() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := map[string]string{
		"title":        f.Title,
		"genre":        f.Genre,
		"rating":       strconv.FormatFloat(f.Rating, 'f', -1, 64),
		"release_year": strconv.Itoa(f.ReleaseYear),
		"director":     f.Director,
		"description":  f.Description,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	files := map[string]*FileUpload{"poster": f.Poster, "banner": f.Banner}
	for name, file := range files {
		if file == nil {
			continue
		}
		part, err := w.CreateFormFile(name, file.Name)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form file %s: %w", name, err)
		}
		if _, err := io.Copy(part, file.Reader); err != nil {
			return nil, "", fmt.Errorf("failed to write form file %s: %w", name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}

// CreateMovie creates a new catalog entry. Requires a supervisor token.
func (c *Client) CreateMovie(ctx context.Context, form MovieForm) (*Movie, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	body, contentType, err := form.encode()
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/movies", nil, body, contentType)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	var movie Movie
	if err := json.NewDecoder(resp.Body).Decode(&movie); err != nil {
		return nil, &Error{Kind: KindServer, Message: "failed to decode response", Err: err}
	}
	return &movie, nil
}

// UpdateMovie updates an existing catalog entry. Requires a supervisor token.
func (c *Client) UpdateMovie(ctx context.Context, id int, form MovieForm) (*Movie, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	body, contentType, err := form.encode()
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("/movies/%d", id), nil, body, contentType)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	var movie Movie
	if err := json.NewDecoder(resp.Body).Decode(&movie); err != nil {
		return nil, &Error{Kind: KindServer, Message: "failed to decode response", Err: err}
	}
	return &movie, nil
}

// DeleteMovie deletes a catalog entry. Requires a supervisor token.
func (c *Client) DeleteMovie(ctx context.Context, id int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/movies/%d", id), nil, nil, nil)
}
