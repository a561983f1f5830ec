package movieapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flicknest/flicknest/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func testClient(t *testing.T, token string, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	var tokens TokenSource
	if token != "" {
		tokens = staticToken(token)
	}
	return New(&config.APIConfig{URL: server.URL, Timeout: 5}, tokens)
}

func TestClient_ListMovies(t *testing.T) {
	client := testClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/movies", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Empty(t, r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"movies": []map[string]any{
				{"id": 1, "title": "Dune", "rating": 8.4, "release_year": 2021},
				{"id": 2, "title": "Heat", "rating": 8.3, "release_year": "1995"},
			},
			"meta": map[string]any{"totalPages": 7},
		})
	})

	page, err := client.ListMovies(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 7, page.TotalPages)
	require.Len(t, page.Movies, 2)
	assert.Equal(t, "Dune", page.Movies[0].Title)
	// release_year arrives as number or numeric string, both normalize
	assert.Equal(t, Year(2021), page.Movies[0].ReleaseYear)
	assert.Equal(t, Year(1995), page.Movies[1].ReleaseYear)
}

func TestClient_ListMovies_serverError(t *testing.T) {
	client := testClient(t, "", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "boom"})
	})

	_, err := client.ListMovies(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, IsServer(err))
	assert.Contains(t, err.Error(), "boom")
}

func TestClient_ListMovies_networkError(t *testing.T) {
	client := New(&config.APIConfig{URL: "http://127.0.0.1:1", Timeout: 1}, nil)

	_, err := client.ListMovies(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, IsNetwork(err))
}

func TestClient_SearchMovies(t *testing.T) {
	tests := []struct {
		name       string
		query      SearchQuery
		response   func(w http.ResponseWriter, r *http.Request)
		wantErr    bool
		wantLen    int
		wantPages  int
	}{
		{
			name:  "filters forwarded, snake case meta",
			query: SearchQuery{Page: 3, Genre: "Action", Search: "max", Rating: 7},
			response: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/movies/search", r.URL.Path)
				assert.Equal(t, "3", r.URL.Query().Get("page"))
				assert.Equal(t, "Action", r.URL.Query().Get("genre"))
				assert.Equal(t, "max", r.URL.Query().Get("search"))
				assert.Equal(t, "7", r.URL.Query().Get("rating"))
				_ = json.NewEncoder(w).Encode(map[string]any{
					"movies": []map[string]any{{"id": 9, "title": "Mad Max"}},
					"meta":   map[string]any{"total_pages": 4},
				})
			},
			wantLen:   1,
			wantPages: 4,
		},
		{
			name:  "malformed body is zero movies, not a failure",
			query: SearchQuery{Page: 1},
			response: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{}`))
			},
			wantLen:   0,
			wantPages: 1,
		},
		{
			name:  "transport-visible failure is an error, not an empty result",
			query: SearchQuery{Page: 1},
			response: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testClient(t, "", tt.response)
			page, err := client.SearchMovies(context.Background(), tt.query)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, page.Movies, tt.wantLen)
			assert.Equal(t, tt.wantPages, page.TotalPages)
		})
	}
}

func TestClient_GetMovie(t *testing.T) {
	client := testClient(t, "secret-token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movies/42", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 42, "title": "Blade Runner", "premium": true, "genre": "Sci-Fi, Thriller",
		})
	})

	movie, err := client.GetMovie(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Blade Runner", movie.Title)
	assert.True(t, movie.Premium)
	assert.Equal(t, []string{"Sci-Fi", "Thriller"}, movie.Genres())
}

func TestClient_GetMovie_errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{"missing token", http.StatusUnauthorized, IsAuth},
		{"forbidden", http.StatusForbidden, IsAuth},
		{"unknown id", http.StatusNotFound, IsNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := testClient(t, "", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			})
			_, err := client.GetMovie(context.Background(), 1)
			require.Error(t, err)
			assert.True(t, tt.check(err))
		})
	}
}

func TestClient_DeleteMovie(t *testing.T) {
	var deleted string
	client := testClient(t, "secret-token", func(w http.ResponseWriter, r *http.Request) {
		deleted = r.Method + " " + r.URL.Path
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	})

	require.NoError(t, client.DeleteMovie(context.Background(), 5))
	assert.Equal(t, "DELETE /movies/5", deleted)
}

func TestClient_CreateMovie(t *testing.T) {
	client := testClient(t, "secret-token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Inception", r.FormValue("title"))
		assert.Equal(t, "8.8", r.FormValue("rating"))
		assert.Equal(t, "2010", r.FormValue("release_year"))

		_, header, err := r.FormFile("poster")
		require.NoError(t, err)
		assert.Equal(t, "poster.jpg", header.Filename)

		_ = json.NewEncoder(w).Encode(map[string]any{"id": 77, "title": "Inception"})
	})

	form := MovieForm{
		Title:       "Inception",
		Genre:       "Sci-Fi",
		Rating:      8.8,
		ReleaseYear: 2010,
		Director:    "Christopher Nolan",
		Description: "A thief who steals corporate secrets.",
		Poster:      &FileUpload{Name: "poster.jpg", Reader: bytes.NewReader([]byte("img"))},
	}
	movie, err := client.CreateMovie(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, 77, movie.ID)
}

func TestMovieForm_Validate(t *testing.T) {
	valid := MovieForm{
		Title:       "Up",
		Genre:       "Animation",
		Rating:      8.2,
		ReleaseYear: 2009,
		Director:    "Pete Docter",
		Description: "A house flies.",
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*MovieForm)
	}{
		{"missing title", func(f *MovieForm) { f.Title = " " }},
		{"missing genre", func(f *MovieForm) { f.Genre = "" }},
		{"rating too low", func(f *MovieForm) { f.Rating = 0 }},
		{"rating too high", func(f *MovieForm) { f.Rating = 11 }},
		{"missing year", func(f *MovieForm) { f.ReleaseYear = 0 }},
		{"missing director", func(f *MovieForm) { f.Director = "" }},
		{"missing description", func(f *MovieForm) { f.Description = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := valid
			tt.mutate(&form)
			err := form.Validate()
			require.Error(t, err)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestYear_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Year
		wantErr bool
	}{
		{"number", `2016`, 2016, false},
		{"numeric string", `"1999"`, 1999, false},
		{"float", `2016.0`, 2016, false},
		{"null", `null`, 0, false},
		{"empty string", `""`, 0, false},
		{"garbage", `"soon"`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var y Year
			err := json.Unmarshal([]byte(tt.input), &y)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, y)
		})
	}
}
