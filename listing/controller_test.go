package listing

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/flicknest/flicknest/movieapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSearcher answers searches from a function so tests can script
// per-call behavior, including re-entrant mutations.
type fakeSearcher struct {
	search  func(q movieapi.SearchQuery) (*movieapi.MoviesPage, error)
	queries []movieapi.SearchQuery
	deleted []int
	delErr  error
}

func (f *fakeSearcher) SearchMovies(_ context.Context, q movieapi.SearchQuery) (*movieapi.MoviesPage, error) {
	f.queries = append(f.queries, q)
	return f.search(q)
}

func (f *fakeSearcher) DeleteMovie(_ context.Context, id int) error {
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func pageOf(titles ...string) *movieapi.MoviesPage {
	movies := make([]movieapi.Movie, len(titles))
	for i, title := range titles {
		movies[i] = movieapi.Movie{ID: i + 1, Title: title}
	}
	return &movieapi.MoviesPage{Movies: movies, TotalPages: 3}
}

func TestController_Reload(t *testing.T) {
	searcher := &fakeSearcher{search: func(movieapi.SearchQuery) (*movieapi.MoviesPage, error) {
		return pageOf("Dune", "Heat"), nil
	}}
	ctrl := New(searcher)

	require.NoError(t, ctrl.Reload(context.Background()))
	assert.Equal(t, StateReady, ctrl.State())
	assert.Len(t, ctrl.Movies(), 2)
	assert.Equal(t, 3, ctrl.TotalPages())

	// The unfiltered genre is not forwarded to the backend.
	require.Len(t, searcher.queries, 1)
	assert.Empty(t, searcher.queries[0].Genre)
	assert.Equal(t, 1, searcher.queries[0].Page)
}

func TestController_FilterChangeResetsPage(t *testing.T) {
	searcher := &fakeSearcher{search: func(movieapi.SearchQuery) (*movieapi.MoviesPage, error) {
		return pageOf("Dune"), nil
	}}
	ctrl := New(searcher)

	require.NoError(t, ctrl.SetPage(context.Background(), 3))
	assert.Equal(t, 3, ctrl.Page())

	tests := []struct {
		name   string
		mutate func() error
		check  func(q movieapi.SearchQuery)
	}{
		{
			name:   "genre",
			mutate: func() error { return ctrl.SetGenre(context.Background(), "Action") },
			check:  func(q movieapi.SearchQuery) { assert.Equal(t, "Action", q.Genre) },
		},
		{
			name:   "rating",
			mutate: func() error { return ctrl.SetRating(context.Background(), 7) },
			check:  func(q movieapi.SearchQuery) { assert.Equal(t, 7, q.Rating) },
		},
		{
			name:   "search",
			mutate: func() error { return ctrl.SetSearch(context.Background(), "max") },
			check:  func(q movieapi.SearchQuery) { assert.Equal(t, "max", q.Search) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, ctrl.SetPage(context.Background(), 3))
			require.NoError(t, tt.mutate())
			assert.Equal(t, 1, ctrl.Page())
			last := searcher.queries[len(searcher.queries)-1]
			assert.Equal(t, 1, last.Page)
			tt.check(last)
		})
	}
}

func TestController_SetPageRejectsOutOfRange(t *testing.T) {
	searcher := &fakeSearcher{search: func(movieapi.SearchQuery) (*movieapi.MoviesPage, error) {
		return pageOf("Dune"), nil
	}}
	ctrl := New(searcher)
	require.NoError(t, ctrl.Reload(context.Background()))
	fetches := len(searcher.queries)

	require.Error(t, ctrl.SetPage(context.Background(), 0))
	require.Error(t, ctrl.SetPage(context.Background(), 4))
	assert.Equal(t, 1, ctrl.Page())
	assert.Len(t, searcher.queries, fetches)
}

func TestController_ReloadFailure(t *testing.T) {
	searcher := &fakeSearcher{search: func(movieapi.SearchQuery) (*movieapi.MoviesPage, error) {
		return nil, errors.New("backend down")
	}}
	ctrl := New(searcher)

	require.Error(t, ctrl.Reload(context.Background()))
	assert.Equal(t, StateFailed, ctrl.State())
	assert.Empty(t, ctrl.Movies())
	require.Error(t, ctrl.Err())
}

func TestController_StaleResponseDiscarded(t *testing.T) {
	var ctrl *Controller
	calls := 0
	searcher := &fakeSearcher{}
	searcher.search = func(q movieapi.SearchQuery) (*movieapi.MoviesPage, error) {
		calls++
		if calls == 1 {
			// A newer mutation arrives while the first fetch is in
			// flight. Its response must win over ours.
			require.NoError(t, ctrl.SetSearch(context.Background(), "newer"))
			return pageOf("Stale"), nil
		}
		return pageOf("Fresh"), nil
	}
	ctrl = New(searcher)

	require.NoError(t, ctrl.Reload(context.Background()))

	require.Len(t, ctrl.Movies(), 1)
	assert.Equal(t, "Fresh", ctrl.Movies()[0].Title)
	assert.Equal(t, StateReady, ctrl.State())
	assert.Equal(t, 2, calls)
}

func TestController_QueryRoundTrip(t *testing.T) {
	searcher := &fakeSearcher{search: func(movieapi.SearchQuery) (*movieapi.MoviesPage, error) {
		return pageOf("Dune"), nil
	}}
	ctrl := New(searcher)
	require.NoError(t, ctrl.SetPage(context.Background(), 3))

	shared := ctrl.Query().Encode()
	assert.Equal(t, "page=3", shared)

	values, err := url.ParseQuery(shared)
	require.NoError(t, err)

	restored := New(searcher)
	restored.SeedFromQuery(values)
	assert.Equal(t, 3, restored.Page())
}

func TestController_SeedFromQueryDefaults(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"missing", "", 1},
		{"unparsable", "page=next", 1},
		{"below one", "page=0", 1},
		{"negative", "page=-2", 1},
		{"valid", "page=5", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			ctrl := New(&fakeSearcher{})
			ctrl.SeedFromQuery(values)
			assert.Equal(t, tt.want, ctrl.Page())
		})
	}
}

func TestController_DeleteMovie(t *testing.T) {
	searcher := &fakeSearcher{search: func(movieapi.SearchQuery) (*movieapi.MoviesPage, error) {
		return pageOf("Dune", "Heat", "Up"), nil
	}}
	ctrl := New(searcher)
	require.NoError(t, ctrl.Reload(context.Background()))

	require.NoError(t, ctrl.DeleteMovie(context.Background(), 2))
	assert.Equal(t, []int{2}, searcher.deleted)

	movies := ctrl.Movies()
	require.Len(t, movies, 2)
	assert.Equal(t, "Dune", movies[0].Title)
	assert.Equal(t, "Up", movies[1].Title)
}

func TestController_DeleteMovieServerFailureKeepsPage(t *testing.T) {
	searcher := &fakeSearcher{
		search: func(movieapi.SearchQuery) (*movieapi.MoviesPage, error) {
			return pageOf("Dune", "Heat"), nil
		},
		delErr: errors.New("forbidden"),
	}
	ctrl := New(searcher)
	require.NoError(t, ctrl.Reload(context.Background()))

	require.Error(t, ctrl.DeleteMovie(context.Background(), 1))
	assert.Len(t, ctrl.Movies(), 2)
}

func TestGenreFilters(t *testing.T) {
	assert.Equal(t, GenreAll, GenreFilters[0])
	assert.Len(t, GenreFilters, 8)
}
