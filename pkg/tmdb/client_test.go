package tmdb_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"movie-review-api/pkg/tmdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*tmdb.Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := tmdb.NewClientWithHTTPClient(server.URL, "test-token", server.Client(), zap.NewNop())
	return client, server
}

func TestFetchMovieDetails(t *testing.T) {
	var gotPath, gotAuth, gotAppend string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotAppend = r.URL.Query().Get("append_to_response")
		w.Write([]byte(`{"id":550,"title":"Fight Club"}`))
	})

	data, err := client.FetchMovieDetails(context.Background(), "550")

	require.NoError(t, err)
	assert.Equal(t, "/movie/550", gotPath)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "credits", gotAppend)
	assert.JSONEq(t, `{"id":550,"title":"Fight Club"}`, string(data))
}

func TestFetchPersonDetails(t *testing.T) {
	var gotPath string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"id":819,"name":"Edward Norton"}`))
	})

	data, err := client.FetchPersonDetails(context.Background(), "819")

	require.NoError(t, err)
	assert.Equal(t, "/person/819", gotPath)
	assert.Contains(t, string(data), "Edward Norton")
}

func TestFetchPopularMovies_Params(t *testing.T) {
	var gotQuery map[string][]string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"results":[]}`))
	})

	_, err := client.FetchPopularMovies(context.Background(), 3, "fr-FR", "FR")

	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, gotQuery["page"])
	assert.Equal(t, []string{"fr-FR"}, gotQuery["language"])
	assert.Equal(t, []string{"FR"}, gotQuery["region"])
}

func TestFetchNowPlayingMovies_Defaults(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"results":[]}`))
	})

	_, err := client.FetchNowPlayingMovies(context.Background(), 0, "", "")

	require.NoError(t, err)
	assert.Equal(t, "/movie/now_playing", gotPath)
	assert.Equal(t, []string{"1"}, gotQuery["page"])
	assert.Equal(t, []string{"en-US"}, gotQuery["language"])
	assert.Equal(t, []string{"US"}, gotQuery["region"])
}

func TestSearchMovies_Cancellation(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.SearchMovies(ctx, "fight club")

	assert.ErrorIs(t, err, context.Canceled)
}

func TestGet_UnexpectedStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status_message":"Invalid API key"}`))
	})

	_, err := client.FetchTopRatedMovies(context.Background(), 1, "en-US", "US")

	assert.ErrorContains(t, err, "unexpected status 401")
}
