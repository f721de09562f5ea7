package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchbench/internal/catalog"
)

func matchAllTemplate() catalog.Template {
	return catalog.Template{
		Name:           "q.json",
		Query:          json.RawMessage(`{"match_all": {}}`),
		TrackTotalHits: true,
	}
}

func TestExecuteSuccess(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"took": 12, "hits": {"total": {"value": 345, "relation": "eq"}, "hits": []}}`))
	}))
	defer srv.Close()

	c := NewESClient(srv.URL, "reviews", 5*time.Second)
	out := c.Execute(context.Background(), matchAllTemplate())

	require.Nil(t, out.Err)
	require.NotNil(t, out.TookMs)
	assert.Equal(t, 12.0, *out.TookMs)
	require.NotNil(t, out.TotalHits)
	assert.Equal(t, int64(345), *out.TotalHits)

	assert.Equal(t, "/reviews/_search", gotPath)
	assert.Contains(t, gotBody, "query")
	assert.Equal(t, true, gotBody["track_total_hits"])
}

func TestExecuteLegacyTotalHits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"took": 3, "hits": {"total": 77}}`))
	}))
	defer srv.Close()

	c := NewESClient(srv.URL, "reviews", 5*time.Second)
	out := c.Execute(context.Background(), matchAllTemplate())

	require.Nil(t, out.Err)
	require.NotNil(t, out.TotalHits)
	assert.Equal(t, int64(77), *out.TotalHits)
}

func TestExecuteClassifiesHTTPErrors(t *testing.T) {
	tests := []struct {
		status int
		kind   string
	}{
		{http.StatusBadRequest, KindRequest},
		{http.StatusInternalServerError, KindServer},
	}
	for _, tc := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			w.Write([]byte(`{"error": "boom"}`))
		}))
		c := NewESClient(srv.URL, "reviews", 5*time.Second)
		out := c.Execute(context.Background(), matchAllTemplate())
		srv.Close()

		require.NotNil(t, out.Err, "status %d", tc.status)
		assert.Equal(t, tc.kind, out.Err.Kind)
		assert.Nil(t, out.TookMs)
	}
}

func TestExecuteConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections

	c := NewESClient(srv.URL, "reviews", time.Second)
	out := c.Execute(context.Background(), matchAllTemplate())

	require.NotNil(t, out.Err)
	assert.Equal(t, KindConnection, out.Err.Kind)
	assert.Contains(t, out.Err.Error(), KindConnection)
}

func TestExecuteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewESClient(srv.URL, "reviews", 30*time.Millisecond)
	out := c.Execute(context.Background(), matchAllTemplate())

	require.NotNil(t, out.Err)
	assert.Equal(t, KindTimeout, out.Err.Kind)
}

func TestClearCache(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewESClient(srv.URL, "reviews", 5*time.Second)
	require.NoError(t, c.ClearCache(context.Background()))
	assert.Equal(t, "/reviews/_cache/clear", gotPath)
}

func TestClearCacheFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewESClient(srv.URL, "reviews", 5*time.Second)
	assert.Error(t, c.ClearCache(context.Background()))
}

func TestSearchRaw(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"took": 1, "hits": {"total": {"value": 2}, "hits": [{"_id": "a"}]}}`))
	}))
	defer srv.Close()

	c := NewESClient(srv.URL, "reviews", 5*time.Second)
	body, err := c.SearchRaw(context.Background(), matchAllTemplate())
	require.NoError(t, err)
	assert.Contains(t, string(body), `"_id"`)
}
