package dummy

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchbench/internal/catalog"
	"searchbench/internal/search"
)

func TestStubSearchEndpoint(t *testing.T) {
	srv := httptest.NewServer(Handler(ServerConfig{
		MinLatency: time.Millisecond,
		MaxLatency: 2 * time.Millisecond,
	}))
	defer srv.Close()

	c := search.NewESClient(srv.URL, "reviews", 5*time.Second)
	out := c.Execute(context.Background(), catalog.Template{
		Name:           "q.json",
		Query:          json.RawMessage(`{"match_all": {}}`),
		TrackTotalHits: true,
	})

	require.Nil(t, out.Err)
	require.NotNil(t, out.TookMs)
	require.NotNil(t, out.TotalHits)
	assert.GreaterOrEqual(t, *out.TotalHits, int64(0))

	require.NoError(t, c.ClearCache(context.Background()))
	require.NoError(t, c.Ping(context.Background()))
}

func TestStubFailureInjection(t *testing.T) {
	srv := httptest.NewServer(Handler(ServerConfig{
		MinLatency: time.Microsecond,
		MaxLatency: time.Microsecond,
		FailRate:   1.0,
	}))
	defer srv.Close()

	c := search.NewESClient(srv.URL, "reviews", 5*time.Second)
	out := c.Execute(context.Background(), catalog.Template{Name: "q.json", TrackTotalHits: true})

	require.NotNil(t, out.Err)
	assert.Equal(t, search.KindServer, out.Err.Kind)
}
