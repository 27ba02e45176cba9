package plugins

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBrave(t *testing.T, handler http.HandlerFunc) *BraveSearch {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	b, err := NewBraveSearch("BSAtestkey")
	require.NoError(t, err)
	b.baseURL = srv.URL
	require.NoError(t, b.Initialize(context.Background()))
	return b
}

func TestNewBraveSearch_RequiresKey(t *testing.T) {
	_, err := NewBraveSearch("")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestBraveSearch_ToolDefinitions(t *testing.T) {
	b, err := NewBraveSearch("key")
	require.NoError(t, err)

	tools, err := b.ToolDefinitions()
	require.NoError(t, err)
	require.Len(t, tools, 1)
	assert.Equal(t, "brave_web_search", tools[0].Name)
	assert.Equal(t, []string{"query"}, tools[0].InputSchema.Required)
	assert.True(t, b.HandlesTool("brave_web_search"))
	assert.False(t, b.HandlesTool("read_url"))
}

func TestBraveSearch_HandleCall(t *testing.T) {
	b := newTestBrave(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/web/search", r.URL.Path)
		assert.Equal(t, "BSAtestkey", r.Header.Get("X-Subscription-Token"))
		assert.Equal(t, "golang generics", r.URL.Query().Get("q"))
		assert.Equal(t, "20", r.URL.Query().Get("count"))
		assert.Equal(t, "pw", r.URL.Query().Get("freshness"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"web":{"results":[
			{"title":"Go","url":"https://go.dev","description":"The Go language","age":"2 days ago"},
			{"title":"Tour","url":"https://go.dev/tour","description":"A tour"}
		]}}`))
	})

	res, err := b.HandleCall(context.Background(), "brave_web_search", map[string]interface{}{
		"query":     "golang generics",
		"count":     float64(50),
		"freshness": "pw",
	})
	require.NoError(t, err)

	out := res.(map[string]interface{})
	assert.Equal(t, 2, out["count"])
	results := out["results"].([]map[string]interface{})
	assert.Equal(t, "https://go.dev", results[0]["url"])
	assert.Equal(t, "2 days ago", results[0]["age"])
	_, hasAge := results[1]["age"]
	assert.False(t, hasAge)
}

func TestBraveSearch_HTTPError(t *testing.T) {
	b := newTestBrave(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	_, err := b.HandleCall(context.Background(), "brave_web_search", map[string]interface{}{"query": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 429")
}

func TestBraveSearch_HTTPErrorKeepsValidUTF8(t *testing.T) {
	b := newTestBrave(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, strings.Repeat("é", 300), http.StatusBadGateway)
	})

	_, err := b.HandleCall(context.Background(), "brave_web_search", map[string]interface{}{"query": "x"})
	require.Error(t, err)
	assert.True(t, utf8.ValidString(err.Error()))
	assert.True(t, strings.HasSuffix(err.Error(), "..."))
}

func TestBraveSearch_MissingQuery(t *testing.T) {
	b, err := NewBraveSearch("key")
	require.NoError(t, err)

	_, err = b.HandleCall(context.Background(), "brave_web_search", map[string]interface{}{})
	assert.EqualError(t, err, "query is required")
}
