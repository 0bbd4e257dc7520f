package newsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CowsayNews/internal/config"
	"CowsayNews/internal/pacing"
)

type countingPacer struct {
	calls atomic.Int32
}

func (p *countingPacer) Pace(context.Context) {
	p.calls.Add(1)
}

func newTestClient(serverURL string, pacer *countingPacer) *Client {
	return NewClient(config.NewsConfig{
		BaseURL:     serverURL,
		Country:     "us",
		PageSize:    20,
		MaxAttempts: 3,
		APIKey:      "test-key",
	}, pacer, nil, nil)
}

const okBody = `{
	"status": "ok",
	"articles": [
		{"title": "Budget passes", "url": "https://bugle.test/1", "source": {"name": "Bugle"}},
		{"title": "Probe launches", "url": "https://wire.test/2", "source": {"name": "Wire"}}
	]
}`

func TestFetchReturnsRecords(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/top-headlines", r.URL.Path)
		assert.Equal(t, "us", r.URL.Query().Get("country"))
		assert.Equal(t, "20", r.URL.Query().Get("pageSize"))
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))
		_, _ = w.Write([]byte(okBody))
	}))
	defer server.Close()

	client := newTestClient(server.URL, &countingPacer{})
	records, err := client.Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Budget passes", records[0].Title)
	assert.Equal(t, "Bugle", records[0].Source)
	assert.Equal(t, "https://wire.test/2", records[1].URL)
}

func TestFetchRetriesTransientFailures(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) <= 2 {
			// Unparseable payload simulates a transport-level failure.
			_, _ = w.Write([]byte("<html>bad gateway</html>"))
			return
		}
		_, _ = w.Write([]byte(okBody))
	}))
	defer server.Close()

	pacer := &countingPacer{}
	client := newTestClient(server.URL, pacer)
	records, err := client.Fetch(context.Background())

	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, int32(3), attempts.Load(), "exactly three attempts")
	assert.Equal(t, int32(2), pacer.calls.Load(), "two intervening delays")
}

func TestFetchExhaustsRetries(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		_, _ = w.Write([]byte("still broken"))
	}))
	defer server.Close()

	client := newTestClient(server.URL, &countingPacer{})
	_, err := client.Fetch(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, int32(3), attempts.Load())
}

func TestFetchErrorStatusFailsImmediately(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":"error","code":"apiKeyInvalid","message":"Your API key is invalid"}`))
	}))
	defer server.Close()

	pacer := &countingPacer{}
	client := newTestClient(server.URL, pacer)
	_, err := client.Fetch(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "apiKeyInvalid")
	assert.Equal(t, int32(1), attempts.Load(), "a non-ok status is a configuration error, not an outage")
	assert.Zero(t, pacer.calls.Load())
}

func TestFetchConnectionErrorIsRetryable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse all connections

	client := NewClient(config.NewsConfig{
		BaseURL:     server.URL,
		Country:     "us",
		PageSize:    5,
		MaxAttempts: 2,
		APIKey:      "k",
	}, pacing.None(), nil, nil)

	_, err := client.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
}
