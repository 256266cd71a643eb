package suggest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(HTTPClientConfig{
		BaseURL: server.URL,
		Logger:  zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	return client
}

func TestNewHTTPClient(t *testing.T) {
	t.Run("requires an endpoint", func(t *testing.T) {
		_, err := NewHTTPClient(HTTPClientConfig{})
		assert.ErrorIs(t, err, ErrNoEndpoint)
	})

	t.Run("rejects a relative endpoint", func(t *testing.T) {
		_, err := NewHTTPClient(HTTPClientConfig{BaseURL: "localhost"})
		assert.Error(t, err)
	})

	t.Run("keeps a path prefix", func(t *testing.T) {
		c, err := NewHTTPClient(HTTPClientConfig{BaseURL: "http://example.com/index/"})
		require.NoError(t, err)
		assert.Equal(t, "http://example.com/index/autocomplete?q=ba", c.URL("ba"))
	})
}

func TestURLEncodesQuery(t *testing.T) {
	c, err := NewHTTPClient(HTTPClientConfig{BaseURL: "http://example.com"})
	require.NoError(t, err)

	assert.Equal(t, "http://example.com/autocomplete?q=a%26b%3Dc", c.URL("a&b=c"))
}

func TestFetch(t *testing.T) {
	var gotPath, gotQuery, gotRequestID string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		gotRequestID = r.Header.Get(RequestIDHeader)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[["city","Paris","paris"],["tag","big sky","big_sky"]]`))
	})

	suggestions, err := client.Fetch(context.Background(), "pa")
	require.NoError(t, err)

	assert.Equal(t, "/autocomplete", gotPath)
	assert.Equal(t, "pa", gotQuery)
	_, err = uuid.Parse(gotRequestID)
	assert.NoError(t, err)
	assert.Equal(t, []Suggestion{
		{Category: "city", Term: "Paris", Query: "paris"},
		{Category: "tag", Term: "big sky", Query: "big_sky"},
	}, suggestions)
}

func TestFetchEmptyAndNull(t *testing.T) {
	for _, body := range []string{`[]`, `null`} {
		t.Run(body, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})

			suggestions, err := client.Fetch(context.Background(), "xy")
			require.NoError(t, err)
			assert.NotNil(t, suggestions)
			assert.Empty(t, suggestions)
		})
	}
}

func TestFetchMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>`},
		{"object", `{"q": "x"}`},
		{"short triple", `[["tag","x"]]`},
		{"non string member", `[["tag", 1, "x"]]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Fetch(context.Background(), "xy")
			assert.ErrorIs(t, err, ErrMalformedResponse)
			assert.False(t, IsCancelled(err))
		})
	}
}

func TestFetchStatusError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.Fetch(context.Background(), "xy")

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "503")
}

func TestFetchCancelled(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := client.Fetch(ctx, "xy")
	require.Error(t, err)
	assert.True(t, IsCancelled(err))
}

func TestSuggestionLabelAndJSON(t *testing.T) {
	s := Suggestion{Category: "city", Term: "Paris", Query: "paris"}
	assert.Equal(t, "city: Paris", s.Label())

	data, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `["city","Paris","paris"]`, string(data))
}
