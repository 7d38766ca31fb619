package jsonclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/movement/internal/domain"
	"github.com/mmcdole/movement/internal/query"
)

func await(t *testing.T, c *Client, url, method string, body any) (any, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.JSONPromise(url, method, body).Await(ctx)
}

type captured struct {
	method string
	header http.Header
	body   map[string]any
}

func TestJSONPromise_PostsBody(t *testing.T) {
	requests := make(chan captured, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := captured{method: r.Method, header: r.Header.Clone()}
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &c.body)
		requests <- c
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"hits": {"total": 0, "hits": []}}`))
	}))
	defer srv.Close()

	c := NewClient(Options{UserAgent: "movement-test"}, nil)
	value, err := await(t, c, srv.URL, http.MethodPost, query.Videos())
	require.NoError(t, err)

	got := <-requests
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "application/json", got.header.Get("Content-Type"))
	assert.Equal(t, "movement-test", got.header.Get("User-Agent"))
	assert.NotEmpty(t, got.header.Get("X-Request-ID"))
	assert.Equal(t, 10.0, got.body["size"])

	object, ok := value.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, object, "hits")
}

func TestJSONPromise_ReturnsNonObjectValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[1, 2, 3]`))
	}))
	defer srv.Close()

	value, err := await(t, NewClient(Options{}, nil), srv.URL, http.MethodGet, nil)
	require.NoError(t, err)
	assert.Equal(t, []any{1.0, 2.0, 3.0}, value)
}

func TestJSONPromise_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := await(t, NewClient(Options{}, nil), srv.URL, http.MethodPost, map[string]any{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransport)

	var transportErr *domain.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusBadGateway, transportErr.StatusCode)
	assert.Equal(t, http.MethodPost, transportErr.Method)
	assert.Equal(t, srv.URL, transportErr.URL)
}

func TestJSONPromise_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hits": `))
	}))
	defer srv.Close()

	_, err := await(t, NewClient(Options{}, nil), srv.URL, http.MethodPost, nil)
	assert.ErrorIs(t, err, domain.ErrTransport)
}

func TestJSONPromise_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := await(t, NewClient(Options{Timeout: time.Second}, nil), url, http.MethodPost, nil)
	var transportErr *domain.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, 0, transportErr.StatusCode)
}

func TestJSONPromise_ResponseSizeLimit(t *testing.T) {
	body := `{"hits": {"hits": [], "pad": "` + strings.Repeat("x", 200) + `"}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	_, err := await(t, NewClient(Options{MaxResponseBytes: 64}, nil), srv.URL, http.MethodPost, nil)
	var transportErr *domain.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusOK, transportErr.StatusCode)
	assert.Contains(t, err.Error(), "response exceeds 64 bytes")

	value, err := await(t, NewClient(Options{MaxResponseBytes: int64(len(body))}, nil), srv.URL, http.MethodPost, nil)
	require.NoError(t, err)
	assert.Contains(t, value, "hits")
}

func TestJSONPromise_OneRequestPerCall(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "fail", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(Options{}, nil)
	_, err1 := await(t, c, srv.URL, http.MethodPost, nil)
	_, err2 := await(t, c, srv.URL, http.MethodPost, nil)

	assert.Error(t, err1)
	assert.Error(t, err2)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestJSONPromise_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(Options{RequestsPerSecond: 20, Burst: 1}, nil)
	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := await(t, c, srv.URL, http.MethodGet, nil)
		require.NoError(t, err)
	}
	// Burst of one: the 2nd and 3rd requests wait ~50ms each
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}
