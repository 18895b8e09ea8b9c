package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	c := NewClient(server.URL)
	t.Cleanup(func() {
		c.Close()
		server.Close()
	})
	return c, server
}

func TestClient_Process_Success(t *testing.T) {
	var gotQuery, gotContentType, gotRequestID, gotPath, gotMethod string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotRequestID = r.Header.Get("X-Request-ID")

		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotQuery = body["query"]

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"query":"test case","summary_text":"**Summary**\nLine two",` +
			`"entity_output":{"accused":["Alice, Bob"]},` +
			`"websearch_output":{"most_relevant":[{"url":"http://x","title":"X"}]}}`))
	})

	ctx := WithRequestID(context.Background(), "req-123")
	result, err := c.Process(ctx, "  test case  ")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/process", gotPath)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "req-123", gotRequestID)
	assert.Equal(t, "test case", gotQuery)

	assert.Equal(t, "test case", result.Query)
	assert.Equal(t, []string{"Alice", "Bob"}, result.Entities().Accused)
	require.Len(t, result.Links(), 1)
	assert.Equal(t, "X", result.Links()[0].Title)
}

func TestClient_Process_GeneratesRequestID(t *testing.T) {
	var gotRequestID string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`{"query":"q"}`))
	})

	_, err := c.Process(context.Background(), "q")
	require.NoError(t, err)
	assert.Len(t, gotRequestID, 36)
}

func TestClient_Process_HTTPError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("server error"))
	})

	result, err := c.Process(context.Background(), "test case")
	require.Error(t, err)
	assert.Nil(t, result)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, "server error", httpErr.Body)
	assert.Equal(t, "HTTP error! status: 500 - server error", err.Error())
}

func TestClient_Process_DecodeError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	_, err := c.Process(context.Background(), "q")
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr), "got %T: %v", err, err)
	assert.NotEmpty(t, err.Error())
}

func TestClient_Process_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c := NewClient(url)
	defer c.Close()

	_, err := c.Process(context.Background(), "q")
	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr), "got %T: %v", err, err)
	assert.Equal(t, netErr.Err.Error(), err.Error())
}

func TestClient_Process_EmptyQuery(t *testing.T) {
	c := NewClient("http://127.0.0.1:1")
	defer c.Close()

	_, err := c.Process(context.Background(), "   \t")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestClient_Process_SingleInFlight(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-release
		_, _ = w.Write([]byte(`{"query":"first"}`))
	})

	done := make(chan error, 1)
	go func() {
		_, err := c.Process(context.Background(), "first")
		done <- err
	}()

	<-entered
	_, err := c.Process(context.Background(), "second")
	assert.ErrorIs(t, err, ErrBusy)

	close(release)
	require.NoError(t, <-done)

	// The slot is free again once the first call finishes.
	c2, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"query":"third"}`))
	})
	res, err := c2.Process(context.Background(), "third")
	require.NoError(t, err)
	assert.Equal(t, "third", res.Query)
}

func TestClient_Process_LargeErrorBodyKept(t *testing.T) {
	long := strings.Repeat("x", 4096)
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		http.Error(w, long, http.StatusBadGateway)
	})

	_, err := c.Process(context.Background(), "q")
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadGateway, httpErr.StatusCode)
	assert.Contains(t, httpErr.Body, long)
}

func TestClient_Health(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/healthz", r.URL.Path)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		assert.NoError(t, c.Health(context.Background()))
	})

	t.Run("not ok", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":false}`))
		})
		assert.Error(t, c.Health(context.Background()))
	})

	t.Run("status", func(t *testing.T) {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		var httpErr *HTTPError
		assert.True(t, errors.As(c.Health(context.Background()), &httpErr))
	})
}

func TestNewClientWithConfig_NormalisesBaseURL(t *testing.T) {
	assert.Equal(t, "http://svc:8000", NewClient(" http://svc:8000/ ").BaseURL())
	assert.Equal(t, DefaultBaseURL, NewClient("").BaseURL())
}
