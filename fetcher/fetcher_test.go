package fetcher

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollyFetcher_Fetch(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.UserAgent()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	f := NewCollyFetcher("test-agent/1.0", time.Second, zerolog.Nop())

	body, err := f.Fetch(srv.URL + "/news")
	require.NoError(t, err)
	assert.Contains(t, string(body), "ok")
	assert.Equal(t, "test-agent/1.0", gotAgent)

	// the same URL can be fetched again
	_, err = f.Fetch(srv.URL + "/news")
	require.NoError(t, err)
}

func TestCollyFetcher_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewCollyFetcher("", time.Second, zerolog.Nop())

	_, err := f.Fetch(srv.URL + "/news/page-999")
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.Equal(t, srv.URL+"/news/page-999", fetchErr.URL)
}

func TestCollyFetcher_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	f := NewCollyFetcher("", time.Second, zerolog.Nop())

	_, err := f.Fetch(url)
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Zero(t, fetchErr.StatusCode)
}

func TestFetchError_Message(t *testing.T) {
	base := errors.New("boom")

	withStatus := &FetchError{URL: "https://x/news", StatusCode: 500, Err: base}
	assert.Equal(t, "fetch https://x/news: unexpected status 500: boom", withStatus.Error())
	assert.ErrorIs(t, withStatus, base)

	transport := &FetchError{URL: "https://x/news", Err: base}
	assert.Equal(t, "fetch https://x/news: boom", transport.Error())
}
