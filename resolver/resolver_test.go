package resolver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(roundTripFunc RoundTripperFunc) *http.Client {
	return &http.Client{
		Transport: roundTripFunc,
	}
}

func newRedirectServer(t *testing.T, methods *[]string) *httptest.Server {
	var lock sync.Mutex
	mux := http.NewServeMux()
	record := func(r *http.Request) {
		lock.Lock()
		defer lock.Unlock()
		*methods = append(*methods, r.Method)
	}
	mux.HandleFunc("/short", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		http.Redirect(w, r, "/mid", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/mid", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		http.Redirect(w, r, "/maps/place/9.9312,76.2673", http.StatusFound)
	})
	mux.HandleFunc("/maps/place/9.9312,76.2673", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		http.Redirect(w, r, "/missing", http.StatusFound)
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		w.WriteHeader(http.StatusNotFound)
	})
	s := httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func TestResolveFollowsRedirects(t *testing.T) {
	var methods []string
	s := newRedirectServer(t, &methods)

	r := NewHTTPResolver(WithClient(s.Client()))
	final, err := r.Resolve(context.Background(), s.URL+"/short")
	require.NoError(t, err)
	assert.Equal(t, s.URL+"/maps/place/9.9312,76.2673", final)
	assert.Equal(t, []string{http.MethodHead, http.MethodHead, http.MethodHead}, methods)
}

func TestResolveReturnsFinalURLOnErrorStatus(t *testing.T) {
	var methods []string
	s := newRedirectServer(t, &methods)

	r := NewHTTPResolver(WithClient(s.Client()))
	final, err := r.Resolve(context.Background(), s.URL+"/gone")
	require.NoError(t, err)
	assert.Equal(t, s.URL+"/missing", final)
}

func TestResolveSetsUserAgent(t *testing.T) {
	var agent string
	client := newTestClient(func(req *http.Request) (*http.Response, error) {
		agent = req.Header.Get("User-Agent")
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     make(http.Header),
			Body:       http.NoBody,
			Request:    req,
		}, nil
	})
	r := NewHTTPResolver(WithClient(client), WithUserAgent("test-agent"))
	final, err := r.Resolve(context.Background(), "https://maps.app.goo.gl/abc")
	require.NoError(t, err)
	assert.Equal(t, "https://maps.app.goo.gl/abc", final)
	assert.Equal(t, "test-agent", agent)
}

func TestResolveTransportError(t *testing.T) {
	failure := errors.New("connection refused")
	client := newTestClient(func(*http.Request) (*http.Response, error) {
		return nil, failure
	})
	r := NewHTTPResolver(WithClient(client))
	_, err := r.Resolve(context.Background(), "https://maps.app.goo.gl/abc")
	assert.True(t, errors.Is(err, failure), "expected wrapped transport error, got %v", err)
}

func TestResolveRejectsBadInput(t *testing.T) {
	called := false
	client := newTestClient(func(*http.Request) (*http.Response, error) {
		called = true
		return nil, errors.New("must not be called")
	})
	r := NewHTTPResolver(WithClient(client))

	_, err := r.Resolve(context.Background(), "  ")
	assert.True(t, errors.Is(err, ErrNoURL))

	for _, in := range []string{"not a url", "ftp://example.com/file", "https://", "/relative/path"} {
		_, err = r.Resolve(context.Background(), in)
		assert.True(t, errors.Is(err, ErrUnsupportedURL), "input %q: %v", in, err)
	}
	assert.False(t, called)
}

func TestResolveHonoursContext(t *testing.T) {
	var methods []string
	s := newRedirectServer(t, &methods)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewHTTPResolver(WithClient(s.Client()))
	_, err := r.Resolve(ctx, s.URL+"/short")
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestDefaultClientHasCookieJar(t *testing.T) {
	r := NewHTTPResolver().(*httpResolver)
	assert.NotNil(t, r.client.Jar)
	assert.Zero(t, r.client.Timeout)
}

func TestWithTimeoutLeavesClientUntouched(t *testing.T) {
	shared := newTestClient(func(req *http.Request) (*http.Response, error) {
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Request: req}, nil
	})
	r := NewHTTPResolver(WithClient(shared), WithTimeout(time.Second)).(*httpResolver)
	assert.Zero(t, shared.Timeout)
	assert.Equal(t, time.Second, r.client.Timeout)

	final, err := r.Resolve(context.Background(), "https://maps.app.goo.gl/x")
	require.NoError(t, err)
	assert.Equal(t, "https://maps.app.goo.gl/x", final)
}

func TestWithNilClient(t *testing.T) {
	r := NewHTTPResolver(WithClient(nil), WithTimeout(time.Second)).(*httpResolver)
	require.NotNil(t, r.client)
	assert.NotNil(t, r.client.Jar)
	assert.Equal(t, time.Second, r.client.Timeout)
}
