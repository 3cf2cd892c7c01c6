// Package resolver turns short links into the URL they finally redirect to.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"bitbucket.org/kleinnic74/lsgmap/consts"
	"bitbucket.org/kleinnic74/lsgmap/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"
)

var (
	ErrNoURL          = errors.New("no URL provided")
	ErrUnsupportedURL = errors.New("not an absolute http(s) URL")
)

// Resolver resolves a short link to its final target.
type Resolver interface {
	Resolve(ctx context.Context, shortURL string) (string, error)
}

type ResolverFunc func(ctx context.Context, shortURL string) (string, error)

func (f ResolverFunc) Resolve(ctx context.Context, shortURL string) (string, error) {
	return f(ctx, shortURL)
}

var (
	requestCount = promauto.NewCounter(prometheus.CounterOpts{
		Subsystem: "resolver",
		Name:      "requests_total",
		Help:      "Total number of short link resolutions sent",
	})
	errorCount = promauto.NewCounter(prometheus.CounterOpts{
		Subsystem: "resolver",
		Name:      "errors_total",
		Help:      "Total number of failed short link resolutions",
	})
)

type httpResolver struct {
	client    *http.Client
	userAgent string
}

type Option func(*httpResolver)

// WithClient replaces the HTTP client used to follow redirects. A nil client
// keeps the default one.
func WithClient(c *http.Client) Option {
	return func(r *httpResolver) {
		if c != nil {
			r.client = c
		}
	}
}

// WithTimeout sets a timeout for the whole redirect chain, 0 means none.
func WithTimeout(d time.Duration) Option {
	return func(r *httpResolver) {
		// Copy, the client may be shared with others
		c := *r.client
		c.Timeout = d
		r.client = &c
	}
}

func WithUserAgent(ua string) Option {
	return func(r *httpResolver) {
		r.userAgent = ua
	}
}

// NewHTTPResolver creates a Resolver sending one HEAD request per link and
// following all redirects.
func NewHTTPResolver(opts ...Option) Resolver {
	r := &httpResolver{
		client:    defaultClient(),
		userAgent: consts.UserAgent(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func defaultClient() *http.Client {
	// Short link services may set consent cookies somewhere along the redirect chain
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	return &http.Client{Jar: jar}
}

func (r *httpResolver) Resolve(ctx context.Context, shortURL string) (finalURL string, err error) {
	logger, ctx := logging.FromWithNameAndFields(ctx, "resolver", zap.String("url", shortURL))
	defer func() {
		requestCount.Inc()
		if err != nil {
			errorCount.Inc()
			logger.Warn("Failed to resolve link", zap.Error(err))
		}
	}()

	target, err := validate(shortURL)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target.String(), nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)
	res, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", shortURL, err)
	}
	defer res.Body.Close()

	finalURL = res.Request.URL.String()
	logger.Debug("Resolved link", zap.String("final", finalURL), zap.Int("status", res.StatusCode))
	return finalURL, nil
}

func validate(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrNoURL
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedURL, raw)
	}
	return u, nil
}
