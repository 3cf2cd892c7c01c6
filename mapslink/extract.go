package mapslink

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"bitbucket.org/kleinnic74/lsgmap/domain/gps"
	"bitbucket.org/kleinnic74/lsgmap/logging"
	"go.uber.org/zap"
)

var (
	ErrInvalidEncoding = errors.New("invalid percent-encoding")
	ErrNotAbsoluteURL  = errors.New("not an absolute URL")
)

// Link is the input handed to each Matcher: the link as given and its
// percent-decoded form.
type Link struct {
	Raw     string
	Decoded string
}

// Extract returns the coordinates found in the given link. The second return
// value is false if no coordinates could be recovered.
func Extract(raw string) (gps.Coordinates, bool) {
	return ExtractContext(context.Background(), raw)
}

// ExtractContext is Extract with diagnostics logged to the logger of ctx.
func ExtractContext(ctx context.Context, raw string) (gps.Coordinates, bool) {
	return ExtractWith(ctx, raw, DefaultMatchers...)
}

// ExtractWith decodes raw and runs the given matchers on it, first match wins.
func ExtractWith(ctx context.Context, raw string, matchers ...Matcher) (gps.Coordinates, bool) {
	decoded, err := Decode(raw)
	if err != nil {
		logging.From(ctx).Named("mapslink").Debug("Cannot decode link", zap.String("link", raw), zap.Error(err))
		return gps.Coordinates{}, false
	}
	return FirstOf(matchers...)(ctx, Link{Raw: raw, Decoded: decoded})
}

// Decode reverses percent-encoding on the whole string. '+' is kept as is and
// the decoded bytes must form valid UTF-8.
func Decode(s string) (string, error) {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidEncoding, err)
	}
	if !utf8.ValidString(decoded) {
		return "", fmt.Errorf("%w: decoded value is not valid UTF-8", ErrInvalidEncoding)
	}
	return decoded, nil
}

// ParseURL parses raw as an absolute URL, a scheme is required. Surrounding
// spaces and control characters as well as embedded tabs and newlines are
// ignored, as browsers do with pasted links.
func ParseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(stripURL(raw))
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" {
		return nil, fmt.Errorf("%w: %q", ErrNotAbsoluteURL, raw)
	}
	return u, nil
}

var urlNoise = strings.NewReplacer("\t", "", "\n", "", "\r", "")

func stripURL(raw string) string {
	return urlNoise.Replace(strings.TrimFunc(raw, func(r rune) bool { return r <= ' ' }))
}

// QueryParam returns the first value of the named parameter of u. Unlike
// url.Values pairs are only separated by '&', so values may contain ';'.
func QueryParam(u *url.URL, name string) string {
	for _, pair := range strings.Split(u.RawQuery, "&") {
		k, v, _ := strings.Cut(pair, "=")
		if unescapeQuery(k) == name {
			return unescapeQuery(v)
		}
	}
	return ""
}

// unescapeQuery keeps malformed escapes literally instead of failing.
func unescapeQuery(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return strings.ReplaceAll(s, "+", " ")
}
