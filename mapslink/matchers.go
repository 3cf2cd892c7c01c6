package mapslink

import (
	"context"
	"errors"
	"regexp"
	"strconv"

	"bitbucket.org/kleinnic74/lsgmap/domain/gps"
	"bitbucket.org/kleinnic74/lsgmap/logging"
	"go.uber.org/zap"
)

// Matcher looks for coordinates in one specific part of a link.
type Matcher func(ctx context.Context, l Link) (gps.Coordinates, bool)

const number = `([-+]?\d*\.?\d+)`

var (
	placePattern = regexp.MustCompile(`/(?:place|search)/` + number + `,` + number)
	atPattern    = regexp.MustCompile(`@` + number + `,` + number)
	pairPattern  = regexp.MustCompile(number + `,` + number)
)

// DefaultMatchers in order of precedence.
var DefaultMatchers = []Matcher{
	MatchPlacePath,
	MatchAtMarker,
	MatchQueryParam,
}

// FirstOf combines matchers, returning the result of the first one that
// finds coordinates.
func FirstOf(matchers ...Matcher) Matcher {
	return func(ctx context.Context, l Link) (gps.Coordinates, bool) {
		for _, m := range matchers {
			if c, found := m(ctx, l); found {
				return c, true
			}
		}
		return gps.Coordinates{}, false
	}
}

// MatchPlacePath finds /place/<lat>,<lon> or /search/<lat>,<lon> in the decoded link.
func MatchPlacePath(_ context.Context, l Link) (gps.Coordinates, bool) {
	return matchPair(placePattern, l.Decoded)
}

// MatchAtMarker finds the @<lat>,<lon> marker of map views in the decoded link.
func MatchAtMarker(_ context.Context, l Link) (gps.Coordinates, bool) {
	return matchPair(atPattern, l.Decoded)
}

// MatchQueryParam finds <lat>,<lon> in the q query parameter of the raw link.
func MatchQueryParam(ctx context.Context, l Link) (gps.Coordinates, bool) {
	u, err := ParseURL(l.Raw)
	if err != nil {
		logging.From(ctx).Named("mapslink").Debug("Cannot parse link", zap.String("link", l.Raw), zap.Error(err))
		return gps.Coordinates{}, false
	}
	q := QueryParam(u, "q")
	if q == "" {
		return gps.Coordinates{}, false
	}
	return matchPair(pairPattern, q)
}

func matchPair(re *regexp.Regexp, s string) (gps.Coordinates, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return gps.Coordinates{}, false
	}
	lat, ok := parseNumber(m[1])
	if !ok {
		return gps.Coordinates{}, false
	}
	lon, ok := parseNumber(m[2])
	if !ok {
		return gps.Coordinates{}, false
	}
	return gps.NewCoordinates(lat, lon), true
}

// parseNumber accepts out of range values as +/-Inf, like other float parsers do.
func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || numErr.Err != strconv.ErrRange {
			return 0, false
		}
	}
	return f, true
}
