package mapslink

import (
	"context"
	"errors"
	"testing"

	"bitbucket.org/kleinnic74/lsgmap/domain/gps"
	"github.com/stretchr/testify/assert"
)

var extractData = []struct {
	name  string
	link  string
	found bool
	out   gps.Coordinates
}{
	{
		name:  "place path wins over @ marker",
		link:  "https://www.google.com/maps/place/9.9312,76.2673/@9.9312,76.2673,15z",
		found: true,
		out:   gps.NewCoordinates(9.9312, 76.2673),
	},
	{
		name:  "place path before a different @ marker",
		link:  "https://www.google.com/maps/place/10.5,76.1/@9.9312,76.2673,15z",
		found: true,
		out:   gps.NewCoordinates(10.5, 76.1),
	},
	{
		name:  "search path with signs",
		link:  "https://www.google.com/maps/search/-5.5,+120.25?entry=ttu",
		found: true,
		out:   gps.NewCoordinates(-5.5, 120.25),
	},
	{
		name:  "integer place path",
		link:  "https://www.google.com/maps/place/10,76",
		found: true,
		out:   gps.NewCoordinates(10, 76),
	},
	{
		name:  "encoded comma in place path",
		link:  "https://www.google.com/maps/place/9.9312%2C76.2673",
		found: true,
		out:   gps.NewCoordinates(9.9312, 76.2673),
	},
	{
		name:  "@ marker",
		link:  "https://www.google.com/maps/@9.9312,76.2673,15z",
		found: true,
		out:   gps.NewCoordinates(9.9312, 76.2673),
	},
	{
		name:  "@ marker with leading fraction",
		link:  "https://www.google.com/maps/@.5,-76.2673,15z",
		found: true,
		out:   gps.NewCoordinates(0.5, -76.2673),
	},
	{
		name:  "q parameter",
		link:  "https://maps.google.com/?q=9.9312,76.2673",
		found: true,
		out:   gps.NewCoordinates(9.9312, 76.2673),
	},
	{
		name:  "q parameter with prefix",
		link:  "https://maps.google.com/maps?q=loc:+9.9312,76.2673&z=12",
		found: true,
		out:   gps.NewCoordinates(9.9312, 76.2673),
	},
	{
		name:  "q parameter containing a semicolon",
		link:  "https://maps.google.com/?q=9.9312,76.2673;x",
		found: true,
		out:   gps.NewCoordinates(9.9312, 76.2673),
	},
	{
		name:  "q parameter after a pair with a semicolon",
		link:  "https://maps.google.com/?a=b;c&q=1,2",
		found: true,
		out:   gps.NewCoordinates(1, 2),
	},
	{
		name:  "pasted link with leading space",
		link:  " https://maps.google.com/?q=9.9312,76.2673",
		found: true,
		out:   gps.NewCoordinates(9.9312, 76.2673),
	},
	{
		name:  "pasted link with trailing newline",
		link:  "https://maps.google.com/?q=1,2\n",
		found: true,
		out:   gps.NewCoordinates(1, 2),
	},
	{
		name:  "link broken over lines",
		link:  "https://maps.google.com/\r\n?q=3,\t4",
		found: true,
		out:   gps.NewCoordinates(3, 4),
	},
	{
		name:  "out of range values are not rejected",
		link:  "https://www.google.com/maps/@123.5,500,15z",
		found: true,
		out:   gps.NewCoordinates(123.5, 500),
	},
	{
		name: "not a map link",
		link: "https://example.com/not-a-map-link",
	},
	{
		name: "not a url",
		link: "not a url at all",
	},
	{
		name: "q without coordinates",
		link: "https://maps.google.com/?q=somewhere-without-coords",
	},
	{
		name: "empty q",
		link: "https://maps.google.com/?q=",
	},
	{
		name: "relative link with q",
		link: "/maps?q=9.9312,76.2673",
	},
	{
		name: "malformed escape does not fall back to the raw link",
		link: "https://www.google.com/maps/@9.9312,76.2673,15z/data=%zz",
	},
	{
		name: "invalid UTF-8 after decoding",
		link: "https://maps.google.com/?q=9.9312,76.2673&name=%FF",
	},
	{
		name: "empty",
		link: "",
	},
}

func TestExtract(t *testing.T) {
	for _, d := range extractData {
		t.Run(d.name, func(t *testing.T) {
			c, found := Extract(d.link)
			assert.Equal(t, d.found, found)
			if d.found {
				assert.Equal(t, d.out, c)
			} else {
				assert.Equal(t, gps.Coordinates{}, c)
			}
		})
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	for _, d := range extractData {
		c1, found1 := Extract(d.link)
		c2, found2 := Extract(d.link)
		assert.Equal(t, found1, found2, d.link)
		assert.Equal(t, c1, c2, d.link)
	}
}

func TestMatchersInIsolation(t *testing.T) {
	ctx := context.Background()
	place := Link{
		Raw:     "https://www.google.com/maps/place/1.5,2.5",
		Decoded: "https://www.google.com/maps/place/1.5,2.5",
	}
	at := Link{
		Raw:     "https://www.google.com/maps/@3.5,4.5,15z",
		Decoded: "https://www.google.com/maps/@3.5,4.5,15z",
	}
	query := Link{
		Raw:     "https://maps.google.com/?q=5.5%2C6.5",
		Decoded: "https://maps.google.com/?q=5.5,6.5",
	}

	c, found := MatchPlacePath(ctx, place)
	assert.True(t, found)
	assert.Equal(t, gps.NewCoordinates(1.5, 2.5), c)
	_, found = MatchPlacePath(ctx, at)
	assert.False(t, found)

	c, found = MatchAtMarker(ctx, at)
	assert.True(t, found)
	assert.Equal(t, gps.NewCoordinates(3.5, 4.5), c)
	_, found = MatchAtMarker(ctx, query)
	assert.False(t, found)

	c, found = MatchQueryParam(ctx, query)
	assert.True(t, found)
	assert.Equal(t, gps.NewCoordinates(5.5, 6.5), c)
	_, found = MatchQueryParam(ctx, place)
	assert.False(t, found)
}

func TestQueryMatcherUsesRawLink(t *testing.T) {
	l := Link{Raw: "not a url", Decoded: "https://maps.google.com/?q=1,2"}
	_, found := MatchQueryParam(context.Background(), l)
	assert.False(t, found)
}

func TestFirstOfOrder(t *testing.T) {
	calls := 0
	fixed := func(c gps.Coordinates, found bool) Matcher {
		return func(context.Context, Link) (gps.Coordinates, bool) {
			calls++
			return c, found
		}
	}
	m := FirstOf(
		fixed(gps.Coordinates{}, false),
		fixed(gps.NewCoordinates(1, 2), true),
		fixed(gps.NewCoordinates(3, 4), true),
	)
	c, found := m(context.Background(), Link{})
	assert.True(t, found)
	assert.Equal(t, gps.NewCoordinates(1, 2), c)
	assert.Equal(t, 2, calls, "matchers after the first hit must not run")

	_, found = FirstOf()(context.Background(), Link{})
	assert.False(t, found)
}

func TestExtractWithCustomOrder(t *testing.T) {
	link := "https://www.google.com/maps/place/1,2/@3,4,15z"
	c, found := ExtractWith(context.Background(), link, MatchAtMarker, MatchPlacePath)
	assert.True(t, found)
	assert.Equal(t, gps.NewCoordinates(3, 4), c)
}

func TestDecode(t *testing.T) {
	s, err := Decode("a%2Cb+c%40")
	assert.NoError(t, err)
	assert.Equal(t, "a,b+c@", s)

	_, err = Decode("100%")
	assert.True(t, errors.Is(err, ErrInvalidEncoding))

	_, err = Decode("%C3%28")
	assert.True(t, errors.Is(err, ErrInvalidEncoding))
}

func TestParseURL(t *testing.T) {
	u, err := ParseURL("https://maps.google.com/?q=1,2")
	assert.NoError(t, err)
	assert.Equal(t, "maps.google.com", u.Host)

	_, err = ParseURL("not a url at all")
	assert.True(t, errors.Is(err, ErrNotAbsoluteURL))

	_, err = ParseURL("http://[::1")
	assert.Error(t, err)

	u, err = ParseURL("\t https://maps.google.com/?q=1,2 \n")
	assert.NoError(t, err)
	assert.Equal(t, "q=1,2", u.RawQuery)
}

func TestQueryParam(t *testing.T) {
	u, err := ParseURL("https://maps.google.com/?z=1;q=9&q=loc:+1%2C2;x&q=3,4&bad=%zz")
	assert.NoError(t, err)
	assert.Equal(t, "loc: 1,2;x", QueryParam(u, "q"))
	assert.Equal(t, "%zz", QueryParam(u, "bad"))
	assert.Equal(t, "", QueryParam(u, "missing"))
}

func BenchmarkExtract(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Extract("https://maps.google.com/?q=9.9312,76.2673")
	}
}
