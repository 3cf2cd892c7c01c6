package cursor_test

import (
	"net/http/httptest"
	"testing"

	"bitbucket.org/kleinnic74/lsgmap/rest/cursor"
	"github.com/stretchr/testify/assert"
)

func TestEncodeDecode(t *testing.T) {
	data := []cursor.Cursor{
		{Start: 0, PageSize: 20},
		{Start: 20, PageSize: 20},
		{Start: 3000, PageSize: 100},
	}
	for i, c := range data {
		encoded := c.Encode()
		assert.NotContains(t, encoded, "=", "%d: cursor must be usable in a query", i)
		assert.Equal(t, c, cursor.Decode(encoded), "%d: bad cursor value", i)
	}
}

func TestDecodeInvalid(t *testing.T) {
	first := cursor.Cursor{PageSize: cursor.DefaultPageSize}
	for _, encoded := range []string{"", "!!!", "bm90IGpzb24"} {
		assert.Equal(t, first, cursor.Decode(encoded), "input %q", encoded)
	}
}

func TestFromRequest(t *testing.T) {
	c := cursor.Cursor{Start: 40, PageSize: 20}
	r := httptest.NewRequest("GET", "/api/lsg/entries?c="+c.Encode()+"&p=5", nil)
	assert.Equal(t, cursor.Cursor{Start: 40, PageSize: 5}, cursor.FromRequest(r))

	r = httptest.NewRequest("GET", "/api/lsg/entries?p=100000", nil)
	assert.Equal(t, cursor.Cursor{PageSize: cursor.MaxPageSize}, cursor.FromRequest(r))
}

func TestPrevious(t *testing.T) {
	_, exists := cursor.Cursor{PageSize: 10}.Previous()
	assert.False(t, exists)

	p, exists := cursor.Cursor{Start: 5, PageSize: 10}.Previous()
	assert.True(t, exists)
	assert.Equal(t, cursor.Cursor{Start: 0, PageSize: 10}, p)
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page := cursor.Slice(items, cursor.Cursor{PageSize: 2})
	assert.Equal(t, []int{1, 2}, page.Data)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, []cursor.Link{{"next", cursor.Cursor{Start: 2, PageSize: 2}.Encode()}}, page.Links)

	page = cursor.Slice(items, cursor.Cursor{Start: 4, PageSize: 2})
	assert.Equal(t, []int{5}, page.Data)
	assert.Equal(t, []cursor.Link{{"previous", cursor.Cursor{Start: 2, PageSize: 2}.Encode()}}, page.Links)

	page = cursor.Slice(items, cursor.Cursor{Start: 10, PageSize: 2})
	assert.Equal(t, []int{}, page.Data)
}
