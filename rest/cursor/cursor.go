// Package cursor implements opaque paging cursors for list endpoints.
package cursor

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strconv"
)

const (
	DefaultPageSize uint = 20
	MaxPageSize     uint = 500
)

type Cursor struct {
	Start    uint `json:"s"`
	PageSize uint `json:"p"`
}

// FromRequest reads the cursor from the c query parameter. An explicit p
// parameter overrides the page size stored in the cursor.
func FromRequest(r *http.Request) Cursor {
	q := r.URL.Query()
	c := Decode(q.Get("c"))
	if p, err := strconv.ParseUint(q.Get("p"), 10, 0); err == nil && p > 0 {
		c.PageSize = uint(p)
	}
	if c.PageSize > MaxPageSize {
		c.PageSize = MaxPageSize
	}
	return c
}

// Decode returns the first page for empty or malformed input.
func Decode(encoded string) Cursor {
	c := Cursor{PageSize: DefaultPageSize}
	if encoded == "" {
		return c
	}
	asJSON, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return c
	}
	if err := json.Unmarshal(asJSON, &c); err != nil {
		return Cursor{PageSize: DefaultPageSize}
	}
	if c.PageSize == 0 {
		c.PageSize = DefaultPageSize
	}
	return c
}

func (c Cursor) Encode() string {
	asJSON, err := json.Marshal(&c)
	if err != nil {
		return ""
	}
	return base64.RawURLEncoding.EncodeToString(asJSON)
}

func (c Cursor) Previous() (Cursor, bool) {
	if c.Start == 0 {
		return Cursor{}, false
	}
	if c.Start < c.PageSize {
		return Cursor{Start: 0, PageSize: c.PageSize}, true
	}
	return Cursor{Start: c.Start - c.PageSize, PageSize: c.PageSize}, true
}

func (c Cursor) Next() Cursor {
	return Cursor{Start: c.Start + c.PageSize, PageSize: c.PageSize}
}
