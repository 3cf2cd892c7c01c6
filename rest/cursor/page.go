package cursor

type Link struct {
	Name string `json:"name"`
	Href string `json:"href"`
}

type Page[T any] struct {
	Data  []T    `json:"data"`
	Total int    `json:"total"`
	Links []Link `json:"links,omitempty"`
}

// Slice returns the page of items selected by c, with links holding the
// encoded cursors of the neighbouring pages.
func Slice[T any](items []T, c Cursor) (page Page[T]) {
	page.Total = len(items)
	start := min(int(c.Start), len(items))
	end := min(start+int(c.PageSize), len(items))
	page.Data = items[start:end]
	if page.Data == nil {
		page.Data = []T{}
	}
	if previous, exists := c.Previous(); exists {
		page.Links = append(page.Links, Link{"previous", previous.Encode()})
	}
	if end < len(items) {
		page.Links = append(page.Links, Link{"next", c.Next().Encode()})
	}
	return
}
