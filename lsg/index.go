// Package lsg models the local self-government bodies shown on the map:
// search entries derived from the processed GeoJSON and a spatial index
// telling which body a coordinate belongs to.
package lsg

import (
	"context"
	"sort"
	"strings"

	"bitbucket.org/kleinnic74/lsgmap/domain/gps"
	"bitbucket.org/kleinnic74/lsgmap/logging"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Index is read-only once built and safe for concurrent use.
type Index struct {
	entries  []Entry
	polygons map[int][]Polygon
	byID     map[int]int
	qt       *quadtree
	skipped  int
}

// NewIndex builds the search entries and the spatial index of all features.
// Features whose geometry cannot be decoded are skipped.
func NewIndex(ctx context.Context, fc *FeatureCollection) *Index {
	log, _ := logging.SubFrom(ctx, "lsgindex")
	idx := &Index{
		polygons: make(map[int][]Polygon),
		byID:     make(map[int]int),
		qt:       newQuadTree(gps.WorldBounds),
	}
	for i, f := range fc.Features {
		id := i + 1
		e, ok := NewEntry(id, f)
		if !ok {
			idx.skipped++
			continue
		}
		idx.byID[id] = len(idx.entries)
		idx.entries = append(idx.entries, e)

		polys, err := f.Geometry.Polygons()
		if err != nil {
			log.Warn("Cannot index geometry", zap.Int("id", id), zap.String("name", e.Name), zap.Error(err))
			continue
		}
		idx.polygons[id] = polys
		for _, poly := range polys {
			bounds, ok := poly.Bounds()
			if !ok {
				continue
			}
			if err := idx.qt.InsertRect(bounds, id); err != nil {
				log.Warn("Cannot index bounds", zap.Int("id", id), zap.Error(err))
			}
		}
	}
	log.Info("LSG index built",
		zap.Int("entries", len(idx.entries)),
		zap.Int("skipped", idx.skipped),
		zap.Int("shapes", idx.qt.Len()))
	return idx
}

func (idx *Index) Entries() []Entry {
	return idx.entries
}

func (idx *Index) Summary() Summary {
	return Summarize(idx.entries, idx.skipped)
}

func (idx *Index) Get(id int) (Entry, bool) {
	i, found := idx.byID[id]
	if !found {
		return Entry{}, false
	}
	return idx.entries[i], true
}

// Search matches the query case-insensitively against the English name and
// as a substring of the Malayalam name.
func (idx *Index) Search(query string) []Entry {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}
	q := strings.ToLower(query)
	return lo.Filter(idx.entries, func(e Entry, _ int) bool {
		return strings.Contains(strings.ToLower(e.Name), q) ||
			(e.NameML != "" && strings.Contains(e.NameML, query))
	})
}

func (idx *Index) ByDistrict(district string) []Entry {
	return lo.Filter(idx.entries, func(e Entry, _ int) bool {
		return strings.EqualFold(e.District, district)
	})
}

func (idx *Index) ByType(t string) []Entry {
	return lo.Filter(idx.entries, func(e Entry, _ int) bool {
		return e.Type == t
	})
}

// Districts returns the sorted names of all districts having at least one entry.
func (idx *Index) Districts() []string {
	districts := lo.Uniq(lo.FilterMap(idx.entries, func(e Entry, _ int) (string, bool) {
		return e.District, e.District != ""
	}))
	sort.Strings(districts)
	return districts
}

// Locate returns the entry whose shape contains c. When shapes overlap the
// one inserted first wins.
func (idx *Index) Locate(c gps.Coordinates) (Entry, bool) {
	p := c.Point()
	candidates := idx.qt.Find(p)
	sort.Ints(candidates)
	for _, id := range lo.Uniq(candidates) {
		for _, poly := range idx.polygons[id] {
			if poly.Contains(p) {
				return idx.Get(id)
			}
		}
	}
	return Entry{}, false
}
