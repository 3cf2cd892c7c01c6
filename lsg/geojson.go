package lsg

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"bitbucket.org/kleinnic74/lsgmap/domain/gps"
)

var ErrUnsupportedGeometry = errors.New("unsupported geometry")

const (
	GeometryPolygon      = "Polygon"
	GeometryMultiPolygon = "MultiPolygon"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string     `json:"type"`
	Properties Properties `json:"properties"`
	Geometry   *Geometry  `json:"geometry"`
}

type Person struct {
	Name string `json:"name"`
}

type Officials struct {
	President *Person `json:"president,omitempty"`
	Secretary *Person `json:"secretary,omitempty"`
}

// Properties are the attributes of an LSG feature as produced by the data
// preparation pipeline.
type Properties struct {
	Name            string     `json:"name"`
	NameML          string     `json:"name:ml"`
	Type            string     `json:"lsg_type"`
	District        string     `json:"district"`
	Officials       *Officials `json:"officials,omitempty"`
	Website         string     `json:"website,omitempty"`
	Wikidata        string     `json:"wikidata,omitempty"`
	MLAConstituency string     `json:"mla_constituency,omitempty"`
	MPConstituency  string     `json:"mp_constituency,omitempty"`
}

type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// Ring is a closed line of [lon, lat] points.
type Ring []gps.Point

// Polygon is an exterior ring followed by its holes.
type Polygon []Ring

type position []float64

func (p position) point() (gps.Point, error) {
	if len(p) < 2 {
		return gps.Point{}, fmt.Errorf("position needs at least 2 values, got %d", len(p))
	}
	return gps.Point{p[0], p[1]}, nil
}

func toPolygon(rings [][]position) (Polygon, error) {
	poly := make(Polygon, 0, len(rings))
	for _, r := range rings {
		ring := make(Ring, 0, len(r))
		for _, pos := range r {
			p, err := pos.point()
			if err != nil {
				return nil, err
			}
			ring = append(ring, p)
		}
		poly = append(poly, ring)
	}
	return poly, nil
}

// Polygons decodes the coordinates of Polygon and MultiPolygon geometries.
func (g *Geometry) Polygons() ([]Polygon, error) {
	if g == nil || len(g.Coordinates) == 0 {
		return nil, nil
	}
	switch g.Type {
	case GeometryPolygon:
		var rings [][]position
		if err := json.Unmarshal(g.Coordinates, &rings); err != nil {
			return nil, fmt.Errorf("decode polygon: %w", err)
		}
		poly, err := toPolygon(rings)
		if err != nil {
			return nil, err
		}
		return []Polygon{poly}, nil
	case GeometryMultiPolygon:
		var polys [][][]position
		if err := json.Unmarshal(g.Coordinates, &polys); err != nil {
			return nil, fmt.Errorf("decode multipolygon: %w", err)
		}
		out := make([]Polygon, 0, len(polys))
		for _, rings := range polys {
			poly, err := toPolygon(rings)
			if err != nil {
				return nil, err
			}
			out = append(out, poly)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGeometry, g.Type)
	}
}

func ReadFeatureCollection(in io.Reader) (*FeatureCollection, error) {
	var fc FeatureCollection
	if err := json.NewDecoder(in).Decode(&fc); err != nil {
		return nil, fmt.Errorf("decode feature collection: %w", err)
	}
	return &fc, nil
}

func LoadFeatureCollection(path string) (*FeatureCollection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadFeatureCollection(f)
}
