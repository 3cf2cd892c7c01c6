package lsg

import "bitbucket.org/kleinnic74/lsgmap/domain/gps"

// Centroid is the average of the vertices of the exterior ring of g, using
// the first polygon of a MultiPolygon. It is a cheap label position, not the
// area centroid.
func Centroid(g *Geometry) (gps.Point, bool) {
	polys, err := g.Polygons()
	if err != nil || len(polys) == 0 || len(polys[0]) == 0 {
		return gps.Point{}, false
	}
	return ringCentroid(polys[0][0])
}

func ringCentroid(ring Ring) (gps.Point, bool) {
	if len(ring) == 0 {
		return gps.Point{}, false
	}
	var sumX, sumY float64
	for _, p := range ring {
		sumX += p.X()
		sumY += p.Y()
	}
	n := float64(len(ring))
	return gps.Point{sumX / n, sumY / n}, true
}
