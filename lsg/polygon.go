package lsg

import "bitbucket.org/kleinnic74/lsgmap/domain/gps"

// Contains reports whether p lies inside the exterior ring and outside of all holes.
func (poly Polygon) Contains(p gps.Point) bool {
	if len(poly) == 0 || !poly[0].contains(p) {
		return false
	}
	for _, hole := range poly[1:] {
		if hole.contains(p) {
			return false
		}
	}
	return true
}

func (poly Polygon) Bounds() (gps.Rect, bool) {
	if len(poly) == 0 {
		return gps.Rect{}, false
	}
	return gps.BoundsOf(poly[0])
}

// ray casting, even-odd rule
func (r Ring) contains(p gps.Point) bool {
	inside := false
	for i, j := 0, len(r)-1; i < len(r); j, i = i, i+1 {
		xi, yi := r[i].X(), r[i].Y()
		xj, yj := r[j].X(), r[j].Y()
		if (yi > p.Y()) != (yj > p.Y()) &&
			p.X() < (xj-xi)*(p.Y()-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}
