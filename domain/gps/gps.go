package gps

import (
	"fmt"
)

// Coordinates is a position in decimal degrees. No range checks are applied
// on construction, use IsValid where that matters.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func NewCoordinates(lat, lon float64) Coordinates {
	return Coordinates{Lat: lat, Lon: lon}
}

func (c Coordinates) String() string {
	return fmt.Sprintf("[%f;%f]", c.Lat, c.Lon)
}

func (c Coordinates) IsValid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

func (c Coordinates) Point() Point {
	return PointFromLatLon(c.Lat, c.Lon)
}

func (c Coordinates) ISO6709() string {
	return fmt.Sprintf("%+010.6f%+011.6f/", c.Lat, c.Lon)
}
