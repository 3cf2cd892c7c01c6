// Package mapslink recovers coordinates from map-service links such as
// https://www.google.com/maps/place/9.9312,76.2673 or
// https://maps.google.com/?q=9.9312,76.2673.
//
// Extraction tries an ordered list of matchers on the link and returns the
// first coordinates found. Malformed links never produce an error, they
// simply yield no coordinates.
package mapslink
