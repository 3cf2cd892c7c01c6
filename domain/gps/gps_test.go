package gps

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinatesToISO6709(t *testing.T) {
	var data = []struct {
		lat float64
		lon float64
		iso string
	}{
		{lat: 45.3, lon: 2.443, iso: "+45.300000+002.443000/"},
		{lat: 45.3, lon: -43.2344, iso: "+45.300000-043.234400/"},
		{lat: 9.9312, lon: 76.2673, iso: "+09.931200+076.267300/"},
	}
	for _, tt := range data {
		c := NewCoordinates(tt.lat, tt.lon)
		iso := c.ISO6709()
		if iso != tt.iso {
			t.Errorf("Bad ISO6709 value, expected %s, got %s", tt.iso, iso)
		}
	}
}

func TestCoordinatesJSON(t *testing.T) {
	data, err := json.Marshal(NewCoordinates(9.9312, 76.2673))
	if err != nil {
		t.Fatalf("Failed to marshal coordinates: %s", err)
	}
	assert.JSONEq(t, `{"lat":9.9312,"lon":76.2673}`, string(data))

	var c Coordinates
	if err := json.Unmarshal([]byte(`{"lat":-5.5,"lon":120}`), &c); err != nil {
		t.Fatalf("Failed to unmarshal coordinates: %s", err)
	}
	assert.Equal(t, NewCoordinates(-5.5, 120), c)
}

func TestCoordinatesIsValid(t *testing.T) {
	assert.True(t, NewCoordinates(9.9312, 76.2673).IsValid())
	assert.True(t, NewCoordinates(-90, 180).IsValid())
	assert.False(t, NewCoordinates(91, 0).IsValid())
	assert.False(t, NewCoordinates(0, -180.5).IsValid())
}

func TestCoordinatesPoint(t *testing.T) {
	p := NewCoordinates(9.9312, 76.2673).Point()
	assert.Equal(t, 76.2673, p.X())
	assert.Equal(t, 9.9312, p.Y())
}

func BenchmarkMarshalJSON(b *testing.B) {
	coords := Coordinates{
		Lat: 12.3456,
		Lon: 23.2344,
	}
	for i := 0; i < b.N; i++ {
		_, err := json.Marshal(coords)
		if err != nil {
			b.Error(err)
		}
	}
}
