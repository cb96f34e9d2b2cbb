package ctdf

import "math"

const earthRadiusKilometres = 6371.0

// Location is stored GeoJSON style, Coordinates are [longitude, latitude]
type Location struct {
	Type        string    `json:"type" groups:"basic"`
	Coordinates []float64 `json:"coordinates" groups:"basic"`
}

func NewLocation(latitude float64, longitude float64) Location {
	return Location{
		Type:        "Point",
		Coordinates: []float64{longitude, latitude},
	}
}

func (l Location) Longitude() float64 {
	if len(l.Coordinates) < 2 {
		return 0
	}
	return l.Coordinates[0]
}

func (l Location) Latitude() float64 {
	if len(l.Coordinates) < 2 {
		return 0
	}
	return l.Coordinates[1]
}

func (l Location) Valid() bool {
	return len(l.Coordinates) == 2 &&
		l.Latitude() >= -90 && l.Latitude() <= 90 &&
		l.Longitude() >= -180 && l.Longitude() <= 180
}

// Distance is the great-circle distance in kilometres (haversine)
func (l Location) Distance(other Location) float64 {
	lat1 := l.Latitude() * math.Pi / 180
	lat2 := other.Latitude() * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (other.Longitude() - l.Longitude()) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return earthRadiusKilometres * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
