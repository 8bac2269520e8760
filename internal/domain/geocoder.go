package domain

import "context"

// GeocodingResult contains location data returned by a geocoding provider.
type GeocodingResult struct {
	Lat              float64
	Lon              float64
	FormattedAddress string
	PlaceName        string
	Confidence       float64    // 0.0–1.0 provider confidence score
	BBox             *[4]float64 // minLon, minLat, maxLon, maxLat
}

// Geocoder resolves free-text place names to coordinates.
type Geocoder interface {
	ForwardGeocode(ctx context.Context, query string) (GeocodingResult, error)
}
