package domain

// Coordinate is a WGS-84 latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Bounds describes a region's geographic extent. Center is always set; the
// corners are present only when the source provided a bounding box.
type Bounds struct {
	Center    Coordinate  `json:"center"`
	SouthWest *Coordinate `json:"south_west,omitempty"`
	NorthEast *Coordinate `json:"north_east,omitempty"`
}

// Region is a selectable forest area.
type Region struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Bounds Bounds  `json:"bounds"`
	Area   float64 `json:"area"` // km²
}

// Center returns the region's center coordinate.
func (r Region) Center() Coordinate {
	return r.Bounds.Center
}
