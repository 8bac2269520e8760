package domain

import (
	"math"
	"strings"
	"unicode"
)

// DefaultRegionArea is used when a geocoded place has no bounding box.
const DefaultRegionArea = 500.0 // km²

const (
	kmPerDegreeLat = 110.574
	kmPerDegreeLon = 111.320
)

// RegionFromGeocoding builds a Region from a forward-geocoding hit. It returns
// false when the result is empty (no coordinates).
func RegionFromGeocoding(result GeocodingResult) (Region, bool) {
	if result.Lat == 0 && result.Lon == 0 {
		return Region{}, false
	}

	name := result.PlaceName
	if name == "" {
		name = result.FormattedAddress
	}

	region := Region{
		ID:     Slug(name),
		Name:   name,
		Bounds: Bounds{Center: Coordinate{Lat: result.Lat, Lng: result.Lon}},
		Area:   DefaultRegionArea,
	}

	if b := result.BBox; b != nil {
		sw := Coordinate{Lat: b[1], Lng: b[0]}
		ne := Coordinate{Lat: b[3], Lng: b[2]}
		region.Bounds.SouthWest = &sw
		region.Bounds.NorthEast = &ne
		if area := bboxArea(sw, ne); area > 0 {
			region.Area = area
		}
	}

	return region, true
}

// bboxArea approximates a bounding box's area with an equirectangular
// projection at the box's mid latitude. Good enough for mock analysis.
func bboxArea(sw, ne Coordinate) float64 {
	midLat := (sw.Lat + ne.Lat) / 2
	height := math.Abs(ne.Lat-sw.Lat) * kmPerDegreeLat
	width := math.Abs(ne.Lng-sw.Lng) * kmPerDegreeLon * math.Cos(midLat*math.Pi/180)
	return math.Round(height*width*10) / 10
}

// Slug lowercases s and joins its alphanumeric runs with hyphens,
// e.g. "Jim Corbett, Uttarakhand" -> "jim-corbett-uttarakhand".
func Slug(s string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingHyphen = false
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}
