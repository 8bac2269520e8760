package catalog

import "github.com/couchcryptid/wildfire-risk-dashboard/internal/domain"

// Builtin returns the default forest regions offered by the region selector.
func Builtin() []domain.Region {
	return []domain.Region{
		region("uttarakhand-forest", "Uttarakhand Forest", 30.0668, 79.0193, 2450),
		region("jim-corbett", "Jim Corbett National Park", 29.5300, 78.7747, 1318),
		region("western-ghats", "Western Ghats", 10.1632, 76.6413, 1600),
		region("sundarbans", "Sundarbans", 21.9497, 89.1833, 1000),
		region("simlipal", "Simlipal Forest", 21.6250, 86.3500, 2750),
		region("bandipur", "Bandipur National Park", 11.6670, 76.6330, 874),
	}
}

func region(id, name string, lat, lng, area float64) domain.Region {
	return domain.Region{
		ID:     id,
		Name:   name,
		Bounds: domain.Bounds{Center: domain.Coordinate{Lat: lat, Lng: lng}},
		Area:   area,
	}
}
