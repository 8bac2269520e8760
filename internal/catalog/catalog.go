// Package catalog lists the selectable forest regions and resolves free-text
// region names, falling back to a geocoder for places not in the list.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/couchcryptid/wildfire-risk-dashboard/internal/domain"
)

// ErrRegionNotFound is returned when a query matches no region.
var ErrRegionNotFound = errors.New("region not found")

// Catalog is a read-only set of regions plus an optional geocoder.
type Catalog struct {
	regions  []domain.Region
	byKey    map[string]int
	geocoder domain.Geocoder
	logger   *slog.Logger
}

// New builds a catalog over regions. geocoder may be nil.
func New(regions []domain.Region, geocoder domain.Geocoder, logger *slog.Logger) *Catalog {
	c := &Catalog{
		regions:  append([]domain.Region(nil), regions...),
		byKey:    make(map[string]int, 2*len(regions)),
		geocoder: geocoder,
		logger:   logger,
	}
	for i, r := range c.regions {
		c.byKey[strings.ToLower(r.ID)] = i
		c.byKey[strings.ToLower(r.Name)] = i
	}
	return c
}

// List returns the built-in regions in display order.
func (c *Catalog) List() []domain.Region {
	return append([]domain.Region(nil), c.regions...)
}

// Get returns the built-in region with the given id.
func (c *Catalog) Get(id string) (domain.Region, bool) {
	for _, r := range c.regions {
		if r.ID == id {
			return r, true
		}
	}
	return domain.Region{}, false
}

// Resolve matches query against region ids and names, case-insensitively.
// Anything else is geocoded when a geocoder is configured.
func (c *Catalog) Resolve(ctx context.Context, query string) (domain.Region, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return domain.Region{}, fmt.Errorf("%w: empty query", ErrRegionNotFound)
	}
	if i, ok := c.byKey[strings.ToLower(q)]; ok {
		return c.regions[i], nil
	}
	if c.geocoder == nil {
		return domain.Region{}, fmt.Errorf("%w: %q", ErrRegionNotFound, q)
	}

	result, err := c.geocoder.ForwardGeocode(ctx, q)
	if err != nil {
		return domain.Region{}, fmt.Errorf("geocode %q: %w", q, err)
	}
	region, ok := domain.RegionFromGeocoding(result)
	if !ok {
		return domain.Region{}, fmt.Errorf("%w: %q", ErrRegionNotFound, q)
	}
	c.logger.Info("region resolved by geocoder", "query", q, "region", region.Name, "area", region.Area)
	return region, nil
}
