// Package domain models the wildfire risk dashboard: regions, the simulated
// processing pipeline, risk predictions, fire-spread simulations, and the
// user-tunable knobs that persist across region changes.
//
// # Regions
//
// A region is selected from the catalog (or resolved through a geocoder) and
// is immutable once selected. Only its center coordinate and total area feed
// the mock analysis; the optional corner coordinates are informational.
//
// # Processing Pipeline
//
// Every selection runs six named stages in order:
//
//	1. Loading DEM data (30m resolution)
//	2. Processing weather data
//	3. Analyzing LULC data
//	4. Calculating slope & aspect
//	5. Running ML prediction model
//	6. Generating fire spread simulation
//
// Each stage moves pending → processing → completed and never regresses.
// Progress advances in quarters (0, 25, 50, 75, 100).
//
// # Risk Prediction
//
// A prediction carries 25 risk zones scattered within ±0.3° of the region
// center, an overall model confidence in [0.87, 0.97), and three risk areas
// sampled independently as fractions of the total area:
//
//	high:     12–20 %
//	moderate: 20–30 %
//	low:      55–70 %
//
// The three areas are not normalized and may sum to more or less than the
// total area. This is accepted mock-data noise.
//
// # Spread Simulation
//
// Simulations cover the fixed hour time-steps 1, 2, 3, 6 and 12. Each step
// holds timeStep×6 spread points within ±0.06×timeStep degrees of the center.
// The cumulative burned area (km²) and spread rate (km²/h) series are fixed
// illustrative constants shared by every simulation.
package domain
