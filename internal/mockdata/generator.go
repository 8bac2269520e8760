// Package mockdata synthesizes risk predictions and fire-spread simulations
// that stand in for the analysis backend.
package mockdata

import (
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/domain"
)

const (
	// RiskZoneCount is the number of zones in every prediction.
	RiskZoneCount = 25

	// zoneJitter is the full width of the zone scatter window in degrees (±0.3°).
	zoneJitter = 0.6

	// spreadJitterPerHour is the full width of the spread scatter window per
	// simulated hour (±0.06° × timeStep).
	spreadJitterPerHour = 0.12

	// pointsPerHour is the number of spread points emitted per simulated hour.
	pointsPerHour = 6
)

// Generator produces randomized analysis datasets from a region.
type Generator struct {
	src Source
}

// NewGenerator creates a Generator. Pass nil to use DefaultSource.
func NewGenerator(src Source) *Generator {
	if src == nil {
		src = DefaultSource
	}
	return &Generator{src: src}
}

// GenerateRiskZones scatters RiskZoneCount zones around the region center.
// Draws above 0.6 are high risk, above 0.3 moderate, the rest low.
func (g *Generator) GenerateRiskZones(region domain.Region) []domain.RiskZone {
	center := region.Center()
	zones := make([]domain.RiskZone, 0, RiskZoneCount)

	for i := 0; i < RiskZoneCount; i++ {
		zones = append(zones, domain.RiskZone{
			ID:         i,
			Risk:       classifyRisk(g.src.Float64()),
			Lat:        center.Lat + (g.src.Float64()-0.5)*zoneJitter,
			Lng:        center.Lng + (g.src.Float64()-0.5)*zoneJitter,
			Confidence: 0.65 + g.src.Float64()*0.35,
		})
	}
	return zones
}

func classifyRisk(r float64) domain.RiskLevel {
	switch {
	case r > 0.6:
		return domain.RiskHigh
	case r > 0.3:
		return domain.RiskModerate
	default:
		return domain.RiskLow
	}
}

// GenerateSpreadData emits timeStep×6 points per simulation time-step, with
// the scatter radius growing linearly with the hour.
func (g *Generator) GenerateSpreadData(region domain.Region) map[int][]domain.SpreadPoint {
	center := region.Center()
	spread := make(map[int][]domain.SpreadPoint, len(domain.SimulationTimeSteps))

	for _, ts := range domain.SimulationTimeSteps {
		n := ts * pointsPerHour
		width := float64(ts) * spreadJitterPerHour
		points := make([]domain.SpreadPoint, 0, n)
		for i := 0; i < n; i++ {
			points = append(points, domain.SpreadPoint{
				Lat:       center.Lat + (g.src.Float64()-0.5)*width,
				Lng:       center.Lng + (g.src.Float64()-0.5)*width,
				Intensity: g.src.Float64()*0.8 + 0.2,
				Timestamp: ts,
			})
		}
		spread[ts] = points
	}
	return spread
}

// GeneratePrediction builds a full prediction for the region. The three risk
// areas are sampled independently and are not normalized to the total.
func (g *Generator) GeneratePrediction(region domain.Region) *domain.PredictionData {
	return &domain.PredictionData{
		Region:           region.Name,
		Timestamp:        clock.Now(),
		RiskZones:        g.GenerateRiskZones(region),
		Confidence:       0.87 + g.src.Float64()*0.1,
		TotalArea:        region.Area,
		HighRiskArea:     region.Area * (0.12 + g.src.Float64()*0.08),
		ModerateRiskArea: region.Area * (0.20 + g.src.Float64()*0.10),
		LowRiskArea:      region.Area * (0.55 + g.src.Float64()*0.15),
	}
}

// GenerateSimulation builds a spread simulation. Only the spread points are
// random; the burned-area and spread-rate series are fixed.
func (g *Generator) GenerateSimulation(region domain.Region) *domain.SimulationData {
	return &domain.SimulationData{
		Region:          region.Name,
		Timestamp:       clock.Now(),
		TimeSteps:       append([]int(nil), domain.SimulationTimeSteps...),
		SpreadData:      g.GenerateSpreadData(region),
		TotalBurnedArea: append([]float64(nil), domain.BurnedAreaSeries...),
		SpreadRate:      append([]float64(nil), domain.SpreadRateSeries...),
	}
}
