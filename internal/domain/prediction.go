package domain

import "time"

// RiskLevel categorizes a zone's fire risk.
type RiskLevel string

const (
	RiskHigh     RiskLevel = "high"
	RiskModerate RiskLevel = "moderate"
	RiskLow      RiskLevel = "low"
)

// RiskZone is a single scored location inside a prediction.
type RiskZone struct {
	ID         int       `json:"id"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Risk       RiskLevel `json:"risk"`
	Confidence float64   `json:"confidence"`
}

// PredictionData is the output of one risk prediction run.
type PredictionData struct {
	Region           string     `json:"region"`
	Timestamp        time.Time  `json:"timestamp"`
	RiskZones        []RiskZone `json:"risk_zones"`
	Confidence       float64    `json:"confidence"`
	TotalArea        float64    `json:"total_area"`
	HighRiskArea     float64    `json:"high_risk_area"`
	ModerateRiskArea float64    `json:"moderate_risk_area"`
	LowRiskArea      float64    `json:"low_risk_area"`
}

// CountByRisk tallies zones per risk level.
func (p *PredictionData) CountByRisk() map[RiskLevel]int {
	counts := map[RiskLevel]int{RiskHigh: 0, RiskModerate: 0, RiskLow: 0}
	if p == nil {
		return counts
	}
	for _, z := range p.RiskZones {
		counts[z.Risk]++
	}
	return counts
}
