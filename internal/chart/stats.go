package chart

import (
	"math"
	"strconv"

	"github.com/couchcryptid/wildfire-risk-dashboard/internal/domain"
)

// Category colors, shared with the map legend.
const (
	ColorHigh     = "#ef4444"
	ColorModerate = "#f97316"
	ColorLow      = "#22c55e"
)

// Category is one slice of the risk breakdown.
type Category struct {
	Risk        domain.RiskLevel `json:"risk"`
	Label       string           `json:"label"`
	Color       string           `json:"color"`
	Area        float64          `json:"area"`
	Percent     float64          `json:"percent"`
	PercentText string           `json:"percent_text"`
}

// Breakdown is the three-category risk distribution derived from a prediction.
type Breakdown struct {
	Region     string     `json:"region"`
	TotalArea  float64    `json:"total_area"`
	Confidence float64    `json:"confidence"`
	Categories []Category `json:"categories"`
}

// NewBreakdown derives the chart dataset and per-category share of the total
// area. A nil prediction yields an empty breakdown.
func NewBreakdown(p *domain.PredictionData) Breakdown {
	if p == nil {
		return Breakdown{}
	}
	return Breakdown{
		Region:     p.Region,
		TotalArea:  p.TotalArea,
		Confidence: p.Confidence,
		Categories: []Category{
			newCategory(domain.RiskHigh, "High Risk", ColorHigh, p.HighRiskArea, p.TotalArea),
			newCategory(domain.RiskModerate, "Moderate Risk", ColorModerate, p.ModerateRiskArea, p.TotalArea),
			newCategory(domain.RiskLow, "Low Risk", ColorLow, p.LowRiskArea, p.TotalArea),
		},
	}
}

func newCategory(risk domain.RiskLevel, label, color string, area, total float64) Category {
	return Category{
		Risk:        risk,
		Label:       label,
		Color:       color,
		Area:        area,
		Percent:     Percent(area, total),
		PercentText: FormatPercent(area, total),
	}
}

// Sum returns the total of all category areas.
func (b Breakdown) Sum() float64 {
	var sum float64
	for _, c := range b.Categories {
		sum += c.Area
	}
	return sum
}

// Percent returns part/total×100 rounded to one decimal. A zero, negative or
// NaN total yields 0.
func Percent(part, total float64) float64 {
	if total <= 0 || math.IsNaN(total) || math.IsNaN(part) || math.IsInf(total, 0) {
		return 0
	}
	return math.Round(part/total*1000) / 10
}

// FormatPercent renders Percent with one decimal, e.g. "14.2%".
func FormatPercent(part, total float64) string {
	return strconv.FormatFloat(Percent(part, total), 'f', 1, 64) + "%"
}
