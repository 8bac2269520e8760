package views

import (
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/chart"
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/domain"
)

// Screen is the read-only model a view renders.
type Screen interface {
	View() domain.View
}

// Header is embedded by every screen.
type Header struct {
	ID    domain.View `json:"view"`
	Title string      `json:"title"`
}

func (h Header) View() domain.View { return h.ID }

// DashboardScreen summarizes the current selection and its progress.
type DashboardScreen struct {
	Header
	Region     *domain.Region          `json:"region"`
	Processing bool                    `json:"processing"`
	Steps      []domain.ProcessingStep `json:"steps"`
	Summary    *Summary                `json:"summary,omitempty"`
}

// Summary holds the headline numbers shown once a run completes.
type Summary struct {
	Confidence      float64 `json:"confidence"`
	TotalArea       float64 `json:"total_area"`
	HighRiskArea    float64 `json:"high_risk_area"`
	HighRiskPercent string  `json:"high_risk_percent"`
	HighRiskZones   int     `json:"high_risk_zones"`
	FinalBurnedArea float64 `json:"final_burned_area"`
	PeakSpreadRate  float64 `json:"peak_spread_rate"`
}

// SelectRegionScreen shows the region picker.
type SelectRegionScreen struct {
	Header
	Selected   *domain.Region `json:"selected"`
	Processing bool           `json:"processing"`
}

// RiskAnalysisScreen shows the donut chart and per-category statistics.
type RiskAnalysisScreen struct {
	Header
	Region     *domain.Region         `json:"region"`
	Prediction *domain.PredictionData `json:"prediction"`
	Breakdown  *chart.Breakdown       `json:"breakdown,omitempty"`
	ChartURL   string                 `json:"chart_url"`
}

// SimulationScreen shows fire spread at the current playback step.
type SimulationScreen struct {
	Header
	Simulation  *domain.SimulationData     `json:"simulation"`
	Playback    domain.Playback            `json:"playback"`
	Environment domain.EnvironmentalParams `json:"environment"`
	Frame       *Frame                     `json:"frame,omitempty"`
}

// Frame is the simulation state at one time-step.
type Frame struct {
	TimeStep   int                  `json:"time_step"`
	Points     []domain.SpreadPoint `json:"points"`
	BurnedArea float64              `json:"burned_area"`
	SpreadRate float64              `json:"spread_rate"`
}

// MapScreen overlays the active layer on the region.
type MapScreen struct {
	Header
	Region      *domain.Region             `json:"region"`
	Layer       domain.MapLayer            `json:"layer"`
	TimeStep    int                        `json:"time_step"`
	Environment domain.EnvironmentalParams `json:"environment"`
	Zones       []domain.RiskZone          `json:"zones,omitempty"`
	Spread      []domain.SpreadPoint       `json:"spread,omitempty"`
}

// DownloadScreen lists the downloadable reports.
type DownloadScreen struct {
	Header
	Region  *domain.Region `json:"region"`
	Reports []Report       `json:"reports"`
}

// Report is one downloadable dataset.
type Report struct {
	Kind      string `json:"kind"`
	Available bool   `json:"available"`
	URL       string `json:"url"`
}

// SettingsScreen shows preferences.
type SettingsScreen struct {
	Header
	DarkMode    bool                       `json:"dark_mode"`
	Environment domain.EnvironmentalParams `json:"environment"`
}
