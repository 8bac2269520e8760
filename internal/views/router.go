// Package views maps the active view to the screen model it renders.
// Screens are read-only projections of dashboard state; user actions flow
// back through the dashboard store.
package views

import (
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/chart"
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/dashboard"
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/domain"
)

// Report kinds served by the download screen.
const (
	ReportPrediction = "prediction"
	ReportSimulation = "simulation"
)

const riskChartURL = "/api/charts/risk.svg"

var titles = map[domain.View]string{
	domain.ViewDashboard:    "Dashboard",
	domain.ViewSelectRegion: "Select Region",
	domain.ViewRiskAnalysis: "Fire Risk Distribution",
	domain.ViewSimulation:   "Fire Spread Simulation",
	domain.ViewMap:          "Map Visualization",
	domain.ViewDownload:     "Download Reports",
	domain.ViewSettings:     "Settings",
}

func header(v domain.View) Header {
	return Header{ID: v, Title: titles[v]}
}

// Route builds the screen for view from st. Values outside the enumeration
// render the dashboard.
func Route(view domain.View, st dashboard.State) Screen {
	switch view {
	case domain.ViewDashboard:
		return dashboardScreen(st)
	case domain.ViewSelectRegion:
		return SelectRegionScreen{Header: header(view), Selected: st.Region, Processing: st.Processing}
	case domain.ViewRiskAnalysis:
		return riskAnalysisScreen(st)
	case domain.ViewSimulation:
		return SimulationScreen{
			Header:      header(view),
			Simulation:  st.Simulation,
			Playback:    st.Playback,
			Environment: st.Environment,
			Frame:       frameAt(st.Simulation, st.Playback.TimeStep),
		}
	case domain.ViewMap:
		return mapScreen(st)
	case domain.ViewDownload:
		return DownloadScreen{
			Header: header(view),
			Region: st.Region,
			Reports: []Report{
				{Kind: ReportPrediction, Available: st.Prediction != nil, URL: "/api/reports/" + ReportPrediction},
				{Kind: ReportSimulation, Available: st.Simulation != nil, URL: "/api/reports/" + ReportSimulation},
			},
		}
	case domain.ViewSettings:
		return SettingsScreen{Header: header(view), DarkMode: st.DarkMode, Environment: st.Environment}
	default:
		return dashboardScreen(st)
	}
}

// Active routes the state's own active view.
func Active(st dashboard.State) Screen {
	return Route(st.ActiveView, st)
}

func dashboardScreen(st dashboard.State) DashboardScreen {
	s := DashboardScreen{
		Header:     header(domain.ViewDashboard),
		Region:     st.Region,
		Processing: st.Processing,
		Steps:      st.Steps,
	}
	if st.Prediction == nil || st.Simulation == nil {
		return s
	}

	p, sim := st.Prediction, st.Simulation
	sum := &Summary{
		Confidence:      p.Confidence,
		TotalArea:       p.TotalArea,
		HighRiskArea:    p.HighRiskArea,
		HighRiskPercent: chart.FormatPercent(p.HighRiskArea, p.TotalArea),
		HighRiskZones:   p.CountByRisk()[domain.RiskHigh],
	}
	if n := len(sim.TotalBurnedArea); n > 0 {
		sum.FinalBurnedArea = sim.TotalBurnedArea[n-1]
	}
	for _, r := range sim.SpreadRate {
		sum.PeakSpreadRate = max(sum.PeakSpreadRate, r)
	}
	s.Summary = sum
	return s
}

func riskAnalysisScreen(st dashboard.State) RiskAnalysisScreen {
	s := RiskAnalysisScreen{
		Header:     header(domain.ViewRiskAnalysis),
		Region:     st.Region,
		Prediction: st.Prediction,
		ChartURL:   riskChartURL,
	}
	if st.Prediction != nil {
		b := chart.NewBreakdown(st.Prediction)
		s.Breakdown = &b
	}
	return s
}

func mapScreen(st dashboard.State) MapScreen {
	s := MapScreen{
		Header:      header(domain.ViewMap),
		Region:      st.Region,
		Layer:       st.MapLayer,
		TimeStep:    st.Playback.TimeStep,
		Environment: st.Environment,
	}
	switch st.MapLayer {
	case domain.LayerPrediction:
		if st.Prediction != nil {
			s.Zones = st.Prediction.RiskZones
		}
	case domain.LayerSimulation:
		if st.Simulation != nil {
			s.Spread = st.Simulation.SpreadData[st.Playback.TimeStep]
		}
	case domain.LayerTerrain:
	}
	return s
}

func frameAt(sim *domain.SimulationData, timeStep int) *Frame {
	if sim == nil {
		return nil
	}
	i := sim.StepIndex(timeStep)
	if i < 0 {
		return nil
	}
	f := &Frame{TimeStep: timeStep, Points: sim.SpreadData[timeStep]}
	if i < len(sim.TotalBurnedArea) {
		f.BurnedArea = sim.TotalBurnedArea[i]
	}
	if i < len(sim.SpreadRate) {
		f.SpreadRate = sim.SpreadRate[i]
	}
	return f
}
