package views_test

import (
	"testing"

	"github.com/couchcryptid/wildfire-risk-dashboard/internal/dashboard"
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/domain"
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/mockdata"
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedState() dashboard.State {
	region := domain.Region{
		ID:     "test-forest",
		Name:   "Test Forest",
		Bounds: domain.Bounds{Center: domain.Coordinate{Lat: 10, Lng: 20}},
		Area:   1000,
	}
	gen := mockdata.NewGenerator(mockdata.NewSeededSource(11))
	steps := domain.NewProcessingSteps()
	for i := range steps {
		steps[i].Status = domain.StepCompleted
		steps[i].Progress = 100
	}
	return dashboard.State{
		ActiveView:  domain.ViewDashboard,
		Region:      &region,
		Steps:       steps,
		Prediction:  gen.GeneratePrediction(region),
		Simulation:  gen.GenerateSimulation(region),
		MapLayer:    domain.LayerPrediction,
		Playback:    domain.Playback{TimeStep: 6, Speed: 1},
		Environment: domain.DefaultEnvironmentalParams(),
	}
}

func TestRoute_EveryViewHasAScreen(t *testing.T) {
	st := completedState()
	for _, v := range domain.Views() {
		t.Run(v.String(), func(t *testing.T) {
			screen := views.Route(v, st)
			require.NotNil(t, screen)
			assert.Equal(t, v, screen.View())
		})
	}
}

func TestRoute_UnknownViewFallsBackToDashboard(t *testing.T) {
	screen := views.Route(domain.View(99), completedState())
	_, ok := screen.(views.DashboardScreen)
	require.True(t, ok, "got %T", screen)
	assert.Equal(t, domain.ViewDashboard, screen.View())
}

func TestRoute_Dashboard(t *testing.T) {
	st := completedState()
	screen := views.Route(domain.ViewDashboard, st).(views.DashboardScreen)

	require.NotNil(t, screen.Summary)
	assert.Equal(t, st.Prediction.Confidence, screen.Summary.Confidence)
	assert.InDelta(t, 780, screen.Summary.FinalBurnedArea, 0)
	assert.InDelta(t, 35, screen.Summary.PeakSpreadRate, 0)
	assert.Equal(t, st.Prediction.CountByRisk()[domain.RiskHigh], screen.Summary.HighRiskZones)
	assert.Len(t, screen.Steps, 6)
}

func TestRoute_DashboardWhileProcessing(t *testing.T) {
	st := completedState()
	st.Processing = true
	st.Prediction = nil
	st.Simulation = nil

	screen := views.Route(domain.ViewDashboard, st).(views.DashboardScreen)
	assert.True(t, screen.Processing)
	assert.Nil(t, screen.Summary)
}

func TestRoute_RiskAnalysis(t *testing.T) {
	st := completedState()
	screen := views.Route(domain.ViewRiskAnalysis, st).(views.RiskAnalysisScreen)
	require.NotNil(t, screen.Breakdown)
	assert.Len(t, screen.Breakdown.Categories, 3)
	assert.Equal(t, "/api/charts/risk.svg", screen.ChartURL)

	st.Prediction = nil
	empty := views.Route(domain.ViewRiskAnalysis, st).(views.RiskAnalysisScreen)
	assert.Nil(t, empty.Breakdown)
}

func TestRoute_SimulationFrame(t *testing.T) {
	st := completedState()
	screen := views.Route(domain.ViewSimulation, st).(views.SimulationScreen)

	require.NotNil(t, screen.Frame)
	assert.Equal(t, 6, screen.Frame.TimeStep)
	assert.Len(t, screen.Frame.Points, 36)
	assert.InDelta(t, 420, screen.Frame.BurnedArea, 0)
	assert.InDelta(t, 35, screen.Frame.SpreadRate, 0)
}

func TestRoute_MapLayers(t *testing.T) {
	st := completedState()

	pred := views.Route(domain.ViewMap, st).(views.MapScreen)
	assert.Len(t, pred.Zones, mockdata.RiskZoneCount)
	assert.Empty(t, pred.Spread)

	st.MapLayer = domain.LayerSimulation
	sim := views.Route(domain.ViewMap, st).(views.MapScreen)
	assert.Empty(t, sim.Zones)
	assert.Len(t, sim.Spread, 36)

	st.MapLayer = domain.LayerTerrain
	terrain := views.Route(domain.ViewMap, st).(views.MapScreen)
	assert.Empty(t, terrain.Zones)
	assert.Empty(t, terrain.Spread)
}

func TestRoute_DownloadAvailability(t *testing.T) {
	st := completedState()
	screen := views.Route(domain.ViewDownload, st).(views.DownloadScreen)
	for _, r := range screen.Reports {
		assert.True(t, r.Available, r.Kind)
	}

	st.Prediction, st.Simulation = nil, nil
	screen = views.Route(domain.ViewDownload, st).(views.DownloadScreen)
	for _, r := range screen.Reports {
		assert.False(t, r.Available, r.Kind)
	}
}

func TestActive_UsesStateView(t *testing.T) {
	st := completedState()
	st.ActiveView = domain.ViewSettings
	st.DarkMode = true

	screen := views.Active(st).(views.SettingsScreen)
	assert.True(t, screen.DarkMode)
}
