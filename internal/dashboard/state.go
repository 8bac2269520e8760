package dashboard

import "github.com/couchcryptid/wildfire-risk-dashboard/internal/domain"

// State is the complete top-level dashboard state. Prediction and Simulation
// are replaced wholesale on each completed run and never mutated afterwards,
// so snapshots share them by pointer.
type State struct {
	DarkMode    bool                       `json:"dark_mode"`
	ActiveView  domain.View                `json:"active_view"`
	Region      *domain.Region             `json:"region"`
	Processing  bool                       `json:"processing"`
	Steps       []domain.ProcessingStep    `json:"steps"`
	Prediction  *domain.PredictionData     `json:"prediction"`
	Simulation  *domain.SimulationData     `json:"simulation"`
	MapLayer    domain.MapLayer            `json:"map_layer"`
	Playback    domain.Playback            `json:"playback"`
	Environment domain.EnvironmentalParams `json:"environment"`
	RunID       string                     `json:"run_id,omitempty"`
	Version     uint64                     `json:"version"`
}

func initialState() State {
	return State{
		ActiveView:  domain.ViewDashboard,
		MapLayer:    domain.LayerPrediction,
		Playback:    domain.DefaultPlayback(),
		Environment: domain.DefaultEnvironmentalParams(),
	}
}

// clone returns a copy safe to hand to readers.
func (s State) clone() State {
	out := s
	if s.Region != nil {
		r := *s.Region
		out.Region = &r
	}
	if s.Steps != nil {
		out.Steps = domain.CopySteps(s.Steps)
	}
	return out
}
