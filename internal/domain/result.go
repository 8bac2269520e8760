package domain

import "time"

// AnalysisResult bundles the datasets produced by one completed selection.
type AnalysisResult struct {
	RunID       string          `json:"run_id"`
	Region      Region          `json:"region"`
	Prediction  *PredictionData `json:"prediction"`
	Simulation  *SimulationData `json:"simulation"`
	CompletedAt time.Time       `json:"completed_at"`
}
