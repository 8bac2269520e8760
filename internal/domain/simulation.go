package domain

import "time"

// SimulationTimeSteps are the hour offsets every simulation reports.
var SimulationTimeSteps = []int{1, 2, 3, 6, 12}

// BurnedAreaSeries is the cumulative burned area (km²) per time-step.
var BurnedAreaSeries = []float64{45, 115, 195, 420, 780}

// SpreadRateSeries is the spread rate (km²/h) per time-step.
var SpreadRateSeries = []float64{22, 32, 28, 35, 30}

// SpreadPoint is one burning location at a given time-step.
type SpreadPoint struct {
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Intensity float64 `json:"intensity"`
	Timestamp int     `json:"timestamp"` // hours
}

// SimulationData is the output of one fire-spread simulation run.
type SimulationData struct {
	Region          string                `json:"region"`
	Timestamp       time.Time             `json:"timestamp"`
	TimeSteps       []int                 `json:"time_steps"`
	SpreadData      map[int][]SpreadPoint `json:"spread_data"`
	TotalBurnedArea []float64             `json:"total_burned_area"`
	SpreadRate      []float64             `json:"spread_rate"`
}

// StepIndex returns the position of timeStep in the simulation, or -1.
func (s *SimulationData) StepIndex(timeStep int) int {
	if s == nil {
		return -1
	}
	for i, ts := range s.TimeSteps {
		if ts == timeStep {
			return i
		}
	}
	return -1
}

// IsSimulationTimeStep reports whether ts is one of SimulationTimeSteps.
func IsSimulationTimeStep(ts int) bool {
	for _, v := range SimulationTimeSteps {
		if v == ts {
			return true
		}
	}
	return false
}
