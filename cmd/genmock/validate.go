package main

import (
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/couchcryptid/wildfire-risk-dashboard/internal/domain"
	"github.com/couchcryptid/wildfire-risk-dashboard/internal/mockdata"
	"github.com/google/uuid"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func validateResult(r domain.AnalysisResult) []*phase {
	return []*phase{
		validateEnvelope(r),
		validateRiskZones(r),
		validatePrediction(r),
		validateSimulation(r),
	}
}

// report prints a summary table and the detailed errors. It returns true
// when every phase passed.
func report(w io.Writer, phases []*phase) bool {
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-28s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}
	return allPassed
}

func validateEnvelope(r domain.AnalysisResult) *phase {
	p := &phase{name: "Result envelope"}
	if _, err := uuid.Parse(r.RunID); err != nil {
		p.errorf("run_id %q: %v", r.RunID, err)
	}
	if r.CompletedAt.IsZero() {
		p.errorf("completed_at is zero")
	}
	if r.Prediction == nil {
		p.errorf("prediction missing")
	} else if r.Prediction.Region != r.Region.Name {
		p.errorf("prediction region %q != %q", r.Prediction.Region, r.Region.Name)
	}
	if r.Simulation == nil {
		p.errorf("simulation missing")
	} else if r.Simulation.Region != r.Region.Name {
		p.errorf("simulation region %q != %q", r.Simulation.Region, r.Region.Name)
	}
	return p
}

func validateRiskZones(r domain.AnalysisResult) *phase {
	p := &phase{name: "Risk zones"}
	if r.Prediction == nil {
		return p
	}
	zones := r.Prediction.RiskZones
	if len(zones) != mockdata.RiskZoneCount {
		p.errorf("got %d zones, want %d", len(zones), mockdata.RiskZoneCount)
	}
	c := r.Region.Center()
	for i, z := range zones {
		if z.ID != i {
			p.errorf("zone %d: id %d out of order", i, z.ID)
		}
		if math.Abs(z.Lat-c.Lat) > 0.3 || math.Abs(z.Lng-c.Lng) > 0.3 {
			p.errorf("zone %d: (%.4f, %.4f) outside center ± 0.3°", i, z.Lat, z.Lng)
		}
		if z.Confidence < 0.65 || z.Confidence >= 1 {
			p.errorf("zone %d: confidence %.4f outside [0.65, 1)", i, z.Confidence)
		}
		switch z.Risk {
		case domain.RiskHigh, domain.RiskModerate, domain.RiskLow:
		default:
			p.errorf("zone %d: unknown risk %q", i, z.Risk)
		}
	}
	return p
}

func validatePrediction(r domain.AnalysisResult) *phase {
	p := &phase{name: "Prediction summary"}
	pred := r.Prediction
	if pred == nil {
		return p
	}
	if pred.Confidence < 0.87 || pred.Confidence >= 0.97 {
		p.errorf("confidence %.4f outside [0.87, 0.97)", pred.Confidence)
	}
	if !floatEq(pred.TotalArea, r.Region.Area) {
		p.errorf("total_area %.2f != region area %.2f", pred.TotalArea, r.Region.Area)
	}
	checkShare(p, "high_risk_area", pred.HighRiskArea, r.Region.Area, 0.12, 0.20)
	checkShare(p, "moderate_risk_area", pred.ModerateRiskArea, r.Region.Area, 0.20, 0.30)
	checkShare(p, "low_risk_area", pred.LowRiskArea, r.Region.Area, 0.55, 0.70)
	return p
}

func checkShare(p *phase, field string, value, area, lo, hi float64) {
	if area <= 0 {
		return
	}
	share := value / area
	if share < lo-1e-9 || share >= hi+1e-9 {
		p.errorf("%s share %.4f outside [%.2f, %.2f)", field, share, lo, hi)
	}
}

func validateSimulation(r domain.AnalysisResult) *phase {
	p := &phase{name: "Simulation series"}
	sim := r.Simulation
	if sim == nil {
		return p
	}
	if !slices.Equal(sim.TimeSteps, domain.SimulationTimeSteps) {
		p.errorf("time_steps %v, want %v", sim.TimeSteps, domain.SimulationTimeSteps)
	}
	if !slices.Equal(sim.TotalBurnedArea, domain.BurnedAreaSeries) {
		p.errorf("total_burned_area %v, want %v", sim.TotalBurnedArea, domain.BurnedAreaSeries)
	}
	if !slices.Equal(sim.SpreadRate, domain.SpreadRateSeries) {
		p.errorf("spread_rate %v, want %v", sim.SpreadRate, domain.SpreadRateSeries)
	}
	if len(sim.SpreadData) != len(domain.SimulationTimeSteps) {
		p.errorf("spread_data has %d time-steps, want %d", len(sim.SpreadData), len(domain.SimulationTimeSteps))
	}

	c := r.Region.Center()
	for _, ts := range domain.SimulationTimeSteps {
		points, ok := sim.SpreadData[ts]
		if !ok {
			p.errorf("spread_data missing time-step %d", ts)
			continue
		}
		if len(points) != ts*6 {
			p.errorf("time-step %d: %d points, want %d", ts, len(points), ts*6)
		}
		radius := float64(ts) * 0.06
		for i, pt := range points {
			if math.Abs(pt.Lat-c.Lat) > radius+1e-9 || math.Abs(pt.Lng-c.Lng) > radius+1e-9 {
				p.errorf("time-step %d point %d outside ± %.2f°", ts, i, radius)
			}
			if pt.Intensity < 0.2 || pt.Intensity >= 1 {
				p.errorf("time-step %d point %d: intensity %.4f outside [0.2, 1)", ts, i, pt.Intensity)
			}
			if pt.Timestamp != ts {
				p.errorf("time-step %d point %d: timestamp %d", ts, i, pt.Timestamp)
			}
		}
	}
	return p
}

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
