package domain

// StepStatus is the lifecycle state of a processing step.
type StepStatus string

const (
	StepPending    StepStatus = "pending"
	StepProcessing StepStatus = "processing"
	StepCompleted  StepStatus = "completed"
)

// Rank orders statuses so that a later status never has a lower rank.
func (s StepStatus) Rank() int {
	switch s {
	case StepPending:
		return 0
	case StepProcessing:
		return 1
	case StepCompleted:
		return 2
	default:
		return -1
	}
}

// ProcessingStep is one stage of the simulated analysis pipeline.
type ProcessingStep struct {
	ID       int        `json:"id"`
	Name     string     `json:"name"`
	Status   StepStatus `json:"status"`
	Progress int        `json:"progress"` // 0–100
}

// PipelineStages lists the analysis stages in execution order.
var PipelineStages = []string{
	"Loading DEM data (30m resolution)",
	"Processing weather data",
	"Analyzing LULC data",
	"Calculating slope & aspect",
	"Running ML prediction model",
	"Generating fire spread simulation",
}

// NewProcessingSteps returns a fresh pending step for every pipeline stage.
func NewProcessingSteps() []ProcessingStep {
	steps := make([]ProcessingStep, len(PipelineStages))
	for i, name := range PipelineStages {
		steps[i] = ProcessingStep{ID: i + 1, Name: name, Status: StepPending}
	}
	return steps
}

// CopySteps returns an independent copy of steps.
func CopySteps(steps []ProcessingStep) []ProcessingStep {
	if steps == nil {
		return nil
	}
	out := make([]ProcessingStep, len(steps))
	copy(out, steps)
	return out
}

// AllCompleted reports whether every step finished with full progress.
func AllCompleted(steps []ProcessingStep) bool {
	if len(steps) == 0 {
		return false
	}
	for _, s := range steps {
		if s.Status != StepCompleted || s.Progress != 100 {
			return false
		}
	}
	return true
}
