package domain

import "encoding/json"

// View identifies one of the dashboard's screens. The set is closed.
type View int

const (
	ViewDashboard View = iota
	ViewSelectRegion
	ViewRiskAnalysis
	ViewSimulation
	ViewMap
	ViewDownload
	ViewSettings
)

var viewNames = [...]string{
	ViewDashboard:    "dashboard",
	ViewSelectRegion: "select-region",
	ViewRiskAnalysis: "risk-analysis",
	ViewSimulation:   "simulation",
	ViewMap:          "map",
	ViewDownload:     "download",
	ViewSettings:     "settings",
}

// Views returns every view in sidebar order.
func Views() []View {
	return []View{ViewDashboard, ViewSelectRegion, ViewRiskAnalysis, ViewSimulation, ViewMap, ViewDownload, ViewSettings}
}

func (v View) String() string {
	if v < 0 || int(v) >= len(viewNames) {
		return viewNames[ViewDashboard]
	}
	return viewNames[v]
}

// Valid reports whether v is a member of the enumeration.
func (v View) Valid() bool {
	return v >= 0 && int(v) < len(viewNames)
}

// ParseView maps an identifier to its view. Unrecognized identifiers fall
// back to the dashboard.
func ParseView(s string) View {
	for i, name := range viewNames {
		if name == s {
			return View(i)
		}
	}
	return ViewDashboard
}

func (v View) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

func (v *View) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*v = ParseView(s)
	return nil
}
