package domain

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is returned when a user-supplied knob is out of range.
var ErrInvalidParams = errors.New("invalid parameters")

// EnvironmentalParams are the weather knobs exposed in the simulation screen.
type EnvironmentalParams struct {
	WindSpeed   float64 `json:"wind_speed"`  // km/h
	Humidity    float64 `json:"humidity"`    // percent
	Temperature float64 `json:"temperature"` // °C
}

// DefaultEnvironmentalParams returns the initial knob settings.
func DefaultEnvironmentalParams() EnvironmentalParams {
	return EnvironmentalParams{WindSpeed: 15, Humidity: 45, Temperature: 28}
}

// Validate rejects negative wind, humidity outside [0,100] and NaN values.
func (p EnvironmentalParams) Validate() error {
	if math.IsNaN(p.WindSpeed) || math.IsNaN(p.Humidity) || math.IsNaN(p.Temperature) {
		return fmt.Errorf("%w: NaN value", ErrInvalidParams)
	}
	if p.WindSpeed < 0 {
		return fmt.Errorf("%w: wind speed must be >= 0, got %g", ErrInvalidParams, p.WindSpeed)
	}
	if p.Humidity < 0 || p.Humidity > 100 {
		return fmt.Errorf("%w: humidity must be within 0-100, got %g", ErrInvalidParams, p.Humidity)
	}
	return nil
}

// Playback holds the simulation screen's transport controls.
type Playback struct {
	TimeStep int     `json:"time_step"`
	Playing  bool    `json:"playing"`
	Speed    float64 `json:"speed"`
}

// DefaultPlayback starts paused at the first hour at normal speed.
func DefaultPlayback() Playback {
	return Playback{TimeStep: 1, Speed: 1}
}

// MapLayer selects which dataset the map screen overlays.
type MapLayer string

const (
	LayerPrediction MapLayer = "prediction"
	LayerSimulation MapLayer = "simulation"
	LayerTerrain    MapLayer = "terrain"
)

// ParseMapLayer validates a layer identifier.
func ParseMapLayer(s string) (MapLayer, error) {
	switch l := MapLayer(s); l {
	case LayerPrediction, LayerSimulation, LayerTerrain:
		return l, nil
	default:
		return "", fmt.Errorf("%w: unknown map layer %q", ErrInvalidParams, s)
	}
}
