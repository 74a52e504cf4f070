package world

import (
	"math"

	"github.com/rocksandvoids/console/internal/geo"
)

// LightOptions configures a point light. Zero Intensity and Period fall back
// to DefaultIntensity and one second.
type LightOptions struct {
	Color            uint32
	Intensity        float64
	DefaultIntensity float64
	Oscillates       bool
	Period           float64
	Distance         float64
	Decay            float64
}

// Light is a point light carried by an object.
type Light struct {
	Color      uint32
	Intensity  float64
	Oscillates bool
	Period     float64
	Distance   float64
	Decay      float64
	Position   geo.Vec

	elapsed float64
	current float64
}

// NewLight creates a light from opts.
func NewLight(opts LightOptions) *Light {
	intensity := opts.Intensity
	if intensity == 0 {
		intensity = opts.DefaultIntensity
	}
	period := opts.Period
	if period == 0 {
		period = 1
	}
	return &Light{
		Color:      opts.Color,
		Intensity:  intensity,
		Oscillates: opts.Oscillates,
		Period:     period,
		Distance:   opts.Distance,
		Decay:      opts.Decay,
		current:    intensity,
	}
}

// Update moves the light to pos and advances the oscillation phase. The
// oscillation factor runs between 0.2 and 1.0 of the base intensity.
func (l *Light) Update(dt float64, pos geo.Vec) {
	l.Position = pos
	if !l.Oscillates {
		return
	}
	l.elapsed += dt
	phase := math.Mod(l.elapsed, l.Period) / l.Period
	l.current = l.Intensity * (0.6 + 0.4*math.Sin(2*math.Pi*phase))
}

// Current returns the intensity after the last update.
func (l *Light) Current() float64 {
	return l.current
}

// SetIntensity changes the base intensity.
func (l *Light) SetIntensity(v float64) {
	l.Intensity = v
	if !l.Oscillates {
		l.current = v
	}
}

// SetOscillation toggles oscillation and restarts the phase. A zero period
// keeps the current one.
func (l *Light) SetOscillation(enabled bool, period float64) {
	l.Oscillates = enabled
	if period != 0 {
		l.Period = period
	}
	l.elapsed = 0
	if !enabled {
		l.current = l.Intensity
	}
}
