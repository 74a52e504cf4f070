package config

import (
	"github.com/spf13/viper"

	"github.com/rocksandvoids/console/internal/catalog"
	"github.com/rocksandvoids/console/internal/geo"
)

// SizeMultipliers scale the base size per size class.
type SizeMultipliers struct {
	Small  float64
	Medium float64
	Large  float64
}

// For returns the multiplier of class, or 1 for an unknown class.
func (m SizeMultipliers) For(class catalog.SizeClass) float64 {
	switch class {
	case catalog.Small:
		return m.Small
	case catalog.Large:
		return m.Large
	case catalog.Medium:
		return m.Medium
	}
	return 1
}

// LightDefaults configures new point lights.
type LightDefaults struct {
	Intensity float64
	Distance  float64
	Decay     float64
}

// Settings is the read-only configuration the simulation starts from.
type Settings struct {
	ArenaSize       float64
	FrameTime       float64
	RefreshRate     float64
	BaseSize        float64
	SizeMultipliers SizeMultipliers
	CameraPosition  geo.Vec
	CameraFOV       float64
	CameraNear      float64
	CameraFar       float64
	Light           LightDefaults
	HistorySize     int
}

// Default returns the built-in settings without consulting viper.
func Default() Settings {
	return Settings{
		ArenaSize:       1000,
		FrameTime:       0.1,
		RefreshRate:     60,
		BaseSize:        10,
		SizeMultipliers: SizeMultipliers{Small: 0.25, Medium: 1, Large: 2},
		CameraPosition:  geo.V(0, 50, 100),
		CameraFOV:       75,
		CameraNear:      0.1,
		CameraFar:       10000,
		Light:           LightDefaults{Intensity: 1, Distance: 500, Decay: 2},
		HistorySize:     100,
	}
}

// Current builds Settings from the loaded configuration.
func Current() Settings {
	return Settings{
		ArenaSize:   viper.GetFloat64("arena.size"),
		FrameTime:   viper.GetFloat64("simulation.frameTime"),
		RefreshRate: viper.GetFloat64("simulation.refreshRate"),
		BaseSize:    viper.GetFloat64("objects.baseSize"),
		SizeMultipliers: SizeMultipliers{
			Small:  viper.GetFloat64("objects.sizeMultipliers.small"),
			Medium: viper.GetFloat64("objects.sizeMultipliers.medium"),
			Large:  viper.GetFloat64("objects.sizeMultipliers.large"),
		},
		CameraPosition: geo.V(
			viper.GetFloat64("camera.defaultPosition.x"),
			viper.GetFloat64("camera.defaultPosition.y"),
			viper.GetFloat64("camera.defaultPosition.z"),
		),
		CameraFOV:  viper.GetFloat64("camera.fov"),
		CameraNear: viper.GetFloat64("camera.near"),
		CameraFar:  viper.GetFloat64("camera.far"),
		Light: LightDefaults{
			Intensity: viper.GetFloat64("lighting.defaultPointLight.intensity"),
			Distance:  viper.GetFloat64("lighting.defaultPointLight.distance"),
			Decay:     viper.GetFloat64("lighting.defaultPointLight.decay"),
		},
		HistorySize: viper.GetInt("history.maxSize"),
	}
}

// Runtime holds the settings the config command may change while running.
type Runtime struct {
	ArenaSize float64
	FrameTime float64
	BaseSize  float64
}

// NewRuntime seeds runtime settings from s.
func NewRuntime(s Settings) *Runtime {
	return &Runtime{
		ArenaSize: s.ArenaSize,
		FrameTime: s.FrameTime,
		BaseSize:  s.BaseSize,
	}
}
