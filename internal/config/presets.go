package config

// Presets are ready-made configurations keyed by scene and variant.
var Presets = map[string]map[string]*Config{
	"solar": {
		"default": {
			Scene: "solar", Dt: 0.01, Duration: 120.0, TimeScale: 1.0,
			Algorithm: "barnes-hut",
		},
		"fast": {
			Scene: "solar", Dt: 0.01, Duration: 120.0, TimeScale: 5.0,
			Algorithm: "barnes-hut",
		},
		"exact": {
			Scene: "solar", Dt: 0.005, Duration: 60.0, TimeScale: 1.0,
			Algorithm: "direct",
		},
	},
	"binary": {
		"default": {
			Scene: "binary", Dt: 0.005, Duration: 60.0, TimeScale: 1.0,
			Algorithm: "direct",
		},
		"wide": {
			Scene: "binary", Dt: 0.01, Duration: 180.0, TimeScale: 2.0,
			Algorithm: "direct",
		},
	},
	"collapse": {
		"default": {
			Scene: "collapse", Dt: 0.005, Duration: 90.0, TimeScale: 1.0,
			Algorithm: "barnes-hut",
		},
		"accurate": {
			Scene: "collapse", Dt: 0.002, Duration: 90.0, TimeScale: 1.0,
			Algorithm: "barnes-hut", Tuning: Tuning{Theta: 0.2},
		},
	},
}

// GetPreset returns the named preset filled up with defaults, or nil.
func GetPreset(scene, name string) *Config {
	variants, ok := Presets[scene]
	if !ok {
		return nil
	}
	preset, ok := variants[name]
	if !ok {
		return nil
	}

	cfg := DefaultConfig()
	cfg.Scene = preset.Scene
	cfg.Dt = preset.Dt
	cfg.Duration = preset.Duration
	cfg.TimeScale = preset.TimeScale
	cfg.Algorithm = preset.Algorithm
	if preset.Tuning.Theta != 0 {
		cfg.Tuning.Theta = preset.Tuning.Theta
	}
	return cfg
}

// ListPresets returns the variant names for a scene, or nil.
func ListPresets(scene string) []string {
	variants, ok := Presets[scene]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	return names
}
