// Package config holds runtime configuration for the simulation server,
// loaded from YAML with environment variable overrides.
package config

// Config is the top-level server configuration.
type Config struct {
	Seed           int64           `yaml:"seed"` // 0 = time-based
	TickIntervalMS int             `yaml:"tick_interval_ms"`
	Port           int             `yaml:"port"`
	DBPath         string          `yaml:"db_path"` // empty = no persistence
	Narrative      NarrativeConfig `yaml:"narrative"`
	Map            MapConfig       `yaml:"map"`
}

// NarrativeConfig configures the external event generation service.
type NarrativeConfig struct {
	URL        string `yaml:"url"` // empty = fallback events only
	TimeoutMS  int    `yaml:"timeout_ms"`
	MaxRetries int    `yaml:"max_retries"`
}

// MapConfig tunes terrain generation.
type MapConfig struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	WaterLevel  float64 `yaml:"water_level"`
	MountainLvl float64 `yaml:"mountain_level"`
	MinGold     int     `yaml:"min_gold"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Seed:           0,
		TickIntervalMS: 1000,
		Port:           8080,
		DBPath:         "",
		Narrative: NarrativeConfig{
			URL:        "",
			TimeoutMS:  10000,
			MaxRetries: 2,
		},
		Map: MapConfig{
			Width:       20,
			Height:      20,
			WaterLevel:  0.30,
			MountainLvl: 0.72,
			MinGold:     3,
		},
	}
}
