package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Load reads configuration.
// Search order: customPath -> ./configs/stonefall.yaml -> defaults.
// Environment variables override whatever was loaded.
func Load(customPath string) (Config, error) {
	cfg := Default()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		applyEnv(&cfg)
		return cfg, nil
	}

	if data, err := os.ReadFile("configs/stonefall.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse configs/stonefall.yaml: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("STONEFALL_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("STONEFALL_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Seed = seed
		}
	}
	if v := os.Getenv("STONEFALL_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("STONEFALL_NARRATIVE_URL"); v != "" {
		cfg.Narrative.URL = v
	}
	if v := os.Getenv("STONEFALL_TICK_INTERVAL_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			cfg.TickIntervalMS = ms
		}
	}
}
