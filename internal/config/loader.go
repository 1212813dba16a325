package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// TuningFile is the file name searched for in the config directories.
const TuningFile = "tuning.yaml"

// Load loads the simulation tuning.
// Search order: customPath -> ~/.beacon/configs/tuning.yaml -> ./configs/tuning.yaml -> embedded default.
// Files are decoded on top of the defaults, so a partial file only overrides
// the keys it names.
func Load(customPath string) (Tuning, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Tuning{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Tuning{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// User and local files are best-effort: a broken file falls through.
	for _, path := range []string{userConfigPath(TuningFile), filepath.Join("configs", TuningFile)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse(defaultTuningYAML)
	if err != nil {
		return DefaultTuning(), nil
	}
	return cfg, nil
}

// Parse decodes YAML over DefaultTuning and validates the result.
func Parse(data []byte) (Tuning, error) {
	cfg := DefaultTuning()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Tuning{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Tuning{}, err
	}
	return cfg, nil
}

// Marshal renders the tuning as YAML.
func Marshal(t Tuning) ([]byte, error) {
	return yaml.Marshal(t)
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".beacon", "configs", filename)
}
