package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the game tables.
// Search order: customPath -> ~/.memory-match/configs/modes.yaml ->
// ./configs/modes.yaml -> embedded default.
func Load(customPath string) (Tables, error) {
	var t Tables

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return t, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &t); err != nil {
			return t, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return t, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("modes.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &t); err == nil {
				return t, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/modes.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &t); err == nil {
			return t, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultTablesYAML, &t); err != nil {
		return DefaultTables(), nil // Fallback to hardcoded if embed fails
	}
	return t, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".memory-match", "configs", filename)
}
