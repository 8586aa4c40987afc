// Package config holds the settings file shared by the tabstats shells.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Settings holds shell configuration: where the three sources live and
// where rendered charts are written.
type Settings struct {
	TabPath     string `json:"tab_path"`
	PlayPath    string `json:"play_path"`
	RequestPath string `json:"request_path"`
	ChartDir    string `json:"chart_dir"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		TabPath:     "tabdb.csv",
		PlayPath:    "playdb.csv",
		RequestPath: "requestdb.csv",
		ChartDir:    "charts",
	}
}

// Load reads settings from a JSON file. A missing file yields defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Save writes settings to a JSON file, creating parent directories.
func (s *Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
