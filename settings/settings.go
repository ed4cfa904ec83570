// Package settings holds player-level configuration. The original toolkit
// kept these as ambient browser-local globals; here they are an explicit
// object loaded once and injected into the components that need it.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings is the app-level configuration object.
type Settings struct {
	// Grid bounds used when a quest does not declare its own.
	DefaultCols int `yaml:"default_cols"`
	DefaultRows int `yaml:"default_rows"`

	// Autosave writes a quicksave after every trigger.
	Autosave bool `yaml:"autosave"`

	// StatLabels overrides the display names of card stats.
	StatLabels map[string]string `yaml:"stat_labels"`

	// IconTypes lists custom icon type names available to quest authors.
	IconTypes []string `yaml:"icon_types"`
}

// Default returns the built-in settings: the classic 26x19 board and no
// overrides.
func Default() Settings {
	return Settings{
		DefaultCols: 26,
		DefaultRows: 19,
	}
}

// DefaultPath returns the conventional settings file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".questdeck", "settings.yaml")
}

// Load reads settings from path, layering the file's values over the
// defaults. A missing file is not an error — defaults apply.
func Load(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("reading settings %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("parsing settings %s: %w", path, err)
	}

	// Nonsense grid values fall back to the defaults.
	if s.DefaultCols <= 0 {
		s.DefaultCols = Default().DefaultCols
	}
	if s.DefaultRows <= 0 {
		s.DefaultRows = Default().DefaultRows
	}
	return s, nil
}

// StatLabel returns the display label for a stat, honoring overrides.
func (s Settings) StatLabel(stat string) string {
	if label, ok := s.StatLabels[stat]; ok {
		return label
	}
	return stat
}
