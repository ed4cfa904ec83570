package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault_ClassicBoard(t *testing.T) {
	s := Default()
	if s.DefaultCols != 26 || s.DefaultRows != 19 {
		t.Errorf("defaults = %dx%d, want 26x19", s.DefaultCols, s.DefaultRows)
	}
	if s.Autosave {
		t.Error("autosave should default off")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if s.DefaultCols != 26 || s.DefaultRows != 19 || s.Autosave {
		t.Errorf("got %+v", s)
	}
}

func TestLoad_LayersFileOverDefaults(t *testing.T) {
	path := writeSettings(t, `
default_cols: 30
autosave: true
stat_labels:
  attack: Might
icon_types:
  - shrine
  - lever
`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.DefaultCols != 30 {
		t.Errorf("DefaultCols = %d, want 30", s.DefaultCols)
	}
	if s.DefaultRows != 19 {
		t.Errorf("DefaultRows = %d, want default 19", s.DefaultRows)
	}
	if !s.Autosave {
		t.Error("Autosave should be true")
	}
	if got := s.StatLabel("attack"); got != "Might" {
		t.Errorf("StatLabel(attack) = %q", got)
	}
	if len(s.IconTypes) != 2 || s.IconTypes[0] != "shrine" {
		t.Errorf("IconTypes = %v", s.IconTypes)
	}
}

func TestLoad_NonsenseGridFallsBack(t *testing.T) {
	path := writeSettings(t, "default_cols: -5\ndefault_rows: 0\n")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.DefaultCols != 26 || s.DefaultRows != 19 {
		t.Errorf("grid = %dx%d, want 26x19", s.DefaultCols, s.DefaultRows)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeSettings(t, "default_cols: [not a number\n")

	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestStatLabel_FallsBackToStatName(t *testing.T) {
	if got := Default().StatLabel("defense"); got != "defense" {
		t.Errorf("StatLabel(defense) = %q", got)
	}
}
