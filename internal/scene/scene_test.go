package scene

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-chapters/internal/core"
)

const testTable = `
fallback:
  id: missing
  title: Missing
  narrative: Scene narrative unavailable.
scenes:
  - id: first
    theme: library-night
    title: First
    camera: [-0.55, 2.05, 7.2]
    look_at: [0.42, 0.48, -1.24]
    background: "#041018"
    hotspot: [0.16, 0.43, -1.24]
  - id: second
    theme: soldier-contrast
    title: Second
    camera: [2.15, 1.62, 5.2]
    look_at: [1.46, 0.55, -0.9]
    background: "#081018"
    hotspot: [1.46, 0.47, -0.88]
`

func TestParse(t *testing.T) {
	table, err := Parse([]byte(testTable))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("Len() = %d, expected 2", table.Len())
	}

	d := table.At(1)
	if d.ID != "second" {
		t.Errorf("At(1).ID = %q, expected %q", d.ID, "second")
	}
	if d.Camera != core.V3(2.15, 1.62, 5.2) {
		t.Errorf("At(1).Camera = %v", d.Camera)
	}
	if d.Background != core.MustHex("#081018") {
		t.Errorf("At(1).Background = %v", d.Background)
	}
}

func TestOutOfRangeFallsBack(t *testing.T) {
	table, err := Parse([]byte(testTable))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	for _, i := range []int{-1, 2, 50} {
		if got := table.At(i).ID; got != "first" {
			t.Errorf("At(%d).ID = %q, expected %q", i, got, "first")
		}
		if got := table.Camera(i); got != DefaultCamera {
			t.Errorf("Camera(%d) = %v, expected %v", i, got, DefaultCamera)
		}
		if got := table.LookAt(i); got != DefaultLookAt {
			t.Errorf("LookAt(%d) = %v, expected %v", i, got, DefaultLookAt)
		}
		if got := table.Background(i); got != DefaultBackground {
			t.Errorf("Background(%d) = %v, expected %v", i, got, DefaultBackground)
		}
		if got := table.Hotspot(i); got != DefaultHotspot {
			t.Errorf("Hotspot(%d) = %v, expected %v", i, got, DefaultHotspot)
		}
	}
}

func TestEmptyTableUsesFallback(t *testing.T) {
	table := NewTable(nil, Descriptor{ID: "missing", Narrative: "Scene narrative unavailable."})
	d := table.At(0)
	if d.ID != "missing" {
		t.Errorf("At(0).ID = %q, expected %q", d.ID, "missing")
	}
	if d.Camera != DefaultCamera {
		t.Errorf("fallback Camera = %v, expected %v", d.Camera, DefaultCamera)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"no scenes", "scenes: []"},
		{"missing id", "scenes:\n  - title: x"},
		{"bad color", "scenes:\n  - id: a\n    background: nope"},
		{"short vector", "scenes:\n  - id: a\n    camera: [1, 2]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Error("Parse() should fail")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenes.yaml")
	if err := os.WriteFile(path, []byte(testTable), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if table.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", table.Len())
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, expected fs.ErrNotExist", err)
	}
}
