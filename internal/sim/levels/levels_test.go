package levels

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mazebots.ai/internal/sim/cells"
	"mazebots.ai/internal/sim/mathx"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "levels.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	l, ok := cfg.LevelByID(cfg.DefaultLevelID)
	if !ok {
		t.Fatalf("default level missing")
	}
	g, err := l.Cells()
	if err != nil {
		t.Fatalf("Cells: %v", err)
	}
	if g.Size() != mathx.NewIVec3(16, 8, 1) {
		t.Fatalf("size=%+v", g.Size())
	}
}

func TestLoad_File(t *testing.T) {
	p := writeFile(t, `levels:
  - id: tiny
    map: |
      ╞╡
  - id: tall
    seed_offset: 7
    map: "▼\n\n▲\n"
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultLevelID != "tiny" {
		t.Fatalf("default=%q", cfg.DefaultLevelID)
	}
	l, ok := cfg.LevelByID("tall")
	if !ok || l.SeedOffset != 7 || l.Name != "tall" {
		t.Fatalf("tall=%+v ok=%v", l, ok)
	}
	g, err := l.Cells()
	if err != nil {
		t.Fatalf("Cells: %v", err)
	}
	if g.Size().Z != 2 {
		t.Fatalf("levels=%d", g.Size().Z)
	}
}

func TestLoad_SchemaRejectsUnknownKey(t *testing.T) {
	p := writeFile(t, "levels:\n  - id: a\n    map: \"╬\"\n    walls: 3\n")
	_, err := Load(p)
	if err == nil || !strings.Contains(err.Error(), "schema") {
		t.Fatalf("expected schema error, got %v", err)
	}
}

func TestLoad_SchemaRejectsBadID(t *testing.T) {
	p := writeFile(t, "levels:\n  - id: \"a b\"\n    map: \"╬\"\n")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected error")
	}
}

func TestValidate(t *testing.T) {
	dup := Config{Levels: []LevelSpec{{ID: "a", Map: "╬"}, {ID: "a", Map: "╬"}}}
	if err := dup.Validate(); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("dup: %v", err)
	}

	empty := Config{Levels: []LevelSpec{{ID: "a", Map: "\n\n"}}}
	if err := empty.Validate(); !errors.Is(err, cells.ErrEmptyMap) {
		t.Fatalf("empty map: %v", err)
	}

	missing := Config{DefaultLevelID: "b", Levels: []LevelSpec{{ID: "a", Map: "╬"}}}
	if err := missing.Validate(); err == nil {
		t.Fatalf("expected missing default error")
	}
}
