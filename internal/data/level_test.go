package data

import (
	"os"
	"path/filepath"
	"testing"
)

func writeLevel(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "level.yaml")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write level: %v", err)
	}
	return path
}

func TestLoadLevelTable(t *testing.T) {
	path := writeLevel(t, `
asteroids:
  - { x: -120, y: -300, xvel: 10, yvel: 8, rot_speed: 0.5 }

waves:
  - at: 2
    enemies:
      - { x: -200, y: -350, speed: 50 }
      - { x: 200, y: -350, speed: 50 }
  - at: 10
    enemies:
      - { x: 0, y: -380 }
`)

	table, err := LoadLevelTable(path)
	if err != nil {
		t.Fatalf("LoadLevelTable: %v", err)
	}

	if got := table.Count(); got != 4 {
		t.Fatalf("spawn count %d, want 4", got)
	}

	waves := table.Waves()
	if len(waves) != 2 {
		t.Fatalf("wave count %d, want 2", len(waves))
	}
	if waves[0].At != 2 || len(waves[0].Enemies) != 2 {
		t.Fatalf("first wave %+v", waves[0])
	}
	if waves[0].Enemies[1].X != 200 || waves[0].Enemies[1].Speed != 50 {
		t.Fatalf("wave spawn %+v", waves[0].Enemies[1])
	}
	if waves[1].Enemies[0].Speed != 0 {
		t.Fatalf("omitted speed %v, want 0 (world default)", waves[1].Enemies[0].Speed)
	}

	asts := table.Asteroids()
	if len(asts) != 1 {
		t.Fatalf("asteroid count %d, want 1", len(asts))
	}
	if asts[0].RotSpeed != 0.5 || asts[0].XVel != 10 {
		t.Fatalf("asteroid spawn %+v", asts[0])
	}
}

func TestLoadLevelTableEmpty(t *testing.T) {
	table, err := LoadLevelTable(writeLevel(t, ""))
	if err != nil {
		t.Fatalf("LoadLevelTable: %v", err)
	}
	if table.Count() != 0 {
		t.Fatalf("empty table count %d, want 0", table.Count())
	}
	if len(table.Waves()) != 0 || len(table.Asteroids()) != 0 {
		t.Fatalf("empty table has content")
	}
}

func TestLoadLevelTableMissingFile(t *testing.T) {
	if _, err := LoadLevelTable(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing level file")
	}
}

func TestLoadLevelTableMalformed(t *testing.T) {
	if _, err := LoadLevelTable(writeLevel(t, "waves: [}")); err == nil {
		t.Fatalf("expected error for malformed level file")
	}
}
