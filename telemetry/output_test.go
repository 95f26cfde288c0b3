package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/genes"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}
	if om != nil {
		t.Fatal("empty dir should disable output")
	}

	// All methods are nil-safe no-ops.
	if err := om.WriteBattle(BattleRecord{}); err != nil {
		t.Errorf("WriteBattle on nil manager: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil manager: %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("Dir on nil manager = %q", om.Dir())
	}
}

func TestOutputManagerWritesBattles(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	if err := om.WriteBattle(BattleRecord{Generation: 0, Winner: "red", Duration: 90}); err != nil {
		t.Fatalf("WriteBattle: %v", err)
	}
	if err := om.WriteBattle(BattleRecord{Generation: 1, Winner: "blue", Duration: 45.5}); err != nil {
		t.Fatalf("WriteBattle: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "battles.csv"))
	if err != nil {
		t.Fatalf("reading battles.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("battles.csv has %d lines, want header + 2 rows", len(lines))
	}
	if !strings.Contains(lines[0], "generation") || !strings.Contains(lines[0], "winner") {
		t.Errorf("header missing expected columns: %q", lines[0])
	}
	if !strings.Contains(lines[1], "red") || !strings.Contains(lines[2], "blue") {
		t.Errorf("rows out of order or missing winners: %q, %q", lines[1], lines[2])
	}
}

func TestOutputManagerWritesGeneStats(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	stats := []GeneFieldStats{
		{Field: genes.FieldMaxSpeed, Mean: 30, Std: 5, Min: 20, Max: 45},
	}
	if err := om.WriteGeneStats(7, components.TeamBlue, stats); err != nil {
		t.Fatalf("WriteGeneStats: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "genes.csv"))
	if err != nil {
		t.Fatalf("reading genes.csv: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "max_speed") || !strings.Contains(content, "blue") {
		t.Errorf("genes.csv missing field or team: %q", content)
	}
}
