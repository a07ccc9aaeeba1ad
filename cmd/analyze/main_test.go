package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/wricardo/mcp-training/memorygame/game/engine"
)

var testOpts = analysisOptions{Games: 5, Seed: 1, Think: time.Second}

func TestAnalyzeConfig(t *testing.T) {
	preset := &engine.GameConfig{
		Name:        "Test Preset",
		Description: "Eight cards with a preview",
		Settings:    engine.Settings{CardsQty: 8, SpeedMS: 500, ShowCards: true},
	}

	var out bytes.Buffer
	if err := analyzeConfig(&out, preset, testOpts); err != nil {
		t.Fatalf("analyzeConfig failed: %v", err)
	}

	expected := []string{
		"Name: Test Preset",
		"Cards: 8 (4 pairs)",
		"Speed: 500ms",
		"Preview: 4s",
		"memory turns avg 4.0 (min 4, max 4)",
		"random turns avg",
		"✅ A player with good recall",
	}
	for _, want := range expected {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Expected %q in output:\n%s", want, out.String())
		}
	}
}

func TestAnalyzeConfig_Instant(t *testing.T) {
	preset := &engine.GameConfig{
		Name:        "Instant",
		Description: "No delay",
		Settings:    engine.Settings{CardsQty: 8, SpeedMS: engine.InstantSpeed},
	}

	var out bytes.Buffer
	if err := analyzeConfig(&out, preset, testOpts); err != nil {
		t.Fatalf("analyzeConfig failed: %v", err)
	}

	if !strings.Contains(out.String(), "Speed: instant") || !strings.Contains(out.String(), "Preview: off") {
		t.Errorf("Unexpected output:\n%s", out.String())
	}
}

func TestAnalyzeDir(t *testing.T) {
	dir := t.TempDir()
	preset := `{"name":"Easy","description":"d","cards_qty":8,"speed_ms":1500,"show_cards":true}`
	if err := os.WriteFile(filepath.Join(dir, "easy.json"), []byte(preset), 0644); err != nil {
		t.Fatalf("Failed to write preset: %v", err)
	}

	var out bytes.Buffer
	if err := analyzeDir(&out, dir, testOpts); err != nil {
		t.Fatalf("analyzeDir failed: %v", err)
	}
	if !strings.Contains(out.String(), "=== Analyzing easy.json ===") {
		t.Errorf("Expected preset header in output:\n%s", out.String())
	}
}

func TestAnalyzeDir_Missing(t *testing.T) {
	var out bytes.Buffer
	if err := analyzeDir(&out, filepath.Join(t.TempDir(), "nope"), testOpts); err == nil {
		t.Error("Expected error for missing directory")
	}
}
