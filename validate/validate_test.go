package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestValidateConfig_ValidConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "classic.json", `{
		"name": "Classic",
		"description": "Sixteen cards with a preview",
		"cards_qty": 16,
		"speed_ms": 1000,
		"show_cards": true
	}`)

	result := validateConfig(path)
	if !result.Valid {
		t.Fatalf("Expected valid config, but got errors: %v", result.Errors)
	}

	if result.File != "classic.json" {
		t.Errorf("Expected file name classic.json, got %s", result.File)
	}

	for _, want := range []string{"✓ Cards: 16 (8 pairs)", "✓ Speed: 1000ms", "✓ Preview: 4s"} {
		if !containsAny(result.Errors, want) {
			t.Errorf("Expected info line %q, got %v", want, result.Errors)
		}
	}
}

func TestValidateConfig_InstantSpeed(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "instant.json", `{
		"name": "Instant",
		"description": "No delay",
		"cards_qty": 8,
		"speed_ms": 0,
		"show_cards": false
	}`)

	result := validateConfig(path)
	if !result.Valid {
		t.Fatalf("Expected valid config, but got errors: %v", result.Errors)
	}
	if !containsAny(result.Errors, "✓ Speed: instant") || !containsAny(result.Errors, "✓ Preview: off") {
		t.Errorf("Unexpected info lines: %v", result.Errors)
	}
}

func TestValidateConfig_InvalidJSON(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "broken.json", `{"name": "test", invalid json}`)

	result := validateConfig(path)
	if result.Valid {
		t.Error("Expected invalid result for malformed JSON")
	}
	if !containsAny(result.Errors, "Invalid JSON") {
		t.Errorf("Expected 'Invalid JSON' error, got %v", result.Errors)
	}
}

func TestValidateConfig_UnknownField(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "typo.json", `{
		"name": "Typo",
		"description": "Misspelled field",
		"card_qty": 16,
		"speed_ms": 1000
	}`)

	result := validateConfig(path)
	if result.Valid {
		t.Error("Expected invalid result for unknown field")
	}
}

func TestValidateConfig_MissingFile(t *testing.T) {
	result := validateConfig(filepath.Join(t.TempDir(), "missing.json"))
	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}
	if !containsAny(result.Errors, "Failed to read file") {
		t.Errorf("Expected 'Failed to read file' error, got %v", result.Errors)
	}
}

func TestValidateConfig_InvalidSettings(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "odd card count",
			content: `{"name":"Odd","description":"d","cards_qty":15,"speed_ms":500}`,
			want:    "cards_qty must be even",
		},
		{
			name:    "too few cards",
			content: `{"name":"Tiny","description":"d","cards_qty":2,"speed_ms":500}`,
			want:    "cards_qty must be between",
		},
		{
			name:    "too many cards",
			content: `{"name":"Huge","description":"d","cards_qty":100,"speed_ms":500}`,
			want:    "cards_qty must be between",
		},
		{
			name:    "negative speed",
			content: `{"name":"Neg","description":"d","cards_qty":8,"speed_ms":-1}`,
			want:    "speed_ms must be between",
		},
		{
			name:    "missing name",
			content: `{"description":"d","cards_qty":8,"speed_ms":500}`,
			want:    "name is required",
		},
		{
			name:    "missing description",
			content: `{"name":"NoDesc","cards_qty":8,"speed_ms":500}`,
			want:    "description is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), "preset.json", tt.content)
			result := validateConfig(path)
			if result.Valid {
				t.Fatal("Expected invalid config")
			}
			if !containsAny(result.Errors, tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, result.Errors)
			}
		})
	}
}

func TestValidateConfig_BadFileName(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "two words.json",
		`{"name":"Spaces","description":"d","cards_qty":8,"speed_ms":500}`)

	result := validateConfig(path)
	if result.Valid {
		t.Error("Expected invalid result for a file name with spaces")
	}
}

func TestValidateDir(t *testing.T) {
	t.Run("all valid", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "easy.json", `{"name":"Easy","description":"d","cards_qty":8,"speed_ms":1500,"show_cards":true}`)

		ok, err := validateDir(dir)
		if err != nil {
			t.Fatalf("validateDir failed: %v", err)
		}
		if !ok {
			t.Error("Expected directory to be valid")
		}
	})

	t.Run("one invalid", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "easy.json", `{"name":"Easy","description":"d","cards_qty":8,"speed_ms":1500}`)
		writeConfig(t, dir, "odd.json", `{"name":"Odd","description":"d","cards_qty":9,"speed_ms":1500}`)

		ok, err := validateDir(dir)
		if err != nil {
			t.Fatalf("validateDir failed: %v", err)
		}
		if ok {
			t.Error("Expected directory to be reported invalid")
		}
	})

	t.Run("empty", func(t *testing.T) {
		if _, err := validateDir(t.TempDir()); err == nil {
			t.Error("Expected error for a directory without presets")
		}
	})
}

func TestValidateDir_ShippedPresets(t *testing.T) {
	if _, err := os.Stat("../configs"); os.IsNotExist(err) {
		t.Skip("Skipping test - configs directory not found")
	}

	ok, err := validateDir("../configs")
	if err != nil {
		t.Fatalf("validateDir failed: %v", err)
	}
	if !ok {
		t.Error("Expected shipped presets to be valid")
	}
}

func containsAny(lines []string, substr string) bool {
	for _, line := range lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}
