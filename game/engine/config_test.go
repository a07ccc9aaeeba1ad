package engine

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func createValidConfig() *GameConfig {
	return &GameConfig{
		Name:        "Test Config",
		Description: "A valid test configuration",
		Settings: Settings{
			CardsQty:  16,
			SpeedMS:   500,
			ShowCards: true,
		},
	}
}

func TestValidateGameConfig_ValidConfig(t *testing.T) {
	config := createValidConfig()
	err := ValidateGameConfig(config)
	if err != nil {
		t.Errorf("Expected valid config to pass validation, got: %v", err)
	}
}

func TestValidateGameConfig_Nil(t *testing.T) {
	if err := ValidateGameConfig(nil); err == nil {
		t.Error("Expected error for nil config")
	}
}

func TestValidateGameConfig_MissingName(t *testing.T) {
	config := createValidConfig()
	config.Name = ""

	err := ValidateGameConfig(config)
	if err == nil || !strings.Contains(err.Error(), "name is required") {
		t.Errorf("Expected name validation error, got: %v", err)
	}
}

func TestValidateGameConfig_MissingDescription(t *testing.T) {
	config := createValidConfig()
	config.Description = ""

	err := ValidateGameConfig(config)
	if err == nil || !strings.Contains(err.Error(), "description is required") {
		t.Errorf("Expected description validation error, got: %v", err)
	}
}

func TestValidateSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantErr  bool
	}{
		{"smallest board", Settings{CardsQty: 4, SpeedMS: 0}, false},
		{"largest board", Settings{CardsQty: 48, SpeedMS: 10000}, false},
		{"odd card count", Settings{CardsQty: 15, SpeedMS: 500}, true},
		{"too few cards", Settings{CardsQty: 2, SpeedMS: 500}, true},
		{"too many cards", Settings{CardsQty: 50, SpeedMS: 500}, true},
		{"negative speed", Settings{CardsQty: 16, SpeedMS: -1}, true},
		{"speed too slow", Settings{CardsQty: 16, SpeedMS: 10001}, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := ValidateSettings(test.settings)
			if test.wantErr {
				if !errors.Is(err, ErrInvalidSettings) {
					t.Errorf("Expected ErrInvalidSettings, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Expected settings to be valid, got: %v", err)
			}
		})
	}
}

func TestSettingsDelays(t *testing.T) {
	instant := Settings{CardsQty: 16, SpeedMS: 0}
	if !instant.Instant() {
		t.Error("Expected speed 0 to be instant")
	}
	if instant.MatchDelay() != MatchFallbackDelay {
		t.Errorf("Expected match delay %v in instant mode, got %v", MatchFallbackDelay, instant.MatchDelay())
	}

	slow := Settings{CardsQty: 16, SpeedMS: 1200}
	if slow.Speed() != 1200*time.Millisecond {
		t.Errorf("Expected speed 1.2s, got %v", slow.Speed())
	}
	if slow.MatchDelay() != slow.Speed() {
		t.Errorf("Expected match delay to equal speed, got %v", slow.MatchDelay())
	}
	if slow.PairCount() != 8 {
		t.Errorf("Expected 8 pairs, got %d", slow.PairCount())
	}
}

func TestPreviewDuration(t *testing.T) {
	tests := []struct {
		cards    int
		expected time.Duration
	}{
		{4, 4 * time.Second},
		{16, 4 * time.Second},
		{18, 6 * time.Second},
		{32, 6 * time.Second},
		{34, 8 * time.Second},
		{48, 8 * time.Second},
	}

	for _, test := range tests {
		if got := PreviewDuration(test.cards); got != test.expected {
			t.Errorf("PreviewDuration(%d) = %v, expected %v", test.cards, got, test.expected)
		}
	}
}

func TestLoadConfigByName(t *testing.T) {
	tempDir := t.TempDir()

	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)
	os.Chdir(tempDir)

	os.MkdirAll("configs", 0755)

	configContent := `{
		"name": "Test Config",
		"description": "Test description",
		"cards_qty": 12,
		"speed_ms": 300,
		"show_cards": true
	}`

	err := os.WriteFile(filepath.Join("configs", "test.json"), []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	config, err := LoadConfigByName("test")
	if err != nil {
		t.Fatalf("Failed to load config by name: %v", err)
	}
	if config.Name != "Test Config" {
		t.Errorf("Expected config name 'Test Config', got '%s'", config.Name)
	}
	if config.CardsQty != 12 || config.SpeedMS != 300 || !config.ShowCards {
		t.Errorf("Unexpected settings: %+v", config.Settings)
	}

	config2, err := LoadConfigByName("test.json")
	if err != nil {
		t.Fatalf("Failed to load config by name with extension: %v", err)
	}
	if config2.Name != "Test Config" {
		t.Errorf("Expected config name 'Test Config', got '%s'", config2.Name)
	}

	_, err = LoadConfigByName("nonexistent")
	if err == nil {
		t.Fatal("Expected error for non-existent config")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("Expected 'not found' error, got: %v", err)
	}
}

func TestLoadGameConfig(t *testing.T) {
	tempFile := filepath.Join(t.TempDir(), "test_config.json")

	configContent := `{
		"name": "Test Config",
		"description": "Test description",
		"cards_qty": 8,
		"speed_ms": 0,
		"show_cards": false
	}`

	if err := os.WriteFile(tempFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	config, err := LoadGameConfig(tempFile)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if config.CardsQty != 8 {
		t.Errorf("Expected 8 cards, got %d", config.CardsQty)
	}
	if !config.Instant() {
		t.Error("Expected instant speed")
	}

	_, err = LoadGameConfig("nonexistent.json")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestLoadGameConfig_InvalidSettings(t *testing.T) {
	tempFile := filepath.Join(t.TempDir(), "odd.json")
	content := `{"name": "Odd", "description": "odd number of cards", "cards_qty": 7, "speed_ms": 100}`
	if err := os.WriteFile(tempFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	_, err := LoadGameConfig(tempFile)
	if !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("Expected ErrInvalidSettings, got: %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	if err := ValidateGameConfig(DefaultConfig()); err != nil {
		t.Errorf("Expected default config to be valid, got: %v", err)
	}
}
