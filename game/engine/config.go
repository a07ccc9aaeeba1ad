package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Settings are supplied by the settings collaborator before each game.
type Settings struct {
	CardsQty  int  `json:"cards_qty"`
	SpeedMS   int  `json:"speed_ms"`
	ShowCards bool `json:"show_cards"`
}

// PairCount is half the card quantity.
func (s Settings) PairCount() int {
	return s.CardsQty / 2
}

// Instant reports whether the speed is the "no delay" sentinel.
func (s Settings) Instant() bool {
	return s.SpeedMS == InstantSpeed
}

// Speed is the configured resolution delay.
func (s Settings) Speed() time.Duration {
	return time.Duration(s.SpeedMS) * time.Millisecond
}

// MatchDelay is how long a matched pair stays revealed before it is disabled.
func (s Settings) MatchDelay() time.Duration {
	if s.Instant() {
		return MatchFallbackDelay
	}
	return s.Speed()
}

// PreviewDuration returns how long all cards are shown before play starts.
func PreviewDuration(cardsQty int) time.Duration {
	switch {
	case cardsQty <= 16:
		return 4 * time.Second
	case cardsQty <= 32:
		return 6 * time.Second
	default:
		return 8 * time.Second
	}
}

// ValidateSettings checks settings before a board is generated.
func ValidateSettings(s Settings) error {
	if s.CardsQty%2 != 0 {
		return fmt.Errorf("%w: cards_qty must be even, got %d", ErrInvalidSettings, s.CardsQty)
	}
	if s.CardsQty < MinCardsQty || s.CardsQty > MaxCardsQty {
		return fmt.Errorf("%w: cards_qty must be between %d and %d, got %d",
			ErrInvalidSettings, MinCardsQty, MaxCardsQty, s.CardsQty)
	}
	if s.SpeedMS < 0 || s.SpeedMS > MaxSpeedMS {
		return fmt.Errorf("%w: speed_ms must be between 0 and %d, got %d", ErrInvalidSettings, MaxSpeedMS, s.SpeedMS)
	}
	return nil
}

// GameConfig is a named settings preset loaded from JSON
type GameConfig struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Settings
}

// ValidateGameConfig validates a preset for correctness and playability
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}
	if err := ValidateSettings(config.Settings); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}

// LoadGameConfig loads a preset from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadConfigByName loads configs/<name>.json, honouring CONFIG_DIR.
func LoadConfigByName(configName string) (*GameConfig, error) {
	if !strings.HasSuffix(configName, ".json") {
		configName = configName + ".json"
	}

	configPath := filepath.Join("configs", configName)
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		configPath = filepath.Join(configDir, configName)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file '%s' not found", configName)
	}

	config, err := LoadGameConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file '%s': %w", configName, err)
	}
	return config, nil
}

// DefaultConfig is used when no preset is available.
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Name:        "default",
		Description: "16 cards, half-second flips, no preview",
		Settings: Settings{
			CardsQty:  16,
			SpeedMS:   500,
			ShowCards: false,
		},
	}
}
