// Package config provides preset management for the memory game.
//
// The config package handles:
//   - Loading presets from JSON files
//   - Preset validation
//   - Default preset selection
//   - Preset discovery and listing
//
// Preset Format:
//
// Presets are stored as JSON files in the configs directory:
//
//	{
//	  "name": "Classic",
//	  "description": "16 cards, half-second flips",
//	  "cards_qty": 16,
//	  "speed_ms": 500,
//	  "show_cards": false
//	}
//
// cards_qty must be even and between 4 and 48. speed_ms is the flip-back
// delay; 0 means instant mode. show_cards enables the preview phase.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	preset, err := manager.LoadConfig("expert")
//	presets, err := manager.ListConfigs()
package config
