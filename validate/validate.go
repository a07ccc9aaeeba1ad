// Command validate provides a small CLI that validates game preset JSON
// files in the ../configs directory. It checks:
//   - JSON structure, rejecting unknown fields
//   - Name and description presence
//   - Card quantity (even, within the supported range) and speed bounds
//   - That the file name is usable as a preset ID
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/memorygame/game/engine"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single preset file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var config engine.GameConfig
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&config); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	id := strings.TrimSuffix(result.File, ".json")
	if strings.ContainsAny(id, " /\\") {
		result.fail("File name %q cannot be used as a preset ID", result.File)
	}

	if config.Name == "" {
		result.fail("name is required")
	}
	if config.Description == "" {
		result.fail("description is required")
	}

	if err := engine.ValidateSettings(config.Settings); err != nil {
		result.fail("%v", err)
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, describe(&config)...)
	}

	return result
}

// describe summarizes a valid preset.
func describe(config *engine.GameConfig) []string {
	speed := fmt.Sprintf("%dms", config.SpeedMS)
	if config.Instant() {
		speed = "instant (mismatches stay up until the next pick)"
	}
	preview := "off"
	if config.ShowCards {
		preview = engine.PreviewDuration(config.CardsQty).String()
	}
	return []string{
		fmt.Sprintf("✓ Name: %s", config.Name),
		fmt.Sprintf("✓ Cards: %d (%d pairs)", config.CardsQty, config.PairCount()),
		fmt.Sprintf("✓ Speed: %s", speed),
		fmt.Sprintf("✓ Preview: %s", preview),
	}
}

// validateDir validates every *.json file in dir and prints a report.
// It returns false if any file is invalid.
func validateDir(dir string) (bool, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return false, fmt.Errorf("error finding config files: %w", err)
	}
	if len(files) == 0 {
		return false, fmt.Errorf("no config files found in %s", dir)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	return allValid, nil
}

// main validates the preset directory, exiting with non-zero status if any
// file is invalid.
func main() {
	cmd := &cli.Command{
		Name:  "validate",
		Usage: "Validate game preset files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Value:   "../configs",
				Usage:   "Directory containing preset JSON files",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			allValid, err := validateDir(cmd.String("dir"))
			if err != nil {
				return err
			}
			if !allValid {
				return cli.Exit("❌ Some configurations have errors", 1)
			}
			fmt.Println("✅ All configurations are valid!")
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
