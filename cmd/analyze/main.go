// Command analyze prints quick, human-readable difficulty estimates for the
// presets in the project's configs directory. Every preset is played many
// times by simulated players (one with perfect recall, one picking at random)
// and the turn counts and clock times are summarized.
package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/mcp-training/memorygame/game/config"
	"github.com/wricardo/mcp-training/memorygame/game/engine"
	"github.com/wricardo/mcp-training/memorygame/game/strategy"
)

// analysisOptions holds the simulation parameters shared by every preset.
type analysisOptions struct {
	Games int
	Seed  int64
	Think time.Duration
}

func main() {
	cmd := &cli.Command{
		Name:  "analyze",
		Usage: "Estimate preset difficulty with simulated players",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Value:   "configs",
				Usage:   "Directory containing preset JSON files",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.IntFlag{
				Name:  "games",
				Value: 200,
				Usage: "Games simulated per preset and player",
			},
			&cli.IntFlag{
				Name:  "seed",
				Value: 1,
				Usage: "First random seed",
			},
			&cli.DurationFlag{
				Name:  "think",
				Value: 800 * time.Millisecond,
				Usage: "Simulated time a player spends on each pick",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts := analysisOptions{
				Games: int(cmd.Int("games")),
				Seed:  int64(cmd.Int("seed")),
				Think: cmd.Duration("think"),
			}
			return analyzeDir(os.Stdout, cmd.String("dir"), opts)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// analyzeDir analyzes every preset the config manager can list.
func analyzeDir(w io.Writer, dir string, opts analysisOptions) error {
	manager, err := config.NewManager(dir)
	if err != nil {
		return err
	}

	presets, err := manager.ListConfigs()
	if err != nil {
		return err
	}
	if len(presets) == 0 {
		return fmt.Errorf("no presets found in %s", dir)
	}

	for _, info := range presets {
		preset, err := manager.LoadConfig(info.ConfigID)
		if err != nil {
			fmt.Fprintf(w, "\n=== Analyzing %s ===\nError loading preset: %v\n", info.Filename, err)
			continue
		}
		fmt.Fprintf(w, "\n=== Analyzing %s ===\n", info.Filename)
		if err := analyzeConfig(w, preset, opts); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
		}
	}
	return nil
}

// analyzeConfig prints the settings of one preset and the simulated results
// of both players.
func analyzeConfig(w io.Writer, preset *engine.GameConfig, opts analysisOptions) error {
	s := preset.Settings

	fmt.Fprintf(w, "Name: %s\n", preset.Name)
	fmt.Fprintf(w, "Cards: %d (%d pairs)\n", s.CardsQty, s.PairCount())
	if s.Instant() {
		fmt.Fprintf(w, "Speed: instant\n")
	} else {
		fmt.Fprintf(w, "Speed: %v\n", s.Speed())
	}
	if s.ShowCards {
		fmt.Fprintf(w, "Preview: %v\n", engine.PreviewDuration(s.CardsQty))
	} else {
		fmt.Fprintf(w, "Preview: off\n")
	}

	players := []struct {
		name string
		s    strategy.Strategy
	}{
		{"memory", strategy.NewMemory()},
		{"random", strategy.NewRandom(rand.New(rand.NewSource(opts.Seed)))},
	}

	var memoryAvg float64
	for _, p := range players {
		sum, err := strategy.Summarize(s, p.s, opts.Games, opts.Seed, opts.Think)
		if err != nil {
			return err
		}
		if p.name == "memory" {
			memoryAvg = sum.AvgTurns
		}
		fmt.Fprintf(w, "  %-6s turns avg %.1f (min %d, max %d), time avg %v, completed %d/%d\n",
			p.name, sum.AvgTurns, sum.MinTurns, sum.MaxTurns, sum.AvgTime.Round(time.Second), sum.Completed, sum.Games)
		if sum.Completed < sum.Games {
			fmt.Fprintf(w, "  ⚠️  %d games did not finish\n", sum.Games-sum.Completed)
		}
	}

	if memoryAvg > 0 && memoryAvg <= float64(s.PairCount()) {
		fmt.Fprintf(w, "✅ A player with good recall can clear the board without a single miss\n")
	}
	return nil
}
