package strategy

import (
	"math/rand"
	"time"

	"github.com/wricardo/mcp-training/memorygame/game/engine"
)

// SimOptions configures a simulated game.
type SimOptions struct {
	Seed int64
	// Think is the simulated time spent before each pick.
	Think time.Duration
	// MaxSteps bounds the number of loop iterations. Zero picks a limit from the board size.
	MaxSteps int
}

// Result summarizes a simulated game.
type Result struct {
	Completed   bool
	MoveCounter int
	Turns       int
	Picks       int
	Ignored     int
	Elapsed     time.Duration
}

// Simulate plays one game with s against an engine driven by a manual
// scheduler, so no real time passes.
func Simulate(settings engine.Settings, s Strategy, opts SimOptions) (*Result, error) {
	sched := engine.NewManualScheduler(time.Unix(0, 0))
	game, err := engine.NewGame(settings, sched, engine.WithRand(rand.New(rand.NewSource(opts.Seed))))
	if err != nil {
		return nil, err
	}
	defer game.Shutdown()

	if err := game.StartNewGame(); err != nil {
		return nil, err
	}

	s.Reset()
	if settings.ShowCards {
		s.Observe(game.State().Cards)
		sched.Advance(engine.PreviewDuration(settings.CardsQty))
	}

	wait := settings.MatchDelay()
	if settings.Speed() > wait {
		wait = settings.Speed()
	}

	limit := opts.MaxSteps
	if limit == 0 {
		limit = settings.CardsQty * settings.CardsQty * 8
	}

	res := &Result{}
	for step := 0; step < limit && game.Phase() != engine.PhaseCompleted; step++ {
		id, ok := s.Next(game.State().Cards)
		if !ok {
			// nothing face down: wait for flips or completion
			sched.Advance(wait)
			continue
		}

		sched.Advance(opts.Think)
		out, err := game.Select(id)
		if err != nil {
			return nil, err
		}
		res.Picks++
		if !out.Accepted {
			res.Ignored++
			continue
		}

		s.Observe(game.State().Cards)
		if out.Turn != nil && !out.Turn.Matched && !settings.Instant() {
			sched.Advance(settings.Speed())
		}
	}

	state := game.State()
	res.Completed = state.Completed
	res.MoveCounter = state.MoveCounter
	res.Turns = len(state.TurnHistory)
	res.Elapsed = time.Duration(state.Elapsed.Minutes*60+state.Elapsed.Seconds) * time.Second
	return res, nil
}

// Summary aggregates several simulated games.
type Summary struct {
	Games     int
	Completed int
	MinTurns  int
	MaxTurns  int
	AvgTurns  float64
	AvgTime   time.Duration
}

// Summarize plays games with seeds seed..seed+games-1 and aggregates the results.
func Summarize(settings engine.Settings, s Strategy, games int, seed int64, think time.Duration) (*Summary, error) {
	sum := &Summary{Games: games}
	var totalTurns int
	var totalTime time.Duration

	for i := 0; i < games; i++ {
		res, err := Simulate(settings, s, SimOptions{Seed: seed + int64(i), Think: think})
		if err != nil {
			return nil, err
		}
		if !res.Completed {
			continue
		}
		sum.Completed++
		totalTurns += res.Turns
		totalTime += res.Elapsed
		if sum.Completed == 1 || res.Turns < sum.MinTurns {
			sum.MinTurns = res.Turns
		}
		if res.Turns > sum.MaxTurns {
			sum.MaxTurns = res.Turns
		}
	}

	if sum.Completed > 0 {
		sum.AvgTurns = float64(totalTurns) / float64(sum.Completed)
		sum.AvgTime = totalTime / time.Duration(sum.Completed)
	}
	return sum, nil
}
