package engine

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// sessionState is rebuilt on every new game or restart.
type sessionState struct {
	moveCounter  int
	startedAt    time.Time
	lastChoiceID *int
	locked       bool
	completed    bool
	// completion has been scheduled for the current board
	finishing bool
}

func newSessionState() sessionState {
	return sessionState{moveCounter: 1}
}

// Game is the memory game controller. It is not safe for concurrent use:
// callers confine it to one goroutine, normally through a Loop, and give it a
// Scheduler whose callbacks run on that same goroutine.
type Game struct {
	rng       *rand.Rand
	scheduler Scheduler
	listener  Listener
	hooks     Hooks

	settings Settings
	gameID   string
	phase    Phase
	registry *Registry
	state    sessionState
	clock    *TurnClock
	history  []TurnRecord
	opened   bool

	pending  map[int]Cancel
	nextTask int
}

// Option configures a Game.
type Option func(*Game)

// WithRand sets the random source used for shuffling.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) {
		if rng != nil {
			g.rng = rng
		}
	}
}

// WithListener sets the event listener.
func WithListener(l Listener) Option {
	return func(g *Game) {
		if l != nil {
			g.listener = l
		}
	}
}

// WithHooks sets the settings-collaborator callbacks.
func WithHooks(h Hooks) Option {
	return func(g *Game) {
		g.hooks = h
	}
}

// NewGame creates an idle game. No board exists until Play or StartNewGame.
func NewGame(settings Settings, scheduler Scheduler, opts ...Option) (*Game, error) {
	if err := ValidateSettings(settings); err != nil {
		return nil, err
	}
	if scheduler == nil {
		return nil, ErrNoScheduler
	}

	g := &Game{
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		scheduler: scheduler,
		listener:  func(Event) {},
		settings:  settings,
		phase:     PhaseIdle,
		state:     newSessionState(),
		pending:   make(map[int]Cancel),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.clock = NewTurnClock(scheduler, func(e ElapsedTime) {
		g.emit(Event{Type: EventTimeChanged, Elapsed: &e})
	})

	return g, nil
}

// Open shows the settings dialog. Only the first call has an effect.
func (g *Game) Open() {
	if g.opened {
		return
	}
	g.opened = true
	if g.hooks.ShowSettings != nil {
		g.hooks.ShowSettings()
	}
	g.emit(Event{Type: EventSettingsModal, Visible: boolPtr(true)})
}

// Play applies new settings, closes the settings dialog and starts a game.
// It is refused while the preview holds the input lock.
func (g *Game) Play(settings Settings) error {
	if g.phase == PhasePreview {
		return ErrInputLocked
	}
	if err := ValidateSettings(settings); err != nil {
		return err
	}
	g.settings = settings
	if g.hooks.CloseSettings != nil {
		g.hooks.CloseSettings()
	}
	g.emit(Event{Type: EventSettingsModal, Visible: boolPtr(false)})
	return g.StartNewGame()
}

// StartNewGame deals a fresh board with the current settings. When the board
// cannot be generated the game is left untouched.
func (g *Game) StartNewGame() error {
	pictures, err := GenerateBoard(g.settings.PairCount(), g.rng)
	if err != nil {
		return err
	}

	g.reset()
	g.gameID = uuid.NewString()
	g.registry = NewRegistry(pictures)
	g.clock.Start()
	g.state.startedAt = g.clock.StartedAt()

	elapsed := g.clock.Elapsed()
	g.emit(Event{
		Type:        EventGameStarted,
		Cards:       g.registry.Views(),
		MoveCounter: g.state.moveCounter,
		Elapsed:     &elapsed,
	})

	if !g.settings.ShowCards {
		g.phase = PhaseRunning
		return nil
	}

	g.phase = PhasePreview
	g.registry.ShowAll()
	g.state.locked = true
	g.emit(Event{Type: EventPreviewStarted, Cards: g.registry.Views()})
	g.emit(Event{Type: EventInputLock, Locked: boolPtr(true)})
	g.schedule(PreviewDuration(g.settings.CardsQty), g.endPreview)
	return nil
}

// Restart starts over with the current settings. Allowed from any phase
// except the preview.
func (g *Game) Restart() error {
	if g.phase == PhasePreview {
		return ErrInputLocked
	}
	return g.StartNewGame()
}

// Shutdown cancels every pending task and stops the clock.
func (g *Game) Shutdown() {
	g.cancelPending()
	g.clock.Stop()
}

func (g *Game) endPreview() {
	g.registry.HideAll()
	g.state.locked = false
	g.phase = PhaseRunning
	g.emit(Event{Type: EventPreviewEnded, Cards: g.registry.Views()})
	g.emit(Event{Type: EventInputLock, Locked: boolPtr(false)})
}

// reset drops the current board's pending work and session state.
func (g *Game) reset() {
	hadBoard := g.registry != nil
	g.cancelPending()
	g.clock.Stop()
	g.state = newSessionState()
	g.history = nil
	if hadBoard {
		g.emit(Event{Type: EventGameReset})
	}
}

func (g *Game) scheduleCompletion() {
	if g.state.finishing || g.state.completed {
		return
	}
	g.state.finishing = true
	g.schedule(g.settings.Speed(), g.complete)
}

func (g *Game) complete() {
	if g.state.completed {
		return
	}
	g.state.completed = true
	g.state.locked = true
	g.phase = PhaseCompleted
	g.clock.Finish()

	elapsed := g.clock.Elapsed()
	g.emit(Event{Type: EventInputLock, Locked: boolPtr(true)})
	g.emit(Event{
		Type:        EventCompleted,
		MoveCounter: g.state.moveCounter,
		Elapsed:     &elapsed,
	})
}

// schedule runs fn after d unless the board it was scheduled for has been replaced.
func (g *Game) schedule(d time.Duration, fn func()) {
	gameID := g.gameID
	g.nextTask++
	key := g.nextTask

	cancel := g.scheduler.AfterFunc(d, func() {
		delete(g.pending, key)
		if g.gameID != gameID {
			return
		}
		fn()
	})
	g.pending[key] = cancel
}

func (g *Game) cancelPending() {
	for key, cancel := range g.pending {
		cancel()
		delete(g.pending, key)
	}
}

func (g *Game) emit(ev Event) {
	ev.GameID = g.gameID
	ev.Timestamp = g.scheduler.Now()
	g.listener(ev)
}

// Settings returns the settings of the current or next game.
func (g *Game) Settings() Settings {
	return g.settings
}

// Phase returns the controller phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// GameID identifies the current board. It is empty before the first game.
func (g *Game) GameID() string {
	return g.gameID
}

// MoveCounter starts at 1 and grows by one per resolved turn.
func (g *Game) MoveCounter() int {
	return g.state.moveCounter
}

// PendingTasks returns how many deferred tasks are waiting.
func (g *Game) PendingTasks() int {
	return len(g.pending)
}

// State returns a snapshot of the game.
func (g *Game) State() *GameState {
	state := &GameState{
		GameID:      g.gameID,
		Phase:       g.phase,
		Settings:    g.settings,
		Cards:       []CardView{},
		MoveCounter: g.state.moveCounter,
		Elapsed:     g.clock.Elapsed(),
		InputLocked: g.state.locked,
		SelectedIDs: []int{},
		Completed:   g.state.completed,
		StartedAt:   g.state.startedAt,
		TurnHistory: append([]TurnRecord{}, g.history...),
	}
	if g.state.lastChoiceID != nil {
		id := *g.state.lastChoiceID
		state.LastChoiceID = &id
	}
	if g.registry != nil {
		state.Cards = g.registry.Views()
		state.RemainingCards = g.registry.ActiveCount()
		for _, card := range g.registry.SelectedCards() {
			state.SelectedIDs = append(state.SelectedIDs, card.ArrayID)
		}
	}
	return state
}
