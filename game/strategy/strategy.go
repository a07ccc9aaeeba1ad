package strategy

import (
	"math/rand"
	"sort"

	"github.com/wricardo/mcp-training/memorygame/game/engine"
)

// Strategy picks the next card to select from the visible board.
type Strategy interface {
	// Observe records what the board currently shows.
	Observe(cards []engine.CardView)
	// Next returns the array ID to select, or false when no card can be picked.
	Next(cards []engine.CardView) (int, bool)
	// Reset forgets everything seen so far.
	Reset()
}

// New returns the strategy registered under name ("memory" or "random").
func New(name string, rng *rand.Rand) (Strategy, bool) {
	switch name {
	case "memory", "":
		return NewMemory(), true
	case "random":
		return NewRandom(rng), true
	default:
		return nil, false
	}
}

// Memory never forgets a picture it has seen and completes a known pair
// whenever it can.
type Memory struct {
	seen map[int]int
}

// NewMemory creates a Memory strategy.
func NewMemory() *Memory {
	return &Memory{seen: make(map[int]int)}
}

// Reset implements Strategy.
func (m *Memory) Reset() {
	m.seen = make(map[int]int)
}

// Observe implements Strategy.
func (m *Memory) Observe(cards []engine.CardView) {
	for _, card := range cards {
		switch {
		case card.State == engine.CardMatched:
			delete(m.seen, card.ArrayID)
		case card.PictureNumber != nil:
			m.seen[card.ArrayID] = *card.PictureNumber
		}
	}
}

// Known returns how many unmatched cards have been seen.
func (m *Memory) Known() int {
	return len(m.seen)
}

// Next implements Strategy.
func (m *Memory) Next(cards []engine.CardView) (int, bool) {
	hidden, selected := split(cards)
	if len(hidden) == 0 {
		return 0, false
	}

	// Second pick of a turn: go for the partner if we know it.
	if len(selected) == 1 {
		if picture, ok := m.seen[selected[0]]; ok {
			for _, id := range hidden {
				if p, ok := m.seen[id]; ok && p == picture {
					return id, true
				}
			}
		}
		return m.unknownOr(hidden), true
	}

	// First pick: start a known pair before exploring.
	byPicture := make(map[int]int)
	for _, id := range hidden {
		picture, ok := m.seen[id]
		if !ok {
			continue
		}
		if _, dup := byPicture[picture]; dup {
			return byPicture[picture], true
		}
		byPicture[picture] = id
	}
	return m.unknownOr(hidden), true
}

// unknownOr returns the first hidden card never seen, falling back to the
// first hidden card.
func (m *Memory) unknownOr(hidden []int) int {
	for _, id := range hidden {
		if _, ok := m.seen[id]; !ok {
			return id
		}
	}
	return hidden[0]
}

// Random picks any face-down card and remembers nothing.
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a Random strategy.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

// Reset implements Strategy.
func (r *Random) Reset() {}

// Observe implements Strategy.
func (r *Random) Observe(cards []engine.CardView) {}

// Next implements Strategy.
func (r *Random) Next(cards []engine.CardView) (int, bool) {
	hidden, _ := split(cards)
	if len(hidden) == 0 {
		return 0, false
	}
	return hidden[r.rng.Intn(len(hidden))], true
}

// split returns the face-down cards and the cards selected in the current turn.
// With two selected cards (an unresolved instant-mode mismatch) the next pick
// starts a new turn, so selected is reported empty.
func split(cards []engine.CardView) (hidden, selected []int) {
	for _, card := range cards {
		switch card.State {
		case engine.CardHidden:
			hidden = append(hidden, card.ArrayID)
		case engine.CardSelected:
			selected = append(selected, card.ArrayID)
		}
	}
	sort.Ints(hidden)
	if len(selected) != 1 {
		selected = nil
	}
	return hidden, selected
}
