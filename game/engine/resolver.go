package engine

import "fmt"

// Select reveals a card and resolves the turn when two cards are face up.
// Selections that are not allowed right now are reported through
// SelectOutcome.Reason, never as errors.
func (g *Game) Select(arrayID int) (SelectOutcome, error) {
	out := SelectOutcome{ArrayID: arrayID}

	if g.registry == nil {
		out.Reason = ReasonNotRunning
		return out, nil
	}
	if _, ok := g.registry.Card(arrayID); !ok {
		return out, fmt.Errorf("%w: %d", ErrCardNotFound, arrayID)
	}

	switch {
	case g.state.locked:
		out.Reason = ReasonInputLocked
		return out, nil
	case g.phase != PhaseRunning:
		out.Reason = ReasonNotRunning
		return out, nil
	case len(g.registry.SelectedCards()) >= maxPendingSelections:
		out.Reason = ReasonSelectionFull
		return out, nil
	}

	if !g.registry.ToggleSelect(arrayID) {
		out.Reason = ReasonNotSelectable
		return out, nil
	}
	out.Accepted = true
	id := arrayID
	g.state.lastChoiceID = &id
	g.emitCards(arrayID)

	selected := g.registry.SelectedCards()
	switch len(selected) {
	case 2:
		first, second := selected[0], selected[1]
		if second.ArrayID != arrayID {
			first, second = second, first
		}
		out.Turn = g.resolvePair(first, second)
	case 3:
		var stale []int
		for _, card := range selected {
			if card.ArrayID != arrayID {
				stale = append(stale, card.ArrayID)
			}
		}
		out.Hidden = g.registry.Hide(stale...)
		g.emitCards(out.Hidden...)
	}

	if g.registry.IsEmpty() {
		out.BoardCleared = true
		g.scheduleCompletion()
	}

	return out, nil
}

// resolvePair counts one turn for first and second. second is the card just selected.
func (g *Game) resolvePair(first, second *Card) *TurnRecord {
	g.state.moveCounter++
	record := TurnRecord{
		Turn:          len(g.history) + 1,
		FirstID:       first.ArrayID,
		SecondID:      second.ArrayID,
		FirstPicture:  first.PictureNumber,
		SecondPicture: second.PictureNumber,
		Matched:       first.PictureNumber == second.PictureNumber,
		MoveCounter:   g.state.moveCounter,
		Timestamp:     g.scheduler.Now(),
	}
	g.history = append(g.history, record)
	g.emit(Event{Type: EventMovesChanged, MoveCounter: g.state.moveCounter, Turn: &record})

	ids := []int{first.ArrayID, second.ArrayID}
	switch {
	case record.Matched:
		g.registry.RemoveMatched(ids...)
		g.emitCards(ids...)
		g.schedule(g.settings.MatchDelay(), func() {
			g.emitCards(g.registry.Disable(ids...)...)
		})
	case g.settings.Instant():
		// both stay selected until the next pick hides them
	default:
		g.registry.Deselect(ids...)
		g.emitCards(ids...)
		g.schedule(g.settings.Speed(), func() {
			var waiting []int
			for _, id := range ids {
				if card, ok := g.registry.Card(id); ok && card.FaceUp && !card.Selected && !card.Removed {
					waiting = append(waiting, id)
				}
			}
			g.emitCards(g.registry.Hide(waiting...)...)
		})
	}

	return &record
}

// emitCards reports the current view of the given cards.
func (g *Game) emitCards(ids ...int) {
	if len(ids) == 0 {
		return
	}
	views := g.registry.Views()
	cards := make([]CardView, 0, len(ids))
	for _, id := range ids {
		if id >= 0 && id < len(views) {
			cards = append(cards, views[id])
		}
	}
	g.emit(Event{Type: EventCardChanged, Cards: cards})
}
