package engine

// Card is a single card on the board.
type Card struct {
	ArrayID       int
	PictureNumber int
	Selected      bool
	FaceUp        bool
	// Removed cards have left the active board and can no longer be selected.
	Removed bool
	// Disabled is the final matched state.
	Disabled bool
}

// State derives the rendering state of the card.
func (c *Card) State() CardState {
	switch {
	case c.Disabled:
		return CardMatched
	case c.Selected:
		return CardSelected
	case c.FaceUp:
		return CardRevealed
	default:
		return CardHidden
	}
}

// Registry holds the live board, indexed by ArrayID.
type Registry struct {
	cards  []*Card
	active int
}

// NewRegistry creates a registry from a generated sequence of pictures.
func NewRegistry(pictures []int) *Registry {
	cards := make([]*Card, len(pictures))
	for i, p := range pictures {
		cards[i] = &Card{ArrayID: i, PictureNumber: p}
	}
	return &Registry{cards: cards, active: len(cards)}
}

// Card returns the card with the given id.
func (r *Registry) Card(arrayID int) (*Card, bool) {
	if arrayID < 0 || arrayID >= len(r.cards) {
		return nil, false
	}
	return r.cards[arrayID], true
}

// Len is the board size including removed cards.
func (r *Registry) Len() int {
	return len(r.cards)
}

// ToggleSelect turns a hidden card face up and marks it selected. It returns
// false without changes when the card is already selected, removed, or still
// face up from an earlier turn.
func (r *Registry) ToggleSelect(arrayID int) bool {
	card, ok := r.Card(arrayID)
	if !ok || card.Selected || card.Removed || card.FaceUp {
		return false
	}
	card.Selected = !card.Selected
	card.FaceUp = true
	return true
}

// SelectedCards returns the Selection Set in board order.
func (r *Registry) SelectedCards() []*Card {
	var selected []*Card
	for _, card := range r.cards {
		if card.Selected && !card.Removed {
			selected = append(selected, card)
		}
	}
	return selected
}

// RemoveMatched takes cards out of the active board.
func (r *Registry) RemoveMatched(ids ...int) {
	for _, id := range ids {
		card, ok := r.Card(id)
		if !ok || card.Removed {
			continue
		}
		card.Removed = true
		card.Selected = false
		r.active--
	}
}

// IsEmpty is true once every card has been removed.
func (r *Registry) IsEmpty() bool {
	return r.active == 0
}

// ActiveCount returns the number of cards still in play.
func (r *Registry) ActiveCount() int {
	return r.active
}

// Deselect clears the selected flag, leaving the card face up.
func (r *Registry) Deselect(ids ...int) {
	for _, id := range ids {
		if card, ok := r.Card(id); ok {
			card.Selected = false
		}
	}
}

// Hide flips active cards face down. It returns the ids that changed.
func (r *Registry) Hide(ids ...int) []int {
	var changed []int
	for _, id := range ids {
		card, ok := r.Card(id)
		if !ok || card.Removed || !card.FaceUp {
			continue
		}
		card.Selected = false
		card.FaceUp = false
		changed = append(changed, id)
	}
	return changed
}

// Disable moves removed cards into their final matched state. It returns the ids that changed.
func (r *Registry) Disable(ids ...int) []int {
	var changed []int
	for _, id := range ids {
		card, ok := r.Card(id)
		if !ok || !card.Removed || card.Disabled {
			continue
		}
		card.Disabled = true
		card.FaceUp = true
		changed = append(changed, id)
	}
	return changed
}

// ShowAll turns every card face up (preview).
func (r *Registry) ShowAll() {
	for _, card := range r.cards {
		card.FaceUp = true
	}
}

// HideAll turns every active, unselected card face down.
func (r *Registry) HideAll() {
	for _, card := range r.cards {
		if !card.Removed && !card.Selected {
			card.FaceUp = false
		}
	}
}

// Views builds the client-facing card list. Face-down cards do not expose their picture.
func (r *Registry) Views() []CardView {
	views := make([]CardView, len(r.cards))
	for i, card := range r.cards {
		cv := CardView{
			ArrayID: card.ArrayID,
			State:   card.State(),
		}
		if card.FaceUp {
			picture := card.PictureNumber
			cv.PictureNumber = &picture
		}
		views[i] = cv
	}
	return views
}
