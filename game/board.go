package game

// Board is the ordered list of cards one side has played this round.
type Board []Card

// Copy returns an independent copy of the board.
func (b Board) Copy() Board {
	if b == nil {
		return nil
	}
	out := make(Board, len(b))
	copy(out, b)
	return out
}

// Last returns the most recently played card.
func (b Board) Last() (Card, bool) {
	if len(b) == 0 {
		return Card{}, false
	}
	return b[len(b)-1], true
}

// Total folds the effective values of every card on the board.
func Total(b Board) int {
	total := 0
	for _, c := range b {
		total += EffectiveValue(c)
	}
	return total
}

// ActiveTiebreaker reports whether the last card on the board is a tiebreaker,
// regardless of its polarity.
func ActiveTiebreaker(b Board) bool {
	last, ok := b.Last()
	return ok && last.Kind == Tiebreaker
}

// CanFollow reports whether card may be played on top of the board.
func CanFollow(b Board, card Card) bool {
	if card.Kind != Double {
		return true
	}
	last, ok := b.Last()
	return ok && last.Kind != Double && last.Kind != Invert
}

// ApplyEffect realises the effect of the last card on the board. It must be
// called exactly once per play, after the card has been appended.
func ApplyEffect(b Board) error {
	if len(b) == 0 {
		return nil
	}
	last := len(b) - 1
	played := b[last]

	switch played.Kind {
	case Double:
		if last == 0 {
			return ErrIllegalPlay
		}
		prev := b[last-1]
		if prev.Kind == Double || prev.Kind == Invert {
			return ErrIllegalPlay
		}
		b[last] = Card{ID: played.ID, Kind: Special, Value: EffectiveValue(prev)}
	case Invert:
		for i := 0; i < last; i++ {
			invertEntry(&b[i], played.Targets)
		}
	}
	return nil
}

func invertEntry(c *Card, targets [2]int) {
	switch c.Kind {
	case Double, Invert:
		return
	case Flip, Tiebreaker:
		if c.Value == targets[0] || c.Value == targets[1] {
			c.Polarity = c.Polarity.Toggle()
		}
		return
	}
	magnitude := abs(EffectiveValue(*c))
	if magnitude == targets[0] || magnitude == targets[1] {
		c.Value = -c.Value
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
