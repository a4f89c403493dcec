package game

import "errors"

var (
	// ErrIllegalPlay is returned when a card effect cannot be applied to a board.
	ErrIllegalPlay = errors.New("cannot play double after double/invert")
	// ErrDeckExhausted means a round ran out of cards to draw. Main decks are sized
	// to exceed every possible draw, so this indicates a broken round.
	ErrDeckExhausted = errors.New("round deck exhausted")
	ErrInvalidCard   = errors.New("invalid card")
	ErrInvalidDeck   = errors.New("invalid deck")
	ErrInvalidAction = errors.New("invalid action")
)
