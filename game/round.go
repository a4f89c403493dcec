package game

// Round owns the boards and draw deck of one round of a match. Boards are
// indexed by seat.
type Round struct {
	Boards   [2]Board
	Deck     []Card // Drawn from the end
	Turn     int
	Winner   int
	Resolved bool
}

func NewRound(deck []Card) *Round {
	return &Round{Deck: deck, Winner: Tie}
}

// Draw pops the top card of the round deck.
func (r *Round) Draw() (Card, error) {
	if len(r.Deck) == 0 {
		return Card{}, ErrDeckExhausted
	}
	card := r.Deck[len(r.Deck)-1]
	r.Deck = r.Deck[:len(r.Deck)-1]
	return card, nil
}

// Play appends a card to a side's board and applies its effect. The board is
// left untouched when the effect is illegal.
func (r *Round) Play(side int, card Card) error {
	board := append(r.Boards[side].Copy(), card)
	if err := ApplyEffect(board); err != nil {
		return err
	}
	r.Boards[side] = board
	return nil
}

func (r *Round) Total(side int) int {
	return Total(r.Boards[side])
}

func (r *Round) ActiveTiebreaker(side int) bool {
	return ActiveTiebreaker(r.Boards[side])
}

// Resolve records the round's winner using the given rules.
func (r *Round) Resolve(rules Rules) int {
	r.Winner = rules.Resolve(r.Boards)
	r.Resolved = true
	return r.Winner
}

// Copy returns a deep copy of the round.
func (r *Round) Copy() *Round {
	deck := make([]Card, len(r.Deck))
	copy(deck, r.Deck)
	return &Round{
		Boards:   [2]Board{r.Boards[0].Copy(), r.Boards[1].Copy()},
		Deck:     deck,
		Turn:     r.Turn,
		Winner:   r.Winner,
		Resolved: r.Resolved,
	}
}
