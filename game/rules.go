package game

// Tie is returned by winner resolution when neither side wins.
const Tie = -1

// Rules holds the constants of a Pazaak match.
type Rules struct {
	Target        int // Total a side tries to reach without exceeding
	MaxBoardCards int // Board size that wins the round outright
	WinningScore  int // Round wins needed to take the match
	HandSize      int
	SideDeckSize  int
}

func StandardRules() Rules {
	return Rules{
		Target:        20,
		MaxBoardCards: 9,
		WinningScore:  3,
		HandSize:      4,
		SideDeckSize:  10,
	}
}

// Busted reports whether the board total exceeds the target.
func (r Rules) Busted(b Board) bool {
	return Total(b) > r.Target
}

// Winner resolves a round by bust, then distance to target, then active tiebreaker.
func (r Rules) Winner(boards [2]Board) int {
	distances := [2]int{r.Target - Total(boards[0]), r.Target - Total(boards[1])}
	busted0, busted1 := distances[0] < 0, distances[1] < 0

	switch {
	case busted0 && busted1:
		return Tie
	case busted0:
		return 1
	case busted1:
		return 0
	case distances[0] < distances[1]:
		return 0
	case distances[1] < distances[0]:
		return 1
	}

	tb0, tb1 := ActiveTiebreaker(boards[0]), ActiveTiebreaker(boards[1])
	switch {
	case tb0 && !tb1:
		return 0
	case tb1 && !tb0:
		return 1
	}
	return Tie
}

// CardCountWinner returns the side that filled its board without busting, or Tie.
func (r Rules) CardCountWinner(boards [2]Board) int {
	for side, board := range boards {
		if len(board) >= r.MaxBoardCards && Total(board) <= r.Target {
			return side
		}
	}
	return Tie
}

// Resolve applies the card-count rule with priority over normal resolution.
func (r Rules) Resolve(boards [2]Board) int {
	if side := r.CardCountWinner(boards); side != Tie {
		return side
	}
	return r.Winner(boards)
}
