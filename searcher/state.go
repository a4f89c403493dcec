package searcher

import (
	"pazaak/game"
	"pazaak/match"
	"pazaak/utils"
)

const (
	self     = 0
	opponent = 1
)

type side struct {
	board       game.Board
	hand        []game.Card
	status      match.ParticipantStatus
	drawPending bool // Draws before its next action
}

// state is a self-contained copy of a round seen from the searching player.
// Seat 0 is always the searching player.
type state struct {
	sides  [2]side
	toMove int
	pile   []game.Card // Drawn from the end
	rules  game.Rules
	depth  int
	over   bool
}

func newState(view match.View) *state {
	return &state{
		sides: [2]side{
			{board: view.Board.Copy(), hand: game.CopyCards(view.Hand), status: view.PlayerStatus},
			{board: view.OpponentBoard.Copy(), status: view.OpponentStatus},
		},
		toMove: self,
		rules:  view.Rules,
	}
}

func (s *state) clone() *state {
	c := *s
	for i := range s.sides {
		c.sides[i].board = s.sides[i].board.Copy()
		c.sides[i].hand = game.CopyCards(s.sides[i].hand)
	}
	c.pile = game.CopyCards(s.pile)
	return &c
}

func (s *state) total(seat int) int {
	return game.Total(s.sides[seat].board)
}

// play returns the board after card is played on seat, or the effect error.
func (s *state) play(seat int, card game.Card) (game.Board, error) {
	board := append(s.sides[seat].board.Copy(), card)
	if err := game.ApplyEffect(board); err != nil {
		return nil, err
	}
	return board, nil
}

func (s *state) apply(action game.Action) error {
	sd := &s.sides[s.toMove]
	switch action.Kind {
	case game.ActionPlay:
		idx := utils.FindIndexFunc(sd.hand, action.Card.Matches)
		if idx < 0 {
			return game.ErrInvalidAction
		}
		board, err := s.play(s.toMove, *action.Card)
		if err != nil {
			return err
		}
		sd.board = board
		sd.hand = utils.RemoveAt(sd.hand, idx)
		s.checkCardCount()
	case game.ActionEnd:
		if s.rules.Busted(sd.board) {
			sd.status = match.Busted
		}
		s.passTurn()
	case game.ActionStand:
		if s.rules.Busted(sd.board) {
			sd.status = match.Busted
		} else {
			sd.status = match.Standing
		}
		s.passTurn()
	default:
		return game.ErrInvalidAction
	}
	return nil
}

func (s *state) passTurn() {
	next := 1 - s.toMove
	if s.sides[next].status != match.Playing {
		next = s.toMove
	}
	if s.sides[next].status != match.Playing {
		s.over = true
		return
	}
	s.toMove = next
	s.sides[next].drawPending = true
}

// draw handles the turn-start draw of the side to move.
func (s *state) draw() {
	sd := &s.sides[s.toMove]
	sd.drawPending = false
	if len(s.pile) == 0 {
		s.over = true
		return
	}
	last := len(s.pile) - 1
	sd.board = append(sd.board, s.pile[last])
	s.pile = s.pile[:last]
	s.checkCardCount()
}

func (s *state) checkCardCount() {
	boards := [2]game.Board{s.sides[0].board, s.sides[1].board}
	if s.rules.CardCountWinner(boards) != game.Tie {
		s.over = true
	}
}

func (s *state) winner() int {
	return s.rules.Resolve([2]game.Board{s.sides[0].board, s.sides[1].board})
}

// variants expands a hand card into the polarities it may be played with.
func variants(card game.Card) []game.Card {
	if !card.HasPolarity() {
		return []game.Card{card}
	}
	return []game.Card{card.WithPolarity(game.Positive), card.WithPolarity(game.Negative)}
}

// legalActions lists the plays the effect engine accepts followed by end and stand.
func (s *state) legalActions(seat int) []game.Action {
	var actions []game.Action
	for _, card := range s.sides[seat].hand {
		for _, variant := range variants(card) {
			if _, err := s.play(seat, variant); err == nil {
				actions = append(actions, game.PlayAction(variant))
			}
		}
	}
	return append(actions, game.EndAction(), game.StandAction())
}

// rootActions is legalActions for the searching player, restricted to
// recovering plays while over the target. Actions sharing a key are
// aggregated once.
func (s *state) rootActions() []game.Action {
	busted := s.total(self) > s.rules.Target
	var actions []game.Action
	var keys []string
	for _, action := range s.legalActions(self) {
		if utils.FindIndex(keys, action.Key()) >= 0 {
			continue
		}
		keys = append(keys, action.Key())
		if action.Kind == game.ActionPlay && busted {
			board, _ := s.play(self, *action.Card)
			if game.Total(board) > s.rules.Target {
				continue
			}
		}
		actions = append(actions, action)
	}
	return actions
}
