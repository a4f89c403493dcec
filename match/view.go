package match

import (
	"github.com/google/uuid"

	"pazaak/game"
)

// View is the player-scoped projection of a match. It never exposes the
// opponent's hand or either personal deck, and all slices are copies.
type View struct {
	MatchID       uuid.UUID         `json:"matchId"`
	Name          string            `json:"name"`
	Status        Status            `json:"status"`
	ParticipantID uuid.UUID         `json:"participantId"`
	Seat          int               `json:"seat"`
	Round         int               `json:"round"`
	YourTurn      bool              `json:"yourTurn"`
	Hand          []game.Card       `json:"hand"`
	Board         game.Board        `json:"board"`
	Total         int               `json:"total"`
	PlayerStatus  ParticipantStatus `json:"playerStatus"`
	Score         int               `json:"score"`

	OpponentBoard     game.Board        `json:"opponentBoard"`
	OpponentTotal     int               `json:"opponentTotal"`
	OpponentStatus    ParticipantStatus `json:"opponentStatus"`
	OpponentHandSize  int               `json:"opponentHandSize"`
	OpponentScore     int               `json:"opponentScore"`
	OpponentConnected bool              `json:"opponentConnected"`
	Seated            bool              `json:"seated"` // Both seats filled

	RematchRequested bool `json:"rematchRequested"` // By the opponent

	Rules game.Rules `json:"-"`
}

// Acting reports whether the viewer is expected to submit the next action.
func (v View) Acting() bool {
	return v.Status == StatusInProgress && v.YourTurn && v.PlayerStatus == Playing
}

func (m *Match) view(side int) View {
	self := m.Participants[side]
	v := View{
		MatchID:       m.ID,
		Name:          m.Name,
		Status:        m.Status,
		ParticipantID: self.ID,
		Seat:          side,
		Round:         len(m.Rounds) - 1,
		Hand:          game.CopyCards(self.Hand),
		PlayerStatus:  self.Status,
		Score:         m.Score[side],
		Rules:         m.rules,
	}
	if round := m.current(); round != nil {
		v.Board = round.Boards[side].Copy()
		v.Total = round.Total(side)
		v.YourTurn = m.Status == StatusInProgress && m.Turn == side
	}

	opponent := m.Participants[1-side]
	if opponent == nil {
		return v
	}
	v.Seated = true
	v.OpponentStatus = opponent.Status
	v.OpponentHandSize = len(opponent.Hand)
	v.OpponentScore = m.Score[1-side]
	v.OpponentConnected = opponent.Connected()
	v.RematchRequested = m.rematchRequestedBy == opponent.ID
	if round := m.current(); round != nil {
		v.OpponentBoard = round.Boards[1-side].Copy()
		v.OpponentTotal = round.Total(1 - side)
	}
	return v
}
