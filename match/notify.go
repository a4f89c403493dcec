package match

import "github.com/google/uuid"

// EventType identifies an outbound notification.
type EventType string

const (
	EventState            EventType = "state"
	EventRoundResult      EventType = "round_result"
	EventMatchResult      EventType = "match_result"
	EventRematchRequested EventType = "rematch_requested"
	EventRematchAccepted  EventType = "rematch_accepted"
)

// Event is a player-scoped notification. Only the payload matching Type is set.
type Event struct {
	Type   EventType    `json:"type"`
	State  *View        `json:"state,omitempty"`
	Round  *RoundResult `json:"round,omitempty"`
	Result *MatchResult `json:"result,omitempty"`
}

type RoundResult struct {
	Round         int       `json:"round"`
	Winner        uuid.UUID `json:"winner"` // uuid.Nil on a tie
	Tie           bool      `json:"tie"`
	Score         int       `json:"score"`
	OpponentScore int       `json:"opponentScore"`
}

type MatchResult struct {
	Won           bool `json:"won"`
	Score         int  `json:"score"`
	OpponentScore int  `json:"opponentScore"`
}

// Notifier delivers events to one connected participant. Matches call it while
// holding their lock, so implementations must not call back into the match
// synchronously.
type Notifier interface {
	Notify(participantID uuid.UUID, ev Event)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(participantID uuid.UUID, ev Event)

func (f NotifierFunc) Notify(participantID uuid.UUID, ev Event) {
	f(participantID, ev)
}
