package game

import "fmt"

// ActionKind represents the type of action a player can perform.
type ActionKind string

const (
	ActionPlay  ActionKind = "play"
	ActionEnd   ActionKind = "end"
	ActionStand ActionKind = "stand"
)

// Action is a tagged union: play carries the card (with its declared
// polarity), end and stand carry nothing.
type Action struct {
	Kind ActionKind `json:"kind"`
	Card *Card      `json:"card,omitempty"`
}

func PlayAction(card Card) Action {
	return Action{Kind: ActionPlay, Card: &card}
}

func EndAction() Action {
	return Action{Kind: ActionEnd}
}

func StandAction() Action {
	return Action{Kind: ActionStand}
}

// Validate checks the action is well formed.
func (a Action) Validate() error {
	switch a.Kind {
	case ActionPlay:
		if a.Card == nil {
			return fmt.Errorf("%w: play without a card", ErrInvalidAction)
		}
		return nil
	case ActionEnd, ActionStand:
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidAction, a.Kind)
	}
}

// Key identifies the action for aggregation. Flip and tiebreaker variants of
// the same card get distinct keys.
func (a Action) Key() string {
	if a.Kind != ActionPlay || a.Card == nil {
		return string(a.Kind)
	}
	return fmt.Sprintf("%s:%s:%s", a.Kind, a.Card.ID, a.Card.Polarity)
}

func (a Action) String() string {
	if a.Kind == ActionPlay && a.Card != nil {
		return fmt.Sprintf("play %s", a.Card)
	}
	return string(a.Kind)
}
