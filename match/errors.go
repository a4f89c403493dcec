package match

import (
	"errors"
	"fmt"
)

var (
	ErrMatchFull    = errors.New("match full")
	ErrNotFound     = errors.New("not found")
	ErrInvalidToken = errors.New("invalid token")

	// Invariant violations
	ErrNoRound            = errors.New("match has no current round")
	ErrMissingParticipant = errors.New("match is missing a participant")
)

// Reason classifies why an action was rejected.
type Reason string

const (
	ReasonUnknownParticipant Reason = "unknown_participant"
	ReasonInvalidAction      Reason = "invalid_action"
	ReasonNotInProgress      Reason = "not_in_progress"
	ReasonNotYourTurn        Reason = "not_your_turn"
	ReasonNotPlaying         Reason = "not_playing"
	ReasonEmptyHand          Reason = "empty_hand"
	ReasonCardNotInHand      Reason = "card_not_in_hand"
	ReasonIllegalDouble      Reason = "illegal_double"
	ReasonNotFinished        Reason = "not_finished"
	ReasonNoRematchRequest   Reason = "no_rematch_request"
	ReasonOwnRematchRequest  Reason = "own_rematch_request"
)

// ActionError is a user-correctable rejection. It never changes match state.
type ActionError struct {
	Reason  Reason
	Message string
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action rejected (%s): %s", e.Reason, e.Message)
}

func reject(reason Reason, format string, args ...any) error {
	return &ActionError{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// RejectionReason extracts the reason of an ActionError, if err is one.
func RejectionReason(err error) (Reason, bool) {
	var actionErr *ActionError
	if errors.As(err, &actionErr) {
		return actionErr.Reason, true
	}
	return "", false
}
