// Package searcher implements a flat Monte-Carlo planner: every legal root
// action is scored by the average reward of independent randomized rollouts
// of the rest of the round.
package searcher

import (
	"errors"

	"pazaak/game"
)

const (
	Win       = 1.0
	Loss      = 0.0
	TieReward = 0.5
)

var ErrNotActing = errors.New("viewer is not expected to act")

// ActionValue is the average rollout reward of one root action.
type ActionValue struct {
	Action game.Action
	Value  float64
}
