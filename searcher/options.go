package searcher

import (
	"pazaak/experiments/metrics"
	"pazaak/game"
)

type Option func(mc *MonteCarlo)

// OpponentPolicy selects how the opponent acts inside rollouts.
type OpponentPolicy string

const (
	OpponentHeuristic OpponentPolicy = "heuristic"
	OpponentRandom    OpponentPolicy = "random"
)

func ParseOpponentPolicy(s string) (OpponentPolicy, bool) {
	switch OpponentPolicy(s) {
	case OpponentHeuristic, OpponentRandom:
		return OpponentPolicy(s), true
	}
	return "", false
}

// WithSimulations sets the number of rollouts per root action.
func WithSimulations(simulations int) Option {
	return func(mc *MonteCarlo) {
		if simulations > 0 {
			mc.simulations = simulations
		}
	}
}

// WithCutoff bounds the number of actions a rollout may take.
func WithCutoff(depth int) Option {
	return func(mc *MonteCarlo) {
		if depth > 0 {
			mc.cutoff = depth
		}
	}
}

func WithGoroutines(goroutines int) Option {
	return func(mc *MonteCarlo) {
		if goroutines > 0 {
			mc.goroutines = goroutines
		}
	}
}

func WithOpponentPolicy(policy OpponentPolicy) Option {
	return func(mc *MonteCarlo) {
		if policy != "" {
			mc.opponent = policy
		}
	}
}

func WithDeckModel(model DeckModel) Option {
	return func(mc *MonteCarlo) {
		if model != nil {
			mc.deckModel = model
		}
	}
}

// WithSeed makes searches reproducible. A zero seed keeps the time-based default.
func WithSeed(seed uint64) Option {
	return func(mc *MonteCarlo) {
		if seed != 0 {
			mc.seed = seed
		}
	}
}

// WithEvaluationFn replaces the heuristic scoring rollouts that hit the cutoff.
func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(mc *MonteCarlo) {
		if evaluate != nil {
			mc.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(mc *MonteCarlo) {
		mc.newCollector = metrics.NewCollector
	}
}
