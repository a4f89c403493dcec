package searcher

import (
	"math"

	"golang.org/x/exp/rand"

	"pazaak/game"
)

// Rollout policy hyperparameters

const Temperature = 1.4 // Softmax temperature of the searching player's rollout policy

const (
	exactBonus      = 6.0  // Reaching the target
	exactPreference = 4.0  // Extra weight on plays reaching the target
	nearBonus       = 2.5  // Totals one or two below the target
	bustPenalty     = -8.0 // Busting with no card left to recover
	lowTotalPenalty = -1.5 // Spending a card while the total is still low
	wastedInvert    = -3.0 // Invert that changes nothing
	lowTotal        = 12
	standThreshold  = 18
)

// scoreAction rates an action for the side to move. Illegal plays score -Inf.
func scoreAction(s *state, seat int, action game.Action) float64 {
	sd := s.sides[seat]
	current := game.Total(sd.board)
	target := s.rules.Target

	switch action.Kind {
	case game.ActionEnd:
		switch {
		case current > target:
			return bustPenalty
		case current < lowTotal:
			return 1.0
		case current < standThreshold-1:
			return 0.5
		default:
			return -0.5
		}
	case game.ActionStand:
		switch {
		case current > target:
			return bustPenalty
		case current == target:
			return exactBonus
		case current >= standThreshold:
			return nearBonus
		default:
			return float64(current-(standThreshold-1)) * 0.8
		}
	}

	board, err := s.play(seat, *action.Card)
	if err != nil {
		return math.Inf(-1)
	}
	total := game.Total(board)
	score := 0.0
	switch {
	case total > target:
		if canRecover(s, seat, board, action.Card) {
			score = bustPenalty / 2
		} else {
			score = bustPenalty
		}
	case total == target:
		score = exactBonus + exactPreference
	case total >= standThreshold:
		score = nearBonus
	case total < lowTotal:
		score = lowTotalPenalty
	default:
		score = float64(total-lowTotal) * 0.3
	}
	if action.Card.Kind == game.Invert && sameEffect(sd.board, board) {
		score += wastedInvert
	}
	return score
}

// canRecover reports whether another hand card brings board back under the target.
func canRecover(s *state, seat int, board game.Board, played *game.Card) bool {
	for _, card := range s.sides[seat].hand {
		if card.ID == played.ID {
			continue
		}
		for _, variant := range variants(card) {
			next := append(board.Copy(), variant)
			if game.ApplyEffect(next) == nil && game.Total(next) <= s.rules.Target {
				return true
			}
		}
	}
	return false
}

// sameEffect reports whether after only differs from before by the appended marker.
func sameEffect(before, after game.Board) bool {
	for i := range before {
		if game.EffectiveValue(before[i]) != game.EffectiveValue(after[i]) {
			return false
		}
	}
	return true
}

// softmax samples an action with probability proportional to exp(score/temperature).
func softmax(actions []game.Action, scores []float64, temperature float64, rng *rand.Rand) game.Action {
	best := math.Inf(-1)
	for _, score := range scores {
		best = math.Max(best, score)
	}
	weights := make([]float64, len(scores))
	sum := 0.0
	for i, score := range scores {
		if math.IsInf(score, -1) {
			continue
		}
		weights[i] = math.Exp((score - best) / temperature)
		sum += weights[i]
	}
	sampled := rng.Float64() * sum
	cumulative := 0.0
	last := len(actions) - 1
	for i, weight := range weights {
		cumulative += weight
		if weight > 0 && sampled < cumulative {
			return actions[i]
		}
		if weight > 0 {
			last = i
		}
	}
	return actions[last] // Fallback in case of rounding errors
}

func selfPolicy(s *state, rng *rand.Rand) game.Action {
	actions := candidates(s, self)
	scores := make([]float64, len(actions))
	for i, action := range actions {
		scores[i] = scoreAction(s, self, action)
	}
	return softmax(actions, scores, Temperature, rng)
}

// candidates lists every hand variant, legal or not, followed by end and stand.
func candidates(s *state, seat int) []game.Action {
	var actions []game.Action
	for _, card := range s.sides[seat].hand {
		for _, variant := range variants(card) {
			actions = append(actions, game.PlayAction(variant))
		}
	}
	return append(actions, game.EndAction(), game.StandAction())
}

// greedyPolicy plays the card landing closest to the target without busting
// when it improves the total, then stands on a good total, else ends.
func greedyPolicy(s *state, seat int) game.Action {
	current := s.total(seat)
	target := s.rules.Target
	var best *game.Action
	bestTotal := math.MinInt
	for _, action := range s.legalActions(seat) {
		if action.Kind != game.ActionPlay {
			continue
		}
		board, _ := s.play(seat, *action.Card)
		total := game.Total(board)
		if total > target || total <= bestTotal {
			continue
		}
		if total <= current && current <= target {
			continue
		}
		action := action
		best, bestTotal = &action, total
	}
	switch {
	case best != nil:
		return *best
	case current >= standThreshold && current <= target:
		return game.StandAction()
	default:
		return game.EndAction()
	}
}

func randomPolicy(s *state, seat int, rng *rand.Rand) game.Action {
	actions := s.legalActions(seat)
	return actions[rng.Intn(len(actions))]
}
