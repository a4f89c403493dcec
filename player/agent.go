package player

import (
	"math"
	"sync"

	"golang.org/x/exp/rand"

	"pazaak/experiments/metrics"
	"pazaak/game"
	"pazaak/match"
	"pazaak/searcher"
)

type Agent interface {
	// FindAction returns the action to submit and search metrics (if collected)
	FindAction(view match.View) (game.Action, metrics.SearchMetric, error)
}

// NewEvaluationAgent returns an agent that always takes the best scored action.
func NewEvaluationAgent(mc *searcher.MonteCarlo) Agent {
	return evaluationAgent{mc: mc}
}

type evaluationAgent struct {
	mc *searcher.MonteCarlo
}

func (a evaluationAgent) FindAction(view match.View) (game.Action, metrics.SearchMetric, error) {
	return a.mc.FindAction(view)
}

type samplingAgent struct {
	mc          *searcher.MonteCarlo
	temperature float64
	rng         *rand.Rand
	mu          sync.Mutex
}

// NewSamplingAgent returns an agent that samples actions in proportion to
// their temperature-adjusted Monte-Carlo value, for varied self-play.
func NewSamplingAgent(mc *searcher.MonteCarlo, temperature float64, seed uint64) Agent {
	return &samplingAgent{mc: mc, temperature: temperature, rng: rand.New(rand.NewSource(seed))}
}

func (a *samplingAgent) FindAction(view match.View) (game.Action, metrics.SearchMetric, error) {
	values, err := a.mc.Estimate(view)
	if err != nil {
		return game.Action{}, metrics.SearchMetric{}, err
	}
	policy := adjustTemperature(values, a.temperature)

	a.mu.Lock()
	defer a.mu.Unlock()
	return sample(values, policy, a.rng.Float64()), metrics.SearchMetric{}, nil
}

func adjustTemperature(values []searcher.ActionValue, temperature float64) []float64 {
	// Compute temperature-adjusted action probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	policy := make([]float64, len(values))
	for i, v := range values {
		policy[i] = math.Pow(v.Value, exponent)
		sum += policy[i]
	}
	if sum == 0 {
		for i := range policy {
			policy[i] = 1.0 / float64(len(policy))
		}
		return policy
	}
	// Normalize
	for i := range policy {
		policy[i] /= sum
	}
	return policy
}

func sample(values []searcher.ActionValue, policy []float64, sampled float64) game.Action {
	cumulative := 0.0
	for i, prob := range policy {
		cumulative += prob
		if sampled < cumulative {
			return values[i].Action
		}
	}
	return values[len(values)-1].Action // Fallback in case of rounding errors
}

type randomAgent struct {
	rng *rand.Rand
	mu  sync.Mutex
}

// NewRandomAgent returns a baseline agent choosing uniformly among legal actions.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindAction(view match.View) (game.Action, metrics.SearchMetric, error) {
	if !view.Acting() {
		return game.Action{}, metrics.SearchMetric{}, searcher.ErrNotActing
	}
	actions := []game.Action{game.EndAction(), game.StandAction()}
	for _, card := range view.Hand {
		if !game.CanFollow(view.Board, card) {
			continue
		}
		if card.HasPolarity() {
			actions = append(actions, game.PlayAction(card.WithPolarity(game.Positive)), game.PlayAction(card.WithPolarity(game.Negative)))
			continue
		}
		actions = append(actions, game.PlayAction(card))
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return actions[a.rng.Intn(len(actions))], metrics.SearchMetric{}, nil
}
