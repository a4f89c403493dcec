package searcher

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"pazaak/experiments/metrics"
	"pazaak/game"
	"pazaak/match"
)

const (
	DefaultSimulations = 750
	DefaultCutoff      = 40
	steepness          = 4.0 // Sigmoid steepness of cutoff evaluations
)

type MonteCarlo struct {
	goroutines   int
	simulations  int
	cutoff       int
	opponent     OpponentPolicy
	deckModel    DeckModel
	evaluate     game.Evaluate
	seed         uint64
	searches     atomic.Uint64
	newCollector func() metrics.Collector
}

func NewMonteCarlo(options ...Option) *MonteCarlo {
	mc := &MonteCarlo{ // Default values
		goroutines:   runtime.NumCPU(),
		simulations:  DefaultSimulations,
		cutoff:       DefaultCutoff,
		opponent:     OpponentHeuristic,
		evaluate:     game.EvaluateAdvantage,
		seed:         uint64(time.Now().UnixNano()),
		newCollector: metrics.NewDummyCollector,
	}
	for _, option := range options {
		option(mc)
	}
	if mc.deckModel == nil {
		mc.deckModel = NewUniformPool()
	}
	return mc
}

// FindAction returns the root action with the highest average reward. Ties go
// to the action enumerated first.
func (mc *MonteCarlo) FindAction(view match.View) (game.Action, metrics.SearchMetric, error) {
	if !view.Acting() {
		return game.Action{}, metrics.SearchMetric{}, ErrNotActing
	}
	collector := mc.newCollector()
	collector.Start(mc.goroutines, mc.simulations, mc.cutoff)
	values := mc.estimate(view, collector)

	best := 0
	for i, value := range values {
		if value.Value > values[best].Value {
			best = i
		}
	}
	metric := collector.Complete(values[best].Value)
	log.Debug().
		Str("action", values[best].Action.String()).
		Float64("value", values[best].Value).
		Int("actions", len(values)).
		Msg("Monte-Carlo search complete")
	return values[best].Action, metric, nil
}

// Estimate returns the average reward of every root action in enumeration order.
func (mc *MonteCarlo) Estimate(view match.View) ([]ActionValue, error) {
	if !view.Acting() {
		return nil, ErrNotActing
	}
	return mc.estimate(view, metrics.NewDummyCollector()), nil
}

type task struct {
	action  int
	rollout int
}

func (mc *MonteCarlo) estimate(view match.View, collector metrics.Collector) []ActionValue {
	base := newState(view)
	actions := base.rootActions()
	collector.SetActions(len(actions))
	seed := mix(mc.seed, mc.searches.Add(1))

	rewards := make([][]float64, len(actions))
	for i := range rewards {
		rewards[i] = make([]float64, mc.simulations)
	}

	tasks := make(chan task, len(actions)*mc.simulations)
	for a := range actions {
		for r := 0; r < mc.simulations; r++ {
			tasks <- task{action: a, rollout: r}
		}
	}
	close(tasks)

	var wg sync.WaitGroup
	for i := 0; i < mc.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for t := range tasks {
				rng := rand.New(rand.NewSource(mix(seed, uint64(t.action)<<32|uint64(t.rollout))))
				rewards[t.action][t.rollout] = mc.rollout(view, base, actions[t.action], rng, collector)
				collector.AddRollout()
			}
		}()
	}
	wg.Wait()

	// Summed in rollout order so the averages do not depend on scheduling
	values := make([]ActionValue, len(actions))
	for a, action := range actions {
		sum := 0.0
		for _, reward := range rewards[a] {
			sum += reward
		}
		values[a] = ActionValue{Action: action, Value: sum / float64(mc.simulations)}
	}
	return values
}

// rollout plays the rest of the round from a private clone of base after root.
func (mc *MonteCarlo) rollout(view match.View, base *state, root game.Action, rng *rand.Rand, collector metrics.Collector) float64 {
	s := base.clone()
	s.sides[opponent].hand = mc.deckModel.SampleHand(view, rng)
	s.pile = mc.deckModel.DrawPile(view, rng)

	if err := s.apply(root); err != nil {
		collector.AddIllegalPlay()
		return Loss
	}
	for !s.over && s.depth < mc.cutoff {
		if s.sides[s.toMove].drawPending {
			s.draw()
			continue
		}
		action := mc.policy(s, rng)
		if err := s.apply(action); err != nil {
			collector.AddIllegalPlay()
			_ = s.apply(game.EndAction())
		}
		s.depth++
	}

	var reward float64
	if s.over {
		collector.AddFullPlayout()
		switch s.winner() {
		case self:
			reward = Win
		case opponent:
			reward = Loss
		default:
			reward = TieReward
		}
	} else {
		collector.AddCutoff()
		advantage := mc.evaluate(s.sides[self].board, s.sides[opponent].board, s.rules)
		reward = game.Sigmoid(advantage, steepness)
	}
	return clamp(reward + shape(base, root))
}

func (mc *MonteCarlo) policy(s *state, rng *rand.Rand) game.Action {
	if s.toMove == self {
		return selfPolicy(s, rng)
	}
	if mc.opponent == OpponentRandom {
		return randomPolicy(s, opponent, rng)
	}
	return greedyPolicy(s, opponent)
}

// shape nudges rewards by the root action: risky effect cards are discouraged
// on a low total and ending with a small hand on a middling total is favoured.
func shape(base *state, root game.Action) float64 {
	total := base.total(self)
	switch root.Kind {
	case game.ActionPlay:
		switch root.Card.Kind {
		case game.Invert, game.Double, game.Flip:
			if total < 10 {
				return -0.02
			}
		}
	case game.ActionEnd:
		if len(base.sides[self].hand) <= 2 && total >= 12 && total <= 16 {
			return 0.01
		}
	}
	return 0
}

func clamp(reward float64) float64 {
	switch {
	case reward < 0:
		return 0
	case reward > 1:
		return 1
	}
	return reward
}

// mix derives a well distributed seed from two values (splitmix64 finalizer).
func mix(a, b uint64) uint64 {
	z := a + b*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
