package experiments

import (
	"pazaak/experiments/metrics"
)

// RunThroughputExperiment plays equal agents that only differ in the number
// of rollout goroutines, to measure search duration against parallelism.
func RunThroughputExperiment(root string, games int) error {
	const Simulations = 300
	configs := []metrics.AgentConfig{
		{ID: 1, Goroutines: 1, Simulations: Simulations},
		{ID: 2, Goroutines: 2, Simulations: Simulations},
		{ID: 3, Goroutines: 4, Simulations: Simulations},
		{ID: 4, Goroutines: 8, Simulations: Simulations},
		{ID: 5, Goroutines: 16, Simulations: Simulations},
	}
	// Same config for both players in each game
	// for the same playing strength and similar game length
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{config, config})
	}
	return runExperiment(root, "throughput", games, configs, matchUps)
}
