// Package experiments pits automated players against each other and stores
// the results as CSV tables for offline analysis.
package experiments

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"pazaak/engine"
	"pazaak/experiments/metrics"
	"pazaak/match"
	"pazaak/player"
	"pazaak/searcher"
)

const NumGames = 30 // Per match up

var budgetConfigs = []metrics.AgentConfig{
	{ID: 1, Goroutines: 4, Simulations: 25, OpponentPolicy: string(searcher.OpponentHeuristic)},
	{ID: 2, Goroutines: 4, Simulations: 150, OpponentPolicy: string(searcher.OpponentHeuristic)},
	{ID: 3, Goroutines: 4, Simulations: 750, OpponentPolicy: string(searcher.OpponentHeuristic)},
}

// RunBudgetExperiment pairs agents of growing simulation budgets against a
// uniformly random baseline.
func RunBudgetExperiment(root string, games int) error {
	baseline := metrics.AgentConfig{ID: 0, Random: true}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range budgetConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{config, baseline})
	}
	return runExperiment(root, "budget", games, append(budgetConfigs, baseline), matchUps)
}

// RunPolicyExperiment compares the opponent models used inside rollouts.
func RunPolicyExperiment(root string, games int) error {
	heuristic := metrics.AgentConfig{ID: 1, Goroutines: 4, Simulations: 150, OpponentPolicy: string(searcher.OpponentHeuristic)}
	random := metrics.AgentConfig{ID: 2, Goroutines: 4, Simulations: 150, OpponentPolicy: string(searcher.OpponentRandom)}
	sampling := metrics.AgentConfig{ID: 3, Goroutines: 4, Simulations: 150, OpponentPolicy: string(searcher.OpponentHeuristic), Temperature: 0.5}
	matchUps := [][]metrics.AgentConfig{{heuristic, random}, {random, heuristic}, {heuristic, sampling}}
	return runExperiment(root, "policy", games, []metrics.AgentConfig{heuristic, random, sampling}, matchUps)
}

func runExperiment(root, name string, games int, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) error {
	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		for i := 0; i < games; i++ {
			winner, gameMetric, moveMetrics, err := runGame(config1, config2, uint64(count+1))
			if err != nil {
				return fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner seat %d", mi+1, len(matchUps), i+1, winner)
		}
	}

	log.Info().Msgf("completed %s experiment", name)
	return store(root, name, configs, gameRecords, moveRecords)
}

func store(root, name string, configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) error {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(games); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moves); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored %s results in %s", name, writer.Dir())
	return nil
}

// runGame executes a single match between two agents and returns the winner seat
func runGame(config1, config2 metrics.AgentConfig, seed uint64) (int, metrics.GameMetric, []metrics.MoveMetric, error) {
	agents := [2]player.Agent{createAgent(config1, seed), createAgent(config2, seed+1)}
	e := engine.NewLocal(agents, match.WithSeed(seed))
	return e.Run()
}

func createAgent(config metrics.AgentConfig, seed uint64) player.Agent {
	if config.Random {
		return player.NewRandomAgent(seed)
	}
	options := []searcher.Option{searcher.WithSeed(seed), searcher.WithMetrics()}

	if config.Goroutines > 0 {
		options = append(options, searcher.WithGoroutines(config.Goroutines))
	}
	if config.Simulations > 0 {
		options = append(options, searcher.WithSimulations(config.Simulations))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}
	if policy, ok := searcher.ParseOpponentPolicy(config.OpponentPolicy); ok {
		options = append(options, searcher.WithOpponentPolicy(policy))
	}
	mc := searcher.NewMonteCarlo(options...)
	if config.Temperature > 0 {
		return player.NewSamplingAgent(mc, config.Temperature, seed)
	}
	return player.NewEvaluationAgent(mc)
}
