package main

import (
	"flag"
	"time"

	"github.com/google/uuid"

	"github.com/rs/zerolog/log"

	"pazaak/config"
	"pazaak/engine"
	"pazaak/experiments"
	"pazaak/game"
	"pazaak/match"
	"pazaak/player"
	"pazaak/searcher"
)

func main() {
	envFile := flag.String("env", ".env", "Optional .env file with PAZAAK_* settings")
	games := flag.Int("games", 1, "Number of bot-vs-bot matches, or games per matchup for experiments")
	experiment := flag.String("experiment", "none", "Experiment to run: none, budget, policy or throughput")
	live := flag.Bool("live", false, "Play through the match service with paced automated opponents")
	simulations := flag.Int("sims", 0, "Rollouts per action (overrides PAZAAK_SIMULATIONS)")
	goroutines := flag.Int("goroutines", 0, "Rollout goroutines (overrides PAZAAK_GOROUTINES)")
	output := flag.String("out", "experiments", "Directory experiment results are written to")
	pretty := flag.Bool("pretty", true, "Human readable log output")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	config.SetupLogger(cfg.LogLevel, *pretty)
	if *simulations > 0 {
		cfg.Simulations = *simulations
	}
	if *goroutines > 0 {
		cfg.Goroutines = *goroutines
	}

	switch *experiment {
	case "none":
		if *live {
			playLive(cfg, *games)
		} else {
			playMatches(cfg, *games)
		}
	case "budget":
		err = experiments.RunBudgetExperiment(*output, *games)
	case "policy":
		err = experiments.RunPolicyExperiment(*output, *games)
	case "throughput":
		err = experiments.RunThroughputExperiment(*output, *games)
	default:
		log.Fatal().Msgf("unknown experiment %q", *experiment)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s experiment failed", *experiment)
	}
}

// newSearcher builds a Monte-Carlo searcher from the loaded configuration.
func newSearcher(cfg config.Config, simulations int, seed uint64) *searcher.MonteCarlo {
	policy, _ := searcher.ParseOpponentPolicy(cfg.OpponentPolicy)
	return searcher.NewMonteCarlo(
		searcher.WithSimulations(simulations),
		searcher.WithGoroutines(cfg.Goroutines),
		searcher.WithCutoff(cfg.RolloutDepth),
		searcher.WithOpponentPolicy(policy),
		searcher.WithDeckModel(searcher.NewTrackedDeck(game.StandardSideDeck())),
		searcher.WithSeed(seed),
	)
}

// playMatches runs Monte-Carlo agents against each other and logs each result.
func playMatches(cfg config.Config, games int) {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	wins := [2]int{}

	for i := 0; i < games; i++ {
		agents := [2]player.Agent{}
		for seat := range agents {
			mc := newSearcher(cfg, cfg.Simulations, seed+uint64(2*i+seat))
			agents[seat] = player.NewEvaluationAgent(mc)
		}

		e := engine.NewLocal(agents, match.WithSeed(seed+uint64(i)))
		winner, gameMetric, _, err := e.Run()
		if err != nil {
			log.Fatal().Err(err).Msgf("match %d failed", i+1)
		}
		if winner != game.Tie {
			wins[winner]++
		}
		log.Info().Msgf("match %d of %d: seat %d won %d-%d in %d rounds (%s)",
			i+1, games, winner, gameMetric.Score[0], gameMetric.Score[1], gameMetric.Rounds, gameMetric.Duration)
	}
	log.Info().Msgf("finished %d matches, wins per seat %v", games, wins)
}

// playLive seats two paced controllers through the match service, the way
// automated opponents play against connected users.
func playLive(cfg config.Config, games int) {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	registry := match.NewMemoryRegistry()
	service := match.NewService(registry)
	sweep := time.NewTicker(time.Minute)
	defer sweep.Stop()

	for i := 0; i < games; i++ {
		bots := [2]*player.Controller{}
		for seat := range bots {
			mc := newSearcher(cfg, cfg.BotSimulations, seed+uint64(2*i+seat))
			bots[seat] = player.NewController(player.NewEvaluationAgent(mc),
				player.WithThinkingDelay(cfg.ThinkingDelay),
				player.WithPlayCap(cfg.PlayCap),
			)
		}

		m, host, err := service.CreateMatch("live", game.StandardSideDeck(), bots[0])
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create match")
		}
		_, guest, err := service.JoinMatch(m.ID, game.StandardSideDeck(), bots[1])
		if err != nil {
			log.Fatal().Err(err).Msg("failed to join match")
		}
		for seat, id := range []uuid.UUID{host.ParticipantID, guest.ParticipantID} {
			bots[seat].Bind(m, id)
		}

		poll := time.NewTicker(100 * time.Millisecond)
		for m.Summary().Status != match.StatusFinished {
			select {
			case <-poll.C:
			case now := <-sweep.C:
				registry.Sweep(cfg.IdleTimeout, now)
			}
		}
		poll.Stop()
		for _, bot := range bots {
			bot.Stop()
		}

		summary := m.Summary()
		log.Info().Msgf("live match %d of %d: seat %d won %d-%d", i+1, games, summary.Winner, summary.Score[0], summary.Score[1])
		registry.Delete(m.ID)
	}
}
