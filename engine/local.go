package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"pazaak/experiments/metrics"
	"pazaak/game"
	"pazaak/match"
	"pazaak/player"
)

type Local struct {
	agents  [2]player.Agent
	decks   [2][]game.Card
	options []match.Option
}

// NewLocal returns an engine seating agents[0] first. Both sides bring the
// standard side deck.
func NewLocal(agents [2]player.Agent, options ...match.Option) *Local {
	return &Local{
		agents:  agents,
		decks:   [2][]game.Card{game.StandardSideDeck(), game.StandardSideDeck()},
		options: options,
	}
}

// Run executes the entire match loop until a winner is found.
func (e *Local) Run() (int, metrics.GameMetric, []metrics.MoveMetric, error) {
	m, first, err := match.NewMatch("local", e.decks[0], nil, e.options...)
	if err != nil {
		return game.Tie, metrics.GameMetric{}, nil, fmt.Errorf("failed to create match: %w", err)
	}
	second, err := m.Join(e.decks[1], nil)
	if err != nil {
		return game.Tie, metrics.GameMetric{}, nil, fmt.Errorf("failed to join match: %w", err)
	}
	ids := [2]uuid.UUID{first.ParticipantID, second.ParticipantID}

	gameMetric := metrics.GameMetric{StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric
	log.Debug().Msgf("match %s started, seat %d moves first", m.ID, gameMetric.StartingSeat)

	step := 0
	for step < MaxMoves {
		current, ok := m.CurrentParticipant()
		if !ok {
			break
		}
		seat := 0
		if current == ids[1] {
			seat = 1
		}

		view, err := m.View(current)
		if err != nil {
			return game.Tie, gameMetric, moveMetrics, err
		}
		action, searchMetric, err := e.agents[seat].FindAction(view)
		if err != nil {
			log.Warn().Err(err).Int("seat", seat).Msg("agent failed, ending turn")
			action = game.EndAction()
		}
		if err := m.PerformAction(current, action); err != nil {
			if _, ok := match.RejectionReason(err); !ok {
				return game.Tie, gameMetric, moveMetrics, err
			}
			log.Warn().Err(err).Int("seat", seat).Msgf("agent returned an invalid action %s, forcing end", action)
			action = game.EndAction()
			if err := m.PerformAction(current, action); err != nil {
				return game.Tie, gameMetric, moveMetrics, err
			}
		}

		step++
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Seat:         seat,
			Round:        view.Round,
			Action:       action.String(),
			SearchMetric: searchMetric,
		})
	}

	summary := m.Summary()
	gameMetric.Winner = summary.Winner
	gameMetric.Score = summary.Score
	gameMetric.Rounds = summary.Rounds
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = step

	if summary.Status != match.StatusFinished {
		log.Warn().Msgf("stopped after %d moves (no winner yet)", MaxMoves)
	} else {
		log.Debug().Msgf("match %s finished %d-%d after %d moves", m.ID, summary.Score[0], summary.Score[1], step)
	}
	return summary.Winner, gameMetric, moveMetrics, nil
}
