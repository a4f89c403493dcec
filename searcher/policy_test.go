package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"pazaak/game"
	"pazaak/match"
)

func stateFor(board game.Board, hand []game.Card) *state {
	return newState(actingView(board, hand, nil, match.Playing))
}

func TestScoreAction(t *testing.T) {
	t.Run("reaching the target beats everything", func(t *testing.T) {
		s := stateFor(game.Board{game.NewPlain(10), game.NewPlain(7)}, []game.Card{game.NewAdd(3), game.NewAdd(1)})
		exact := scoreAction(s, self, game.PlayAction(s.sides[self].hand[0]))
		near := scoreAction(s, self, game.PlayAction(s.sides[self].hand[1]))
		end := scoreAction(s, self, game.EndAction())
		require.Greater(t, exact, near)
		require.Greater(t, near, end)
	})

	t.Run("busting without recovery is heavily penalised", func(t *testing.T) {
		s := stateFor(game.Board{game.NewPlain(10), game.NewPlain(9)}, []game.Card{game.NewAdd(5)})
		require.Equal(t, bustPenalty, scoreAction(s, self, game.PlayAction(s.sides[self].hand[0])))

		recover := stateFor(game.Board{game.NewPlain(10), game.NewPlain(9)}, []game.Card{game.NewAdd(5), game.NewSubtract(6)})
		require.Equal(t, bustPenalty/2, scoreAction(recover, self, game.PlayAction(recover.sides[self].hand[0])))
	})

	t.Run("illegal plays score negative infinity", func(t *testing.T) {
		s := stateFor(game.Board{game.NewPlain(4), game.NewInvert(2, 4)}, []game.Card{game.NewDouble()})
		require.True(t, math.IsInf(scoreAction(s, self, game.PlayAction(s.sides[self].hand[0])), -1))
	})

	t.Run("wasted invert is penalised", func(t *testing.T) {
		s := stateFor(game.Board{game.NewPlain(9), game.NewPlain(5)}, []game.Card{game.NewInvert(2, 4), game.NewAdd(1)})
		invert := scoreAction(s, self, game.PlayAction(s.sides[self].hand[0]))
		add := scoreAction(s, self, game.PlayAction(s.sides[self].hand[1]))
		require.Less(t, invert, add)
	})

	t.Run("ending over the target busts", func(t *testing.T) {
		s := stateFor(game.Board{game.NewPlain(10), game.NewPlain(10), game.NewPlain(3)}, nil)
		require.Equal(t, bustPenalty, scoreAction(s, self, game.EndAction()))
		require.Equal(t, bustPenalty, scoreAction(s, self, game.StandAction()))
	})
}

func TestSoftmax(t *testing.T) {
	actions := []game.Action{game.PlayAction(game.NewAdd(1)), game.EndAction(), game.StandAction()}

	t.Run("never samples illegal actions", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		scores := []float64{math.Inf(-1), 0, 0}
		for i := 0; i < 200; i++ {
			require.NotEqual(t, game.ActionPlay, softmax(actions, scores, Temperature, rng).Kind)
		}
	})

	t.Run("prefers higher scores", func(t *testing.T) {
		rng := rand.New(rand.NewSource(2))
		scores := []float64{10, 0, 0}
		counts := map[game.ActionKind]int{}
		for i := 0; i < 1000; i++ {
			counts[softmax(actions, scores, Temperature, rng).Kind]++
		}
		require.Greater(t, counts[game.ActionPlay], 950)
	})
}

func TestGreedyPolicy(t *testing.T) {
	cases := []struct {
		name  string
		board game.Board
		hand  []game.Card
		kind  game.ActionKind
		value int // Total after a play
	}{
		{"closest play without busting", game.Board{game.NewPlain(10), game.NewPlain(5)}, []game.Card{game.NewAdd(2), game.NewAdd(5), game.NewAdd(6)}, game.ActionPlay, 20},
		{"stand on a good total", game.Board{game.NewPlain(10), game.NewPlain(8)}, []game.Card{game.NewAdd(6)}, game.ActionStand, 0},
		{"end on a low total", game.Board{game.NewPlain(7)}, []game.Card{game.NewSubtract(1)}, game.ActionEnd, 0},
		{"recover when over", game.Board{game.NewPlain(10), game.NewPlain(10), game.NewPlain(4)}, []game.Card{game.NewSubtract(5)}, game.ActionPlay, 19},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newState(actingView(nil, nil, tc.board, match.Playing))
			s.sides[opponent].hand = tc.hand
			action := greedyPolicy(s, opponent)
			require.Equal(t, tc.kind, action.Kind)
			if tc.kind == game.ActionPlay {
				board, err := s.play(opponent, *action.Card)
				require.NoError(t, err)
				require.Equal(t, tc.value, game.Total(board))
			}
		})
	}
}

func TestStateTurns(t *testing.T) {
	s := stateFor(game.Board{game.NewPlain(10), game.NewPlain(9)}, nil)
	s.pile = []game.Card{game.NewPlain(3)}

	require.NoError(t, s.apply(game.StandAction()))
	require.Equal(t, match.Standing, s.sides[self].status)
	require.Equal(t, opponent, s.toMove)
	require.True(t, s.sides[opponent].drawPending)

	s.draw()
	require.Equal(t, 3, s.total(opponent))
	require.False(t, s.over)

	require.NoError(t, s.apply(game.StandAction()))
	require.True(t, s.over)
	require.Equal(t, self, s.winner())

	require.ErrorIs(t, s.clone().apply(game.PlayAction(game.NewAdd(1))), game.ErrInvalidAction)
}
