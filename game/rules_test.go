package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRulesWinner(t *testing.T) {
	rules := StandardRules()

	cases := []struct {
		name   string
		boards [2]Board
		want   int
	}{
		{"closer to target wins", [2]Board{{NewPlain(10), NewPlain(9)}, {NewPlain(10), NewPlain(7)}}, 0},
		{"exact target beats lower total", [2]Board{{NewPlain(10), NewPlain(8)}, {NewPlain(10), NewPlain(10)}}, 1},
		{"busted side loses", [2]Board{{NewPlain(10), NewPlain(10), NewPlain(2)}, {NewPlain(5)}}, 1},
		{"both busted is a tie", [2]Board{{NewPlain(10), NewPlain(10), NewPlain(2)}, {NewPlain(10), NewPlain(10), NewPlain(1)}}, Tie},
		{"equal totals without tiebreaker tie", [2]Board{{NewPlain(10), NewPlain(8)}, {NewPlain(9), NewPlain(9)}}, Tie},
		{"equal totals with one active tiebreaker", [2]Board{{NewPlain(9), NewPlain(8)}, {NewPlain(10), NewPlain(8), NewTiebreaker(1, Negative)}}, 1},
		{"equal totals with both tiebreakers tie", [2]Board{{NewPlain(10), NewTiebreaker(1, Positive)}, {NewPlain(12), NewTiebreaker(1, Negative)}}, Tie},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, rules.Winner(tc.boards))
		})
	}

	t.Run("swapping boards swaps the winner", func(t *testing.T) {
		for _, tc := range cases {
			swapped := [2]Board{tc.boards[1], tc.boards[0]}
			want := Tie
			if tc.want != Tie {
				want = 1 - tc.want
			}
			require.Equal(t, want, rules.Winner(swapped), tc.name)
		}
	})
}

func TestRulesCardCountWinner(t *testing.T) {
	rules := StandardRules()
	nineCards := Board{
		NewPlain(1), NewPlain(2), NewPlain(1), NewPlain(3), NewPlain(2),
		NewPlain(1), NewPlain(2), NewPlain(1), NewPlain(2),
	}

	t.Run("nine cards under target wins over a closer opponent", func(t *testing.T) {
		boards := [2]Board{{NewPlain(10), NewPlain(10)}, nineCards}
		require.Equal(t, 1, rules.CardCountWinner(boards))
		require.Equal(t, 1, rules.Resolve(boards))
		require.Equal(t, 0, rules.Winner(boards))
	})

	t.Run("nine cards over target does not win", func(t *testing.T) {
		busted := append(nineCards.Copy()[:8], NewPlain(10))
		boards := [2]Board{busted, {NewPlain(5)}}
		require.Equal(t, Tie, rules.CardCountWinner(boards))
		require.Equal(t, 1, rules.Resolve(boards))
	})

	t.Run("fewer cards falls back to normal resolution", func(t *testing.T) {
		boards := [2]Board{{NewPlain(10), NewPlain(9)}, {NewPlain(3)}}
		require.Equal(t, Tie, rules.CardCountWinner(boards))
		require.Equal(t, 0, rules.Resolve(boards))
	})
}

func TestRound(t *testing.T) {
	t.Run("draws from the top of the deck", func(t *testing.T) {
		first, second := NewPlain(3), NewPlain(7)
		round := NewRound([]Card{first, second})

		card, err := round.Draw()
		require.NoError(t, err)
		require.Equal(t, second, card)

		card, err = round.Draw()
		require.NoError(t, err)
		require.Equal(t, first, card)
	})

	t.Run("exhausted deck fails", func(t *testing.T) {
		round := NewRound(nil)
		_, err := round.Draw()
		require.ErrorIs(t, err, ErrDeckExhausted)
	})

	t.Run("illegal play leaves the board untouched", func(t *testing.T) {
		round := NewRound(nil)
		require.NoError(t, round.Play(0, NewPlain(4)))
		require.NoError(t, round.Play(0, NewInvert(2, 4)))

		err := round.Play(0, NewDouble())
		require.ErrorIs(t, err, ErrIllegalPlay)
		require.Len(t, round.Boards[0], 2)
		require.Equal(t, -4, round.Total(0))
	})

	t.Run("tiebreaker decides equal stands", func(t *testing.T) {
		round := NewRound(nil)
		require.NoError(t, round.Play(0, NewPlain(10)))
		require.NoError(t, round.Play(0, NewPlain(8)))
		require.NoError(t, round.Play(1, NewPlain(10)))
		require.NoError(t, round.Play(1, NewPlain(7)))
		require.NoError(t, round.Play(1, NewTiebreaker(1, Positive)))

		require.True(t, round.ActiveTiebreaker(1))
		require.Equal(t, 1, round.Resolve(StandardRules()))
		require.True(t, round.Resolved)
	})

	t.Run("copy is independent", func(t *testing.T) {
		round := NewRound([]Card{NewPlain(1)})
		require.NoError(t, round.Play(0, NewPlain(4)))

		clone := round.Copy()
		require.NoError(t, clone.Play(0, NewPlain(5)))
		_, err := clone.Draw()
		require.NoError(t, err)

		require.Len(t, round.Boards[0], 1)
		require.Len(t, round.Deck, 1)
	})
}
