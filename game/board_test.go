package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTotal(t *testing.T) {
	t.Run("sums signed values of plain, add and subtract cards", func(t *testing.T) {
		board := Board{NewPlain(7), NewAdd(3), NewSubtract(4), NewPlain(2)}
		require.Equal(t, 8, Total(board))
	})

	t.Run("is independent of card order for plain, add and subtract cards", func(t *testing.T) {
		cards := []Card{NewPlain(10), NewSubtract(6), NewAdd(2), NewPlain(1), NewSubtract(1)}
		forward := Board(cards)
		reversed := make(Board, len(cards))
		for i, c := range cards {
			reversed[len(cards)-1-i] = c
		}
		require.Equal(t, Total(forward), Total(reversed))
		require.Equal(t, 6, Total(forward))
	})

	t.Run("double and invert contribute nothing", func(t *testing.T) {
		board := Board{NewPlain(5), NewDouble(), NewInvert(3, 6)}
		require.Equal(t, 5, Total(board))
	})

	t.Run("flip and tiebreaker follow their polarity", func(t *testing.T) {
		board := Board{NewPlain(10), NewFlip(3, Negative), NewTiebreaker(1, Positive)}
		require.Equal(t, 8, Total(board))
	})

	t.Run("empty board", func(t *testing.T) {
		require.Equal(t, 0, Total(nil))
	})
}

func TestApplyEffect(t *testing.T) {
	t.Run("double after flip doubles its current contribution", func(t *testing.T) {
		board := Board{NewPlain(5), NewFlip(4, Positive)}
		require.Equal(t, 9, Total(board))

		double := NewDouble()
		board = append(board, double)
		require.NoError(t, ApplyEffect(board))

		require.Equal(t, 13, Total(board))
		require.Equal(t, Special, board[2].Kind)
		require.Equal(t, 4, board[2].Value)
		require.Equal(t, double.ID, board[2].ID, "Double should keep the played card's identity")
		require.Equal(t, Flip, board[1].Kind, "Previous card should be untouched")
	})

	t.Run("double after negative tiebreaker doubles the negative value", func(t *testing.T) {
		board := Board{NewPlain(9), NewTiebreaker(1, Negative), NewDouble()}
		require.NoError(t, ApplyEffect(board))
		require.Equal(t, 7, Total(board))
	})

	t.Run("double after subtract doubles the subtraction", func(t *testing.T) {
		board := Board{NewPlain(9), NewSubtract(3), NewDouble()}
		require.NoError(t, ApplyEffect(board))
		require.Equal(t, 3, Total(board))
	})

	t.Run("double on an empty board is illegal", func(t *testing.T) {
		board := Board{NewDouble()}
		require.ErrorIs(t, ApplyEffect(board), ErrIllegalPlay)
	})

	t.Run("double after double or invert is illegal", func(t *testing.T) {
		afterInvert := Board{NewPlain(4), NewInvert(2, 4), NewDouble()}
		require.ErrorIs(t, ApplyEffect(afterInvert), ErrIllegalPlay)

		afterDouble := Board{NewPlain(4), {Kind: Double}, NewDouble()}
		require.ErrorIs(t, ApplyEffect(afterDouble), ErrIllegalPlay)
	})

	t.Run("invert negates matching magnitudes only", func(t *testing.T) {
		board := Board{NewPlain(2), NewAdd(4), NewPlain(6), NewInvert(2, 4)}
		require.NoError(t, ApplyEffect(board))

		values := []int{EffectiveValue(board[0]), EffectiveValue(board[1]), EffectiveValue(board[2])}
		require.Equal(t, []int{-2, -4, 6}, values)
		require.Equal(t, 0, Total(board))
		require.Equal(t, Invert, board[3].Kind, "Invert should stay on the board as a marker")
	})

	t.Run("invert restores a subtract card to positive", func(t *testing.T) {
		board := Board{NewPlain(10), NewSubtract(3), NewInvert(3, 6)}
		require.NoError(t, ApplyEffect(board))
		require.Equal(t, 13, Total(board))
	})

	t.Run("invert toggles polarity of matching flip and tiebreaker cards", func(t *testing.T) {
		board := Board{NewFlip(4, Positive), NewFlip(5, Positive), NewInvert(2, 4)}
		require.NoError(t, ApplyEffect(board))
		require.Equal(t, Negative, board[0].Polarity)
		require.Equal(t, Positive, board[1].Polarity)
		require.Equal(t, 1, Total(board))
	})

	t.Run("invert skips double and invert entries", func(t *testing.T) {
		first := NewInvert(2, 4)
		board := Board{NewPlain(2), first, NewInvert(2, 4)}
		require.NoError(t, ApplyEffect(board))
		require.Equal(t, first, board[1])
		require.Equal(t, -2, Total(board))
	})

	t.Run("plain cards have no board-wide effect", func(t *testing.T) {
		board := Board{NewPlain(2), NewAdd(4), NewPlain(6)}
		before := board.Copy()
		require.NoError(t, ApplyEffect(board))
		require.Equal(t, before, board)
	})
}

func TestActiveTiebreaker(t *testing.T) {
	t.Run("last card is a tiebreaker of either polarity", func(t *testing.T) {
		require.True(t, ActiveTiebreaker(Board{NewPlain(5), NewTiebreaker(1, Negative)}))
		require.True(t, ActiveTiebreaker(Board{NewTiebreaker(1, Positive)}))
	})

	t.Run("tiebreaker followed by another card is inactive", func(t *testing.T) {
		require.False(t, ActiveTiebreaker(Board{NewTiebreaker(1, Positive), NewPlain(3)}))
	})

	t.Run("empty board", func(t *testing.T) {
		require.False(t, ActiveTiebreaker(nil))
	})
}

func TestCanFollow(t *testing.T) {
	require.False(t, CanFollow(nil, NewDouble()))
	require.False(t, CanFollow(Board{NewPlain(3), NewInvert(2, 4)}, NewDouble()))
	require.True(t, CanFollow(Board{NewPlain(3)}, NewDouble()))
	require.True(t, CanFollow(Board{NewPlain(3), NewInvert(2, 4)}, NewAdd(2)))
}
