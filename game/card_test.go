package game

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCardJSON(t *testing.T) {
	t.Run("invert value is encoded as a target string", func(t *testing.T) {
		card := NewInvert(2, 4)
		data, err := json.Marshal(card)
		require.NoError(t, err)
		require.JSONEq(t, `{"id":"`+card.ID.String()+`","kind":"invert","value":"2&4"}`, string(data))

		var decoded Card
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.Equal(t, card, decoded)
	})

	t.Run("flip carries its polarity", func(t *testing.T) {
		id := uuid.MustParse("8f14e45f-ceea-467f-a8f1-6a2b3c4d5e6f")
		data := []byte(`{"id":"` + id.String() + `","kind":"flip","value":3,"polarity":"subtract"}`)

		var decoded Card
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.Equal(t, Card{ID: id, Kind: Flip, Value: 3, Polarity: Negative}, decoded)
		require.Equal(t, -3, EffectiveValue(decoded))
	})

	t.Run("malformed invert value is rejected", func(t *testing.T) {
		var decoded Card
		err := json.Unmarshal([]byte(`{"id":"`+uuid.NewString()+`","kind":"invert","value":"2-4"}`), &decoded)
		require.ErrorIs(t, err, ErrInvalidCard)
	})
}

func TestCardMatches(t *testing.T) {
	card := NewFlip(3, Positive)
	require.True(t, card.Matches(card.WithPolarity(Negative)), "Polarity should not affect hand matching")
	require.False(t, card.Matches(NewFlip(3, Positive)))

	other := card
	other.Value = 4
	require.False(t, card.Matches(other))
}
