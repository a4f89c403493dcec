package game

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Kind identifies how a card contributes to a board.
type Kind string

const (
	Plain      Kind = "plain"
	Add        Kind = "add"
	Subtract   Kind = "subtract"
	Double     Kind = "double"
	Invert     Kind = "invert"
	Flip       Kind = "flip"
	Tiebreaker Kind = "tiebreaker"
	Special    Kind = "special" // Already-signed value, produced by playing a double
)

// Polarity is the sign a flip or tiebreaker card is played with.
type Polarity string

const (
	Positive Polarity = "add"
	Negative Polarity = "subtract"
)

// Toggle returns the opposite polarity.
func (p Polarity) Toggle() Polarity {
	if p == Negative {
		return Positive
	}
	return Negative
}

// Card is an immutable card value. Its ID is stable for the lifetime of the
// card even when an effect rewrites its kind or value on a board.
type Card struct {
	ID       uuid.UUID
	Kind     Kind
	Value    int    // Magnitude; already signed for special cards
	Targets  [2]int // Only set for invert cards
	Polarity Polarity
}

func NewPlain(value int) Card {
	return Card{ID: uuid.New(), Kind: Plain, Value: value}
}

func NewAdd(value int) Card {
	return Card{ID: uuid.New(), Kind: Add, Value: value}
}

func NewSubtract(value int) Card {
	return Card{ID: uuid.New(), Kind: Subtract, Value: value}
}

func NewDouble() Card {
	return Card{ID: uuid.New(), Kind: Double}
}

func NewInvert(first, second int) Card {
	return Card{ID: uuid.New(), Kind: Invert, Targets: [2]int{first, second}}
}

func NewFlip(value int, polarity Polarity) Card {
	return Card{ID: uuid.New(), Kind: Flip, Value: value, Polarity: polarity}
}

func NewTiebreaker(value int, polarity Polarity) Card {
	return Card{ID: uuid.New(), Kind: Tiebreaker, Value: value, Polarity: polarity}
}

// HasPolarity reports whether the player chooses the sign of the card.
func (c Card) HasPolarity() bool {
	return c.Kind == Flip || c.Kind == Tiebreaker
}

// Matches reports whether o refers to the same hand card as c. Polarity is
// ignored since the player may toggle it while the card is in hand.
func (c Card) Matches(o Card) bool {
	return c.ID == o.ID && c.Kind == o.Kind && c.Value == o.Value && c.Targets == o.Targets
}

// WithPolarity returns a copy of a flip or tiebreaker card with the given sign.
func (c Card) WithPolarity(p Polarity) Card {
	if c.HasPolarity() {
		c.Polarity = p
	}
	return c
}

// EffectiveValue is the signed contribution of the card to a board total.
func EffectiveValue(c Card) int {
	switch c.Kind {
	case Double, Invert:
		return 0
	case Flip, Tiebreaker:
		if c.Polarity == Negative {
			return -c.Value
		}
		return c.Value
	case Subtract:
		return -c.Value
	default:
		return c.Value
	}
}

func (c Card) String() string {
	switch c.Kind {
	case Invert:
		return fmt.Sprintf("invert(%d&%d)", c.Targets[0], c.Targets[1])
	case Double:
		return "double"
	case Flip, Tiebreaker:
		return fmt.Sprintf("%s(%d,%s)", c.Kind, c.Value, c.Polarity)
	default:
		return fmt.Sprintf("%s(%d)", c.Kind, c.Value)
	}
}

type cardJSON struct {
	ID       uuid.UUID       `json:"id"`
	Kind     Kind            `json:"kind"`
	Value    json.RawMessage `json:"value,omitempty"`
	Polarity Polarity        `json:"polarity,omitempty"`
}

// MarshalJSON encodes the card as {id, kind, value, polarity?}. Invert cards
// carry their targets as the string "a&b".
func (c Card) MarshalJSON() ([]byte, error) {
	out := cardJSON{ID: c.ID, Kind: c.Kind}
	switch c.Kind {
	case Double:
	case Invert:
		value, err := json.Marshal(fmt.Sprintf("%d&%d", c.Targets[0], c.Targets[1]))
		if err != nil {
			return nil, err
		}
		out.Value = value
	default:
		out.Value = json.RawMessage(strconv.Itoa(c.Value))
	}
	if c.HasPolarity() {
		out.Polarity = c.Polarity
	}
	return json.Marshal(out)
}

func (c *Card) UnmarshalJSON(data []byte) error {
	var in cardJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	card := Card{ID: in.ID, Kind: in.Kind, Polarity: in.Polarity}
	switch in.Kind {
	case Double:
	case Invert:
		var raw string
		if err := json.Unmarshal(in.Value, &raw); err != nil {
			return fmt.Errorf("%w: invert value must be a string: %v", ErrInvalidCard, err)
		}
		targets, err := parseTargets(raw)
		if err != nil {
			return err
		}
		card.Targets = targets
	default:
		if err := json.Unmarshal(in.Value, &card.Value); err != nil {
			return fmt.Errorf("%w: %s value must be an integer: %v", ErrInvalidCard, in.Kind, err)
		}
	}
	*c = card
	return nil
}

func parseTargets(raw string) ([2]int, error) {
	parts := strings.Split(raw, "&")
	if len(parts) != 2 {
		return [2]int{}, fmt.Errorf("%w: invert value %q", ErrInvalidCard, raw)
	}
	var targets [2]int
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n <= 0 {
			return [2]int{}, fmt.Errorf("%w: invert value %q", ErrInvalidCard, raw)
		}
		targets[i] = n
	}
	return targets, nil
}
