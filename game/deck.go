package game

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
)

const mainDeckCopies = 4

// NewMainDeck returns the unshuffled shared draw deck: four copies of each
// plain card from 1 to 10.
func NewMainDeck() []Card {
	deck := make([]Card, 0, mainDeckCopies*10)
	for copies := 0; copies < mainDeckCopies; copies++ {
		for value := 1; value <= 10; value++ {
			deck = append(deck, NewPlain(value))
		}
	}
	return deck
}

// ShuffleCards shuffles cards in place.
func ShuffleCards(cards []Card, rng *rand.Rand) {
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// CopyCards returns an independent copy of cards.
func CopyCards(cards []Card) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}

// SideCardCatalog lists one instance of every side card a deck may contain.
func SideCardCatalog() []Card {
	var catalog []Card
	for value := 1; value <= 6; value++ {
		catalog = append(catalog, NewAdd(value), NewSubtract(value), NewFlip(value, Positive))
	}
	catalog = append(catalog,
		NewDouble(),
		NewInvert(2, 4),
		NewInvert(3, 6),
		NewTiebreaker(1, Positive),
	)
	return catalog
}

// ValidateCard checks a side card is a recognised kind/value combination.
func ValidateCard(c Card) error {
	switch c.Kind {
	case Add, Subtract, Flip:
		if c.Value < 1 || c.Value > 6 {
			return fmt.Errorf("%w: %s value %d out of range", ErrInvalidCard, c.Kind, c.Value)
		}
	case Tiebreaker:
		if c.Value != 1 {
			return fmt.Errorf("%w: tiebreaker value %d", ErrInvalidCard, c.Value)
		}
	case Double:
	case Invert:
		if c.Targets != [2]int{2, 4} && c.Targets != [2]int{3, 6} {
			return fmt.Errorf("%w: invert targets %d&%d", ErrInvalidCard, c.Targets[0], c.Targets[1])
		}
	default:
		return fmt.Errorf("%w: kind %q is not a side card", ErrInvalidCard, c.Kind)
	}
	if c.HasPolarity() && c.Polarity != Positive && c.Polarity != Negative {
		return fmt.Errorf("%w: polarity %q", ErrInvalidCard, c.Polarity)
	}
	return nil
}

// ValidateSideDeck checks a submitted deck before it is dealt.
func ValidateSideDeck(cards []Card, rules Rules) error {
	if len(cards) != rules.SideDeckSize {
		return fmt.Errorf("%w: expected %d cards, got %d", ErrInvalidDeck, rules.SideDeckSize, len(cards))
	}
	seen := make(map[uuid.UUID]bool, len(cards))
	for i, c := range cards {
		if err := ValidateCard(c); err != nil {
			return fmt.Errorf("%w: card %d: %w", ErrInvalidDeck, i, err)
		}
		if seen[c.ID] {
			return fmt.Errorf("%w: duplicate card id %s", ErrInvalidDeck, c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}

// StandardSideDeck is the deck automated players bring to a match.
func StandardSideDeck() []Card {
	return []Card{
		NewAdd(1),
		NewAdd(2),
		NewAdd(3),
		NewSubtract(1),
		NewSubtract(2),
		NewSubtract(3),
		NewFlip(4, Positive),
		NewDouble(),
		NewInvert(2, 4),
		NewTiebreaker(1, Positive),
	}
}
