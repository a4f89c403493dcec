package searcher

import (
	"golang.org/x/exp/rand"

	"pazaak/game"
	"pazaak/match"
)

// DeckModel supplies the hidden information of a rollout: the opponent's
// hand and the remaining round deck. It is the only source of that randomness.
type DeckModel interface {
	SampleHand(view match.View, rng *rand.Rand) []game.Card
	DrawPile(view match.View, rng *rand.Rand) []game.Card
}

// UniformPool draws the opponent's hand uniformly without replacement from
// every recognised side card and the pile from a fresh main deck.
type UniformPool struct {
	catalog  []game.Card
	mainDeck []game.Card
}

func NewUniformPool() *UniformPool {
	return &UniformPool{catalog: game.SideCardCatalog(), mainDeck: game.NewMainDeck()}
}

func (p *UniformPool) SampleHand(view match.View, rng *rand.Rand) []game.Card {
	return sample(p.catalog, view.OpponentHandSize, rng)
}

func (p *UniformPool) DrawPile(view match.View, rng *rand.Rand) []game.Card {
	pile := game.CopyCards(p.mainDeck)
	game.ShuffleCards(pile, rng)
	return pile
}

// TrackedDeck assumes the opponent brought sideDeck and removes every card
// already visible on the boards before sampling.
type TrackedDeck struct {
	sideDeck []game.Card
	catalog  []game.Card
	mainDeck []game.Card
}

func NewTrackedDeck(sideDeck []game.Card) *TrackedDeck {
	return &TrackedDeck{
		sideDeck: game.CopyCards(sideDeck),
		catalog:  game.SideCardCatalog(),
		mainDeck: game.NewMainDeck(),
	}
}

func (d *TrackedDeck) SampleHand(view match.View, rng *rand.Rand) []game.Card {
	pool := game.CopyCards(d.sideDeck)
	for _, played := range view.OpponentBoard {
		if idx := findSideCard(pool, played); idx >= 0 {
			pool = append(pool[:idx], pool[idx+1:]...)
		}
	}
	if len(pool) < view.OpponentHandSize {
		pool = append(pool, sample(d.catalog, view.OpponentHandSize-len(pool), rng)...)
	}
	return sample(pool, view.OpponentHandSize, rng)
}

func (d *TrackedDeck) DrawPile(view match.View, rng *rand.Rand) []game.Card {
	// Plain entries outside the main deck's range (hand-built or merged
	// boards) have no deck card to remove and are skipped by the lookup.
	seen := make(map[int]int)
	for _, board := range []game.Board{view.Board, view.OpponentBoard} {
		for _, c := range board {
			if c.Kind == game.Plain {
				seen[abs(c.Value)]++
			}
		}
	}
	pile := make([]game.Card, 0, len(d.mainDeck))
	for _, c := range d.mainDeck {
		if seen[c.Value] > 0 {
			seen[c.Value]--
			continue
		}
		pile = append(pile, c)
	}
	game.ShuffleCards(pile, rng)
	return pile
}

// findSideCard locates the pool card a played board entry came from.
func findSideCard(pool []game.Card, played game.Card) int {
	for i, c := range pool {
		switch played.Kind {
		case game.Plain:
			return -1
		case game.Special:
			if c.Kind == game.Double {
				return i
			}
		case game.Invert:
			if c.Kind == game.Invert && c.Targets == played.Targets {
				return i
			}
		default:
			if c.Kind == played.Kind && c.Value == abs(played.Value) {
				return i
			}
		}
	}
	return -1
}

func sample(pool []game.Card, n int, rng *rand.Rand) []game.Card {
	shuffled := game.CopyCards(pool)
	game.ShuffleCards(shuffled, rng)
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
