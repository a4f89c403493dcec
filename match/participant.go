package match

import (
	"github.com/google/uuid"

	"pazaak/game"
)

// Participant holds one seat of a match.
type Participant struct {
	ID     uuid.UUID
	Token  string
	Status ParticipantStatus
	Deck   []game.Card // Personal draw deck, shuffled from the chosen deck
	Hand   []game.Card

	chosen   []game.Card
	notifier Notifier
}

func newParticipant(deck []game.Card, notifier Notifier) *Participant {
	return &Participant{
		ID:       uuid.New(),
		Token:    uuid.NewString(),
		Status:   Playing,
		chosen:   game.CopyCards(deck),
		notifier: notifier,
	}
}

// Connected reports whether a live notifier is attached.
func (p *Participant) Connected() bool {
	return p.notifier != nil
}

// Credentials identify a seated participant to the caller that created it.
type Credentials struct {
	ParticipantID uuid.UUID `json:"participantId"`
	Token         string    `json:"token"`
}

func (p *Participant) credentials() Credentials {
	return Credentials{ParticipantID: p.ID, Token: p.Token}
}

func (p *Participant) drawHand(size int) {
	for len(p.Hand) < size && len(p.Deck) > 0 {
		last := len(p.Deck) - 1
		p.Hand = append(p.Hand, p.Deck[last])
		p.Deck = p.Deck[:last]
	}
}
