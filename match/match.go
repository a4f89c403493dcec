// Package match implements the authoritative Pazaak match state machine: seating,
// dealing, turn order, round resolution, scoring and rematches.
package match

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"pazaak/game"
	"pazaak/utils"
)

// Match is safe for concurrent use. All mutating operations are serialised by
// an internal lock and notifications are emitted while holding it, so
// notifiers observe state changes in order.
type Match struct {
	ID           uuid.UUID
	Name         string
	Rounds       []*game.Round
	Participants [2]*Participant
	Turn         int // Seat expected to act
	Score        [2]int
	Status       Status
	LastActivity time.Time

	rematchRequestedBy uuid.UUID
	rules              game.Rules
	rng                *rand.Rand
	now                func() time.Time
	log                zerolog.Logger
	mu                 sync.Mutex
}

type Option func(*Match)

func WithRules(rules game.Rules) Option {
	return func(m *Match) {
		m.rules = rules
	}
}

// WithSeed makes shuffles and tie-break coin flips reproducible.
func WithSeed(seed uint64) Option {
	return func(m *Match) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Match) {
		m.now = now
	}
}

// NewMatch creates a waiting match with the creator seated first.
func NewMatch(name string, deck []game.Card, notifier Notifier, options ...Option) (*Match, Credentials, error) {
	m := &Match{
		ID:     uuid.New(),
		Name:   name,
		Status: StatusWaiting,
		rules:  game.StandardRules(),
		rng:    rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		now:    time.Now,
	}
	for _, option := range options {
		option(m)
	}
	if err := game.ValidateSideDeck(deck, m.rules); err != nil {
		return nil, Credentials{}, err
	}
	m.log = log.With().Str("match", m.ID.String()).Logger()
	m.LastActivity = m.now()

	creator := newParticipant(deck, notifier)
	m.Participants[0] = creator
	m.log.Info().Str("name", name).Str("participant", creator.ID.String()).Msg("Match created")
	return m, creator.credentials(), nil
}

// Join seats the second participant and starts the first round.
func (m *Match) Join(deck []game.Card, notifier Notifier) (Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Participants[1] != nil {
		return Credentials{}, ErrMatchFull
	}
	if err := game.ValidateSideDeck(deck, m.rules); err != nil {
		return Credentials{}, err
	}
	joiner := newParticipant(deck, notifier)
	m.Participants[1] = joiner
	m.LastActivity = m.now()
	m.log.Info().Str("participant", joiner.ID.String()).Msg("Participant joined")

	if err := m.start(); err != nil {
		return Credentials{}, err
	}
	return joiner.credentials(), nil
}

// Attach connects a live notifier to a seated participant.
func (m *Match) Attach(participantID uuid.UUID, notifier Notifier) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, p := m.participant(participantID)
	if p == nil {
		return ErrNotFound
	}
	p.notifier = notifier
	m.LastActivity = m.now()
	m.notifyState()
	return nil
}

// Detach marks the participant as disconnected.
func (m *Match) Detach(participantID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, p := m.participant(participantID)
	if p == nil {
		return ErrNotFound
	}
	p.notifier = nil
	m.notifyState()
	return nil
}

// View returns the participant's projection of the match.
func (m *Match) View(participantID uuid.UUID) (View, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	side, p := m.participant(participantID)
	if p == nil {
		return View{}, ErrNotFound
	}
	return m.view(side), nil
}

// CurrentParticipant returns the participant expected to act, if any.
func (m *Match) CurrentParticipant() (uuid.UUID, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Status != StatusInProgress {
		return uuid.Nil, false
	}
	return m.Participants[m.Turn].ID, true
}

// Summary is a race-free snapshot of the match's progress.
type Summary struct {
	Status Status
	Score  [2]int
	Rounds int
	Winner int // Seat that won the match, or game.Tie while unfinished
}

func (m *Match) Summary() Summary {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Summary{Status: m.Status, Score: m.Score, Rounds: len(m.Rounds), Winner: game.Tie}
	if m.Status == StatusFinished {
		s.Winner = m.matchWinner()
	}
	return s
}

// Idle reports whether nobody is connected and nothing happened for longer
// than threshold.
func (m *Match) Idle(now time.Time, threshold time.Duration) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.Participants {
		if p != nil && p.Connected() {
			return false
		}
	}
	return now.Sub(m.LastActivity) > threshold
}

// IsActionValid checks the action against the current state without applying it.
func (m *Match) IsActionValid(participantID uuid.UUID, action game.Action) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, _, err := m.validate(participantID, action)
	return err
}

// PerformAction validates and applies the action. Rejections return an
// *ActionError and leave the match untouched.
func (m *Match) PerformAction(participantID uuid.UUID, action game.Action) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	side, p, err := m.validate(participantID, action)
	if err != nil {
		return err
	}
	round := m.current()
	m.LastActivity = m.now()
	m.log.Debug().Int("seat", side).Str("action", action.String()).Msg("Performing action")

	switch action.Kind {
	case game.ActionPlay:
		idx := utils.FindIndexFunc(p.Hand, action.Card.Matches)
		card := p.Hand[idx].WithPolarity(action.Card.Polarity)
		if err := round.Play(side, card); err != nil {
			return reject(ReasonIllegalDouble, "%v", err)
		}
		p.Hand = utils.RemoveAt(p.Hand, idx)
		if m.rules.CardCountWinner(round.Boards) != game.Tie {
			return m.finalizeRound()
		}
		m.notifyState()
		return nil
	case game.ActionEnd:
		status := Playing
		if m.rules.Busted(round.Boards[side]) {
			status = Busted
		}
		return m.nextTurn(status)
	case game.ActionStand:
		status := Standing
		if m.rules.Busted(round.Boards[side]) {
			status = Busted
		}
		return m.nextTurn(status)
	}
	return reject(ReasonInvalidAction, "unknown action kind %q", action.Kind)
}

func (m *Match) validate(participantID uuid.UUID, action game.Action) (int, *Participant, error) {
	side, p := m.participant(participantID)
	if p == nil {
		return 0, nil, reject(ReasonUnknownParticipant, "participant %s is not part of this match", participantID)
	}
	if err := action.Validate(); err != nil {
		return 0, nil, reject(ReasonInvalidAction, "%v", err)
	}
	if m.Status != StatusInProgress {
		return 0, nil, reject(ReasonNotInProgress, "match is %s", m.Status)
	}
	if m.Turn != side {
		return 0, nil, reject(ReasonNotYourTurn, "it is not your turn")
	}
	if p.Status != Playing {
		return 0, nil, reject(ReasonNotPlaying, "participant is %s", p.Status)
	}
	round := m.current()
	if round == nil {
		return 0, nil, ErrNoRound
	}
	if action.Kind != game.ActionPlay {
		return side, p, nil
	}

	card := *action.Card
	if len(p.Hand) == 0 {
		return 0, nil, reject(ReasonEmptyHand, "hand is empty")
	}
	if utils.FindIndexFunc(p.Hand, card.Matches) < 0 {
		return 0, nil, reject(ReasonCardNotInHand, "card %s is not in hand", card)
	}
	if card.HasPolarity() && card.Polarity != game.Positive && card.Polarity != game.Negative {
		return 0, nil, reject(ReasonInvalidAction, "polarity %q is not valid", card.Polarity)
	}
	if !game.CanFollow(round.Boards[side], card) {
		return 0, nil, reject(ReasonIllegalDouble, "%v", game.ErrIllegalPlay)
	}
	return side, p, nil
}

// nextTurn ends the acting side's turn with the given status, resolving the
// round once nobody is still playing. The match is left untouched when the
// next side is due to draw from an empty round deck.
func (m *Match) nextTurn(status ParticipantStatus) error {
	round := m.current()
	acting := m.Participants[m.Turn]

	next := 1 - m.Turn
	if m.Participants[next].Status != Playing {
		next = m.Turn
	}
	if next == m.Turn && status != Playing {
		acting.Status = status
		round.Turn++
		return m.finalizeRound()
	}
	if len(round.Deck) == 0 {
		return m.deckExhausted(next, game.ErrDeckExhausted)
	}

	acting.Status = status
	round.Turn++
	m.Turn = next
	if err := m.drawFor(next); err != nil {
		return err
	}
	if m.rules.CardCountWinner(round.Boards) != game.Tie {
		return m.finalizeRound()
	}
	m.notifyState()
	return nil
}

func (m *Match) finalizeRound() error {
	round := m.current()
	index := len(m.Rounds) - 1
	winner := round.Resolve(m.rules)
	if winner != game.Tie {
		m.Score[winner]++
	}
	m.log.Info().
		Int("round", index).
		Int("winner", winner).
		Ints("totals", []int{round.Total(0), round.Total(1)}).
		Ints("score", m.Score[:]).
		Msg("Round resolved")

	if m.Score[0] >= m.rules.WinningScore || m.Score[1] >= m.rules.WinningScore {
		m.Status = StatusFinished
		matchWinner := m.matchWinner()
		for side, p := range m.Participants {
			m.notify(p, Event{Type: EventMatchResult, Result: &MatchResult{
				Won:           side == matchWinner,
				Score:         m.Score[side],
				OpponentScore: m.Score[1-side],
			}})
		}
		m.log.Info().Int("winner", matchWinner).Ints("score", m.Score[:]).Msg("Match finished")
		m.notifyState()
		return nil
	}

	for side, p := range m.Participants {
		result := &RoundResult{
			Round:         index,
			Tie:           winner == game.Tie,
			Score:         m.Score[side],
			OpponentScore: m.Score[1-side],
		}
		if winner != game.Tie {
			result.Winner = m.Participants[winner].ID
		}
		m.notify(p, Event{Type: EventRoundResult, Round: result})
	}

	first := winner
	if first == game.Tie {
		first = m.rng.Intn(2)
	}
	return m.startRound(first)
}

func (m *Match) matchWinner() int {
	if m.Score[0] > m.Score[1] {
		return 0
	}
	return 1
}

// start deals fresh personal decks and begins the first round.
func (m *Match) start() error {
	for _, p := range m.Participants {
		if p == nil {
			return ErrMissingParticipant
		}
		p.Deck = game.CopyCards(p.chosen)
		game.ShuffleCards(p.Deck, m.rng)
		p.Hand = nil
	}
	m.Score = [2]int{}
	m.Rounds = nil
	m.rematchRequestedBy = uuid.Nil
	m.Status = StatusInProgress
	return m.startRound(0)
}

func (m *Match) startRound(first int) error {
	deck := game.NewMainDeck()
	game.ShuffleCards(deck, m.rng)
	m.Rounds = append(m.Rounds, game.NewRound(deck))
	for _, p := range m.Participants {
		p.Status = Playing
		p.drawHand(m.rules.HandSize)
	}
	m.Turn = first
	if err := m.drawFor(first); err != nil {
		return err
	}
	m.log.Debug().Int("round", len(m.Rounds)-1).Int("first", first).Msg("Round started")
	m.notifyState()
	return nil
}

// drawFor places the top card of the round deck on the side's board.
func (m *Match) drawFor(side int) error {
	round := m.current()
	card, err := round.Draw()
	if err != nil {
		return m.deckExhausted(side, err)
	}
	return round.Play(side, card)
}

func (m *Match) deckExhausted(side int, err error) error {
	round := len(m.Rounds) - 1
	m.log.Error().Err(err).Int("round", round).Str("participant", m.Participants[side].ID.String()).Msg("round deck exhausted")
	return fmt.Errorf("round %d: %w", round, err)
}

// RequestRematch records the request once the match is finished.
func (m *Match) RequestRematch(participantID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	side, p := m.participant(participantID)
	if p == nil {
		return reject(ReasonUnknownParticipant, "participant %s is not part of this match", participantID)
	}
	if m.Status != StatusFinished {
		return reject(ReasonNotFinished, "match is %s", m.Status)
	}
	m.rematchRequestedBy = p.ID
	m.LastActivity = m.now()
	m.log.Info().Int("seat", side).Msg("Rematch requested")
	m.notify(m.Participants[1-side], Event{Type: EventRematchRequested})
	return nil
}

// AcceptRematch restarts the match when the other participant asked for it.
func (m *Match) AcceptRematch(participantID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, p := m.participant(participantID)
	switch {
	case p == nil:
		return reject(ReasonUnknownParticipant, "participant %s is not part of this match", participantID)
	case m.Status != StatusFinished:
		return reject(ReasonNotFinished, "match is %s", m.Status)
	case m.rematchRequestedBy == uuid.Nil:
		return reject(ReasonNoRematchRequest, "no rematch was requested")
	case m.rematchRequestedBy == p.ID:
		return reject(ReasonOwnRematchRequest, "cannot accept your own rematch request")
	}
	m.LastActivity = m.now()
	m.log.Info().Msg("Rematch accepted")
	for _, other := range m.Participants {
		m.notify(other, Event{Type: EventRematchAccepted})
	}
	return m.start()
}

func (m *Match) participant(id uuid.UUID) (int, *Participant) {
	for side, p := range m.Participants {
		if p != nil && p.ID == id {
			return side, p
		}
	}
	return 0, nil
}

func (m *Match) current() *game.Round {
	if len(m.Rounds) == 0 {
		return nil
	}
	return m.Rounds[len(m.Rounds)-1]
}

func (m *Match) notify(p *Participant, ev Event) {
	if p == nil || p.notifier == nil {
		return
	}
	p.notifier.Notify(p.ID, ev)
}

func (m *Match) notifyState() {
	for side, p := range m.Participants {
		if p == nil || p.notifier == nil {
			continue
		}
		v := m.view(side)
		m.notify(p, Event{Type: EventState, State: &v})
	}
}
