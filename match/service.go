package match

import (
	"crypto/subtle"

	"github.com/google/uuid"

	"pazaak/game"
)

// Service is the entry point used by transports and bots. It resolves matches
// through the registry and forwards to the match state machine.
type Service struct {
	registry Registry
	options  []Option
}

func NewService(registry Registry, options ...Option) *Service {
	return &Service{registry: registry, options: options}
}

func (s *Service) CreateMatch(name string, deck []game.Card, notifier Notifier) (*Match, Credentials, error) {
	m, creds, err := NewMatch(name, deck, notifier, s.options...)
	if err != nil {
		return nil, Credentials{}, err
	}
	s.registry.Put(m)
	return m, creds, nil
}

func (s *Service) JoinMatch(matchID uuid.UUID, deck []game.Card, notifier Notifier) (*Match, Credentials, error) {
	m, err := s.registry.Get(matchID)
	if err != nil {
		return nil, Credentials{}, err
	}
	creds, err := m.Join(deck, notifier)
	if err != nil {
		return nil, Credentials{}, err
	}
	return m, creds, nil
}

func (s *Service) Match(matchID uuid.UUID) (*Match, error) {
	return s.registry.Get(matchID)
}

func (s *Service) SubmitAction(matchID, participantID uuid.UUID, action game.Action) error {
	m, err := s.registry.Get(matchID)
	if err != nil {
		return err
	}
	return m.PerformAction(participantID, action)
}

func (s *Service) RequestRematch(matchID, participantID uuid.UUID) error {
	m, err := s.registry.Get(matchID)
	if err != nil {
		return err
	}
	return m.RequestRematch(participantID)
}

func (s *Service) AcceptRematch(matchID, participantID uuid.UUID) error {
	m, err := s.registry.Get(matchID)
	if err != nil {
		return err
	}
	return m.AcceptRematch(participantID)
}

// Authenticate resolves a participant token issued on create or join.
func (s *Service) Authenticate(matchID uuid.UUID, token string) (uuid.UUID, error) {
	m, err := s.registry.Get(matchID)
	if err != nil {
		return uuid.Nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.Participants {
		if p != nil && subtle.ConstantTimeCompare([]byte(p.Token), []byte(token)) == 1 {
			return p.ID, nil
		}
	}
	return uuid.Nil, ErrInvalidToken
}
