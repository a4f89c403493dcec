package player

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pazaak/game"
	"pazaak/match"
)

const (
	DefaultThinkingDelay = 750 * time.Millisecond
	DefaultPlayCap       = 10
)

// Table is the part of a match an automated player needs.
type Table interface {
	View(participantID uuid.UUID) (match.View, error)
	PerformAction(participantID uuid.UUID, action game.Action) error
	AcceptRematch(participantID uuid.UUID) error
}

// Controller plays one seat of a match on behalf of an Agent. It receives the
// match's notifications and acts in a background goroutine whenever its
// participant is expected to act.
type Controller struct {
	agent   Agent
	delay   time.Duration
	playCap int

	table         Table
	participantID uuid.UUID
	bindMu        sync.RWMutex

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	spawnMu sync.Mutex // Orders wg.Add against Stop
	wg      sync.WaitGroup
	log     zerolog.Logger
}

type ControllerOption func(*Controller)

func WithThinkingDelay(delay time.Duration) ControllerOption {
	return func(c *Controller) {
		if delay >= 0 {
			c.delay = delay
		}
	}
}

// WithPlayCap bounds how many cards the controller plays in a single turn.
func WithPlayCap(plays int) ControllerOption {
	return func(c *Controller) {
		if plays > 0 {
			c.playCap = plays
		}
	}
}

func NewController(agent Agent, options ...ControllerOption) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		agent:   agent,
		delay:   DefaultThinkingDelay,
		playCap: DefaultPlayCap,
		ctx:     ctx,
		cancel:  cancel,
		log:     log.With().Str("component", "controller").Logger(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Bind assigns the seat the controller plays and acts if it is already its turn.
func (c *Controller) Bind(table Table, participantID uuid.UUID) {
	c.bindMu.Lock()
	c.table = table
	c.participantID = participantID
	c.bindMu.Unlock()
	c.trigger()
}

// Stop cancels any pending action and waits for the background loop to exit.
func (c *Controller) Stop() {
	c.spawnMu.Lock()
	c.cancel()
	c.spawnMu.Unlock()
	c.wg.Wait()
}

// Notify implements match.Notifier. It never calls back into the match on the
// caller's goroutine.
func (c *Controller) Notify(participantID uuid.UUID, ev match.Event) {
	table, id := c.binding()
	if table == nil || participantID != id {
		return
	}
	switch ev.Type {
	case match.EventState:
		if ev.State != nil && ev.State.Acting() {
			c.trigger()
		}
	case match.EventRematchRequested:
		c.spawn(func() {
			if err := table.AcceptRematch(id); err != nil {
				c.log.Warn().Err(err).Msg("Failed to accept rematch")
			}
		})
	}
}

func (c *Controller) binding() (Table, uuid.UUID) {
	c.bindMu.RLock()
	defer c.bindMu.RUnlock()
	return c.table, c.participantID
}

func (c *Controller) spawn(fn func()) {
	c.spawnMu.Lock()
	defer c.spawnMu.Unlock()
	if c.ctx.Err() != nil {
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		fn()
	}()
}

// trigger starts the turn loop unless it is already running.
func (c *Controller) trigger() {
	if c.ctx.Err() != nil || !c.running.CompareAndSwap(false, true) {
		return
	}
	c.spawn(c.loop)
}

func (c *Controller) loop() {
	c.takeTurn()
	c.running.Store(false)

	// The turn may have come back while the loop was finishing
	if c.acting() {
		c.trigger()
	}
}

func (c *Controller) acting() bool {
	table, id := c.binding()
	if table == nil {
		return false
	}
	view, err := table.View(id)
	return err == nil && view.Acting()
}

func (c *Controller) takeTurn() {
	table, id := c.binding()
	if table == nil {
		return
	}
	logger := c.log.With().Str("participant", id.String()).Logger()
	for plays := 0; ; plays++ {
		if !c.pause() {
			return
		}
		view, err := table.View(id)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to read match view")
			return
		}
		if !view.Acting() {
			return
		}

		action := c.decide(logger, view, plays)
		if err := table.PerformAction(id, action); err != nil {
			logger.Warn().Err(err).Str("action", action.String()).Msg("Action rejected, ending turn")
			action = game.EndAction()
			if err := table.PerformAction(id, action); err != nil {
				logger.Error().Err(err).Msg("Failed to end turn")
				return
			}
		}
		if action.Kind != game.ActionPlay {
			return
		}
	}
}

func (c *Controller) decide(logger zerolog.Logger, view match.View, plays int) game.Action {
	if plays >= c.playCap {
		logger.Warn().Int("plays", plays).Msg("Play cap reached, ending turn")
		return game.EndAction()
	}
	action, _, err := c.agent.FindAction(view)
	if err != nil {
		logger.Error().Err(err).Msg("Agent failed to find an action, ending turn")
		return game.EndAction()
	}
	logger.Debug().Str("action", action.String()).Int("round", view.Round).Msg("Agent chose action")
	return action
}

// pause waits the thinking delay and reports false when the controller stopped.
func (c *Controller) pause() bool {
	if c.delay <= 0 {
		return c.ctx.Err() == nil
	}
	timer := time.NewTimer(c.delay)
	defer timer.Stop()
	select {
	case <-c.ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
