package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines   int
	Duration     time.Duration
	Simulations  int // Rollouts per root action
	Actions      int // Root actions scored
	Cutoff       int
	Rollouts     int
	FullPlayouts int
	Cutoffs      int
	IllegalPlays int
	Value        float64 // Average reward of the chosen action
}

type MoveMetric struct {
	Step   int
	Seat   int
	Round  int
	Action string
	SearchMetric
}

type GameMetric struct {
	StartingSeat int
	Winner       int // Seat, or -1 when the move limit was reached
	Score        [2]int
	Rounds       int
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	TotalMoves   int
}

// AgentConfig describes one automated player in an experiment.
type AgentConfig struct {
	ID             int
	Goroutines     int
	Simulations    int
	Cutoff         int
	OpponentPolicy string
	Temperature    float64 // Samples actions by value instead of taking the best when set
	Random         bool    // Uniform random agent instead of Monte-Carlo
}

type Collector interface {
	Start(goroutines, simulations, cutoff int)
	SetActions(n int)
	AddRollout()
	AddFullPlayout()
	AddCutoff()
	AddIllegalPlay()
	Complete(value float64) SearchMetric
}

type collector struct {
	goroutines   int
	simulations  int
	cutoff       int
	actions      int
	startTime    time.Time
	rollouts     atomic.Int32
	fullPlayouts atomic.Int32
	cutoffs      atomic.Int32
	illegalPlays atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines, simulations, cutoff int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.simulations = simulations
	m.cutoff = cutoff
}

func (m *collector) SetActions(n int) {
	m.actions = n
}

func (m *collector) AddRollout() {
	m.rollouts.Add(1)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) AddIllegalPlay() {
	m.illegalPlays.Add(1)
}

func (m *collector) Complete(value float64) SearchMetric {
	return SearchMetric{
		Goroutines:   m.goroutines,
		Duration:     time.Since(m.startTime),
		Simulations:  m.simulations,
		Actions:      m.actions,
		Cutoff:       m.cutoff,
		Rollouts:     int(m.rollouts.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		Cutoffs:      int(m.cutoffs.Load()),
		IllegalPlays: int(m.illegalPlays.Load()),
		Value:        value,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines, simulations, cutoff int) {}
func (m *dummyCollector) SetActions(n int)                           {}
func (m *dummyCollector) AddRollout()                                {}
func (m *dummyCollector) AddFullPlayout()                            {}
func (m *dummyCollector) AddCutoff()                                 {}
func (m *dummyCollector) AddIllegalPlay()                            {}
func (m *dummyCollector) Complete(value float64) SearchMetric        { return SearchMetric{} }
