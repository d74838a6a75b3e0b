package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Depth     int
	Evaluator string
	Duration  time.Duration
	Nodes     int
	Prunes    int
	TableHits int
}

type MoveMetric struct {
	Step   int
	Player string // Color name
	Action string
	Pass   bool
	SearchMetric
}

type GameMetric struct {
	StartingPlayer string // Color name
	Winner         string // Color name, "none" for a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	Capped         bool // Stopped by the safety bound rather than decided
}

// AgentConfig is the full per-agent configuration of a run.
type AgentConfig struct {
	ID            int
	Evaluator     string // Evaluator variant name
	Neighbourhood int
	Depth         int
	UseValues     bool    // Consult the agent's value table during search
	WinAbove      float64 // Value above which a position counts as won
	LossBelow     float64 // Value below which a position counts as lost
	LearningRate  float64
	Random        bool // Play uniformly random actions instead of searching
	Seed          uint64
}

type Collector interface {
	Start(depth int, evaluator string)
	AddNode()
	AddPrune()
	AddTableHit()
	Complete() SearchMetric
}

type collector struct {
	depth     int
	evaluator string
	startTime time.Time
	nodes     atomic.Int64
	prunes    atomic.Int64
	tableHits atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(depth int, evaluator string) {
	m.startTime = time.Now()
	m.depth = depth
	m.evaluator = evaluator
	m.nodes.Store(0)
	m.prunes.Store(0)
	m.tableHits.Store(0)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddPrune() {
	m.prunes.Add(1)
}

func (m *collector) AddTableHit() {
	m.tableHits.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Depth:     m.depth,
		Evaluator: m.evaluator,
		Duration:  time.Since(m.startTime),
		Nodes:     int(m.nodes.Load()),
		Prunes:    int(m.prunes.Load()),
		TableHits: int(m.tableHits.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth int, evaluator string) {}
func (m *dummyCollector) AddNode()                          {}
func (m *dummyCollector) AddPrune()                         {}
func (m *dummyCollector) AddTableHit()                      {}
func (m *dummyCollector) Complete() SearchMetric            { return SearchMetric{} }
