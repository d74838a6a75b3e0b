package valuetable

import (
	"sync"

	"expendibots/game"
	"expendibots/meta"

	"github.com/cespare/xxhash/v2"
)

const shardCount = 32

type shard struct {
	mu     sync.RWMutex
	values map[game.Board]float64
}

// Table maps board fingerprints to learned values. It is safe for concurrent
// use; boards are spread over independently locked shards.
type Table struct {
	shards [shardCount]*shard
}

func New() *Table {
	t := &Table{}
	for i := range t.shards {
		t.shards[i] = &shard{values: make(map[game.Board]float64)}
	}
	return t
}

// FromMap loads values learned in an earlier run.
func FromMap(values map[game.Board]float64) *Table {
	t := New()
	for board, value := range values {
		s := t.shard(board)
		s.values[board] = value
	}
	return t
}

func (t *Table) shard(board game.Board) *shard {
	var key [game.NumCells]byte
	for i, cell := range board {
		key[i] = byte(int8(cell))
	}
	return t.shards[xxhash.Sum64(key[:])%shardCount]
}

func (t *Table) Get(board game.Board) (float64, bool) {
	s := t.shard(board)
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[board]
	return value, ok
}

// Init stores the neutral value for board unless it is already known, and
// reports whether it stored it.
func (t *Table) Init(board game.Board) bool {
	s := t.shard(board)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[board]; ok {
		return false
	}
	s.values[board] = meta.NEUTRAL_VALUE
	return true
}

// Update moves the value of board a step of size rate towards target and
// returns the new value. Unknown boards start from the neutral value.
func (t *Table) Update(board game.Board, target, rate float64) float64 {
	s := t.shard(board)
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.values[board]
	if !ok {
		old = meta.NEUTRAL_VALUE
	}
	value := old + rate*(target-old)
	s.values[board] = value
	return value
}

func (t *Table) Len() int {
	n := 0
	for _, s := range t.shards {
		s.mu.RLock()
		n += len(s.values)
		s.mu.RUnlock()
	}
	return n
}

// Snapshot copies every entry into a plain map.
func (t *Table) Snapshot() map[game.Board]float64 {
	out := make(map[game.Board]float64, t.Len())
	for _, s := range t.shards {
		s.mu.RLock()
		for board, value := range s.values {
			out[board] = value
		}
		s.mu.RUnlock()
	}
	return out
}
