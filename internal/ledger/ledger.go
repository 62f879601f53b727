// Package ledger keeps a bounded, newest-first in-memory history of
// completed charge decisions. It is a completion log: insertion order
// reflects when each pipeline run finished, not when requests arrived.
package ledger

import (
	"sync"
	"time"

	"payrouter/internal/risk"
)

// DefaultCapacity bounds the retained history.
const DefaultCapacity = 1000

// Status is the terminal state of a charge decision.
type Status string

const (
	StatusSuccess Status = "success"
	StatusBlocked Status = "blocked"
)

// Record is one completed decision. Created exactly once per pipeline run
// and never mutated afterwards; the ledger owns it exclusively.
type Record struct {
	ID          string             `json:"id"`
	Timestamp   time.Time          `json:"timestamp"`
	Request     risk.ChargeRequest `json:"request"`
	RiskScore   float64            `json:"riskScore"`
	Reasons     []risk.Reason      `json:"reasons"`
	Status      Status             `json:"status"`
	Provider    risk.Provider      `json:"provider,omitempty"`
	Explanation string             `json:"explanation"`
}

// Store is a capacity-bounded, newest-first record store. Safe for
// concurrent use.
type Store struct {
	mu       sync.RWMutex
	capacity int
	records  []Record
}

// NewStore creates a ledger with the given capacity. Non-positive
// capacities fall back to DefaultCapacity.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		capacity: capacity,
		records:  make([]Record, 0, capacity),
	}
}

// Append inserts a record at the head. When the store is at capacity the
// oldest record is evicted.
func (s *Store) Append(rec Record) {
	done := observeOp("append")
	defer done()

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.records) < s.capacity {
		s.records = append(s.records, Record{})
	} else {
		recordsEvicted.Inc()
	}
	copy(s.records[1:], s.records)
	s.records[0] = rec

	recordsRetained.Set(float64(len(s.records)))
}

// ListAll returns a copy of the retained history, newest first. Records
// are values, so callers cannot mutate the store through the result.
func (s *Store) ListAll() []Record {
	done := observeOp("list")
	defer done()

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of retained records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
