// internal/app/system/titlecheck/titlecheck.go
//
// Package titlecheck sequences duplicate-title lookups. The dashboard
// fires one lookup per keystroke with no cancellation, so a slow early
// response can arrive after a fast later one and flip the warning the
// wrong way. Each lookup gets a monotonically increasing sequence
// number and only the latest-issued result is ever applied.
package titlecheck

import "sync"

// Result of one duplicate-title lookup.
type Result struct {
	Seq   uint64 `json:"seq"`
	Title string `json:"title"`
	Taken bool   `json:"taken"`
}

// Sequencer hands out sequence numbers and filters stale results.
// Safe for concurrent use.
type Sequencer struct {
	mu      sync.Mutex
	issued  uint64
	applied uint64
	latest  Result
	hasAny  bool
}

// Next reserves and returns the next sequence number. Call it when
// issuing a lookup.
func (s *Sequencer) Next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Apply records r if and only if no result from a later-issued lookup
// has been applied. It reports whether r was accepted; rejected results
// must be discarded by the caller.
func (s *Sequencer) Apply(r Result) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasAny && r.Seq <= s.applied {
		return false
	}
	s.applied = r.Seq
	s.latest = r
	s.hasAny = true
	return true
}

// Latest returns the most recently applied result, if any.
func (s *Sequencer) Latest() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.hasAny
}
