// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package kont

import "github.com/google/uuid"

// Store is the S component of the CESK tuple: mutable state that is NOT
// part of the pure control structure. It tracks which one-shot
// continuations have already been resumed, and carries any auxiliary
// user-level storage a handler wants to thread through a run (e.g. a
// cache keyed by effect payload).
//
// A Store is mutated in place by design — per the concurrency model, a
// single CESK run only ever has one step active at a time, so no
// locking is required.
type Store struct {
	consumed      map[uuid.UUID]struct{}
	cells         map[string]Value
	nextHandlerID uint64
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		consumed: make(map[uuid.UUID]struct{}),
		cells:    make(map[string]Value),
	}
}

// AllocHandlerID returns a fresh [HandlerID], unique within this Store's
// run. It is threaded through S rather than a package-level counter so
// that step remains a pure function of its [State] argument (P1) and
// independent concurrent runs sharing a process never interfere.
func (s *Store) AllocHandlerID() HandlerID {
	s.nextHandlerID++
	return HandlerID(s.nextHandlerID)
}

// MarkConsumed records id as used and reports whether this is the first
// time it has been marked. A false return means id was already consumed
// — the caller is attempting to resume a one-shot continuation twice.
func (s *Store) MarkConsumed(id uuid.UUID) bool {
	if _, seen := s.consumed[id]; seen {
		return false
	}
	s.consumed[id] = struct{}{}
	return true
}

// IsConsumed reports whether id has already been marked consumed.
func (s *Store) IsConsumed(id uuid.UUID) bool {
	_, seen := s.consumed[id]
	return seen
}

// Get returns the value stored under key, if any.
func (s *Store) Get(key string) (Value, bool) {
	v, ok := s.cells[key]
	return v, ok
}

// Put stores v under key, overwriting any previous value.
func (s *Store) Put(key string, v Value) {
	s.cells[key] = v
}
