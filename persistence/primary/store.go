// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package primary

import (
	"sync"
	"time"

	"github.com/camunda/camunda-sub002/persistence"
)

// Store serializes all access to the primary state and ships its export records to the sink
type Store struct {
	lock  sync.RWMutex
	state *State
	sink  persistence.RecordSink
}

func NewStore(sink persistence.RecordSink, clock func() time.Time) *Store {
	if clock == nil {
		clock = time.Now
	}
	return &Store{
		state: newState(clock),
		sink:  sink,
	}
}

// Update runs fn with exclusive access. The records of every change fn made are appended
// to the sink before the lock is released, so the sink sees them in commit order.
// Changes are not rolled back: fn must reject before it changes the state. The records of
// a failed fn are discarded.
func (s *Store) Update(fn func(state *State) error) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	err := fn(s.state)
	records := s.state.takePending()
	if err != nil {
		return err
	}
	if len(records) > 0 {
		s.sink.Append(records)
	}
	return nil
}

// View runs fn with shared access; fn must not change the state
func (s *Store) View(fn func(state *State) error) error {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return fn(s.state)
}
