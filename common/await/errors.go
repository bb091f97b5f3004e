// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package await

import (
	"errors"
	"time"
)

// ErrConditionTimeout matches every *TimeoutError with errors.Is
var ErrConditionTimeout = errors.New("condition not satisfied within deadline")

var errConditionFalse = errors.New("condition evaluated to false")

// TimeoutError is returned when a condition did not hold before its deadline.
// Its message is the last observed failure, prefixed by the alias when one is set.
type TimeoutError struct {
	Alias    string
	Attempts int
	Elapsed  time.Duration
	Last     error
}

func (e *TimeoutError) Error() string {
	msg := ErrConditionTimeout.Error()
	if e.Last != nil {
		msg = e.Last.Error()
	}
	if e.Alias != "" {
		return e.Alias + ": " + msg
	}
	return msg
}

func (e *TimeoutError) Unwrap() error {
	return e.Last
}

func (e *TimeoutError) Is(target error) bool {
	return target == ErrConditionTimeout
}

// OperationError is a non ignored error returned by the polled operation. It ends the poll at once.
type OperationError struct {
	Alias    string
	Attempts int
	Err      error
}

func (e *OperationError) Error() string {
	if e.Alias != "" {
		return e.Alias + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// CancelledError is returned when the caller's context ends the poll before the deadline.
// It matches the context error with errors.Is, never ErrConditionTimeout.
type CancelledError struct {
	Alias    string
	Attempts int
	Err      error
	// Last is the failure observed before the cancellation, nil when no attempt failed
	Last error
}

func (e *CancelledError) Error() string {
	msg := "poll cancelled: " + e.Err.Error()
	if e.Last != nil {
		msg += ", last failure: " + e.Last.Error()
	}
	if e.Alias != "" {
		return e.Alias + ": " + msg
	}
	return msg
}

func (e *CancelledError) Unwrap() []error {
	if e.Last == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Last}
}
