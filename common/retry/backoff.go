// Copyright (c) 2023 XDBLab Organization
// SPDX-License-Identifier: BUSL-1.1

package retry

import (
	"math"
	"time"
)

// Policy is an exponential backoff policy.
// A zero MaximumAttempts or MaximumAttemptsDuration means unlimited.
type Policy struct {
	InitialInterval         time.Duration
	BackoffCoefficient      float64
	MaximumInterval         time.Duration
	MaximumAttempts         int
	MaximumAttemptsDuration time.Duration
}

// DefaultPolicy is infinite retry with 100ms initial interval, 5 seconds max interval, and 2 backoff factor
var DefaultPolicy = Policy{
	InitialInterval:    100 * time.Millisecond,
	BackoffCoefficient: 2,
	MaximumInterval:    5 * time.Second,
}

// NextBackoff returns how long to wait before the next attempt, given the attempts completed so far
// and when the first attempt started.
func (p Policy) NextBackoff(completedAttempts int, firstAttemptStart time.Time) (next time.Duration, shouldRetry bool) {
	p = p.withDefaults()
	if p.MaximumAttempts > 0 && completedAttempts >= p.MaximumAttempts {
		return 0, false
	}
	if p.MaximumAttemptsDuration > 0 && firstAttemptStart.Add(p.MaximumAttemptsDuration).Before(time.Now()) {
		return 0, false
	}
	if completedAttempts < 1 {
		completedAttempts = 1
	}
	next = time.Duration(float64(p.InitialInterval) * math.Pow(p.BackoffCoefficient, float64(completedAttempts-1)))
	if next > p.MaximumInterval || next <= 0 {
		next = p.MaximumInterval
	}
	return next, true
}

func (p Policy) withDefaults() Policy {
	if p.InitialInterval <= 0 {
		p.InitialInterval = DefaultPolicy.InitialInterval
	}
	if p.BackoffCoefficient < 1 {
		p.BackoffCoefficient = DefaultPolicy.BackoffCoefficient
	}
	if p.MaximumInterval <= 0 {
		p.MaximumInterval = DefaultPolicy.MaximumInterval
	}
	if p.MaximumInterval < p.InitialInterval {
		p.MaximumInterval = p.InitialInterval
	}
	return p
}
