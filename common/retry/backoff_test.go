// Copyright (c) 2023 XDBLab Organization
// SPDX-License-Identifier: BUSL-1.1

package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextBackoffGrowsUntilMaximum(t *testing.T) {
	policy := Policy{
		InitialInterval:    10 * time.Millisecond,
		BackoffCoefficient: 2,
		MaximumInterval:    50 * time.Millisecond,
	}
	start := time.Now()

	var got []time.Duration
	for i := 1; i <= 5; i++ {
		next, ok := policy.NextBackoff(i, start)
		assert.True(t, ok)
		got = append(got, next)
	}

	assert.Equal(t, []time.Duration{
		10 * time.Millisecond,
		20 * time.Millisecond,
		40 * time.Millisecond,
		50 * time.Millisecond,
		50 * time.Millisecond,
	}, got)
}

func TestNextBackoffStopsAtMaximumAttempts(t *testing.T) {
	policy := Policy{MaximumAttempts: 3}

	_, ok := policy.NextBackoff(2, time.Now())
	assert.True(t, ok)
	_, ok = policy.NextBackoff(3, time.Now())
	assert.False(t, ok)
}

func TestNextBackoffStopsAfterMaximumDuration(t *testing.T) {
	policy := Policy{MaximumAttemptsDuration: time.Second}

	_, ok := policy.NextBackoff(1, time.Now().Add(-2*time.Second))
	assert.False(t, ok)
}

func TestZeroPolicyUsesDefaults(t *testing.T) {
	next, ok := Policy{}.NextBackoff(1, time.Now())

	assert.True(t, ok)
	assert.Equal(t, DefaultPolicy.InitialInterval, next)
}
