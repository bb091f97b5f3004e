// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

// Package await polls an eventually consistent system until a condition holds or a deadline passes.
package await

import (
	"context"
	"errors"
	"time"

	"github.com/camunda/camunda-sub002/common/log"
	"github.com/camunda/camunda-sub002/common/log/tag"
	"github.com/camunda/camunda-sub002/common/retry"
)

const (
	DefaultAtMost       = 10 * time.Second
	DefaultPollInterval = 100 * time.Millisecond
)

// Condition describes how to poll. It is immutable, every builder method returns a modified copy,
// so a configured Condition can be shared between tests.
type Condition struct {
	alias        string
	atMost       time.Duration
	pollDelay    time.Duration
	pollInterval time.Duration
	backoff      *retry.Policy
	ignore       func(error) bool
	logger       log.Logger
}

// New returns a Condition with the default deadline and poll interval, failing on the first operation error
func New(alias string) Condition {
	return Condition{
		alias:        alias,
		atMost:       DefaultAtMost,
		pollInterval: DefaultPollInterval,
		logger:       log.NewNopLogger(),
	}
}

func (c Condition) Alias(alias string) Condition {
	c.alias = alias
	return c
}

// AtMost sets the maximum time spent polling. Zero means a single evaluation.
func (c Condition) AtMost(d time.Duration) Condition {
	if d < 0 {
		d = 0
	}
	c.atMost = d
	return c
}

func (c Condition) PollInterval(d time.Duration) Condition {
	if d <= 0 {
		d = time.Millisecond
	}
	c.pollInterval = d
	c.backoff = nil
	return c
}

// PollDelay waits before the first evaluation. The delay counts towards AtMost.
func (c Condition) PollDelay(d time.Duration) Condition {
	if d < 0 {
		d = 0
	}
	c.pollDelay = d
	return c
}

// PollBackoff grows the interval between evaluations following the policy.
// MaximumAttempts and MaximumAttemptsDuration of the policy are ignored, the deadline bounds the poll.
func (c Condition) PollBackoff(policy retry.Policy) Condition {
	policy.MaximumAttempts = 0
	policy.MaximumAttemptsDuration = 0
	c.backoff = &policy
	return c
}

// IgnoreExceptions retries on every operation error until the deadline
func (c Condition) IgnoreExceptions() Condition {
	c.ignore = func(error) bool { return true }
	return c
}

// IgnoreExceptionsMatching retries on operation errors accepted by match, other errors fail the poll
func (c Condition) IgnoreExceptionsMatching(match func(error) bool) Condition {
	c.ignore = match
	return c
}

func (c Condition) WithLogger(logger log.Logger) Condition {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// Until polls fn until it returns true
func (c Condition) Until(ctx context.Context, fn func(ctx context.Context) (bool, error)) error {
	return c.poll(ctx, func(ctx context.Context) error {
		ok, err := fn(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return &AssertionError{Message: errConditionFalse.Error()}
		}
		return nil
	})
}

// UntilAsserted polls fn until it returns no error and records no assertion failure on a.
// An error returned by fn is an operation error and is subject to the ignore policy.
func (c Condition) UntilAsserted(ctx context.Context, fn func(ctx context.Context, a *Assert) error) error {
	return c.poll(ctx, func(ctx context.Context) error {
		a, err := evaluate(func(a *Assert) error {
			return fn(ctx, a)
		})
		if err != nil {
			return err
		}
		if a.Failed() {
			return &AssertionError{Message: a.message()}
		}
		return nil
	})
}

// Poll calls op until check records no failure on its result, then returns that result.
// On failure the last result obtained is returned together with the error.
func Poll[T any](
	ctx context.Context, c Condition,
	op func(ctx context.Context) (T, error),
	check func(a *Assert, v T),
) (T, error) {
	var last T
	err := c.UntilAsserted(ctx, func(ctx context.Context, a *Assert) error {
		v, err := op(ctx)
		if err != nil {
			return err
		}
		last = v
		check(a, v)
		return nil
	})
	return last, err
}

// poll runs every attempt under the deadline, except a first attempt that starts past it.
// An attempt cut off by the deadline ends the poll with the failure observed before it.
func (c Condition) poll(ctx context.Context, attempt func(ctx context.Context) error) error {
	start := time.Now()
	deadline := start.Add(c.atMost)
	logger := c.logger.WithTags(tag.Alias(c.alias))

	timeout := func(attempts int, last error) error {
		elapsed := time.Since(start)
		logger.Debug("condition not satisfied before deadline",
			tag.Attempt(attempts), tag.Elapsed(elapsed), tag.Error(last))
		return &TimeoutError{Alias: c.alias, Attempts: attempts, Elapsed: elapsed, Last: last}
	}
	cancelled := func(attempts int, last error) error {
		logger.Debug("poll cancelled", tag.Attempt(attempts), tag.Error(ctx.Err()))
		return &CancelledError{Alias: c.alias, Attempts: attempts, Err: ctx.Err(), Last: last}
	}

	if c.pollDelay > 0 {
		if err := sleep(ctx, minDuration(c.pollDelay, c.atMost)); err != nil {
			return cancelled(0, nil)
		}
	}

	interval := c.pollInterval
	var last error
	for attempts := 1; ; attempts++ {
		attemptCtx, cancelAttempt := ctx, context.CancelFunc(func() {})
		if attempts > 1 || time.Now().Before(deadline) {
			attemptCtx, cancelAttempt = context.WithDeadline(ctx, deadline)
		}
		err := attempt(attemptCtx)
		cutOff := err != nil && attemptCtx.Err() != nil && errors.Is(err, context.DeadlineExceeded)
		cancelAttempt()
		if err == nil {
			logger.Debug("condition satisfied", tag.Attempt(attempts), tag.Elapsed(time.Since(start)))
			return nil
		}
		if ctx.Err() != nil {
			return cancelled(attempts, last)
		}
		if cutOff {
			if last == nil {
				last = err
			}
			return timeout(attempts, last)
		}
		var assertionErr *AssertionError
		if !errors.As(err, &assertionErr) && !c.ignores(err) {
			return &OperationError{Alias: c.alias, Attempts: attempts, Err: err}
		}
		last = err

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return timeout(attempts, last)
		}
		if c.backoff != nil {
			interval, _ = c.backoff.NextBackoff(attempts, start)
		}
		if err := sleep(ctx, minDuration(interval, remaining)); err != nil {
			return cancelled(attempts, last)
		}
	}
}

func (c Condition) ignores(err error) bool {
	return c.ignore != nil && c.ignore(err)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
