// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package await

import (
	"fmt"
	"strings"
)

// Assert collects assertion failures of a single evaluation.
// It satisfies testify's assert.TestingT and require.TestingT, so
// the usual assert/require helpers can be used against it:
//
//	await.New("batch completed").UntilAsserted(ctx, func(ctx context.Context, a *await.Assert) error {
//		batch, err := c.GetBatchOperation(ctx, key)
//		if err != nil {
//			return err
//		}
//		assert.Equal(a, "COMPLETED", batch.State)
//		return nil
//	})
type Assert struct {
	messages []string
}

type failNowSignal struct{}

func (a *Assert) Errorf(format string, args ...interface{}) {
	a.messages = append(a.messages, strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// FailNow stops the current evaluation, it is called by the require package
func (a *Assert) FailNow() {
	panic(failNowSignal{})
}

func (a *Assert) Helper() {}

// Failed reports whether any assertion failed during the evaluation
func (a *Assert) Failed() bool {
	return len(a.messages) > 0
}

func (a *Assert) message() string {
	return strings.Join(a.messages, "\n")
}

// evaluate runs fn against a fresh collector. A require failure ends fn early.
func evaluate(fn func(a *Assert) error) (a *Assert, err error) {
	a = &Assert{}
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(failNowSignal); !ok {
				panic(r)
			}
			if !a.Failed() {
				a.messages = append(a.messages, "FailNow called")
			}
		}
	}()
	err = fn(a)
	return a, err
}

// AssertionError is the failure of an evaluation whose assertions did not hold
type AssertionError struct {
	Message string
}

func (e *AssertionError) Error() string {
	return e.Message
}
