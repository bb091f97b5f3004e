// Copyright (c) 2017 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package engine

import (
	"sync"
	"time"

	"github.com/camunda/camunda-sub002/common/log"
)

type (
	// TimerGate wakes a single consumer at the earliest time requested
	TimerGate interface {
		// FireChan return the signals channel of firing timers
		// after receiving an empty signal, caller should call Update to set up next one
		FireChan() <-chan struct{}
		// Update moves the next firing to nextTime when that is sooner than the pending one.
		// Returns true when the gate was rescheduled.
		Update(nextTime time.Time) bool
		// Close shutdown the TimerGate
		Close()
	}

	localTimerGateImpl struct {
		sync.Mutex
		// the channel which will be used to proxy the fired timer
		fireChan  chan struct{}
		closeChan chan struct{}
		closeOnce sync.Once

		// the actual timer which will fire
		timer *time.Timer
		// nextWakeupTime is zero when no firing is pending
		nextWakeupTime time.Time
		logger         log.Logger
	}
)

// NewLocalTimerGate create a new timer gate instance
func NewLocalTimerGate(logger log.Logger) TimerGate {
	tg := &localTimerGateImpl{
		timer:     time.NewTimer(time.Hour),
		fireChan:  make(chan struct{}, 1),
		closeChan: make(chan struct{}),
		logger:    logger,
	}
	tg.timer.Stop()

	go func() {
		defer tg.timer.Stop()
		for {
			select {
			case <-tg.timer.C:
				tg.Lock()
				tg.nextWakeupTime = time.Time{}
				tg.Unlock()
				select {
				case tg.fireChan <- struct{}{}:
				default:
					// the consumer has not taken the previous signal yet, one is enough
					tg.logger.Debug("timer gate signal is still pending")
				}
			case <-tg.closeChan:
				return
			}
		}
	}()

	return tg
}

func (tg *localTimerGateImpl) FireChan() <-chan struct{} {
	return tg.fireChan
}

func (tg *localTimerGateImpl) Update(nextTime time.Time) bool {
	tg.Lock()
	defer tg.Unlock()

	if !tg.nextWakeupTime.IsZero() && !nextTime.Before(tg.nextWakeupTime) {
		return false
	}
	tg.timer.Stop()
	tg.nextWakeupTime = nextTime
	// NOTE: negative duration will make the timer fire immediately
	tg.timer.Reset(time.Until(nextTime))
	return true
}

func (tg *localTimerGateImpl) Close() {
	tg.closeOnce.Do(func() {
		close(tg.closeChan)
	})
}
