// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"time"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/camunda/camunda-sub002/common/log"
	"github.com/camunda/camunda-sub002/common/log/tag"
	"github.com/camunda/camunda-sub002/config"
	"github.com/camunda/camunda-sub002/persistence/primary"
)

type batchOperationExecutorImpl struct {
	rootCtx context.Context
	cfg     config.BatchOperationConfig
	engine  *Engine
	logger  log.Logger

	// pollTimer wakes the executor when the next item is due
	pollTimer TimerGate
	stopped   chan struct{}
}

type unresolvedBatch struct {
	key     int64
	filter  apimodel.ProcessInstanceFilter
	tenants []string
}

func NewBatchOperationExecutor(
	rootCtx context.Context, cfg config.BatchOperationConfig, engine *Engine, logger log.Logger,
) BatchOperationExecutor {
	return &batchOperationExecutorImpl{
		rootCtx:   rootCtx,
		cfg:       cfg,
		engine:    engine,
		logger:    logger.WithTags(tag.Service("batch-operation-executor")),
		pollTimer: NewLocalTimerGate(logger),
		stopped:   make(chan struct{}),
	}
}

func (w *batchOperationExecutorImpl) Start() error {
	w.pollTimer.Update(time.Now())

	go func() {
		defer close(w.stopped)
		for {
			select {
			case <-w.pollTimer.FireChan():
				busy := w.resolveItems()
				busy = w.processNextItems() || busy
				if busy {
					w.pollTimer.Update(time.Now().Add(w.cfg.ItemInterval))
				} else {
					w.pollTimer.Update(time.Now().Add(w.cfg.ScanInterval))
				}
			case <-w.rootCtx.Done():
				w.logger.Info("batch operation executor is being closed")
				return
			}
		}
	}()
	return nil
}

func (w *batchOperationExecutorImpl) TriggerPolling() {
	w.pollTimer.Update(time.Now())
}

func (w *batchOperationExecutorImpl) Stop(ctx context.Context) error {
	// close timer to prevent goroutine leakage
	w.pollTimer.Close()
	select {
	case <-w.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// resolveItems turns the filter of new batch operations into items, reading the index.
// Returns true when a batch operation is still waiting for its items.
func (w *batchOperationExecutorImpl) resolveItems() bool {
	var pending []unresolvedBatch
	_ = w.engine.store.View(func(state *primary.State) error {
		for _, batch := range state.BatchOperations() {
			if batch.Items == nil && isRunning(batch.State) {
				pending = append(pending, unresolvedBatch{key: batch.Key, filter: batch.Filter, tenants: batch.Tenants})
			}
		}
		return nil
	})

	waiting := false
	for _, p := range pending {
		instances, err := w.engine.index.SearchProcessInstances(w.rootCtx, p.filter, p.tenants)
		if err != nil {
			w.logger.Warn("failed to resolve batch operation items, will retry",
				tag.BatchOperationKey(primary.FormatKey(p.key)), tag.Error(err))
			waiting = true
			continue
		}

		_ = w.engine.store.Update(func(state *primary.State) error {
			batch, ok := state.BatchOperation(p.key)
			if !ok || batch.Items != nil || !isRunning(batch.State) {
				return nil
			}
			batch.Items = make([]*primary.BatchOperationItem, 0, len(instances))
			for _, pi := range instances {
				instanceKey, ok := primary.ParseKey(pi.ProcessInstanceKey)
				if !ok {
					continue
				}
				item := &primary.BatchOperationItem{
					Key:                state.NextKey(),
					ProcessInstanceKey: instanceKey,
					State:              apimodel.BatchOperationItemStateActive,
				}
				batch.Items = append(batch.Items, item)
				state.PutBatchOperationItem(batch, item)
			}
			if batch.State == apimodel.BatchOperationStateCreated {
				batch.State = apimodel.BatchOperationStateActive
			}
			completeIfDone(state, batch)
			state.PutBatchOperation(batch)
			w.logger.Info("resolved batch operation items",
				tag.BatchOperationKey(primary.FormatKey(batch.Key)), tag.Value(len(batch.Items)))
			return nil
		})
	}
	return waiting
}

// processNextItems executes one item of every active batch operation.
// Returns true when items are left.
func (w *batchOperationExecutorImpl) processNextItems() bool {
	itemsLeft := false
	_ = w.engine.store.Update(func(state *primary.State) error {
		for _, batch := range state.BatchOperations() {
			if batch.State != apimodel.BatchOperationStateActive || batch.Items == nil {
				continue
			}
			if batch.Next < len(batch.Items) {
				w.processItem(state, batch, batch.Items[batch.Next])
				batch.Next++
			}
			completeIfDone(state, batch)
			state.PutBatchOperation(batch)
			if batch.Next < len(batch.Items) {
				itemsLeft = true
			}
		}
		return nil
	})
	return itemsLeft
}

func (w *batchOperationExecutorImpl) processItem(
	state *primary.State, batch *primary.BatchOperation, item *primary.BatchOperationItem,
) {
	instanceKey := primary.FormatKey(item.ProcessInstanceKey)
	var err error
	switch batch.Type {
	case apimodel.BatchOperationTypeCancelProcessInstance:
		err = w.engine.cancelProcessInstance(state, instanceKey, batch.Tenants)
	case apimodel.BatchOperationTypeDeleteProcessInstance:
		err = w.engine.deleteProcessInstance(state, instanceKey, batch.Tenants)
	default:
		err = reject(RejectionInvalidArgument, "Unsupported batch operation type '%v'", batch.Type)
	}

	item.ProcessedDate = state.Now()
	if err != nil {
		item.State = apimodel.BatchOperationItemStateFailed
		item.ErrorMessage = err.Error()
		w.logger.Debug("batch operation item failed",
			tag.BatchOperationKey(primary.FormatKey(batch.Key)), tag.ProcessInstanceKey(instanceKey), tag.Error(err))
	} else {
		item.State = apimodel.BatchOperationItemStateCompleted
	}
	state.PutBatchOperationItem(batch, item)
}

// completeIfDone completes an active batch operation without items left, even when some failed
func completeIfDone(state *primary.State, batch *primary.BatchOperation) {
	if batch.State == apimodel.BatchOperationStateActive && batch.Next >= len(batch.Items) {
		batch.State = apimodel.BatchOperationStateCompleted
		batch.EndDate = state.Now()
	}
}

func isRunning(state apimodel.BatchOperationState) bool {
	return state == apimodel.BatchOperationStateCreated || state == apimodel.BatchOperationStateActive
}
