// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"slices"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/camunda/camunda-sub002/common/log/tag"
	"github.com/camunda/camunda-sub002/persistence/primary"
)

// CreateBatchOperation registers the batch operation. Its items are resolved by the executor
// from the index, with the tenants the creator may access.
func (e *Engine) CreateBatchOperation(
	_ context.Context, operationType apimodel.BatchOperationType, filter apimodel.ProcessInstanceFilter,
	tenants []string,
) (*apimodel.BatchOperationCreatedResult, error) {
	var batch *primary.BatchOperation
	err := e.store.Update(func(state *primary.State) error {
		batch = &primary.BatchOperation{
			Key:       state.NextKey(),
			Type:      operationType,
			State:     apimodel.BatchOperationStateCreated,
			Filter:    filter,
			Tenants:   slices.Clone(tenants),
			StartDate: state.Now(),
		}
		state.PutBatchOperation(batch)
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.logger.Info("created batch operation",
		tag.BatchOperationKey(primary.FormatKey(batch.Key)), tag.Value(operationType))
	e.batchExecutor.TriggerPolling()
	return &apimodel.BatchOperationCreatedResult{
		BatchOperationKey:  primary.FormatKey(batch.Key),
		BatchOperationType: operationType,
	}, nil
}

func (e *Engine) CancelBatchOperation(_ context.Context, batchOperationKey string) error {
	return e.transitionBatchOperation(batchOperationKey, "cancel",
		[]apimodel.BatchOperationState{
			apimodel.BatchOperationStateCreated,
			apimodel.BatchOperationStateActive,
			apimodel.BatchOperationStateSuspended,
		},
		func(state *primary.State, batch *primary.BatchOperation) {
			now := state.Now()
			for _, item := range batch.Items[batch.Next:] {
				item.State = apimodel.BatchOperationItemStateCanceled
				item.ProcessedDate = now
				state.PutBatchOperationItem(batch, item)
			}
			batch.State = apimodel.BatchOperationStateCanceled
			batch.EndDate = now
		})
}

func (e *Engine) SuspendBatchOperation(_ context.Context, batchOperationKey string) error {
	return e.transitionBatchOperation(batchOperationKey, "suspend",
		[]apimodel.BatchOperationState{apimodel.BatchOperationStateCreated, apimodel.BatchOperationStateActive},
		func(_ *primary.State, batch *primary.BatchOperation) {
			batch.State = apimodel.BatchOperationStateSuspended
		})
}

func (e *Engine) ResumeBatchOperation(_ context.Context, batchOperationKey string) error {
	err := e.transitionBatchOperation(batchOperationKey, "resume",
		[]apimodel.BatchOperationState{apimodel.BatchOperationStateSuspended},
		func(_ *primary.State, batch *primary.BatchOperation) {
			batch.State = apimodel.BatchOperationStateActive
		})
	if err == nil {
		e.batchExecutor.TriggerPolling()
	}
	return err
}

func (e *Engine) transitionBatchOperation(
	batchOperationKey, operation string, from []apimodel.BatchOperationState,
	apply func(state *primary.State, batch *primary.BatchOperation),
) error {
	return e.store.Update(func(state *primary.State) error {
		key, ok := primary.ParseKey(batchOperationKey)
		var batch *primary.BatchOperation
		if ok {
			batch, ok = state.BatchOperation(key)
		}
		if !ok {
			return reject(RejectionNotFound,
				"Expected to %v a batch operation with key '%v', but no such batch operation was found",
				operation, batchOperationKey)
		}
		if !slices.Contains(from, batch.State) {
			return reject(RejectionInvalidState,
				"Expected to %v a batch operation with key '%v', but it has state '%v'",
				operation, batchOperationKey, batch.State)
		}
		apply(state, batch)
		state.PutBatchOperation(batch)
		e.logger.Info("batch operation state changed",
			tag.BatchOperationKey(batchOperationKey), tag.Value(batch.State))
		return nil
	})
}
