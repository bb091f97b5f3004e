// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"testing"
	"time"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/camunda/camunda-sub002/common/await"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startInstances(t *testing.T, e *Engine, tenantId string, count int) []string {
	keys := make([]string, 0, count)
	for i := 0; i < count; i++ {
		created, err := e.CreateProcessInstance(context.Background(), apimodel.CreateProcessInstanceRequest{
			ProcessDefinitionId: "order",
			TenantId:            tenantId,
		})
		require.NoError(t, err)
		keys = append(keys, created.ProcessInstanceKey)
	}
	return keys
}

func awaitBatchState(
	t *testing.T, e *Engine, batchKey string, state apimodel.BatchOperationState,
) *apimodel.BatchOperation {
	batch, err := await.Poll(context.Background(), await.New("batch operation state").AtMost(5*time.Second),
		func(ctx context.Context) (*apimodel.BatchOperation, error) {
			return e.index.GetBatchOperation(ctx, batchKey)
		},
		func(a *await.Assert, batch *apimodel.BatchOperation) {
			assert.Equal(a, state, batch.State)
		})
	require.NoError(t, err)
	return batch
}

func TestBatchCancelProcessesEveryMatchingInstance(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	deployModel(t, e, apimodel.DefaultTenantId, serviceTaskProcess("order"))
	keys := startInstances(t, e, apimodel.DefaultTenantId, 3)

	created, err := e.CreateBatchOperation(ctx, apimodel.BatchOperationTypeCancelProcessInstance,
		apimodel.ProcessInstanceFilter{ProcessDefinitionId: "order"}, nil)
	require.NoError(t, err)
	assert.Equal(t, apimodel.BatchOperationTypeCancelProcessInstance, created.BatchOperationType)

	batch := awaitBatchState(t, e, created.BatchOperationKey, apimodel.BatchOperationStateCompleted)
	assert.Equal(t, 3, batch.OperationsTotalCount)
	assert.Equal(t, 3, batch.OperationsCompletedCount)
	assert.Equal(t, 0, batch.OperationsFailedCount)
	assert.NotEmpty(t, batch.EndDate)

	for _, key := range keys {
		pi, err := e.index.GetProcessInstance(ctx, key, nil)
		require.NoError(t, err)
		assert.Equal(t, apimodel.ProcessInstanceStateTerminated, pi.State)
	}

	items, err := e.index.SearchBatchOperationItems(ctx,
		apimodel.BatchOperationItemFilter{BatchOperationKey: created.BatchOperationKey})
	require.NoError(t, err)
	require.Len(t, items, 3)
	for _, item := range items {
		assert.Equal(t, apimodel.BatchOperationItemStateCompleted, item.State)
		assert.NotEmpty(t, item.ProcessedDate)
	}
}

func TestBatchDeleteFailsForActiveInstancesAndStillCompletes(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	deployModel(t, e, apimodel.DefaultTenantId, serviceTaskProcess("order"))
	keys := startInstances(t, e, apimodel.DefaultTenantId, 2)
	require.NoError(t, e.CancelProcessInstance(ctx, keys[0], nil))

	created, err := e.CreateBatchOperation(ctx, apimodel.BatchOperationTypeDeleteProcessInstance,
		apimodel.ProcessInstanceFilter{ProcessDefinitionId: "order"}, nil)
	require.NoError(t, err)

	batch := awaitBatchState(t, e, created.BatchOperationKey, apimodel.BatchOperationStateCompleted)
	assert.Equal(t, 2, batch.OperationsTotalCount)
	assert.Equal(t, 1, batch.OperationsCompletedCount)
	assert.Equal(t, 1, batch.OperationsFailedCount)

	failed, err := e.index.SearchBatchOperationItems(ctx, apimodel.BatchOperationItemFilter{
		BatchOperationKey: created.BatchOperationKey,
		State:             apimodel.BatchOperationItemStateFailed,
	})
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, keys[1], failed[0].ProcessInstanceKey)
	assert.Contains(t, failed[0].ErrorMessage, "it is still active")
}

func TestBatchWithoutMatchesCompletesEmpty(t *testing.T) {
	e := newTestEngine(t)

	created, err := e.CreateBatchOperation(context.Background(), apimodel.BatchOperationTypeCancelProcessInstance,
		apimodel.ProcessInstanceFilter{ProcessDefinitionId: "nothing"}, nil)
	require.NoError(t, err)

	batch := awaitBatchState(t, e, created.BatchOperationKey, apimodel.BatchOperationStateCompleted)
	assert.Equal(t, 0, batch.OperationsTotalCount)
}

func TestBatchOnlyResolvesInstancesOfTheCreatorTenants(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	deployModel(t, e, apimodel.DefaultTenantId, serviceTaskProcess("order"))
	deployModel(t, e, "tenant-a", serviceTaskProcess("order"))
	startInstances(t, e, apimodel.DefaultTenantId, 1)
	hidden := startInstances(t, e, "tenant-a", 1)

	created, err := e.CreateBatchOperation(ctx, apimodel.BatchOperationTypeCancelProcessInstance,
		apimodel.ProcessInstanceFilter{}, []string{apimodel.DefaultTenantId})
	require.NoError(t, err)

	batch := awaitBatchState(t, e, created.BatchOperationKey, apimodel.BatchOperationStateCompleted)
	assert.Equal(t, 1, batch.OperationsTotalCount)
	pi, err := e.index.GetProcessInstance(ctx, hidden[0], nil)
	require.NoError(t, err)
	assert.Equal(t, apimodel.ProcessInstanceStateActive, pi.State)
}

func TestBatchSuspendResumeAndCancel(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	err := e.SuspendBatchOperation(ctx, "2251799813685249")
	rejection := requireRejection(t, err, RejectionNotFound)
	assert.Equal(t,
		"Expected to suspend a batch operation with key '2251799813685249', but no such batch operation was found",
		rejection.Message)

	created, err := e.CreateBatchOperation(ctx, apimodel.BatchOperationTypeCancelProcessInstance,
		apimodel.ProcessInstanceFilter{}, nil)
	require.NoError(t, err)
	key := created.BatchOperationKey

	// an empty batch completes quickly, so only check transitions that are always legal
	_ = e.SuspendBatchOperation(ctx, key)
	batch, err := e.index.GetBatchOperation(ctx, key)
	require.NoError(t, err)
	if batch.State == apimodel.BatchOperationStateSuspended {
		requireRejection(t, e.SuspendBatchOperation(ctx, key), RejectionInvalidState)
		require.NoError(t, e.ResumeBatchOperation(ctx, key))
	}

	awaitBatchState(t, e, key, apimodel.BatchOperationStateCompleted)
	err = e.CancelBatchOperation(ctx, key)
	rejection = requireRejection(t, err, RejectionInvalidState)
	assert.Contains(t, rejection.Message, "but it has state 'COMPLETED'")
	requireRejection(t, e.ResumeBatchOperation(ctx, key), RejectionInvalidState)
}

func TestCancelBatchBeforeItemsAreResolved(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	deployModel(t, e, apimodel.DefaultTenantId, serviceTaskProcess("order"))
	startInstances(t, e, apimodel.DefaultTenantId, 2)

	// closes the poll timer, the worker itself only exits with the root context
	_ = e.Stop(stoppedContext())

	created, err := e.CreateBatchOperation(ctx, apimodel.BatchOperationTypeCancelProcessInstance,
		apimodel.ProcessInstanceFilter{}, nil)
	require.NoError(t, err)
	require.NoError(t, e.CancelBatchOperation(ctx, created.BatchOperationKey))

	batch, err := e.index.GetBatchOperation(ctx, created.BatchOperationKey)
	require.NoError(t, err)
	assert.Equal(t, apimodel.BatchOperationStateCanceled, batch.State)
	assert.NotEmpty(t, batch.EndDate)
}

func stoppedContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}
