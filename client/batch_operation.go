// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"

	"github.com/camunda/camunda-sub002/apimodel"
)

// CreateCancellationBatch cancels every process instance matching the filter, asynchronously
func (c *Client) CreateCancellationBatch(
	ctx context.Context, filter apimodel.ProcessInstanceFilter,
) (*apimodel.BatchOperationCreatedResult, error) {
	return c.createBatch(ctx, "cancellation", filter)
}

// CreateDeletionBatch deletes the history of every process instance matching the filter, asynchronously
func (c *Client) CreateDeletionBatch(
	ctx context.Context, filter apimodel.ProcessInstanceFilter,
) (*apimodel.BatchOperationCreatedResult, error) {
	return c.createBatch(ctx, "deletion", filter)
}

func (c *Client) createBatch(
	ctx context.Context, operation string, filter apimodel.ProcessInstanceFilter,
) (*apimodel.BatchOperationCreatedResult, error) {
	resp := &apimodel.BatchOperationCreatedResult{}
	err := c.postJSON(ctx, pathOf("process-instances", operation),
		apimodel.ProcessInstanceBatchRequest{Filter: filter}, resp)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) GetBatchOperation(ctx context.Context, batchOperationKey string) (*apimodel.BatchOperation, error) {
	if err := requireNonEmpty("batchOperationKey", batchOperationKey); err != nil {
		return nil, err
	}
	resp := &apimodel.BatchOperation{}
	if err := c.getJSON(ctx, pathOf("batch-operations", batchOperationKey), resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) SearchBatchOperations(
	ctx context.Context, request apimodel.BatchOperationSearchRequest,
) (*apimodel.SearchResponse[apimodel.BatchOperation], error) {
	return search[apimodel.BatchOperation](ctx, c, pathOf("batch-operations", "search"), request)
}

func (c *Client) CancelBatchOperation(ctx context.Context, batchOperationKey string) error {
	return c.changeBatchState(ctx, batchOperationKey, "cancellation")
}

func (c *Client) SuspendBatchOperation(ctx context.Context, batchOperationKey string) error {
	return c.changeBatchState(ctx, batchOperationKey, "suspension")
}

func (c *Client) ResumeBatchOperation(ctx context.Context, batchOperationKey string) error {
	return c.changeBatchState(ctx, batchOperationKey, "resumption")
}

func (c *Client) changeBatchState(ctx context.Context, batchOperationKey, change string) error {
	if err := requireNonEmpty("batchOperationKey", batchOperationKey); err != nil {
		return err
	}
	return c.postJSON(ctx, pathOf("batch-operations", batchOperationKey, change), struct{}{}, nil)
}

func (c *Client) SearchBatchOperationItems(
	ctx context.Context, request apimodel.BatchOperationItemSearchRequest,
) (*apimodel.SearchResponse[apimodel.BatchOperationItem], error) {
	return search[apimodel.BatchOperationItem](ctx, c, pathOf("batch-operation-items", "search"), request)
}
