// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package apimodel

type BatchOperationType string

const (
	BatchOperationTypeCancelProcessInstance BatchOperationType = "CANCEL_PROCESS_INSTANCE"
	BatchOperationTypeDeleteProcessInstance BatchOperationType = "DELETE_PROCESS_INSTANCE"
)

type BatchOperationState string

const (
	BatchOperationStateCreated   BatchOperationState = "CREATED"
	BatchOperationStateActive    BatchOperationState = "ACTIVE"
	BatchOperationStateSuspended BatchOperationState = "SUSPENDED"
	BatchOperationStateCompleted BatchOperationState = "COMPLETED"
	BatchOperationStateCanceled  BatchOperationState = "CANCELED"
)

// IsTerminal is true once the batch operation does not process items anymore
func (s BatchOperationState) IsTerminal() bool {
	return s == BatchOperationStateCompleted || s == BatchOperationStateCanceled
}

type BatchOperationItemState string

const (
	BatchOperationItemStateActive    BatchOperationItemState = "ACTIVE"
	BatchOperationItemStateCompleted BatchOperationItemState = "COMPLETED"
	BatchOperationItemStateFailed    BatchOperationItemState = "FAILED"
	BatchOperationItemStateCanceled  BatchOperationItemState = "CANCELED"
)

type BatchOperationCreatedResult struct {
	BatchOperationKey  string             `json:"batchOperationKey"`
	BatchOperationType BatchOperationType `json:"batchOperationType"`
}

type BatchOperation struct {
	BatchOperationKey        string              `json:"batchOperationKey"`
	BatchOperationType       BatchOperationType  `json:"batchOperationType"`
	State                    BatchOperationState `json:"state"`
	StartDate                string              `json:"startDate,omitempty"`
	EndDate                  string              `json:"endDate,omitempty"`
	OperationsTotalCount     int                 `json:"operationsTotalCount"`
	OperationsFailedCount    int                 `json:"operationsFailedCount"`
	OperationsCompletedCount int                 `json:"operationsCompletedCount"`
}

type BatchOperationFilter struct {
	BatchOperationKey string              `json:"batchOperationKey,omitempty"`
	OperationType     BatchOperationType  `json:"operationType,omitempty"`
	State             BatchOperationState `json:"state,omitempty"`
}

type BatchOperationSearchRequest = SearchRequest[BatchOperationFilter]

type BatchOperationItem struct {
	BatchOperationKey  string                  `json:"batchOperationKey"`
	ItemKey            string                  `json:"itemKey"`
	ProcessInstanceKey string                  `json:"processInstanceKey"`
	OperationType      BatchOperationType      `json:"operationType"`
	State              BatchOperationItemState `json:"state"`
	ProcessedDate      string                  `json:"processedDate,omitempty"`
	ErrorMessage       string                  `json:"errorMessage,omitempty"`
}

type BatchOperationItemFilter struct {
	BatchOperationKey  string                  `json:"batchOperationKey,omitempty"`
	ItemKey            string                  `json:"itemKey,omitempty"`
	ProcessInstanceKey string                  `json:"processInstanceKey,omitempty"`
	State              BatchOperationItemState `json:"state,omitempty"`
}

type BatchOperationItemSearchRequest = SearchRequest[BatchOperationItemFilter]
