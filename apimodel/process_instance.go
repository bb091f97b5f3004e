// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package apimodel

type ProcessInstanceState string

const (
	ProcessInstanceStateActive     ProcessInstanceState = "ACTIVE"
	ProcessInstanceStateCompleted  ProcessInstanceState = "COMPLETED"
	ProcessInstanceStateTerminated ProcessInstanceState = "TERMINATED"
)

type CreateProcessInstanceRequest struct {
	ProcessDefinitionId  string         `json:"processDefinitionId,omitempty"`
	ProcessDefinitionKey string         `json:"processDefinitionKey,omitempty"`
	Variables            map[string]any `json:"variables,omitempty"`
	TenantId             string         `json:"tenantId,omitempty"`
}

type CreateProcessInstanceResponse struct {
	ProcessDefinitionKey     string         `json:"processDefinitionKey"`
	ProcessDefinitionId      string         `json:"processDefinitionId"`
	ProcessDefinitionVersion int            `json:"processDefinitionVersion"`
	ProcessInstanceKey       string         `json:"processInstanceKey"`
	TenantId                 string         `json:"tenantId"`
	Variables                map[string]any `json:"variables,omitempty"`
}

type ProcessInstance struct {
	ProcessInstanceKey       string               `json:"processInstanceKey"`
	ProcessDefinitionId      string               `json:"processDefinitionId"`
	ProcessDefinitionName    string               `json:"processDefinitionName"`
	ProcessDefinitionVersion int                  `json:"processDefinitionVersion"`
	ProcessDefinitionKey     string               `json:"processDefinitionKey"`
	State                    ProcessInstanceState `json:"state"`
	StartDate                string               `json:"startDate"`
	EndDate                  string               `json:"endDate,omitempty"`
	TenantId                 string               `json:"tenantId"`
	HasIncident              bool                 `json:"hasIncident"`
}

// VariableValueFilter matches instances having a variable with the given serialized JSON value
type VariableValueFilter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type ProcessInstanceFilter struct {
	ProcessInstanceKey   string                `json:"processInstanceKey,omitempty"`
	ProcessDefinitionId  string                `json:"processDefinitionId,omitempty"`
	ProcessDefinitionKey string                `json:"processDefinitionKey,omitempty"`
	State                ProcessInstanceState  `json:"state,omitempty"`
	TenantId             string                `json:"tenantId,omitempty"`
	Variables            []VariableValueFilter `json:"variables,omitempty"`
}

type ProcessInstanceSearchRequest = SearchRequest[ProcessInstanceFilter]

// ProcessInstanceBatchRequest selects the instances a batch operation applies to
type ProcessInstanceBatchRequest struct {
	Filter ProcessInstanceFilter `json:"filter"`
}
