// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package apimodel

type JobState string

const (
	JobStateCreated   JobState = "CREATED"
	JobStateCompleted JobState = "COMPLETED"
	JobStateCanceled  JobState = "CANCELED"
)

type Job struct {
	JobKey               string   `json:"jobKey"`
	Type                 string   `json:"type"`
	ElementId            string   `json:"elementId"`
	ElementInstanceKey   string   `json:"elementInstanceKey"`
	ProcessInstanceKey   string   `json:"processInstanceKey"`
	ProcessDefinitionId  string   `json:"processDefinitionId"`
	ProcessDefinitionKey string   `json:"processDefinitionKey"`
	State                JobState `json:"state"`
	Retries              int      `json:"retries"`
	TenantId             string   `json:"tenantId"`
}

type JobFilter struct {
	JobKey             string   `json:"jobKey,omitempty"`
	Type               string   `json:"type,omitempty"`
	State              JobState `json:"state,omitempty"`
	ProcessInstanceKey string   `json:"processInstanceKey,omitempty"`
	TenantId           string   `json:"tenantId,omitempty"`
}

type JobSearchRequest = SearchRequest[JobFilter]

type JobCompletionRequest struct {
	Variables map[string]any `json:"variables,omitempty"`
}
