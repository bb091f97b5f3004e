// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package apimodel

type SetVariableRequest struct {
	Variables map[string]any `json:"variables"`
	Local     bool           `json:"local,omitempty"`
}

// Variable is a process variable. Value is the JSON serialization of the variable value.
type Variable struct {
	VariableKey        string `json:"variableKey"`
	Name               string `json:"name"`
	Value              string `json:"value"`
	ProcessInstanceKey string `json:"processInstanceKey"`
	ScopeKey           string `json:"scopeKey"`
	TenantId           string `json:"tenantId"`
	IsTruncated        bool   `json:"isTruncated"`
}

type VariableFilter struct {
	VariableKey        string `json:"variableKey,omitempty"`
	Name               string `json:"name,omitempty"`
	Value              string `json:"value,omitempty"`
	ProcessInstanceKey string `json:"processInstanceKey,omitempty"`
	ScopeKey           string `json:"scopeKey,omitempty"`
	TenantId           string `json:"tenantId,omitempty"`
}

type VariableSearchRequest = SearchRequest[VariableFilter]
