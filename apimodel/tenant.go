// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package apimodel

type TenantCreateRequest struct {
	TenantId    string `json:"tenantId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type TenantUpdateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Tenant struct {
	TenantId    string `json:"tenantId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type TenantFilter struct {
	TenantId string `json:"tenantId,omitempty"`
	Name     string `json:"name,omitempty"`
}

type TenantSearchRequest = SearchRequest[TenantFilter]
