// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package apimodel

type DeploymentResponse struct {
	DeploymentKey string               `json:"deploymentKey"`
	TenantId      string               `json:"tenantId"`
	Deployments   []DeploymentMetadata `json:"deployments"`
}

type DeploymentMetadata struct {
	ProcessDefinition *ProcessDefinitionDeployment `json:"processDefinition,omitempty"`
}

type ProcessDefinitionDeployment struct {
	ProcessDefinitionId      string `json:"processDefinitionId"`
	ProcessDefinitionVersion int    `json:"processDefinitionVersion"`
	ResourceName             string `json:"resourceName"`
	TenantId                 string `json:"tenantId"`
	ProcessDefinitionKey     string `json:"processDefinitionKey"`
}

type ProcessDefinition struct {
	ProcessDefinitionKey string `json:"processDefinitionKey"`
	ProcessDefinitionId  string `json:"processDefinitionId"`
	Name                 string `json:"name"`
	Version              int    `json:"version"`
	ResourceName         string `json:"resourceName"`
	TenantId             string `json:"tenantId"`
}

type ProcessDefinitionFilter struct {
	ProcessDefinitionKey string `json:"processDefinitionKey,omitempty"`
	ProcessDefinitionId  string `json:"processDefinitionId,omitempty"`
	Name                 string `json:"name,omitempty"`
	Version              *int   `json:"version,omitempty"`
	TenantId             string `json:"tenantId,omitempty"`
}

type ProcessDefinitionSearchRequest = SearchRequest[ProcessDefinitionFilter]
