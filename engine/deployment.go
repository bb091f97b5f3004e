// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/camunda/camunda-sub002/bpmn"
	"github.com/camunda/camunda-sub002/common/log/tag"
	"github.com/camunda/camunda-sub002/persistence/primary"
)

type DeploymentResource struct {
	Name    string
	Content []byte
}

// Deploy adds a new version of every process whose resource changed since the latest version
func (e *Engine) Deploy(
	_ context.Context, tenantId string, resources []DeploymentResource,
) (*apimodel.DeploymentResponse, error) {
	if len(resources) == 0 {
		return nil, reject(RejectionInvalidArgument, "Expected to deploy at least one resource, but none given")
	}

	models := make([]*bpmn.Model, len(resources))
	var failures []string
	for i, resource := range resources {
		model, err := bpmn.Parse(resource.Content)
		if err != nil {
			failures = append(failures, fmt.Sprintf("'%v': %v", resource.Name, err))
			continue
		}
		models[i] = model
	}
	if len(failures) > 0 {
		return nil, reject(RejectionInvalidArgument,
			"Command 'CREATE' rejected with code 'INVALID_ARGUMENT': Expected to deploy new resources, "+
				"but encountered the following errors:\n%v", strings.Join(failures, "\n"))
	}

	response := &apimodel.DeploymentResponse{TenantId: tenantId}
	err := e.store.Update(func(state *primary.State) error {
		deploymentKey := state.NextKey()
		response.DeploymentKey = primary.FormatKey(deploymentKey)

		for i, resource := range resources {
			definition := e.deployProcess(state, deploymentKey, tenantId, resource, models[i])
			response.Deployments = append(response.Deployments, apimodel.DeploymentMetadata{
				ProcessDefinition: &apimodel.ProcessDefinitionDeployment{
					ProcessDefinitionId:      definition.ProcessId,
					ProcessDefinitionVersion: definition.Version,
					ResourceName:             definition.ResourceName,
					TenantId:                 definition.TenantId,
					ProcessDefinitionKey:     primary.FormatKey(definition.Key),
				},
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return response, nil
}

func (e *Engine) deployProcess(
	state *primary.State, deploymentKey int64, tenantId string, resource DeploymentResource, model *bpmn.Model,
) *primary.ProcessDefinition {
	xml := string(resource.Content)
	version := 1
	if latest, ok := state.LatestProcessDefinition(model.ProcessId, tenantId); ok {
		if latest.XML == xml {
			return latest
		}
		version = latest.Version + 1
	}

	definition := &primary.ProcessDefinition{
		Key:           state.NextKey(),
		DeploymentKey: deploymentKey,
		ProcessId:     model.ProcessId,
		Name:          model.Name,
		Version:       version,
		ResourceName:  resource.Name,
		TenantId:      tenantId,
		XML:           xml,
		Model:         model,
	}
	state.PutProcessDefinition(definition)
	e.logger.Debug("deployed process definition",
		tag.ID(definition.ProcessId), tag.Key(primary.FormatKey(definition.Key)), tag.TenantId(tenantId))
	return definition
}
