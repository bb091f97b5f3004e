// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/camunda/camunda-sub002/bpmn"
	"github.com/camunda/camunda-sub002/common/log/tag"
	"github.com/camunda/camunda-sub002/persistence/primary"
)

func (e *Engine) CreateProcessInstance(
	_ context.Context, request apimodel.CreateProcessInstanceRequest,
) (*apimodel.CreateProcessInstanceResponse, error) {
	tenantId := request.TenantId
	if tenantId == "" {
		tenantId = apimodel.DefaultTenantId
	}
	values, err := encodeVariables(request.Variables)
	if err != nil {
		return nil, err
	}

	var response *apimodel.CreateProcessInstanceResponse
	err = e.store.Update(func(state *primary.State) error {
		definition, err := findProcessDefinition(state, request, tenantId)
		if err != nil {
			return err
		}

		pi := &primary.ProcessInstance{
			Key:        state.NextKey(),
			Definition: definition,
			State:      apimodel.ProcessInstanceStateActive,
			TenantId:   tenantId,
			StartDate:  state.Now(),
		}
		state.PutProcessInstance(pi)
		setVariables(state, pi, pi.Key, values, true)
		e.activateFrom(state, pi, 0)

		e.logger.Debug("created process instance",
			tag.ProcessInstanceKey(primary.FormatKey(pi.Key)), tag.ID(definition.ProcessId), tag.TenantId(tenantId))
		response = &apimodel.CreateProcessInstanceResponse{
			ProcessDefinitionKey:     primary.FormatKey(definition.Key),
			ProcessDefinitionId:      definition.ProcessId,
			ProcessDefinitionVersion: definition.Version,
			ProcessInstanceKey:       primary.FormatKey(pi.Key),
			TenantId:                 tenantId,
		}
		return nil
	})
	return response, err
}

func findProcessDefinition(
	state *primary.State, request apimodel.CreateProcessInstanceRequest, tenantId string,
) (*primary.ProcessDefinition, error) {
	if request.ProcessDefinitionKey != "" {
		key, ok := primary.ParseKey(request.ProcessDefinitionKey)
		if ok {
			if definition, ok := state.ProcessDefinition(key); ok && definition.TenantId == tenantId {
				return definition, nil
			}
		}
		return nil, reject(RejectionNotFound,
			"Expected to find process definition with key '%v', but none found", request.ProcessDefinitionKey)
	}
	if request.ProcessDefinitionId != "" {
		if definition, ok := state.LatestProcessDefinition(request.ProcessDefinitionId, tenantId); ok {
			return definition, nil
		}
		return nil, reject(RejectionNotFound,
			"Expected to find process definition with process ID '%v', but none found", request.ProcessDefinitionId)
	}
	return nil, reject(RejectionInvalidArgument,
		"At least one of [processDefinitionId, processDefinitionKey] is required")
}

// activateFrom runs the elements of the instance from index on until one of them waits
func (e *Engine) activateFrom(state *primary.State, pi *primary.ProcessInstance, index int) {
	elements := pi.Definition.Model.Elements
	for i := index; i < len(elements); i++ {
		element := elements[i]
		pi.ElementIndex = i
		pi.ElementInstanceKey = state.NextKey()

		switch element.Type {
		case bpmn.ElementServiceTask:
			state.PutJob(&primary.Job{
				Key:                state.NextKey(),
				Type:               element.JobType,
				ElementId:          element.Id,
				ElementInstanceKey: pi.ElementInstanceKey,
				ProcessInstance:    pi,
				State:              apimodel.JobStateCreated,
				Retries:            element.Retries,
			})
			state.PutProcessInstance(pi)
			return
		case bpmn.ElementUserTask:
			state.PutProcessInstance(pi)
			return
		}
	}

	pi.ElementIndex = len(elements)
	pi.State = apimodel.ProcessInstanceStateCompleted
	pi.EndDate = state.Now()
	state.PutProcessInstance(pi)
}

func (e *Engine) CancelProcessInstance(_ context.Context, processInstanceKey string, tenants []string) error {
	return e.store.Update(func(state *primary.State) error {
		return e.cancelProcessInstance(state, processInstanceKey, tenants)
	})
}

func (e *Engine) cancelProcessInstance(state *primary.State, processInstanceKey string, tenants []string) error {
	notFound := reject(RejectionNotFound,
		"Expected to cancel a process instance with key '%v', but no such process was found", processInstanceKey)
	key, ok := primary.ParseKey(processInstanceKey)
	if !ok {
		return notFound
	}
	pi, ok := state.ProcessInstance(key)
	if !ok || !visible(tenants, pi.TenantId) || pi.State != apimodel.ProcessInstanceStateActive {
		return notFound
	}

	for _, job := range state.JobsOf(pi.Key) {
		if job.State == apimodel.JobStateCreated {
			job.State = apimodel.JobStateCanceled
			state.PutJob(job)
		}
	}
	pi.State = apimodel.ProcessInstanceStateTerminated
	pi.EndDate = state.Now()
	state.PutProcessInstance(pi)
	return nil
}

// deleteProcessInstance removes a finished instance with its jobs and variables
func (e *Engine) deleteProcessInstance(state *primary.State, processInstanceKey string, tenants []string) error {
	key, ok := primary.ParseKey(processInstanceKey)
	var pi *primary.ProcessInstance
	if ok {
		pi, ok = state.ProcessInstance(key)
	}
	if !ok || !visible(tenants, pi.TenantId) {
		return reject(RejectionNotFound,
			"Expected to delete process instance with key '%v', but no such process instance was found",
			processInstanceKey)
	}
	if pi.State == apimodel.ProcessInstanceStateActive {
		return reject(RejectionInvalidState,
			"Expected to delete process instance with key '%v', but it is still active", processInstanceKey)
	}
	state.DeleteProcessInstance(key)
	return nil
}

func (e *Engine) CompleteJob(_ context.Context, jobKey string, variables map[string]any, tenants []string) error {
	values, err := encodeVariables(variables)
	if err != nil {
		return err
	}
	return e.store.Update(func(state *primary.State) error {
		key, ok := primary.ParseKey(jobKey)
		var job *primary.Job
		if ok {
			job, ok = state.Job(key)
		}
		if !ok || job.State != apimodel.JobStateCreated || !visible(tenants, job.ProcessInstance.TenantId) {
			return reject(RejectionNotFound,
				"Expected to complete job with key '%v', but no such job was found", jobKey)
		}

		job.State = apimodel.JobStateCompleted
		state.PutJob(job)
		pi := job.ProcessInstance
		setVariables(state, pi, pi.Key, values, true)
		e.activateFrom(state, pi, pi.ElementIndex+1)
		return nil
	})
}

// SetVariables sets the variables on the process instance or on its current element instance.
// Without local, a variable the element scope does not declare goes to the process scope.
func (e *Engine) SetVariables(
	_ context.Context, elementInstanceKey string, variables map[string]any, local bool, tenants []string,
) error {
	values, err := encodeVariables(variables)
	if err != nil {
		return err
	}
	return e.store.Update(func(state *primary.State) error {
		notFound := reject(RejectionNotFound,
			"Expected to update variables for element with key '%v', but no such element was found", elementInstanceKey)
		key, ok := primary.ParseKey(elementInstanceKey)
		if !ok {
			return notFound
		}
		pi, ok := state.ProcessInstance(key)
		if !ok {
			pi, ok = state.ProcessInstanceOfElement(key)
		}
		if !ok || pi.State != apimodel.ProcessInstanceStateActive || !visible(tenants, pi.TenantId) {
			return notFound
		}
		setVariables(state, pi, key, values, local)
		return nil
	})
}

// setVariables writes the values in name order so variable keys are deterministic
func setVariables(state *primary.State, pi *primary.ProcessInstance, scopeKey int64, values map[string]string, local bool) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		target := scopeKey
		if !local && scopeKey != pi.Key {
			if _, declared := state.ScopeVariable(scopeKey, name); !declared {
				target = pi.Key
			}
		}
		if existing, ok := state.ScopeVariable(target, name); ok {
			existing.Value = values[name]
			state.PutVariable(existing)
			continue
		}
		state.PutVariable(&primary.Variable{
			Key:                state.NextKey(),
			Name:               name,
			Value:              values[name],
			ScopeKey:           target,
			ProcessInstanceKey: pi.Key,
			TenantId:           pi.TenantId,
		})
	}
}

func encodeVariables(variables map[string]any) (map[string]string, error) {
	values := make(map[string]string, len(variables))
	for name, value := range variables {
		if name == "" {
			return nil, reject(RejectionInvalidArgument, "Expected variable names to be non-empty")
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, reject(RejectionInvalidArgument,
				"Expected variable '%v' to be a JSON value, but %v", name, err)
		}
		values[name] = string(encoded)
	}
	return values, nil
}
