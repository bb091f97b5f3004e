// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"testing"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/camunda/camunda-sub002/bpmn"
	"github.com/camunda/camunda-sub002/persistence/primary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeployIncrementsVersionOnlyWhenResourceChanges(t *testing.T) {
	e := newTestEngine(t)

	first := deployModel(t, e, apimodel.DefaultTenantId, serviceTaskProcess("order"))
	same := deployModel(t, e, apimodel.DefaultTenantId, serviceTaskProcess("order"))
	changed := deployModel(t, e, apimodel.DefaultTenantId, bpmn.CreateExecutableProcess("order").
		StartEvent().
		UserTask("review").
		EndEvent().
		Done())

	assert.Equal(t, 1, first.ProcessDefinitionVersion)
	assert.Equal(t, first.ProcessDefinitionKey, same.ProcessDefinitionKey)
	assert.Equal(t, 2, changed.ProcessDefinitionVersion)
	assert.NotEqual(t, first.ProcessDefinitionKey, changed.ProcessDefinitionKey)

	xml, err := e.index.GetProcessDefinitionXML(context.Background(), changed.ProcessDefinitionKey, nil)
	require.NoError(t, err)
	assert.Contains(t, xml, `id="order"`)
}

func TestDeployVersionsPerTenant(t *testing.T) {
	e := newTestEngine(t)

	deployModel(t, e, apimodel.DefaultTenantId, serviceTaskProcess("order"))
	other := deployModel(t, e, "tenant-a", serviceTaskProcess("order"))

	assert.Equal(t, 1, other.ProcessDefinitionVersion)
	assert.Equal(t, "tenant-a", other.TenantId)
}

func TestDeployRejectsInvalidResources(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Deploy(context.Background(), apimodel.DefaultTenantId, nil)
	requireRejection(t, err, RejectionInvalidArgument)

	_, err = e.Deploy(context.Background(), apimodel.DefaultTenantId, []DeploymentResource{
		{Name: "broken.bpmn", Content: []byte("<not-bpmn")},
	})
	rejection := requireRejection(t, err, RejectionInvalidArgument)
	assert.Contains(t, rejection.Message, "Expected to deploy new resources, but encountered the following errors:")
	assert.Contains(t, rejection.Message, "'broken.bpmn'")
}

func TestProcessInstanceRunsUntilServiceTaskAndCompletesWithJob(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	deployModel(t, e, apimodel.DefaultTenantId, serviceTaskProcess("order"))

	created, err := e.CreateProcessInstance(ctx, apimodel.CreateProcessInstanceRequest{
		ProcessDefinitionId: "order",
		Variables:           map[string]any{"amount": 42},
	})
	require.NoError(t, err)
	assert.Equal(t, apimodel.DefaultTenantId, created.TenantId)
	assert.Equal(t, 1, created.ProcessDefinitionVersion)

	pi, err := e.index.GetProcessInstance(ctx, created.ProcessInstanceKey, nil)
	require.NoError(t, err)
	assert.Equal(t, apimodel.ProcessInstanceStateActive, pi.State)

	jobs, err := e.index.SearchJobs(ctx, apimodel.JobFilter{ProcessInstanceKey: created.ProcessInstanceKey}, nil)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "work", jobs[0].Type)
	assert.Equal(t, apimodel.JobStateCreated, jobs[0].State)

	require.NoError(t, e.CompleteJob(ctx, jobs[0].JobKey, map[string]any{"approved": true}, nil))

	pi, err = e.index.GetProcessInstance(ctx, created.ProcessInstanceKey, nil)
	require.NoError(t, err)
	assert.Equal(t, apimodel.ProcessInstanceStateCompleted, pi.State)
	assert.NotEmpty(t, pi.EndDate)

	variables, err := e.index.SearchVariables(ctx, apimodel.VariableFilter{ProcessInstanceKey: created.ProcessInstanceKey}, nil)
	require.NoError(t, err)
	values := map[string]string{}
	for _, v := range variables {
		values[v.Name] = v.Value
	}
	assert.Equal(t, map[string]string{"amount": "42", "approved": "true"}, values)

	err = e.CompleteJob(ctx, jobs[0].JobKey, nil, nil)
	requireRejection(t, err, RejectionNotFound)
}

func TestCreateProcessInstanceRejectsUnknownDefinitions(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	deployed := deployModel(t, e, apimodel.DefaultTenantId, serviceTaskProcess("order"))

	_, err := e.CreateProcessInstance(ctx, apimodel.CreateProcessInstanceRequest{ProcessDefinitionId: "missing"})
	rejection := requireRejection(t, err, RejectionNotFound)
	assert.Equal(t, "Expected to find process definition with process ID 'missing', but none found", rejection.Message)

	_, err = e.CreateProcessInstance(ctx, apimodel.CreateProcessInstanceRequest{
		ProcessDefinitionKey: deployed.ProcessDefinitionKey,
		TenantId:             "tenant-a",
	})
	requireRejection(t, err, RejectionNotFound)

	_, err = e.CreateProcessInstance(ctx, apimodel.CreateProcessInstanceRequest{})
	requireRejection(t, err, RejectionInvalidArgument)
}

func TestCancelAndDeleteProcessInstance(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	deployModel(t, e, apimodel.DefaultTenantId, serviceTaskProcess("order"))
	created, err := e.CreateProcessInstance(ctx, apimodel.CreateProcessInstanceRequest{
		ProcessDefinitionId: "order",
		Variables:           map[string]any{"a": "b"},
	})
	require.NoError(t, err)
	key := created.ProcessInstanceKey

	err = e.store.Update(func(state *primary.State) error {
		return e.deleteProcessInstance(state, key, nil)
	})
	requireRejection(t, err, RejectionInvalidState)

	err = e.CancelProcessInstance(ctx, key, []string{"tenant-a"})
	requireRejection(t, err, RejectionNotFound)

	require.NoError(t, e.CancelProcessInstance(ctx, key, nil))
	pi, err := e.index.GetProcessInstance(ctx, key, nil)
	require.NoError(t, err)
	assert.Equal(t, apimodel.ProcessInstanceStateTerminated, pi.State)
	jobs, err := e.index.SearchJobs(ctx, apimodel.JobFilter{ProcessInstanceKey: key}, nil)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, apimodel.JobStateCanceled, jobs[0].State)

	err = e.CancelProcessInstance(ctx, key, nil)
	rejection := requireRejection(t, err, RejectionNotFound)
	assert.Equal(t,
		"Expected to cancel a process instance with key '"+key+"', but no such process was found", rejection.Message)

	require.NoError(t, e.store.Update(func(state *primary.State) error {
		return e.deleteProcessInstance(state, key, nil)
	}))
	_, err = e.index.GetProcessInstance(ctx, key, nil)
	assert.Error(t, err)
	variables, err := e.index.SearchVariables(ctx, apimodel.VariableFilter{ProcessInstanceKey: key}, nil)
	require.NoError(t, err)
	assert.Empty(t, variables)
}

func TestSetVariablesOnElementFallsBackToProcessScope(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	deployModel(t, e, apimodel.DefaultTenantId, serviceTaskProcess("order"))
	created, err := e.CreateProcessInstance(ctx, apimodel.CreateProcessInstanceRequest{ProcessDefinitionId: "order"})
	require.NoError(t, err)
	jobs, err := e.index.SearchJobs(ctx, apimodel.JobFilter{ProcessInstanceKey: created.ProcessInstanceKey}, nil)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	elementKey := jobs[0].ElementInstanceKey

	require.NoError(t, e.SetVariables(ctx, elementKey, map[string]any{"global": 1}, false, nil))
	require.NoError(t, e.SetVariables(ctx, elementKey, map[string]any{"local": "x"}, true, nil))
	require.NoError(t, e.SetVariables(ctx, created.ProcessInstanceKey, map[string]any{"global": 2}, false, nil))

	variables, err := e.index.SearchVariables(ctx, apimodel.VariableFilter{ProcessInstanceKey: created.ProcessInstanceKey}, nil)
	require.NoError(t, err)
	scopes := map[string]string{}
	values := map[string]string{}
	for _, v := range variables {
		scopes[v.Name] = v.ScopeKey
		values[v.Name] = v.Value
	}
	assert.Equal(t, created.ProcessInstanceKey, scopes["global"])
	assert.Equal(t, "2", values["global"])
	assert.Equal(t, elementKey, scopes["local"])
	assert.Equal(t, `"x"`, values["local"])

	err = e.SetVariables(ctx, "123", map[string]any{"a": 1}, false, nil)
	requireRejection(t, err, RejectionNotFound)
	err = e.SetVariables(ctx, elementKey, map[string]any{"": 1}, false, nil)
	requireRejection(t, err, RejectionInvalidArgument)
}
