// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package acceptance

import (
	"context"
	"testing"

	"github.com/camunda/camunda-sub002/acceptance/testhelper"
	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/camunda/camunda-sub002/bpmn"
	"github.com/camunda/camunda-sub002/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartAndCancelProcessInstance(t *testing.T) {
	ctx := context.Background()
	processId := testhelper.RandomId("process")
	scopeId := testhelper.RandomScopeId()
	testhelper.DeployProcessAndWait(t, ctx, adminClient,
		testhelper.ServiceTaskProcess(processId, "cancel-job"), processId+".bpmn")

	created := testhelper.StartScopedProcessInstance(t, ctx, adminClient, processId, scopeId, nil)
	assert.Equal(t, processId, created.ProcessDefinitionId)
	assert.Equal(t, 1, created.ProcessDefinitionVersion)

	active := testhelper.WaitForScopedActiveProcessInstances(t, ctx, adminClient, scopeId, 1)
	assert.Equal(t, created.ProcessInstanceKey, active[0].ProcessInstanceKey)

	require.NoError(t, adminClient.CancelProcessInstance(ctx, created.ProcessInstanceKey))
	pi := testhelper.WaitForProcessInstanceState(t, ctx, adminClient,
		created.ProcessInstanceKey, apimodel.ProcessInstanceStateTerminated)
	assert.NotEmpty(t, pi.EndDate)

	err := adminClient.CancelProcessInstance(ctx, created.ProcessInstanceKey)
	assert.True(t, client.IsProblem(err, 404), "unexpected error %v", err)
}

func TestProcessWithoutWaitStatesCompletes(t *testing.T) {
	ctx := context.Background()
	processId := testhelper.RandomId("process")
	model := bpmn.CreateExecutableProcess(processId).StartEvent().EndEvent().Done()
	testhelper.DeployProcessAndWait(t, ctx, adminClient, model, processId+".bpmn")

	created := testhelper.StartScopedProcessInstance(t, ctx, adminClient, processId, testhelper.RandomScopeId(), nil)
	testhelper.WaitForProcessInstanceState(t, ctx, adminClient,
		created.ProcessInstanceKey, apimodel.ProcessInstanceStateCompleted)
}

func TestSearchScopedProcessInstancesAcrossPages(t *testing.T) {
	ctx := context.Background()
	processId := testhelper.RandomId("process")
	scopeId := testhelper.RandomScopeId()
	testhelper.DeployProcessAndWait(t, ctx, adminClient,
		testhelper.ServiceTaskProcess(processId, "paged-job"), processId+".bpmn")

	const count = 120
	keys := make([]string, 0, count)
	for i := 0; i < count; i++ {
		created := testhelper.StartScopedProcessInstance(t, ctx, adminClient, processId, scopeId, nil)
		keys = append(keys, created.ProcessInstanceKey)
	}
	// instances of other scopes are not matched
	testhelper.StartScopedProcessInstance(t, ctx, adminClient, processId, testhelper.RandomScopeId(), nil)

	instances := testhelper.WaitForScopedProcessInstancesToStart(t, ctx, adminClient, scopeId, count)
	found := make([]string, 0, len(instances))
	for _, pi := range instances {
		found = append(found, pi.ProcessInstanceKey)
	}
	assert.ElementsMatch(t, keys, found)
}

func TestCreateProcessInstanceOfUnknownProcess(t *testing.T) {
	_, err := adminClient.CreateProcessInstance(context.Background(), apimodel.CreateProcessInstanceRequest{
		ProcessDefinitionId: testhelper.RandomId("unknown"),
	})
	assert.True(t, client.IsProblem(err, 404), "unexpected error %v", err)
}

func TestCompleteJobsAndSearchVariables(t *testing.T) {
	ctx := context.Background()
	processId := testhelper.RandomId("process")
	model := bpmn.CreateExecutableProcess(processId).
		StartEvent().
		ServiceTask("reserve", "reserve-job").
		ServiceTask("ship", "ship-job").
		EndEvent().
		Done()
	testhelper.DeployProcessAndWait(t, ctx, adminClient, model, processId+".bpmn")
	created := testhelper.StartScopedProcessInstance(t, ctx, adminClient, processId, testhelper.RandomScopeId(),
		map[string]any{"orderId": "order-1"})
	key := created.ProcessInstanceKey

	jobs := testhelper.WaitForJobs(t, ctx, adminClient, key, apimodel.JobStateCreated, "reserve-job")
	require.NoError(t, adminClient.CompleteJob(ctx, jobs[0].JobKey, map[string]any{"reserved": true}))

	jobs = testhelper.WaitForJobs(t, ctx, adminClient, key, apimodel.JobStateCreated, "ship-job")

	err := adminClient.CompleteJob(ctx, jobs[0].JobKey, nil)
	require.NoError(t, err)
	testhelper.WaitForProcessInstanceState(t, ctx, adminClient, key, apimodel.ProcessInstanceStateCompleted)
	testhelper.WaitForJobs(t, ctx, adminClient, key, apimodel.JobStateCompleted, "reserve-job", "ship-job")

	variables := testhelper.WaitForTotalItems(t, ctx, "variables of "+key, 3,
		func(ctx context.Context) (*apimodel.SearchResponse[apimodel.Variable], error) {
			return adminClient.SearchVariables(ctx, apimodel.VariableSearchRequest{
				Filter: &apimodel.VariableFilter{ProcessInstanceKey: key},
				Sort:   []apimodel.SearchQuerySort{{Field: "name"}},
			})
		})
	testhelper.AssertSortedByName(t, variables.Items,
		func(v apimodel.Variable) string { return v.Name }, apimodel.SortOrderAsc)
	values := map[string]string{}
	for _, v := range variables.Items {
		values[v.Name] = v.Value
	}
	assert.Equal(t, `"order-1"`, values["orderId"])
	assert.Equal(t, "true", values["reserved"])
}

func TestSetAndGetVariables(t *testing.T) {
	ctx := context.Background()
	processId := testhelper.RandomId("process")
	testhelper.DeployProcessAndWait(t, ctx, adminClient,
		testhelper.ServiceTaskProcess(processId, "variables-job"), processId+".bpmn")
	created := testhelper.StartScopedProcessInstance(t, ctx, adminClient, processId, testhelper.RandomScopeId(), nil)
	key := created.ProcessInstanceKey

	require.NoError(t, adminClient.SetVariables(ctx, key, map[string]any{"amount": 42}, false))

	resp := testhelper.WaitForTotalItems(t, ctx, "variable amount", 1,
		func(ctx context.Context) (*apimodel.SearchResponse[apimodel.Variable], error) {
			return adminClient.SearchVariables(ctx, apimodel.VariableSearchRequest{
				Filter: &apimodel.VariableFilter{ProcessInstanceKey: key, Name: "amount"},
			})
		})
	variable, err := adminClient.GetVariable(ctx, resp.Items[0].VariableKey)
	require.NoError(t, err)
	assert.Equal(t, "42", variable.Value)
	assert.Equal(t, key, variable.ProcessInstanceKey)

	_, err = adminClient.GetVariable(ctx, "2251799813000001")
	assert.True(t, client.IsProblem(err, 404), "unexpected error %v", err)
}
