// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

// Package testhelper waits for data written through the cluster API to become visible in searches.
// Every wait polls with the common/await conditions and fails the test on timeout.
package testhelper

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/camunda/camunda-sub002/bpmn"
	"github.com/camunda/camunda-sub002/client"
	"github.com/camunda/camunda-sub002/common/await"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	// VarTestScopeId is the variable tagging the process instances started by one test
	VarTestScopeId = "testScopeId"

	DefaultPollInterval = 100 * time.Millisecond

	maxPageLimit = 100
)

// DataAvailabilityTimeout bounds every wait of this package
var DataAvailabilityTimeout = 15 * time.Second

func condition(alias string) await.Condition {
	return await.New(alias).AtMost(DataAvailabilityTimeout).PollInterval(DefaultPollInterval)
}

func notFound(err error) bool {
	return client.IsProblem(err, 404)
}

// RandomId returns a valid identifier, e.g. user-6f1c0e...
func RandomId(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

func RandomScopeId() string {
	return RandomId("scope")
}

// ScopedVariables filters the process instances started with StartScopedProcessInstance for scopeId
func ScopedVariables(scopeId string) []apimodel.VariableValueFilter {
	return []apimodel.VariableValueFilter{{Name: VarTestScopeId, Value: `"` + scopeId + `"`}}
}

// ServiceTaskProcess is a process that stays active on a job of type jobType
func ServiceTaskProcess(processId, jobType string) *bpmn.Model {
	return bpmn.CreateExecutableProcess(processId).
		Name(processId).
		StartEvent().
		ServiceTask("task", jobType).
		EndEvent().
		Done()
}

// DeployProcessAndWait deploys the model to the default tenant and waits until the definition is searchable
func DeployProcessAndWait(
	t testing.TB, ctx context.Context, c *client.Client, model *bpmn.Model, resourceName string,
) apimodel.ProcessDefinitionDeployment {
	t.Helper()
	return DeployProcessForTenantAndWait(t, ctx, c, model, resourceName, "")
}

func DeployProcessForTenantAndWait(
	t testing.TB, ctx context.Context, c *client.Client, model *bpmn.Model, resourceName, tenantId string,
) apimodel.ProcessDefinitionDeployment {
	t.Helper()
	content, err := model.ToXML()
	require.NoError(t, err)

	resp, err := c.DeployResources(ctx, client.DeployRequest{
		Resources: []client.Resource{{Name: resourceName, Content: content}},
		TenantId:  tenantId,
	})
	require.NoError(t, err)
	require.Len(t, resp.Deployments, 1)
	deployed := resp.Deployments[0].ProcessDefinition
	require.NotNil(t, deployed)

	WaitForTotalItems(t, ctx, "process definition "+deployed.ProcessDefinitionKey, 1,
		func(ctx context.Context) (*apimodel.SearchResponse[apimodel.ProcessDefinition], error) {
			return c.SearchProcessDefinitions(ctx, apimodel.ProcessDefinitionSearchRequest{
				Filter: &apimodel.ProcessDefinitionFilter{ProcessDefinitionKey: deployed.ProcessDefinitionKey},
			})
		})
	return *deployed
}

// StartScopedProcessInstance starts an instance carrying the scope variable next to variables
func StartScopedProcessInstance(
	t testing.TB, ctx context.Context, c *client.Client, processDefinitionId, scopeId string, variables map[string]any,
) *apimodel.CreateProcessInstanceResponse {
	t.Helper()
	merged := map[string]any{VarTestScopeId: scopeId}
	for name, value := range variables {
		merged[name] = value
	}
	resp, err := c.CreateProcessInstance(ctx, apimodel.CreateProcessInstanceRequest{
		ProcessDefinitionId: processDefinitionId,
		Variables:           merged,
	})
	require.NoError(t, err)
	return resp
}

// WaitForTotalItems polls search until it reports expected matches.
// A 404 is tolerated while polling, the owner of a member search may not be indexed yet.
func WaitForTotalItems[T any](
	t testing.TB, ctx context.Context, alias string, expected int64,
	search func(ctx context.Context) (*apimodel.SearchResponse[T], error),
) *apimodel.SearchResponse[T] {
	t.Helper()
	resp, err := await.Poll(ctx, condition(alias).IgnoreExceptionsMatching(notFound), search,
		func(a *await.Assert, resp *apimodel.SearchResponse[T]) {
			assert.Equal(a, expected, resp.Page.TotalItems)
		})
	require.NoError(t, err)
	return resp
}

// WaitForItemsPaginated collects pages of at most 100 items until expected items are visible
func WaitForItemsPaginated[T any](
	t testing.TB, ctx context.Context, alias string, expected int,
	fetch func(ctx context.Context, page apimodel.SearchQueryPage) (*apimodel.SearchResponse[T], error),
) []T {
	t.Helper()
	collect := func(ctx context.Context) ([]T, error) {
		collected := make([]T, 0, expected)
		for len(collected) < expected {
			resp, err := fetch(ctx, apimodel.SearchQueryPage{
				From:  len(collected),
				Limit: min(maxPageLimit, expected-len(collected)),
			})
			if err != nil {
				return nil, err
			}
			if len(resp.Items) == 0 {
				break
			}
			collected = append(collected, resp.Items...)
		}
		return collected, nil
	}
	items, err := await.Poll(ctx, condition(alias).IgnoreExceptions(), collect,
		func(a *await.Assert, items []T) {
			assert.Len(a, items, expected)
		})
	require.NoError(t, err)
	return items
}

func WaitForScopedProcessInstancesToStart(
	t testing.TB, ctx context.Context, c *client.Client, scopeId string, expected int,
) []apimodel.ProcessInstance {
	t.Helper()
	return waitForScopedProcessInstances(t, ctx, c, scopeId, "", expected)
}

func WaitForScopedActiveProcessInstances(
	t testing.TB, ctx context.Context, c *client.Client, scopeId string, expected int,
) []apimodel.ProcessInstance {
	t.Helper()
	return waitForScopedProcessInstances(t, ctx, c, scopeId, apimodel.ProcessInstanceStateActive, expected)
}

func waitForScopedProcessInstances(
	t testing.TB, ctx context.Context, c *client.Client,
	scopeId string, state apimodel.ProcessInstanceState, expected int,
) []apimodel.ProcessInstance {
	t.Helper()
	filter := &apimodel.ProcessInstanceFilter{State: state, Variables: ScopedVariables(scopeId)}
	return WaitForItemsPaginated(t, ctx, fmt.Sprintf("process instances of scope %v", scopeId), expected,
		func(ctx context.Context, page apimodel.SearchQueryPage) (*apimodel.SearchResponse[apimodel.ProcessInstance], error) {
			return c.SearchProcessInstances(ctx, apimodel.ProcessInstanceSearchRequest{Filter: filter, Page: &page})
		})
}

func WaitForProcessInstanceState(
	t testing.TB, ctx context.Context, c *client.Client, processInstanceKey string, state apimodel.ProcessInstanceState,
) *apimodel.ProcessInstance {
	t.Helper()
	pi, err := await.Poll(ctx, condition("process instance "+processInstanceKey).IgnoreExceptionsMatching(notFound),
		func(ctx context.Context) (*apimodel.ProcessInstance, error) {
			return c.GetProcessInstance(ctx, processInstanceKey)
		},
		func(a *await.Assert, pi *apimodel.ProcessInstance) {
			assert.Equal(a, state, pi.State)
		})
	require.NoError(t, err)
	return pi
}

// WaitForProcessInstanceDeleted waits until the instance is gone from the secondary storage
func WaitForProcessInstanceDeleted(t testing.TB, ctx context.Context, c *client.Client, processInstanceKey string) {
	t.Helper()
	WaitForEntityDeletion(t, ctx, "process instance "+processInstanceKey,
		func(ctx context.Context) (*apimodel.ProcessInstance, error) {
			return c.GetProcessInstance(ctx, processInstanceKey)
		})
}

// WaitForBatchOperationWithTotalCount waits until all items of the batch are resolved.
// Only a missing batch operation is tolerated while polling.
func WaitForBatchOperationWithTotalCount(
	t testing.TB, ctx context.Context, c *client.Client, batchOperationKey string, expected int,
) *apimodel.BatchOperation {
	t.Helper()
	return waitForBatchOperation(t, ctx, c, batchOperationKey, func(a *await.Assert, batch *apimodel.BatchOperation) {
		assert.Equal(a, expected, batch.OperationsTotalCount)
	})
}

func WaitForBatchOperationCompleted(
	t testing.TB, ctx context.Context, c *client.Client, batchOperationKey string, expectedCompleted, expectedFailed int,
) *apimodel.BatchOperation {
	t.Helper()
	return waitForBatchOperation(t, ctx, c, batchOperationKey, func(a *await.Assert, batch *apimodel.BatchOperation) {
		assert.Equal(a, apimodel.BatchOperationStateCompleted, batch.State)
		assert.Equal(a, expectedCompleted, batch.OperationsCompletedCount)
		assert.Equal(a, expectedFailed, batch.OperationsFailedCount)
	})
}

func WaitForBatchOperationState(
	t testing.TB, ctx context.Context, c *client.Client, batchOperationKey string, state apimodel.BatchOperationState,
) *apimodel.BatchOperation {
	t.Helper()
	return waitForBatchOperation(t, ctx, c, batchOperationKey, func(a *await.Assert, batch *apimodel.BatchOperation) {
		assert.Equal(a, state, batch.State)
	})
}

func waitForBatchOperation(
	t testing.TB, ctx context.Context, c *client.Client, batchOperationKey string,
	check func(a *await.Assert, batch *apimodel.BatchOperation),
) *apimodel.BatchOperation {
	t.Helper()
	batch, err := await.Poll(ctx,
		condition("batch operation "+batchOperationKey).IgnoreExceptionsMatching(notFound),
		func(ctx context.Context) (*apimodel.BatchOperation, error) {
			return c.GetBatchOperation(ctx, batchOperationKey)
		},
		check)
	require.NoError(t, err)
	return batch
}

// WaitForTenantDeletion waits until the tenant is not listed anymore
func WaitForTenantDeletion(t testing.TB, ctx context.Context, c *client.Client, tenantId string) {
	t.Helper()
	WaitForTotalItems(t, ctx, "deletion of tenant "+tenantId, 0,
		func(ctx context.Context) (*apimodel.SearchResponse[apimodel.Tenant], error) {
			return c.SearchTenants(ctx, apimodel.TenantSearchRequest{
				Filter: &apimodel.TenantFilter{TenantId: tenantId},
			})
		})
}

// WaitForUsers waits until every username is searchable
func WaitForUsers(t testing.TB, ctx context.Context, c *client.Client, usernames ...string) {
	t.Helper()
	err := condition("users").UntilAsserted(ctx, func(ctx context.Context, a *await.Assert) error {
		resp, err := c.SearchUsers(ctx, apimodel.UserSearchRequest{
			Page: &apimodel.SearchQueryPage{Limit: 10000},
		})
		if err != nil {
			return err
		}
		found := make([]string, 0, len(resp.Items))
		for _, user := range resp.Items {
			found = append(found, user.Username)
		}
		assert.Subset(a, found, usernames)
		return nil
	})
	require.NoError(t, err)
}

// WaitForJobs waits until the jobs of the instance in state have exactly jobTypes, in any order
func WaitForJobs(
	t testing.TB, ctx context.Context, c *client.Client, processInstanceKey string, state apimodel.JobState,
	jobTypes ...string,
) []apimodel.Job {
	t.Helper()
	search := func(ctx context.Context) (*apimodel.SearchResponse[apimodel.Job], error) {
		return c.SearchJobs(ctx, apimodel.JobSearchRequest{
			Filter: &apimodel.JobFilter{ProcessInstanceKey: processInstanceKey, State: state},
		})
	}
	resp, err := await.Poll(ctx, condition("jobs of process instance "+processInstanceKey), search,
		func(a *await.Assert, resp *apimodel.SearchResponse[apimodel.Job]) {
			types := make([]string, 0, len(resp.Items))
			for _, job := range resp.Items {
				types = append(types, job.Type)
			}
			assert.ElementsMatch(a, jobTypes, types)
		})
	require.NoError(t, err)
	return resp.Items
}

// WaitForEntity polls get until check passes on the entity, a missing entity is tolerated while polling.
// A nil check only waits for the entity to be visible.
func WaitForEntity[T any](
	t testing.TB, ctx context.Context, alias string,
	get func(ctx context.Context) (*T, error), check func(a *await.Assert, v *T),
) *T {
	t.Helper()
	if check == nil {
		check = func(*await.Assert, *T) {}
	}
	v, err := await.Poll(ctx, condition(alias).IgnoreExceptionsMatching(notFound), get, check)
	require.NoError(t, err)
	return v
}

// WaitForEntityDeletion polls get until it answers 404
func WaitForEntityDeletion[T any](
	t testing.TB, ctx context.Context, alias string, get func(ctx context.Context) (*T, error),
) {
	t.Helper()
	err := condition("deletion of "+alias).Until(ctx, func(ctx context.Context) (bool, error) {
		_, err := get(ctx)
		if notFound(err) {
			return true, nil
		}
		return false, err
	})
	require.NoError(t, err)
}
