// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package acceptance

import (
	"context"
	"testing"

	"github.com/camunda/camunda-sub002/acceptance/testhelper"
	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/camunda/camunda-sub002/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTenant(t *testing.T, ctx context.Context) string {
	t.Helper()
	tenantId := testhelper.RandomId("tenant")
	_, err := adminClient.CreateTenant(ctx, apimodel.TenantCreateRequest{TenantId: tenantId, Name: "Tenant " + tenantId})
	require.NoError(t, err)
	return tenantId
}

// userClient creates a user without roles or tenants and returns a client authenticating as them
func userClient(t *testing.T, ctx context.Context) (*client.Client, string) {
	t.Helper()
	user := createUser(t, ctx, "Restricted")
	return adminClient.WithCredentials(user.Username, "password"), user.Username
}

func TestTenantIsolatesProcessInstances(t *testing.T) {
	ctx := context.Background()
	tenantId := createTenant(t, ctx)
	require.NoError(t, adminClient.AssignUserToTenant(ctx, tenantId, *username))

	processId := testhelper.RandomId("process")
	deployed := testhelper.DeployProcessForTenantAndWait(t, ctx, adminClient,
		testhelper.ServiceTaskProcess(processId, "tenant-job"), processId+".bpmn", tenantId)
	assert.Equal(t, tenantId, deployed.TenantId)

	// the process only exists in its tenant
	_, err := adminClient.CreateProcessInstance(ctx, apimodel.CreateProcessInstanceRequest{ProcessDefinitionId: processId})
	assert.True(t, client.IsProblem(err, 404), "unexpected error %v", err)

	created, err := adminClient.CreateProcessInstance(ctx, apimodel.CreateProcessInstanceRequest{
		ProcessDefinitionId: processId,
		TenantId:            tenantId,
	})
	require.NoError(t, err)
	assert.Equal(t, tenantId, created.TenantId)
	testhelper.WaitForProcessInstanceState(t, ctx, adminClient,
		created.ProcessInstanceKey, apimodel.ProcessInstanceStateActive)

	restricted, restrictedUser := userClient(t, ctx)
	resp, err := restricted.SearchProcessInstances(ctx, apimodel.ProcessInstanceSearchRequest{
		Filter: &apimodel.ProcessInstanceFilter{ProcessDefinitionId: processId},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	_, err = restricted.GetProcessInstance(ctx, created.ProcessInstanceKey)
	assert.True(t, client.IsProblem(err, 404), "unexpected error %v", err)
	_, err = restricted.CreateProcessInstance(ctx, apimodel.CreateProcessInstanceRequest{
		ProcessDefinitionId: processId,
		TenantId:            tenantId,
	})
	assert.True(t, client.IsProblem(err, 403), "unexpected error %v", err)

	// tenant access is inherited from groups
	groupId := testhelper.RandomId("group")
	_, err = adminClient.CreateGroup(ctx, apimodel.GroupCreateRequest{GroupId: groupId, Name: "Tenant members"})
	require.NoError(t, err)
	require.NoError(t, adminClient.AssignUserToGroup(ctx, groupId, restrictedUser))
	require.NoError(t, adminClient.AssignGroupToTenant(ctx, tenantId, groupId))
	testhelper.WaitForProcessInstanceState(t, ctx, restricted,
		created.ProcessInstanceKey, apimodel.ProcessInstanceStateActive)
}

func TestTenantMembersAndDeletion(t *testing.T) {
	ctx := context.Background()
	tenantId := createTenant(t, ctx)
	user := createUser(t, ctx, "Tenant user")
	require.NoError(t, adminClient.AssignUserToTenant(ctx, tenantId, user.Username))

	members := testhelper.WaitForTotalItems(t, ctx, "users of tenant "+tenantId, 1,
		func(ctx context.Context) (*apimodel.SearchResponse[apimodel.MemberUser], error) {
			return adminClient.SearchUsersByTenant(ctx, tenantId, apimodel.MemberUserSearchRequest{})
		})
	assert.Equal(t, user.Username, members.Items[0].Username)

	_, err := adminClient.UpdateTenant(ctx, tenantId, apimodel.TenantUpdateRequest{Name: "Renamed", Description: "moved"})
	require.NoError(t, err)
	tenants := testhelper.WaitForTotalItems(t, ctx, "renamed tenant "+tenantId, 1,
		func(ctx context.Context) (*apimodel.SearchResponse[apimodel.Tenant], error) {
			return adminClient.SearchTenants(ctx, apimodel.TenantSearchRequest{
				Filter: &apimodel.TenantFilter{TenantId: tenantId, Name: "Renamed"},
			})
		})
	assert.Equal(t, "moved", tenants.Items[0].Description)

	require.NoError(t, adminClient.DeleteTenant(ctx, tenantId))
	testhelper.WaitForTenantDeletion(t, ctx, adminClient, tenantId)

	err = adminClient.AssignUserToTenant(ctx, tenantId, user.Username)
	assert.True(t, client.IsProblem(err, 404), "unexpected error %v", err)
}

func TestDefaultTenantCannotBeDeleted(t *testing.T) {
	ctx := context.Background()
	tenant, err := adminClient.GetTenant(ctx, apimodel.DefaultTenantId)
	require.NoError(t, err)
	assert.Equal(t, apimodel.DefaultTenantId, tenant.TenantId)

	err = adminClient.DeleteTenant(ctx, apimodel.DefaultTenantId)
	assert.True(t, client.IsProblem(err, 400), "unexpected error %v", err)
}
