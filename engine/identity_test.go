// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"testing"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/camunda/camunda-sub002/persistence"
	"github.com/camunda/camunda-sub002/persistence/data_models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserLifecycle(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	created, err := e.CreateUser(ctx, apimodel.UserRequest{Username: "jane", Password: "secret", Name: "Jane"})
	require.NoError(t, err)
	assert.Equal(t, apimodel.User{Username: "jane", Name: "Jane"}, *created)
	assert.True(t, e.Authenticate("jane", "secret"))
	assert.False(t, e.IsAdmin("jane"))

	_, err = e.CreateUser(ctx, apimodel.UserRequest{Username: "jane", Password: "other"})
	requireRejection(t, err, RejectionAlreadyExists)

	updated, err := e.UpdateUser(ctx, "jane", apimodel.UserUpdateRequest{Name: "Jane Doe", Email: "jane@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", updated.Email)
	assert.True(t, e.Authenticate("jane", "secret"))

	_, err = e.UpdateUser(ctx, "jane", apimodel.UserUpdateRequest{Name: "Jane Doe", Email: "jane@example.com", Password: "changed"})
	require.NoError(t, err)
	assert.False(t, e.Authenticate("jane", "secret"))
	assert.True(t, e.Authenticate("jane", "changed"))

	indexed, err := e.index.GetUser(ctx, "jane")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", indexed.Name)

	require.NoError(t, e.AssignMember(ctx, RoleOwner, AdminRoleId, data_models.MemberTypeUser, "jane"))
	assert.True(t, e.IsAdmin("jane"))

	require.NoError(t, e.DeleteUser(ctx, "jane"))
	assert.False(t, e.Authenticate("jane", "secret"))
	_, err = e.index.GetUser(ctx, "jane")
	assert.True(t, persistence.IsNotFound(err))
	members, err := e.index.SearchMembers(ctx, data_models.RecordKindRoleMember, AdminRoleId, data_models.MemberTypeUser)
	require.NoError(t, err)
	assert.Equal(t, []string{"demo"}, members)

	requireRejection(t, e.DeleteUser(ctx, "jane"), RejectionNotFound)
}

func TestRoleAndGroupRejections(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	_, err := e.CreateRole(ctx, apimodel.RoleCreateRequest{RoleId: "reader", Name: "Reader"})
	require.NoError(t, err)
	_, err = e.CreateRole(ctx, apimodel.RoleCreateRequest{RoleId: "reader", Name: "Reader"})
	rejection := requireRejection(t, err, RejectionAlreadyExists)
	assert.Equal(t, "Expected to create role with ID 'reader', but a role with this ID already exists.", rejection.Message)

	_, err = e.UpdateGroup(ctx, "missing", apimodel.GroupUpdateRequest{Name: "x"})
	rejection = requireRejection(t, err, RejectionNotFound)
	assert.Equal(t, "Expected to update group with ID 'missing', but a group with this ID does not exist.", rejection.Message)

	requireRejection(t, e.DeleteRole(ctx, "missing"), RejectionNotFound)
	requireRejection(t, e.DeleteMappingRule(ctx, "missing"), RejectionNotFound)
}

func TestMembershipsThroughGroups(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	_, err := e.CreateUser(ctx, apimodel.UserRequest{Username: "bob", Password: "pw"})
	require.NoError(t, err)
	_, err = e.CreateGroup(ctx, apimodel.GroupCreateRequest{GroupId: "ops", Name: "Ops"})
	require.NoError(t, err)
	_, err = e.CreateTenant(ctx, apimodel.TenantCreateRequest{TenantId: "tenant-a", Name: "A"})
	require.NoError(t, err)
	_, err = e.CreateTenant(ctx, apimodel.TenantCreateRequest{TenantId: "tenant-b", Name: "B"})
	require.NoError(t, err)

	require.NoError(t, e.AssignMember(ctx, GroupOwner, "ops", data_models.MemberTypeUser, "bob"))
	require.NoError(t, e.AssignMember(ctx, TenantOwner, "tenant-b", data_models.MemberTypeGroup, "ops"))
	require.NoError(t, e.AssignMember(ctx, TenantOwner, "tenant-a", data_models.MemberTypeUser, "bob"))
	require.NoError(t, e.AssignMember(ctx, RoleOwner, AdminRoleId, data_models.MemberTypeGroup, "ops"))

	assert.Equal(t, []string{"tenant-a", "tenant-b"}, e.TenantsOf("bob"))
	assert.True(t, e.IsAdmin("bob"))

	err = e.AssignMember(ctx, GroupOwner, "ops", data_models.MemberTypeUser, "bob")
	rejection := requireRejection(t, err, RejectionAlreadyExists)
	assert.Equal(t,
		"Expected to add entity with ID 'bob' to group with ID 'ops', but the entity is already assigned to this group.",
		rejection.Message)

	err = e.AssignMember(ctx, GroupOwner, "missing", data_models.MemberTypeUser, "bob")
	requireRejection(t, err, RejectionNotFound)
	err = e.AssignMember(ctx, GroupOwner, "ops", data_models.MemberTypeUser, "nobody")
	requireRejection(t, err, RejectionNotFound)

	require.NoError(t, e.UnassignMember(ctx, GroupOwner, "ops", data_models.MemberTypeUser, "bob"))
	assert.Equal(t, []string{"tenant-a"}, e.TenantsOf("bob"))
	assert.False(t, e.IsAdmin("bob"))

	err = e.UnassignMember(ctx, GroupOwner, "ops", data_models.MemberTypeUser, "bob")
	rejection = requireRejection(t, err, RejectionNotFound)
	assert.Contains(t, rejection.Message, "is not assigned to this group.")

	members, err := e.index.SearchMembers(ctx, TenantOwner.MemberKind(), "tenant-b", data_models.MemberTypeGroup)
	require.NoError(t, err)
	assert.Equal(t, []string{"ops"}, members)
}

func TestTenantLifecycle(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	_, err := e.CreateTenant(ctx, apimodel.TenantCreateRequest{TenantId: "tenant-a", Name: "A"})
	require.NoError(t, err)
	_, err = e.CreateTenant(ctx, apimodel.TenantCreateRequest{TenantId: "tenant-a", Name: "A"})
	requireRejection(t, err, RejectionAlreadyExists)

	updated, err := e.UpdateTenant(ctx, "tenant-a", apimodel.TenantUpdateRequest{Name: "Tenant A", Description: "first"})
	require.NoError(t, err)
	assert.Equal(t, apimodel.Tenant{TenantId: "tenant-a", Name: "Tenant A", Description: "first"}, *updated)

	require.NoError(t, e.AssignMember(ctx, TenantOwner, "tenant-a", data_models.MemberTypeUser, "demo"))
	require.NoError(t, e.DeleteTenant(ctx, "tenant-a"))
	assert.Equal(t, []string{apimodel.DefaultTenantId}, e.TenantsOf("demo"))
	_, err = e.index.GetTenant(ctx, "tenant-a")
	assert.True(t, persistence.IsNotFound(err))

	requireRejection(t, e.DeleteTenant(ctx, apimodel.DefaultTenantId), RejectionInvalidArgument)
	requireRejection(t, e.DeleteTenant(ctx, "tenant-a"), RejectionNotFound)
}

func TestMappingRuleLifecycle(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	rule, err := e.CreateMappingRule(ctx, apimodel.MappingRuleCreateRequest{
		MappingRuleId: "rule-1", ClaimName: "groups", ClaimValue: "ops", Name: "Ops",
	})
	require.NoError(t, err)
	assert.Equal(t, "rule-1", rule.MappingRuleId)

	updated, err := e.UpdateMappingRule(ctx, "rule-1", apimodel.MappingRuleUpdateRequest{
		ClaimName: "groups", ClaimValue: "dev", Name: "Dev",
	})
	require.NoError(t, err)
	assert.Equal(t, "dev", updated.ClaimValue)

	require.NoError(t, e.AssignMember(ctx, RoleOwner, AdminRoleId, data_models.MemberTypeMappingRule, "rule-1"))
	require.NoError(t, e.DeleteMappingRule(ctx, "rule-1"))
	members, err := e.index.SearchMembers(ctx, data_models.RecordKindRoleMember, AdminRoleId, data_models.MemberTypeMappingRule)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestForbiddenRejection(t *testing.T) {
	rejection := ForbiddenRejection("CREATE", "TENANT")

	assert.Equal(t, RejectionForbidden, rejection.Type)
	assert.Equal(t, "Insufficient permissions to perform operation 'CREATE' on resource 'TENANT'", rejection.Error())
	assert.Equal(t, "FORBIDDEN", rejection.Type.String())
	assert.Equal(t, "ROLE", RoleOwner.ResourceName())

	_, ok := AsRejection(persistence.ErrNotFound)
	assert.False(t, ok)
}
