// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: BUSL-1.1

package api

import (
	"context"
	"fmt"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/camunda/camunda-sub002/engine"
	"github.com/camunda/camunda-sub002/persistence/data_models"
	"github.com/iancoleman/strcase"
)

const (
	resourceUser        = "USER"
	resourceMappingRule = "MAPPING_RULE"
)

// users

func (s *serviceImpl) CreateUser(
	ctx context.Context, caller Caller, request apimodel.UserRequest,
) (*apimodel.User, *ErrorWithStatus) {
	if errResp := requireAdmin(caller, "CREATE", resourceUser); errResp != nil {
		return nil, errResp
	}
	var v violations
	v.id("username", request.Username)
	v.required("password", request.Password)
	if errResp := v.err(); errResp != nil {
		return nil, errResp
	}
	resp, err := s.engine.CreateUser(ctx, request)
	if err != nil {
		return nil, s.toErrorWithStatus(err, "")
	}
	return resp, nil
}

func (s *serviceImpl) GetUser(ctx context.Context, _ Caller, username string) (*apimodel.User, *ErrorWithStatus) {
	resp, err := s.index.GetUser(ctx, username)
	if err != nil {
		return nil, s.toErrorWithStatus(err, notFoundDetail("User", "username", username))
	}
	return resp, nil
}

func (s *serviceImpl) UpdateUser(
	ctx context.Context, caller Caller, username string, request apimodel.UserUpdateRequest,
) (*apimodel.User, *ErrorWithStatus) {
	if errResp := requireAdmin(caller, "UPDATE", resourceUser); errResp != nil {
		return nil, errResp
	}
	resp, err := s.engine.UpdateUser(ctx, username, request)
	if err != nil {
		return nil, s.toErrorWithStatus(err, "")
	}
	return resp, nil
}

func (s *serviceImpl) DeleteUser(ctx context.Context, caller Caller, username string) *ErrorWithStatus {
	if errResp := requireAdmin(caller, "DELETE", resourceUser); errResp != nil {
		return errResp
	}
	if err := s.engine.DeleteUser(ctx, username); err != nil {
		return s.toErrorWithStatus(err, "")
	}
	return nil
}

func (s *serviceImpl) SearchUsers(
	ctx context.Context, _ Caller, request apimodel.UserSearchRequest,
) (*apimodel.SearchResponse[apimodel.User], *ErrorWithStatus) {
	items, err := s.index.SearchUsers(ctx, filterOf(request.Filter))
	if err != nil {
		return nil, s.handleUnknownError(err)
	}
	return toSearchResponse(items, request.Page, request.Sort)
}

// roles

func (s *serviceImpl) CreateRole(
	ctx context.Context, caller Caller, request apimodel.RoleCreateRequest,
) (*apimodel.Role, *ErrorWithStatus) {
	if errResp := requireAdmin(caller, "CREATE", engine.RoleOwner.ResourceName()); errResp != nil {
		return nil, errResp
	}
	var v violations
	v.id("roleId", request.RoleId)
	v.required("name", request.Name)
	if errResp := v.err(); errResp != nil {
		return nil, errResp
	}
	resp, err := s.engine.CreateRole(ctx, request)
	if err != nil {
		return nil, s.toErrorWithStatus(err, "")
	}
	return resp, nil
}

func (s *serviceImpl) GetRole(ctx context.Context, _ Caller, roleId string) (*apimodel.Role, *ErrorWithStatus) {
	resp, err := s.index.GetRole(ctx, roleId)
	if err != nil {
		return nil, s.toErrorWithStatus(err, notFoundDetail("Role", "ID", roleId))
	}
	return resp, nil
}

func (s *serviceImpl) UpdateRole(
	ctx context.Context, caller Caller, roleId string, request apimodel.RoleUpdateRequest,
) (*apimodel.Role, *ErrorWithStatus) {
	if errResp := requireAdmin(caller, "UPDATE", engine.RoleOwner.ResourceName()); errResp != nil {
		return nil, errResp
	}
	var v violations
	v.required("name", request.Name)
	if errResp := v.err(); errResp != nil {
		return nil, errResp
	}
	resp, err := s.engine.UpdateRole(ctx, roleId, request)
	if err != nil {
		return nil, s.toErrorWithStatus(err, "")
	}
	return resp, nil
}

func (s *serviceImpl) DeleteRole(ctx context.Context, caller Caller, roleId string) *ErrorWithStatus {
	if errResp := requireAdmin(caller, "DELETE", engine.RoleOwner.ResourceName()); errResp != nil {
		return errResp
	}
	if err := s.engine.DeleteRole(ctx, roleId); err != nil {
		return s.toErrorWithStatus(err, "")
	}
	return nil
}

func (s *serviceImpl) SearchRoles(
	ctx context.Context, _ Caller, request apimodel.RoleSearchRequest,
) (*apimodel.SearchResponse[apimodel.Role], *ErrorWithStatus) {
	items, err := s.index.SearchRoles(ctx, filterOf(request.Filter))
	if err != nil {
		return nil, s.handleUnknownError(err)
	}
	return toSearchResponse(items, request.Page, request.Sort)
}

// groups

func (s *serviceImpl) CreateGroup(
	ctx context.Context, caller Caller, request apimodel.GroupCreateRequest,
) (*apimodel.Group, *ErrorWithStatus) {
	if errResp := requireAdmin(caller, "CREATE", engine.GroupOwner.ResourceName()); errResp != nil {
		return nil, errResp
	}
	var v violations
	v.id("groupId", request.GroupId)
	v.required("name", request.Name)
	if errResp := v.err(); errResp != nil {
		return nil, errResp
	}
	resp, err := s.engine.CreateGroup(ctx, request)
	if err != nil {
		return nil, s.toErrorWithStatus(err, "")
	}
	return resp, nil
}

func (s *serviceImpl) GetGroup(ctx context.Context, _ Caller, groupId string) (*apimodel.Group, *ErrorWithStatus) {
	resp, err := s.index.GetGroup(ctx, groupId)
	if err != nil {
		return nil, s.toErrorWithStatus(err, notFoundDetail("Group", "ID", groupId))
	}
	return resp, nil
}

func (s *serviceImpl) UpdateGroup(
	ctx context.Context, caller Caller, groupId string, request apimodel.GroupUpdateRequest,
) (*apimodel.Group, *ErrorWithStatus) {
	if errResp := requireAdmin(caller, "UPDATE", engine.GroupOwner.ResourceName()); errResp != nil {
		return nil, errResp
	}
	var v violations
	v.required("name", request.Name)
	if errResp := v.err(); errResp != nil {
		return nil, errResp
	}
	resp, err := s.engine.UpdateGroup(ctx, groupId, request)
	if err != nil {
		return nil, s.toErrorWithStatus(err, "")
	}
	return resp, nil
}

func (s *serviceImpl) DeleteGroup(ctx context.Context, caller Caller, groupId string) *ErrorWithStatus {
	if errResp := requireAdmin(caller, "DELETE", engine.GroupOwner.ResourceName()); errResp != nil {
		return errResp
	}
	if err := s.engine.DeleteGroup(ctx, groupId); err != nil {
		return s.toErrorWithStatus(err, "")
	}
	return nil
}

func (s *serviceImpl) SearchGroups(
	ctx context.Context, _ Caller, request apimodel.GroupSearchRequest,
) (*apimodel.SearchResponse[apimodel.Group], *ErrorWithStatus) {
	items, err := s.index.SearchGroups(ctx, filterOf(request.Filter))
	if err != nil {
		return nil, s.handleUnknownError(err)
	}
	return toSearchResponse(items, request.Page, request.Sort)
}

// tenants

func (s *serviceImpl) CreateTenant(
	ctx context.Context, caller Caller, request apimodel.TenantCreateRequest,
) (*apimodel.Tenant, *ErrorWithStatus) {
	if errResp := requireAdmin(caller, "CREATE", engine.TenantOwner.ResourceName()); errResp != nil {
		return nil, errResp
	}
	var v violations
	v.id("tenantId", request.TenantId)
	v.required("name", request.Name)
	if errResp := v.err(); errResp != nil {
		return nil, errResp
	}
	resp, err := s.engine.CreateTenant(ctx, request)
	if err != nil {
		return nil, s.toErrorWithStatus(err, "")
	}
	return resp, nil
}

func (s *serviceImpl) GetTenant(ctx context.Context, _ Caller, tenantId string) (*apimodel.Tenant, *ErrorWithStatus) {
	resp, err := s.index.GetTenant(ctx, tenantId)
	if err != nil {
		return nil, s.toErrorWithStatus(err, notFoundDetail("Tenant", "ID", tenantId))
	}
	return resp, nil
}

func (s *serviceImpl) UpdateTenant(
	ctx context.Context, caller Caller, tenantId string, request apimodel.TenantUpdateRequest,
) (*apimodel.Tenant, *ErrorWithStatus) {
	if errResp := requireAdmin(caller, "UPDATE", engine.TenantOwner.ResourceName()); errResp != nil {
		return nil, errResp
	}
	var v violations
	v.required("name", request.Name)
	if errResp := v.err(); errResp != nil {
		return nil, errResp
	}
	resp, err := s.engine.UpdateTenant(ctx, tenantId, request)
	if err != nil {
		return nil, s.toErrorWithStatus(err, "")
	}
	return resp, nil
}

func (s *serviceImpl) DeleteTenant(ctx context.Context, caller Caller, tenantId string) *ErrorWithStatus {
	if errResp := requireAdmin(caller, "DELETE", engine.TenantOwner.ResourceName()); errResp != nil {
		return errResp
	}
	if err := s.engine.DeleteTenant(ctx, tenantId); err != nil {
		return s.toErrorWithStatus(err, "")
	}
	return nil
}

func (s *serviceImpl) SearchTenants(
	ctx context.Context, _ Caller, request apimodel.TenantSearchRequest,
) (*apimodel.SearchResponse[apimodel.Tenant], *ErrorWithStatus) {
	items, err := s.index.SearchTenants(ctx, filterOf(request.Filter))
	if err != nil {
		return nil, s.handleUnknownError(err)
	}
	return toSearchResponse(items, request.Page, request.Sort)
}

// mapping rules

func (s *serviceImpl) CreateMappingRule(
	ctx context.Context, caller Caller, request apimodel.MappingRuleCreateRequest,
) (*apimodel.MappingRule, *ErrorWithStatus) {
	if errResp := requireAdmin(caller, "CREATE", resourceMappingRule); errResp != nil {
		return nil, errResp
	}
	var v violations
	v.id("mappingRuleId", request.MappingRuleId)
	v.required("claimName", request.ClaimName)
	v.required("claimValue", request.ClaimValue)
	v.required("name", request.Name)
	if errResp := v.err(); errResp != nil {
		return nil, errResp
	}
	resp, err := s.engine.CreateMappingRule(ctx, request)
	if err != nil {
		return nil, s.toErrorWithStatus(err, "")
	}
	return resp, nil
}

func (s *serviceImpl) GetMappingRule(
	ctx context.Context, _ Caller, mappingRuleId string,
) (*apimodel.MappingRule, *ErrorWithStatus) {
	resp, err := s.index.GetMappingRule(ctx, mappingRuleId)
	if err != nil {
		return nil, s.toErrorWithStatus(err, notFoundDetail("Mapping rule", "ID", mappingRuleId))
	}
	return resp, nil
}

func (s *serviceImpl) UpdateMappingRule(
	ctx context.Context, caller Caller, mappingRuleId string, request apimodel.MappingRuleUpdateRequest,
) (*apimodel.MappingRule, *ErrorWithStatus) {
	if errResp := requireAdmin(caller, "UPDATE", resourceMappingRule); errResp != nil {
		return nil, errResp
	}
	var v violations
	v.required("claimName", request.ClaimName)
	v.required("claimValue", request.ClaimValue)
	v.required("name", request.Name)
	if errResp := v.err(); errResp != nil {
		return nil, errResp
	}
	resp, err := s.engine.UpdateMappingRule(ctx, mappingRuleId, request)
	if err != nil {
		return nil, s.toErrorWithStatus(err, "")
	}
	return resp, nil
}

func (s *serviceImpl) DeleteMappingRule(ctx context.Context, caller Caller, mappingRuleId string) *ErrorWithStatus {
	if errResp := requireAdmin(caller, "DELETE", resourceMappingRule); errResp != nil {
		return errResp
	}
	if err := s.engine.DeleteMappingRule(ctx, mappingRuleId); err != nil {
		return s.toErrorWithStatus(err, "")
	}
	return nil
}

func (s *serviceImpl) SearchMappingRules(
	ctx context.Context, _ Caller, request apimodel.MappingRuleSearchRequest,
) (*apimodel.SearchResponse[apimodel.MappingRule], *ErrorWithStatus) {
	items, err := s.index.SearchMappingRules(ctx, filterOf(request.Filter))
	if err != nil {
		return nil, s.handleUnknownError(err)
	}
	return toSearchResponse(items, request.Page, request.Sort)
}

// memberships

func (s *serviceImpl) AssignMember(ctx context.Context, caller Caller, member Membership) *ErrorWithStatus {
	if errResp := s.checkMembership(caller, member); errResp != nil {
		return errResp
	}
	err := s.engine.AssignMember(ctx, member.Owner, member.OwnerId, member.MemberType, member.MemberId)
	if err != nil {
		return s.toErrorWithStatus(err, "")
	}
	return nil
}

func (s *serviceImpl) UnassignMember(ctx context.Context, caller Caller, member Membership) *ErrorWithStatus {
	if errResp := s.checkMembership(caller, member); errResp != nil {
		return errResp
	}
	err := s.engine.UnassignMember(ctx, member.Owner, member.OwnerId, member.MemberType, member.MemberId)
	if err != nil {
		return s.toErrorWithStatus(err, "")
	}
	return nil
}

func (s *serviceImpl) checkMembership(caller Caller, member Membership) *ErrorWithStatus {
	if errResp := requireAdmin(caller, "UPDATE", member.Owner.ResourceName()); errResp != nil {
		return errResp
	}
	var v violations
	v.id(member.Owner.Name()+"Id", member.OwnerId)
	v.id(memberIdField(member.MemberType), member.MemberId)
	return v.err()
}

func memberIdField(memberType data_models.MemberType) string {
	switch memberType {
	case data_models.MemberTypeUser:
		return "username"
	case data_models.MemberTypeGroup:
		return "groupId"
	case data_models.MemberTypeRole:
		return "roleId"
	default:
		return "mappingRuleId"
	}
}

// SearchUserMembers lists the users assigned directly to the owner
func (s *serviceImpl) SearchUserMembers(
	ctx context.Context, _ Caller, owner engine.Owner, ownerId string, request apimodel.MemberUserSearchRequest,
) (*apimodel.SearchResponse[apimodel.MemberUser], *ErrorWithStatus) {
	if errResp := s.ownerExists(ctx, owner, ownerId); errResp != nil {
		return nil, errResp
	}
	usernames, err := s.index.SearchMembers(ctx, owner.MemberKind(), ownerId, data_models.MemberTypeUser)
	if err != nil {
		return nil, s.handleUnknownError(err)
	}
	filter := filterOf(request.Filter)
	items := make([]apimodel.MemberUser, 0, len(usernames))
	for _, username := range usernames {
		if filter.Username == "" || filter.Username == username {
			items = append(items, apimodel.MemberUser{Username: username})
		}
	}
	return toSearchResponse(items, request.Page, request.Sort)
}

func (s *serviceImpl) ownerExists(ctx context.Context, owner engine.Owner, ownerId string) *ErrorWithStatus {
	var err error
	switch owner.Name() {
	case engine.RoleOwner.Name():
		_, err = s.index.GetRole(ctx, ownerId)
	case engine.GroupOwner.Name():
		_, err = s.index.GetGroup(ctx, ownerId)
	default:
		_, err = s.index.GetTenant(ctx, ownerId)
	}
	if err != nil {
		return s.toErrorWithStatus(err, fmt.Sprintf(
			"%v with ID '%v' not found", strcase.ToCamel(owner.Name()), ownerId))
	}
	return nil
}
