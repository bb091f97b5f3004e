// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"

	"github.com/camunda/camunda-sub002/apimodel"
)

func (c *Client) CreateRole(ctx context.Context, request apimodel.RoleCreateRequest) (*apimodel.Role, error) {
	if err := requireNonEmpty("roleId", request.RoleId, "name", request.Name); err != nil {
		return nil, err
	}
	resp := &apimodel.Role{}
	if err := c.postJSON(ctx, pathOf("roles"), request, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) GetRole(ctx context.Context, roleId string) (*apimodel.Role, error) {
	if err := requireNonEmpty("roleId", roleId); err != nil {
		return nil, err
	}
	resp := &apimodel.Role{}
	if err := c.getJSON(ctx, pathOf("roles", roleId), resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) UpdateRole(ctx context.Context, roleId string, request apimodel.RoleUpdateRequest) (*apimodel.Role, error) {
	if err := requireNonEmpty("roleId", roleId, "name", request.Name); err != nil {
		return nil, err
	}
	resp := &apimodel.Role{}
	if err := c.putJSON(ctx, pathOf("roles", roleId), request, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) DeleteRole(ctx context.Context, roleId string) error {
	if err := requireNonEmpty("roleId", roleId); err != nil {
		return err
	}
	return c.deleteJSON(ctx, pathOf("roles", roleId))
}

func (c *Client) SearchRoles(
	ctx context.Context, request apimodel.RoleSearchRequest,
) (*apimodel.SearchResponse[apimodel.Role], error) {
	return search[apimodel.Role](ctx, c, pathOf("roles", "search"), request)
}

func (c *Client) AssignRoleToUser(ctx context.Context, roleId, username string) error {
	return c.assign(ctx, "roleId", roleId, "username", username, "roles", "users")
}

func (c *Client) UnassignRoleFromUser(ctx context.Context, roleId, username string) error {
	return c.unassign(ctx, "roleId", roleId, "username", username, "roles", "users")
}

func (c *Client) AssignRoleToGroup(ctx context.Context, roleId, groupId string) error {
	return c.assign(ctx, "roleId", roleId, "groupId", groupId, "roles", "groups")
}

func (c *Client) UnassignRoleFromGroup(ctx context.Context, roleId, groupId string) error {
	return c.unassign(ctx, "roleId", roleId, "groupId", groupId, "roles", "groups")
}

func (c *Client) AssignRoleToMappingRule(ctx context.Context, roleId, mappingRuleId string) error {
	return c.assign(ctx, "roleId", roleId, "mappingRuleId", mappingRuleId, "roles", "mapping-rules")
}

func (c *Client) SearchUsersByRole(
	ctx context.Context, roleId string, request apimodel.MemberUserSearchRequest,
) (*apimodel.SearchResponse[apimodel.MemberUser], error) {
	if err := requireNonEmpty("roleId", roleId); err != nil {
		return nil, err
	}
	return search[apimodel.MemberUser](ctx, c, pathOf("roles", roleId, "users", "search"), request)
}

// assign puts the member under the owner, e.g. PUT /v2/roles/{roleId}/users/{username}
func (c *Client) assign(ctx context.Context, ownerField, ownerId, memberField, memberId, owners, members string) error {
	if err := requireNonEmpty(ownerField, ownerId, memberField, memberId); err != nil {
		return err
	}
	return c.putJSON(ctx, pathOf(owners, ownerId, members, memberId), nil, nil)
}

func (c *Client) unassign(ctx context.Context, ownerField, ownerId, memberField, memberId, owners, members string) error {
	if err := requireNonEmpty(ownerField, ownerId, memberField, memberId); err != nil {
		return err
	}
	return c.deleteJSON(ctx, pathOf(owners, ownerId, members, memberId))
}
