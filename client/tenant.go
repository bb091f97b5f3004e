// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"

	"github.com/camunda/camunda-sub002/apimodel"
)

func (c *Client) CreateTenant(ctx context.Context, request apimodel.TenantCreateRequest) (*apimodel.Tenant, error) {
	if err := requireNonEmpty("tenantId", request.TenantId, "name", request.Name); err != nil {
		return nil, err
	}
	resp := &apimodel.Tenant{}
	if err := c.postJSON(ctx, pathOf("tenants"), request, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) GetTenant(ctx context.Context, tenantId string) (*apimodel.Tenant, error) {
	if err := requireNonEmpty("tenantId", tenantId); err != nil {
		return nil, err
	}
	resp := &apimodel.Tenant{}
	if err := c.getJSON(ctx, pathOf("tenants", tenantId), resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) UpdateTenant(ctx context.Context, tenantId string, request apimodel.TenantUpdateRequest) (*apimodel.Tenant, error) {
	if err := requireNonEmpty("tenantId", tenantId, "name", request.Name); err != nil {
		return nil, err
	}
	resp := &apimodel.Tenant{}
	if err := c.putJSON(ctx, pathOf("tenants", tenantId), request, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) DeleteTenant(ctx context.Context, tenantId string) error {
	if err := requireNonEmpty("tenantId", tenantId); err != nil {
		return err
	}
	return c.deleteJSON(ctx, pathOf("tenants", tenantId))
}

func (c *Client) SearchTenants(
	ctx context.Context, request apimodel.TenantSearchRequest,
) (*apimodel.SearchResponse[apimodel.Tenant], error) {
	return search[apimodel.Tenant](ctx, c, pathOf("tenants", "search"), request)
}

func (c *Client) AssignUserToTenant(ctx context.Context, tenantId, username string) error {
	return c.assign(ctx, "tenantId", tenantId, "username", username, "tenants", "users")
}

func (c *Client) UnassignUserFromTenant(ctx context.Context, tenantId, username string) error {
	return c.unassign(ctx, "tenantId", tenantId, "username", username, "tenants", "users")
}

func (c *Client) AssignGroupToTenant(ctx context.Context, tenantId, groupId string) error {
	return c.assign(ctx, "tenantId", tenantId, "groupId", groupId, "tenants", "groups")
}

func (c *Client) AssignRoleToTenant(ctx context.Context, tenantId, roleId string) error {
	return c.assign(ctx, "tenantId", tenantId, "roleId", roleId, "tenants", "roles")
}

func (c *Client) SearchUsersByTenant(
	ctx context.Context, tenantId string, request apimodel.MemberUserSearchRequest,
) (*apimodel.SearchResponse[apimodel.MemberUser], error) {
	if err := requireNonEmpty("tenantId", tenantId); err != nil {
		return nil, err
	}
	return search[apimodel.MemberUser](ctx, c, pathOf("tenants", tenantId, "users", "search"), request)
}
