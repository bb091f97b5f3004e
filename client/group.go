// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"

	"github.com/camunda/camunda-sub002/apimodel"
)

func (c *Client) CreateGroup(ctx context.Context, request apimodel.GroupCreateRequest) (*apimodel.Group, error) {
	if err := requireNonEmpty("groupId", request.GroupId, "name", request.Name); err != nil {
		return nil, err
	}
	resp := &apimodel.Group{}
	if err := c.postJSON(ctx, pathOf("groups"), request, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) GetGroup(ctx context.Context, groupId string) (*apimodel.Group, error) {
	if err := requireNonEmpty("groupId", groupId); err != nil {
		return nil, err
	}
	resp := &apimodel.Group{}
	if err := c.getJSON(ctx, pathOf("groups", groupId), resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) UpdateGroup(ctx context.Context, groupId string, request apimodel.GroupUpdateRequest) (*apimodel.Group, error) {
	if err := requireNonEmpty("groupId", groupId, "name", request.Name); err != nil {
		return nil, err
	}
	resp := &apimodel.Group{}
	if err := c.putJSON(ctx, pathOf("groups", groupId), request, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) DeleteGroup(ctx context.Context, groupId string) error {
	if err := requireNonEmpty("groupId", groupId); err != nil {
		return err
	}
	return c.deleteJSON(ctx, pathOf("groups", groupId))
}

func (c *Client) SearchGroups(
	ctx context.Context, request apimodel.GroupSearchRequest,
) (*apimodel.SearchResponse[apimodel.Group], error) {
	return search[apimodel.Group](ctx, c, pathOf("groups", "search"), request)
}

func (c *Client) AssignUserToGroup(ctx context.Context, groupId, username string) error {
	return c.assign(ctx, "groupId", groupId, "username", username, "groups", "users")
}

func (c *Client) UnassignUserFromGroup(ctx context.Context, groupId, username string) error {
	return c.unassign(ctx, "groupId", groupId, "username", username, "groups", "users")
}

func (c *Client) SearchUsersByGroup(
	ctx context.Context, groupId string, request apimodel.MemberUserSearchRequest,
) (*apimodel.SearchResponse[apimodel.MemberUser], error) {
	if err := requireNonEmpty("groupId", groupId); err != nil {
		return nil, err
	}
	return search[apimodel.MemberUser](ctx, c, pathOf("groups", groupId, "users", "search"), request)
}
