// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"

	"github.com/camunda/camunda-sub002/apimodel"
)

func (c *Client) CreateUser(ctx context.Context, request apimodel.UserRequest) (*apimodel.User, error) {
	if err := requireNonEmpty("username", request.Username, "password", request.Password); err != nil {
		return nil, err
	}
	resp := &apimodel.User{}
	if err := c.postJSON(ctx, pathOf("users"), request, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) GetUser(ctx context.Context, username string) (*apimodel.User, error) {
	if err := requireNonEmpty("username", username); err != nil {
		return nil, err
	}
	resp := &apimodel.User{}
	if err := c.getJSON(ctx, pathOf("users", username), resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) UpdateUser(ctx context.Context, username string, request apimodel.UserUpdateRequest) (*apimodel.User, error) {
	if err := requireNonEmpty("username", username); err != nil {
		return nil, err
	}
	resp := &apimodel.User{}
	if err := c.putJSON(ctx, pathOf("users", username), request, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) DeleteUser(ctx context.Context, username string) error {
	if err := requireNonEmpty("username", username); err != nil {
		return err
	}
	return c.deleteJSON(ctx, pathOf("users", username))
}

func (c *Client) SearchUsers(
	ctx context.Context, request apimodel.UserSearchRequest,
) (*apimodel.SearchResponse[apimodel.User], error) {
	return search[apimodel.User](ctx, c, pathOf("users", "search"), request)
}
