// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"

	"github.com/camunda/camunda-sub002/apimodel"
)

func (c *Client) CreateMappingRule(
	ctx context.Context, request apimodel.MappingRuleCreateRequest,
) (*apimodel.MappingRule, error) {
	err := requireNonEmpty(
		"mappingRuleId", request.MappingRuleId,
		"claimName", request.ClaimName,
		"claimValue", request.ClaimValue,
		"name", request.Name)
	if err != nil {
		return nil, err
	}
	resp := &apimodel.MappingRule{}
	if err := c.postJSON(ctx, pathOf("mapping-rules"), request, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) GetMappingRule(ctx context.Context, mappingRuleId string) (*apimodel.MappingRule, error) {
	if err := requireNonEmpty("mappingRuleId", mappingRuleId); err != nil {
		return nil, err
	}
	resp := &apimodel.MappingRule{}
	if err := c.getJSON(ctx, pathOf("mapping-rules", mappingRuleId), resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) UpdateMappingRule(
	ctx context.Context, mappingRuleId string, request apimodel.MappingRuleUpdateRequest,
) (*apimodel.MappingRule, error) {
	err := requireNonEmpty(
		"mappingRuleId", mappingRuleId,
		"claimName", request.ClaimName,
		"claimValue", request.ClaimValue,
		"name", request.Name)
	if err != nil {
		return nil, err
	}
	resp := &apimodel.MappingRule{}
	if err := c.putJSON(ctx, pathOf("mapping-rules", mappingRuleId), request, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) DeleteMappingRule(ctx context.Context, mappingRuleId string) error {
	if err := requireNonEmpty("mappingRuleId", mappingRuleId); err != nil {
		return err
	}
	return c.deleteJSON(ctx, pathOf("mapping-rules", mappingRuleId))
}

func (c *Client) SearchMappingRules(
	ctx context.Context, request apimodel.MappingRuleSearchRequest,
) (*apimodel.SearchResponse[apimodel.MappingRule], error) {
	return search[apimodel.MappingRule](ctx, c, pathOf("mapping-rules", "search"), request)
}
