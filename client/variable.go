// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"

	"github.com/camunda/camunda-sub002/apimodel"
)

// SetVariables sets variables on an element instance. A process instance key addresses the process scope.
func (c *Client) SetVariables(ctx context.Context, elementInstanceKey string, variables map[string]any, local bool) error {
	if err := requireNonEmpty("elementInstanceKey", elementInstanceKey); err != nil {
		return err
	}
	if len(variables) == 0 {
		return &ValidationError{Field: "variables", Reason: "must not be empty"}
	}
	return c.putJSON(ctx, pathOf("element-instances", elementInstanceKey, "variables"),
		apimodel.SetVariableRequest{Variables: variables, Local: local}, nil)
}

func (c *Client) SearchVariables(
	ctx context.Context, request apimodel.VariableSearchRequest,
) (*apimodel.SearchResponse[apimodel.Variable], error) {
	return search[apimodel.Variable](ctx, c, pathOf("variables", "search"), request)
}

func (c *Client) GetVariable(ctx context.Context, variableKey string) (*apimodel.Variable, error) {
	if err := requireNonEmpty("variableKey", variableKey); err != nil {
		return nil, err
	}
	resp := &apimodel.Variable{}
	if err := c.getJSON(ctx, pathOf("variables", variableKey), resp); err != nil {
		return nil, err
	}
	return resp, nil
}
