// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"

	"github.com/camunda/camunda-sub002/apimodel"
)

func (c *Client) Topology(ctx context.Context) (*apimodel.TopologyResponse, error) {
	resp := &apimodel.TopologyResponse{}
	if err := c.getJSON(ctx, pathOf("topology"), resp); err != nil {
		return nil, err
	}
	return resp, nil
}
