// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"

	"github.com/camunda/camunda-sub002/apimodel"
)

// CreateProcessInstance starts an instance of the latest version of ProcessDefinitionId,
// or of the exact definition when ProcessDefinitionKey is set.
func (c *Client) CreateProcessInstance(
	ctx context.Context, request apimodel.CreateProcessInstanceRequest,
) (*apimodel.CreateProcessInstanceResponse, error) {
	if request.ProcessDefinitionKey == "" {
		if err := requireNonEmpty("processDefinitionId", request.ProcessDefinitionId); err != nil {
			return nil, err
		}
	}
	resp := &apimodel.CreateProcessInstanceResponse{}
	if err := c.postJSON(ctx, pathOf("process-instances"), request, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) CancelProcessInstance(ctx context.Context, processInstanceKey string) error {
	if err := requireNonEmpty("processInstanceKey", processInstanceKey); err != nil {
		return err
	}
	return c.postJSON(ctx, pathOf("process-instances", processInstanceKey, "cancellation"), struct{}{}, nil)
}

func (c *Client) GetProcessInstance(ctx context.Context, processInstanceKey string) (*apimodel.ProcessInstance, error) {
	if err := requireNonEmpty("processInstanceKey", processInstanceKey); err != nil {
		return nil, err
	}
	resp := &apimodel.ProcessInstance{}
	if err := c.getJSON(ctx, pathOf("process-instances", processInstanceKey), resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) SearchProcessInstances(
	ctx context.Context, request apimodel.ProcessInstanceSearchRequest,
) (*apimodel.SearchResponse[apimodel.ProcessInstance], error) {
	return search[apimodel.ProcessInstance](ctx, c, pathOf("process-instances", "search"), request)
}

func (c *Client) SearchJobs(
	ctx context.Context, request apimodel.JobSearchRequest,
) (*apimodel.SearchResponse[apimodel.Job], error) {
	return search[apimodel.Job](ctx, c, pathOf("jobs", "search"), request)
}

func (c *Client) CompleteJob(ctx context.Context, jobKey string, variables map[string]any) error {
	if err := requireNonEmpty("jobKey", jobKey); err != nil {
		return err
	}
	return c.postJSON(ctx, pathOf("jobs", jobKey, "completion"),
		apimodel.JobCompletionRequest{Variables: variables}, nil)
}
