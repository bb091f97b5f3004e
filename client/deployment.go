// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/pkg/errors"
)

type Resource struct {
	Name    string
	Content []byte
}

type DeployRequest struct {
	Resources []Resource
	TenantId  string
}

func (c *Client) DeployResources(ctx context.Context, request DeployRequest) (*apimodel.DeploymentResponse, error) {
	if len(request.Resources) == 0 {
		return nil, &ValidationError{Field: "resources", Reason: "must not be empty"}
	}
	for _, r := range request.Resources {
		if err := requireNonEmpty("resource name", r.Name); err != nil {
			return nil, err
		}
	}

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	for _, r := range request.Resources {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="resources"; filename="`+r.Name+`"`)
		header.Set("Content-Type", "application/octet-stream")
		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, errors.Wrap(err, "failed to write deployment resource")
		}
		if _, err := part.Write(r.Content); err != nil {
			return nil, errors.Wrap(err, "failed to write deployment resource")
		}
	}
	if request.TenantId != "" {
		if err := writer.WriteField("tenantId", request.TenantId); err != nil {
			return nil, errors.Wrap(err, "failed to write tenant id")
		}
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to close multipart body")
	}

	resp := &apimodel.DeploymentResponse{}
	if err := c.send(ctx, http.MethodPost, pathOf("deployments"), body, writer.FormDataContentType(), resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) GetProcessDefinition(ctx context.Context, processDefinitionKey string) (*apimodel.ProcessDefinition, error) {
	if err := requireNonEmpty("processDefinitionKey", processDefinitionKey); err != nil {
		return nil, err
	}
	resp := &apimodel.ProcessDefinition{}
	if err := c.getJSON(ctx, pathOf("process-definitions", processDefinitionKey), resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetProcessDefinitionXML returns the deployed BPMN resource of the process definition
func (c *Client) GetProcessDefinitionXML(ctx context.Context, processDefinitionKey string) (string, error) {
	if err := requireNonEmpty("processDefinitionKey", processDefinitionKey); err != nil {
		return "", err
	}
	var raw []byte
	if err := c.getJSON(ctx, pathOf("process-definitions", processDefinitionKey, "xml"), &raw); err != nil {
		return "", err
	}
	return string(raw), nil
}

func (c *Client) SearchProcessDefinitions(
	ctx context.Context, request apimodel.ProcessDefinitionSearchRequest,
) (*apimodel.SearchResponse[apimodel.ProcessDefinition], error) {
	return search[apimodel.ProcessDefinition](ctx, c, pathOf("process-definitions", "search"), request)
}
