// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

// Package client is a REST client of the orchestration cluster API (v2).
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/camunda/camunda-sub002/common/log"
	"github.com/camunda/camunda-sub002/common/log/tag"
	"github.com/pkg/errors"
)

const (
	DefaultAddress        = "http://localhost:8080"
	DefaultRequestTimeout = 10 * time.Second

	contentTypeJSON = "application/json"
)

type Config struct {
	// Address is the base URL of the REST gateway, e.g. http://localhost:8080
	Address string
	// Username and Password are sent with basic authentication when Username is set
	Username string
	Password string
	// RequestTimeout bounds every request, unused when HTTPClient is set
	RequestTimeout time.Duration
	HTTPClient     *http.Client
	Logger         log.Logger
}

type Client struct {
	address    string
	username   string
	password   string
	httpClient *http.Client
	logger     log.Logger
}

func NewClient(cfg Config) *Client {
	address := strings.TrimRight(cfg.Address, "/")
	if address == "" {
		address = DefaultAddress
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.RequestTimeout
		if timeout <= 0 {
			timeout = DefaultRequestTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Client{
		address:    address,
		username:   cfg.Username,
		password:   cfg.Password,
		httpClient: httpClient,
		logger:     logger,
	}
}

// WithCredentials returns a client of the same cluster authenticating as another user
func (c *Client) WithCredentials(username, password string) *Client {
	cp := *c
	cp.username = username
	cp.password = password
	return &cp
}

func (c *Client) Address() string {
	return c.address
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.send(ctx, http.MethodGet, path, nil, "", out)
}

func (c *Client) deleteJSON(ctx context.Context, path string) error {
	return c.send(ctx, http.MethodDelete, path, nil, "", nil)
}

func (c *Client) postJSON(ctx context.Context, path string, in any, out any) error {
	return c.sendJSON(ctx, http.MethodPost, path, in, out)
}

func (c *Client) putJSON(ctx context.Context, path string, in any, out any) error {
	return c.sendJSON(ctx, http.MethodPut, path, in, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in any, out any) error {
	if in == nil {
		return c.send(ctx, method, path, nil, "", out)
	}
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return errors.Wrapf(err, "failed to encode request of %v %v", method, path)
	}
	return c.send(ctx, method, path, buf, contentTypeJSON, out)
}

// send performs the request. A *[]byte out receives the raw body, any other non nil out is JSON decoded.
func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.address+path, body)
	if err != nil {
		return errors.Wrapf(err, "failed to build request %v %v", method, path)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", contentTypeJSON+", "+apimodel.ProblemContentType)
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "request %v %v failed", method, path)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "failed to read response of %v %v", method, path)
	}

	if resp.StatusCode/100 != 2 {
		c.logger.Debug("request rejected",
			tag.Method(method), tag.Path(path), tag.StatusCode(resp.StatusCode), tag.Message(string(raw)))
		return decodeProblem(resp.StatusCode, raw, path)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if b, ok := out.(*[]byte); ok {
		*b = raw
		return nil
	}
	return errors.Wrapf(json.Unmarshal(raw, out), "failed to decode response of %v %v", method, path)
}

func search[T any](ctx context.Context, c *Client, path string, request any) (*apimodel.SearchResponse[T], error) {
	if request == nil {
		request = struct{}{}
	}
	resp := &apimodel.SearchResponse[T]{}
	if err := c.postJSON(ctx, path, request, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func pathOf(segments ...string) string {
	var sb strings.Builder
	sb.WriteString("/v2")
	for _, s := range segments {
		sb.WriteString("/")
		sb.WriteString(url.PathEscape(s))
	}
	return sb.String()
}
