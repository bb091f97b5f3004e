// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, register func(engine *gin.Engine)) *Client {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	register(engine)
	server := httptest.NewServer(engine)
	t.Cleanup(server.Close)
	return NewClient(Config{Address: server.URL, Username: "demo", Password: "demo"})
}

func TestEmptyIdentifierIsRejectedBeforeSending(t *testing.T) {
	called := false
	c := newTestServer(t, func(engine *gin.Engine) {
		engine.NoRoute(func(ctx *gin.Context) { called = true })
	})

	_, err := c.CreateRole(context.Background(), apimodel.RoleCreateRequest{Name: "r"})

	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t, "roleId must not be empty", err.Error())
	assert.Equal(t, 0, StatusOf(err))
	assert.False(t, called)
}

func TestProblemResponseIsDecoded(t *testing.T) {
	c := newTestServer(t, func(engine *gin.Engine) {
		engine.GET("/v2/roles/:roleId", func(ctx *gin.Context) {
			ctx.Header("Content-Type", apimodel.ProblemContentType)
			ctx.JSON(http.StatusNotFound, apimodel.ProblemDetail{
				Type:     apimodel.ProblemTypeBlank,
				Title:    apimodel.TitleNotFound,
				Status:   http.StatusNotFound,
				Detail:   "Role with id 'missing' not found",
				Instance: ctx.Request.URL.Path,
			})
		})
	})

	_, err := c.GetRole(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, IsProblem(err, http.StatusNotFound))
	problem, ok := AsProblem(err)
	require.True(t, ok)
	assert.Equal(t, "Role with id 'missing' not found", problem.Detail)
	assert.Equal(t, "/v2/roles/missing", problem.Instance)
	assert.Equal(t, "failed with code 404: 'NOT_FOUND'. Details: 'Role with id 'missing' not found'", err.Error())
}

func TestNonProblemErrorBodyStillCarriesStatus(t *testing.T) {
	c := newTestServer(t, func(engine *gin.Engine) {})

	_, err := c.GetTenant(context.Background(), "t1")

	require.Error(t, err)
	problem, ok := AsProblem(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, problem.Status)
	assert.Equal(t, "Not Found", problem.Title)
	assert.Equal(t, "/v2/tenants/t1", problem.Instance)
}

func TestBasicAuthAndSearchDecoding(t *testing.T) {
	var gotFilter apimodel.UserSearchRequest
	c := newTestServer(t, func(engine *gin.Engine) {
		engine.POST("/v2/users/search", func(ctx *gin.Context) {
			user, password, ok := ctx.Request.BasicAuth()
			if !ok || user != "demo" || password != "demo" {
				ctx.Status(http.StatusUnauthorized)
				return
			}
			if err := ctx.ShouldBindJSON(&gotFilter); err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			ctx.JSON(http.StatusOK, apimodel.SearchResponse[apimodel.User]{
				Items: []apimodel.User{{Username: "alice", Name: "Alice"}},
				Page:  apimodel.SearchResponsePage{TotalItems: 1},
			})
		})
	})

	resp, err := c.SearchUsers(context.Background(), apimodel.UserSearchRequest{
		Filter: &apimodel.UserFilter{Username: "alice"},
		Page:   &apimodel.SearchQueryPage{Limit: 10},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Page.TotalItems)
	assert.Equal(t, "Alice", resp.Items[0].Name)
	assert.Equal(t, "alice", gotFilter.Filter.Username)
	assert.Equal(t, 10, gotFilter.Page.Limit)

	_, err = c.WithCredentials("demo", "wrong").SearchUsers(context.Background(), apimodel.UserSearchRequest{})
	assert.True(t, IsProblem(err, http.StatusUnauthorized))
}

func TestDeployResourcesSendsMultipart(t *testing.T) {
	var names []string
	var tenant string
	c := newTestServer(t, func(engine *gin.Engine) {
		engine.POST("/v2/deployments", func(ctx *gin.Context) {
			form, err := ctx.MultipartForm()
			if err != nil {
				ctx.Status(http.StatusBadRequest)
				return
			}
			for _, f := range form.File["resources"] {
				names = append(names, f.Filename)
			}
			tenant = ctx.PostForm("tenantId")
			ctx.JSON(http.StatusOK, apimodel.DeploymentResponse{DeploymentKey: "2251799813685249"})
		})
	})

	resp, err := c.DeployResources(context.Background(), DeployRequest{
		Resources: []Resource{{Name: "a.bpmn", Content: []byte("<a/>")}, {Name: "b.bpmn", Content: []byte("<b/>")}},
		TenantId:  "tenant-a",
	})

	require.NoError(t, err)
	assert.Equal(t, "2251799813685249", resp.DeploymentKey)
	assert.Equal(t, []string{"a.bpmn", "b.bpmn"}, names)
	assert.Equal(t, "tenant-a", tenant)
}

func TestDocumentContentIsReturnedRaw(t *testing.T) {
	var query url.Values
	c := newTestServer(t, func(engine *gin.Engine) {
		engine.GET("/v2/documents/:documentId", func(ctx *gin.Context) {
			query = ctx.Request.URL.Query()
			ctx.Data(http.StatusOK, "text/plain", []byte("hello"))
		})
	})

	content, err := c.GetDocumentContent(context.Background(), "doc-1", "in-memory", "abc")

	require.NoError(t, err)
	assert.Equal(t, "hello", string(content))
	assert.Equal(t, "in-memory", query.Get("storeId"))
	assert.Equal(t, "abc", query.Get("contentHash"))
}

func TestAssignmentUsesPutOnMemberPath(t *testing.T) {
	var method, path string
	c := newTestServer(t, func(engine *gin.Engine) {
		engine.NoRoute(func(ctx *gin.Context) {
			method = ctx.Request.Method
			path = ctx.Request.URL.Path
			_, _ = io.Copy(io.Discard, ctx.Request.Body)
			ctx.Status(http.StatusNoContent)
		})
	})

	require.NoError(t, c.AssignUserToTenant(context.Background(), "tenant-a", "alice"))

	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/v2/tenants/tenant-a/users/alice", path)

	err := c.AssignUserToTenant(context.Background(), "tenant-a", "")
	assert.Equal(t, "username must not be empty", err.Error())
}

func TestTransportErrorIsWrapped(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	c := NewClient(Config{Address: server.URL})

	_, err := c.Topology(context.Background())

	require.Error(t, err)
	assert.Equal(t, 0, StatusOf(err))
	var urlErr *url.Error
	assert.True(t, errors.As(err, &urlErr))
	assert.Contains(t, err.Error(), "request GET /v2/topology failed")
}
