// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package testhelper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/camunda/camunda-sub002/client"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitForTotalItemsToleratesUnindexedOwner(t *testing.T) {
	var calls int32
	search := func(ctx context.Context) (*apimodel.SearchResponse[apimodel.MemberUser], error) {
		if atomic.AddInt32(&calls, 1) < 3 {
			return nil, &client.ProblemError{ProblemDetail: apimodel.ProblemDetail{
				Status: http.StatusNotFound, Title: apimodel.TitleNotFound, Detail: "Role with ID 'r1' not found",
			}}
		}
		return &apimodel.SearchResponse[apimodel.MemberUser]{
			Items: []apimodel.MemberUser{{Username: "jane"}},
			Page:  apimodel.SearchResponsePage{TotalItems: 1},
		}, nil
	}

	resp := WaitForTotalItems(t, context.Background(), "users of role r1", 1, search)

	assert.Equal(t, "jane", resp.Items[0].Username)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestWaitForJobsSkipsStaleRows(t *testing.T) {
	var calls int32
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/v2/jobs/search", func(c *gin.Context) {
		// the completed job is still indexed as created on the first answers
		jobType := "reserve-job"
		if atomic.AddInt32(&calls, 1) >= 3 {
			jobType = "ship-job"
		}
		c.JSON(http.StatusOK, apimodel.SearchResponse[apimodel.Job]{
			Items: []apimodel.Job{{JobKey: "2", Type: jobType, State: apimodel.JobStateCreated}},
			Page:  apimodel.SearchResponsePage{TotalItems: 1},
		})
	})
	server := httptest.NewServer(router)
	defer server.Close()
	c := client.NewClient(client.Config{Address: server.URL, Username: "demo", Password: "demo"})

	jobs := WaitForJobs(t, context.Background(), c, "1", apimodel.JobStateCreated, "ship-job")

	require.Len(t, jobs, 1)
	assert.Equal(t, "ship-job", jobs[0].Type)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(3))
}
