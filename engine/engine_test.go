// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"testing"
	"time"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/camunda/camunda-sub002/bpmn"
	"github.com/camunda/camunda-sub002/common/log"
	"github.com/camunda/camunda-sub002/config"
	"github.com/camunda/camunda-sub002/persistence"
	"github.com/camunda/camunda-sub002/persistence/data_models"
	"github.com/camunda/camunda-sub002/persistence/index"
	"github.com/camunda/camunda-sub002/persistence/primary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/camunda/camunda-sub002/extensions/sqlite"
)

// indexSink applies the records to the index right away, so tests can read their own writes
type indexSink struct {
	t     *testing.T
	index persistence.IndexStore
}

func (s *indexSink) Append(records []data_models.ExportRecord) {
	assert.NoError(s.t, s.index.ApplyRecords(context.Background(), records))
}

func testConfig() config.Config {
	cfg := config.Config{
		BatchOperation: config.BatchOperationConfig{
			ItemInterval: 5 * time.Millisecond,
			ScanInterval: 10 * time.Millisecond,
		},
	}
	cfg.Security.InitialAdmin = config.InitialAdminConfig{Username: "demo", Password: "demo"}
	return cfg
}

func newTestEngine(t *testing.T) *Engine {
	logger := log.NewDevelopmentLogger()
	indexStore, err := index.NewSQLIndexStore(config.SQL{
		DBExtensionName: config.SQLiteExtensionName,
		DatabaseName:    config.SQLiteInMemory,
	}, logger)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	store := primary.NewStore(&indexSink{t: t, index: indexStore}, nil)
	e := NewEngine(ctx, testConfig(), store, indexStore, logger)
	require.NoError(t, e.Bootstrap(ctx))
	require.NoError(t, e.Start())

	t.Cleanup(func() {
		cancel()
		stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
		defer stopCancel()
		assert.NoError(t, e.Stop(stopCtx))
		_ = indexStore.Close()
	})
	return e
}

func deployModel(t *testing.T, e *Engine, tenantId string, model *bpmn.Model) *apimodel.ProcessDefinitionDeployment {
	data, err := model.ToXML()
	require.NoError(t, err)
	response, err := e.Deploy(context.Background(), tenantId, []DeploymentResource{
		{Name: model.ProcessId + ".bpmn", Content: data},
	})
	require.NoError(t, err)
	require.Len(t, response.Deployments, 1)
	return response.Deployments[0].ProcessDefinition
}

func serviceTaskProcess(processId string) *bpmn.Model {
	return bpmn.CreateExecutableProcess(processId).
		StartEvent().
		ServiceTask("task", "work").
		EndEvent().
		Done()
}

func requireRejection(t *testing.T, err error, rejectionType RejectionType) *Rejection {
	rejection, ok := AsRejection(err)
	require.True(t, ok, "expected a rejection, got %v", err)
	assert.Equal(t, rejectionType, rejection.Type)
	return rejection
}

func TestBootstrapCreatesDefaultTenantAndAdmin(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	tenant, err := e.index.GetTenant(ctx, apimodel.DefaultTenantId)
	require.NoError(t, err)
	assert.Equal(t, DefaultTenantName, tenant.Name)

	assert.True(t, e.Authenticate("demo", "demo"))
	assert.False(t, e.Authenticate("demo", "wrong"))
	assert.False(t, e.Authenticate("nobody", "demo"))
	assert.True(t, e.IsAdmin("demo"))
	assert.Equal(t, []string{apimodel.DefaultTenantId}, e.TenantsOf("demo"))

	// bootstrapping again changes nothing
	require.NoError(t, e.Bootstrap(ctx))
	members, err := e.index.SearchMembers(ctx, data_models.RecordKindRoleMember, AdminRoleId, data_models.MemberTypeUser)
	require.NoError(t, err)
	assert.Equal(t, []string{"demo"}, members)
}

func TestVisible(t *testing.T) {
	assert.True(t, visible(nil, "any"))
	assert.True(t, visible([]string{"a", "b"}, "b"))
	assert.False(t, visible([]string{}, "a"))
	assert.False(t, visible([]string{"a"}, "b"))
}
