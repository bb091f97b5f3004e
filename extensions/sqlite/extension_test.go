// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: BUSL-1.1

package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/camunda/camunda-sub002/config"
	"github.com/camunda/camunda-sub002/extensions"
	"github.com/camunda/camunda-sub002/extensions/extensionstest"
	"github.com/stretchr/testify/assert"
	"github.com/ncruces/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func newInMemorySession(t *testing.T) extensions.SQLDBSession {
	session, err := extensions.NewSQLSession(&config.SQL{
		DBExtensionName: ExtensionName,
		DatabaseName:    config.SQLiteInMemory,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestSearchRecordsInMemory(t *testing.T) {
	extensionstest.SearchRecordsTest(t, newInMemorySession(t))
}

func TestTransactionsInMemory(t *testing.T) {
	extensionstest.TransactionTest(t, newInMemorySession(t))
}

func TestInMemorySessionsAreIsolated(t *testing.T) {
	first := newInMemorySession(t)
	second := newInMemorySession(t)
	ctx := context.Background()

	require.NoError(t, first.UpsertSearchRecord(ctx, extensions.SearchRecordRow{
		Kind: "tenant", RecordKey: "t1", TenantId: "t1", Payload: "{}", ExportPosition: 1,
	}))

	_, err := second.SelectSearchRecord(ctx, "tenant", "t1")
	assert.True(t, second.IsNotFoundError(err))
}

func TestFileDatabaseLifecycle(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "index.db")
	cfg := config.SQL{DBExtensionName: ExtensionName, DatabaseName: path}

	require.NoError(t, extensions.CreateDatabase(ctx, cfg, path))
	require.NoError(t, extensions.SetupSchema(ctx, &cfg, SchemaDDL))

	session, err := extensions.NewSQLSession(&cfg)
	require.NoError(t, err)
	extensionstest.SearchRecordsTest(t, session)
	require.NoError(t, session.Close())

	assert.NoError(t, extensions.DropDatabase(ctx, cfg, path))
	assert.NoFileExists(t, path)
}

func TestUnknownExtensionIsRejected(t *testing.T) {
	_, err := extensions.NewSQLSession(&config.SQL{DBExtensionName: "oracle"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "[sqlite]")
}

func TestErrorCheckerClassifiesTransientFailures(t *testing.T) {
	checker := errorChecker{}

	assert.True(t, checker.IsThrottlingError(fmt.Errorf("apply: %w", sqlite3.BUSY)))
	assert.True(t, checker.IsThrottlingError(sqlite3.LOCKED))
	assert.True(t, checker.IsTimeoutError(fmt.Errorf("apply: %w", context.DeadlineExceeded)))
	assert.True(t, checker.IsTimeoutError(sqlite3.INTERRUPT))

	permanent := errors.New("no such table: search_records")
	assert.False(t, checker.IsThrottlingError(permanent))
	assert.False(t, checker.IsTimeoutError(permanent))
}
