// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: BUSL-1.1

// Package extensionstest is the shared test suite every SQL extension must pass.
package extensionstest

import (
	"context"
	"testing"

	"github.com/camunda/camunda-sub002/extensions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(kind, key, tenant, state, parent string, position int64) extensions.SearchRecordRow {
	return extensions.SearchRecordRow{
		Kind:           kind,
		RecordKey:      key,
		TenantId:       tenant,
		State:          state,
		ParentKey:      parent,
		Payload:        `{"key":"` + key + `"}`,
		ExportPosition: position,
		UpdatedAt:      position * 10,
	}
}

// SearchRecordsTest runs the search record CRUD against a fresh session
func SearchRecordsTest(t *testing.T, session extensions.SQLDBSession) {
	ctx := context.Background()

	require.NoError(t, session.UpsertSearchRecord(ctx, row("instance", "3", "<default>", "ACTIVE", "", 3)))
	require.NoError(t, session.UpsertSearchRecord(ctx, row("instance", "1", "<default>", "ACTIVE", "", 1)))
	require.NoError(t, session.UpsertSearchRecord(ctx, row("instance", "2", "tenant-a", "ACTIVE", "", 2)))
	require.NoError(t, session.UpsertSearchRecord(ctx, row("variable", "10", "<default>", "", "1", 4)))
	require.NoError(t, session.UpsertSearchRecord(ctx, row("variable", "11", "<default>", "", "1", 5)))

	got, err := session.SelectSearchRecord(ctx, "instance", "2")
	require.NoError(t, err)
	assert.Equal(t, row("instance", "2", "tenant-a", "ACTIVE", "", 2), *got)

	_, err = session.SelectSearchRecord(ctx, "instance", "404")
	assert.True(t, session.IsNotFoundError(err))

	rows, err := session.SelectSearchRecords(ctx, extensions.SearchRecordQuery{Kind: "instance"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, keysOf(rows))

	// an update keeps the first export position
	updated := row("instance", "1", "<default>", "TERMINATED", "", 99)
	require.NoError(t, session.UpsertSearchRecord(ctx, updated))
	rows, err = session.SelectSearchRecords(ctx, extensions.SearchRecordQuery{Kind: "instance"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, keysOf(rows))
	assert.Equal(t, "TERMINATED", rows[0].State)
	assert.Equal(t, int64(990), rows[0].UpdatedAt)

	rows, err = session.SelectSearchRecords(ctx, extensions.SearchRecordQuery{Kind: "instance", State: "ACTIVE"})
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3"}, keysOf(rows))

	rows, err = session.SelectSearchRecords(ctx, extensions.SearchRecordQuery{
		Kind: "instance", TenantIds: []string{"tenant-a", "tenant-b"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, keysOf(rows))

	rows, err = session.SelectSearchRecords(ctx, extensions.SearchRecordQuery{Kind: "instance", TenantIds: []string{}})
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = session.SelectSearchRecords(ctx, extensions.SearchRecordQuery{
		Kind: "instance", RecordKeys: []string{"3", "1"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, keysOf(rows))

	rows, err = session.SelectSearchRecords(ctx, extensions.SearchRecordQuery{Kind: "variable", ParentKey: "1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "11"}, keysOf(rows))

	require.NoError(t, session.DeleteSearchRecord(ctx, "instance", "3"))
	require.NoError(t, session.DeleteSearchRecordsByParent(ctx, "variable", "1"))
	rows, err = session.SelectSearchRecords(ctx, extensions.SearchRecordQuery{Kind: "variable"})
	require.NoError(t, err)
	assert.Empty(t, rows)
	_, err = session.SelectSearchRecord(ctx, "instance", "3")
	assert.True(t, session.IsNotFoundError(err))
}

// TransactionTest checks that rolled back writes are not visible and committed ones are
func TransactionTest(t *testing.T, session extensions.SQLDBSession) {
	ctx := context.Background()

	tx, err := session.StartTransaction(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.UpsertSearchRecord(ctx, row("user", "alice", "<default>", "", "", 1)))
	require.NoError(t, tx.Rollback())

	_, err = session.SelectSearchRecord(ctx, "user", "alice")
	assert.True(t, session.IsNotFoundError(err))

	tx, err = session.StartTransaction(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.UpsertSearchRecord(ctx, row("user", "bob", "<default>", "", "", 2)))
	rows, err := tx.SelectSearchRecords(ctx, extensions.SearchRecordQuery{Kind: "user"})
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, keysOf(rows))
	require.NoError(t, tx.Commit())

	got, err := session.SelectSearchRecord(ctx, "user", "bob")
	require.NoError(t, err)
	assert.Equal(t, `{"key":"bob"}`, got.Payload)
}

func keysOf(rows []extensions.SearchRecordRow) []string {
	keys := make([]string, 0, len(rows))
	for _, r := range rows {
		keys = append(keys, r.RecordKey)
	}
	return keys
}
