// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: BUSL-1.1

package extensions

import (
	"context"

	"github.com/camunda/camunda-sub002/config"
)

type SQLDBExtension interface {
	// StartDBSession starts the session for regular business logic
	StartDBSession(cfg *config.SQL) (SQLDBSession, error)
	// StartAdminDBSession starts the session for admin operation like DDL
	StartAdminDBSession(cfg *config.SQL) (SQLAdminDBSession, error)
	ErrorChecker
}

type SQLDBSession interface {
	searchRecordCRUD

	StartTransaction(ctx context.Context) (SQLTransaction, error)
	ErrorChecker
	Close() error
}

type SQLTransaction interface {
	searchRecordCRUD
	Commit() error
	Rollback() error
}

type SQLAdminDBSession interface {
	CreateDatabase(ctx context.Context, database string) error
	DropDatabase(ctx context.Context, database string) error
	ExecuteSchemaDDL(ctx context.Context, ddlQuery string) error
	Close() error
}

type searchRecordCRUD interface {
	// UpsertSearchRecord inserts the row or replaces it, keeping the export position of the first insert
	UpsertSearchRecord(ctx context.Context, row SearchRecordRow) error
	DeleteSearchRecord(ctx context.Context, kind, recordKey string) error
	DeleteSearchRecordsByParent(ctx context.Context, kind, parentKey string) error
	// SelectSearchRecord returns an error matching IsNotFoundError when the row does not exist
	SelectSearchRecord(ctx context.Context, kind, recordKey string) (*SearchRecordRow, error)
	// SelectSearchRecords returns the matching rows ordered by export position
	SelectSearchRecords(ctx context.Context, query SearchRecordQuery) ([]SearchRecordRow, error)
}

type ErrorChecker interface {
	IsNotFoundError(err error) bool
	// IsTimeoutError and IsThrottlingError report transient failures worth retrying
	IsTimeoutError(err error) bool
	IsThrottlingError(err error) bool
}
