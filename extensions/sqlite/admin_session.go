// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: BUSL-1.1

package sqlite

import (
	"context"
	"errors"
	"os"

	"github.com/camunda/camunda-sub002/extensions"
	"github.com/jmoiron/sqlx"
)

// adminDBSession treats a database as a file, created on first open
type adminDBSession struct {
	db *sqlx.DB
}

var _ extensions.SQLAdminDBSession = (*adminDBSession)(nil)

func newAdminDBSession(db *sqlx.DB, _ string) *adminDBSession {
	return &adminDBSession{
		db: db,
	}
}

func (a adminDBSession) CreateDatabase(ctx context.Context, database string) error {
	if isInMemory(database) {
		return nil
	}
	db, err := sqlx.Open(driverName, buildDSN(database))
	if err != nil {
		return err
	}
	defer db.Close()
	return db.PingContext(ctx)
}

func (a adminDBSession) DropDatabase(_ context.Context, database string) error {
	if isInMemory(database) {
		return nil
	}
	for _, suffix := range []string{"", "-wal", "-shm"} {
		if err := os.Remove(database + suffix); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

func (a adminDBSession) ExecuteSchemaDDL(ctx context.Context, ddlQuery string) error {
	_, err := a.db.ExecContext(ctx, ddlQuery)
	return err
}

func (a adminDBSession) Close() error {
	return a.db.Close()
}
