// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: BUSL-1.1

package sqlite

import (
	"context"
	_ "embed"
	"strings"

	"github.com/camunda/camunda-sub002/config"
	"github.com/camunda/camunda-sub002/extensions"

	"github.com/iancoleman/strcase"
	"github.com/jmoiron/sqlx"
	_ "github.com/ncruces/go-sqlite3/driver" // load the SQL driver for sqlite
	_ "github.com/ncruces/go-sqlite3/embed"
)

const (
	ExtensionName = config.SQLiteExtensionName

	driverName = "sqlite3"
)

// SchemaDDL is applied on every new session, an in-memory database starts empty
//
//go:embed schema/index.sql
var SchemaDDL string

type extension struct {
	errorChecker
}

var _ extensions.SQLDBExtension = (*extension)(nil)

func init() {
	extensions.RegisterSQLDBExtension(ExtensionName, &extension{})
}

func (d *extension) StartDBSession(cfg *config.SQL) (extensions.SQLDBSession, error) {
	db, err := d.createSingleDBConn(cfg)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(context.Background(), SchemaDDL); err != nil {
		_ = db.Close()
		return nil, err
	}
	return extensions.NewSQLXSession(db, errorChecker{}), nil
}

func (d *extension) StartAdminDBSession(cfg *config.SQL) (extensions.SQLAdminDBSession, error) {
	db, err := d.createSingleDBConn(cfg)
	if err != nil {
		return nil, err
	}
	return newAdminDBSession(db, cfg.DatabaseName), nil
}

func (d *extension) createSingleDBConn(cfg *config.SQL) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverName, buildDSN(cfg.DatabaseName))
	if err != nil {
		return nil, err
	}
	if isInMemory(cfg.DatabaseName) {
		// every connection to :memory: is a different database
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Maps struct names in CamelCase to snake without need for db struct tags.
	db.MapperFunc(strcase.ToSnake)
	return db, nil
}

func buildDSN(databaseName string) string {
	if databaseName == "" || isInMemory(databaseName) {
		return config.SQLiteInMemory
	}
	if strings.HasPrefix(databaseName, "file:") {
		return databaseName
	}
	return "file:" + databaseName + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(wal)"
}

func isInMemory(databaseName string) bool {
	return databaseName == "" || databaseName == config.SQLiteInMemory
}
