// Apache License 2.0

// Copyright (c) XDBLab organization

// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package postgres

import (
	"context"

	"github.com/camunda/camunda-sub002/extensions"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// database names cannot be bind parameters, they are quoted as identifiers instead
const (
	createDatabaseQuery = "CREATE DATABASE "
	dropDatabaseQuery   = "DROP DATABASE IF EXISTS "
)

type adminDBSession struct {
	db *sqlx.DB
}

var _ extensions.SQLAdminDBSession = (*adminDBSession)(nil)

func newAdminDBSession(db *sqlx.DB) *adminDBSession {
	return &adminDBSession{db: db}
}

func (a adminDBSession) CreateDatabase(ctx context.Context, database string) error {
	_, err := a.db.ExecContext(ctx, createDatabaseQuery+pq.QuoteIdentifier(database))
	return err
}

func (a adminDBSession) DropDatabase(ctx context.Context, database string) error {
	_, err := a.db.ExecContext(ctx, dropDatabaseQuery+pq.QuoteIdentifier(database))
	return err
}

// ExecuteSchemaDDL runs the whole script in one round trip, the simple query protocol accepts multiple statements
func (a adminDBSession) ExecuteSchemaDDL(ctx context.Context, ddlQuery string) error {
	_, err := a.db.ExecContext(ctx, ddlQuery)
	return err
}

func (a adminDBSession) Close() error {
	return a.db.Close()
}
