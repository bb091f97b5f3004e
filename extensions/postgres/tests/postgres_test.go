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

package tests

import (
	"context"
	"flag"
	"fmt"
	"testing"
	"time"

	"github.com/camunda/camunda-sub002/config"
	"github.com/camunda/camunda-sub002/extensions"
	"github.com/camunda/camunda-sub002/extensions/extensionstest"
	"github.com/camunda/camunda-sub002/extensions/postgres"
	"github.com/camunda/camunda-sub002/extensions/postgres/postgrestool"
	"github.com/stretchr/testify/require"
)

var withPostgres = flag.Bool("postgres", false,
	"run the extension tests against a postgres server at the postgrestool defaults")

func TestPostgres(t *testing.T) {
	if !*withPostgres {
		t.Skip("postgres tests need -postgres and a running server")
	}
	ctx := context.Background()
	testDBName := fmt.Sprintf("test%v", time.Now().UnixNano())
	fmt.Println("using database name ", testDBName)

	sqlConfig := &config.SQL{
		ConnectAddr:     fmt.Sprintf("%v:%v", postgrestool.DefaultEndpoint, postgrestool.DefaultPort),
		User:            postgrestool.DefaultUserName,
		Password:        postgrestool.DefaultPassword,
		DBExtensionName: postgres.ExtensionName,
		DatabaseName:    testDBName,
	}

	require.NoError(t, extensions.CreateDatabase(ctx, *sqlConfig, testDBName))
	defer func() {
		_ = extensions.DropDatabase(ctx, *sqlConfig, testDBName)
		fmt.Println("testing database deleted")
	}()
	require.NoError(t, extensions.SetupSchema(ctx, sqlConfig, postgres.SchemaDDL))

	session, err := extensions.NewSQLSession(sqlConfig)
	require.NoError(t, err)
	extensionstest.SearchRecordsTest(t, session)
	extensionstest.TransactionTest(t, session)
	require.NoError(t, session.Close())
}
