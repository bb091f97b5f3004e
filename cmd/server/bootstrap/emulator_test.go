// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package bootstrap

import (
	"context"
	"testing"
	"time"

	"github.com/camunda/camunda-sub002/client"
	"github.com/camunda/camunda-sub002/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartEmulatorWithDefaultIndex(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Config{
		Log:        config.Logger{Level: "error"},
		ApiService: config.ApiServiceConfig{HttpServer: config.HttpServerConfig{Address: "127.0.0.1:0"}},
	}
	emulator, err := StartEmulator(ctx, &cfg)
	require.NoError(t, err)
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		assert.NoError(t, emulator.Shutdown(shutdownCtx))
	}()

	assert.Equal(t, config.SQLiteExtensionName, cfg.Database.Index.DBExtensionName)
	c := client.NewClient(client.Config{
		Address:  "http://" + emulator.Addr(),
		Username: config.DefaultAdminUsername,
		Password: config.DefaultAdminPassword,
	})
	topology, err := c.Topology(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, topology.Brokers)
}
