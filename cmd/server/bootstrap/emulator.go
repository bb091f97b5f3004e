// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package bootstrap

import (
	"context"
	"fmt"
	rawLog "log"
	"os"
	"os/signal"
	"time"

	"github.com/camunda/camunda-sub002/common/log"
	"github.com/camunda/camunda-sub002/common/log/tag"
	"github.com/camunda/camunda-sub002/config"
	"github.com/camunda/camunda-sub002/engine"
	"github.com/camunda/camunda-sub002/persistence"
	"github.com/camunda/camunda-sub002/persistence/document"
	"github.com/camunda/camunda-sub002/persistence/index"
	"github.com/camunda/camunda-sub002/persistence/primary"
	"github.com/camunda/camunda-sub002/service/api"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	_ "github.com/camunda/camunda-sub002/extensions/sqlite" // the default index extension
)

const ApiServiceName = "api"

const FlagConfig = "config"

func StartEmulatorCli(c *cli.Context) {
	// register interrupt signal for graceful shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	configPath := c.String(FlagConfig)
	cfg, err := config.NewConfig(configPath)
	if err != nil {
		rawLog.Fatalf("Unable to load config for path %v because of error %v", configPath, err)
	}
	emulator, err := StartEmulator(rootCtx, cfg)
	if err != nil {
		rawLog.Fatalf("Unable to start the emulator because of error %v", err)
	}
	// wait for os signals
	<-rootCtx.Done()

	ctx, cancF := context.WithTimeout(context.Background(), time.Second*10)
	defer cancF()
	err = emulator.Shutdown(ctx)
	if err != nil {
		fmt.Println("shutdown error:", err)
	}
}

// Emulator is a running, single node stand-in of the orchestration cluster
type Emulator struct {
	cfg       config.Config
	logger    log.Logger
	cancel    context.CancelFunc
	index     persistence.IndexStore
	exporter  engine.Exporter
	engine    *engine.Engine
	documents persistence.DocumentStore
	apiServer api.Server
}

// StartEmulator wires the stores, the engine and the REST gateway, then starts serving.
// The emulator stops when rootCtx is done or on Shutdown.
func StartEmulator(rootCtx context.Context, cfg *config.Config) (*Emulator, error) {
	zapLogger, err := cfg.Log.NewZapLogger()
	if err != nil {
		return nil, errors.Wrap(err, "unable to create a new zap logger")
	}
	logger := log.NewLogger(zapLogger)
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(err, "config is invalid")
	}
	logger.Debug("config is loaded", tag.Value(cfg.String()))

	indexStore, err := index.NewSQLIndexStore(*cfg.Database.Index, logger)
	if err != nil {
		return nil, errors.Wrap(err, "error on index store setup")
	}

	ctx, cancel := context.WithCancel(rootCtx)
	e := &Emulator{
		cfg:    *cfg,
		logger: logger,
		cancel: cancel,
		index:  indexStore,
	}

	e.exporter = engine.NewIndexExporter(ctx, cfg.Exporter, indexStore, logger)
	if err := e.exporter.Start(); err != nil {
		return nil, e.abort(err, "failed to start exporter")
	}

	store := primary.NewStore(e.exporter, nil)
	apiEngine := engine.NewEngine(ctx, *cfg, store, indexStore, logger)
	if err := apiEngine.Bootstrap(ctx); err != nil {
		return nil, e.abort(err, "failed to bootstrap engine")
	}
	if err := apiEngine.Start(); err != nil {
		return nil, e.abort(err, "failed to start engine")
	}
	e.engine = apiEngine

	e.documents = document.NewInMemoryDocumentStore(cfg.DocumentStore, logger)
	e.apiServer = api.NewDefaultAPIServerWithGin(
		ctx, *cfg, e.engine, indexStore, e.documents, logger.WithTags(tag.Service(ApiServiceName)))
	if err := e.apiServer.Start(); err != nil {
		e.apiServer = nil
		return nil, e.abort(err, "failed to start api server")
	}
	logger.Info("emulator is started", tag.Value(e.apiServer.Addr()))
	return e, nil
}

// Addr is the address the REST gateway listens on
func (e *Emulator) Addr() string {
	return e.apiServer.Addr()
}

func (e *Emulator) abort(err error, msg string) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	return multierr.Append(errors.Wrap(err, msg), e.Shutdown(ctx))
}

// Shutdown stops the gateway first, then the engine and the exporter, and closes the stores
func (e *Emulator) Shutdown(ctx context.Context) error {
	var errs error
	if e.apiServer != nil {
		errs = multierr.Append(errs, e.apiServer.Stop(ctx))
	}
	e.cancel()
	if e.engine != nil {
		errs = multierr.Append(errs, e.engine.Stop(ctx))
	}
	if e.exporter != nil {
		errs = multierr.Append(errs, e.exporter.Stop(ctx))
	}
	if e.documents != nil {
		errs = multierr.Append(errs, e.documents.Close())
	}
	errs = multierr.Append(errs, e.index.Close())
	return errs
}
