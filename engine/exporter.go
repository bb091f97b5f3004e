// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"time"

	"github.com/camunda/camunda-sub002/common/log"
	"github.com/camunda/camunda-sub002/common/log/tag"
	"github.com/camunda/camunda-sub002/common/retry"
	"github.com/camunda/camunda-sub002/config"
	"github.com/camunda/camunda-sub002/persistence"
	"github.com/camunda/camunda-sub002/persistence/data_models"
)

type indexExporterImpl struct {
	rootCtx     context.Context
	cfg         config.ExporterConfig
	retryPolicy retry.Policy
	store       persistence.IndexStore
	logger      log.Logger

	recordsToExportChan chan []data_models.ExportRecord
	// stopped is closed when the worker exits
	stopped chan struct{}
}

func NewIndexExporter(
	rootCtx context.Context, cfg config.ExporterConfig, store persistence.IndexStore, logger log.Logger,
) Exporter {
	return &indexExporterImpl{
		rootCtx: rootCtx,
		cfg:     cfg,
		retryPolicy: retry.Policy{
			InitialInterval:    cfg.RetryInitialInterval,
			BackoffCoefficient: 2,
			MaximumInterval:    cfg.RetryMaxInterval,
		},
		store:               store,
		logger:              logger.WithTags(tag.Service("exporter")),
		recordsToExportChan: make(chan []data_models.ExportRecord, cfg.BufferSize),
		stopped:             make(chan struct{}),
	}
}

// Append blocks while the queue is full, which holds back further commands
func (w *indexExporterImpl) Append(records []data_models.ExportRecord) {
	select {
	case w.recordsToExportChan <- records:
	case <-w.rootCtx.Done():
		w.logger.Warn("dropped records appended after shutdown", tag.Count(len(records)))
	}
}

func (w *indexExporterImpl) Start() error {
	go func() {
		defer close(w.stopped)
		for {
			select {
			case <-w.rootCtx.Done():
				return
			case records := <-w.recordsToExportChan:
				if !w.waitForExportTime(records[0].Timestamp) {
					return
				}
				if !w.exportWithRetry(records) {
					return
				}
			}
		}
	}()
	return nil
}

func (w *indexExporterImpl) Stop(ctx context.Context) error {
	select {
	case <-w.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *indexExporterImpl) waitForExportTime(committedAt time.Time) bool {
	wait := time.Until(committedAt.Add(w.cfg.ExportDelay))
	if wait <= 0 {
		return true
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-w.rootCtx.Done():
		return false
	}
}

// exportWithRetry retries until the records are written, returns false on shutdown
func (w *indexExporterImpl) exportWithRetry(records []data_models.ExportRecord) bool {
	firstAttemptStart := time.Now()
	for attempt := 1; ; attempt++ {
		err := w.store.ApplyRecords(w.rootCtx, records)
		if err == nil {
			w.logger.Debug("exported records",
				tag.Count(len(records)), tag.Key(records[len(records)-1].String()))
			return true
		}

		if !w.store.IsRetryableError(err) {
			w.logger.Error("dropping records after a permanent export failure",
				tag.Error(err), tag.Count(len(records)), tag.Attempt(attempt))
			return true
		}
		backoff, shouldRetry := w.retryPolicy.NextBackoff(attempt, firstAttemptStart)
		if !shouldRetry {
			w.logger.Error("giving up exporting records", tag.Error(err), tag.Attempt(attempt))
			return true
		}
		w.logger.Warn("failed to export records, will retry",
			tag.Error(err), tag.Attempt(attempt), tag.Backoff(backoff))

		timer := time.NewTimer(backoff)
		select {
		case <-timer.C:
		case <-w.rootCtx.Done():
			timer.Stop()
			return false
		}
	}
}
