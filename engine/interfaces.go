// Copyright 2023 XDBLab organization
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package engine

import (
	"context"

	"github.com/camunda/camunda-sub002/persistence"
)

// Exporter ships the export records of the primary state to the index store.
// Records become visible in the index once the configured export delay passed,
// so every read through the index is eventually consistent with the commands.
type Exporter interface {
	persistence.RecordSink
	Start() error
	// Stop waits until the worker exited after the root context was canceled, or until ctx is done
	Stop(ctx context.Context) error
}

// BatchOperationExecutor advances the batch operations one item at a time
type BatchOperationExecutor interface {
	Start() error
	// TriggerPolling wakes the executor up, e.g. after a batch operation was created or resumed
	TriggerPolling()
	Stop(ctx context.Context) error
}
