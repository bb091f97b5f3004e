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

package api

import (
	"context"
	"fmt"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/camunda/camunda-sub002/common/log"
	"github.com/camunda/camunda-sub002/config"
	"github.com/camunda/camunda-sub002/engine"
	"github.com/camunda/camunda-sub002/persistence"
)

const (
	GatewayVersion = "8.8.0"
	// BrokerPort is the port reported for the single emulated broker
	BrokerPort = 26501
)

type serviceImpl struct {
	cfg       config.Config
	engine    *engine.Engine
	index     persistence.IndexStore
	documents persistence.DocumentStore
	logger    log.Logger
}

func NewServiceImpl(
	cfg config.Config, apiEngine *engine.Engine, index persistence.IndexStore, documents persistence.DocumentStore,
	logger log.Logger,
) Service {
	return &serviceImpl{
		cfg:       cfg,
		engine:    apiEngine,
		index:     index,
		documents: documents,
		logger:    logger,
	}
}

func (s *serviceImpl) Topology(_ context.Context) *apimodel.TopologyResponse {
	return &apimodel.TopologyResponse{
		Brokers: []apimodel.BrokerInfo{{
			NodeId:  0,
			Host:    "localhost",
			Port:    BrokerPort,
			Version: GatewayVersion,
			Partitions: []apimodel.Partition{
				{PartitionId: 1, Role: "leader", Health: "healthy"},
			},
		}},
		ClusterSize:       1,
		PartitionsCount:   1,
		ReplicationFactor: 1,
		GatewayVersion:    GatewayVersion,
	}
}

// process definitions

func (s *serviceImpl) Deploy(
	ctx context.Context, caller Caller, tenantId string, resources []engine.DeploymentResource,
) (*apimodel.DeploymentResponse, *ErrorWithStatus) {
	tenantId, errResp := s.resolveTenant(caller, tenantId)
	if errResp != nil {
		return nil, errResp
	}
	resp, err := s.engine.Deploy(ctx, tenantId, resources)
	if err != nil {
		return nil, s.toErrorWithStatus(err, "")
	}
	return resp, nil
}

func (s *serviceImpl) GetProcessDefinition(
	ctx context.Context, caller Caller, key string,
) (*apimodel.ProcessDefinition, *ErrorWithStatus) {
	resp, err := s.index.GetProcessDefinition(ctx, key, caller.Tenants)
	if err != nil {
		return nil, s.toErrorWithStatus(err, notFoundDetail("Process definition", "key", key))
	}
	return resp, nil
}

func (s *serviceImpl) GetProcessDefinitionXML(ctx context.Context, caller Caller, key string) (string, *ErrorWithStatus) {
	resp, err := s.index.GetProcessDefinitionXML(ctx, key, caller.Tenants)
	if err != nil {
		return "", s.toErrorWithStatus(err, notFoundDetail("Process definition", "key", key))
	}
	return resp, nil
}

func (s *serviceImpl) SearchProcessDefinitions(
	ctx context.Context, caller Caller, request apimodel.ProcessDefinitionSearchRequest,
) (*apimodel.SearchResponse[apimodel.ProcessDefinition], *ErrorWithStatus) {
	items, err := s.index.SearchProcessDefinitions(ctx, filterOf(request.Filter), caller.Tenants)
	if err != nil {
		return nil, s.handleUnknownError(err)
	}
	return toSearchResponse(items, request.Page, request.Sort)
}

// process instances

func (s *serviceImpl) CreateProcessInstance(
	ctx context.Context, caller Caller, request apimodel.CreateProcessInstanceRequest,
) (*apimodel.CreateProcessInstanceResponse, *ErrorWithStatus) {
	tenantId, errResp := s.resolveTenant(caller, request.TenantId)
	if errResp != nil {
		return nil, errResp
	}
	request.TenantId = tenantId
	resp, err := s.engine.CreateProcessInstance(ctx, request)
	if err != nil {
		return nil, s.toErrorWithStatus(err, "")
	}
	return resp, nil
}

func (s *serviceImpl) GetProcessInstance(
	ctx context.Context, caller Caller, key string,
) (*apimodel.ProcessInstance, *ErrorWithStatus) {
	resp, err := s.index.GetProcessInstance(ctx, key, caller.Tenants)
	if err != nil {
		return nil, s.toErrorWithStatus(err, notFoundDetail("Process instance", "key", key))
	}
	return resp, nil
}

func (s *serviceImpl) SearchProcessInstances(
	ctx context.Context, caller Caller, request apimodel.ProcessInstanceSearchRequest,
) (*apimodel.SearchResponse[apimodel.ProcessInstance], *ErrorWithStatus) {
	items, err := s.index.SearchProcessInstances(ctx, filterOf(request.Filter), caller.Tenants)
	if err != nil {
		return nil, s.handleUnknownError(err)
	}
	return toSearchResponse(items, request.Page, request.Sort)
}

func (s *serviceImpl) CancelProcessInstance(ctx context.Context, caller Caller, key string) *ErrorWithStatus {
	if err := s.engine.CancelProcessInstance(ctx, key, caller.Tenants); err != nil {
		return s.toErrorWithStatus(err, "")
	}
	return nil
}

func (s *serviceImpl) SearchJobs(
	ctx context.Context, caller Caller, request apimodel.JobSearchRequest,
) (*apimodel.SearchResponse[apimodel.Job], *ErrorWithStatus) {
	items, err := s.index.SearchJobs(ctx, filterOf(request.Filter), caller.Tenants)
	if err != nil {
		return nil, s.handleUnknownError(err)
	}
	return toSearchResponse(items, request.Page, request.Sort)
}

func (s *serviceImpl) CompleteJob(
	ctx context.Context, caller Caller, key string, request apimodel.JobCompletionRequest,
) *ErrorWithStatus {
	if err := s.engine.CompleteJob(ctx, key, request.Variables, caller.Tenants); err != nil {
		return s.toErrorWithStatus(err, "")
	}
	return nil
}

// variables

func (s *serviceImpl) SetVariables(
	ctx context.Context, caller Caller, elementInstanceKey string, request apimodel.SetVariableRequest,
) *ErrorWithStatus {
	if request.Variables == nil {
		return invalidArgument("No variables provided.")
	}
	err := s.engine.SetVariables(ctx, elementInstanceKey, request.Variables, request.Local, caller.Tenants)
	if err != nil {
		return s.toErrorWithStatus(err, "")
	}
	return nil
}

func (s *serviceImpl) GetVariable(ctx context.Context, caller Caller, key string) (*apimodel.Variable, *ErrorWithStatus) {
	resp, err := s.index.GetVariable(ctx, key, caller.Tenants)
	if err != nil {
		return nil, s.toErrorWithStatus(err, notFoundDetail("Variable", "key", key))
	}
	return resp, nil
}

func (s *serviceImpl) SearchVariables(
	ctx context.Context, caller Caller, request apimodel.VariableSearchRequest,
) (*apimodel.SearchResponse[apimodel.Variable], *ErrorWithStatus) {
	items, err := s.index.SearchVariables(ctx, filterOf(request.Filter), caller.Tenants)
	if err != nil {
		return nil, s.handleUnknownError(err)
	}
	return toSearchResponse(items, request.Page, request.Sort)
}

// batch operations

func (s *serviceImpl) CreateBatchOperation(
	ctx context.Context, caller Caller, operationType apimodel.BatchOperationType,
	request apimodel.ProcessInstanceBatchRequest,
) (*apimodel.BatchOperationCreatedResult, *ErrorWithStatus) {
	if errResp := requireAdmin(caller, "CREATE", "BATCH"); errResp != nil {
		return nil, errResp
	}
	resp, err := s.engine.CreateBatchOperation(ctx, operationType, request.Filter, caller.Tenants)
	if err != nil {
		return nil, s.toErrorWithStatus(err, "")
	}
	return resp, nil
}

func (s *serviceImpl) GetBatchOperation(
	ctx context.Context, _ Caller, key string,
) (*apimodel.BatchOperation, *ErrorWithStatus) {
	resp, err := s.index.GetBatchOperation(ctx, key)
	if err != nil {
		return nil, s.toErrorWithStatus(err, notFoundDetail("Batch operation", "key", key))
	}
	return resp, nil
}

func (s *serviceImpl) SearchBatchOperations(
	ctx context.Context, _ Caller, request apimodel.BatchOperationSearchRequest,
) (*apimodel.SearchResponse[apimodel.BatchOperation], *ErrorWithStatus) {
	items, err := s.index.SearchBatchOperations(ctx, filterOf(request.Filter))
	if err != nil {
		return nil, s.handleUnknownError(err)
	}
	return toSearchResponse(items, request.Page, request.Sort)
}

func (s *serviceImpl) SearchBatchOperationItems(
	ctx context.Context, _ Caller, request apimodel.BatchOperationItemSearchRequest,
) (*apimodel.SearchResponse[apimodel.BatchOperationItem], *ErrorWithStatus) {
	items, err := s.index.SearchBatchOperationItems(ctx, filterOf(request.Filter))
	if err != nil {
		return nil, s.handleUnknownError(err)
	}
	return toSearchResponse(items, request.Page, request.Sort)
}

func (s *serviceImpl) ChangeBatchOperation(
	ctx context.Context, caller Caller, key string, change BatchOperationChange,
) *ErrorWithStatus {
	if errResp := requireAdmin(caller, "UPDATE", "BATCH"); errResp != nil {
		return errResp
	}
	var err error
	switch change {
	case BatchOperationCancellation:
		err = s.engine.CancelBatchOperation(ctx, key)
	case BatchOperationSuspension:
		err = s.engine.SuspendBatchOperation(ctx, key)
	case BatchOperationResumption:
		err = s.engine.ResumeBatchOperation(ctx, key)
	default:
		return invalidArgument(fmt.Sprintf("Unknown batch operation change '%v'.", change))
	}
	if err != nil {
		return s.toErrorWithStatus(err, "")
	}
	return nil
}

// filterOf returns the filter of a search request, a missing filter matches everything
func filterOf[F any](filter *F) F {
	if filter == nil {
		var empty F
		return empty
	}
	return *filter
}

func notFoundDetail(resource, keyName, key string) string {
	return fmt.Sprintf("%v with %v '%v' not found", resource, keyName, key)
}
