// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: BUSL-1.1

package api

import (
	"context"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/camunda/camunda-sub002/engine"
	"github.com/camunda/camunda-sub002/persistence/data_models"
)

type Server interface {
	// Start will start running on the background
	Start() error
	Stop(ctx context.Context) error
	// Addr is the address the server listens on, known once started
	Addr() string
}

// Service is the interface of API service, which decoupled from REST server framework like Gin
// So that users can choose to use other REST frameworks to serve requests
type Service interface {
	Topology(ctx context.Context) *apimodel.TopologyResponse

	Deploy(ctx context.Context, caller Caller, tenantId string, resources []engine.DeploymentResource) (
		*apimodel.DeploymentResponse, *ErrorWithStatus)
	GetProcessDefinition(ctx context.Context, caller Caller, key string) (*apimodel.ProcessDefinition, *ErrorWithStatus)
	GetProcessDefinitionXML(ctx context.Context, caller Caller, key string) (string, *ErrorWithStatus)
	SearchProcessDefinitions(ctx context.Context, caller Caller, request apimodel.ProcessDefinitionSearchRequest) (
		*apimodel.SearchResponse[apimodel.ProcessDefinition], *ErrorWithStatus)

	CreateProcessInstance(ctx context.Context, caller Caller, request apimodel.CreateProcessInstanceRequest) (
		*apimodel.CreateProcessInstanceResponse, *ErrorWithStatus)
	GetProcessInstance(ctx context.Context, caller Caller, key string) (*apimodel.ProcessInstance, *ErrorWithStatus)
	SearchProcessInstances(ctx context.Context, caller Caller, request apimodel.ProcessInstanceSearchRequest) (
		*apimodel.SearchResponse[apimodel.ProcessInstance], *ErrorWithStatus)
	CancelProcessInstance(ctx context.Context, caller Caller, key string) *ErrorWithStatus
	SearchJobs(ctx context.Context, caller Caller, request apimodel.JobSearchRequest) (
		*apimodel.SearchResponse[apimodel.Job], *ErrorWithStatus)
	CompleteJob(ctx context.Context, caller Caller, key string, request apimodel.JobCompletionRequest) *ErrorWithStatus
	SetVariables(ctx context.Context, caller Caller, elementInstanceKey string, request apimodel.SetVariableRequest) *ErrorWithStatus
	GetVariable(ctx context.Context, caller Caller, key string) (*apimodel.Variable, *ErrorWithStatus)
	SearchVariables(ctx context.Context, caller Caller, request apimodel.VariableSearchRequest) (
		*apimodel.SearchResponse[apimodel.Variable], *ErrorWithStatus)

	CreateBatchOperation(
		ctx context.Context, caller Caller, operationType apimodel.BatchOperationType,
		request apimodel.ProcessInstanceBatchRequest,
	) (*apimodel.BatchOperationCreatedResult, *ErrorWithStatus)
	GetBatchOperation(ctx context.Context, caller Caller, key string) (*apimodel.BatchOperation, *ErrorWithStatus)
	SearchBatchOperations(ctx context.Context, caller Caller, request apimodel.BatchOperationSearchRequest) (
		*apimodel.SearchResponse[apimodel.BatchOperation], *ErrorWithStatus)
	SearchBatchOperationItems(ctx context.Context, caller Caller, request apimodel.BatchOperationItemSearchRequest) (
		*apimodel.SearchResponse[apimodel.BatchOperationItem], *ErrorWithStatus)
	ChangeBatchOperation(ctx context.Context, caller Caller, key string, change BatchOperationChange) *ErrorWithStatus

	CreateUser(ctx context.Context, caller Caller, request apimodel.UserRequest) (*apimodel.User, *ErrorWithStatus)
	GetUser(ctx context.Context, caller Caller, username string) (*apimodel.User, *ErrorWithStatus)
	UpdateUser(ctx context.Context, caller Caller, username string, request apimodel.UserUpdateRequest) (
		*apimodel.User, *ErrorWithStatus)
	DeleteUser(ctx context.Context, caller Caller, username string) *ErrorWithStatus
	SearchUsers(ctx context.Context, caller Caller, request apimodel.UserSearchRequest) (
		*apimodel.SearchResponse[apimodel.User], *ErrorWithStatus)

	CreateRole(ctx context.Context, caller Caller, request apimodel.RoleCreateRequest) (*apimodel.Role, *ErrorWithStatus)
	GetRole(ctx context.Context, caller Caller, roleId string) (*apimodel.Role, *ErrorWithStatus)
	UpdateRole(ctx context.Context, caller Caller, roleId string, request apimodel.RoleUpdateRequest) (
		*apimodel.Role, *ErrorWithStatus)
	DeleteRole(ctx context.Context, caller Caller, roleId string) *ErrorWithStatus
	SearchRoles(ctx context.Context, caller Caller, request apimodel.RoleSearchRequest) (
		*apimodel.SearchResponse[apimodel.Role], *ErrorWithStatus)

	CreateGroup(ctx context.Context, caller Caller, request apimodel.GroupCreateRequest) (*apimodel.Group, *ErrorWithStatus)
	GetGroup(ctx context.Context, caller Caller, groupId string) (*apimodel.Group, *ErrorWithStatus)
	UpdateGroup(ctx context.Context, caller Caller, groupId string, request apimodel.GroupUpdateRequest) (
		*apimodel.Group, *ErrorWithStatus)
	DeleteGroup(ctx context.Context, caller Caller, groupId string) *ErrorWithStatus
	SearchGroups(ctx context.Context, caller Caller, request apimodel.GroupSearchRequest) (
		*apimodel.SearchResponse[apimodel.Group], *ErrorWithStatus)

	CreateTenant(ctx context.Context, caller Caller, request apimodel.TenantCreateRequest) (*apimodel.Tenant, *ErrorWithStatus)
	GetTenant(ctx context.Context, caller Caller, tenantId string) (*apimodel.Tenant, *ErrorWithStatus)
	UpdateTenant(ctx context.Context, caller Caller, tenantId string, request apimodel.TenantUpdateRequest) (
		*apimodel.Tenant, *ErrorWithStatus)
	DeleteTenant(ctx context.Context, caller Caller, tenantId string) *ErrorWithStatus
	SearchTenants(ctx context.Context, caller Caller, request apimodel.TenantSearchRequest) (
		*apimodel.SearchResponse[apimodel.Tenant], *ErrorWithStatus)

	CreateMappingRule(ctx context.Context, caller Caller, request apimodel.MappingRuleCreateRequest) (
		*apimodel.MappingRule, *ErrorWithStatus)
	GetMappingRule(ctx context.Context, caller Caller, mappingRuleId string) (*apimodel.MappingRule, *ErrorWithStatus)
	UpdateMappingRule(ctx context.Context, caller Caller, mappingRuleId string, request apimodel.MappingRuleUpdateRequest) (
		*apimodel.MappingRule, *ErrorWithStatus)
	DeleteMappingRule(ctx context.Context, caller Caller, mappingRuleId string) *ErrorWithStatus
	SearchMappingRules(ctx context.Context, caller Caller, request apimodel.MappingRuleSearchRequest) (
		*apimodel.SearchResponse[apimodel.MappingRule], *ErrorWithStatus)

	AssignMember(ctx context.Context, caller Caller, member Membership) *ErrorWithStatus
	UnassignMember(ctx context.Context, caller Caller, member Membership) *ErrorWithStatus
	SearchUserMembers(
		ctx context.Context, caller Caller, owner engine.Owner, ownerId string, request apimodel.MemberUserSearchRequest,
	) (*apimodel.SearchResponse[apimodel.MemberUser], *ErrorWithStatus)

	CreateDocument(ctx context.Context, caller Caller, request data_models.CreateDocumentRequest) (
		*apimodel.DocumentReference, *ErrorWithStatus)
	GetDocument(ctx context.Context, caller Caller, storeId, documentId, contentHash string) (
		*data_models.Document, *ErrorWithStatus)
	CreateDocumentLink(ctx context.Context, caller Caller, request data_models.CreateDocumentLinkRequest) (
		*apimodel.DocumentLink, *ErrorWithStatus)
	DeleteDocument(ctx context.Context, caller Caller, storeId, documentId string) *ErrorWithStatus
}

// Membership is the assignment of a member to an owner, e.g. user "demo" to role "admin"
type Membership struct {
	Owner      engine.Owner
	OwnerId    string
	MemberType data_models.MemberType
	MemberId   string
}

type BatchOperationChange string

const (
	BatchOperationCancellation BatchOperationChange = "cancellation"
	BatchOperationSuspension   BatchOperationChange = "suspension"
	BatchOperationResumption   BatchOperationChange = "resumption"
)
