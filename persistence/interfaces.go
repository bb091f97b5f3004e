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

package persistence

import (
	"context"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/camunda/camunda-sub002/persistence/data_models"
)

type (
	// RecordSink receives the export records of each committed primary state change, in commit order
	RecordSink interface {
		Append(records []data_models.ExportRecord)
	}

	// IndexStore is the searchable, eventually consistent copy of the primary state.
	// The tenants argument restricts the result to those tenants; nil means all tenants.
	// Get operations return an error matching ErrNotFound when nothing is visible under the key.
	IndexStore interface {
		Close() error

		ApplyRecords(ctx context.Context, records []data_models.ExportRecord) error
		// IsRetryableError tells a transient failure of ApplyRecords, such as a timeout or throttling,
		// from a permanent one
		IsRetryableError(err error) bool

		GetProcessDefinition(ctx context.Context, key string, tenants []string) (*apimodel.ProcessDefinition, error)
		GetProcessDefinitionXML(ctx context.Context, key string, tenants []string) (string, error)
		SearchProcessDefinitions(
			ctx context.Context, filter apimodel.ProcessDefinitionFilter, tenants []string,
		) ([]apimodel.ProcessDefinition, error)

		GetProcessInstance(ctx context.Context, key string, tenants []string) (*apimodel.ProcessInstance, error)
		SearchProcessInstances(
			ctx context.Context, filter apimodel.ProcessInstanceFilter, tenants []string,
		) ([]apimodel.ProcessInstance, error)
		SearchJobs(ctx context.Context, filter apimodel.JobFilter, tenants []string) ([]apimodel.Job, error)
		GetVariable(ctx context.Context, key string, tenants []string) (*apimodel.Variable, error)
		SearchVariables(ctx context.Context, filter apimodel.VariableFilter, tenants []string) ([]apimodel.Variable, error)

		GetBatchOperation(ctx context.Context, key string) (*apimodel.BatchOperation, error)
		SearchBatchOperations(ctx context.Context, filter apimodel.BatchOperationFilter) ([]apimodel.BatchOperation, error)
		SearchBatchOperationItems(
			ctx context.Context, filter apimodel.BatchOperationItemFilter,
		) ([]apimodel.BatchOperationItem, error)

		GetUser(ctx context.Context, username string) (*apimodel.User, error)
		SearchUsers(ctx context.Context, filter apimodel.UserFilter) ([]apimodel.User, error)
		GetRole(ctx context.Context, roleId string) (*apimodel.Role, error)
		SearchRoles(ctx context.Context, filter apimodel.RoleFilter) ([]apimodel.Role, error)
		GetGroup(ctx context.Context, groupId string) (*apimodel.Group, error)
		SearchGroups(ctx context.Context, filter apimodel.GroupFilter) ([]apimodel.Group, error)
		GetTenant(ctx context.Context, tenantId string) (*apimodel.Tenant, error)
		SearchTenants(ctx context.Context, filter apimodel.TenantFilter) ([]apimodel.Tenant, error)
		GetMappingRule(ctx context.Context, mappingRuleId string) (*apimodel.MappingRule, error)
		SearchMappingRules(ctx context.Context, filter apimodel.MappingRuleFilter) ([]apimodel.MappingRule, error)
		// SearchMembers returns the ids of the members of the given type, in assignment order
		SearchMembers(
			ctx context.Context, kind data_models.RecordKind, ownerId string, memberType data_models.MemberType,
		) ([]string, error)
	}

	// DocumentStore keeps uploaded documents until they expire
	DocumentStore interface {
		CreateDocument(ctx context.Context, request data_models.CreateDocumentRequest) (*apimodel.DocumentReference, error)
		// GetDocument returns ErrNotFound for unknown or expired documents
		GetDocument(ctx context.Context, storeId, documentId string) (*data_models.Document, error)
		CreateDocumentLink(ctx context.Context, request data_models.CreateDocumentLinkRequest) (*apimodel.DocumentLink, error)
		DeleteDocument(ctx context.Context, storeId, documentId string) error
		Close() error
	}
)
