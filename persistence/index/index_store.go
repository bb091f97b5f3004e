// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package index

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/camunda/camunda-sub002/common/log"
	"github.com/camunda/camunda-sub002/common/log/tag"
	"github.com/camunda/camunda-sub002/config"
	"github.com/camunda/camunda-sub002/extensions"
	"github.com/camunda/camunda-sub002/persistence"
	"github.com/camunda/camunda-sub002/persistence/data_models"
)

type sqlIndexStoreImpl struct {
	session extensions.SQLDBSession
	logger  log.Logger
}

var _ persistence.IndexStore = (*sqlIndexStoreImpl)(nil)

func NewSQLIndexStore(sqlConfig config.SQL, logger log.Logger) (persistence.IndexStore, error) {
	session, err := extensions.NewSQLSession(&sqlConfig)
	if err != nil {
		return nil, err
	}
	return NewSQLIndexStoreWithSession(session, logger), nil
}

func NewSQLIndexStoreWithSession(session extensions.SQLDBSession, logger log.Logger) persistence.IndexStore {
	return &sqlIndexStoreImpl{
		session: session,
		logger:  logger,
	}
}

func (p sqlIndexStoreImpl) Close() error {
	return p.session.Close()
}

func (p sqlIndexStoreImpl) IsRetryableError(err error) bool {
	return p.session.IsTimeoutError(err) || p.session.IsThrottlingError(err)
}

func (p sqlIndexStoreImpl) ApplyRecords(ctx context.Context, records []data_models.ExportRecord) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := p.session.StartTransaction(ctx)
	if err != nil {
		return err
	}

	err = p.doApplyRecordsTx(ctx, tx, records)
	if err != nil {
		err2 := tx.Rollback()
		if err2 != nil {
			p.logger.Error("error on rollback transaction", tag.Error(err2))
		}
		return err
	}
	err = tx.Commit()
	if err != nil {
		p.logger.Error("error on committing transaction", tag.Error(err))
		return err
	}
	return nil
}

func (p sqlIndexStoreImpl) doApplyRecordsTx(
	ctx context.Context, tx extensions.SQLTransaction, records []data_models.ExportRecord,
) error {
	for _, record := range records {
		var err error
		switch record.Intent {
		case data_models.RecordIntentUpsert:
			err = tx.UpsertSearchRecord(ctx, extensions.SearchRecordRow{
				Kind:           record.Kind.String(),
				RecordKey:      record.Key,
				TenantId:       record.TenantId,
				State:          record.State,
				ParentKey:      record.ParentKey,
				Payload:        string(record.Payload),
				ExportPosition: record.Position,
				UpdatedAt:      record.Timestamp.UnixMilli(),
			})
		case data_models.RecordIntentDelete:
			err = tx.DeleteSearchRecord(ctx, record.Kind.String(), record.Key)
		case data_models.RecordIntentDeleteChildren:
			err = tx.DeleteSearchRecordsByParent(ctx, record.Kind.String(), record.Key)
		default:
			err = fmt.Errorf("unsupported intent of record %v", record)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func getRecord[T any](
	ctx context.Context, p sqlIndexStoreImpl, kind data_models.RecordKind, key string, tenants []string,
) (*T, error) {
	row, err := p.session.SelectSearchRecord(ctx, kind.String(), key)
	if err != nil {
		if p.session.IsNotFoundError(err) {
			return nil, persistence.NewNotFoundError("%v with key '%v'", kind, key)
		}
		return nil, err
	}
	if tenants != nil && !slices.Contains(tenants, row.TenantId) {
		return nil, persistence.NewNotFoundError("%v with key '%v'", kind, key)
	}
	var value T
	if err := json.Unmarshal([]byte(row.Payload), &value); err != nil {
		return nil, fmt.Errorf("corrupted %v record %v: %w", kind, key, err)
	}
	return &value, nil
}

func searchRecords[T any](
	ctx context.Context, p sqlIndexStoreImpl, query extensions.SearchRecordQuery, match func(T) bool,
) ([]T, error) {
	rows, err := p.session.SelectSearchRecords(ctx, query)
	if err != nil {
		return nil, err
	}
	items := make([]T, 0, len(rows))
	for _, row := range rows {
		var value T
		if err := json.Unmarshal([]byte(row.Payload), &value); err != nil {
			return nil, fmt.Errorf("corrupted %v record %v: %w", query.Kind, row.RecordKey, err)
		}
		if match == nil || match(value) {
			items = append(items, value)
		}
	}
	return items, nil
}

// tenantScope narrows the allowed tenants by the tenant a filter asks for
func tenantScope(tenants []string, tenantId string) []string {
	if tenantId == "" {
		return tenants
	}
	if tenants == nil || slices.Contains(tenants, tenantId) {
		return []string{tenantId}
	}
	return []string{}
}

func keyScope(key string) []string {
	if key == "" {
		return nil
	}
	return []string{key}
}

func (p sqlIndexStoreImpl) GetProcessDefinition(
	ctx context.Context, key string, tenants []string,
) (*apimodel.ProcessDefinition, error) {
	return getRecord[apimodel.ProcessDefinition](ctx, p, data_models.RecordKindProcessDefinition, key, tenants)
}

func (p sqlIndexStoreImpl) GetProcessDefinitionXML(ctx context.Context, key string, tenants []string) (string, error) {
	xml, err := getRecord[string](ctx, p, data_models.RecordKindProcessDefinitionXML, key, tenants)
	if err != nil {
		return "", err
	}
	return *xml, nil
}

func (p sqlIndexStoreImpl) SearchProcessDefinitions(
	ctx context.Context, filter apimodel.ProcessDefinitionFilter, tenants []string,
) ([]apimodel.ProcessDefinition, error) {
	return searchRecords(ctx, p, extensions.SearchRecordQuery{
		Kind:       data_models.RecordKindProcessDefinition.String(),
		RecordKeys: keyScope(filter.ProcessDefinitionKey),
		TenantIds:  tenantScope(tenants, filter.TenantId),
	}, processDefinitionMatcher(filter))
}

func (p sqlIndexStoreImpl) GetProcessInstance(
	ctx context.Context, key string, tenants []string,
) (*apimodel.ProcessInstance, error) {
	return getRecord[apimodel.ProcessInstance](ctx, p, data_models.RecordKindProcessInstance, key, tenants)
}

func (p sqlIndexStoreImpl) SearchProcessInstances(
	ctx context.Context, filter apimodel.ProcessInstanceFilter, tenants []string,
) ([]apimodel.ProcessInstance, error) {
	keys := keyScope(filter.ProcessInstanceKey)
	for _, variableFilter := range filter.Variables {
		variables, err := p.SearchVariables(ctx, apimodel.VariableFilter{
			Name:  variableFilter.Name,
			Value: variableFilter.Value,
		}, tenants)
		if err != nil {
			return nil, err
		}
		keys = intersectKeys(keys, processInstanceKeysOf(variables))
	}

	return searchRecords(ctx, p, extensions.SearchRecordQuery{
		Kind:       data_models.RecordKindProcessInstance.String(),
		RecordKeys: keys,
		TenantIds:  tenantScope(tenants, filter.TenantId),
		State:      string(filter.State),
	}, processInstanceMatcher(filter))
}

func (p sqlIndexStoreImpl) SearchJobs(
	ctx context.Context, filter apimodel.JobFilter, tenants []string,
) ([]apimodel.Job, error) {
	return searchRecords(ctx, p, extensions.SearchRecordQuery{
		Kind:       data_models.RecordKindJob.String(),
		RecordKeys: keyScope(filter.JobKey),
		TenantIds:  tenantScope(tenants, filter.TenantId),
		State:      string(filter.State),
		ParentKey:  filter.ProcessInstanceKey,
	}, jobMatcher(filter))
}

func (p sqlIndexStoreImpl) GetVariable(ctx context.Context, key string, tenants []string) (*apimodel.Variable, error) {
	return getRecord[apimodel.Variable](ctx, p, data_models.RecordKindVariable, key, tenants)
}

func (p sqlIndexStoreImpl) SearchVariables(
	ctx context.Context, filter apimodel.VariableFilter, tenants []string,
) ([]apimodel.Variable, error) {
	return searchRecords(ctx, p, extensions.SearchRecordQuery{
		Kind:       data_models.RecordKindVariable.String(),
		RecordKeys: keyScope(filter.VariableKey),
		TenantIds:  tenantScope(tenants, filter.TenantId),
		ParentKey:  filter.ProcessInstanceKey,
	}, variableMatcher(filter))
}

func (p sqlIndexStoreImpl) GetBatchOperation(ctx context.Context, key string) (*apimodel.BatchOperation, error) {
	return getRecord[apimodel.BatchOperation](ctx, p, data_models.RecordKindBatchOperation, key, nil)
}

func (p sqlIndexStoreImpl) SearchBatchOperations(
	ctx context.Context, filter apimodel.BatchOperationFilter,
) ([]apimodel.BatchOperation, error) {
	return searchRecords(ctx, p, extensions.SearchRecordQuery{
		Kind:       data_models.RecordKindBatchOperation.String(),
		RecordKeys: keyScope(filter.BatchOperationKey),
		State:      string(filter.State),
	}, batchOperationMatcher(filter))
}

func (p sqlIndexStoreImpl) SearchBatchOperationItems(
	ctx context.Context, filter apimodel.BatchOperationItemFilter,
) ([]apimodel.BatchOperationItem, error) {
	return searchRecords(ctx, p, extensions.SearchRecordQuery{
		Kind:      data_models.RecordKindBatchOperationItem.String(),
		State:     string(filter.State),
		ParentKey: filter.BatchOperationKey,
	}, batchOperationItemMatcher(filter))
}

func (p sqlIndexStoreImpl) GetUser(ctx context.Context, username string) (*apimodel.User, error) {
	return getRecord[apimodel.User](ctx, p, data_models.RecordKindUser, username, nil)
}

func (p sqlIndexStoreImpl) SearchUsers(ctx context.Context, filter apimodel.UserFilter) ([]apimodel.User, error) {
	return searchRecords(ctx, p, extensions.SearchRecordQuery{
		Kind:       data_models.RecordKindUser.String(),
		RecordKeys: keyScope(filter.Username),
	}, userMatcher(filter))
}

func (p sqlIndexStoreImpl) GetRole(ctx context.Context, roleId string) (*apimodel.Role, error) {
	return getRecord[apimodel.Role](ctx, p, data_models.RecordKindRole, roleId, nil)
}

func (p sqlIndexStoreImpl) SearchRoles(ctx context.Context, filter apimodel.RoleFilter) ([]apimodel.Role, error) {
	return searchRecords(ctx, p, extensions.SearchRecordQuery{
		Kind:       data_models.RecordKindRole.String(),
		RecordKeys: keyScope(filter.RoleId),
	}, func(role apimodel.Role) bool {
		return matches(filter.Name, role.Name)
	})
}

func (p sqlIndexStoreImpl) GetGroup(ctx context.Context, groupId string) (*apimodel.Group, error) {
	return getRecord[apimodel.Group](ctx, p, data_models.RecordKindGroup, groupId, nil)
}

func (p sqlIndexStoreImpl) SearchGroups(ctx context.Context, filter apimodel.GroupFilter) ([]apimodel.Group, error) {
	return searchRecords(ctx, p, extensions.SearchRecordQuery{
		Kind:       data_models.RecordKindGroup.String(),
		RecordKeys: keyScope(filter.GroupId),
	}, func(group apimodel.Group) bool {
		return matches(filter.Name, group.Name)
	})
}

func (p sqlIndexStoreImpl) GetTenant(ctx context.Context, tenantId string) (*apimodel.Tenant, error) {
	return getRecord[apimodel.Tenant](ctx, p, data_models.RecordKindTenant, tenantId, nil)
}

func (p sqlIndexStoreImpl) SearchTenants(ctx context.Context, filter apimodel.TenantFilter) ([]apimodel.Tenant, error) {
	return searchRecords(ctx, p, extensions.SearchRecordQuery{
		Kind:       data_models.RecordKindTenant.String(),
		RecordKeys: keyScope(filter.TenantId),
	}, func(tenant apimodel.Tenant) bool {
		return matches(filter.Name, tenant.Name)
	})
}

func (p sqlIndexStoreImpl) GetMappingRule(ctx context.Context, mappingRuleId string) (*apimodel.MappingRule, error) {
	return getRecord[apimodel.MappingRule](ctx, p, data_models.RecordKindMappingRule, mappingRuleId, nil)
}

func (p sqlIndexStoreImpl) SearchMappingRules(
	ctx context.Context, filter apimodel.MappingRuleFilter,
) ([]apimodel.MappingRule, error) {
	return searchRecords(ctx, p, extensions.SearchRecordQuery{
		Kind:       data_models.RecordKindMappingRule.String(),
		RecordKeys: keyScope(filter.MappingRuleId),
	}, mappingRuleMatcher(filter))
}

func (p sqlIndexStoreImpl) SearchMembers(
	ctx context.Context, kind data_models.RecordKind, ownerId string, memberType data_models.MemberType,
) ([]string, error) {
	memberships, err := searchRecords(ctx, p, extensions.SearchRecordQuery{
		Kind:      kind.String(),
		ParentKey: ownerId,
	}, func(m data_models.Membership) bool {
		return m.MemberType == memberType
	})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.MemberId)
	}
	return ids, nil
}
