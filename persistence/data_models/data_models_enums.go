// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: BUSL-1.1

package data_models

type RecordKind string

const (
	RecordKindProcessDefinition    RecordKind = "process-definition"
	RecordKindProcessDefinitionXML RecordKind = "process-definition-xml"
	RecordKindProcessInstance      RecordKind = "process-instance"
	RecordKindJob                  RecordKind = "job"
	RecordKindVariable             RecordKind = "variable"
	RecordKindBatchOperation       RecordKind = "batch-operation"
	RecordKindBatchOperationItem   RecordKind = "batch-operation-item"
	RecordKindUser                 RecordKind = "user"
	RecordKindRole                 RecordKind = "role"
	RecordKindGroup                RecordKind = "group"
	RecordKindTenant               RecordKind = "tenant"
	RecordKindMappingRule          RecordKind = "mapping-rule"
	RecordKindRoleMember           RecordKind = "role-member"
	RecordKindGroupMember          RecordKind = "group-member"
	RecordKindTenantMember         RecordKind = "tenant-member"
)

func (k RecordKind) String() string {
	return string(k)
}

type RecordIntent int32

const (
	RecordIntentUndefined RecordIntent = 0
	// RecordIntentUpsert writes the record payload under its key
	RecordIntentUpsert RecordIntent = 1
	// RecordIntentDelete removes the record with the key
	RecordIntentDelete RecordIntent = 2
	// RecordIntentDeleteChildren removes every record of the kind whose parent is the key
	RecordIntentDeleteChildren RecordIntent = 3
)

func (e RecordIntent) String() string {
	switch e {
	case RecordIntentUpsert:
		return "UPSERT"
	case RecordIntentDelete:
		return "DELETE"
	case RecordIntentDeleteChildren:
		return "DELETE_CHILDREN"
	default:
		return "UNDEFINED"
	}
}

type MemberType string

const (
	MemberTypeUser        MemberType = "USER"
	MemberTypeGroup       MemberType = "GROUP"
	MemberTypeRole        MemberType = "ROLE"
	MemberTypeMappingRule MemberType = "MAPPING_RULE"
)
