// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package primary

import (
	"strconv"
	"time"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/camunda/camunda-sub002/bpmn"
)

type (
	ProcessDefinition struct {
		Key           int64
		DeploymentKey int64
		ProcessId     string
		Name          string
		Version       int
		ResourceName  string
		TenantId      string
		XML           string
		Model         *bpmn.Model
	}

	ProcessInstance struct {
		Key        int64
		Definition *ProcessDefinition
		State      apimodel.ProcessInstanceState
		TenantId   string
		StartDate  time.Time
		EndDate    time.Time
		// ElementIndex is the element of the model the instance waits in
		ElementIndex int
		// ElementInstanceKey identifies the current activation of that element
		ElementInstanceKey int64
	}

	Job struct {
		Key                int64
		Type               string
		ElementId          string
		ElementInstanceKey int64
		ProcessInstance    *ProcessInstance
		State              apimodel.JobState
		Retries            int
	}

	Variable struct {
		Key  int64
		Name string
		// Value is the JSON encoding of the variable value
		Value              string
		ScopeKey           int64
		ProcessInstanceKey int64
		TenantId           string
	}

	User struct {
		Username string
		Name     string
		Email    string
		// PasswordHash is a bcrypt hash, never exported to the index
		PasswordHash []byte
	}

	// Entity is a role, group or tenant
	Entity struct {
		Id          string
		Name        string
		Description string
	}

	MappingRule struct {
		Id         string
		ClaimName  string
		ClaimValue string
		Name       string
	}

	BatchOperation struct {
		Key    int64
		Type   apimodel.BatchOperationType
		State  apimodel.BatchOperationState
		Filter apimodel.ProcessInstanceFilter
		// Tenants the creator could access, nil for all
		Tenants   []string
		StartDate time.Time
		EndDate   time.Time
		// Items is nil until the executor resolved the filter
		Items []*BatchOperationItem
		// Next is the index of the next item to process
		Next int
	}

	BatchOperationItem struct {
		Key                int64
		ProcessInstanceKey int64
		State              apimodel.BatchOperationItemState
		ProcessedDate      time.Time
		ErrorMessage       string
	}
)

func FormatKey(key int64) string {
	return strconv.FormatInt(key, 10)
}

// ParseKey returns false for anything but a positive decimal key
func ParseKey(key string) (int64, bool) {
	value, err := strconv.ParseInt(key, 10, 64)
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func (d *ProcessDefinition) ToAPI() apimodel.ProcessDefinition {
	return apimodel.ProcessDefinition{
		ProcessDefinitionKey: FormatKey(d.Key),
		ProcessDefinitionId:  d.ProcessId,
		Name:                 d.Name,
		Version:              d.Version,
		ResourceName:         d.ResourceName,
		TenantId:             d.TenantId,
	}
}

func (pi *ProcessInstance) ToAPI() apimodel.ProcessInstance {
	return apimodel.ProcessInstance{
		ProcessInstanceKey:       FormatKey(pi.Key),
		ProcessDefinitionId:      pi.Definition.ProcessId,
		ProcessDefinitionName:    pi.Definition.Name,
		ProcessDefinitionVersion: pi.Definition.Version,
		ProcessDefinitionKey:     FormatKey(pi.Definition.Key),
		State:                    pi.State,
		StartDate:                formatDate(pi.StartDate),
		EndDate:                  formatDate(pi.EndDate),
		TenantId:                 pi.TenantId,
	}
}

// CurrentElement is the element the instance waits in
func (pi *ProcessInstance) CurrentElement() (bpmn.Element, bool) {
	elements := pi.Definition.Model.Elements
	if pi.ElementIndex < 0 || pi.ElementIndex >= len(elements) {
		return bpmn.Element{}, false
	}
	return elements[pi.ElementIndex], true
}

func (j *Job) ToAPI() apimodel.Job {
	return apimodel.Job{
		JobKey:               FormatKey(j.Key),
		Type:                 j.Type,
		ElementId:            j.ElementId,
		ElementInstanceKey:   FormatKey(j.ElementInstanceKey),
		ProcessInstanceKey:   FormatKey(j.ProcessInstance.Key),
		ProcessDefinitionId:  j.ProcessInstance.Definition.ProcessId,
		ProcessDefinitionKey: FormatKey(j.ProcessInstance.Definition.Key),
		State:                j.State,
		Retries:              j.Retries,
		TenantId:             j.ProcessInstance.TenantId,
	}
}

func (v *Variable) ToAPI() apimodel.Variable {
	return apimodel.Variable{
		VariableKey:        FormatKey(v.Key),
		Name:               v.Name,
		Value:              v.Value,
		ProcessInstanceKey: FormatKey(v.ProcessInstanceKey),
		ScopeKey:           FormatKey(v.ScopeKey),
		TenantId:           v.TenantId,
	}
}

func (u *User) ToAPI() apimodel.User {
	return apimodel.User{Username: u.Username, Name: u.Name, Email: u.Email}
}

func (e *Entity) ToRole() apimodel.Role {
	return apimodel.Role{RoleId: e.Id, Name: e.Name, Description: e.Description}
}

func (e *Entity) ToGroup() apimodel.Group {
	return apimodel.Group{GroupId: e.Id, Name: e.Name, Description: e.Description}
}

func (e *Entity) ToTenant() apimodel.Tenant {
	return apimodel.Tenant{TenantId: e.Id, Name: e.Name, Description: e.Description}
}

func (m *MappingRule) ToAPI() apimodel.MappingRule {
	return apimodel.MappingRule{
		MappingRuleId: m.Id,
		ClaimName:     m.ClaimName,
		ClaimValue:    m.ClaimValue,
		Name:          m.Name,
	}
}

func (b *BatchOperation) ToAPI() apimodel.BatchOperation {
	result := apimodel.BatchOperation{
		BatchOperationKey:    FormatKey(b.Key),
		BatchOperationType:   b.Type,
		State:                b.State,
		StartDate:            formatDate(b.StartDate),
		EndDate:              formatDate(b.EndDate),
		OperationsTotalCount: len(b.Items),
	}
	for _, item := range b.Items {
		switch item.State {
		case apimodel.BatchOperationItemStateCompleted:
			result.OperationsCompletedCount++
		case apimodel.BatchOperationItemStateFailed:
			result.OperationsFailedCount++
		}
	}
	return result
}

func (b *BatchOperation) ItemToAPI(item *BatchOperationItem) apimodel.BatchOperationItem {
	return apimodel.BatchOperationItem{
		BatchOperationKey:  FormatKey(b.Key),
		ItemKey:            FormatKey(item.Key),
		ProcessInstanceKey: FormatKey(item.ProcessInstanceKey),
		OperationType:      b.Type,
		State:              item.State,
		ProcessedDate:      formatDate(item.ProcessedDate),
		ErrorMessage:       item.ErrorMessage,
	}
}
