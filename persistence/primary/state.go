// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package primary

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/camunda/camunda-sub002/persistence/data_models"
)

// FirstKey is the first key handed out, the first key of partition 1
const FirstKey int64 = 2251799813685249

// State is the authoritative state of the emulated cluster.
// It is only accessed through Store.Update and Store.View.
// Every Put and Delete queues an export record, shipped when the update returns.
type State struct {
	clock    func() time.Time
	nextKey  int64
	position int64
	pending  []data_models.ExportRecord

	definitions      map[int64]*ProcessDefinition
	instances        map[int64]*ProcessInstance
	jobs             map[int64]*Job
	variables        map[int64]*Variable
	scopes           map[int64]map[string]*Variable
	users            map[string]*User
	roles            map[string]*Entity
	groups           map[string]*Entity
	tenants          map[string]*Entity
	mappingRules     map[string]*MappingRule
	batchOperations  map[int64]*BatchOperation
	deploymentsCount int

	RoleMembers   *Memberships
	GroupMembers  *Memberships
	TenantMembers *Memberships
}

func newState(clock func() time.Time) *State {
	s := &State{
		clock:           clock,
		nextKey:         FirstKey,
		definitions:     map[int64]*ProcessDefinition{},
		instances:       map[int64]*ProcessInstance{},
		jobs:            map[int64]*Job{},
		variables:       map[int64]*Variable{},
		scopes:          map[int64]map[string]*Variable{},
		users:           map[string]*User{},
		roles:           map[string]*Entity{},
		groups:          map[string]*Entity{},
		tenants:         map[string]*Entity{},
		mappingRules:    map[string]*MappingRule{},
		batchOperations: map[int64]*BatchOperation{},
	}
	s.RoleMembers = newMemberships(s, data_models.RecordKindRoleMember)
	s.GroupMembers = newMemberships(s, data_models.RecordKindGroupMember)
	s.TenantMembers = newMemberships(s, data_models.RecordKindTenantMember)
	return s
}

func (s *State) Now() time.Time {
	return s.clock()
}

// NextKey hands out the next unique key
func (s *State) NextKey() int64 {
	key := s.nextKey
	s.nextKey++
	return key
}

func (s *State) emit(record data_models.ExportRecord) {
	s.position++
	record.Position = s.position
	record.Timestamp = s.clock()
	s.pending = append(s.pending, record)
}

func (s *State) emitUpsert(kind data_models.RecordKind, key, tenantId, state, parentKey string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		// all exported values are plain structs
		panic(fmt.Sprintf("cannot encode %v record %v: %v", kind, key, err))
	}
	s.emit(data_models.ExportRecord{
		Kind:      kind,
		Intent:    data_models.RecordIntentUpsert,
		Key:       key,
		TenantId:  tenantId,
		State:     state,
		ParentKey: parentKey,
		Payload:   payload,
	})
}

func (s *State) emitDelete(kind data_models.RecordKind, key string) {
	s.emit(data_models.ExportRecord{Kind: kind, Intent: data_models.RecordIntentDelete, Key: key})
}

func (s *State) emitDeleteChildren(kind data_models.RecordKind, parentKey string) {
	s.emit(data_models.ExportRecord{Kind: kind, Intent: data_models.RecordIntentDeleteChildren, Key: parentKey})
}

func (s *State) takePending() []data_models.ExportRecord {
	records := s.pending
	s.pending = nil
	return records
}

// process definitions

func (s *State) ProcessDefinition(key int64) (*ProcessDefinition, bool) {
	d, ok := s.definitions[key]
	return d, ok
}

// LatestProcessDefinition returns the highest version of the process in the tenant
func (s *State) LatestProcessDefinition(processId, tenantId string) (*ProcessDefinition, bool) {
	var latest *ProcessDefinition
	for _, d := range s.definitions {
		if d.ProcessId == processId && d.TenantId == tenantId && (latest == nil || d.Version > latest.Version) {
			latest = d
		}
	}
	return latest, latest != nil
}

func (s *State) NextDeploymentNumber() int {
	s.deploymentsCount++
	return s.deploymentsCount
}

func (s *State) PutProcessDefinition(d *ProcessDefinition) {
	s.definitions[d.Key] = d
	key := FormatKey(d.Key)
	s.emitUpsert(data_models.RecordKindProcessDefinition, key, d.TenantId, "", "", d.ToAPI())
	s.emitUpsert(data_models.RecordKindProcessDefinitionXML, key, d.TenantId, "", "", d.XML)
}

// process instances

func (s *State) ProcessInstance(key int64) (*ProcessInstance, bool) {
	pi, ok := s.instances[key]
	return pi, ok
}

// ProcessInstanceOfElement returns the active instance currently waiting in the element instance
func (s *State) ProcessInstanceOfElement(elementInstanceKey int64) (*ProcessInstance, bool) {
	for _, pi := range s.instances {
		if pi.ElementInstanceKey == elementInstanceKey && pi.State == apimodel.ProcessInstanceStateActive {
			return pi, true
		}
	}
	return nil, false
}

func (s *State) PutProcessInstance(pi *ProcessInstance) {
	s.instances[pi.Key] = pi
	s.emitUpsert(data_models.RecordKindProcessInstance, FormatKey(pi.Key), pi.TenantId, string(pi.State), "", pi.ToAPI())
}

// DeleteProcessInstance removes the instance with its jobs and variables
func (s *State) DeleteProcessInstance(key int64) {
	delete(s.instances, key)
	for jobKey, job := range s.jobs {
		if job.ProcessInstance.Key == key {
			delete(s.jobs, jobKey)
		}
	}
	for varKey, v := range s.variables {
		if v.ProcessInstanceKey == key {
			delete(s.variables, varKey)
			delete(s.scopes, v.ScopeKey)
		}
	}
	parentKey := FormatKey(key)
	s.emitDelete(data_models.RecordKindProcessInstance, parentKey)
	s.emitDeleteChildren(data_models.RecordKindJob, parentKey)
	s.emitDeleteChildren(data_models.RecordKindVariable, parentKey)
}

// jobs

func (s *State) Job(key int64) (*Job, bool) {
	j, ok := s.jobs[key]
	return j, ok
}

// JobsOf returns the jobs of the process instance in key order
func (s *State) JobsOf(processInstanceKey int64) []*Job {
	var jobs []*Job
	for _, j := range s.jobs {
		if j.ProcessInstance.Key == processInstanceKey {
			jobs = append(jobs, j)
		}
	}
	slices.SortFunc(jobs, func(a, b *Job) int {
		return compareKeys(a.Key, b.Key)
	})
	return jobs
}

func (s *State) PutJob(j *Job) {
	s.jobs[j.Key] = j
	s.emitUpsert(data_models.RecordKindJob, FormatKey(j.Key), j.ProcessInstance.TenantId, string(j.State),
		FormatKey(j.ProcessInstance.Key), j.ToAPI())
}

// variables

func (s *State) Variable(key int64) (*Variable, bool) {
	v, ok := s.variables[key]
	return v, ok
}

// ScopeVariable returns the variable of the name declared directly in the scope
func (s *State) ScopeVariable(scopeKey int64, name string) (*Variable, bool) {
	v, ok := s.scopes[scopeKey][name]
	return v, ok
}

func (s *State) PutVariable(v *Variable) {
	s.variables[v.Key] = v
	scope, ok := s.scopes[v.ScopeKey]
	if !ok {
		scope = map[string]*Variable{}
		s.scopes[v.ScopeKey] = scope
	}
	scope[v.Name] = v
	s.emitUpsert(data_models.RecordKindVariable, FormatKey(v.Key), v.TenantId, "", FormatKey(v.ProcessInstanceKey), v.ToAPI())
}

// users

func (s *State) User(username string) (*User, bool) {
	u, ok := s.users[username]
	return u, ok
}

func (s *State) PutUser(u *User) {
	s.users[u.Username] = u
	s.emitUpsert(data_models.RecordKindUser, u.Username, "", "", "", u.ToAPI())
}

func (s *State) DeleteUser(username string) {
	delete(s.users, username)
	s.emitDelete(data_models.RecordKindUser, username)
}

// roles, groups and tenants

func (s *State) Role(roleId string) (*Entity, bool) {
	r, ok := s.roles[roleId]
	return r, ok
}

func (s *State) PutRole(r *Entity) {
	s.roles[r.Id] = r
	s.emitUpsert(data_models.RecordKindRole, r.Id, "", "", "", r.ToRole())
}

func (s *State) DeleteRole(roleId string) {
	delete(s.roles, roleId)
	s.emitDelete(data_models.RecordKindRole, roleId)
}

func (s *State) Group(groupId string) (*Entity, bool) {
	g, ok := s.groups[groupId]
	return g, ok
}

func (s *State) PutGroup(g *Entity) {
	s.groups[g.Id] = g
	s.emitUpsert(data_models.RecordKindGroup, g.Id, "", "", "", g.ToGroup())
}

func (s *State) DeleteGroup(groupId string) {
	delete(s.groups, groupId)
	s.emitDelete(data_models.RecordKindGroup, groupId)
}

func (s *State) Tenant(tenantId string) (*Entity, bool) {
	t, ok := s.tenants[tenantId]
	return t, ok
}

func (s *State) PutTenant(t *Entity) {
	s.tenants[t.Id] = t
	s.emitUpsert(data_models.RecordKindTenant, t.Id, "", "", "", t.ToTenant())
}

func (s *State) DeleteTenant(tenantId string) {
	delete(s.tenants, tenantId)
	s.emitDelete(data_models.RecordKindTenant, tenantId)
}

// mapping rules

func (s *State) MappingRule(id string) (*MappingRule, bool) {
	m, ok := s.mappingRules[id]
	return m, ok
}

func (s *State) PutMappingRule(m *MappingRule) {
	s.mappingRules[m.Id] = m
	s.emitUpsert(data_models.RecordKindMappingRule, m.Id, "", "", "", m.ToAPI())
}

func (s *State) DeleteMappingRule(id string) {
	delete(s.mappingRules, id)
	s.emitDelete(data_models.RecordKindMappingRule, id)
}

// batch operations

func (s *State) BatchOperation(key int64) (*BatchOperation, bool) {
	b, ok := s.batchOperations[key]
	return b, ok
}

// BatchOperations returns all batch operations in creation order
func (s *State) BatchOperations() []*BatchOperation {
	batches := make([]*BatchOperation, 0, len(s.batchOperations))
	for _, b := range s.batchOperations {
		batches = append(batches, b)
	}
	slices.SortFunc(batches, func(a, b *BatchOperation) int {
		return compareKeys(a.Key, b.Key)
	})
	return batches
}

func (s *State) PutBatchOperation(b *BatchOperation) {
	s.batchOperations[b.Key] = b
	s.emitUpsert(data_models.RecordKindBatchOperation, FormatKey(b.Key), "", string(b.State), "", b.ToAPI())
}

func (s *State) PutBatchOperationItem(b *BatchOperation, item *BatchOperationItem) {
	batchKey := FormatKey(b.Key)
	s.emitUpsert(data_models.RecordKindBatchOperationItem, batchKey+"/"+FormatKey(item.Key), "",
		string(item.State), batchKey, b.ItemToAPI(item))
}

func compareKeys(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
