// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package primary

import (
	"sync"
	"testing"
	"time"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/camunda/camunda-sub002/bpmn"
	"github.com/camunda/camunda-sub002/persistence/data_models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	sync.Mutex
	batches [][]data_models.ExportRecord
}

func (r *recordingSink) Append(records []data_models.ExportRecord) {
	r.Lock()
	defer r.Unlock()
	r.batches = append(r.batches, records)
}

func (r *recordingSink) all() []data_models.ExportRecord {
	r.Lock()
	defer r.Unlock()
	var records []data_models.ExportRecord
	for _, batch := range r.batches {
		records = append(records, batch...)
	}
	return records
}

func fixedClock() time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
}

func TestKeysStartAtFirstKey(t *testing.T) {
	store := NewStore(&recordingSink{}, fixedClock)
	var keys []int64
	require.NoError(t, store.Update(func(state *State) error {
		keys = append(keys, state.NextKey(), state.NextKey())
		return nil
	}))
	assert.Equal(t, []int64{FirstKey, FirstKey + 1}, keys)
}

func TestUpdateShipsRecordsInOrder(t *testing.T) {
	sink := &recordingSink{}
	store := NewStore(sink, fixedClock)

	require.NoError(t, store.Update(func(state *State) error {
		state.PutUser(&User{Username: "alice", Name: "Alice", PasswordHash: []byte("hash")})
		state.PutRole(&Entity{Id: "admin", Name: "Admin"})
		state.RoleMembers.Add("admin", data_models.MemberTypeUser, "alice")
		return nil
	}))
	require.NoError(t, store.Update(func(state *State) error {
		state.DeleteUser("alice")
		return nil
	}))

	require.Len(t, sink.batches, 2)
	records := sink.all()
	require.Len(t, records, 4)
	for i, r := range records {
		assert.Equal(t, int64(i+1), r.Position)
		assert.Equal(t, fixedClock(), r.Timestamp)
	}
	assert.Equal(t, data_models.RecordKindUser, records[0].Kind)
	assert.NotContains(t, string(records[0].Payload), "secret")
	assert.Equal(t, data_models.RecordKindRoleMember, records[2].Kind)
	assert.Equal(t, "admin", records[2].ParentKey)
	assert.Equal(t, data_models.RecordIntentDelete, records[3].Intent)
}

func TestFailedUpdateStillShipsItsChanges(t *testing.T) {
	sink := &recordingSink{}
	store := NewStore(sink, fixedClock)

	err := store.Update(func(state *State) error {
		state.PutTenant(&Entity{Id: "t1", Name: "T1"})
		return errors.New("boom")
	})
	assert.EqualError(t, err, "boom")
	assert.Len(t, sink.all(), 1)
}

func TestViewDoesNotShip(t *testing.T) {
	sink := &recordingSink{}
	store := NewStore(sink, fixedClock)
	require.NoError(t, store.View(func(state *State) error {
		_, ok := state.User("nobody")
		assert.False(t, ok)
		return nil
	}))
	assert.Empty(t, sink.all())
}

func TestMemberships(t *testing.T) {
	store := NewStore(&recordingSink{}, fixedClock)
	require.NoError(t, store.Update(func(state *State) error {
		m := state.GroupMembers
		assert.True(t, m.Add("ops", data_models.MemberTypeUser, "alice"))
		assert.False(t, m.Add("ops", data_models.MemberTypeUser, "alice"))
		assert.True(t, m.Add("ops", data_models.MemberTypeUser, "bob"))
		assert.True(t, m.Add("dev", data_models.MemberTypeUser, "alice"))

		assert.Equal(t, []string{"alice", "bob"}, m.MembersOf("ops", data_models.MemberTypeUser))
		assert.ElementsMatch(t, []string{"ops", "dev"}, m.OwnersOf(data_models.MemberTypeUser, "alice"))

		assert.True(t, m.Remove("ops", data_models.MemberTypeUser, "alice"))
		assert.False(t, m.Remove("ops", data_models.MemberTypeUser, "alice"))
		assert.Equal(t, []string{"bob"}, m.MembersOf("ops", data_models.MemberTypeUser))

		m.RemoveMember(data_models.MemberTypeUser, "alice")
		assert.Empty(t, m.OwnersOf(data_models.MemberTypeUser, "alice"))

		m.RemoveOwner("ops")
		assert.Empty(t, m.MembersOf("ops", data_models.MemberTypeUser))
		return nil
	}))
}

func TestDeleteProcessInstanceRemovesChildren(t *testing.T) {
	sink := &recordingSink{}
	store := NewStore(sink, fixedClock)
	model := bpmn.CreateExecutableProcess("order").StartEvent().ServiceTask("pay", "payment").EndEvent().Done()

	var instanceKey int64
	require.NoError(t, store.Update(func(state *State) error {
		definition := &ProcessDefinition{Key: state.NextKey(), ProcessId: "order", Version: 1, TenantId: apimodel.DefaultTenantId, Model: model}
		state.PutProcessDefinition(definition)
		pi := &ProcessInstance{Key: state.NextKey(), Definition: definition, State: apimodel.ProcessInstanceStateActive, TenantId: apimodel.DefaultTenantId}
		instanceKey = pi.Key
		state.PutProcessInstance(pi)
		state.PutJob(&Job{Key: state.NextKey(), ProcessInstance: pi, State: apimodel.JobStateCreated})
		state.PutVariable(&Variable{Key: state.NextKey(), Name: "a", Value: "1", ScopeKey: pi.Key, ProcessInstanceKey: pi.Key})
		return nil
	}))
	require.NoError(t, store.Update(func(state *State) error {
		state.DeleteProcessInstance(instanceKey)
		_, ok := state.ProcessInstance(instanceKey)
		assert.False(t, ok)
		assert.Empty(t, state.JobsOf(instanceKey))
		_, ok = state.ScopeVariable(instanceKey, "a")
		assert.False(t, ok)
		return nil
	}))

	last := sink.batches[len(sink.batches)-1]
	require.Len(t, last, 3)
	assert.Equal(t, data_models.RecordIntentDelete, last[0].Intent)
	assert.Equal(t, data_models.RecordIntentDeleteChildren, last[1].Intent)
	assert.Equal(t, data_models.RecordKindJob, last[1].Kind)
	assert.Equal(t, data_models.RecordKindVariable, last[2].Kind)
}

func TestLatestProcessDefinition(t *testing.T) {
	store := NewStore(&recordingSink{}, fixedClock)
	require.NoError(t, store.Update(func(state *State) error {
		for version := 1; version <= 3; version++ {
			state.PutProcessDefinition(&ProcessDefinition{
				Key: state.NextKey(), ProcessId: "order", Version: version, TenantId: apimodel.DefaultTenantId,
			})
		}
		latest, ok := state.LatestProcessDefinition("order", apimodel.DefaultTenantId)
		require.True(t, ok)
		assert.Equal(t, 3, latest.Version)
		_, ok = state.LatestProcessDefinition("order", "other")
		assert.False(t, ok)
		return nil
	}))
}

func TestBatchOperationCounts(t *testing.T) {
	batch := &BatchOperation{
		Key:   FirstKey,
		Type:  apimodel.BatchOperationTypeCancelProcessInstance,
		State: apimodel.BatchOperationStateActive,
		Items: []*BatchOperationItem{
			{Key: 1, State: apimodel.BatchOperationItemStateCompleted},
			{Key: 2, State: apimodel.BatchOperationItemStateFailed},
			{Key: 3, State: apimodel.BatchOperationItemStateActive},
		},
	}
	got := batch.ToAPI()
	assert.Equal(t, 3, got.OperationsTotalCount)
	assert.Equal(t, 1, got.OperationsCompletedCount)
	assert.Equal(t, 1, got.OperationsFailedCount)
}

func TestParseKey(t *testing.T) {
	key, ok := ParseKey("2251799813685249")
	assert.True(t, ok)
	assert.Equal(t, FirstKey, key)
	for _, invalid := range []string{"", "abc", "-1", "0", "1.5"} {
		_, ok := ParseKey(invalid)
		assert.False(t, ok, invalid)
	}
}

func TestFailedUpdateShipsNoRecords(t *testing.T) {
	sink := &recordingSink{}
	store := NewStore(sink, fixedClock)

	err := store.Update(func(state *State) error {
		state.PutTenant(&Entity{Id: "rejected", Name: "Rejected"})
		return errors.New("invalid tenant")
	})
	require.EqualError(t, err, "invalid tenant")
	assert.Empty(t, sink.all())

	require.NoError(t, store.Update(func(state *State) error {
		state.PutTenant(&Entity{Id: "accepted", Name: "Accepted"})
		return nil
	}))
	records := sink.all()
	require.Len(t, records, 1)
	assert.Equal(t, data_models.RecordKindTenant, records[0].Kind)
	assert.Equal(t, "accepted", records[0].Key)
}
