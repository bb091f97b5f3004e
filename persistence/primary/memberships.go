// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package primary

import (
	"github.com/camunda/camunda-sub002/persistence/data_models"
)

// Memberships are the members of one kind of owner: roles, groups or tenants
type Memberships struct {
	state *State
	kind  data_models.RecordKind
	// owners keeps the members of every owner in assignment order
	owners map[string][]data_models.Membership
}

func newMemberships(state *State, kind data_models.RecordKind) *Memberships {
	return &Memberships{
		state:  state,
		kind:   kind,
		owners: map[string][]data_models.Membership{},
	}
}

func (m *Memberships) Has(ownerId string, memberType data_models.MemberType, memberId string) bool {
	for _, member := range m.owners[ownerId] {
		if member.MemberType == memberType && member.MemberId == memberId {
			return true
		}
	}
	return false
}

// Add returns false when the member is already assigned
func (m *Memberships) Add(ownerId string, memberType data_models.MemberType, memberId string) bool {
	if m.Has(ownerId, memberType, memberId) {
		return false
	}
	member := data_models.Membership{OwnerId: ownerId, MemberType: memberType, MemberId: memberId}
	m.owners[ownerId] = append(m.owners[ownerId], member)
	m.state.emitUpsert(m.kind, data_models.MembershipKey(ownerId, memberType, memberId), "", "", ownerId, member)
	return true
}

// Remove returns false when the member is not assigned
func (m *Memberships) Remove(ownerId string, memberType data_models.MemberType, memberId string) bool {
	members := m.owners[ownerId]
	for i, member := range members {
		if member.MemberType == memberType && member.MemberId == memberId {
			m.owners[ownerId] = append(members[:i:i], members[i+1:]...)
			m.state.emitDelete(m.kind, data_models.MembershipKey(ownerId, memberType, memberId))
			return true
		}
	}
	return false
}

// RemoveOwner drops every member of the owner
func (m *Memberships) RemoveOwner(ownerId string) {
	if _, ok := m.owners[ownerId]; !ok {
		return
	}
	delete(m.owners, ownerId)
	m.state.emitDeleteChildren(m.kind, ownerId)
}

// RemoveMember drops the member from every owner
func (m *Memberships) RemoveMember(memberType data_models.MemberType, memberId string) {
	for ownerId := range m.owners {
		m.Remove(ownerId, memberType, memberId)
	}
}

// OwnersOf returns the owners the member is assigned to
func (m *Memberships) OwnersOf(memberType data_models.MemberType, memberId string) []string {
	var owners []string
	for ownerId := range m.owners {
		if m.Has(ownerId, memberType, memberId) {
			owners = append(owners, ownerId)
		}
	}
	return owners
}

func (m *Memberships) MembersOf(ownerId string, memberType data_models.MemberType) []string {
	var ids []string
	for _, member := range m.owners[ownerId] {
		if member.MemberType == memberType {
			ids = append(ids, member.MemberId)
		}
	}
	return ids
}
