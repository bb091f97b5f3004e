// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"strings"

	"github.com/camunda/camunda-sub002/persistence/data_models"
	"github.com/camunda/camunda-sub002/persistence/primary"
)

// Owner is an entity other entities are assigned to
type Owner struct {
	name    string
	kind    data_models.RecordKind
	exists  func(state *primary.State, id string) bool
	members func(state *primary.State) *primary.Memberships
}

var (
	RoleOwner = Owner{
		name: "role",
		kind: data_models.RecordKindRoleMember,
		exists: func(state *primary.State, id string) bool {
			_, ok := state.Role(id)
			return ok
		},
		members: func(state *primary.State) *primary.Memberships { return state.RoleMembers },
	}
	GroupOwner = Owner{
		name: "group",
		kind: data_models.RecordKindGroupMember,
		exists: func(state *primary.State, id string) bool {
			_, ok := state.Group(id)
			return ok
		},
		members: func(state *primary.State) *primary.Memberships { return state.GroupMembers },
	}
	TenantOwner = Owner{
		name: "tenant",
		kind: data_models.RecordKindTenantMember,
		exists: func(state *primary.State, id string) bool {
			_, ok := state.Tenant(id)
			return ok
		},
		members: func(state *primary.State) *primary.Memberships { return state.TenantMembers },
	}
)

func (o Owner) Name() string {
	return o.name
}

// MemberKind is the record kind the memberships of the owner are exported as
func (o Owner) MemberKind() data_models.RecordKind {
	return o.kind
}

func ownerNotFound(owner Owner, operation, ownerId string) error {
	return reject(RejectionNotFound,
		"Expected to %v %v with ID '%v', but a %v with this ID does not exist.",
		operation, owner.name, ownerId, owner.name)
}

func memberExists(state *primary.State, memberType data_models.MemberType, memberId string) bool {
	var ok bool
	switch memberType {
	case data_models.MemberTypeUser:
		_, ok = state.User(memberId)
	case data_models.MemberTypeGroup:
		_, ok = state.Group(memberId)
	case data_models.MemberTypeRole:
		_, ok = state.Role(memberId)
	case data_models.MemberTypeMappingRule:
		_, ok = state.MappingRule(memberId)
	}
	return ok
}

func (e *Engine) AssignMember(
	_ context.Context, owner Owner, ownerId string, memberType data_models.MemberType, memberId string,
) error {
	return e.store.Update(func(state *primary.State) error {
		if !owner.exists(state, ownerId) {
			return ownerNotFound(owner, "update", ownerId)
		}
		if !memberExists(state, memberType, memberId) {
			return reject(RejectionNotFound,
				"Expected to add an entity with ID '%v' and type '%v' to %v with ID '%v', but the entity doesn't exist.",
				memberId, memberType, owner.name, ownerId)
		}
		if !owner.members(state).Add(ownerId, memberType, memberId) {
			return reject(RejectionAlreadyExists,
				"Expected to add entity with ID '%v' to %v with ID '%v', but the entity is already assigned to this %v.",
				memberId, owner.name, ownerId, owner.name)
		}
		return nil
	})
}

func (e *Engine) UnassignMember(
	_ context.Context, owner Owner, ownerId string, memberType data_models.MemberType, memberId string,
) error {
	return e.store.Update(func(state *primary.State) error {
		if !owner.exists(state, ownerId) {
			return ownerNotFound(owner, "update", ownerId)
		}
		if !owner.members(state).Remove(ownerId, memberType, memberId) {
			return reject(RejectionNotFound,
				"Expected to remove entity with ID '%v' from %v with ID '%v', but the entity is not assigned to this %v.",
				memberId, owner.name, ownerId, owner.name)
		}
		return nil
	})
}

// ResourceName is the authorization resource of the owner, e.g. ROLE
func (o Owner) ResourceName() string {
	return strings.ToUpper(o.name)
}
