// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"sort"

	"github.com/camunda/camunda-sub002/persistence/data_models"
	"github.com/camunda/camunda-sub002/persistence/primary"
	"golang.org/x/crypto/bcrypt"
)

func (e *Engine) Authenticate(username, password string) bool {
	var hash []byte
	_ = e.store.View(func(state *primary.State) error {
		if user, ok := state.User(username); ok {
			hash = user.PasswordHash
		}
		return nil
	})
	return hash != nil && bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}

func hashPassword(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return nil, reject(RejectionInvalidArgument, "The provided password cannot be used: %v", err)
	}
	return hash, nil
}

// IsAdmin tells whether the user has the admin role, directly or through one of its groups
func (e *Engine) IsAdmin(username string) bool {
	admin := false
	_ = e.store.View(func(state *primary.State) error {
		for _, roleId := range rolesOf(state, username) {
			if roleId == AdminRoleId {
				admin = true
			}
		}
		return nil
	})
	return admin
}

// TenantsOf returns the tenants the user is assigned to, directly or through its groups and roles
func (e *Engine) TenantsOf(username string) []string {
	tenants := map[string]bool{}
	_ = e.store.View(func(state *primary.State) error {
		add := func(memberType data_models.MemberType, memberId string) {
			for _, tenantId := range state.TenantMembers.OwnersOf(memberType, memberId) {
				tenants[tenantId] = true
			}
		}
		add(data_models.MemberTypeUser, username)
		for _, groupId := range state.GroupMembers.OwnersOf(data_models.MemberTypeUser, username) {
			add(data_models.MemberTypeGroup, groupId)
		}
		for _, roleId := range rolesOf(state, username) {
			add(data_models.MemberTypeRole, roleId)
		}
		return nil
	})

	result := make([]string, 0, len(tenants))
	for tenantId := range tenants {
		result = append(result, tenantId)
	}
	sort.Strings(result)
	return result
}

func rolesOf(state *primary.State, username string) []string {
	roles := state.RoleMembers.OwnersOf(data_models.MemberTypeUser, username)
	for _, groupId := range state.GroupMembers.OwnersOf(data_models.MemberTypeUser, username) {
		roles = append(roles, state.RoleMembers.OwnersOf(data_models.MemberTypeGroup, groupId)...)
	}
	return roles
}
