// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/camunda/camunda-sub002/common/log/tag"
	"github.com/camunda/camunda-sub002/persistence/data_models"
	"github.com/camunda/camunda-sub002/persistence/primary"
)

// users

func (e *Engine) CreateUser(_ context.Context, request apimodel.UserRequest) (*apimodel.User, error) {
	var created apimodel.User
	err := e.store.Update(func(state *primary.State) error {
		if _, ok := state.User(request.Username); ok {
			return reject(RejectionAlreadyExists,
				"Expected to create user with username '%v', but a user with this username already exists",
				request.Username)
		}
		hash, err := hashPassword(request.Password)
		if err != nil {
			return err
		}
		user := &primary.User{
			Username:     request.Username,
			Name:         request.Name,
			Email:        request.Email,
			PasswordHash: hash,
		}
		state.PutUser(user)
		created = user.ToAPI()
		return nil
	})
	if err != nil {
		return nil, err
	}
	e.logger.Debug("created user", tag.ID(request.Username))
	return &created, nil
}

func (e *Engine) UpdateUser(_ context.Context, username string, request apimodel.UserUpdateRequest) (*apimodel.User, error) {
	var updated apimodel.User
	err := e.store.Update(func(state *primary.State) error {
		user, ok := state.User(username)
		if !ok {
			return reject(RejectionNotFound,
				"Expected to update user with username '%v', but a user with this username does not exist", username)
		}
		user.Name = request.Name
		user.Email = request.Email
		if request.Password != "" {
			hash, err := hashPassword(request.Password)
			if err != nil {
				return err
			}
			user.PasswordHash = hash
		}
		state.PutUser(user)
		updated = user.ToAPI()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (e *Engine) DeleteUser(_ context.Context, username string) error {
	return e.store.Update(func(state *primary.State) error {
		if _, ok := state.User(username); !ok {
			return reject(RejectionNotFound,
				"Expected to delete user with username '%v', but a user with this username does not exist", username)
		}
		state.RoleMembers.RemoveMember(data_models.MemberTypeUser, username)
		state.GroupMembers.RemoveMember(data_models.MemberTypeUser, username)
		state.TenantMembers.RemoveMember(data_models.MemberTypeUser, username)
		state.DeleteUser(username)
		return nil
	})
}

// roles

func (e *Engine) CreateRole(_ context.Context, request apimodel.RoleCreateRequest) (*apimodel.Role, error) {
	var created apimodel.Role
	err := e.store.Update(func(state *primary.State) error {
		if _, ok := state.Role(request.RoleId); ok {
			return reject(RejectionAlreadyExists,
				"Expected to create role with ID '%v', but a role with this ID already exists.", request.RoleId)
		}
		role := &primary.Entity{Id: request.RoleId, Name: request.Name, Description: request.Description}
		state.PutRole(role)
		created = role.ToRole()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (e *Engine) UpdateRole(_ context.Context, roleId string, request apimodel.RoleUpdateRequest) (*apimodel.Role, error) {
	var updated apimodel.Role
	err := e.store.Update(func(state *primary.State) error {
		role, ok := state.Role(roleId)
		if !ok {
			return ownerNotFound(RoleOwner, "update", roleId)
		}
		role.Name = request.Name
		role.Description = request.Description
		state.PutRole(role)
		updated = role.ToRole()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (e *Engine) DeleteRole(_ context.Context, roleId string) error {
	return e.store.Update(func(state *primary.State) error {
		if _, ok := state.Role(roleId); !ok {
			return ownerNotFound(RoleOwner, "delete", roleId)
		}
		state.RoleMembers.RemoveOwner(roleId)
		state.TenantMembers.RemoveMember(data_models.MemberTypeRole, roleId)
		state.DeleteRole(roleId)
		return nil
	})
}

// groups

func (e *Engine) CreateGroup(_ context.Context, request apimodel.GroupCreateRequest) (*apimodel.Group, error) {
	var created apimodel.Group
	err := e.store.Update(func(state *primary.State) error {
		if _, ok := state.Group(request.GroupId); ok {
			return reject(RejectionAlreadyExists,
				"Expected to create group with ID '%v', but a group with this ID already exists.", request.GroupId)
		}
		group := &primary.Entity{Id: request.GroupId, Name: request.Name, Description: request.Description}
		state.PutGroup(group)
		created = group.ToGroup()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (e *Engine) UpdateGroup(_ context.Context, groupId string, request apimodel.GroupUpdateRequest) (*apimodel.Group, error) {
	var updated apimodel.Group
	err := e.store.Update(func(state *primary.State) error {
		group, ok := state.Group(groupId)
		if !ok {
			return ownerNotFound(GroupOwner, "update", groupId)
		}
		group.Name = request.Name
		group.Description = request.Description
		state.PutGroup(group)
		updated = group.ToGroup()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (e *Engine) DeleteGroup(_ context.Context, groupId string) error {
	return e.store.Update(func(state *primary.State) error {
		if _, ok := state.Group(groupId); !ok {
			return ownerNotFound(GroupOwner, "delete", groupId)
		}
		state.GroupMembers.RemoveOwner(groupId)
		state.RoleMembers.RemoveMember(data_models.MemberTypeGroup, groupId)
		state.TenantMembers.RemoveMember(data_models.MemberTypeGroup, groupId)
		state.DeleteGroup(groupId)
		return nil
	})
}

// mapping rules

func (e *Engine) CreateMappingRule(
	_ context.Context, request apimodel.MappingRuleCreateRequest,
) (*apimodel.MappingRule, error) {
	var created apimodel.MappingRule
	err := e.store.Update(func(state *primary.State) error {
		if _, ok := state.MappingRule(request.MappingRuleId); ok {
			return reject(RejectionAlreadyExists,
				"Expected to create mapping rule with ID '%v', but a mapping rule with this ID already exists.",
				request.MappingRuleId)
		}
		rule := &primary.MappingRule{
			Id:         request.MappingRuleId,
			ClaimName:  request.ClaimName,
			ClaimValue: request.ClaimValue,
			Name:       request.Name,
		}
		state.PutMappingRule(rule)
		created = rule.ToAPI()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (e *Engine) UpdateMappingRule(
	_ context.Context, mappingRuleId string, request apimodel.MappingRuleUpdateRequest,
) (*apimodel.MappingRule, error) {
	var updated apimodel.MappingRule
	err := e.store.Update(func(state *primary.State) error {
		rule, ok := state.MappingRule(mappingRuleId)
		if !ok {
			return reject(RejectionNotFound,
				"Expected to update mapping rule with ID '%v', but a mapping rule with this ID does not exist.",
				mappingRuleId)
		}
		rule.ClaimName = request.ClaimName
		rule.ClaimValue = request.ClaimValue
		rule.Name = request.Name
		state.PutMappingRule(rule)
		updated = rule.ToAPI()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (e *Engine) DeleteMappingRule(_ context.Context, mappingRuleId string) error {
	return e.store.Update(func(state *primary.State) error {
		if _, ok := state.MappingRule(mappingRuleId); !ok {
			return reject(RejectionNotFound,
				"Expected to delete mapping rule with ID '%v', but a mapping rule with this ID does not exist.",
				mappingRuleId)
		}
		state.RoleMembers.RemoveMember(data_models.MemberTypeMappingRule, mappingRuleId)
		state.GroupMembers.RemoveMember(data_models.MemberTypeMappingRule, mappingRuleId)
		state.TenantMembers.RemoveMember(data_models.MemberTypeMappingRule, mappingRuleId)
		state.DeleteMappingRule(mappingRuleId)
		return nil
	})
}
