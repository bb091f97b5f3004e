// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package apimodel

type UserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
}

type UserUpdateRequest struct {
	Password string `json:"password,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
}

type User struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

type UserFilter struct {
	Username string `json:"username,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
}

type UserSearchRequest = SearchRequest[UserFilter]

// MemberUser is a user assigned to a role, group or tenant
type MemberUser struct {
	Username string `json:"username"`
}

type MemberUserSearchRequest = SearchRequest[UserFilter]

type RoleCreateRequest struct {
	RoleId      string `json:"roleId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type RoleUpdateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Role struct {
	RoleId      string `json:"roleId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type RoleFilter struct {
	RoleId string `json:"roleId,omitempty"`
	Name   string `json:"name,omitempty"`
}

type RoleSearchRequest = SearchRequest[RoleFilter]

type GroupCreateRequest struct {
	GroupId     string `json:"groupId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type GroupUpdateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Group struct {
	GroupId     string `json:"groupId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type GroupFilter struct {
	GroupId string `json:"groupId,omitempty"`
	Name    string `json:"name,omitempty"`
}

type GroupSearchRequest = SearchRequest[GroupFilter]

type MappingRuleCreateRequest struct {
	MappingRuleId string `json:"mappingRuleId"`
	ClaimName     string `json:"claimName"`
	ClaimValue    string `json:"claimValue"`
	Name          string `json:"name"`
}

type MappingRuleUpdateRequest struct {
	ClaimName  string `json:"claimName"`
	ClaimValue string `json:"claimValue"`
	Name       string `json:"name"`
}

type MappingRule struct {
	MappingRuleId string `json:"mappingRuleId"`
	ClaimName     string `json:"claimName"`
	ClaimValue    string `json:"claimValue"`
	Name          string `json:"name"`
}

type MappingRuleFilter struct {
	MappingRuleId string `json:"mappingRuleId,omitempty"`
	ClaimName     string `json:"claimName,omitempty"`
	ClaimValue    string `json:"claimValue,omitempty"`
	Name          string `json:"name,omitempty"`
}

type MappingRuleSearchRequest = SearchRequest[MappingRuleFilter]
