// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package engine

import "golang.org/x/crypto/bcrypt"

const (
	// AdminRoleId is the role granting every permission
	AdminRoleId = "admin"

	DefaultTenantName = "Default"

	// MaxIdLength is the limit of user, role, group, tenant and mapping rule ids
	MaxIdLength = 256
	// IdPattern is the pattern every user, role, group, tenant and mapping rule id must match
	IdPattern = "^[a-zA-Z0-9_~@.+-]+$"

	// credentials are checked on every request
	passwordHashCost = bcrypt.MinCost
)
