// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

// Package apimodel holds the JSON models of the orchestration cluster REST API (v2).
// Keys are 64-bit numbers serialized as decimal strings.
package apimodel

const (
	// DefaultTenantId is the tenant of every resource when multi-tenancy is not used
	DefaultTenantId = "<default>"

	// MaxPageSize is the largest page a search returns
	MaxPageSize = 10000
	// DefaultPageSize applies when a search request has no page limit
	DefaultPageSize = 100
)
