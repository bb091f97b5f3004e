// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: BUSL-1.1

package extensions

type (
	// SearchRecordRow is a row of the search_records table.
	// Column names are the snake case of the field names.
	SearchRecordRow struct {
		Kind      string
		RecordKey string
		TenantId  string
		State     string
		ParentKey string
		// Payload is the JSON document of the record
		Payload string
		// ExportPosition orders the rows by first export
		ExportPosition int64
		// UpdatedAt is unix milliseconds of the last export
		UpdatedAt int64
	}

	// SearchRecordQuery filters rows of one kind, empty fields match everything
	SearchRecordQuery struct {
		Kind       string
		RecordKeys []string
		// TenantIds restricts the rows to these tenants when not nil
		TenantIds []string
		State     string
		ParentKey string
	}
)
