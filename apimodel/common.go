// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package apimodel

// ProblemDetail is an RFC 7807 problem body, served as application/problem+json
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance"`
}

const (
	ProblemContentType = "application/problem+json"
	ProblemTypeBlank   = "about:blank"

	TitleInvalidArgument = "INVALID_ARGUMENT"
	TitleNotFound        = "NOT_FOUND"
	TitleAlreadyExists   = "ALREADY_EXISTS"
	TitleInvalidState    = "INVALID_STATE"
	TitleForbidden       = "FORBIDDEN"
	TitleUnauthorized    = "Unauthorized"
	TitleInternal        = "INTERNAL_ERROR"
)

type SortOrder string

const (
	SortOrderAsc  SortOrder = "ASC"
	SortOrderDesc SortOrder = "DESC"
)

type SearchQueryPage struct {
	From  int `json:"from,omitempty"`
	Limit int `json:"limit,omitempty"`
}

type SearchQuerySort struct {
	Field string    `json:"field"`
	Order SortOrder `json:"order,omitempty"`
}

type SearchResponsePage struct {
	TotalItems int64 `json:"totalItems"`
}

// SearchResponse is the envelope of every search endpoint
type SearchResponse[T any] struct {
	Items []T                `json:"items"`
	Page  SearchResponsePage `json:"page"`
}

// SearchRequest is the envelope of every search endpoint
type SearchRequest[F any] struct {
	Filter *F                `json:"filter,omitempty"`
	Page   *SearchQueryPage  `json:"page,omitempty"`
	Sort   []SearchQuerySort `json:"sort,omitempty"`
}
