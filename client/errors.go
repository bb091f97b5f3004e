// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/camunda/camunda-sub002/apimodel"
)

// ProblemError is a non-2xx response of the cluster, decoded from its problem detail body
type ProblemError struct {
	apimodel.ProblemDetail
}

func (e *ProblemError) Error() string {
	return fmt.Sprintf("failed with code %d: '%s'. Details: '%s'", e.Status, e.Title, e.Detail)
}

// IsProblem is true when err carries a problem response with the given HTTP status
func IsProblem(err error, status int) bool {
	return StatusOf(err) == status
}

// StatusOf returns the HTTP status of a problem response carried by err, or 0
func StatusOf(err error) int {
	var problem *ProblemError
	if errors.As(err, &problem) {
		return problem.Status
	}
	return 0
}

// AsProblem returns the problem response carried by err
func AsProblem(err error) (*ProblemError, bool) {
	var problem *ProblemError
	ok := errors.As(err, &problem)
	return problem, ok
}

func decodeProblem(status int, body []byte, path string) *ProblemError {
	problem := &ProblemError{}
	if len(body) > 0 && json.Unmarshal(body, &problem.ProblemDetail) == nil && problem.Status != 0 {
		return problem
	}
	// responses that are not problem documents, e.g. an unknown route
	problem.ProblemDetail = apimodel.ProblemDetail{
		Type:     apimodel.ProblemTypeBlank,
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   strings.TrimSpace(string(body)),
		Instance: path,
	}
	return problem
}

// ValidationError is a request rejected by the client before it is sent
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

// IsValidation is true when err is a client side validation failure
func IsValidation(err error) bool {
	var validation *ValidationError
	return errors.As(err, &validation)
}

func requireNonEmpty(fields ...string) error {
	for i := 0; i+1 < len(fields); i += 2 {
		if strings.TrimSpace(fields[i+1]) == "" {
			return &ValidationError{Field: fields[i], Reason: "must not be empty"}
		}
	}
	return nil
}
