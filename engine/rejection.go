// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"fmt"

	"github.com/pkg/errors"
)

type RejectionType int

const (
	RejectionInvalidArgument RejectionType = iota + 1
	RejectionNotFound
	RejectionAlreadyExists
	RejectionInvalidState
	RejectionForbidden
)

func (t RejectionType) String() string {
	switch t {
	case RejectionInvalidArgument:
		return "INVALID_ARGUMENT"
	case RejectionNotFound:
		return "NOT_FOUND"
	case RejectionAlreadyExists:
		return "ALREADY_EXISTS"
	case RejectionInvalidState:
		return "INVALID_STATE"
	case RejectionForbidden:
		return "FORBIDDEN"
	default:
		return "UNKNOWN"
	}
}

// Rejection is a command refused by the engine, as opposed to an internal failure
type Rejection struct {
	Type    RejectionType
	Message string
}

func (r *Rejection) Error() string {
	return r.Message
}

func reject(rejectionType RejectionType, format string, args ...interface{}) *Rejection {
	return &Rejection{Type: rejectionType, Message: fmt.Sprintf(format, args...)}
}

func AsRejection(err error) (*Rejection, bool) {
	var rejection *Rejection
	if errors.As(err, &rejection) {
		return rejection, true
	}
	return nil, false
}

// ForbiddenRejection is the rejection of a command the user lacks the permission for
func ForbiddenRejection(operation, resource string) *Rejection {
	return reject(RejectionForbidden,
		"Insufficient permissions to perform operation '%v' on resource '%v'", operation, resource)
}
