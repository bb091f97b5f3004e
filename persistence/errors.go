// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package persistence

import (
	"github.com/pkg/errors"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrContentHashMismatch is returned when a document is addressed with a stale content hash
	ErrContentHashMismatch = errors.New("content hash mismatch")
	ErrUnknownStore        = errors.New("unknown document store")
	ErrInvalidArgument     = errors.New("invalid argument")
)

func NewNotFoundError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrNotFound, format, args...)
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

var (
	ErrAlreadyExists = errors.New("already exists")
	// ErrOperationNotSupported is returned by stores that lack an optional capability
	ErrOperationNotSupported = errors.New("operation not supported")
)
