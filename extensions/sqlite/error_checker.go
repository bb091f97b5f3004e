// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: BUSL-1.1

package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ncruces/go-sqlite3"
)

type errorChecker struct{}

func (errorChecker) IsNotFoundError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func (errorChecker) IsTimeoutError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, sqlite3.INTERRUPT)
}

func (errorChecker) IsThrottlingError(err error) bool {
	return errors.Is(err, sqlite3.BUSY) || errors.Is(err, sqlite3.LOCKED)
}
