package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// check http://www.postgresql.org/docs/9.3/static/errcodes-appendix.html
const ErrQueryCanceled = "57014"
const ErrInsufficientResources = "53000"
const ErrTooManyConnections = "53300"

type errorChecker struct{}

func (errorChecker) IsNotFoundError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func (errorChecker) IsTimeoutError(err error) bool {
	var sqlErr *pq.Error
	if errors.As(err, &sqlErr) && sqlErr.Code == ErrQueryCanceled {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

func (errorChecker) IsThrottlingError(err error) bool {
	var sqlErr *pq.Error
	ok := errors.As(err, &sqlErr)
	if ok {
		if sqlErr.Code == ErrTooManyConnections ||
			sqlErr.Code == ErrInsufficientResources {
			return true
		}
	}
	return false
}
