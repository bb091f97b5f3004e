// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: BUSL-1.1

package api

import (
	"net/http"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/camunda/camunda-sub002/common/log/tag"
	"github.com/camunda/camunda-sub002/engine"
	"github.com/camunda/camunda-sub002/persistence"
	"github.com/pkg/errors"
)

// ErrorWithStatus is rendered as a problem detail body, the instance is filled with the request path
type ErrorWithStatus struct {
	StatusCode int
	Problem    apimodel.ProblemDetail
}

func NewErrorWithStatus(code int, title, detail string) *ErrorWithStatus {
	return &ErrorWithStatus{
		StatusCode: code,
		Problem: apimodel.ProblemDetail{
			Type:   apimodel.ProblemTypeBlank,
			Title:  title,
			Status: code,
			Detail: detail,
		},
	}
}

func invalidArgument(detail string) *ErrorWithStatus {
	return NewErrorWithStatus(http.StatusBadRequest, apimodel.TitleInvalidArgument, detail)
}

func notFound(detail string) *ErrorWithStatus {
	return NewErrorWithStatus(http.StatusNotFound, apimodel.TitleNotFound, detail)
}

func forbidden(detail string) *ErrorWithStatus {
	return NewErrorWithStatus(http.StatusForbidden, apimodel.TitleForbidden, detail)
}

func unauthorized() *ErrorWithStatus {
	return NewErrorWithStatus(http.StatusUnauthorized, apimodel.TitleUnauthorized,
		"Full authentication is required to access this resource")
}

var rejectionStatus = map[engine.RejectionType]struct {
	code  int
	title string
}{
	engine.RejectionInvalidArgument: {http.StatusBadRequest, apimodel.TitleInvalidArgument},
	engine.RejectionNotFound:        {http.StatusNotFound, apimodel.TitleNotFound},
	engine.RejectionAlreadyExists:   {http.StatusConflict, apimodel.TitleAlreadyExists},
	engine.RejectionInvalidState:    {http.StatusConflict, apimodel.TitleInvalidState},
	engine.RejectionForbidden:       {http.StatusForbidden, apimodel.TitleForbidden},
}

// toErrorWithStatus maps engine rejections and store errors, anything else is unexpected
func (s *serviceImpl) toErrorWithStatus(err error, notFoundDetail string) *ErrorWithStatus {
	if rejection, ok := engine.AsRejection(err); ok {
		status, known := rejectionStatus[rejection.Type]
		if known {
			return NewErrorWithStatus(status.code, status.title, rejection.Message)
		}
	}
	switch {
	case persistence.IsNotFound(err):
		if notFoundDetail == "" {
			notFoundDetail = err.Error()
		}
		return notFound(notFoundDetail)
	case errors.Is(err, persistence.ErrAlreadyExists):
		return NewErrorWithStatus(http.StatusConflict, apimodel.TitleAlreadyExists, err.Error())
	case errors.Is(err, persistence.ErrContentHashMismatch),
		errors.Is(err, persistence.ErrUnknownStore),
		errors.Is(err, persistence.ErrInvalidArgument):
		return invalidArgument(err.Error())
	case errors.Is(err, persistence.ErrOperationNotSupported):
		return NewErrorWithStatus(http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed), err.Error())
	}
	return s.handleUnknownError(err)
}

func (s *serviceImpl) handleUnknownError(err error) *ErrorWithStatus {
	s.logger.Error("unknown error on operation", tag.Error(err))
	return NewErrorWithStatus(http.StatusInternalServerError, apimodel.TitleInternal, err.Error())
}
