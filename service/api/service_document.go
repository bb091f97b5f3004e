// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: BUSL-1.1

package api

import (
	"context"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/camunda/camunda-sub002/persistence"
	"github.com/camunda/camunda-sub002/persistence/data_models"
	"github.com/pkg/errors"
)

func documentNotFound(documentId string) string {
	return notFoundDetail("Document", "id", documentId)
}

func (s *serviceImpl) CreateDocument(
	ctx context.Context, _ Caller, request data_models.CreateDocumentRequest,
) (*apimodel.DocumentReference, *ErrorWithStatus) {
	if request.DocumentId != "" {
		var v violations
		v.id("documentId", request.DocumentId)
		if errResp := v.err(); errResp != nil {
			return nil, errResp
		}
	}
	resp, err := s.documents.CreateDocument(ctx, request)
	if err != nil {
		return nil, s.toErrorWithStatus(err, "")
	}
	return resp, nil
}

func (s *serviceImpl) GetDocument(
	ctx context.Context, _ Caller, storeId, documentId, contentHash string,
) (*data_models.Document, *ErrorWithStatus) {
	doc, err := s.documents.GetDocument(ctx, storeId, documentId)
	if err != nil {
		return nil, s.toErrorWithStatus(err, documentNotFound(documentId))
	}
	if contentHash != "" && contentHash != doc.Reference.ContentHash {
		err = errors.Wrapf(persistence.ErrContentHashMismatch, "document with id '%v'", documentId)
		return nil, s.toErrorWithStatus(err, "")
	}
	return doc, nil
}

func (s *serviceImpl) CreateDocumentLink(
	ctx context.Context, _ Caller, request data_models.CreateDocumentLinkRequest,
) (*apimodel.DocumentLink, *ErrorWithStatus) {
	if request.TimeToLive < 0 {
		return nil, invalidArgument("The provided timeToLive must not be negative.")
	}
	resp, err := s.documents.CreateDocumentLink(ctx, request)
	if err != nil {
		return nil, s.toErrorWithStatus(err, documentNotFound(request.DocumentId))
	}
	return resp, nil
}

func (s *serviceImpl) DeleteDocument(ctx context.Context, _ Caller, storeId, documentId string) *ErrorWithStatus {
	if err := s.documents.DeleteDocument(ctx, storeId, documentId); err != nil {
		return s.toErrorWithStatus(err, documentNotFound(documentId))
	}
	return nil
}
