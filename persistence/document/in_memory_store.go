// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/camunda/camunda-sub002/common/log"
	"github.com/camunda/camunda-sub002/common/log/tag"
	"github.com/camunda/camunda-sub002/config"
	"github.com/camunda/camunda-sub002/persistence"
	"github.com/camunda/camunda-sub002/persistence/data_models"
)

type inMemoryDocumentStore struct {
	cache      *gocache.Cache
	defaultTTL time.Duration
	clock      func() time.Time
	logger     log.Logger
}

var _ persistence.DocumentStore = (*inMemoryDocumentStore)(nil)

func NewInMemoryDocumentStore(cfg config.DocumentStoreConfig, logger log.Logger) persistence.DocumentStore {
	return newInMemoryDocumentStore(cfg, time.Now, logger)
}

func newInMemoryDocumentStore(cfg config.DocumentStoreConfig, clock func() time.Time, logger log.Logger) *inMemoryDocumentStore {
	return &inMemoryDocumentStore{
		cache:      gocache.New(cfg.DefaultTimeToLive, cfg.CleanupInterval),
		defaultTTL: cfg.DefaultTimeToLive,
		clock:      clock,
		logger:     logger,
	}
}

// ContentHash is the hex sha256 of the document content
func ContentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

func checkStore(storeId string) error {
	if storeId != "" && storeId != apimodel.DefaultStoreId {
		return errors.Wrapf(persistence.ErrUnknownStore, "document store '%v'", storeId)
	}
	return nil
}

func (s *inMemoryDocumentStore) CreateDocument(
	_ context.Context, request data_models.CreateDocumentRequest,
) (*apimodel.DocumentReference, error) {
	if err := checkStore(request.StoreId); err != nil {
		return nil, err
	}

	documentId := request.DocumentId
	if documentId == "" {
		documentId = uuid.NewString()
	}

	now := s.clock()
	expiresAt := now.Add(s.defaultTTL)
	metadata := request.Metadata
	if metadata.ExpiresAt != "" {
		parsed, err := time.Parse(time.RFC3339, metadata.ExpiresAt)
		if err != nil {
			return nil, errors.Wrapf(persistence.ErrInvalidArgument, "invalid expiresAt %q: %v", metadata.ExpiresAt, err)
		}
		if !parsed.After(now) {
			return nil, errors.Wrapf(persistence.ErrInvalidArgument, "expiresAt %q is not in the future", metadata.ExpiresAt)
		}
		expiresAt = parsed
	}
	metadata.ExpiresAt = expiresAt.UTC().Format(time.RFC3339Nano)
	metadata.Size = int64(len(request.Content))

	doc := &data_models.Document{
		Reference: apimodel.DocumentReference{
			DocumentType: apimodel.DocumentTypeCamunda,
			StoreId:      apimodel.DefaultStoreId,
			DocumentId:   documentId,
			ContentHash:  ContentHash(request.Content),
			Metadata:     metadata,
		},
		Content:   append([]byte(nil), request.Content...),
		ExpiresAt: expiresAt,
	}
	if err := s.cache.Add(documentId, doc, expiresAt.Sub(now)); err != nil {
		return nil, errors.Wrapf(persistence.ErrAlreadyExists, "document with id '%v'", documentId)
	}
	s.logger.Debug("document created", tag.ID(documentId), tag.Value(metadata.Size))

	ref := doc.Reference
	return &ref, nil
}

func (s *inMemoryDocumentStore) GetDocument(_ context.Context, storeId, documentId string) (*data_models.Document, error) {
	if err := checkStore(storeId); err != nil {
		return nil, err
	}
	value, found := s.cache.Get(documentId)
	if !found {
		return nil, persistence.NewNotFoundError("document with id '%v'", documentId)
	}
	doc, ok := value.(*data_models.Document)
	if !ok {
		s.logger.Error("wrong type assertion when getting document", tag.ID(documentId))
		return nil, persistence.NewNotFoundError("document with id '%v'", documentId)
	}
	return doc, nil
}

func (s *inMemoryDocumentStore) CreateDocumentLink(
	ctx context.Context, request data_models.CreateDocumentLinkRequest,
) (*apimodel.DocumentLink, error) {
	doc, err := s.GetDocument(ctx, request.StoreId, request.DocumentId)
	if err != nil {
		return nil, err
	}
	if request.ContentHash != "" && request.ContentHash != doc.Reference.ContentHash {
		return nil, errors.Wrapf(persistence.ErrContentHashMismatch, "document with id '%v'", request.DocumentId)
	}
	return nil, errors.Wrap(persistence.ErrOperationNotSupported, "the in-memory document store does not support creating links")
}

func (s *inMemoryDocumentStore) DeleteDocument(ctx context.Context, storeId, documentId string) error {
	if _, err := s.GetDocument(ctx, storeId, documentId); err != nil {
		return err
	}
	s.cache.Delete(documentId)
	s.logger.Debug("document deleted", tag.ID(documentId))
	return nil
}

func (s *inMemoryDocumentStore) Close() error {
	s.cache.Flush()
	return nil
}
