// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package acceptance

import (
	"context"
	"testing"
	"time"

	"github.com/camunda/camunda-sub002/acceptance/testhelper"
	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/camunda/camunda-sub002/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentLifecycle(t *testing.T) {
	ctx := context.Background()
	content := []byte("invoice 2024-001")

	ref, err := adminClient.CreateDocument(ctx, client.CreateDocumentRequest{
		Content: content,
		Metadata: apimodel.DocumentMetadata{
			FileName:         "invoice.txt",
			ContentType:      "text/plain",
			CustomProperties: map[string]any{"customer": "acme"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, apimodel.DocumentTypeCamunda, ref.DocumentType)
	assert.Equal(t, apimodel.DefaultStoreId, ref.StoreId)
	assert.NotEmpty(t, ref.DocumentId)
	assert.NotEmpty(t, ref.ContentHash)
	assert.Equal(t, "invoice.txt", ref.Metadata.FileName)
	assert.Equal(t, int64(len(content)), ref.Metadata.Size)
	assert.NotEmpty(t, ref.Metadata.ExpiresAt)

	downloaded, err := adminClient.GetDocumentContent(ctx, ref.DocumentId, ref.StoreId, ref.ContentHash)
	require.NoError(t, err)
	assert.Equal(t, content, downloaded)

	_, err = adminClient.GetDocumentContent(ctx, ref.DocumentId, "", "not-the-hash")
	assert.True(t, client.IsProblem(err, 400), "unexpected error %v", err)

	require.NoError(t, adminClient.DeleteDocument(ctx, ref.DocumentId, ref.StoreId))
	_, err = adminClient.GetDocumentContent(ctx, ref.DocumentId, "", "")
	assert.True(t, client.IsProblem(err, 404), "unexpected error %v", err)
	err = adminClient.DeleteDocument(ctx, ref.DocumentId, "")
	assert.True(t, client.IsProblem(err, 404), "unexpected error %v", err)
}

func TestDocumentWithCustomId(t *testing.T) {
	ctx := context.Background()
	documentId := testhelper.RandomId("document")
	request := client.CreateDocumentRequest{Content: []byte("{}"), DocumentId: documentId}

	ref, err := adminClient.CreateDocument(ctx, request)
	require.NoError(t, err)
	assert.Equal(t, documentId, ref.DocumentId)

	_, err = adminClient.CreateDocument(ctx, request)
	assert.True(t, client.IsProblem(err, 409), "unexpected error %v", err)

	request.DocumentId = testhelper.RandomId("document")
	request.StoreId = "unknown-store"
	_, err = adminClient.CreateDocument(ctx, request)
	assert.True(t, client.IsProblem(err, 400), "unexpected error %v", err)
}

func TestDocumentLinksAreNotSupportedByTheInMemoryStore(t *testing.T) {
	ctx := context.Background()
	ref, err := adminClient.CreateDocument(ctx, client.CreateDocumentRequest{Content: []byte("link me")})
	require.NoError(t, err)

	_, err = adminClient.CreateDocumentLink(ctx, ref.DocumentId, client.DocumentLinkRequest{TimeToLive: time.Minute})
	assert.True(t, client.IsProblem(err, 405), "unexpected error %v", err)

	_, err = adminClient.CreateDocumentLink(ctx, ref.DocumentId, client.DocumentLinkRequest{TimeToLive: -time.Minute})
	assert.True(t, client.IsProblem(err, 400), "unexpected error %v", err)
}
