// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"time"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/pkg/errors"
)

type CreateDocumentRequest struct {
	Content []byte
	// StoreId and DocumentId are optional, the cluster picks them when empty
	StoreId    string
	DocumentId string
	Metadata   apimodel.DocumentMetadata
}

type DocumentLinkRequest struct {
	StoreId     string
	ContentHash string
	// TimeToLive of the link, the cluster default applies when zero
	TimeToLive time.Duration
}

func (c *Client) CreateDocument(ctx context.Context, request CreateDocumentRequest) (*apimodel.DocumentReference, error) {
	if request.Content == nil {
		return nil, &ValidationError{Field: "content", Reason: "must not be empty"}
	}
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	fileName := request.Metadata.FileName
	if fileName == "" {
		fileName = "file"
	}
	contentType := request.Metadata.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write document content")
	}
	if _, err := part.Write(request.Content); err != nil {
		return nil, errors.Wrap(err, "failed to write document content")
	}

	metadata, err := json.Marshal(request.Metadata)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode document metadata")
	}
	header = textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="metadata"`)
	header.Set("Content-Type", contentTypeJSON)
	part, err = writer.CreatePart(header)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write document metadata")
	}
	if _, err := part.Write(metadata); err != nil {
		return nil, errors.Wrap(err, "failed to write document metadata")
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to close multipart body")
	}

	query := url.Values{}
	if request.StoreId != "" {
		query.Set("storeId", request.StoreId)
	}
	if request.DocumentId != "" {
		query.Set("documentId", request.DocumentId)
	}
	resp := &apimodel.DocumentReference{}
	err = c.send(ctx, http.MethodPost, withQuery(pathOf("documents"), query), body, writer.FormDataContentType(), resp)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// GetDocumentContent downloads the document. A non empty contentHash must match the stored one.
func (c *Client) GetDocumentContent(ctx context.Context, documentId, storeId, contentHash string) ([]byte, error) {
	if err := requireNonEmpty("documentId", documentId); err != nil {
		return nil, err
	}
	query := url.Values{}
	if storeId != "" {
		query.Set("storeId", storeId)
	}
	if contentHash != "" {
		query.Set("contentHash", contentHash)
	}
	var raw []byte
	if err := c.getJSON(ctx, withQuery(pathOf("documents", documentId), query), &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		raw = []byte{}
	}
	return raw, nil
}

func (c *Client) CreateDocumentLink(
	ctx context.Context, documentId string, request DocumentLinkRequest,
) (*apimodel.DocumentLink, error) {
	if err := requireNonEmpty("documentId", documentId); err != nil {
		return nil, err
	}
	query := url.Values{}
	if request.StoreId != "" {
		query.Set("storeId", request.StoreId)
	}
	if request.ContentHash != "" {
		query.Set("contentHash", request.ContentHash)
	}
	resp := &apimodel.DocumentLink{}
	err := c.postJSON(ctx, withQuery(pathOf("documents", documentId, "links"), query),
		apimodel.DocumentLinkRequest{TimeToLive: request.TimeToLive.Milliseconds()}, resp)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) DeleteDocument(ctx context.Context, documentId, storeId string) error {
	if err := requireNonEmpty("documentId", documentId); err != nil {
		return err
	}
	query := url.Values{}
	if storeId != "" {
		query.Set("storeId", storeId)
	}
	return c.deleteJSON(ctx, withQuery(pathOf("documents", documentId), query))
}

func withQuery(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}
