// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package data_models

import (
	"time"

	"github.com/camunda/camunda-sub002/apimodel"
)

type (
	CreateDocumentRequest struct {
		StoreId string
		// DocumentId is generated when empty
		DocumentId string
		Content    []byte
		Metadata   apimodel.DocumentMetadata
	}

	Document struct {
		Reference apimodel.DocumentReference
		Content   []byte
		ExpiresAt time.Time
	}

	CreateDocumentLinkRequest struct {
		StoreId     string
		DocumentId  string
		ContentHash string
		TimeToLive  time.Duration
	}
)
