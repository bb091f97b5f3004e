// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package apimodel

const (
	DocumentTypeCamunda = "camunda"
	DefaultStoreId      = "in-memory"
)

type DocumentMetadata struct {
	ContentType         string         `json:"contentType,omitempty"`
	FileName            string         `json:"fileName,omitempty"`
	ExpiresAt           string         `json:"expiresAt,omitempty"`
	Size                int64          `json:"size,omitempty"`
	ProcessDefinitionId string         `json:"processDefinitionId,omitempty"`
	ProcessInstanceKey  string         `json:"processInstanceKey,omitempty"`
	CustomProperties    map[string]any `json:"customProperties,omitempty"`
}

type DocumentReference struct {
	DocumentType string           `json:"camunda.document.type"`
	StoreId      string           `json:"storeId"`
	DocumentId   string           `json:"documentId"`
	ContentHash  string           `json:"contentHash"`
	Metadata     DocumentMetadata `json:"metadata"`
}

type DocumentLinkRequest struct {
	// TimeToLive of the link in milliseconds
	TimeToLive int64 `json:"timeToLive,omitempty"`
}

type DocumentLink struct {
	Url       string `json:"url"`
	ExpiresAt string `json:"expiresAt"`
}
