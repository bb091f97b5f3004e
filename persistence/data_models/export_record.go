// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package data_models

import (
	"encoding/json"
	"fmt"
	"time"
)

// ExportRecord is one change of the primary state as it is shipped to the index
type ExportRecord struct {
	// Position is strictly increasing across all records of the primary state
	Position  int64
	Kind      RecordKind
	Intent    RecordIntent
	Key       string
	TenantId  string
	State     string
	ParentKey string
	// Payload is the JSON document, empty for deletions
	Payload   json.RawMessage
	Timestamp time.Time
}

func (r ExportRecord) String() string {
	return fmt.Sprintf("%v %v/%v@%v", r.Intent, r.Kind, r.Key, r.Position)
}

// Membership is the payload of the role, group and tenant member records
type Membership struct {
	OwnerId    string     `json:"ownerId"`
	MemberType MemberType `json:"memberType"`
	MemberId   string     `json:"memberId"`
}

func MembershipKey(ownerId string, memberType MemberType, memberId string) string {
	return ownerId + "/" + string(memberType) + "/" + memberId
}
