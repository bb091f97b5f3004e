// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package testhelper

import (
	"testing"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// AssertSortedByName checks that items follow the locale-aware order of their names
func AssertSortedByName[T any](t testing.TB, items []T, name func(T) string, order apimodel.SortOrder) {
	t.Helper()
	collator := collate.New(language.English)
	for i := 1; i < len(items); i++ {
		prev, cur := name(items[i-1]), name(items[i])
		c := collator.CompareString(prev, cur)
		if order == apimodel.SortOrderDesc {
			c = -c
		}
		assert.LessOrEqualf(t, c, 0, "%q is not sorted before %q in %v order", prev, cur, order)
	}
}
