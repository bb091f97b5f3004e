// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: BUSL-1.1

package api

import (
	"cmp"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/camunda/camunda-sub002/apimodel"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	DefaultPageLimit = 100
	MaxPageLimit     = 10000
)

// toSearchResponse sorts and pages the matches of a search
func toSearchResponse[T any](
	items []T, page *apimodel.SearchQueryPage, sorts []apimodel.SearchQuerySort,
) (*apimodel.SearchResponse[T], *ErrorWithStatus) {
	from, limit := 0, DefaultPageLimit
	if page != nil {
		from = page.From
		if page.Limit != 0 {
			limit = page.Limit
		}
	}
	if from < 0 || limit < 0 || limit > MaxPageLimit {
		return nil, invalidArgument(fmt.Sprintf(
			"Expected page.from to be non-negative and page.limit between 1 and %d, but got from '%d' and limit '%d'.",
			MaxPageLimit, from, limit))
	}
	if errResp := sortItems(items, sorts); errResp != nil {
		return nil, errResp
	}

	total := len(items)
	start := min(from, total)
	end := min(start+limit, total)
	paged := make([]T, end-start)
	copy(paged, items[start:end])
	return &apimodel.SearchResponse[T]{
		Items: paged,
		Page:  apimodel.SearchResponsePage{TotalItems: int64(total)},
	}, nil
}

// sortItems orders by the json fields named in sorts, strings follow English collation
func sortItems[T any](items []T, sorts []apimodel.SearchQuerySort) *ErrorWithStatus {
	if len(sorts) == 0 {
		return nil
	}
	typ := reflect.TypeOf((*T)(nil)).Elem()
	fields := make([]int, len(sorts))
	for i, s := range sorts {
		index, ok := fieldByJSONName(typ, s.Field)
		if !ok {
			return invalidArgument(fmt.Sprintf("Unknown sort field '%v'.", s.Field))
		}
		if s.Order != "" && s.Order != apimodel.SortOrderAsc && s.Order != apimodel.SortOrderDesc {
			return invalidArgument(fmt.Sprintf("Unknown sort order '%v'.", s.Order))
		}
		fields[i] = index
	}

	collator := collate.New(language.English)
	sort.SliceStable(items, func(a, b int) bool {
		va, vb := reflect.ValueOf(items[a]), reflect.ValueOf(items[b])
		for i, s := range sorts {
			c := compareValues(collator, va.Field(fields[i]), vb.Field(fields[i]))
			if s.Order == apimodel.SortOrderDesc {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		return false
	})
	return nil
}

func fieldByJSONName(typ reflect.Type, name string) (int, bool) {
	if typ.Kind() != reflect.Struct {
		return 0, false
	}
	for i := 0; i < typ.NumField(); i++ {
		jsonName, _, _ := strings.Cut(typ.Field(i).Tag.Get("json"), ",")
		if jsonName == name && name != "" {
			return i, true
		}
	}
	return 0, false
}

func compareValues(collator *collate.Collator, a, b reflect.Value) int {
	switch a.Kind() {
	case reflect.String:
		return collator.CompareString(a.String(), b.String())
	case reflect.Int, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case reflect.Bool:
		return cmp.Compare(boolRank(a.Bool()), boolRank(b.Bool()))
	default:
		return strings.Compare(fmt.Sprint(a.Interface()), fmt.Sprint(b.Interface()))
	}
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
