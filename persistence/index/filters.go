// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package index

import (
	"github.com/camunda/camunda-sub002/apimodel"
)

// matches treats an empty filter value as a wildcard
func matches(want, got string) bool {
	return want == "" || want == got
}

func processDefinitionMatcher(filter apimodel.ProcessDefinitionFilter) func(apimodel.ProcessDefinition) bool {
	return func(d apimodel.ProcessDefinition) bool {
		return matches(filter.ProcessDefinitionId, d.ProcessDefinitionId) &&
			matches(filter.Name, d.Name) &&
			(filter.Version == nil || *filter.Version == d.Version)
	}
}

func processInstanceMatcher(filter apimodel.ProcessInstanceFilter) func(apimodel.ProcessInstance) bool {
	return func(pi apimodel.ProcessInstance) bool {
		return matches(filter.ProcessDefinitionId, pi.ProcessDefinitionId) &&
			matches(filter.ProcessDefinitionKey, pi.ProcessDefinitionKey)
	}
}

func jobMatcher(filter apimodel.JobFilter) func(apimodel.Job) bool {
	return func(job apimodel.Job) bool {
		return matches(filter.Type, job.Type)
	}
}

func variableMatcher(filter apimodel.VariableFilter) func(apimodel.Variable) bool {
	return func(v apimodel.Variable) bool {
		return matches(filter.Name, v.Name) &&
			matches(filter.Value, v.Value) &&
			matches(filter.ScopeKey, v.ScopeKey)
	}
}

func batchOperationMatcher(filter apimodel.BatchOperationFilter) func(apimodel.BatchOperation) bool {
	return func(b apimodel.BatchOperation) bool {
		return matches(string(filter.OperationType), string(b.BatchOperationType))
	}
}

func batchOperationItemMatcher(filter apimodel.BatchOperationItemFilter) func(apimodel.BatchOperationItem) bool {
	return func(item apimodel.BatchOperationItem) bool {
		return matches(filter.ItemKey, item.ItemKey) &&
			matches(filter.ProcessInstanceKey, item.ProcessInstanceKey)
	}
}

func userMatcher(filter apimodel.UserFilter) func(apimodel.User) bool {
	return func(u apimodel.User) bool {
		return matches(filter.Name, u.Name) && matches(filter.Email, u.Email)
	}
}

func mappingRuleMatcher(filter apimodel.MappingRuleFilter) func(apimodel.MappingRule) bool {
	return func(m apimodel.MappingRule) bool {
		return matches(filter.ClaimName, m.ClaimName) &&
			matches(filter.ClaimValue, m.ClaimValue) &&
			matches(filter.Name, m.Name)
	}
}

func processInstanceKeysOf(variables []apimodel.Variable) []string {
	seen := map[string]bool{}
	keys := make([]string, 0, len(variables))
	for _, v := range variables {
		if !seen[v.ProcessInstanceKey] {
			seen[v.ProcessInstanceKey] = true
			keys = append(keys, v.ProcessInstanceKey)
		}
	}
	return keys
}

// intersectKeys treats nil as the unrestricted set
func intersectKeys(current, next []string) []string {
	if current == nil {
		return next
	}
	allowed := map[string]bool{}
	for _, k := range next {
		allowed[k] = true
	}
	result := []string{}
	for _, k := range current {
		if allowed[k] {
			result = append(result, k)
		}
	}
	return result
}
