// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: BUSL-1.1

package api

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/camunda/camunda-sub002/common/log/tag"
	"github.com/camunda/camunda-sub002/config"
	"github.com/camunda/camunda-sub002/engine"
	"github.com/gin-gonic/gin"
)

const callerKey = "caller"

// Caller is the authenticated user of a request
type Caller struct {
	Username string
	// Admin is true when authorizations are disabled or the user has the admin role
	Admin bool
	// Tenants the caller may access, nil means all of them
	Tenants []string
}

var idPattern = regexp.MustCompile(engine.IdPattern)

// authenticate resolves the caller from basic authentication and stores it on the gin context
func (h *ginHandler) authenticate(c *gin.Context) {
	security := h.config.Security
	caller := Caller{Admin: true}

	if security.Authentication.Method == config.AuthenticationMethodBasic {
		username, password, ok := c.Request.BasicAuth()
		if !ok || !h.engine.Authenticate(username, password) {
			h.logger.Debug("rejected unauthenticated request", tag.Path(c.Request.URL.Path))
			h.abort(c, unauthorized())
			return
		}
		caller.Username = username
		caller.Admin = !security.Authorizations.Enabled || h.engine.IsAdmin(username)
		if security.MultiTenancy.ChecksEnabled {
			caller.Tenants = h.engine.TenantsOf(username)
		}
	}
	c.Set(callerKey, caller)
	c.Next()
}

func callerOf(c *gin.Context) Caller {
	if caller, ok := c.Get(callerKey); ok {
		return caller.(Caller)
	}
	return Caller{Admin: true}
}

// requireAdmin rejects callers without the admin role, e.g. operation CREATE on resource TENANT
func requireAdmin(caller Caller, operation, resource string) *ErrorWithStatus {
	if caller.Admin {
		return nil
	}
	return forbidden(engine.ForbiddenRejection(operation, resource).Message)
}

// resolveTenant returns the tenant a command applies to
func (s *serviceImpl) resolveTenant(caller Caller, tenantId string) (string, *ErrorWithStatus) {
	if tenantId == "" {
		tenantId = apimodel.DefaultTenantId
	}
	if !s.cfg.Security.MultiTenancy.ChecksEnabled {
		if tenantId != apimodel.DefaultTenantId {
			return "", invalidArgument(fmt.Sprintf(
				"Expected to handle request with tenant identifier '%v', but multi-tenancy is disabled", tenantId))
		}
		return tenantId, nil
	}
	if tenantId != apimodel.DefaultTenantId {
		var v violations
		v.id("tenantId", tenantId)
		if errResp := v.err(); errResp != nil {
			return "", errResp
		}
	}
	if caller.Tenants != nil && !slices.Contains(caller.Tenants, tenantId) {
		return "", forbidden(fmt.Sprintf(
			"Expected to handle request with tenant identifier '%v', but the user is not assigned to this tenant",
			tenantId))
	}
	return tenantId, nil
}

// violations collects the problems of a request, they are reported in one detail
type violations []string

// id checks an identifier, e.g. a roleId
func (v *violations) id(name, value string) {
	switch {
	case value == "":
		*v = append(*v, fmt.Sprintf("No %v provided.", name))
	case len(value) > engine.MaxIdLength:
		*v = append(*v, fmt.Sprintf("The provided %v exceeds the limit of %d characters.", name, engine.MaxIdLength))
	case !idPattern.MatchString(value):
		*v = append(*v, fmt.Sprintf(
			"The provided %v contains illegal characters. It must match the pattern '%v'.", name, engine.IdPattern))
	}
}

func (v *violations) required(name, value string) {
	if value == "" {
		*v = append(*v, fmt.Sprintf("No %v provided.", name))
	}
}

func (v violations) err() *ErrorWithStatus {
	if len(v) == 0 {
		return nil
	}
	return invalidArgument(strings.Join(v, " "))
}
