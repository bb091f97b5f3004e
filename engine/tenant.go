// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/camunda/camunda-sub002/persistence/primary"
)

func (e *Engine) CreateTenant(_ context.Context, request apimodel.TenantCreateRequest) (*apimodel.Tenant, error) {
	var created apimodel.Tenant
	err := e.store.Update(func(state *primary.State) error {
		if _, ok := state.Tenant(request.TenantId); ok {
			return reject(RejectionAlreadyExists,
				"Expected to create tenant with tenant ID '%v', but a tenant with this ID already exists.",
				request.TenantId)
		}
		tenant := &primary.Entity{Id: request.TenantId, Name: request.Name, Description: request.Description}
		state.PutTenant(tenant)
		created = tenant.ToTenant()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (e *Engine) UpdateTenant(
	_ context.Context, tenantId string, request apimodel.TenantUpdateRequest,
) (*apimodel.Tenant, error) {
	var updated apimodel.Tenant
	err := e.store.Update(func(state *primary.State) error {
		tenant, ok := state.Tenant(tenantId)
		if !ok {
			return ownerNotFound(TenantOwner, "update", tenantId)
		}
		tenant.Name = request.Name
		tenant.Description = request.Description
		state.PutTenant(tenant)
		updated = tenant.ToTenant()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (e *Engine) DeleteTenant(_ context.Context, tenantId string) error {
	return e.store.Update(func(state *primary.State) error {
		if _, ok := state.Tenant(tenantId); !ok {
			return ownerNotFound(TenantOwner, "delete", tenantId)
		}
		if tenantId == apimodel.DefaultTenantId {
			return reject(RejectionInvalidArgument, "The default tenant cannot be deleted.")
		}
		state.TenantMembers.RemoveOwner(tenantId)
		state.DeleteTenant(tenantId)
		return nil
	})
}
