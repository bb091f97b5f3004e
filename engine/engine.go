// Copyright (c) 2023 xCherryIO Organization
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"context"
	"slices"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/camunda/camunda-sub002/common/log"
	"github.com/camunda/camunda-sub002/common/log/tag"
	"github.com/camunda/camunda-sub002/config"
	"github.com/camunda/camunda-sub002/persistence"
	"github.com/camunda/camunda-sub002/persistence/data_models"
	"github.com/camunda/camunda-sub002/persistence/primary"
)

// Engine processes the commands of the emulated cluster against the primary state.
// It never reads the index except to resolve the items of batch operations.
type Engine struct {
	cfg           config.Config
	store         *primary.Store
	index         persistence.IndexStore
	batchExecutor BatchOperationExecutor
	logger        log.Logger
}

func NewEngine(
	rootCtx context.Context, cfg config.Config, store *primary.Store, index persistence.IndexStore, logger log.Logger,
) *Engine {
	e := &Engine{
		cfg:    cfg,
		store:  store,
		index:  index,
		logger: logger.WithTags(tag.Service("engine")),
	}
	e.batchExecutor = NewBatchOperationExecutor(rootCtx, cfg.BatchOperation, e, logger)
	return e
}

func (e *Engine) Start() error {
	return e.batchExecutor.Start()
}

func (e *Engine) Stop(ctx context.Context) error {
	return e.batchExecutor.Stop(ctx)
}

// Bootstrap creates the default tenant and the initial admin, once
func (e *Engine) Bootstrap(_ context.Context) error {
	admin := e.cfg.Security.InitialAdmin
	var hash []byte
	if admin.Username != "" {
		var err error
		if hash, err = hashPassword(admin.Password); err != nil {
			return err
		}
	}
	return e.store.Update(func(state *primary.State) error {
		if _, ok := state.Tenant(apimodel.DefaultTenantId); !ok {
			state.PutTenant(&primary.Entity{Id: apimodel.DefaultTenantId, Name: DefaultTenantName})
		}
		if _, ok := state.Role(AdminRoleId); !ok {
			state.PutRole(&primary.Entity{Id: AdminRoleId, Name: "Admin"})
		}
		if admin.Username == "" {
			return nil
		}
		if _, ok := state.User(admin.Username); !ok {
			state.PutUser(&primary.User{Username: admin.Username, Name: admin.Username, PasswordHash: hash})
			e.logger.Info("created initial admin user", tag.ID(admin.Username))
		}
		state.RoleMembers.Add(AdminRoleId, data_models.MemberTypeUser, admin.Username)
		state.TenantMembers.Add(apimodel.DefaultTenantId, data_models.MemberTypeUser, admin.Username)
		return nil
	})
}

// visible tells whether a resource of the tenant is visible with the allowed tenants, nil allows all
func visible(tenants []string, tenantId string) bool {
	return tenants == nil || slices.Contains(tenants, tenantId)
}
