package api

import (
	"time"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/camunda/camunda-sub002/common/log"
	"github.com/camunda/camunda-sub002/common/log/tag"
	"github.com/camunda/camunda-sub002/config"
	"github.com/camunda/camunda-sub002/engine"
	"github.com/camunda/camunda-sub002/persistence"
	"github.com/camunda/camunda-sub002/persistence/data_models"
	"github.com/gin-gonic/gin"
)

const PathPrefix = "/v2"

func NewAPIServiceGinController(
	cfg config.Config, apiEngine *engine.Engine, index persistence.IndexStore, documents persistence.DocumentStore,
	logger log.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	handler := newGinHandler(cfg, apiEngine, index, documents, logger)
	router.NoRoute(handler.NoRoute)

	v2 := router.Group(PathPrefix, handler.authenticate)
	v2.GET("/topology", handler.Topology)

	v2.POST("/deployments", handler.Deploy)
	v2.GET("/process-definitions/:key", handler.GetProcessDefinition)
	v2.GET("/process-definitions/:key/xml", handler.GetProcessDefinitionXML)
	v2.POST("/process-definitions/search", search(handler, handler.svc.SearchProcessDefinitions))

	v2.POST("/process-instances", handler.CreateProcessInstance)
	v2.GET("/process-instances/:key", handler.GetProcessInstance)
	v2.POST("/process-instances/search", search(handler, handler.svc.SearchProcessInstances))
	v2.POST("/process-instances/:key/cancellation", handler.CancelProcessInstance)
	v2.POST("/process-instances/cancellation",
		handler.createBatchOperation(apimodel.BatchOperationTypeCancelProcessInstance))
	v2.POST("/process-instances/deletion",
		handler.createBatchOperation(apimodel.BatchOperationTypeDeleteProcessInstance))

	v2.POST("/jobs/search", search(handler, handler.svc.SearchJobs))
	v2.POST("/jobs/:key/completion", handler.CompleteJob)

	v2.PUT("/element-instances/:key/variables", handler.SetVariables)
	v2.GET("/variables/:key", handler.GetVariable)
	v2.POST("/variables/search", search(handler, handler.svc.SearchVariables))

	v2.GET("/batch-operations/:key", handler.GetBatchOperation)
	v2.POST("/batch-operations/search", search(handler, handler.svc.SearchBatchOperations))
	v2.POST("/batch-operations/:key/cancellation", handler.changeBatchOperation(BatchOperationCancellation))
	v2.POST("/batch-operations/:key/suspension", handler.changeBatchOperation(BatchOperationSuspension))
	v2.POST("/batch-operations/:key/resumption", handler.changeBatchOperation(BatchOperationResumption))
	v2.POST("/batch-operation-items/search", search(handler, handler.svc.SearchBatchOperationItems))

	v2.POST("/users", handler.CreateUser)
	v2.GET("/users/:id", handler.GetUser)
	v2.PUT("/users/:id", handler.UpdateUser)
	v2.DELETE("/users/:id", handler.DeleteUser)
	v2.POST("/users/search", search(handler, handler.svc.SearchUsers))

	v2.POST("/roles", handler.CreateRole)
	v2.GET("/roles/:id", handler.GetRole)
	v2.PUT("/roles/:id", handler.UpdateRole)
	v2.DELETE("/roles/:id", handler.DeleteRole)
	v2.POST("/roles/search", search(handler, handler.svc.SearchRoles))

	v2.POST("/groups", handler.CreateGroup)
	v2.GET("/groups/:id", handler.GetGroup)
	v2.PUT("/groups/:id", handler.UpdateGroup)
	v2.DELETE("/groups/:id", handler.DeleteGroup)
	v2.POST("/groups/search", search(handler, handler.svc.SearchGroups))

	v2.POST("/tenants", handler.CreateTenant)
	v2.GET("/tenants/:id", handler.GetTenant)
	v2.PUT("/tenants/:id", handler.UpdateTenant)
	v2.DELETE("/tenants/:id", handler.DeleteTenant)
	v2.POST("/tenants/search", search(handler, handler.svc.SearchTenants))

	v2.POST("/mapping-rules", handler.CreateMappingRule)
	v2.GET("/mapping-rules/:id", handler.GetMappingRule)
	v2.PUT("/mapping-rules/:id", handler.UpdateMappingRule)
	v2.DELETE("/mapping-rules/:id", handler.DeleteMappingRule)
	v2.POST("/mapping-rules/search", search(handler, handler.svc.SearchMappingRules))

	memberships := []struct {
		owner      engine.Owner
		members    string
		memberType data_models.MemberType
	}{
		{engine.RoleOwner, "users", data_models.MemberTypeUser},
		{engine.RoleOwner, "groups", data_models.MemberTypeGroup},
		{engine.RoleOwner, "mapping-rules", data_models.MemberTypeMappingRule},
		{engine.GroupOwner, "users", data_models.MemberTypeUser},
		{engine.TenantOwner, "users", data_models.MemberTypeUser},
		{engine.TenantOwner, "groups", data_models.MemberTypeGroup},
		{engine.TenantOwner, "roles", data_models.MemberTypeRole},
	}
	for _, m := range memberships {
		path := "/" + m.owner.Name() + "s/:id/" + m.members + "/:memberId"
		v2.PUT(path, handler.assignMember(m.owner, m.memberType, true))
		v2.DELETE(path, handler.assignMember(m.owner, m.memberType, false))
	}
	for _, owner := range []engine.Owner{engine.RoleOwner, engine.GroupOwner, engine.TenantOwner} {
		v2.POST("/"+owner.Name()+"s/:id/users/search", handler.searchUserMembers(owner))
	}

	v2.POST("/documents", handler.CreateDocument)
	v2.GET("/documents/:id", handler.GetDocument)
	v2.DELETE("/documents/:id", handler.DeleteDocument)
	v2.POST("/documents/:id/links", handler.CreateDocumentLink)

	return router
}

func requestLogger(logger log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("served API request",
			tag.Method(c.Request.Method),
			tag.Path(c.Request.URL.Path),
			tag.StatusCode(c.Writer.Status()),
			tag.Elapsed(time.Since(start)))
	}
}
