package api

import (
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/camunda/camunda-sub002/apimodel"
	"github.com/camunda/camunda-sub002/common/log"
	"github.com/camunda/camunda-sub002/common/log/tag"
	"github.com/camunda/camunda-sub002/config"
	"github.com/camunda/camunda-sub002/engine"
	"github.com/camunda/camunda-sub002/persistence"
	"github.com/camunda/camunda-sub002/persistence/data_models"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

type ginHandler struct {
	config config.Config
	engine *engine.Engine
	logger log.Logger
	svc    Service
}

func newGinHandler(
	cfg config.Config, apiEngine *engine.Engine, index persistence.IndexStore, documents persistence.DocumentStore,
	logger log.Logger,
) *ginHandler {
	svc := NewServiceImpl(cfg, apiEngine, index, documents, logger)
	return &ginHandler{
		config: cfg,
		engine: apiEngine,
		logger: logger,
		svc:    svc,
	}
}

// abort writes the problem detail of the error, the instance is the request path
func (h *ginHandler) abort(c *gin.Context, errResp *ErrorWithStatus) {
	problem := errResp.Problem
	problem.Instance = c.Request.URL.Path
	c.Header("Content-Type", apimodel.ProblemContentType)
	c.AbortWithStatusJSON(errResp.StatusCode, problem)
}

// bind decodes the JSON body, an empty body leaves req untouched
func (h *ginHandler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		h.abort(c, invalidArgument("Request property cannot be parsed: "+err.Error()))
		return false
	}
	h.logger.Debug("received API request",
		tag.Method(c.Request.Method), tag.Path(c.Request.URL.Path), tag.Value(h.toJson(req)))
	return true
}

func (h *ginHandler) respond(c *gin.Context, status int, resp any, errResp *ErrorWithStatus) {
	if errResp != nil {
		h.abort(c, errResp)
		return
	}
	if resp == nil {
		c.Status(status)
		return
	}
	c.JSON(status, resp)
}

func (h *ginHandler) respondNoContent(c *gin.Context, errResp *ErrorWithStatus) {
	h.respond(c, http.StatusNoContent, nil, errResp)
}

// search returns the handler of a search endpoint
func search[F any, T any](
	h *ginHandler,
	fn func(ctx context.Context, caller Caller, request apimodel.SearchRequest[F]) (
		*apimodel.SearchResponse[T], *ErrorWithStatus),
) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req apimodel.SearchRequest[F]
		if !h.bind(c, &req) {
			return
		}
		resp, errResp := fn(c.Request.Context(), callerOf(c), req)
		h.respond(c, http.StatusOK, resp, errResp)
	}
}

func (h *ginHandler) Topology(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Topology(c.Request.Context()))
}

// process definitions

func (h *ginHandler) Deploy(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		h.abort(c, invalidArgument("Expected a multipart request with resources: "+err.Error()))
		return
	}
	var resources []engine.DeploymentResource
	for _, file := range form.File["resources"] {
		content, err := readFormFile(file.Open)
		if err != nil {
			h.abort(c, invalidArgument("Failed to read resource '"+file.Filename+"': "+err.Error()))
			return
		}
		resources = append(resources, engine.DeploymentResource{Name: file.Filename, Content: content})
	}
	h.logger.Debug("received deployment", tag.Value(len(resources)))

	resp, errResp := h.svc.Deploy(c.Request.Context(), callerOf(c), c.PostForm("tenantId"), resources)
	h.respond(c, http.StatusOK, resp, errResp)
}

func (h *ginHandler) GetProcessDefinition(c *gin.Context) {
	resp, errResp := h.svc.GetProcessDefinition(c.Request.Context(), callerOf(c), c.Param("key"))
	h.respond(c, http.StatusOK, resp, errResp)
}

func (h *ginHandler) GetProcessDefinitionXML(c *gin.Context) {
	xml, errResp := h.svc.GetProcessDefinitionXML(c.Request.Context(), callerOf(c), c.Param("key"))
	if errResp != nil {
		h.abort(c, errResp)
		return
	}
	c.Data(http.StatusOK, "text/xml", []byte(xml))
}

// process instances

func (h *ginHandler) CreateProcessInstance(c *gin.Context) {
	var req apimodel.CreateProcessInstanceRequest
	if !h.bind(c, &req) {
		return
	}
	resp, errResp := h.svc.CreateProcessInstance(c.Request.Context(), callerOf(c), req)
	h.respond(c, http.StatusOK, resp, errResp)
}

func (h *ginHandler) GetProcessInstance(c *gin.Context) {
	resp, errResp := h.svc.GetProcessInstance(c.Request.Context(), callerOf(c), c.Param("key"))
	h.respond(c, http.StatusOK, resp, errResp)
}

func (h *ginHandler) CancelProcessInstance(c *gin.Context) {
	h.respondNoContent(c, h.svc.CancelProcessInstance(c.Request.Context(), callerOf(c), c.Param("key")))
}

func (h *ginHandler) CompleteJob(c *gin.Context) {
	var req apimodel.JobCompletionRequest
	if !h.bind(c, &req) {
		return
	}
	h.respondNoContent(c, h.svc.CompleteJob(c.Request.Context(), callerOf(c), c.Param("key"), req))
}

func (h *ginHandler) SetVariables(c *gin.Context) {
	var req apimodel.SetVariableRequest
	if !h.bind(c, &req) {
		return
	}
	h.respondNoContent(c, h.svc.SetVariables(c.Request.Context(), callerOf(c), c.Param("key"), req))
}

func (h *ginHandler) GetVariable(c *gin.Context) {
	resp, errResp := h.svc.GetVariable(c.Request.Context(), callerOf(c), c.Param("key"))
	h.respond(c, http.StatusOK, resp, errResp)
}

// batch operations

func (h *ginHandler) createBatchOperation(operationType apimodel.BatchOperationType) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req apimodel.ProcessInstanceBatchRequest
		if !h.bind(c, &req) {
			return
		}
		resp, errResp := h.svc.CreateBatchOperation(c.Request.Context(), callerOf(c), operationType, req)
		h.respond(c, http.StatusOK, resp, errResp)
	}
}

func (h *ginHandler) GetBatchOperation(c *gin.Context) {
	resp, errResp := h.svc.GetBatchOperation(c.Request.Context(), callerOf(c), c.Param("key"))
	h.respond(c, http.StatusOK, resp, errResp)
}

func (h *ginHandler) changeBatchOperation(change BatchOperationChange) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.respondNoContent(c, h.svc.ChangeBatchOperation(c.Request.Context(), callerOf(c), c.Param("key"), change))
	}
}

// identity

func (h *ginHandler) CreateUser(c *gin.Context) {
	var req apimodel.UserRequest
	if !h.bind(c, &req) {
		return
	}
	resp, errResp := h.svc.CreateUser(c.Request.Context(), callerOf(c), req)
	h.respond(c, http.StatusCreated, resp, errResp)
}

func (h *ginHandler) GetUser(c *gin.Context) {
	resp, errResp := h.svc.GetUser(c.Request.Context(), callerOf(c), c.Param("id"))
	h.respond(c, http.StatusOK, resp, errResp)
}

func (h *ginHandler) UpdateUser(c *gin.Context) {
	var req apimodel.UserUpdateRequest
	if !h.bind(c, &req) {
		return
	}
	resp, errResp := h.svc.UpdateUser(c.Request.Context(), callerOf(c), c.Param("id"), req)
	h.respond(c, http.StatusOK, resp, errResp)
}

func (h *ginHandler) DeleteUser(c *gin.Context) {
	h.respondNoContent(c, h.svc.DeleteUser(c.Request.Context(), callerOf(c), c.Param("id")))
}

func (h *ginHandler) CreateRole(c *gin.Context) {
	var req apimodel.RoleCreateRequest
	if !h.bind(c, &req) {
		return
	}
	resp, errResp := h.svc.CreateRole(c.Request.Context(), callerOf(c), req)
	h.respond(c, http.StatusCreated, resp, errResp)
}

func (h *ginHandler) GetRole(c *gin.Context) {
	resp, errResp := h.svc.GetRole(c.Request.Context(), callerOf(c), c.Param("id"))
	h.respond(c, http.StatusOK, resp, errResp)
}

func (h *ginHandler) UpdateRole(c *gin.Context) {
	var req apimodel.RoleUpdateRequest
	if !h.bind(c, &req) {
		return
	}
	resp, errResp := h.svc.UpdateRole(c.Request.Context(), callerOf(c), c.Param("id"), req)
	h.respond(c, http.StatusOK, resp, errResp)
}

func (h *ginHandler) DeleteRole(c *gin.Context) {
	h.respondNoContent(c, h.svc.DeleteRole(c.Request.Context(), callerOf(c), c.Param("id")))
}

func (h *ginHandler) CreateGroup(c *gin.Context) {
	var req apimodel.GroupCreateRequest
	if !h.bind(c, &req) {
		return
	}
	resp, errResp := h.svc.CreateGroup(c.Request.Context(), callerOf(c), req)
	h.respond(c, http.StatusCreated, resp, errResp)
}

func (h *ginHandler) GetGroup(c *gin.Context) {
	resp, errResp := h.svc.GetGroup(c.Request.Context(), callerOf(c), c.Param("id"))
	h.respond(c, http.StatusOK, resp, errResp)
}

func (h *ginHandler) UpdateGroup(c *gin.Context) {
	var req apimodel.GroupUpdateRequest
	if !h.bind(c, &req) {
		return
	}
	resp, errResp := h.svc.UpdateGroup(c.Request.Context(), callerOf(c), c.Param("id"), req)
	h.respond(c, http.StatusOK, resp, errResp)
}

func (h *ginHandler) DeleteGroup(c *gin.Context) {
	h.respondNoContent(c, h.svc.DeleteGroup(c.Request.Context(), callerOf(c), c.Param("id")))
}

func (h *ginHandler) CreateTenant(c *gin.Context) {
	var req apimodel.TenantCreateRequest
	if !h.bind(c, &req) {
		return
	}
	resp, errResp := h.svc.CreateTenant(c.Request.Context(), callerOf(c), req)
	h.respond(c, http.StatusCreated, resp, errResp)
}

func (h *ginHandler) GetTenant(c *gin.Context) {
	resp, errResp := h.svc.GetTenant(c.Request.Context(), callerOf(c), c.Param("id"))
	h.respond(c, http.StatusOK, resp, errResp)
}

func (h *ginHandler) UpdateTenant(c *gin.Context) {
	var req apimodel.TenantUpdateRequest
	if !h.bind(c, &req) {
		return
	}
	resp, errResp := h.svc.UpdateTenant(c.Request.Context(), callerOf(c), c.Param("id"), req)
	h.respond(c, http.StatusOK, resp, errResp)
}

func (h *ginHandler) DeleteTenant(c *gin.Context) {
	h.respondNoContent(c, h.svc.DeleteTenant(c.Request.Context(), callerOf(c), c.Param("id")))
}

func (h *ginHandler) CreateMappingRule(c *gin.Context) {
	var req apimodel.MappingRuleCreateRequest
	if !h.bind(c, &req) {
		return
	}
	resp, errResp := h.svc.CreateMappingRule(c.Request.Context(), callerOf(c), req)
	h.respond(c, http.StatusCreated, resp, errResp)
}

func (h *ginHandler) GetMappingRule(c *gin.Context) {
	resp, errResp := h.svc.GetMappingRule(c.Request.Context(), callerOf(c), c.Param("id"))
	h.respond(c, http.StatusOK, resp, errResp)
}

func (h *ginHandler) UpdateMappingRule(c *gin.Context) {
	var req apimodel.MappingRuleUpdateRequest
	if !h.bind(c, &req) {
		return
	}
	resp, errResp := h.svc.UpdateMappingRule(c.Request.Context(), callerOf(c), c.Param("id"), req)
	h.respond(c, http.StatusOK, resp, errResp)
}

func (h *ginHandler) DeleteMappingRule(c *gin.Context) {
	h.respondNoContent(c, h.svc.DeleteMappingRule(c.Request.Context(), callerOf(c), c.Param("id")))
}

// assignMember returns the handler assigning or unassigning members of one type to the owner
func (h *ginHandler) assignMember(owner engine.Owner, memberType data_models.MemberType, assign bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		member := Membership{
			Owner:      owner,
			OwnerId:    c.Param("id"),
			MemberType: memberType,
			MemberId:   c.Param("memberId"),
		}
		if assign {
			h.respondNoContent(c, h.svc.AssignMember(c.Request.Context(), callerOf(c), member))
		} else {
			h.respondNoContent(c, h.svc.UnassignMember(c.Request.Context(), callerOf(c), member))
		}
	}
}

func (h *ginHandler) searchUserMembers(owner engine.Owner) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req apimodel.MemberUserSearchRequest
		if !h.bind(c, &req) {
			return
		}
		resp, errResp := h.svc.SearchUserMembers(c.Request.Context(), callerOf(c), owner, c.Param("id"), req)
		h.respond(c, http.StatusOK, resp, errResp)
	}
}

// documents

func (h *ginHandler) CreateDocument(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		h.abort(c, invalidArgument("No file provided."))
		return
	}
	content, err := readFormFile(file.Open)
	if err != nil {
		h.abort(c, invalidArgument("Failed to read file: "+err.Error()))
		return
	}
	var metadata apimodel.DocumentMetadata
	if raw := c.PostForm("metadata"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
			h.abort(c, invalidArgument("Request property [metadata] cannot be parsed: "+err.Error()))
			return
		}
	}
	if metadata.FileName == "" {
		metadata.FileName = file.Filename
	}
	if metadata.ContentType == "" {
		metadata.ContentType = file.Header.Get("Content-Type")
	}
	req := data_models.CreateDocumentRequest{
		StoreId:    c.Query("storeId"),
		DocumentId: c.Query("documentId"),
		Content:    content,
		Metadata:   metadata,
	}
	resp, errResp := h.svc.CreateDocument(c.Request.Context(), callerOf(c), req)
	h.respond(c, http.StatusCreated, resp, errResp)
}

func (h *ginHandler) GetDocument(c *gin.Context) {
	doc, errResp := h.svc.GetDocument(
		c.Request.Context(), callerOf(c), c.Query("storeId"), c.Param("id"), c.Query("contentHash"))
	if errResp != nil {
		h.abort(c, errResp)
		return
	}
	contentType := doc.Reference.Metadata.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, doc.Content)
}

func (h *ginHandler) CreateDocumentLink(c *gin.Context) {
	var req apimodel.DocumentLinkRequest
	if !h.bind(c, &req) {
		return
	}
	resp, errResp := h.svc.CreateDocumentLink(c.Request.Context(), callerOf(c), data_models.CreateDocumentLinkRequest{
		StoreId:     c.Query("storeId"),
		DocumentId:  c.Param("id"),
		ContentHash: c.Query("contentHash"),
		TimeToLive:  time.Duration(req.TimeToLive) * time.Millisecond,
	})
	h.respond(c, http.StatusCreated, resp, errResp)
}

func (h *ginHandler) DeleteDocument(c *gin.Context) {
	h.respondNoContent(c, h.svc.DeleteDocument(c.Request.Context(), callerOf(c), c.Query("storeId"), c.Param("id")))
}

func (h *ginHandler) NoRoute(c *gin.Context) {
	h.abort(c, notFound("No endpoint "+c.Request.Method+" "+c.Request.URL.Path+"."))
}

func readFormFile(open func() (multipart.File, error)) ([]byte, error) {
	f, err := open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (h *ginHandler) toJson(req any) string {
	str, err := json.Marshal(req)
	if err != nil {
		h.logger.Error("error when serializing request", tag.Error(err), tag.DefaultValue(req))
		return ""
	}
	return string(str)
}
