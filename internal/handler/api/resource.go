package api

import (
	"net/http"

	reqdto "labreserve/internal/handler/dto/request"
	resdto "labreserve/internal/handler/dto/response"
	"labreserve/internal/pkg/errs"
	"labreserve/internal/usecase/commands"
	"labreserve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ResourceHandler struct {
	registry queries.RegistryQueries
	commands commands.ResourceCommands
}

func NewResourceHandler(registry queries.RegistryQueries, cmds commands.ResourceCommands) *ResourceHandler {
	return &ResourceHandler{
		registry: registry,
		commands: cmds,
	}
}

// @Summary List resources
// @Description List resources, optionally filtered by lab or status
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param lab_id query string false "Lab ID"
// @Param status query string false "Status filter" Enums(available, maintenance, reserved)
// @Success 200 {array} resdto.ResourceResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /resources [get]
func (h *ResourceHandler) ListResources(c *gin.Context) {
	var filter queries.ResourceFilter

	if labIDStr := c.Query("lab_id"); labIDStr != "" {
		labID, err := uuid.Parse(labIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid lab ID format",
			})
			return
		}
		filter.LabID = &labID
	}
	filter.Status = c.Query("status")

	views, err := h.registry.ListResources(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.ResourceResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromResourceView(v)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get resource
// @Description Get resource by ID
// @Tags resources
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 200 {object} resdto.ResourceResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /resources/{id} [get]
func (h *ResourceHandler) GetResource(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid resource ID format",
		})
		return
	}

	view, err := h.registry.GetResource(c.Request.Context(), id)
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrResourceNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Resource not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromResourceView(view))
}

// @Summary Update resource status
// @Description Admin-only status change. The reserved status is derived and cannot be set.
// @Tags resources
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body reqdto.UpdateResourceStatusRequest true "Status update"
// @Success 200 {object} resdto.ResourceResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /resources/{id}/status [patch]
func (h *ResourceHandler) UpdateResourceStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid resource ID format",
		})
		return
	}

	var req reqdto.UpdateResourceStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	rsc, err := h.commands.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrResourceNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Resource not found",
			})
		case errs.Is(err, errs.ErrResourceStatusNotAllowed):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Reserved status is derived from reservations and cannot be set directly",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromResourceEntity(rsc))
}
