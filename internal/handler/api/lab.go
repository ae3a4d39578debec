package api

import (
	"net/http"

	resdto "labreserve/internal/handler/dto/response"
	"labreserve/internal/pkg/errs"
	"labreserve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LabHandler struct {
	registry queries.RegistryQueries
}

func NewLabHandler(registry queries.RegistryQueries) *LabHandler {
	return &LabHandler{registry: registry}
}

// @Summary List labs
// @Description List all labs
// @Tags labs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.LabResponse
// @Failure 401 {object} map[string]string
// @Router /labs [get]
func (h *LabHandler) ListLabs(c *gin.Context) {
	views, err := h.registry.ListLabs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.LabResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromLabView(v)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get lab
// @Description Get lab by ID
// @Tags labs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lab ID"
// @Success 200 {object} resdto.LabResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /labs/{id} [get]
func (h *LabHandler) GetLab(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid lab ID format",
		})
		return
	}

	view, err := h.registry.GetLab(c.Request.Context(), id)
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrLabNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Lab not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromLabView(view))
}
