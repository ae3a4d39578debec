package api

import (
	"net/http"
	"time"

	resdto "labreserve/internal/handler/dto/response"
	"labreserve/internal/handler/httperr"
	"labreserve/internal/pkg/errs"
	"labreserve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type AvailabilityHandler struct {
	availability queries.AvailabilityQueries
}

func NewAvailabilityHandler(availability queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// @Summary Get availability grid
// @Description Get the slot-by-slot availability of a resource for one day
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /resources/{id}/availability [get]
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	resourceID, date, ok := h.parseParams(c)
	if !ok {
		return
	}

	slots, err := h.availability.GetAvailability(c.Request.Context(), resourceID, date)
	if err != nil {
		h.respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSlots(date.Format(dateLayout), slots))
}

// @Summary Get occupied hours
// @Description Get the hour-of-day integers covered by active reservations starting on a day
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.OccupiedHoursResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /resources/{id}/occupied-hours [get]
func (h *AvailabilityHandler) GetOccupiedHours(c *gin.Context) {
	resourceID, date, ok := h.parseParams(c)
	if !ok {
		return
	}

	hours, err := h.availability.GetOccupiedHours(c.Request.Context(), resourceID, date)
	if err != nil {
		h.respondQueryError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.OccupiedHoursResponse{
		Date:  date.Format(dateLayout),
		Hours: hours,
	})
}

func (h *AvailabilityHandler) parseParams(c *gin.Context) (uuid.UUID, time.Time, bool) {
	resourceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid resource ID format",
		})
		return uuid.Nil, time.Time{}, false
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.ErrInvalidDate,
			"date query parameter is required", nil)
		return uuid.Nil, time.Time{}, false
	}

	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.Mark(err, errs.ErrInvalidDate),
			"Invalid date format, expected YYYY-MM-DD", nil)
		return uuid.Nil, time.Time{}, false
	}

	return resourceID, date, true
}

func (h *AvailabilityHandler) respondQueryError(c *gin.Context, err error) {
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
}
