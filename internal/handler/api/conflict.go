package api

import (
	"net/http"

	resdto "salon-assist/internal/handler/dto/response"
	"salon-assist/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ConflictHandler struct {
	conflictQueries queries.ConflictQueries
}

func NewConflictHandler(conflictQueries queries.ConflictQueries) *ConflictHandler {
	return &ConflictHandler{
		conflictQueries: conflictQueries,
	}
}

// @Summary List schedule conflicts
// @Description Cross-reference active requests against the appointment calendar, grouped by request
// @Tags conflicts
// @Produce json
// @Security BearerAuth
// @Param location_id query string false "Location ID filter"
// @Success 200 {object} map[string][]resdto.ConflictResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /conflicts [get]
func (h *ConflictHandler) List(c *gin.Context) {
	var locationID *uuid.UUID
	if raw := c.Query("location_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid location ID format",
			})
			return
		}
		locationID = &id
	}

	detected, err := h.conflictQueries.ListConflicts(c.Request.Context(), locationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromConflictMap(detected))
}
