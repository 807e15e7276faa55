package api

import (
	"context"
	"errors"
	"net/http"

	"salon-assist/internal/domain/staff"
	reqdto "salon-assist/internal/handler/dto/request"
	resdto "salon-assist/internal/handler/dto/response"
	"salon-assist/internal/handler/middleware"
	"salon-assist/internal/usecase/commands"
	"salon-assist/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RequestHandler struct {
	requestCommands commands.RequestCommands
	resolver        commands.AssignmentResolver
	requestQueries  queries.RequestQueries
}

func NewRequestHandler(requestCommands commands.RequestCommands, resolver commands.AssignmentResolver, requestQueries queries.RequestQueries) *RequestHandler {
	return &RequestHandler{
		requestCommands: requestCommands,
		resolver:        resolver,
		requestQueries:  requestQueries,
	}
}

// @Summary Create assistance request
// @Description Create a new request for assistant help during a service
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateAssistRequest true "Request body"
// @Success 201 {object} resdto.RequestResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /requests [post]
func (h *RequestHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateAssistRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	params, err := req.ToParams()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	view, err := h.requestCommands.Create(c.Request.Context(), actor, params)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromRequestView(view))
}

// @Summary Get request
// @Description Get a single request by ID
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} resdto.RequestResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /requests/{id} [get]
func (h *RequestHandler) Get(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := h.pathID(c)
	if err != nil {
		return
	}

	view, err := h.requestQueries.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Request not found",
			})
		case errors.Is(err, queries.ErrPermissionDenied):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromRequestView(view))
}

// @Summary List requests
// @Description List requests visible to the current staff member, optionally filtered by location
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param location_id query string false "Location ID filter"
// @Success 200 {array} resdto.RequestListResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /requests [get]
func (h *RequestHandler) List(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	locationID, err := h.queryLocationID(c)
	if err != nil {
		return
	}

	var items []*queries.RequestListItem
	switch {
	case actor.IsAdmin():
		items, err = h.requestQueries.ListAll(c.Request.Context(), locationID)
	case actor.IsAssistant():
		items, err = h.requestQueries.ListByAssistant(c.Request.Context(), actor.ID, locationID)
	default:
		items, err = h.requestQueries.ListByStylist(c.Request.Context(), actor.ID, locationID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.RequestListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromRequestListItem(item)
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Assign assistant
// @Description Assign or reassign an assistant to a request; returns advisory warnings
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body reqdto.AssignRequest true "Assignment body"
// @Success 200 {object} resdto.AssignResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /requests/{id}/assign [post]
func (h *RequestHandler) Assign(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := h.pathID(c)
	if err != nil {
		return
	}

	var req reqdto.AssignRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.resolver.Resolve(c.Request.Context(), actor, id, req.AssistantID)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromResolveResult(result))
}

// @Summary Assignment candidates
// @Description List active assistants annotated with schedule fit and decline history for a request
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {array} resdto.CandidateResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /requests/{id}/candidates [get]
func (h *RequestHandler) Candidates(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := h.pathID(c)
	if err != nil {
		return
	}

	candidates, err := h.resolver.Candidates(c.Request.Context(), actor, id)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCandidates(candidates))
}

// @Summary Accept assignment
// @Description Accept the current assignment as the assigned assistant
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} resdto.RequestResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /requests/{id}/accept [post]
func (h *RequestHandler) Accept(c *gin.Context) {
	h.transition(c, h.requestCommands.Accept)
}

// @Summary Decline assignment
// @Description Decline the current assignment; the request returns to pending
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} resdto.RequestResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /requests/{id}/decline [post]
func (h *RequestHandler) Decline(c *gin.Context) {
	h.transition(c, h.requestCommands.Decline)
}

// @Summary Cancel request
// @Description Cancel a pending or assigned request
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} resdto.RequestResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /requests/{id}/cancel [post]
func (h *RequestHandler) Cancel(c *gin.Context) {
	h.transition(c, h.requestCommands.Cancel)
}

// @Summary Complete request
// @Description Mark an accepted request as completed
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} resdto.RequestResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /requests/{id}/complete [post]
func (h *RequestHandler) Complete(c *gin.Context) {
	h.transition(c, h.requestCommands.Complete)
}

// @Summary Attention queue
// @Description List assigned requests still awaiting an assistant response, soonest deadline first
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.AttentionResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /requests/attention [get]
func (h *RequestHandler) Attention(c *gin.Context) {
	items, err := h.requestQueries.ListNeedingAttention(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.AttentionResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromAttentionItem(item)
	}
	c.JSON(http.StatusOK, response)
}

func (h *RequestHandler) transition(c *gin.Context, op func(ctx context.Context, actor staff.Actor, id uuid.UUID) (*queries.RequestView, error)) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := h.pathID(c)
	if err != nil {
		return
	}

	view, err := op(c.Request.Context(), actor, id)
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRequestView(view))
}

// pathID parses the :id path segment and writes the 400 itself so callers
// can just bail on error.
func (h *RequestHandler) pathID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request ID format",
		})
		return uuid.Nil, err
	}
	return id, nil
}

func (h *RequestHandler) queryLocationID(c *gin.Context) (*uuid.UUID, error) {
	raw := c.Query("location_id")
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid location ID format",
		})
		return nil, err
	}
	return &id, nil
}

func (h *RequestHandler) writeCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrRequestNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Request not found",
		})
	case errors.Is(err, commands.ErrLocationNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Location not found",
		})
	case errors.Is(err, commands.ErrAssistantNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Assistant not found",
		})
	case errors.Is(err, commands.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Insufficient permissions",
		})
	case errors.Is(err, commands.ErrStaleState):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Request state changed, reload and retry",
		})
	case errors.Is(err, commands.ErrWindowPassed):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Request window already passed",
		})
	case errors.Is(err, commands.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Validation failed",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
