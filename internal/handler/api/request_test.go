//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"salon-assist/internal/domain/staff"
	"salon-assist/internal/handler/api"
	resdto "salon-assist/internal/handler/dto/response"
	"salon-assist/internal/usecase/commands"
	"salon-assist/internal/usecase/queries"
	"salon-assist/tests/common/builder"
	"salon-assist/tests/common/httptest"
	commandsmock "salon-assist/tests/mock/commands"
	queriesmock "salon-assist/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type RequestHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCommands *commandsmock.MockRequestCommands
	mockResolver *commandsmock.MockAssignmentResolver
	mockQueries  *queriesmock.MockRequestQueries
	handler      *api.RequestHandler

	actorID   uuid.UUID
	actorRole staff.Role
}

func (s *RequestHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCommands = new(commandsmock.MockRequestCommands)
	s.mockResolver = new(commandsmock.MockAssignmentResolver)
	s.mockQueries = new(queriesmock.MockRequestQueries)
	s.handler = api.NewRequestHandler(s.mockCommands, s.mockResolver, s.mockQueries)

	s.actorID = uuid.New()
	s.actorRole = staff.RoleStylist

	// Stand-in for the JWT middleware: any bearer token authenticates as
	// the suite's configured actor.
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("staff_id", s.actorID)
		c.Set("staff_role", s.actorRole)
		c.Next()
	}

	s.router.POST("/requests", authMiddleware, s.handler.Create)
	s.router.GET("/requests", authMiddleware, s.handler.List)
	s.router.GET("/requests/attention", authMiddleware, s.handler.Attention)
	s.router.GET("/requests/:id", authMiddleware, s.handler.Get)
	s.router.GET("/requests/:id/candidates", authMiddleware, s.handler.Candidates)
	s.router.POST("/requests/:id/assign", authMiddleware, s.handler.Assign)
	s.router.POST("/requests/:id/accept", authMiddleware, s.handler.Accept)
	s.router.POST("/requests/:id/cancel", authMiddleware, s.handler.Cancel)
}

func (s *RequestHandlerTestSuite) TearDownTest() {
	s.mockCommands.AssertExpectations(s.T())
	s.mockResolver.AssertExpectations(s.T())
	s.mockQueries.AssertExpectations(s.T())
}

func TestRequestHandlerSuite(t *testing.T) {
	suite.Run(t, new(RequestHandlerTestSuite))
}

func (s *RequestHandlerTestSuite) actor() staff.Actor {
	return staff.Actor{ID: s.actorID, Role: s.actorRole}
}

func createBody() map[string]any {
	return map[string]any{
		"location_id": uuid.New().String(),
		"service_id":  uuid.New().String(),
		"client_name": "Walk-in Client",
		"date":        "2026-10-01",
		"start_time":  "09:00",
		"end_time":    "10:30",
	}
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *RequestHandlerTestSuite) TestCreate() {
	url := "/requests"

	s.Run("success: returns 201 Created for valid request", func() {
		view := builder.NewRequestBuilder().BuildView()
		s.mockCommands.On("Create", mock.Anything, s.actor(), mock.Anything).
			Return(view, nil).Once()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, createBody(), "bearer-token")

		var body resdto.RequestResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(view.ID, body.ID)
		s.Equal("pending", body.Status)
	})

	s.Run("error: 400 Bad Request on missing required fields", func() {
		for _, field := range []string{"location_id", "client_name", "date", "start_time", "end_time"} {
			s.Run("missing "+field, func() {
				body := createBody()
				delete(body, field)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
			})
		}
	})

	s.Run("error: 400 Bad Request on malformed date", func() {
		body := createBody()
		body["date"] = "01/10/2026"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid date format")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, createBody(), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "malformed time window",
				commandsError:  commands.ErrValidation,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Validation failed",
			},
			{
				name:           "unknown location",
				commandsError:  commands.ErrLocationNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Location not found",
			},
			{
				name:           "permission denied",
				commandsError:  commands.ErrPermissionDenied,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "Insufficient permissions",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.On("Create", mock.Anything, s.actor(), mock.Anything).
					Return(nil, tc.commandsError).Once()

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, createBody(), "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *RequestHandlerTestSuite) TestGet() {
	view := builder.NewRequestBuilder().BuildView()
	url := "/requests/" + view.ID.String()

	s.Run("success: returns 200 OK with the request", func() {
		s.mockQueries.On("GetByID", mock.Anything, s.actor(), view.ID).
			Return(view, nil).Once()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body resdto.RequestResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(view.ID, body.ID)
		s.Equal(view.ClientName, body.ClientName)
	})

	s.Run("error: 400 Bad Request on malformed ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/requests/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request ID format")
	})

	s.Run("error: 404 Not Found when request does not exist", func() {
		s.mockQueries.On("GetByID", mock.Anything, s.actor(), view.ID).
			Return(nil, queries.ErrRequestNotFound).Once()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Request not found")
	})

	s.Run("error: 403 Forbidden for uninvolved staff", func() {
		s.mockQueries.On("GetByID", mock.Anything, s.actor(), view.ID).
			Return(nil, queries.ErrPermissionDenied).Once()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *RequestHandlerTestSuite) TestList() {
	url := "/requests"
	items := []*queries.RequestListItem{
		builder.NewRequestBuilder().BuildListItem(),
		builder.NewRequestBuilder().BuildListItem(),
	}

	s.Run("stylist sees own requests", func() {
		s.mockQueries.On("ListByStylist", mock.Anything, s.actorID, (*uuid.UUID)(nil)).
			Return(items, nil).Once()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body []resdto.RequestListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body, 2)
		s.Equal(items[0].ID, body[0].ID)
	})

	s.Run("assistant sees assigned requests", func() {
		s.actorRole = staff.RoleAssistant
		defer func() { s.actorRole = staff.RoleStylist }()

		s.mockQueries.On("ListByAssistant", mock.Anything, s.actorID, (*uuid.UUID)(nil)).
			Return(items, nil).Once()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("admin sees everything, filtered by location", func() {
		s.actorRole = staff.RoleAdmin
		defer func() { s.actorRole = staff.RoleStylist }()

		locationID := uuid.New()
		s.mockQueries.On("ListAll", mock.Anything, &locationID).
			Return(items, nil).Once()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?location_id="+locationID.String(), nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request on malformed location filter", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?location_id=garbage", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid location ID format")
	})
}

// ================================================================================
// TestAssign
// ================================================================================

func (s *RequestHandlerTestSuite) TestAssign() {
	requestID := uuid.New()
	assistantID := uuid.New()
	url := "/requests/" + requestID.String() + "/assign"
	body := map[string]any{"assistant_id": assistantID.String()}

	s.Run("success: returns 200 OK with advisory warnings", func() {
		s.actorRole = staff.RoleAdmin
		defer func() { s.actorRole = staff.RoleStylist }()

		view := builder.NewRequestBuilder().BuildView()
		result := &commands.ResolveResult{
			Request:  view,
			Warnings: []string{"assistant previously declined this request"},
		}
		s.mockResolver.On("Resolve", mock.Anything, s.actor(), requestID, assistantID).
			Return(result, nil).Once()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")

		var resp resdto.AssignResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(view.ID, resp.Request.ID)
		s.Len(resp.Warnings, 1)
	})

	s.Run("error: 400 Bad Request on missing assistant_id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 409 Conflict when the request state changed underfoot", func() {
		s.mockResolver.On("Resolve", mock.Anything, s.actor(), requestID, assistantID).
			Return(nil, commands.ErrStaleState).Once()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Request state changed")
	})

	s.Run("error: 404 Not Found for unknown assistant", func() {
		s.mockResolver.On("Resolve", mock.Anything, s.actor(), requestID, assistantID).
			Return(nil, commands.ErrAssistantNotFound).Once()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Assistant not found")
	})
}

// ================================================================================
// TestCandidates
// ================================================================================

func (s *RequestHandlerTestSuite) TestCandidates() {
	requestID := uuid.New()
	url := "/requests/" + requestID.String() + "/candidates"

	s.Run("success: returns annotated assistants", func() {
		s.actorRole = staff.RoleAdmin
		defer func() { s.actorRole = staff.RoleStylist }()

		candidates := []commands.AssignmentCandidate{
			{AssistantID: uuid.New(), DisplayName: "Test Assistant", Scheduled: true},
		}
		s.mockResolver.On("Candidates", mock.Anything, s.actor(), requestID).
			Return(candidates, nil).Once()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body []resdto.CandidateResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 1)
		s.Equal(candidates[0].AssistantID, body[0].AssistantID)
		s.True(body[0].Scheduled)
	})

	s.Run("error: 404 Not Found when request does not exist", func() {
		s.actorRole = staff.RoleAdmin
		defer func() { s.actorRole = staff.RoleStylist }()

		s.mockResolver.On("Candidates", mock.Anything, s.actor(), requestID).
			Return(nil, commands.ErrRequestNotFound).Once()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Request not found")
	})
}

// ================================================================================
// TestTransitions
// ================================================================================

func (s *RequestHandlerTestSuite) TestTransitions() {
	requestID := uuid.New()

	s.Run("accept: returns 200 OK with the accepted request", func() {
		s.actorRole = staff.RoleAssistant
		defer func() { s.actorRole = staff.RoleStylist }()

		view := builder.NewRequestBuilder().BuildView()
		view.Status = "accepted"
		s.mockCommands.On("Accept", mock.Anything, s.actor(), requestID).
			Return(view, nil).Once()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/requests/"+requestID.String()+"/accept", nil, "bearer-token")

		var body resdto.RequestResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("accepted", body.Status)
	})

	s.Run("accept: 409 Conflict after a losing race", func() {
		s.actorRole = staff.RoleAssistant
		defer func() { s.actorRole = staff.RoleStylist }()

		s.mockCommands.On("Accept", mock.Anything, s.actor(), requestID).
			Return(nil, commands.ErrStaleState).Once()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/requests/"+requestID.String()+"/accept", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Request state changed")
	})

	s.Run("cancel: 409 Conflict once the response window has passed", func() {
		s.mockCommands.On("Cancel", mock.Anything, s.actor(), requestID).
			Return(nil, commands.ErrWindowPassed).Once()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/requests/"+requestID.String()+"/cancel", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Request window already passed")
	})

	s.Run("cancel: 400 Bad Request on malformed ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/requests/nope/cancel", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request ID format")
	})
}

// ================================================================================
// TestAttention
// ================================================================================

func (s *RequestHandlerTestSuite) TestAttention() {
	url := "/requests/attention"

	s.Run("success: returns the attention queue", func() {
		item := &queries.AttentionItem{
			Request:   *builder.NewRequestBuilder().BuildListItem(),
			Remaining: -30 * time.Minute,
			Overdue:   true,
		}
		s.mockQueries.On("ListNeedingAttention", mock.Anything).
			Return([]*queries.AttentionItem{item}, nil).Once()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body []resdto.AttentionResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 1)
		s.True(body[0].Overdue)
	})

	s.Run("error: 500 when the read store fails", func() {
		s.mockQueries.On("ListNeedingAttention", mock.Anything).
			Return(nil, errors.New("db down")).Once()

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
