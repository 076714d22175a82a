//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"bookit-api/internal/domain/booking"
	"bookit-api/internal/domain/user"
	"bookit-api/internal/handler/api"
	resdto "bookit-api/internal/handler/dto/response"
	"bookit-api/internal/usecase/commands"
	"bookit-api/internal/usecase/queries"
	"bookit-api/tests/common/builder"
	"bookit-api/tests/common/httptest"
	"bookit-api/tests/common/testutil"
	commandsmock "bookit-api/tests/mock/commands"
	queriesmock "bookit-api/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", uuid.New())
		c.Set("user_role", user.RoleUser)
		c.Next()
	}

	group := s.router.Group("/bookings")
	group.Use(authMiddleware)
	group.POST("", s.handler.Create)
	group.GET("", s.handler.List)
	group.GET("/:id", s.handler.Get)
	group.PATCH("/:id/reschedule", s.handler.Reschedule)
	group.PATCH("/:id/status", s.handler.UpdateStatus)
	group.DELETE("/:id", s.handler.Delete)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func idempotencyHeaders(key uuid.UUID) map[string]string {
	return map[string]string{"Idempotency-Key": key.String()}
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings"

	b := builder.NewBookingBuilder()
	reqBody := b.BuildCreateRequestDTO()
	returnView := b.BuildViewQuery()
	idempotencyKey := uuid.New()

	s.Run("success: returns 201 Created for a fresh booking", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any(), idempotencyKey).
			Return(&commands.CreateBookingResult{Booking: returnView, IsReplayed: false}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token", idempotencyHeaders(idempotencyKey))

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID, response.ID)
		s.Equal(returnView.Status, response.Status)
	})

	s.Run("success: returns 200 OK when replaying an earlier identical request", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any(), idempotencyKey).
			Return(&commands.CreateBookingResult{Booking: returnView, IsReplayed: true}, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token", idempotencyHeaders(idempotencyKey))

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnView.ID, response.ID)
	})

	s.Run("error: 400 Bad Request without Idempotency-Key header", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertFlatErrorResponse(s.T(), rec, http.StatusBadRequest, "Idempotency-Key header is required")
	})

	s.Run("error: 400 Bad Request for malformed Idempotency-Key", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token",
			map[string]string{"Idempotency-Key": "not-a-uuid"})
		httptest.AssertFlatErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid idempotency key format")
	})

	s.Run("error: 400 Bad Request on missing fields", func() {
		for _, field := range []string{"service_id", "start_time"} {
			s.Run("missing "+field, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field(field, nil))
				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token", idempotencyHeaders(idempotencyKey))
				httptest.AssertFlatErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "", idempotencyHeaders(idempotencyKey))
		httptest.AssertFlatErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "service not found",
				commandsError:  commands.ErrServiceNotFoundWrite,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Service not found",
			},
			{
				name:           "time slot conflict",
				commandsError:  commands.ErrBookingConflict,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Requested time slot conflicts with an existing booking",
			},
			{
				name:           "duplicate request with different parameters",
				commandsError:  commands.ErrDuplicateBooking,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Duplicate booking request with different parameters",
			},
			{
				name:           "request still in flight",
				commandsError:  commands.ErrIdempotencyInProgress,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Booking request is currently being processed",
			},
			{
				name:           "inactive service",
				commandsError:  booking.ErrServiceInactive,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Service is not active",
			},
			{
				name:           "start time in the past",
				commandsError:  booking.ErrStartTimeInPast,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Start time cannot be in the past",
			},
			{
				name:           "domain validation failure",
				commandsError:  commands.ErrDomainValidation,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Domain validation failed",
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
				s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), gomock.Any(), idempotencyKey).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token", idempotencyHeaders(idempotencyKey))
				httptest.AssertFlatErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String()

	returnView := builder.NewBookingBuilder().BuildViewQuery()
	returnView.ID = bookingID

	s.Run("success: returns 200 OK with BookingResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), bookingID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(bookingID, response.ID)
		s.Equal(returnView.ServiceTitle, response.ServiceTitle)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/invalid-uuid", nil, "bearer-token")
		httptest.AssertFlatErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking ID format")
	})

	s.Run("error: 404 Not Found for missing booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), bookingID).
			Return(nil, queries.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertFlatErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})

	s.Run("error: 403 Forbidden for someone else's booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), bookingID).
			Return(nil, queries.ErrBookingAccess).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertFlatErrorResponse(s.T(), rec, http.StatusForbidden, "Access denied")
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *BookingHandlerTestSuite) TestList() {
	baseURL := "/bookings"

	items := []*queries.BookingListItem{
		builder.NewBookingBuilder().BuildListItem(),
		builder.NewBookingBuilder().BuildListItem(),
	}

	s.Run("success: returns booking list with defaults", func() {
		s.mockQueries.EXPECT().ListForActor(gomock.Any(), gomock.Any(), queries.BookingFilters{}, (*queries.Cursor)(nil), 20).
			Return(items, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL, nil, "bearer-token")

		var response map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		bookings, ok := response["bookings"].([]any)
		s.True(ok)
		s.Equal(len(items), len(bookings))
	})

	s.Run("success: status and time range filters work", func() {
		status := "confirmed"
		from, err := time.Parse(time.RFC3339, "2026-09-01T00:00:00Z")
		s.Require().NoError(err)
		to, err := time.Parse(time.RFC3339, "2026-09-30T00:00:00Z")
		s.Require().NoError(err)
		expectedFilters := queries.BookingFilters{Status: &status, From: &from, To: &to}

		s.mockQueries.EXPECT().ListForActor(gomock.Any(), gomock.Any(), expectedFilters, (*queries.Cursor)(nil), 20).
			Return(items[:1], nil, nil).Times(1)

		url := baseURL + "?status=confirmed&from=2026-09-01T00:00:00Z&to=2026-09-30T00:00:00Z"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: pagination works", func() {
		expectedCursor := &queries.Cursor{After: "cursor123"}
		nextCursor := &queries.Cursor{After: "next_cursor456"}

		s.mockQueries.EXPECT().ListForActor(gomock.Any(), gomock.Any(), queries.BookingFilters{}, expectedCursor, 10).
			Return(items[:1], nextCursor, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL+"?limit=10&after=cursor123", nil, "bearer-token")

		var response map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("next_cursor456", response["next_cursor"])
	})

	s.Run("error: 400 Bad Request for unknown status filter", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL+"?status=archived", nil, "bearer-token")
		httptest.AssertFlatErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid status filter")
	})

	s.Run("error: 400 Bad Request for malformed time filter", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL+"?from=yesterday", nil, "bearer-token")
		httptest.AssertFlatErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid from time, expected RFC3339")
	})

	s.Run("error: 400 Bad Request for invalid cursor", func() {
		expectedCursor := &queries.Cursor{After: "broken"}
		s.mockQueries.EXPECT().ListForActor(gomock.Any(), gomock.Any(), queries.BookingFilters{}, expectedCursor, 20).
			Return(nil, nil, queries.ErrInvalidCursor).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, baseURL+"?after=broken", nil, "bearer-token")
		httptest.AssertFlatErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid cursor")
	})
}

// ================================================================================
// TestReschedule
// ================================================================================

func (s *BookingHandlerTestSuite) TestReschedule() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/reschedule"

	b := builder.NewBookingBuilder()
	reqBody := map[string]any{"start_time": b.StartTime.Add(2 * time.Hour).Format(time.RFC3339)}
	returnView := b.BuildViewQuery()
	returnView.ID = bookingID

	s.Run("success: returns 200 OK with the moved booking", func() {
		s.mockCommands.EXPECT().Reschedule(gomock.Any(), gomock.Any(), bookingID, gomock.Any()).
			Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), bookingID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(bookingID, response.ID)
	})

	s.Run("error: 400 Bad Request for missing start_time", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{}, "bearer-token")
		httptest.AssertFlatErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "booking not found", commandsError: commands.ErrBookingNotFoundWrite, expectedStatus: http.StatusNotFound},
			{name: "not the owner", commandsError: booking.ErrForbidden, expectedStatus: http.StatusForbidden},
			{name: "new slot conflicts", commandsError: commands.ErrBookingConflict, expectedStatus: http.StatusConflict},
			{name: "terminal booking", commandsError: booking.ErrNotReschedulable, expectedStatus: http.StatusUnprocessableEntity},
			{name: "new start in the past", commandsError: booking.ErrStartTimeInPast, expectedStatus: http.StatusUnprocessableEntity},
			{name: "internal server error", commandsError: errors.New("database error"), expectedStatus: http.StatusInternalServerError},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Reschedule(gomock.Any(), gomock.Any(), bookingID, gomock.Any()).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")
				httptest.AssertFlatErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

// ================================================================================
// TestUpdateStatus
// ================================================================================

func (s *BookingHandlerTestSuite) TestUpdateStatus() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/status"

	returnView := builder.NewBookingBuilder().WithStatus(booking.StatusCancelled).BuildViewQuery()
	returnView.ID = bookingID

	s.Run("success: returns 200 OK with the transitioned booking", func() {
		s.mockCommands.EXPECT().ChangeStatus(gomock.Any(), gomock.Any(), bookingID, "cancelled").
			Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any(), bookingID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "cancelled"}, "bearer-token")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("cancelled", response.Status)
	})

	s.Run("error: 400 Bad Request for unknown status value", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "archived"}, "bearer-token")
		httptest.AssertFlatErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "booking not found", commandsError: commands.ErrBookingNotFoundWrite, expectedStatus: http.StatusNotFound},
			{name: "not the owner", commandsError: booking.ErrForbidden, expectedStatus: http.StatusForbidden},
			{name: "owner may only cancel", commandsError: booking.ErrOwnerOnlyCancel, expectedStatus: http.StatusForbidden},
			{name: "slot taken on reactivation", commandsError: commands.ErrBookingConflict, expectedStatus: http.StatusConflict},
			{name: "terminal booking", commandsError: booking.ErrTerminalStatus, expectedStatus: http.StatusUnprocessableEntity},
			{name: "booking already started", commandsError: booking.ErrAlreadyStarted, expectedStatus: http.StatusUnprocessableEntity},
			{name: "internal server error", commandsError: errors.New("database error"), expectedStatus: http.StatusInternalServerError},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().ChangeStatus(gomock.Any(), gomock.Any(), bookingID, "cancelled").
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, map[string]any{"status": "cancelled"}, "bearer-token")
				httptest.AssertFlatErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

// ================================================================================
// TestDelete
// ================================================================================

func (s *BookingHandlerTestSuite) TestDelete() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().DeleteBooking(gomock.Any(), gomock.Any(), bookingID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/bookings/invalid-uuid", nil, "bearer-token")
		httptest.AssertFlatErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking ID format")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "booking not found", commandsError: commands.ErrBookingNotFoundWrite, expectedStatus: http.StatusNotFound},
			{name: "not the owner", commandsError: booking.ErrForbidden, expectedStatus: http.StatusForbidden},
			{name: "booking already started", commandsError: booking.ErrAlreadyStarted, expectedStatus: http.StatusUnprocessableEntity},
			{name: "internal server error", commandsError: errors.New("database error"), expectedStatus: http.StatusInternalServerError},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().DeleteBooking(gomock.Any(), gomock.Any(), bookingID).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
				httptest.AssertFlatErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}
