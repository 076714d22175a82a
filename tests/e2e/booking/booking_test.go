//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"bookit-api/internal/handler/dto/request"
	"bookit-api/internal/handler/dto/response"
	"bookit-api/tests/common/authtest"
	"bookit-api/tests/common/dbtest"
	"bookit-api/tests/common/httptest"
	"bookit-api/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL      = "/api/bookings"
	bookingURL       = "/api/bookings/%s"
	bookingStatusURL = "/api/bookings/%s/status"
	serviceURL       = "/api/services/%s"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func (s *BookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

func idempotencyHeaders(key uuid.UUID) map[string]string {
	return map[string]string{"Idempotency-Key": key.String()}
}

// A slot well in the future so domain validation never trips on "start
// time in the past" while the suite runs.
func futureSlot(hour int) time.Time {
	base := time.Now().UTC().AddDate(0, 0, 7).Truncate(24 * time.Hour)
	return base.Add(time.Duration(hour) * time.Hour)
}

// =============================================================================
// TestCreateBooking - slot conflict detection
// =============================================================================

func (s *BookingSuite) TestCreateBooking() {
	s.Run("Normal case: booking an open slot succeeds", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "booker@example.com", "user")
		serviceID := dbtest.CreateTestService(t, s.DB, "Deep Tissue Massage", 60)
		token := authtest.LoginUser(t, s.Router, "booker@example.com", "password123")

		reqBody := request.CreateBookingRequest{ServiceID: serviceID, StartTime: futureSlot(14)}
		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, reqBody, token, idempotencyHeaders(uuid.New()))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		require.Equal(t, "pending", created.Status)
		require.True(t, created.EndTime.Equal(created.StartTime.Add(60*time.Minute)),
			"End time should be derived from the service duration")
	})

	s.Run("Error case: overlapping slot on the same service is rejected", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "booker@example.com", "user")
		serviceID := dbtest.CreateTestService(t, s.DB, "Deep Tissue Massage", 60)
		token := authtest.LoginUser(t, s.Router, "booker@example.com", "password123")

		// 14:00-15:00
		first := request.CreateBookingRequest{ServiceID: serviceID, StartTime: futureSlot(14)}
		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, first, token, idempotencyHeaders(uuid.New()))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		// 14:30-15:30 overlaps and must be refused
		overlapping := request.CreateBookingRequest{ServiceID: serviceID, StartTime: futureSlot(14).Add(30 * time.Minute)}
		w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, overlapping, token, idempotencyHeaders(uuid.New()))
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Normal case: back-to-back slots do not conflict", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "booker@example.com", "user")
		serviceID := dbtest.CreateTestService(t, s.DB, "Deep Tissue Massage", 60)
		token := authtest.LoginUser(t, s.Router, "booker@example.com", "password123")

		first := request.CreateBookingRequest{ServiceID: serviceID, StartTime: futureSlot(14)}
		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, first, token, idempotencyHeaders(uuid.New()))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		// 15:00-16:00 starts exactly where the first one ends
		adjacent := request.CreateBookingRequest{ServiceID: serviceID, StartTime: futureSlot(15)}
		w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, adjacent, token, idempotencyHeaders(uuid.New()))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("Normal case: cancelled bookings release their slot", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "booker@example.com", "user")
		serviceID := dbtest.CreateTestService(t, s.DB, "Deep Tissue Massage", 60)
		token := authtest.LoginUser(t, s.Router, "booker@example.com", "password123")

		first := request.CreateBookingRequest{ServiceID: serviceID, StartTime: futureSlot(14)}
		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, first, token, idempotencyHeaders(uuid.New()))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(bookingStatusURL, created.ID),
			request.UpdateBookingStatusRequest{Status: "cancelled"}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		retry := request.CreateBookingRequest{ServiceID: serviceID, StartTime: futureSlot(14)}
		w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, retry, token, idempotencyHeaders(uuid.New()))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("Error case: inactive service cannot be booked", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "booker@example.com", "user")
		serviceID := dbtest.CreateTestService(t, s.DB, "Retired Service", 60)
		dbtest.DeactivateTestService(t, s.DB, serviceID)
		token := authtest.LoginUser(t, s.Router, "booker@example.com", "password123")

		reqBody := request.CreateBookingRequest{ServiceID: serviceID, StartTime: futureSlot(14)}
		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, reqBody, token, idempotencyHeaders(uuid.New()))
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})
}

// =============================================================================
// TestBookingIdempotency - replay semantics on the create endpoint
// =============================================================================

func (s *BookingSuite) TestBookingIdempotency() {
	s.Run("Normal case: replaying the same request returns the original booking", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "booker@example.com", "user")
		serviceID := dbtest.CreateTestService(t, s.DB, "Deep Tissue Massage", 60)
		token := authtest.LoginUser(t, s.Router, "booker@example.com", "password123")

		key := uuid.New()
		reqBody := request.CreateBookingRequest{ServiceID: serviceID, StartTime: futureSlot(14)}

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, reqBody, token, idempotencyHeaders(key))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var first response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &first))

		w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, reqBody, token, idempotencyHeaders(key))
		require.Equal(t, http.StatusOK, w.Code, "Replay should return 200, not 201")
		var replayed response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &replayed))

		if diff := cmp.Diff(first, replayed, cmpopts.EquateApproxTime(time.Second)); diff != "" {
			t.Errorf("Replayed booking differs from the original (-first +replayed):\n%s", diff)
		}
	})

	s.Run("Error case: same key with different parameters is rejected", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "booker@example.com", "user")
		serviceID := dbtest.CreateTestService(t, s.DB, "Deep Tissue Massage", 60)
		token := authtest.LoginUser(t, s.Router, "booker@example.com", "password123")

		key := uuid.New()
		first := request.CreateBookingRequest{ServiceID: serviceID, StartTime: futureSlot(14)}
		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, first, token, idempotencyHeaders(key))
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		different := request.CreateBookingRequest{ServiceID: serviceID, StartTime: futureSlot(16)}
		w = httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, different, token, idempotencyHeaders(key))
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Error case: missing Idempotency-Key header", func() {
		t := s.T()

		dbtest.CreateTestUser(t, s.DB, "booker@example.com", "user")
		serviceID := dbtest.CreateTestService(t, s.DB, "Deep Tissue Massage", 60)
		token := authtest.LoginUser(t, s.Router, "booker@example.com", "password123")

		reqBody := request.CreateBookingRequest{ServiceID: serviceID, StartTime: futureSlot(14)}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, token)
		require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	})
}

// =============================================================================
// TestBookingLifecycle - role-gated status transitions
// =============================================================================

func (s *BookingSuite) TestBookingLifecycle() {
	s.Run("Normal case: admin can confirm and complete a booking", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "booker@example.com", "user")
		serviceID := dbtest.CreateTestService(t, s.DB, "Deep Tissue Massage", 60)
		start := futureSlot(14)
		bookingID := dbtest.CreateTestBooking(t, s.DB, serviceID, userID, start, start.Add(time.Hour), "pending")

		adminToken := authtest.LoginUser(t, s.Router, "admin@example.com", "password123")

		for _, status := range []string{"confirmed", "completed"} {
			w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(bookingStatusURL, bookingID),
				request.UpdateBookingStatusRequest{Status: status}, adminToken)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var updated response.BookingResponse
			require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &updated))
			require.Equal(t, status, updated.Status)
		}
	})

	s.Run("Error case: owner may only cancel", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "booker@example.com", "user")
		serviceID := dbtest.CreateTestService(t, s.DB, "Deep Tissue Massage", 60)
		start := futureSlot(14)
		bookingID := dbtest.CreateTestBooking(t, s.DB, serviceID, userID, start, start.Add(time.Hour), "pending")

		token := authtest.LoginUser(t, s.Router, "booker@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(bookingStatusURL, bookingID),
			request.UpdateBookingStatusRequest{Status: "confirmed"}, token)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(bookingStatusURL, bookingID),
			request.UpdateBookingStatusRequest{Status: "cancelled"}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	s.Run("Error case: terminal bookings cannot transition again", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "booker@example.com", "user")
		serviceID := dbtest.CreateTestService(t, s.DB, "Deep Tissue Massage", 60)
		start := futureSlot(14)
		bookingID := dbtest.CreateTestBooking(t, s.DB, serviceID, userID, start, start.Add(time.Hour), "cancelled")

		token := authtest.LoginUser(t, s.Router, "booker@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(bookingStatusURL, bookingID),
			request.UpdateBookingStatusRequest{Status: "cancelled"}, token)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	s.Run("Error case: stranger cannot touch someone else's booking", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "booker@example.com", "user")
		serviceID := dbtest.CreateTestService(t, s.DB, "Deep Tissue Massage", 60)
		start := futureSlot(14)
		bookingID := dbtest.CreateTestBooking(t, s.DB, serviceID, userID, start, start.Add(time.Hour), "pending")

		strangerToken := authtest.CreateAndLogin(t, s.DB, s.Router, "stranger@example.com", "user")

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(bookingStatusURL, bookingID),
			request.UpdateBookingStatusRequest{Status: "cancelled"}, strangerToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(bookingURL, bookingID), nil, strangerToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("Error case: reactivating a cancelled booking into a taken slot", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "booker@example.com", "user")
		serviceID := dbtest.CreateTestService(t, s.DB, "Deep Tissue Massage", 60)
		start := futureSlot(14)
		cancelledID := dbtest.CreateTestBooking(t, s.DB, serviceID, userID, start, start.Add(time.Hour), "cancelled")
		dbtest.CreateTestBooking(t, s.DB, serviceID, userID, start, start.Add(time.Hour), "pending")

		adminToken := authtest.LoginUser(t, s.Router, "admin@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch, fmt.Sprintf(bookingStatusURL, cancelledID),
			request.UpdateBookingStatusRequest{Status: "confirmed"}, adminToken)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Normal case: owner can delete before the start time", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "booker@example.com", "user")
		serviceID := dbtest.CreateTestService(t, s.DB, "Deep Tissue Massage", 60)
		start := futureSlot(14)
		bookingID := dbtest.CreateTestBooking(t, s.DB, serviceID, userID, start, start.Add(time.Hour), "pending")

		token := authtest.LoginUser(t, s.Router, "booker@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, fmt.Sprintf(bookingURL, bookingID), nil, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(bookingURL, bookingID), nil, token)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})
}

// =============================================================================
// TestServiceDeletionCascade - admin service removal takes bookings with it
// =============================================================================

func (s *BookingSuite) TestServiceDeletionCascade() {
	s.Run("Normal case: deleting a service removes its bookings", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "booker@example.com", "user")
		serviceID := dbtest.CreateTestService(t, s.DB, "Deep Tissue Massage", 60)
		start := futureSlot(14)
		bookingID := dbtest.CreateTestBooking(t, s.DB, serviceID, userID, start, start.Add(time.Hour), "pending")

		adminToken := authtest.LoginUser(t, s.Router, "admin@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, fmt.Sprintf(serviceURL, serviceID), nil, adminToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(bookingURL, bookingID), nil, adminToken)
		require.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})
}
