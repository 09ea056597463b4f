package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattencreative/studio-backend/internal/config"
	"github.com/lattencreative/studio-backend/internal/models"
	"github.com/lattencreative/studio-backend/internal/services"
)

func setupCheckoutRouter(store *fakeBookingStore, gateway *fakeGateway, publisher *fakePublisher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewCheckoutHandler(store, gateway, noopActivity{}, publisher, config.AppConfig{
		PublicURL: "https://lattencreative.com",
		Currency:  "usd",
	}, testLogger())
	router := gin.New()
	router.POST("/api/v1/checkout", handler.CreateSession)
	return router
}

func pendingBooking() *models.Booking {
	return &models.Booking{
		ID:            "booking-1",
		CustomerName:  "Jane Smith",
		CustomerEmail: "jane@example.com",
		PackageSlug:   "business-website",
		PackageTitle:  "Business Website",
		PackagePrice:  250000,
		DepositAmount: 62500,
		Status:        models.StatusPending,
	}
}

func TestCreateCheckoutSessionEndpoint(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		store := newFakeBookingStore(pendingBooking())
		gateway := &fakeGateway{session: &services.CheckoutSession{
			ID:  "cs_test_123",
			URL: "https://checkout.stripe.com/c/pay/cs_test_123",
		}}
		router := setupCheckoutRouter(store, gateway, &fakePublisher{})

		w := postJSON(router, "/api/v1/checkout", map[string]string{"bookingId": "booking-1"})

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_123", resp["url"])

		assert.Equal(t, models.StatusConfirmed, store.bookings["booking-1"].Status)
		assert.Equal(t, "cs_test_123", store.sessions["booking-1"])

		require.NotNil(t, gateway.gotReq)
		assert.Equal(t, int64(62500), gateway.gotReq.AmountCents)
		assert.Equal(t, "booking-1", gateway.gotReq.BookingID)
		assert.Contains(t, gateway.gotReq.SuccessURL, "{CHECKOUT_SESSION_ID}")
		assert.Contains(t, gateway.gotReq.SuccessURL, "booking_id=booking-1")
		assert.Contains(t, gateway.gotReq.CancelURL, "booking_id=booking-1")
		assert.Equal(t, "25% deposit for Business Website", gateway.gotReq.Description)
	})

	t.Run("Booking Not Found", func(t *testing.T) {
		router := setupCheckoutRouter(newFakeBookingStore(), &fakeGateway{}, &fakePublisher{})

		w := postJSON(router, "/api/v1/checkout", map[string]string{"bookingId": "missing"})

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "booking not found")
	})

	t.Run("Deposit Already Paid", func(t *testing.T) {
		booking := pendingBooking()
		booking.Status = models.StatusDepositPaid
		booking.DepositPaid = true
		router := setupCheckoutRouter(newFakeBookingStore(booking), &fakeGateway{}, &fakePublisher{})

		w := postJSON(router, "/api/v1/checkout", map[string]string{"bookingId": "booking-1"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "deposit already paid for this booking")
	})

	t.Run("Confirmed Booking Can Re-Mint Session", func(t *testing.T) {
		booking := pendingBooking()
		booking.Status = models.StatusConfirmed
		store := newFakeBookingStore(booking)
		gateway := &fakeGateway{session: &services.CheckoutSession{ID: "cs_test_456", URL: "https://checkout.stripe.com/new"}}
		router := setupCheckoutRouter(store, gateway, &fakePublisher{})

		w := postJSON(router, "/api/v1/checkout", map[string]string{"bookingId": "booking-1"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "cs_test_456", store.sessions["booking-1"])
	})

	t.Run("Cancelled Booking Rejected", func(t *testing.T) {
		booking := pendingBooking()
		booking.Status = models.StatusCancelled
		router := setupCheckoutRouter(newFakeBookingStore(booking), &fakeGateway{}, &fakePublisher{})

		w := postJSON(router, "/api/v1/checkout", map[string]string{"bookingId": "booking-1"})

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Gateway Failure", func(t *testing.T) {
		store := newFakeBookingStore(pendingBooking())
		router := setupCheckoutRouter(store, &fakeGateway{err: assert.AnError}, &fakePublisher{})

		w := postJSON(router, "/api/v1/checkout", map[string]string{"bookingId": "booking-1"})

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "failed to create checkout session")
		// The booking must stay pending when no session was created.
		assert.Equal(t, models.StatusPending, store.bookings["booking-1"].Status)
	})

	t.Run("Missing Body", func(t *testing.T) {
		router := setupCheckoutRouter(newFakeBookingStore(), &fakeGateway{}, &fakePublisher{})

		w := postJSON(router, "/api/v1/checkout", map[string]string{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
