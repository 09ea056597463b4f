package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattencreative/studio-backend/internal/events"
	"github.com/lattencreative/studio-backend/internal/models"
	"github.com/lattencreative/studio-backend/internal/services"
)

func setupWebhookRouter(store *fakeBookingStore, verifier *fakeVerifier, publisher *fakePublisher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewWebhookHandler(store, verifier, noopActivity{}, publisher, testLogger())
	router := gin.New()
	router.POST("/api/v1/webhooks/stripe", handler.HandleStripeEvent)
	return router
}

func webhookEvent(eventType, bookingID string) *services.WebhookEvent {
	event := &services.WebhookEvent{ID: "evt_1", Type: eventType}
	event.Data.Object = services.WebhookSession{
		ID:            "cs_test_123",
		PaymentIntent: "pi_test_789",
		Metadata:      map[string]string{"booking_id": bookingID},
	}
	return event
}

func deliverWebhook(router *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/stripe", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Stripe-Signature", "t=1,v1=sig")
	router.ServeHTTP(w, req)
	return w
}

func TestStripeWebhook(t *testing.T) {
	t.Run("Session Completed", func(t *testing.T) {
		booking := pendingBooking()
		booking.Status = models.StatusConfirmed
		store := newFakeBookingStore(booking)
		publisher := &fakePublisher{}
		router := setupWebhookRouter(store, &fakeVerifier{event: webhookEvent("checkout.session.completed", "booking-1")}, publisher)

		w := deliverWebhook(router)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "received")

		updated := store.bookings["booking-1"]
		assert.Equal(t, models.StatusDepositPaid, updated.Status)
		assert.True(t, updated.DepositPaid)
		assert.Equal(t, "pi_test_789", store.paidIntent)

		require.Len(t, publisher.published, 1)
		assert.Equal(t, events.TypeBookingDepositPaid, publisher.published[0].Type)
	})

	t.Run("Session Completed Redelivery", func(t *testing.T) {
		booking := pendingBooking()
		booking.Status = models.StatusDepositPaid
		booking.DepositPaid = true
		store := newFakeBookingStore(booking)
		router := setupWebhookRouter(store, &fakeVerifier{event: webhookEvent("checkout.session.completed", "booking-1")}, &fakePublisher{})

		w := deliverWebhook(router)

		// Redeliveries re-apply the same terminal-per-payment state.
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, models.StatusDepositPaid, store.bookings["booking-1"].Status)
	})

	t.Run("Session Expired Reverts To Pending", func(t *testing.T) {
		booking := pendingBooking()
		booking.Status = models.StatusConfirmed
		store := newFakeBookingStore(booking)
		router := setupWebhookRouter(store, &fakeVerifier{event: webhookEvent("checkout.session.expired", "booking-1")}, &fakePublisher{})

		w := deliverWebhook(router)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, models.StatusPending, store.bookings["booking-1"].Status)
	})

	t.Run("Session Expired After Payment Ignored", func(t *testing.T) {
		booking := pendingBooking()
		booking.Status = models.StatusDepositPaid
		booking.DepositPaid = true
		store := newFakeBookingStore(booking)
		router := setupWebhookRouter(store, &fakeVerifier{event: webhookEvent("checkout.session.expired", "booking-1")}, &fakePublisher{})

		w := deliverWebhook(router)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, models.StatusDepositPaid, store.bookings["booking-1"].Status)
	})

	t.Run("Invalid Signature", func(t *testing.T) {
		store := newFakeBookingStore(pendingBooking())
		router := setupWebhookRouter(store, &fakeVerifier{err: fmt.Errorf("signature verification failed")}, &fakePublisher{})

		w := deliverWebhook(router)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid signature")
		assert.Equal(t, models.StatusPending, store.bookings["booking-1"].Status)
	})

	t.Run("Unknown Event Type Acknowledged", func(t *testing.T) {
		store := newFakeBookingStore(pendingBooking())
		router := setupWebhookRouter(store, &fakeVerifier{event: webhookEvent("payment_intent.created", "booking-1")}, &fakePublisher{})

		w := deliverWebhook(router)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, models.StatusPending, store.bookings["booking-1"].Status)
	})

	t.Run("Missing Booking Reference Acknowledged", func(t *testing.T) {
		router := setupWebhookRouter(newFakeBookingStore(), &fakeVerifier{event: webhookEvent("checkout.session.completed", "")}, &fakePublisher{})

		w := deliverWebhook(router)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Unknown Booking Acknowledged", func(t *testing.T) {
		router := setupWebhookRouter(newFakeBookingStore(), &fakeVerifier{event: webhookEvent("checkout.session.completed", "ghost")}, &fakePublisher{})

		w := deliverWebhook(router)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Store Failure Returns 500 For Retry", func(t *testing.T) {
		booking := pendingBooking()
		booking.Status = models.StatusConfirmed
		store := newFakeBookingStore(booking)
		store.updateErr = assert.AnError
		router := setupWebhookRouter(store, &fakeVerifier{event: webhookEvent("checkout.session.completed", "booking-1")}, &fakePublisher{})

		w := deliverWebhook(router)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
