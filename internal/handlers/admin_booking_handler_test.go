package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattencreative/studio-backend/internal/database"
)

func setupAdminBookingRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	wrapped := &database.PostgresDB{DB: sqlx.NewDb(db, "sqlmock")}
	handler := NewAdminBookingHandler(
		database.NewBookingRepository(wrapped),
		database.NewClientRepository(wrapped),
		database.NewProjectRepository(wrapped),
		noopActivity{},
		testLogger(),
	)

	router := gin.New()
	router.DELETE("/api/v1/admin/bookings/:id", handler.DeleteBooking)
	return router, mock
}

func TestDeleteBookingEndpoint(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, mock := setupAdminBookingRouter(t)
		mock.ExpectExec(`DELETE FROM bookings`).
			WithArgs("booking-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/bookings/booking-1", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"deleted": true}`, w.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Booking Missing", func(t *testing.T) {
		router, mock := setupAdminBookingRouter(t)
		mock.ExpectExec(`DELETE FROM bookings`).
			WithArgs("booking-2").
			WillReturnResult(sqlmock.NewResult(0, 0))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/bookings/booking-2", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "booking not found")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
