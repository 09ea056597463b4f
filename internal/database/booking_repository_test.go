package database

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattencreative/studio-backend/internal/models"
)

var bookingColumnList = []string{
	"id", "customer_name", "customer_email", "customer_phone", "company_name",
	"package_slug", "package_title", "package_price", "deposit_amount",
	"preferred_date", "preferred_time", "timezone",
	"project_description", "project_goals", "current_website",
	"status", "deposit_paid", "deposit_paid_at",
	"stripe_session_id", "stripe_payment_intent_id",
	"created_at", "updated_at",
}

func newTestBooking() *models.Booking {
	return &models.Booking{
		CustomerName:       "Jane Smith",
		CustomerEmail:      "jane@example.com",
		PackageSlug:        "business-website",
		PackageTitle:       "Business Website",
		PackagePrice:       250000,
		DepositAmount:      62500,
		PreferredDate:      "2026-09-15",
		PreferredTime:      "10:00 AM",
		Timezone:           "America/New_York",
		ProjectDescription: "A marketing site for a local bakery",
		Status:             models.StatusPending,
	}
}

func TestCreateBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepository(&mockDatabase{db: sqlx.NewDb(db, "sqlmock")})

	t.Run("Success", func(t *testing.T) {
		booking := newTestBooking()
		now := time.Now()

		mock.ExpectQuery(`INSERT INTO bookings`).
			WithArgs(
				sqlmock.AnyArg(), booking.CustomerName, booking.CustomerEmail, nil, nil,
				booking.PackageSlug, booking.PackageTitle, booking.PackagePrice, booking.DepositAmount,
				booking.PreferredDate, booking.PreferredTime, booking.Timezone,
				booking.ProjectDescription, nil, nil,
				booking.Status, false,
			).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		err := repo.Create(booking)
		require.NoError(t, err)
		assert.NotEmpty(t, booking.ID)
		assert.Equal(t, now, booking.CreatedAt)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		booking := newTestBooking()

		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnError(fmt.Errorf("database error"))

		err := repo.Create(booking)
		assert.Error(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetBookingByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepository(&mockDatabase{db: sqlx.NewDb(db, "sqlmock")})

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		bookingID := "5b7f3f54-4f7e-4af0-9a3b-1f2d3c4b5a69"

		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id`).
			WithArgs(bookingID).
			WillReturnRows(sqlmock.NewRows(bookingColumnList).AddRow(
				bookingID, "Jane Smith", "jane@example.com", nil, nil,
				"business-website", "Business Website", int64(250000), int64(62500),
				"2026-09-15", "10:00 AM", "America/New_York",
				"A marketing site for a local bakery", nil, nil,
				"pending", false, nil,
				nil, nil,
				now, now,
			))

		booking, err := repo.GetByID(bookingID)
		require.NoError(t, err)
		assert.Equal(t, bookingID, booking.ID)
		assert.Equal(t, models.StatusPending, booking.Status)
		assert.False(t, booking.DepositPaid)
		assert.Nil(t, booking.StripeSessionID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM bookings WHERE id`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		booking, err := repo.GetByID("missing")
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, booking)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSetCheckoutSession(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepository(&mockDatabase{db: sqlx.NewDb(db, "sqlmock")})

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings`).
			WithArgs("booking-1", "cs_test_123", models.StatusConfirmed).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SetCheckoutSession("booking-1", "cs_test_123", models.StatusConfirmed)
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Booking Missing", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings`).
			WithArgs("booking-2", "cs_test_456", models.StatusConfirmed).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SetCheckoutSession("booking-2", "cs_test_456", models.StatusConfirmed)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "booking not found")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMarkDepositPaid(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepository(&mockDatabase{db: sqlx.NewDb(db, "sqlmock")})

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings`).
			WithArgs("booking-1", models.StatusDepositPaid, "pi_test_789").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.MarkDepositPaid("booking-1", "pi_test_789", models.StatusDepositPaid)
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectExec(`UPDATE bookings`).
			WillReturnError(fmt.Errorf("database error"))

		err := repo.MarkDepositPaid("booking-1", "pi_test_789", models.StatusDepositPaid)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to mark deposit paid")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListBookings(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepository(&mockDatabase{db: sqlx.NewDb(db, "sqlmock")})

	t.Run("Filtered By Status", func(t *testing.T) {
		now := time.Now()

		mock.ExpectQuery(`SELECT (.+) FROM bookings\s+WHERE status`).
			WithArgs("deposit_paid", 20, 0).
			WillReturnRows(sqlmock.NewRows(bookingColumnList).AddRow(
				"booking-1", "Jane Smith", "jane@example.com", nil, nil,
				"business-website", "Business Website", int64(250000), int64(62500),
				"2026-09-15", "10:00 AM", "America/New_York",
				"A marketing site for a local bakery", nil, nil,
				"deposit_paid", true, now,
				"cs_test_123", "pi_test_789",
				now, now,
			))

		bookings, err := repo.List("deposit_paid", 20, 0)
		require.NoError(t, err)
		require.Len(t, bookings, 1)
		assert.Equal(t, models.StatusDepositPaid, bookings[0].Status)
		assert.True(t, bookings[0].DepositPaid)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Empty Result", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM bookings`).
			WithArgs(20, 0).
			WillReturnRows(sqlmock.NewRows(bookingColumnList))

		bookings, err := repo.List("", 20, 0)
		require.NoError(t, err)
		assert.Empty(t, bookings)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBookingRepository(&mockDatabase{db: sqlx.NewDb(db, "sqlmock")})

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM bookings`).
			WithArgs("booking-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete("booking-1")
		assert.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Booking Missing", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM bookings`).
			WithArgs("booking-2").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete("booking-2")
		require.Error(t, err)
		assert.ErrorIs(t, err, sql.ErrNoRows)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

// Mock database implementation backed by sqlx so Get and Select work
type mockDatabase struct {
	db *sqlx.DB
}

func (m *mockDatabase) Get(dest interface{}, query string, args ...interface{}) error {
	return m.db.Get(dest, query, args...)
}

func (m *mockDatabase) Select(dest interface{}, query string, args ...interface{}) error {
	return m.db.Select(dest, query, args...)
}

func (m *mockDatabase) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return m.db.Query(query, args...)
}

func (m *mockDatabase) QueryRow(query string, args ...interface{}) *sql.Row {
	return m.db.QueryRow(query, args...)
}

func (m *mockDatabase) Exec(query string, args ...interface{}) (sql.Result, error) {
	return m.db.Exec(query, args...)
}

func (m *mockDatabase) Close() error {
	return m.db.Close()
}

func (m *mockDatabase) Ping() error {
	return m.db.Ping()
}
