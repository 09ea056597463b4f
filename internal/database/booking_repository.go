package database

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lattencreative/studio-backend/internal/models"
)

// bookingColumns is the canonical column list for booking reads
const bookingColumns = `id, customer_name, customer_email, customer_phone, company_name,
	   package_slug, package_title, package_price, deposit_amount,
	   preferred_date, preferred_time, timezone,
	   project_description, project_goals, current_website,
	   status, deposit_paid, deposit_paid_at,
	   stripe_session_id, stripe_payment_intent_id,
	   created_at, updated_at`

// BookingRepository handles database operations for the bookings table
type BookingRepository struct {
	db DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts a new booking. The id is generated here if not provided.
func (r *BookingRepository) Create(booking *models.Booking) error {
	query := `
		INSERT INTO bookings (
			id, customer_name, customer_email, customer_phone, company_name,
			package_slug, package_title, package_price, deposit_amount,
			preferred_date, preferred_time, timezone,
			project_description, project_goals, current_website,
			status, deposit_paid
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		)
		RETURNING created_at, updated_at
	`

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}

	err := r.db.QueryRow(
		query,
		booking.ID, booking.CustomerName, booking.CustomerEmail, booking.CustomerPhone, booking.CompanyName,
		booking.PackageSlug, booking.PackageTitle, booking.PackagePrice, booking.DepositAmount,
		booking.PreferredDate, booking.PreferredTime, booking.Timezone,
		booking.ProjectDescription, booking.ProjectGoals, booking.CurrentWebsite,
		booking.Status, booking.DepositPaid,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)

	return err
}

// GetByID retrieves a booking by ID. Returns sql.ErrNoRows when absent.
func (r *BookingRepository) GetByID(bookingID string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking models.Booking
	if err := r.db.Get(&booking, query, bookingID); err != nil {
		return nil, err
	}
	return &booking, nil
}

// SetCheckoutSession records the gateway session id and moves the booking
// to status (confirmed). The caller is responsible for deriving status via
// the state machine.
func (r *BookingRepository) SetCheckoutSession(bookingID, sessionID string, status models.BookingStatus) error {
	query := `
		UPDATE bookings
		SET stripe_session_id = $2, status = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, bookingID, sessionID, status)
	if err != nil {
		return fmt.Errorf("failed to record checkout session: %w", err)
	}
	return requireRowUpdated(result, "booking", bookingID)
}

// MarkDepositPaid applies the session-completed effects: status change,
// deposit_paid flag, completion timestamp, and the payment confirmation id.
// All writes are set-to-fixed-value, so webhook redeliveries are safe.
func (r *BookingRepository) MarkDepositPaid(bookingID, paymentIntentID string, status models.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $2, deposit_paid = TRUE, deposit_paid_at = NOW(),
			stripe_payment_intent_id = $3, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, bookingID, status, paymentIntentID)
	if err != nil {
		return fmt.Errorf("failed to mark deposit paid: %w", err)
	}
	return requireRowUpdated(result, "booking", bookingID)
}

// UpdateStatus writes a status computed by the state machine. The session
// id and payment fields are left untouched, which is what the expiry
// reversion path requires.
func (r *BookingRepository) UpdateStatus(bookingID string, status models.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, bookingID, status)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	return requireRowUpdated(result, "booking", bookingID)
}

// List retrieves bookings newest-first, optionally filtered by status.
func (r *BookingRepository) List(status string, limit, offset int) ([]models.Booking, error) {
	bookings := []models.Booking{}

	if status != "" {
		query := `SELECT ` + bookingColumns + `
			FROM bookings
			WHERE status = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`
		if err := r.db.Select(&bookings, query, status, limit, offset); err != nil {
			return nil, err
		}
		return bookings, nil
	}

	query := `SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	if err := r.db.Select(&bookings, query, limit, offset); err != nil {
		return nil, err
	}
	return bookings, nil
}

// Delete removes a booking. Administrative action only.
func (r *BookingRepository) Delete(bookingID string) error {
	result, err := r.db.Exec(`DELETE FROM bookings WHERE id = $1`, bookingID)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return requireRowUpdated(result, "booking", bookingID)
}
