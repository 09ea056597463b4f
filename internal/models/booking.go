package models

import (
	"fmt"
	"strings"
	"time"
)

// BookingStatus represents the lifecycle status of a booking
// Matches PostgreSQL ENUM: booking_status
type BookingStatus string

const (
	StatusPending     BookingStatus = "pending"      // Created, no payment session yet
	StatusConfirmed   BookingStatus = "confirmed"    // Checkout session created, awaiting payment
	StatusDepositPaid BookingStatus = "deposit_paid" // Deposit cleared via webhook
	StatusInProgress  BookingStatus = "in_progress"  // Work started (dashboard)
	StatusCompleted   BookingStatus = "completed"    // Project delivered (dashboard)
	StatusCancelled   BookingStatus = "cancelled"    // Cancelled (dashboard)
)

// BookingEvent is something that happens to a booking and may move its
// status. All status writes go through Apply so illegal transitions are
// rejected by construction instead of by convention across handlers.
type BookingEvent string

const (
	EventCheckoutSessionCreated BookingEvent = "checkout_session_created"
	EventSessionCompleted       BookingEvent = "session_completed"
	EventSessionExpired         BookingEvent = "session_expired"
	EventWorkStarted            BookingEvent = "work_started"
	EventWorkCompleted          BookingEvent = "work_completed"
	EventCancelled              BookingEvent = "cancelled"
)

// TransitionError reports an event applied to a status it is not valid for.
type TransitionError struct {
	From  BookingStatus
	Event BookingEvent
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition: event %q not allowed from status %q", e.Event, e.From)
}

// Apply returns the status that results from ev occurring while the booking
// is in status s. Webhook redeliveries are expected, so payment events are
// idempotent: re-applying session_completed to a deposit_paid booking (or
// session_expired to a pending one) returns the same status without error.
func (s BookingStatus) Apply(ev BookingEvent) (BookingStatus, error) {
	switch ev {
	case EventCheckoutSessionCreated:
		// confirmed -> confirmed lets a customer re-request a payment link
		// before any session completes.
		switch s {
		case StatusPending, StatusConfirmed:
			return StatusConfirmed, nil
		}
	case EventSessionCompleted:
		switch s {
		case StatusPending, StatusConfirmed, StatusDepositPaid:
			return StatusDepositPaid, nil
		}
	case EventSessionExpired:
		switch s {
		case StatusConfirmed, StatusPending:
			return StatusPending, nil
		}
	case EventWorkStarted:
		if s == StatusDepositPaid {
			return StatusInProgress, nil
		}
	case EventWorkCompleted:
		if s == StatusInProgress {
			return StatusCompleted, nil
		}
	case EventCancelled:
		switch s {
		case StatusPending, StatusConfirmed, StatusDepositPaid, StatusInProgress:
			return StatusCancelled, nil
		}
	}
	return s, &TransitionError{From: s, Event: ev}
}

// IsValid reports whether s is one of the known booking statuses.
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDepositPaid,
		StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Booking represents a prospective client engagement tracked from inquiry
// through deposit payment. Monetary amounts are integer cents.
type Booking struct {
	ID                    string        `json:"id" db:"id"`
	CustomerName          string        `json:"customer_name" db:"customer_name"`
	CustomerEmail         string        `json:"customer_email" db:"customer_email"`
	CustomerPhone         *string       `json:"customer_phone,omitempty" db:"customer_phone"`
	CompanyName           *string       `json:"company_name,omitempty" db:"company_name"`
	PackageSlug           string        `json:"package_slug" db:"package_slug"`
	PackageTitle          string        `json:"package_title" db:"package_title"`
	PackagePrice          int64         `json:"package_price" db:"package_price"`
	DepositAmount         int64         `json:"deposit_amount" db:"deposit_amount"`
	PreferredDate         string        `json:"preferred_date" db:"preferred_date"`
	PreferredTime         string        `json:"preferred_time" db:"preferred_time"`
	Timezone              string        `json:"timezone" db:"timezone"`
	ProjectDescription    string        `json:"project_description" db:"project_description"`
	ProjectGoals          *string       `json:"project_goals,omitempty" db:"project_goals"`
	CurrentWebsite        *string       `json:"current_website,omitempty" db:"current_website"`
	Status                BookingStatus `json:"status" db:"status"`
	DepositPaid           bool          `json:"deposit_paid" db:"deposit_paid"`
	DepositPaidAt         *time.Time    `json:"deposit_paid_at,omitempty" db:"deposit_paid_at"`
	StripeSessionID       *string       `json:"stripe_session_id,omitempty" db:"stripe_session_id"`
	StripePaymentIntentID *string       `json:"stripe_payment_intent_id,omitempty" db:"stripe_payment_intent_id"`
	CreatedAt             time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at" db:"updated_at"`
}

// CreateBookingRequest is the public intake payload (wizard submission)
type CreateBookingRequest struct {
	CustomerName       string `json:"customerName"`
	CustomerEmail      string `json:"customerEmail"`
	CustomerPhone      string `json:"customerPhone,omitempty"`
	CompanyName        string `json:"companyName,omitempty"`
	PackageSlug        string `json:"packageSlug"`
	PackageTitle       string `json:"packageTitle"`
	PackagePrice       int64  `json:"packagePrice"`
	DepositAmount      int64  `json:"depositAmount"`
	PreferredDate      string `json:"preferredDate"`
	PreferredTime      string `json:"preferredTime"`
	Timezone           string `json:"timezone,omitempty"`
	ProjectDescription string `json:"projectDescription"`
	ProjectGoals       string `json:"projectGoals,omitempty"`
	CurrentWebsite     string `json:"currentWebsite,omitempty"`
}

// Validate runs the intake validation rules, first violation wins.
func (r *CreateBookingRequest) Validate() error {
	if strings.TrimSpace(r.CustomerName) == "" ||
		strings.TrimSpace(r.CustomerEmail) == "" ||
		strings.TrimSpace(r.PackageSlug) == "" ||
		strings.TrimSpace(r.PreferredDate) == "" ||
		strings.TrimSpace(r.PreferredTime) == "" {
		return fmt.Errorf("missing required fields: customerName, customerEmail, packageSlug, preferredDate, preferredTime")
	}

	if r.PackagePrice <= 0 {
		return fmt.Errorf("invalid package price")
	}

	return nil
}

// ToBooking builds a pending Booking from the request. The timezone falls
// back to the server's local zone when the caller omits it.
func (r *CreateBookingRequest) ToBooking() *Booking {
	tz := r.Timezone
	if tz == "" {
		tz = time.Now().Location().String()
		if tz == "Local" {
			tz = "UTC"
		}
	}

	return &Booking{
		CustomerName:       r.CustomerName,
		CustomerEmail:      r.CustomerEmail,
		CustomerPhone:      optional(r.CustomerPhone),
		CompanyName:        optional(r.CompanyName),
		PackageSlug:        r.PackageSlug,
		PackageTitle:       r.PackageTitle,
		PackagePrice:       r.PackagePrice,
		DepositAmount:      r.DepositAmount,
		PreferredDate:      r.PreferredDate,
		PreferredTime:      r.PreferredTime,
		Timezone:           tz,
		ProjectDescription: r.ProjectDescription,
		ProjectGoals:       optional(r.ProjectGoals),
		CurrentWebsite:     optional(r.CurrentWebsite),
		Status:             StatusPending,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
