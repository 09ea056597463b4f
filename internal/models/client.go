package models

import (
	"fmt"
	"strings"
	"time"
)

// ClientStatus represents the relationship state of a client record
type ClientStatus string

const (
	ClientStatusLead     ClientStatus = "lead"
	ClientStatusActive   ClientStatus = "active"
	ClientStatusInactive ClientStatus = "inactive"
	ClientStatusArchived ClientStatus = "archived"
)

// ClientSource records where a client record originated
type ClientSource string

const (
	ClientSourceBooking     ClientSource = "booking"
	ClientSourceContactForm ClientSource = "contact_form"
	ClientSourceManual      ClientSource = "manual"
	ClientSourceReferral    ClientSource = "referral"
)

// Client is a customer record managed from the operations dashboard
type Client struct {
	ID        string       `json:"id" db:"id"`
	Name      string       `json:"name" db:"name"`
	Email     string       `json:"email" db:"email"`
	Phone     *string      `json:"phone,omitempty" db:"phone"`
	Company   *string      `json:"company,omitempty" db:"company"`
	Website   *string      `json:"website,omitempty" db:"website"`
	Notes     *string      `json:"notes,omitempty" db:"notes"`
	Status    ClientStatus `json:"status" db:"status"`
	Source    ClientSource `json:"source" db:"source"`
	BookingID *string      `json:"booking_id,omitempty" db:"booking_id"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" db:"updated_at"`
}

// UpsertClientRequest is the admin payload for creating or updating a client
type UpsertClientRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Website string `json:"website,omitempty"`
	Notes   string `json:"notes,omitempty"`
	Status  string `json:"status,omitempty"`
	Source  string `json:"source,omitempty"`
}

// Validate checks the required client fields
func (r *UpsertClientRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Email) == "" {
		return fmt.Errorf("name and email are required")
	}
	return nil
}

// ToClient builds a Client from the request, defaulting status and source
// for manually created records.
func (r *UpsertClientRequest) ToClient() *Client {
	status := ClientStatus(r.Status)
	if status == "" {
		status = ClientStatusLead
	}
	source := ClientSource(r.Source)
	if source == "" {
		source = ClientSourceManual
	}

	return &Client{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   optional(r.Phone),
		Company: optional(r.Company),
		Website: optional(r.Website),
		Notes:   optional(r.Notes),
		Status:  status,
		Source:  source,
	}
}
