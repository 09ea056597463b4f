package models

import (
	"fmt"
	"strings"
	"time"
)

// Contact is a contact-form submission from the public site
type Contact struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Subject   *string   `json:"subject,omitempty" db:"subject"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CreateContactRequest is the public contact-form payload
type CreateContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// Validate checks the required contact fields
func (r *CreateContactRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" ||
		strings.TrimSpace(r.Email) == "" ||
		strings.TrimSpace(r.Message) == "" {
		return fmt.Errorf("name, email, and message are required")
	}
	return nil
}

// ToContact builds a Contact from the request
func (r *CreateContactRequest) ToContact() *Contact {
	return &Contact{
		Name:    r.Name,
		Email:   r.Email,
		Subject: optional(r.Subject),
		Message: r.Message,
	}
}
