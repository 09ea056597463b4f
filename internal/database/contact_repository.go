package database

import (
	"github.com/google/uuid"
	"github.com/lattencreative/studio-backend/internal/models"
)

// ContactRepository handles database operations for contact form messages
type ContactRepository struct {
	db DB
}

// NewContactRepository creates a new ContactRepository
func NewContactRepository(db DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create inserts a new contact message
func (r *ContactRepository) Create(contact *models.Contact) error {
	query := `
		INSERT INTO contacts (id, name, email, subject, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	if contact.ID == "" {
		contact.ID = uuid.New().String()
	}

	return r.db.QueryRow(
		query,
		contact.ID, contact.Name, contact.Email, contact.Subject, contact.Message,
	).Scan(&contact.CreatedAt)
}

// List retrieves contact messages newest-first
func (r *ContactRepository) List(limit, offset int) ([]models.Contact, error) {
	contacts := []models.Contact{}
	query := `
		SELECT id, name, email, subject, message, created_at
		FROM contacts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	if err := r.db.Select(&contacts, query, limit, offset); err != nil {
		return nil, err
	}
	return contacts, nil
}
