package database

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lattencreative/studio-backend/internal/models"
)

const clientColumns = `id, name, email, phone, company, website, notes, status, source, booking_id, created_at, updated_at`

// ClientRepository handles database operations for the clients table
type ClientRepository struct {
	db DB
}

// NewClientRepository creates a new ClientRepository
func NewClientRepository(db DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// Create inserts a new client record
func (r *ClientRepository) Create(client *models.Client) error {
	query := `
		INSERT INTO clients (id, name, email, phone, company, website, notes, status, source, booking_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`

	if client.ID == "" {
		client.ID = uuid.New().String()
	}

	return r.db.QueryRow(
		query,
		client.ID, client.Name, client.Email, client.Phone, client.Company,
		client.Website, client.Notes, client.Status, client.Source, client.BookingID,
	).Scan(&client.CreatedAt, &client.UpdatedAt)
}

// GetByID retrieves a client by ID. Returns sql.ErrNoRows when absent.
func (r *ClientRepository) GetByID(clientID string) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	var client models.Client
	if err := r.db.Get(&client, query, clientID); err != nil {
		return nil, err
	}
	return &client, nil
}

// GetByBookingID finds the client created from a booking conversion, if any.
// Returns sql.ErrNoRows when the booking was never converted.
func (r *ClientRepository) GetByBookingID(bookingID string) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE booking_id = $1`

	var client models.Client
	if err := r.db.Get(&client, query, bookingID); err != nil {
		return nil, err
	}
	return &client, nil
}

// List retrieves clients newest-first, optionally filtered by status.
func (r *ClientRepository) List(status string, limit, offset int) ([]models.Client, error) {
	clients := []models.Client{}

	if status != "" {
		query := `SELECT ` + clientColumns + `
			FROM clients
			WHERE status = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`
		if err := r.db.Select(&clients, query, status, limit, offset); err != nil {
			return nil, err
		}
		return clients, nil
	}

	query := `SELECT ` + clientColumns + `
		FROM clients
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	if err := r.db.Select(&clients, query, limit, offset); err != nil {
		return nil, err
	}
	return clients, nil
}

// Update rewrites the mutable client fields
func (r *ClientRepository) Update(client *models.Client) error {
	query := `
		UPDATE clients
		SET name = $2, email = $3, phone = $4, company = $5,
			website = $6, notes = $7, status = $8, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(
		query,
		client.ID, client.Name, client.Email, client.Phone, client.Company,
		client.Website, client.Notes, client.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	return requireRowUpdated(result, "client", client.ID)
}
