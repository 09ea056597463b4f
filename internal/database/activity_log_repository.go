package database

import (
	"github.com/google/uuid"
	"github.com/lattencreative/studio-backend/internal/models"
)

// ActivityLogRepository handles database operations for the activity_log table
type ActivityLogRepository struct {
	db DB
}

// NewActivityLogRepository creates a new ActivityLogRepository
func NewActivityLogRepository(db DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// Insert records one activity entry
func (r *ActivityLogRepository) Insert(entry *models.ActivityEntry) error {
	query := `
		INSERT INTO activity_log (id, entity_type, entity_id, action, details)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	return r.db.QueryRow(
		query,
		entry.ID, entry.EntityType, entry.EntityID, entry.Action, entry.Details,
	).Scan(&entry.CreatedAt)
}

// ListRecent retrieves the most recent activity entries
func (r *ActivityLogRepository) ListRecent(limit int) ([]models.ActivityEntry, error) {
	entries := []models.ActivityEntry{}
	query := `
		SELECT id, entity_type, entity_id, action, details, created_at
		FROM activity_log
		ORDER BY created_at DESC
		LIMIT $1
	`

	if err := r.db.Select(&entries, query, limit); err != nil {
		return nil, err
	}
	return entries, nil
}
