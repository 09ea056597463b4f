package database

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lattencreative/studio-backend/internal/models"
)

const projectColumns = `id, title, description, client_id, booking_id, status, budget, start_date, due_date, completed_at, created_at, updated_at`

// ProjectRepository handles database operations for the projects table
type ProjectRepository struct {
	db DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a new project
func (r *ProjectRepository) Create(project *models.Project) error {
	query := `
		INSERT INTO projects (id, title, description, client_id, booking_id, status, budget, start_date, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	if project.ID == "" {
		project.ID = uuid.New().String()
	}

	return r.db.QueryRow(
		query,
		project.ID, project.Title, project.Description, project.ClientID,
		project.BookingID, project.Status, project.Budget, project.StartDate, project.DueDate,
	).Scan(&project.CreatedAt, &project.UpdatedAt)
}

// GetByID retrieves a project by ID. Returns sql.ErrNoRows when absent.
func (r *ProjectRepository) GetByID(projectID string) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	var project models.Project
	if err := r.db.Get(&project, query, projectID); err != nil {
		return nil, err
	}
	return &project, nil
}

// List retrieves projects newest-first, optionally scoped to a client.
func (r *ProjectRepository) List(clientID string, limit, offset int) ([]models.Project, error) {
	projects := []models.Project{}

	if clientID != "" {
		query := `SELECT ` + projectColumns + `
			FROM projects
			WHERE client_id = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3`
		if err := r.db.Select(&projects, query, clientID, limit, offset); err != nil {
			return nil, err
		}
		return projects, nil
	}

	query := `SELECT ` + projectColumns + `
		FROM projects
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	if err := r.db.Select(&projects, query, limit, offset); err != nil {
		return nil, err
	}
	return projects, nil
}

// UpdateStatus moves a project to a new status
func (r *ProjectRepository) UpdateStatus(projectID string, status models.ProjectStatus) error {
	query := `
		UPDATE projects
		SET status = $2,
			completed_at = CASE WHEN $2 = 'completed' THEN NOW() ELSE completed_at END,
			updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, projectID, status)
	if err != nil {
		return fmt.Errorf("failed to update project status: %w", err)
	}
	return requireRowUpdated(result, "project", projectID)
}
