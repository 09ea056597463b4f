package database

import (
	"github.com/google/uuid"
	"github.com/lattencreative/studio-backend/internal/models"
)

// AdminUserRepository handles database operations for dashboard accounts
type AdminUserRepository struct {
	db DB
}

// NewAdminUserRepository creates a new AdminUserRepository
func NewAdminUserRepository(db DB) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

// GetByEmail retrieves an active admin account by email.
// Returns sql.ErrNoRows when no account matches.
func (r *AdminUserRepository) GetByEmail(email string) (*models.AdminUser, error) {
	query := `
		SELECT id, email, name, password_hash, active, last_login_at, created_at
		FROM admin_users
		WHERE email = $1 AND active = TRUE
	`

	var user models.AdminUser
	if err := r.db.Get(&user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

// TouchLastLogin stamps the most recent successful login
func (r *AdminUserRepository) TouchLastLogin(adminID uuid.UUID) error {
	_, err := r.db.Exec(`UPDATE admin_users SET last_login_at = NOW() WHERE id = $1`, adminID)
	return err
}
