package models

import (
	"fmt"
	"strings"
	"time"
)

// ProjectStatus represents where a project is in its delivery lifecycle
type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "planning"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusReview     ProjectStatus = "review"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusOnHold     ProjectStatus = "on_hold"
	ProjectStatusCancelled  ProjectStatus = "cancelled"
)

// IsValid reports whether s is one of the known project statuses.
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusInProgress, ProjectStatusReview,
		ProjectStatusCompleted, ProjectStatusOnHold, ProjectStatusCancelled:
		return true
	}
	return false
}

// Project is an engagement being delivered for a client. Budget is integer
// cents, like booking amounts.
type Project struct {
	ID          string        `json:"id" db:"id"`
	Title       string        `json:"title" db:"title"`
	Description *string       `json:"description,omitempty" db:"description"`
	ClientID    string        `json:"client_id" db:"client_id"`
	BookingID   *string       `json:"booking_id,omitempty" db:"booking_id"`
	Status      ProjectStatus `json:"status" db:"status"`
	Budget      *int64        `json:"budget,omitempty" db:"budget"`
	StartDate   *string       `json:"start_date,omitempty" db:"start_date"`
	DueDate     *string       `json:"due_date,omitempty" db:"due_date"`
	CompletedAt *time.Time    `json:"completed_at,omitempty" db:"completed_at"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

// CreateProjectRequest is the admin payload for creating a project
type CreateProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ClientID    string `json:"clientId"`
	Status      string `json:"status,omitempty"`
	Budget      int64  `json:"budget,omitempty"`
	StartDate   string `json:"startDate,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
}

// Validate checks the required project fields
func (r *CreateProjectRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" || strings.TrimSpace(r.ClientID) == "" {
		return fmt.Errorf("title and clientId are required")
	}
	if r.Status != "" && !ProjectStatus(r.Status).IsValid() {
		return fmt.Errorf("invalid project status: %s", r.Status)
	}
	return nil
}

// ToProject builds a Project from the request
func (r *CreateProjectRequest) ToProject() *Project {
	status := ProjectStatus(r.Status)
	if status == "" {
		status = ProjectStatusPlanning
	}

	p := &Project{
		Title:       r.Title,
		Description: optional(r.Description),
		ClientID:    r.ClientID,
		Status:      status,
		StartDate:   optional(r.StartDate),
		DueDate:     optional(r.DueDate),
	}
	if r.Budget > 0 {
		p.Budget = &r.Budget
	}
	return p
}
