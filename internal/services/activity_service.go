package services

import (
	"github.com/sirupsen/logrus"

	"github.com/lattencreative/studio-backend/internal/database"
	"github.com/lattencreative/studio-backend/internal/models"
	"github.com/lattencreative/studio-backend/internal/utils"
)

// ActivityService records dashboard activity entries. Logging is best
// effort: a failed insert is logged and never fails the calling request.
type ActivityService struct {
	repo   *database.ActivityLogRepository
	logger *logrus.Logger
}

// NewActivityService creates a new activity service
func NewActivityService(repo *database.ActivityLogRepository, logger *logrus.Logger) *ActivityService {
	return &ActivityService{repo: repo, logger: logger}
}

// LogBookingCreated records a new booking arriving through public intake
func (s *ActivityService) LogBookingCreated(booking *models.Booking, userAgent string) {
	s.record("booking", booking.ID, "booking_created", models.ActivityDetails{
		"package_slug":   booking.PackageSlug,
		"preferred_date": booking.PreferredDate,
		"device_info":    utils.ParseUserAgent(userAgent),
	})
}

// LogBookingStatusChanged records a status transition on a booking
func (s *ActivityService) LogBookingStatusChanged(bookingID string, from, to models.BookingStatus, cause string) {
	s.record("booking", bookingID, "status_changed", models.ActivityDetails{
		"from":  string(from),
		"to":    string(to),
		"cause": cause,
	})
}

// LogDepositPaid records a confirmed deposit payment
func (s *ActivityService) LogDepositPaid(bookingID, sessionID string, amount int64) {
	s.record("booking", bookingID, "deposit_paid", models.ActivityDetails{
		"session_id": sessionID,
		"amount":     amount,
	})
}

// LogContactReceived records a contact form submission
func (s *ActivityService) LogContactReceived(contact *models.Contact, userAgent string) {
	s.record("contact", contact.ID, "contact_received", models.ActivityDetails{
		"email":       contact.Email,
		"device_info": utils.ParseUserAgent(userAgent),
	})
}

// LogClientCreated records a new client, whether manual or converted
func (s *ActivityService) LogClientCreated(client *models.Client) {
	details := models.ActivityDetails{
		"source": string(client.Source),
		"status": string(client.Status),
	}
	if client.BookingID != nil {
		details["booking_id"] = *client.BookingID
	}
	s.record("client", client.ID, "client_created", details)
}

// LogProjectCreated records a new project
func (s *ActivityService) LogProjectCreated(project *models.Project) {
	s.record("project", project.ID, "project_created", models.ActivityDetails{
		"client_id": project.ClientID,
		"title":     project.Title,
	})
}

// Recent returns the latest activity entries for the dashboard feed
func (s *ActivityService) Recent(limit int) ([]models.ActivityEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	return s.repo.ListRecent(limit)
}

func (s *ActivityService) record(entityType, entityID, action string, details models.ActivityDetails) {
	entry := &models.ActivityEntry{
		EntityType: entityType,
		EntityID:   &entityID,
		Action:     action,
		Details:    details,
	}
	if err := s.repo.Insert(entry); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"entity_type": entityType,
			"entity_id":   entityID,
			"action":      action,
		}).Warn("Failed to record activity entry")
	}
}
