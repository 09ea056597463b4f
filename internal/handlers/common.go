package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lattencreative/studio-backend/internal/models"
)

// ActivityRecorder records dashboard activity. Recording is best effort
// and never fails a request.
type ActivityRecorder interface {
	LogBookingCreated(booking *models.Booking, userAgent string)
	LogBookingStatusChanged(bookingID string, from, to models.BookingStatus, cause string)
	LogDepositPaid(bookingID, sessionID string, amount int64)
	LogContactReceived(contact *models.Contact, userAgent string)
	LogClientCreated(client *models.Client)
	LogProjectCreated(project *models.Project)
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// parsePagination reads limit and offset query parameters with sane bounds
func parsePagination(c *gin.Context) (limit, offset int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	return limit, offset
}
