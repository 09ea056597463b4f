package handlers

import (
	"context"
	"database/sql"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/lattencreative/studio-backend/internal/events"
	"github.com/lattencreative/studio-backend/internal/models"
	"github.com/lattencreative/studio-backend/internal/services"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// fakeBookingStore keeps bookings in a map and records mutations
type fakeBookingStore struct {
	bookings   map[string]*models.Booking
	createErr  error
	updateErr  error
	sessions   map[string]string
	statusLog  []models.BookingStatus
	paidIntent string
}

func newFakeBookingStore(bookings ...*models.Booking) *fakeBookingStore {
	store := &fakeBookingStore{
		bookings: map[string]*models.Booking{},
		sessions: map[string]string{},
	}
	for _, b := range bookings {
		store.bookings[b.ID] = b
	}
	return store
}

func (s *fakeBookingStore) Create(booking *models.Booking) error {
	if s.createErr != nil {
		return s.createErr
	}
	if booking.ID == "" {
		booking.ID = "generated-id"
	}
	s.bookings[booking.ID] = booking
	return nil
}

func (s *fakeBookingStore) GetByID(bookingID string) (*models.Booking, error) {
	booking, ok := s.bookings[bookingID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *booking
	return &copied, nil
}

func (s *fakeBookingStore) SetCheckoutSession(bookingID, sessionID string, status models.BookingStatus) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.sessions[bookingID] = sessionID
	s.bookings[bookingID].Status = status
	s.statusLog = append(s.statusLog, status)
	return nil
}

func (s *fakeBookingStore) MarkDepositPaid(bookingID, paymentIntentID string, status models.BookingStatus) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	booking := s.bookings[bookingID]
	booking.Status = status
	booking.DepositPaid = true
	s.paidIntent = paymentIntentID
	s.statusLog = append(s.statusLog, status)
	return nil
}

func (s *fakeBookingStore) UpdateStatus(bookingID string, status models.BookingStatus) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.bookings[bookingID].Status = status
	s.statusLog = append(s.statusLog, status)
	return nil
}

// fakeGateway returns a canned checkout session
type fakeGateway struct {
	session *services.CheckoutSession
	err     error
	gotReq  *services.CheckoutSessionParams
}

func (g *fakeGateway) CreateCheckoutSession(params *services.CheckoutSessionParams) (*services.CheckoutSession, error) {
	g.gotReq = params
	if g.err != nil {
		return nil, g.err
	}
	return g.session, nil
}

// fakeVerifier skips signature checking and returns a canned event
type fakeVerifier struct {
	event *services.WebhookEvent
	err   error
}

func (v *fakeVerifier) ConstructEvent(payload []byte, signatureHeader string) (*services.WebhookEvent, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.event, nil
}

// fakePublisher records published events
type fakePublisher struct {
	published []events.BookingEvent
}

func (p *fakePublisher) Publish(ctx context.Context, event events.BookingEvent) error {
	p.published = append(p.published, event)
	return nil
}

// noopActivity satisfies ActivityRecorder without a database
type noopActivity struct{}

func (noopActivity) LogBookingCreated(*models.Booking, string)                                     {}
func (noopActivity) LogBookingStatusChanged(string, models.BookingStatus, models.BookingStatus, string) {
}
func (noopActivity) LogDepositPaid(string, string, int64)      {}
func (noopActivity) LogContactReceived(*models.Contact, string) {}
func (noopActivity) LogClientCreated(*models.Client)            {}
func (noopActivity) LogProjectCreated(*models.Project)          {}
