// Package events publishes booking lifecycle events to RabbitMQ so
// downstream consumers (email sender, CRM sync) can react without the
// API blocking on them. Publishing is best effort: errors are logged
// and returned, and callers ignore them.
package events

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const queueName = "booking.events"

// Event types carried on the booking.events queue
const (
	TypeBookingCreated     = "booking.created"
	TypeBookingConfirmed   = "booking.confirmed"
	TypeBookingDepositPaid = "booking.deposit_paid"
)

// BookingEvent is the message body published for each lifecycle change
type BookingEvent struct {
	Type        string    `json:"type"`
	BookingID   string    `json:"booking_id"`
	PackageSlug string    `json:"package_slug"`
	Status      string    `json:"status"`
	Amount      int64     `json:"amount,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Publisher sends booking events to the broker. A Publisher with an
// empty URL is valid and drops every event, which keeps local
// development working without RabbitMQ.
type Publisher struct {
	url    string
	logger *logrus.Logger
}

// NewPublisher creates a new event publisher
func NewPublisher(url string, logger *logrus.Logger) *Publisher {
	return &Publisher{url: url, logger: logger}
}

// Enabled reports whether a broker URL is configured
func (p *Publisher) Enabled() bool {
	return p.url != ""
}

// Publish sends one event to the booking.events queue. The connection is
// dialed per publish; event volume here is a handful per booking, so the
// simplicity wins over a managed channel pool.
func (p *Publisher) Publish(ctx context.Context, event BookingEvent) error {
	if !p.Enabled() {
		return nil
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.logger.WithError(err).Warn("Event publish failed: broker dial")
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.logger.WithError(err).Warn("Event publish failed: channel open")
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable so events survive broker restarts. Declare is idempotent.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		p.logger.WithError(err).Warn("Event publish failed: queue declare")
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx,
		"",        // default exchange
		queueName, // routing key = queue name
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		p.logger.WithError(err).WithFields(logrus.Fields{
			"type":       event.Type,
			"booking_id": event.BookingID,
		}).Warn("Event publish failed")
		return err
	}

	return nil
}
