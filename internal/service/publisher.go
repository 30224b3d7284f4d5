// Package service holds the background pieces of the server: the
// RabbitMQ publisher for compliance events and the certificate expiry
// sweep.
package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/iliyamo/vessel-management/internal/queue"
)

// Publisher sends compliance events.  Failures are the caller's to log;
// they never fail the request that triggered them.
type Publisher interface {
	PublishCompliance(ctx context.Context, ev queue.ComplianceEvent) error
}

// AMQPPublisher dials RabbitMQ per publish and sends a persistent JSON
// message to queue.QueueName on the default exchange.
type AMQPPublisher struct {
	URL string
	Log *zap.Logger
}

func NewAMQPPublisher(url string, log *zap.Logger) *AMQPPublisher {
	return &AMQPPublisher{URL: url, Log: log}
}

func (p *AMQPPublisher) PublishCompliance(ctx context.Context, ev queue.ComplianceEvent) error {
	if ev.MessageID == "" {
		ev.MessageID = uuid.NewString()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	conn, err := amqp.Dial(p.URL)
	if err != nil {
		p.Log.Warn("rabbitmq: dial failed", zap.Error(err))
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.Log.Warn("rabbitmq: channel open failed", zap.Error(err))
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(queue.QueueName, true, false, false, false, nil); err != nil {
		p.Log.Warn("rabbitmq: queue declare failed", zap.Error(err))
		return err
	}
	err = ch.PublishWithContext(ctx, "", queue.QueueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.MessageID,
		Timestamp:    ev.OccurredAt,
		Type:         ev.Kind,
		Body:         body,
	})
	if err != nil {
		p.Log.Warn("rabbitmq: publish failed", zap.Error(err), zap.String("kind", ev.Kind))
		return err
	}
	return nil
}

// NopPublisher drops every event.  It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishCompliance(context.Context, queue.ComplianceEvent) error { return nil }
