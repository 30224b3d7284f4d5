// Package queue defines the compliance events exchanged over RabbitMQ and
// the consumer that records them.
package queue

import "time"

// QueueName is the durable queue carrying ComplianceEvent messages.
const QueueName = "compliance.events"

// Event kinds.
const (
	KindCertificateAdded    = "certificate.added"
	KindCertificateExpiring = "certificate.expiring"
	KindCertificateExpired  = "certificate.expired"
)

// ComplianceEvent reports a change in a crew member's certificate
// standing.  It carries enough to log or notify without a database read.
type ComplianceEvent struct {
	MessageID       string    `json:"message_id"`
	Kind            string    `json:"kind"`
	UserID          uint64    `json:"user_id"`
	CertificateID   uint64    `json:"certificate_id"`
	CertificateType string    `json:"certificate_type"`
	IssuedBy        string    `json:"issued_by"`
	ExpiryDate      string    `json:"expiry_date"`
	Status          string    `json:"status"`
	OccurredAt      time.Time `json:"occurred_at"`
}
