package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"

	"github.com/primestaffing/recruiter-tracker/internal/dto"
	"github.com/primestaffing/recruiter-tracker/internal/models"
)

// NATSAuditPublisher publishes each audit entry on "<subject>.<action>".
type NATSAuditPublisher struct {
	conn    *nats.Conn
	subject string
}

// NewNATSAuditPublisher constructs a publisher. A nil connection disables publishing.
func NewNATSAuditPublisher(conn *nats.Conn, subject string) *NATSAuditPublisher {
	if subject == "" {
		subject = "tracker.audit"
	}
	return &NATSAuditPublisher{conn: conn, subject: subject}
}

// Subject returns the subject an entry with the given action is published on.
func (p *NATSAuditPublisher) Subject(action models.AuditAction) string {
	return p.subject + "." + strings.ToLower(string(action))
}

// Publish sends the entry as JSON.
func (p *NATSAuditPublisher) Publish(ctx context.Context, entry models.AuditLog) error {
	if p == nil || p.conn == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(dto.NewAuditLogResponse(entry))
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}

	if err := p.conn.Publish(p.Subject(entry.Action), payload); err != nil {
		return fmt.Errorf("publish audit entry: %w", err)
	}
	return nil
}
