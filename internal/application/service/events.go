package service

import (
	"context"

	"github.com/google/uuid"
)

// AuditEvent records one mutation of a profile aggregate.
type AuditEvent struct {
	Type     string    `json:"type"`
	OwnerID  uuid.UUID `json:"owner_id"`
	Resource string    `json:"resource,omitempty"`
	ItemID   string    `json:"item_id,omitempty"`
	At       int64     `json:"at"`
}

// AuditPublisher emits audit events after successful writes. Publishing is
// best-effort: failures are logged by the caller, never surfaced.
type AuditPublisher interface {
	Publish(ctx context.Context, event AuditEvent) error
}
