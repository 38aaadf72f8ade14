package ports

import (
	"context"
	"time"
)

// Activity event emitted after admin writes so operators can follow what
// happened, including writes that only partially succeeded.
type Event struct {
	Type       string         `json:"type"`
	TrackingID string         `json:"tracking_id,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	At         time.Time      `json:"at"`
	Data       map[string]any `json:"data,omitempty"`
}

const (
	EventStatusUpdateCreated = "status_update.created"
	EventStatusUpdateDeleted = "status_update.deleted"
	EventShipmentCreated     = "shipment.created"
	EventShipmentDeleted     = "shipment.deleted"
	EventPartialFailure      = "write.partial_failure"
)

type EventPublisher interface {
	Publish(ctx context.Context, key string, e Event) error
	Close() error
}
