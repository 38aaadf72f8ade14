package events

import (
	"context"
	"encoding/json"
	"log"

	"shipment-tracker-web/internal/ports"
)

// LogPublisher writes events to the process log. Used when no broker is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, key string, e ports.Event) error {
	data, err := json.Marshal(e.Data)
	if err != nil {
		return err
	}
	log.Printf("req_id=%s event=%s key=%s data=%s", e.RequestID, e.Type, key, data)
	return nil
}

func (LogPublisher) Close() error { return nil }
