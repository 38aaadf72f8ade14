package services

import (
	"context"
	"log"
	"time"

	"shipment-tracker-web/internal/platform/obs"
	"shipment-tracker-web/internal/ports"
)

// publish emits an activity event. Publishing never fails a flow: errors are
// only logged.
func publish(ctx context.Context, pub ports.EventPublisher, e ports.Event) {
	if pub == nil {
		return
	}

	e.RequestID = obs.RequestID(ctx)
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}

	key := e.TrackingID
	if key == "" {
		key = e.Type
	}

	if err := pub.Publish(ctx, key, e); err != nil {
		log.Printf("req_id=%s publish event=%s failed: %v", e.RequestID, e.Type, err)
	}
}
