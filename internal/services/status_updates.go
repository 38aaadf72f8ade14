package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shipment-tracker-web/internal/domain"
	"shipment-tracker-web/internal/ports"
)

type SubmitStatusUpdateRequest struct {
	TrackingID string
	ShipmentID int
	Status     domain.OrderStatus
	Details    string
	Timestamp  time.Time
}

func (r SubmitStatusUpdateRequest) validate() error {
	switch {
	case r.ShipmentID <= 0:
		return fmt.Errorf("shipment id must be positive, got %d: %w", r.ShipmentID, domain.ErrInvalidInput)
	case strings.TrimSpace(r.TrackingID) == "":
		return fmt.Errorf("tracking id is required: %w", domain.ErrInvalidInput)
	case !r.Status.Valid():
		return fmt.Errorf("unknown status %q: %w", r.Status, domain.ErrInvalidInput)
	case strings.TrimSpace(r.Details) == "":
		return fmt.Errorf("details are required: %w", domain.ErrInvalidInput)
	case r.Timestamp.IsZero():
		return fmt.Errorf("timestamp is required: %w", domain.ErrInvalidInput)
	}
	return nil
}

// SubmitStatusUpdate appends a status update and mirrors it onto the shipment.
//
// The calls are strictly sequential: create the status update, then PUT the
// shipment's order_status, then refetch the shipment. A step runs only if the
// previous one succeeded. When the PUT fails the freshly created status update
// is deleted again and a *domain.PartialFailureError is returned.
func SubmitStatusUpdate(
	ctx context.Context,
	api ports.ContentAPI,
	pub ports.EventPublisher,
	sess *domain.Session,
	req SubmitStatusUpdateRequest,
) (*domain.Shipment, error) {
	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("submit status update: %w", err)
	}

	created, err := api.CreateStatusUpdate(ctx, sess, domain.NewStatusUpdate{
		ShipmentID: req.ShipmentID,
		Status:     req.Status,
		Details:    req.Details,
		Timestamp:  req.Timestamp,
	})
	if err != nil {
		return nil, fmt.Errorf("submit status update: create record: %w", err)
	}

	if err := api.UpdateShipmentStatus(ctx, sess, req.ShipmentID, req.Status); err != nil {
		compErr := api.DeleteStatusUpdate(ctx, sess, created.ID)

		publish(ctx, pub, ports.Event{
			Type:       ports.EventPartialFailure,
			TrackingID: req.TrackingID,
			Data: map[string]any{
				"op":               "submit_status_update",
				"status_update_id": created.ID,
				"shipment_id":      req.ShipmentID,
				"compensated":      compErr == nil,
				"error":            err.Error(),
			},
		})

		return nil, fmt.Errorf("submit status update: %w", &domain.PartialFailureError{
			Op:          "submit status update",
			Step:        "update shipment status",
			Compensated: compErr == nil,
			Err:         err,
		})
	}

	publish(ctx, pub, ports.Event{
		Type:       ports.EventStatusUpdateCreated,
		TrackingID: req.TrackingID,
		Data: map[string]any{
			"status_update_id": created.ID,
			"shipment_id":      req.ShipmentID,
			"status":           string(req.Status),
		},
	})

	return refresh(ctx, api, sess, req.TrackingID)
}

// DeleteStatusUpdate removes one history record and returns the refetched
// shipment. The shipment's own status is left as it is.
func DeleteStatusUpdate(
	ctx context.Context,
	api ports.ContentAPI,
	pub ports.EventPublisher,
	sess *domain.Session,
	trackingID string,
	statusUpdateID int,
) (*domain.Shipment, error) {
	if statusUpdateID <= 0 {
		return nil, fmt.Errorf("delete status update: id must be positive, got %d: %w", statusUpdateID, domain.ErrInvalidInput)
	}

	if err := api.DeleteStatusUpdate(ctx, sess, statusUpdateID); err != nil {
		return nil, fmt.Errorf("delete status update %d: %w", statusUpdateID, err)
	}

	publish(ctx, pub, ports.Event{
		Type:       ports.EventStatusUpdateDeleted,
		TrackingID: trackingID,
		Data:       map[string]any{"status_update_id": statusUpdateID},
	})

	return refresh(ctx, api, sess, trackingID)
}

func refresh(ctx context.Context, api ports.ContentAPI, sess *domain.Session, trackingID string) (*domain.Shipment, error) {
	s, err := api.FetchShipment(ctx, sess, trackingID)
	if err != nil {
		return nil, fmt.Errorf("refresh shipment %q: %w", trackingID, err)
	}
	if s == nil {
		return nil, fmt.Errorf("refresh shipment %q: %w", trackingID, domain.ErrNotFound)
	}
	return s, nil
}
