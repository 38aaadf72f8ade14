package services

import (
	"context"
	"fmt"
	"strings"

	"shipment-tracker-web/internal/domain"
	"shipment-tracker-web/internal/ports"
)

func validateNewShipment(s domain.NewShipment) error {
	required := []struct {
		name  string
		value string
	}{
		{"order id", s.OrderID},
		{"tracking id", s.TrackingID},
		{"origin name", s.OriginName},
		{"origin address", s.OriginAddress},
		{"customer name", s.Customer.Name},
		{"customer address", s.Customer.Address},
		{"customer phone", s.Customer.Phone},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%s is required: %w", f.name, domain.ErrInvalidInput)
		}
	}
	if s.OrderDate.IsZero() || s.EstimatedDelivery.IsZero() {
		return fmt.Errorf("order date and estimated delivery are required: %w", domain.ErrInvalidInput)
	}
	return nil
}

// CreateShipment creates the customer, then the shipment that references it.
// The shipment write is never attempted when the customer write fails. When the
// shipment write fails the customer is deleted again and a
// *domain.PartialFailureError is returned.
func CreateShipment(
	ctx context.Context,
	api ports.ContentAPI,
	pub ports.EventPublisher,
	sess *domain.Session,
	ns domain.NewShipment,
) (*domain.Shipment, error) {
	if err := validateNewShipment(ns); err != nil {
		return nil, fmt.Errorf("create shipment: %w", err)
	}

	cust, err := api.CreateCustomer(ctx, sess, ns.Customer)
	if err != nil {
		return nil, fmt.Errorf("create shipment: create customer: %w", err)
	}

	shipment, err := api.CreateShipment(ctx, sess, cust.ID, ns)
	if err != nil {
		compErr := api.DeleteCustomer(ctx, sess, cust.ID)

		publish(ctx, pub, ports.Event{
			Type:       ports.EventPartialFailure,
			TrackingID: ns.TrackingID,
			Data: map[string]any{
				"op":          "create_shipment",
				"customer_id": cust.ID,
				"compensated": compErr == nil,
				"error":       err.Error(),
			},
		})

		return nil, fmt.Errorf("create shipment: %w", &domain.PartialFailureError{
			Op:          "create shipment",
			Step:        "create shipment record",
			Compensated: compErr == nil,
			Err:         err,
		})
	}

	publish(ctx, pub, ports.Event{
		Type:       ports.EventShipmentCreated,
		TrackingID: shipment.TrackingID,
		Data: map[string]any{
			"shipment_id": shipment.ID,
			"customer_id": cust.ID,
		},
	})

	return shipment, nil
}

func DeleteShipment(
	ctx context.Context,
	api ports.ContentAPI,
	pub ports.EventPublisher,
	sess *domain.Session,
	trackingID string,
	shipmentID int,
) error {
	if shipmentID <= 0 {
		return fmt.Errorf("delete shipment: id must be positive, got %d: %w", shipmentID, domain.ErrInvalidInput)
	}

	if err := api.DeleteShipment(ctx, sess, shipmentID); err != nil {
		return fmt.Errorf("delete shipment %d: %w", shipmentID, err)
	}

	publish(ctx, pub, ports.Event{
		Type:       ports.EventShipmentDeleted,
		TrackingID: trackingID,
		Data:       map[string]any{"shipment_id": shipmentID},
	})

	return nil
}
