package services

import (
	"context"
	"fmt"
	"strings"

	"shipment-tracker-web/internal/domain"
	"shipment-tracker-web/internal/ports"
)

// LookupTracking checks that the content API accepts a lookup for the
// tracking id and returns the trimmed id to navigate to.
//
// Acceptance only means the HTTP call succeeded; it does not prove that a
// shipment with this id exists.
func LookupTracking(ctx context.Context, api ports.ContentAPI, trackingID string) (string, error) {
	trackingID = strings.TrimSpace(trackingID)
	if trackingID == "" {
		return "", fmt.Errorf("lookup tracking: tracking id is required: %w", domain.ErrInvalidInput)
	}

	if err := api.TrackingIDAccepted(ctx, trackingID); err != nil {
		return "", fmt.Errorf("lookup tracking %q: %w", trackingID, err)
	}

	return trackingID, nil
}
