package ports

import (
	"context"
	"shipment-tracker-web/internal/domain"
)

// Port: the external headless content API that owns every shipment, customer
// and status update. Each method is exactly one HTTP call.
//
// A nil session means the call is made without an Authorization header.
// Failures are returned as *domain.APIError.
type ContentAPI interface {
	Login(ctx context.Context, identifier, password string) (*domain.AuthResult, error)

	FetchShipments(ctx context.Context, sess *domain.Session, q domain.ShipmentQuery) (*domain.ShipmentPage, error)
	// Return the shipment with the given tracking id, or nil when nothing matches.
	FetchShipment(ctx context.Context, sess *domain.Session, trackingID string) (*domain.Shipment, error)
	// Succeed when the content API accepts a lookup for the tracking id.
	TrackingIDAccepted(ctx context.Context, trackingID string) error
	FetchDashboard(ctx context.Context, sess *domain.Session) (*domain.DashboardSummary, error)

	CreateCustomer(ctx context.Context, sess *domain.Session, c domain.Customer) (*domain.Customer, error)
	CreateShipment(ctx context.Context, sess *domain.Session, customerID int, s domain.NewShipment) (*domain.Shipment, error)
	CreateStatusUpdate(ctx context.Context, sess *domain.Session, u domain.NewStatusUpdate) (*domain.StatusUpdate, error)
	UpdateShipmentStatus(ctx context.Context, sess *domain.Session, shipmentID int, status domain.OrderStatus) error

	DeleteStatusUpdate(ctx context.Context, sess *domain.Session, id int) error
	DeleteShipment(ctx context.Context, sess *domain.Session, id int) error
	DeleteCustomer(ctx context.Context, sess *domain.Session, id int) error
}
