package domain

import "time"

// Shipment is the tracked logistics order. TrackingID is the customer-facing
// lookup key; ID is the content API's internal identifier.
//
// Status duplicates the latest status update and can drift from it: it is
// written separately from the history and never recomputed on delete.
type Shipment struct {
	ID                int
	OrderID           string
	TrackingID        string
	OrderDate         *time.Time
	EstimatedDelivery *time.Time
	Status            OrderStatus
	OriginName        string
	OriginAddress     string
	Customer          *Customer
	StatusUpdates     []StatusUpdate
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Customer struct {
	ID      int
	Name    string
	Address string
	Phone   string
}

// A history record of one status transition. Never mutated after creation.
type StatusUpdate struct {
	ID        int
	Status    OrderStatus
	Details   string
	Timestamp *time.Time
	Location  *Location
	CreatedAt time.Time
}

type Location struct {
	ID   int
	Name string
}

// Input for creating a shipment together with its customer.
type NewShipment struct {
	OrderID           string
	TrackingID        string
	OrderDate         time.Time
	EstimatedDelivery time.Time
	OriginName        string
	OriginAddress     string
	Customer          Customer
}

// Input for appending a status update to a shipment.
type NewStatusUpdate struct {
	ShipmentID int
	Status     OrderStatus
	Details    string
	Timestamp  time.Time
}

// ShipmentQuery is passed through to the content API as-is.
type ShipmentQuery struct {
	Page     int
	PageSize int
	Filters  map[string]any
	Sort     string
}

type Pagination struct {
	Page      int
	PageSize  int
	PageCount int
	Total     int
}

type ShipmentPage struct {
	Shipments  []Shipment
	Pagination Pagination
}

// LatestUpdate returns the first status update, which is the most recent
// once the history has been sorted newest-first.
func (s *Shipment) LatestUpdate() (StatusUpdate, bool) {
	if s == nil || len(s.StatusUpdates) == 0 {
		return StatusUpdate{}, false
	}
	return s.StatusUpdates[0], true
}

// HasStatusUpdate reports whether the history contains the given record id.
func (s *Shipment) HasStatusUpdate(id int) bool {
	if s == nil {
		return false
	}
	for _, u := range s.StatusUpdates {
		if u.ID == id {
			return true
		}
	}
	return false
}
