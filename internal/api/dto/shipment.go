package dto

// StatusView carries a status code together with its presentation metadata.
type StatusView struct {
	Code  string
	Label string
	Color string
	Icon  string
}

type StatusUpdateView struct {
	ID        int
	Status    StatusView
	Details   string
	Location  string
	Timestamp string
}

type ShipmentView struct {
	ID                int
	OrderID           string
	TrackingID        string
	OrderDate         string
	EstimatedDelivery string
	Status            StatusView
	OriginName        string
	OriginAddress     string
	CustomerName      string
	CustomerAddress   string
	CustomerPhone     string
	// History is newest first.
	History []StatusUpdateView
}

// One row of the admin shipment list.
type ShipmentRow struct {
	TrackingID        string
	OrderID           string
	Customer          string
	Status            StatusView
	OrderDate         string
	EstimatedDelivery string
}
