package domain

// DashboardSummary is trusted verbatim from the content API; nothing here is
// aggregated locally.
type DashboardSummary struct {
	TotalOrders         int
	OrdersDelivered     int
	OrdersInTransit     int
	OrdersYetToBePicked int
	RecentOrders        []RecentOrder
	OrderStatusData     []StatusCount
}

type RecentOrder struct {
	ID         string
	TrackingID string
	Customer   string
	Status     OrderStatus
	Date       string
}

// One slice of the status distribution chart.
type StatusCount struct {
	Name  string
	Value int
}
