package dto

// Layout is embedded by every page and drives the shared header.
type Layout struct {
	Title     string
	Username  string
	RequestID string
}

func (l Layout) LoggedIn() bool { return l.Username != "" }

type TrackPage struct {
	Layout
	TrackingID string
	Error      string
}

type TrackingPage struct {
	Layout
	TrackingID string
	Shipment   *ShipmentView
	Error      string
}

type LoginPage struct {
	Layout
	Identifier string
	Error      string
}

type RecentOrderView struct {
	ID         string
	TrackingID string
	Customer   string
	Status     StatusView
	Date       string
}

// StatusShare is one bar of the status distribution.
type StatusShare struct {
	Name    string
	Value   int
	Percent int
}

type DashboardPage struct {
	Layout
	Error               string
	TotalOrders         int
	OrdersDelivered     int
	OrdersInTransit     int
	OrdersYetToBePicked int
	RecentOrders        []RecentOrderView
	Distribution        []StatusShare
}

type ShipmentListPage struct {
	Layout
	Rows      []ShipmentRow
	Statuses  []StatusView
	Status    string
	Sort      string
	Page      int
	PageSize  int
	PageCount int
	Total     int
	PrevURL   string
	NextURL   string
	Error     string
}

// NewShipmentForm holds the raw form values so they can be re-rendered.
type NewShipmentForm struct {
	OrderID           string
	TrackingID        string
	OrderDate         string
	EstimatedDelivery string
	OriginName        string
	OriginAddress     string
	CustomerName      string
	CustomerAddress   string
	CustomerPhone     string
}

type NewShipmentPage struct {
	Layout
	Form  NewShipmentForm
	Error string
}

type StatusForm struct {
	Status    string
	Details   string
	Timestamp string
}

type ShipmentPage struct {
	Layout
	Shipment *ShipmentView
	Statuses []StatusView
	Form     StatusForm
	Error    string
	Notice   string
}
