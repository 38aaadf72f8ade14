package strapi

import (
	"cmp"
	"encoding/json"
	"slices"
	"strings"
	"time"

	"shipment-tracker-web/internal/domain"
)

// Strapi v4 wraps every record as {id, attributes} and every relation as {data: ...}.
type entity[T any] struct {
	ID         int `json:"id"`
	Attributes T   `json:"attributes"`
}

type single[T any] struct {
	Data *entity[T] `json:"data"`
}

type many[T any] struct {
	Data []entity[T] `json:"data"`
}

type collection[T any] struct {
	Data []entity[T] `json:"data"`
	Meta struct {
		Pagination paginationWire `json:"pagination"`
	} `json:"meta"`
}

// Write bodies are always sent as {data: {...}}.
type envelope[T any] struct {
	Data T `json:"data"`
}

type paginationWire struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

type shipmentAttrs struct {
	OrderID           flexString              `json:"orderId"`
	TrackingID        string                  `json:"trackingId"`
	OrderDate         string                  `json:"orderDate"`
	EstimatedDelivery string                  `json:"estimatedDelivery"`
	OrderStatus       string                  `json:"order_status"`
	OriginName        string                  `json:"originName"`
	OriginAddress     string                  `json:"originAddress"`
	Customer          single[customerAttrs]   `json:"customer"`
	StatusUpdates     many[statusUpdateAttrs] `json:"status_updates"`
	CreatedAt         string                  `json:"createdAt"`
	UpdatedAt         string                  `json:"updatedAt"`
}

type customerAttrs struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type statusUpdateAttrs struct {
	OrderStatus string                `json:"order_status"`
	Details     string                `json:"details"`
	Timestamp   string                `json:"timestamp"`
	Location    single[locationAttrs] `json:"location"`
	CreatedAt   string                `json:"createdAt"`
}

type locationAttrs struct {
	Name string `json:"name"`
}

type newShipmentBody struct {
	OrderID           string `json:"orderId"`
	TrackingID        string `json:"trackingId"`
	OrderDate         string `json:"orderDate"`
	EstimatedDelivery string `json:"estimatedDelivery"`
	OrderStatus       string `json:"order_status"`
	OriginName        string `json:"originName"`
	OriginAddress     string `json:"originAddress"`
	Customer          int    `json:"customer"`
}

type newStatusUpdateBody struct {
	OrderStatus string `json:"order_status"`
	Details     string `json:"details"`
	Shipment    int    `json:"shipment"`
	Timestamp   string `json:"timestamp"`
}

type statusBody struct {
	OrderStatus string `json:"order_status"`
}

type loginBody struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type loginResponse struct {
	JWT  string `json:"jwt"`
	User struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	} `json:"user"`
}

type dashboardWire struct {
	TotalOrders         int `json:"totalOrders"`
	OrdersDelivered     int `json:"ordersDelivered"`
	OrdersInTransit     int `json:"ordersInTransit"`
	OrdersYetToBePicked int `json:"ordersYetToBePicked"`
	RecentOrders        []struct {
		ID         flexString `json:"id"`
		TrackingID string     `json:"trackingId"`
		Customer   string     `json:"customer"`
		Status     string     `json:"status"`
		Date       string     `json:"date"`
	} `json:"recentOrders"`
	OrderStatusData []struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
	} `json:"orderStatusData"`
}

// flexString decodes either a JSON string or a JSON number. Order ids are
// plain text in some content types and integers in others.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

const dateLayout = "2006-01-02"

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	dateLayout,
}

// parseTime accepts the date and datetime shapes Strapi emits. Empty or
// unrecognised values yield nil.
func parseTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func parseTimeValue(s string) time.Time {
	if t := parseTime(s); t != nil {
		return *t
	}
	return time.Time{}
}

func toShipment(e entity[shipmentAttrs]) domain.Shipment {
	a := e.Attributes
	s := domain.Shipment{
		ID:                e.ID,
		OrderID:           string(a.OrderID),
		TrackingID:        a.TrackingID,
		OrderDate:         parseTime(a.OrderDate),
		EstimatedDelivery: parseTime(a.EstimatedDelivery),
		Status:            domain.OrderStatus(a.OrderStatus),
		OriginName:        a.OriginName,
		OriginAddress:     a.OriginAddress,
		CreatedAt:         parseTimeValue(a.CreatedAt),
		UpdatedAt:         parseTimeValue(a.UpdatedAt),
	}

	if c := a.Customer.Data; c != nil {
		cust := toCustomer(*c)
		s.Customer = &cust
	}

	s.StatusUpdates = make([]domain.StatusUpdate, 0, len(a.StatusUpdates.Data))
	for _, u := range a.StatusUpdates.Data {
		s.StatusUpdates = append(s.StatusUpdates, toStatusUpdate(u))
	}

	return s
}

func toCustomer(e entity[customerAttrs]) domain.Customer {
	return domain.Customer{
		ID:      e.ID,
		Name:    e.Attributes.Name,
		Address: e.Attributes.Address,
		Phone:   e.Attributes.Phone,
	}
}

func toStatusUpdate(e entity[statusUpdateAttrs]) domain.StatusUpdate {
	a := e.Attributes
	u := domain.StatusUpdate{
		ID:        e.ID,
		Status:    domain.OrderStatus(a.OrderStatus),
		Details:   a.Details,
		Timestamp: parseTime(a.Timestamp),
		CreatedAt: parseTimeValue(a.CreatedAt),
	}
	if l := a.Location.Data; l != nil {
		u.Location = &domain.Location{ID: l.ID, Name: l.Attributes.Name}
	}
	return u
}

// sortNewestFirst orders status updates by creation time, descending.
// Updates created at the same instant keep the API's order.
func sortNewestFirst(updates []domain.StatusUpdate) {
	slices.SortStableFunc(updates, func(a, b domain.StatusUpdate) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})
}

func toDashboard(w dashboardWire) *domain.DashboardSummary {
	d := &domain.DashboardSummary{
		TotalOrders:         w.TotalOrders,
		OrdersDelivered:     w.OrdersDelivered,
		OrdersInTransit:     w.OrdersInTransit,
		OrdersYetToBePicked: w.OrdersYetToBePicked,
		RecentOrders:        make([]domain.RecentOrder, 0, len(w.RecentOrders)),
		OrderStatusData:     make([]domain.StatusCount, 0, len(w.OrderStatusData)),
	}
	for _, o := range w.RecentOrders {
		d.RecentOrders = append(d.RecentOrders, domain.RecentOrder{
			ID:         string(o.ID),
			TrackingID: o.TrackingID,
			Customer:   o.Customer,
			Status:     domain.OrderStatus(o.Status),
			Date:       o.Date,
		})
	}
	for _, c := range w.OrderStatusData {
		d.OrderStatusData = append(d.OrderStatusData, domain.StatusCount{Name: c.Name, Value: c.Value})
	}
	return d
}
