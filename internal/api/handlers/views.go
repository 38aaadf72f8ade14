package handlers

import (
	"errors"
	"net/http"
	"time"

	"shipment-tracker-web/internal/api/dto"
	"shipment-tracker-web/internal/domain"
	"shipment-tracker-web/internal/platform/obs"
)

const (
	dateLayout          = "2006-01-02"
	datetimeLocalLayout = "2006-01-02T15:04"
	displayLayout       = "Jan 2, 2006 15:04"
)

func layout(r *http.Request, title string) dto.Layout {
	l := dto.Layout{
		Title:     title,
		RequestID: obs.RequestID(r.Context()),
	}
	if s := SessionFrom(r.Context()); s != nil {
		l.Username = s.Username
	}
	return l
}

// upstreamStatus maps a service error to the status code of the rendered page.
func upstreamStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAuthentication):
		return http.StatusUnauthorized
	default:
		return http.StatusBadGateway
	}
}

func toStatusView(s domain.OrderStatus) dto.StatusView {
	return dto.StatusView{
		Code:  string(s),
		Label: s.Label(),
		Color: s.Color(),
		Icon:  s.Icon(),
	}
}

func statusViews() []dto.StatusView {
	all := domain.Statuses()
	out := make([]dto.StatusView, 0, len(all))
	for _, info := range all {
		out = append(out, toStatusView(info.Code))
	}
	return out
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.In(time.Local).Format(displayLayout)
}

func toShipmentView(s *domain.Shipment) *dto.ShipmentView {
	if s == nil {
		return nil
	}

	v := &dto.ShipmentView{
		ID:                s.ID,
		OrderID:           s.OrderID,
		TrackingID:        s.TrackingID,
		OrderDate:         formatDate(s.OrderDate),
		EstimatedDelivery: formatDate(s.EstimatedDelivery),
		Status:            toStatusView(s.Status),
		OriginName:        s.OriginName,
		OriginAddress:     s.OriginAddress,
		History:           make([]dto.StatusUpdateView, 0, len(s.StatusUpdates)),
	}
	if s.Customer != nil {
		v.CustomerName = s.Customer.Name
		v.CustomerAddress = s.Customer.Address
		v.CustomerPhone = s.Customer.Phone
	}

	for _, u := range s.StatusUpdates {
		uv := dto.StatusUpdateView{
			ID:        u.ID,
			Status:    toStatusView(u.Status),
			Details:   u.Details,
			Timestamp: formatTimestamp(u.Timestamp),
		}
		if u.Location != nil {
			uv.Location = u.Location.Name
		}
		v.History = append(v.History, uv)
	}

	return v
}

func toShipmentRow(s domain.Shipment) dto.ShipmentRow {
	row := dto.ShipmentRow{
		TrackingID:        s.TrackingID,
		OrderID:           s.OrderID,
		Status:            toStatusView(s.Status),
		OrderDate:         formatDate(s.OrderDate),
		EstimatedDelivery: formatDate(s.EstimatedDelivery),
	}
	if s.Customer != nil {
		row.Customer = s.Customer.Name
	}
	return row
}
