package handlers

import (
	"log"
	"net/http"

	"shipment-tracker-web/internal/api/dto"
	"shipment-tracker-web/internal/domain"
	"shipment-tracker-web/internal/platform/obs"
	"shipment-tracker-web/internal/ports"
)

const msgLoadDashboard = "Failed to load dashboard data. Please try again."

type DashboardHandler struct {
	API ports.ContentAPI
}

// Show renders the summary exactly as the content API reports it.
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	page := dto.DashboardPage{Layout: layout(r, "Dashboard")}

	d, err := h.API.FetchDashboard(r.Context(), SessionFrom(r.Context()))
	if err != nil {
		log.Printf("req_id=%s fetch dashboard failed: %v", obs.RequestID(r.Context()), err)
		page.Error = msgLoadDashboard
		render(w, r, upstreamStatus(err), "dashboard", page)
		return
	}

	page.TotalOrders = d.TotalOrders
	page.OrdersDelivered = d.OrdersDelivered
	page.OrdersInTransit = d.OrdersInTransit
	page.OrdersYetToBePicked = d.OrdersYetToBePicked
	page.Distribution = distribution(d.OrderStatusData)

	page.RecentOrders = make([]dto.RecentOrderView, 0, len(d.RecentOrders))
	for _, o := range d.RecentOrders {
		page.RecentOrders = append(page.RecentOrders, dto.RecentOrderView{
			ID:         o.ID,
			TrackingID: o.TrackingID,
			Customer:   o.Customer,
			Status:     toStatusView(o.Status),
			Date:       o.Date,
		})
	}

	render(w, r, http.StatusOK, "dashboard", page)
}

// distribution turns the status counts into rounded percentages of their sum.
func distribution(counts []domain.StatusCount) []dto.StatusShare {
	total := 0
	for _, c := range counts {
		total += c.Value
	}

	out := make([]dto.StatusShare, 0, len(counts))
	for _, c := range counts {
		share := dto.StatusShare{Name: c.Name, Value: c.Value}
		if total > 0 {
			share.Percent = (c.Value*100 + total/2) / total
		}
		out = append(out, share)
	}
	return out
}
