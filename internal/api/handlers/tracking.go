package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"

	"shipment-tracker-web/internal/api/dto"
	"shipment-tracker-web/internal/domain"
	"shipment-tracker-web/internal/platform/obs"
	"shipment-tracker-web/internal/ports"
	"shipment-tracker-web/internal/services"
)

const (
	msgEnterTrackingID   = "Please enter a tracking ID"
	msgInvalidTrackingID = "Invalid tracking ID. Please try again."
	msgLoadShipment      = "Failed to load shipment. Please try again."
)

// TrackingHandler serves the public lookup form and tracking page.
type TrackingHandler struct {
	API ports.ContentAPI
}

func (h *TrackingHandler) Form(w http.ResponseWriter, r *http.Request) {
	render(w, r, http.StatusOK, "track", dto.TrackPage{Layout: layout(r, "Track")})
}

// Lookup validates the id with the content API and redirects to the tracking
// page. A rejected id re-renders the form without navigating.
func (h *TrackingHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	raw := r.FormValue("trackingId")
	page := dto.TrackPage{Layout: layout(r, "Track"), TrackingID: raw}

	id, err := services.LookupTracking(r.Context(), h.API, raw)
	if errors.Is(err, domain.ErrInvalidInput) {
		page.Error = msgEnterTrackingID
		render(w, r, http.StatusBadRequest, "track", page)
		return
	}
	if err != nil {
		log.Printf("req_id=%s tracking lookup failed: %v", obs.RequestID(r.Context()), err)
		page.Error = msgInvalidTrackingID
		render(w, r, http.StatusUnprocessableEntity, "track", page)
		return
	}

	http.Redirect(w, r, "/tracking/"+url.PathEscape(id), http.StatusSeeOther)
}

func (h *TrackingHandler) Show(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("trackingId")
	page := dto.TrackingPage{Layout: layout(r, "Tracking "+id), TrackingID: id}

	s, err := h.API.FetchShipment(r.Context(), nil, id)
	if err != nil {
		log.Printf("req_id=%s fetch shipment tracking_id=%s failed: %v", obs.RequestID(r.Context()), id, err)
		page.Error = msgLoadShipment
		render(w, r, http.StatusBadGateway, "tracking", page)
		return
	}
	if s == nil {
		page.Error = "No shipment found with tracking ID: " + id
		render(w, r, http.StatusNotFound, "tracking", page)
		return
	}

	page.Shipment = toShipmentView(s)
	render(w, r, http.StatusOK, "tracking", page)
}
