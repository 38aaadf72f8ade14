package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"shipment-tracker-web/internal/api/dto"
	"shipment-tracker-web/internal/domain"
	"shipment-tracker-web/internal/platform/obs"
	"shipment-tracker-web/internal/ports"
	"shipment-tracker-web/internal/services"
)

const (
	msgLoadShipments       = "Failed to load shipments. Please try again."
	msgShipmentFields      = "Please fill in every field with a valid value."
	msgCreateShipment      = "Failed to create shipment. Please try again."
	msgCreatePartial       = "The customer was saved but the shipment could not be created. The customer record was removed again; please retry."
	msgCreatePartialOrphan = "The customer was saved but the shipment could not be created, and the customer record could not be removed."
	msgStatusFields        = "Please fill in the status form completely."
	msgUpdateStatus        = "Failed to update status. Please try again."
	msgStatusPartial       = "The status update was saved but the shipment status could not be changed. The update was rolled back; please retry."
	msgStatusPartialOrphan = "The status update was saved but the shipment status could not be changed, and the update could not be rolled back. Please delete it from the history."
	msgDeleteStatusUpdate  = "Failed to delete status update. Please try again."
	msgDeleteShipment      = "Failed to delete shipment. Please try again."
	noticeStatusUpdated    = "Status updated."
	noticeStatusDeleted    = "Status update deleted."
)

// ShipmentHandler serves the admin list, creation form and shipment editor.
type ShipmentHandler struct {
	API    ports.ContentAPI
	Events ports.EventPublisher
}

func (h *ShipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := dto.ShipmentListPage{
		Layout:   layout(r, "Shipments"),
		Statuses: statusViews(),
		Sort:     q.Get("sort"),
	}

	query := domain.ShipmentQuery{
		Page:     positiveInt(q.Get("page")),
		PageSize: positiveInt(q.Get("pageSize")),
		Sort:     page.Sort,
	}
	if status := domain.OrderStatus(q.Get("status")); status.Valid() {
		page.Status = string(status)
		query.Filters = map[string]any{
			"order_status": map[string]any{"$eq": string(status)},
		}
	}

	res, err := h.API.FetchShipments(r.Context(), SessionFrom(r.Context()), query)
	if err != nil {
		log.Printf("req_id=%s fetch shipments failed: %v", obs.RequestID(r.Context()), err)
		page.Error = msgLoadShipments
		page.PageSize = query.PageSize
		render(w, r, upstreamStatus(err), "shipments", page)
		return
	}

	page.Rows = make([]dto.ShipmentRow, 0, len(res.Shipments))
	for _, s := range res.Shipments {
		page.Rows = append(page.Rows, toShipmentRow(s))
	}

	p := res.Pagination
	page.Page, page.PageSize, page.PageCount, page.Total = p.Page, p.PageSize, p.PageCount, p.Total
	if p.Page > 1 {
		page.PrevURL = listURL(p.Page-1, p.PageSize, page.Status, page.Sort)
	}
	if p.Page < p.PageCount {
		page.NextURL = listURL(p.Page+1, p.PageSize, page.Status, page.Sort)
	}

	render(w, r, http.StatusOK, "shipments", page)
}

func (h *ShipmentHandler) New(w http.ResponseWriter, r *http.Request) {
	today := time.Now().Format(dateLayout)
	render(w, r, http.StatusOK, "shipment_new", dto.NewShipmentPage{
		Layout: layout(r, "New shipment"),
		Form:   dto.NewShipmentForm{OrderDate: today, EstimatedDelivery: today},
	})
}

func (h *ShipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	reqID := obs.RequestID(r.Context())
	form := dto.NewShipmentForm{
		OrderID:           strings.TrimSpace(r.FormValue("orderId")),
		TrackingID:        strings.TrimSpace(r.FormValue("trackingId")),
		OrderDate:         r.FormValue("orderDate"),
		EstimatedDelivery: r.FormValue("estimatedDelivery"),
		OriginName:        strings.TrimSpace(r.FormValue("originName")),
		OriginAddress:     strings.TrimSpace(r.FormValue("originAddress")),
		CustomerName:      strings.TrimSpace(r.FormValue("customerName")),
		CustomerAddress:   strings.TrimSpace(r.FormValue("customerAddress")),
		CustomerPhone:     strings.TrimSpace(r.FormValue("customerPhone")),
	}
	page := dto.NewShipmentPage{Layout: layout(r, "New shipment"), Form: form}

	orderDate, err1 := time.Parse(dateLayout, form.OrderDate)
	eta, err2 := time.Parse(dateLayout, form.EstimatedDelivery)
	if err1 != nil || err2 != nil {
		page.Error = msgShipmentFields
		render(w, r, http.StatusBadRequest, "shipment_new", page)
		return
	}

	s, err := services.CreateShipment(r.Context(), h.API, h.Events, SessionFrom(r.Context()), domain.NewShipment{
		OrderID:           form.OrderID,
		TrackingID:        form.TrackingID,
		OrderDate:         orderDate,
		EstimatedDelivery: eta,
		OriginName:        form.OriginName,
		OriginAddress:     form.OriginAddress,
		Customer: domain.Customer{
			Name:    form.CustomerName,
			Address: form.CustomerAddress,
			Phone:   form.CustomerPhone,
		},
	})
	if err != nil {
		var pf *domain.PartialFailureError
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			page.Error = msgShipmentFields
		case errors.As(err, &pf) && pf.Compensated:
			page.Error = msgCreatePartial
		case errors.As(err, &pf):
			page.Error = msgCreatePartialOrphan
		default:
			page.Error = msgCreateShipment
		}
		log.Printf("req_id=%s create shipment failed: %v", reqID, err)
		render(w, r, upstreamStatus(err), "shipment_new", page)
		return
	}

	http.Redirect(w, r, shipmentURL(s.TrackingID), http.StatusSeeOther)
}

func (h *ShipmentHandler) Show(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("trackingId")

	s, err := h.API.FetchShipment(r.Context(), SessionFrom(r.Context()), id)
	if err != nil {
		log.Printf("req_id=%s fetch shipment tracking_id=%s failed: %v", obs.RequestID(r.Context()), id, err)
		h.renderShipment(w, r, upstreamStatus(err), id, nil, dto.StatusForm{}, msgLoadShipment, "")
		return
	}
	if s == nil {
		h.renderShipment(w, r, http.StatusNotFound, id, nil, dto.StatusForm{}, "No shipment found with tracking ID: "+id, "")
		return
	}

	h.renderShipment(w, r, http.StatusOK, id, s, defaultStatusForm(s), "", "")
}

// SubmitStatus runs the status-update flow. On success the chosen status and
// timestamp stay selected and only the details are cleared.
func (h *ShipmentHandler) SubmitStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("trackingId")
	form := dto.StatusForm{
		Status:    r.FormValue("status"),
		Details:   r.FormValue("details"),
		Timestamp: r.FormValue("timestamp"),
	}

	shipmentID, idErr := strconv.Atoi(r.FormValue("shipmentId"))
	ts, tsErr := time.ParseInLocation(datetimeLocalLayout, form.Timestamp, time.Local)
	if idErr != nil || tsErr != nil {
		h.renderShipment(w, r, http.StatusBadRequest, id, h.reload(ctx, id), form, msgStatusFields, "")
		return
	}

	s, err := services.SubmitStatusUpdate(ctx, h.API, h.Events, SessionFrom(ctx), services.SubmitStatusUpdateRequest{
		TrackingID: id,
		ShipmentID: shipmentID,
		Status:     domain.OrderStatus(form.Status),
		Details:    form.Details,
		Timestamp:  ts,
	})
	if err != nil {
		log.Printf("req_id=%s submit status update tracking_id=%s failed: %v", obs.RequestID(ctx), id, err)

		msg := msgUpdateStatus
		var pf *domain.PartialFailureError
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			msg = msgStatusFields
		case errors.As(err, &pf) && pf.Compensated:
			msg = msgStatusPartial
		case errors.As(err, &pf):
			msg = msgStatusPartialOrphan
		}
		h.renderShipment(w, r, upstreamStatus(err), id, h.reload(ctx, id), form, msg, "")
		return
	}

	form.Details = ""
	h.renderShipment(w, r, http.StatusOK, id, s, form, "", noticeStatusUpdated)
}

func (h *ShipmentHandler) DeleteStatusUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("trackingId")

	updateID, err := strconv.Atoi(r.PathValue("updateId"))
	if err != nil {
		s := h.reload(ctx, id)
		h.renderShipment(w, r, http.StatusBadRequest, id, s, defaultStatusForm(s), msgDeleteStatusUpdate, "")
		return
	}

	s, err := services.DeleteStatusUpdate(ctx, h.API, h.Events, SessionFrom(ctx), id, updateID)
	if err != nil {
		log.Printf("req_id=%s delete status update id=%d failed: %v", obs.RequestID(ctx), updateID, err)
		s := h.reload(ctx, id)
		h.renderShipment(w, r, upstreamStatus(err), id, s, defaultStatusForm(s), msgDeleteStatusUpdate, "")
		return
	}

	h.renderShipment(w, r, http.StatusOK, id, s, defaultStatusForm(s), "", noticeStatusDeleted)
}

func (h *ShipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := r.PathValue("trackingId")

	shipmentID, err := strconv.Atoi(r.FormValue("shipmentId"))
	if err == nil {
		err = services.DeleteShipment(ctx, h.API, h.Events, SessionFrom(ctx), id, shipmentID)
	} else {
		err = fmt.Errorf("parse shipment id: %v: %w", err, domain.ErrInvalidInput)
	}
	if err != nil {
		log.Printf("req_id=%s delete shipment tracking_id=%s failed: %v", obs.RequestID(ctx), id, err)
		s := h.reload(ctx, id)
		h.renderShipment(w, r, upstreamStatus(err), id, s, defaultStatusForm(s), msgDeleteShipment, "")
		return
	}

	http.Redirect(w, r, "/admin/shipments", http.StatusSeeOther)
}

// reload reads the shipment for re-rendering the editor after a failed write.
// It returns nil when the read fails too.
func (h *ShipmentHandler) reload(ctx context.Context, trackingID string) *domain.Shipment {
	s, err := h.API.FetchShipment(ctx, SessionFrom(ctx), trackingID)
	if err != nil {
		log.Printf("req_id=%s reload shipment tracking_id=%s failed: %v", obs.RequestID(ctx), trackingID, err)
		return nil
	}
	return s
}

func (h *ShipmentHandler) renderShipment(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	trackingID string,
	s *domain.Shipment,
	form dto.StatusForm,
	errMsg, notice string,
) {
	render(w, r, status, "shipment", dto.ShipmentPage{
		Layout:   layout(r, "Shipment "+trackingID),
		Shipment: toShipmentView(s),
		Statuses: statusViews(),
		Form:     form,
		Error:    errMsg,
		Notice:   notice,
	})
}

func defaultStatusForm(s *domain.Shipment) dto.StatusForm {
	form := dto.StatusForm{Timestamp: time.Now().Format(datetimeLocalLayout)}
	if s != nil {
		form.Status = string(s.Status)
	}
	return form
}

func shipmentURL(trackingID string) string {
	return "/admin/shipments/" + url.PathEscape(trackingID)
}

func listURL(page, pageSize int, status, sort string) string {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	if pageSize > 0 {
		v.Set("pageSize", strconv.Itoa(pageSize))
	}
	if status != "" {
		v.Set("status", status)
	}
	if sort != "" {
		v.Set("sort", sort)
	}
	return "/admin/shipments?" + v.Encode()
}

// positiveInt parses s, returning 0 (let the client pick its default) for
// anything that is not a positive integer.
func positiveInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0
	}
	return n
}
