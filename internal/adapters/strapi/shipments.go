package strapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"shipment-tracker-web/internal/domain"
	"shipment-tracker-web/internal/platform/obs"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	defaultSort     = "id:desc"
)

// FetchShipments returns one page of shipments with customer and status
// updates populated. Paging, filters and sort are passed through untouched.
func (c *Client) FetchShipments(
	ctx context.Context,
	sess *domain.Session,
	q domain.ShipmentQuery,
) (_ *domain.ShipmentPage, err error) {
	defer obs.Time(ctx, "strapi.FetchShipments")(&err)

	page := q.Page
	if page <= 0 {
		page = defaultPage
	}
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	sort := q.Sort
	if sort == "" {
		sort = defaultSort
	}

	query := url.Values{}
	query.Set("pagination[page]", strconv.Itoa(page))
	query.Set("pagination[pageSize]", strconv.Itoa(pageSize))
	query.Set("populate", "customer,status_updates")
	query.Set("sort", sort)
	if len(q.Filters) > 0 {
		b, err := json.Marshal(q.Filters)
		if err != nil {
			return nil, fmt.Errorf("fetch shipments: encode filters: %w", err)
		}
		query.Set("filters", string(b))
	}

	r := request{
		method: http.MethodGet,
		path:   "/api/shipments",
		query:  query,
		kind:   domain.KindFetch,
	}

	var resp collection[shipmentAttrs]
	if err := c.call(ctx, sess, r, &resp); err != nil {
		return nil, err
	}

	out := &domain.ShipmentPage{
		Shipments: make([]domain.Shipment, 0, len(resp.Data)),
		Pagination: domain.Pagination{
			Page:      resp.Meta.Pagination.Page,
			PageSize:  resp.Meta.Pagination.PageSize,
			PageCount: resp.Meta.Pagination.PageCount,
			Total:     resp.Meta.Pagination.Total,
		},
	}
	for _, e := range resp.Data {
		out.Shipments = append(out.Shipments, toShipment(e))
	}

	return out, nil
}

// trackingFilterQuery builds the structured exact-match filter with the
// status-update location and the customer populated.
func trackingFilterQuery(trackingID string) url.Values {
	q := url.Values{}
	q.Set("filters[trackingId][$eq]", trackingID)
	q.Set("populate[status_updates][populate]", "location")
	q.Set("populate", "customer")
	return q
}

// FetchShipment returns the first shipment whose tracking id matches exactly,
// or nil when there is none. Status updates come back newest first.
func (c *Client) FetchShipment(
	ctx context.Context,
	sess *domain.Session,
	trackingID string,
) (_ *domain.Shipment, err error) {
	defer obs.Time(ctx, "strapi.FetchShipment")(&err)

	r := request{
		method: http.MethodGet,
		path:   "/api/shipments",
		query:  trackingFilterQuery(trackingID),
		kind:   domain.KindFetch,
	}

	var resp collection[shipmentAttrs]
	if err := c.call(ctx, sess, r, &resp); err != nil {
		return nil, err
	}

	if len(resp.Data) == 0 {
		return nil, nil
	}

	s := toShipment(resp.Data[0])
	sortNewestFirst(s.StatusUpdates)
	return &s, nil
}

// TrackingIDAccepted issues the public tracking lookup. Only the HTTP status
// is inspected: a 2xx answer means accepted, whatever the body holds.
func (c *Client) TrackingIDAccepted(ctx context.Context, trackingID string) (err error) {
	defer obs.Time(ctx, "strapi.TrackingIDAccepted")(&err)

	query := trackingFilterQuery(trackingID)
	if c.lookupStyle == LookupPlain {
		query = url.Values{"trackingId": []string{trackingID}}
	}

	r := request{
		method: http.MethodGet,
		path:   "/api/shipments",
		query:  query,
		kind:   domain.KindFetch,
	}

	return c.call(ctx, nil, r, nil)
}

func (c *Client) FetchDashboard(ctx context.Context, sess *domain.Session) (_ *domain.DashboardSummary, err error) {
	defer obs.Time(ctx, "strapi.FetchDashboard")(&err)

	r := request{
		method: http.MethodGet,
		path:   "/api/shipments/dashboard",
		kind:   domain.KindFetch,
	}

	var resp dashboardWire
	if err := c.call(ctx, sess, r, &resp); err != nil {
		return nil, err
	}

	return toDashboard(resp), nil
}
