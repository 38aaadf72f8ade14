package strapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"shipment-tracker-web/internal/domain"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Auth   string
	Body   map[string]any
}

// fakeStrapi answers each "METHOD /path" with a canned status and body and
// records every request it sees.
type fakeStrapi struct {
	mu        sync.Mutex
	requests  []recordedRequest
	responses map[string]fakeResponse
}

type fakeResponse struct {
	status int
	body   string
}

func newFakeStrapi(t *testing.T, responses map[string]fakeResponse) (*fakeStrapi, *Client) {
	t.Helper()

	f := &fakeStrapi{responses: responses}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Auth:   r.Header.Get("Authorization"),
		}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &rec.Body)
		}

		f.mu.Lock()
		f.requests = append(f.requests, rec)
		f.mu.Unlock()

		resp, ok := f.responses[r.Method+" "+r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.status)
		_, _ = io.WriteString(w, resp.body)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL+"/", 5*time.Second, LookupFilters)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return f, client
}

func (f *fakeStrapi) all() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedRequest(nil), f.requests...)
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient("  ", time.Second, ""); err == nil {
		t.Fatalf("expected error for empty base url")
	}
	if _, err := NewClient("http://cms", time.Second, "graphql"); err == nil {
		t.Fatalf("expected error for unknown lookup style")
	}
	c, err := NewClient("http://cms/", time.Second, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.baseURL != "http://cms" || c.lookupStyle != LookupFilters {
		t.Fatalf("unexpected client: %+v", c)
	}
}

func TestLogin(t *testing.T) {
	f, c := newFakeStrapi(t, map[string]fakeResponse{
		"POST /api/auth/local": {200, `{"jwt":"tok-123","user":{"id":1,"username":"admin","email":"a@b.c"}}`},
	})

	res, err := c.Login(context.Background(), "admin", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Token != "tok-123" || res.Username != "admin" {
		t.Fatalf("unexpected result: %+v", res)
	}

	reqs := f.all()
	if len(reqs) != 1 {
		t.Fatalf("expected 1 request, got %d", len(reqs))
	}
	if reqs[0].Body["identifier"] != "admin" || reqs[0].Body["password"] != "secret" {
		t.Fatalf("unexpected body: %v", reqs[0].Body)
	}
	if reqs[0].Auth != "" {
		t.Fatalf("login must not send an Authorization header, got %q", reqs[0].Auth)
	}
}

func TestLoginRejected(t *testing.T) {
	_, c := newFakeStrapi(t, map[string]fakeResponse{
		"POST /api/auth/local": {400, `{"error":{"message":"Invalid identifier or password"}}`},
	})

	_, err := c.Login(context.Background(), "admin", "wrong")
	if !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("expected authentication error, got %v", err)
	}

	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) || apiErr.Status != 400 {
		t.Fatalf("expected status 400, got %+v", apiErr)
	}
}

func TestLoginWithoutToken(t *testing.T) {
	_, c := newFakeStrapi(t, map[string]fakeResponse{
		"POST /api/auth/local": {200, `{"user":{"username":"admin"}}`},
	})

	if _, err := c.Login(context.Background(), "admin", "secret"); !errors.Is(err, domain.ErrAuthentication) {
		t.Fatalf("expected authentication error for empty token, got %v", err)
	}
}

const shipmentBody = `{
  "data": [{
    "id": 7,
    "attributes": {
      "orderId": "ORD-1",
      "trackingId": "TRK-1",
      "orderDate": "2026-01-02",
      "estimatedDelivery": "2026-01-09",
      "order_status": "on_the_way",
      "originName": "Main hub",
      "originAddress": "1 Depot Rd",
      "createdAt": "2026-01-02T09:00:00.000Z",
      "customer": {"data": {"id": 3, "attributes": {"name": "Jane", "address": "2 Elm St", "phone": "555"}}},
      "status_updates": {"data": [
        {"id": 10, "attributes": {"order_status": "picked_up", "details": "a", "createdAt": "2026-01-02T10:00:00.000Z"}},
        {"id": 12, "attributes": {"order_status": "on_the_way", "details": "c", "createdAt": "2026-01-04T10:00:00.000Z",
          "location": {"data": {"id": 5, "attributes": {"name": "Depot"}}}}},
        {"id": 11, "attributes": {"order_status": "intransit", "details": "b", "timestamp": "2026-01-03T08:30:00.000Z", "createdAt": "2026-01-03T10:00:00.000Z"}}
      ]}
    }
  }],
  "meta": {"pagination": {"page": 1, "pageSize": 25, "pageCount": 1, "total": 1}}
}`

func TestFetchShipmentSortsNewestFirst(t *testing.T) {
	f, c := newFakeStrapi(t, map[string]fakeResponse{
		"GET /api/shipments": {200, shipmentBody},
	})

	sess := &domain.Session{Token: "tok"}
	s, err := c.FetchShipment(context.Background(), sess, "TRK-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s == nil {
		t.Fatalf("expected a shipment")
	}

	if s.ID != 7 || s.TrackingID != "TRK-1" || s.Status != domain.StatusOnTheWay {
		t.Fatalf("unexpected shipment: %+v", s)
	}
	if s.Customer == nil || s.Customer.Name != "Jane" || s.Customer.ID != 3 {
		t.Fatalf("unexpected customer: %+v", s.Customer)
	}
	if s.EstimatedDelivery == nil || s.EstimatedDelivery.Day() != 9 {
		t.Fatalf("unexpected estimated delivery: %v", s.EstimatedDelivery)
	}

	if len(s.StatusUpdates) != 3 {
		t.Fatalf("expected 3 status updates, got %d", len(s.StatusUpdates))
	}
	for i := 1; i < len(s.StatusUpdates); i++ {
		a, b := s.StatusUpdates[i-1], s.StatusUpdates[i]
		if a.CreatedAt.Before(b.CreatedAt) {
			t.Fatalf("updates not newest first at %d: %v before %v", i, a.CreatedAt, b.CreatedAt)
		}
	}
	if s.StatusUpdates[0].ID != 12 || s.StatusUpdates[0].Location == nil || s.StatusUpdates[0].Location.Name != "Depot" {
		t.Fatalf("unexpected latest update: %+v", s.StatusUpdates[0])
	}

	req := f.all()[0]
	if got := req.Query["filters[trackingId][$eq]"]; len(got) != 1 || got[0] != "TRK-1" {
		t.Fatalf("unexpected tracking filter: %v", req.Query)
	}
	if got := req.Query["populate[status_updates][populate]"]; len(got) != 1 || got[0] != "location" {
		t.Fatalf("unexpected populate: %v", req.Query)
	}
	if req.Auth != "Bearer tok" {
		t.Fatalf("Authorization = %q, want %q", req.Auth, "Bearer tok")
	}
}

func TestFetchShipmentNoMatch(t *testing.T) {
	_, c := newFakeStrapi(t, map[string]fakeResponse{
		"GET /api/shipments": {200, `{"data": [], "meta": {"pagination": {"total": 0}}}`},
	})

	s, err := c.FetchShipment(context.Background(), nil, "TRK-404")
	if err != nil {
		t.Fatalf("no match must not be an error, got %v", err)
	}
	if s != nil {
		t.Fatalf("expected nil shipment, got %+v", s)
	}
}

func TestFetchShipmentFailure(t *testing.T) {
	_, c := newFakeStrapi(t, map[string]fakeResponse{
		"GET /api/shipments": {503, `unavailable`},
	})

	_, err := c.FetchShipment(context.Background(), nil, "TRK-1")
	if !errors.Is(err, domain.ErrFetch) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusText != "Service Unavailable" {
		t.Fatalf("unexpected api error: %+v", apiErr)
	}
}

func TestFetchShipmentsQuery(t *testing.T) {
	f, c := newFakeStrapi(t, map[string]fakeResponse{
		"GET /api/shipments": {200, shipmentBody},
	})

	page, err := c.FetchShipments(context.Background(), nil, domain.ShipmentQuery{
		Page:     2,
		PageSize: 25,
		Filters:  map[string]any{"order_status": map[string]any{"$eq": "delivered"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Shipments) != 1 || page.Pagination.PageSize != 25 || page.Pagination.Total != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}

	q := f.all()[0].Query
	checks := map[string]string{
		"pagination[page]":     "2",
		"pagination[pageSize]": "25",
		"populate":             "customer,status_updates",
		"sort":                 "id:desc",
		"filters":              `{"order_status":{"$eq":"delivered"}}`,
	}
	for k, want := range checks {
		if got := q[k]; len(got) != 1 || got[0] != want {
			t.Errorf("query %s = %v, want %q", k, got, want)
		}
	}
}

func TestTrackingIDAcceptedStyles(t *testing.T) {
	f, c := newFakeStrapi(t, map[string]fakeResponse{
		"GET /api/shipments": {200, `{"data": []}`},
	})

	if err := c.TrackingIDAccepted(context.Background(), "TRK-9"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.lookupStyle = LookupPlain
	if err := c.TrackingIDAccepted(context.Background(), "TRK-9"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reqs := f.all()
	if got := reqs[0].Query["filters[trackingId][$eq]"]; len(got) != 1 || got[0] != "TRK-9" {
		t.Fatalf("filters style query = %v", reqs[0].Query)
	}
	if got := reqs[1].Query["trackingId"]; len(got) != 1 || got[0] != "TRK-9" {
		t.Fatalf("plain style query = %v", reqs[1].Query)
	}
}

func TestTrackingIDRejected(t *testing.T) {
	_, c := newFakeStrapi(t, map[string]fakeResponse{
		"GET /api/shipments": {400, `{"error":{}}`},
	})

	if err := c.TrackingIDAccepted(context.Background(), "TRK-000"); !errors.Is(err, domain.ErrFetch) {
		t.Fatalf("expected fetch error, got %v", err)
	}
}

func TestWriteBodies(t *testing.T) {
	f, c := newFakeStrapi(t, map[string]fakeResponse{
		"POST /api/customers":      {200, `{"data":{"id":40,"attributes":{"name":"Jane","address":"2 Elm St","phone":"555"}}}`},
		"POST /api/shipment":       {200, `{"data":{"id":41,"attributes":{"orderId":123,"trackingId":"TRK-2","order_status":"yet_to_be_picked"}}}`},
		"POST /api/status-updates": {200, `{"data":{"id":42,"attributes":{"order_status":"delivered","details":"left at door"}}}`},
		"PUT /api/shipment/41":     {200, `{"data":{"id":41}}`},
	})
	ctx := context.Background()
	sess := &domain.Session{Token: "tok"}

	cust, err := c.CreateCustomer(ctx, sess, domain.Customer{Name: "Jane", Address: "2 Elm St", Phone: "555"})
	if err != nil || cust.ID != 40 {
		t.Fatalf("create customer: %+v, %v", cust, err)
	}

	ship, err := c.CreateShipment(ctx, sess, cust.ID, domain.NewShipment{
		OrderID:           "123",
		TrackingID:        "TRK-2",
		OrderDate:         time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		EstimatedDelivery: time.Date(2026, 2, 5, 0, 0, 0, 0, time.UTC),
	})
	if err != nil || ship.ID != 41 || ship.OrderID != "123" {
		t.Fatalf("create shipment: %+v, %v", ship, err)
	}

	ts := time.Date(2026, 2, 3, 14, 30, 0, 0, time.UTC)
	upd, err := c.CreateStatusUpdate(ctx, sess, domain.NewStatusUpdate{
		ShipmentID: 41,
		Status:     domain.StatusDelivered,
		Details:    "left at door",
		Timestamp:  ts,
	})
	if err != nil || upd.ID != 42 {
		t.Fatalf("create status update: %+v, %v", upd, err)
	}

	if err := c.UpdateShipmentStatus(ctx, sess, 41, domain.StatusDelivered); err != nil {
		t.Fatalf("update shipment status: %v", err)
	}

	reqs := f.all()
	if len(reqs) != 4 {
		t.Fatalf("expected 4 requests, got %d", len(reqs))
	}

	shipData := reqs[1].Body["data"].(map[string]any)
	if shipData["order_status"] != "yet_to_be_picked" {
		t.Errorf("initial status = %v, want yet_to_be_picked", shipData["order_status"])
	}
	if shipData["customer"] != float64(40) {
		t.Errorf("customer ref = %v, want 40", shipData["customer"])
	}
	if shipData["orderDate"] != "2026-02-01" {
		t.Errorf("orderDate = %v", shipData["orderDate"])
	}

	updData := reqs[2].Body["data"].(map[string]any)
	if updData["shipment"] != float64(41) || updData["order_status"] != "delivered" {
		t.Errorf("unexpected status update body: %v", updData)
	}
	if updData["timestamp"] != "2026-02-03T14:30:00Z" {
		t.Errorf("timestamp = %v", updData["timestamp"])
	}

	putData := reqs[3].Body["data"].(map[string]any)
	if len(putData) != 1 || putData["order_status"] != "delivered" {
		t.Errorf("unexpected PUT body: %v", putData)
	}

	for _, r := range reqs {
		if r.Auth != "Bearer tok" {
			t.Errorf("%s %s: Authorization = %q", r.Method, r.Path, r.Auth)
		}
	}
}

func TestDeleteFailureKinds(t *testing.T) {
	f, c := newFakeStrapi(t, map[string]fakeResponse{
		"DELETE /api/status-updates/5": {200, `{"data":{"id":5}}`},
		"DELETE /api/shipment/6":       {403, `{"error":{"status":403}}`},
	})
	ctx := context.Background()

	if err := c.DeleteStatusUpdate(ctx, nil, 5); err != nil {
		t.Fatalf("delete status update: %v", err)
	}

	err := c.DeleteShipment(ctx, nil, 6)
	if !errors.Is(err, domain.ErrDelete) {
		t.Fatalf("expected delete error, got %v", err)
	}
	if !strings.Contains(err.Error(), "403") {
		t.Fatalf("error should mention status: %v", err)
	}

	if err := c.DeleteCustomer(ctx, nil, 99); !errors.Is(err, domain.ErrDelete) {
		t.Fatalf("expected delete error for unknown customer, got %v", err)
	}

	if got := len(f.all()); got != 3 {
		t.Fatalf("expected 3 requests, got %d", got)
	}
}

func TestFetchDashboard(t *testing.T) {
	_, c := newFakeStrapi(t, map[string]fakeResponse{
		"GET /api/shipments/dashboard": {200, `{
			"totalOrders": 3, "ordersDelivered": 1, "ordersInTransit": 1, "ordersYetToBePicked": 1,
			"recentOrders": [{"id": 9, "trackingId": "TRK-9", "customer": "Jane", "status": "delivered", "date": "2026-01-01"}],
			"orderStatusData": [{"name": "Delivered", "value": 1}, {"name": "In Transit", "value": 1}]
		}`},
	})

	d, err := c.FetchDashboard(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.TotalOrders != 3 || d.OrdersDelivered != 1 || d.OrdersInTransit != 1 || d.OrdersYetToBePicked != 1 {
		t.Fatalf("unexpected counts: %+v", d)
	}
	if len(d.RecentOrders) != 1 || d.RecentOrders[0].ID != "9" || d.RecentOrders[0].Status != domain.StatusDelivered {
		t.Fatalf("unexpected recent orders: %+v", d.RecentOrders)
	}
	if len(d.OrderStatusData) != 2 {
		t.Fatalf("unexpected status data: %+v", d.OrderStatusData)
	}
}

func TestTransportFailure(t *testing.T) {
	c, err := NewClient("http://127.0.0.1:1", time.Second, LookupFilters)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = c.FetchDashboard(context.Background(), nil)
	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != 0 || apiErr.Kind != domain.KindFetch {
		t.Fatalf("unexpected transport error: %+v", apiErr)
	}
}
