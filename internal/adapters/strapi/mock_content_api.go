package strapi

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"shipment-tracker-web/internal/domain"
)

// MockContentAPI is an in-memory ContentAPI. It records the name of every call
// in order and can be told to fail specific methods.
type MockContentAPI struct {
	mu        sync.Mutex
	calls     []string
	failures  map[string]error
	users     map[string]string
	shipments map[int]*domain.Shipment
	customers map[int]domain.Customer
	dashboard *domain.DashboardSummary
	nextID    int
	clock     time.Time
}

func NewMockContentAPI() *MockContentAPI {
	return &MockContentAPI{
		failures:  make(map[string]error),
		users:     make(map[string]string),
		shipments: make(map[int]*domain.Shipment),
		customers: make(map[int]domain.Customer),
		nextID:    1,
		clock:     time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC),
	}
}

// StatusError builds the error the real client returns for a non-2xx answer.
func StatusError(kind domain.ErrorKind, op string, status int) *domain.APIError {
	return &domain.APIError{Kind: kind, Op: op, Status: status, StatusText: http.StatusText(status)}
}

func (m *MockContentAPI) AddUser(identifier, password string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[identifier] = password
}

func (m *MockContentAPI) SetDashboard(d domain.DashboardSummary) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dashboard = &d
}

// AddShipment stores a copy of s, assigning ids to it and its status updates
// when they are zero. It returns the stored shipment's id.
func (m *MockContentAPI) AddShipment(s domain.Shipment) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s.ID == 0 {
		s.ID = m.id()
	}
	if s.Customer != nil {
		c := *s.Customer
		if c.ID == 0 {
			c.ID = m.id()
		}
		m.customers[c.ID] = c
		s.Customer = &c
	}
	s.StatusUpdates = slices.Clone(s.StatusUpdates)
	for i := range s.StatusUpdates {
		if s.StatusUpdates[i].ID == 0 {
			s.StatusUpdates[i].ID = m.id()
		}
		if s.StatusUpdates[i].CreatedAt.IsZero() {
			s.StatusUpdates[i].CreatedAt = m.tick()
		}
	}
	m.shipments[s.ID] = &s
	return s.ID
}

// FailOn makes every later call to method return err. A nil err clears it.
func (m *MockContentAPI) FailOn(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, method)
		return
	}
	m.failures[method] = err
}

// Calls returns the method names invoked so far, in order.
func (m *MockContentAPI) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.calls)
}

func (m *MockContentAPI) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

func (m *MockContentAPI) CustomerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.customers)
}

func (m *MockContentAPI) ShipmentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.shipments)
}

// StatusUpdateCount counts history records across all shipments.
func (m *MockContentAPI) StatusUpdateCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.shipments {
		n += len(s.StatusUpdates)
	}
	return n
}

// record must be called with m.mu held.
func (m *MockContentAPI) record(method string) error {
	m.calls = append(m.calls, method)
	return m.failures[method]
}

func (m *MockContentAPI) id() int {
	id := m.nextID
	m.nextID++
	return id
}

// tick advances the fake clock so creation times are strictly increasing.
func (m *MockContentAPI) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *MockContentAPI) Login(ctx context.Context, identifier, password string) (*domain.AuthResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("Login"); err != nil {
		return nil, err
	}

	want, ok := m.users[identifier]
	if !ok || want != password {
		return nil, StatusError(domain.KindAuthentication, "POST /api/auth/local", http.StatusBadRequest)
	}
	return &domain.AuthResult{Token: "token-" + identifier, Username: identifier}, nil
}

func (m *MockContentAPI) FetchShipments(ctx context.Context, sess *domain.Session, q domain.ShipmentQuery) (*domain.ShipmentPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("FetchShipments"); err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(m.shipments))
	for id := range m.shipments {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	slices.Reverse(ids)

	all := make([]domain.Shipment, 0, len(ids))
	for _, id := range ids {
		s := m.shipments[id]
		if status, ok := statusFilter(q.Filters); ok && string(s.Status) != status {
			continue
		}
		all = append(all, cloneShipment(s))
	}

	page, size := q.Page, q.PageSize
	if page <= 0 {
		page = defaultPage
	}
	if size <= 0 {
		size = defaultPageSize
	}

	start := min((page-1)*size, len(all))
	end := min(start+size, len(all))

	return &domain.ShipmentPage{
		Shipments: all[start:end],
		Pagination: domain.Pagination{
			Page:      page,
			PageSize:  size,
			PageCount: (len(all) + size - 1) / size,
			Total:     len(all),
		},
	}, nil
}

// statusFilter understands {"order_status": {"$eq": "..."}} only.
func statusFilter(filters map[string]any) (string, bool) {
	f, ok := filters["order_status"].(map[string]any)
	if !ok {
		return "", false
	}
	v, ok := f["$eq"].(string)
	return v, ok
}

func (m *MockContentAPI) FetchShipment(ctx context.Context, sess *domain.Session, trackingID string) (*domain.Shipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("FetchShipment"); err != nil {
		return nil, err
	}

	s := m.byTrackingID(trackingID)
	if s == nil {
		return nil, nil
	}
	out := cloneShipment(s)
	sortNewestFirst(out.StatusUpdates)
	return &out, nil
}

func (m *MockContentAPI) TrackingIDAccepted(ctx context.Context, trackingID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.record("TrackingIDAccepted")
}

func (m *MockContentAPI) FetchDashboard(ctx context.Context, sess *domain.Session) (*domain.DashboardSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("FetchDashboard"); err != nil {
		return nil, err
	}
	if m.dashboard == nil {
		return &domain.DashboardSummary{}, nil
	}
	d := *m.dashboard
	return &d, nil
}

func (m *MockContentAPI) CreateCustomer(ctx context.Context, sess *domain.Session, c domain.Customer) (*domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("CreateCustomer"); err != nil {
		return nil, err
	}

	c.ID = m.id()
	m.customers[c.ID] = c
	return &c, nil
}

func (m *MockContentAPI) CreateShipment(ctx context.Context, sess *domain.Session, customerID int, ns domain.NewShipment) (*domain.Shipment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("CreateShipment"); err != nil {
		return nil, err
	}

	c, ok := m.customers[customerID]
	if !ok {
		return nil, StatusError(domain.KindCreate, "POST /api/shipment", http.StatusBadRequest)
	}
	if m.byTrackingID(ns.TrackingID) != nil {
		return nil, StatusError(domain.KindCreate, "POST /api/shipment", http.StatusBadRequest)
	}

	orderDate, eta := ns.OrderDate, ns.EstimatedDelivery
	now := m.tick()
	s := &domain.Shipment{
		ID:                m.id(),
		OrderID:           ns.OrderID,
		TrackingID:        ns.TrackingID,
		OrderDate:         &orderDate,
		EstimatedDelivery: &eta,
		Status:            domain.StatusYetToBePicked,
		OriginName:        ns.OriginName,
		OriginAddress:     ns.OriginAddress,
		Customer:          &c,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	m.shipments[s.ID] = s

	out := cloneShipment(s)
	return &out, nil
}

func (m *MockContentAPI) CreateStatusUpdate(ctx context.Context, sess *domain.Session, u domain.NewStatusUpdate) (*domain.StatusUpdate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("CreateStatusUpdate"); err != nil {
		return nil, err
	}

	s, ok := m.shipments[u.ShipmentID]
	if !ok {
		return nil, StatusError(domain.KindCreate, "POST /api/status-updates", http.StatusBadRequest)
	}

	ts := u.Timestamp
	rec := domain.StatusUpdate{
		ID:        m.id(),
		Status:    u.Status,
		Details:   u.Details,
		Timestamp: &ts,
		CreatedAt: m.tick(),
	}
	s.StatusUpdates = append(s.StatusUpdates, rec)
	return &rec, nil
}

func (m *MockContentAPI) UpdateShipmentStatus(ctx context.Context, sess *domain.Session, shipmentID int, status domain.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("UpdateShipmentStatus"); err != nil {
		return err
	}

	s, ok := m.shipments[shipmentID]
	if !ok {
		return StatusError(domain.KindUpdate, fmt.Sprintf("PUT /api/shipment/%d", shipmentID), http.StatusNotFound)
	}
	s.Status = status
	s.UpdatedAt = m.tick()
	return nil
}

func (m *MockContentAPI) DeleteStatusUpdate(ctx context.Context, sess *domain.Session, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("DeleteStatusUpdate"); err != nil {
		return err
	}

	for _, s := range m.shipments {
		for i, u := range s.StatusUpdates {
			if u.ID == id {
				s.StatusUpdates = slices.Delete(s.StatusUpdates, i, i+1)
				return nil
			}
		}
	}
	return StatusError(domain.KindDelete, fmt.Sprintf("DELETE /api/status-updates/%d", id), http.StatusNotFound)
}

func (m *MockContentAPI) DeleteShipment(ctx context.Context, sess *domain.Session, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("DeleteShipment"); err != nil {
		return err
	}

	if _, ok := m.shipments[id]; !ok {
		return StatusError(domain.KindDelete, fmt.Sprintf("DELETE /api/shipment/%d", id), http.StatusNotFound)
	}
	delete(m.shipments, id)
	return nil
}

func (m *MockContentAPI) DeleteCustomer(ctx context.Context, sess *domain.Session, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("DeleteCustomer"); err != nil {
		return err
	}

	if _, ok := m.customers[id]; !ok {
		return StatusError(domain.KindDelete, fmt.Sprintf("DELETE /api/customers/%d", id), http.StatusNotFound)
	}
	delete(m.customers, id)
	return nil
}

func (m *MockContentAPI) byTrackingID(trackingID string) *domain.Shipment {
	for _, s := range m.shipments {
		if s.TrackingID == trackingID {
			return s
		}
	}
	return nil
}

func cloneShipment(s *domain.Shipment) domain.Shipment {
	out := *s
	if s.Customer != nil {
		c := *s.Customer
		out.Customer = &c
	}
	out.StatusUpdates = slices.Clone(s.StatusUpdates)
	if out.StatusUpdates == nil {
		out.StatusUpdates = []domain.StatusUpdate{}
	}
	return out
}
