package strapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"shipment-tracker-web/internal/domain"
	"shipment-tracker-web/internal/platform/obs"
)

func (c *Client) CreateCustomer(
	ctx context.Context,
	sess *domain.Session,
	cust domain.Customer,
) (_ *domain.Customer, err error) {
	defer obs.Time(ctx, "strapi.CreateCustomer")(&err)

	r := request{
		method: http.MethodPost,
		path:   "/api/customers",
		body: envelope[customerAttrs]{Data: customerAttrs{
			Name:    cust.Name,
			Address: cust.Address,
			Phone:   cust.Phone,
		}},
		kind: domain.KindCreate,
	}

	var resp single[customerAttrs]
	if err := c.call(ctx, sess, r, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, &domain.APIError{Kind: domain.KindCreate, Op: r.op(), Err: fmt.Errorf("response carried no customer")}
	}

	out := toCustomer(*resp.Data)
	return &out, nil
}

// CreateShipment creates the shipment linked to an existing customer. The
// initial status is always yet_to_be_picked.
func (c *Client) CreateShipment(
	ctx context.Context,
	sess *domain.Session,
	customerID int,
	s domain.NewShipment,
) (_ *domain.Shipment, err error) {
	defer obs.Time(ctx, "strapi.CreateShipment")(&err)

	r := request{
		method: http.MethodPost,
		path:   "/api/shipment",
		body: envelope[newShipmentBody]{Data: newShipmentBody{
			OrderID:           s.OrderID,
			TrackingID:        s.TrackingID,
			OrderDate:         formatDate(s.OrderDate),
			EstimatedDelivery: formatDate(s.EstimatedDelivery),
			OrderStatus:       string(domain.StatusYetToBePicked),
			OriginName:        s.OriginName,
			OriginAddress:     s.OriginAddress,
			Customer:          customerID,
		}},
		kind: domain.KindCreate,
	}

	var resp single[shipmentAttrs]
	if err := c.call(ctx, sess, r, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, &domain.APIError{Kind: domain.KindCreate, Op: r.op(), Err: fmt.Errorf("response carried no shipment")}
	}

	out := toShipment(*resp.Data)
	return &out, nil
}

func (c *Client) CreateStatusUpdate(
	ctx context.Context,
	sess *domain.Session,
	u domain.NewStatusUpdate,
) (_ *domain.StatusUpdate, err error) {
	defer obs.Time(ctx, "strapi.CreateStatusUpdate")(&err)

	r := request{
		method: http.MethodPost,
		path:   "/api/status-updates",
		body: envelope[newStatusUpdateBody]{Data: newStatusUpdateBody{
			OrderStatus: string(u.Status),
			Details:     u.Details,
			Shipment:    u.ShipmentID,
			Timestamp:   u.Timestamp.Format(time.RFC3339),
		}},
		kind: domain.KindCreate,
	}

	var resp single[statusUpdateAttrs]
	if err := c.call(ctx, sess, r, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, &domain.APIError{Kind: domain.KindCreate, Op: r.op(), Err: fmt.Errorf("response carried no status update")}
	}

	out := toStatusUpdate(*resp.Data)
	return &out, nil
}

// UpdateShipmentStatus overwrites the shipment's denormalized order_status.
func (c *Client) UpdateShipmentStatus(
	ctx context.Context,
	sess *domain.Session,
	shipmentID int,
	status domain.OrderStatus,
) (err error) {
	defer obs.Time(ctx, "strapi.UpdateShipmentStatus")(&err)

	r := request{
		method: http.MethodPut,
		path:   fmt.Sprintf("/api/shipment/%d", shipmentID),
		body:   envelope[statusBody]{Data: statusBody{OrderStatus: string(status)}},
		kind:   domain.KindUpdate,
	}

	return c.call(ctx, sess, r, nil)
}

func (c *Client) DeleteStatusUpdate(ctx context.Context, sess *domain.Session, id int) (err error) {
	defer obs.Time(ctx, "strapi.DeleteStatusUpdate")(&err)
	return c.delete(ctx, sess, fmt.Sprintf("/api/status-updates/%d", id))
}

func (c *Client) DeleteShipment(ctx context.Context, sess *domain.Session, id int) (err error) {
	defer obs.Time(ctx, "strapi.DeleteShipment")(&err)
	return c.delete(ctx, sess, fmt.Sprintf("/api/shipment/%d", id))
}

// DeleteCustomer is only used to undo a customer created for a shipment that
// could not be created.
func (c *Client) DeleteCustomer(ctx context.Context, sess *domain.Session, id int) (err error) {
	defer obs.Time(ctx, "strapi.DeleteCustomer")(&err)
	return c.delete(ctx, sess, fmt.Sprintf("/api/customers/%d", id))
}

func (c *Client) delete(ctx context.Context, sess *domain.Session, path string) error {
	r := request{
		method: http.MethodDelete,
		path:   path,
		kind:   domain.KindDelete,
	}
	return c.call(ctx, sess, r, nil)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
