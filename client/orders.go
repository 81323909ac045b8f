package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sliceworks/pizzactl/domain"
	serrors "github.com/sliceworks/pizzactl/errors"
	"github.com/sliceworks/pizzactl/validate"
)

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	Items   []domain.CartLine `json:"items"`
	Address string            `json:"address,omitempty"`
}

// CreateOrder places an order from cart lines.
func (c *Client) CreateOrder(ctx context.Context, r CreateOrderRequest) (domain.Order, error) {
	if len(r.Items) == 0 {
		return domain.Order{}, serrors.NewValidation("items", "order must contain at least one item")
	}
	var order domain.Order
	if err := c.do(ctx, http.MethodPost, "/orders", nil, r, &order); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

// ListOrders fetches all orders visible to the caller (all orders for
// admins, own orders otherwise).
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.do(ctx, http.MethodGet, "/orders", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder fetches one order.
func (c *Client) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	if err := validate.Required("id", id); err != nil {
		return domain.Order{}, err
	}
	var order domain.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, nil, &order); err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

// OrdersByCustomer lists a customer's order history.
func (c *Client) OrdersByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	if err := validate.Required("customer id", customerID); err != nil {
		return nil, err
	}
	var orders []domain.Order
	path := "/orders/customer/" + url.PathEscape(customerID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CancelOrder cancels a pending order.
func (c *Client) CancelOrder(ctx context.Context, id string) error {
	if err := validate.Required("id", id); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(id)+"/cancel", nil, nil, nil)
}

// UpdateOrderStatus moves an order through its lifecycle. Admin only.
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) error {
	if err := validate.Required("id", id); err != nil {
		return err
	}
	if err := validate.Required("status", status); err != nil {
		return err
	}
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(id)+"/status", nil, body, nil)
}

// UpdatePaymentStatus sets an order's payment status. Admin only.
func (c *Client) UpdatePaymentStatus(ctx context.Context, id, paymentStatus string) error {
	if err := validate.Required("id", id); err != nil {
		return err
	}
	if err := validate.Required("payment status", paymentStatus); err != nil {
		return err
	}
	body := map[string]string{"payment_status": paymentStatus}
	return c.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(id)+"/payment-status", nil, body, nil)
}

// UpdateDeliveryStatus sets an order's delivery status. Admin only.
func (c *Client) UpdateDeliveryStatus(ctx context.Context, id, deliveryStatus string) error {
	if err := validate.Required("id", id); err != nil {
		return err
	}
	if err := validate.Required("delivery status", deliveryStatus); err != nil {
		return err
	}
	body := map[string]string{"delivery_status": deliveryStatus}
	return c.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(id)+"/delivery-status", nil, body, nil)
}

// DeleteOrder removes an order record. Admin only.
func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	if err := validate.Required("id", id); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, "/orders/"+url.PathEscape(id), nil, nil, nil)
}
