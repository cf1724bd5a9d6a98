package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"heladeria-storefront/internal/domain"
)

// CreateOrder submits an order. The idempotency key identifies one checkout
// attempt so the backend can de-duplicate rapid retries of the same attempt.
func (c *Client) CreateOrder(ctx context.Context, bearer string, req domain.OrderRequest, idempotencyKey string) (*domain.Order, error) {
	var headers map[string]string
	if idempotencyKey != "" {
		headers = map[string]string{"Idempotency-Key": idempotencyKey}
	}
	var out domain.Order
	if err := c.do(ctx, http.MethodPost, "/pedidos", bearer, req, &out, headers); err != nil {
		return nil, err
	}
	return &out, nil
}

// Orders lists all orders, optionally narrowed to a status.
func (c *Client) Orders(ctx context.Context, bearer string, status domain.OrderStatus) ([]domain.Order, error) {
	path := "/pedidos"
	if status != "" {
		path = "/pedidos/estado?estado=" + url.QueryEscape(string(status))
	}
	var out []domain.Order
	if err := c.do(ctx, http.MethodGet, path, bearer, nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// Order fetches one order with its line items.
func (c *Client) Order(ctx context.Context, bearer string, id int64) (*domain.Order, error) {
	var out domain.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/pedidos/%d", id), bearer, nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateOrderStatus transitions an order to the given status. The backend
// accepts any transition; progression rules are a UI concern.
func (c *Client) UpdateOrderStatus(ctx context.Context, bearer string, id int64, status domain.OrderStatus) (*domain.Order, error) {
	path := fmt.Sprintf("/pedidos/%d/estado?estado=%s", id, url.QueryEscape(string(status)))
	var out domain.Order
	if err := c.do(ctx, http.MethodPatch, path, bearer, nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}
