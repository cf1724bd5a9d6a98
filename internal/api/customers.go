package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"heladeria-storefront/internal/domain"
)

// Customer fetches a customer profile by numeric id.
func (c *Client) Customer(ctx context.Context, bearer string, id int64) (*domain.Customer, error) {
	var out domain.Customer
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/clientes/%d", id), bearer, nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// CustomerByEmail looks a customer up by email address. Not every deployment
// of the backend exposes this endpoint; callers must tolerate failure.
func (c *Client) CustomerByEmail(ctx context.Context, bearer, email string) (*domain.Customer, error) {
	var out domain.Customer
	path := "/clientes/email/" + url.PathEscape(email)
	if err := c.do(ctx, http.MethodGet, path, bearer, nil, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}
