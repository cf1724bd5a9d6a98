package api

import (
	"context"
	"fmt"
	"net/http"

	"heladeria-storefront/internal/domain"
)

// Products lists the catalog, optionally filtered by category.
func (c *Client) Products(ctx context.Context, bearer string, categoryID *int64) ([]domain.Product, error) {
	path := "/productos"
	if categoryID != nil {
		path = fmt.Sprintf("/productos?categoriaId=%d", *categoryID)
	}
	var out []domain.Product
	if err := c.do(ctx, http.MethodGet, path, bearer, nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// Categories lists all product categories.
func (c *Client) Categories(ctx context.Context, bearer string) ([]domain.Category, error) {
	var out []domain.Category
	if err := c.do(ctx, http.MethodGet, "/categorias", bearer, nil, &out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProduct adds a product to the catalog. Admin only on the backend side.
func (c *Client) CreateProduct(ctx context.Context, bearer string, in domain.ProductInput) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodPost, "/productos", bearer, in, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct replaces an existing product.
func (c *Client) UpdateProduct(ctx context.Context, bearer string, id int64, in domain.ProductInput) (*domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/productos/%d", id), bearer, in, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProduct removes a product from the catalog.
func (c *Client) DeleteProduct(ctx context.Context, bearer string, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/productos/%d", id), bearer, nil, nil, nil)
}

type categoryInput struct {
	Name string `json:"nombre"`
}

// CreateCategory adds a category.
func (c *Client) CreateCategory(ctx context.Context, bearer, name string) (*domain.Category, error) {
	var out domain.Category
	if err := c.do(ctx, http.MethodPost, "/categorias", bearer, categoryInput{Name: name}, &out, nil); err != nil {
		return nil, err
	}
	return &out, nil
}
