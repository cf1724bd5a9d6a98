package webapp

import (
	"context"

	"heladeria-storefront/internal/domain"
	"heladeria-storefront/internal/session"
)

// AuthAPI is the slice of the backend client used by login and registration.
type AuthAPI interface {
	Login(ctx context.Context, creds domain.Credentials) (string, error)
	Register(ctx context.Context, in domain.RegisterInput) error
}

// CatalogAPI covers products and categories.
type CatalogAPI interface {
	Products(ctx context.Context, bearer string, categoryID *int64) ([]domain.Product, error)
	Categories(ctx context.Context, bearer string) ([]domain.Category, error)
	CreateProduct(ctx context.Context, bearer string, in domain.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, bearer string, id int64, in domain.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, bearer string, id int64) error
	CreateCategory(ctx context.Context, bearer, name string) (*domain.Category, error)
}

// OrderAPI covers order submission and back-office order management.
type OrderAPI interface {
	CreateOrder(ctx context.Context, bearer string, req domain.OrderRequest, idempotencyKey string) (*domain.Order, error)
	Orders(ctx context.Context, bearer string, status domain.OrderStatus) ([]domain.Order, error)
	Order(ctx context.Context, bearer string, id int64) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, bearer string, id int64, status domain.OrderStatus) (*domain.Order, error)
}

// CustomerAPI is consumed by the identity resolver's lookup fallback and
// the order detail view.
type CustomerAPI interface {
	Customer(ctx context.Context, bearer string, id int64) (*domain.Customer, error)
	CustomerByEmail(ctx context.Context, bearer, email string) (*domain.Customer, error)
}

// Deps carries everything the router needs. *api.Client satisfies all four
// API slices; tests substitute stubs.
type Deps struct {
	Auth      AuthAPI
	Catalog   CatalogAPI
	Orders    OrderAPI
	Customers CustomerAPI
	Sessions  session.Store
}
