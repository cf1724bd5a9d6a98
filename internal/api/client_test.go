package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heladeria-storefront/internal/domain"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return New(srv.URL+"/api", logger)
}

func TestLogin(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var creds domain.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "ana", creds.Username)

		json.NewEncoder(w).Encode(map[string]string{"accessToken": "tok-123"})
	})

	tok, err := c.Login(context.Background(), domain.Credentials{Username: "ana", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "tok-123", tok)
}

func TestLoginRejected(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "credenciales inválidas", http.StatusUnauthorized)
	})

	_, err := c.Login(context.Background(), domain.Credentials{Username: "ana", Password: "wrong"})

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.Code)
	assert.Contains(t, statusErr.Body, "credenciales")
}

func TestProductsCarriesBearerAndFilter(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/productos", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("categoriaId"))
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode([]domain.Product{{ID: 1, Name: "Helado de Vainilla", Price: 3.5, CategoryID: 5}})
	})

	category := int64(5)
	products, err := c.Products(context.Background(), "tok-123", &category)
	require.NoError(t, err)

	require.Len(t, products, 1)
	assert.Equal(t, "Helado de Vainilla", products[0].Name)
}

func TestCreateOrderSendsIdempotencyKey(t *testing.T) {
	customerID := int64(42)
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/pedidos", r.URL.Path)
		assert.Equal(t, "attempt-1", r.Header.Get("Idempotency-Key"))

		var req struct {
			CustomerID *int64 `json:"clienteId"`
			Items      []struct {
				ProductID int64 `json:"productoId"`
				Quantity  int   `json:"cantidad"`
			} `json:"items"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.CustomerID)
		assert.Equal(t, customerID, *req.CustomerID)
		require.Len(t, req.Items, 1)
		assert.Equal(t, 2, req.Items[0].Quantity)

		json.NewEncoder(w).Encode(domain.Order{ID: 9, CustomerID: customerID, Total: 7, Status: domain.StatusPending})
	})

	order, err := c.CreateOrder(context.Background(), "tok-123", domain.OrderRequest{
		CustomerID: &customerID,
		Items:      []domain.OrderRequestItem{{ProductID: 1, Quantity: 2}},
	}, "attempt-1")
	require.NoError(t, err)

	assert.Equal(t, int64(9), order.ID)
	assert.Equal(t, domain.StatusPending, order.Status)
}

func TestOrdersStatusFilter(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/pedidos/estado", r.URL.Path)
		assert.Equal(t, "EN_PREPARACION", r.URL.Query().Get("estado"))
		json.NewEncoder(w).Encode([]domain.Order{{ID: 9, Status: domain.StatusPreparing}})
	})

	orders, err := c.Orders(context.Background(), "tok-123", domain.StatusPreparing)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, domain.StatusPreparing, orders[0].Status)
}

func TestUpdateOrderStatus(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/pedidos/9/estado", r.URL.Path)
		assert.Equal(t, "LISTO", r.URL.Query().Get("estado"))
		json.NewEncoder(w).Encode(domain.Order{ID: 9, Status: domain.StatusReady})
	})

	order, err := c.UpdateOrderStatus(context.Background(), "tok-123", 9, domain.StatusReady)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReady, order.Status)
}

func TestCustomerByEmailEscapesPath(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/clientes/email/ana@example.com", r.URL.Path)
		json.NewEncoder(w).Encode(domain.Customer{ID: 42, Email: "ana@example.com"})
	})

	customer, err := c.CustomerByEmail(context.Background(), "tok-123", "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(42), customer.ID)
}

func TestNotFoundMapsToSentinel(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := c.Order(context.Background(), "tok-123", 404)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDeleteProductNoBody(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/productos/3", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.DeleteProduct(context.Background(), "tok-123", 3))
}
