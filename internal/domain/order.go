package domain

import "time"

// OrderStatus is the backend's order state enumeration. Values are
// case-sensitive and travel verbatim on the wire.
type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDIENTE"
	StatusPreparing OrderStatus = "EN_PREPARACION"
	StatusReady     OrderStatus = "LISTO"
	StatusDelivered OrderStatus = "ENTREGADO"
	StatusCancelled OrderStatus = "CANCELADO"
)

// AllStatuses lists every status in progression order, CANCELADO last.
func AllStatuses() []OrderStatus {
	return []OrderStatus{StatusPending, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled}
}

// Valid reports whether s is a known status value.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Next returns the guided single-step progression used by the employee view.
// Terminal states (ENTREGADO, CANCELADO) have no next step. The backend does
// not enforce this ordering; the admin view offers every transition freely.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case StatusPending:
		return StatusPreparing, true
	case StatusPreparing:
		return StatusReady, true
	case StatusReady:
		return StatusDelivered, true
	}
	return "", false
}

// Label returns the human-readable Spanish label for the status.
func (s OrderStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pendiente"
	case StatusPreparing:
		return "En Preparación"
	case StatusReady:
		return "Listo"
	case StatusDelivered:
		return "Entregado"
	case StatusCancelled:
		return "Cancelado"
	}
	return string(s)
}

// OrderItem is one line of an order as returned by the backend. Unit price
// and subtotal are backend-computed; the client never re-prices.
type OrderItem struct {
	ProductID   int64   `json:"productoId"`
	Quantity    int     `json:"cantidad"`
	ProductName string  `json:"nombreProducto,omitempty"`
	UnitPrice   float64 `json:"precioUnit,omitempty"`
	Subtotal    float64 `json:"subtotal,omitempty"`
}

// Order is the backend's order representation.
type Order struct {
	ID         int64       `json:"id"`
	CustomerID int64       `json:"clienteId,omitempty"`
	Total      float64     `json:"total"`
	Status     OrderStatus `json:"estado"`
	PlacedAt   time.Time   `json:"fechaPedido,omitempty"`
	Items      []OrderItem `json:"items,omitempty"`
}

// OrderRequest is the outbound order-creation payload. Exactly one of
// CustomerID and CustomerEmail is set; prices are never sent, the backend
// re-prices from its catalog.
type OrderRequest struct {
	CustomerID    *int64             `json:"clienteId,omitempty"`
	CustomerEmail *string            `json:"clienteEmail,omitempty"`
	Items         []OrderRequestItem `json:"items"`
}

type OrderRequestItem struct {
	ProductID int64 `json:"productoId"`
	Quantity  int   `json:"cantidad"`
}
