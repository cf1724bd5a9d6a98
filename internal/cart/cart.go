package cart

import (
	"fmt"
	"sync"

	"heladeria-storefront/internal/domain"
	"heladeria-storefront/internal/identity"
)

// LineItem is one product held in the cart. Title and unit price are
// captured at add time and never re-fetched; the backend re-prices on order
// creation anyway.
type LineItem struct {
	ProductID int64
	Title     string
	UnitPrice float64
	Quantity  int
}

// Cart is an insertion-ordered collection of line items with at most one
// line per product id. It is owned by a single session, but that session can
// issue concurrent requests (a second tab, a double-click), so every method
// takes the cart's lock.
type Cart struct {
	mu    sync.Mutex
	items []LineItem
}

func New() *Cart {
	return &Cart{}
}

// Add merges the product into the cart: an existing line's quantity is
// incremented, otherwise a new line with quantity 1 is appended.
func (c *Cart) Add(p domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == p.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, LineItem{
		ProductID: p.ID,
		Title:     p.Name,
		UnitPrice: p.Price,
		Quantity:  1,
	})
}

// Remove deletes the line with the given product id and reports whether a
// line was removed. Lines are keyed by product id, never by display title,
// so products sharing a title stay independently removable.
func (c *Cart) Remove(productID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// Totals computes the cart total and the summed item count in one pass.
func (c *Cart) Totals() (amount float64, count int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range c.items {
		amount += item.UnitPrice * float64(item.Quantity)
		count += item.Quantity
	}
	return amount, count
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}

// Clear drops every line. Callers invoke this only after the backend has
// confirmed order creation; clearing earlier would lose the user's order on
// a failed submission.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// OrderRequest serializes the cart into an order-creation payload attributed
// to ref. Prices are not sent. The switch over the customer reference is
// exhaustive: an unknown case is a programming error, not a fallback.
func (c *Cart) OrderRequest(ref identity.CustomerRef) (domain.OrderRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) == 0 {
		return domain.OrderRequest{}, domain.ErrEmptyCart
	}

	req := domain.OrderRequest{
		Items: make([]domain.OrderRequestItem, 0, len(c.items)),
	}
	for _, item := range c.items {
		req.Items = append(req.Items, domain.OrderRequestItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	switch r := ref.(type) {
	case identity.ByID:
		id := int64(r)
		req.CustomerID = &id
	case identity.ByEmail:
		email := string(r)
		req.CustomerEmail = &email
	default:
		return domain.OrderRequest{}, fmt.Errorf("unhandled customer reference %T", ref)
	}

	return req, nil
}
