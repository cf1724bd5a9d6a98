package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heladeria-storefront/internal/domain"
	"heladeria-storefront/internal/identity"
)

func vanilla() domain.Product {
	return domain.Product{ID: 1, Name: "Helado de Vainilla", Price: 3.50}
}

func chocolate() domain.Product {
	return domain.Product{ID: 2, Name: "Helado de Chocolate", Price: 4.00}
}

func TestAddMergesByProductID(t *testing.T) {
	c := New()
	c.Add(vanilla())
	c.Add(chocolate())
	c.Add(vanilla())

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(1), items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestTotalsSumsQuantities(t *testing.T) {
	c := New()
	cono := domain.Product{ID: 1, Name: "Cono Doble", Price: 4}
	malteada := domain.Product{ID: 2, Name: "Malteada", Price: 5}
	c.Add(cono)
	c.Add(cono)
	c.Add(malteada)

	amount, count := c.Totals()
	assert.InDelta(t, 13.0, amount, 0.001)
	assert.Equal(t, 3, count)
}

func TestRemoveByProductID(t *testing.T) {
	c := New()
	c.Add(vanilla())
	c.Add(chocolate())

	assert.True(t, c.Remove(1))
	assert.False(t, c.Remove(1))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].ProductID)
}

func TestRemoveDistinguishesSameTitle(t *testing.T) {
	c := New()
	c.Add(domain.Product{ID: 10, Name: "Especial del Día", Price: 5})
	c.Add(domain.Product{ID: 11, Name: "Especial del Día", Price: 6})

	require.True(t, c.Remove(10))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(11), items[0].ProductID)
}

func TestItemsReturnsCopy(t *testing.T) {
	c := New()
	c.Add(vanilla())

	items := c.Items()
	items[0].Quantity = 99

	fresh := c.Items()
	assert.Equal(t, 1, fresh[0].Quantity)
}

func TestOrderRequestByID(t *testing.T) {
	c := New()
	c.Add(vanilla())
	c.Add(vanilla())
	c.Add(chocolate())

	req, err := c.OrderRequest(identity.ByID(7))
	require.NoError(t, err)

	require.NotNil(t, req.CustomerID)
	assert.Equal(t, int64(7), *req.CustomerID)
	assert.Nil(t, req.CustomerEmail)

	require.Len(t, req.Items, 2)
	assert.Equal(t, int64(1), req.Items[0].ProductID)
	assert.Equal(t, 2, req.Items[0].Quantity)
	assert.Equal(t, int64(2), req.Items[1].ProductID)
	assert.Equal(t, 1, req.Items[1].Quantity)
}

func TestOrderRequestByEmail(t *testing.T) {
	c := New()
	c.Add(chocolate())

	req, err := c.OrderRequest(identity.ByEmail("ana@example.com"))
	require.NoError(t, err)

	assert.Nil(t, req.CustomerID)
	require.NotNil(t, req.CustomerEmail)
	assert.Equal(t, "ana@example.com", *req.CustomerEmail)
}

func TestOrderRequestEmptyCart(t *testing.T) {
	c := New()
	_, err := c.OrderRequest(identity.ByID(7))
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestClear(t *testing.T) {
	c := New()
	c.Add(vanilla())
	c.Clear()

	assert.True(t, c.Empty())
	amount, count := c.Totals()
	assert.Zero(t, amount)
	assert.Zero(t, count)
}
