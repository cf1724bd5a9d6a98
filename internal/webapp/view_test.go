package webapp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heladeria-storefront/internal/domain"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func TestMoney(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{7, "$7"},
		{3.5, "$3.50"},
		{1200, "$1,200"},
		{12345.75, "$12,345.75"},
		{1234567, "$1,234,567"},
		{-42.5, "-$42.50"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, money(tc.in))
	}
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "pendiente", statusClass(domain.StatusPending))
	assert.Equal(t, "enpreparacion", statusClass(domain.StatusPreparing))
	assert.Equal(t, "cancelado", statusClass(domain.StatusCancelled))
}

func TestGroupByCategory(t *testing.T) {
	categories := []domain.Category{
		{ID: 1, Name: "Helados"},
		{ID: 2, Name: "Postres"},
		{ID: 3, Name: "Bebidas"},
	}
	products := []domain.Product{
		{ID: 1, Name: "Vainilla", CategoryID: 1},
		{ID: 2, Name: "Brownie", CategoryID: 2},
		{ID: 3, Name: "Chocolate", CategoryID: 1},
		{ID: 4, Name: "Malteada", CategoryID: 99},
	}

	sections := groupByCategory(categories, products)

	// Bebidas has no products and is dropped; the unknown category lands
	// in a trailing Otros section.
	assert.Len(t, sections, 3)
	assert.Equal(t, "Helados", sections[0].Category.Name)
	assert.Len(t, sections[0].Products, 2)
	assert.Equal(t, "Postres", sections[1].Category.Name)
	assert.Equal(t, "Otros", sections[2].Category.Name)
	assert.Equal(t, "Malteada", sections[2].Products[0].Name)
}

func TestComputeStats(t *testing.T) {
	now := mustTime(t, "2026-08-28T12:00:00Z")
	orders := []domain.Order{
		{ID: 1, Status: domain.StatusPending, PlacedAt: now},
		{ID: 2, Status: domain.StatusPending, PlacedAt: now.AddDate(0, 0, -1)},
		{ID: 3, Status: domain.StatusPreparing, PlacedAt: now},
		{ID: 4, Status: domain.StatusDelivered, PlacedAt: now},
	}

	stats := computeStats(orders, now)
	assert.Equal(t, 2, stats.Pending)
	assert.Equal(t, 1, stats.Preparing)
	assert.Equal(t, 0, stats.Ready)
	assert.Equal(t, 3, stats.Today)
}
