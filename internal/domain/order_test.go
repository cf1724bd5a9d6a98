package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusNextProgression(t *testing.T) {
	next, ok := StatusPending.Next()
	assert.True(t, ok)
	assert.Equal(t, StatusPreparing, next)

	next, ok = StatusPreparing.Next()
	assert.True(t, ok)
	assert.Equal(t, StatusReady, next)

	next, ok = StatusReady.Next()
	assert.True(t, ok)
	assert.Equal(t, StatusDelivered, next)

	_, ok = StatusDelivered.Next()
	assert.False(t, ok)
	_, ok = StatusCancelled.Next()
	assert.False(t, ok)
}

func TestStatusValid(t *testing.T) {
	for _, s := range AllStatuses() {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, OrderStatus("ENVIADO").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Pendiente", StatusPending.Label())
	assert.Equal(t, "En Preparación", StatusPreparing.Label())
	assert.Equal(t, "Entregado", StatusDelivered.Label())
}
