// internal/domain/cart/service_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileDirtyCarriesFailedLinesIntoLoginCart(t *testing.T) {
	saved := &WorkingCart{Lines: []Line{
		{ProductID: 1, Name: "Lavanda & Vainilla", Price: 85000, Quantity: 1},
		{ProductID: 2, Name: "Bosque de Cedro", Price: 92000, Quantity: 2},
	}}
	prev := &WorkingCart{Lines: []Line{
		{ProductID: 2, Name: "Bosque de Cedro", Price: 92000, Quantity: 5, Dirty: true},
		{ProductID: 4, Name: "Canela & Naranja", Price: 85000, Quantity: 1, Dirty: true},
		{ProductID: 1, Name: "Lavanda & Vainilla", Price: 85000, Quantity: 3}, // clean, mirror already has it
	}}

	retry := reconcileDirty(saved, prev)

	// The dirty copies win over the stale durable rows and both need their
	// mirror writes retried.
	require.Len(t, retry, 2)
	assert.Equal(t, uint(2), retry[0].ProductID)
	assert.Equal(t, uint(4), retry[1].ProductID)

	require.Len(t, saved.Lines, 3)
	i := saved.FindLine(2)
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, 5, saved.Lines[i].Quantity)
	assert.False(t, saved.Lines[i].Dirty)

	i = saved.FindLine(4)
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, 1, saved.Lines[i].Quantity)
	assert.False(t, saved.Lines[i].Dirty)

	// The clean previous line neither overwrites the durable row nor retries.
	i = saved.FindLine(1)
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, 1, saved.Lines[i].Quantity)
}

func TestReconcileDirtyNoDirtyLinesIsANoop(t *testing.T) {
	saved := &WorkingCart{Lines: []Line{{ProductID: 1, Price: 85000, Quantity: 1}}}
	prev := &WorkingCart{Lines: []Line{{ProductID: 1, Price: 85000, Quantity: 9}}}

	assert.Empty(t, reconcileDirty(saved, prev))
	require.Len(t, saved.Lines, 1)
	assert.Equal(t, 1, saved.Lines[0].Quantity)
}
