// internal/domain/cart/entity_test.go
package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	cart := &WorkingCart{
		Lines: []Line{
			{ProductID: 1, Price: 85000, Quantity: 2},
			{ProductID: 2, Price: 45000, Quantity: 1},
		},
	}

	totals := cart.ComputeTotals()
	assert.Equal(t, 3, totals.CartCount)
	assert.Equal(t, int64(215000), totals.CartTotal)
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	cart := &WorkingCart{}

	totals := cart.ComputeTotals()
	assert.Equal(t, 0, totals.CartCount)
	assert.Equal(t, int64(0), totals.CartTotal)
}

func TestComputeTotalsRecomputedAfterMutation(t *testing.T) {
	cart := &WorkingCart{
		Lines: []Line{{ProductID: 1, Price: 60000, Quantity: 1}},
	}
	assert.Equal(t, int64(60000), cart.ComputeTotals().CartTotal)

	cart.Lines[0].Quantity = 4
	totals := cart.ComputeTotals()
	assert.Equal(t, 4, totals.CartCount)
	assert.Equal(t, int64(240000), totals.CartTotal)
}

func TestFindLine(t *testing.T) {
	cart := &WorkingCart{
		Lines: []Line{
			{ProductID: 7, Price: 85000, Quantity: 1, AddedAt: time.Now()},
			{ProductID: 9, Price: 45000, Quantity: 2, AddedAt: time.Now()},
		},
	}

	assert.Equal(t, 0, cart.FindLine(7))
	assert.Equal(t, 1, cart.FindLine(9))
	assert.Equal(t, -1, cart.FindLine(42))
}
