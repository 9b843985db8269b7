// internal/domain/bundle/engine_test.go
package bundle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscountRateTiers(t *testing.T) {
	tests := []struct {
		items int
		want  int
	}{
		{0, 0},
		{1, 0},
		{2, 5},
		{3, 10},
		{4, 15},
		{5, 20},
		{6, 25},
		{7, 25},
		{20, 25},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DiscountRate(tt.items), "rate for %d items", tt.items)
	}
}

func sameItems(n int, price int64) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{ProductID: 1, Name: "Lavanda & Vainilla", Price: price}
	}
	return items
}

func TestPriceEmptySelection(t *testing.T) {
	q := Price(nil)
	assert.Equal(t, Quote{}, q)
}

func TestPriceSingleItemNoDiscount(t *testing.T) {
	q := Price(sameItems(1, 100000))
	assert.Equal(t, int64(100000), q.Subtotal)
	assert.Equal(t, 0, q.DiscountRate)
	assert.Equal(t, int64(0), q.DiscountAmount)
	assert.Equal(t, int64(100000), q.Total)
}

func TestPricePairGetsFivePercent(t *testing.T) {
	q := Price(sameItems(2, 100000))
	assert.Equal(t, int64(200000), q.Subtotal)
	assert.Equal(t, 5, q.DiscountRate)
	assert.Equal(t, int64(10000), q.DiscountAmount)
	assert.Equal(t, int64(190000), q.Total)
}

func TestPriceCapAtSixItems(t *testing.T) {
	q := Price(sameItems(6, 50000))
	assert.Equal(t, int64(300000), q.Subtotal)
	assert.Equal(t, 25, q.DiscountRate)
	assert.Equal(t, int64(75000), q.DiscountAmount)
	assert.Equal(t, int64(225000), q.Total)
}

func TestPriceDuplicatesCountIndependently(t *testing.T) {
	items := []Item{
		{ProductID: 1, Price: 85000},
		{ProductID: 1, Price: 85000},
		{ProductID: 2, Price: 92000},
	}
	q := Price(items)
	assert.Equal(t, 3, q.ItemCount)
	assert.Equal(t, int64(262000), q.Subtotal)
	assert.Equal(t, 10, q.DiscountRate)
}

func TestPriceRoundsHalfUp(t *testing.T) {
	// 5% of 990 = 49.5, rounds up to 50
	q := Price(sameItems(2, 495))
	assert.Equal(t, int64(990), q.Subtotal)
	assert.Equal(t, int64(50), q.DiscountAmount)
	assert.Equal(t, int64(940), q.Total)
}

func TestPriceIsIdempotent(t *testing.T) {
	items := sameItems(4, 89500)
	first := Price(items)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, Price(items))
	}
}
