// internal/domain/bundle/engine.go
package bundle

// Stepped combo discount: the second product unlocks 5% off the whole
// selection and every additional product adds another 5%, capped at 25%
// from the sixth product on. A single product never gets a discount.

const (
	stepPercent = 5
	maxPercent  = 25
)

// Item is one entry in a combo selection. The same product may appear
// multiple times; every occurrence counts toward the discount tier.
type Item struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
}

// Quote is the priced result of a combo selection
type Quote struct {
	ItemCount      int   `json:"item_count"`
	Subtotal       int64 `json:"subtotal"`
	DiscountRate   int   `json:"discount_rate"` // percent, 0-25
	DiscountAmount int64 `json:"discount_amount"`
	Total          int64 `json:"total"`
}

// DiscountRate returns the combo discount percentage for n selected items.
func DiscountRate(n int) int {
	if n < 2 {
		return 0
	}
	rate := (n - 1) * stepPercent
	if rate > maxPercent {
		return maxPercent
	}
	return rate
}

// Price quotes a selection. It is a pure function: no side effects, same
// input always yields the same quote. An empty selection quotes to zero.
func Price(items []Item) Quote {
	var subtotal int64
	for _, item := range items {
		subtotal += item.Price
	}

	rate := DiscountRate(len(items))
	discount := roundHalfUpPercent(subtotal, rate)

	return Quote{
		ItemCount:      len(items),
		Subtotal:       subtotal,
		DiscountRate:   rate,
		DiscountAmount: discount,
		Total:          subtotal - discount,
	}
}

// roundHalfUpPercent computes amount*percent/100 rounded half up.
func roundHalfUpPercent(amount int64, percent int) int64 {
	if amount <= 0 || percent <= 0 {
		return 0
	}
	return (amount*int64(percent) + 50) / 100
}
