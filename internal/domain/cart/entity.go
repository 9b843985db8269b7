// internal/domain/cart/entity.go
package cart

import (
	"time"
)

// CartItem is the durable per-user cart row mirrored from the working cart
// for authenticated shoppers. Rows are removed outright when a line leaves
// the cart; a soft-delete tombstone would sit on the (user_id, product_id)
// unique index and block the line from ever being re-added.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index:idx_cart_items_user_product,unique" json:"user_id"`
	ProductID uint      `gorm:"not null;index:idx_cart_items_user_product,unique" json:"product_id"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	Price     int64     `gorm:"not null" json:"price"` // Price at time of adding
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (CartItem) TableName() string {
	return "cart_items"
}

// Line is one product/quantity pair in the working cart (Redis JSON).
// Dirty marks a line whose durable mirror write failed after all retries
// and awaits manual or next-login reconciliation.
type Line struct {
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	Price     int64     `json:"price"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
	Dirty     bool      `json:"dirty,omitempty"`
}

// WorkingCart is the authoritative in-session view of a shopper's cart.
// Anonymous shoppers have only this; authenticated shoppers additionally
// get a durable row mirror reconciled in the background. IsOpen is the
// cart drawer's visibility flag, pure UI state along for the ride.
type WorkingCart struct {
	Key       string    `json:"key"` // session id or user key
	Lines     []Line    `json:"lines"`
	IsOpen    bool      `json:"is_open"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Totals are recomputed from the line list on every read, never cached.
type Totals struct {
	CartCount int   `json:"cart_count"` // Sum of all quantities
	CartTotal int64 `json:"cart_total"` // Sum of price * quantity
}

// ComputeTotals derives the cart totals from the current lines.
func (w *WorkingCart) ComputeTotals() Totals {
	var t Totals
	for _, line := range w.Lines {
		t.CartCount += line.Quantity
		t.CartTotal += line.Price * int64(line.Quantity)
	}
	return t
}

// FindLine returns the index of the line for a product, or -1.
func (w *WorkingCart) FindLine(productID uint) int {
	for i := range w.Lines {
		if w.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}
