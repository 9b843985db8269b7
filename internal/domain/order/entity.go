// internal/domain/order/entity.go
package order

import (
	"time"

	"gorm.io/gorm"
)

// Order statuses
const (
	StatusPending   = "pending"   // placed, payment proof awaiting review
	StatusConfirmed = "confirmed" // payment verified
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// Payment methods accepted by the store. All of them are manual transfers
// verified against an uploaded proof image.
const (
	PaymentCard        = "card"
	PaymentNequi       = "nequi"
	PaymentBancolombia = "bancolombia"
)

// Order represents a placed order
type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderNumber string `gorm:"uniqueIndex;not null" json:"order_number"`
	UserID      uint   `gorm:"index" json:"user_id"` // 0 for guest orders

	// Customer and delivery details
	CustomerName string `gorm:"not null" json:"customer_name"`
	Email        string `gorm:"not null" json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Department   string `json:"department"`
	Notes        string `json:"notes"`

	// Amounts, whole pesos
	ShippingMethod string `gorm:"not null" json:"shipping_method"`
	Subtotal       int64  `gorm:"not null" json:"subtotal"`
	ShippingCost   int64  `gorm:"not null" json:"shipping_cost"`
	BundleDiscount int64  `gorm:"default:0" json:"bundle_discount"`
	CouponCode     string `json:"coupon_code"`
	CouponDiscount int64  `gorm:"default:0" json:"coupon_discount"`
	Total          int64  `gorm:"not null" json:"total"`

	PaymentMethod   string `gorm:"not null" json:"payment_method"`
	PaymentProofURL string `json:"payment_proof_url"`

	Status    string         `gorm:"not null;default:'pending';index" json:"status"`
	Items     []OrderItem    `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one purchased line, with name and price frozen at purchase time
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	ProductID uint      `gorm:"not null" json:"product_id"`
	Name      string    `gorm:"not null" json:"name"`
	Price     int64     `gorm:"not null" json:"price"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (OrderItem) TableName() string {
	return "order_items"
}

// ValidPaymentMethod reports whether the store accepts the given method.
func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentCard, PaymentNequi, PaymentBancolombia:
		return true
	}
	return false
}
