// internal/domain/coupon/entity.go
package coupon

import (
	"time"

	"gorm.io/gorm"
)

// Coupon is a single-use percentage discount code won through the
// post-purchase gift bag. It belongs to exactly one user. Once the
// discount is applied to a completed order the coupon is burned
// (is_used = true) and never returns to a redeemable state; rows are
// never deleted.
type Coupon struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Code               string         `gorm:"uniqueIndex;not null;size:50" json:"code"`
	DiscountPercentage int            `gorm:"not null" json:"discount_percentage"`
	UserID             uint           `gorm:"not null;index" json:"user_id"`
	IsUsed             bool           `gorm:"not null;default:false;index" json:"is_used"`
	RedeemedAt         *time.Time     `json:"redeemed_at,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Coupon) TableName() string {
	return "coupons"
}

// Redeemable reports whether the coupon can still be applied by the given user.
func (c *Coupon) Redeemable(userID uint) bool {
	return !c.IsUsed && c.UserID == userID
}
