// internal/domain/checkout/service.go
package checkout

import (
	"github.com/kimezu-studio/storefront-backend/internal/config"
)

// Shipping methods offered at checkout
const (
	ShippingNational = "nacional"
	ShippingPickup   = "recogida"
)

// Breakdown is the itemized checkout total. All amounts are whole pesos.
type Breakdown struct {
	Subtotal         int64 `json:"subtotal"`
	Shipping         int64 `json:"shipping"`
	BundleDiscount   int64 `json:"bundle_discount"`
	CouponPercentage int   `json:"coupon_percentage"`
	CouponDiscount   int64 `json:"coupon_discount"`
	Total            int64 `json:"total"`
}

// Service computes checkout totals
type Service struct {
	config *config.Config
}

// NewService creates a new checkout service
func NewService(cfg *config.Config) *Service {
	return &Service{config: cfg}
}

// ShippingRate returns the flat rate for a shipping method. Store pickup
// is free; anything unrecognized gets the national rate rather than a
// silent zero.
func (s *Service) ShippingRate(method string) int64 {
	if method == ShippingPickup {
		return 0
	}
	return s.config.Shipping.NationalRate
}

// Quote itemizes the order total. The coupon percentage applies to the
// subtotal; bundle discounts were already priced into it upstream and are
// reported separately. The final total never goes below zero, no matter
// how the discounts stack.
func (s *Service) Quote(subtotal int64, shippingMethod string, bundleDiscount int64, couponPercentage int) Breakdown {
	return ComputeTotal(subtotal, s.ShippingRate(shippingMethod), bundleDiscount, couponPercentage)
}

// ComputeTotal builds the breakdown from raw amounts. The coupon discount
// is rounded half up on the subtotal, and the result is clamped at zero.
func ComputeTotal(subtotal, shipping, bundleDiscount int64, couponPercentage int) Breakdown {
	b := Breakdown{
		Subtotal:         subtotal,
		Shipping:         shipping,
		BundleDiscount:   bundleDiscount,
		CouponPercentage: couponPercentage,
	}
	if couponPercentage > 0 {
		b.CouponDiscount = (subtotal*int64(couponPercentage) + 50) / 100
	}

	b.Total = subtotal + shipping - bundleDiscount - b.CouponDiscount
	if b.Total < 0 {
		b.Total = 0
	}
	return b
}
