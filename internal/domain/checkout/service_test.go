// internal/domain/checkout/service_test.go
package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kimezu-studio/storefront-backend/internal/config"
)

func testService() *Service {
	cfg := &config.Config{}
	cfg.Shipping.NationalRate = 12000
	return NewService(cfg)
}

func TestComputeTotalNoDiscounts(t *testing.T) {
	b := ComputeTotal(85000, 12000, 0, 0)

	assert.Equal(t, int64(85000), b.Subtotal)
	assert.Equal(t, int64(12000), b.Shipping)
	assert.Equal(t, int64(0), b.CouponDiscount)
	assert.Equal(t, int64(97000), b.Total)
}

func TestComputeTotalWithCoupon(t *testing.T) {
	// 10% of 130.000 is 13.000
	b := ComputeTotal(130000, 12000, 0, 10)

	assert.Equal(t, int64(13000), b.CouponDiscount)
	assert.Equal(t, int64(129000), b.Total)
}

func TestComputeTotalCouponRoundsHalfUp(t *testing.T) {
	// 3% of 333 is 9.99, rounds to 10
	b := ComputeTotal(333, 0, 0, 3)
	assert.Equal(t, int64(10), b.CouponDiscount)

	// 7% of 105 is 7.35, rounds to 7
	b = ComputeTotal(105, 0, 0, 7)
	assert.Equal(t, int64(7), b.CouponDiscount)
}

func TestComputeTotalStacksDiscounts(t *testing.T) {
	b := ComputeTotal(300000, 12000, 75000, 25)

	assert.Equal(t, int64(75000), b.BundleDiscount)
	assert.Equal(t, int64(75000), b.CouponDiscount)
	assert.Equal(t, int64(162000), b.Total)
}

func TestComputeTotalClampsAtZero(t *testing.T) {
	b := ComputeTotal(10000, 0, 10000, 25)

	assert.Equal(t, int64(2500), b.CouponDiscount)
	assert.Equal(t, int64(0), b.Total)
}

func TestShippingRate(t *testing.T) {
	s := testService()

	assert.Equal(t, int64(12000), s.ShippingRate(ShippingNational))
	assert.Equal(t, int64(0), s.ShippingRate(ShippingPickup))
	assert.Equal(t, int64(12000), s.ShippingRate("express")) // unknown defaults national
}

func TestQuote(t *testing.T) {
	s := testService()

	b := s.Quote(130000, ShippingNational, 0, 5)
	assert.Equal(t, int64(6500), b.CouponDiscount)
	assert.Equal(t, int64(135500), b.Total)
}
