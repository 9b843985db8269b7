// internal/domain/coupon/service_test.go
package coupon

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kimezu-studio/storefront-backend/internal/config"
)

func testService() *Service {
	return &Service{
		config: &config.Config{
			Coupon: config.CouponConfig{
				CodePrefix:    "KIMEZU",
				MinPercentage: 3,
				MaxPercentage: 25,
			},
		},
	}
}

func TestRollPercentageStaysInRange(t *testing.T) {
	s := testService()
	for i := 0; i < 10000; i++ {
		pct, err := s.rollPercentage()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, pct, 3)
		assert.LessOrEqual(t, pct, 25)
	}
}

func TestGenerateCodeFormat(t *testing.T) {
	s := testService()
	codePattern := regexp.MustCompile(`^KIMEZU-[A-Z0-9]{5}-\d{1,2}$`)

	for pct := 3; pct <= 25; pct++ {
		code, err := s.generateCode(pct)
		require.NoError(t, err)
		assert.Regexp(t, codePattern, code)
	}
}

func TestGenerateCodeConsecutiveClaimsDiffer(t *testing.T) {
	s := testService()
	prev, err := s.generateCode(10)
	require.NoError(t, err)

	for i := 0; i < 10000; i++ {
		code, err := s.generateCode(10)
		require.NoError(t, err)
		assert.NotEqual(t, prev, code)
		prev = code
	}
}

func testDBService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Coupon{}))

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	s := testService()
	s.db = db
	s.logger = logger
	return s
}

func TestListAvailableExcludesBurnedCoupons(t *testing.T) {
	s := testDBService(t)
	now := time.Now().UTC()

	require.NoError(t, s.db.Create(&Coupon{Code: "KIMEZU-AAAAA-5", DiscountPercentage: 5, UserID: 7, CreatedAt: now.Add(-2 * time.Hour)}).Error)
	require.NoError(t, s.db.Create(&Coupon{Code: "KIMEZU-BBBBB-10", DiscountPercentage: 10, UserID: 7, IsUsed: true, CreatedAt: now.Add(-time.Hour)}).Error)
	require.NoError(t, s.db.Create(&Coupon{Code: "KIMEZU-CCCCC-12", DiscountPercentage: 12, UserID: 7, CreatedAt: now}).Error)
	require.NoError(t, s.db.Create(&Coupon{Code: "KIMEZU-DDDDD-8", DiscountPercentage: 8, UserID: 9, CreatedAt: now}).Error)

	coupons := s.ListAvailable(context.Background(), 7)

	require.Len(t, coupons, 2, "burned and foreign coupons stay out")
	assert.Equal(t, "KIMEZU-CCCCC-12", coupons[0].Code, "newest first")
	assert.Equal(t, "KIMEZU-AAAAA-5", coupons[1].Code)
	for _, c := range coupons {
		assert.False(t, c.IsUsed)
	}
}

func TestRedeemTxIsIdempotent(t *testing.T) {
	s := testDBService(t)

	c := Coupon{Code: "KIMEZU-EEEEE-15", DiscountPercentage: 15, UserID: 7}
	require.NoError(t, s.db.Create(&c).Error)

	require.NoError(t, s.RedeemTx(s.db, c.ID, 7))

	var burned Coupon
	require.NoError(t, s.db.First(&burned, c.ID).Error)
	assert.True(t, burned.IsUsed)
	require.NotNil(t, burned.RedeemedAt)
	firstRedeemedAt := *burned.RedeemedAt

	// A second redemption changes nothing and reports no error.
	require.NoError(t, s.RedeemTx(s.db, c.ID, 7))

	require.NoError(t, s.db.First(&burned, c.ID).Error)
	assert.True(t, burned.IsUsed)
	require.NotNil(t, burned.RedeemedAt)
	assert.Equal(t, firstRedeemedAt, *burned.RedeemedAt)

	// Burned coupons never come back as available.
	assert.Empty(t, s.ListAvailable(context.Background(), 7))
}

func TestRedeemTxRejectsForeignOrMissingCoupons(t *testing.T) {
	s := testDBService(t)

	c := Coupon{Code: "KIMEZU-FFFFF-20", DiscountPercentage: 20, UserID: 7}
	require.NoError(t, s.db.Create(&c).Error)

	assert.ErrorIs(t, s.RedeemTx(s.db, c.ID, 9), ErrNotRedeemable, "someone else's coupon")
	assert.ErrorIs(t, s.RedeemTx(s.db, 9999, 7), ErrNotRedeemable, "unknown coupon")

	var unchanged Coupon
	require.NoError(t, s.db.First(&unchanged, c.ID).Error)
	assert.False(t, unchanged.IsUsed)
}

func TestRedeemable(t *testing.T) {
	c := Coupon{UserID: 7, IsUsed: false}
	assert.True(t, c.Redeemable(7))
	assert.False(t, c.Redeemable(8), "someone else's coupon")

	c.IsUsed = true
	assert.False(t, c.Redeemable(7), "burned coupon stays burned")
}
