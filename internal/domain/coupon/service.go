// internal/domain/coupon/service.go
package coupon

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/kimezu-studio/storefront-backend/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrClaimFailed signals that the coupon row could not be persisted. The
// claim left no trace and can simply be retried by the shopper.
var ErrClaimFailed = errors.New("coupon claim could not be saved")

// ErrNotRedeemable signals a coupon that does not exist, belongs to
// someone else, or was already burned.
var ErrNotRedeemable = errors.New("coupon is not redeemable")

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
const codeFragmentLen = 5

// Service handles the gift-coupon lifecycle
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
	logger      *logrus.Logger
}

// NewService creates a new coupon service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
		logger:      logger,
	}
}

// Claim rolls a random discount for the user and persists it as a fresh
// coupon. The order number keys a client-visible "already claimed" marker
// so the gift bag is only offered once per purchase; the persisted row is
// the source of truth, the marker is UX only. If the insert fails nothing
// is marked and the claim can be retried.
func (s *Service) Claim(ctx context.Context, userID uint, orderNumber string) (*Coupon, error) {
	pct, err := s.rollPercentage()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClaimFailed, err)
	}

	code, err := s.generateCode(pct)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClaimFailed, err)
	}

	c := Coupon{
		Code:               code,
		DiscountPercentage: pct,
		UserID:             userID,
		IsUsed:             false,
	}

	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		// Uniqueness violation or connectivity failure. Surface a distinct,
		// retryable error and leave the claim marker unset.
		return nil, fmt.Errorf("%w: %v", ErrClaimFailed, err)
	}

	// Marker only after the row is safely persisted.
	if err := s.redisClient.Set(ctx, s.claimKey(orderNumber), "1", 0).Err(); err != nil {
		s.logger.WithError(err).WithField("order_number", orderNumber).
			Warn("coupon claimed but claim marker not set")
	}

	return &c, nil
}

// AlreadyClaimed reports whether a gift has been claimed for this order.
// Errors degrade to false: the worst case is re-offering the gift bag,
// and the unique code constraint still protects the data.
func (s *Service) AlreadyClaimed(ctx context.Context, orderNumber string) bool {
	exists, err := s.redisClient.Exists(ctx, s.claimKey(orderNumber)).Result()
	if err != nil {
		return false
	}
	return exists > 0
}

// ListAvailable returns the user's unredeemed coupons, newest first.
// Coupons are a non-critical enhancement, so store failures degrade to an
// empty list with a logged warning rather than an error.
func (s *Service) ListAvailable(ctx context.Context, userID uint) []Coupon {
	var coupons []Coupon
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_used = ?", userID, false).
		Order("created_at DESC").
		Find(&coupons).Error
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).
			Warn("failed to list available coupons, returning empty list")
		return []Coupon{}
	}
	return coupons
}

// ValidateForCheckout looks up a redeemable coupon by code for the user.
// Selecting a coupon for checkout mutates nothing.
func (s *Service) ValidateForCheckout(ctx context.Context, code string, userID uint) (*Coupon, error) {
	var c Coupon
	err := s.db.WithContext(ctx).Where("code = ?", code).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotRedeemable
		}
		return nil, fmt.Errorf("failed to look up coupon: %w", err)
	}

	if !c.Redeemable(userID) {
		return nil, ErrNotRedeemable
	}
	return &c, nil
}

// RedeemTx burns the coupon inside the caller's transaction so the order
// insert and the coupon update commit or roll back together. Idempotent in
// effect: a second call on an already-used coupon changes nothing and
// returns no error. Intended to run after order placement is confirmed,
// never before.
func (s *Service) RedeemTx(tx *gorm.DB, couponID, userID uint) error {
	now := time.Now().UTC()
	result := tx.Model(&Coupon{}).
		Where("id = ? AND user_id = ? AND is_used = ?", couponID, userID, false).
		Updates(map[string]interface{}{"is_used": true, "redeemed_at": now})
	if result.Error != nil {
		return fmt.Errorf("failed to redeem coupon: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		// Either already burned (fine, idempotent) or not this user's coupon.
		var c Coupon
		if err := tx.Where("id = ?", couponID).First(&c).Error; err != nil {
			return ErrNotRedeemable
		}
		if c.UserID != userID {
			return ErrNotRedeemable
		}
	}
	return nil
}

func (s *Service) claimKey(orderNumber string) string {
	return fmt.Sprintf("gift_claimed:%s", orderNumber)
}

// rollPercentage draws uniformly from the configured inclusive range.
func (s *Service) rollPercentage() (int, error) {
	span := int64(s.config.Coupon.MaxPercentage - s.config.Coupon.MinPercentage + 1)
	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return 0, err
	}
	return s.config.Coupon.MinPercentage + int(n.Int64()), nil
}

// generateCode builds a human-readable code embedding the brand, a random
// fragment and the discount value, e.g. KIMEZU-X7K2P-15.
func (s *Service) generateCode(pct int) (string, error) {
	fragment := make([]byte, codeFragmentLen)
	for i := range fragment {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", err
		}
		fragment[i] = codeAlphabet[n.Int64()]
	}
	return fmt.Sprintf("%s-%s-%d", s.config.Coupon.CodePrefix, fragment, pct), nil
}
