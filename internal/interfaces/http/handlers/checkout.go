// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kimezu-studio/storefront-backend/internal/config"
	"github.com/kimezu-studio/storefront-backend/internal/domain/bundle"
	"github.com/kimezu-studio/storefront-backend/internal/domain/cart"
	"github.com/kimezu-studio/storefront-backend/internal/domain/checkout"
	"github.com/kimezu-studio/storefront-backend/internal/domain/coupon"
	"github.com/kimezu-studio/storefront-backend/internal/interfaces/http/middleware"
)

// CheckoutHandler handles checkout total previews
type CheckoutHandler struct {
	cartService     *cart.Service
	bundleService   *bundle.Service
	couponService   *coupon.Service
	checkoutService *checkout.Service
	config          *config.Config
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(cartService *cart.Service, bundleService *bundle.Service, couponService *coupon.Service, checkoutService *checkout.Service, cfg *config.Config) *CheckoutHandler {
	return &CheckoutHandler{
		cartService:     cartService,
		bundleService:   bundleService,
		couponService:   couponService,
		checkoutService: checkoutService,
		config:          cfg,
	}
}

// Quote handles POST /checkout/quote: an itemized total for the current
// cart and combo selection, before anything is placed.
func (h *CheckoutHandler) Quote(c *gin.Context) {
	var req struct {
		ShippingMethod string `json:"shipping_method" binding:"required,oneof=nacional recogida"`
		CouponCode     string `json:"coupon_code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	sessionID := middleware.GetSessionIDFromContext(c)
	id := cart.Identity{UserID: userID, SessionID: sessionID}

	_, totals, err := h.cartService.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cart"})
		return
	}
	subtotal := totals.CartTotal

	var bundleDiscount int64
	comboSel, err := h.bundleService.Get(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve combo selection"})
		return
	}
	subtotal += comboSel.Quote.Subtotal
	bundleDiscount = comboSel.Quote.DiscountAmount

	couponPct := 0
	if req.CouponCode != "" {
		validated, err := h.couponService.ValidateForCheckout(c.Request.Context(), req.CouponCode, userID)
		if err != nil {
			if errors.Is(err, coupon.ErrNotRedeemable) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Coupon is not valid for this account"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate coupon"})
			return
		}
		couponPct = validated.DiscountPercentage
	}

	breakdown := h.checkoutService.Quote(subtotal, req.ShippingMethod, bundleDiscount, couponPct)
	c.JSON(http.StatusOK, gin.H{"data": breakdown})
}
