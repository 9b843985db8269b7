// internal/interfaces/http/handlers/coupon.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kimezu-studio/storefront-backend/internal/config"
	"github.com/kimezu-studio/storefront-backend/internal/domain/coupon"
	"github.com/kimezu-studio/storefront-backend/internal/interfaces/http/middleware"
)

// CouponHandler handles gift coupon endpoints
type CouponHandler struct {
	couponService *coupon.Service
	config        *config.Config
}

// NewCouponHandler creates a new coupon handler
func NewCouponHandler(couponService *coupon.Service, cfg *config.Config) *CouponHandler {
	return &CouponHandler{
		couponService: couponService,
		config:        cfg,
	}
}

// Claim handles POST /coupons/claim. The post-purchase gift bag calls this
// once per order; the illustrated claim state comes from ClaimStatus.
func (h *CouponHandler) Claim(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req struct {
		OrderNumber string `json:"order_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	if h.couponService.AlreadyClaimed(c.Request.Context(), req.OrderNumber) {
		c.JSON(http.StatusConflict, gin.H{"error": "Gift already claimed for this order"})
		return
	}

	claimed, err := h.couponService.Claim(c.Request.Context(), userID, req.OrderNumber)
	if err != nil {
		if errors.Is(err, coupon.ErrClaimFailed) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not claim gift right now, please try again"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to claim gift"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Gift claimed successfully",
		"data":    claimed,
	})
}

// ClaimStatus handles GET /coupons/claimed/:orderNumber
func (h *CouponHandler) ClaimStatus(c *gin.Context) {
	orderNumber := c.Param("orderNumber")

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"order_number": orderNumber,
			"claimed":      h.couponService.AlreadyClaimed(c.Request.Context(), orderNumber),
		},
	})
}

// List handles GET /coupons
func (h *CouponHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	coupons := h.couponService.ListAvailable(c.Request.Context(), userID)
	c.JSON(http.StatusOK, gin.H{"data": coupons})
}

// Validate handles POST /coupons/validate. Checkout uses it to preview a
// coupon's discount; nothing is redeemed here.
func (h *CouponHandler) Validate(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	validated, err := h.couponService.ValidateForCheckout(c.Request.Context(), req.Code, userID)
	if err != nil {
		if errors.Is(err, coupon.ErrNotRedeemable) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Coupon is not valid for this account"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate coupon"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": validated})
}
