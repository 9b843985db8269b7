// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kimezu-studio/storefront-backend/internal/config"
	"github.com/kimezu-studio/storefront-backend/internal/domain/cart"
	"github.com/kimezu-studio/storefront-backend/internal/interfaces/http/middleware"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService *cart.Service
	config      *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service, cfg *config.Config) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		config:      cfg,
	}
}

func (h *CartHandler) identity(c *gin.Context) cart.Identity {
	userID, _ := middleware.GetUserIDFromContext(c)
	return cart.Identity{
		UserID:    userID,
		SessionID: middleware.GetSessionIDFromContext(c),
	}
}

func cartPayload(workingCart *cart.WorkingCart, totals cart.Totals) gin.H {
	return gin.H{
		"items":      workingCart.Lines,
		"is_open":    workingCart.IsOpen,
		"cart_count": totals.CartCount,
		"cart_total": totals.CartTotal,
	}
}

// Get handles GET /cart
func (h *CartHandler) Get(c *gin.Context) {
	workingCart, totals, err := h.cartService.Get(c.Request.Context(), h.identity(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": cartPayload(workingCart, totals)})
}

// Add handles POST /cart/items
func (h *CartHandler) Add(c *gin.Context) {
	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	workingCart, totals, err := h.cartService.Add(c.Request.Context(), h.identity(c), req.ProductID)
	if err != nil {
		if errors.Is(err, cart.ErrProductUnavailable) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not available"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    cartPayload(workingCart, totals),
	})
}

// UpdateQuantity handles PATCH /cart/items/:productId. The delta is
// applied with a floor of one, so a line never disappears this way.
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	var req struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	workingCart, totals, err := h.cartService.UpdateQuantity(c.Request.Context(), h.identity(c), uint(productID), req.Delta)
	if err != nil {
		if errors.Is(err, cart.ErrLineNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not in cart"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": cartPayload(workingCart, totals)})
}

// Remove handles DELETE /cart/items/:productId
func (h *CartHandler) Remove(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	workingCart, totals, err := h.cartService.Remove(c.Request.Context(), h.identity(c), uint(productID))
	if err != nil {
		if errors.Is(err, cart.ErrLineNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not in cart"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed successfully",
		"data":    cartPayload(workingCart, totals),
	})
}

// Clear handles DELETE /cart
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cartService.Clear(c.Request.Context(), h.identity(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared successfully"})
}

// SetVisibility handles PUT /cart/visibility
func (h *CartHandler) SetVisibility(c *gin.Context) {
	var req struct {
		IsOpen *bool `json:"is_open" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	if err := h.cartService.SetOpen(c.Request.Context(), h.identity(c), *req.IsOpen); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart visibility"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart visibility updated"})
}
