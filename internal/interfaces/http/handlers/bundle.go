// internal/interfaces/http/handlers/bundle.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kimezu-studio/storefront-backend/internal/config"
	"github.com/kimezu-studio/storefront-backend/internal/domain/bundle"
	"github.com/kimezu-studio/storefront-backend/internal/interfaces/http/middleware"
)

// BundleHandler handles combo selection endpoints
type BundleHandler struct {
	bundleService *bundle.Service
	config        *config.Config
}

// NewBundleHandler creates a new bundle handler
func NewBundleHandler(bundleService *bundle.Service, cfg *config.Config) *BundleHandler {
	return &BundleHandler{
		bundleService: bundleService,
		config:        cfg,
	}
}

// Get handles GET /bundle
func (h *BundleHandler) Get(c *gin.Context) {
	sessionID := middleware.GetSessionIDFromContext(c)

	resp, err := h.bundleService.Get(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve combo selection"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// AddItem handles POST /bundle/items
func (h *BundleHandler) AddItem(c *gin.Context) {
	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	sessionID := middleware.GetSessionIDFromContext(c)
	resp, err := h.bundleService.AddItem(c.Request.Context(), sessionID, req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to combo",
		"data":    resp,
	})
}

// RemoveItem handles DELETE /bundle/items/:index
func (h *BundleHandler) RemoveItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item index"})
		return
	}

	sessionID := middleware.GetSessionIDFromContext(c)
	resp, err := h.bundleService.RemoveItem(c.Request.Context(), sessionID, index)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from combo",
		"data":    resp,
	})
}

// Clear handles DELETE /bundle
func (h *BundleHandler) Clear(c *gin.Context) {
	sessionID := middleware.GetSessionIDFromContext(c)
	if err := h.bundleService.Clear(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear combo selection"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Combo selection cleared"})
}
