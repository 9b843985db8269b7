// internal/interfaces/http/handlers/upload.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kimezu-studio/storefront-backend/internal/config"
	"github.com/kimezu-studio/storefront-backend/internal/domain/product"
	"github.com/kimezu-studio/storefront-backend/internal/domain/upload"
)

// UploadHandler handles admin media uploads
type UploadHandler struct {
	uploadService  *upload.Service
	productService *product.Service
	config         *config.Config
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService *upload.Service, productService *product.Service, cfg *config.Config) *UploadHandler {
	return &UploadHandler{
		uploadService:  uploadService,
		productService: productService,
		config:         cfg,
	}
}

// ProductImage handles POST /admin/uploads/product-image
func (h *UploadHandler) ProductImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}

	stored, err := h.uploadService.Store(c.Request.Context(), upload.KindProductImage, file)
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrFileTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
		case errors.Is(err, upload.ErrInvalidExtension):
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "File type not allowed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		}
		return
	}

	// Attach the image to a product when the form names one
	if raw := c.PostForm("product_id"); raw != "" {
		productID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}
		img, err := h.productService.AddImage(uint(productID), stored.URL, c.PostForm("alt_text"))
		if err != nil {
			if errors.Is(err, product.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach image to product"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "Image uploaded successfully",
			"data":    gin.H{"upload": stored, "image": img},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Image uploaded successfully",
		"data":    stored,
	})
}

// RemoveObject handles DELETE /admin/uploads
func (h *UploadHandler) RemoveObject(c *gin.Context) {
	objectKey := c.Query("object_key")
	if objectKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "object_key is required"})
		return
	}

	if err := h.uploadService.Remove(c.Request.Context(), objectKey); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove object"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Object removed successfully"})
}
