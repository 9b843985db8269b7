// internal/interfaces/http/handlers/product.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kimezu-studio/storefront-backend/internal/config"
	"github.com/kimezu-studio/storefront-backend/internal/domain/product"
)

// ProductHandler handles catalog endpoints
type ProductHandler struct {
	productService *product.Service
	config         *config.Config
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *product.Service, cfg *config.Config) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		config:         cfg,
	}
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	var filter product.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	products, err := h.productService.List(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": products})
}

// Get handles GET /products/:id, accepting a numeric id or a slug
func (h *ProductHandler) Get(c *gin.Context) {
	param := c.Param("id")

	var (
		prod *product.Product
		err  error
	)
	if id, convErr := strconv.ParseUint(param, 10, 32); convErr == nil {
		prod, err = h.productService.Get(uint(id))
	} else {
		prod, err = h.productService.GetBySlug(param)
	}
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": prod})
}

// ListPacks handles GET /packs
func (h *ProductHandler) ListPacks(c *gin.Context) {
	packs, err := h.productService.ListPacks()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list packs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": packs})
}

// Create handles POST /admin/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req product.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	prod, err := h.productService.Create(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"data":    prod,
	})
}

// Update handles PUT /admin/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	var req product.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	prod, err := h.productService.Update(uint(id), &req)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"data":    prod,
	})
}

// Delete handles DELETE /admin/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	if err := h.productService.Delete(uint(id)); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// CreatePack handles POST /admin/packs
func (h *ProductHandler) CreatePack(c *gin.Context) {
	var pack product.Pack
	if err := c.ShouldBindJSON(&pack); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	if err := h.productService.CreatePack(&pack); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create pack"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Pack created successfully",
		"data":    pack,
	})
}

// UpdatePack handles PUT /admin/packs/:id
func (h *ProductHandler) UpdatePack(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pack id"})
		return
	}

	var pack product.Pack
	if err := c.ShouldBindJSON(&pack); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}
	pack.ID = uint(id)

	if err := h.productService.UpdatePack(&pack); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update pack"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Pack updated successfully",
		"data":    pack,
	})
}

// DeletePack handles DELETE /admin/packs/:id
func (h *ProductHandler) DeletePack(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pack id"})
		return
	}

	if err := h.productService.DeletePack(uint(id)); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pack not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete pack"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pack deleted successfully"})
}
