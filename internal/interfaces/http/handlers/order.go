// internal/interfaces/http/handlers/order.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kimezu-studio/storefront-backend/internal/config"
	"github.com/kimezu-studio/storefront-backend/internal/domain/cart"
	"github.com/kimezu-studio/storefront-backend/internal/domain/coupon"
	"github.com/kimezu-studio/storefront-backend/internal/domain/order"
	"github.com/kimezu-studio/storefront-backend/internal/domain/upload"
	"github.com/kimezu-studio/storefront-backend/internal/interfaces/http/middleware"
	"github.com/kimezu-studio/storefront-backend/internal/pkg/pdf"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	orderService  *order.Service
	uploadService *upload.Service
	pdfService    *pdf.Service
	config        *config.Config
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *order.Service, uploadService *upload.Service, pdfService *pdf.Service, cfg *config.Config) *OrderHandler {
	return &OrderHandler{
		orderService:  orderService,
		uploadService: uploadService,
		pdfService:    pdfService,
		config:        cfg,
	}
}

// Place handles POST /orders
func (h *OrderHandler) Place(c *gin.Context) {
	var req order.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	id := cart.Identity{
		UserID:    userID,
		SessionID: middleware.GetSessionIDFromContext(c),
	}

	placed, err := h.orderService.PlaceOrder(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrEmptyOrder):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Cart is empty"})
		case errors.Is(err, order.ErrInvalidPayment):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment method"})
		case errors.Is(err, coupon.ErrNotRedeemable):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Coupon is not valid for this account"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    placed,
	})
}

// Get handles GET /orders/:orderNumber
func (h *OrderHandler) Get(c *gin.Context) {
	o, ok := h.loadAuthorized(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": o})
}

// List handles GET /orders
func (h *OrderHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	orders, err := h.orderService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": orders})
}

// UploadProof handles POST /orders/:orderNumber/proof: the transfer
// receipt image that backs manual payment verification.
func (h *OrderHandler) UploadProof(c *gin.Context) {
	o, ok := h.loadAuthorized(c)
	if !ok {
		return
	}

	file, err := c.FormFile("proof")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Proof image is required"})
		return
	}

	stored, err := h.uploadService.Store(c.Request.Context(), upload.KindPaymentProof, file)
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrFileTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
		case errors.Is(err, upload.ErrInvalidExtension):
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "File type not allowed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store proof"})
		}
		return
	}

	updated, err := h.orderService.AttachPaymentProof(c.Request.Context(), o.OrderNumber, stored.URL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach proof to order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment proof uploaded successfully",
		"data":    updated,
	})
}

// Invoice handles GET /orders/:orderNumber/invoice
func (h *OrderHandler) Invoice(c *gin.Context) {
	o, ok := h.loadAuthorized(c)
	if !ok {
		return
	}

	buf, err := h.pdfService.GenerateInvoice(o)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate invoice"})
		return
	}

	filename := fmt.Sprintf("invoice-%s.pdf", o.OrderNumber)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// AdminList handles GET /admin/orders
func (h *OrderHandler) AdminList(c *gin.Context) {
	var filter order.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), &filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"orders": orders,
			"total":  total,
		},
	})
}

// AdminUpdateStatus handles PUT /admin/orders/:orderNumber/status
func (h *OrderHandler) AdminUpdateStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	updated, err := h.orderService.UpdateStatus(c.Request.Context(), c.Param("orderNumber"), req.Status)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, order.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
		"data":    updated,
	})
}

// loadAuthorized fetches the order in the path and checks the caller may
// see it: the owning user, an admin, or a guest holding the order number.
func (h *OrderHandler) loadAuthorized(c *gin.Context) (*order.Order, bool) {
	o, err := h.orderService.GetByNumber(c.Request.Context(), c.Param("orderNumber"))
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get order"})
		return nil, false
	}

	if o.UserID != 0 {
		userID, _ := middleware.GetUserIDFromContext(c)
		isAdmin := c.GetBool("is_admin")
		if userID != o.UserID && !isAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not your order"})
			return nil, false
		}
	}
	return o, true
}
