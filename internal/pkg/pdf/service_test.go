// internal/pkg/pdf/service_test.go
package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimezu-studio/storefront-backend/internal/config"
	"github.com/kimezu-studio/storefront-backend/internal/domain/order"
)

func TestRenderInvoiceHTML(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.BrandName = "KIMEZU"
	s := NewService(cfg)

	o := &order.Order{
		OrderNumber:    "KMZ-A1B2C3D4E5",
		CustomerName:   "Laura Gómez",
		Email:          "laura@example.com",
		Subtotal:       215000,
		ShippingCost:   12000,
		CouponCode:     "KIMEZU-X9K2P-10",
		CouponDiscount: 21500,
		Total:          205500,
		CreatedAt:      time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
		Items: []order.OrderItem{
			{Name: "Vela Lavanda", Price: 85000, Quantity: 2},
		},
	}

	html, err := s.renderHTML(InvoiceData{
		InvoiceNumber: "INV-KMZ-A1B2C3D4E5",
		InvoiceDate:   o.CreatedAt.Format("2006-01-02"),
		BrandName:     cfg.App.BrandName,
		Order:         o,
	})
	require.NoError(t, err)

	assert.Contains(t, html, "KIMEZU")
	assert.Contains(t, html, "INV-KMZ-A1B2C3D4E5")
	assert.Contains(t, html, "2025-03-14")
	assert.Contains(t, html, "Vela Lavanda")
	assert.Contains(t, html, "$85.000")
	assert.Contains(t, html, "$205.500")
}
