// internal/pkg/email/service_test.go
package email

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimezu-studio/storefront-backend/internal/config"
)

func TestNewOrderTemplateRenders(t *testing.T) {
	cfg := &config.Config{}
	svc, err := NewService(cfg)
	require.NoError(t, err)

	data := NewOrder{
		OrderNumber:     "KMZ-A1B2C3D4E5",
		CustomerName:    "Laura Gómez",
		Email:           "laura@example.com",
		Phone:           "3001234567",
		Address:         "Cra 7 # 12-34",
		City:            "Bogotá",
		Department:      "Cundinamarca",
		ShippingMethod:  "nacional",
		PaymentMethod:   "nequi",
		PaymentProofURL: "https://cdn.example.com/proofs/abc.jpg",
		Items: []NewOrderItem{
			{Name: "Vela Lavanda", Price: 85000, Quantity: 2},
			{Name: "Vela Vainilla", Price: 45000, Quantity: 1},
		},
		Subtotal:       215000,
		ShippingCost:   12000,
		CouponCode:     "KIMEZU-X9K2P-10",
		CouponDiscount: 21500,
		Total:          205500,
	}

	var body bytes.Buffer
	require.NoError(t, svc.orderTpl.Execute(&body, data))

	html := body.String()
	assert.Contains(t, html, "KMZ-A1B2C3D4E5")
	assert.Contains(t, html, "Laura Gómez")
	assert.Contains(t, html, "Vela Lavanda")
	assert.Contains(t, html, "$85.000")
	assert.Contains(t, html, "$205.500")
	assert.Contains(t, html, "KIMEZU-X9K2P-10")
	assert.Contains(t, html, "https://cdn.example.com/proofs/abc.jpg")
}

func TestNewOrderTemplateOmitsEmptySections(t *testing.T) {
	cfg := &config.Config{}
	svc, err := NewService(cfg)
	require.NoError(t, err)

	data := NewOrder{
		OrderNumber:    "KMZ-0000000000",
		CustomerName:   "Cliente",
		Email:          "cliente@example.com",
		ShippingMethod: "recogida",
		PaymentMethod:  "card",
		Subtotal:       60000,
		Total:          60000,
	}

	var body bytes.Buffer
	require.NoError(t, svc.orderTpl.Execute(&body, data))

	html := body.String()
	assert.NotContains(t, html, "Cupón")
	assert.NotContains(t, html, "Descuento combo")
	assert.Contains(t, html, "Sin comprobante adjunto")
}

func TestSendUnknownProvider(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.Email.Provider = "pigeon"
	svc, err := NewService(cfg)
	require.NoError(t, err)

	err = svc.Send(context.Background(), &Email{To: []string{"a@b.co"}})
	assert.ErrorContains(t, err, "unsupported email provider")
}
