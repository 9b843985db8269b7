// internal/pkg/email/service.go
package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/kimezu-studio/storefront-backend/internal/config"
	"github.com/kimezu-studio/storefront-backend/internal/pkg/currency"
)

// Service handles all email operations
type Service struct {
	config   *config.Config
	client   *http.Client
	orderTpl *template.Template
}

// NewService creates a new email service
func NewService(cfg *config.Config) (*Service, error) {
	tpl, err := template.New("new_order").Funcs(template.FuncMap{
		"cop": currency.Format,
	}).Parse(newOrderTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse order email template: %w", err)
	}

	return &Service{
		config:   cfg,
		orderTpl: tpl,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Send delivers an email using the configured provider
func (s *Service) Send(ctx context.Context, email *Email) error {
	switch s.config.External.Email.Provider {
	case "resend":
		return s.sendResend(ctx, email)
	case "smtp":
		return s.sendSMTP(email)
	default:
		return fmt.Errorf("unsupported email provider: %s", s.config.External.Email.Provider)
	}
}

// SendNewOrder notifies the store inbox that an order came in. The customer
// email goes on Reply-To so the shop can answer directly from the inbox.
func (s *Service) SendNewOrder(ctx context.Context, data NewOrder) error {
	var body bytes.Buffer
	if err := s.orderTpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render order email: %w", err)
	}

	return s.Send(ctx, &Email{
		To:          []string{s.config.External.Email.OrderInbox},
		Subject:     fmt.Sprintf("Nuevo pedido %s — %s", data.OrderNumber, data.CustomerName),
		HTMLContent: body.String(),
		ReplyTo:     data.Email,
	})
}

const newOrderTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Nuevo pedido {{.OrderNumber}}</h2>

  <h3>Cliente</h3>
  <p>
    {{.CustomerName}}<br>
    {{.Email}}{{if .Phone}}<br>{{.Phone}}{{end}}
    {{if .Address}}<br>{{.Address}}, {{.City}}{{if .Department}} ({{.Department}}){{end}}{{end}}
  </p>
  {{if .Notes}}<p><strong>Notas:</strong> {{.Notes}}</p>{{end}}

  <h3>Productos</h3>
  <table border="0" cellpadding="6" cellspacing="0" style="border-collapse: collapse;">
    <tr style="border-bottom: 1px solid #ccc;">
      <th align="left">Producto</th><th align="right">Cant.</th><th align="right">Precio</th>
    </tr>
    {{range .Items}}
    <tr>
      <td>{{.Name}}</td>
      <td align="right">{{.Quantity}}</td>
      <td align="right">{{cop .Price}}</td>
    </tr>
    {{end}}
  </table>

  <h3>Totales</h3>
  <p>
    Subtotal: {{cop .Subtotal}}<br>
    Envío ({{.ShippingMethod}}): {{cop .ShippingCost}}<br>
    {{if .BundleDiscount}}Descuento combo: -{{cop .BundleDiscount}}<br>{{end}}
    {{if .CouponCode}}Cupón {{.CouponCode}}: -{{cop .CouponDiscount}}<br>{{end}}
    <strong>Total: {{cop .Total}}</strong>
  </p>

  <h3>Pago</h3>
  <p>
    Método: {{.PaymentMethod}}<br>
    {{if .PaymentProofURL}}<a href="{{.PaymentProofURL}}">Ver comprobante de pago</a>{{else}}Sin comprobante adjunto{{end}}
  </p>
</body>
</html>`
