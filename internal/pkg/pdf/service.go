// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"

	"github.com/kimezu-studio/storefront-backend/internal/config"
	"github.com/kimezu-studio/storefront-backend/internal/domain/order"
	"github.com/kimezu-studio/storefront-backend/internal/pkg/currency"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{config: cfg}
}

// InvoiceData feeds the invoice template
type InvoiceData struct {
	InvoiceNumber string
	InvoiceDate   string
	BrandName     string
	Order         *order.Order
}

// GenerateInvoice renders a PDF invoice for an order
func (s *Service) GenerateInvoice(o *order.Order) (*bytes.Buffer, error) {
	data := InvoiceData{
		InvoiceNumber: fmt.Sprintf("INV-%s", o.OrderNumber),
		InvoiceDate:   o.CreatedAt.Format("2006-01-02"),
		BrandName:     s.config.App.BrandName,
		Order:         o,
	}
	if o.CreatedAt.IsZero() {
		data.InvoiceDate = time.Now().Format("2006-01-02")
	}

	htmlContent, err := s.renderHTML(data)
	if err != nil {
		return nil, err
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}
	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}
	return bytes.NewBuffer(pdfg.Bytes()), nil
}

func (s *Service) renderHTML(data InvoiceData) (string, error) {
	tmpl := template.Must(template.New("invoice").Funcs(template.FuncMap{
		"cop": currency.Format,
	}).Parse(invoiceTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render invoice template: %w", err)
	}
	return buf.String(), nil
}

const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Arial, sans-serif; color: #222; margin: 40px; }
  h1 { letter-spacing: 2px; }
  table { width: 100%; border-collapse: collapse; margin-top: 20px; }
  th, td { padding: 8px; border-bottom: 1px solid #ddd; text-align: left; }
  th:last-child, td:last-child { text-align: right; }
  .totals td { border: none; padding: 4px 8px; }
  .grand { font-weight: bold; font-size: 1.1em; }
</style>
</head>
<body>
  <h1>{{.BrandName}}</h1>
  <p>
    Factura {{.InvoiceNumber}}<br>
    Fecha: {{.InvoiceDate}}<br>
    Pedido: {{.Order.OrderNumber}}
  </p>

  <p>
    <strong>{{.Order.CustomerName}}</strong><br>
    {{.Order.Email}}{{if .Order.Phone}}<br>{{.Order.Phone}}{{end}}
    {{if .Order.Address}}<br>{{.Order.Address}}, {{.Order.City}}{{end}}
  </p>

  <table>
    <tr><th>Producto</th><th>Cantidad</th><th>Precio</th></tr>
    {{range .Order.Items}}
    <tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{cop .Price}}</td></tr>
    {{end}}
  </table>

  <table class="totals">
    <tr><td>Subtotal</td><td>{{cop .Order.Subtotal}}</td></tr>
    <tr><td>Envío</td><td>{{cop .Order.ShippingCost}}</td></tr>
    {{if .Order.BundleDiscount}}<tr><td>Descuento combo</td><td>-{{cop .Order.BundleDiscount}}</td></tr>{{end}}
    {{if .Order.CouponDiscount}}<tr><td>Cupón {{.Order.CouponCode}}</td><td>-{{cop .Order.CouponDiscount}}</td></tr>{{end}}
    <tr class="grand"><td>Total</td><td>{{cop .Order.Total}}</td></tr>
  </table>
</body>
</html>`
