// internal/pkg/email/types.go
package email

// Email represents a rendered message ready to hand to a provider
type Email struct {
	To          []string `json:"to"`
	Subject     string   `json:"subject"`
	HTMLContent string   `json:"html_content"`
	ReplyTo     string   `json:"reply_to,omitempty"`
}

// NewOrderItem is one purchased line in the notification
type NewOrderItem struct {
	Name     string
	Price    int64
	Quantity int
}

// NewOrder carries everything the store inbox needs to prepare an order
type NewOrder struct {
	OrderNumber     string
	CustomerName    string
	Email           string
	Phone           string
	Address         string
	City            string
	Department      string
	Notes           string
	ShippingMethod  string
	PaymentMethod   string
	PaymentProofURL string
	Items           []NewOrderItem
	Subtotal        int64
	ShippingCost    int64
	BundleDiscount  int64
	CouponCode      string
	CouponDiscount  int64
	Total           int64
}
