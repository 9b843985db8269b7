// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/kimezu-studio/storefront-backend/internal/config"
	"github.com/kimezu-studio/storefront-backend/internal/domain/bundle"
	"github.com/kimezu-studio/storefront-backend/internal/domain/cart"
	"github.com/kimezu-studio/storefront-backend/internal/domain/checkout"
	"github.com/kimezu-studio/storefront-backend/internal/domain/coupon"
	"github.com/kimezu-studio/storefront-backend/internal/pkg/email"
)

var (
	// ErrEmptyOrder is returned when neither the cart nor the combo
	// selection has anything to buy
	ErrEmptyOrder = errors.New("order has no items")
	// ErrInvalidPayment is returned for an unknown payment method
	ErrInvalidPayment = errors.New("invalid payment method")
	// ErrOrderNotFound is returned when an order doesn't exist
	ErrOrderNotFound = errors.New("order not found")
	// ErrInvalidStatus is returned for an unknown order status
	ErrInvalidStatus = errors.New("invalid order status")
)

// Mailer sends the new-order notification to the store inbox
type Mailer interface {
	SendNewOrder(ctx context.Context, data email.NewOrder) error
}

// Service handles order placement and management
type Service struct {
	db       *gorm.DB
	config   *config.Config
	logger   *logrus.Logger
	carts    *cart.Service
	bundles  *bundle.Service
	coupons  *coupon.Service
	checkout *checkout.Service
	mailer   Mailer
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config, logger *logrus.Logger, carts *cart.Service, bundles *bundle.Service, coupons *coupon.Service, checkoutSvc *checkout.Service, mailer Mailer) *Service {
	return &Service{
		db:       db,
		config:   cfg,
		logger:   logger,
		carts:    carts,
		bundles:  bundles,
		coupons:  coupons,
		checkout: checkoutSvc,
		mailer:   mailer,
	}
}

// PlaceOrderRequest carries the checkout form
type PlaceOrderRequest struct {
	CustomerName   string `json:"customer_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone" binding:"required"`
	Address        string `json:"address"`
	City           string `json:"city"`
	Department     string `json:"department"`
	Notes          string `json:"notes"`
	ShippingMethod string `json:"shipping_method" binding:"required,oneof=nacional recogida"`
	PaymentMethod  string `json:"payment_method" binding:"required"`
	CouponCode     string `json:"coupon_code"`
}

// PlaceOrder turns the shopper's cart and combo selection into a durable
// order. The order rows and the coupon redemption commit in one database
// transaction, so a coupon is only ever burned alongside the order it paid
// for. The cart and combo selection are cleared after commit, and the store
// inbox is notified in the background.
func (s *Service) PlaceOrder(ctx context.Context, id cart.Identity, req *PlaceOrderRequest) (*Order, error) {
	if !ValidPaymentMethod(req.PaymentMethod) {
		return nil, ErrInvalidPayment
	}

	workingCart, totals, err := s.carts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	items := make([]OrderItem, 0, len(workingCart.Lines))
	for _, line := range workingCart.Lines {
		items = append(items, OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}
	subtotal := totals.CartTotal

	// A combo selection rides along at full item prices, its discount
	// reported as a separate checkout line
	var bundleDiscount int64
	var comboSel *bundle.SelectionResponse
	if id.SessionID != "" {
		comboSel, err = s.bundles.Get(ctx, id.SessionID)
		if err != nil {
			return nil, err
		}
		for _, item := range comboSel.Selection.Items {
			items = append(items, OrderItem{
				ProductID: item.ProductID,
				Name:      item.Name,
				Price:     item.Price,
				Quantity:  1,
			})
		}
		subtotal += comboSel.Quote.Subtotal
		bundleDiscount = comboSel.Quote.DiscountAmount
	}

	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	var appliedCoupon *coupon.Coupon
	couponPct := 0
	if req.CouponCode != "" {
		appliedCoupon, err = s.coupons.ValidateForCheckout(ctx, req.CouponCode, id.UserID)
		if err != nil {
			return nil, err
		}
		couponPct = appliedCoupon.DiscountPercentage
	}

	breakdown := s.checkout.Quote(subtotal, req.ShippingMethod, bundleDiscount, couponPct)

	o := &Order{
		OrderNumber:    generateOrderNumber(),
		UserID:         id.UserID,
		CustomerName:   req.CustomerName,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		City:           req.City,
		Department:     req.Department,
		Notes:          req.Notes,
		ShippingMethod: req.ShippingMethod,
		Subtotal:       breakdown.Subtotal,
		ShippingCost:   breakdown.Shipping,
		BundleDiscount: breakdown.BundleDiscount,
		CouponCode:     req.CouponCode,
		CouponDiscount: breakdown.CouponDiscount,
		Total:          breakdown.Total,
		PaymentMethod:  req.PaymentMethod,
		Status:         StatusPending,
		Items:          items,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(o).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		if appliedCoupon != nil {
			if err := s.coupons.RedeemTx(tx, appliedCoupon.ID, id.UserID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Post-commit cleanup is best effort; the order is already durable
	if err := s.carts.Clear(ctx, id); err != nil {
		s.logger.WithField("error", err.Error()).Warn("Failed to clear cart after order")
	}
	if comboSel != nil && len(comboSel.Selection.Items) > 0 {
		if err := s.bundles.Clear(ctx, id.SessionID); err != nil {
			s.logger.WithField("error", err.Error()).Warn("Failed to clear combo selection after order")
		}
	}

	go s.notify(o)

	return o, nil
}

// notify sends the new-order email to the store inbox
func (s *Service) notify(o *Order) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	data := email.NewOrder{
		OrderNumber:     o.OrderNumber,
		CustomerName:    o.CustomerName,
		Email:           o.Email,
		Phone:           o.Phone,
		Address:         o.Address,
		City:            o.City,
		Department:      o.Department,
		Notes:           o.Notes,
		ShippingMethod:  o.ShippingMethod,
		PaymentMethod:   o.PaymentMethod,
		PaymentProofURL: o.PaymentProofURL,
		Subtotal:        o.Subtotal,
		ShippingCost:    o.ShippingCost,
		BundleDiscount:  o.BundleDiscount,
		CouponCode:      o.CouponCode,
		CouponDiscount:  o.CouponDiscount,
		Total:           o.Total,
	}
	for _, item := range o.Items {
		data.Items = append(data.Items, email.NewOrderItem{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	if err := s.mailer.SendNewOrder(ctx, data); err != nil {
		s.logger.WithFields(logrus.Fields{
			"order_number": o.OrderNumber,
			"error":        err.Error(),
		}).Error("Failed to send new order notification")
	}
}

// GetByNumber returns an order with its items
func (s *Service) GetByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	var o Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("order_number = ?", orderNumber).
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &o, nil
}

// ListByUser returns a user's orders, newest first
func (s *Service) ListByUser(ctx context.Context, userID uint) ([]Order, error) {
	var orders []Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListFilter narrows the admin order listing
type ListFilter struct {
	Status string `form:"status"`
	Limit  int    `form:"limit"`
	Offset int    `form:"offset"`
}

// List returns orders for the admin view
func (s *Service) List(ctx context.Context, filter *ListFilter) ([]Order, int64, error) {
	query := s.db.WithContext(ctx).Model(&Order{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var orders []Order
	err := query.
		Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Offset(filter.Offset).
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}

// UpdateStatus moves an order to a new status
func (s *Service) UpdateStatus(ctx context.Context, orderNumber, status string) (*Order, error) {
	switch status {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCancelled:
	default:
		return nil, ErrInvalidStatus
	}

	o, err := s.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	o.Status = status
	if err := s.db.WithContext(ctx).Model(o).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	return o, nil
}

// AttachPaymentProof records the uploaded transfer receipt's URL on the order.
func (s *Service) AttachPaymentProof(ctx context.Context, orderNumber, proofURL string) (*Order, error) {
	o, err := s.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	o.PaymentProofURL = proofURL
	if err := s.db.WithContext(ctx).Model(o).Update("payment_proof_url", proofURL).Error; err != nil {
		return nil, fmt.Errorf("failed to attach payment proof: %w", err)
	}
	return o, nil
}

// generateOrderNumber builds a short unique order reference
func generateOrderNumber() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("KMZ-%s", strings.ToUpper(raw[:10]))
}
