// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/kimezu-studio/storefront-backend/internal/config"
	"github.com/kimezu-studio/storefront-backend/internal/domain/product"
)

var (
	// ErrLineNotFound is returned when a mutation targets a product that
	// is not in the cart
	ErrLineNotFound = errors.New("product not in cart")
	// ErrProductUnavailable is returned when adding an inactive product
	ErrProductUnavailable = errors.New("product is not available")
)

// Identity names the shopper a cart operation acts for. Authenticated
// requests carry a UserID; anonymous requests carry only the SessionID.
type Identity struct {
	UserID    uint
	SessionID string
}

func (id Identity) authenticated() bool {
	return id.UserID != 0
}

// Service handles cart business logic. The working cart in Redis is the
// authoritative view for the session; for authenticated shoppers every
// mutation is additionally enqueued on the Syncer to be mirrored into
// cart_items rows.
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
	logger      *logrus.Logger
	syncer      *Syncer
}

// NewService creates a new cart service and starts its reconciler.
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) *Service {
	s := &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
		logger:      logger,
	}
	s.syncer = NewSyncer(db, cfg, logger, s.markLineDirty)
	s.syncer.Start()
	return s
}

// Close shuts down the background reconciler, draining pending writes.
func (s *Service) Close() {
	s.syncer.Stop()
}

// Get returns the working cart and its freshly computed totals.
func (s *Service) Get(ctx context.Context, id Identity) (*WorkingCart, Totals, error) {
	cart, err := s.load(ctx, id)
	if err != nil {
		return nil, Totals{}, err
	}
	return cart, cart.ComputeTotals(), nil
}

// Add puts one unit of a product into the cart. Adding a product already
// in the cart bumps its quantity by one. Adding always opens the cart
// drawer so the shopper sees the result.
func (s *Service) Add(ctx context.Context, id Identity, productID uint) (*WorkingCart, Totals, error) {
	var p product.Product
	if err := s.db.WithContext(ctx).First(&p, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Totals{}, ErrProductUnavailable
		}
		return nil, Totals{}, fmt.Errorf("failed to load product: %w", err)
	}
	if !p.IsActive {
		return nil, Totals{}, ErrProductUnavailable
	}

	cart, err := s.load(ctx, id)
	if err != nil {
		return nil, Totals{}, err
	}

	var line *Line
	if i := cart.FindLine(productID); i >= 0 {
		cart.Lines[i].Quantity++
		cart.Lines[i].Dirty = false
		line = &cart.Lines[i]
	} else {
		cart.Lines = append(cart.Lines, Line{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  1,
			AddedAt:   time.Now(),
		})
		line = &cart.Lines[len(cart.Lines)-1]
	}
	cart.IsOpen = true

	if err := s.save(ctx, id, cart); err != nil {
		return nil, Totals{}, err
	}
	s.enqueueUpsert(id, line)
	return cart, cart.ComputeTotals(), nil
}

// UpdateQuantity adjusts a line's quantity by delta, flooring at one.
// Decrementing a quantity-one line leaves it at one: removing a product
// entirely always goes through Remove.
func (s *Service) UpdateQuantity(ctx context.Context, id Identity, productID uint, delta int) (*WorkingCart, Totals, error) {
	cart, err := s.load(ctx, id)
	if err != nil {
		return nil, Totals{}, err
	}

	i := cart.FindLine(productID)
	if i < 0 {
		return nil, Totals{}, ErrLineNotFound
	}

	q := cart.Lines[i].Quantity + delta
	if q < 1 {
		q = 1
	}
	cart.Lines[i].Quantity = q
	cart.Lines[i].Dirty = false

	if err := s.save(ctx, id, cart); err != nil {
		return nil, Totals{}, err
	}
	s.enqueueUpsert(id, &cart.Lines[i])
	return cart, cart.ComputeTotals(), nil
}

// Remove deletes a product's line from the cart outright.
func (s *Service) Remove(ctx context.Context, id Identity, productID uint) (*WorkingCart, Totals, error) {
	cart, err := s.load(ctx, id)
	if err != nil {
		return nil, Totals{}, err
	}

	i := cart.FindLine(productID)
	if i < 0 {
		return nil, Totals{}, ErrLineNotFound
	}
	cart.Lines = append(cart.Lines[:i], cart.Lines[i+1:]...)

	if err := s.save(ctx, id, cart); err != nil {
		return nil, Totals{}, err
	}
	if id.authenticated() {
		s.syncer.Enqueue(syncTask{Op: opDelete, UserID: id.UserID, ProductID: productID})
	}
	return cart, cart.ComputeTotals(), nil
}

// Clear empties the cart, both the working copy and the durable mirror.
func (s *Service) Clear(ctx context.Context, id Identity) error {
	cart, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	cart.Lines = nil
	if err := s.save(ctx, id, cart); err != nil {
		return err
	}
	if id.authenticated() {
		s.syncer.Enqueue(syncTask{Op: opClear, UserID: id.UserID})
	}
	return nil
}

// SetOpen toggles the cart drawer visibility flag.
func (s *Service) SetOpen(ctx context.Context, id Identity, open bool) error {
	cart, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	cart.IsOpen = open
	return s.save(ctx, id, cart)
}

// ActivateUserCart performs the login transition from an anonymous session
// cart to the user's cart, honoring the configured strategy: replace drops
// the session cart in favor of the saved one, merge folds the session lines
// into it (quantities added for products present in both).
func (s *Service) ActivateUserCart(ctx context.Context, userID uint, sessionID string) (*WorkingCart, error) {
	saved, err := s.loadSaved(ctx, userID)
	if err != nil {
		return nil, err
	}

	// A dirty line means its mirror write failed after retries, so the
	// previous working copy is the only place that data survives. Fold
	// those lines back in and retry their writes before applying the
	// login strategy.
	if prev, err := s.load(ctx, Identity{UserID: userID}); err == nil {
		for _, line := range reconcileDirty(saved, prev) {
			s.enqueueUpsert(Identity{UserID: userID}, &line)
		}
	} else {
		s.logger.WithField("error", err.Error()).Warn("Failed to load previous working cart for reconciliation")
	}

	if s.config.Cart.LoginStrategy == config.CartLoginMerge && sessionID != "" {
		session, err := s.load(ctx, Identity{SessionID: sessionID})
		if err != nil {
			return nil, err
		}
		for _, line := range session.Lines {
			if i := saved.FindLine(line.ProductID); i >= 0 {
				saved.Lines[i].Quantity += line.Quantity
			} else {
				saved.Lines = append(saved.Lines, line)
			}
		}
		for i := range saved.Lines {
			saved.Lines[i].Dirty = false
			s.enqueueUpsert(Identity{UserID: userID}, &saved.Lines[i])
		}
	}

	if sessionID != "" {
		if err := s.redisClient.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
			s.logger.WithField("error", err.Error()).Warn("Failed to drop session cart on login")
		}
	}

	id := Identity{UserID: userID}
	if err := s.save(ctx, id, saved); err != nil {
		return nil, err
	}
	return saved, nil
}

// DeactivateUserCart drops the user's working copy on logout. The durable
// rows stay; the shopper continues with a fresh anonymous session cart.
func (s *Service) DeactivateUserCart(ctx context.Context, userID uint) error {
	if err := s.redisClient.Del(ctx, userKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to drop user working cart: %w", err)
	}
	return nil
}

// reconcileDirty overlays onto saved any line of prev whose mirror write
// failed, clearing the flag, and returns the lines whose writes need to be
// retried. The dirty copy wins over the stale durable row for its product.
func reconcileDirty(saved, prev *WorkingCart) []Line {
	var retry []Line
	for _, line := range prev.Lines {
		if !line.Dirty {
			continue
		}
		line.Dirty = false
		if i := saved.FindLine(line.ProductID); i >= 0 {
			saved.Lines[i] = line
		} else {
			saved.Lines = append(saved.Lines, line)
		}
		retry = append(retry, line)
	}
	return retry
}

// enqueueUpsert schedules the durable mirror write for an authenticated line
func (s *Service) enqueueUpsert(id Identity, line *Line) {
	if !id.authenticated() {
		return
	}
	s.syncer.Enqueue(syncTask{
		Op:        opUpsert,
		UserID:    id.UserID,
		ProductID: line.ProductID,
		Quantity:  line.Quantity,
		Price:     line.Price,
	})
}

// markLineDirty is the reconciler's terminal-failure handler: the working
// cart keeps the shopper's intent, the line is flagged as not durably saved.
func (s *Service) markLineDirty(task syncTask) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id := Identity{UserID: task.UserID}
	cart, err := s.load(ctx, id)
	if err != nil {
		s.logger.WithField("error", err.Error()).Error("Failed to load cart for dirty marking")
		return
	}
	if task.Op == opClear {
		for i := range cart.Lines {
			cart.Lines[i].Dirty = true
		}
	} else if i := cart.FindLine(task.ProductID); i >= 0 {
		cart.Lines[i].Dirty = true
	}
	if err := s.save(ctx, id, cart); err != nil {
		s.logger.WithField("error", err.Error()).Error("Failed to persist dirty flag")
	}
}

// loadSaved builds a working cart out of the user's durable rows.
func (s *Service) loadSaved(ctx context.Context, userID uint) (*WorkingCart, error) {
	var items []CartItem
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load saved cart: %w", err)
	}

	cart := &WorkingCart{
		Key:       userKey(userID),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if len(items) == 0 {
		return cart, nil
	}

	productIDs := make([]uint, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}
	var products []product.Product
	if err := s.db.WithContext(ctx).Where("id IN ?", productIDs).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to load cart products: %w", err)
	}
	names := make(map[uint]string, len(products))
	for _, p := range products {
		names[p.ID] = p.Name
	}

	for _, item := range items {
		cart.Lines = append(cart.Lines, Line{
			ProductID: item.ProductID,
			Name:      names[item.ProductID],
			Price:     item.Price,
			Quantity:  item.Quantity,
			AddedAt:   item.CreatedAt,
		})
	}
	return cart, nil
}

// load fetches the working cart from Redis, returning an empty cart when
// none exists yet.
func (s *Service) load(ctx context.Context, id Identity) (*WorkingCart, error) {
	key := id.key()
	data, err := s.redisClient.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			now := time.Now()
			return &WorkingCart{Key: key, CreatedAt: now, UpdatedAt: now}, nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var cart WorkingCart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return &cart, nil
}

// save writes the working cart back to Redis, refreshing the session TTL.
func (s *Service) save(ctx context.Context, id Identity, cart *WorkingCart) error {
	cart.UpdatedAt = time.Now()
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.redisClient.Set(ctx, id.key(), data, s.config.Cart.SessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (id Identity) key() string {
	if id.authenticated() {
		return userKey(id.UserID)
	}
	return sessionKey(id.SessionID)
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

func userKey(userID uint) string {
	return fmt.Sprintf("cart:user:%d", userID)
}
