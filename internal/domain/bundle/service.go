// internal/domain/bundle/service.go
package bundle

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kimezu-studio/storefront-backend/internal/config"
	"github.com/kimezu-studio/storefront-backend/internal/domain/product"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Service manages the combo-building session. The working selection lives
// in Redis for the duration of the session only; it is never persisted to
// the database. Adding the combo to the cart clears it.
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
}

// NewService creates a new bundle service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
	}
}

// Selection is the ordered working set of a combo-building session.
// Duplicates are allowed; each occurrence counts toward the discount tier.
type Selection struct {
	SessionID string    `json:"session_id"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SelectionResponse pairs the selection with its current quote
type SelectionResponse struct {
	Selection Selection `json:"selection"`
	Quote     Quote     `json:"quote"`
}

// Get returns the current selection and quote for a session
func (s *Service) Get(ctx context.Context, sessionID string) (*SelectionResponse, error) {
	sel, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &SelectionResponse{Selection: *sel, Quote: Price(sel.Items)}, nil
}

// AddItem appends a product to the selection. Only products flagged as
// available for bundles may enter a combo.
func (s *Service) AddItem(ctx context.Context, sessionID string, productID uint) (*SelectionResponse, error) {
	var prod product.Product
	err := s.db.WithContext(ctx).Where("id = ? AND is_active = ?", productID, true).First(&prod).Error
	if err != nil {
		return nil, fmt.Errorf("product not found or inactive")
	}
	if !prod.AvailableForBundle {
		return nil, fmt.Errorf("product %q is not available for combos", prod.Name)
	}

	sel, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	sel.Items = append(sel.Items, Item{
		ProductID: prod.ID,
		Name:      prod.Name,
		Price:     prod.Price,
	})
	sel.UpdatedAt = time.Now().UTC()

	if err := s.save(ctx, sessionID, sel); err != nil {
		return nil, err
	}
	return &SelectionResponse{Selection: *sel, Quote: Price(sel.Items)}, nil
}

// RemoveItem deletes the selection entry at the given position
func (s *Service) RemoveItem(ctx context.Context, sessionID string, index int) (*SelectionResponse, error) {
	sel, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(sel.Items) {
		return nil, fmt.Errorf("selection index out of range")
	}

	sel.Items = append(sel.Items[:index], sel.Items[index+1:]...)
	sel.UpdatedAt = time.Now().UTC()

	if err := s.save(ctx, sessionID, sel); err != nil {
		return nil, err
	}
	return &SelectionResponse{Selection: *sel, Quote: Price(sel.Items)}, nil
}

// Clear discards the selection for a session
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.redisClient.Del(ctx, s.key(sessionID)).Err()
}

func (s *Service) key(sessionID string) string {
	return fmt.Sprintf("bundle:session:%s", sessionID)
}

func (s *Service) load(ctx context.Context, sessionID string) (*Selection, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required for combo selection")
	}

	data, err := s.redisClient.Get(ctx, s.key(sessionID)).Result()
	if err == redis.Nil {
		return &Selection{
			SessionID: sessionID,
			Items:     []Item{},
			UpdatedAt: time.Now().UTC(),
		}, nil
	} else if err != nil {
		return nil, err
	}

	var sel Selection
	if err := json.Unmarshal([]byte(data), &sel); err != nil {
		return nil, err
	}
	return &sel, nil
}

func (s *Service) save(ctx context.Context, sessionID string, sel *Selection) error {
	data, err := json.Marshal(sel)
	if err != nil {
		return err
	}
	return s.redisClient.Set(ctx, s.key(sessionID), data, s.config.Cart.SessionTTL).Err()
}
