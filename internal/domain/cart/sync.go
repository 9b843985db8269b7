// internal/domain/cart/sync.go
package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kimezu-studio/storefront-backend/internal/config"
)

// taskOp enumerates the durable-mirror writes the reconciler knows how to apply
type taskOp int

const (
	opUpsert taskOp = iota // set line quantity (insert or update)
	opDelete               // remove line
	opClear                // drop every row for the user
)

func (o taskOp) String() string {
	switch o {
	case opUpsert:
		return "upsert"
	case opDelete:
		return "delete"
	case opClear:
		return "clear"
	default:
		return "unknown"
	}
}

// syncTask is one pending durable write for an authenticated user's cart
type syncTask struct {
	Op        taskOp
	UserID    uint
	ProductID uint
	Quantity  int
	Price     int64
}

// Syncer reconciles working-cart mutations into the cart_items table in the
// background. Mutations are applied to the working cart first and enqueued
// here; each task is retried with exponential backoff before being declared
// terminal, at which point the onFailure callback marks the line dirty.
type Syncer struct {
	db        *gorm.DB
	config    *config.Config
	logger    *logrus.Logger
	tasks     chan syncTask
	onFailure func(task syncTask)

	stopOnce sync.Once
	done     chan struct{}
	wg       sync.WaitGroup
}

// NewSyncer creates a cart reconciler. Start must be called before Enqueue.
func NewSyncer(db *gorm.DB, cfg *config.Config, logger *logrus.Logger, onFailure func(task syncTask)) *Syncer {
	return &Syncer{
		db:        db,
		config:    cfg,
		logger:    logger,
		tasks:     make(chan syncTask, 256),
		onFailure: onFailure,
		done:      make(chan struct{}),
	}
}

// Start launches the worker goroutine draining the task queue.
func (s *Syncer) Start() {
	s.wg.Add(1)
	go s.run()
}

// Stop drains in-flight work and shuts the worker down.
func (s *Syncer) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
}

// Enqueue schedules a durable write. It never blocks the request path: when
// the queue is full the task goes straight to the failure handler.
func (s *Syncer) Enqueue(task syncTask) {
	select {
	case s.tasks <- task:
	default:
		s.logger.WithFields(logrus.Fields{
			"user_id": task.UserID,
			"op":      task.Op.String(),
		}).Error("Cart sync queue full, dropping task")
		if s.onFailure != nil {
			s.onFailure(task)
		}
	}
}

func (s *Syncer) run() {
	defer s.wg.Done()
	for {
		select {
		case task := <-s.tasks:
			s.process(task)
		case <-s.done:
			// Drain what is already queued before exiting
			for {
				select {
				case task := <-s.tasks:
					s.process(task)
				default:
					return
				}
			}
		}
	}
}

// process applies a task with retry and backoff. Retries double the base
// backoff each attempt; a task that exhausts its retries is terminal.
func (s *Syncer) process(task syncTask) {
	maxRetries := s.config.Cart.SyncMaxRetries
	backoff := s.config.Cart.SyncBaseBackoff

	var err error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(backoff):
			case <-s.done:
				// Shutting down: one last immediate try below
			}
			backoff *= 2
		}

		if err = s.apply(task); err == nil {
			return
		}

		s.logger.WithFields(logrus.Fields{
			"user_id":    task.UserID,
			"product_id": task.ProductID,
			"op":         task.Op.String(),
			"attempt":    attempt + 1,
			"error":      err.Error(),
		}).Warn("Cart sync attempt failed")
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":    task.UserID,
		"product_id": task.ProductID,
		"op":         task.Op.String(),
		"error":      err.Error(),
	}).Error("Cart sync exhausted retries, marking line dirty")

	if s.onFailure != nil {
		s.onFailure(task)
	}
}

// apply performs the actual database write for a task
func (s *Syncer) apply(task syncTask) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := s.db.WithContext(ctx)

	switch task.Op {
	case opUpsert:
		item := CartItem{
			UserID:    task.UserID,
			ProductID: task.ProductID,
			Quantity:  task.Quantity,
			Price:     task.Price,
		}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "price", "updated_at"}),
		}).Create(&item).Error; err != nil {
			return fmt.Errorf("failed to upsert cart item: %w", err)
		}
		return nil

	case opDelete:
		if err := db.Where("user_id = ? AND product_id = ?", task.UserID, task.ProductID).
			Delete(&CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete cart item: %w", err)
		}
		return nil

	case opClear:
		if err := db.Where("user_id = ?", task.UserID).Delete(&CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart items: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("unknown cart sync op: %d", task.Op)
	}
}
