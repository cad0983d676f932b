package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/natpakans-stack/carpark-live-dashboard/internal/model"
)

// Store defines the interface for push subscription persistence.
type Store interface {
	// DB exposes the underlying handle for the subscription CRUD handlers.
	DB() *gorm.DB
	Subscriptions(ctx context.Context) ([]model.PushSubscription, error)
	DeleteSubscription(ctx context.Context, endpoint string) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// Subscriptions returns every registered push subscription. Notifications go
// to all of them; there is no per-location fan-out.
func (s *gormStore) Subscriptions(ctx context.Context) ([]model.PushSubscription, error) {
	var subs []model.PushSubscription
	if err := s.db.WithContext(ctx).Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch subscriptions: %w", err)
	}
	return subs, nil
}

// DeleteSubscription removes a subscription by endpoint, typically after the
// push service reported it gone.
func (s *gormStore) DeleteSubscription(ctx context.Context, endpoint string) error {
	if err := s.db.WithContext(ctx).Delete(&model.PushSubscription{Endpoint: endpoint}).Error; err != nil {
		return fmt.Errorf("failed to delete subscription %s: %w", endpoint, err)
	}
	return nil
}
