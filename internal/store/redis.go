package store

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dukamarket/checkout-api/internal/config"
	"github.com/dukamarket/checkout-api/internal/domain"
	"github.com/dukamarket/checkout-api/pkg/errors"
)

// snapshotTTL is the redis backend's retention policy for order snapshots.
const snapshotTTL = 30 * 24 * time.Hour

// RedisStore persists snapshots in redis with a 30-day TTL.
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisStore(cfg config.RedisConfig, logger *zap.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &RedisStore{client: client, logger: logger}
}

// NewRedisStoreWithClient wires an existing client, used by tests.
func NewRedisStoreWithClient(client *redis.Client, logger *zap.Logger) *RedisStore {
	return &RedisStore{client: client, logger: logger}
}

func (s *RedisStore) Save(ctx context.Context, snapshot *domain.OrderSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot failed: %w", err)
	}

	if err := s.client.Set(ctx, orderKey(snapshot.OrderID), raw, snapshotTTL).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	if err := s.client.Set(ctx, lastOrderKey, snapshot.OrderID, snapshotTTL).Err(); err != nil {
		return fmt.Errorf("redis set last order id failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, orderID string) (*domain.OrderSnapshot, error) {
	raw, err := s.client.Get(ctx, orderKey(orderID)).Bytes()
	if goerrors.Is(err, redis.Nil) {
		return nil, &errors.ErrNotFound{Resource: "order snapshot", ID: orderID}
	}
	if err != nil {
		s.logger.Error("Redis read failed, treating as not found",
			zap.String("order_id", orderID), zap.Error(err))
		return nil, &errors.ErrNotFound{Resource: "order snapshot", ID: orderID}
	}

	var snapshot domain.OrderSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		s.logger.Error("Corrupt order snapshot, treating as not found",
			zap.String("order_id", orderID), zap.Error(err))
		return nil, &errors.ErrNotFound{Resource: "order snapshot", ID: orderID}
	}
	return &snapshot, nil
}

func (s *RedisStore) LoadLastOrderID(ctx context.Context) (string, error) {
	id, err := s.client.Get(ctx, lastOrderKey).Result()
	if goerrors.Is(err, redis.Nil) {
		return "", &errors.ErrNotFound{Resource: "last order id"}
	}
	if err != nil {
		s.logger.Error("Redis read of last order id failed", zap.Error(err))
		return "", &errors.ErrNotFound{Resource: "last order id"}
	}
	return id, nil
}

func (s *RedisStore) SetClearCartFlag(ctx context.Context, orderID string) error {
	if err := s.client.Set(ctx, clearCartKey(orderID), "1", snapshotTTL).Err(); err != nil {
		return fmt.Errorf("redis set clear-cart flag failed: %w", err)
	}
	return nil
}

func (s *RedisStore) ConsumeClearCartFlag(ctx context.Context, orderID string) (bool, error) {
	deleted, err := s.client.Del(ctx, clearCartKey(orderID)).Result()
	if err != nil {
		return false, fmt.Errorf("redis del clear-cart flag failed: %w", err)
	}
	return deleted > 0, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
