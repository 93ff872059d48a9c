package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cart:"

// RedisStore keeps carts in Redis so open carts survive a service restart.
// Each cart expires after ttl of inactivity; every Save refreshes the clock.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Create() (Cart, error) {
	now := time.Now().UTC()
	c := Cart{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.set(c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

func (s *RedisStore) Get(id string) (Cart, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	data, err := s.rdb.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return Cart{}, ErrCartNotFound
	}
	if err != nil {
		return Cart{}, fmt.Errorf("failed to load cart: %w", err)
	}

	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return Cart{}, fmt.Errorf("failed to decode cart: %w", err)
	}
	return c, nil
}

func (s *RedisStore) Save(c Cart) error {
	// Save only refreshes an existing session; a vanished key means the cart
	// expired and the operator has to start over.
	if _, err := s.Get(c.ID); err != nil {
		return err
	}
	c.UpdatedAt = time.Now().UTC()
	return s.set(c)
}

func (s *RedisStore) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	deleted, err := s.rdb.Del(ctx, keyPrefix+id).Result()
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	if deleted == 0 {
		return ErrCartNotFound
	}
	return nil
}

func (s *RedisStore) set(c Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := s.rdb.Set(ctx, keyPrefix+c.ID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cart: %w", err)
	}
	return nil
}
