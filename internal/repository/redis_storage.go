package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nikolayk812/foliage-shop/internal/port"
	"github.com/redis/go-redis/v9"
)

const (
	storageKeyPrefix = "storage:"
	maxUpdateRetries = 10
)

type redisStorage struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisStorage keeps every (owner, key) pair in its own Redis string.
// ttl == 0 means values never expire, like browser local storage.
func NewRedisStorage(client redis.UniversalClient, ttl time.Duration) port.Storage {
	return &redisStorage{
		client: client,
		ttl:    ttl,
	}
}

func (r *redisStorage) itemKey(ownerID, key string) string {
	return storageKeyPrefix + ownerID + ":" + key
}

func (r *redisStorage) GetItem(ctx context.Context, ownerID, key string) (string, bool, error) {
	if err := validateKey(ownerID, key); err != nil {
		return "", false, err
	}

	value, err := r.client.Get(ctx, r.itemKey(ownerID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("client.Get: %w", err)
	}

	return value, true, nil
}

func (r *redisStorage) SetItem(ctx context.Context, ownerID, key, value string) error {
	if err := validateKey(ownerID, key); err != nil {
		return err
	}

	if err := r.client.Set(ctx, r.itemKey(ownerID, key), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("client.Set: %w", err)
	}

	return nil
}

func (r *redisStorage) RemoveItem(ctx context.Context, ownerID, key string) error {
	if err := validateKey(ownerID, key); err != nil {
		return err
	}

	if err := r.client.Del(ctx, r.itemKey(ownerID, key)).Err(); err != nil {
		return fmt.Errorf("client.Del: %w", err)
	}

	return nil
}

// UpdateItem uses WATCH/MULTI and retries when another writer touched the key,
// so fn may run more than once.
func (r *redisStorage) UpdateItem(ctx context.Context, ownerID, key string, fn port.UpdateFunc) error {
	if err := validateKey(ownerID, key); err != nil {
		return err
	}

	redisKey := r.itemKey(ownerID, key)

	txf := func(tx *redis.Tx) error {
		found := true
		current, err := tx.Get(ctx, redisKey).Result()
		if errors.Is(err, redis.Nil) {
			found = false
		} else if err != nil {
			return fmt.Errorf("tx.Get: %w", err)
		}

		next, write, err := fn(current, found)
		if err != nil {
			return err
		}
		if !write {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, redisKey, next, r.ttl)
			return nil
		})
		return err
	}

	for range maxUpdateRetries {
		err := r.client.Watch(ctx, txf, redisKey)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}

	return fmt.Errorf("key[%s] is contended: gave up after %d attempts", key, maxUpdateRetries)
}

func (r *redisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("client.Ping: %w", err)
	}
	return nil
}
