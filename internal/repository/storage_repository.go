package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/foliage-shop/internal/db"
	"github.com/nikolayk812/foliage-shop/internal/port"
)

type storageRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewStorage(pool *pgxpool.Pool) port.Storage {
	return &storageRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewStorageWithTx(tx pgx.Tx) port.Storage {
	return &storageRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *storageRepository) GetItem(ctx context.Context, ownerID, key string) (string, bool, error) {
	if err := validateKey(ownerID, key); err != nil {
		return "", false, err
	}

	value, err := r.q.GetItem(ctx, db.GetItemParams{OwnerID: ownerID, ItemKey: key})
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("q.GetItem: %w", err)
	}

	return value, true, nil
}

func (r *storageRepository) SetItem(ctx context.Context, ownerID, key, value string) error {
	if err := validateKey(ownerID, key); err != nil {
		return err
	}

	err := r.q.SetItem(ctx, db.SetItemParams{OwnerID: ownerID, ItemKey: key, ItemValue: value})
	if err != nil {
		return fmt.Errorf("q.SetItem: %w", err)
	}

	return nil
}

func (r *storageRepository) RemoveItem(ctx context.Context, ownerID, key string) error {
	if err := validateKey(ownerID, key); err != nil {
		return err
	}

	if _, err := r.q.DeleteItem(ctx, db.DeleteItemParams{OwnerID: ownerID, ItemKey: key}); err != nil {
		return fmt.Errorf("q.DeleteItem: %w", err)
	}

	return nil
}

// UpdateItem serializes writers of the same (ownerID, key) with a transaction-scoped advisory lock,
// which also covers keys that do not exist yet.
func (r *storageRepository) UpdateItem(ctx context.Context, ownerID, key string, fn port.UpdateFunc) error {
	if err := validateKey(ownerID, key); err != nil {
		return err
	}

	_, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (struct{}, error) {
		if err := q.LockItem(ctx, db.LockItemParams{OwnerID: ownerID, ItemKey: key}); err != nil {
			return struct{}{}, fmt.Errorf("q.LockItem: %w", err)
		}

		found := true
		current, err := q.GetItem(ctx, db.GetItemParams{OwnerID: ownerID, ItemKey: key})
		if errors.Is(err, pgx.ErrNoRows) {
			found = false
		} else if err != nil {
			return struct{}{}, fmt.Errorf("q.GetItem: %w", err)
		}

		next, write, err := fn(current, found)
		if err != nil {
			return struct{}{}, err
		}
		if !write {
			return struct{}{}, nil
		}

		err = q.SetItem(ctx, db.SetItemParams{OwnerID: ownerID, ItemKey: key, ItemValue: next})
		if err != nil {
			return struct{}{}, fmt.Errorf("q.SetItem: %w", err)
		}

		return struct{}{}, nil
	})

	return err
}

func (r *storageRepository) Ping(ctx context.Context) error {
	if r.pool == nil {
		return nil
	}

	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("pool.Ping: %w", err)
	}

	return nil
}

func validateKey(ownerID, key string) error {
	if ownerID == "" {
		return fmt.Errorf("ownerID is empty")
	}
	if key == "" {
		return fmt.Errorf("key is empty")
	}
	return nil
}
