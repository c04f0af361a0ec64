package boltdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/jobtracker/internal/client/storage"
)

// Сессия клиента одна, поэтому в bucket лежит единственный ключ
var authKey = []byte("current")

var errNoAuthBucket = errors.New("auth bucket not found")

func authBucket(tx *bbolt.Tx) (*bbolt.Bucket, error) {
	b := tx.Bucket(bucketAuth)
	if b == nil {
		return nil, errNoAuthBucket
	}
	return b, nil
}

// SaveAuth replaces the stored session with auth.
func (s *Storage) SaveAuth(ctx context.Context, auth *storage.AuthData) error {
	raw, err := json.Marshal(auth)
	if err != nil {
		return fmt.Errorf("failed to marshal auth data: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := authBucket(tx)
		if err != nil {
			return err
		}
		if err := b.Put(authKey, raw); err != nil {
			return fmt.Errorf("failed to save auth data: %w", err)
		}
		return nil
	})
}

// GetAuth returns the stored session or storage.ErrAuthNotFound.
func (s *Storage) GetAuth(ctx context.Context) (*storage.AuthData, error) {
	var auth storage.AuthData

	err := s.db.View(func(tx *bbolt.Tx) error {
		b, err := authBucket(tx)
		if err != nil {
			return err
		}

		raw := b.Get(authKey)
		if raw == nil {
			return storage.ErrAuthNotFound
		}
		// raw валиден только внутри транзакции, Unmarshal копирует значения
		if err := json.Unmarshal(raw, &auth); err != nil {
			return fmt.Errorf("failed to unmarshal auth data: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &auth, nil
}

// DeleteAuth removes the stored session. Deleting twice yields storage.ErrAuthNotFound.
func (s *Storage) DeleteAuth(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := authBucket(tx)
		if err != nil {
			return err
		}
		if b.Get(authKey) == nil {
			return storage.ErrAuthNotFound
		}
		if err := b.Delete(authKey); err != nil {
			return fmt.Errorf("failed to delete auth data: %w", err)
		}
		return nil
	})
}
