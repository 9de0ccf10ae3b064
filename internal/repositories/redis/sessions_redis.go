package redis

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/account-service/internal/store"
)

const authenticatedKey = "isAuthenticated"

// SessionRedis persists the authenticated flag under "isAuthenticated":
// the string "true" when a session exists, key absent otherwise.
type SessionRedis struct {
	kv *store.KVStore
}

func NewSessionRedis(kv *store.KVStore) *SessionRedis {
	return &SessionRedis{kv: kv}
}

func (r *SessionRedis) SetAuthenticated(ctx context.Context) error {
	return r.kv.SetString(ctx, authenticatedKey, "true")
}

func (r *SessionRedis) ClearAuthenticated(ctx context.Context) error {
	return r.kv.Delete(ctx, authenticatedKey)
}

func (r *SessionRedis) IsAuthenticated(ctx context.Context) (bool, error) {
	value, err := r.kv.GetString(ctx, authenticatedKey)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return false, nil
		}
		return false, err
	}
	return value == "true", nil
}
