package redis

import (
	"context"

	goredis "github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/account-service/internal/models"
	"github.com/SAP-F-2025/account-service/internal/repositories"
	"github.com/SAP-F-2025/account-service/internal/store"
)

// RedisRepository implements the main Repository interface over the shared
// key-value store: one JSON array per role collection plus the session flag.
type RedisRepository struct {
	client *goredis.Client
	kv     *store.KVStore

	teachers repositories.AccountRepository
	donors   repositories.AccountRepository
	sessions repositories.SessionRepository
}

// NewRepository creates a repository backed by the given Redis client. The
// prefix namespaces all keys; pass "" to use the bare collection keys.
func NewRepository(client *goredis.Client, prefix string) repositories.Repository {
	kv := store.NewKVStore(client, prefix)

	return &RedisRepository{
		client:   client,
		kv:       kv,
		teachers: NewAccountRedis(kv, models.RoleTeacher),
		donors:   NewAccountRedis(kv, models.RoleDonor),
		sessions: NewSessionRedis(kv),
	}
}

func (r *RedisRepository) Accounts(role models.Role) repositories.AccountRepository {
	if role == models.RoleTeacher {
		return r.teachers
	}
	return r.donors
}

func (r *RedisRepository) Teachers() repositories.AccountRepository {
	return r.teachers
}

func (r *RedisRepository) Donors() repositories.AccountRepository {
	return r.donors
}

func (r *RedisRepository) Sessions() repositories.SessionRepository {
	return r.sessions
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.kv.Ping(ctx)
}

func (r *RedisRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
