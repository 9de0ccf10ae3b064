package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/SAP-F-2025/account-service/internal/models"
	"github.com/SAP-F-2025/account-service/internal/repositories"
	"github.com/SAP-F-2025/account-service/internal/store"
)

// AccountRedis stores one role collection as a JSON-encoded array under the
// role's storage key ("teachers" or "donors"). Every mutation rewrites the
// whole array.
type AccountRedis struct {
	kv   *store.KVStore
	role models.Role
}

func NewAccountRedis(kv *store.KVStore, role models.Role) *AccountRedis {
	return &AccountRedis{kv: kv, role: role}
}

// load reads the full collection; a missing key is an empty collection.
func (r *AccountRedis) load(ctx context.Context) ([]*models.Account, error) {
	var accounts []*models.Account
	err := r.kv.Get(ctx, r.role.StorageKey(), &accounts)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s collection: %w", r.role.StorageKey(), err)
	}
	return accounts, nil
}

func (r *AccountRedis) persist(ctx context.Context, accounts []*models.Account) error {
	if err := r.kv.Set(ctx, r.role.StorageKey(), accounts); err != nil {
		return fmt.Errorf("failed to persist %s collection: %w", r.role.StorageKey(), err)
	}
	return nil
}

func (r *AccountRedis) List(ctx context.Context) ([]*models.Account, error) {
	return r.load(ctx)
}

func (r *AccountRedis) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	accounts, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, account := range accounts {
		if account.Email == email {
			return account, nil
		}
	}
	return nil, repositories.ErrAccountNotFound
}

func (r *AccountRedis) FindByCredentials(ctx context.Context, email, password string) (*models.Account, error) {
	accounts, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, account := range accounts {
		if account.Email == email && account.Password == password {
			return account, nil
		}
	}
	return nil, repositories.ErrAccountNotFound
}

func (r *AccountRedis) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	accounts, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	for _, account := range accounts {
		if account.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// Insert appends without a uniqueness check; callers check ExistsByEmail
// first. The read-modify-write gap between the two calls is the documented
// duplicate race of the store model.
func (r *AccountRedis) Insert(ctx context.Context, account *models.Account) error {
	accounts, err := r.load(ctx)
	if err != nil {
		return err
	}
	accounts = append(accounts, account)
	return r.persist(ctx, accounts)
}

func (r *AccountRedis) Update(ctx context.Context, account *models.Account) error {
	accounts, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range accounts {
		if accounts[i].Email == account.Email {
			accounts[i] = account
			return r.persist(ctx, accounts)
		}
	}
	return repositories.ErrAccountNotFound
}
