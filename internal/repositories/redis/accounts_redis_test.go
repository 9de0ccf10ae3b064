package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/account-service/internal/models"
	"github.com/SAP-F-2025/account-service/internal/repositories"
)

func newTestRepo(t *testing.T) (repositories.Repository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	return NewRepository(client, ""), mr
}

func teacherAccount(email string) *models.Account {
	return &models.Account{
		AccountBase: models.AccountBase{
			FirstName:          "Nilufar",
			LastName:           "Rashidova",
			Email:              email,
			PhoneNumber:        "+99871 200 00 00",
			Password:           "pw",
			VerificationStatus: false,
			VerificationCode:   "4821",
		},
		Region: "Samarkand",
		City:   "Samarkand",
		School: "Lyceum 2",
		Grade:  "7",
	}
}

func TestAccountRedis_PersistedLayout(t *testing.T) {
	ctx := context.Background()
	repo, mr := newTestRepo(t)

	if err := repo.Teachers().Insert(ctx, teacherAccount("a@example.com")); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := repo.Teachers().Insert(ctx, teacherAccount("b@example.com")); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	// The collection lives as one JSON array under the bare role key.
	raw, err := mr.Get("teachers")
	if err != nil {
		t.Fatalf("expected teachers key: %v", err)
	}
	var records []map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		t.Fatalf("teachers value is not a JSON array: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0]["email"] != "a@example.com" || records[1]["email"] != "b@example.com" {
		t.Errorf("insertion order not preserved: %v", records)
	}
	if _, ok := records[0]["resetCode"]; ok {
		t.Error("resetCode must be absent while no reset is pending")
	}
	if _, ok := records[0]["country"]; ok {
		t.Error("teacher records must not carry donor fields")
	}
}

func TestAccountRedis_Lookups(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	account := teacherAccount("find@example.com")
	if err := repo.Teachers().Insert(ctx, account); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	t.Run("FindByEmail", func(t *testing.T) {
		found, err := repo.Teachers().FindByEmail(ctx, "find@example.com")
		if err != nil {
			t.Fatalf("lookup failed: %v", err)
		}
		if found.VerificationCode != account.VerificationCode {
			t.Errorf("expected code %q, got %q", account.VerificationCode, found.VerificationCode)
		}

		_, err = repo.Teachers().FindByEmail(ctx, "missing@example.com")
		if !errors.Is(err, repositories.ErrAccountNotFound) {
			t.Errorf("expected ErrAccountNotFound, got %v", err)
		}
	})

	t.Run("FindByCredentials_Needs_Both", func(t *testing.T) {
		if _, err := repo.Teachers().FindByCredentials(ctx, "find@example.com", "pw"); err != nil {
			t.Errorf("exact match failed: %v", err)
		}
		if _, err := repo.Teachers().FindByCredentials(ctx, "find@example.com", "nope"); !errors.Is(err, repositories.ErrAccountNotFound) {
			t.Errorf("wrong password must miss, got %v", err)
		}
	})

	t.Run("Collections_Are_Disjoint", func(t *testing.T) {
		if _, err := repo.Donors().FindByEmail(ctx, "find@example.com"); !errors.Is(err, repositories.ErrAccountNotFound) {
			t.Errorf("teacher record must not appear in donors, got %v", err)
		}
	})
}

func TestAccountRedis_Update(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	account := teacherAccount("u@example.com")
	if err := repo.Teachers().Insert(ctx, account); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	account.VerificationStatus = true
	account.VerificationCode = ""
	if err := repo.Teachers().Update(ctx, account); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	found, err := repo.Teachers().FindByEmail(ctx, "u@example.com")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if !found.VerificationStatus || found.VerificationCode != "" {
		t.Errorf("update not persisted: %+v", found)
	}

	if err := repo.Teachers().Update(ctx, teacherAccount("missing@example.com")); !errors.Is(err, repositories.ErrAccountNotFound) {
		t.Errorf("updating a missing record must fail, got %v", err)
	}
}

// The store is read-modify-write with no locking: two writers that both
// pass the existence check will both insert. This documents the accepted
// duplicate race of the collection model rather than asserting against it.
func TestAccountRedis_DuplicateRaceIsPossible(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	exists1, _ := repo.Teachers().ExistsByEmail(ctx, "race@example.com")
	exists2, _ := repo.Teachers().ExistsByEmail(ctx, "race@example.com")
	if exists1 || exists2 {
		t.Fatal("collection should start empty")
	}

	// Both "clients" now insert, as they would after a clean check.
	if err := repo.Teachers().Insert(ctx, teacherAccount("race@example.com")); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := repo.Teachers().Insert(ctx, teacherAccount("race@example.com")); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	accounts, err := repo.Teachers().List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected the race to produce 2 records, got %d", len(accounts))
	}
}
