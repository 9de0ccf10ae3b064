package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/account-service/internal/models"
	redisrepo "github.com/SAP-F-2025/account-service/internal/repositories/redis"
)

func TestSessionManager(t *testing.T) {
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	repo := redisrepo.NewRepository(client, "")
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	manager := NewSessionManager(repo.Sessions(), logger)

	t.Run("No_Session_Initially", func(t *testing.T) {
		session, err := manager.CurrentSession(ctx)
		if err != nil {
			t.Fatalf("failed to read session: %v", err)
		}
		if session != nil {
			t.Errorf("expected no session, got %+v", session)
		}
	})

	t.Run("Login_Sets_Persisted_Flag", func(t *testing.T) {
		if err := manager.Login(ctx, models.RoleTeacher, "t@example.com"); err != nil {
			t.Fatalf("login failed: %v", err)
		}

		// The flag layout is what the navigation chrome reads.
		flag, err := mr.Get("isAuthenticated")
		if err != nil {
			t.Fatalf("expected isAuthenticated key: %v", err)
		}
		if flag != "true" {
			t.Errorf("expected flag %q, got %q", "true", flag)
		}

		session, err := manager.CurrentSession(ctx)
		if err != nil {
			t.Fatalf("failed to read session: %v", err)
		}
		if session == nil || session.Role != models.RoleTeacher || session.Email != "t@example.com" {
			t.Errorf("unexpected session %+v", session)
		}
	})

	t.Run("Logout_Clears_Flag", func(t *testing.T) {
		if err := manager.Logout(ctx); err != nil {
			t.Fatalf("logout failed: %v", err)
		}
		if mr.Exists("isAuthenticated") {
			t.Error("logout must remove the isAuthenticated key")
		}

		session, err := manager.CurrentSession(ctx)
		if err != nil {
			t.Fatalf("failed to read session: %v", err)
		}
		if session != nil {
			t.Errorf("expected no session after logout, got %+v", session)
		}
	})
}
