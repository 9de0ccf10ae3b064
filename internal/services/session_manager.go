package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/SAP-F-2025/account-service/internal/models"
	"github.com/SAP-F-2025/account-service/internal/repositories"
)

// sessionManager keeps the signed-in principal in memory and mirrors the
// boolean flag into the store under "isAuthenticated" so the persisted
// layout stays compatible with what the navigation chrome reads.
type sessionManager struct {
	sessions repositories.SessionRepository
	logger   *slog.Logger

	mu      sync.RWMutex
	current *Session
}

func NewSessionManager(sessions repositories.SessionRepository, logger *slog.Logger) SessionManager {
	return &sessionManager{
		sessions: sessions,
		logger:   logger,
	}
}

func (m *sessionManager) Login(ctx context.Context, role models.Role, email string) error {
	if err := m.sessions.SetAuthenticated(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	m.current = &Session{Role: role, Email: email}
	m.mu.Unlock()

	m.logger.Info("session opened", "role", role, "email", email)
	return nil
}

func (m *sessionManager) Logout(ctx context.Context) error {
	if err := m.sessions.ClearAuthenticated(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	m.logger.Info("session closed")
	return nil
}

func (m *sessionManager) CurrentSession(ctx context.Context) (*Session, error) {
	authenticated, err := m.sessions.IsAuthenticated(ctx)
	if err != nil {
		return nil, err
	}
	if !authenticated {
		return nil, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		// Flag set by an earlier process; the principal is unknown.
		return &Session{}, nil
	}
	session := *m.current
	return &session, nil
}
