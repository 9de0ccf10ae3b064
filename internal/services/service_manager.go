package services

import (
	"log/slog"
	"time"

	"github.com/SAP-F-2025/account-service/internal/events"
	"github.com/SAP-F-2025/account-service/internal/repositories"
	"github.com/SAP-F-2025/account-service/internal/validator"
)

// ServiceManager provides access to all service instances.
type ServiceManager interface {
	Accounts() AccountService
	Directory() DirectoryService
	Sessions() SessionManager
}

type defaultServiceManager struct {
	accounts  AccountService
	directory DirectoryService
	sessions  SessionManager
}

func NewServiceManager(
	repo repositories.Repository,
	logger *slog.Logger,
	validator *validator.Validator,
	publisher events.EventPublisher,
	latency time.Duration,
) ServiceManager {
	return &defaultServiceManager{
		accounts:  NewAccountService(repo, logger, validator, publisher, latency),
		directory: NewDirectoryService(repo, logger),
		sessions:  NewSessionManager(repo.Sessions(), logger),
	}
}

func (m *defaultServiceManager) Accounts() AccountService {
	return m.accounts
}

func (m *defaultServiceManager) Directory() DirectoryService {
	return m.directory
}

func (m *defaultServiceManager) Sessions() SessionManager {
	return m.sessions
}
