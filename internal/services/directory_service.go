package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SAP-F-2025/account-service/internal/export"
	"github.com/SAP-F-2025/account-service/internal/models"
	"github.com/SAP-F-2025/account-service/internal/repositories"
)

type directoryService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewDirectoryService(repo repositories.Repository, logger *slog.Logger) DirectoryService {
	return &directoryService{
		repo:   repo,
		logger: logger,
	}
}

func (s *directoryService) List(ctx context.Context, role models.Role, page, size int) (*DirectoryPage, error) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 10
	}

	accounts, err := s.repo.Accounts(role).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s directory: %w", role, err)
	}

	total := len(accounts)
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	profiles := make([]models.PublicProfile, 0, end-start)
	for _, account := range accounts[start:end] {
		profiles = append(profiles, models.PublicProfileOf(account))
	}

	return &DirectoryPage{
		Profiles: profiles,
		Total:    total,
		Page:     page,
		Size:     size,
	}, nil
}

func (s *directoryService) ExportRoster(ctx context.Context, role models.Role) ([]byte, error) {
	accounts, err := s.repo.Accounts(role).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s roster: %w", role, err)
	}

	workbook, err := export.NewRosterWorkbook(role, accounts)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s roster workbook: %w", role, err)
	}

	s.logger.Info("roster exported", "role", role, "accounts", len(accounts))
	return workbook.Bytes()
}
