package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/account-service/internal/models"
	"github.com/SAP-F-2025/account-service/internal/repositories"
)

// PostgreSQLRepository implements the main Repository interface over
// Postgres. Collections become rows instead of JSON arrays, but the
// observable semantics match the key-value backend: insertion-ordered
// listings, per-role email lookup, no uniqueness constraint at the store
// layer (the duplicate race stays with the caller, as with the key-value
// backend).
type PostgreSQLRepository struct {
	db *gorm.DB

	teachers repositories.AccountRepository
	donors   repositories.AccountRepository
	sessions repositories.SessionRepository
}

// NewRepository creates a repository manager with all sub-repositories.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &PostgreSQLRepository{
		db:       db,
		teachers: NewAccountPostgreSQL(db, models.RoleTeacher),
		donors:   NewAccountPostgreSQL(db, models.RoleDonor),
		sessions: NewSessionPostgreSQL(db),
	}
}

// Migrate creates the backing tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&AccountRow{}, &FlagRow{})
}

func (r *PostgreSQLRepository) Accounts(role models.Role) repositories.AccountRepository {
	if role == models.RoleTeacher {
		return r.teachers
	}
	return r.donors
}

func (r *PostgreSQLRepository) Teachers() repositories.AccountRepository {
	return r.teachers
}

func (r *PostgreSQLRepository) Donors() repositories.AccountRepository {
	return r.donors
}

func (r *PostgreSQLRepository) Sessions() repositories.SessionRepository {
	return r.sessions
}

func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
