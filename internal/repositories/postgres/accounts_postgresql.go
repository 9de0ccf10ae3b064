package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/account-service/internal/models"
	"github.com/SAP-F-2025/account-service/internal/repositories"
)

// AccountRow is the relational shape of an account. The role-specific
// profile extension (school/grade for teachers, country for donors) lives
// in a JSON column so both roles share one table.
type AccountRow struct {
	ID                 uint           `gorm:"primaryKey"`
	Role               string         `gorm:"not null;size:20;index:idx_accounts_role_email"`
	FirstName          string         `gorm:"not null;size:100"`
	LastName           string         `gorm:"not null;size:100"`
	Email              string         `gorm:"not null;size:255;index:idx_accounts_role_email"`
	PhoneNumber        string         `gorm:"not null;size:50"`
	Password           string         `gorm:"not null;size:255"`
	VerificationStatus bool           `gorm:"not null;default:false"`
	VerificationCode   string         `gorm:"size:10"`
	ResetCode          string         `gorm:"size:10"`
	Profile            datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (AccountRow) TableName() string {
	return "accounts"
}

type profileExtension struct {
	School  string `json:"school,omitempty"`
	Grade   string `json:"grade,omitempty"`
	Country string `json:"country,omitempty"`
	Region  string `json:"region,omitempty"`
	City    string `json:"city,omitempty"`
}

func toRow(role models.Role, a *models.Account) (*AccountRow, error) {
	profile, err := json.Marshal(profileExtension{
		School:  a.School,
		Grade:   a.Grade,
		Country: a.Country,
		Region:  a.Region,
		City:    a.City,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile extension: %w", err)
	}

	return &AccountRow{
		Role:               string(role),
		FirstName:          a.FirstName,
		LastName:           a.LastName,
		Email:              a.Email,
		PhoneNumber:        a.PhoneNumber,
		Password:           a.Password,
		VerificationStatus: a.VerificationStatus,
		VerificationCode:   a.VerificationCode,
		ResetCode:          a.ResetCode,
		Profile:            profile,
	}, nil
}

func fromRow(row *AccountRow) (*models.Account, error) {
	var profile profileExtension
	if len(row.Profile) > 0 {
		if err := json.Unmarshal(row.Profile, &profile); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile extension: %w", err)
		}
	}

	return &models.Account{
		AccountBase: models.AccountBase{
			FirstName:          row.FirstName,
			LastName:           row.LastName,
			Email:              row.Email,
			PhoneNumber:        row.PhoneNumber,
			Password:           row.Password,
			VerificationStatus: row.VerificationStatus,
			VerificationCode:   row.VerificationCode,
			ResetCode:          row.ResetCode,
		},
		School:  profile.School,
		Grade:   profile.Grade,
		Country: profile.Country,
		Region:  profile.Region,
		City:    profile.City,
	}, nil
}

// AccountPostgreSQL manages one role collection in the shared accounts table.
type AccountPostgreSQL struct {
	db   *gorm.DB
	role models.Role
}

func NewAccountPostgreSQL(db *gorm.DB, role models.Role) *AccountPostgreSQL {
	return &AccountPostgreSQL{db: db, role: role}
}

func (r *AccountPostgreSQL) scope() *gorm.DB {
	return r.db.Where("role = ?", string(r.role))
}

func (r *AccountPostgreSQL) List(ctx context.Context) ([]*models.Account, error) {
	var rows []*AccountRow
	if err := r.scope().WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list %s accounts: %w", r.role, err)
	}

	accounts := make([]*models.Account, 0, len(rows))
	for _, row := range rows {
		account, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func (r *AccountPostgreSQL) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var row AccountRow
	err := r.scope().WithContext(ctx).Where("email = ?", email).Order("id").First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account by email: %w", err)
	}
	return fromRow(&row)
}

func (r *AccountPostgreSQL) FindByCredentials(ctx context.Context, email, password string) (*models.Account, error) {
	var row AccountRow
	err := r.scope().WithContext(ctx).
		Where("email = ? AND password = ?", email, password).
		Order("id").First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account by credentials: %w", err)
	}
	return fromRow(&row)
}

func (r *AccountPostgreSQL) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.scope().WithContext(ctx).Model(&AccountRow{}).
		Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}
	return count > 0, nil
}

func (r *AccountPostgreSQL) Insert(ctx context.Context, account *models.Account) error {
	row, err := toRow(r.role, account)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

func (r *AccountPostgreSQL) Update(ctx context.Context, account *models.Account) error {
	var existing AccountRow
	err := r.scope().WithContext(ctx).Where("email = ?", account.Email).Order("id").First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repositories.ErrAccountNotFound
		}
		return fmt.Errorf("failed to load account for update: %w", err)
	}

	row, err := toRow(r.role, account)
	if err != nil {
		return err
	}
	row.ID = existing.ID
	row.CreatedAt = existing.CreatedAt

	if err := r.db.WithContext(ctx).Save(row).Error; err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return nil
}
