package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FlagRow persists session flags as key/value pairs, keeping the
// "isAuthenticated" layout of the key-value backend.
type FlagRow struct {
	Key   string `gorm:"primaryKey;size:64"`
	Value string `gorm:"not null;size:255"`
}

func (FlagRow) TableName() string {
	return "flags"
}

const authenticatedKey = "isAuthenticated"

type SessionPostgreSQL struct {
	db *gorm.DB
}

func NewSessionPostgreSQL(db *gorm.DB) *SessionPostgreSQL {
	return &SessionPostgreSQL{db: db}
}

func (r *SessionPostgreSQL) SetAuthenticated(ctx context.Context) error {
	row := &FlagRow{Key: authenticatedKey, Value: "true"}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(row).Error
}

func (r *SessionPostgreSQL) ClearAuthenticated(ctx context.Context) error {
	return r.db.WithContext(ctx).Delete(&FlagRow{Key: authenticatedKey}).Error
}

func (r *SessionPostgreSQL) IsAuthenticated(ctx context.Context) (bool, error) {
	var row FlagRow
	err := r.db.WithContext(ctx).First(&row, "key = ?", authenticatedKey).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return row.Value == "true", nil
}
