package repositories

import (
	"context"

	"github.com/prasad217/Electric-Billing-system/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// adminRepository implements AdminRepository interface
type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new administrator repository
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

// CreateFromFields inserts an administrator row from whatever fields the
// caller supplied. Unknown columns fail at the store and surface as a
// generic internal error.
func (r *adminRepository) CreateFromFields(ctx context.Context, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&models.Administrator{}).
		Create(fields).Error
}

// GetByEmail gets an administrator by email
func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*models.Administrator, error) {
	var admin models.Administrator
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
