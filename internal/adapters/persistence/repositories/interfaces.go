package repositories

import (
	"context"
	"time"

	"github.com/prasad217/Electric-Billing-system/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	WithTx(tx *gorm.DB) UserRepository
}

// AdminRepository defines administrator repository interface
type AdminRepository interface {
	// CreateFromFields inserts a row built from an open-ended field set.
	CreateFromFields(ctx context.Context, fields map[string]interface{}) error
	GetByEmail(ctx context.Context, email string) (*models.Administrator, error)
}

// BillRepository defines bill repository interface
type BillRepository interface {
	Create(ctx context.Context, bill *models.Bill) error
	GetLatestByUserID(ctx context.Context, userID uint) (*models.Bill, error)
	MarkAllPaidByUserID(ctx context.Context, userID uint) error
	ListUnpaidDueBetween(ctx context.Context, from, to time.Time) ([]*models.Bill, error)
	WithTx(tx *gorm.DB) BillRepository
}

// OutboxRepository defines email outbox repository interface
type OutboxRepository interface {
	Create(ctx context.Context, entry *models.EmailOutbox) error
	GetByID(ctx context.Context, id uint) (*models.EmailOutbox, error)
	ListPending(ctx context.Context) ([]*models.EmailOutbox, error)
	MarkSent(ctx context.Context, id uint) error
	MarkFailed(ctx context.Context, id uint, reason string) error
	WithTx(tx *gorm.DB) OutboxRepository
}
