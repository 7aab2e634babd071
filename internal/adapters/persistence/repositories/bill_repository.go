package repositories

import (
	"context"
	"time"

	"github.com/prasad217/Electric-Billing-system/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// billRepository implements BillRepository interface
type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *gorm.DB) BillRepository {
	return &billRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *billRepository) WithTx(tx *gorm.DB) BillRepository {
	return &billRepository{db: tx}
}

// Create creates a new bill
func (r *billRepository) Create(ctx context.Context, bill *models.Bill) error {
	return r.db.WithContext(ctx).Create(bill).Error
}

// GetLatestByUserID returns the most recently generated bill for a user
func (r *billRepository) GetLatestByUserID(ctx context.Context, userID uint) (*models.Bill, error) {
	var bill models.Bill
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("bill_generated_date DESC").
		First(&bill).Error
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// MarkAllPaidByUserID flips every bill for the user to paid. Zero matched
// rows is not an error.
func (r *billRepository) MarkAllPaidByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Bill{}).
		Where("user_id = ?", userID).
		Update("payment_status", models.PaymentStatusPaid).Error
}

// ListUnpaidDueBetween returns unpaid bills whose deadline falls in [from, to)
func (r *billRepository) ListUnpaidDueBetween(ctx context.Context, from, to time.Time) ([]*models.Bill, error) {
	var bills []*models.Bill
	err := r.db.WithContext(ctx).
		Where("payment_status = ?", models.PaymentStatusUnpaid).
		Where("bill_deadline_date >= ? AND bill_deadline_date < ?", from, to).
		Find(&bills).Error
	if err != nil {
		return nil, err
	}
	return bills, nil
}
