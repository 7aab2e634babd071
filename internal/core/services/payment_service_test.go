package services

import (
	"context"
	"testing"
	"time"

	"github.com/prasad217/Electric-Billing-system/internal/adapters/persistence/models"
	"github.com/prasad217/Electric-Billing-system/internal/adapters/persistence/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedBill(t *testing.T, db *gorm.DB, userID uint) *models.Bill {
	t.Helper()

	bill := &models.Bill{
		UserID:                 userID,
		ElectricityBoardNumber: "B1",
		WattsUsed:              10,
		BillAmount:             150,
		BillGeneratedDate:      time.Now(),
		BillDeadlineDate:       time.Now().AddDate(0, 0, 18),
		PaymentStatus:          models.PaymentStatusUnpaid,
	}
	require.NoError(t, db.Create(bill).Error)
	return bill
}

func TestPayBillsMarksAllForUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(repositories.NewBillRepository(db))
	ctx := context.Background()

	// Two bills for user 1, one for user 2
	seedBill(t, db, 1)
	seedBill(t, db, 1)
	other := seedBill(t, db, 2)

	require.NoError(t, svc.PayBills(ctx, 1))

	var paid int64
	db.Model(&models.Bill{}).
		Where("user_id = ? AND payment_status = ?", 1, models.PaymentStatusPaid).
		Count(&paid)
	assert.Equal(t, int64(2), paid)

	// Other users' bills are untouched
	var untouched models.Bill
	require.NoError(t, db.First(&untouched, other.ID).Error)
	assert.Equal(t, models.PaymentStatusUnpaid, untouched.PaymentStatus)
}

func TestPayBillsNoBills(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(repositories.NewBillRepository(db))

	// Zero matching rows is still a success
	assert.NoError(t, svc.PayBills(context.Background(), 99))
}
