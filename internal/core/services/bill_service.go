package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/prasad217/Electric-Billing-system/internal/adapters/persistence/models"
	"github.com/prasad217/Electric-Billing-system/internal/adapters/persistence/repositories"
	"github.com/prasad217/Electric-Billing-system/internal/pkg/metrics"

	"gorm.io/gorm"
)

// Billing constants. The rate is a process-wide constant; every bill's
// amount is watts used times this rate, and the deadline is exactly 18
// days after generation.
const (
	CostPerWatt  = 15.0
	DeadlineDays = 18
)

// Bill errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrBillNotFound = errors.New("bill not found")
)

// Notifier queues an outbox entry for delivery after its row is committed.
type Notifier interface {
	Enqueue(outboxID uint)
}

// BillService handles bill generation and retrieval
type BillService struct {
	db         *gorm.DB
	userRepo   repositories.UserRepository
	billRepo   repositories.BillRepository
	outboxRepo repositories.OutboxRepository
	notifier   Notifier
}

// NewBillService creates a new bill service
func NewBillService(
	db *gorm.DB,
	userRepo repositories.UserRepository,
	billRepo repositories.BillRepository,
	outboxRepo repositories.OutboxRepository,
	notifier Notifier,
) *BillService {
	return &BillService{
		db:         db,
		userRepo:   userRepo,
		billRepo:   billRepo,
		outboxRepo: outboxRepo,
		notifier:   notifier,
	}
}

// GenerateBill looks up the user, computes the amount, and persists the
// bill together with its notification outbox row in one transaction.
// The email itself is dispatched after commit and its outcome never
// reaches the caller.
func (s *BillService) GenerateBill(ctx context.Context, userID uint, wattsUsed float64) (*models.Bill, error) {
	var bill *models.Bill
	var entry *models.EmailOutbox

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.userRepo.WithTx(tx).GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		generated := time.Now()
		bill = &models.Bill{
			UserID:                 user.ID,
			ElectricityBoardNumber: user.ElectricityBoardNumber,
			WattsUsed:              wattsUsed,
			BillAmount:             wattsUsed * CostPerWatt,
			BillGeneratedDate:      generated,
			BillDeadlineDate:       generated.AddDate(0, 0, DeadlineDays),
			PaymentStatus:          models.PaymentStatusUnpaid,
		}

		if err := s.billRepo.WithTx(tx).Create(ctx, bill); err != nil {
			return err
		}

		entry = buildBillEmail(user.Email, bill)
		return s.outboxRepo.WithTx(tx).Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordBillGenerated()
	log.Printf("✅ Bill generated: user=%d amount=%.2f", bill.UserID, bill.BillAmount)

	// Fire-and-forget from the caller's perspective
	s.notifier.Enqueue(entry.ID)

	return bill, nil
}

// GetLatestBill returns the most recently generated bill for a user
func (s *BillService) GetLatestBill(ctx context.Context, userID uint) (*models.Bill, error) {
	bill, err := s.billRepo.GetLatestByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBillNotFound
		}
		return nil, err
	}
	return bill, nil
}

// buildBillEmail formats the bill notification body.
func buildBillEmail(recipient string, bill *models.Bill) *models.EmailOutbox {
	body := fmt.Sprintf(
		"Dear customer,\n\nYour electricity bill details:\n\n"+
			"Watts Used: %v\nBill Amount: %v\nBill Generated Date: %v\nBill Deadline Date: %v\n\n"+
			"Thank you for using our service.",
		bill.WattsUsed,
		bill.BillAmount,
		bill.BillGeneratedDate,
		bill.BillDeadlineDate,
	)

	billID := bill.ID
	return &models.EmailOutbox{
		BillID:    &billID,
		Recipient: recipient,
		Subject:   "Your Electricity Bill",
		Body:      body,
		Status:    models.OutboxStatusPending,
	}
}
