package services

import (
	"context"
	"log"

	"github.com/prasad217/Electric-Billing-system/internal/adapters/persistence/repositories"
)

// PaymentService handles bill payment
type PaymentService struct {
	billRepo repositories.BillRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(billRepo repositories.BillRepository) *PaymentService {
	return &PaymentService{billRepo: billRepo}
}

// PayBills marks every bill for the user paid. There is no targeting of a
// single bill: if the user has several unpaid bills, one call pays them
// all, and zero matching rows still succeeds.
func (s *PaymentService) PayBills(ctx context.Context, userID uint) error {
	if err := s.billRepo.MarkAllPaidByUserID(ctx, userID); err != nil {
		return err
	}

	log.Printf("✅ Bills marked paid: user=%d", userID)
	return nil
}
