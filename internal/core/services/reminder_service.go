package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/prasad217/Electric-Billing-system/internal/adapters/persistence/models"
	"github.com/prasad217/Electric-Billing-system/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// ReminderService runs the daily payment-reminder job. Every morning it
// queues a reminder email for unpaid bills whose deadline is three days
// out; the 24h window means each bill is picked up once.
type ReminderService struct {
	billRepo   repositories.BillRepository
	userRepo   repositories.UserRepository
	outboxRepo repositories.OutboxRepository
	notifier   Notifier
	cron       *cron.Cron
}

// NewReminderService creates a new reminder service
func NewReminderService(
	billRepo repositories.BillRepository,
	userRepo repositories.UserRepository,
	outboxRepo repositories.OutboxRepository,
	notifier Notifier,
) *ReminderService {
	return &ReminderService{
		billRepo:   billRepo,
		userRepo:   userRepo,
		outboxRepo: outboxRepo,
		notifier:   notifier,
		cron:       cron.New(),
	}
}

// Start schedules the daily reminder job (08:30)
func (s *ReminderService) Start() {
	if _, err := s.cron.AddFunc("30 8 * * *", s.EnqueueDeadlineReminders); err != nil {
		log.Printf("❌ Failed to schedule reminder job: %v", err)
		return
	}
	s.cron.Start()
	log.Println("🚀 ReminderService started (daily 08:30)")
}

// Stop stops the cron scheduler
func (s *ReminderService) Stop() {
	s.cron.Stop()
	log.Println("🛑 ReminderService stopped")
}

// EnqueueDeadlineReminders queues a reminder for every unpaid bill whose
// deadline falls between two and three days from now.
func (s *ReminderService) EnqueueDeadlineReminders() {
	ctx := context.Background()
	now := time.Now()

	bills, err := s.billRepo.ListUnpaidDueBetween(ctx, now.AddDate(0, 0, 2), now.AddDate(0, 0, 3))
	if err != nil {
		log.Printf("❌ Reminder query error: %v", err)
		return
	}

	queued := 0
	for _, bill := range bills {
		user, err := s.userRepo.GetByID(ctx, bill.UserID)
		if err != nil {
			log.Printf("❌ Reminder user lookup error for bill %d: %v", bill.ID, err)
			continue
		}

		entry := buildReminderEmail(user.Email, bill)
		if err := s.outboxRepo.Create(ctx, entry); err != nil {
			log.Printf("❌ Reminder outbox write error for bill %d: %v", bill.ID, err)
			continue
		}

		s.notifier.Enqueue(entry.ID)
		queued++
	}

	if queued > 0 {
		log.Printf("📧 Queued %d payment reminders", queued)
	}
}

func buildReminderEmail(recipient string, bill *models.Bill) *models.EmailOutbox {
	body := fmt.Sprintf(
		"Dear customer,\n\nThis is a reminder that your electricity bill is due soon.\n\n"+
			"Bill Amount: %v\nBill Deadline Date: %v\n\n"+
			"Thank you for using our service.",
		bill.BillAmount,
		bill.BillDeadlineDate,
	)

	return &models.EmailOutbox{
		Recipient: recipient,
		Subject:   "Electricity Bill Payment Reminder",
		Body:      body,
		Status:    models.OutboxStatusPending,
	}
}
