package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/prasad217/Electric-Billing-system/internal/adapters/persistence/models"
	"github.com/prasad217/Electric-Billing-system/internal/adapters/persistence/repositories"
	"github.com/prasad217/Electric-Billing-system/internal/pkg/mailer"
	"github.com/prasad217/Electric-Billing-system/internal/pkg/metrics"
)

// NotificationService drains the email outbox. Entries are enqueued after
// their row is committed; the worker sends each one once and stamps the
// outcome back on the row. Failed sends are logged and recorded, never
// retried, and never surfaced to any HTTP caller.
type NotificationService struct {
	outboxRepo repositories.OutboxRepository
	mailer     mailer.Mailer

	queue    chan uint
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewNotificationService creates a new notification service
func NewNotificationService(outboxRepo repositories.OutboxRepository, m mailer.Mailer) *NotificationService {
	return &NotificationService{
		outboxRepo: outboxRepo,
		mailer:     m,
		queue:      make(chan uint, 256),
		stopChan:   make(chan struct{}),
	}
}

// Start launches the dispatch worker and re-queues entries that were
// committed but never dispatched (crash between commit and send).
func (s *NotificationService) Start() {
	s.wg.Add(1)
	go s.run()

	pending, err := s.outboxRepo.ListPending(context.Background())
	if err != nil {
		log.Printf("❌ Outbox pending scan error: %v", err)
	} else {
		for _, entry := range pending {
			s.Enqueue(entry.ID)
		}
		if len(pending) > 0 {
			log.Printf("📧 Re-queued %d pending outbox entries", len(pending))
		}
	}

	log.Println("🚀 NotificationService started")
}

// Stop drains nothing further and waits for the worker to exit
func (s *NotificationService) Stop() {
	close(s.stopChan)
	s.wg.Wait()
	log.Println("🛑 NotificationService stopped")
}

// Enqueue queues an outbox entry for dispatch. Never blocks the caller;
// a full queue drops the id, and the startup re-queue sweep is the only
// thing that would pick the row up again.
func (s *NotificationService) Enqueue(outboxID uint) {
	select {
	case s.queue <- outboxID:
	default:
		log.Printf("⚠️ Notification queue full, dropping outbox entry %d", outboxID)
	}
}

func (s *NotificationService) run() {
	defer s.wg.Done()

	for {
		select {
		case id := <-s.queue:
			s.dispatch(id)
		case <-s.stopChan:
			return
		}
	}
}

func (s *NotificationService) dispatch(id uint) {
	ctx := context.Background()

	entry, err := s.outboxRepo.GetByID(ctx, id)
	if err != nil {
		log.Printf("❌ Outbox load error for entry %d: %v", id, err)
		return
	}
	if entry.Status != models.OutboxStatusPending {
		return
	}

	emailType := "reminder"
	if entry.BillID != nil {
		emailType = "bill"
	}

	start := time.Now()
	if err := s.mailer.Send(ctx, entry.Recipient, entry.Subject, entry.Body); err != nil {
		log.Printf("❌ Email sending failed: %v", err)
		metrics.RecordEmailFailed(emailType)
		if markErr := s.outboxRepo.MarkFailed(ctx, entry.ID, err.Error()); markErr != nil {
			log.Printf("❌ Outbox mark-failed error for entry %d: %v", entry.ID, markErr)
		}
		return
	}

	metrics.RecordEmailSent(emailType, time.Since(start))
	if err := s.outboxRepo.MarkSent(ctx, entry.ID); err != nil {
		log.Printf("❌ Outbox mark-sent error for entry %d: %v", entry.ID, err)
		return
	}

	log.Printf("📧 Email sent: %s (%s)", entry.Recipient, entry.Subject)
}
