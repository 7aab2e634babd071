package repositories

import (
	"context"
	"time"

	"github.com/prasad217/Electric-Billing-system/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// outboxRepository implements OutboxRepository interface
type outboxRepository struct {
	db *gorm.DB
}

// NewOutboxRepository creates a new outbox repository
func NewOutboxRepository(db *gorm.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

// WithTx returns a repository bound to the given transaction
func (r *outboxRepository) WithTx(tx *gorm.DB) OutboxRepository {
	return &outboxRepository{db: tx}
}

// Create creates a new outbox entry
func (r *outboxRepository) Create(ctx context.Context, entry *models.EmailOutbox) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// GetByID gets an outbox entry by ID
func (r *outboxRepository) GetByID(ctx context.Context, id uint) (*models.EmailOutbox, error) {
	var entry models.EmailOutbox
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListPending returns entries that were committed but never dispatched
func (r *outboxRepository) ListPending(ctx context.Context) ([]*models.EmailOutbox, error) {
	var entries []*models.EmailOutbox
	err := r.db.WithContext(ctx).
		Where("status = ?", models.OutboxStatusPending).
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// MarkSent stamps a successful delivery on the entry
func (r *outboxRepository) MarkSent(ctx context.Context, id uint) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&models.EmailOutbox{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  models.OutboxStatusSent,
			"sent_at": now,
			"error":   "",
		}).Error
}

// MarkFailed records the delivery failure on the entry
func (r *outboxRepository) MarkFailed(ctx context.Context, id uint, reason string) error {
	return r.db.WithContext(ctx).
		Model(&models.EmailOutbox{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status": models.OutboxStatusFailed,
			"error":  reason,
		}).Error
}
