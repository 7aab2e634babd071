package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Accounts
// ============================================================

// User represents the users table. Column names follow the
// electricity_payment_system schema as deployed; migrations must not
// rename them.
type User struct {
	ID                     uint   `gorm:"primaryKey" json:"id"`
	Name                   string `gorm:"size:100;not null" json:"name"`
	Address                string `gorm:"size:255;not null" json:"address"`
	PhoneNumber            string `gorm:"column:PhoneNumber;size:20;not null" json:"PhoneNumber"`
	ElectricityBoardNumber string `gorm:"column:electricityBoardNumber;size:50;not null" json:"electricityBoardNumber"`
	Email                  string `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password               string `gorm:"size:255;not null" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// Administrator represents the administrators table.
// Registration accepts an open-ended field set; these are the
// columns the rest of the system reads back.
type Administrator struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:100" json:"name"`
	Email    string `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"`
}

func (Administrator) TableName() string {
	return "administrators"
}

// ============================================================
// Billing
// ============================================================

// Payment status values for bills. The transition is one-way:
// unpaid -> paid.
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// Bill represents the bills table. The electricity board number is a
// denormalized copy taken from the user at generation time; later changes
// to the user's board number do not touch past bills.
type Bill struct {
	ID                     uint      `gorm:"primaryKey" json:"id"`
	UserID                 uint      `gorm:"column:user_id;index;not null" json:"user_id"`
	ElectricityBoardNumber string    `gorm:"column:electricityBoardNumber;size:50;not null" json:"electricityBoardNumber"`
	WattsUsed              float64   `gorm:"column:watts_used;not null" json:"watts_used"`
	BillAmount             float64   `gorm:"column:bill_amount;not null" json:"bill_amount"`
	BillGeneratedDate      time.Time `gorm:"column:bill_generated_date;not null" json:"bill_generated_date"`
	BillDeadlineDate       time.Time `gorm:"column:bill_deadline_date;not null" json:"bill_deadline_date"`
	PaymentStatus          string    `gorm:"column:payment_status;size:10;default:'unpaid'" json:"payment_status"`
}

func (Bill) TableName() string {
	return "bills"
}

// BillResponse DTO returned by the generate-bill endpoint.
// Key casing is camelCase, unlike the stored row.
type BillResponse struct {
	UserID                 uint      `json:"userId"`
	ElectricityBoardNumber string    `json:"electricityBoardNumber"`
	WattsUsed              float64   `json:"wattsUsed"`
	BillAmount             float64   `json:"billAmount"`
	BillGeneratedDate      time.Time `json:"billGeneratedDate"`
	BillDeadlineDate       time.Time `json:"billDeadlineDate"`
}

func (b *Bill) ToResponse() *BillResponse {
	return &BillResponse{
		UserID:                 b.UserID,
		ElectricityBoardNumber: b.ElectricityBoardNumber,
		WattsUsed:              b.WattsUsed,
		BillAmount:             b.BillAmount,
		BillGeneratedDate:      b.BillGeneratedDate,
		BillDeadlineDate:       b.BillDeadlineDate,
	}
}

// ============================================================
// Notification outbox
// ============================================================

// Outbox status values.
const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
)

// EmailOutbox represents the email_outbox table. Rows are written in the
// same transaction as the bill they announce and dispatched afterwards;
// the row keeps the delivery outcome.
type EmailOutbox struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	BillID    *uint      `gorm:"index" json:"bill_id"`
	Recipient string     `gorm:"size:100;not null" json:"recipient"`
	Subject   string     `gorm:"size:200;not null" json:"subject"`
	Body      string     `gorm:"type:text;not null" json:"body"`
	Status    string     `gorm:"size:10;index;default:'pending'" json:"status"`
	Error     string     `gorm:"type:text" json:"error,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	SentAt    *time.Time `json:"sent_at"`
}

func (EmailOutbox) TableName() string {
	return "email_outbox"
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Administrator{},
		&Bill{},
		&EmailOutbox{},
	)
}
