package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	OrderStatusAwaitingPayment = "awaiting_payment"
	OrderStatusPending         = "pending"
	OrderStatusApproved        = "approved"
	OrderStatusRejected        = "rejected"
	OrderStatusCompleted       = "completed"
)

const (
	PaymentMethodUPIManual = "upi_manual"
	PaymentMethodCashfree  = "cashfree"
)

const (
	ItemTypePlan = "plan"
	ItemTypeRank = "rank"
)

// Order is the central entity. OrderID is the public human-readable identifier,
// assigned once at creation. The unique index on utr_number only applies to
// non-null values (Postgres ignores NULLs), so gateway orders are exempt.
type Order struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	OrderID  string     `gorm:"size:32;uniqueIndex;not null" json:"orderId"`
	PlanID   *uuid.UUID `gorm:"type:uuid" json:"planId"`
	RankID   *uuid.UUID `gorm:"type:uuid" json:"rankId"`
	ItemType string     `gorm:"size:10;default:'plan'" json:"itemType"`
	PlanName string     `gorm:"size:255;not null" json:"planName"`
	Amount   float64    `gorm:"type:numeric(10,2);not null" json:"amount"`

	Name  string `gorm:"size:255;not null" json:"name"`
	Phone string `gorm:"size:20;not null" json:"phone"`
	Email string `gorm:"size:255;default:''" json:"email"`

	PaymentMethod string  `gorm:"size:20;default:'upi_manual'" json:"paymentMethod"`
	UTRNumber     *string `gorm:"size:64;uniqueIndex" json:"utrNumber"`

	CashfreeOrderID       *string `gorm:"size:64" json:"cashfreeOrderId"`
	CashfreePaymentID     *string `gorm:"size:64" json:"cashfreePaymentId"`
	CashfreePaymentStatus *string `gorm:"size:32" json:"cashfreePaymentStatus"`
	CashfreePaymentMode   *string `gorm:"size:32" json:"cashfreePaymentMode"`

	Status string `gorm:"size:20;default:'pending';index" json:"status"`
	Notes  string `gorm:"type:text;default:''" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
