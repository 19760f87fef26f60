package models

import (
	"time"

	"gorm.io/gorm"
)

// Base replaces gorm.Model so identity and timestamps serialize with the
// snake_case keys the console expects ("id", "created_at").
type Base struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// Payment status values shared by activities, revenue and expenses.
const (
	PaymentPending    = "Pending"
	PaymentCompleted  = "Completed"
	PaymentIncomplete = "Incomplete"
	PaymentPastDue    = "Past Due"
	PaymentCanceled   = "Canceled"
)

// PaymentStatuses lists every accepted payment status, in display order.
var PaymentStatuses = []string{
	PaymentPending,
	PaymentCompleted,
	PaymentIncomplete,
	PaymentPastDue,
	PaymentCanceled,
}
