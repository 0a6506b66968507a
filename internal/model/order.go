package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID     uint            `gorm:"primaryKey"`
	Ref    string          `gorm:"size:64;uniqueIndex;not null"`
	Status string          `gorm:"size:32;index;not null"`
	UserID *uint           `gorm:"index"`
	User   *User
	Email  string          `gorm:"size:128"`
	Total  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// AmountPaid accumulates recorded payments; it never exceeds Total in
	// normal operation because payment recording is idempotent per
	// transaction id.
	AmountPaid decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Items      []OrderItem     `gorm:"constraint:OnDelete:CASCADE"`
	Payments   []OrderPayment  `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type OrderItem struct {
	ID        uint            `gorm:"primaryKey"`
	OrderID   uint            `gorm:"index;not null"`
	Name      string          `gorm:"size:128;not null"`
	Sku       string          `gorm:"size:64"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time
}

// OrderPayment records one captured payment. TransactionID carries the
// processor's capture id and doubles as the idempotency key: the unique index
// makes a repeated capture callback a no-op instead of a double credit.
type OrderPayment struct {
	ID            uint            `gorm:"primaryKey"`
	OrderID       uint            `gorm:"index;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TransactionID string          `gorm:"size:64;uniqueIndex;not null"`
	PaymentMethod string          `gorm:"size:32;not null"`
	CreatedAt     time.Time
}
