package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry is one day's cash reconciliation record: the cash that came in
// versus where it was physically routed (front safe, back safe, bank
// deposit). Mismatch and Difference are derived server-side on every
// create/edit — caller-supplied values are never stored.
type Entry struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// Date is the calendar day the entry describes (YYYY-MM-DD),
	// caller-supplied and not cross-checked against CreatedAt.
	Date      string          `gorm:"type:varchar(10);not null;index"`
	CashIn    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FrontSafe decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	BackSafe  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Deposited decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Notes     string
	// Mismatch is true iff FrontSafe+BackSafe+Deposited != CashIn.
	Mismatch bool `gorm:"not null"`
	// Difference = CashIn - (FrontSafe+BackSafe+Deposited).
	// Positive means cash is unaccounted for (short), negative means over.
	Difference     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Approved       bool            `gorm:"not null;default:false"`
	ApprovedReason string
	// ClientRef is an optional caller-supplied idempotency key so that a
	// retried create cannot duplicate the row.
	ClientRef *string   `gorm:"type:varchar(64);uniqueIndex"`
	CreatedAt time.Time `gorm:"index"`
}
