package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Withdrawal is one removal of cash from the back safe for an external
// purpose (petty cash, change fund, etc.). Withdrawals are append-only.
type Withdrawal struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	// Date defaults to the day the withdrawal was requested (YYYY-MM-DD).
	Date      string          `gorm:"type:varchar(10);not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Reason    string
	ClientRef *string   `gorm:"type:varchar(64);uniqueIndex"`
	CreatedAt time.Time `gorm:"index"`
}
