package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateEntryRequest struct {
	Date      string          `json:"date"       validate:"required,datetime=2006-01-02"`
	CashIn    decimal.Decimal `json:"cash_in"    validate:"min=0"`
	FrontSafe decimal.Decimal `json:"front_safe" validate:"min=0"`
	BackSafe  decimal.Decimal `json:"back_safe"  validate:"min=0"`
	Deposited decimal.Decimal `json:"deposited"  validate:"min=0"`
	Notes     string          `json:"notes"`
	// ClientRef deduplicates retried creates; a replay with the same ref
	// returns the original row instead of appending a second one.
	ClientRef *string `json:"client_ref" validate:"omitempty,min=1,max=64"`
}

type UpdateEntryRequest struct {
	Date      string          `json:"date"       validate:"required,datetime=2006-01-02"`
	CashIn    decimal.Decimal `json:"cash_in"    validate:"min=0"`
	FrontSafe decimal.Decimal `json:"front_safe" validate:"min=0"`
	BackSafe  decimal.Decimal `json:"back_safe"  validate:"min=0"`
	Deposited decimal.Decimal `json:"deposited"  validate:"min=0"`
	Notes     string          `json:"notes"`
}

type ApproveEntryRequest struct {
	Reason string `json:"reason" validate:"required,min=1"`
}

type WithdrawalRequest struct {
	Amount    decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Reason    string          `json:"reason"`
	ClientRef *string         `json:"client_ref" validate:"omitempty,min=1,max=64"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type EntryResponse struct {
	ID         string          `json:"id"`
	Date       string          `json:"date"`
	CashIn     decimal.Decimal `json:"cash_in"`
	FrontSafe  decimal.Decimal `json:"front_safe"`
	BackSafe   decimal.Decimal `json:"back_safe"`
	Deposited  decimal.Decimal `json:"deposited"`
	Notes      string          `json:"notes"`
	Mismatch   bool            `json:"mismatch"`
	Difference decimal.Decimal `json:"difference"`
	// DifferenceLabel is "Match", "Short $<n>" or "Over $<n>".
	DifferenceLabel string `json:"difference_label"`
	Approved        bool   `json:"approved"`
	ApprovedReason  string `json:"approved_reason"`
	CreatedAt       string `json:"created_at"`
}

// SafeTotalsResponse reports the derived safe aggregates. BackTotal is
// the raw sum of back-safe contributions; BackAvailable nets prior
// withdrawals out and is the figure withdrawal sufficiency is checked
// against.
type SafeTotalsResponse struct {
	FrontTotal    decimal.Decimal `json:"front_total"`
	BackTotal     decimal.Decimal `json:"back_total"`
	BackAvailable decimal.Decimal `json:"back_available"`
}

type EntryListResponse struct {
	Entries []EntryResponse    `json:"entries"`
	Totals  SafeTotalsResponse `json:"totals"`
}

type WithdrawalResponse struct {
	ID        string          `json:"id"`
	Date      string          `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
	CreatedAt string          `json:"created_at"`
}
