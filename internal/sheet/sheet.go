// Package sheet parses the legacy spreadsheet export this system
// replaced. The old store was untyped: booleans arrive as native cell
// values or the literal strings "TRUE"/"FALSE", and every amount is a
// string. All coercion happens here, isolated from business logic.
package sheet

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/thatman123-source/cash-reconciliation/internal/model"
	"github.com/thatman123-source/cash-reconciliation/internal/recon"
)

// Sheet names in the legacy workbook.
const (
	EntriesSheet     = "entries"
	WithdrawalsSheet = "withdraws"
)

// entries columns: timestamp, date, cashIn, frontSafe, backSafe,
// deposited, notes, mismatch, difference, approved, approvedReason.
// withdraws columns: timestamp, date, amount, reason.
const (
	entryCols      = 11
	withdrawalCols = 4
)

// CoerceBool normalizes the legacy store's boolean representations:
// a native TRUE cell, the string "TRUE" in any casing, or "1".
func CoerceBool(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "true", "1":
		return true
	default:
		return false
	}
}

// CoerceAmount parses a currency cell: optional $ prefix, thousands
// separators ("$1,234.00"), and accountant-style parenthesized
// negatives ("(25.00)"). Blank cells count as zero.
func CoerceAmount(cell string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(cell)
	negative := false
	if strings.HasPrefix(trimmed, "(") && strings.HasSuffix(trimmed, ")") {
		negative = true
		trimmed = trimmed[1 : len(trimmed)-1]
	}
	trimmed = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(trimmed), "$"))
	trimmed = strings.ReplaceAll(trimmed, ",", "")
	if trimmed == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, err
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// coerceTimestamp tries the layouts the legacy store produced. A zero
// time is returned when none match; the DB then stamps insertion time.
func coerceTimestamp(cell string) time.Time {
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"1/2/2006 15:04:05",
		"2006-01-02",
	}
	trimmed := strings.TrimSpace(cell)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t
		}
	}
	return time.Time{}
}

// pad widens short rows: trailing blank cells are dropped by the
// spreadsheet reader when a row ends in empty columns.
func pad(cols []string, width int) []string {
	for len(cols) < width {
		cols = append(cols, "")
	}
	return cols
}

// ParseEntries converts raw entry rows into models. Row 0 is the header
// and is skipped. Mismatch and difference are recomputed from the
// amounts rather than trusted from the stored cells; a disagreement is
// logged so stale legacy state is visible in the import summary.
func ParseEntries(rows [][]string) ([]model.Entry, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	entries := make([]model.Entry, 0, len(rows)-1)
	for i, cols := range rows[1:] {
		cols = pad(cols, entryCols)

		cashIn, err := CoerceAmount(cols[2])
		if err != nil {
			return nil, fmt.Errorf("entries row %d: cashIn: %w", i+2, err)
		}
		frontSafe, err := CoerceAmount(cols[3])
		if err != nil {
			return nil, fmt.Errorf("entries row %d: frontSafe: %w", i+2, err)
		}
		backSafe, err := CoerceAmount(cols[4])
		if err != nil {
			return nil, fmt.Errorf("entries row %d: backSafe: %w", i+2, err)
		}
		deposited, err := CoerceAmount(cols[5])
		if err != nil {
			return nil, fmt.Errorf("entries row %d: deposited: %w", i+2, err)
		}

		mismatch, difference := recon.Compute(cashIn, frontSafe, backSafe, deposited)
		if storedMismatch := CoerceBool(cols[7]); storedMismatch != mismatch {
			log.Warn().
				Int("row", i+2).
				Bool("stored", storedMismatch).
				Bool("recomputed", mismatch).
				Msg("legacy mismatch flag disagrees with recomputed value; using recomputed")
		}

		entries = append(entries, model.Entry{
			Date:           strings.TrimSpace(cols[1]),
			CashIn:         cashIn,
			FrontSafe:      frontSafe,
			BackSafe:       backSafe,
			Deposited:      deposited,
			Notes:          cols[6],
			Mismatch:       mismatch,
			Difference:     difference,
			Approved:       CoerceBool(cols[9]),
			ApprovedReason: cols[10],
			CreatedAt:      coerceTimestamp(cols[0]),
		})
	}
	return entries, nil
}

// ParseWithdrawals converts raw withdrawal rows into models, skipping
// the header row.
func ParseWithdrawals(rows [][]string) ([]model.Withdrawal, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	withdrawals := make([]model.Withdrawal, 0, len(rows)-1)
	for i, cols := range rows[1:] {
		cols = pad(cols, withdrawalCols)

		amount, err := CoerceAmount(cols[2])
		if err != nil {
			return nil, fmt.Errorf("withdraws row %d: amount: %w", i+2, err)
		}
		withdrawals = append(withdrawals, model.Withdrawal{
			Date:      strings.TrimSpace(cols[1]),
			Amount:    amount,
			Reason:    cols[3],
			CreatedAt: coerceTimestamp(cols[0]),
		})
	}
	return withdrawals, nil
}

// LoadWorkbook reads the legacy .xlsx export and returns both tables.
func LoadWorkbook(path string) ([]model.Entry, []model.Withdrawal, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	entryRows, err := f.GetRows(EntriesSheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s sheet: %w", EntriesSheet, err)
	}
	entries, err := ParseEntries(entryRows)
	if err != nil {
		return nil, nil, err
	}

	withdrawalRows, err := f.GetRows(WithdrawalsSheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s sheet: %w", WithdrawalsSheet, err)
	}
	withdrawals, err := ParseWithdrawals(withdrawalRows)
	if err != nil {
		return nil, nil, err
	}

	return entries, withdrawals, nil
}
