// Package recon is the pure reconciliation engine: given an entry's
// currency fields it computes the mismatch flag and signed difference,
// and it validates the approval transition. It performs no I/O and
// holds no state; cross-entry rules (totals, withdrawal sufficiency)
// live in the ledger service.
package recon

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/thatman123-source/cash-reconciliation/internal/model"
)

// ErrInvalidApproval is returned when an approval is attempted on an
// entry that is not currently mismatched-and-unapproved, or when the
// reason is empty.
var ErrInvalidApproval = errors.New("invalid approval")

// Compute derives the mismatch flag and signed difference from the four
// currency fields. Difference = cashIn - (frontSafe+backSafe+deposited);
// positive means cash is unaccounted for (short), negative means the
// routed total exceeds the recorded inflow (over). Comparison is exact
// decimal equality — no tolerance. Negative inputs are not rejected
// here; that is a service-boundary concern.
func Compute(cashIn, frontSafe, backSafe, deposited decimal.Decimal) (mismatch bool, difference decimal.Decimal) {
	accounted := frontSafe.Add(backSafe).Add(deposited)
	difference = cashIn.Sub(accounted)
	return !difference.IsZero(), difference
}

// Approve validates the one-way approval transition and returns the
// approved copy of the entry. It succeeds only when the entry is
// mismatched, not yet approved, and the reason is non-blank.
// Re-approving an already-approved entry is rejected rather than
// silently overwriting the prior reason.
func Approve(e model.Entry, reason string) (model.Entry, error) {
	if strings.TrimSpace(reason) == "" {
		return e, fmt.Errorf("%w: approval reason is required", ErrInvalidApproval)
	}
	if !e.Mismatch {
		return e, fmt.Errorf("%w: entry has no mismatch to approve", ErrInvalidApproval)
	}
	if e.Approved {
		return e, fmt.Errorf("%w: entry is already approved", ErrInvalidApproval)
	}
	e.Approved = true
	e.ApprovedReason = reason
	return e, nil
}

// FormatDifference renders the signed difference with the sign
// convention the rest of the system relies on: a positive difference is
// cash missing ("Short"), a negative one is cash over-accounted ("Over").
func FormatDifference(d decimal.Decimal) string {
	switch {
	case d.IsZero():
		return "Match"
	case d.IsPositive():
		return "Short $" + d.String()
	default:
		return "Over $" + d.Abs().String()
	}
}
