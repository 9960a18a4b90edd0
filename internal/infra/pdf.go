package infra

// pdf.go — daily reconciliation report generation using go-pdf/fpdf.
// Renders an A4 summary of one day's entries:
//   - Report header with the date
//   - Entry table (cash in, front/back safe, deposited, difference)
//   - Approval status per mismatched entry
//   - Safe totals footer

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/thatman123-source/cash-reconciliation/internal/dto"
)

// BuildDailyReport renders the PDF for one calendar day and returns the
// document bytes, ready to stream to the client.
func BuildDailyReport(date string, entries []dto.EntryResponse, totals dto.SafeTotalsResponse) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Daily Cash Reconciliation", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, date, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Entry table ──────────────────────────────────────────────────────────
	colAmount := contentW * 0.13
	colDiff := contentW * 0.22
	colStatus := contentW - 4*colAmount - colDiff

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(colAmount, 6, "Cash In", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colAmount, 6, "Front", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colAmount, 6, "Back", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colAmount, 6, "Deposited", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colDiff, 6, "Difference", "B", 0, "C", false, 0, "")
	pdf.CellFormat(colStatus, 6, "Status", "B", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, e := range entries {
		status := "OK"
		if e.Mismatch {
			status = "Unapproved mismatch"
			if e.Approved {
				status = "Approved: " + e.ApprovedReason
			}
		}
		pdf.CellFormat(colAmount, 6, "$"+e.CashIn.String(), "", 0, "R", false, 0, "")
		pdf.CellFormat(colAmount, 6, "$"+e.FrontSafe.String(), "", 0, "R", false, 0, "")
		pdf.CellFormat(colAmount, 6, "$"+e.BackSafe.String(), "", 0, "R", false, 0, "")
		pdf.CellFormat(colAmount, 6, "$"+e.Deposited.String(), "", 0, "R", false, 0, "")
		pdf.CellFormat(colDiff, 6, e.DifferenceLabel, "", 0, "C", false, 0, "")
		pdf.CellFormat(colStatus, 6, status, "", 1, "L", false, 0, "")
	}
	if len(entries) == 0 {
		pdf.CellFormat(contentW, 6, "No entries recorded for this date.", "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	// ── Totals footer ────────────────────────────────────────────────────────
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Front safe total: $%s", totals.FrontTotal.String()), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Back safe total: $%s (available: $%s)",
		totals.BackTotal.String(), totals.BackAvailable.String()), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render daily report: %w", err)
	}
	return buf.Bytes(), nil
}
