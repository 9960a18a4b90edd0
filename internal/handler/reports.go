package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thatman123-source/cash-reconciliation/internal/apierror"
	"github.com/thatman123-source/cash-reconciliation/internal/infra"
	"github.com/thatman123-source/cash-reconciliation/internal/service"
)

type ReportsHandler struct{ svc service.LedgerService }

func NewReportsHandler(svc service.LedgerService) *ReportsHandler { return &ReportsHandler{svc: svc} }

// Daily godoc
// @Summary Download the reconciliation report for one day as PDF
// @Tags reports
// @Produce application/pdf
// @Param date query string true "Calendar date (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Failure 400 {object} apierror.APIError
// @Router /v1/reports/daily [get]
func (h *ReportsHandler) Daily(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Query parameter 'date' is required"))
		return
	}

	entries, err := h.svc.EntriesForDate(c.Request.Context(), date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	totals, err := h.svc.Totals(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	pdf, err := infra.BuildDailyReport(date, entries, *totals)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=reconciliation_%s.pdf", date))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
