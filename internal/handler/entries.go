package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thatman123-source/cash-reconciliation/internal/apierror"
	"github.com/thatman123-source/cash-reconciliation/internal/dto"
	"github.com/thatman123-source/cash-reconciliation/internal/service"
)

type EntriesHandler struct{ svc service.LedgerService }

func NewEntriesHandler(svc service.LedgerService) *EntriesHandler { return &EntriesHandler{svc: svc} }

// List godoc
// @Summary List all reconciliation entries with current safe totals
// @Tags entries
// @Produce json
// @Success 200 {object} dto.EntryListResponse
// @Router /v1/entries [get]
func (h *EntriesHandler) List(c *gin.Context) {
	resp, err := h.svc.ListEntries(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Record one day's cash reconciliation entry
// @Tags entries
// @Accept json
// @Produce json
// @Param body body dto.CreateEntryRequest true "Entry fields"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} apierror.APIError
// @Failure 422 {object} apierror.ValidationError
// @Router /v1/entries [post]
func (h *EntriesHandler) Create(c *gin.Context) {
	var req dto.CreateEntryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateEntry(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update godoc
// @Summary Overwrite an entry in place; mismatch and difference are recomputed
// @Tags entries
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param body body dto.UpdateEntryRequest true "New entry fields"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/entries/{id} [put]
func (h *EntriesHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid entry ID"))
		return
	}
	var req dto.UpdateEntryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateEntry(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Delete an entry (destructive — the UI confirms first)
// @Tags entries
// @Param id path string true "Entry ID"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /v1/entries/{id} [delete]
func (h *EntriesHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid entry ID"))
		return
	}
	if err := h.svc.DeleteEntry(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Approve godoc
// @Summary Approve a mismatched entry with a written reason
// @Tags entries
// @Accept json
// @Produce json
// @Param id path string true "Entry ID"
// @Param body body dto.ApproveEntryRequest true "Approval reason"
// @Success 200 {object} dto.EntryResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/entries/{id}/approve [post]
func (h *EntriesHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid entry ID"))
		return
	}
	var req dto.ApproveEntryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ApproveEntry(c.Request.Context(), id, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Totals godoc
// @Summary Current derived safe totals
// @Tags entries
// @Produce json
// @Success 200 {object} dto.SafeTotalsResponse
// @Router /v1/totals [get]
func (h *EntriesHandler) Totals(c *gin.Context) {
	resp, err := h.svc.Totals(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
