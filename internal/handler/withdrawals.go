package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thatman123-source/cash-reconciliation/internal/dto"
	"github.com/thatman123-source/cash-reconciliation/internal/service"
)

type WithdrawalsHandler struct{ svc service.LedgerService }

func NewWithdrawalsHandler(svc service.LedgerService) *WithdrawalsHandler {
	return &WithdrawalsHandler{svc: svc}
}

// List godoc
// @Summary List all back-safe withdrawals
// @Tags withdrawals
// @Produce json
// @Success 200 {array} dto.WithdrawalResponse
// @Router /v1/withdrawals [get]
func (h *WithdrawalsHandler) List(c *gin.Context) {
	resp, err := h.svc.ListWithdrawals(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Withdraw cash from the back safe
// @Tags withdrawals
// @Accept json
// @Produce json
// @Param body body dto.WithdrawalRequest true "Withdrawal request"
// @Success 201 {object} dto.WithdrawalResponse
// @Failure 409 {object} apierror.APIError "Insufficient funds"
// @Router /v1/withdrawals [post]
func (h *WithdrawalsHandler) Create(c *gin.Context) {
	var req dto.WithdrawalRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RequestWithdrawal(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
