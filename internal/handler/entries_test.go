package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatman123-source/cash-reconciliation/internal/dto"
	"github.com/thatman123-source/cash-reconciliation/internal/recon"
	"github.com/thatman123-source/cash-reconciliation/internal/service"
)

// ── Stub LedgerService ───────────────────────────────────────────────────────

type stubLedger struct {
	createFn   func(dto.CreateEntryRequest) (*dto.EntryResponse, error)
	approveFn  func(uuid.UUID, string) (*dto.EntryResponse, error)
	deleteFn   func(uuid.UUID) error
	withdrawFn func(dto.WithdrawalRequest) (*dto.WithdrawalResponse, error)
}

func (s *stubLedger) ListEntries(context.Context) (*dto.EntryListResponse, error) {
	return &dto.EntryListResponse{Entries: []dto.EntryResponse{}}, nil
}

func (s *stubLedger) EntriesForDate(context.Context, string) ([]dto.EntryResponse, error) {
	return nil, nil
}

func (s *stubLedger) CreateEntry(_ context.Context, req dto.CreateEntryRequest) (*dto.EntryResponse, error) {
	return s.createFn(req)
}

func (s *stubLedger) UpdateEntry(context.Context, uuid.UUID, dto.UpdateEntryRequest) (*dto.EntryResponse, error) {
	return nil, service.ErrNotFound
}

func (s *stubLedger) DeleteEntry(_ context.Context, id uuid.UUID) error {
	return s.deleteFn(id)
}

func (s *stubLedger) ApproveEntry(_ context.Context, id uuid.UUID, reason string) (*dto.EntryResponse, error) {
	return s.approveFn(id, reason)
}

func (s *stubLedger) ListWithdrawals(context.Context) ([]dto.WithdrawalResponse, error) {
	return nil, nil
}

func (s *stubLedger) RequestWithdrawal(_ context.Context, req dto.WithdrawalRequest) (*dto.WithdrawalResponse, error) {
	return s.withdrawFn(req)
}

func (s *stubLedger) Totals(context.Context) (*dto.SafeTotalsResponse, error) {
	return &dto.SafeTotalsResponse{}, nil
}

var _ service.LedgerService = (*stubLedger)(nil)

func newTestRouter(svc service.LedgerService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	entriesH := NewEntriesHandler(svc)
	withdrawalsH := NewWithdrawalsHandler(svc)
	r.POST("/v1/entries", entriesH.Create)
	r.DELETE("/v1/entries/:id", entriesH.Delete)
	r.POST("/v1/entries/:id/approve", entriesH.Approve)
	r.POST("/v1/withdrawals", withdrawalsH.Create)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestCreateEntryReturns201(t *testing.T) {
	svc := &stubLedger{
		createFn: func(req dto.CreateEntryRequest) (*dto.EntryResponse, error) {
			return &dto.EntryResponse{ID: uuid.NewString(), Date: req.Date}, nil
		},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodPost, "/v1/entries", gin.H{
		"date": "2024-03-01", "cash_in": "100",
		"front_safe": "40", "back_safe": "30", "deposited": "20",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateEntryNegativeAmountFailsValidation(t *testing.T) {
	svc := &stubLedger{
		createFn: func(dto.CreateEntryRequest) (*dto.EntryResponse, error) {
			t.Fatal("service must not be reached on validation failure")
			return nil, nil
		},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodPost, "/v1/entries", gin.H{
		"date": "2024-03-01", "cash_in": "100",
		"front_safe": "-40", "back_safe": "30", "deposited": "20",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "FrontSafe")
}

func TestCreateEntryBadDateFailsValidation(t *testing.T) {
	svc := &stubLedger{
		createFn: func(dto.CreateEntryRequest) (*dto.EntryResponse, error) {
			t.Fatal("service must not be reached on validation failure")
			return nil, nil
		},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodPost, "/v1/entries", gin.H{
		"date": "March 1st", "cash_in": "100",
		"front_safe": "40", "back_safe": "30", "deposited": "20",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestApproveConflictMapsTo409(t *testing.T) {
	svc := &stubLedger{
		approveFn: func(uuid.UUID, string) (*dto.EntryResponse, error) {
			return nil, recon.ErrInvalidApproval
		},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodPost,
		"/v1/entries/"+uuid.NewString()+"/approve", gin.H{"reason": "recount"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestApproveEmptyReasonFailsValidation(t *testing.T) {
	svc := &stubLedger{
		approveFn: func(uuid.UUID, string) (*dto.EntryResponse, error) {
			t.Fatal("service must not be reached on validation failure")
			return nil, nil
		},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodPost,
		"/v1/entries/"+uuid.NewString()+"/approve", gin.H{"reason": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestApproveBadUUID(t *testing.T) {
	svc := &stubLedger{}
	w := doJSON(t, newTestRouter(svc), http.MethodPost,
		"/v1/entries/not-a-uuid/approve", gin.H{"reason": "recount"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteNotFoundMapsTo404(t *testing.T) {
	svc := &stubLedger{
		deleteFn: func(uuid.UUID) error { return service.ErrNotFound },
	}
	req := httptest.NewRequest(http.MethodDelete, "/v1/entries/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWithdrawalInsufficientFundsMapsTo409(t *testing.T) {
	svc := &stubLedger{
		withdrawFn: func(dto.WithdrawalRequest) (*dto.WithdrawalResponse, error) {
			return nil, service.ErrInsufficientFunds
		},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodPost, "/v1/withdrawals", gin.H{
		"amount": "40", "reason": "petty cash",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestWithdrawalZeroAmountFailsValidation(t *testing.T) {
	svc := &stubLedger{
		withdrawFn: func(dto.WithdrawalRequest) (*dto.WithdrawalResponse, error) {
			t.Fatal("service must not be reached on validation failure")
			return nil, nil
		},
	}
	w := doJSON(t, newTestRouter(svc), http.MethodPost, "/v1/withdrawals", gin.H{
		"amount": "0", "reason": "noop",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
