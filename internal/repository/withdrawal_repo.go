package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/thatman123-source/cash-reconciliation/internal/model"
)

// backSafeLockID is the advisory lock id serializing withdrawal
// sufficiency checks. There is a single shared back safe, so a single
// app-wide id is enough.
const backSafeLockID = 7401

type WithdrawalRepository interface {
	// DB exposes the underlying handle so the service can run the
	// sufficiency check and the append inside one transaction.
	DB() *gorm.DB
	// LockBackSafe takes a transaction-scoped advisory lock so only one
	// sufficiency check runs at a time. Under READ COMMITTED two
	// concurrent transactions would otherwise both read the same
	// aggregate balance and both insert. Postgres releases the lock on
	// commit or rollback.
	LockBackSafe(ctx context.Context, tx *gorm.DB) error
	Create(ctx context.Context, tx *gorm.DB, w *model.Withdrawal) error
	ListAll(ctx context.Context) ([]model.Withdrawal, error)
	FindByClientRef(ctx context.Context, ref string) (*model.Withdrawal, error)
	// SumAmounts totals all withdrawals ever taken from the back safe.
	SumAmounts(ctx context.Context, tx *gorm.DB) (decimal.Decimal, error)
}

type withdrawalRepo struct{ db *gorm.DB }

func NewWithdrawalRepository(db *gorm.DB) WithdrawalRepository { return &withdrawalRepo{db: db} }

func (r *withdrawalRepo) DB() *gorm.DB { return r.db }

func (r *withdrawalRepo) LockBackSafe(ctx context.Context, tx *gorm.DB) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(?)", backSafeLockID).Error
}

func (r *withdrawalRepo) Create(ctx context.Context, tx *gorm.DB, w *model.Withdrawal) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Create(w).Error
}

func (r *withdrawalRepo) ListAll(ctx context.Context) ([]model.Withdrawal, error) {
	var ws []model.Withdrawal
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&ws).Error
	return ws, err
}

func (r *withdrawalRepo) FindByClientRef(ctx context.Context, ref string) (*model.Withdrawal, error) {
	var w model.Withdrawal
	if err := r.db.WithContext(ctx).First(&w, "client_ref = ?", ref).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *withdrawalRepo) SumAmounts(ctx context.Context, tx *gorm.DB) (decimal.Decimal, error) {
	db := r.db
	if tx != nil {
		db = tx
	}
	var row struct{ Total decimal.Decimal }
	err := db.WithContext(ctx).Model(&model.Withdrawal{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Scan(&row).Error
	return row.Total, err
}
