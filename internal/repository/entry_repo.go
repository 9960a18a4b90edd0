package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/thatman123-source/cash-reconciliation/internal/model"
)

type EntryRepository interface {
	Create(ctx context.Context, e *model.Entry) error
	ListAll(ctx context.Context) ([]model.Entry, error)
	ListByDate(ctx context.Context, date string) ([]model.Entry, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Entry, error)
	FindByClientRef(ctx context.Context, ref string) (*model.Entry, error)
	Update(ctx context.Context, e *model.Entry) error
	Delete(ctx context.Context, id uuid.UUID) error
	// SumSafes aggregates front/back safe contributions over all entries.
	// When tx is non-nil the sums are read inside that transaction.
	SumSafes(ctx context.Context, tx *gorm.DB) (front, back decimal.Decimal, err error)
}

type entryRepo struct{ db *gorm.DB }

func NewEntryRepository(db *gorm.DB) EntryRepository { return &entryRepo{db: db} }

func (r *entryRepo) Create(ctx context.Context, e *model.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *entryRepo) ListAll(ctx context.Context) ([]model.Entry, error) {
	var entries []model.Entry
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&entries).Error
	return entries, err
}

func (r *entryRepo) ListByDate(ctx context.Context, date string) ([]model.Entry, error) {
	var entries []model.Entry
	err := r.db.WithContext(ctx).Where("date = ?", date).Order("created_at ASC").Find(&entries).Error
	return entries, err
}

func (r *entryRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Entry, error) {
	var e model.Entry
	if err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *entryRepo) FindByClientRef(ctx context.Context, ref string) (*model.Entry, error) {
	var e model.Entry
	if err := r.db.WithContext(ctx).First(&e, "client_ref = ?", ref).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *entryRepo) Update(ctx context.Context, e *model.Entry) error {
	// Save overwrites every column — edits are full-row replacements,
	// matching last-write-wins semantics.
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *entryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Entry{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *entryRepo) SumSafes(ctx context.Context, tx *gorm.DB) (decimal.Decimal, decimal.Decimal, error) {
	db := r.db
	if tx != nil {
		db = tx
	}
	var row struct {
		Front decimal.Decimal
		Back  decimal.Decimal
	}
	err := db.WithContext(ctx).Model(&model.Entry{}).
		Select("COALESCE(SUM(front_safe), 0) AS front, COALESCE(SUM(back_safe), 0) AS back").
		Scan(&row).Error
	return row.Front, row.Back, err
}
