package repository

import (
	"context"
	"time"

	"casebook/internal/model"

	"gorm.io/gorm"
)

// LedgerRepository stores money entries.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) Create(ctx context.Context, tx *gorm.DB, e *model.LedgerEntry) error {
	return pick(r.db, tx).WithContext(ctx).Create(e).Error
}

func (r *LedgerRepository) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*model.LedgerEntry, error) {
	var e model.LedgerEntry
	if err := pick(r.db, tx).WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, notFound(err, ErrEntryNotFound)
	}
	return &e, nil
}

// Update overwrites the editable columns of an entry.
func (r *LedgerRepository) Update(ctx context.Context, tx *gorm.DB, e *model.LedgerEntry) error {
	return pick(r.db, tx).WithContext(ctx).
		Model(&model.LedgerEntry{}).
		Where("id = ?", e.ID).
		Updates(map[string]interface{}{
			"amount":      e.Amount,
			"description": e.Description,
			"recoverable": e.Recoverable,
			"billable":    e.Billable,
		}).Error
}

func (r *LedgerRepository) Delete(ctx context.Context, tx *gorm.DB, id int64) error {
	result := pick(r.db, tx).WithContext(ctx).Delete(&model.LedgerEntry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// ListByCase returns every entry of a case, the input of a balance fold.
func (r *LedgerRepository) ListByCase(ctx context.Context, tx *gorm.DB, caseID int64) ([]model.LedgerEntry, error) {
	var entries []model.LedgerEntry
	err := pick(r.db, tx).WithContext(ctx).
		Where("case_id = ?", caseID).
		Order("transaction_date, id").
		Find(&entries).Error
	return entries, err
}

// ListByClient returns the entries of all the client's cases.
func (r *LedgerRepository) ListByClient(ctx context.Context, clientID int64) ([]model.LedgerEntry, error) {
	var entries []model.LedgerEntry
	err := r.db.WithContext(ctx).
		Where("case_id IN (?)", r.db.Model(&model.Case{}).Select("id").Where("client_id = ?", clientID)).
		Find(&entries).Error
	return entries, err
}

// PageByCase returns one page of entries with the creator's username,
// oldest first.
func (r *LedgerRepository) PageByCase(ctx context.Context, caseID int64, offset, limit int) ([]model.LedgerEntryView, error) {
	var views []model.LedgerEntryView
	err := r.db.WithContext(ctx).
		Table("money").
		Select("money.*, users.username").
		Joins("LEFT JOIN users ON users.id = money.created_by").
		Where("money.case_id = ?", caseID).
		Order("money.transaction_date, money.id").
		Offset(offset).
		Limit(limit).
		Scan(&views).Error
	return views, err
}

func (r *LedgerRepository) CountByCase(ctx context.Context, caseID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.LedgerEntry{}).Where("case_id = ?", caseID).Count(&n).Error
	return n, err
}

// ListUnbilled returns the client's billable entries not yet billed.
func (r *LedgerRepository) ListUnbilled(ctx context.Context, tx *gorm.DB, clientID int64) ([]model.LedgerEntry, error) {
	db := pick(r.db, tx).WithContext(ctx)
	var entries []model.LedgerEntry
	err := db.
		Where("billable = ? AND billed = ?", true, false).
		Where("case_id IN (?)", db.Session(&gorm.Session{NewDB: true}).Model(&model.Case{}).Select("id").Where("client_id = ?", clientID)).
		Order("id").
		Find(&entries).Error
	return entries, err
}

func (r *LedgerRepository) MarkBilled(ctx context.Context, tx *gorm.DB, ids []int64, date time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return pick(r.db, tx).WithContext(ctx).
		Model(&model.LedgerEntry{}).
		Where("id IN ?", ids).
		Updates(map[string]interface{}{
			"billed":     true,
			"billeddate": date,
		}).Error
}
