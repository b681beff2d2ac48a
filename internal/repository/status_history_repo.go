package repository

import (
	"context"

	"casebook/internal/model"

	"gorm.io/gorm"
)

type StatusHistoryRepository struct {
	db *gorm.DB
}

func NewStatusHistoryRepository(db *gorm.DB) *StatusHistoryRepository {
	return &StatusHistoryRepository{db: db}
}

func (r *StatusHistoryRepository) Create(ctx context.Context, tx *gorm.DB, h *model.CaseStatusHistory) error {
	return pick(r.db, tx).WithContext(ctx).Create(h).Error
}

// Latest returns the undo target: the most recent row, ties broken by id.
func (r *StatusHistoryRepository) Latest(ctx context.Context, tx *gorm.DB, caseID int64) (*model.CaseStatusHistory, error) {
	var h model.CaseStatusHistory
	err := pick(r.db, tx).WithContext(ctx).
		Where("case_id = ?", caseID).
		Order("changed_at DESC, id DESC").
		Take(&h).Error
	if err != nil {
		return nil, notFound(err, ErrHistoryNotFound)
	}
	return &h, nil
}

func (r *StatusHistoryRepository) Delete(ctx context.Context, tx *gorm.DB, id int64) error {
	return pick(r.db, tx).WithContext(ctx).Delete(&model.CaseStatusHistory{}, id).Error
}

// ListByCase returns the full history, newest first.
func (r *StatusHistoryRepository) ListByCase(ctx context.Context, caseID int64) ([]model.StatusHistoryView, error) {
	var views []model.StatusHistoryView
	err := r.db.WithContext(ctx).
		Table("case_status_history AS h").
		Select("h.*, users.username").
		Joins("LEFT JOIN users ON users.id = h.changed_by").
		Where("h.case_id = ?", caseID).
		Order("h.changed_at DESC, h.id DESC").
		Scan(&views).Error
	return views, err
}

func (r *StatusHistoryRepository) CountByCase(ctx context.Context, tx *gorm.DB, caseID int64) (int64, error) {
	var n int64
	err := pick(r.db, tx).WithContext(ctx).Model(&model.CaseStatusHistory{}).Where("case_id = ?", caseID).Count(&n).Error
	return n, err
}
