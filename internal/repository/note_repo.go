package repository

import (
	"context"

	"casebook/internal/model"

	"gorm.io/gorm"
)

type NoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Create(ctx context.Context, tx *gorm.DB, n *model.Note) error {
	return pick(r.db, tx).WithContext(ctx).Create(n).Error
}

func (r *NoteRepository) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*model.Note, error) {
	var n model.Note
	if err := pick(r.db, tx).WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, notFound(err, ErrNoteNotFound)
	}
	return &n, nil
}

func (r *NoteRepository) Update(ctx context.Context, tx *gorm.DB, id int64, typ model.NoteType, body string) error {
	result := pick(r.db, tx).WithContext(ctx).
		Model(&model.Note{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"type": typ, "note": body})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoteNotFound
	}
	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, tx *gorm.DB, id int64) error {
	result := pick(r.db, tx).WithContext(ctx).Delete(&model.Note{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoteNotFound
	}
	return nil
}

// PageByCase returns notes newest first.
func (r *NoteRepository) PageByCase(ctx context.Context, caseID int64, offset, limit int) ([]model.NoteView, error) {
	var views []model.NoteView
	err := r.db.WithContext(ctx).
		Table("notes").
		Select("notes.*, users.username").
		Joins("LEFT JOIN users ON users.id = notes.created_by").
		Where("notes.case_id = ?", caseID).
		Order("notes.created_at DESC, notes.id DESC").
		Offset(offset).
		Limit(limit).
		Scan(&views).Error
	return views, err
}

func (r *NoteRepository) CountByCase(ctx context.Context, caseID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Note{}).Where("case_id = ?", caseID).Count(&n).Error
	return n, err
}
