package repository

import (
	"context"

	"casebook/internal/model"

	"gorm.io/gorm"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, tx *gorm.DB, client *model.Client) error {
	return pick(r.db, tx).WithContext(ctx).Create(client).Error
}

func (r *ClientRepository) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*model.Client, error) {
	var client model.Client
	if err := pick(r.db, tx).WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, notFound(err, ErrClientNotFound)
	}
	return &client, nil
}

// List returns every client ordered by name.
func (r *ClientRepository) List(ctx context.Context) ([]model.ClientRef, error) {
	var refs []model.ClientRef
	err := r.db.WithContext(ctx).
		Model(&model.Client{}).
		Select("id, business_name AS name").
		Order("business_name, id").
		Scan(&refs).Error
	return refs, err
}

// Search matches the business name case-insensitively.
func (r *ClientRepository) Search(ctx context.Context, q string, limit int) ([]model.ClientRef, error) {
	var refs []model.ClientRef
	err := r.db.WithContext(ctx).
		Model(&model.Client{}).
		Select("id, business_name AS name").
		Where("LOWER(business_name) LIKE ? ESCAPE '!'", containsPattern(q)).
		Order("business_name, id").
		Limit(limit).
		Scan(&refs).Error
	return refs, err
}

func (r *ClientRepository) Rename(ctx context.Context, tx *gorm.DB, id int64, name string) error {
	result := pick(r.db, tx).WithContext(ctx).
		Model(&model.Client{}).
		Where("id = ?", id).
		Update("business_name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrClientNotFound
	}
	return nil
}

// Delete removes the client; the database cascades to its cases.
func (r *ClientRepository) Delete(ctx context.Context, tx *gorm.DB, id int64) error {
	result := pick(r.db, tx).WithContext(ctx).Delete(&model.Client{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrClientNotFound
	}
	return nil
}
