package repository

import (
	"context"

	"casebook/internal/model"

	"gorm.io/gorm"
)

type ChargeRepository struct {
	db *gorm.DB
}

func NewChargeRepository(db *gorm.DB) *ChargeRepository {
	return &ChargeRepository{db: db}
}

func (r *ChargeRepository) Create(ctx context.Context, c *model.Charge) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ChargeRepository) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*model.Charge, error) {
	var c model.Charge
	if err := pick(r.db, tx).WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err, ErrChargeNotFound)
	}
	return &c, nil
}

func (r *ChargeRepository) List(ctx context.Context) ([]model.Charge, error) {
	var charges []model.Charge
	err := r.db.WithContext(ctx).Order("category, code").Find(&charges).Error
	return charges, err
}
