package service

import (
	"context"
	"fmt"
	"strings"

	"casebook/internal/model"
	"casebook/internal/repository"

	"gorm.io/gorm"
)

type ChargeService struct {
	chargeRepo *repository.ChargeRepository
}

func NewChargeService(db *gorm.DB) *ChargeService {
	return &ChargeService{chargeRepo: repository.NewChargeRepository(db)}
}

type AddChargeRequest struct {
	Code        string `form:"code" json:"code" binding:"required"`
	Description string `form:"description" json:"description" binding:"required"`
	Category    string `form:"category" json:"category" binding:"required"`
}

func (s *ChargeService) AddCharge(ctx context.Context, req *AddChargeRequest) (*model.Charge, error) {
	category, err := model.ParseChargeCategory(req.Category)
	if err != nil {
		return nil, err
	}
	charge := &model.Charge{
		Code:        strings.TrimSpace(req.Code),
		Description: strings.TrimSpace(req.Description),
		Category:    category,
	}
	if charge.Code == "" || charge.Description == "" {
		return nil, ErrEmptyName
	}
	if err := s.chargeRepo.Create(ctx, charge); err != nil {
		return nil, fmt.Errorf("create charge: %w", err)
	}
	return charge, nil
}

func (s *ChargeService) ListCharges(ctx context.Context) ([]model.Charge, error) {
	return s.chargeRepo.List(ctx)
}
