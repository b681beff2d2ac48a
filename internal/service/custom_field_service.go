package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"casebook/internal/model"
	"casebook/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CustomFieldService manages per-client extra case fields. Values are
// display-only and never feed into balances.
type CustomFieldService struct {
	db         *gorm.DB
	fieldRepo  *repository.CustomFieldRepository
	caseRepo   *repository.CaseRepository
	clientRepo *repository.ClientRepository
}

func NewCustomFieldService(db *gorm.DB) *CustomFieldService {
	return &CustomFieldService{
		db:         db,
		fieldRepo:  repository.NewCustomFieldRepository(db),
		caseRepo:   repository.NewCaseRepository(db),
		clientRepo: repository.NewClientRepository(db),
	}
}

type DefineFieldRequest struct {
	FieldName string `form:"field_name" json:"field_name" binding:"required"`
	FieldType string `form:"field_type" json:"field_type"`
}

func (s *CustomFieldService) DefineField(ctx context.Context, req *DefineFieldRequest) (*model.CustomFieldDefinition, error) {
	typ, err := model.ParseFieldType(req.FieldType)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.FieldName)
	if name == "" {
		return nil, ErrEmptyName
	}
	def := &model.CustomFieldDefinition{FieldName: name, FieldType: typ}
	if err := s.fieldRepo.CreateDefinition(ctx, def); err != nil {
		return nil, fmt.Errorf("create custom field: %w", err)
	}
	return def, nil
}

func (s *CustomFieldService) ListFields(ctx context.Context) ([]model.CustomFieldDefinition, error) {
	return s.fieldRepo.ListDefinitions(ctx)
}

func (s *CustomFieldService) LinkFieldToClient(ctx context.Context, clientID, fieldID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.clientRepo.GetByID(ctx, tx, clientID); err != nil {
			return err
		}
		if _, err := s.fieldRepo.GetDefinition(ctx, tx, fieldID); err != nil {
			return err
		}
		return s.fieldRepo.Link(ctx, tx, clientID, fieldID)
	})
}

func (s *CustomFieldService) ListClientFields(ctx context.Context, clientID int64) ([]model.CustomFieldDefinition, error) {
	if _, err := s.clientRepo.GetByID(ctx, nil, clientID); err != nil {
		return nil, err
	}
	return s.fieldRepo.ListClientFields(ctx, clientID)
}

type SetCaseValueRequest struct {
	FieldID int64  `form:"field_id" json:"field_id" binding:"required"`
	Value   string `form:"value" json:"value"`
}

// SetCaseValue stores a value for a field enabled on the case's client.
func (s *CustomFieldService) SetCaseValue(ctx context.Context, caseID int64, req *SetCaseValueRequest) error {
	value := strings.TrimSpace(req.Value)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := s.caseRepo.GetByID(ctx, tx, caseID)
		if err != nil {
			return err
		}
		def, err := s.fieldRepo.GetDefinition(ctx, tx, req.FieldID)
		if err != nil {
			return err
		}
		linked, err := s.fieldRepo.IsLinked(ctx, tx, c.ClientID, def.ID)
		if err != nil {
			return err
		}
		if !linked {
			return ErrFieldNotLinked
		}
		if err := validateFieldValue(def.FieldType, value); err != nil {
			return err
		}
		return s.fieldRepo.UpsertValue(ctx, tx, &model.CaseCustomValue{CaseID: caseID, FieldID: def.ID, FieldValue: value})
	})
}

func (s *CustomFieldService) ListCaseValues(ctx context.Context, caseID int64) ([]model.CustomValueView, error) {
	if _, err := s.caseRepo.GetByID(ctx, nil, caseID); err != nil {
		return nil, err
	}
	return s.fieldRepo.ListCaseValues(ctx, caseID)
}

func validateFieldValue(typ model.FieldType, value string) error {
	if value == "" {
		return nil
	}
	switch typ {
	case model.FieldTypeDate:
		if _, err := time.Parse(model.DateLayout, value); err != nil {
			return fmt.Errorf("%w: %q is not a date", ErrInvalidFieldValue, value)
		}
	case model.FieldTypeNumber:
		if _, err := decimal.NewFromString(value); err != nil {
			return fmt.Errorf("%w: %q is not a number", ErrInvalidFieldValue, value)
		}
	}
	return nil
}
