package repository

import (
	"context"

	"casebook/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomFieldRepository struct {
	db *gorm.DB
}

func NewCustomFieldRepository(db *gorm.DB) *CustomFieldRepository {
	return &CustomFieldRepository{db: db}
}

func (r *CustomFieldRepository) CreateDefinition(ctx context.Context, def *model.CustomFieldDefinition) error {
	return r.db.WithContext(ctx).Create(def).Error
}

func (r *CustomFieldRepository) GetDefinition(ctx context.Context, tx *gorm.DB, id int64) (*model.CustomFieldDefinition, error) {
	var def model.CustomFieldDefinition
	if err := pick(r.db, tx).WithContext(ctx).First(&def, id).Error; err != nil {
		return nil, notFound(err, ErrFieldNotFound)
	}
	return &def, nil
}

func (r *CustomFieldRepository) ListDefinitions(ctx context.Context) ([]model.CustomFieldDefinition, error) {
	var defs []model.CustomFieldDefinition
	err := r.db.WithContext(ctx).Order("field_name").Find(&defs).Error
	return defs, err
}

// Link opts a client into a field. Linking twice is a no-op.
func (r *CustomFieldRepository) Link(ctx context.Context, tx *gorm.DB, clientID, fieldID int64) error {
	return pick(r.db, tx).WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.ClientCustomFieldLink{ClientID: clientID, FieldID: fieldID}).Error
}

func (r *CustomFieldRepository) IsLinked(ctx context.Context, tx *gorm.DB, clientID, fieldID int64) (bool, error) {
	var n int64
	err := pick(r.db, tx).WithContext(ctx).
		Model(&model.ClientCustomFieldLink{}).
		Where("client_id = ? AND field_id = ?", clientID, fieldID).
		Count(&n).Error
	return n > 0, err
}

func (r *CustomFieldRepository) ListClientFields(ctx context.Context, clientID int64) ([]model.CustomFieldDefinition, error) {
	var defs []model.CustomFieldDefinition
	err := r.db.WithContext(ctx).
		Joins("JOIN client_custom_field_link l ON l.field_id = custom_field_definitions.id").
		Where("l.client_id = ?", clientID).
		Order("custom_field_definitions.field_name").
		Find(&defs).Error
	return defs, err
}

func (r *CustomFieldRepository) UpsertValue(ctx context.Context, tx *gorm.DB, v *model.CaseCustomValue) error {
	return pick(r.db, tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "case_id"}, {Name: "field_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"field_value"}),
		}).
		Create(v).Error
}

func (r *CustomFieldRepository) ListCaseValues(ctx context.Context, caseID int64) ([]model.CustomValueView, error) {
	var views []model.CustomValueView
	err := r.db.WithContext(ctx).
		Table("case_custom_values AS v").
		Select("v.field_id, d.field_name, d.field_type, v.field_value").
		Joins("JOIN custom_field_definitions d ON d.id = v.field_id").
		Where("v.case_id = ?", caseID).
		Order("d.field_name").
		Scan(&views).Error
	return views, err
}
