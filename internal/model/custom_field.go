package model

// CustomFieldDefinition is a field a client can opt into for its cases.
type CustomFieldDefinition struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FieldName string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"field_name"`
	FieldType FieldType `gorm:"type:varchar(20);not null;default:text" json:"field_type"`

	Links  []ClientCustomFieldLink `gorm:"foreignKey:FieldID;constraint:OnDelete:CASCADE" json:"-"`
	Values []CaseCustomValue       `gorm:"foreignKey:FieldID;constraint:OnDelete:CASCADE" json:"-"`
}

func (CustomFieldDefinition) TableName() string {
	return "custom_field_definitions"
}

type ClientCustomFieldLink struct {
	ClientID int64 `gorm:"primaryKey;autoIncrement:false" json:"client_id"`
	FieldID  int64 `gorm:"primaryKey;autoIncrement:false" json:"field_id"`
}

func (ClientCustomFieldLink) TableName() string {
	return "client_custom_field_link"
}

type CaseCustomValue struct {
	CaseID     int64  `gorm:"primaryKey;autoIncrement:false" json:"case_id"`
	FieldID    int64  `gorm:"primaryKey;autoIncrement:false" json:"field_id"`
	FieldValue string `gorm:"type:text" json:"field_value"`
}

func (CaseCustomValue) TableName() string {
	return "case_custom_values"
}

// CustomValueView joins a case value with its definition.
type CustomValueView struct {
	FieldID    int64     `json:"field_id"`
	FieldName  string    `json:"field_name"`
	FieldType  FieldType `json:"field_type"`
	FieldValue string    `json:"field_value"`
}
