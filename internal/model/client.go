package model

import (
	"github.com/shopspring/decimal"
)

// Client is a creditor account. It owns the cases raised on its behalf.
type Client struct {
	ID                  int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	BusinessType        BusinessType    `gorm:"type:varchar(20);not null;check:chk_clients_business_type,business_type IN ('Limited','Partnership','Sole Trader','Individual')" json:"business_type"`
	BusinessName        string          `gorm:"type:varchar(255);not null;index" json:"business_name"`
	ContactFirst        string          `gorm:"type:varchar(100)" json:"contact_first"`
	ContactLast         string          `gorm:"type:varchar(100)" json:"contact_last"`
	Phone               string          `gorm:"type:varchar(50)" json:"phone"`
	Email               string          `gorm:"type:varchar(255)" json:"email"`
	BacsDetails         string          `gorm:"type:varchar(255)" json:"bacs_details"`
	DefaultInterestRate decimal.Decimal `gorm:"type:decimal(8,4);not null;default:0" json:"default_interest_rate"`

	Cases        []Case                  `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"-"`
	CustomFields []ClientCustomFieldLink `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Client) TableName() string {
	return "clients"
}

// ClientRef is the id/name pair used by sidebars and autocomplete.
type ClientRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
