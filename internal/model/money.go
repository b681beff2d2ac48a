package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is one financial movement against a case. Amount is never
// signed; Recoverable only matters for charges.
type LedgerEntry struct {
	ID              int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CaseID          int64           `gorm:"not null;index" json:"case_id"`
	Type            LedgerType      `gorm:"type:varchar(20);not null;check:chk_money_type,type IN ('Invoice','Payment','Charge','Interest')" json:"type"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
	TransactionDate time.Time       `gorm:"type:date;not null;index" json:"transaction_date"`
	CreatedBy       int64           `gorm:"not null;index" json:"created_by"`
	Description     string          `gorm:"type:text" json:"description"`
	Recoverable     bool            `gorm:"not null;default:false" json:"recoverable"`
	Billable        bool            `gorm:"not null;default:false" json:"billable"`
	VATAmount       decimal.Decimal `gorm:"column:vat_amount;type:decimal(18,4);not null;default:0" json:"vat_amount"`
	Billed          bool            `gorm:"not null;default:false" json:"billed"`
	BilledDate      *time.Time      `gorm:"column:billeddate;type:date" json:"billed_date"`
	ChargeID        *int64          `gorm:"index" json:"charge_id"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`

	Creator *User   `gorm:"foreignKey:CreatedBy;constraint:OnDelete:RESTRICT" json:"-"`
	Charge  *Charge `gorm:"foreignKey:ChargeID;constraint:OnDelete:SET NULL" json:"-"`
}

func (LedgerEntry) TableName() string {
	return "money"
}

// LedgerEntryView is a ledger row with the creator's username for display.
type LedgerEntryView struct {
	LedgerEntry
	Username string `json:"username"`
}
