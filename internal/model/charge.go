package model

// Charge is a catalogue entry that charge-type ledger rows may reference.
type Charge struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Code        string         `gorm:"type:varchar(50);not null" json:"code"`
	Description string         `gorm:"type:varchar(255);not null" json:"description"`
	Category    ChargeCategory `gorm:"type:varchar(20);not null;check:chk_charges_category,category IN ('Commission','Ancillary','CCJ','defence','Insolvency','Enforcement')" json:"category"`
}

func (Charge) TableName() string {
	return "charges"
}
