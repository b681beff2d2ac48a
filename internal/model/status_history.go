package model

import "time"

// CaseStatusHistory is one row of the append-only status log. The most
// recent row for a case is the only undo target.
type CaseStatusHistory struct {
	ID                int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	CaseID            int64      `gorm:"not null;index:idx_status_history_case_changed,priority:1" json:"case_id"`
	OldStatus         CaseStatus `gorm:"type:varchar(20)" json:"old_status"`
	OldSubstatus      *string    `gorm:"type:varchar(100)" json:"old_substatus"`
	NewStatus         CaseStatus `gorm:"type:varchar(20)" json:"new_status"`
	NewSubstatus      *string    `gorm:"type:varchar(100)" json:"new_substatus"`
	OldNextActionDate *time.Time `gorm:"type:date" json:"old_next_action_date"`
	ChangedBy         int64      `gorm:"not null" json:"changed_by"`
	ChangedAt         time.Time  `gorm:"autoCreateTime;index:idx_status_history_case_changed,priority:2" json:"changed_at"`

	Changer *User `gorm:"foreignKey:ChangedBy;constraint:OnDelete:RESTRICT" json:"-"`
}

func (CaseStatusHistory) TableName() string {
	return "case_status_history"
}

type StatusHistoryView struct {
	CaseStatusHistory
	Username string `json:"username"`
}
