package model

import "time"

// Note is a free-text annotation on a case. Edits overwrite in place.
type Note struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CaseID    int64     `gorm:"not null;index" json:"case_id"`
	Type      NoteType  `gorm:"type:varchar(20);not null;check:chk_notes_type,type IN ('General','Dispute','Inbound Call','Outbound Call')" json:"type"`
	CreatedBy int64     `gorm:"not null;index" json:"created_by"`
	Note      string    `gorm:"type:text;not null" json:"note"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	Creator *User `gorm:"foreignKey:CreatedBy;constraint:OnDelete:RESTRICT" json:"-"`
}

func (Note) TableName() string {
	return "notes"
}

type NoteView struct {
	Note
	Username string `json:"username"`
}
