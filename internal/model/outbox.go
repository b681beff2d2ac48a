package model

import (
	"time"
)

const (
	OutboxStatusPending = "PENDING"
	OutboxStatusSent    = "SENT"
	OutboxStatusFailed  = "FAILED"
)

// Case event names carried in outbox payloads.
const (
	EventCaseOpened          = "case.opened"
	EventLedgerEntryAdded    = "ledger.entry_added"
	EventLedgerEntryEdited   = "ledger.entry_edited"
	EventLedgerEntryDeleted  = "ledger.entry_deleted"
	EventCaseStatusChanged   = "case.status_changed"
	EventCaseStatusUndone    = "case.status_undone"
	EventLedgerEntriesBilled = "ledger.entries_billed"
)

type OutboxMessage struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	MessageKey string    `gorm:"type:varchar(64);not null" json:"message_key"`
	Topic      string    `gorm:"type:varchar(64);not null" json:"topic"`
	Payload    string    `gorm:"type:text;not null" json:"payload"`
	Status     string    `gorm:"type:varchar(20);index;not null;default:PENDING" json:"status"`
	RetryCount int       `gorm:"not null;default:0" json:"retry_count"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (OutboxMessage) TableName() string {
	return "outbox_message"
}

// CaseEvent is the JSON payload of a case-scoped outbox message.
type CaseEvent struct {
	Event      string    `json:"event"`
	CaseID     int64     `json:"case_id"`
	ClientID   int64     `json:"client_id"`
	EntryID    int64     `json:"entry_id,omitempty"`
	Status     string    `json:"status,omitempty"`
	Balance    string    `json:"balance"`
	ActorID    int64     `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AllModels is the AutoMigrate set, parents first.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&Client{},
		&Charge{},
		&CustomFieldDefinition{},
		&Case{},
		&LedgerEntry{},
		&Note{},
		&CaseStatusHistory{},
		&ClientCustomFieldLink{},
		&CaseCustomValue{},
		&OutboxMessage{},
	}
}
