package model

import (
	"strings"
	"time"
)

// Case is a single debt owed by a debtor to a client.
type Case struct {
	ID                 int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	ClientID           int64        `gorm:"not null;index" json:"client_id"`
	DebtorBusinessType BusinessType `gorm:"type:varchar(20);check:chk_cases_debtor_business_type,debtor_business_type IN ('','Limited','Partnership','Sole Trader','Individual')" json:"debtor_business_type"`
	DebtorBusinessName string       `gorm:"type:varchar(255);index" json:"debtor_business_name"`
	DebtorFirst        string       `gorm:"type:varchar(100);index" json:"debtor_first"`
	DebtorLast         string       `gorm:"type:varchar(100);index" json:"debtor_last"`
	Phone              string       `gorm:"type:varchar(50);index" json:"phone"`
	Email              string       `gorm:"type:varchar(255);index" json:"email"`
	Postcode           string       `gorm:"type:varchar(20);index" json:"postcode"`
	Status             CaseStatus   `gorm:"type:varchar(20);not null;default:Open;check:chk_cases_status,status IN ('Open','On Hold','Closed')" json:"status"`
	Substatus          *string      `gorm:"type:varchar(100)" json:"substatus"`
	NextActionDate     *time.Time   `gorm:"type:date" json:"next_action_date"`
	OpenDate           time.Time    `gorm:"type:date;not null;index" json:"open_date"`

	Entries       []LedgerEntry       `gorm:"foreignKey:CaseID;constraint:OnDelete:CASCADE" json:"-"`
	Notes         []Note              `gorm:"foreignKey:CaseID;constraint:OnDelete:CASCADE" json:"-"`
	StatusHistory []CaseStatusHistory `gorm:"foreignKey:CaseID;constraint:OnDelete:CASCADE" json:"-"`
	CustomValues  []CaseCustomValue   `gorm:"foreignKey:CaseID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Case) TableName() string {
	return "cases"
}

// DebtorName prefers the business name and falls back to "first last".
func (c *Case) DebtorName() string {
	return DebtorName(c.DebtorBusinessName, c.DebtorFirst, c.DebtorLast)
}

func DebtorName(businessName, first, last string) string {
	if name := strings.TrimSpace(businessName); name != "" {
		return name
	}
	return strings.TrimSpace(first + " " + last)
}

// StatusSnapshot is the part of a case that a status change may modify.
type StatusSnapshot struct {
	Status         CaseStatus
	Substatus      *string
	NextActionDate *time.Time
}

func (c *Case) Snapshot() StatusSnapshot {
	return StatusSnapshot{
		Status:         c.Status,
		Substatus:      c.Substatus,
		NextActionDate: c.NextActionDate,
	}
}

// Equal compares two snapshots, dates at day precision.
func (s StatusSnapshot) Equal(o StatusSnapshot) bool {
	return s.Status == o.Status &&
		equalStringPtr(s.Substatus, o.Substatus) &&
		equalDatePtr(s.NextActionDate, o.NextActionDate)
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func equalDatePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Format(DateLayout) == b.Format(DateLayout)
}

// DateLayout is the wire format of every date-only column.
const DateLayout = "2006-01-02"

// Today returns the current date at midnight UTC.
func Today() time.Time {
	return DateOf(time.Now())
}

// DateOf truncates t to its calendar day in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CaseSummary is a case row decorated with its debtor name and rounded balance.
type CaseSummary struct {
	ID         int64      `json:"id"`
	ClientID   int64      `json:"client_id"`
	DebtorName string     `json:"debtor_name"`
	Status     CaseStatus `json:"status"`
	Substatus  *string    `json:"substatus,omitempty"`
	OpenDate   time.Time  `json:"open_date"`
	Balance    string     `json:"balance"`
}

// RecentCase is a dashboard row for the "no case selected" view.
type RecentCase struct {
	ClientID     int64     `json:"client_id"`
	BusinessName string    `json:"business_name"`
	CaseID       int64     `json:"case_id"`
	Debtor       string    `json:"debtor"`
	OpenDate     time.Time `json:"open_date"`
}

// SearchResult is one row of the global case search.
type SearchResult struct {
	ClientID   int64  `json:"client_id"`
	ClientName string `json:"client_name"`
	CaseID     int64  `json:"case_id"`
	DebtorName string `json:"debtor_name"`
	Postcode   string `json:"postcode"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}
