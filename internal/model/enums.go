package model

import (
	"errors"
	"fmt"
)

// ErrInvalidEnum is returned by every Parse* constructor for values outside the closed set.
var ErrInvalidEnum = errors.New("invalid enum value")

// BusinessType is the legal form of a client or a debtor.
type BusinessType string

const (
	BusinessTypeLimited     BusinessType = "Limited"
	BusinessTypePartnership BusinessType = "Partnership"
	BusinessTypeSoleTrader  BusinessType = "Sole Trader"
	BusinessTypeIndividual  BusinessType = "Individual"
)

var businessTypes = []BusinessType{
	BusinessTypeLimited,
	BusinessTypePartnership,
	BusinessTypeSoleTrader,
	BusinessTypeIndividual,
}

func (t BusinessType) Valid() bool {
	for _, v := range businessTypes {
		if v == t {
			return true
		}
	}
	return false
}

func ParseBusinessType(s string) (BusinessType, error) {
	t := BusinessType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: business type %q", ErrInvalidEnum, s)
	}
	return t, nil
}

// CaseStatus is the lifecycle state of a case.
type CaseStatus string

const (
	CaseStatusOpen   CaseStatus = "Open"
	CaseStatusOnHold CaseStatus = "On Hold"
	CaseStatusClosed CaseStatus = "Closed"
)

var caseStatuses = []CaseStatus{CaseStatusOpen, CaseStatusOnHold, CaseStatusClosed}

func (s CaseStatus) Valid() bool {
	for _, v := range caseStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func ParseCaseStatus(s string) (CaseStatus, error) {
	st := CaseStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: case status %q", ErrInvalidEnum, s)
	}
	return st, nil
}

// LedgerType classifies a money movement. The sign of an entry is derived
// from its type, amounts are always stored non-negative.
type LedgerType string

const (
	LedgerTypeInvoice  LedgerType = "Invoice"
	LedgerTypePayment  LedgerType = "Payment"
	LedgerTypeCharge   LedgerType = "Charge"
	LedgerTypeInterest LedgerType = "Interest"
)

// LedgerTypes lists the ledger types in display order.
var LedgerTypes = []LedgerType{
	LedgerTypeInvoice,
	LedgerTypePayment,
	LedgerTypeCharge,
	LedgerTypeInterest,
}

func (t LedgerType) Valid() bool {
	for _, v := range LedgerTypes {
		if v == t {
			return true
		}
	}
	return false
}

func ParseLedgerType(s string) (LedgerType, error) {
	t := LedgerType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: ledger type %q", ErrInvalidEnum, s)
	}
	return t, nil
}

// NoteType classifies a case note.
type NoteType string

const (
	NoteTypeGeneral      NoteType = "General"
	NoteTypeDispute      NoteType = "Dispute"
	NoteTypeInboundCall  NoteType = "Inbound Call"
	NoteTypeOutboundCall NoteType = "Outbound Call"
)

var noteTypes = []NoteType{NoteTypeGeneral, NoteTypeDispute, NoteTypeInboundCall, NoteTypeOutboundCall}

func (t NoteType) Valid() bool {
	for _, v := range noteTypes {
		if v == t {
			return true
		}
	}
	return false
}

func ParseNoteType(s string) (NoteType, error) {
	t := NoteType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: note type %q", ErrInvalidEnum, s)
	}
	return t, nil
}

// ChargeCategory groups catalogue charges.
type ChargeCategory string

const (
	ChargeCategoryCommission  ChargeCategory = "Commission"
	ChargeCategoryAncillary   ChargeCategory = "Ancillary"
	ChargeCategoryCCJ         ChargeCategory = "CCJ"
	ChargeCategoryDefence     ChargeCategory = "defence"
	ChargeCategoryInsolvency  ChargeCategory = "Insolvency"
	ChargeCategoryEnforcement ChargeCategory = "Enforcement"
)

var chargeCategories = []ChargeCategory{
	ChargeCategoryCommission,
	ChargeCategoryAncillary,
	ChargeCategoryCCJ,
	ChargeCategoryDefence,
	ChargeCategoryInsolvency,
	ChargeCategoryEnforcement,
}

func (c ChargeCategory) Valid() bool {
	for _, v := range chargeCategories {
		if v == c {
			return true
		}
	}
	return false
}

func ParseChargeCategory(s string) (ChargeCategory, error) {
	c := ChargeCategory(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: charge category %q", ErrInvalidEnum, s)
	}
	return c, nil
}

// FieldType is the value kind of a custom field.
type FieldType string

const (
	FieldTypeText   FieldType = "text"
	FieldTypeDate   FieldType = "date"
	FieldTypeNumber FieldType = "number"
)

func (t FieldType) Valid() bool {
	return t == FieldTypeText || t == FieldTypeDate || t == FieldTypeNumber
}

func ParseFieldType(s string) (FieldType, error) {
	if s == "" {
		return FieldTypeText, nil
	}
	t := FieldType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: field type %q", ErrInvalidEnum, s)
	}
	return t, nil
}

// UserRole controls access to admin pages.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

func ParseUserRole(s string) (UserRole, error) {
	switch UserRole(s) {
	case "":
		return UserRoleUser, nil
	case UserRoleUser, UserRoleAdmin:
		return UserRole(s), nil
	}
	return "", fmt.Errorf("%w: user role %q", ErrInvalidEnum, s)
}
