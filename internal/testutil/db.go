// Package testutil provides database fixtures for package tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"casebook/internal/infrastructure/database"
	"casebook/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated sqlite database in t's temp dir.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func SeedUser(t *testing.T, db *gorm.DB, username string, role model.UserRole) *model.User {
	t.Helper()
	u := &model.User{Username: username, PasswordHash: []byte("x"), Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

func SeedClient(t *testing.T, db *gorm.DB, name string) *model.Client {
	t.Helper()
	c := &model.Client{BusinessType: model.BusinessTypeLimited, BusinessName: name, DefaultInterestRate: decimal.Zero}
	require.NoError(t, db.Create(c).Error)
	return c
}

func SeedCase(t *testing.T, db *gorm.DB, clientID int64, business, first, last string, opened time.Time) *model.Case {
	t.Helper()
	c := &model.Case{
		ClientID:           clientID,
		DebtorBusinessName: business,
		DebtorFirst:        first,
		DebtorLast:         last,
		Status:             model.CaseStatusOpen,
		OpenDate:           opened,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func SeedEntry(t *testing.T, db *gorm.DB, caseID, userID int64, typ model.LedgerType, amount string, recoverable bool) *model.LedgerEntry {
	t.Helper()
	e := &model.LedgerEntry{
		CaseID:          caseID,
		Type:            typ,
		Amount:          decimal.RequireFromString(amount),
		TransactionDate: model.Today(),
		CreatedBy:       userID,
		Recoverable:     recoverable,
	}
	require.NoError(t, db.Create(e).Error)
	return e
}

// Day builds a UTC date.
func Day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
