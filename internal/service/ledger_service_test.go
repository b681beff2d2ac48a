package service

import (
	"context"
	"errors"
	"testing"

	"casebook/internal/model"
	"casebook/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestAddEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.openCase(t, "Debtor Ltd")

	e, err := f.ledger.AddEntry(ctx, &AddEntryRequest{
		CaseID:      c.ID,
		Type:        "Invoice",
		Amount:      "500.00",
		Recoverable: true,
		Description: "INV-1",
	}, f.user.ID)
	require.NoError(t, err)
	assert.False(t, e.Recoverable, "recoverable is only kept for charges")
	assert.Equal(t, model.Today(), e.TransactionDate)
	assert.Equal(t, f.user.ID, e.CreatedBy)

	charge := f.addEntry(t, c.ID, model.LedgerTypeCharge, "50", true)
	assert.True(t, charge.Recoverable)

	events := f.events(t)
	require.Len(t, events, 3)
	assert.Equal(t, model.EventLedgerEntryAdded, events[2].Event)
	assert.Equal(t, "550.00", events[2].Balance)
	assert.Equal(t, charge.ID, events[2].EntryID)
}

func TestAddEntryValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.openCase(t, "Debtor Ltd")

	for _, amount := range []string{"", "abc", "-1", "1,000"} {
		_, err := f.ledger.AddEntry(ctx, &AddEntryRequest{CaseID: c.ID, Type: "Payment", Amount: amount}, f.user.ID)
		assert.ErrorIs(t, err, ErrInvalidAmount, amount)
	}

	_, err := f.ledger.AddEntry(ctx, &AddEntryRequest{CaseID: c.ID, Type: "Refund", Amount: "1"}, f.user.ID)
	assert.ErrorIs(t, err, model.ErrInvalidEnum)

	_, err = f.ledger.AddEntry(ctx, &AddEntryRequest{CaseID: 999, Type: "Payment", Amount: "1"}, f.user.ID)
	assert.ErrorIs(t, err, repository.ErrCaseNotFound)

	chargeID := int64(1)
	_, err = f.ledger.AddEntry(ctx, &AddEntryRequest{CaseID: c.ID, Type: "Invoice", Amount: "1", ChargeID: &chargeID}, f.user.ID)
	assert.ErrorIs(t, err, ErrChargeTypeMismatch)

	_, err = f.ledger.AddEntry(ctx, &AddEntryRequest{CaseID: c.ID, Type: "Charge", Amount: "1", ChargeID: &chargeID}, f.user.ID)
	assert.ErrorIs(t, err, repository.ErrChargeNotFound)

	var n int64
	f.db.Model(&model.LedgerEntry{}).Count(&n)
	assert.Zero(t, n)
}

func TestAddEntryWithCatalogueCharge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.openCase(t, "Debtor Ltd")

	charge, err := NewChargeService(f.db).AddCharge(ctx, &AddChargeRequest{Code: "CCJ1", Description: "Claim fee", Category: "CCJ"})
	require.NoError(t, err)

	e, err := f.ledger.AddEntry(ctx, &AddEntryRequest{
		CaseID: c.ID, Type: "Charge", Amount: "35", VATAmount: "7", ChargeID: &charge.ID, TransactionDate: "2024-02-29",
	}, f.user.ID)
	require.NoError(t, err)
	require.NotNil(t, e.ChargeID)
	assert.True(t, decimal.NewFromInt(7).Equal(e.VATAmount))
	assert.Equal(t, "2024-02-29", e.TransactionDate.Format(model.DateLayout))
}

func TestEditAndDeleteEntry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.openCase(t, "Debtor Ltd")
	e := f.addEntry(t, c.ID, model.LedgerTypeCharge, "25", false)

	edited, err := f.ledger.EditEntry(ctx, &EditEntryRequest{ID: e.ID, Amount: "30", Description: "fee", Recoverable: true}, f.user.ID)
	require.NoError(t, err)
	assert.True(t, edited.Recoverable)

	got, err := f.ledger.GetEntry(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(30).Equal(got.Amount))
	assert.Equal(t, "fee", got.Description)

	_, err = f.ledger.EditEntry(ctx, &EditEntryRequest{ID: e.ID, Amount: "-5"}, f.user.ID)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = f.ledger.EditEntry(ctx, &EditEntryRequest{ID: 999, Amount: "5"}, f.user.ID)
	assert.ErrorIs(t, err, repository.ErrEntryNotFound)

	caseID, err := f.ledger.DeleteEntry(ctx, e.ID, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, caseID)
	_, err = f.ledger.GetEntry(ctx, e.ID)
	assert.ErrorIs(t, err, repository.ErrEntryNotFound)

	events := f.events(t)
	last := events[len(events)-1]
	assert.Equal(t, model.EventLedgerEntryDeleted, last.Event)
	assert.Equal(t, "0.00", last.Balance)
}

func TestMarkBilled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.openCase(t, "Debtor Ltd")

	for _, amount := range []string{"10.10", "20.20"} {
		_, err := f.ledger.AddEntry(ctx, &AddEntryRequest{CaseID: c.ID, Type: "Charge", Amount: amount, Billable: true}, f.user.ID)
		require.NoError(t, err)
	}
	f.addEntry(t, c.ID, model.LedgerTypeInvoice, "100", false)

	res, err := f.ledger.MarkBilled(ctx, f.client.ID, &MarkBilledRequest{BilledDate: "2024-03-31"}, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, "30.30", res.Total)

	res, err = f.ledger.MarkBilled(ctx, f.client.ID, &MarkBilledRequest{}, f.user.ID)
	require.NoError(t, err)
	assert.Zero(t, res.Count)
	assert.Equal(t, "0.00", res.Total)

	_, err = f.ledger.MarkBilled(ctx, 999, &MarkBilledRequest{}, f.user.ID)
	assert.ErrorIs(t, err, repository.ErrClientNotFound)
}

func TestAddEntryRollsBackOnFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	caseRows := sqlmock.NewRows([]string{"id", "client_id", "debtor_business_name", "status", "open_date"}).
		AddRow(1, 1, "Debtor Ltd", "Open", model.Today())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `cases`").WillReturnRows(caseRows)
	mock.ExpectExec("INSERT INTO `money`").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	svc := NewLedgerService(db, testConfig(), zap.NewNop())
	_, err = svc.AddEntry(context.Background(), &AddEntryRequest{CaseID: 1, Type: "Invoice", Amount: "10"}, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	assert.NoError(t, mock.ExpectationsWereMet())
}
