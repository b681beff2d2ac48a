package repository

import (
	"context"
	"testing"

	"casebook/internal/model"
	"casebook/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage(t *testing.T) {
	off, lim := Page(0, 15)
	assert.Equal(t, 0, off)
	assert.Equal(t, 15, lim)
	off, _ = Page(3, 15)
	assert.Equal(t, 30, off)
}

func TestClientRepository(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewClientRepository(db)

	testutil.SeedClient(t, db, "Zeta Ltd")
	acme := testutil.SeedClient(t, db, "Acme Ltd")

	refs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "Acme Ltd", refs[0].Name)

	found, err := repo.Search(ctx, "ACM", 20)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, acme.ID, found[0].ID)

	require.NoError(t, repo.Rename(ctx, nil, acme.ID, "Acme Holdings"))
	got, err := repo.GetByID(ctx, nil, acme.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Holdings", got.BusinessName)

	assert.ErrorIs(t, repo.Rename(ctx, nil, 999, "x"), ErrClientNotFound)
	_, err = repo.GetByID(ctx, nil, 999)
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestClientDeleteCascades(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	user := testutil.SeedUser(t, db, "alice", model.UserRoleUser)
	client := testutil.SeedClient(t, db, "Acme Ltd")
	c := testutil.SeedCase(t, db, client.ID, "Debtor Co", "", "", testutil.Day(2024, 1, 1))
	testutil.SeedEntry(t, db, c.ID, user.ID, model.LedgerTypeInvoice, "10", false)

	require.NoError(t, NewClientRepository(db).Delete(ctx, nil, client.ID))

	var cases, entries int64
	db.Model(&model.Case{}).Count(&cases)
	db.Model(&model.LedgerEntry{}).Count(&entries)
	assert.Zero(t, cases)
	assert.Zero(t, entries)
}

func TestCaseSearch(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewCaseRepository(db)

	acme := testutil.SeedClient(t, db, "Acme Ltd")
	beta := testutil.SeedClient(t, db, "Beta Partners")
	c1 := testutil.SeedCase(t, db, beta.ID, "", "John", "Smith", testutil.Day(2024, 1, 1))
	c2 := testutil.SeedCase(t, db, acme.ID, "Smithson Widgets", "", "", testutil.Day(2024, 1, 2))
	c3 := testutil.SeedCase(t, db, acme.ID, "", "Jane", "Doe", testutil.Day(2024, 1, 3))
	require.NoError(t, db.Model(c3).Update("postcode", "SW1A 1AA").Error)

	results, err := repo.Search(ctx, []string{"smith"}, 50)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, c2.ID, results[0].CaseID, "ordered by client name first")
	assert.Equal(t, "Smithson Widgets", results[0].DebtorName)
	assert.Equal(t, c1.ID, results[1].CaseID)
	assert.Equal(t, "John Smith", results[1].DebtorName)

	results, err = repo.Search(ctx, []string{"john", "beta"}, 50)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, c1.ID, results[0].CaseID)

	results, err = repo.Search(ctx, []string{"sw1a"}, 50)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, c3.ID, results[0].CaseID)

	results, err = repo.Search(ctx, []string{"acme"}, 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearchTreatsWildcardsLiterally(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	cases := NewCaseRepository(db)
	clients := NewClientRepository(db)

	acme := testutil.SeedClient(t, db, "Acme Ltd")
	testutil.SeedClient(t, db, "100% Recovery")
	testutil.SeedCase(t, db, acme.ID, "Widget Co", "", "", testutil.Day(2024, 1, 1))
	discount := testutil.SeedCase(t, db, acme.ID, "50% Off Stores", "", "", testutil.Day(2024, 1, 2))

	for _, term := range []string{"_", "%", "!"} {
		results, err := cases.Search(ctx, []string{term}, 50)
		require.NoError(t, err)
		if term == "%" {
			require.Len(t, results, 1, term)
			assert.Equal(t, discount.ID, results[0].CaseID)
			continue
		}
		assert.Empty(t, results, term)
	}

	results, err := cases.Search(ctx, []string{"50%"}, 50)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, discount.ID, results[0].CaseID)

	results, err = cases.Search(ctx, []string{"5_%"}, 50)
	require.NoError(t, err)
	assert.Empty(t, results)

	refs, err := clients.Search(ctx, "_", 20)
	require.NoError(t, err)
	assert.Empty(t, refs)

	refs, err = clients.Search(ctx, "0%", 20)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "100% Recovery", refs[0].Name)
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%smith%", containsPattern("Smith"))
	assert.Equal(t, "%50!%%", containsPattern("50%"))
	assert.Equal(t, "%a!_b!!c%", containsPattern("a_b!c"))
}

func TestCaseRecentAndStatus(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewCaseRepository(db)

	client := testutil.SeedClient(t, db, "Acme Ltd")
	old := testutil.SeedCase(t, db, client.ID, "Old", "", "", testutil.Day(2023, 5, 1))
	newer := testutil.SeedCase(t, db, client.ID, "New", "", "", testutil.Day(2024, 5, 1))

	recent, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, newer.ID, recent[0].CaseID)
	assert.Equal(t, "Acme Ltd", recent[0].BusinessName)
	assert.Equal(t, old.ID, recent[1].CaseID)

	sub := "awaiting docs"
	next := testutil.Day(2024, 6, 1)
	require.NoError(t, repo.UpdateStatus(ctx, nil, old.ID, model.StatusSnapshot{Status: model.CaseStatusOnHold, Substatus: &sub, NextActionDate: &next}))

	got, err := repo.GetByID(ctx, nil, old.ID)
	require.NoError(t, err)
	assert.Equal(t, model.CaseStatusOnHold, got.Status)
	require.NotNil(t, got.Substatus)
	assert.Equal(t, sub, *got.Substatus)
	require.NotNil(t, got.NextActionDate)
	assert.Equal(t, "2024-06-01", got.NextActionDate.Format(model.DateLayout))

	require.NoError(t, repo.RenameDebtor(ctx, nil, old.ID, "Renamed Ltd"))
	assert.ErrorIs(t, repo.RenameDebtor(ctx, nil, 999, "x"), ErrCaseNotFound)
}

func TestLedgerRepository(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewLedgerRepository(db)

	user := testutil.SeedUser(t, db, "alice", model.UserRoleUser)
	client := testutil.SeedClient(t, db, "Acme Ltd")
	other := testutil.SeedClient(t, db, "Other Ltd")
	c1 := testutil.SeedCase(t, db, client.ID, "D1", "", "", testutil.Day(2024, 1, 1))
	c2 := testutil.SeedCase(t, db, client.ID, "D2", "", "", testutil.Day(2024, 1, 2))
	c3 := testutil.SeedCase(t, db, other.ID, "D3", "", "", testutil.Day(2024, 1, 2))

	e1 := testutil.SeedEntry(t, db, c1.ID, user.ID, model.LedgerTypeInvoice, "100.50", false)
	testutil.SeedEntry(t, db, c2.ID, user.ID, model.LedgerTypePayment, "20", false)
	testutil.SeedEntry(t, db, c3.ID, user.ID, model.LedgerTypeInvoice, "999", false)

	byClient, err := repo.ListByClient(ctx, client.ID)
	require.NoError(t, err)
	assert.Len(t, byClient, 2)

	page, err := repo.PageByCase(ctx, c1.ID, 0, 15)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "alice", page[0].Username)
	assert.True(t, decimal.RequireFromString("100.50").Equal(page[0].Amount))

	e1.Amount = decimal.RequireFromString("80")
	e1.Description = "revised"
	require.NoError(t, repo.Update(ctx, nil, e1))
	got, err := repo.GetByID(ctx, nil, e1.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(80).Equal(got.Amount))
	assert.Equal(t, "revised", got.Description)

	require.NoError(t, repo.Delete(ctx, nil, e1.ID))
	assert.ErrorIs(t, repo.Delete(ctx, nil, e1.ID), ErrEntryNotFound)
	_, err = repo.GetByID(ctx, nil, e1.ID)
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestLedgerMarkBilled(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewLedgerRepository(db)

	user := testutil.SeedUser(t, db, "alice", model.UserRoleUser)
	client := testutil.SeedClient(t, db, "Acme Ltd")
	c := testutil.SeedCase(t, db, client.ID, "D1", "", "", testutil.Day(2024, 1, 1))
	billable := testutil.SeedEntry(t, db, c.ID, user.ID, model.LedgerTypeCharge, "30", true)
	require.NoError(t, db.Model(billable).Update("billable", true).Error)
	testutil.SeedEntry(t, db, c.ID, user.ID, model.LedgerTypeInvoice, "100", false)

	unbilled, err := repo.ListUnbilled(ctx, nil, client.ID)
	require.NoError(t, err)
	require.Len(t, unbilled, 1)
	assert.Equal(t, billable.ID, unbilled[0].ID)

	require.NoError(t, repo.MarkBilled(ctx, nil, []int64{billable.ID}, testutil.Day(2024, 2, 1)))
	unbilled, err = repo.ListUnbilled(ctx, nil, client.ID)
	require.NoError(t, err)
	assert.Empty(t, unbilled)

	got, err := repo.GetByID(ctx, nil, billable.ID)
	require.NoError(t, err)
	assert.True(t, got.Billed)
	require.NotNil(t, got.BilledDate)
}

func TestStatusHistoryLatest(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewStatusHistoryRepository(db)

	user := testutil.SeedUser(t, db, "alice", model.UserRoleUser)
	client := testutil.SeedClient(t, db, "Acme Ltd")
	c := testutil.SeedCase(t, db, client.ID, "D1", "", "", testutil.Day(2024, 1, 1))

	_, err := repo.Latest(ctx, nil, c.ID)
	assert.ErrorIs(t, err, ErrHistoryNotFound)

	first := &model.CaseStatusHistory{CaseID: c.ID, OldStatus: model.CaseStatusOpen, NewStatus: model.CaseStatusOnHold, ChangedBy: user.ID}
	second := &model.CaseStatusHistory{CaseID: c.ID, OldStatus: model.CaseStatusOnHold, NewStatus: model.CaseStatusClosed, ChangedBy: user.ID}
	require.NoError(t, repo.Create(ctx, nil, first))
	second.ChangedAt = first.ChangedAt
	require.NoError(t, repo.Create(ctx, nil, second))

	latest, err := repo.Latest(ctx, nil, c.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID, "same timestamp falls back to id")

	views, err := repo.ListByCase(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "alice", views[0].Username)

	require.NoError(t, repo.Delete(ctx, nil, second.ID))
	n, err := repo.CountByCase(ctx, nil, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCustomFieldRepository(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	repo := NewCustomFieldRepository(db)

	client := testutil.SeedClient(t, db, "Acme Ltd")
	c := testutil.SeedCase(t, db, client.ID, "D1", "", "", testutil.Day(2024, 1, 1))
	def := &model.CustomFieldDefinition{FieldName: "Account Ref", FieldType: model.FieldTypeText}
	require.NoError(t, repo.CreateDefinition(ctx, def))

	require.NoError(t, repo.Link(ctx, nil, client.ID, def.ID))
	require.NoError(t, repo.Link(ctx, nil, client.ID, def.ID))
	linked, err := repo.IsLinked(ctx, nil, client.ID, def.ID)
	require.NoError(t, err)
	assert.True(t, linked)

	fields, err := repo.ListClientFields(ctx, client.ID)
	require.NoError(t, err)
	require.Len(t, fields, 1)

	require.NoError(t, repo.UpsertValue(ctx, nil, &model.CaseCustomValue{CaseID: c.ID, FieldID: def.ID, FieldValue: "A1"}))
	require.NoError(t, repo.UpsertValue(ctx, nil, &model.CaseCustomValue{CaseID: c.ID, FieldID: def.ID, FieldValue: "A2"}))

	values, err := repo.ListCaseValues(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.Equal(t, "A2", values[0].FieldValue)
	assert.Equal(t, "Account Ref", values[0].FieldName)
}

func TestEventOutbox(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	outbox := NewEventOutbox(db)

	first := &model.OutboxMessage{MessageKey: "EVT1", Topic: "t", Payload: "{}", Status: model.OutboxStatusSent}
	second := &model.OutboxMessage{MessageKey: "EVT2", Topic: "t", Payload: "{}"}
	require.NoError(t, outbox.Enqueue(ctx, nil, first))
	require.NoError(t, outbox.Enqueue(ctx, nil, second))
	assert.Equal(t, model.OutboxStatusPending, first.Status)

	due, err := outbox.Due(ctx, 1)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, first.ID, due[0].ID)

	require.NoError(t, outbox.RecordFailure(ctx, first.ID, false))
	require.NoError(t, outbox.MarkSent(ctx, second.ID))
	due, err = outbox.Due(ctx, 10)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, 1, due[0].RetryCount)

	require.NoError(t, outbox.RecordFailure(ctx, first.ID, true))
	failed, err := outbox.WithStatus(ctx, model.OutboxStatusFailed)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, 2, failed[0].RetryCount)

	due, err = outbox.Due(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, due)

	sent, err := outbox.WithStatus(ctx, model.OutboxStatusSent)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, second.ID, sent[0].ID)
}

func TestSchemaDescribe(t *testing.T) {
	db := testutil.NewDB(t)

	tables, err := NewSchemaRepository(db).Describe(context.Background())
	require.NoError(t, err)

	byName := make(map[string]Table)
	for _, tbl := range tables {
		byName[tbl.Name] = tbl
	}
	require.Contains(t, byName, "money")
	var names []string
	for _, col := range byName["money"].Columns {
		names = append(names, col.Name)
	}
	assert.Contains(t, names, "recoverable")
	assert.Contains(t, names, "vat_amount")
}
