package service

import (
	"context"
	"testing"

	"casebook/internal/model"
	"casebook/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomFields(t *testing.T) {
	f := newFixture(t)
	svc := NewCustomFieldService(f.db)
	ctx := context.Background()
	c := f.openCase(t, "Debtor Ltd")
	f.addEntry(t, c.ID, model.LedgerTypeInvoice, "100", false)

	ref, err := svc.DefineField(ctx, &DefineFieldRequest{FieldName: "Account Ref"})
	require.NoError(t, err)
	assert.Equal(t, model.FieldTypeText, ref.FieldType)
	due, err := svc.DefineField(ctx, &DefineFieldRequest{FieldName: "Due Date", FieldType: "date"})
	require.NoError(t, err)
	_, err = svc.DefineField(ctx, &DefineFieldRequest{FieldName: "Bad", FieldType: "money"})
	assert.ErrorIs(t, err, model.ErrInvalidEnum)

	err = svc.SetCaseValue(ctx, c.ID, &SetCaseValueRequest{FieldID: ref.ID, Value: "A-1"})
	assert.ErrorIs(t, err, ErrFieldNotLinked)

	require.NoError(t, svc.LinkFieldToClient(ctx, f.client.ID, ref.ID))
	require.NoError(t, svc.LinkFieldToClient(ctx, f.client.ID, ref.ID))
	require.NoError(t, svc.LinkFieldToClient(ctx, f.client.ID, due.ID))
	assert.ErrorIs(t, svc.LinkFieldToClient(ctx, 999, ref.ID), repository.ErrClientNotFound)
	assert.ErrorIs(t, svc.LinkFieldToClient(ctx, f.client.ID, 999), repository.ErrFieldNotFound)

	fields, err := svc.ListClientFields(ctx, f.client.ID)
	require.NoError(t, err)
	assert.Len(t, fields, 2)

	require.NoError(t, svc.SetCaseValue(ctx, c.ID, &SetCaseValueRequest{FieldID: ref.ID, Value: "A-1"}))
	require.NoError(t, svc.SetCaseValue(ctx, c.ID, &SetCaseValueRequest{FieldID: ref.ID, Value: "A-2"}))
	assert.ErrorIs(t, svc.SetCaseValue(ctx, c.ID, &SetCaseValueRequest{FieldID: due.ID, Value: "31/12/2024"}), ErrInvalidFieldValue)
	require.NoError(t, svc.SetCaseValue(ctx, c.ID, &SetCaseValueRequest{FieldID: due.ID, Value: "2024-12-31"}))

	values, err := svc.ListCaseValues(ctx, c.ID)
	require.NoError(t, err)
	got := map[string]string{}
	for _, v := range values {
		got[v.FieldName] = v.FieldValue
	}
	assert.Equal(t, map[string]string{"Account Ref": "A-2", "Due Date": "2024-12-31"}, got)

	d, err := NewDashboardService(f.db, f.cfg).Dashboard(ctx, c.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "100.00", d.Case.Balance.Balance)
}

func TestValidateFieldValue(t *testing.T) {
	assert.NoError(t, validateFieldValue(model.FieldTypeNumber, "12.5"))
	assert.NoError(t, validateFieldValue(model.FieldTypeNumber, ""))
	assert.ErrorIs(t, validateFieldValue(model.FieldTypeNumber, "twelve"), ErrInvalidFieldValue)
	assert.NoError(t, validateFieldValue(model.FieldTypeText, "anything"))
}
