package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChargeCatalogue(t *testing.T) {
	f := newFixture(t)
	svc := NewChargeService(f.db)
	ctx := context.Background()

	_, err := svc.AddCharge(ctx, &AddChargeRequest{Code: "X", Description: "y", Category: "Court"})
	assert.Error(t, err)
	_, err = svc.AddCharge(ctx, &AddChargeRequest{Code: " ", Description: "y", Category: "CCJ"})
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = svc.AddCharge(ctx, &AddChargeRequest{Code: "ENF1", Description: "Enforcement visit", Category: "Enforcement"})
	require.NoError(t, err)
	charges, err := svc.ListCharges(ctx)
	require.NoError(t, err)
	require.Len(t, charges, 1)
	assert.Equal(t, "ENF1", charges[0].Code)
}

func TestDBStructure(t *testing.T) {
	f := newFixture(t)
	tables, err := NewAdminService(f.db).DBStructure(context.Background())
	require.NoError(t, err)

	names := make(map[string][]string)
	for _, tbl := range tables {
		for _, col := range tbl.Columns {
			names[tbl.Name] = append(names[tbl.Name], col.Name)
		}
	}
	assert.Contains(t, names, "cases")
	assert.Contains(t, names["money"], "recoverable")
	assert.Contains(t, names["case_status_history"], "old_next_action_date")
}
