package service

import (
	"context"
	"testing"

	"casebook/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	f := newFixture(t)
	svc := NewSearchService(f.db, f.cfg)
	ctx := context.Background()

	other := testutil.SeedClient(t, f.db, "Zenith Holdings")
	_, err := f.cases.AddCase(ctx, &AddCaseRequest{ClientID: f.client.ID, DebtorFirst: "Jane", DebtorLast: "Smith", Postcode: "LS1 4AP"}, f.user.ID)
	require.NoError(t, err)
	_, err = f.cases.AddCase(ctx, &AddCaseRequest{ClientID: other.ID, DebtorBusinessName: "Smith Plumbing", Email: "accounts@smithplumbing.test"}, f.user.ID)
	require.NoError(t, err)

	results, err := svc.Search(ctx, "SMITH")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Acme Ltd", results[0].ClientName)
	assert.Equal(t, "Jane Smith", results[0].DebtorName)
	assert.Equal(t, "Zenith Holdings", results[1].ClientName)

	results, err = svc.Search(ctx, "smith  ls1")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "LS1 4AP", results[0].Postcode)

	results, err = svc.Search(ctx, "zenith plumbing")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "accounts@smithplumbing.test", results[0].Email)

	results, err = svc.Search(ctx, "smith nowhere")
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = svc.Search(ctx, "   ")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearchLimit(t *testing.T) {
	f := newFixture(t)
	f.cfg.Business.SearchLimit = 3
	svc := NewSearchService(f.db, f.cfg)

	for i := 0; i < 5; i++ {
		f.openCase(t, "Repeat Debtor")
	}
	results, err := svc.Search(context.Background(), "repeat")
	require.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Less(t, results[0].CaseID, results[1].CaseID)
}

func TestClientSearch(t *testing.T) {
	f := newFixture(t)
	svc := NewSearchService(f.db, f.cfg)
	ctx := context.Background()
	testutil.SeedClient(t, f.db, "Acme Foods")
	testutil.SeedClient(t, f.db, "Borders Ltd")

	refs, err := svc.ClientSearch(ctx, "acme")
	require.NoError(t, err)
	assert.Len(t, refs, 2)

	refs, err = svc.ClientSearch(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, refs)
}
