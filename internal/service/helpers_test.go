package service

import (
	"context"
	"encoding/json"
	"testing"

	"casebook/internal/config"
	"casebook/internal/infrastructure/lock"
	"casebook/internal/model"
	"casebook/internal/testutil"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Kafka.Topic.CaseEvents = "casebook.case-events"
	cfg.Business.PageSize = 15
	cfg.Business.RecentCases = 10
	cfg.Business.SearchLimit = 50
	cfg.Business.ClientSearchLimit = 20
	return cfg
}

type fixture struct {
	db     *gorm.DB
	cfg    *config.Config
	user   *model.User
	client *model.Client
	cases  *CaseService
	ledger *LedgerService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	cfg := testConfig()
	return &fixture{
		db:     db,
		cfg:    cfg,
		user:   testutil.SeedUser(t, db, "alice", model.UserRoleUser),
		client: testutil.SeedClient(t, db, "Acme Ltd"),
		cases:  NewCaseService(db, lock.NewLocalLocker(), cfg, zap.NewNop()),
		ledger: NewLedgerService(db, cfg, zap.NewNop()),
	}
}

func (f *fixture) openCase(t *testing.T, debtor string) *model.Case {
	t.Helper()
	c, err := f.cases.AddCase(context.Background(), &AddCaseRequest{ClientID: f.client.ID, DebtorBusinessName: debtor}, f.user.ID)
	require.NoError(t, err)
	return c
}

func (f *fixture) addEntry(t *testing.T, caseID int64, typ model.LedgerType, amount string, recoverable bool) *model.LedgerEntry {
	t.Helper()
	e, err := f.ledger.AddEntry(context.Background(), &AddEntryRequest{
		CaseID:      caseID,
		Type:        string(typ),
		Amount:      amount,
		Recoverable: recoverable,
	}, f.user.ID)
	require.NoError(t, err)
	return e
}

func (f *fixture) events(t *testing.T) []model.CaseEvent {
	t.Helper()
	var messages []model.OutboxMessage
	require.NoError(t, f.db.Order("id").Find(&messages).Error)
	out := make([]model.CaseEvent, 0, len(messages))
	for _, m := range messages {
		var e model.CaseEvent
		require.NoError(t, json.Unmarshal([]byte(m.Payload), &e))
		out = append(out, e)
	}
	return out
}
