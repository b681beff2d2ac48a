package job

import (
	"context"
	"errors"
	"testing"

	"casebook/internal/config"
	"casebook/internal/model"
	"casebook/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type published struct {
	topic, key, value string
}

type fakePublisher struct {
	err  error
	sent []published
}

func (p *fakePublisher) Publish(topic, key, value string) error {
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, published{topic, key, value})
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Business.OutboxBatchSize = 10
	cfg.Business.MaxRetryCount = 2
	return cfg
}

func seedMessages(t *testing.T, sender *OutboxSender, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, sender.outbox.Enqueue(context.Background(), nil, &model.OutboxMessage{
			MessageKey: "EVT" + string(rune('a'+i)),
			Topic:      "casebook.case-events",
			Payload:    `{"event":"case.opened"}`,
		}))
	}
}

func TestProcessPendingPublishes(t *testing.T) {
	db := testutil.NewDB(t)
	pub := &fakePublisher{}
	sender := NewOutboxSender(db, pub, testConfig(), zap.NewNop())
	seedMessages(t, sender, 3)

	assert.Equal(t, 3, sender.ProcessPending(context.Background()))
	require.Len(t, pub.sent, 3)
	assert.Equal(t, "EVTa", pub.sent[0].key)
	assert.Equal(t, "casebook.case-events", pub.sent[0].topic)

	sent, err := sender.outbox.WithStatus(context.Background(), model.OutboxStatusSent)
	require.NoError(t, err)
	assert.Len(t, sent, 3)
	assert.Zero(t, sender.ProcessPending(context.Background()))
}

func TestProcessPendingRetriesThenFails(t *testing.T) {
	db := testutil.NewDB(t)
	pub := &fakePublisher{err: errors.New("broker down")}
	sender := NewOutboxSender(db, pub, testConfig(), zap.NewNop())
	seedMessages(t, sender, 1)
	ctx := context.Background()

	assert.Zero(t, sender.ProcessPending(ctx))
	pending, err := sender.outbox.WithStatus(ctx, model.OutboxStatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 1, pending[0].RetryCount)

	assert.Zero(t, sender.ProcessPending(ctx))
	failed, err := sender.outbox.WithStatus(ctx, model.OutboxStatusFailed)
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, 2, failed[0].RetryCount)

	pub.err = nil
	assert.Zero(t, sender.ProcessPending(ctx))
	assert.Empty(t, pub.sent)
}
