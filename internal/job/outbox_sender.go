package job

import (
	"context"
	"time"

	"casebook/internal/config"
	"casebook/internal/infrastructure/mq"
	"casebook/internal/model"
	"casebook/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OutboxSender relays pending case events to the broker. A message is
// marked SENT after a successful publish and FAILED once it has used up
// its retries.
type OutboxSender struct {
	outbox     *repository.EventOutbox
	publisher  mq.Publisher
	logger     *zap.Logger
	stopCh     chan struct{}
	interval   time.Duration
	batchSize  int
	maxRetries int
}

func NewOutboxSender(db *gorm.DB, publisher mq.Publisher, cfg *config.Config, logger *zap.Logger) *OutboxSender {
	interval := cfg.Business.OutboxInterval
	if interval <= 0 {
		interval = time.Second
	}
	return &OutboxSender{
		outbox:     repository.NewEventOutbox(db),
		publisher:  publisher,
		logger:     logger,
		stopCh:     make(chan struct{}),
		interval:   interval,
		batchSize:  cfg.Business.OutboxBatchSize,
		maxRetries: cfg.Business.MaxRetryCount,
	}
}

// Start polls until ctx is cancelled or Stop is called.
func (s *OutboxSender) Start(ctx context.Context) {
	s.logger.Info("outbox sender started", zap.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("outbox sender stopping", zap.Error(ctx.Err()))
			return
		case <-s.stopCh:
			s.logger.Info("outbox sender stopped")
			return
		case <-ticker.C:
			s.ProcessPending(ctx)
		}
	}
}

func (s *OutboxSender) Stop() {
	close(s.stopCh)
}

// ProcessPending sends one batch and returns how many messages were published.
func (s *OutboxSender) ProcessPending(ctx context.Context) int {
	messages, err := s.outbox.Due(ctx, s.batchSize)
	if err != nil {
		s.logger.Error("load pending outbox messages", zap.Error(err))
		return 0
	}

	sent := 0
	for _, msg := range messages {
		if s.sendMessage(ctx, msg) {
			sent++
		}
	}
	return sent
}

func (s *OutboxSender) sendMessage(ctx context.Context, msg *model.OutboxMessage) bool {
	err := s.publisher.Publish(msg.Topic, msg.MessageKey, msg.Payload)
	if err == nil {
		if updateErr := s.outbox.MarkSent(ctx, msg.ID); updateErr != nil {
			s.logger.Error("mark outbox message sent", zap.Int64("id", msg.ID), zap.Error(updateErr))
			return false
		}
		s.logger.Debug("outbox message sent",
			zap.Int64("id", msg.ID),
			zap.String("topic", msg.Topic),
			zap.String("key", msg.MessageKey))
		return true
	}

	s.logger.Warn("publish outbox message", zap.Int64("id", msg.ID), zap.Int("retry_count", msg.RetryCount), zap.Error(err))

	giveUp := msg.RetryCount+1 >= s.maxRetries
	if err := s.outbox.RecordFailure(ctx, msg.ID, giveUp); err != nil {
		s.logger.Error("record outbox publish failure", zap.Int64("id", msg.ID), zap.Error(err))
		return false
	}
	if giveUp {
		s.logger.Warn("outbox message gave up after max retries", zap.Int64("id", msg.ID))
	}
	return false
}
