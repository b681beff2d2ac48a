package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"casebook/internal/ledger"
	"casebook/internal/model"
	"casebook/internal/repository"
	"casebook/pkg/idgen"

	"gorm.io/gorm"
)

// EventService records case events in the outbox inside the caller's
// transaction. The relay process publishes them afterwards.
type EventService struct {
	topic      string
	outbox     *repository.EventOutbox
	ledgerRepo *repository.LedgerRepository
}

func NewEventService(db *gorm.DB, topic string) *EventService {
	return &EventService{
		topic:      topic,
		outbox:     repository.NewEventOutbox(db),
		ledgerRepo: repository.NewLedgerRepository(db),
	}
}

// Record writes one event for c. The balance is recomputed from the
// entries visible in tx, so it reflects the change being committed.
func (s *EventService) Record(ctx context.Context, tx *gorm.DB, event string, c *model.Case, entryID, actorID int64) error {
	entries, err := s.ledgerRepo.ListByCase(ctx, tx, c.ID)
	if err != nil {
		return fmt.Errorf("load entries for event: %w", err)
	}
	summary := ledger.Aggregate(entries).Rounded()

	payload, err := json.Marshal(model.CaseEvent{
		Event:      event,
		CaseID:     c.ID,
		ClientID:   c.ClientID,
		EntryID:    entryID,
		Status:     string(c.Status),
		Balance:    summary.Balance.StringFixed(ledger.DisplayPlaces),
		ActorID:    actorID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	msg := &model.OutboxMessage{
		MessageKey: idgen.GenerateEventKey(),
		Topic:      s.topic,
		Payload:    string(payload),
	}
	if err := s.outbox.Enqueue(ctx, tx, msg); err != nil {
		return fmt.Errorf("write outbox message: %w", err)
	}
	return nil
}
