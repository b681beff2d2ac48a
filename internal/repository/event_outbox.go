package repository

import (
	"context"

	"casebook/internal/model"

	"gorm.io/gorm"
)

// EventOutbox stores case events until the relay has handed them to the
// broker.
type EventOutbox struct {
	db *gorm.DB
}

func NewEventOutbox(db *gorm.DB) *EventOutbox {
	return &EventOutbox{db: db}
}

// Enqueue must run on the transaction that made the change being announced.
func (o *EventOutbox) Enqueue(ctx context.Context, tx *gorm.DB, msg *model.OutboxMessage) error {
	msg.Status = model.OutboxStatusPending
	return pick(o.db, tx).WithContext(ctx).Create(msg).Error
}

// Due returns up to limit pending events, oldest first.
func (o *EventOutbox) Due(ctx context.Context, limit int) ([]*model.OutboxMessage, error) {
	return o.find(ctx, model.OutboxStatusPending, limit)
}

// WithStatus returns every event in the given state, oldest first.
func (o *EventOutbox) WithStatus(ctx context.Context, status string) ([]*model.OutboxMessage, error) {
	return o.find(ctx, status, -1)
}

func (o *EventOutbox) MarkSent(ctx context.Context, id int64) error {
	return o.set(ctx, id, map[string]interface{}{"status": model.OutboxStatusSent})
}

// RecordFailure bumps the attempt counter. With giveUp the event also
// leaves the pending queue for good.
func (o *EventOutbox) RecordFailure(ctx context.Context, id int64, giveUp bool) error {
	fields := map[string]interface{}{"retry_count": gorm.Expr("retry_count + 1")}
	if giveUp {
		fields["status"] = model.OutboxStatusFailed
	}
	return o.set(ctx, id, fields)
}

func (o *EventOutbox) find(ctx context.Context, status string, limit int) ([]*model.OutboxMessage, error) {
	var events []*model.OutboxMessage
	err := o.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at, id").
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (o *EventOutbox) set(ctx context.Context, id int64, fields map[string]interface{}) error {
	return o.db.WithContext(ctx).
		Model(&model.OutboxMessage{}).
		Where("id = ?", id).
		Updates(fields).Error
}
