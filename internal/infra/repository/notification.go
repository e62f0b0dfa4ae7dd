package repository

import (
	"context"

	"librepress/internal/infra"
	"librepress/internal/infra/db"

	"github.com/google/uuid"
)

// NotificationRepository enqueues jobs for the out-of-process notifier.
// Jobs are written in the same transaction as the transition they
// announce, so a rolled-back transition never notifies.
type NotificationRepository struct{}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO notification_jobs (id, kind, topic, payload, status, created_at)
		VALUES ($1, $2, $3, $4, 'pending', now())`,
		uuid.New(), kind, topic, payload,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to enqueue notification job", err)
	}
	return nil
}
