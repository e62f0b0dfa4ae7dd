package commands

import (
	"context"

	"librepress/internal/domain/catalog"
	"librepress/internal/domain/discount"
	"librepress/internal/infra/db"
	"librepress/internal/usecase/shared"

	"github.com/google/uuid"
)

// Write-side ports. Every mutation runs against a db.DBTX so the
// commands decide transaction boundaries, not the repositories.

type WorkRepository interface {
	Create(ctx context.Context, tx db.DBTX, w *catalog.Work) error
	// FindByIDForUpdate takes the per-work row lock that serializes
	// concurrent lifecycle and stock mutations.
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*shared.WorkSnapshot, error)
	UpdateLifecycle(ctx context.Context, tx db.DBTX, w *catalog.Work) error
	UpdateOwnedQuantity(ctx context.Context, tx db.DBTX, id uuid.UUID, owned int) error
	HasOrderLines(ctx context.Context, tx db.DBTX, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

type HoldingRepository interface {
	ListByWork(ctx context.Context, tx db.DBTX, workID uuid.UUID) ([]shared.HoldingSnapshot, error)
	Upsert(ctx context.Context, tx db.DBTX, workID, partnerID uuid.UUID, quantity int) error
}

// MovementRepository appends to the stock journal. Entries are never
// updated or deleted.
type MovementRepository interface {
	Append(ctx context.Context, tx db.DBTX, rec shared.MovementRecord) error
}

type DiscountRuleRepository interface {
	Create(ctx context.Context, tx db.DBTX, r *discount.Rule) error
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*shared.RuleSnapshot, error)
	ExistsActiveCode(ctx context.Context, tx db.DBTX, code string) (bool, error)
	SetActive(ctx context.Context, tx db.DBTX, id uuid.UUID, active bool) error
}

// NotificationRepository enqueues lifecycle notification jobs written
// in the same transaction as the transition they announce.
type NotificationRepository interface {
	CreateJob(ctx context.Context, tx db.DBTX, kind, topic string, payload []byte) error
}
