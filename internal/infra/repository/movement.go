package repository

import (
	"context"

	"librepress/internal/infra"
	"librepress/internal/infra/db"
	"librepress/internal/usecase/shared"
)

// MovementRepository writes the append-only stock journal.
type MovementRepository struct{}

func NewMovementRepository() *MovementRepository {
	return &MovementRepository{}
}

func (r *MovementRepository) Append(ctx context.Context, tx db.DBTX, rec shared.MovementRecord) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO stock_movements (id, work_id, kind, delta, partner_id, actor_id, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.WorkID, rec.Kind, rec.Delta, rec.PartnerID, rec.ActorID, rec.OccurredAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to append stock movement", err)
	}
	return nil
}
