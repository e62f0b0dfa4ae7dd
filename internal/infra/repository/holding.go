package repository

import (
	"context"

	"librepress/internal/infra"
	"librepress/internal/infra/db"
	"librepress/internal/usecase/shared"

	"github.com/google/uuid"
)

type HoldingRepository struct{}

func NewHoldingRepository() *HoldingRepository {
	return &HoldingRepository{}
}

func (r *HoldingRepository) ListByWork(ctx context.Context, tx db.DBTX, workID uuid.UUID) ([]shared.HoldingSnapshot, error) {
	rows, err := tx.Query(ctx, `
		SELECT work_id, partner_id, quantity
		FROM depot_holdings
		WHERE work_id = $1
		ORDER BY partner_id`, workID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list depot holdings", err)
	}
	defer rows.Close()

	var holdings []shared.HoldingSnapshot
	for rows.Next() {
		var h shared.HoldingSnapshot
		if err := rows.Scan(&h.WorkID, &h.PartnerID, &h.Quantity); err != nil {
			return nil, infra.WrapRepoErr("failed to scan depot holding", err)
		}
		holdings = append(holdings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read depot holdings", err)
	}
	return holdings, nil
}

func (r *HoldingRepository) Upsert(ctx context.Context, tx db.DBTX, workID, partnerID uuid.UUID, quantity int) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO depot_holdings (work_id, partner_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (work_id, partner_id) DO UPDATE SET quantity = EXCLUDED.quantity`,
		workID, partnerID, quantity,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert depot holding", err)
	}
	return nil
}
