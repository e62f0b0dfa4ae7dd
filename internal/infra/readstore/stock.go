package readstore

import (
	"context"
	"time"

	"librepress/internal/infra"
	"librepress/internal/infra/db"
	"librepress/internal/pkg/pgconv"
	"librepress/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type StockReadStore struct {
	db db.DBTX
}

func NewStockReadStore(conn db.DBTX) *StockReadStore {
	return &StockReadStore{db: conn}
}

func (r *StockReadStore) FindPosition(ctx context.Context, workID uuid.UUID) (*queries.StockPosition, error) {
	var pos queries.StockPosition
	err := r.db.QueryRow(ctx, `
		SELECT id, status, owned_quantity, min_threshold, max_threshold
		FROM works WHERE id = $1`, workID).
		Scan(&pos.WorkID, &pos.WorkStatus, &pos.Owned, &pos.MinThreshold, &pos.MaxThreshold)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("work not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get stock position", err)
	}
	return &pos, nil
}

func (r *StockReadStore) FindHoldings(ctx context.Context, workID uuid.UUID) ([]queries.HoldingView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT partner_id, quantity
		FROM depot_holdings
		WHERE work_id = $1
		ORDER BY partner_id`, workID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list holdings", err)
	}
	defer rows.Close()

	var holdings []queries.HoldingView
	for rows.Next() {
		var h queries.HoldingView
		if err := rows.Scan(&h.PartnerID, &h.Quantity); err != nil {
			return nil, infra.WrapRepoErr("failed to scan holding", err)
		}
		holdings = append(holdings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read holdings", err)
	}
	return holdings, nil
}

func (r *StockReadStore) FindMovementsFirstPage(ctx context.Context, workID uuid.UUID, limit int32) ([]*queries.MovementView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, work_id, kind, delta, partner_id, actor_id, occurred_at
		FROM stock_movements
		WHERE work_id = $1
		ORDER BY occurred_at DESC, id DESC
		LIMIT $2`, workID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list movements first page", err)
	}
	return collectMovements(rows)
}

func (r *StockReadStore) FindMovementsKeyset(ctx context.Context, workID uuid.UUID, lastOccurredAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.MovementView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, work_id, kind, delta, partner_id, actor_id, occurred_at
		FROM stock_movements
		WHERE work_id = $1 AND (occurred_at, id) < ($2, $3)
		ORDER BY occurred_at DESC, id DESC
		LIMIT $4`, workID, lastOccurredAt, lastID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list movements keyset", err)
	}
	return collectMovements(rows)
}

func collectMovements(rows pgx.Rows) ([]*queries.MovementView, error) {
	defer rows.Close()

	var movements []*queries.MovementView
	for rows.Next() {
		var m queries.MovementView
		if err := rows.Scan(&m.ID, &m.WorkID, &m.Kind, &m.Delta, &m.PartnerID, &m.ActorID, &m.OccurredAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan movement", err)
		}
		movements = append(movements, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read movements", err)
	}
	return movements, nil
}
