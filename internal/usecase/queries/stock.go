package queries

import (
	"context"
	"time"

	"librepress/internal/domain/stock"
	"librepress/internal/infra"

	"github.com/google/uuid"
)

type StockReadStore interface {
	// FindPosition returns the work's status, owned quantity and
	// effective thresholds in one read.
	FindPosition(ctx context.Context, workID uuid.UUID) (*StockPosition, error)
	FindHoldings(ctx context.Context, workID uuid.UUID) ([]HoldingView, error)
	FindMovementsFirstPage(ctx context.Context, workID uuid.UUID, limit int32) ([]*MovementView, error)
	FindMovementsKeyset(ctx context.Context, workID uuid.UUID, lastOccurredAt time.Time, lastID uuid.UUID, limit int32) ([]*MovementView, error)
}

type StockPosition struct {
	WorkID       uuid.UUID
	WorkStatus   string
	Owned        int
	MinThreshold *int
	MaxThreshold *int
}

type StockQueries interface {
	Overview(ctx context.Context, workID uuid.UUID) (*StockOverview, error)
	Movements(ctx context.Context, workID uuid.UUID, cursor *Cursor, limit int) ([]*MovementView, *Cursor, error)
}

type stockQueriesImpl struct {
	store      StockReadStore
	defaultMin int
	defaultMax int
}

func NewStockQueries(store StockReadStore, defaultMinThreshold, defaultMaxThreshold int) StockQueries {
	return &stockQueriesImpl{store: store, defaultMin: defaultMinThreshold, defaultMax: defaultMaxThreshold}
}

func (q *stockQueriesImpl) Overview(ctx context.Context, workID uuid.UUID) (*StockOverview, error) {
	pos, err := q.store.FindPosition(ctx, workID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrWorkNotFound
		}
		return nil, err
	}

	holdings, err := q.store.FindHoldings(ctx, workID)
	if err != nil {
		return nil, err
	}

	byPartner := make(map[uuid.UUID]int, len(holdings))
	for _, h := range holdings {
		byPartner[h.PartnerID] = h.Quantity
	}
	ledger, err := stock.NewLedger(workID, pos.Owned, byPartner)
	if err != nil {
		return nil, err
	}

	minThreshold := q.defaultMin
	if pos.MinThreshold != nil {
		minThreshold = *pos.MinThreshold
	}
	maxThreshold := pos.MaxThreshold
	if maxThreshold == nil && q.defaultMax > 0 {
		t := q.defaultMax
		maxThreshold = &t
	}

	return &StockOverview{
		WorkID:     workID,
		WorkStatus: pos.WorkStatus,
		Owned:      pos.Owned,
		Holdings:   holdings,
		Total:      ledger.Total(),
		AlertLevel: string(ledger.Alert(minThreshold, maxThreshold)),
	}, nil
}

func (q *stockQueriesImpl) Movements(ctx context.Context, workID uuid.UUID, cursor *Cursor, limit int) ([]*MovementView, *Cursor, error) {
	limit = ValidateLimit(limit)

	var rows []*MovementView
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.store.FindMovementsFirstPage(ctx, workID, int32(limit+1))
	} else {
		lastOccurredAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.store.FindMovementsKeyset(ctx, workID, lastOccurredAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.OccurredAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}
