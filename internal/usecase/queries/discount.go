package queries

import (
	"context"
	"time"

	"librepress/internal/domain/catalog"
	"librepress/internal/domain/discount"
	"librepress/internal/pkg/clock"
	"librepress/internal/pkg/errs"
	"librepress/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrInvalidPromoRequest = errs.New("invalid promo validation request")

type DiscountReadStore interface {
	FindFirstPage(ctx context.Context, includeInactive bool, limit int32) ([]*DiscountRuleView, error)
	FindKeyset(ctx context.Context, includeInactive bool, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*DiscountRuleView, error)
	// FindActive returns every active rule; the set is small enough to
	// evaluate in memory.
	FindActive(ctx context.Context) ([]shared.RuleSnapshot, error)
}

// PromoLine is one candidate order line in a promo validation request.
type PromoLine struct {
	WorkID   uuid.UUID
	Quantity int
}

type ValidatePromoRequest struct {
	Code       string
	ClientType string
	Lines      []PromoLine
}

type DiscountQueries interface {
	List(ctx context.Context, includeInactive bool, cursor *Cursor, limit int) ([]*DiscountRuleView, *Cursor, error)
	// ValidateCode checks a promotional code against a candidate order
	// and reports the reduction it would grant. Rejections come back as
	// the discount package's typed errors.
	ValidateCode(ctx context.Context, req ValidatePromoRequest) (*AppliedDiscountView, error)
}

type discountQueriesImpl struct {
	ruleStore DiscountReadStore
	workStore WorkSnapshotStore
	clock     clock.Clock
}

func NewDiscountQueries(ruleStore DiscountReadStore, workStore WorkSnapshotStore, clk clock.Clock) DiscountQueries {
	return &discountQueriesImpl{ruleStore: ruleStore, workStore: workStore, clock: clk}
}

func (q *discountQueriesImpl) List(ctx context.Context, includeInactive bool, cursor *Cursor, limit int) ([]*DiscountRuleView, *Cursor, error) {
	limit = ValidateLimit(limit)

	var rows []*DiscountRuleView
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.ruleStore.FindFirstPage(ctx, includeInactive, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.ruleStore.FindKeyset(ctx, includeInactive, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}

func (q *discountQueriesImpl) ValidateCode(ctx context.Context, req ValidatePromoRequest) (*AppliedDiscountView, error) {
	clientType, err := catalog.ParseClientType(req.ClientType)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidPromoRequest)
	}
	if len(req.Lines) == 0 {
		return nil, ErrInvalidPromoRequest
	}

	order, err := buildCandidateOrder(ctx, q.workStore, clientType, req.Lines)
	if err != nil {
		return nil, err
	}

	snapshots, err := q.ruleStore.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	rules, err := shared.RulesDomain(snapshots)
	if err != nil {
		return nil, err
	}

	applied, err := discount.ValidateCode(rules, req.Code, *order, q.clock.Now())
	if err != nil {
		return nil, err
	}
	return appliedView(applied), nil
}

// buildCandidateOrder resolves each requested line's tier price so
// discounts compute on what the client would actually pay.
func buildCandidateOrder(ctx context.Context, store WorkSnapshotStore, clientType catalog.ClientType, lines []PromoLine) (*discount.CandidateOrder, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, ErrInvalidPromoRequest
		}
		ids = append(ids, line.WorkID)
	}

	snapshots, err := store.WorksByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*shared.WorkSnapshot, len(snapshots))
	for i := range snapshots {
		byID[snapshots[i].ID] = &snapshots[i]
	}

	order := discount.CandidateOrder{ClientType: clientType}
	for _, line := range lines {
		snap, ok := byID[line.WorkID]
		if !ok {
			return nil, ErrWorkNotFound
		}
		work, derr := snap.Domain()
		if derr != nil {
			return nil, derr
		}
		order.Lines = append(order.Lines, discount.Line{
			WorkID:    line.WorkID,
			UnitPrice: work.UnitPriceFor(clientType),
			Quantity:  line.Quantity,
		})
	}
	return &order, nil
}

func appliedView(a *discount.Applied) *AppliedDiscountView {
	if a == nil {
		return nil
	}
	var code *string
	if a.Code != nil {
		s := a.Code.String()
		code = &s
	}
	return &AppliedDiscountView{
		RuleID:           a.RuleID,
		Code:             code,
		Label:            a.Label,
		Amount:           a.Amount,
		EligibleSubtotal: a.EligibleSubtotal,
	}
}
