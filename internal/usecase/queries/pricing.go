package queries

import (
	"context"

	"librepress/internal/domain/catalog"
	"librepress/internal/domain/pricing"
	"librepress/internal/pkg/clock"
	"librepress/internal/pkg/errs"
	"librepress/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuoteRequest = errs.New("invalid quote request")
	ErrWorkNotSellable     = errs.New("work is not sellable")
)

// WorkSnapshotStore loads works for pricing. Quotes read committed
// state; no lock is taken because nothing is mutated.
type WorkSnapshotStore interface {
	WorksByIDs(ctx context.Context, ids []uuid.UUID) ([]shared.WorkSnapshot, error)
}

type QuoteRequest struct {
	ClientType string
	ActorRole  string
	PromoCode  *string
	Lines      []PromoLine
}

type PricingQueries interface {
	// Quote prices a candidate order without touching stock. Non-operator
	// actors may only quote sellable works.
	Quote(ctx context.Context, req QuoteRequest) (*QuoteView, error)
}

type pricingQueriesImpl struct {
	workStore  WorkSnapshotStore
	ruleStore  DiscountReadStore
	calculator *pricing.Calculator
	clock      clock.Clock
}

func NewPricingQueries(workStore WorkSnapshotStore, ruleStore DiscountReadStore, clk clock.Clock) PricingQueries {
	return &pricingQueriesImpl{
		workStore:  workStore,
		ruleStore:  ruleStore,
		calculator: pricing.NewCalculator(),
		clock:      clk,
	}
}

func (q *pricingQueriesImpl) Quote(ctx context.Context, req QuoteRequest) (*QuoteView, error) {
	clientType, err := catalog.ParseClientType(req.ClientType)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidQuoteRequest)
	}
	if len(req.Lines) == 0 {
		return nil, ErrInvalidQuoteRequest
	}

	works, titles, err := q.loadWorks(ctx, req.Lines, catalog.ActorRole(req.ActorRole))
	if err != nil {
		return nil, err
	}

	lines := make([]pricing.LineRequest, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, pricing.LineRequest{Work: works[line.WorkID], Quantity: line.Quantity})
	}

	snapshots, err := q.ruleStore.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	rules, err := shared.RulesDomain(snapshots)
	if err != nil {
		return nil, err
	}

	quote, err := q.calculator.Compute(clientType, lines, rules, req.PromoCode, q.clock.Now())
	if err != nil {
		return nil, err
	}

	view := &QuoteView{
		Subtotal: quote.Subtotal,
		Tax:      quote.Tax,
		Discount: quote.Discount,
		Total:    quote.Total,
		Standing: appliedView(quote.Breakdown.Standing),
		Promo:    appliedView(quote.Breakdown.Promo),
	}
	for _, line := range quote.Lines {
		view.Lines = append(view.Lines, QuotedLineView{
			WorkID:    line.WorkID,
			Title:     titles[line.WorkID],
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			Subtotal:  line.Subtotal,
			Tax:       line.Tax,
		})
	}
	return view, nil
}

func (q *pricingQueriesImpl) loadWorks(ctx context.Context, lines []PromoLine, role catalog.ActorRole) (map[uuid.UUID]*catalog.Work, map[uuid.UUID]string, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.WorkID)
	}

	snapshots, err := q.workStore.WorksByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	byID := make(map[uuid.UUID]*shared.WorkSnapshot, len(snapshots))
	for i := range snapshots {
		byID[snapshots[i].ID] = &snapshots[i]
	}

	works := make(map[uuid.UUID]*catalog.Work, len(lines))
	titles := make(map[uuid.UUID]string, len(lines))
	for _, line := range lines {
		snap, ok := byID[line.WorkID]
		if !ok {
			return nil, nil, ErrWorkNotFound
		}
		work, derr := snap.Domain()
		if derr != nil {
			return nil, nil, derr
		}
		if role != catalog.RoleOperator && !work.Status().IsSellable() {
			return nil, nil, ErrWorkNotSellable
		}
		works[line.WorkID] = work
		titles[line.WorkID] = work.Title()
	}
	return works, titles, nil
}
