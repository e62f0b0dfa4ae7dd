package shared

import (
	"time"

	"librepress/internal/domain/catalog"
	"librepress/internal/domain/discount"
	"librepress/internal/domain/stock"

	"github.com/google/uuid"
)

// WorkSnapshot is the row-shaped read used by command orchestration,
// converted to the domain entity before any rule runs.
type WorkSnapshot struct {
	ID              uuid.UUID
	Title           string
	Description     string
	AuthorID        uuid.UUID
	DisciplineID    uuid.UUID
	BasePrice       int64
	TaxRate         float64
	Overrides       map[string]int64
	CoverImageRef   string
	CollectionID    *uuid.UUID
	Attachments     []string
	MinThreshold    *int
	MaxThreshold    *int
	OwnedQuantity   int
	Status          string
	SubmittedAt     *time.Time
	ReviewedAt      *time.Time
	ReviewerID      *uuid.UUID
	PublishedAt     *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (s *WorkSnapshot) Domain() (*catalog.Work, error) {
	taxRate, err := catalog.NewTaxRate(s.TaxRate)
	if err != nil {
		return nil, err
	}

	var overrides catalog.PriceOverrides
	if len(s.Overrides) > 0 {
		raw := make(map[catalog.ClientType]int64, len(s.Overrides))
		for ct, price := range s.Overrides {
			parsed, err := catalog.ParseClientType(ct)
			if err != nil {
				return nil, err
			}
			raw[parsed] = price
		}
		overrides, err = catalog.NewPriceOverrides(raw)
		if err != nil {
			return nil, err
		}
	}

	status, ok := catalog.ParseStatus(s.Status)
	if !ok {
		return nil, catalog.ErrInvalidTransition
	}

	return catalog.ReconstructWork(
		s.ID,
		s.Title, s.Description,
		s.AuthorID, s.DisciplineID,
		s.BasePrice,
		taxRate,
		overrides,
		catalog.Details{
			CoverImageRef: s.CoverImageRef,
			CollectionID:  s.CollectionID,
			Attachments:   s.Attachments,
		},
		s.MinThreshold, s.MaxThreshold,
		status,
		s.SubmittedAt, s.ReviewedAt,
		s.ReviewerID,
		s.PublishedAt,
		s.RejectionReason,
		s.CreatedAt, s.UpdatedAt,
	), nil
}

// HoldingSnapshot is one partner depot's quantity for a work.
type HoldingSnapshot struct {
	WorkID    uuid.UUID
	PartnerID uuid.UUID
	Quantity  int
}

// Ledger assembles the stock position from the work row and its
// holdings.
func (s *WorkSnapshot) Ledger(holdings []HoldingSnapshot) (*stock.Ledger, error) {
	byPartner := make(map[uuid.UUID]int, len(holdings))
	for _, h := range holdings {
		byPartner[h.PartnerID] = h.Quantity
	}
	return stock.NewLedger(s.ID, s.OwnedQuantity, byPartner)
}

// RuleSnapshot is the row-shaped read of a discount rule.
type RuleSnapshot struct {
	ID           uuid.UUID
	Code         *string
	Label        string
	RateType     string
	RateValue    float64
	MinQuantity  int
	ScopeWorkIDs []uuid.UUID
	ClientType   *string
	StartAt      *time.Time
	EndAt        *time.Time
	Timezone     string
	Active       bool
	CreatedAt    time.Time
}

func (s *RuleSnapshot) Domain() (*discount.Rule, error) {
	var code *discount.Code
	if s.Code != nil {
		c, err := discount.NewCode(*s.Code)
		if err != nil {
			return nil, err
		}
		code = &c
	}

	rate, err := discount.NewRate(discount.RateType(s.RateType), s.RateValue)
	if err != nil {
		return nil, err
	}

	scope := discount.ScopeAllItems()
	if len(s.ScopeWorkIDs) > 0 {
		scope = discount.ScopeWorks(s.ScopeWorkIDs)
	}

	var clientType *catalog.ClientType
	if s.ClientType != nil {
		ct, err := catalog.ParseClientType(*s.ClientType)
		if err != nil {
			return nil, err
		}
		clientType = &ct
	}

	window, err := discount.NewWindow(s.StartAt, s.EndAt, s.Timezone)
	if err != nil {
		return nil, err
	}

	return discount.ReconstructRule(
		s.ID, code, s.Label, rate, s.MinQuantity, scope, clientType, window, s.Active, s.CreatedAt,
	), nil
}

// RulesDomain converts a batch, skipping nothing: a malformed stored
// rule is a data corruption we want surfaced, not skipped.
func RulesDomain(snapshots []RuleSnapshot) ([]*discount.Rule, error) {
	rules := make([]*discount.Rule, 0, len(snapshots))
	for i := range snapshots {
		rule, err := snapshots[i].Domain()
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// MovementRecord is one append-only stock journal entry.
type MovementRecord struct {
	ID         uuid.UUID
	WorkID     uuid.UUID
	Kind       string
	Delta      int
	PartnerID  *uuid.UUID
	ActorID    uuid.UUID
	OccurredAt time.Time
}

// Movement kinds recorded in the stock journal.
const (
	MovementRestock  = "RESTOCK"
	MovementTransfer = "TRANSFER"
	MovementConsume  = "CONSUME"
	MovementReturn   = "RETURN"
)
