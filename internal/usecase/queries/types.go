package queries

import (
	"time"

	"librepress/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrWorkNotFound  = errs.New("work not found")
	ErrRuleNotFound  = errs.New("discount rule not found")
	ErrInvalidCursor = errs.New("invalid cursor")
)

// Actor roles carried in JWT claims.
const (
	RoleOperator = "OPERATOR"
	RoleAuthor   = "AUTHOR"
	RoleDesigner = "DESIGNER"
	RoleClient   = "CLIENT"
)

// Read models (DTO for read side)
type WorkView struct {
	ID              uuid.UUID        `json:"id"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	AuthorID        uuid.UUID        `json:"author_id"`
	DisciplineID    uuid.UUID        `json:"discipline_id"`
	BasePrice       int64            `json:"base_price"`
	TaxRate         float64          `json:"tax_rate"`
	Overrides       map[string]int64 `json:"price_overrides,omitempty"`
	CoverImageRef   string           `json:"cover_image_ref,omitempty"`
	CollectionID    *uuid.UUID       `json:"collection_id,omitempty"`
	Attachments     []string         `json:"attachments,omitempty"`
	Status          string           `json:"status"`
	SubmittedAt     *time.Time       `json:"submitted_at,omitempty"`
	ReviewedAt      *time.Time       `json:"reviewed_at,omitempty"`
	ReviewerID      *uuid.UUID       `json:"reviewer_id,omitempty"`
	PublishedAt     *time.Time       `json:"published_at,omitempty"`
	RejectionReason *string          `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

type WorkListItem struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	AuthorID     uuid.UUID `json:"author_id"`
	DisciplineID uuid.UUID `json:"discipline_id"`
	BasePrice    int64     `json:"base_price"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type HoldingView struct {
	PartnerID uuid.UUID `json:"partner_id"`
	Quantity  int       `json:"quantity"`
}

// StockOverview is the position of one work: owned quantity, per-depot
// holdings, disposable total and the alert level against thresholds.
type StockOverview struct {
	WorkID     uuid.UUID     `json:"work_id"`
	WorkStatus string        `json:"work_status"`
	Owned      int           `json:"owned"`
	Holdings   []HoldingView `json:"holdings"`
	Total      int           `json:"total"`
	AlertLevel string        `json:"alert_level"`
}

type MovementView struct {
	ID         uuid.UUID  `json:"id"`
	WorkID     uuid.UUID  `json:"work_id"`
	Kind       string     `json:"kind"`
	Delta      int        `json:"delta"`
	PartnerID  *uuid.UUID `json:"partner_id,omitempty"`
	ActorID    uuid.UUID  `json:"actor_id"`
	OccurredAt time.Time  `json:"occurred_at"`
}

type DiscountRuleView struct {
	ID           uuid.UUID   `json:"id"`
	Code         *string     `json:"code,omitempty"`
	Label        string      `json:"label"`
	RateType     string      `json:"rate_type"`
	RateValue    float64     `json:"rate_value"`
	MinQuantity  int         `json:"min_quantity"`
	ScopeWorkIDs []uuid.UUID `json:"scope_work_ids,omitempty"`
	ClientType   *string     `json:"client_type,omitempty"`
	StartAt      *time.Time  `json:"start_at,omitempty"`
	EndAt        *time.Time  `json:"end_at,omitempty"`
	Timezone     string      `json:"timezone"`
	Active       bool        `json:"active"`
	CreatedAt    time.Time   `json:"created_at"`
}

// AppliedDiscountView is one applied rule inside a quote breakdown.
type AppliedDiscountView struct {
	RuleID           uuid.UUID `json:"rule_id"`
	Code             *string   `json:"code,omitempty"`
	Label            string    `json:"label"`
	Amount           int64     `json:"amount"`
	EligibleSubtotal int64     `json:"eligible_subtotal"`
}

type QuotedLineView struct {
	WorkID    uuid.UUID `json:"work_id"`
	Title     string    `json:"title"`
	UnitPrice int64     `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	Subtotal  int64     `json:"subtotal"`
	Tax       int64     `json:"tax"`
}

type QuoteView struct {
	Lines    []QuotedLineView     `json:"lines"`
	Subtotal int64                `json:"subtotal"`
	Tax      int64                `json:"tax"`
	Discount int64                `json:"discount"`
	Total    int64                `json:"total"`
	Standing *AppliedDiscountView `json:"standing_discount,omitempty"`
	Promo    *AppliedDiscountView `json:"promo_discount,omitempty"`
}
