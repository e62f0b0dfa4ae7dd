package response

import (
	"time"

	"librepress/internal/usecase/queries"

	"github.com/google/uuid"
)

type DiscountRuleResponse struct {
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

func FromDiscountRuleView(v *queries.DiscountRuleView) DiscountRuleResponse {
	return DiscountRuleResponse{
		ID:           v.ID,
		Code:         v.Code,
		Label:        v.Label,
		RateType:     v.RateType,
		RateValue:    v.RateValue,
		MinQuantity:  v.MinQuantity,
		ScopeWorkIDs: v.ScopeWorkIDs,
		ClientType:   v.ClientType,
		StartAt:      v.StartAt,
		EndAt:        v.EndAt,
		Timezone:     v.Timezone,
		Active:       v.Active,
		CreatedAt:    v.CreatedAt,
	}
}

func FromDiscountRuleList(items []*queries.DiscountRuleView) []DiscountRuleResponse {
	out := make([]DiscountRuleResponse, 0, len(items))
	for _, v := range items {
		out = append(out, FromDiscountRuleView(v))
	}
	return out
}

type AppliedDiscountResponse struct {
	RuleID           uuid.UUID `json:"rule_id"`
	Code             *string   `json:"code,omitempty"`
	Label            string    `json:"label"`
	Amount           int64     `json:"amount"`
	EligibleSubtotal int64     `json:"eligible_subtotal"`
}

func fromApplied(v *queries.AppliedDiscountView) *AppliedDiscountResponse {
	if v == nil {
		return nil
	}
	return &AppliedDiscountResponse{
		RuleID:           v.RuleID,
		Code:             v.Code,
		Label:            v.Label,
		Amount:           v.Amount,
		EligibleSubtotal: v.EligibleSubtotal,
	}
}

type QuotedLineResponse struct {
	WorkID    uuid.UUID `json:"work_id"`
	Title     string    `json:"title"`
	UnitPrice int64     `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	Subtotal  int64     `json:"subtotal"`
	Tax       int64     `json:"tax"`
}

type QuoteResponse struct {
	Lines    []QuotedLineResponse     `json:"lines"`
	Subtotal int64                    `json:"subtotal"`
	Tax      int64                    `json:"tax"`
	Discount int64                    `json:"discount"`
	Total    int64                    `json:"total"`
	Standing *AppliedDiscountResponse `json:"standing_discount,omitempty"`
	Promo    *AppliedDiscountResponse `json:"promo_discount,omitempty"`
}

func FromQuoteView(v *queries.QuoteView) QuoteResponse {
	lines := make([]QuotedLineResponse, 0, len(v.Lines))
	for _, l := range v.Lines {
		lines = append(lines, QuotedLineResponse{
			WorkID:    l.WorkID,
			Title:     l.Title,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal,
			Tax:       l.Tax,
		})
	}
	return QuoteResponse{
		Lines:    lines,
		Subtotal: v.Subtotal,
		Tax:      v.Tax,
		Discount: v.Discount,
		Total:    v.Total,
		Standing: fromApplied(v.Standing),
		Promo:    fromApplied(v.Promo),
	}
}

func FromPromoValidation(v *queries.AppliedDiscountView) AppliedDiscountResponse {
	return *fromApplied(v)
}
