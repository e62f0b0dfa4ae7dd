package request

import (
	"time"

	"github.com/google/uuid"
)

type DefineRuleRequest struct {
	Code         *string     `json:"code,omitempty"`
	Label        string      `json:"label" binding:"required"`
	RateType     string      `json:"rate_type" binding:"required,oneof=PERCENTAGE AMOUNT"`
	RateValue    float64     `json:"rate_value" binding:"required,gt=0"`
	MinQuantity  int         `json:"min_quantity,omitempty"`
	ScopeWorkIDs []uuid.UUID `json:"scope_work_ids,omitempty"`
	ClientType   *string     `json:"client_type,omitempty"`
	StartAt      *time.Time  `json:"start_at,omitempty"`
	EndAt        *time.Time  `json:"end_at,omitempty"`
	Timezone     string      `json:"timezone,omitempty"`
}

type OrderLineRequest struct {
	WorkID   uuid.UUID `json:"work_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,gt=0"`
}

type ValidatePromoRequest struct {
	Code       string             `json:"code" binding:"required"`
	ClientType string             `json:"client_type" binding:"required"`
	Lines      []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

type QuoteRequest struct {
	ClientType string             `json:"client_type" binding:"required"`
	PromoCode  *string            `json:"promo_code,omitempty"`
	Lines      []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}
