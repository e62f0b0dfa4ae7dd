//go:build unit || e2e

package builder

import (
	"time"

	reqdto "librepress/internal/handler/dto/request"
	"librepress/internal/usecase/queries"
	"librepress/internal/usecase/shared"

	"github.com/google/uuid"
)

type RuleBuilder struct {
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

func NewRuleBuilder() *RuleBuilder {
	return &RuleBuilder{
		ID:          uuid.New(),
		Label:       "Remise rentrée scolaire",
		RateType:    "PERCENTAGE",
		RateValue:   10,
		MinQuantity: 1,
		Timezone:    "Africa/Libreville",
		Active:      true,
		CreatedAt:   time.Now(),
	}
}

// Build methods
func (r *RuleBuilder) BuildDefineRequestDTO() reqdto.DefineRuleRequest {
	return reqdto.DefineRuleRequest{
		Code:         r.Code,
		Label:        r.Label,
		RateType:     r.RateType,
		RateValue:    r.RateValue,
		MinQuantity:  r.MinQuantity,
		ScopeWorkIDs: r.ScopeWorkIDs,
		ClientType:   r.ClientType,
		StartAt:      r.StartAt,
		EndAt:        r.EndAt,
		Timezone:     r.Timezone,
	}
}

func (r *RuleBuilder) BuildView() *queries.DiscountRuleView {
	return &queries.DiscountRuleView{
		ID:           r.ID,
		Code:         r.Code,
		Label:        r.Label,
		RateType:     r.RateType,
		RateValue:    r.RateValue,
		MinQuantity:  r.MinQuantity,
		ScopeWorkIDs: r.ScopeWorkIDs,
		ClientType:   r.ClientType,
		StartAt:      r.StartAt,
		EndAt:        r.EndAt,
		Timezone:     r.Timezone,
		Active:       r.Active,
		CreatedAt:    r.CreatedAt,
	}
}

func (r *RuleBuilder) BuildSnapshot() shared.RuleSnapshot {
	return shared.RuleSnapshot{
		ID:           r.ID,
		Code:         r.Code,
		Label:        r.Label,
		RateType:     r.RateType,
		RateValue:    r.RateValue,
		MinQuantity:  r.MinQuantity,
		ScopeWorkIDs: r.ScopeWorkIDs,
		ClientType:   r.ClientType,
		StartAt:      r.StartAt,
		EndAt:        r.EndAt,
		Timezone:     r.Timezone,
		Active:       r.Active,
		CreatedAt:    r.CreatedAt,
	}
}

// Fluent builder methods
func (r *RuleBuilder) WithCode(code string) *RuleBuilder {
	r.Code = &code
	return r
}

func (r *RuleBuilder) WithLabel(label string) *RuleBuilder {
	r.Label = label
	return r
}

func (r *RuleBuilder) WithRate(rateType string, value float64) *RuleBuilder {
	r.RateType = rateType
	r.RateValue = value
	return r
}

func (r *RuleBuilder) WithMinQuantity(qty int) *RuleBuilder {
	r.MinQuantity = qty
	return r
}

func (r *RuleBuilder) WithScope(workIDs ...uuid.UUID) *RuleBuilder {
	r.ScopeWorkIDs = workIDs
	return r
}

func (r *RuleBuilder) WithClientType(clientType string) *RuleBuilder {
	r.ClientType = &clientType
	return r
}

func (r *RuleBuilder) WithWindow(start, end time.Time) *RuleBuilder {
	r.StartAt = &start
	r.EndAt = &end
	return r
}

func (r *RuleBuilder) AsInactive() *RuleBuilder {
	r.Active = false
	return r
}
