package discount

import (
	"errors"
	"time"

	"librepress/internal/domain/catalog"

	"github.com/google/uuid"
)

// Rejection reasons surfaced by rule validation, in checking order.
var (
	ErrCodeNotFound          = errors.New("promotional code not found")
	ErrNotYetActive          = errors.New("rule is not yet active")
	ErrExpired               = errors.New("rule has expired")
	ErrScopeMismatch         = errors.New("no order line falls in the rule's scope")
	ErrClientTypeMismatch    = errors.New("rule is restricted to another client type")
	ErrMinimumQuantityNotMet = errors.New("minimum quantity not met")
	ErrRuleInactive          = errors.New("rule is inactive")
)

// Rule is either a promotional code (code present) or a standing
// discount matched automatically by scope, quantity and client type.
type Rule struct {
	id          uuid.UUID
	code        *Code
	label       string
	rate        Rate
	minQuantity int
	scope       Scope
	clientType  *catalog.ClientType
	window      Window
	active      bool
	createdAt   time.Time
}

func NewRule(
	id uuid.UUID,
	code *Code,
	label string,
	rate Rate,
	minQuantity int,
	scope Scope,
	clientType *catalog.ClientType,
	window Window,
	createdAt time.Time,
) (*Rule, error) {
	if minQuantity < 1 {
		return nil, ErrInvalidMinQty
	}
	return &Rule{
		id:          id,
		code:        code,
		label:       label,
		rate:        rate,
		minQuantity: minQuantity,
		scope:       scope,
		clientType:  clientType,
		window:      window,
		active:      true,
		createdAt:   createdAt,
	}, nil
}

func ReconstructRule(
	id uuid.UUID,
	code *Code,
	label string,
	rate Rate,
	minQuantity int,
	scope Scope,
	clientType *catalog.ClientType,
	window Window,
	active bool,
	createdAt time.Time,
) *Rule {
	return &Rule{
		id:          id,
		code:        code,
		label:       label,
		rate:        rate,
		minQuantity: minQuantity,
		scope:       scope,
		clientType:  clientType,
		window:      window,
		active:      active,
		createdAt:   createdAt,
	}
}

// Deactivate retires the rule. Rules referenced by historical orders
// are deactivated, never deleted.
func (r *Rule) Deactivate() {
	r.active = false
}

func (r *Rule) IsPromoCode() bool {
	return r.code != nil
}

func (r *Rule) MatchesCode(raw string) bool {
	return r.code != nil && r.code.String() == NormalizeCode(raw)
}

func (r *Rule) ID() uuid.UUID                   { return r.id }
func (r *Rule) Code() *Code                     { return r.code }
func (r *Rule) Label() string                   { return r.label }
func (r *Rule) Rate() Rate                      { return r.rate }
func (r *Rule) MinQuantity() int                { return r.minQuantity }
func (r *Rule) Scope() Scope                    { return r.scope }
func (r *Rule) ClientType() *catalog.ClientType { return r.clientType }
func (r *Rule) Window() Window                  { return r.window }
func (r *Rule) IsActive() bool                  { return r.active }
func (r *Rule) CreatedAt() time.Time            { return r.createdAt }
