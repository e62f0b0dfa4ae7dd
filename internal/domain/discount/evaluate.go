package discount

import (
	"time"

	"librepress/internal/domain/catalog"

	"github.com/google/uuid"
)

// Line is one candidate order line as the pricing calculator sees it:
// the unit price is already resolved for the client's tier.
type Line struct {
	WorkID    uuid.UUID
	UnitPrice int64
	Quantity  int
}

func (l Line) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// CandidateOrder is the input to discount evaluation.
type CandidateOrder struct {
	ClientType catalog.ClientType
	Lines      []Line
}

func (o CandidateOrder) Subtotal() int64 {
	var total int64
	for _, l := range o.Lines {
		total += l.Subtotal()
	}
	return total
}

// Applied is the outcome of one rule matching an order: the reduction
// and the eligible subtotal it was computed against.
type Applied struct {
	RuleID          uuid.UUID
	Code            *Code
	Label           string
	Amount          int64
	EligibleSubtotal int64
}

// Breakdown is what the caller persists and reports: at most one
// standing rule and one promotional code, each computed against its own
// eligible subtotal, summed and clamped to the order subtotal.
type Breakdown struct {
	Standing *Applied
	Promo    *Applied
	Total    int64
}

// check runs the rule checks in a fixed order, short-circuiting on the
// first failure: window, scope, client type, quantity. It returns the
// in-scope lines on success.
func (r *Rule) check(order CandidateOrder, now time.Time) ([]Line, error) {
	if !r.active {
		return nil, ErrRuleInactive
	}
	if err := r.window.Check(now); err != nil {
		return nil, err
	}

	var inScope []Line
	for _, l := range order.Lines {
		if r.scope.Contains(l.WorkID) {
			inScope = append(inScope, l)
		}
	}
	if len(inScope) == 0 {
		return nil, ErrScopeMismatch
	}

	if r.clientType != nil && *r.clientType != order.ClientType {
		return nil, ErrClientTypeMismatch
	}

	var qty int
	for _, l := range inScope {
		qty += l.Quantity
	}
	if qty < r.minQuantity {
		return nil, ErrMinimumQuantityNotMet
	}
	return inScope, nil
}

// Apply validates the rule against the order and computes the
// reduction on the in-scope subtotal only.
func (r *Rule) Apply(order CandidateOrder, now time.Time) (*Applied, error) {
	inScope, err := r.check(order, now)
	if err != nil {
		return nil, err
	}
	var subtotal int64
	for _, l := range inScope {
		subtotal += l.Subtotal()
	}
	return &Applied{
		RuleID:           r.id,
		Code:             r.code,
		Label:            r.label,
		Amount:           r.rate.AmountOff(subtotal),
		EligibleSubtotal: subtotal,
	}, nil
}

// ValidateCode resolves a promotional code among the given rules and
// applies it. Lookup is by normalized code over active rules; every
// later check reports its own typed rejection.
func ValidateCode(rules []*Rule, raw string, order CandidateOrder, now time.Time) (*Applied, error) {
	normalized := NormalizeCode(raw)
	var rule *Rule
	for _, r := range rules {
		if r.active && r.code != nil && r.code.String() == normalized {
			rule = r
			break
		}
	}
	if rule == nil {
		return nil, ErrCodeNotFound
	}
	return rule.Apply(order, now)
}

// BestStanding selects the single standing (code-less) rule granting
// the greatest reduction for this order. Standing rules never stack
// against each other. Returns nil when none match.
func BestStanding(rules []*Rule, order CandidateOrder, now time.Time) *Applied {
	var best *Applied
	for _, r := range rules {
		if r.IsPromoCode() {
			continue
		}
		applied, err := r.Apply(order, now)
		if err != nil {
			continue
		}
		if best == nil || applied.Amount > best.Amount {
			best = applied
		}
	}
	return best
}

// Evaluate composes the best standing rule with an optional
// promotional code. Each part is computed against its own eligible
// subtotal; the sum is clamped so the total reduction never exceeds
// the order subtotal. A failing code fails the whole evaluation — the
// caller decides whether to retry without it.
func Evaluate(rules []*Rule, order CandidateOrder, promoCode *string, now time.Time) (Breakdown, error) {
	bd := Breakdown{Standing: BestStanding(rules, order, now)}
	if bd.Standing != nil {
		bd.Total = bd.Standing.Amount
	}

	if promoCode != nil {
		applied, err := ValidateCode(rules, *promoCode, order, now)
		if err != nil {
			return Breakdown{}, err
		}
		bd.Promo = applied
		bd.Total += applied.Amount
	}

	if subtotal := order.Subtotal(); bd.Total > subtotal {
		bd.Total = subtotal
	}
	return bd, nil
}
