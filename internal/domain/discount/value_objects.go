package discount

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCode     = errors.New("invalid promotional code format")
	ErrInvalidRate     = errors.New("invalid discount rate")
	ErrInvalidMinQty   = errors.New("minimum quantity must be at least 1")
	ErrInvalidTimezone = errors.New("unknown timezone")
	ErrInvalidWindow   = errors.New("validity window start must not be after end")
)

var codeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

// Code is a case-normalized promotional code.
type Code string

func NewCode(raw string) (Code, error) {
	normalized := NormalizeCode(raw)
	if !codeRegex.MatchString(normalized) {
		return "", ErrInvalidCode
	}
	return Code(normalized), nil
}

func NormalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

func (c Code) String() string {
	return string(c)
}

// RateType distinguishes percentage rates from fixed FCFA amounts.
type RateType string

const (
	RatePercentage RateType = "PERCENTAGE"
	RateAmount     RateType = "AMOUNT"
)

// Rate is the reduction a rule grants: either a percentage of the
// eligible subtotal or a fixed amount clamped to it.
type Rate struct {
	kind  RateType
	value float64
}

func NewPercentageRate(percent float64) (Rate, error) {
	if percent <= 0 || percent > 100 {
		return Rate{}, ErrInvalidRate
	}
	return Rate{kind: RatePercentage, value: percent}, nil
}

func NewAmountRate(amount int64) (Rate, error) {
	if amount <= 0 {
		return Rate{}, ErrInvalidRate
	}
	return Rate{kind: RateAmount, value: float64(amount)}, nil
}

func NewRate(kind RateType, value float64) (Rate, error) {
	switch kind {
	case RatePercentage:
		return NewPercentageRate(value)
	case RateAmount:
		return NewAmountRate(int64(value))
	}
	return Rate{}, ErrInvalidRate
}

func (r Rate) Kind() RateType {
	return r.kind
}

func (r Rate) Value() float64 {
	return r.value
}

// AmountOff computes the reduction for an eligible subtotal. A fixed
// amount never exceeds the subtotal; the result is never negative.
func (r Rate) AmountOff(subtotal int64) int64 {
	if subtotal <= 0 {
		return 0
	}
	switch r.kind {
	case RatePercentage:
		return int64(float64(subtotal) * r.value / 100.0)
	case RateAmount:
		amount := int64(r.value)
		if amount > subtotal {
			return subtotal
		}
		return amount
	}
	return 0
}

// Scope is the set of works a rule applies to: every item, or an
// explicit set.
type Scope struct {
	workIDs map[uuid.UUID]struct{}
}

func ScopeAllItems() Scope {
	return Scope{}
}

func ScopeWorks(ids []uuid.UUID) Scope {
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return Scope{workIDs: set}
}

func (s Scope) IsAllItems() bool {
	return len(s.workIDs) == 0
}

func (s Scope) Contains(workID uuid.UUID) bool {
	if s.IsAllItems() {
		return true
	}
	_, ok := s.workIDs[workID]
	return ok
}

func (s Scope) WorkIDs() []uuid.UUID {
	if s.IsAllItems() {
		return nil
	}
	out := make([]uuid.UUID, 0, len(s.workIDs))
	for id := range s.workIDs {
		out = append(out, id)
	}
	return out
}

// Window is a rule's validity interval evaluated in its own timezone.
// Open ends mean "since forever" / "no expiry".
type Window struct {
	start    *time.Time
	end      *time.Time
	location *time.Location
}

func NewWindow(start, end *time.Time, tz string) (Window, error) {
	loc := time.UTC
	if tz != "" {
		var err error
		loc, err = time.LoadLocation(tz)
		if err != nil {
			return Window{}, ErrInvalidTimezone
		}
	}
	if start != nil && end != nil && start.After(*end) {
		return Window{}, ErrInvalidWindow
	}
	return Window{start: start, end: end, location: loc}, nil
}

// Check classifies now against the window.
func (w Window) Check(now time.Time) error {
	local := now.In(w.location)
	if w.start != nil && local.Before(w.start.In(w.location)) {
		return ErrNotYetActive
	}
	if w.end != nil && local.After(w.end.In(w.location)) {
		return ErrExpired
	}
	return nil
}

func (w Window) Start() *time.Time {
	return w.start
}

func (w Window) End() *time.Time {
	return w.end
}

func (w Window) Location() *time.Location {
	if w.location == nil {
		return time.UTC
	}
	return w.location
}
