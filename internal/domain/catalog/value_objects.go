package catalog

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidTaxRate    = errors.New("tax rate must be a fraction between 0 and 1")
	ErrNegativePrice     = errors.New("price cannot be negative")
	ErrUnknownClientType = errors.New("unknown client type")
)

// ClientType is a pricing-tier category. It selects price overrides and
// discount eligibility; it carries no permissions.
type ClientType string

const (
	ClientIndividual     ClientType = "INDIVIDUAL"
	ClientSchool         ClientType = "SCHOOL"
	ClientPartner        ClientType = "PARTNER"
	ClientRepresentative ClientType = "REPRESENTATIVE"
)

func ParseClientType(raw string) (ClientType, error) {
	switch ClientType(raw) {
	case ClientIndividual, ClientSchool, ClientPartner, ClientRepresentative:
		return ClientType(raw), nil
	}
	return "", ErrUnknownClientType
}

func (c ClientType) String() string {
	return string(c)
}

// ActorRole identifies who is calling the engine. It is consumed only
// for sellability checks; authorization is the collaborator's job.
type ActorRole string

const (
	RoleOperator ActorRole = "OPERATOR"
	RoleAuthor   ActorRole = "AUTHOR"
	RoleDesigner ActorRole = "DESIGNER"
	RoleClient   ActorRole = "CLIENT"
)

func (r ActorRole) String() string {
	return string(r)
}

// TaxRate is a per-work fraction (0.18 for 18% TVA), applied per line.
type TaxRate float64

func NewTaxRate(rate float64) (TaxRate, error) {
	if rate < 0 || rate >= 1 {
		return 0, ErrInvalidTaxRate
	}
	return TaxRate(rate), nil
}

func (t TaxRate) Float64() float64 {
	return float64(t)
}

// PriceOverrides maps a client type to a unit price in FCFA replacing
// the base price for that tier.
type PriceOverrides map[ClientType]int64

func NewPriceOverrides(raw map[ClientType]int64) (PriceOverrides, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(PriceOverrides, len(raw))
	for ct, price := range raw {
		if _, err := ParseClientType(ct.String()); err != nil {
			return nil, err
		}
		if price < 0 {
			return nil, ErrNegativePrice
		}
		out[ct] = price
	}
	return out, nil
}

// UnitPrice resolves the price for a tier, falling back to base.
func (p PriceOverrides) UnitPrice(ct ClientType, base int64) int64 {
	if p == nil {
		return base
	}
	if override, ok := p[ct]; ok {
		return override
	}
	return base
}

// Details is the structured auxiliary record that used to be a free-form
// JSON blob on the work row: cover reference, collection membership and
// loose attachment paths.
type Details struct {
	CoverImageRef string
	CollectionID  *uuid.UUID
	Attachments   []string
}
