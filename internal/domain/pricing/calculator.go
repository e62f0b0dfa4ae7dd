package pricing

import (
	"errors"
	"math"
	"time"

	"librepress/internal/domain/catalog"
	"librepress/internal/domain/discount"

	"github.com/google/uuid"
)

var (
	ErrEmptyOrder      = errors.New("order has no lines")
	ErrInvalidQuantity = errors.New("line quantity must be positive")
)

// LineRequest is one requested order line before pricing.
type LineRequest struct {
	Work     *catalog.Work
	Quantity int
}

// QuotedLine is a priced line: unit price resolved for the client's
// tier, tax computed per line because works carry different rates.
type QuotedLine struct {
	WorkID    uuid.UUID
	UnitPrice int64
	Quantity  int
	Subtotal  int64
	Tax       int64
}

// Quote is the ephemeral pricing of a candidate order. Its fields get
// written onto the order record at commit time; the quote itself is
// never persisted.
type Quote struct {
	Lines     []QuotedLine
	Subtotal  int64
	Tax       int64
	Discount  int64
	Total     int64
	Breakdown discount.Breakdown
}

// Calculator prices candidate orders. It is pure: no stock is touched,
// no state changes; consumption happens only when the caller commits
// an order built from the quote.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Compute prices the order: tier price resolution, per-line tax,
// discount evaluation, and total = max(0, subtotal + tax - discount).
func (c *Calculator) Compute(
	clientType catalog.ClientType,
	lines []LineRequest,
	rules []*discount.Rule,
	promoCode *string,
	now time.Time,
) (Quote, error) {
	if len(lines) == 0 {
		return Quote{}, ErrEmptyOrder
	}

	quote := Quote{Lines: make([]QuotedLine, 0, len(lines))}
	candidate := discount.CandidateOrder{ClientType: clientType}

	for _, line := range lines {
		if line.Quantity <= 0 {
			return Quote{}, ErrInvalidQuantity
		}
		unit := line.Work.UnitPriceFor(clientType)
		subtotal := unit * int64(line.Quantity)
		tax := roundTax(subtotal, line.Work.TaxRate())

		quote.Lines = append(quote.Lines, QuotedLine{
			WorkID:    line.Work.ID(),
			UnitPrice: unit,
			Quantity:  line.Quantity,
			Subtotal:  subtotal,
			Tax:       tax,
		})
		quote.Subtotal += subtotal
		quote.Tax += tax

		candidate.Lines = append(candidate.Lines, discount.Line{
			WorkID:    line.Work.ID(),
			UnitPrice: unit,
			Quantity:  line.Quantity,
		})
	}

	breakdown, err := discount.Evaluate(rules, candidate, promoCode, now)
	if err != nil {
		return Quote{}, err
	}
	quote.Breakdown = breakdown
	quote.Discount = breakdown.Total

	total := quote.Subtotal + quote.Tax - quote.Discount
	if total < 0 {
		total = 0
	}
	quote.Total = total
	return quote, nil
}

// roundTax rounds half away from zero on whole-franc amounts.
func roundTax(subtotal int64, rate catalog.TaxRate) int64 {
	return int64(math.Round(float64(subtotal) * rate.Float64()))
}
