//go:build unit

package pricing_test

import (
	"testing"
	"time"

	"librepress/internal/domain/catalog"
	"librepress/internal/domain/discount"
	"librepress/internal/domain/pricing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newWork(t *testing.T, basePrice int64, taxRate float64, overrides catalog.PriceOverrides) *catalog.Work {
	t.Helper()
	rate, err := catalog.NewTaxRate(taxRate)
	require.NoError(t, err)
	w, err := catalog.NewWork("Manuel", "Description", uuid.New(), uuid.New(), basePrice, rate, overrides, catalog.Details{}, false, now)
	require.NoError(t, err)
	return w
}

func scopedPercentCode(t *testing.T, code string, percent float64, workID uuid.UUID) *discount.Rule {
	t.Helper()
	c, err := discount.NewCode(code)
	require.NoError(t, err)
	rate, err := discount.NewPercentageRate(percent)
	require.NoError(t, err)
	window, err := discount.NewWindow(nil, nil, "UTC")
	require.NoError(t, err)
	rule, err := discount.NewRule(uuid.New(), &c, code, rate, 1, discount.ScopeWorks([]uuid.UUID{workID}), nil, window, now)
	require.NoError(t, err)
	return rule
}

func TestQuoteWithoutDiscount(t *testing.T) {
	// 2 x 1000 at 18% tax: subtotal 2000, tax 360, total 2360.
	work := newWork(t, 1000, 0.18, nil)
	calc := pricing.NewCalculator()

	quote, err := calc.Compute(catalog.ClientIndividual,
		[]pricing.LineRequest{{Work: work, Quantity: 2}}, nil, nil, now)
	require.NoError(t, err)

	assert.Equal(t, int64(2000), quote.Subtotal)
	assert.Equal(t, int64(360), quote.Tax)
	assert.Equal(t, int64(0), quote.Discount)
	assert.Equal(t, int64(2360), quote.Total)
}

func TestQuoteWithPercentageCode(t *testing.T) {
	work := newWork(t, 1000, 0.18, nil)
	rule := scopedPercentCode(t, "DIXPOURCENT", 10, work.ID())
	code := "DIXPOURCENT"
	calc := pricing.NewCalculator()

	quote, err := calc.Compute(catalog.ClientIndividual,
		[]pricing.LineRequest{{Work: work, Quantity: 2}},
		[]*discount.Rule{rule}, &code, now)
	require.NoError(t, err)

	assert.Equal(t, int64(2000), quote.Subtotal)
	assert.Equal(t, int64(360), quote.Tax)
	assert.Equal(t, int64(200), quote.Discount)
	assert.Equal(t, int64(2160), quote.Total)
	require.NotNil(t, quote.Breakdown.Promo)
	assert.Equal(t, rule.ID(), quote.Breakdown.Promo.RuleID)
}

func TestQuoteStandingRuleBelowMinimumQuantity(t *testing.T) {
	// A standing rule requiring 5 units never matches a 2-unit order;
	// the total is exactly the undiscounted one.
	work := newWork(t, 1000, 0.18, nil)
	rate, err := discount.NewPercentageRate(20)
	require.NoError(t, err)
	window, err := discount.NewWindow(nil, nil, "UTC")
	require.NoError(t, err)
	standing, err := discount.NewRule(uuid.New(), nil, "volume", rate, 5, discount.ScopeAllItems(), nil, window, now)
	require.NoError(t, err)

	calc := pricing.NewCalculator()
	quote, err := calc.Compute(catalog.ClientIndividual,
		[]pricing.LineRequest{{Work: work, Quantity: 2}},
		[]*discount.Rule{standing}, nil, now)
	require.NoError(t, err)

	assert.Equal(t, int64(0), quote.Discount)
	assert.Equal(t, int64(2360), quote.Total)

	// Requested explicitly, the same rule reports the typed rejection.
	candidate := discount.CandidateOrder{
		ClientType: catalog.ClientIndividual,
		Lines:      []discount.Line{{WorkID: work.ID(), UnitPrice: 1000, Quantity: 2}},
	}
	_, err = standing.Apply(candidate, now)
	assert.ErrorIs(t, err, discount.ErrMinimumQuantityNotMet)
}

func TestQuoteClientTypeOverride(t *testing.T) {
	overrides, err := catalog.NewPriceOverrides(map[catalog.ClientType]int64{
		catalog.ClientSchool:  700,
		catalog.ClientPartner: 650,
	})
	require.NoError(t, err)
	work := newWork(t, 1000, 0.18, overrides)
	calc := pricing.NewCalculator()

	schoolQuote, err := calc.Compute(catalog.ClientSchool,
		[]pricing.LineRequest{{Work: work, Quantity: 1}}, nil, nil, now)
	require.NoError(t, err)
	assert.Equal(t, int64(700), schoolQuote.Subtotal)
	assert.Equal(t, int64(126), schoolQuote.Tax)

	individualQuote, err := calc.Compute(catalog.ClientIndividual,
		[]pricing.LineRequest{{Work: work, Quantity: 1}}, nil, nil, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), individualQuote.Subtotal)
}

func TestQuoteTaxPerLine(t *testing.T) {
	// Mixed rates must not blend: 1000 at 18% + 2000 at 5.5%.
	taxed := newWork(t, 1000, 0.18, nil)
	reduced := newWork(t, 2000, 0.055, nil)
	calc := pricing.NewCalculator()

	quote, err := calc.Compute(catalog.ClientIndividual, []pricing.LineRequest{
		{Work: taxed, Quantity: 1},
		{Work: reduced, Quantity: 1},
	}, nil, nil, now)
	require.NoError(t, err)

	assert.Equal(t, int64(3000), quote.Subtotal)
	assert.Equal(t, int64(180+110), quote.Tax)
	assert.Equal(t, int64(3290), quote.Total)
}

func TestQuoteDiscountNeverDrivesTotalNegative(t *testing.T) {
	work := newWork(t, 100, 0, nil)
	c, err := discount.NewCode("TOUT")
	require.NoError(t, err)
	rate, err := discount.NewAmountRate(100000)
	require.NoError(t, err)
	window, err := discount.NewWindow(nil, nil, "UTC")
	require.NoError(t, err)
	rule, err := discount.NewRule(uuid.New(), &c, "tout", rate, 1, discount.ScopeAllItems(), nil, window, now)
	require.NoError(t, err)
	code := "TOUT"

	calc := pricing.NewCalculator()
	quote, err := calc.Compute(catalog.ClientIndividual,
		[]pricing.LineRequest{{Work: work, Quantity: 1}},
		[]*discount.Rule{rule}, &code, now)
	require.NoError(t, err)

	assert.Equal(t, int64(100), quote.Discount, "clamped to subtotal")
	assert.Equal(t, int64(0), quote.Total)
	assert.GreaterOrEqual(t, quote.Total, int64(0))
}

func TestQuoteNegligiblePercentageIsIdempotent(t *testing.T) {
	// A rate whose reduction rounds to zero francs leaves the total
	// identical to the undiscounted quote.
	work := newWork(t, 9, 0, nil)
	rule := scopedPercentCode(t, "EPSILON", 1, work.ID())
	code := "EPSILON"
	calc := pricing.NewCalculator()

	plain, err := calc.Compute(catalog.ClientIndividual,
		[]pricing.LineRequest{{Work: work, Quantity: 1}}, nil, nil, now)
	require.NoError(t, err)

	discounted, err := calc.Compute(catalog.ClientIndividual,
		[]pricing.LineRequest{{Work: work, Quantity: 1}},
		[]*discount.Rule{rule}, &code, now)
	require.NoError(t, err)

	assert.Equal(t, plain.Total, discounted.Total)
}

func TestQuoteInputValidation(t *testing.T) {
	calc := pricing.NewCalculator()

	_, err := calc.Compute(catalog.ClientIndividual, nil, nil, nil, now)
	assert.ErrorIs(t, err, pricing.ErrEmptyOrder)

	work := newWork(t, 1000, 0.18, nil)
	_, err = calc.Compute(catalog.ClientIndividual,
		[]pricing.LineRequest{{Work: work, Quantity: 0}}, nil, nil, now)
	assert.ErrorIs(t, err, pricing.ErrInvalidQuantity)
}
