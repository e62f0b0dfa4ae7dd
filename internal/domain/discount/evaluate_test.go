//go:build unit

package discount_test

import (
	"testing"
	"time"

	"librepress/internal/domain/catalog"
	"librepress/internal/domain/discount"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func mustCode(t *testing.T, raw string) *discount.Code {
	t.Helper()
	c, err := discount.NewCode(raw)
	require.NoError(t, err)
	return &c
}

func percentRule(t *testing.T, code *discount.Code, percent float64, minQty int, scope discount.Scope, ct *catalog.ClientType) *discount.Rule {
	t.Helper()
	rate, err := discount.NewPercentageRate(percent)
	require.NoError(t, err)
	window, err := discount.NewWindow(nil, nil, "UTC")
	require.NoError(t, err)
	rule, err := discount.NewRule(uuid.New(), code, "promo", rate, minQty, scope, ct, window, now)
	require.NoError(t, err)
	return rule
}

func amountRule(t *testing.T, code *discount.Code, amount int64, minQty int, scope discount.Scope) *discount.Rule {
	t.Helper()
	rate, err := discount.NewAmountRate(amount)
	require.NoError(t, err)
	window, err := discount.NewWindow(nil, nil, "UTC")
	require.NoError(t, err)
	rule, err := discount.NewRule(uuid.New(), code, "remise", rate, minQty, scope, nil, window, now)
	require.NoError(t, err)
	return rule
}

func orderOf(lines ...discount.Line) discount.CandidateOrder {
	return discount.CandidateOrder{ClientType: catalog.ClientIndividual, Lines: lines}
}

func TestValidateCode(t *testing.T) {
	workID := uuid.New()
	order := orderOf(discount.Line{WorkID: workID, UnitPrice: 1000, Quantity: 2})

	t.Run("unknown code", func(t *testing.T) {
		_, err := discount.ValidateCode(nil, "NOPE42", order, now)
		assert.ErrorIs(t, err, discount.ErrCodeNotFound)
	})

	t.Run("lookup is case and whitespace normalized", func(t *testing.T) {
		rule := percentRule(t, mustCode(t, "RENTREE10"), 10, 1, discount.ScopeAllItems(), nil)
		applied, err := discount.ValidateCode([]*discount.Rule{rule}, "  rentree10 ", order, now)
		require.NoError(t, err)
		assert.Equal(t, int64(200), applied.Amount)
	})

	t.Run("deactivated rule is not found", func(t *testing.T) {
		rule := percentRule(t, mustCode(t, "RENTREE10"), 10, 1, discount.ScopeAllItems(), nil)
		rule.Deactivate()
		_, err := discount.ValidateCode([]*discount.Rule{rule}, "RENTREE10", order, now)
		assert.ErrorIs(t, err, discount.ErrCodeNotFound)
	})

	t.Run("window check runs before scope check", func(t *testing.T) {
		start := now.Add(24 * time.Hour)
		window, err := discount.NewWindow(&start, nil, "Africa/Libreville")
		require.NoError(t, err)
		rate, _ := discount.NewPercentageRate(10)
		rule, err := discount.NewRule(uuid.New(), mustCode(t, "FUTUR"), "future", rate, 1, discount.ScopeWorks([]uuid.UUID{uuid.New()}), nil, window, now)
		require.NoError(t, err)

		// Out of scope as well, but the window rejection wins.
		_, err = discount.ValidateCode([]*discount.Rule{rule}, "FUTUR", order, now)
		assert.ErrorIs(t, err, discount.ErrNotYetActive)
	})

	t.Run("expired window", func(t *testing.T) {
		end := now.Add(-time.Hour)
		window, err := discount.NewWindow(nil, &end, "UTC")
		require.NoError(t, err)
		rate, _ := discount.NewPercentageRate(10)
		rule, err := discount.NewRule(uuid.New(), mustCode(t, "FINI"), "over", rate, 1, discount.ScopeAllItems(), nil, window, now)
		require.NoError(t, err)

		_, err = discount.ValidateCode([]*discount.Rule{rule}, "FINI", order, now)
		assert.ErrorIs(t, err, discount.ErrExpired)
	})

	t.Run("scope mismatch", func(t *testing.T) {
		rule := percentRule(t, mustCode(t, "CIBLE"), 10, 1, discount.ScopeWorks([]uuid.UUID{uuid.New()}), nil)
		_, err := discount.ValidateCode([]*discount.Rule{rule}, "CIBLE", order, now)
		assert.ErrorIs(t, err, discount.ErrScopeMismatch)
	})

	t.Run("scoped discount applies to matching lines only", func(t *testing.T) {
		inScope := uuid.New()
		mixed := orderOf(
			discount.Line{WorkID: inScope, UnitPrice: 1000, Quantity: 1},
			discount.Line{WorkID: uuid.New(), UnitPrice: 5000, Quantity: 1},
		)
		rule := percentRule(t, mustCode(t, "CIBLE"), 10, 1, discount.ScopeWorks([]uuid.UUID{inScope}), nil)

		applied, err := discount.ValidateCode([]*discount.Rule{rule}, "CIBLE", mixed, now)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), applied.EligibleSubtotal)
		assert.Equal(t, int64(100), applied.Amount)
	})

	t.Run("client type restriction", func(t *testing.T) {
		school := catalog.ClientSchool
		rule := percentRule(t, mustCode(t, "ECOLES"), 10, 1, discount.ScopeAllItems(), &school)

		_, err := discount.ValidateCode([]*discount.Rule{rule}, "ECOLES", order, now)
		assert.ErrorIs(t, err, discount.ErrClientTypeMismatch)

		schoolOrder := discount.CandidateOrder{ClientType: catalog.ClientSchool, Lines: order.Lines}
		applied, err := discount.ValidateCode([]*discount.Rule{rule}, "ECOLES", schoolOrder, now)
		require.NoError(t, err)
		assert.Equal(t, int64(200), applied.Amount)
	})

	t.Run("minimum quantity counts in-scope lines only", func(t *testing.T) {
		inScope := uuid.New()
		mixed := orderOf(
			discount.Line{WorkID: inScope, UnitPrice: 1000, Quantity: 2},
			discount.Line{WorkID: uuid.New(), UnitPrice: 1000, Quantity: 10},
		)
		rule := percentRule(t, mustCode(t, "VOLUME"), 10, 5, discount.ScopeWorks([]uuid.UUID{inScope}), nil)

		_, err := discount.ValidateCode([]*discount.Rule{rule}, "VOLUME", mixed, now)
		assert.ErrorIs(t, err, discount.ErrMinimumQuantityNotMet)
	})

	t.Run("fixed amount clamps to eligible subtotal", func(t *testing.T) {
		small := orderOf(discount.Line{WorkID: uuid.New(), UnitPrice: 300, Quantity: 1})
		rule := amountRule(t, mustCode(t, "MOINS500"), 500, 1, discount.ScopeAllItems())

		applied, err := discount.ValidateCode([]*discount.Rule{rule}, "MOINS500", small, now)
		require.NoError(t, err)
		assert.Equal(t, int64(300), applied.Amount, "discount equals subtotal exactly, never more")
	})
}

func TestBestStanding(t *testing.T) {
	workID := uuid.New()
	order := orderOf(discount.Line{WorkID: workID, UnitPrice: 1000, Quantity: 4})

	t.Run("single best rule wins, no stacking", func(t *testing.T) {
		fivePct := percentRule(t, nil, 5, 1, discount.ScopeAllItems(), nil)
		tenPct := percentRule(t, nil, 10, 1, discount.ScopeAllItems(), nil)
		flat := amountRule(t, nil, 250, 1, discount.ScopeAllItems())

		best := discount.BestStanding([]*discount.Rule{fivePct, tenPct, flat}, order, now)
		require.NotNil(t, best)
		assert.Equal(t, tenPct.ID(), best.RuleID)
		assert.Equal(t, int64(400), best.Amount)
	})

	t.Run("rules below minimum quantity are skipped", func(t *testing.T) {
		bulk := percentRule(t, nil, 50, 5, discount.ScopeAllItems(), nil)
		best := discount.BestStanding([]*discount.Rule{bulk}, order, now)
		assert.Nil(t, best)
	})

	t.Run("promo codes are never selected as standing rules", func(t *testing.T) {
		coded := percentRule(t, mustCode(t, "SECRET"), 90, 1, discount.ScopeAllItems(), nil)
		best := discount.BestStanding([]*discount.Rule{coded}, order, now)
		assert.Nil(t, best)
	})
}

func TestEvaluate(t *testing.T) {
	workID := uuid.New()
	order := orderOf(discount.Line{WorkID: workID, UnitPrice: 1000, Quantity: 2})

	t.Run("standing and code compose and sum", func(t *testing.T) {
		standing := percentRule(t, nil, 5, 1, discount.ScopeAllItems(), nil)
		coded := percentRule(t, mustCode(t, "PLUS10"), 10, 1, discount.ScopeAllItems(), nil)
		code := "PLUS10"

		bd, err := discount.Evaluate([]*discount.Rule{standing, coded}, order, &code, now)
		require.NoError(t, err)
		require.NotNil(t, bd.Standing)
		require.NotNil(t, bd.Promo)
		assert.Equal(t, int64(100), bd.Standing.Amount)
		assert.Equal(t, int64(200), bd.Promo.Amount)
		assert.Equal(t, int64(300), bd.Total)
	})

	t.Run("combined discount is clamped to the order subtotal", func(t *testing.T) {
		standing := amountRule(t, nil, 1800, 1, discount.ScopeAllItems())
		coded := amountRule(t, mustCode(t, "GROS"), 1500, 1, discount.ScopeAllItems())
		code := "GROS"

		bd, err := discount.Evaluate([]*discount.Rule{standing, coded}, order, &code, now)
		require.NoError(t, err)
		assert.Equal(t, int64(2000), bd.Total, "never exceeds the order subtotal")
	})

	t.Run("failing code fails the evaluation", func(t *testing.T) {
		standing := percentRule(t, nil, 5, 1, discount.ScopeAllItems(), nil)
		code := "ABSENT"

		_, err := discount.Evaluate([]*discount.Rule{standing}, order, &code, now)
		assert.ErrorIs(t, err, discount.ErrCodeNotFound)
	})

	t.Run("no code and no matching standing rule means zero discount", func(t *testing.T) {
		bulk := percentRule(t, nil, 50, 99, discount.ScopeAllItems(), nil)
		bd, err := discount.Evaluate([]*discount.Rule{bulk}, order, nil, now)
		require.NoError(t, err)
		assert.Nil(t, bd.Standing)
		assert.Nil(t, bd.Promo)
		assert.Equal(t, int64(0), bd.Total)
	})
}

func TestRateInvariants(t *testing.T) {
	_, err := discount.NewPercentageRate(0)
	assert.ErrorIs(t, err, discount.ErrInvalidRate)
	_, err = discount.NewPercentageRate(101)
	assert.ErrorIs(t, err, discount.ErrInvalidRate)
	_, err = discount.NewAmountRate(0)
	assert.ErrorIs(t, err, discount.ErrInvalidRate)

	rate, err := discount.NewPercentageRate(100)
	require.NoError(t, err)
	assert.Equal(t, int64(500), rate.AmountOff(500))
	assert.Equal(t, int64(0), rate.AmountOff(0))
}

func TestWindowTimezone(t *testing.T) {
	// Window bounds expressed in Libreville time (UTC+1): active from
	// midnight local; 23:30 UTC the previous day is already inside.
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.FixedZone("WAT", 3600))
	window, err := discount.NewWindow(&start, nil, "Africa/Libreville")
	require.NoError(t, err)

	require.NoError(t, window.Check(time.Date(2025, 3, 9, 23, 30, 0, 0, time.UTC)))
	assert.ErrorIs(t, window.Check(time.Date(2025, 3, 9, 22, 30, 0, 0, time.UTC)), discount.ErrNotYetActive)
}
