//go:build unit

package catalog_test

import (
	"testing"
	"time"

	"librepress/internal/domain/catalog"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPendingWork(t *testing.T) *catalog.Work {
	t.Helper()
	taxRate, err := catalog.NewTaxRate(0.18)
	require.NoError(t, err)

	w, err := catalog.NewWork(
		"Mathématiques 6e",
		"Manuel scolaire de mathématiques",
		uuid.New(), uuid.New(),
		1000,
		taxRate,
		nil,
		catalog.Details{CoverImageRef: "covers/math-6e.jpg"},
		false,
		time.Now(),
	)
	require.NoError(t, err)
	return w
}

func TestSubmit(t *testing.T) {
	t.Run("direct submission lands in PENDING with a submission timestamp", func(t *testing.T) {
		w := newPendingWork(t)
		assert.Equal(t, catalog.StatusPending, w.Status())
		require.NotNil(t, w.SubmittedAt())
	})

	t.Run("draft stays DRAFT until submitted", func(t *testing.T) {
		taxRate, _ := catalog.NewTaxRate(0.18)
		w, err := catalog.NewWork("Titre", "Description", uuid.New(), uuid.New(), 500, taxRate, nil, catalog.Details{}, true, time.Now())
		require.NoError(t, err)
		assert.Equal(t, catalog.StatusDraft, w.Status())
		assert.Nil(t, w.SubmittedAt())

		require.NoError(t, w.Submit(time.Now()))
		assert.Equal(t, catalog.StatusPending, w.Status())
	})

	t.Run("submission guards", func(t *testing.T) {
		taxRate, _ := catalog.NewTaxRate(0.18)
		cases := []struct {
			name        string
			title       string
			description string
			authorID    uuid.UUID
			discipline  uuid.UUID
			errIs       error
		}{
			{"missing title", "  ", "desc", uuid.New(), uuid.New(), catalog.ErrMissingTitle},
			{"missing description", "title", "", uuid.New(), uuid.New(), catalog.ErrMissingDescription},
			{"missing author", "title", "desc", uuid.Nil, uuid.New(), catalog.ErrMissingAuthor},
			{"missing discipline", "title", "desc", uuid.New(), uuid.Nil, catalog.ErrMissingDiscipline},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := catalog.NewWork(tc.title, tc.description, tc.authorID, tc.discipline, 100, taxRate, nil, catalog.Details{}, false, time.Now())
				assert.ErrorIs(t, err, tc.errIs)
			})
		}
	})
}

func TestApprove(t *testing.T) {
	t.Run("pending work becomes PUBLISHED with review metadata", func(t *testing.T) {
		w := newPendingWork(t)
		reviewer := uuid.New()
		now := time.Now()

		require.NoError(t, w.Approve(reviewer, nil, now))

		assert.Equal(t, catalog.StatusPublished, w.Status())
		require.NotNil(t, w.ReviewedAt())
		require.NotNil(t, w.PublishedAt())
		require.NotNil(t, w.ReviewerID())
		assert.Equal(t, reviewer, *w.ReviewerID())
		assert.Nil(t, w.RejectionReason())
	})

	t.Run("author may be reassigned at approval", func(t *testing.T) {
		w := newPendingWork(t)
		newAuthor := uuid.New()

		require.NoError(t, w.Approve(uuid.New(), &newAuthor, time.Now()))
		assert.Equal(t, newAuthor, w.AuthorID())
	})

	t.Run("approving a draft fails with InvalidTransition", func(t *testing.T) {
		taxRate, _ := catalog.NewTaxRate(0.18)
		w, err := catalog.NewWork("Titre", "Description", uuid.New(), uuid.New(), 500, taxRate, nil, catalog.Details{}, true, time.Now())
		require.NoError(t, err)

		err = w.Approve(uuid.New(), nil, time.Now())
		assert.ErrorIs(t, err, catalog.ErrInvalidTransition)
		assert.Equal(t, catalog.StatusDraft, w.Status())
	})

	t.Run("approving twice fails and leaves the work published", func(t *testing.T) {
		w := newPendingWork(t)
		require.NoError(t, w.Approve(uuid.New(), nil, time.Now()))

		err := w.Approve(uuid.New(), nil, time.Now())
		assert.ErrorIs(t, err, catalog.ErrInvalidTransition)
		assert.Equal(t, catalog.StatusPublished, w.Status())
	})
}

func TestReject(t *testing.T) {
	t.Run("rejection requires a reason", func(t *testing.T) {
		w := newPendingWork(t)

		err := w.Reject(uuid.New(), "   ", time.Now())
		assert.ErrorIs(t, err, catalog.ErrMissingRejectionReason)
		assert.Equal(t, catalog.StatusPending, w.Status())
		assert.Nil(t, w.RejectionReason())
	})

	t.Run("rejection records the reason and reviewer", func(t *testing.T) {
		w := newPendingWork(t)
		require.NoError(t, w.Reject(uuid.New(), "couverture illisible", time.Now()))

		assert.Equal(t, catalog.StatusRejected, w.Status())
		require.NotNil(t, w.RejectionReason())
		assert.Equal(t, "couverture illisible", *w.RejectionReason())
		require.NotNil(t, w.ReviewedAt())
	})

	t.Run("resubmission clears the review outcome", func(t *testing.T) {
		w := newPendingWork(t)
		require.NoError(t, w.Reject(uuid.New(), "qualité insuffisante", time.Now()))
		require.NoError(t, w.Resubmit(time.Now()))

		assert.Equal(t, catalog.StatusPending, w.Status())
		assert.Nil(t, w.RejectionReason())
		assert.Nil(t, w.ReviewedAt())
		assert.Nil(t, w.ReviewerID())
	})
}

func TestSaleStatus(t *testing.T) {
	published := func(t *testing.T) *catalog.Work {
		w := newPendingWork(t)
		require.NoError(t, w.Approve(uuid.New(), nil, time.Now()))
		return w
	}

	t.Run("ON_SALE requires stock", func(t *testing.T) {
		w := published(t)
		err := w.ChangeSaleStatus(catalog.StatusOnSale, 0, time.Now())
		assert.ErrorIs(t, err, catalog.ErrNoStockForSale)
		assert.Equal(t, catalog.StatusPublished, w.Status())

		require.NoError(t, w.ChangeSaleStatus(catalog.StatusOnSale, 3, time.Now()))
		assert.Equal(t, catalog.StatusOnSale, w.Status())
	})

	t.Run("suspension is reversible, discontinuation is not", func(t *testing.T) {
		w := published(t)
		require.NoError(t, w.ChangeSaleStatus(catalog.StatusSuspended, 0, time.Now()))
		require.NoError(t, w.ChangeSaleStatus(catalog.StatusOnSale, 1, time.Now()))
		require.NoError(t, w.ChangeSaleStatus(catalog.StatusDiscontinued, 0, time.Now()))

		err := w.ChangeSaleStatus(catalog.StatusOnSale, 10, time.Now())
		assert.ErrorIs(t, err, catalog.ErrInvalidTransition)
		assert.Equal(t, catalog.StatusDiscontinued, w.Status())
	})

	t.Run("sale-status changes are refused before publication", func(t *testing.T) {
		w := newPendingWork(t)
		err := w.ChangeSaleStatus(catalog.StatusOnSale, 5, time.Now())
		assert.ErrorIs(t, err, catalog.ErrInvalidTransition)
	})

	t.Run("auto out-of-stock only fires from ON_SALE", func(t *testing.T) {
		w := published(t)
		w.MarkOutOfStock(time.Now())
		assert.Equal(t, catalog.StatusPublished, w.Status())

		require.NoError(t, w.ChangeSaleStatus(catalog.StatusOnSale, 1, time.Now()))
		w.MarkOutOfStock(time.Now())
		assert.Equal(t, catalog.StatusOutOfStock, w.Status())
	})
}

func TestSellability(t *testing.T) {
	cases := []struct {
		status   catalog.Status
		role     catalog.ActorRole
		sellable bool
	}{
		{catalog.StatusPublished, catalog.RoleClient, true},
		{catalog.StatusOnSale, catalog.RoleClient, true},
		{catalog.StatusSuspended, catalog.RoleClient, false},
		{catalog.StatusOutOfStock, catalog.RoleClient, false},
		{catalog.StatusSuspended, catalog.RoleOperator, true},
		{catalog.StatusOutOfStock, catalog.RoleOperator, true},
		{catalog.StatusDiscontinued, catalog.RoleOperator, false},
		{catalog.StatusDiscontinued, catalog.RoleClient, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.sellable, tc.status.AllowsConsumption(tc.role),
			"status %s role %s", tc.status, tc.role)
	}
}

func TestUnitPriceFor(t *testing.T) {
	taxRate, _ := catalog.NewTaxRate(0.18)
	overrides, err := catalog.NewPriceOverrides(map[catalog.ClientType]int64{
		catalog.ClientSchool: 800,
	})
	require.NoError(t, err)

	w, err := catalog.NewWork("Titre", "Description", uuid.New(), uuid.New(), 1000, taxRate, overrides, catalog.Details{}, false, time.Now())
	require.NoError(t, err)

	assert.Equal(t, int64(800), w.UnitPriceFor(catalog.ClientSchool))
	assert.Equal(t, int64(1000), w.UnitPriceFor(catalog.ClientIndividual))
}
