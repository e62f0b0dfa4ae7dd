//go:build e2e

package catalog_test

import (
	"fmt"
	"net/http"
	"testing"

	"librepress/tests/common/builder"
	"librepress/tests/common/dbtest"
	"librepress/tests/common/httptest"
	"librepress/tests/e2e"
	"librepress/tests/e2e/common/helper"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	worksURL      = "/api/works"
	workURL       = "/api/works/%s"
	reviewURL     = "/api/works/%s/review"
	saleStatusURL = "/api/works/%s/sale-status"
	restockURL    = "/api/stock/%s/restock"
	transferURL   = "/api/stock/%s/transfer"
	consumeURL    = "/api/stock/%s/consume"
	overviewURL   = "/api/stock/%s"
	movementsURL  = "/api/stock/%s/movements"
	discountsURL  = "/api/discounts"
	quotesURL     = "/api/quotes"
)

type CatalogSuite struct {
	e2e.SharedSuite
	jwt *helper.JWTTestHelper
}

func (s *CatalogSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = helper.NewJWTTestHelper(s.Config.JWT)
}

func TestCatalogSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(CatalogSuite))
}

// submitAndPublish pushes a fresh work through review and restocks it
// so it can go on sale.
func (s *CatalogSuite) submitAndPublish(t *testing.T, operatorToken string, initialStock int) uuid.UUID {
	t.Helper()

	reqBody := builder.NewWorkBuilder().BuildSubmitRequestDTO()
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, worksURL, reqBody, operatorToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created map[string]any
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
	workID, err := uuid.Parse(created["id"].(string))
	require.NoError(t, err)
	require.Equal(t, "PENDING", created["status"])

	w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(reviewURL, workID),
		map[string]any{"decision": "APPROVE"}, operatorToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	if initialStock > 0 {
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(restockURL, workID),
			map[string]any{"quantity": initialStock}, operatorToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	return workID
}

// =============================================================================
// TestWorkLifecycle - submission, review and sale-status flow
// =============================================================================

func (s *CatalogSuite) TestWorkLifecycle() {
	s.Run("Normal case: submitted work goes through review to ON_SALE", func() {
		t := s.T()
		token := s.jwt.OperatorToken(t)

		workID := s.submitAndPublish(t, token, 100)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(saleStatusURL, workID),
			map[string]any{"status": "ON_SALE"}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var transition map[string]any
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &transition))
		require.Equal(t, "PUBLISHED", transition["old_status"])
		require.Equal(t, "ON_SALE", transition["new_status"])

		// Lifecycle transitions enqueue notification jobs transactionally
		require.Greater(t, dbtest.CountNotificationJobs(t, s.DB, "work_status_changed"), 0)
	})

	s.Run("Normal case: rejected work can be resubmitted", func() {
		t := s.T()
		token := s.jwt.OperatorToken(t)

		reqBody := builder.NewWorkBuilder().BuildSubmitRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, worksURL, reqBody, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var created map[string]any
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
		workID := created["id"].(string)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(reviewURL, workID),
			map[string]any{"decision": "REJECT", "reason": "cover image missing"}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(workURL+"/resubmit", workID), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var transition map[string]any
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &transition))
		require.Equal(t, "REJECTED", transition["old_status"])
		require.Equal(t, "PENDING", transition["new_status"])
	})

	s.Run("Error case: ON_SALE is refused without stock", func() {
		t := s.T()
		token := s.jwt.OperatorToken(t)

		workID := s.submitAndPublish(t, token, 0)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(saleStatusURL, workID),
			map[string]any{"status": "ON_SALE"}, token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Error case: deleting a work with sales history conflicts", func() {
		t := s.T()
		token := s.jwt.OperatorToken(t)

		workID := s.submitAndPublish(t, token, 10)
		dbtest.InsertOrderLine(t, s.DB, workID, 2, 8500)

		w := httptest.PerformRequest(t, s.Router, http.MethodDelete, fmt.Sprintf(workURL, workID), nil, token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		// A work nothing references deletes cleanly
		freshID := s.submitAndPublish(t, token, 0)
		w = httptest.PerformRequest(t, s.Router, http.MethodDelete, fmt.Sprintf(workURL, freshID), nil, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	})

	s.Run("Error case: review requires the operator role", func() {
		t := s.T()
		operatorToken := s.jwt.OperatorToken(t)
		clientToken := s.jwt.ClientToken(t, "SCHOOL")

		reqBody := builder.NewWorkBuilder().BuildSubmitRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, worksURL, reqBody, operatorToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var created map[string]any
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(reviewURL, created["id"]),
			map[string]any{"decision": "APPROVE"}, clientToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})
}

// =============================================================================
// TestStockFlow - ledger movements across warehouse and depots
// =============================================================================

func (s *CatalogSuite) TestStockFlow() {
	s.Run("Normal case: restock, transfer, consume and journal", func() {
		t := s.T()
		token := s.jwt.OperatorToken(t)
		partnerID := uuid.New()

		workID := s.submitAndPublish(t, token, 100)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(saleStatusURL, workID),
			map[string]any{"status": "ON_SALE"}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(transferURL, workID),
			map[string]any{"partner_id": partnerID.String(), "quantity": 30}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var position map[string]any
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &position))
		require.Equal(t, float64(70), position["owned"])
		require.Equal(t, float64(100), position["total"])

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(consumeURL, workID),
			map[string]any{"partner_id": partnerID.String(), "quantity": 10}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(overviewURL, workID), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var overview map[string]any
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &overview))
		require.Equal(t, float64(70), overview["owned"])
		require.Equal(t, float64(90), overview["total"])
		holdings := overview["holdings"].([]any)
		require.Len(t, holdings, 1)
		require.Equal(t, float64(20), holdings[0].(map[string]any)["quantity"])

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(movementsURL, workID), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var journal map[string]any
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &journal))
		movements := journal["movements"].([]any)
		require.Len(t, movements, 3)

		// Journal is newest first
		var kinds []string
		for _, m := range movements {
			kinds = append(kinds, m.(map[string]any)["kind"].(string))
		}
		if diff := cmp.Diff([]string{"CONSUME", "TRANSFER", "RESTOCK"}, kinds); diff != "" {
			t.Errorf("movement journal mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("Normal case: draining the total flips ON_SALE to OUT_OF_STOCK", func() {
		t := s.T()
		token := s.jwt.OperatorToken(t)

		workID := s.submitAndPublish(t, token, 5)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(saleStatusURL, workID),
			map[string]any{"status": "ON_SALE"}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(consumeURL, workID),
			map[string]any{"quantity": 5}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var position map[string]any
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &position))
		require.Equal(t, float64(0), position["total"])
		require.Equal(t, "OUT_OF_STOCK", position["work_status"])
	})

	s.Run("Error case: consuming beyond the warehouse is refused", func() {
		t := s.T()
		token := s.jwt.OperatorToken(t)

		workID := s.submitAndPublish(t, token, 3)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(consumeURL, workID),
			map[string]any{"quantity": 10}, token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Error case: client cannot consume a suspended work", func() {
		t := s.T()
		operatorToken := s.jwt.OperatorToken(t)
		clientToken := s.jwt.ClientToken(t, "SCHOOL")

		workID := s.submitAndPublish(t, operatorToken, 10)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(saleStatusURL, workID),
			map[string]any{"status": "SUSPENDED"}, operatorToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(consumeURL, workID),
			map[string]any{"quantity": 1}, clientToken)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})
}

// =============================================================================
// TestPricingFlow - discount rules and order quoting
// =============================================================================

func (s *CatalogSuite) TestPricingFlow() {
	s.Run("Normal case: promo code discounts a quoted order", func() {
		t := s.T()
		operatorToken := s.jwt.OperatorToken(t)
		clientToken := s.jwt.ClientToken(t, "SCHOOL")

		workID := s.submitAndPublish(t, operatorToken, 50)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(saleStatusURL, workID),
			map[string]any{"status": "ON_SALE"}, operatorToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		ruleBody := builder.NewRuleBuilder().WithCode("RENTREE2026").BuildDefineRequestDTO()
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, discountsURL, ruleBody, operatorToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		quoteBody := map[string]any{
			"client_type": "SCHOOL",
			"promo_code":  "RENTREE2026",
			"lines":       []map[string]any{{"work_id": workID.String(), "quantity": 2}},
		}
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, quotesURL, quoteBody, clientToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var quote map[string]any
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &quote))
		// 2 x 8500 at 18% tax with a 10% promo
		require.Equal(t, float64(17000), quote["subtotal"])
		require.Equal(t, float64(3060), quote["tax"])
		require.Equal(t, float64(1700), quote["discount"])
		require.Equal(t, float64(18360), quote["total"])
		promo := quote["promo_discount"].(map[string]any)
		require.Equal(t, "RENTREE2026", promo["code"])
	})

	s.Run("Error case: reusing an active promo code conflicts", func() {
		t := s.T()
		token := s.jwt.OperatorToken(t)

		ruleBody := builder.NewRuleBuilder().WithCode("NOEL2026").BuildDefineRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, discountsURL, ruleBody, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, discountsURL, ruleBody, token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	})

	s.Run("Normal case: deactivating a rule frees its code", func() {
		t := s.T()
		token := s.jwt.OperatorToken(t)

		ruleBody := builder.NewRuleBuilder().WithCode("PROMO2026").BuildDefineRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, discountsURL, ruleBody, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var created map[string]any
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))

		w = httptest.PerformRequest(t, s.Router, http.MethodPost,
			discountsURL+"/"+created["rule_id"].(string)+"/deactivate", nil, token)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, discountsURL, ruleBody, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	s.Run("Error case: quoting a suspended work fails for clients", func() {
		t := s.T()
		operatorToken := s.jwt.OperatorToken(t)
		clientToken := s.jwt.ClientToken(t, "SCHOOL")

		workID := s.submitAndPublish(t, operatorToken, 10)
		w0 := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(saleStatusURL, workID),
			map[string]any{"status": "SUSPENDED"}, operatorToken)
		require.Equal(t, http.StatusOK, w0.Code, w0.Body.String())

		quoteBody := map[string]any{
			"client_type": "SCHOOL",
			"lines":       []map[string]any{{"work_id": workID.String(), "quantity": 1}},
		}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, quotesURL, quoteBody, clientToken)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})
}
