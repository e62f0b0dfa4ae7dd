//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"librepress/internal/domain/discount"
	"librepress/internal/domain/pricing"
	"librepress/internal/handler/api"
	"librepress/internal/handler/middleware"
	"librepress/internal/usecase/commands"
	"librepress/internal/usecase/queries"
	"librepress/tests/common/builder"
	"librepress/tests/common/httptest"
	"librepress/tests/common/testutil"
	commandsmock "librepress/tests/mock/commands"
	queriesmock "librepress/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DiscountHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockDiscountCommands
	mockQueries  *queriesmock.MockDiscountQueries
	mockPricing  *queriesmock.MockPricingQueries
	handler      *api.DiscountHandler
	operatorID   uuid.UUID
}

func (s *DiscountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockDiscountCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockDiscountQueries(s.mockCtrl)
	s.mockPricing = queriesmock.NewMockPricingQueries(s.mockCtrl)
	s.handler = api.NewDiscountHandler(s.mockCommands, s.mockQueries, s.mockPricing)
	s.operatorID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("actor", middleware.Actor{ID: s.operatorID, Role: queries.RoleOperator, ClientType: "SCHOOL"})
		c.Next()
	}

	s.router.POST("/discounts", authMiddleware, s.handler.Define)
	s.router.GET("/discounts", authMiddleware, s.handler.List)
	s.router.POST("/discounts/:id/deactivate", authMiddleware, s.handler.Deactivate)
	s.router.POST("/promo/validate", authMiddleware, s.handler.ValidatePromo)
	s.router.POST("/quotes", authMiddleware, s.handler.Quote)
}

func (s *DiscountHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestDiscountHandlerSuite(t *testing.T) {
	suite.Run(t, new(DiscountHandlerTestSuite))
}

// ================================================================================
// TestDefine
// ================================================================================

func (s *DiscountHandlerTestSuite) TestDefine() {
	url := "/discounts"

	rb := builder.NewRuleBuilder().WithCode("RENTREE2026")
	reqBody := rb.BuildDefineRequestDTO()
	expectedResult := &commands.DefineRuleResult{RuleID: rb.ID}

	s.Run("success: returns 201 Created with the rule id", func() {
		s.mockCommands.EXPECT().DefineRule(gomock.Any(), gomock.Any()).
			Return(expectedResult, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(rb.ID.String(), response["rule_id"])
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "missing field: label", mutate: testutil.Field("label", nil)},
			{name: "missing field: rate_type", mutate: testutil.Field("rate_type", nil)},
			{name: "unknown rate_type", mutate: testutil.Field("rate_type", "FLAT")},
			{name: "zero rate_value", mutate: testutil.Field("rate_value", 0)},
			{name: "negative rate_value", mutate: testutil.Field("rate_value", -5)},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: 409 Conflict for duplicate promo code", func() {
		s.mockCommands.EXPECT().DefineRule(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrDuplicateCode).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Promotional code already in use")
	})

	s.Run("error: 400 Bad Request for domain validation failure", func() {
		s.mockCommands.EXPECT().DefineRule(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrDomainValidation).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Validation failed")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

// ================================================================================
// TestList
// ================================================================================

func (s *DiscountHandlerTestSuite) TestList() {
	url := "/discounts"

	rules := []*queries.DiscountRuleView{
		builder.NewRuleBuilder().WithCode("RENTREE2026").BuildView(),
		builder.NewRuleBuilder().WithClientType("SCHOOL").BuildView(),
	}

	s.Run("success: active rules by default", func() {
		s.mockQueries.EXPECT().List(gomock.Any(), false, (*queries.Cursor)(nil), 20).
			Return(rules, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		items, ok := response["rules"].([]any)
		s.True(ok)
		s.Equal(2, len(items))
	})

	s.Run("success: include_inactive forwarded", func() {
		inactive := append(rules, builder.NewRuleBuilder().AsInactive().BuildView())
		s.mockQueries.EXPECT().List(gomock.Any(), true, (*queries.Cursor)(nil), 20).
			Return(inactive, nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?include_inactive=true", nil, "bearer-token")

		var response map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		items, ok := response["rules"].([]any)
		s.True(ok)
		s.Equal(3, len(items))
	})
}

// ================================================================================
// TestDeactivate
// ================================================================================

func (s *DiscountHandlerTestSuite) TestDeactivate() {
	ruleID := uuid.New()
	url := "/discounts/" + ruleID.String() + "/deactivate"

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().DeactivateRule(gomock.Any(), ruleID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 Not Found for missing rule", func() {
		s.mockCommands.EXPECT().DeactivateRule(gomock.Any(), ruleID).
			Return(commands.ErrDiscountRuleNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Discount rule not found")
	})

	s.Run("error: 400 Bad Request for invalid id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/discounts/not-a-uuid/deactivate", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}

// ================================================================================
// TestValidatePromo
// ================================================================================

func (s *DiscountHandlerTestSuite) TestValidatePromo() {
	url := "/promo/validate"
	workID := uuid.New()

	reqBody := map[string]any{
		"code":        "RENTREE2026",
		"client_type": "SCHOOL",
		"lines":       []map[string]any{{"work_id": workID.String(), "quantity": 3}},
	}

	code := "RENTREE2026"
	applied := &queries.AppliedDiscountView{
		RuleID:           uuid.New(),
		Code:             &code,
		Label:            "Remise rentrée scolaire",
		Amount:           2550,
		EligibleSubtotal: 25500,
	}

	s.Run("success: returns the applied discount", func() {
		expectedReq := queries.ValidatePromoRequest{
			Code:       "RENTREE2026",
			ClientType: "SCHOOL",
			Lines:      []queries.PromoLine{{WorkID: workID, Quantity: 3}},
		}
		s.mockQueries.EXPECT().ValidateCode(gomock.Any(), expectedReq).
			Return(applied, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("RENTREE2026", response["code"])
		s.Equal(float64(2550), response["amount"])
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "missing field: code", mutate: testutil.Field("code", nil)},
			{name: "missing field: client_type", mutate: testutil.Field("client_type", nil)},
			{name: "empty lines", mutate: testutil.Field("lines", []map[string]any{})},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: 404 Not Found for unknown code", func() {
		s.mockQueries.EXPECT().ValidateCode(gomock.Any(), gomock.Any()).
			Return(nil, discount.ErrCodeNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Promotional code not found")
	})

	s.Run("error: 422 Unprocessable Entity for rejected codes", func() {
		testCases := []struct {
			name          string
			queriesError  error
		}{
			{name: "not yet active", queriesError: discount.ErrNotYetActive},
			{name: "expired", queriesError: discount.ErrExpired},
			{name: "scope mismatch", queriesError: discount.ErrScopeMismatch},
			{name: "client type mismatch", queriesError: discount.ErrClientTypeMismatch},
			{name: "minimum quantity not met", queriesError: discount.ErrMinimumQuantityNotMet},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockQueries.EXPECT().ValidateCode(gomock.Any(), gomock.Any()).
					Return(nil, tc.queriesError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "")
			})
		}
	})
}

// ================================================================================
// TestQuote
// ================================================================================

func (s *DiscountHandlerTestSuite) TestQuote() {
	url := "/quotes"
	workID := uuid.New()

	reqBody := map[string]any{
		"client_type": "SCHOOL",
		"lines":       []map[string]any{{"work_id": workID.String(), "quantity": 2}},
	}

	quote := &queries.QuoteView{
		Lines: []queries.QuotedLineView{
			{WorkID: workID, Title: "Mathématiques 6e", UnitPrice: 8500, Quantity: 2, Subtotal: 17000, Tax: 3060},
		},
		Subtotal: 17000,
		Tax:      3060,
		Discount: 0,
		Total:    20060,
	}

	s.Run("success: prices the order without a promo code", func() {
		expectedReq := queries.QuoteRequest{
			ClientType: "SCHOOL",
			ActorRole:  queries.RoleOperator,
			Lines:      []queries.PromoLine{{WorkID: workID, Quantity: 2}},
		}
		s.mockPricing.EXPECT().Quote(gomock.Any(), expectedReq).
			Return(quote, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(float64(20060), response["total"])
		s.Equal(float64(17000), response["subtotal"])
	})

	s.Run("success: promo code carried into the quote", func() {
		promo := "RENTREE2026"
		withPromo := map[string]any{
			"client_type": "SCHOOL",
			"promo_code":  promo,
			"lines":       []map[string]any{{"work_id": workID.String(), "quantity": 2}},
		}
		discounted := &queries.QuoteView{
			Lines:    quote.Lines,
			Subtotal: 17000,
			Tax:      3060,
			Discount: 1700,
			Total:    18360,
			Promo: &queries.AppliedDiscountView{
				RuleID: uuid.New(), Code: &promo, Label: "Remise rentrée scolaire",
				Amount: 1700, EligibleSubtotal: 17000,
			},
		}
		expectedReq := queries.QuoteRequest{
			ClientType: "SCHOOL",
			ActorRole:  queries.RoleOperator,
			PromoCode:  &promo,
			Lines:      []queries.PromoLine{{WorkID: workID, Quantity: 2}},
		}
		s.mockPricing.EXPECT().Quote(gomock.Any(), expectedReq).
			Return(discounted, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, withPromo, "bearer-token")

		var response map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(float64(18360), response["total"])
		promoDiscount, ok := response["promo_discount"].(map[string]any)
		s.True(ok)
		s.Equal(float64(1700), promoDiscount["amount"])
	})

	s.Run("error: maps pricing errors to proper statuses", func() {
		testCases := []struct {
			name           string
			pricingError   error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "work not found", pricingError: queries.ErrWorkNotFound, expectedStatus: http.StatusNotFound, expectedMsg: "Work not found"},
			{name: "work not sellable", pricingError: queries.ErrWorkNotSellable, expectedStatus: http.StatusUnprocessableEntity, expectedMsg: "Work is not sellable"},
			{name: "empty order", pricingError: pricing.ErrEmptyOrder, expectedStatus: http.StatusBadRequest, expectedMsg: "Validation failed"},
			{name: "invalid quantity", pricingError: pricing.ErrInvalidQuantity, expectedStatus: http.StatusBadRequest, expectedMsg: "Validation failed"},
			{name: "internal error", pricingError: errors.New("database error"), expectedStatus: http.StatusInternalServerError, expectedMsg: "Quote failed"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockPricing.EXPECT().Quote(gomock.Any(), gomock.Any()).
					Return(nil, tc.pricingError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 400 Bad Request for zero quantity line", func() {
		bad := map[string]any{"client_type": "SCHOOL", "lines": []map[string]any{{"work_id": workID.String(), "quantity": 0}}}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, bad, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}
