package api

import (
	"errors"
	"net/http"

	"librepress/internal/domain/discount"
	"librepress/internal/domain/pricing"
	reqdto "librepress/internal/handler/dto/request"
	resdto "librepress/internal/handler/dto/response"
	"librepress/internal/handler/httperr"
	"librepress/internal/handler/middleware"
	"librepress/internal/usecase/commands"
	"librepress/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DiscountHandler struct {
	cmds    commands.DiscountCommands
	q       queries.DiscountQueries
	pricing queries.PricingQueries
}

func NewDiscountHandler(cmds commands.DiscountCommands, q queries.DiscountQueries, pricing queries.PricingQueries) *DiscountHandler {
	return &DiscountHandler{cmds: cmds, q: q, pricing: pricing}
}

// @Summary Define discount rule
// @Description Create a standing discount or a promotional code (operator only)
// @Tags discounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.DefineRuleRequest true "Rule definition"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /discounts [post]
func (h *DiscountHandler) Define(c *gin.Context) {
	var req reqdto.DefineRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.DefineRule(c.Request.Context(), commands.DefineRuleRequest{
		Code:         req.Code,
		Label:        req.Label,
		RateType:     req.RateType,
		RateValue:    req.RateValue,
		MinQuantity:  req.MinQuantity,
		ScopeWorkIDs: req.ScopeWorkIDs,
		ClientType:   req.ClientType,
		StartAt:      req.StartAt,
		EndAt:        req.EndAt,
		Timezone:     req.Timezone,
	})
	if err != nil {
		h.abortWithMapped(c, err, "Define rule failed")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"rule_id": result.RuleID.String()})
}

// @Summary List discount rules
// @Tags discounts
// @Produce json
// @Security BearerAuth
// @Param include_inactive query bool false "Include deactivated rules"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} map[string]any
// @Router /discounts [get]
func (h *DiscountHandler) List(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"
	items, next, err := h.q.List(c.Request.Context(), includeInactive, cursorFromQuery(c), limitFromQuery(c))
	if err != nil {
		h.abortWithMapped(c, err, "List rules failed")
		return
	}
	resp := gin.H{"rules": resdto.FromDiscountRuleList(items)}
	if next != nil {
		resp["next_cursor"] = next.After
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Deactivate discount rule
// @Description Retire a rule; historical orders keep referencing it
// @Tags discounts
// @Security BearerAuth
// @Param id path string true "Rule ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Router /discounts/{id}/deactivate [post]
func (h *DiscountHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	if err := h.cmds.DeactivateRule(c.Request.Context(), id); err != nil {
		h.abortWithMapped(c, err, "Deactivate rule failed")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Validate promo code
// @Description Check a promotional code against a candidate order
// @Tags discounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ValidatePromoRequest true "Promo validation request"
// @Success 200 {object} resdto.AppliedDiscountResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /promo/validate [post]
func (h *DiscountHandler) ValidatePromo(c *gin.Context) {
	var req reqdto.ValidatePromoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	applied, err := h.q.ValidateCode(c.Request.Context(), queries.ValidatePromoRequest{
		Code:       req.Code,
		ClientType: req.ClientType,
		Lines:      toPromoLines(req.Lines),
	})
	if err != nil {
		h.abortWithMapped(c, err, "Promo validation failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromPromoValidation(applied))
}

// @Summary Quote order
// @Description Price a candidate order without touching stock
// @Tags quotes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.QuoteRequest true "Quote request"
// @Success 200 {object} resdto.QuoteResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /quotes [post]
func (h *DiscountHandler) Quote(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingActor, "Unauthorized", nil)
		return
	}
	var req reqdto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	quote, err := h.pricing.Quote(c.Request.Context(), queries.QuoteRequest{
		ClientType: req.ClientType,
		ActorRole:  actor.Role,
		PromoCode:  req.PromoCode,
		Lines:      toPromoLines(req.Lines),
	})
	if err != nil {
		h.abortWithMapped(c, err, "Quote failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromQuoteView(quote))
}

func toPromoLines(lines []reqdto.OrderLineRequest) []queries.PromoLine {
	out := make([]queries.PromoLine, 0, len(lines))
	for _, l := range lines {
		out = append(out, queries.PromoLine{WorkID: l.WorkID, Quantity: l.Quantity})
	}
	return out
}

func (h *DiscountHandler) abortWithMapped(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, discount.ErrCodeNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Promotional code not found", nil)
	case errors.Is(err, discount.ErrNotYetActive),
		errors.Is(err, discount.ErrExpired),
		errors.Is(err, discount.ErrScopeMismatch),
		errors.Is(err, discount.ErrClientTypeMismatch),
		errors.Is(err, discount.ErrMinimumQuantityNotMet):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, err.Error(), nil)
	case errors.Is(err, commands.ErrDuplicateCode):
		httperr.AbortWithError(c, http.StatusConflict, err, "Promotional code already in use", nil)
	case errors.Is(err, commands.ErrDiscountRuleNotFound), errors.Is(err, queries.ErrRuleNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Discount rule not found", nil)
	case errors.Is(err, queries.ErrWorkNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Work not found", nil)
	case errors.Is(err, queries.ErrWorkNotSellable):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Work is not sellable", nil)
	case errors.Is(err, commands.ErrDomainValidation),
		errors.Is(err, queries.ErrInvalidPromoRequest),
		errors.Is(err, queries.ErrInvalidQuoteRequest),
		errors.Is(err, queries.ErrInvalidCursor),
		errors.Is(err, pricing.ErrEmptyOrder),
		errors.Is(err, pricing.ErrInvalidQuantity):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Validation failed", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, msg, nil)
	}
}
