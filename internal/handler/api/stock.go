package api

import (
	"errors"
	"net/http"

	reqdto "librepress/internal/handler/dto/request"
	resdto "librepress/internal/handler/dto/response"
	"librepress/internal/handler/httperr"
	"librepress/internal/handler/middleware"
	"librepress/internal/usecase/commands"
	"librepress/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StockHandler struct {
	cmds commands.StockCommands
	q    queries.StockQueries
}

func NewStockHandler(cmds commands.StockCommands, q queries.StockQueries) *StockHandler {
	return &StockHandler{cmds: cmds, q: q}
}

// @Summary Restock warehouse
// @Description Add stock to the central warehouse for a work
// @Tags stock
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workID path string true "Work ID"
// @Param request body reqdto.RestockRequest true "Restock request"
// @Success 200 {object} resdto.StockResultResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /stock/{workID}/restock [post]
func (h *StockHandler) Restock(c *gin.Context) {
	workID, actor, ok := h.workAndActor(c)
	if !ok {
		return
	}
	var req reqdto.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.Restock(c.Request.Context(), workID, actor.ID, req.Quantity)
	if err != nil {
		h.abortWithMapped(c, err, "Restock failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromStockResult(result))
}

// @Summary Transfer to depot
// @Description Move stock from the warehouse to a partner depot
// @Tags stock
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workID path string true "Work ID"
// @Param request body reqdto.TransferRequest true "Transfer request"
// @Success 200 {object} resdto.StockResultResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /stock/{workID}/transfer [post]
func (h *StockHandler) Transfer(c *gin.Context) {
	workID, actor, ok := h.workAndActor(c)
	if !ok {
		return
	}
	var req reqdto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.TransferToDepot(c.Request.Context(), workID, req.PartnerID, actor.ID, req.Quantity)
	if err != nil {
		h.abortWithMapped(c, err, "Transfer failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromStockResult(result))
}

// @Summary Consume stock
// @Description Take stock out at order fulfillment, from the warehouse or a depot
// @Tags stock
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workID path string true "Work ID"
// @Param request body reqdto.ConsumeRequest true "Consume request"
// @Success 200 {object} resdto.StockResultResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /stock/{workID}/consume [post]
func (h *StockHandler) Consume(c *gin.Context) {
	workID, actor, ok := h.workAndActor(c)
	if !ok {
		return
	}
	var req reqdto.ConsumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.Consume(c.Request.Context(), workID, req.PartnerID, actor.ID, actor.Role, req.Quantity)
	if err != nil {
		h.abortWithMapped(c, err, "Consume failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromStockResult(result))
}

// @Summary Return to depot
// @Description Re-credit a partner depot after a confirmed return
// @Tags stock
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workID path string true "Work ID"
// @Param request body reqdto.ReturnRequest true "Return request"
// @Success 200 {object} resdto.StockResultResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /stock/{workID}/return [post]
func (h *StockHandler) Return(c *gin.Context) {
	workID, actor, ok := h.workAndActor(c)
	if !ok {
		return
	}
	var req reqdto.ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.ReturnToDepot(c.Request.Context(), workID, req.PartnerID, actor.ID, req.Quantity)
	if err != nil {
		h.abortWithMapped(c, err, "Return failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromStockResult(result))
}

// @Summary Stock overview
// @Description Get the stock position of a work: warehouse, depots, total and alert level
// @Tags stock
// @Produce json
// @Security BearerAuth
// @Param workID path string true "Work ID"
// @Success 200 {object} resdto.StockOverviewResponse
// @Failure 404 {object} map[string]string
// @Router /stock/{workID} [get]
func (h *StockHandler) Overview(c *gin.Context) {
	workID, err := uuid.Parse(c.Param("workID"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid work id", nil)
		return
	}
	overview, err := h.q.Overview(c.Request.Context(), workID)
	if err != nil {
		h.abortWithMapped(c, err, "Stock overview failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromStockOverview(overview))
}

// @Summary Stock movements
// @Description List the stock journal of a work, newest first
// @Tags stock
// @Produce json
// @Security BearerAuth
// @Param workID path string true "Work ID"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /stock/{workID}/movements [get]
func (h *StockHandler) Movements(c *gin.Context) {
	workID, err := uuid.Parse(c.Param("workID"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid work id", nil)
		return
	}
	items, next, err := h.q.Movements(c.Request.Context(), workID, cursorFromQuery(c), limitFromQuery(c))
	if err != nil {
		h.abortWithMapped(c, err, "List movements failed")
		return
	}
	resp := gin.H{"movements": resdto.FromMovementList(items)}
	if next != nil {
		resp["next_cursor"] = next.After
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StockHandler) workAndActor(c *gin.Context) (uuid.UUID, middleware.Actor, bool) {
	workID, err := uuid.Parse(c.Param("workID"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid work id", nil)
		return uuid.Nil, middleware.Actor{}, false
	}
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingActor, "Unauthorized", nil)
		return uuid.Nil, middleware.Actor{}, false
	}
	return workID, actor, true
}

func (h *StockHandler) abortWithMapped(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, commands.ErrWorkNotFound), errors.Is(err, queries.ErrWorkNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Work not found", nil)
	case errors.Is(err, commands.ErrInvalidQuantity):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid quantity", nil)
	case errors.Is(err, commands.ErrInsufficientStock):
		httperr.AbortWithError(c, http.StatusConflict, err, "Insufficient stock", nil)
	case errors.Is(err, commands.ErrUnknownDepot):
		httperr.AbortWithError(c, http.StatusNotFound, err, "No holding for that partner", nil)
	case errors.Is(err, commands.ErrWorkNotSellable):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Work is not sellable", nil)
	case errors.Is(err, queries.ErrInvalidCursor):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, msg, nil)
	}
}
