package api

import (
	"errors"
	"net/http"
	"strconv"

	"librepress/internal/domain/catalog"
	reqdto "librepress/internal/handler/dto/request"
	resdto "librepress/internal/handler/dto/response"
	"librepress/internal/handler/httperr"
	"librepress/internal/handler/middleware"
	"librepress/internal/usecase/commands"
	"librepress/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type WorkHandler struct {
	cmds commands.CatalogCommands
	q    queries.CatalogQueries
}

func NewWorkHandler(cmds commands.CatalogCommands, q queries.CatalogQueries) *WorkHandler {
	return &WorkHandler{cmds: cmds, q: q}
}

// @Summary Submit work
// @Description Submit a new work for review, or save it as a draft
// @Tags works
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SubmitWorkRequest true "Submit work request"
// @Success 201 {object} resdto.WorkResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /works [post]
func (h *WorkHandler) Submit(c *gin.Context) {
	var req reqdto.SubmitWorkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.SubmitWork(c.Request.Context(), commands.SubmitWorkRequest{
		Title:        req.Title,
		Description:  req.Description,
		AuthorID:     req.AuthorID,
		DisciplineID: req.DisciplineID,
		BasePrice:    req.BasePrice,
		TaxRate:      req.TaxRate,
		Overrides:    req.PriceOverrides,
		Details: catalog.Details{
			CoverImageRef: req.CoverImageRef,
			CollectionID:  req.CollectionID,
			Attachments:   req.Attachments,
		},
		AsDraft: req.AsDraft,
	})
	if err != nil {
		h.abortWithMapped(c, err, "Submit work failed")
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), result.WorkID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load work", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromWorkView(view))
}

// @Summary Get work
// @Tags works
// @Produce json
// @Security BearerAuth
// @Param id path string true "Work ID"
// @Success 200 {object} resdto.WorkResponse
// @Failure 404 {object} map[string]string
// @Router /works/{id} [get]
func (h *WorkHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		h.abortWithMapped(c, err, "Get work failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromWorkView(view))
}

// @Summary List works
// @Description List works with optional status/author/discipline filters and keyset pagination
// @Tags works
// @Produce json
// @Security BearerAuth
// @Param status query string false "Lifecycle status filter"
// @Param author_id query string false "Author filter"
// @Param discipline_id query string false "Discipline filter"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} map[string]any
// @Router /works [get]
func (h *WorkHandler) List(c *gin.Context) {
	var filters queries.WorkFilters
	if v := c.Query("status"); v != "" {
		filters.Status = &v
	}
	if v := c.Query("author_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid author id", nil)
			return
		}
		filters.AuthorID = &id
	}
	if v := c.Query("discipline_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid discipline id", nil)
			return
		}
		filters.DisciplineID = &id
	}

	items, next, err := h.q.List(c.Request.Context(), filters, cursorFromQuery(c), limitFromQuery(c))
	if err != nil {
		h.abortWithMapped(c, err, "List works failed")
		return
	}

	resp := gin.H{"works": resdto.FromWorkList(items)}
	if next != nil {
		resp["next_cursor"] = next.After
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Review queue
// @Description List works awaiting review (operator only)
// @Tags works
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Router /works/review-queue [get]
func (h *WorkHandler) ReviewQueue(c *gin.Context) {
	items, next, err := h.q.ListReviewQueue(c.Request.Context(), cursorFromQuery(c), limitFromQuery(c))
	if err != nil {
		h.abortWithMapped(c, err, "List review queue failed")
		return
	}
	resp := gin.H{"works": resdto.FromWorkList(items)}
	if next != nil {
		resp["next_cursor"] = next.After
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Submit draft
// @Description Move a draft into the review queue
// @Tags works
// @Produce json
// @Security BearerAuth
// @Param id path string true "Work ID"
// @Success 200 {object} resdto.TransitionResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /works/{id}/submit [post]
func (h *WorkHandler) SubmitDraft(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	result, err := h.cmds.SubmitDraft(c.Request.Context(), id)
	if err != nil {
		h.abortWithMapped(c, err, "Submit draft failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromTransition(result))
}

// @Summary Review work
// @Description Approve or reject a pending work (operator only)
// @Tags works
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Work ID"
// @Param request body reqdto.ReviewWorkRequest true "Review decision"
// @Success 200 {object} resdto.TransitionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /works/{id}/review [post]
func (h *WorkHandler) Review(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingActor, "Unauthorized", nil)
		return
	}
	var req reqdto.ReviewWorkRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	var result *commands.TransitionResult
	switch req.Decision {
	case "APPROVE":
		result, err = h.cmds.ApproveWork(c.Request.Context(), id, actor.ID, req.NewAuthorID)
	case "REJECT":
		result, err = h.cmds.RejectWork(c.Request.Context(), id, actor.ID, req.Reason)
	}
	if err != nil {
		h.abortWithMapped(c, err, "Review work failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromTransition(result))
}

// @Summary Resubmit work
// @Description Put a rejected work back in the review queue
// @Tags works
// @Produce json
// @Security BearerAuth
// @Param id path string true "Work ID"
// @Success 200 {object} resdto.TransitionResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /works/{id}/resubmit [post]
func (h *WorkHandler) Resubmit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	result, err := h.cmds.ResubmitWork(c.Request.Context(), id)
	if err != nil {
		h.abortWithMapped(c, err, "Resubmit work failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromTransition(result))
}

// @Summary Set sale status
// @Description Move a published work between sale states (operator only)
// @Tags works
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Work ID"
// @Param request body reqdto.SetSaleStatusRequest true "Target status"
// @Success 200 {object} resdto.TransitionResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /works/{id}/sale-status [post]
func (h *WorkHandler) SetSaleStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	var req reqdto.SetSaleStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	result, err := h.cmds.SetSaleStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.abortWithMapped(c, err, "Set sale status failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromTransition(result))
}

// @Summary Delete work
// @Description Delete a work with no sales history (operator only)
// @Tags works
// @Security BearerAuth
// @Param id path string true "Work ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /works/{id} [delete]
func (h *WorkHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	if err := h.cmds.DeleteWork(c.Request.Context(), id); err != nil {
		h.abortWithMapped(c, err, "Delete work failed")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *WorkHandler) abortWithMapped(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, commands.ErrWorkNotFound), errors.Is(err, queries.ErrWorkNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Work not found", nil)
	case errors.Is(err, commands.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusConflict, err, "Invalid lifecycle transition", nil)
	case errors.Is(err, commands.ErrReferentialConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Work is referenced by existing order lines", nil)
	case errors.Is(err, commands.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Validation failed", nil)
	case errors.Is(err, queries.ErrInvalidCursor):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, msg, nil)
	}
}

var errMissingActor = errors.New("actor missing from context")

func limitFromQuery(c *gin.Context) int {
	limit := 20
	if v := c.Query("limit"); v != "" {
		if iv, err := strconv.Atoi(v); err == nil {
			limit = queries.ValidateLimit(iv)
		}
	}
	return limit
}

func cursorFromQuery(c *gin.Context) *queries.Cursor {
	if after := c.Query("after"); after != "" {
		return &queries.Cursor{After: after}
	}
	return nil
}
