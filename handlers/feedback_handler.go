// Package handlers contains the gin HTTP handlers. Handlers bind and shape
// requests/responses; validation and persistence live in the services.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feedbackform/feedback-backend/services"
	"github.com/feedbackform/feedback-backend/types"
)

// FeedbackHandler handles the feedback CRUD endpoints.
type FeedbackHandler struct {
	service *services.FeedbackService
}

// NewFeedbackHandler creates a FeedbackHandler.
func NewFeedbackHandler(service *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// Submit handles POST /api/feedback. The client IP and user-agent are always
// taken from the request, never from the payload.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var input types.FeedbackCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	meta := types.RequestMeta{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	fb, err := h.service.Submit(c.Request.Context(), input, meta)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, types.SubmitFeedbackResponse{
		OK:       true,
		ID:       fb.ID,
		Feedback: fb,
	})
}

// List handles GET /api/feedback with page/limit/search/dateFrom/dateTo
// query parameters.
func (h *FeedbackHandler) List(c *gin.Context) {
	query := types.ListFeedbackQuery{
		Page:     c.Query("page"),
		Limit:    c.Query("limit"),
		Search:   c.Query("search"),
		DateFrom: c.Query("dateFrom"),
		DateTo:   c.Query("dateTo"),
	}

	page, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.ListFeedbackResponse{
		OK:         true,
		Items:      page.Items,
		Total:      page.Total,
		TotalPages: page.TotalPages,
		Page:       page.Page,
		Limit:      page.Limit,
	})
}

// Patch handles PATCH /api/feedback/:id with a partial body.
func (h *FeedbackHandler) Patch(c *gin.Context) {
	var update types.FeedbackUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	fb, err := h.service.Patch(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.PatchFeedbackResponse{OK: true, Feedback: fb})
}

// Delete handles DELETE /api/feedback/:id.
func (h *FeedbackHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.DeleteFeedbackResponse{OK: true, ID: id})
}
