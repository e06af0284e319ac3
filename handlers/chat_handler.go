package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/feedbackform/feedback-backend/middleware"
	"github.com/feedbackform/feedback-backend/services"
	"github.com/feedbackform/feedback-backend/types"
)

// ChatHandler handles the AI chat endpoints. It is only wired when the
// completion provider and a chat log store are configured.
type ChatHandler struct {
	service *services.ChatService
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(service *services.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

// Send handles POST /api/chat. Anonymous callers are allowed; a verified
// identity, when present, tags the logged messages.
func (h *ChatHandler) Send(c *gin.Context) {
	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	identity := middleware.IdentityFromContext(c)
	answer, sessionID, err := h.service.Send(c.Request.Context(), req.SessionID, req.Message, identity)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.ChatResponse{
		OK:        true,
		Answer:    answer,
		Reply:     answer,
		SessionID: sessionID,
	})
}

// History handles GET /api/chat/history for the authenticated user.
func (h *ChatHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	identity := middleware.IdentityFromContext(c)
	items, err := h.service.History(c.Request.Context(), identity.Subject, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.ChatHistoryResponse{OK: true, Items: items})
}
