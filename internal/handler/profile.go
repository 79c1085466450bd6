package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"agrimitra/internal/model"
	"agrimitra/internal/pkg/ctxutil"
	"agrimitra/internal/service"
)

// ProfileHandler serves a signed-in farmer's persisted chat history.
// Routes are mounted behind the auth middleware, so the user id is always
// on the context here.
type ProfileHandler struct {
	chatService *service.ChatService
}

func NewProfileHandler(chatService *service.ChatService) *ProfileHandler {
	return &ProfileHandler{
		chatService: chatService,
	}
}

// GetHistory returns persisted conversations grouped by assistant
// @Summary      Get chat history
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  model.ErrorResponse
// @Router       /api/v1/profile/history [get]
func (h *ProfileHandler) GetHistory(c *gin.Context) {
	userID, ok := ctxutil.GetUserID(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{
			Code:    40101,
			Message: "authorization required",
		})
		return
	}

	grouped, err := h.chatService.GetHistory(c.Request.Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to load chat history")
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Code:    50001,
			Message: "Internal Server Error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    grouped,
	})
}

// DeleteHistory purges all persisted history
// @Summary      Delete chat history
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  model.ErrorResponse
// @Router       /api/v1/profile/history [delete]
func (h *ProfileHandler) DeleteHistory(c *gin.Context) {
	userID, ok := ctxutil.GetUserID(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{
			Code:    40101,
			Message: "authorization required",
		})
		return
	}

	if err := h.chatService.PurgeHistory(c.Request.Context(), userID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to purge chat history")
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Code:    50001,
			Message: "Internal Server Error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "history deleted",
	})
}
