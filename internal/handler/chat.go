// Package handler holds the HTTP handlers for the chat, catalog, profile,
// and health surfaces.
package handler

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"agrimitra/internal/conversation"
	"agrimitra/internal/gateway"
	"agrimitra/internal/model"
	"agrimitra/internal/pkg/ctxutil"
	"agrimitra/internal/service"
)

// ChatHandler routes chat session requests to the chat service.
type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// ownerID is the signed-in user for this request, empty for anonymous.
func ownerID(c *gin.Context) string {
	id, _ := ctxutil.GetUserID(c.Request.Context())
	return id
}

// CreateSession opens a chat session
// @Summary      Open a chat session
// @Description  Opens a session with a crop assistant; anonymous sessions are allowed
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        request  body      model.CreateSessionRequest  true  "session request"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  model.ErrorResponse
// @Router       /api/v1/chat/sessions [post]
func (h *ChatHandler) CreateSession(c *gin.Context) {
	var req model.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	resp, err := h.chatService.CreateSession(c.Request.Context(), req.ChatbotName, req.Language, ownerID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    resp,
	})
}

// GetSession returns a session with its transcript
// @Summary      Get a chat session
// @Tags         chat
// @Produce      json
// @Param        id   path      string  true  "session id"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  model.ErrorResponse
// @Router       /api/v1/chat/sessions/{id} [get]
func (h *ChatHandler) GetSession(c *gin.Context) {
	resp, err := h.chatService.GetSession(c.Request.Context(), c.Param("id"), ownerID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    resp,
	})
}

// GetMessages returns just the transcript of a session
// @Summary      Get session messages
// @Tags         chat
// @Produce      json
// @Param        id   path      string  true  "session id"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  model.ErrorResponse
// @Router       /api/v1/chat/sessions/{id}/messages [get]
func (h *ChatHandler) GetMessages(c *gin.Context) {
	resp, err := h.chatService.GetSession(c.Request.Context(), c.Param("id"), ownerID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    resp.Messages,
	})
}

// DeleteSession closes a session
// @Summary      Close a chat session
// @Tags         chat
// @Produce      json
// @Param        id   path      string  true  "session id"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  model.ErrorResponse
// @Router       /api/v1/chat/sessions/{id} [delete]
func (h *ChatHandler) DeleteSession(c *gin.Context) {
	if err := h.chatService.CloseSession(c.Request.Context(), c.Param("id"), ownerID(c)); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "session closed",
	})
}

// SetLanguage switches the session language
// @Summary      Switch the session language
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "session id"
// @Param        request  body      model.SetLanguageRequest   true  "language request"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /api/v1/chat/sessions/{id}/language [put]
func (h *ChatHandler) SetLanguage(c *gin.Context) {
	var req model.SetLanguageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	if err := h.chatService.SetLanguage(c.Request.Context(), c.Param("id"), ownerID(c), req.Language); err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "language updated",
	})
}

// SendMessage runs a text exchange
// @Summary      Send a text message
// @Description  Sends a text turn; assistant failures come back as an in-band apology message
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "session id"
// @Param        request  body      model.SendMessageRequest   true  "message request"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /api/v1/chat/sessions/{id}/messages [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req model.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	resp, err := h.chatService.SendText(c.Request.Context(), c.Param("id"), ownerID(c), req.Text)
	h.writeExchange(c, resp, err)
}

// SendImage runs an image exchange
// @Summary      Send a leaf photo
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        id       path      string                   true  "session id"
// @Param        request  body      model.SendImageRequest   true  "image request"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  model.ErrorResponse
// @Failure      404      {object}  model.ErrorResponse
// @Router       /api/v1/chat/sessions/{id}/image [post]
func (h *ChatHandler) SendImage(c *gin.Context) {
	var req model.SendImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:    40001,
			Message: "Invalid image data",
			Detail:  "data must be base64 encoded",
		})
		return
	}

	resp, err := h.chatService.SendImage(c.Request.Context(), c.Param("id"), ownerID(c), data, req.MimeType, req.Name)
	h.writeExchange(c, resp, err)
}

// Scan runs a camera scan exchange
// @Summary      Scan a leaf
// @Tags         chat
// @Produce      json
// @Param        id   path      string  true  "session id"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  model.ErrorResponse
// @Failure      404  {object}  model.ErrorResponse
// @Router       /api/v1/chat/sessions/{id}/scan [post]
func (h *ChatHandler) Scan(c *gin.Context) {
	resp, err := h.chatService.Scan(c.Request.Context(), c.Param("id"), ownerID(c))
	h.writeExchange(c, resp, err)
}

// writeExchange renders an exchange result. Gateway failures are not HTTP
// failures: the apology already sits on the transcript, so the exchange
// response goes out with 200 and the fault is only logged.
func (h *ChatHandler) writeExchange(c *gin.Context, resp *model.ExchangeResponse, err error) {
	if err != nil {
		var gerr *gateway.Error
		if errors.As(err, &gerr) && resp != nil {
			log.Warn().
				Str("kind", gerr.Kind.String()).
				Str("session_id", c.Param("id")).
				Msg("exchange degraded to apology")
		} else {
			h.writeError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    resp,
	})
}

func (h *ChatHandler) writeError(c *gin.Context, err error) {
	var verr *conversation.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:    40002,
			Message: verr.Error(),
		})
	case errors.Is(err, service.ErrUnknownBot):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:    40003,
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{
			Code:    40401,
			Message: err.Error(),
		})
	case errors.Is(err, conversation.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, model.ErrorResponse{
			Code:    40302,
			Message: err.Error(),
		})
	default:
		log.Error().Err(err).Msg("chat request failed")
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Code:    50001,
			Message: "Internal Server Error",
		})
	}
}
