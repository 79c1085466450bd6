package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"agrimitra/internal/service"
)

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name"`
}

// Register creates a new account
// @Summary      Register a new account
// @Description  Creates an account with email and password; accounts are active immediately
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      RegisterRequest  true  "registration request"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  ErrorResponse
// @Failure      409      {object}  ErrorResponse
// @Failure      500      {object}  ErrorResponse
// @Router       /api/v1/auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    40001,
			Message: "Invalid request body",
			Detail:  err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	resp, err := h.authService.Register(ctx, req.Email, req.Password, req.FullName)
	if err != nil {
		code := http.StatusInternalServerError
		errorCode := 50001
		if errors.Is(err, service.ErrUserAlreadyExists) {
			code = http.StatusConflict
			errorCode = 40901
		}

		c.JSON(code, ErrorResponse{
			Code:    errorCode,
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "registered",
		"data": gin.H{
			"user_id": resp.UserID,
			"email":   resp.Email,
		},
	})
}
