package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ticketapp/internal/application/user/dto"
	"ticketapp/internal/application/user/usecases"
	"ticketapp/internal/interfaces/http/middleware"
	"ticketapp/internal/shared/errors"
	"ticketapp/internal/shared/logger"
	"ticketapp/internal/shared/utils"
)

type AuthHandler struct {
	loginUC       usecases.LoginExecutor
	currentUserUC usecases.CurrentUserGetter
	logger        logger.Interface
}

func NewAuthHandler(loginUC usecases.LoginExecutor, currentUserUC usecases.CurrentUserGetter, logger logger.Interface) *AuthHandler {
	return &AuthHandler{
		loginUC:       loginUC,
		currentUserUC: currentUserUC,
		logger:        logger,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for login", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("username and password are required"))
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", &dto.LoginResponse{
		AccessToken: result.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   result.ExpiresIn,
		User:        dto.ToUserDTO(result.User),
	})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.currentUserUC.Execute(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.ToUserDTO(u))
}
