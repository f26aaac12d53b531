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

// UserHandler serves the assignee selector and the admin console.
type UserHandler struct {
	listUC       usecases.UserLister
	createUC     usecases.CreateUserExecutor
	updateRoleUC usecases.UpdateUserRoleExecutor
	deleteUC     usecases.DeleteUserExecutor
	logger       logger.Interface
}

func NewUserHandler(
	listUC usecases.UserLister,
	createUC usecases.CreateUserExecutor,
	updateRoleUC usecases.UpdateUserRoleExecutor,
	deleteUC usecases.DeleteUserExecutor,
	logger logger.Interface,
) *UserHandler {
	return &UserHandler{
		listUC:       listUC,
		createUC:     createUC,
		updateRoleUC: updateRoleUC,
		deleteUC:     deleteUC,
		logger:       logger,
	}
}

// ListUserRefs handles GET /users
func (h *UserHandler) ListUserRefs(c *gin.Context) {
	refs, err := h.listUC.Refs(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", refs)
}

// ListUsers handles GET /admin/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.listUC.Full(c.Request.Context(), middleware.CurrentActor(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := dto.ToUserDTOList(users)
	utils.ItemsResponse(c, items, len(items))
}

// CreateUser handles POST /admin/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create user", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateUserCommand{
		Actor:    middleware.CurrentActor(c),
		Username: req.Username,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		Role:            req.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"username": result.Username,
		"role":     result.Role,
	}, "User created successfully")
}

// UpdateUserRole handles PATCH /admin/users/:id/role
func (h *UserHandler) UpdateUserRole(c *gin.Context) {
	userID, err := utils.ParseUintParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	u, err := h.updateRoleUC.Execute(c.Request.Context(), usecases.UpdateUserRoleCommand{
		Actor:  middleware.CurrentActor(c),
		UserID: userID,
		Role:   req.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Role updated", dto.ToUserDTO(u))
}

// DeleteUser handles DELETE /admin/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, err := utils.ParseUintParam(c, "id", "user")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), usecases.DeleteUserCommand{
		Actor:  middleware.CurrentActor(c),
		UserID: userID,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
