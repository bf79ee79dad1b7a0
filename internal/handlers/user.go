package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/channel-descriptions-api/internal/dto"
	apierrors "github.com/yukikurage/channel-descriptions-api/internal/errors"
	"github.com/yukikurage/channel-descriptions-api/internal/services"
)

// UserHandler coordinates user (channel) HTTP handlers.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// CreateUser registers a channel.
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		ChannelID string `json:"channel_id" binding:"required"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.CreateUser(req.ChannelID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// DeleteUser soft deletes a channel together with all of its
// descriptions.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	deleted, err := h.userService.DeleteUser(c.Request.Context(), c.Param("channelId"))
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDeletedUserDTO(*deleted))
}

// respondUserError maps user service errors to HTTP responses.
func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrUserAlreadyDeleted):
		apierrors.AlreadyDeleted(c, "User already deleted")
	case errors.Is(err, services.ErrUserAlreadyExists):
		apierrors.RespondWithError(c, http.StatusConflict, apierrors.NewAPIError(apierrors.ErrCodeAlreadyExists, "User with this channel id already exists"))
	case errors.Is(err, services.ErrInvalidChannelID):
		apierrors.BadRequest(c, err.Error())
	default:
		log.Printf("user handler: %v", err)
		apierrors.InternalError(c, "")
	}
}
