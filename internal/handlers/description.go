package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/channel-descriptions-api/internal/dto"
	apierrors "github.com/yukikurage/channel-descriptions-api/internal/errors"
	"github.com/yukikurage/channel-descriptions-api/internal/models"
	"github.com/yukikurage/channel-descriptions-api/internal/repository"
	"github.com/yukikurage/channel-descriptions-api/internal/services"
)

// categoryNullSentinel is the wire convention for the tri-state
// category filter: an absent parameter means no filtering, the literal
// value "null" selects uncategorized rows, anything else must be a
// known category value.
const categoryNullSentinel = "null"

// DescriptionHandler coordinates description-related HTTP handlers.
type DescriptionHandler struct {
	descriptionService *services.DescriptionService
}

// NewDescriptionHandler creates a new DescriptionHandler.
func NewDescriptionHandler(descriptionService *services.DescriptionService) *DescriptionHandler {
	return &DescriptionHandler{
		descriptionService: descriptionService,
	}
}

// CreateDescription creates a new description for a channel.
func (h *DescriptionHandler) CreateDescription(c *gin.Context) {
	type CreateDescriptionRequest struct {
		Title     string  `json:"title" binding:"required"`
		Content   string  `json:"content" binding:"required"`
		Category  *string `json:"category"`
		ChannelID string  `json:"channel_id" binding:"required"`
	}

	var req CreateDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var category *models.DescriptionCategory
	if req.Category != nil {
		value := models.DescriptionCategory(*req.Category)
		category = &value
	}

	description, err := h.descriptionService.CreateDescription(services.CreateDescriptionInput{
		Title:     req.Title,
		Content:   req.Content,
		Category:  category,
		ChannelID: req.ChannelID,
	})
	if err != nil {
		respondDescriptionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDescriptionDTO(*description))
}

// ListDescriptions returns one page of a channel's active descriptions.
func (h *DescriptionHandler) ListDescriptions(c *gin.Context) {
	channelID := c.Query("channel_id")
	if channelID == "" {
		apierrors.BadRequest(c, "channel_id is required")
		return
	}

	var categoryFilter repository.CategoryFilter
	if raw, ok := c.GetQuery("category"); ok {
		categoryFilter.Set = true
		if raw == categoryNullSentinel {
			categoryFilter.Null = true
		} else {
			value := models.DescriptionCategory(raw)
			if !value.IsValid() {
				apierrors.BadRequest(c, "Unknown category")
				return
			}
			categoryFilter.Value = value
		}
	}

	descriptions, nextCursor, err := h.descriptionService.ListDescriptions(services.ListDescriptionsInput{
		ChannelID: channelID,
		Category:  categoryFilter,
		Cursor:    c.Query("cursor"),
	})
	if err != nil {
		respondDescriptionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListDescriptionsResponse(descriptions, nextCursor))
}

// GetDescriptionContent returns the content of a single active description.
func (h *DescriptionHandler) GetDescriptionContent(c *gin.Context) {
	content, err := h.descriptionService.GetContent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDescriptionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DescriptionContentResponse{Content: content})
}

// UpdateDescription updates title, content or category of an active
// description. The category field follows the same wire convention as
// the list filter: omitted leaves it unchanged, the literal "null"
// clears it.
func (h *DescriptionHandler) UpdateDescription(c *gin.Context) {
	type UpdateDescriptionRequest struct {
		Title     *string `json:"title"`
		Content   *string `json:"content"`
		Category  *string `json:"category"`
		ChannelID string  `json:"channel_id" binding:"required"`
	}

	var req UpdateDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateDescriptionInput{
		ID:        c.Param("id"),
		ChannelID: req.ChannelID,
		Title:     req.Title,
		Content:   req.Content,
	}
	if req.Category != nil {
		if *req.Category == categoryNullSentinel {
			input.ClearCategory = true
		} else {
			value := models.DescriptionCategory(*req.Category)
			input.Category = &value
		}
	}

	description, err := h.descriptionService.UpdateDescription(c.Request.Context(), input)
	if err != nil {
		respondDescriptionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDescriptionDTO(*description))
}

// DeleteDescription soft deletes a description owned by the requesting
// channel.
func (h *DescriptionHandler) DeleteDescription(c *gin.Context) {
	type DeleteDescriptionRequest struct {
		ChannelID string `json:"channel_id" binding:"required"`
	}

	var req DeleteDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	description, err := h.descriptionService.DeleteDescription(c.Request.Context(), c.Param("id"), req.ChannelID)
	if err != nil {
		respondDescriptionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDescriptionDTO(*description))
}

// respondDescriptionError maps service errors to HTTP responses.
// Unrecognized errors are logged with full detail but surfaced as an
// opaque 500 so internal error text never reaches callers.
func respondDescriptionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrDescriptionNotFound):
		apierrors.NotFound(c, "Description not found")
	case errors.Is(err, services.ErrChannelNotFound):
		apierrors.NotFound(c, "Channel not found")
	case errors.Is(err, services.ErrPermissionDenied):
		apierrors.Forbidden(c, "Channel does not own this description")
	case errors.Is(err, services.ErrDescriptionAlreadyDeleted):
		apierrors.AlreadyDeleted(c, "Description already deleted")
	case errors.Is(err, services.ErrInvalidTitle),
		errors.Is(err, services.ErrInvalidContent),
		errors.Is(err, services.ErrInvalidChannelID),
		errors.Is(err, services.ErrInvalidCategory):
		apierrors.BadRequest(c, err.Error())
	default:
		log.Printf("description handler: %v", err)
		apierrors.InternalError(c, "")
	}
}
