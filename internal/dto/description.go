package dto

import (
	"time"

	"github.com/yukikurage/channel-descriptions-api/internal/models"
)

// DescriptionDTO represents a full description in API responses
type DescriptionDTO struct {
	ID        string                      `json:"id"`
	Title     string                      `json:"title"`
	Content   string                      `json:"content"`
	Category  *models.DescriptionCategory `json:"category"`
	ChannelID string                      `json:"channel_id"`
	CreatedAt time.Time                   `json:"created_at"`
	DeletedAt *time.Time                  `json:"deleted_at,omitempty"`
}

// DescriptionSummaryDTO represents a description in list responses;
// content and internal fields are omitted to keep pages small
type DescriptionSummaryDTO struct {
	ID        string                      `json:"id"`
	Title     string                      `json:"title"`
	Category  *models.DescriptionCategory `json:"category"`
	CreatedAt time.Time                   `json:"created_at"`
}

// ListDescriptionsResponse represents one page of descriptions
type ListDescriptionsResponse struct {
	Items      []DescriptionSummaryDTO `json:"items"`
	NextCursor *string                 `json:"next_cursor"`
}

// DescriptionContentResponse carries the content of one description
type DescriptionContentResponse struct {
	Content string `json:"content"`
}

// ToDescriptionDTO converts a description model to its API representation
func ToDescriptionDTO(d models.Description) DescriptionDTO {
	return DescriptionDTO{
		ID:        d.ID,
		Title:     d.Title,
		Content:   d.Content,
		Category:  d.Category,
		ChannelID: d.ChannelID,
		CreatedAt: d.CreatedAt,
		DeletedAt: d.DeletedAt,
	}
}

// ToListDescriptionsResponse converts one page of description models
func ToListDescriptionsResponse(descriptions []models.Description, nextCursor *string) ListDescriptionsResponse {
	items := make([]DescriptionSummaryDTO, len(descriptions))
	for i, d := range descriptions {
		items[i] = DescriptionSummaryDTO{
			ID:        d.ID,
			Title:     d.Title,
			Category:  d.Category,
			CreatedAt: d.CreatedAt,
		}
	}

	return ListDescriptionsResponse{
		Items:      items,
		NextCursor: nextCursor,
	}
}
