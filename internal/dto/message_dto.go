package dto

import (
	"time"

	"msghub/internal/models"
)

// CreateMessageDTO for posting a message
type CreateMessageDTO struct {
	Message string `json:"message" binding:"required,min=1,max=10000"`
}

// MessageResponse for returning message information
type MessageResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromModelToMessageResponse converts a Message model to MessageResponse DTO
func FromModelToMessageResponse(message *models.Message) *MessageResponse {
	return &MessageResponse{
		ID:        message.ID,
		Username:  message.User.Username,
		Message:   message.Message,
		CreatedAt: message.CreatedAt,
		UpdatedAt: message.UpdatedAt,
	}
}

// PaginatedMessageResponse for returning paginated messages
type PaginatedMessageResponse struct {
	Data       []MessageResponse `json:"data"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	Total      int               `json:"total"`
	TotalPages int               `json:"total_pages"`
}

// NewPaginatedMessageResponse creates a paginated message response
func NewPaginatedMessageResponse(data []MessageResponse, total, page, pageSize int) *PaginatedMessageResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedMessageResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
