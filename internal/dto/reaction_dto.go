package dto

import "msghub/internal/reactions"

// ReactDTO for toggling a reaction on a message
type ReactDTO struct {
	Emoji string `json:"emoji" binding:"required"`
}

// GroupedReactionsResponse carries the derived grouped view; raw
// reactions are never returned directly.
type GroupedReactionsResponse struct {
	MessageID int64               `json:"message_id"`
	Reactions []reactions.Grouped `json:"reactions"`
}
