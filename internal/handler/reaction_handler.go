package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"msghub/internal/dto"
	"msghub/internal/service"

	"github.com/gin-gonic/gin"
)

type ReactionHandler struct {
	svc service.ReactionService
}

func NewReactionHandler(svc service.ReactionService) *ReactionHandler {
	return &ReactionHandler{svc: svc}
}

func (h *ReactionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.PUT("/:message_id/reactions", h.React)
	rg.GET("/:message_id/reactions", h.Get)
}

// React toggles or replaces the caller's reaction and returns the
// resulting grouped view.
func (h *ReactionHandler) React(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	messageID, ok := pathID(c, "message_id")
	if !ok {
		return
	}

	var req dto.ReactDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	grouped, err := h.svc.React(ctx, userID, messageID, req.Emoji)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmojiNotAllowed):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case err.Error() == "message not found":
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, dto.GroupedReactionsResponse{MessageID: messageID, Reactions: grouped})
}

// Get returns the grouped reactions for a message
func (h *ReactionHandler) Get(c *gin.Context) {
	messageID, ok := pathID(c, "message_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	grouped, err := h.svc.GetGrouped(ctx, messageID)
	if err != nil {
		if err.Error() == "message not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.GroupedReactionsResponse{MessageID: messageID, Reactions: grouped})
}
