package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"msghub/internal/dto"
	"msghub/internal/service"
	"msghub/internal/webpush"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	svc service.SubscriptionService
}

func NewSubscriptionHandler(svc service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc}
}

func (h *SubscriptionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/", h.Subscribe)
	rg.DELETE("/", h.Unsubscribe)
}

// Subscribe registers a browser push subscription. The endpoint is
// validated against the trust policy before anything is stored.
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.SubscribeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Subscribe(ctx, userID, req.Endpoint, req.Keys.P256dh, req.Keys.Auth); err != nil {
		if isEndpointRejection(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "subscription registered"})
}

// Unsubscribe removes the caller's subscription for an endpoint
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UnsubscribeDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Unsubscribe(ctx, userID, req.Endpoint); err != nil {
		if err.Error() == "subscription not found" {
			c.JSON(http.StatusNotFound, gin.H{"error": "subscription not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func isEndpointRejection(err error) bool {
	return errors.Is(err, webpush.ErrMalformedURL) ||
		errors.Is(err, webpush.ErrInsecureScheme) ||
		errors.Is(err, webpush.ErrUntrustedDomain) ||
		errors.Is(err, webpush.ErrMissingPath) ||
		errors.Is(err, webpush.ErrInternalAddress)
}
