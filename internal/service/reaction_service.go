package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"msghub/internal/models"
	"msghub/internal/notifications"
	"msghub/internal/reactions"
	"msghub/internal/realtime"
	"msghub/internal/repository"

	"gorm.io/gorm"
)

// ErrEmojiNotAllowed rejects reactions outside the fixed emoji set.
var ErrEmojiNotAllowed = errors.New("emoji is not in the allowed set")

type ReactionService interface {
	React(ctx context.Context, userID, messageID int64, emoji string) ([]reactions.Grouped, error)
	GetGrouped(ctx context.Context, messageID int64) ([]reactions.Grouped, error)
}

type reactionService struct {
	reactionRepo repository.ReactionRepository
	messageRepo  repository.MessageRepository
	publisher    realtime.Publisher
}

func NewReactionService(
	reactionRepo repository.ReactionRepository,
	messageRepo repository.MessageRepository,
	publisher realtime.Publisher,
) ReactionService {
	return &reactionService{
		reactionRepo: reactionRepo,
		messageRepo:  messageRepo,
		publisher:    publisher,
	}
}

// React toggles the user's reaction on a message. Reacting with the
// same emoji again removes it; a different emoji replaces the previous
// one rather than stacking. The grouped view is recomputed from a fresh
// query after every mutation and broadcast; raw reaction events never
// go on the wire.
func (s *reactionService) React(ctx context.Context, userID, messageID int64, emoji string) ([]reactions.Grouped, error) {
	if !models.IsAllowedEmoji(emoji) {
		return nil, ErrEmojiNotAllowed
	}

	if _, err := s.messageRepo.GetByID(ctx, messageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("message not found")
		}
		return nil, err
	}

	existing, err := s.reactionRepo.GetByMessageAndUser(ctx, messageID, userID)
	if err != nil {
		return nil, err
	}

	switch {
	case existing == nil:
		err = s.reactionRepo.Create(ctx, &models.Reaction{
			MessageID: messageID,
			UserID:    userID,
			Emoji:     emoji,
		})
	case existing.Emoji == emoji:
		// Same emoji toggles off.
		err = s.reactionRepo.Delete(ctx, existing.ID)
	default:
		// Different emoji replaces, never stacks.
		existing.Emoji = emoji
		err = s.reactionRepo.Update(ctx, existing)
	}
	if err != nil {
		return nil, err
	}

	grouped, err := s.GetGrouped(ctx, messageID)
	if err != nil {
		return nil, err
	}

	payload := notifications.ReactionsPayload{
		MessageID:        messageID,
		GroupedReactions: grouped,
		UpdatedAt:        time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.publisher.Publish(ctx, realtime.MessageEventsChannel, notifications.EventReactionsUpdated, payload); err != nil {
		// Broadcast is best effort; the mutation already succeeded.
		slog.Warn("Failed to broadcast grouped reactions", "message_id", messageID, "error", err)
	}

	return grouped, nil
}

// GetGrouped returns the grouped view computed from a fresh read, never
// a cache, so concurrent reactors are both reflected in the next read.
func (s *reactionService) GetGrouped(ctx context.Context, messageID int64) ([]reactions.Grouped, error) {
	fresh, err := s.reactionRepo.GetByMessage(ctx, messageID)
	if err != nil {
		return nil, err
	}
	return reactions.Group(fresh), nil
}
