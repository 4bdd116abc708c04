package service

import (
	"context"
	"log/slog"
	"time"

	"msghub/internal/mentions"
	"msghub/internal/models"
	"msghub/internal/notifications"
)

// mentionNotifier resolves @-mentions in freshly committed content and
// queues the user-tagged fan-out. Shared by the message and comment
// services so both paths resolve mentions identically.
type mentionNotifier struct {
	extractor  *mentions.Extractor
	dispatcher *notifications.Dispatcher
	queue      *notifications.Queue
}

// Notify extracts mentions from body and enqueues a dispatch for the
// resolved recipients. Extraction failures are logged and swallowed:
// the content write has already succeeded and must stay successful.
func (n *mentionNotifier) Notify(ctx context.Context, author models.User, messageID, commentID int64, body string, createdAt time.Time) {
	recipients, err := n.extractor.ExtractMentions(ctx, body)
	if err != nil {
		slog.Warn("Mention extraction failed",
			"message_id", messageID,
			"comment_id", commentID,
			"error", err)
		return
	}
	if len(recipients) == 0 {
		return
	}

	event := notifications.MentionEvent{
		Author:    author,
		MessageID: messageID,
		CommentID: commentID,
		Body:      body,
		CreatedAt: createdAt,
	}
	n.queue.Enqueue(func(ctx context.Context) {
		n.dispatcher.DispatchUserTagged(ctx, event, recipients)
	})
}
