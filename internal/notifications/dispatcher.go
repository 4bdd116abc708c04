package notifications

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"msghub/internal/mail"
	"msghub/internal/models"
)

// broadcastBodyLimit is the maximum broadcast body length in code
// points; longer bodies are cut and suffixed with an ellipsis.
const broadcastBodyLimit = 120

// Outcome is the result of one channel attempt for one recipient.
type Outcome struct {
	Channel string
	Err     error
}

// Dispatcher fans a content event out to its recipients across the
// configured channels. Channel attempts are isolated: each failure is
// logged and reported in the outcome, never propagated to the caller
// and never rolling back another channel. The database record is the
// authoritative delivery; broadcast, mail and push are best effort.
type Dispatcher struct {
	database  Channel
	broadcast Channel
	mail      Channel
	push      Channel
	logger    *slog.Logger
}

func NewDispatcher(database, broadcast, mailCh, push Channel, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		database:  database,
		broadcast: broadcast,
		mail:      mailCh,
		push:      push,
		logger:    logger,
	}
}

// DispatchCommentCreated notifies the message author about a new comment
// over database, broadcast, mail and push. Commenting on your own
// message notifies nobody.
func (d *Dispatcher) DispatchCommentCreated(ctx context.Context, event CommentEvent) []Outcome {
	comment := event.Comment
	author := comment.Message.User
	if author.ID == comment.UserID {
		return nil
	}

	excerpt := truncateBody(comment.Comment, broadcastBodyLimit)
	n := &Notification{
		Kind:    KindMessageCommented,
		EventID: event.ID(),
		Event:   EventCommentCreated,
		Payload: BroadcastPayload{
			ID:        comment.ID,
			MessageID: comment.MessageID,
			User:      comment.User,
			Comment:   excerpt,
			CreatedAt: comment.CreatedAt.UTC().Format(time.RFC3339),
		},
		MailTemplate: mail.TemplateMessageCommented,
		MailVars: map[string]string{
			"commenter":  comment.User.Username,
			"excerpt":    excerpt,
			"message_id": strconv.FormatInt(comment.MessageID, 10),
		},
	}

	return d.deliver(ctx, author, n, d.database, d.broadcast, d.mail, d.push)
}

// DispatchUserTagged notifies every resolved mention recipient over
// database and broadcast only; a tag is a lower-priority interrupt than
// a direct reply, so no mail or push. Self-mentions are skipped.
func (d *Dispatcher) DispatchUserTagged(ctx context.Context, event MentionEvent, recipients []models.User) []Outcome {
	payload := BroadcastPayload{
		MessageID: event.MessageID,
		CommentID: event.CommentID,
		User:      event.Author,
		CreatedAt: event.CreatedAt.UTC().Format(time.RFC3339),
	}
	if event.CommentID != 0 {
		payload.ID = event.CommentID
		payload.Comment = truncateBody(event.Body, broadcastBodyLimit)
	} else {
		payload.ID = event.MessageID
		payload.Message = truncateBody(event.Body, broadcastBodyLimit)
	}

	var outcomes []Outcome
	for _, recipient := range recipients {
		if recipient.ID == event.Author.ID {
			continue
		}
		n := &Notification{
			Kind:    KindUserTagged,
			EventID: event.ID(),
			Event:   EventUserTagged,
			Payload: payload,
		}
		outcomes = append(outcomes, d.deliver(ctx, recipient, n, d.database, d.broadcast)...)
	}
	return outcomes
}

func (d *Dispatcher) deliver(ctx context.Context, recipient models.User, n *Notification, channels ...Channel) []Outcome {
	outcomes := make([]Outcome, 0, len(channels))
	for _, ch := range channels {
		if ch == nil {
			continue
		}
		err := ch.Deliver(ctx, recipient, n)
		if err != nil {
			d.logger.Warn("Notification channel delivery failed",
				"channel", ch.Name(),
				"event_id", n.EventID,
				"recipient_id", recipient.ID,
				"error", err)
		}
		outcomes = append(outcomes, Outcome{Channel: ch.Name(), Err: err})
	}
	return outcomes
}

// truncateBody cuts s to at most limit code points, ending in "..."
// when anything was cut. Counting runes rather than bytes keeps
// multi-byte characters intact.
func truncateBody(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
