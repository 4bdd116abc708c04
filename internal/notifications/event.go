package notifications

import (
	"fmt"
	"time"

	"msghub/internal/models"
	"msghub/internal/reactions"
)

// Kind is the persisted notification kind.
type Kind string

const (
	KindMessageCommented Kind = "MESSAGE_COMMENTED"
	KindUserTagged       Kind = "USER_TAGGED"
)

// Wire event names for the realtime channel.
const (
	EventCommentCreated   = "comment.created"
	EventUserTagged       = "user.tagged"
	EventReactionsUpdated = "reactions.updated"
)

// CommentEvent is raised after a comment row is committed. Comment must
// carry its author and the parent message with its author preloaded.
type CommentEvent struct {
	Comment models.MessageComment
}

// ID is the stable event identity used for dedup; dispatching the same
// comment twice produces the same ID.
func (e CommentEvent) ID() string {
	return fmt.Sprintf("comment:%d", e.Comment.ID)
}

// MentionEvent is raised after content containing @-mentions is
// committed. CommentID is zero when the mention sits in a message body.
type MentionEvent struct {
	Author    models.User
	MessageID int64
	CommentID int64
	Body      string
	CreatedAt time.Time
}

func (e MentionEvent) ID() string {
	if e.CommentID != 0 {
		return fmt.Sprintf("mention:comment:%d", e.CommentID)
	}
	return fmt.Sprintf("mention:message:%d", e.MessageID)
}

// BroadcastPayload is the JSON shape carried by realtime events and
// stored on the notification record.
type BroadcastPayload struct {
	ID        int64       `json:"id"`
	MessageID int64       `json:"message_id,omitempty"`
	CommentID int64       `json:"comment_id,omitempty"`
	User      models.User `json:"user"`
	Message   string      `json:"message,omitempty"`
	Comment   string      `json:"comment,omitempty"`
	CreatedAt string      `json:"created_at"` // ISO-8601
}

// ReactionsPayload is the wire shape for reactions.updated events. Only
// the grouped view travels; there is no acting user on a reaction
// update, so the shape carries none.
type ReactionsPayload struct {
	MessageID        int64               `json:"message_id"`
	GroupedReactions []reactions.Grouped `json:"grouped_reactions"`
	UpdatedAt        string              `json:"updated_at"` // ISO-8601
}

// Notification is the in-flight payload handed to every channel for one
// (event, recipient) delivery.
type Notification struct {
	Kind         Kind
	EventID      string
	Event        string
	Payload      BroadcastPayload
	MailTemplate string // empty when the kind carries no mail
	MailVars     map[string]string
}
