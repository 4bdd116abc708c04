package models

import "time"

// AllowedEmojis is the fixed set of reactions users can pick from.
var AllowedEmojis = []string{"👍", "👎", "❤️", "😄", "🎉", "😕", "🚀", "👀"}

// IsAllowedEmoji reports whether emoji belongs to the allowed set.
func IsAllowedEmoji(emoji string) bool {
	for _, e := range AllowedEmojis {
		if e == emoji {
			return true
		}
	}
	return false
}

// Reaction is a single user's live emoji reaction on a message.
// A user holds at most one row per message; toggling and replacing
// are handled by the reaction service.
type Reaction struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	MessageID int64     `json:"message_id" gorm:"not null;index;uniqueIndex:idx_reactions_message_user"`
	UserID    int64     `json:"user_id" gorm:"not null;uniqueIndex:idx_reactions_message_user"`
	Emoji     string    `json:"emoji" gorm:"not null;size:16"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Message Message `json:"message,omitempty" gorm:"foreignKey:MessageID;constraint:OnDelete:CASCADE;"`
}

func (Reaction) TableName() string {
	return "reactions"
}
