package models

import "time"

type Notification struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  int64  `gorm:"not null;index;uniqueIndex:idx_notifications_event_recipient" json:"user_id"`
	EventID string `gorm:"not null;uniqueIndex:idx_notifications_event_recipient" json:"event_id"`
	Kind    string `gorm:"not null" json:"kind"` // MESSAGE_COMMENTED, USER_TAGGED
	Payload string `gorm:"type:text" json:"payload"`

	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
