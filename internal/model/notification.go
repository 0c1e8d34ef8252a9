package model

import "time"

// Notification types, one per social action that fans out.
const (
	NotificationFavourite = "favourite"
	NotificationComment   = "comment"
	NotificationFollow    = "follow"
	NotificationRequest   = "request"
)

// Target kinds for the tagged target reference. Empty means no target
// (follow / follow-request notifications).
const (
	TargetNone    = ""
	TargetRecipe  = "recipe"
	TargetComment = "comment"
)

// Notification is a row fanned out to a recipient by a social action and
// deleted when that action is reversed. Listed newest first.
type Notification struct {
	ID          string `gorm:"primaryKey;type:varchar(36)"`
	RecipientID string `gorm:"type:varchar(36);index:idx_notification_recipient;not null"`
	SenderID    string `gorm:"type:varchar(36);not null"`
	Type        string `gorm:"type:varchar(20);not null"`
	TargetKind  string `gorm:"type:varchar(20)"`
	TargetID    string `gorm:"type:varchar(36)"`
	CreatedAt   time.Time
}

func (Notification) TableName() string { return "notifications" }
