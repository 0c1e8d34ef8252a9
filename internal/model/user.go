package model

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// User account. Private accounts gate recipe/interest visibility behind an
// accepted follow (see service.RelationshipService).
type User struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	Username  string `gorm:"type:varchar(30);uniqueIndex;not null"` // "@" + at least 3 word chars
	Email     string `gorm:"type:varchar(254);uniqueIndex;not null"`
	Password  string `gorm:"type:varchar(128);not null"` // bcrypt hash
	FirstName string `gorm:"type:varchar(50)"`
	LastName  string `gorm:"type:varchar(50)"`
	Bio       string `gorm:"type:text"`
	IsPrivate bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string { return "users" }

// FullName returns "First Last".
func (u *User) FullName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}

// Gravatar returns the gravatar URL for the user's email at the given size.
func (u *User) Gravatar(size int) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(u.Email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?s=%d&d=mp", hex.EncodeToString(sum[:]), size)
}

// MiniGravatar is the small avatar used in list rows.
func (u *User) MiniGravatar() string { return u.Gravatar(60) }
