package model

import (
	"time"
)

// Follow is a directed edge: follower follows followee. Asymmetric; a user
// never follows themselves.
type Follow struct {
	ID         string `gorm:"primaryKey;type:varchar(36)"`
	FollowerID string `gorm:"type:varchar(36);index:idx_follow_follower;index:idx_follow_pair,unique;not null"`
	FolloweeID string `gorm:"type:varchar(36);not null;index:idx_follow_followee;index:idx_follow_pair,unique"`
	// idx_follow_pair = (follower_id, followee_id), prevents duplicate edges
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Follow) TableName() string { return "follows" }

// FollowRequest is a pending follow aimed at a private account, awaiting
// accept/decline. At most one per (requester, target); never coexists with
// a Follow edge for the same pair.
type FollowRequest struct {
	ID          string `gorm:"primaryKey;type:varchar(36)"`
	RequesterID string `gorm:"type:varchar(36);index:idx_request_pair,unique;not null"`
	TargetID    string `gorm:"type:varchar(36);not null;index:idx_request_target;index:idx_request_pair,unique"`
	CreatedAt   time.Time
}

func (FollowRequest) TableName() string { return "follow_requests" }
