package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/team-maroon/recipify/internal/model"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	// DeleteMatching removes the row(s) produced by a now-reversed action.
	DeleteMatching(ctx context.Context, recipientID, senderID, notificationType, targetKind, targetID string) error
	// DeleteForRecipient deletes by id only when owned by recipientID.
	// Deleting someone else's notification is a silent no-op.
	DeleteForRecipient(ctx context.Context, id, recipientID string) error
	List(ctx context.Context, recipientID, typeFilter string) ([]*model.Notification, error)
	CountForRecipient(ctx context.Context, recipientID string) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) DeleteMatching(ctx context.Context, recipientID, senderID, notificationType, targetKind, targetID string) error {
	return r.db.WithContext(ctx).
		Where("recipient_id = ? AND sender_id = ? AND type = ? AND target_kind = ? AND target_id = ?",
			recipientID, senderID, notificationType, targetKind, targetID).
		Delete(&model.Notification{}).Error
}

func (r *notificationRepository) DeleteForRecipient(ctx context.Context, id, recipientID string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Delete(&model.Notification{}).Error
}

func (r *notificationRepository) List(ctx context.Context, recipientID, typeFilter string) ([]*model.Notification, error) {
	q := r.db.WithContext(ctx).Where("recipient_id = ?", recipientID)
	if typeFilter != "" {
		q = q.Where("type = ?", typeFilter)
	}
	var res []*model.Notification
	err := q.Order("created_at DESC").Find(&res).Error
	return res, err
}

func (r *notificationRepository) CountForRecipient(ctx context.Context, recipientID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Notification{}).Where("recipient_id = ?", recipientID).Count(&cnt).Error
	return cnt, err
}
